package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/studiobook/studiobook-api/internal/domain/studio"
	"github.com/studiobook/studiobook-api/internal/pkg/interval"
	"github.com/studiobook/studiobook-api/internal/pkg/pricing"
)

// Service handles booking business logic
type Service struct {
	repo    Repository
	catalog studio.Catalog
}

// NewService creates booking service
func NewService(repo Repository, catalog studio.Catalog) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
	}
}

// MakeBooking reserves every requested slot as one atomic booking. All
// validation runs before anything is persisted: structural interval checks
// (every bad slot reported), studio resolution (every missing id reported),
// then overlap checks against both persisted slots and sibling slots of the
// same request. Prices are fixed at booking time from the studio's hourly
// rate.
func (s *Service) MakeBooking(ctx context.Context, userID string, req *MakeBookingRequest) (*Booking, error) {
	if len(req.Slots) == 0 {
		return nil, ErrEmptySlots
	}

	intervals := make([]interval.Interval, len(req.Slots))
	var structural []error
	for i, slot := range req.Slots {
		intervals[i] = interval.New(slot.StartTime, slot.EndTime)
		if err := intervals[i].Validate(); err != nil {
			structural = append(structural, &InvalidIntervalError{Index: i, Interval: intervals[i]})
		}
	}
	if len(structural) > 0 {
		return nil, errors.Join(structural...)
	}

	studioIDs := make([]string, len(req.Slots))
	for i, slot := range req.Slots {
		studioIDs[i] = slot.StudioID
	}
	studios, err := studio.Resolve(ctx, s.catalog, studioIDs)
	if err != nil {
		return nil, err
	}

	if err := s.checkOverlaps(ctx, req.Slots, intervals); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	slots := make([]TimeSlot, len(req.Slots))
	for i, slot := range req.Slots {
		rate := studios[slot.StudioID].HourlyRate
		slots[i] = TimeSlot{
			ID:          uuid.New(),
			StudioID:    slot.StudioID,
			StartTime:   intervals[i].Start,
			EndTime:     intervals[i].End,
			PeopleCount: slot.PeopleCount,
			Price:       pricing.Price(intervals[i].Start, intervals[i].End, rate),
			CreatedAt:   now,
		}
	}

	booking, err := s.repo.CreateBooking(ctx, userID, slots)
	if err != nil {
		return nil, err
	}

	return booking, nil
}

// checkOverlaps rejects any requested interval that shares time with an
// already persisted slot or with an earlier sibling slot in the same
// studio. Persisted slots are fetched once per studio over the span the
// request touches.
func (s *Service) checkOverlaps(ctx context.Context, slots []SlotRequest, intervals []interval.Interval) error {
	type span struct {
		from time.Time
		to   time.Time
	}

	spans := make(map[string]span)
	for i, slot := range slots {
		sp, ok := spans[slot.StudioID]
		if !ok {
			spans[slot.StudioID] = span{from: intervals[i].Start, to: intervals[i].End}
			continue
		}
		if intervals[i].Start.Before(sp.from) {
			sp.from = intervals[i].Start
		}
		if intervals[i].End.After(sp.to) {
			sp.to = intervals[i].End
		}
		spans[slot.StudioID] = sp
	}

	busy := make(map[string][]TimeSlot, len(spans))
	for studioID, sp := range spans {
		existing, err := s.repo.FindIntersecting(ctx, studioID, sp.from, sp.to)
		if err != nil {
			return fmt.Errorf("fetch booked slots for studio %s: %w", studioID, err)
		}
		busy[studioID] = existing
	}

	for i, slot := range slots {
		for _, existing := range busy[slot.StudioID] {
			if intervals[i].Overlaps(existing.Interval()) {
				return &OverlappingSlotError{StudioID: slot.StudioID, Interval: intervals[i]}
			}
		}
		for j := 0; j < i; j++ {
			if slots[j].StudioID == slot.StudioID && intervals[i].Overlaps(intervals[j]) {
				return &OverlappingSlotError{StudioID: slot.StudioID, Interval: intervals[i]}
			}
		}
	}

	return nil
}

// ListSlots returns persisted time slots matching the filter. Explicit
// studio ids are validated against the catalog first, reporting every
// missing id at once.
func (s *Service) ListSlots(ctx context.Context, filter *SlotFilter) ([]TimeSlot, error) {
	if len(filter.StudioIDs) > 0 {
		if _, err := studio.Resolve(ctx, s.catalog, filter.StudioIDs); err != nil {
			return nil, err
		}
	}
	return s.repo.ListSlots(ctx, filter)
}
