package freeslot

import (
	"context"
	"fmt"
	"time"

	"github.com/studiobook/studiobook-api/internal/domain/booking"
	"github.com/studiobook/studiobook-api/internal/domain/studio"
	"github.com/studiobook/studiobook-api/internal/pkg/pricing"
)

const chunkSize = time.Hour

// SlotStore is the slice of the booking store the free-slot engine needs.
type SlotStore interface {
	FindIntersecting(ctx context.Context, studioID string, from, to time.Time) ([]booking.TimeSlot, error)
}

// Service derives free, priced slots from the booked calendar.
type Service struct {
	slots   SlotStore
	catalog studio.Catalog
}

// NewService creates free-slot service
func NewService(slots SlotStore, catalog studio.Catalog) *Service {
	return &Service{
		slots:   slots,
		catalog: catalog,
	}
}

// GetFreeSlots returns the unbooked gaps of every requested studio within
// [from, to), cut into chunks of at most one hour anchored at each gap's
// own start. With no explicit studio ids the whole catalog is considered;
// explicit ids are validated with every missing id reported at once.
func (s *Service) GetFreeSlots(ctx context.Context, from, to time.Time, studioIDs []string) ([]PricedSlot, error) {
	if !from.Before(to) {
		return nil, ErrInvalidWindow
	}
	from, to = from.UTC(), to.UTC()

	studios, err := s.resolveStudios(ctx, studioIDs)
	if err != nil {
		return nil, err
	}

	freeSlots := []PricedSlot{}
	for _, st := range studios {
		slots, err := s.freeSlotsForStudio(ctx, from, to, st)
		if err != nil {
			return nil, err
		}
		freeSlots = append(freeSlots, slots...)
	}

	return freeSlots, nil
}

func (s *Service) resolveStudios(ctx context.Context, studioIDs []string) ([]studio.Studio, error) {
	if len(studioIDs) == 0 {
		return s.catalog.List(ctx)
	}

	byID, err := studio.Resolve(ctx, s.catalog, studioIDs)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(studioIDs))
	studios := make([]studio.Studio, 0, len(studioIDs))
	for _, id := range studioIDs {
		if !seen[id] {
			seen[id] = true
			studios = append(studios, byID[id])
		}
	}
	return studios, nil
}

// freeSlotsForStudio walks the window left to right: every gap before,
// between and after the busy slots becomes free chunks.
func (s *Service) freeSlotsForStudio(ctx context.Context, from, to time.Time, st studio.Studio) ([]PricedSlot, error) {
	busy, err := s.slots.FindIntersecting(ctx, st.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch busy slots for studio %s: %w", st.ID, err)
	}

	var free []PricedSlot
	cursor := from

	for _, b := range busy {
		start := b.StartTime.UTC()
		end := b.EndTime.UTC()
		if !end.After(cursor) {
			continue
		}
		if start.After(cursor) {
			free = appendChunks(free, st, cursor, minTime(start, to))
		}
		cursor = maxTime(cursor, end)
		if !cursor.Before(to) {
			return free, nil
		}
	}

	return appendChunks(free, st, cursor, to), nil
}

// appendChunks splits [start, end) into consecutive pieces of at most one
// hour, anchored at start, and prices each piece. A zero-length region
// yields nothing.
func appendChunks(out []PricedSlot, st studio.Studio, start, end time.Time) []PricedSlot {
	for cursor := start; cursor.Before(end); {
		chunkEnd := cursor.Add(chunkSize)
		if chunkEnd.After(end) {
			chunkEnd = end
		}
		out = append(out, PricedSlot{
			StudioID:  st.ID,
			StartTime: cursor,
			EndTime:   chunkEnd,
			Price:     pricing.Price(cursor, chunkEnd, st.HourlyRate),
		})
		cursor = chunkEnd
	}
	return out
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
