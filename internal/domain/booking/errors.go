package booking

import (
	"errors"
	"fmt"

	"github.com/studiobook/studiobook-api/internal/pkg/interval"
)

var (
	// ErrEmptySlots is returned when a booking request contains no slots
	ErrEmptySlots = errors.New("booking must contain at least one slot")

	ErrInternal = errors.New("internal error")
)

// InvalidIntervalError reports a slot whose start is not before its end.
// Index is the slot's position in the request.
type InvalidIntervalError struct {
	Index    int
	Interval interval.Interval
}

func (e *InvalidIntervalError) Error() string {
	return fmt.Sprintf("slot %d: %v", e.Index, e.Interval.Validate())
}

// OverlappingSlotError reports a requested interval that conflicts with an
// already booked slot, or with a sibling slot of the same request, in the
// same studio.
type OverlappingSlotError struct {
	StudioID string
	Interval interval.Interval
}

func (e *OverlappingSlotError) Error() string {
	return fmt.Sprintf("studio %s is already booked during %s", e.StudioID, e.Interval)
}
