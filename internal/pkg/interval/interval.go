package interval

import (
	"fmt"
	"time"
)

// Interval is a half-open time range [Start, End). It is a plain value:
// two intervals with the same bounds are the same interval.
type Interval struct {
	Start time.Time
	End   time.Time
}

// New builds an interval with both bounds normalized to UTC.
func New(start, end time.Time) Interval {
	return Interval{Start: start.UTC(), End: end.UTC()}
}

// Validate checks structural validity: Start must be strictly before End.
func (i Interval) Validate() error {
	if !i.Start.Before(i.End) {
		return fmt.Errorf("start %s must be before end %s", i.Start.Format(time.RFC3339), i.End.Format(time.RFC3339))
	}
	return nil
}

// Overlaps reports whether two half-open intervals share any instant.
// Touching at a boundary (i.End == other.Start) is not an overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Duration returns End - Start.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s)", i.Start.Format(time.RFC3339), i.End.Format(time.RFC3339))
}
