package freeslot

import "errors"

var (
	// ErrInvalidWindow is returned when the queried window has from >= to
	ErrInvalidWindow = errors.New("from must be before to")
)
