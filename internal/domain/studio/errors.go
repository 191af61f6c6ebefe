package studio

import (
	"fmt"
	"strings"
)

// UnknownStudiosError is returned when one or more requested studio ids
// do not exist in the catalog. IDs lists every missing id, not just the
// first one.
type UnknownStudiosError struct {
	IDs []string
}

func (e *UnknownStudiosError) Error() string {
	return fmt.Sprintf("one or more studios do not exist: %s", strings.Join(e.IDs, ", "))
}
