package analytics

import "fmt"

// ErrWindowLargerThanArray is returned when a rolling window exceeds the series length
type ErrWindowLargerThanArray struct {
	N      int
	Window int
}

func (e *ErrWindowLargerThanArray) Error() string {
	return fmt.Sprintf("window %d is larger than array length of %d", e.Window, e.N)
}
