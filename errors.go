package hoard

import (
	"errors"
	"fmt"
)

// ErrEmptyKey rejects writes with an empty key before they reach the store.
var ErrEmptyKey = errors.New("hoard: empty key")

// ValueTooLargeError reports a value over the configured per-value limit.
// This is distinct from the memory ceiling: a value may exceed the whole
// ceiling and still be accepted, as long as it fits the per-value limit.
type ValueTooLargeError struct {
	Size int
	Max  int
}

func (e *ValueTooLargeError) Error() string {
	return fmt.Sprintf("hoard: value of %d bytes exceeds maximum %d", e.Size, e.Max)
}
