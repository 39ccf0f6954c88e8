package fsvisit

import (
	"errors"
	"fmt"
)

// ErrInvalidState is returned when an Enumerator is read before its first
// MoveNext or after it has been exhausted.
var ErrInvalidState = errors.New("fsvisit: enumerator is not positioned on an element")

// IOError is returned when the filesystem cannot be read during traversal.
type IOError struct {
	Op   string // "abs" or "readdir"
	Path string // Directory being read
	Err  error  // Underlying error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// FilterError is returned by Execute when the configured Filter fails.
type FilterError struct {
	Entry Entry
	Err   error
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("filter %s: %v", e.Entry.Path, e.Err)
}

func (e *FilterError) Unwrap() error {
	return e.Err
}
