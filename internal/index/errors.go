package index

import (
	"errors"
	"fmt"
)

var (
	// ErrIO indicates the index store could not be opened, written,
	// committed or searched.
	ErrIO = errors.New("index i/o failure")

	// ErrDateDecode indicates a stored date string is not a valid encoded date.
	ErrDateDecode = errors.New("date decode failure")

	// ErrClosed indicates the store has already been closed.
	ErrClosed = errors.New("index store closed")
)

// Error ties a failure kind (one of the sentinels above) to the operation
// that failed and its underlying cause.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func ioError(op string, err error) error {
	return &Error{Op: op, Kind: ErrIO, Err: err}
}
