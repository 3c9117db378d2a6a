package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrNotFound = errors.New("file not found")
	ErrRead     = errors.New("error reading csv")
)

// ReadError wraps any failure that happens after the input was located:
// decoding, CSV syntax, permission problems.
// It matches both ErrRead and the underlying cause with errors.Is.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() []error {
	return []error{ErrRead, e.Err}
}
