// Package consensus_types defines the error classes shared by the validation
// packages. Every sentinel returned by accumulator, proof and era belongs to
// exactly one class and can be matched against it with errors.Is.
package consensus_types

import (
	"github.com/pkg/errors"
)

var (
	// ErrStructural marks malformed input: wrong lengths, misalignment, gaps, bad branch sizes.
	ErrStructural = errors.New("structural error")
	// ErrLookup marks missing reference data: an unknown epoch root or historical entry.
	ErrLookup = errors.New("lookup error")
	// ErrMismatch marks a computed root that differs from the trusted one.
	ErrMismatch = errors.New("mismatch error")
	// ErrUnsupportedEra marks a height or slot that maps to no supported era.
	ErrUnsupportedEra = errors.New("unsupported era")
)

// ClassError is a sentinel error belonging to one of the error classes.
type ClassError struct {
	class error
	msg   string
}

// NewError returns a sentinel with the given message belonging to class.
func NewError(class error, msg string) *ClassError {
	return &ClassError{class: class, msg: msg}
}

func (e *ClassError) Error() string {
	return e.msg
}

// Is reports whether target is the class of the error.
func (e *ClassError) Is(target error) bool {
	return target == e.class
}

// Class returns the class the error belongs to.
func (e *ClassError) Class() error {
	return e.class
}
