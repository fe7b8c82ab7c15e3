// Package errs is the error vocabulary of the codebase, backed by
// cockroachdb/errors so wrapped errors keep their stack traces.
package errs

import cr "github.com/cockroachdb/errors"

// New returns an error with a captured stack trace. Package-level
// sentinel errors are declared with it so errors.Is works across layers.
func New(msg string) error {
	return cr.New(msg)
}

// Wrap annotates err with msg. A nil err stays nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

// Mark ties err to a sentinel so errors.Is(result, sentinel) holds while
// the underlying cause stays inspectable. Marking nil returns the
// sentinel itself.
func Mark(err error, sentinel error) error {
	if err == nil {
		return sentinel
	}
	return cr.Mark(err, sentinel)
}
