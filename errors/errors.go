package errors

import "errors"

var (
	New = errors.New
	Is  = errors.Is
	As  = errors.As
)

type baseErr struct {
	base  error
	inner error
}

func (e *baseErr) Unwrap() error {
	return e.inner
}

func (e *baseErr) Is(target error) bool {
	return e.base == target
}

func (e *baseErr) Error() string {
	if e.inner == nil {
		return e.base.Error()
	}
	return e.base.Error() + ": " + e.inner.Error()
}

// Single tags cause with the sentinel base. errors.Is matches both base and anything in the cause chain.
func Single(base, cause error) error {
	return &baseErr{
		base:  base,
		inner: cause,
	}
}

// Cause returns the innermost error of the chain.
func Cause(err error) error {
	if err == nil {
		return nil
	}
L:
	for {
		switch inner := err.(type) {
		case interface{ Unwrap() error }:
			if inner.Unwrap() == nil {
				break L
			}
			err = inner.Unwrap()
		default:
			break L
		}
	}
	return err
}
