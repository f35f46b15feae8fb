package kdf

import (
	"errors"
	"fmt"
)

const (
	FieldIterations = "iterations"
	FieldLength     = "length"
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrPrimitiveFailure = errors.New("primitive failure")
	ErrUnknownPRF       = errors.New("unknown prf")
)

// ParameterError reports an iteration count or output length outside of the
// domain accepted by PBKDF2. It matches ErrInvalidParameter.
type ParameterError struct {
	Field  string
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("kdf: invalid %s: %s", e.Field, e.Reason)
}

func (e *ParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// PrimitiveError wraps a failure reported by the underlying PRF. It matches
// ErrPrimitiveFailure and unwraps to the primitive's own error.
type PrimitiveError struct {
	PRF string
	Err error
}

func (e *PrimitiveError) Error() string {
	return fmt.Sprintf("kdf: %s primitive failure: %v", e.PRF, e.Err)
}

func (e *PrimitiveError) Unwrap() error {
	return e.Err
}

func (e *PrimitiveError) Is(target error) bool {
	return target == ErrPrimitiveFailure
}
