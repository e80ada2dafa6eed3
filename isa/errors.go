package isa

import "errors"

// Kernel error kinds. Callers wrap these with field context; errors.Is works
// through the wrapping.
var (
	ErrRegisterOutOfRange = errors.New("register out of range")
	ErrImmediateOverflow  = errors.New("immediate overflow")
	ErrOffsetOutOfRange   = errors.New("offset out of range")
)
