package encoder

import (
	"fmt"

	"github.com/lookbusy1344/arm-toolchain/parser"
)

// EncodingError provides context for encoding failures: the instruction's
// source location, the raw source line, and the underlying error.
type EncodingError struct {
	Instruction *parser.Instruction
	Message     string
	Wrapped     error
	Kind        parser.ErrorKind
}

// Error implements the error interface.
func (e *EncodingError) Error() string {
	if e.Instruction == nil {
		if e.Wrapped != nil {
			return fmt.Sprintf("encoding error: %s: %v", e.Message, e.Wrapped)
		}
		return fmt.Sprintf("encoding error: %s", e.Message)
	}

	location := ""
	if e.Instruction.Pos.Line > 0 {
		location = e.Instruction.Pos.String() + ": "
	}

	if e.Wrapped != nil {
		return fmt.Sprintf("%s%s: %v", location, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("%s%s", location, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *EncodingError) Unwrap() error {
	return e.Wrapped
}

// NewEncodingError creates a new EncodingError with instruction context.
func NewEncodingError(inst *parser.Instruction, message string) *EncodingError {
	return &EncodingError{Instruction: inst, Message: message, Kind: parser.ErrorMalformedOperand}
}

// WrapEncodingError wraps an existing error with instruction context.
// EncodingErrors pass through unchanged; nil stays nil.
func WrapEncodingError(inst *parser.Instruction, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*EncodingError); ok {
		return err
	}
	return &EncodingError{
		Instruction: inst,
		Message:     "failed to encode instruction",
		Wrapped:     err,
	}
}
