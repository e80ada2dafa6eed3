package encoder

import (
	"errors"
	"fmt"

	"github.com/lookbusy1344/arm-toolchain/isa"
	"github.com/lookbusy1344/arm-toolchain/parser"
)

// Encoder converts pass 1 output into ARM machine code
type Encoder struct {
	symbols *parser.SymbolTable
	errors  *parser.ErrorList
}

// NewEncoder creates a new encoder over a populated symbol table
func NewEncoder(symbols *parser.SymbolTable) *Encoder {
	return &Encoder{
		symbols: symbols,
		errors:  &parser.ErrorList{},
	}
}

// EncodeProgram runs pass 2. Every instruction-bearing line produces exactly
// one word; lines that fail to encode contribute a zero word so subsequent
// addresses stay stable. Diagnostics accumulate rather than aborting.
func (e *Encoder) EncodeProgram(prog *parser.Program) ([]uint32, *parser.ErrorList) {
	e.errors = &parser.ErrorList{}

	words := make([]uint32, 0, len(prog.Lines))
	for _, inst := range prog.Lines {
		word, err := e.EncodeInstruction(inst, inst.Address)
		if err != nil {
			e.errors.AddError(parser.NewErrorWithContext(inst.Pos, kindOf(err), err.Error(), inst.RawLine))
			word = 0
		}
		words = append(words, word)
	}
	return words, e.errors
}

// EncodeInstruction converts a single parsed instruction into ARM machine code
func (e *Encoder) EncodeInstruction(inst *parser.Instruction, address uint32) (uint32, error) {
	cond, _ := isa.ParseCond(inst.Condition)

	switch inst.Mnemonic {
	case "MOV", "MVN":
		return e.encodeDataProcessingMove(inst, cond)
	case "ADD", "ADC", "SUB", "SBC", "RSB", "RSC",
		"AND", "ORR", "EOR", "BIC":
		return e.encodeDataProcessingThreeOp(inst, cond)
	case "CMP", "CMN", "TST", "TEQ":
		return e.encodeDataProcessingCompare(inst, cond)

	case "B", "BL":
		return e.encodeBranch(inst, cond, address)

	case "LDR", "STR", "LDRB", "STRB":
		return e.encodeMemory(inst, cond)

	default:
		err := NewEncodingError(inst, fmt.Sprintf("unknown instruction: %s", inst.Mnemonic))
		err.Kind = parser.ErrorUnknownMnemonic
		return 0, err
	}
}

// kindOf maps an encoding failure to its diagnostic kind.
func kindOf(err error) parser.ErrorKind {
	switch {
	case errors.Is(err, isa.ErrImmediateOverflow):
		return parser.ErrorImmediateOverflow
	case errors.Is(err, isa.ErrOffsetOutOfRange):
		return parser.ErrorOffsetOutOfRange
	case errors.Is(err, isa.ErrRegisterOutOfRange), errors.Is(err, parser.ErrInvalidRegister):
		return parser.ErrorInvalidRegister
	case errors.Is(err, parser.ErrInvalidImmediate):
		return parser.ErrorInvalidImmediate
	}

	var encErr *EncodingError
	if errors.As(err, &encErr) && encErr.Wrapped == nil {
		return encErr.Kind
	}
	return parser.ErrorMalformedOperand
}

// parseOperand2 parses the flexible second operand: an immediate (leading '#'
// or digit) or a bare register.
func (e *Encoder) parseOperand2(operand string) (isa.Operand2, error) {
	if parser.LooksLikeImmediate(operand) {
		value, err := parser.ParseImmediate(operand)
		if err != nil {
			return isa.Operand2{}, err
		}
		return isa.DPImmOperand(value)
	}

	rm, err := parser.ParseRegister(operand)
	if err != nil {
		return isa.Operand2{}, err
	}
	return isa.DPRegOperand(rm, isa.ShiftLSL, 0)
}
