package encoder

import (
	"fmt"

	"github.com/lookbusy1344/arm-toolchain/isa"
	"github.com/lookbusy1344/arm-toolchain/parser"
)

// dpOpcodes maps data processing mnemonics to their 4-bit opcode
var dpOpcodes = map[string]uint32{
	"AND": isa.OpAND,
	"EOR": isa.OpEOR,
	"SUB": isa.OpSUB,
	"RSB": isa.OpRSB,
	"ADD": isa.OpADD,
	"ADC": isa.OpADC,
	"SBC": isa.OpSBC,
	"RSC": isa.OpRSC,
	"TST": isa.OpTST,
	"TEQ": isa.OpTEQ,
	"CMP": isa.OpCMP,
	"CMN": isa.OpCMN,
	"ORR": isa.OpORR,
	"MOV": isa.OpMOV,
	"BIC": isa.OpBIC,
	"MVN": isa.OpMVN,
}

// encodeDataProcessingMove encodes MOV and MVN: Rd, op2 with Rn=0
func (e *Encoder) encodeDataProcessingMove(inst *parser.Instruction, cond isa.Cond) (uint32, error) {
	if len(inst.Operands) < 2 {
		return 0, NewEncodingError(inst, fmt.Sprintf("%s requires 2 operands, got %d", inst.Mnemonic, len(inst.Operands)))
	}

	rd, err := parser.ParseRegister(inst.Operands[0])
	if err != nil {
		return 0, WrapEncodingError(inst, err)
	}

	op2, err := e.parseOperand2(inst.Operands[1])
	if err != nil {
		return 0, WrapEncodingError(inst, err)
	}

	word, err := isa.EncodeDataProcessing(cond, dpOpcodes[inst.Mnemonic], inst.SetFlags, 0, rd, op2)
	return word, WrapEncodingError(inst, err)
}

// encodeDataProcessingThreeOp encodes the arithmetic and logical forms:
// Rd, Rn, op2
func (e *Encoder) encodeDataProcessingThreeOp(inst *parser.Instruction, cond isa.Cond) (uint32, error) {
	if len(inst.Operands) < 3 {
		return 0, NewEncodingError(inst, fmt.Sprintf("%s requires 3 operands, got %d", inst.Mnemonic, len(inst.Operands)))
	}

	rd, err := parser.ParseRegister(inst.Operands[0])
	if err != nil {
		return 0, WrapEncodingError(inst, err)
	}

	rn, err := parser.ParseRegister(inst.Operands[1])
	if err != nil {
		return 0, WrapEncodingError(inst, err)
	}

	op2, err := e.parseOperand2(inst.Operands[2])
	if err != nil {
		return 0, WrapEncodingError(inst, err)
	}

	word, err := isa.EncodeDataProcessing(cond, dpOpcodes[inst.Mnemonic], inst.SetFlags, rn, rd, op2)
	return word, WrapEncodingError(inst, err)
}

// encodeDataProcessingCompare encodes TST, TEQ, CMP and CMN: Rn, op2 with
// Rd=0 and the S bit forced on.
func (e *Encoder) encodeDataProcessingCompare(inst *parser.Instruction, cond isa.Cond) (uint32, error) {
	if len(inst.Operands) < 2 {
		return 0, NewEncodingError(inst, fmt.Sprintf("%s requires 2 operands, got %d", inst.Mnemonic, len(inst.Operands)))
	}

	rn, err := parser.ParseRegister(inst.Operands[0])
	if err != nil {
		return 0, WrapEncodingError(inst, err)
	}

	op2, err := e.parseOperand2(inst.Operands[1])
	if err != nil {
		return 0, WrapEncodingError(inst, err)
	}

	word, err := isa.EncodeDataProcessing(cond, dpOpcodes[inst.Mnemonic], true, rn, 0, op2)
	return word, WrapEncodingError(inst, err)
}
