package isa

import "fmt"

// Operand2 is the 12-bit flexible second operand of a data processing
// instruction, together with the I bit that selects its interpretation.
type Operand2 struct {
	field     uint32
	immediate bool
}

// DPImmOperand builds an immediate operand2. The value is stored straight into
// the low 12 bits; no rotation synthesis is attempted, so values that need the
// rotate field are rejected.
func DPImmOperand(value uint32) (Operand2, error) {
	if value > Mask12Bit {
		return Operand2{}, fmt.Errorf("%w: immediate %d exceeds 12 bits", ErrImmediateOverflow, value)
	}
	return Operand2{field: value, immediate: true}, nil
}

// DPRegOperand builds a register operand2 with an optional immediate shift.
// A shift amount of zero encodes the bare register form.
func DPRegOperand(rm, shiftType, shiftImm uint32) (Operand2, error) {
	if rm > Mask4Bit {
		return Operand2{}, fmt.Errorf("%w: Rm=%d", ErrRegisterOutOfRange, rm)
	}
	if shiftType > ShiftROR {
		return Operand2{}, fmt.Errorf("%w: shift type %d", ErrImmediateOverflow, shiftType)
	}
	if shiftImm > 31 {
		return Operand2{}, fmt.Errorf("%w: shift amount %d", ErrImmediateOverflow, shiftImm)
	}
	field := (shiftImm << ShiftAmountShift) | (shiftType << ShiftTypeShift) | rm
	return Operand2{field: field}, nil
}

// EncodeDataProcessing assembles a data processing word:
//
//	cond[4] | 00 | I[1] | opcode[4] | S[1] | Rn[4] | Rd[4] | operand2[12]
func EncodeDataProcessing(cond Cond, opcode uint32, s bool, rn, rd uint32, op2 Operand2) (uint32, error) {
	if opcode > Mask4Bit {
		return 0, fmt.Errorf("%w: opcode %d", ErrImmediateOverflow, opcode)
	}
	if rn > Mask4Bit {
		return 0, fmt.Errorf("%w: Rn=%d", ErrRegisterOutOfRange, rn)
	}
	if rd > Mask4Bit {
		return 0, fmt.Errorf("%w: Rd=%d", ErrRegisterOutOfRange, rd)
	}

	var sBit, iBit uint32
	if s {
		sBit = 1
	}
	if op2.immediate {
		iBit = 1
	}

	word := (uint32(cond) << ConditionShift) | (iBit << IBitShift) |
		(opcode << OpcodeShift) | (sBit << SBitShift) |
		(rn << RnShift) | (rd << RdShift) | op2.field
	return word, nil
}

// BranchOffsetWords computes the 24-bit offset field for a branch at pc that
// lands on target: ((target - pc - 8) >> 2) & 0xFFFFFF.
func BranchOffsetWords(target, pc uint32) (uint32, error) {
	delta := int64(target) - int64(pc) - 8
	words := delta >> 2
	if words > MaxBranchOffset || words < MinBranchOffset {
		return 0, fmt.Errorf("%w: branch from 0x%08X to 0x%08X", ErrOffsetOutOfRange, pc, target)
	}
	return uint32(words) & Mask24Bit, nil
}

// EncodeBranch assembles a branch word:
//
//	cond[4] | 101 | L[1] | offset[24]
func EncodeBranch(cond Cond, link bool, offset24 uint32) uint32 {
	var lBit uint32
	if link {
		lBit = 1
	}
	return (uint32(cond) << ConditionShift) | (BranchTypeValue << 25) |
		(lBit << BranchLinkShift) | (offset24 & Mask24Bit)
}

// EncodeLoadStore assembles a single register transfer word:
//
//	cond[4] | 01 | I[1] | P[1] | U[1] | B[1] | W[1] | L[1] | Rn[4] | Rd[4] | offset[12]
//
// The I bit is always zero here: only immediate offsets are supported.
func EncodeLoadStore(cond Cond, p, u, b, w, l bool, rn, rd, offset uint32) (uint32, error) {
	if rn > Mask4Bit {
		return 0, fmt.Errorf("%w: Rn=%d", ErrRegisterOutOfRange, rn)
	}
	if rd > Mask4Bit {
		return 0, fmt.Errorf("%w: Rd=%d", ErrRegisterOutOfRange, rd)
	}
	if offset > Mask12Bit {
		return 0, fmt.Errorf("%w: offset %d exceeds 12 bits", ErrOffsetOutOfRange, offset)
	}

	word := (uint32(cond) << ConditionShift) | (LoadStoreType << 26) |
		(bit(p) << PBitShift) | (bit(u) << UBitShift) | (bit(b) << BBitShift) |
		(bit(w) << WBitShift) | (bit(l) << LBitShift) |
		(rn << RnShift) | (rd << RdShift) | offset
	return word, nil
}

func bit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
