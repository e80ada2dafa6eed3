package isa

// ============================================================================
// ARM Instruction Encoding Constants
// ============================================================================
// These constants define the ARM7 instruction word format. They are shared
// between the encoder, the linker's relocation patcher, and the disassembler.

// Instruction field bit positions
const (
	// Condition code field (bits 31-28)
	ConditionShift = 28

	// Data processing field positions
	OpcodeShift = 21 // Bits 24-21: opcode field
	SBitShift   = 20 // Bit 20: S bit (set flags)
	RnShift     = 16 // Bits 19-16: Rn (first operand register)
	RdShift     = 12 // Bits 15-12: Rd (destination register)
	RsShift     = 8  // Bits 11-8: Rs (shift amount register)
	IBitShift   = 25 // Bit 25: I bit (immediate operand2)

	// Operand2 sub-fields (register form)
	ShiftAmountShift = 7 // Bits 11-7: shift immediate
	ShiftTypeShift   = 5 // Bits 6-5: shift type

	// Operand2 sub-fields (immediate form)
	RotateShift = 8 // Bits 11-8: rotate amount / 2

	// Memory instruction bit positions
	PBitShift = 24 // Bit 24: P (pre/post indexing)
	UBitShift = 23 // Bit 23: U (up/down - add/subtract offset)
	BBitShift = 22 // Bit 22: B (byte/word)
	WBitShift = 21 // Bit 21: W (writeback)
	LBitShift = 20 // Bit 20: L (load/store)

	// Branch instruction
	BranchLinkShift = 24 // Bit 24: L bit for BL
)

// Field masks
const (
	Mask4Bit  = 0xF
	Mask8Bit  = 0xFF
	Mask12Bit = 0xFFF
	Mask16Bit = 0xFFFF
	Mask24Bit = 0xFFFFFF
)

// ARM register numbers
const (
	RegisterSP = 13 // Stack Pointer (R13)
	RegisterLR = 14 // Link Register (R14)
	RegisterPC = 15 // Program Counter (R15)
)

// Data processing opcodes (bits 24-21)
const (
	OpAND = 0x0
	OpEOR = 0x1
	OpSUB = 0x2
	OpRSB = 0x3
	OpADD = 0x4
	OpADC = 0x5
	OpSBC = 0x6
	OpRSC = 0x7
	OpTST = 0x8
	OpTEQ = 0x9
	OpCMP = 0xA
	OpCMN = 0xB
	OpORR = 0xC
	OpMOV = 0xD
	OpBIC = 0xE
	OpMVN = 0xF
)

// Barrel shifter types (bits 6-5 of a register operand2)
const (
	ShiftLSL = 0
	ShiftLSR = 1
	ShiftASR = 2
	ShiftROR = 3
)

// Instruction type values, before shifting into position
const (
	BranchTypeValue   = 5   // 0b101 in bits 27-25
	LoadStoreType     = 1   // 0b01 in bits 27-26
	BlockTypeValue    = 4   // 0b100 in bits 27-25
	MultiplyMarker    = 9   // 0b1001 in bits 7-4
	SWITypeValue      = 0xF // 0b1111 in bits 27-24
)

// Branch offset limits (signed 24-bit word count)
const (
	MaxBranchOffset = 0x7FFFFF
	MinBranchOffset = -0x800000
)

// WordSize is the size of every ARM instruction in bytes.
const WordSize = 4
