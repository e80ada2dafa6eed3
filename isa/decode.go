package isa

// Class identifies the broad instruction category of a word.
type Class int

const (
	ClassUnknown Class = iota
	ClassMultiply
	ClassDataProcessing
	ClassLoadStore
	ClassBlockTransfer
	ClassBranch
	ClassSoftwareInterrupt
)

var classNames = map[Class]string{
	ClassUnknown:           "unknown",
	ClassMultiply:          "multiply",
	ClassDataProcessing:    "data processing",
	ClassLoadStore:         "load/store",
	ClassBlockTransfer:     "block transfer",
	ClassBranch:            "branch",
	ClassSoftwareInterrupt: "software interrupt",
}

func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return "unknown"
}

// classPattern is one row of the classification table. Order matters: the
// multiply pattern overlaps the data processing space and must be tested first.
type classPattern struct {
	mask  uint32
	match uint32
	class Class
}

var classTable = []classPattern{
	{0x0FC000F0, 0x00000090, ClassMultiply},
	{0x0C000000, 0x00000000, ClassDataProcessing},
	{0x0C000000, 0x04000000, ClassLoadStore},
	{0x0E000000, 0x08000000, ClassBlockTransfer},
	{0x0E000000, 0x0A000000, ClassBranch},
	{0x0F000000, 0x0F000000, ClassSoftwareInterrupt},
}

// Classify determines the instruction class of a 32-bit word.
func Classify(word uint32) Class {
	for _, p := range classTable {
		if word&p.mask == p.match {
			return p.class
		}
	}
	return ClassUnknown
}

// RotateRight rotates a 32-bit value right by the given amount.
func RotateRight(value, amount uint32) uint32 {
	amount %= 32
	if amount == 0 {
		return value
	}
	return (value >> amount) | (value << (32 - amount))
}

// SignExtend24 sign-extends a 24-bit value to a signed 32-bit integer.
func SignExtend24(value uint32) int32 {
	value &= Mask24Bit
	if value&0x800000 != 0 {
		value |= 0xFF000000
	}
	return int32(value)
}

// BranchTarget recovers the destination of a branch word located at addr,
// applying the PC+8 convention.
func BranchTarget(word, addr uint32) uint32 {
	offset := SignExtend24(word & Mask24Bit)
	return addr + 8 + uint32(offset<<2)
}

// DPImmValue reconstructs the immediate of a data processing word with I=1:
// ror(imm8, rotate*2).
func DPImmValue(word uint32) uint32 {
	imm8 := word & Mask8Bit
	rotate := ((word >> RotateShift) & Mask4Bit) * 2
	return RotateRight(imm8, rotate)
}
