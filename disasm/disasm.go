// Package disasm decodes binary images back to ARM7 mnemonic form. Decoding
// never fails: words outside every known class render as UNKNOWN.
package disasm

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/lookbusy1344/arm-toolchain/isa"
)

// dpMnemonics maps data processing opcodes to their mnemonics
var dpMnemonics = [16]string{
	"AND", "EOR", "SUB", "RSB", "ADD", "ADC", "SBC", "RSC",
	"TST", "TEQ", "CMP", "CMN", "ORR", "MOV", "BIC", "MVN",
}

// shiftNames maps barrel shifter types to their mnemonics
var shiftNames = [4]string{"LSL", "LSR", "ASR", "ROR"}

// Disassembler formats instruction words. An optional symbol map names
// branch targets and label addresses.
type Disassembler struct {
	Symbols map[uint32]string
}

// New creates a disassembler. symbols may be nil.
func New(symbols map[uint32]string) *Disassembler {
	return &Disassembler{Symbols: symbols}
}

// Instruction formats a single 32-bit word located at addr.
func (d *Disassembler) Instruction(word, addr uint32) string {
	cond := isa.CondOf(word).Name()

	switch isa.Classify(word) {
	case isa.ClassMultiply:
		return d.multiply(word, cond)
	case isa.ClassDataProcessing:
		return d.dataProcessing(word, cond)
	case isa.ClassLoadStore:
		return d.loadStore(word, cond)
	case isa.ClassBlockTransfer:
		return d.blockTransfer(word, cond)
	case isa.ClassBranch:
		return d.branch(word, cond, addr)
	case isa.ClassSoftwareInterrupt:
		return d.swi(word, cond)
	default:
		return fmt.Sprintf("UNKNOWN 0x%08X", word)
	}
}

func (d *Disassembler) dataProcessing(word uint32, cond string) string {
	opcode := (word >> isa.OpcodeShift) & isa.Mask4Bit
	sBit := (word >> isa.SBitShift) & 1
	rn := (word >> isa.RnShift) & isa.Mask4Bit
	rd := (word >> isa.RdShift) & isa.Mask4Bit
	immediate := (word>>isa.IBitShift)&1 == 1

	isTest := opcode >= isa.OpTST && opcode <= isa.OpCMN
	isMove := opcode == isa.OpMOV || opcode == isa.OpMVN

	var sb strings.Builder
	sb.WriteString(dpMnemonics[opcode])
	sb.WriteString(cond)
	if sBit == 1 && !isTest {
		sb.WriteString("S")
	}

	if !isTest {
		fmt.Fprintf(&sb, " R%d,", rd)
	}
	if !isMove {
		fmt.Fprintf(&sb, " R%d,", rn)
	}

	if immediate {
		fmt.Fprintf(&sb, " #0x%X", isa.DPImmValue(word))
	} else {
		rm := word & isa.Mask4Bit
		shiftType := (word >> isa.ShiftTypeShift) & 0x3
		shiftImm := (word >> isa.ShiftAmountShift) & 0x1F

		fmt.Fprintf(&sb, " R%d", rm)
		if shiftImm != 0 {
			fmt.Fprintf(&sb, ", %s #%d", shiftNames[shiftType], shiftImm)
		}
	}

	return sb.String()
}

func (d *Disassembler) multiply(word uint32, cond string) string {
	rd := (word >> isa.RnShift) & isa.Mask4Bit
	rs := (word >> isa.RsShift) & isa.Mask4Bit
	rm := word & isa.Mask4Bit
	return fmt.Sprintf("MUL%s R%d, R%d, R%d", cond, rd, rm, rs)
}

func (d *Disassembler) loadStore(word uint32, cond string) string {
	load := (word>>isa.LBitShift)&1 == 1
	byteXfer := (word>>isa.BBitShift)&1 == 1
	rn := (word >> isa.RnShift) & isa.Mask4Bit
	rd := (word >> isa.RdShift) & isa.Mask4Bit
	offset := word & isa.Mask12Bit

	mnemonic := "STR"
	if load {
		mnemonic = "LDR"
	}
	if byteXfer {
		mnemonic += "B"
	}

	return fmt.Sprintf("%s%s R%d, [R%d, #0x%X]", mnemonic, cond, rd, rn, offset)
}

func (d *Disassembler) blockTransfer(word uint32, cond string) string {
	load := (word>>isa.LBitShift)&1 == 1
	rn := (word >> isa.RnShift) & isa.Mask4Bit
	regList := word & isa.Mask16Bit

	mnemonic := "STM"
	if load {
		mnemonic = "LDM"
	}

	regs := make([]string, 0, 16)
	for i := 0; i < 16; i++ {
		if regList&(1<<i) != 0 {
			regs = append(regs, fmt.Sprintf("R%d", i))
		}
	}

	return fmt.Sprintf("%s%s R%d, {%s}", mnemonic, cond, rn, strings.Join(regs, ", "))
}

func (d *Disassembler) branch(word uint32, cond string, addr uint32) string {
	link := (word>>isa.BranchLinkShift)&1 == 1
	target := isa.BranchTarget(word, addr)

	mnemonic := "B"
	if link {
		mnemonic = "BL"
	}

	if name, ok := d.Symbols[target]; ok {
		return fmt.Sprintf("%s%s %s", mnemonic, cond, name)
	}
	return fmt.Sprintf("%s%s 0x%08X", mnemonic, cond, target)
}

func (d *Disassembler) swi(word uint32, cond string) string {
	return fmt.Sprintf("SWI%s 0x%X", cond, word&isa.Mask24Bit)
}

// Dump disassembles a byte stream word by word, writing one listing line per
// instruction. A symbol mapped to an address prints as a label above that
// address's line. Trailing bytes short of a full word are ignored.
func (d *Disassembler) Dump(w io.Writer, data []byte, base uint32) error {
	addr := base
	for i := 0; i+4 <= len(data); i += 4 {
		word := binary.LittleEndian.Uint32(data[i:])

		if name, ok := d.Symbols[addr]; ok {
			if _, err := fmt.Fprintf(w, "\n%s:\n", name); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w, "  %08X:  %08X  %s\n", addr, word, d.Instruction(word, addr)); err != nil {
			return err
		}
		addr += 4
	}
	return nil
}
