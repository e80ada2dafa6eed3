package encoder

import (
	"fmt"
	"strings"

	"github.com/lookbusy1344/arm-toolchain/isa"
	"github.com/lookbusy1344/arm-toolchain/parser"
)

// encodeBranch encodes B and BL. The operand is a label or a bare numeric
// address. A label missing from the table yields a zero offset and a warning;
// the assembler does not emit a relocation for it.
func (e *Encoder) encodeBranch(inst *parser.Instruction, cond isa.Cond, address uint32) (uint32, error) {
	if len(inst.Operands) < 1 {
		return 0, NewEncodingError(inst, fmt.Sprintf("%s requires 1 operand, got %d", inst.Mnemonic, len(inst.Operands)))
	}

	link := inst.Mnemonic == "BL"
	target := strings.TrimSpace(inst.Operands[0])

	var targetAddr uint32
	if sym, ok := e.symbols.Lookup(target); ok {
		targetAddr = sym.Value
	} else if parser.LooksLikeImmediate(target) {
		addr, err := parser.ParseImmediate(target)
		if err != nil {
			return 0, WrapEncodingError(inst, err)
		}
		targetAddr = addr
	} else {
		e.errors.AddWarning(&parser.Warning{
			Pos:     inst.Pos,
			Message: fmt.Sprintf("undefined label %q, branch offset left zero", target),
		})
		return isa.EncodeBranch(cond, link, 0), nil
	}

	offset24, err := isa.BranchOffsetWords(targetAddr, address)
	if err != nil {
		return 0, WrapEncodingError(inst, err)
	}
	return isa.EncodeBranch(cond, link, offset24), nil
}
