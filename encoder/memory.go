package encoder

import (
	"fmt"
	"strings"

	"github.com/lookbusy1344/arm-toolchain/isa"
	"github.com/lookbusy1344/arm-toolchain/parser"
)

// encodeMemory encodes LDR, STR, LDRB and STRB. The address operand is
// [Rn] or [Rn, #imm]: immediate pre-indexed with a positive offset and no
// writeback (P=1, U=1, W=0, I=0).
func (e *Encoder) encodeMemory(inst *parser.Instruction, cond isa.Cond) (uint32, error) {
	if len(inst.Operands) < 2 {
		return 0, NewEncodingError(inst, fmt.Sprintf("%s requires 2 operands, got %d", inst.Mnemonic, len(inst.Operands)))
	}

	load := inst.Mnemonic == "LDR" || inst.Mnemonic == "LDRB"
	byteXfer := strings.HasSuffix(inst.Mnemonic, "B")

	rd, err := parser.ParseRegister(inst.Operands[0])
	if err != nil {
		return 0, WrapEncodingError(inst, err)
	}

	// Field splitting ate the commas inside the brackets; rejoin the pieces
	// before taking the bracket interior apart.
	addrMode := strings.Join(inst.Operands[1:], ",")
	if !strings.HasPrefix(addrMode, "[") || !strings.HasSuffix(addrMode, "]") {
		return 0, NewEncodingError(inst, fmt.Sprintf("malformed address operand: %s", addrMode))
	}

	interior := strings.TrimSuffix(strings.TrimPrefix(addrMode, "["), "]")
	parts := strings.Split(interior, ",")

	rn, err := parser.ParseRegister(parts[0])
	if err != nil {
		return 0, WrapEncodingError(inst, err)
	}

	var offset uint32
	if len(parts) > 1 {
		offset, err = parser.ParseImmediate(parts[1])
		if err != nil {
			return 0, WrapEncodingError(inst, err)
		}
	}

	word, err := isa.EncodeLoadStore(cond, true, true, byteXfer, false, load, rn, rd, offset)
	return word, WrapEncodingError(inst, err)
}
