package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lookbusy1344/arm-toolchain/isa"
)

// Operand scanning failures, discriminable with errors.Is.
var (
	ErrInvalidRegister  = errors.New("invalid register")
	ErrInvalidImmediate = errors.New("invalid immediate value")
)

// baseMnemonics is the full set of base mnemonics the assembler recognizes.
// LDRB/STRB carry their B as part of the base, so it never collides with a
// condition suffix.
var baseMnemonics = map[string]bool{
	"AND": true, "EOR": true, "SUB": true, "RSB": true,
	"ADD": true, "ADC": true, "SBC": true, "RSC": true,
	"TST": true, "TEQ": true, "CMP": true, "CMN": true,
	"ORR": true, "MOV": true, "BIC": true, "MVN": true,
	"B": true, "BL": true,
	"LDR": true, "STR": true, "LDRB": true, "STRB": true,
}

// condSuffixOrder is the fixed matching order for two-character condition
// suffixes (the 14 non-AL names).
var condSuffixOrder = []string{
	"EQ", "NE", "CS", "CC", "MI", "PL", "VS", "VC",
	"HI", "LS", "GE", "LT", "GT", "LE",
}

// SplitLine separates a raw source line into its label, instruction remainder
// and comment. The comment begins at ';' and runs to end of line. The label,
// when present, is an identifier terminated by ':'.
func SplitLine(raw string) (label, rest, comment string) {
	line := raw
	if idx := strings.IndexByte(line, ';'); idx >= 0 {
		comment = line[idx+1:]
		line = line[:idx]
	}
	line = strings.TrimSpace(line)

	if idx := strings.IndexByte(line, ':'); idx >= 0 {
		label = strings.TrimSpace(line[:idx])
		line = strings.TrimSpace(line[idx+1:])
	}
	return label, line, comment
}

// SplitFields splits the instruction part of a line on any run of commas and
// whitespace. Bracketed address operands come back in pieces; the memory
// encoder reassembles them.
func SplitFields(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

// DecomposeMnemonic splits a raw mnemonic into base, condition suffix and
// S flag. The condition suffix is matched against the 14 non-AL names in
// fixed order; a match only stands when the remainder (after stripping an
// optional trailing S) is a recognized base mnemonic, so MOVS decomposes as
// MOV+S rather than MO+VS.
func DecomposeMnemonic(raw string) (base, cond string, setFlags bool) {
	m := strings.ToUpper(strings.TrimSpace(raw))

	for _, suffix := range condSuffixOrder {
		if !strings.HasSuffix(m, suffix) || len(m) <= len(suffix) {
			continue
		}
		remainder := m[:len(m)-len(suffix)]
		if baseMnemonics[remainder] {
			return remainder, suffix, false
		}
		if strings.HasSuffix(remainder, "S") && baseMnemonics[remainder[:len(remainder)-1]] {
			return remainder[:len(remainder)-1], suffix, true
		}
	}

	// The S flag may also trail the condition, the order the disassembler
	// prints: OP{cond}S.
	if strings.HasSuffix(m, "S") && len(m) > 1 {
		stripped := m[:len(m)-1]
		if baseMnemonics[stripped] {
			return stripped, "", true
		}
		for _, suffix := range condSuffixOrder {
			if !strings.HasSuffix(stripped, suffix) || len(stripped) <= len(suffix) {
				continue
			}
			remainder := stripped[:len(stripped)-len(suffix)]
			if baseMnemonics[remainder] {
				return remainder, suffix, true
			}
		}
	}
	return m, "", false
}

// ParseRegister parses a register name to its index. R0-R15, SP, LR and PC
// are accepted case-insensitively.
func ParseRegister(s string) (uint32, error) {
	reg := strings.ToUpper(strings.TrimSpace(s))

	switch reg {
	case "SP":
		return 13, nil
	case "LR":
		return 14, nil
	case "PC":
		return 15, nil
	}

	if strings.HasPrefix(reg, "R") && len(reg) > 1 {
		num, err := strconv.ParseUint(reg[1:], 10, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrInvalidRegister, s)
		}
		if num > 15 {
			return 0, fmt.Errorf("%w: %s", isa.ErrRegisterOutOfRange, s)
		}
		return uint32(num), nil
	}

	return 0, fmt.Errorf("%w: %s", ErrInvalidRegister, s)
}

// ParseImmediate parses an immediate literal: optional leading '#', then
// hex (0x), binary (0b) or decimal. Negative literals are not supported.
func ParseImmediate(s string) (uint32, error) {
	imm := strings.TrimSpace(s)
	imm = strings.TrimPrefix(imm, "#")

	if imm == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidImmediate)
	}

	var value uint64
	var err error

	switch {
	case strings.HasPrefix(imm, "0x"), strings.HasPrefix(imm, "0X"):
		value, err = strconv.ParseUint(imm[2:], 16, 32)
	case strings.HasPrefix(imm, "0b"), strings.HasPrefix(imm, "0B"):
		value, err = strconv.ParseUint(imm[2:], 2, 32)
	default:
		value, err = strconv.ParseUint(imm, 10, 32)
	}

	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidImmediate, s)
	}
	return uint32(value), nil
}

// LooksLikeImmediate reports whether an operand should be parsed as an
// immediate rather than a register: it starts with '#' or a digit.
func LooksLikeImmediate(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return s[0] == '#' || (s[0] >= '0' && s[0] <= '9')
}
