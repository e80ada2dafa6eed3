package parser

import (
	"path/filepath"
	"strings"
)

// Instruction represents one instruction-bearing source line after pass 1.
type Instruction struct {
	Label     string
	Mnemonic  string // Base mnemonic, uppercased
	Condition string // EQ, NE, CS, etc. Empty means AL.
	SetFlags  bool   // S bit
	Operands  []string
	Pos       Position
	RawLine   string
	Address   uint32 // Address assigned in pass 1
}

// Program is the result of pass 1: the instruction list with assigned
// addresses and the populated symbol table.
type Program struct {
	Filename    string
	Lines       []*Instruction
	SymbolTable *SymbolTable
	Errors      *ErrorList
}

// Parse runs pass 1 over the source: strip comments, extract labels, record
// instruction-bearing lines and assign addresses. Labels map to the address
// before their line's instruction is counted. Directive lines contribute no
// address; the one directive inspected is ".global", which marks symbol
// visibility for object emission.
func Parse(src, filename string) *Program {
	prog := &Program{
		Filename:    filename,
		SymbolTable: NewSymbolTable(),
		Errors:      &ErrorList{},
	}

	var globals []struct {
		name string
		pos  Position
	}

	address := uint32(0)
	for i, raw := range strings.Split(src, "\n") {
		pos := Position{Filename: filename, Line: i + 1}

		label, rest, _ := SplitLine(raw)

		// Directive lines occupy no address. A bare ".global name" is
		// recorded; everything else dotted is skipped.
		if label == "" && strings.HasPrefix(rest, ".") {
			fields := SplitFields(rest)
			if strings.EqualFold(fields[0], ".global") && len(fields) > 1 {
				globals = append(globals, struct {
					name string
					pos  Position
				}{fields[1], pos})
			}
			continue
		}

		if label != "" {
			if err := prog.SymbolTable.Define(label, address, pos); err != nil {
				prog.Errors.AddError(NewErrorWithContext(pos, ErrorDuplicateLabel, err.Error(), strings.TrimSpace(raw)))
			}
		}

		if rest == "" {
			continue
		}

		fields := SplitFields(rest)
		base, cond, setFlags := DecomposeMnemonic(fields[0])

		prog.Lines = append(prog.Lines, &Instruction{
			Label:     label,
			Mnemonic:  base,
			Condition: cond,
			SetFlags:  setFlags,
			Operands:  fields[1:],
			Pos:       pos,
			RawLine:   strings.TrimSpace(raw),
			Address:   address,
		})
		address += 4
	}

	for _, g := range globals {
		if !prog.SymbolTable.MarkGlobal(g.name) {
			prog.Errors.AddWarning(&Warning{
				Pos:     g.pos,
				Message: ".global names undefined label " + g.name,
			})
		}
	}

	return prog
}

// BaseName returns the object origin name for a source path: the file name
// without directories.
func BaseName(path string) string {
	return filepath.Base(path)
}
