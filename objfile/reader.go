package objfile

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Reader turns a byte stream into an object unit.
type Reader interface {
	ReadObject(r io.Reader, filename string) (*Object, error)
}

// TextReader reads the line-based object container. One directive per
// non-empty line; '#' begins a comment; fields are whitespace-separated.
type TextReader struct{}

// ReadObject parses an object file from r. The filename is recorded as the
// object's origin and used in diagnostics.
func (TextReader) ReadObject(r io.Reader, filename string) (*Object, error) {
	obj := NewObject(filename)

	var currentSection *Section

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "SECTION":
			if len(fields) < 2 {
				return nil, recordErr(filename, lineNo, "SECTION requires a name")
			}
			currentSection = obj.AddSection(fields[1])

		case "DATA":
			if len(fields) < 2 {
				return nil, recordErr(filename, lineNo, "DATA requires hex bytes")
			}
			if currentSection == nil {
				return nil, recordErr(filename, lineNo, "DATA outside any SECTION")
			}
			data, err := hex.DecodeString(fields[1])
			if err != nil {
				return nil, recordErr(filename, lineNo, "bad hex data: "+err.Error())
			}
			currentSection.Data = append(currentSection.Data, data...)

		case "SYMBOL":
			// SYMBOL <name> <value> <section> [GLOBAL]
			if len(fields) < 4 {
				return nil, recordErr(filename, lineNo, "SYMBOL requires name, value and section")
			}
			value, err := parseUint32(fields[2])
			if err != nil {
				return nil, recordErr(filename, lineNo, "bad symbol value: "+err.Error())
			}
			sym := &Symbol{
				Name:    fields[1],
				Value:   value,
				Section: fields[3],
				Global:  len(fields) > 4 && fields[4] == "GLOBAL",
			}
			if err := obj.AddSymbol(sym); err != nil {
				return nil, recordErr(filename, lineNo, err.Error())
			}

		case "RELOC":
			// RELOC <offset> <symbol> <kind> <section>
			if len(fields) < 5 {
				return nil, recordErr(filename, lineNo, "RELOC requires offset, symbol, kind and section")
			}
			offset, err := parseUint32(fields[1])
			if err != nil {
				return nil, recordErr(filename, lineNo, "bad reloc offset: "+err.Error())
			}
			kind, err := ParseRelocKind(fields[3])
			if err != nil {
				return nil, recordErr(filename, lineNo, err.Error())
			}
			obj.Relocs = append(obj.Relocs, &Relocation{
				Section: fields[4],
				Offset:  offset,
				Symbol:  fields[2],
				Kind:    kind,
			})

		default:
			return nil, recordErr(filename, lineNo, "unknown directive: "+fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	return obj, nil
}

// parseUint32 accepts the prefixed-base convention: 0x hex, 0b binary,
// leading-zero octal, otherwise decimal.
func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

func recordErr(filename string, line int, msg string) error {
	return fmt.Errorf("%s:%d: %s", filename, line, msg)
}
