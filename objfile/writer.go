package objfile

import (
	"encoding/hex"
	"fmt"
	"io"
)

// dataRowBytes is how many bytes each DATA record carries.
const dataRowBytes = 16

// Writer renders an object unit to a byte stream.
type Writer interface {
	WriteObject(w io.Writer, obj *Object) error
}

// TextWriter emits the line-based object container read by TextReader.
type TextWriter struct{}

// WriteObject writes obj to w. Sections and symbols come out in their
// recorded order so output is stable.
func (TextWriter) WriteObject(w io.Writer, obj *Object) error {
	if _, err := fmt.Fprintf(w, "# object %s\n", obj.Filename); err != nil {
		return err
	}

	for _, name := range obj.SectionOrder {
		sec := obj.Sections[name]
		if _, err := fmt.Fprintf(w, "SECTION %s\n", sec.Name); err != nil {
			return err
		}
		for i := 0; i < len(sec.Data); i += dataRowBytes {
			end := i + dataRowBytes
			if end > len(sec.Data) {
				end = len(sec.Data)
			}
			if _, err := fmt.Fprintf(w, "DATA %s\n", hex.EncodeToString(sec.Data[i:end])); err != nil {
				return err
			}
		}
	}

	for _, name := range obj.SymbolOrder {
		sym := obj.Symbols[name]
		global := ""
		if sym.Global {
			global = " GLOBAL"
		}
		if _, err := fmt.Fprintf(w, "SYMBOL %s 0x%X %s%s\n", sym.Name, sym.Value, sym.Section, global); err != nil {
			return err
		}
	}

	for _, rel := range obj.Relocs {
		if _, err := fmt.Fprintf(w, "RELOC 0x%X %s %s %s\n", rel.Offset, rel.Symbol, rel.Kind, rel.Section); err != nil {
			return err
		}
	}

	return nil
}
