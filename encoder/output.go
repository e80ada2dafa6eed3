package encoder

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/lookbusy1344/arm-toolchain/objfile"
	"github.com/lookbusy1344/arm-toolchain/parser"
)

// WriteImage writes the encoded words to w as a raw little-endian stream,
// with no header.
func WriteImage(w io.Writer, words []uint32) error {
	buf := make([]byte, 4)
	for _, word := range words {
		binary.LittleEndian.PutUint32(buf, word)
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

// WordBytes flattens the word stream into its on-disk little-endian form.
func WordBytes(words []uint32) []byte {
	out := make([]byte, 0, len(words)*4)
	buf := make([]byte, 4)
	for _, word := range words {
		binary.LittleEndian.PutUint32(buf, word)
		out = append(out, buf...)
	}
	return out
}

// SymbolDump renders the symbol table in definition order, one symbol per
// line, for the -dump-symbols flag.
func SymbolDump(prog *parser.Program) string {
	var sb strings.Builder
	for _, sym := range prog.SymbolTable.All() {
		visibility := "local"
		if sym.Global {
			visibility = "global"
		}
		fmt.Fprintf(&sb, "%-24s 0x%08X  %s\n", sym.Name, sym.Value, visibility)
	}
	return sb.String()
}

// BuildObject packages the assembled words as a linkable object unit: one
// .text section holding the image and one symbol per label. Visibility
// follows the source's .global markers. The assembler records no
// relocations; cross-object references are authored as explicit RELOC
// entries in the object file.
func BuildObject(prog *parser.Program, words []uint32) *objfile.Object {
	obj := objfile.NewObject(parser.BaseName(prog.Filename))

	text := obj.AddSection(objfile.SectionText)
	text.Data = WordBytes(words)

	for _, sym := range prog.SymbolTable.All() {
		// Symbol names are unique in the table, so AddSymbol cannot fail.
		_ = obj.AddSymbol(&objfile.Symbol{
			Name:    sym.Name,
			Value:   sym.Value,
			Section: objfile.SectionText,
			Global:  sym.Global,
		})
	}

	return obj
}
