// Package linker combines object units into a single executable image:
// sections are merged in input order, base addresses assigned, and
// relocations patched in place.
package linker

import (
	"encoding/binary"
	"fmt"

	"github.com/lookbusy1344/arm-toolchain/isa"
	"github.com/lookbusy1344/arm-toolchain/objfile"
)

// Layout holds the base address of each canonical section.
type Layout struct {
	Text uint32
	Data uint32
	BSS  uint32
}

// DefaultLayout is the conventional memory map.
func DefaultLayout() Layout {
	return Layout{
		Text: 0x00000000,
		Data: 0x00010000,
		BSS:  0x00020000,
	}
}

// DiagLevel separates warnings from errors. Neither aborts the link.
type DiagLevel int

const (
	DiagWarning DiagLevel = iota
	DiagError
)

// Diag is one linker diagnostic.
type Diag struct {
	Level   DiagLevel
	Message string
}

func (d Diag) String() string {
	if d.Level == DiagWarning {
		return "Warning: " + d.Message
	}
	return "Error: " + d.Message
}

// objectReloc pairs a relocation with its originating object, so local
// symbol lookups can use the file-qualified name.
type objectReloc struct {
	rel    *objfile.Relocation
	origin string
}

// Linker merges objects and resolves their cross-references. Objects are no
// longer referenced once Link has moved their contents into the merged
// sections.
type Linker struct {
	layout   Layout
	sections map[string]*objfile.Section
	order    []string
	globals  map[string]*objfile.Symbol
	relocs   []objectReloc
	objects  []*objfile.Object
	Diags    []Diag
}

// New creates a linker with the canonical sections pre-created, so the
// output stages see them even when empty.
func New(layout Layout) *Linker {
	l := &Linker{
		layout:   layout,
		sections: make(map[string]*objfile.Section),
		globals:  make(map[string]*objfile.Symbol),
	}
	for _, name := range []string{objfile.SectionText, objfile.SectionData, objfile.SectionBSS} {
		l.section(name)
	}
	return l
}

// AddObject queues an object unit for linking, in input order.
func (l *Linker) AddObject(obj *objfile.Object) {
	l.objects = append(l.objects, obj)
}

// Section returns a merged section by name, or nil.
func (l *Linker) Section(name string) *objfile.Section {
	return l.sections[name]
}

// Symbol looks up a resolved symbol: bare global name, or "file:name" for
// locals.
func (l *Linker) Symbol(name string) (*objfile.Symbol, bool) {
	sym, ok := l.globals[name]
	return sym, ok
}

// Link runs the merge, address assignment and relocation stages. Output is
// written separately; diagnostics accumulate in Diags.
func (l *Linker) Link() {
	l.merge()
	l.assignAddresses()
	l.applyRelocations()
	l.objects = nil
}

func (l *Linker) section(name string) *objfile.Section {
	if sec, ok := l.sections[name]; ok {
		return sec
	}
	sec := &objfile.Section{Name: name}
	l.sections[name] = sec
	l.order = append(l.order, name)
	return sec
}

// merge appends each object's sections to the merged image in input order.
// The pre-append length becomes the object's contribution offset, added to
// its symbol values and relocation offsets.
func (l *Linker) merge() {
	for _, obj := range l.objects {
		for _, name := range obj.SectionOrder {
			sec := obj.Sections[name]
			merged := l.section(name)

			contribution := merged.Size()
			merged.Data = append(merged.Data, sec.Data...)

			for _, symName := range obj.SymbolOrder {
				sym := obj.Symbols[symName]
				if sym.Section != name {
					continue
				}
				adjusted := &objfile.Symbol{
					Name:    sym.Name,
					Value:   sym.Value + contribution,
					Section: name,
					Global:  sym.Global,
				}
				if sym.Global {
					if _, dup := l.globals[sym.Name]; dup {
						l.warnf("duplicate global symbol %q", sym.Name)
					}
					l.globals[sym.Name] = adjusted
				} else {
					l.globals[localKey(obj.Filename, sym.Name)] = adjusted
				}
			}

			for _, rel := range obj.Relocs {
				if rel.Section == name {
					rel.Offset += contribution
				}
			}
		}

		for _, rel := range obj.Relocs {
			l.relocs = append(l.relocs, objectReloc{rel: rel, origin: obj.Filename})
		}
	}
}

// assignAddresses gives each canonical section its configured base and
// resolves every symbol to section base plus merged value.
func (l *Linker) assignAddresses() {
	bases := map[string]uint32{
		objfile.SectionText: l.layout.Text,
		objfile.SectionData: l.layout.Data,
		objfile.SectionBSS:  l.layout.BSS,
	}
	for name, base := range bases {
		if sec, ok := l.sections[name]; ok {
			sec.Base = base
		}
	}

	for _, sym := range l.globals {
		sec, ok := l.sections[sym.Section]
		if !ok {
			continue
		}
		sym.ResolvedAddr = sec.Base + sym.Value
		sym.Resolved = true
	}
}

// applyRelocations patches the merged sections in place. An unresolved
// target is reported and skipped; the link continues.
func (l *Linker) applyRelocations() {
	for _, or := range l.relocs {
		rel := or.rel

		sym, ok := l.globals[rel.Symbol]
		if !ok {
			sym, ok = l.globals[localKey(or.origin, rel.Symbol)]
		}
		if !ok || !sym.Resolved {
			l.errorf("undefined symbol %q", rel.Symbol)
			continue
		}

		sec, ok := l.sections[rel.Section]
		if !ok {
			continue
		}
		if rel.Offset+4 > sec.Size() {
			l.errorf("relocation at 0x%X overruns section %s (%d bytes)", rel.Offset, sec.Name, sec.Size())
			continue
		}

		switch rel.Kind {
		case objfile.RelocAbs32:
			binary.LittleEndian.PutUint32(sec.Data[rel.Offset:], sym.ResolvedAddr)

		case objfile.RelocRel24:
			place := sec.Base + rel.Offset
			offWords := (int64(sym.ResolvedAddr) - int64(place) - 8) >> 2

			word := binary.LittleEndian.Uint32(sec.Data[rel.Offset:])
			word = (word &^ uint32(isa.Mask24Bit)) | (uint32(offWords) & isa.Mask24Bit)
			binary.LittleEndian.PutUint32(sec.Data[rel.Offset:], word)

		default:
			l.errorf("unsupported reloc kind %d for symbol %q", int(rel.Kind), rel.Symbol)
		}
	}
}

func localKey(filename, name string) string {
	return filename + ":" + name
}

func (l *Linker) warnf(format string, args ...any) {
	l.Diags = append(l.Diags, Diag{Level: DiagWarning, Message: fmt.Sprintf(format, args...)})
}

func (l *Linker) errorf(format string, args ...any) {
	l.Diags = append(l.Diags, Diag{Level: DiagError, Message: fmt.Sprintf(format, args...)})
}
