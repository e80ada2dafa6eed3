package linker

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/lookbusy1344/arm-toolchain/objfile"
)

// hexRecordBytes is the payload size of an Intel HEX data record.
const hexRecordBytes = 16

// WriteBin writes the raw image: .text, a zero gap up to the .data base when
// the layout leaves one, then .data. .bss occupies no file space.
func (l *Linker) WriteBin(w io.Writer) error {
	text := l.sections[objfile.SectionText]
	if text != nil {
		if _, err := w.Write(text.Data); err != nil {
			return err
		}
	}

	data := l.sections[objfile.SectionData]
	if data == nil || data.Size() == 0 {
		return nil
	}

	if text != nil {
		textEnd := text.Base + text.Size()
		if data.Base > textEnd {
			if _, err := w.Write(make([]byte, data.Base-textEnd)); err != nil {
				return err
			}
		}
	}

	_, err := w.Write(data.Data)
	return err
}

// WriteHex writes the image as classic Intel HEX: 16-byte type-00 records
// with 16-bit addresses, then the EOF record. Bases above 0xFFFF cannot be
// represented without type-04 extended records and produce a warning.
func (l *Linker) WriteHex(w io.Writer) error {
	for _, name := range []string{objfile.SectionText, objfile.SectionData} {
		sec := l.sections[name]
		if sec == nil || sec.Size() == 0 {
			continue
		}
		if sec.Base > 0xFFFF {
			l.warnf("section %s base 0x%X exceeds 16-bit HEX addressing", name, sec.Base)
		}
		for i := uint32(0); i < sec.Size(); i += hexRecordBytes {
			end := i + hexRecordBytes
			if end > sec.Size() {
				end = sec.Size()
			}
			if _, err := fmt.Fprintln(w, hexRecord(sec.Base+i, sec.Data[i:end])); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintln(w, ":00000001FF")
	return err
}

// hexRecord builds one type-00 data record. The checksum is the
// two's-complement of the byte sum over count, address, type and payload.
func hexRecord(addr uint32, data []byte) string {
	count := byte(len(data))
	addrHi := byte(addr >> 8)
	addrLo := byte(addr)

	var sb strings.Builder
	fmt.Fprintf(&sb, ":%02X%02X%02X00", count, addrHi, addrLo)

	checksum := uint32(count) + uint32(addrHi) + uint32(addrLo)
	for _, b := range data {
		fmt.Fprintf(&sb, "%02X", b)
		checksum += uint32(b)
	}

	fmt.Fprintf(&sb, "%02X", byte(-checksum))
	return sb.String()
}

// MapListing writes a link map: each merged section with its base and size,
// then the resolved symbols in address order.
func (l *Linker) MapListing(w io.Writer) error {
	for _, name := range l.order {
		sec := l.sections[name]
		if _, err := fmt.Fprintf(w, "%-8s 0x%08X %6d bytes\n", sec.Name, sec.Base, sec.Size()); err != nil {
			return err
		}
	}

	syms := make([]*objfile.Symbol, 0, len(l.globals))
	for _, sym := range l.globals {
		if sym.Resolved {
			syms = append(syms, sym)
		}
	}
	sort.Slice(syms, func(i, j int) bool {
		if syms[i].ResolvedAddr != syms[j].ResolvedAddr {
			return syms[i].ResolvedAddr < syms[j].ResolvedAddr
		}
		return syms[i].Name < syms[j].Name
	})

	for _, sym := range syms {
		visibility := "local"
		if sym.Global {
			visibility = "global"
		}
		if _, err := fmt.Fprintf(w, "0x%08X %-20s %s\n", sym.ResolvedAddr, sym.Name, visibility); err != nil {
			return err
		}
	}
	return nil
}

// SymbolAddresses returns the resolved global symbols as an address-to-name
// map for the disassembler and the viewer.
func (l *Linker) SymbolAddresses() map[uint32]string {
	out := make(map[uint32]string)
	for key, sym := range l.globals {
		if sym.Resolved && !strings.Contains(key, ":") {
			out[sym.ResolvedAddr] = sym.Name
		}
	}
	return out
}
