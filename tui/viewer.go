// Package tui provides an interactive, read-only browser for linked images:
// a disassembly pane alongside the symbol map, with goto-address navigation.
package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lookbusy1344/arm-toolchain/config"
	"github.com/lookbusy1344/arm-toolchain/disasm"
)

// Viewer is the text user interface for browsing a disassembled image
type Viewer struct {
	App    *tview.Application
	Layout *tview.Flex

	DisassemblyView *tview.TextView
	SymbolView      *tview.TextView
	StatusBar       *tview.TextView
	GotoInput       *tview.InputField

	data    []byte
	base    uint32
	dis     *disasm.Disassembler
	symbols map[uint32]string
}

// NewViewer creates a viewer over a loaded image
func NewViewer(data []byte, base uint32, symbols map[uint32]string, cfg *config.Config) *Viewer {
	v := &Viewer{
		App:     tview.NewApplication(),
		data:    data,
		base:    base,
		dis:     disasm.New(symbols),
		symbols: symbols,
	}

	v.initializeViews()
	v.buildLayout(cfg)
	v.setupKeyBindings()
	v.render()

	return v
}

// initializeViews creates the view panels
func (v *Viewer) initializeViews() {
	v.DisassemblyView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	v.DisassemblyView.SetBorder(true).SetTitle(" Disassembly ")

	v.SymbolView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	v.SymbolView.SetBorder(true).SetTitle(" Symbols ")

	v.StatusBar = tview.NewTextView().
		SetDynamicColors(true)
	v.StatusBar.SetText(fmt.Sprintf(" %d bytes at 0x%08X  |  g: goto  q: quit", len(v.data), v.base))

	v.GotoInput = tview.NewInputField().
		SetLabel("goto address: ").
		SetFieldWidth(12)
	v.GotoInput.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			v.gotoAddress(v.GotoInput.GetText())
		}
		v.GotoInput.SetText("")
		v.App.SetFocus(v.DisassemblyView)
	})
}

// buildLayout arranges the panels
func (v *Viewer) buildLayout(cfg *config.Config) {
	content := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(v.DisassemblyView, 0, 3, true)

	if cfg == nil || cfg.Viewer.ShowSymbols {
		content.AddItem(v.SymbolView, 0, 1, false)
	}

	v.Layout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(content, 0, 1, true).
		AddItem(v.StatusBar, 1, 0, false).
		AddItem(v.GotoInput, 1, 0, false)
}

// setupKeyBindings installs global keys: q/Esc quit, g opens goto
func (v *Viewer) setupKeyBindings() {
	v.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if v.App.GetFocus() == v.GotoInput {
			return event
		}
		switch {
		case event.Key() == tcell.KeyEscape, event.Rune() == 'q':
			v.App.Stop()
			return nil
		case event.Rune() == 'g':
			v.App.SetFocus(v.GotoInput)
			return nil
		}
		return event
	})
}

// render fills the panes from the image
func (v *Viewer) render() {
	var listing strings.Builder
	_ = v.dis.Dump(&listing, v.data, v.base)
	v.DisassemblyView.SetText(listing.String())

	addrs := make([]uint32, 0, len(v.symbols))
	for addr := range v.symbols {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

	var syms strings.Builder
	for _, addr := range addrs {
		fmt.Fprintf(&syms, "0x%08X  %s\n", addr, v.symbols[addr])
	}
	v.SymbolView.SetText(syms.String())
}

// gotoAddress scrolls the disassembly pane to the line containing addr
func (v *Viewer) gotoAddress(text string) {
	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "0x"))
	if text == "" {
		return
	}
	addr, err := strconv.ParseUint(text, 16, 32)
	if err != nil {
		v.StatusBar.SetText(fmt.Sprintf(" bad address %q", text))
		return
	}
	if uint32(addr) < v.base || uint32(addr) >= v.base+uint32(len(v.data)) {
		v.StatusBar.SetText(fmt.Sprintf(" 0x%08X outside image", addr))
		return
	}

	// One listing line per word, plus two lines for each symbol label at or
	// before the target.
	line := int(uint32(addr)-v.base) / 4
	for symAddr := range v.symbols {
		if symAddr >= v.base && symAddr <= uint32(addr) {
			line += 2
		}
	}
	v.DisassemblyView.ScrollTo(line, 0)
	v.StatusBar.SetText(fmt.Sprintf(" at 0x%08X", addr))
}

// Run starts the interface and blocks until quit
func (v *Viewer) Run() error {
	return v.App.SetRoot(v.Layout, true).EnableMouse(false).Run()
}
