package disasm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lookbusy1344/arm-toolchain/disasm"
	"github.com/lookbusy1344/arm-toolchain/encoder"
	"github.com/lookbusy1344/arm-toolchain/parser"
)

func TestInstructionFormats(t *testing.T) {
	d := disasm.New(nil)

	tests := []struct {
		name     string
		word     uint32
		addr     uint32
		expected string
	}{
		{"MOV immediate", 0xE3A00005, 0, "MOV R0, #0x5"},
		{"ADD register", 0xE0821003, 0, "ADD R1, R2, R3"},
		{"CMP keeps S implicit", 0xE3540001, 0, "CMP R4, #0x1"},
		{"MOVS shows S", 0xE1B02003, 0, "MOVS R2, R3"},
		{"rotated immediate", 0xE3A001FF, 0, "MOV R0, #0xC000003F"},
		{"shifted register", 0xE1A01102, 0, "MOV R1, R2, LSL #2"},
		{"conditional", 0x03A00000, 0, "MOVEQ R0, #0x0"},
		{"NV condition", 0xF3A00005, 0, "MOVNV R0, #0x5"},
		{"MUL", 0xE0010293, 0, "MUL R1, R3, R2"},
		{"LDR", 0xE5910008, 0, "LDR R0, [R1, #0x8]"},
		{"STRB", 0xE5C32000, 0, "STRB R2, [R3, #0x0]"},
		{"LDM", 0xE81D0003, 0, "LDM R13, {R0, R1}"},
		{"STM", 0xE80D4006, 0, "STM R13, {R1, R2, R14}"},
		{"B backward", 0xEAFFFFFD, 4, "B 0x00000000"},
		{"BL forward", 0xEB000001, 0, "BL 0x0000000C"},
		{"BNE", 0x1A000000, 0, "BNE 0x00000008"},
		{"SWI", 0xEF000010, 0, "SWI 0x10"},
		{"unknown", 0xEC000000, 0, "UNKNOWN 0xEC000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Instruction(tt.word, tt.addr); got != tt.expected {
				t.Errorf("Instruction(0x%08X) = %q, want %q", tt.word, got, tt.expected)
			}
		})
	}
}

func TestBranchUsesSymbolMap(t *testing.T) {
	d := disasm.New(map[uint32]string{0: "loop"})
	if got := d.Instruction(0xEAFFFFFD, 4); got != "B loop" {
		t.Errorf("got %q, want B loop", got)
	}
	// Unmapped targets fall back to the hex form
	if got := d.Instruction(0xEAFFFFFD, 8); got != "B 0x00000004" {
		t.Errorf("got %q, want B 0x00000004", got)
	}
}

func TestDumpListing(t *testing.T) {
	d := disasm.New(map[uint32]string{4: "loop"})
	data := []byte{
		0x00, 0x00, 0xA0, 0xE3, // MOV R0, #0
		0x01, 0x00, 0x80, 0xE2, // ADD R0, R0, #1
	}

	var buf bytes.Buffer
	if err := d.Dump(&buf, data, 0); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if !strings.Contains(out, "loop:") {
		t.Errorf("symbol label missing:\n%s", out)
	}
	if !strings.Contains(out, "00000000:  E3A00000  MOV R0, #0x0") {
		t.Errorf("first line wrong:\n%s", out)
	}
	if !strings.Contains(out, "00000004:  E2800001  ADD R0, R0, #0x1") {
		t.Errorf("second line wrong:\n%s", out)
	}

	labelIdx := strings.Index(out, "loop:")
	lineIdx := strings.Index(out, "00000004:")
	if labelIdx > lineIdx {
		t.Error("label must print above its address")
	}
}

func TestDumpIgnoresTrailingBytes(t *testing.T) {
	d := disasm.New(nil)
	var buf bytes.Buffer
	if err := d.Dump(&buf, []byte{1, 2, 3, 4, 5, 6}, 0); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), "\n"); got != 1 {
		t.Errorf("got %d lines, want 1", got)
	}
}

func TestLoadSymbolFile(t *testing.T) {
	src := "0000 start\n\n0x0008 loop extra-ignored\n00000010 done\n"
	symbols, err := disasm.LoadSymbolFile(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if symbols[0] != "start" || symbols[8] != "loop" || symbols[0x10] != "done" {
		t.Errorf("symbols wrong: %v", symbols)
	}

	if _, err := disasm.LoadSymbolFile(strings.NewReader("zz bad\n")); err == nil {
		t.Error("bad address must error")
	}
}

// TestRoundTrip re-assembles the disassembly of every supported form and
// checks the word survives bit for bit
func TestRoundTrip(t *testing.T) {
	sources := []string{
		"MOV R0, #5",
		"MOVS R2, R3",
		"MVN R3, R9",
		"ADD R1, R2, R3",
		"ADDS R1, R1, #1",
		"SUB R0, R1, #0xFF",
		"RSB R0, R1, #0",
		"ADC R2, R3, R4",
		"SBC R2, R3, R4",
		"RSC R2, R3, R4",
		"AND R1, R1, R2",
		"ORR R4, R5, #2",
		"EOR R4, R5, R6",
		"BIC R0, R0, #0xFF",
		"TST R0, #1",
		"TEQ R1, R2",
		"CMP R4, #1",
		"CMN R2, #0x10",
		"MOVEQ R0, #0",
		"ADDSNE R1, R1, #1",
		"LDR R0, [R1, #8]",
		"STR R2, [R3]",
		"LDRB R4, [R5, #0xFF]",
		"STRB R2, [R3]",
		"B 0x8",
		"BL 0x100",
		"BNE 0x8",
		"BLEQ 0x4",
	}

	d := disasm.New(nil)
	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			word := encodeLine(t, src)
			text := d.Instruction(word, 0)
			again := encodeLine(t, text)
			if again != word {
				t.Errorf("%q -> 0x%08X -> %q -> 0x%08X", src, word, text, again)
			}
		})
	}
}

// encodeLine assembles a single line at address 0
func encodeLine(t *testing.T, line string) uint32 {
	t.Helper()
	prog := parser.Parse(line+"\n", "rt.s")
	if prog.Errors.HasErrors() {
		t.Fatalf("parse %q: %s", line, prog.Errors.Error())
	}
	words, errs := encoder.NewEncoder(prog.SymbolTable).EncodeProgram(prog)
	if errs.HasErrors() {
		t.Fatalf("encode %q: %s", line, errs.Error())
	}
	if len(words) != 1 {
		t.Fatalf("%q produced %d words", line, len(words))
	}
	return words[0]
}
