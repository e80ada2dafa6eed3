package isa_test

import (
	"testing"

	"github.com/lookbusy1344/arm-toolchain/isa"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		word     uint32
		expected isa.Class
	}{
		{"MOV immediate", 0xE3A00005, isa.ClassDataProcessing},
		{"ADD register", 0xE0821003, isa.ClassDataProcessing},
		{"MUL", 0xE0010293, isa.ClassMultiply},
		{"LDR", 0xE5910008, isa.ClassLoadStore},
		{"STRB", 0xE5C32000, isa.ClassLoadStore},
		{"LDM", 0xE81D0003, isa.ClassBlockTransfer},
		{"B backward", 0xEAFFFFFD, isa.ClassBranch},
		{"BL", 0xEB000000, isa.ClassBranch},
		{"SWI", 0xEF000010, isa.ClassSoftwareInterrupt},
		{"coprocessor space", 0xEC000000, isa.ClassUnknown},
		{"all ones", 0xFFFFFFFF, isa.ClassSoftwareInterrupt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isa.Classify(tt.word); got != tt.expected {
				t.Errorf("Classify(0x%08X) = %v, want %v", tt.word, got, tt.expected)
			}
		})
	}
}

// TestClassifyMultiplyBeforeDP pins the table ordering: the multiply bit
// pattern lives inside the data processing space and must win
func TestClassifyMultiplyBeforeDP(t *testing.T) {
	// Same word with bits 7-4 = 1001 is a multiply, anything else is DP
	if got := isa.Classify(0xE0010293); got != isa.ClassMultiply {
		t.Errorf("got %v, want multiply", got)
	}
	if got := isa.Classify(0xE0010283); got != isa.ClassDataProcessing {
		t.Errorf("got %v, want data processing", got)
	}
}

func TestCondOf(t *testing.T) {
	if got := isa.CondOf(0xE3A00005); got != isa.CondAL {
		t.Errorf("got %v, want AL", got)
	}
	if got := isa.CondOf(0x13A00005); got != isa.CondNE {
		t.Errorf("got %v, want NE", got)
	}
}

func TestCondNames(t *testing.T) {
	if isa.CondAL.Name() != "" {
		t.Errorf("AL should render empty, got %q", isa.CondAL.Name())
	}
	if isa.CondNV.Name() != "NV" {
		t.Errorf("NV should render NV, got %q", isa.CondNV.Name())
	}
	if isa.CondLT.Name() != "LT" {
		t.Errorf("LT should render LT, got %q", isa.CondLT.Name())
	}
}

func TestParseCond(t *testing.T) {
	tests := []struct {
		in       string
		expected isa.Cond
		ok       bool
	}{
		{"", isa.CondAL, true},
		{"AL", isa.CondAL, true},
		{"EQ", isa.CondEQ, true},
		{"le", isa.CondLE, true},
		{"XX", isa.CondAL, false},
	}
	for _, tt := range tests {
		got, ok := isa.ParseCond(tt.in)
		if got != tt.expected || ok != tt.ok {
			t.Errorf("ParseCond(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.expected, tt.ok)
		}
	}
}

func TestRotateRight(t *testing.T) {
	tests := []struct {
		value, amount, expected uint32
	}{
		{0xFF, 0, 0xFF},
		{0xFF, 8, 0xFF000000},
		{0x1, 1, 0x80000000},
		{0xF000000F, 4, 0xFF000000},
		{0xABCD, 32, 0xABCD},
	}
	for _, tt := range tests {
		if got := isa.RotateRight(tt.value, tt.amount); got != tt.expected {
			t.Errorf("RotateRight(0x%X, %d) = 0x%X, want 0x%X", tt.value, tt.amount, got, tt.expected)
		}
	}
}

func TestSignExtend24(t *testing.T) {
	tests := []struct {
		value    uint32
		expected int32
	}{
		{0x000000, 0},
		{0x000001, 1},
		{0x7FFFFF, 0x7FFFFF},
		{0x800000, -0x800000},
		{0xFFFFFF, -1},
		{0xFFFFFD, -3},
	}
	for _, tt := range tests {
		if got := isa.SignExtend24(tt.value); got != tt.expected {
			t.Errorf("SignExtend24(0x%06X) = %d, want %d", tt.value, got, tt.expected)
		}
	}
}

func TestDPImmValue(t *testing.T) {
	// imm8=5, rotate=0
	if got := isa.DPImmValue(0xE3A00005); got != 5 {
		t.Errorf("got 0x%X, want 5", got)
	}
	// imm8=0xFF, rotate field 1 means ror by 2
	if got := isa.DPImmValue(0xE3A001FF); got != 0xC000003F {
		t.Errorf("got 0x%X, want 0xC000003F", got)
	}
}

func TestBranchTarget(t *testing.T) {
	// Offset -3 words at address 4 lands on 0
	if got := isa.BranchTarget(0xEAFFFFFD, 4); got != 0 {
		t.Errorf("got 0x%08X, want 0", got)
	}
	// Zero offset is the PC+8 slot
	if got := isa.BranchTarget(0xEA000000, 0x100); got != 0x108 {
		t.Errorf("got 0x%08X, want 0x108", got)
	}
}
