package isa_test

import (
	"errors"
	"testing"

	"github.com/lookbusy1344/arm-toolchain/isa"
)

// TestEncodeDataProcessing checks full data processing words against
// hand-assembled encodings
func TestEncodeDataProcessing(t *testing.T) {
	tests := []struct {
		name     string
		cond     isa.Cond
		opcode   uint32
		s        bool
		rn, rd   uint32
		imm      bool
		value    uint32 // immediate value or Rm
		expected uint32
	}{
		{"MOV R0, #5", isa.CondAL, isa.OpMOV, false, 0, 0, true, 5, 0xE3A00005},
		{"ADD R1, R2, R3", isa.CondAL, isa.OpADD, false, 2, 1, false, 3, 0xE0821003},
		{"CMP R4, #1 (S set)", isa.CondAL, isa.OpCMP, true, 4, 0, true, 1, 0xE3540001},
		{"MOVEQ R0, #0", isa.CondEQ, isa.OpMOV, false, 0, 0, true, 0, 0x03A00000},
		{"SUBS R7, R7, #4", isa.CondAL, isa.OpSUB, true, 7, 7, true, 4, 0xE2577004},
		{"MVN R3, R9", isa.CondAL, isa.OpMVN, false, 0, 3, false, 9, 0xE1E03009},
		{"ANDNE R5, R6, #0xFF", isa.CondNE, isa.OpAND, false, 6, 5, true, 0xFF, 0x120650FF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var op2 isa.Operand2
			var err error
			if tt.imm {
				op2, err = isa.DPImmOperand(tt.value)
			} else {
				op2, err = isa.DPRegOperand(tt.value, isa.ShiftLSL, 0)
			}
			if err != nil {
				t.Fatalf("operand2 failed: %v", err)
			}

			word, err := isa.EncodeDataProcessing(tt.cond, tt.opcode, tt.s, tt.rn, tt.rd, op2)
			if err != nil {
				t.Fatalf("encode failed: %v", err)
			}
			if word != tt.expected {
				t.Errorf("got 0x%08X, want 0x%08X", word, tt.expected)
			}
		})
	}
}

// TestDPImmOperandOverflow verifies the 12-bit boundary: no rotation
// synthesis happens, so 4096 is rejected outright
func TestDPImmOperandOverflow(t *testing.T) {
	if _, err := isa.DPImmOperand(4095); err != nil {
		t.Errorf("4095 should fit: %v", err)
	}
	if _, err := isa.DPImmOperand(4096); !errors.Is(err, isa.ErrImmediateOverflow) {
		t.Errorf("4096 should overflow, got %v", err)
	}
}

func TestDPRegOperandValidation(t *testing.T) {
	if _, err := isa.DPRegOperand(16, isa.ShiftLSL, 0); !errors.Is(err, isa.ErrRegisterOutOfRange) {
		t.Errorf("R16 should be out of range, got %v", err)
	}
	if _, err := isa.DPRegOperand(3, isa.ShiftROR, 31); err != nil {
		t.Errorf("ROR #31 should encode: %v", err)
	}
	if _, err := isa.DPRegOperand(3, isa.ShiftLSL, 32); err == nil {
		t.Error("shift amount 32 should be rejected")
	}
}

func TestEncodeDataProcessingRegisterRange(t *testing.T) {
	op2, _ := isa.DPImmOperand(0)
	if _, err := isa.EncodeDataProcessing(isa.CondAL, isa.OpMOV, false, 0, 16, op2); !errors.Is(err, isa.ErrRegisterOutOfRange) {
		t.Errorf("Rd=16 should be out of range, got %v", err)
	}
}

// TestBranchOffsetLaw checks that the decoded target recovered from an
// encoded branch equals the original target for a spread of distances
func TestBranchOffsetLaw(t *testing.T) {
	tests := []struct {
		name       string
		pc, target uint32
	}{
		{"self", 0x100, 0x100},
		{"next", 0x0, 0x4},
		{"pipeline slot", 0x0, 0x8},
		{"backward three words", 0x4, 0x0},
		{"far forward", 0x0, 0x10000},
		{"far backward", 0x20000, 0x8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			off24, err := isa.BranchOffsetWords(tt.target, tt.pc)
			if err != nil {
				t.Fatalf("offset failed: %v", err)
			}
			word := isa.EncodeBranch(isa.CondAL, false, off24)
			if got := isa.BranchTarget(word, tt.pc); got != tt.target {
				t.Errorf("recovered target 0x%08X, want 0x%08X", got, tt.target)
			}
		})
	}
}

func TestBranchOffsetEncoding(t *testing.T) {
	// B loop at address 4 with loop at 0: offset is -3 words
	off24, err := isa.BranchOffsetWords(0, 4)
	if err != nil {
		t.Fatalf("offset failed: %v", err)
	}
	if off24 != 0xFFFFFD {
		t.Errorf("got offset 0x%06X, want 0xFFFFFD", off24)
	}
	if word := isa.EncodeBranch(isa.CondAL, false, off24); word != 0xEAFFFFFD {
		t.Errorf("got word 0x%08X, want 0xEAFFFFFD", word)
	}
	if word := isa.EncodeBranch(isa.CondAL, true, 0); word != 0xEB000000 {
		t.Errorf("BL got word 0x%08X, want 0xEB000000", word)
	}
}

func TestBranchOffsetRange(t *testing.T) {
	if _, err := isa.BranchOffsetWords(0x4000000, 0); !errors.Is(err, isa.ErrOffsetOutOfRange) {
		t.Errorf("64MB branch should be out of range, got %v", err)
	}
}

func TestEncodeLoadStore(t *testing.T) {
	tests := []struct {
		name     string
		cond     isa.Cond
		b, l     bool
		rn, rd   uint32
		offset   uint32
		expected uint32
	}{
		{"LDR R0, [R1, #8]", isa.CondAL, false, true, 1, 0, 8, 0xE5910008},
		{"STR R2, [R3]", isa.CondAL, false, false, 3, 2, 0, 0xE5832000},
		{"STRB R2, [R3]", isa.CondAL, true, false, 3, 2, 0, 0xE5C32000},
		{"LDRB R4, [R5, #0xFF]", isa.CondAL, true, true, 5, 4, 0xFF, 0xE5D540FF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, err := isa.EncodeLoadStore(tt.cond, true, true, tt.b, false, tt.l, tt.rn, tt.rd, tt.offset)
			if err != nil {
				t.Fatalf("encode failed: %v", err)
			}
			if word != tt.expected {
				t.Errorf("got 0x%08X, want 0x%08X", word, tt.expected)
			}
		})
	}
}

func TestEncodeLoadStoreValidation(t *testing.T) {
	if _, err := isa.EncodeLoadStore(isa.CondAL, true, true, false, false, true, 1, 0, 0x1000); !errors.Is(err, isa.ErrOffsetOutOfRange) {
		t.Errorf("offset 0x1000 should be rejected, got %v", err)
	}
	if _, err := isa.EncodeLoadStore(isa.CondAL, true, true, false, false, true, 16, 0, 0); !errors.Is(err, isa.ErrRegisterOutOfRange) {
		t.Errorf("Rn=16 should be rejected, got %v", err)
	}
}
