package chip8

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDisassemble(t *testing.T) {
	tests := []struct {
		opcode   uint16
		mnemonic string
		operands string
	}{
		{0x00E0, "CLS", ""},
		{0x00EE, "RET", ""},
		{0x1234, "JP", "#234"},
		{0x2345, "CALL", "#345"},
		{0x3A12, "SE", "VA, #12"},
		{0x8AB4, "ADD", "VA, VB"},
		{0x8AB7, "SUBN", "VA, VB"},
		{0xA123, "LD", "I, #123"},
		{0xB123, "JP", "V0, #123"},
		{0xDAB5, "DRW", "VA, VB, 5"},
		{0xEA9E, "SKP", "VA"},
		{0xFA0A, "LD", "VA, K"},
		{0xFA33, "LD", "B, VA"},
		{0xFA65, "LD", "VA, [I]"},
	}

	for _, tt := range tests {
		text := Disassemble(tt.opcode)

		assert.True(t, strings.HasPrefix(text, tt.mnemonic))
		assert.True(t, strings.HasSuffix(text, tt.operands))
	}

	assert.Equal(t, "??", Disassemble(0xFFFF))
}

func TestDisassembleMemory(t *testing.T) {
	vm := newVM(t, Quirks{}, 0x00E0, 0x1200)

	assert.Equal(t, "0200 - CLS", vm.Disassemble(0x200))
	assert.True(t, strings.HasPrefix(vm.Disassemble(0x202), "0202 - JP"))
}
