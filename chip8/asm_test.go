package chip8

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// word returns a single assembled instruction, 0xFFFF if there isn't one
func word(rom []byte) uint16 {
	if len(rom) != 2 {
		return 0xFFFF
	}
	return uint16(rom[0])<<8 | uint16(rom[1])
}

func TestAssembleInstructions(t *testing.T) {
	tests := []struct {
		source string
		opcode uint16
	}{
		{"CLS", 0x00E0},
		{"RET", 0x00EE},
		{"SYS #123", 0x0123},
		{"JP #234", 0x1234},
		{"JP V0, #123", 0xB123},
		{"CALL #345", 0x2345},
		{"SE VA, #12", 0x3A12},
		{"SNE VA, 18", 0x4A12},
		{"SE VA, VB", 0x5AB0},
		{"SNE VA, VB", 0x9AB0},
		{"LD VA, $00010010", 0x6A12},
		{"LD VA, $...1..1.", 0x6A12},
		{"LD VA, $.1..1...", 0x6A48},
		{"LD VA, VB", 0x8AB0},
		{"LD I, 0x123", 0xA123},
		{"LD VA, DT", 0xFA07},
		{"LD VA, K", 0xFA0A},
		{"LD DT, VA", 0xFA15},
		{"LD ST, VA", 0xFA18},
		{"LD F, VA", 0xFA29},
		{"LD B, VA", 0xFA33},
		{"LD [I], VA", 0xFA55},
		{"LD VA, [I]", 0xFA65},
		{"ADD VA, -1", 0x7AFF},
		{"ADD VA, VB", 0x8AB4},
		{"ADD I, VA", 0xFA1E},
		{"OR VA, VB", 0x8AB1},
		{"AND VA, VB", 0x8AB2},
		{"XOR VA, VB", 0x8AB3},
		{"SUB VA, VB", 0x8AB5},
		{"SHR VA, VB", 0x8AB6},
		{"SHR VA", 0x8AA6},
		{"SUBN VA, VB", 0x8AB7},
		{"SHL VA, VB", 0x8ABE},
		{"RND VA, #0F", 0xCA0F},
		{"DRW VA, VB, 5", 0xDAB5},
		{"SKP VA", 0xEA9E},
		{"SKNP VA", 0xEAA1},
		{"  drw va, vb, 5 ; lower case", 0xDAB5},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			a, err := Assemble([]byte(tt.source), Standard)
			assert.NoError(t, err)
			assert.Equal(t, tt.opcode, word(a.ROM))
		})
	}
}

func TestAssembleDisassembly(t *testing.T) {
	// every disassembled instruction assembles back to its opcode
	for _, opcode := range []uint16{0x00E0, 0x0123, 0x1ABC, 0x5120, 0x8126, 0xB200, 0xC3FF, 0xD12F, 0xE5A1, 0xF433, 0xF965} {
		text := Disassemble(opcode)

		a, err := Assemble([]byte(text), Standard)
		assert.NoError(t, err)
		assert.Equal(t, opcode, word(a.ROM))
	}
}

func TestAssembleLabels(t *testing.T) {
	source := `
SPEED EQU 3
start:
    LD   V0, SPEED
    CALL draw
    JP   start
draw:
    LD   I, sprite
    RET
sprite:
    BYTE $1111...., $....1111
    WORD draw
`
	a, err := Assemble([]byte(source), Standard)
	assert.NoError(t, err)

	assert.Equal(t, 0x200, a.Labels["START"])
	assert.Equal(t, 0x206, a.Labels["DRAW"])
	assert.Equal(t, 0x20A, a.Labels["SPRITE"])
	assert.Equal(t, 3, a.Labels["SPEED"])

	assert.True(t, bytes.Equal([]byte{
		0x60, 0x03,
		0x22, 0x06,
		0x12, 0x00,
		0xA2, 0x0A,
		0x00, 0xEE,
		0xF0, 0x0F,
		0x02, 0x06,
	}, a.ROM))
}

func TestAssembleETI(t *testing.T) {
	a, err := Assemble([]byte("loop: JP loop"), ETI660)
	assert.NoError(t, err)

	assert.Equal(t, uint16(0x600), a.Origin)
	assert.Equal(t, uint16(0x1600), word(a.ROM))
}

func TestAssembleDirectives(t *testing.T) {
	a, err := Assemble([]byte("BYTE 1, \"AB\"\nALIGN 4\nPAD 2\nALIGN 2\nBYTE 255"), Standard)
	assert.NoError(t, err)
	assert.True(t, bytes.Equal([]byte{1, 'A', 'B', 0, 0, 0, 255}, a.ROM))
}

func TestAssembleBreakpoints(t *testing.T) {
	a, err := Assemble([]byte("CLS\nBREAK\nloop: JP loop"), Standard)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(a.Breakpoints))
	assert.Equal(t, uint16(0x202), a.Breakpoints[0])
}

func TestAssembleErrors(t *testing.T) {
	tests := []struct {
		source string
		line   int
		msg    string
	}{
		{"CLS\nFOO V0", 2, "unknown instruction"},
		{"LD V0, 256", 1, "out of range"},
		{"JP missing", 1, "unresolved label"},
		{"a:\na:", 2, "duplicate label"},
		{"LD V0 V1", 1, "expected comma"},
		{"LD V0,", 1, "expected operand"},
		{"DRW V0, V1, 16", 1, "sprite height"},
		{"LD K, V0", 1, "illegal operands"},
		{"BYTE \"open", 1, "unterminated"},
		{"LD V0, [V1]", 1, "illegal indirection"},
		{"ALIGN 3", 1, "illegal alignment"},
		{"ALIGN 0x8000000", 1, "illegal alignment"},
		{"CLS\nALIGN 8192", 2, "illegal alignment"},
		{"@", 1, "unexpected character"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			_, err := Assemble([]byte(tt.source), Standard)
			assert.ErrorContains(t, err, tt.msg)
			assert.True(t, errors.Is(err, ErrAssemble))

			var asmErr *AssembleError
			assert.True(t, errors.As(err, &asmErr))
			assert.Equal(t, tt.line, asmErr.Line)
		})
	}
}

func TestAssembleTooLarge(t *testing.T) {
	_, err := Assemble([]byte("PAD 3585"), Standard)
	assert.ErrorContains(t, err, "illegal size")

	_, err = Assemble([]byte(strings.Repeat("WORD 0\n", 0x700)+"BYTE 0"), Standard)
	assert.True(t, errors.Is(err, ErrRomTooLarge))
}

func TestAssembleFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "test.c8s")
	assert.NoError(t, os.WriteFile(file, []byte("LD V3, 7\nloop: JP loop\n"), 0o644))

	vm, a, err := AssembleFile(file, Standard, Quirks{})
	assert.NoError(t, err)
	assert.Equal(t, 4, len(a.ROM))

	step(t, vm, 2)
	assert.Equal(t, uint8(7), vm.V[3])
	assert.Equal(t, uint16(0x202), vm.PC)

	_, _, err = AssembleFile(filepath.Join(t.TempDir(), "missing.c8s"), Standard, Quirks{})
	assert.Error(t, err)
}
