package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestInstructions(t *testing.T) {
	tests := []struct {
		name   string
		quirks Quirks
		ops    []uint16
		steps  int
		setup  func(vm *VM)
		check  func(t *testing.T, vm *VM)
	}{
		{
			name: "SYS is ignored",
			ops:  []uint16{0x0123},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, uint16(0x202), vm.PC)
			},
		},
		{
			name: "CLS",
			ops:  []uint16{0xA000, 0xD005, 0x00E0},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, (&Display{}).String(), vm.Display().String())
			},
		},
		{
			name: "JP",
			ops:  []uint16{0x1ABC},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, uint16(0xABC), vm.PC)
			},
		},
		{
			name:  "CALL and RET",
			ops:   []uint16{0x2206, 0x0000, 0x0000, 0x00EE},
			steps: 2,
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, uint16(0x202), vm.PC)
				assert.Equal(t, 0, len(vm.Stack()))
			},
		},
		{
			name: "SE Vx, byte skips",
			ops:  []uint16{0x6042, 0x3042},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, uint16(0x206), vm.PC)
			},
		},
		{
			name: "SE Vx, byte falls through",
			ops:  []uint16{0x6042, 0x3043},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, uint16(0x204), vm.PC)
			},
		},
		{
			name: "SNE Vx, byte skips",
			ops:  []uint16{0x6042, 0x4043},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, uint16(0x206), vm.PC)
			},
		},
		{
			name: "SE Vx, Vy skips",
			ops:  []uint16{0x6007, 0x6107, 0x5010},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, uint16(0x208), vm.PC)
			},
		},
		{
			name: "SNE Vx, Vy falls through",
			ops:  []uint16{0x6007, 0x6107, 0x9010},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, uint16(0x206), vm.PC)
			},
		},
		{
			name: "ADD Vx, byte wraps without flag",
			ops:  []uint16{0x60FF, 0x7002},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, byte(0x01), vm.V[0])
				assert.Equal(t, byte(0), vm.V[0xF])
			},
		},
		{
			name: "LD OR AND XOR",
			ops:  []uint16{0x610C, 0x620A, 0x8010, 0x8021, 0x8310, 0x8322, 0x8410, 0x8423},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, byte(0x0E), vm.V[0])
				assert.Equal(t, byte(0x08), vm.V[3])
				assert.Equal(t, byte(0x06), vm.V[4])
			},
		},
		{
			name: "ADD Vx, Vy carry",
			ops:  []uint16{0x60FF, 0x6102, 0x8014},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, byte(0x01), vm.V[0])
				assert.Equal(t, byte(1), vm.V[0xF])
			},
		},
		{
			name: "ADD Vx, Vy no carry",
			ops:  []uint16{0x6001, 0x6102, 0x8014},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, byte(0x03), vm.V[0])
				assert.Equal(t, byte(0), vm.V[0xF])
			},
		},
		{
			name: "ADD VF, Vy keeps the flag",
			ops:  []uint16{0x6FFF, 0x6101, 0x8F14},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, byte(1), vm.V[0xF])
			},
		},
		{
			name: "SUB no borrow",
			ops:  []uint16{0x6005, 0x6103, 0x8015},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, byte(0x02), vm.V[0])
				assert.Equal(t, byte(1), vm.V[0xF])
			},
		},
		{
			name: "SUB equal is no borrow",
			ops:  []uint16{0x6005, 0x6105, 0x8015},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, byte(0x00), vm.V[0])
				assert.Equal(t, byte(1), vm.V[0xF])
			},
		},
		{
			name: "SUB borrow",
			ops:  []uint16{0x6003, 0x6105, 0x8015},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, byte(0xFE), vm.V[0])
				assert.Equal(t, byte(0), vm.V[0xF])
			},
		},
		{
			name: "SUBN no borrow",
			ops:  []uint16{0x6003, 0x6105, 0x8017},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, byte(0x02), vm.V[0])
				assert.Equal(t, byte(1), vm.V[0xF])
			},
		},
		{
			name: "SUBN borrow",
			ops:  []uint16{0x6005, 0x6103, 0x8017},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, byte(0xFE), vm.V[0])
				assert.Equal(t, byte(0), vm.V[0xF])
			},
		},
		{
			name: "SHR shifts Vx in place",
			ops:  []uint16{0x6005, 0x6140, 0x8016},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, byte(0x02), vm.V[0])
				assert.Equal(t, byte(0x40), vm.V[1])
				assert.Equal(t, byte(1), vm.V[0xF])
			},
		},
		{
			name:   "SHR shifts Vy with quirk",
			quirks: Quirks{ShiftUsesVY: true},
			ops:    []uint16{0x6005, 0x6140, 0x8016},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, byte(0x20), vm.V[0])
				assert.Equal(t, byte(0x40), vm.V[1])
				assert.Equal(t, byte(0), vm.V[0xF])
			},
		},
		{
			name: "SHL shifts Vx in place",
			ops:  []uint16{0x6081, 0x6101, 0x801E},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, byte(0x02), vm.V[0])
				assert.Equal(t, byte(1), vm.V[0xF])
			},
		},
		{
			name:   "SHL shifts Vy with quirk",
			quirks: Quirks{ShiftUsesVY: true},
			ops:    []uint16{0x6081, 0x6101, 0x801E},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, byte(0x02), vm.V[0])
				assert.Equal(t, byte(0), vm.V[0xF])
			},
		},
		{
			name: "LD I",
			ops:  []uint16{0xA123},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, uint16(0x123), vm.I)
			},
		},
		{
			name: "JP V0",
			ops:  []uint16{0x6004, 0x6310, 0xB300},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, uint16(0x304), vm.PC)
			},
		},
		{
			name:   "JP Vx with quirk",
			quirks: Quirks{JumpUsesVX: true},
			ops:    []uint16{0x6004, 0x6310, 0xB300},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, uint16(0x310), vm.PC)
			},
		},
		{
			name: "RND is masked",
			ops:  []uint16{0xC000, 0xC10F},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, byte(0), vm.V[0])
				assert.Equal(t, byte(0), vm.V[1]&0xF0)
			},
		},
		{
			name: "DRW sets collision on second draw",
			ops:  []uint16{0xA000, 0xD005, 0x6200, 0xD005},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, byte(1), vm.V[0xF])
				assert.False(t, vm.Display().Pixel(0, 0))
			},
		},
		{
			name: "SKP skips when pressed",
			ops:  []uint16{0x6005, 0xE09E},
			setup: func(vm *VM) {
				vm.SetKey(5, true)
			},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, uint16(0x206), vm.PC)
			},
		},
		{
			name: "SKP falls through when released",
			ops:  []uint16{0x6005, 0xE09E},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, uint16(0x204), vm.PC)
			},
		},
		{
			name: "SKNP skips when released",
			ops:  []uint16{0x6005, 0xE0A1},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, uint16(0x206), vm.PC)
			},
		},
		{
			name: "SKNP falls through when pressed",
			ops:  []uint16{0x6005, 0xE0A1},
			setup: func(vm *VM) {
				vm.SetKey(5, true)
			},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, uint16(0x204), vm.PC)
			},
		},
		{
			name: "LD DT and ST",
			ops:  []uint16{0x6009, 0xF015, 0x6104, 0xF118, 0xF207},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, byte(9), vm.DT)
				assert.Equal(t, byte(4), vm.ST)
				assert.Equal(t, byte(9), vm.V[2])
				assert.True(t, vm.ToneActive())
			},
		},
		{
			name: "ADD I, Vx leaves VF",
			ops:  []uint16{0x6F07, 0xA100, 0x6005, 0xF01E},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, uint16(0x105), vm.I)
				assert.Equal(t, byte(7), vm.V[0xF])
			},
		},
		{
			name: "LD F",
			ops:  []uint16{0x600A, 0xF029},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, uint16(50), vm.I)
				assert.Equal(t, byte(0xF0), vm.Memory[vm.I])
			},
		},
		{
			name: "LD B",
			ops:  []uint16{0x609C, 0xA300, 0xF033},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, byte(1), vm.Memory[0x300])
				assert.Equal(t, byte(5), vm.Memory[0x301])
				assert.Equal(t, byte(6), vm.Memory[0x302])
				assert.Equal(t, uint16(0x300), vm.I)
			},
		},
		{
			name: "LD [I], Vx",
			ops:  []uint16{0x6001, 0x6102, 0x6203, 0x6304, 0xA300, 0xF255},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, byte(1), vm.Memory[0x300])
				assert.Equal(t, byte(2), vm.Memory[0x301])
				assert.Equal(t, byte(3), vm.Memory[0x302])
				assert.Equal(t, byte(0), vm.Memory[0x303])
				assert.Equal(t, uint16(0x300), vm.I)
			},
		},
		{
			name:   "LD [I], Vx increments I with quirk",
			quirks: Quirks{LoadStoreIncrementsI: true},
			ops:    []uint16{0x6001, 0x6102, 0x6203, 0xA300, 0xF255},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, byte(3), vm.Memory[0x302])
				assert.Equal(t, uint16(0x303), vm.I)
			},
		},
		{
			name: "LD Vx, [I]",
			ops:  []uint16{0xA000, 0xF265},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, byte(0xF0), vm.V[0])
				assert.Equal(t, byte(0x90), vm.V[1])
				assert.Equal(t, byte(0x90), vm.V[2])
				assert.Equal(t, byte(0), vm.V[3])
				assert.Equal(t, uint16(0), vm.I)
			},
		},
		{
			name:   "LD Vx, [I] increments I with quirk",
			quirks: Quirks{LoadStoreIncrementsI: true},
			ops:    []uint16{0xA000, 0xF265},
			check: func(t *testing.T, vm *VM) {
				assert.Equal(t, byte(0x90), vm.V[2])
				assert.Equal(t, uint16(3), vm.I)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newVM(t, tt.quirks, tt.ops...)
			if tt.setup != nil {
				tt.setup(vm)
			}

			steps := tt.steps
			if steps == 0 {
				steps = len(tt.ops)
			}

			step(t, vm, steps)
			tt.check(t, vm)
		})
	}
}
