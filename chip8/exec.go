package chip8

// handler executes one decoded instruction. PC has already been advanced
// past the instruction. A handler that fails must not have changed state.
type handler func(vm *VM, inst Instruction) error

var handlers = [opCount]handler{
	OpInvalid:          (*VM).invalid,
	OpSys:              (*VM).sys,
	OpCls:              (*VM).cls,
	OpRet:              (*VM).ret,
	OpJump:             (*VM).jump,
	OpCall:             (*VM).call,
	OpSkipIf:           (*VM).skipIf,
	OpSkipIfNot:        (*VM).skipIfNot,
	OpSkipIfXY:         (*VM).skipIfXY,
	OpLoadX:            (*VM).loadX,
	OpAddX:             (*VM).addX,
	OpLoadXY:           (*VM).loadXY,
	OpOr:               (*VM).or,
	OpAnd:              (*VM).and,
	OpXor:              (*VM).xor,
	OpAddXY:            (*VM).addXY,
	OpSubXY:            (*VM).subXY,
	OpShr:              (*VM).shr,
	OpSubYX:            (*VM).subYX,
	OpShl:              (*VM).shl,
	OpSkipIfNotXY:      (*VM).skipIfNotXY,
	OpLoadI:            (*VM).loadI,
	OpJumpV0:           (*VM).jumpV0,
	OpRnd:              (*VM).rnd,
	OpDraw:             (*VM).drw,
	OpSkipIfPressed:    (*VM).skipIfPressed,
	OpSkipIfNotPressed: (*VM).skipIfNotPressed,
	OpLoadXDT:          (*VM).loadXDT,
	OpLoadXK:           (*VM).loadXK,
	OpLoadDTX:          (*VM).loadDTX,
	OpLoadSTX:          (*VM).loadSTX,
	OpAddIX:            (*VM).addIX,
	OpLoadF:            (*VM).loadF,
	OpLoadB:            (*VM).loadB,
	OpSaveRegs:         (*VM).saveRegs,
	OpLoadRegs:         (*VM).loadRegs,
}

// address of the instruction being executed
func (vm *VM) current() uint16 {
	return (vm.PC - 2) & addressMask
}

func (vm *VM) skip() {
	vm.PC = (vm.PC + 2) & addressMask
}

func (vm *VM) flag(set bool) {
	if set {
		vm.V[0xF] = 1
	} else {
		vm.V[0xF] = 0
	}
}

/// Fail on an opcode Decode does not recognize.
///
func (vm *VM) invalid(inst Instruction) error {
	return &InvalidOpcodeError{Opcode: inst.Opcode, PC: vm.current()}
}

/// system call an RCA 1802 routine. There is no 1802 to run it, so it
/// is ignored.
///
func (vm *VM) sys(inst Instruction) error {
	return nil
}

/// Clear the video display memory.
///
func (vm *VM) cls(inst Instruction) error {
	vm.display.Clear()
	return nil
}

/// return from subroutine.
///
func (vm *VM) ret(inst Instruction) error {
	if vm.sp == 0 {
		return &StackFault{Kind: StackUnderflow, PC: vm.current()}
	}

	vm.sp--
	vm.PC = vm.stack[vm.sp]

	return nil
}

/// jump to address.
///
func (vm *VM) jump(inst Instruction) error {
	vm.PC = inst.NNN
	return nil
}

/// call a subroutine at address.
///
func (vm *VM) call(inst Instruction) error {
	if vm.sp == StackDepth {
		return &StackFault{Kind: StackOverflow, PC: vm.current()}
	}

	// push the return address
	vm.stack[vm.sp] = vm.PC
	vm.sp++

	vm.PC = inst.NNN

	return nil
}

/// skip next instruction if vx == n.
///
func (vm *VM) skipIf(inst Instruction) error {
	if vm.V[inst.X] == inst.NN {
		vm.skip()
	}
	return nil
}

/// skip next instruction if vx != n.
///
func (vm *VM) skipIfNot(inst Instruction) error {
	if vm.V[inst.X] != inst.NN {
		vm.skip()
	}
	return nil
}

/// skip next instruction if vx == vy.
///
func (vm *VM) skipIfXY(inst Instruction) error {
	if vm.V[inst.X] == vm.V[inst.Y] {
		vm.skip()
	}
	return nil
}

/// skip next instruction if vx != vy.
///
func (vm *VM) skipIfNotXY(inst Instruction) error {
	if vm.V[inst.X] != vm.V[inst.Y] {
		vm.skip()
	}
	return nil
}

/// load n into vx.
///
func (vm *VM) loadX(inst Instruction) error {
	vm.V[inst.X] = inst.NN
	return nil
}

/// add n to vx, vf is untouched.
///
func (vm *VM) addX(inst Instruction) error {
	vm.V[inst.X] += inst.NN
	return nil
}

/// load vy into vx.
///
func (vm *VM) loadXY(inst Instruction) error {
	vm.V[inst.X] = vm.V[inst.Y]
	return nil
}

func (vm *VM) or(inst Instruction) error {
	vm.V[inst.X] |= vm.V[inst.Y]
	return nil
}

func (vm *VM) and(inst Instruction) error {
	vm.V[inst.X] &= vm.V[inst.Y]
	return nil
}

func (vm *VM) xor(inst Instruction) error {
	vm.V[inst.X] ^= vm.V[inst.Y]
	return nil
}

// The arithmetic and shift instructions write VF after the result, so when
// VF is the destination it ends up holding the flag.

/// add vy to vx and set carry.
///
func (vm *VM) addXY(inst Instruction) error {
	sum := uint16(vm.V[inst.X]) + uint16(vm.V[inst.Y])

	vm.V[inst.X] = byte(sum)
	vm.flag(sum > 0xFF)

	return nil
}

/// subtract vy from vx, set carry if no borrow.
///
func (vm *VM) subXY(inst Instruction) error {
	x, y := vm.V[inst.X], vm.V[inst.Y]

	vm.V[inst.X] = x - y
	vm.flag(x >= y)

	return nil
}

/// subtract vx from vy and store in vx, set carry if no borrow.
///
func (vm *VM) subYX(inst Instruction) error {
	x, y := vm.V[inst.X], vm.V[inst.Y]

	vm.V[inst.X] = y - x
	vm.flag(y >= x)

	return nil
}

// shiftSource is VX, or VY with the shift quirk.
func (vm *VM) shiftSource(inst Instruction) byte {
	if vm.quirks.ShiftUsesVY {
		return vm.V[inst.Y]
	}
	return vm.V[inst.X]
}

/// shr 1 bit into vx, set carry to the LSB shifted out.
///
func (vm *VM) shr(inst Instruction) error {
	v := vm.shiftSource(inst)

	vm.V[inst.X] = v >> 1
	vm.V[0xF] = v & 1

	return nil
}

/// shl 1 bit into vx, set carry to the MSB shifted out.
///
func (vm *VM) shl(inst Instruction) error {
	v := vm.shiftSource(inst)

	vm.V[inst.X] = v << 1
	vm.V[0xF] = v >> 7

	return nil
}

/// load address register.
///
func (vm *VM) loadI(inst Instruction) error {
	vm.I = inst.NNN
	return nil
}

/// jump to address + v0 (or + vx with the jump quirk).
///
func (vm *VM) jumpV0(inst Instruction) error {
	offset := vm.V[0]

	if vm.quirks.JumpUsesVX {
		offset = vm.V[inst.X]
	}

	vm.PC = (inst.NNN + uint16(offset)) & addressMask

	return nil
}

/// load a random number & n into vx.
///
func (vm *VM) rnd(inst Instruction) error {
	vm.V[inst.X] = byte(vm.rng.Intn(256)) & inst.NN
	return nil
}

/// draw a sprite at I to video memory at vx, vy.
///
func (vm *VM) drw(inst Instruction) error {
	sprite := make([]byte, inst.N)

	for i := range sprite {
		sprite[i] = vm.Memory[(vm.I+uint16(i))&addressMask]
	}

	collision := vm.display.Draw(int(vm.V[inst.X]), int(vm.V[inst.Y]), sprite)
	vm.flag(collision)

	return nil
}

/// skip next instruction if key(vx) is pressed.
///
func (vm *VM) skipIfPressed(inst Instruction) error {
	if vm.keys[vm.V[inst.X]&0xF] {
		vm.skip()
	}
	return nil
}

/// skip next instruction if key(vx) is not pressed.
///
func (vm *VM) skipIfNotPressed(inst Instruction) error {
	if !vm.keys[vm.V[inst.X]&0xF] {
		vm.skip()
	}
	return nil
}

/// load delay timer into vx.
///
func (vm *VM) loadXDT(inst Instruction) error {
	vm.V[inst.X] = vm.DT
	return nil
}

/// load vx with next key hit. The program counter is rewound so that the
/// instruction stays current until a key goes down.
///
func (vm *VM) loadXK(inst Instruction) error {
	vm.PC = vm.current()

	vm.waiting = true
	vm.waitX = inst.X
	vm.edge = -1

	return nil
}

/// load vx into delay timer.
///
func (vm *VM) loadDTX(inst Instruction) error {
	vm.DT = vm.V[inst.X]
	return nil
}

/// load vx into sound timer.
///
func (vm *VM) loadSTX(inst Instruction) error {
	vm.ST = vm.V[inst.X]
	return nil
}

/// add vx to i.
///
func (vm *VM) addIX(inst Instruction) error {
	vm.I = (vm.I + uint16(vm.V[inst.X])) & addressMask
	return nil
}

/// load font sprite for vx into I.
///
func (vm *VM) loadF(inst Instruction) error {
	vm.I = uint16(vm.V[inst.X]&0xF) * glyphSize
	return nil
}

/// store the BCD of vx at I, I+1, I+2.
///
func (vm *VM) loadB(inst Instruction) error {
	n := vm.V[inst.X]

	vm.Memory[vm.I&addressMask] = n / 100
	vm.Memory[(vm.I+1)&addressMask] = n / 10 % 10
	vm.Memory[(vm.I+2)&addressMask] = n % 10

	return nil
}

/// save registers v0..vx to I.
///
func (vm *VM) saveRegs(inst Instruction) error {
	for i := uint16(0); i <= uint16(inst.X); i++ {
		vm.Memory[(vm.I+i)&addressMask] = vm.V[i]
	}

	if vm.quirks.LoadStoreIncrementsI {
		vm.I = (vm.I + uint16(inst.X) + 1) & addressMask
	}

	return nil
}

/// load registers v0..vx from I.
///
func (vm *VM) loadRegs(inst Instruction) error {
	for i := uint16(0); i <= uint16(inst.X); i++ {
		vm.V[i] = vm.Memory[(vm.I+i)&addressMask]
	}

	if vm.quirks.LoadStoreIncrementsI {
		vm.I = (vm.I + uint16(inst.X) + 1) & addressMask
	}

	return nil
}
