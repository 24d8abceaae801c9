package chip8

/// Op identifies one of the 35 CHIP-8 instruction shapes.
///
type Op uint8

const (
	OpInvalid Op = iota
	OpSys        // 0NNN
	OpCls        // 00E0
	OpRet        // 00EE
	OpJump       // 1NNN
	OpCall       // 2NNN
	OpSkipIf     // 3XNN
	OpSkipIfNot  // 4XNN
	OpSkipIfXY   // 5XY0
	OpLoadX      // 6XNN
	OpAddX       // 7XNN
	OpLoadXY     // 8XY0
	OpOr         // 8XY1
	OpAnd        // 8XY2
	OpXor        // 8XY3
	OpAddXY      // 8XY4
	OpSubXY      // 8XY5
	OpShr        // 8XY6
	OpSubYX      // 8XY7
	OpShl        // 8XYE
	OpSkipIfNotXY
	OpLoadI
	OpJumpV0
	OpRnd
	OpDraw
	OpSkipIfPressed
	OpSkipIfNotPressed
	OpLoadXDT
	OpLoadXK
	OpLoadDTX
	OpLoadSTX
	OpAddIX
	OpLoadF
	OpLoadB
	OpSaveRegs
	OpLoadRegs

	opCount
)

/// Instruction is a decoded opcode. Only the operand fields that the
/// instruction shape uses are meaningful.
///
type Instruction struct {
	Op     Op
	Opcode uint16

	// X and Y are register indices.
	X, Y uint8

	// N is the low nibble, NN the low byte and NNN the low 12 bits.
	N   uint8
	NN  uint8
	NNN uint16
}

/// Decode an opcode into an instruction. The second return value is false
/// when the opcode has no defined decode path.
///
func Decode(opcode uint16) (Instruction, bool) {
	inst := Instruction{
		Opcode: opcode,
		X:      uint8(opcode >> 8 & 0xF),
		Y:      uint8(opcode >> 4 & 0xF),
		N:      uint8(opcode & 0xF),
		NN:     uint8(opcode & 0xFF),
		NNN:    opcode & 0xFFF,
	}

	switch opcode & 0xF000 {
	case 0x0000:
		switch opcode {
		case 0x00E0:
			inst.Op = OpCls
		case 0x00EE:
			inst.Op = OpRet
		default:
			inst.Op = OpSys
		}
	case 0x1000:
		inst.Op = OpJump
	case 0x2000:
		inst.Op = OpCall
	case 0x3000:
		inst.Op = OpSkipIf
	case 0x4000:
		inst.Op = OpSkipIfNot
	case 0x5000:
		if inst.N == 0 {
			inst.Op = OpSkipIfXY
		}
	case 0x6000:
		inst.Op = OpLoadX
	case 0x7000:
		inst.Op = OpAddX
	case 0x8000:
		switch inst.N {
		case 0x0:
			inst.Op = OpLoadXY
		case 0x1:
			inst.Op = OpOr
		case 0x2:
			inst.Op = OpAnd
		case 0x3:
			inst.Op = OpXor
		case 0x4:
			inst.Op = OpAddXY
		case 0x5:
			inst.Op = OpSubXY
		case 0x6:
			inst.Op = OpShr
		case 0x7:
			inst.Op = OpSubYX
		case 0xE:
			inst.Op = OpShl
		}
	case 0x9000:
		if inst.N == 0 {
			inst.Op = OpSkipIfNotXY
		}
	case 0xA000:
		inst.Op = OpLoadI
	case 0xB000:
		inst.Op = OpJumpV0
	case 0xC000:
		inst.Op = OpRnd
	case 0xD000:
		inst.Op = OpDraw
	case 0xE000:
		switch inst.NN {
		case 0x9E:
			inst.Op = OpSkipIfPressed
		case 0xA1:
			inst.Op = OpSkipIfNotPressed
		}
	case 0xF000:
		switch inst.NN {
		case 0x07:
			inst.Op = OpLoadXDT
		case 0x0A:
			inst.Op = OpLoadXK
		case 0x15:
			inst.Op = OpLoadDTX
		case 0x18:
			inst.Op = OpLoadSTX
		case 0x1E:
			inst.Op = OpAddIX
		case 0x29:
			inst.Op = OpLoadF
		case 0x33:
			inst.Op = OpLoadB
		case 0x55:
			inst.Op = OpSaveRegs
		case 0x65:
			inst.Op = OpLoadRegs
		}
	}

	return inst, inst.Op != OpInvalid
}
