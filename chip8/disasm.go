package chip8

import (
	"fmt"
	"strings"

	cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// mnemonics used when the opcode table has no entry for an instruction
var mnemonics = [opCount]string{
	OpSys: "SYS", OpCls: "CLS", OpRet: "RET", OpJump: "JP", OpCall: "CALL",
	OpSkipIf: "SE", OpSkipIfNot: "SNE", OpSkipIfXY: "SE", OpLoadX: "LD",
	OpAddX: "ADD", OpLoadXY: "LD", OpOr: "OR", OpAnd: "AND", OpXor: "XOR",
	OpAddXY: "ADD", OpSubXY: "SUB", OpShr: "SHR", OpSubYX: "SUBN",
	OpShl: "SHL", OpSkipIfNotXY: "SNE", OpLoadI: "LD", OpJumpV0: "JP",
	OpRnd: "RND", OpDraw: "DRW", OpSkipIfPressed: "SKP",
	OpSkipIfNotPressed: "SKNP", OpLoadXDT: "LD", OpLoadXK: "LD",
	OpLoadDTX: "LD", OpLoadSTX: "LD", OpAddIX: "ADD", OpLoadF: "LD",
	OpLoadB: "LD", OpSaveRegs: "LD", OpLoadRegs: "LD",
}

/// Mnemonic returns the assembler name of the instruction.
///
func (inst Instruction) Mnemonic() string {
	for _, op := range cpu.Opcodes[int(inst.Opcode>>12)] {
		if op.Instruction != nil && op.Info.Mask&inst.Opcode == op.Info.Value {
			return strings.ToUpper(op.Instruction.Name)
		}
	}

	return mnemonics[inst.Op]
}

/// String disassembles the instruction.
///
func (inst Instruction) String() string {
	if inst.Op == OpInvalid {
		return "??"
	}

	m := inst.Mnemonic()

	switch inst.Op {
	case OpCls, OpRet:
		return m
	case OpSys, OpJump, OpCall:
		return fmt.Sprintf("%-6s #%03X", m, inst.NNN)
	case OpSkipIf, OpSkipIfNot, OpLoadX, OpAddX, OpRnd:
		return fmt.Sprintf("%-6s V%X, #%02X", m, inst.X, inst.NN)
	case OpSkipIfXY, OpSkipIfNotXY, OpLoadXY, OpOr, OpAnd, OpXor, OpAddXY, OpSubXY, OpSubYX, OpShr, OpShl:
		return fmt.Sprintf("%-6s V%X, V%X", m, inst.X, inst.Y)
	case OpLoadI:
		return fmt.Sprintf("%-6s I, #%03X", m, inst.NNN)
	case OpJumpV0:
		return fmt.Sprintf("%-6s V0, #%03X", m, inst.NNN)
	case OpDraw:
		return fmt.Sprintf("%-6s V%X, V%X, %d", m, inst.X, inst.Y, inst.N)
	case OpSkipIfPressed, OpSkipIfNotPressed:
		return fmt.Sprintf("%-6s V%X", m, inst.X)
	case OpLoadXDT:
		return fmt.Sprintf("%-6s V%X, DT", m, inst.X)
	case OpLoadXK:
		return fmt.Sprintf("%-6s V%X, K", m, inst.X)
	case OpLoadDTX:
		return fmt.Sprintf("%-6s DT, V%X", m, inst.X)
	case OpLoadSTX:
		return fmt.Sprintf("%-6s ST, V%X", m, inst.X)
	case OpAddIX:
		return fmt.Sprintf("%-6s I, V%X", m, inst.X)
	case OpLoadF:
		return fmt.Sprintf("%-6s F, V%X", m, inst.X)
	case OpLoadB:
		return fmt.Sprintf("%-6s B, V%X", m, inst.X)
	case OpSaveRegs:
		return fmt.Sprintf("%-6s [I], V%X", m, inst.X)
	case OpLoadRegs:
		return fmt.Sprintf("%-6s V%X, [I]", m, inst.X)
	}

	return m
}

/// Disassemble a single opcode.
///
func Disassemble(opcode uint16) string {
	inst, _ := Decode(opcode)
	return inst.String()
}

/// Disassemble the instruction at an address in memory.
///
func (vm *VM) Disassemble(addr uint16) string {
	addr &= addressMask

	opcode := uint16(vm.Memory[addr])<<8 | uint16(vm.Memory[(addr+1)&addressMask])

	return fmt.Sprintf("%04X - %s", addr, Disassemble(opcode))
}
