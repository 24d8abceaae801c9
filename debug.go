package main

import (
	"bytes"

	"github.com/flake-8/emulator/chip8"
	"github.com/retroenv/retrogolib/log"
)

var (
	/// True if pausing emulation (single stepping).
	///
	Paused bool
)

/// DebugTrace logs each instruction as it executes. Only installed when
/// debugging, since it runs for every step.
///
func DebugTrace(t chip8.Trace) {
	Logger.Debug("Step",
		log.Hex("pc", t.PC),
		log.Hex("opcode", t.Instruction.Opcode),
		log.String("instruction", t.Instruction.String()))
}

/// DebugDump writes the registers, stack and screen to the log.
///
func DebugDump() {
	var buf bytes.Buffer

	VM.Dump(&buf)
	LogLines(Logger, buf.Bytes())
}
