package chip8

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is. Each typed error below matches exactly one.
var (
	ErrRomTooLarge   = errors.New("rom too large")
	ErrInvalidOpcode = errors.New("invalid opcode")
	ErrStackFault    = errors.New("stack fault")
	ErrAssemble      = errors.New("assemble failed")
)

/// RomTooLargeError is returned by Load when the program does not fit
/// between the program origin and the end of memory.
///
type RomTooLargeError struct {
	Size      int
	Available int
}

func (e *RomTooLargeError) Error() string {
	return fmt.Sprintf("rom too large: %d bytes, %d available", e.Size, e.Available)
}

func (e *RomTooLargeError) Is(target error) bool {
	return target == ErrRomTooLarge
}

/// InvalidOpcodeError is returned by Step for an opcode with no decode path.
///
type InvalidOpcodeError struct {
	Opcode uint16
	PC     uint16
}

func (e *InvalidOpcodeError) Error() string {
	return fmt.Sprintf("invalid opcode %04X at %04X", e.Opcode, e.PC)
}

func (e *InvalidOpcodeError) Is(target error) bool {
	return target == ErrInvalidOpcode
}

/// StackFaultKind tells overflow from underflow.
///
type StackFaultKind int

const (
	StackOverflow StackFaultKind = iota
	StackUnderflow
)

func (k StackFaultKind) String() string {
	if k == StackOverflow {
		return "stack overflow"
	}
	return "stack underflow"
}

/// StackFault is returned by Step when CALL exceeds the stack depth or RET
/// finds the stack empty.
///
type StackFault struct {
	Kind StackFaultKind
	PC   uint16
}

func (e *StackFault) Error() string {
	return fmt.Sprintf("%s at %04X", e.Kind, e.PC)
}

func (e *StackFault) Is(target error) bool {
	return target == ErrStackFault
}

/// AssembleError is returned by Assemble for a source line that cannot
/// be assembled.
///
type AssembleError struct {
	Line int
	Err  error
}

func (e *AssembleError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("assemble: %v", e.Err)
	}
	return fmt.Sprintf("assemble: line %d: %v", e.Line, e.Err)
}

func (e *AssembleError) Unwrap() error {
	return e.Err
}

func (e *AssembleError) Is(target error) bool {
	return target == ErrAssemble
}
