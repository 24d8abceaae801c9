/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */

package chip8

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
)

/// Assembly is a completely assembled source file.
///
type Assembly struct {
	/// ROM is the assembled program, starting at Origin.
	///
	ROM []byte

	/// Origin is the address the ROM is loaded at.
	///
	Origin uint16

	/// Labels maps label and EQU names to their values.
	///
	Labels map[string]int

	/// Breakpoints are the addresses marked with BREAK.
	///
	Breakpoints []uint16

	// references to labels not yet defined when they were used
	unresolved []reference
}

/// A label used before it was defined. Word references patch all 16 bits
/// at the offset, others the low 12 bits of an instruction.
///
type reference struct {
	label  string
	offset int
	line   int
	word   bool
}

/// An instruction operand with label references already expanded.
///
type operand struct {
	typ   tokenType
	num   int
	text  string
	label string
	line  int
}

type encoder func(a *Assembly, ops []operand) (uint16, error)

var (
	instructions map[string]encoder
	directives   map[string]func(a *Assembly, ops []operand) error
)

func init() {
	instructions = map[string]encoder{
		"CLS":  (*Assembly).assembleCLS,
		"RET":  (*Assembly).assembleRET,
		"SYS":  (*Assembly).assembleSYS,
		"JP":   (*Assembly).assembleJP,
		"CALL": (*Assembly).assembleCALL,
		"SE":   (*Assembly).assembleSE,
		"SNE":  (*Assembly).assembleSNE,
		"LD":   (*Assembly).assembleLD,
		"ADD":  (*Assembly).assembleADD,
		"OR":   arithmetic(0x1),
		"AND":  arithmetic(0x2),
		"XOR":  arithmetic(0x3),
		"SUB":  arithmetic(0x5),
		"SHR":  shift(0x6),
		"SUBN": arithmetic(0x7),
		"SHL":  shift(0xE),
		"RND":  (*Assembly).assembleRND,
		"DRW":  (*Assembly).assembleDRW,
		"SKP":  keySkip(0x9E),
		"SKNP": keySkip(0xA1),
	}

	directives = map[string]func(a *Assembly, ops []operand) error{
		"BYTE":  (*Assembly).assembleBYTE,
		"WORD":  (*Assembly).assembleWORD,
		"ALIGN": (*Assembly).assembleALIGN,
		"PAD":   (*Assembly).assemblePAD,
		"BREAK": (*Assembly).assembleBREAK,
	}
}

/// Assemble CHIP-8 source code into a program loaded at the mode's origin.
///
func Assemble(source []byte, mode Mode) (*Assembly, error) {
	a := &Assembly{
		Origin: mode.Origin(),
		Labels: make(map[string]int),
	}

	scanner := bufio.NewScanner(bytes.NewReader(source))

	for line := 1; scanner.Scan(); line++ {
		if err := a.assemble(scanner.Text(), line); err != nil {
			return nil, &AssembleError{Line: line, Err: err}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, &AssembleError{Err: err}
	}

	// patch all forward references
	for _, ref := range a.unresolved {
		value, ok := a.Labels[ref.label]
		if !ok {
			return nil, &AssembleError{Line: ref.line, Err: fmt.Errorf("unresolved label %s", ref.label)}
		}

		if ref.word {
			a.ROM[ref.offset] = byte(value >> 8)
			a.ROM[ref.offset+1] = byte(value)
			continue
		}

		if value < 0 || value >= MemorySize {
			return nil, &AssembleError{Line: ref.line, Err: fmt.Errorf("label %s is not an address", ref.label)}
		}

		a.ROM[ref.offset] = a.ROM[ref.offset]&0xF0 | byte(value>>8)
		a.ROM[ref.offset+1] = byte(value)
	}

	a.unresolved = nil

	if available := MemorySize - int(a.Origin); len(a.ROM) > available {
		return nil, &RomTooLargeError{Size: len(a.ROM), Available: available}
	}

	return a, nil
}

/// AssembleFile reads a source file and returns a new virtual machine
/// running the assembled program.
///
func AssembleFile(file string, mode Mode, quirks Quirks) (*VM, *Assembly, error) {
	source, err := os.ReadFile(file)
	if err != nil {
		return nil, nil, fmt.Errorf("reading source: %w", err)
	}

	a, err := Assemble(source, mode)
	if err != nil {
		return nil, nil, err
	}

	vm := New(mode, quirks)
	if err := vm.Load(a.ROM); err != nil {
		return nil, nil, err
	}

	return vm, a, nil
}

/// Address of the next assembled byte.
///
func (a *Assembly) address() int {
	return int(a.Origin) + len(a.ROM)
}

/// Compile a single line into the assembly.
///
func (a *Assembly) assemble(line string, n int) error {
	tokens, err := scanLine(line)
	if err != nil {
		return err
	}

	if len(tokens) > 0 && tokens[0].typ == tokenLabel {
		if err := a.define(tokens[0].text, a.address()); err != nil {
			return err
		}
		tokens = tokens[1:]
	}

	if len(tokens) == 0 {
		return nil
	}

	if tokens[0].typ != tokenIdent {
		return errors.New("expected instruction")
	}

	name := tokens[0].text

	// NAME EQU value
	if len(tokens) > 1 && tokens[1].typ == tokenIdent && tokens[1].text == "EQU" {
		return a.assembleEQU(name, tokens[2:])
	}

	ops, err := a.operands(tokens[1:], n)
	if err != nil {
		return err
	}

	if directive, ok := directives[name]; ok {
		return directive(a, ops)
	}

	encode, ok := instructions[name]
	if !ok {
		return fmt.Errorf("unknown instruction %s", name)
	}

	opcode, err := encode(a, ops)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	a.ROM = append(a.ROM, byte(opcode>>8), byte(opcode))

	return nil
}

/// Define a label.
///
func (a *Assembly) define(label string, value int) error {
	if _, exists := a.Labels[label]; exists {
		return fmt.Errorf("duplicate label %s", label)
	}

	a.Labels[label] = value

	return nil
}

/// Assemble an EQU, binding a name to a literal.
///
func (a *Assembly) assembleEQU(name string, tokens []token) error {
	if len(tokens) != 1 {
		return errors.New("EQU takes a single value")
	}

	t := tokens[0]
	switch t.typ {
	case tokenLit:
		return a.define(name, t.num)
	case tokenIdent:
		if v, ok := a.Labels[t.text]; ok {
			return a.define(name, v)
		}
		return fmt.Errorf("undefined label %s", t.text)
	}

	return errors.New("EQU requires a literal")
}

/// Split comma-separated tokens into operands, expanding labels.
///
func (a *Assembly) operands(tokens []token, line int) ([]operand, error) {
	ops := make([]operand, 0, 3)

	for i, t := range tokens {
		if i%2 == 1 {
			if t.typ != tokenComma {
				return nil, errors.New("expected comma")
			}
			continue
		}

		switch t.typ {
		case tokenComma, tokenLabel:
			return nil, errors.New("expected operand")
		case tokenIdent:
			if v, ok := a.Labels[t.text]; ok {
				ops = append(ops, operand{typ: tokenLit, num: v})
			} else {
				ops = append(ops, operand{typ: tokenLit, label: t.text, line: line})
			}
		default:
			ops = append(ops, operand{typ: t.typ, num: t.num, text: t.text})
		}
	}

	if len(tokens) > 0 && len(tokens)%2 == 0 {
		return nil, errors.New("expected operand")
	}

	return ops, nil
}

/// Match operand types.
///
func match(ops []operand, types ...tokenType) bool {
	if len(ops) != len(types) {
		return false
	}

	for i, typ := range types {
		if ops[i].typ != typ {
			return false
		}
	}

	return true
}

var errOperands = errors.New("illegal operands")

/// Resolve a 12-bit address operand. Undefined labels are patched later.
///
func (a *Assembly) addr(op operand) (uint16, error) {
	if op.label != "" {
		a.unresolved = append(a.unresolved, reference{label: op.label, offset: len(a.ROM), line: op.line})
		return 0, nil
	}

	if op.num < 0 || op.num >= MemorySize {
		return 0, fmt.Errorf("address %d out of range", op.num)
	}

	return uint16(op.num), nil
}

/// Resolve a byte operand, allowing negative values down to -128.
///
func imm8(op operand) (uint16, error) {
	if op.label != "" {
		return 0, fmt.Errorf("undefined label %s", op.label)
	}

	if op.num < -128 || op.num > 0xFF {
		return 0, fmt.Errorf("byte %d out of range", op.num)
	}

	return uint16(op.num) & 0xFF, nil
}

func vx(x int) uint16 {
	return uint16(x) << 8
}

func vy(y int) uint16 {
	return uint16(y) << 4
}

func (a *Assembly) assembleCLS(ops []operand) (uint16, error) {
	if !match(ops) {
		return 0, errOperands
	}
	return 0x00E0, nil
}

func (a *Assembly) assembleRET(ops []operand) (uint16, error) {
	if !match(ops) {
		return 0, errOperands
	}
	return 0x00EE, nil
}

func (a *Assembly) assembleSYS(ops []operand) (uint16, error) {
	if !match(ops, tokenLit) {
		return 0, errOperands
	}

	return a.addr(ops[0])
}

func (a *Assembly) assembleJP(ops []operand) (uint16, error) {
	switch {
	case match(ops, tokenLit):
		nnn, err := a.addr(ops[0])
		return 0x1000 | nnn, err
	case match(ops, tokenV, tokenLit) && ops[0].num == 0:
		nnn, err := a.addr(ops[1])
		return 0xB000 | nnn, err
	}

	return 0, errOperands
}

func (a *Assembly) assembleCALL(ops []operand) (uint16, error) {
	if !match(ops, tokenLit) {
		return 0, errOperands
	}

	nnn, err := a.addr(ops[0])
	return 0x2000 | nnn, err
}

func (a *Assembly) assembleSE(ops []operand) (uint16, error) {
	return a.skip(ops, 0x3000, 0x5000)
}

func (a *Assembly) assembleSNE(ops []operand) (uint16, error) {
	return a.skip(ops, 0x4000, 0x9000)
}

/// Compare a register with a byte or another register.
///
func (a *Assembly) skip(ops []operand, imm, reg uint16) (uint16, error) {
	switch {
	case match(ops, tokenV, tokenLit):
		nn, err := imm8(ops[1])
		return imm | vx(ops[0].num) | nn, err
	case match(ops, tokenV, tokenV):
		return reg | vx(ops[0].num) | vy(ops[1].num), nil
	}

	return 0, errOperands
}

func (a *Assembly) assembleLD(ops []operand) (uint16, error) {
	switch {
	case match(ops, tokenV, tokenLit):
		nn, err := imm8(ops[1])
		return 0x6000 | vx(ops[0].num) | nn, err
	case match(ops, tokenV, tokenV):
		return 0x8000 | vx(ops[0].num) | vy(ops[1].num), nil
	case match(ops, tokenI, tokenLit):
		nnn, err := a.addr(ops[1])
		return 0xA000 | nnn, err
	case match(ops, tokenV, tokenDT):
		return 0xF007 | vx(ops[0].num), nil
	case match(ops, tokenV, tokenK):
		return 0xF00A | vx(ops[0].num), nil
	case match(ops, tokenDT, tokenV):
		return 0xF015 | vx(ops[1].num), nil
	case match(ops, tokenST, tokenV):
		return 0xF018 | vx(ops[1].num), nil
	case match(ops, tokenF, tokenV):
		return 0xF029 | vx(ops[1].num), nil
	case match(ops, tokenB, tokenV):
		return 0xF033 | vx(ops[1].num), nil
	case match(ops, tokenIndirect, tokenV):
		return 0xF055 | vx(ops[1].num), nil
	case match(ops, tokenV, tokenIndirect):
		return 0xF065 | vx(ops[0].num), nil
	}

	return 0, errOperands
}

func (a *Assembly) assembleADD(ops []operand) (uint16, error) {
	switch {
	case match(ops, tokenV, tokenLit):
		nn, err := imm8(ops[1])
		return 0x7000 | vx(ops[0].num) | nn, err
	case match(ops, tokenV, tokenV):
		return 0x8004 | vx(ops[0].num) | vy(ops[1].num), nil
	case match(ops, tokenI, tokenV):
		return 0xF01E | vx(ops[1].num), nil
	}

	return 0, errOperands
}

/// 8XYN register to register operations.
///
func arithmetic(n uint16) encoder {
	return func(a *Assembly, ops []operand) (uint16, error) {
		if !match(ops, tokenV, tokenV) {
			return 0, errOperands
		}
		return 0x8000 | vx(ops[0].num) | vy(ops[1].num) | n, nil
	}
}

/// Shifts take an optional source register, defaulting to the target.
///
func shift(n uint16) encoder {
	return func(a *Assembly, ops []operand) (uint16, error) {
		switch {
		case match(ops, tokenV):
			return 0x8000 | vx(ops[0].num) | vy(ops[0].num) | n, nil
		case match(ops, tokenV, tokenV):
			return 0x8000 | vx(ops[0].num) | vy(ops[1].num) | n, nil
		}
		return 0, errOperands
	}
}

func keySkip(nn uint16) encoder {
	return func(a *Assembly, ops []operand) (uint16, error) {
		if !match(ops, tokenV) {
			return 0, errOperands
		}
		return 0xE000 | vx(ops[0].num) | nn, nil
	}
}

func (a *Assembly) assembleRND(ops []operand) (uint16, error) {
	if !match(ops, tokenV, tokenLit) {
		return 0, errOperands
	}

	nn, err := imm8(ops[1])
	return 0xC000 | vx(ops[0].num) | nn, err
}

func (a *Assembly) assembleDRW(ops []operand) (uint16, error) {
	if !match(ops, tokenV, tokenV, tokenLit) {
		return 0, errOperands
	}

	n := ops[2]
	if n.label != "" || n.num < 0 || n.num > 0xF {
		return 0, errors.New("sprite height must be 0-15")
	}

	return 0xD000 | vx(ops[0].num) | vy(ops[1].num) | uint16(n.num), nil
}

/// Assemble a BYTE directive of literals and strings.
///
func (a *Assembly) assembleBYTE(ops []operand) error {
	for _, op := range ops {
		switch op.typ {
		case tokenLit:
			b, err := imm8(op)
			if err != nil {
				return err
			}
			a.ROM = append(a.ROM, byte(b))
		case tokenText:
			a.ROM = append(a.ROM, op.text...)
		default:
			return errOperands
		}
	}

	return nil
}

/// Assemble a WORD directive, most significant byte first.
///
func (a *Assembly) assembleWORD(ops []operand) error {
	for _, op := range ops {
		if op.typ != tokenLit {
			return errOperands
		}

		if op.label != "" {
			a.unresolved = append(a.unresolved, reference{label: op.label, offset: len(a.ROM), line: op.line, word: true})
			a.ROM = append(a.ROM, 0, 0)
			continue
		}

		if op.num < -0x8000 || op.num > 0xFFFF {
			return fmt.Errorf("word %d out of range", op.num)
		}

		a.ROM = append(a.ROM, byte(op.num>>8), byte(op.num))
	}

	return nil
}

/// Assemble an ALIGN directive, padding to a power of two address.
///
func (a *Assembly) assembleALIGN(ops []operand) error {
	if !match(ops, tokenLit) || ops[0].label != "" {
		return errOperands
	}

	n := ops[0].num
	if n <= 0 || n > MemorySize || n&(n-1) != 0 {
		return fmt.Errorf("illegal alignment %d", n)
	}

	pad := (n - a.address()&(n-1)) & (n - 1)
	a.ROM = append(a.ROM, make([]byte, pad)...)

	return nil
}

/// Assemble a PAD directive, reserving zeroed bytes.
///
func (a *Assembly) assemblePAD(ops []operand) error {
	if !match(ops, tokenLit) || ops[0].label != "" {
		return errOperands
	}

	n := ops[0].num
	if n < 0 || a.address()+n > MemorySize {
		return fmt.Errorf("illegal size %d", n)
	}

	a.ROM = append(a.ROM, make([]byte, n)...)

	return nil
}

/// Mark the next address as a breakpoint.
///
func (a *Assembly) assembleBREAK(ops []operand) error {
	if !match(ops) {
		return errOperands
	}

	a.Breakpoints = append(a.Breakpoints, uint16(a.address()))

	return nil
}
