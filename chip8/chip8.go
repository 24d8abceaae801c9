package chip8

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"
)

const (
	/// MemorySize is the number of addressable bytes.
	///
	MemorySize = 0x1000

	/// StackDepth is the maximum number of nested subroutine calls.
	///
	StackDepth = 16

	// addresses wrap to 12 bits
	addressMask = MemorySize - 1
)

/// StepEffect tells the host what a call to Step did.
///
type StepEffect int

const (
	/// Executed means one instruction was executed.
	///
	Executed StepEffect = iota

	/// AwaitingKey means the VM is suspended on FX0A and nothing changed.
	///
	AwaitingKey
)

func (e StepEffect) String() string {
	if e == AwaitingKey {
		return "awaiting key"
	}
	return "executed"
}

/// Trace describes an instruction about to be executed. It is reported to
/// VM.Trace, when set, once per executed Step.
///
type Trace struct {
	PC          uint16
	Instruction Instruction
}

func (t Trace) String() string {
	return fmt.Sprintf("%04X - %s", t.PC, t.Instruction)
}

/// VM is the CHIP-8 virtual machine. It is not safe for concurrent use; a
/// host that renders on another goroutine should copy the display with
/// Snapshot.
///
type VM struct {
	/// Memory addressable by CHIP-8. The first 80 bytes hold the font
	/// sprites, programs are loaded at the mode's origin.
	///
	Memory [MemorySize]byte

	/// PC is the program counter.
	///
	PC uint16

	/// I is the address register.
	///
	I uint16

	/// V are the 16 virtual registers. VF doubles as the flag register.
	///
	V [16]byte

	/// DT is the delay timer, ST the sound timer. Both count down once
	/// per call to TickTimers.
	///
	DT byte
	ST byte

	/// Cycles counts the instructions executed since the last reset.
	///
	Cycles int64

	/// Trace, when set, is called before each instruction executes.
	///
	Trace func(Trace)

	// return addresses and the number in use
	stack [StackDepth]uint16
	sp    int

	display Display
	keys    [16]bool

	// key wait state for FX0A; edge is -1 until a key goes down
	waiting bool
	waitX   uint8
	edge    int

	mode   Mode
	quirks Quirks
	rom    []byte
	rng    *rand.Rand
}

/// New creates a CHIP-8 virtual machine with no program loaded.
///
func New(mode Mode, quirks Quirks) *VM {
	vm := &VM{
		mode:   mode,
		quirks: quirks,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	vm.Reset()

	return vm
}

/// LoadFile reads a ROM file and returns a new virtual machine running it.
///
func LoadFile(file string, mode Mode, quirks Quirks) (*VM, error) {
	program, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading rom: %w", err)
	}

	vm := New(mode, quirks)
	if err := vm.Load(program); err != nil {
		return nil, err
	}

	return vm, nil
}

/// Load a program and reset the virtual machine to run it. On error the
/// virtual machine is left untouched.
///
func (vm *VM) Load(program []byte) error {
	origin := int(vm.mode.Origin())

	if len(program) > MemorySize-origin {
		return &RomTooLargeError{
			Size:      len(program),
			Available: MemorySize - origin,
		}
	}

	vm.rom = append([]byte(nil), program...)
	vm.Reset()

	return nil
}

/// Reset the virtual machine back to the state right after Load.
///
func (vm *VM) Reset() {
	vm.Memory = [MemorySize]byte{}

	// font sprites live at the start of memory
	copy(vm.Memory[:], Font[:])

	// the program lives at the origin
	copy(vm.Memory[vm.mode.Origin():], vm.rom)

	vm.PC = vm.mode.Origin()
	vm.I = 0
	vm.V = [16]byte{}
	vm.DT = 0
	vm.ST = 0
	vm.Cycles = 0

	vm.stack = [StackDepth]uint16{}
	vm.sp = 0

	vm.display.Clear()
	vm.keys = [16]bool{}

	vm.waiting = false
	vm.edge = -1
}

/// Seed the random number generator used by CXNN.
///
func (vm *VM) Seed(seed int64) {
	vm.rng.Seed(seed)
}

/// Mode returns the memory layout the VM was created with.
///
func (vm *VM) Mode() Mode {
	return vm.mode
}

/// Quirks returns the quirk set the VM was created with.
///
func (vm *VM) Quirks() Quirks {
	return vm.quirks
}

/// Stack returns a copy of the return addresses in use, oldest first.
///
func (vm *VM) Stack() []uint16 {
	return append([]uint16(nil), vm.stack[:vm.sp]...)
}

/// Display returns the frame buffer. It must not be modified.
///
func (vm *VM) Display() *Display {
	return &vm.display
}

/// Snapshot returns a copy of the frame buffer.
///
func (vm *VM) Snapshot() Display {
	return vm.display
}

/// ToneActive is true while the sound timer is running.
///
func (vm *VM) ToneActive() bool {
	return vm.ST != 0
}

/// Waiting is true while the VM is suspended on FX0A.
///
func (vm *VM) Waiting() bool {
	return vm.waiting
}

/// SetKey sets the state of one of the 16 keypad keys. A key going down
/// while the VM is waiting on FX0A satisfies the wait on the next Step.
///
func (vm *VM) SetKey(key uint8, pressed bool) {
	if key >= 16 {
		return
	}

	if pressed && !vm.keys[key] && vm.waiting && vm.edge < 0 {
		vm.edge = int(key)
	}

	vm.keys[key] = pressed
}

/// PressKey emulates a CHIP-8 key being pressed.
///
func (vm *VM) PressKey(key uint8) {
	vm.SetKey(key, true)
}

/// ReleaseKey emulates a CHIP-8 key being released.
///
func (vm *VM) ReleaseKey(key uint8) {
	vm.SetKey(key, false)
}

/// Key returns the current state of a keypad key.
///
func (vm *VM) Key(key uint8) bool {
	return key < 16 && vm.keys[key]
}

/// TickTimers counts both timers down by one. Call it at 60 Hz.
///
func (vm *VM) TickTimers() {
	if vm.DT > 0 {
		vm.DT--
	}
	if vm.ST > 0 {
		vm.ST--
	}
}

/// Step the CHIP-8 virtual machine a single instruction. After an error the
/// virtual machine is exactly as it was before the call and the returned
/// effect is meaningless.
///
func (vm *VM) Step() (StepEffect, error) {
	if vm.waiting {
		return vm.resume(), nil
	}

	pc := vm.PC

	// fetch the next instruction, invalid ones are dispatched to a handler
	// that fails
	inst, ok := Decode(vm.fetch())

	if ok && vm.Trace != nil {
		vm.Trace(Trace{PC: pc, Instruction: inst})
	}

	if err := handlers[inst.Op](vm, inst); err != nil {
		vm.PC = pc
		return 0, err
	}

	if vm.waiting {
		return AwaitingKey, nil
	}

	// increment the cycle count
	vm.Cycles++

	return Executed, nil
}

/// Fetch the next 16-bit instruction and advance the program counter.
///
func (vm *VM) fetch() uint16 {
	i := vm.PC

	vm.PC = (vm.PC + 2) & addressMask

	return uint16(vm.Memory[i&addressMask])<<8 | uint16(vm.Memory[(i+1)&addressMask])
}

// resume checks a pending FX0A. The edge is cleared when the wait begins
// so keys held from before cannot satisfy it.
func (vm *VM) resume() StepEffect {
	if vm.edge < 0 {
		return AwaitingKey
	}

	vm.V[vm.waitX] = byte(vm.edge)
	vm.PC = (vm.PC + 2) & addressMask
	vm.waiting = false
	vm.edge = -1
	vm.Cycles++

	return Executed
}

/// Dump writes the registers, stack, timers and display as text.
///
func (vm *VM) Dump(w io.Writer) {
	fmt.Fprintf(w, "=== REGISTERS ===\n")
	for i, v := range vm.V {
		fmt.Fprintf(w, "V%X: %02X ", i, v)
		if i&7 == 7 {
			fmt.Fprintln(w)
		}
	}

	fmt.Fprintf(w, "PC: %04X  I: %04X  DT: %02X  ST: %02X\n", vm.PC, vm.I, vm.DT, vm.ST)

	fmt.Fprintf(w, "=== STACK ===\n")
	for i, addr := range vm.Stack() {
		fmt.Fprintf(w, "%2d: %04X\n", i, addr)
	}

	fmt.Fprintf(w, "=== SCREEN ===\n")
	io.WriteString(w, vm.display.String())
}
