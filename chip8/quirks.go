package chip8

/// Mode selects the memory layout the ROM was written for.
///
type Mode int

const (
	/// Standard CHIP-8, programs begin at 0x200.
	///
	Standard Mode = iota

	/// ETI 660, programs begin at 0x600.
	///
	ETI660
)

/// Origin returns the address programs are loaded to and begin at.
///
func (m Mode) Origin() uint16 {
	if m == ETI660 {
		return 0x600
	}
	return 0x200
}

func (m Mode) String() string {
	if m == ETI660 {
		return "ETI 660"
	}
	return "CHIP-8"
}

/// Quirks select between conflicting historical behaviors that different
/// ROMs rely on. The zero value is the original hardware behavior used by
/// the interpreter unless told otherwise.
///
type Quirks struct {
	/// ShiftUsesVY makes 8XY6 and 8XYE shift VY and store the result in VX
	/// (COSMAC VIP). When false VX is shifted in place (CHIP-48, SCHIP).
	///
	ShiftUsesVY bool

	/// JumpUsesVX makes BXNN jump to XNN + VX (SCHIP). When false BNNN
	/// jumps to NNN + V0.
	///
	JumpUsesVX bool

	/// LoadStoreIncrementsI leaves I pointing past the last register
	/// transferred by FX55 and FX65 (COSMAC VIP).
	///
	LoadStoreIncrementsI bool
}

/// DefaultQuirks returns the quirk set a mode runs with when none is given.
/// Both modes currently share the same defaults.
///
func DefaultQuirks(mode Mode) Quirks {
	return Quirks{}
}
