package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/flake-8/emulator/chip8"
)

const (
	/// DefaultSpeed is the CPU rate in instructions per second.
	///
	DefaultSpeed = 700

	/// MinSpeed and MaxSpeed bound the CPU rate.
	///
	MinSpeed = 60
	MaxSpeed = 6000

	/// DefaultScale is the size of a CHIP-8 pixel on screen.
	///
	DefaultScale = 10
)

/// Color is an RGB color for the screen.
///
type Color struct {
	R, G, B uint8
}

var (
	/// DefaultForeground is the color of set pixels.
	///
	DefaultForeground = Color{R: 0xFF, G: 0xFF, B: 0xFF}

	/// DefaultBackground is the color of clear pixels.
	///
	DefaultBackground = Color{}
)

/// ParseColor parses a hex color of the form #RRGGBB. The # is optional.
///
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")

	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid color %q: expected #RRGGBB", s)
	}

	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}

	return Color{
		R: uint8(n >> 16),
		G: uint8(n >> 8),
		B: uint8(n),
	}, nil
}

/// Config is everything the command line controls.
///
type Config struct {
	/// ROM is the path of the program to run. Empty asks with a dialog.
	///
	ROM string

	Debug bool
	Quiet bool

	/// Foreground and Background are hex colors for the screen.
	///
	Foreground string
	Background string

	/// ETI starts the VM in ETI 660 mode.
	///
	ETI bool

	ShiftUsesVY          bool
	JumpUsesVX           bool
	LoadStoreIncrementsI bool

	/// Speed in instructions per second.
	///
	Speed int

	Scale int

	/// Seed for the random number generator, 0 seeds from the clock.
	///
	Seed int64

	/// WAV is a file to record the audio to.
	///
	WAV string

	StatsView bool

	fg, bg Color
}

/// Validate checks the configuration and parses the colors.
///
func (c *Config) Validate() error {
	var err error

	c.fg = DefaultForeground
	if c.Foreground != "" {
		if c.fg, err = ParseColor(c.Foreground); err != nil {
			return fmt.Errorf("foreground: %w", err)
		}
	}

	c.bg = DefaultBackground
	if c.Background != "" {
		if c.bg, err = ParseColor(c.Background); err != nil {
			return fmt.Errorf("background: %w", err)
		}
	}

	if c.Speed < MinSpeed || c.Speed > MaxSpeed {
		return fmt.Errorf("speed %d out of range %d-%d", c.Speed, MinSpeed, MaxSpeed)
	}

	if c.Scale < 1 {
		return errors.New("scale must be at least 1")
	}

	return nil
}

/// Mode returns the memory layout to run the ROM with.
///
func (c *Config) Mode() chip8.Mode {
	if c.ETI {
		return chip8.ETI660
	}
	return chip8.Standard
}

/// Quirks returns the mode's default quirks with the command line
/// overrides applied.
///
func (c *Config) Quirks() chip8.Quirks {
	q := chip8.DefaultQuirks(c.Mode())

	q.ShiftUsesVY = q.ShiftUsesVY || c.ShiftUsesVY
	q.JumpUsesVX = q.JumpUsesVX || c.JumpUsesVX
	q.LoadStoreIncrementsI = q.LoadStoreIncrementsI || c.LoadStoreIncrementsI

	return q
}

/// Colors returns the validated foreground and background colors.
///
func (c *Config) Colors() (Color, Color) {
	return c.fg, c.bg
}
