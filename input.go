package main

import (
	"strconv"

	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// Mapping of modern keyboard to CHIP-8 keys.
	///
	KeyMap = map[sdl.Scancode]uint8{
		sdl.SCANCODE_X: 0x0,
		sdl.SCANCODE_1: 0x1,
		sdl.SCANCODE_2: 0x2,
		sdl.SCANCODE_3: 0x3,
		sdl.SCANCODE_Q: 0x4,
		sdl.SCANCODE_W: 0x5,
		sdl.SCANCODE_E: 0x6,
		sdl.SCANCODE_A: 0x7,
		sdl.SCANCODE_S: 0x8,
		sdl.SCANCODE_D: 0x9,
		sdl.SCANCODE_Z: 0xA,
		sdl.SCANCODE_C: 0xB,
		sdl.SCANCODE_4: 0xC,
		sdl.SCANCODE_R: 0xD,
		sdl.SCANCODE_F: 0xE,
		sdl.SCANCODE_V: 0xF,
	}
)

/// ProcessEvents from SDL and map keys to the CHIP-8 VM. Returns false
/// once the user quits.
///
func ProcessEvents() bool {
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch ev := e.(type) {
		case *sdl.QuitEvent:
			return false
		case *sdl.KeyboardEvent:
			if ev.Repeat != 0 {
				continue
			}

			if key, ok := KeyMap[ev.Keysym.Scancode]; ok {
				VM.SetKey(key, ev.Type == sdl.KEYDOWN)
				continue
			}

			if ev.Type == sdl.KEYDOWN && !ProcessControl(ev.Keysym) {
				return false
			}
		}
	}

	return true
}

/// ProcessControl handles an emulator control key.
///
func ProcessControl(key sdl.Keysym) bool {
	switch key.Scancode {
	case sdl.SCANCODE_ESCAPE:
		return false
	case sdl.SCANCODE_BACKSPACE:
		VM.Reset()

		// holding control during reset will reboot paused
		Paused = key.Mod&sdl.KMOD_CTRL != 0

		Logger.Info("Reset", log.String("rom", ROM))
	case sdl.SCANCODE_F3:
		LoadDialog()
	case sdl.SCANCODE_LEFTBRACKET:
		SetSpeed(Speed - Speed/10)
	case sdl.SCANCODE_RIGHTBRACKET:
		SetSpeed(Speed + Speed/10)
	case sdl.SCANCODE_F5, sdl.SCANCODE_SPACE:
		Paused = !Paused

		Logger.Info("Paused", log.String("paused", strconv.FormatBool(Paused)))
	case sdl.SCANCODE_F6, sdl.SCANCODE_F10:
		if Paused {
			Step()
		}
	case sdl.SCANCODE_F8:
		DebugDump()
	}

	return true
}
