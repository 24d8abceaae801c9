package main

import (
	"fmt"

	"github.com/flake-8/emulator/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// Render target the size of the CHIP-8 display.
	///
	Screen *sdl.Texture

	/// Colors for set and clear pixels.
	///
	Foreground, Background Color
)

/// InitScreen creates the render target for the CHIP-8 display.
///
func InitScreen(fg, bg Color) error {
	var err error

	Foreground, Background = fg, bg

	// create a render target for the display
	Screen, err = Renderer.CreateTexture(sdl.PIXELFORMAT_RGB888, sdl.TEXTUREACCESS_TARGET, chip8.Width, chip8.Height)
	if err != nil {
		return fmt.Errorf("creating screen texture: %w", err)
	}

	return nil
}

/// RefreshScreen with the CHIP-8 display.
///
func RefreshScreen(display *chip8.Display) error {
	if err := Renderer.SetRenderTarget(Screen); err != nil {
		return fmt.Errorf("setting render target: %w", err)
	}

	// clear pixels
	_ = Renderer.SetDrawColor(Background.R, Background.G, Background.B, 255)
	_ = Renderer.Clear()

	// set pixels
	_ = Renderer.SetDrawColor(Foreground.R, Foreground.G, Foreground.B, 255)

	for y := 0; y < chip8.Height; y++ {
		for x := 0; x < chip8.Width; x++ {
			if display.Pixel(x, y) {
				_ = Renderer.DrawPoint(int32(x), int32(y))
			}
		}
	}

	// restore the render target
	return Renderer.SetRenderTarget(nil)
}

/// CopyScreen to the window, stretched by scale.
///
func CopyScreen(scale int32) {
	src := sdl.Rect{W: chip8.Width, H: chip8.Height}
	dst := sdl.Rect{W: chip8.Width * scale, H: chip8.Height * scale}

	_ = Renderer.Copy(Screen, &src, &dst)
}
