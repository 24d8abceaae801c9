package main

import (
	"fmt"
	"strconv"

	"github.com/flake-8/emulator/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	glyphWidth  = 4
	glyphHeight = 5

	// glyphs are laid out side by side with a blank column between
	glyphPitch = glyphWidth + 1
)

var (
	/// Texture containing the CHIP-8 hex digit font, for the pause overlay.
	///
	Font *sdl.Texture
)

/// InitFont renders the CHIP-8 font sprites into a texture.
///
func InitFont() error {
	var err error

	Font, err = Renderer.CreateTexture(sdl.PIXELFORMAT_RGBA8888, sdl.TEXTUREACCESS_TARGET, 16*glyphPitch, glyphHeight)
	if err != nil {
		return fmt.Errorf("creating font texture: %w", err)
	}

	// transparent background
	_ = Font.SetBlendMode(sdl.BLENDMODE_BLEND)

	if err := Renderer.SetRenderTarget(Font); err != nil {
		return fmt.Errorf("setting render target: %w", err)
	}

	_ = Renderer.SetDrawColor(0, 0, 0, 0)
	_ = Renderer.Clear()
	_ = Renderer.SetDrawColor(255, 255, 255, 255)

	for digit := 0; digit < 16; digit++ {
		for row := 0; row < glyphHeight; row++ {
			bits := chip8.Font[digit*glyphHeight+row]

			for col := 0; col < glyphWidth; col++ {
				if bits&(0x80>>col) != 0 {
					_ = Renderer.DrawPoint(int32(digit*glyphPitch+col), int32(row))
				}
			}
		}
	}

	return Renderer.SetRenderTarget(nil)
}

/// DrawText using the font. Only hex digits are drawn, anything else
/// leaves a space.
///
func DrawText(s string, x, y, scale int32, c Color) {
	_ = Font.SetColorMod(c.R, c.G, c.B)

	src := sdl.Rect{W: glyphWidth, H: glyphHeight}
	dst := sdl.Rect{X: x, Y: y, W: glyphWidth * scale, H: glyphHeight * scale}

	for _, r := range s {
		if digit, err := strconv.ParseUint(string(r), 16, 8); err == nil {
			src.X = int32(digit) * glyphPitch

			_ = Renderer.Copy(Font, &src, &dst)
		}

		// advance
		dst.X += glyphPitch * scale
	}
}
