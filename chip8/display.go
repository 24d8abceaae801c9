package chip8

import "strings"

const (
	/// Width of the display in pixels.
	///
	Width = 64

	/// Height of the display in pixels.
	///
	Height = 32
)

/// Display is the 64x32 monochrome frame buffer. Pixel <0,0> is the top
/// left corner.
///
type Display struct {
	pixels [Width * Height]bool
}

/// Pixel returns true if the pixel at x, y is set. Coordinates wrap.
///
func (d *Display) Pixel(x, y int) bool {
	return d.pixels[index(x, y)]
}

/// Clear turns every pixel off.
///
func (d *Display) Clear() {
	d.pixels = [Width * Height]bool{}
}

/// Draw XORs a sprite onto the display with its top left corner at x, y
/// (wrapped onto the display). Each row wraps horizontally, rows that fall
/// below the bottom edge are clipped. Returns true if any pixel was erased.
///
func (d *Display) Draw(x, y int, sprite []byte) bool {
	x %= Width
	y %= Height

	collision := false

	for row, bits := range sprite {
		py := y + row

		// the sprite as a whole does not wrap vertically
		if py >= Height {
			break
		}

		for col := 0; col < 8; col++ {
			if bits&(0x80>>uint(col)) == 0 {
				continue
			}

			i := index(x+col, py)

			if d.pixels[i] {
				collision = true
			}

			d.pixels[i] = !d.pixels[i]
		}
	}

	return collision
}

/// String renders the display as text, one line per row: '#' for a set
/// pixel and '.' for a clear one.
///
func (d *Display) String() string {
	var sb strings.Builder

	sb.Grow((Width + 1) * Height)

	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if d.pixels[y*Width+x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

func index(x, y int) int {
	x %= Width
	y %= Height

	if x < 0 {
		x += Width
	}
	if y < 0 {
		y += Height
	}

	return y*Width + x
}
