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

const (
	/// Width of the display in pixels.
	///
	Width = 64

	/// Height of the display in pixels.
	///
	Height = 32

	/// MaxSpriteRows is the tallest sprite DRW can draw.
	///
	MaxSpriteRows = 15
)

/// Frame is a copy of the display that renderers can read freely.
///
type Frame [Height][Width]bool

/// Video memory for CHIP-8 (64x32 bits). Each bit represents a single
/// pixel. It is stored MSB first. For example, pixel <0,0> is bit 0x80
/// of byte 0 and pixel <8,0> is bit 0x80 of byte 1.
///
type Video struct {
	mem [Width * Height / 8]byte
}

/// Resolution returns the width and height of the display.
///
func (v *Video) Resolution() (int, int) {
	return Width, Height
}

/// Clear the video display memory.
///
func (v *Video) Clear() {
	v.mem = [Width * Height / 8]byte{}
}

/// Pixel returns true if the pixel at x, y is set. Coordinates wrap.
///
func (v *Video) Pixel(x, y int) bool {
	i, bit := v.offset(x, y)

	return v.mem[i]&bit != 0
}

/// offset returns the byte and bit mask for a (wrapped) pixel.
///
func (v *Video) offset(x, y int) (int, byte) {
	x &= Width - 1
	y &= Height - 1

	// each scan line is 8 bytes
	p := y*Width + x

	return p >> 3, 0x80 >> uint(p&7)
}

/// Draw a sprite at x, y by xor-ing each bit onto the display. Pixels
/// that fall off an edge wrap around to the other side. Returns true if
/// any pixel was turned off.
///
func (v *Video) Draw(x, y int, sprite []byte) bool {
	c := false

	// clamp to the tallest sprite possible
	if len(sprite) > MaxSpriteRows {
		sprite = sprite[:MaxSpriteRows]
	}

	// draw each row of the sprite
	for row, s := range sprite {
		for col := 0; col < 8; col++ {
			if s&(0x80>>uint(col)) == 0 {
				continue
			}

			i, bit := v.offset(x+col, y+row)

			// was the pixel turned off?
			if v.mem[i]&bit != 0 {
				c = true
			}

			v.mem[i] ^= bit
		}
	}

	return c
}

/// Snapshot copies the display into a frame.
///
func (v *Video) Snapshot() Frame {
	var f Frame

	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			f[y][x] = v.Pixel(x, y)
		}
	}

	return f
}
