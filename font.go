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

package main

import (
	"github.com/veandco/go-sdl2/sdl"
)

const (
	/// GlyphWidth and GlyphHeight are the size of a debug font character.
	///
	GlyphWidth  = 5
	GlyphHeight = 7

	/// GlyphAdvance is the horizontal distance between characters.
	///
	GlyphAdvance = 7
)

/// Glyphs for ASCII 32-95. Each glyph is 5 columns, bit 0 is the top row.
///
var Glyphs = [64][GlyphWidth]byte{
	{0x00, 0x00, 0x00, 0x00, 0x00}, // ' '
	{0x00, 0x00, 0x5F, 0x00, 0x00}, // !
	{0x00, 0x07, 0x00, 0x07, 0x00}, // "
	{0x14, 0x7F, 0x14, 0x7F, 0x14}, // #
	{0x24, 0x2A, 0x7F, 0x2A, 0x12}, // $
	{0x23, 0x13, 0x08, 0x64, 0x62}, // %
	{0x36, 0x49, 0x56, 0x20, 0x50}, // &
	{0x00, 0x05, 0x03, 0x00, 0x00}, // '
	{0x00, 0x1C, 0x22, 0x41, 0x00}, // (
	{0x00, 0x41, 0x22, 0x1C, 0x00}, // )
	{0x14, 0x08, 0x3E, 0x08, 0x14}, // *
	{0x08, 0x08, 0x3E, 0x08, 0x08}, // +
	{0x00, 0x50, 0x30, 0x00, 0x00}, // ,
	{0x08, 0x08, 0x08, 0x08, 0x08}, // -
	{0x00, 0x60, 0x60, 0x00, 0x00}, // .
	{0x20, 0x10, 0x08, 0x04, 0x02}, // /
	{0x3E, 0x51, 0x49, 0x45, 0x3E}, // 0
	{0x00, 0x42, 0x7F, 0x40, 0x00}, // 1
	{0x42, 0x61, 0x51, 0x49, 0x46}, // 2
	{0x21, 0x41, 0x45, 0x4B, 0x31}, // 3
	{0x18, 0x14, 0x12, 0x7F, 0x10}, // 4
	{0x27, 0x45, 0x45, 0x45, 0x39}, // 5
	{0x3C, 0x4A, 0x49, 0x49, 0x30}, // 6
	{0x01, 0x71, 0x09, 0x05, 0x03}, // 7
	{0x36, 0x49, 0x49, 0x49, 0x36}, // 8
	{0x06, 0x49, 0x49, 0x29, 0x1E}, // 9
	{0x00, 0x36, 0x36, 0x00, 0x00}, // :
	{0x00, 0x56, 0x36, 0x00, 0x00}, // ;
	{0x08, 0x14, 0x22, 0x41, 0x00}, // <
	{0x14, 0x14, 0x14, 0x14, 0x14}, // =
	{0x00, 0x41, 0x22, 0x14, 0x08}, // >
	{0x02, 0x01, 0x51, 0x09, 0x06}, // ?
	{0x32, 0x49, 0x79, 0x41, 0x3E}, // @
	{0x7E, 0x11, 0x11, 0x11, 0x7E}, // A
	{0x7F, 0x49, 0x49, 0x49, 0x36}, // B
	{0x3E, 0x41, 0x41, 0x41, 0x22}, // C
	{0x7F, 0x41, 0x41, 0x22, 0x1C}, // D
	{0x7F, 0x49, 0x49, 0x49, 0x41}, // E
	{0x7F, 0x09, 0x09, 0x09, 0x01}, // F
	{0x3E, 0x41, 0x49, 0x49, 0x7A}, // G
	{0x7F, 0x08, 0x08, 0x08, 0x7F}, // H
	{0x00, 0x41, 0x7F, 0x41, 0x00}, // I
	{0x20, 0x40, 0x41, 0x3F, 0x01}, // J
	{0x7F, 0x08, 0x14, 0x22, 0x41}, // K
	{0x7F, 0x40, 0x40, 0x40, 0x40}, // L
	{0x7F, 0x02, 0x0C, 0x02, 0x7F}, // M
	{0x7F, 0x04, 0x08, 0x10, 0x7F}, // N
	{0x3E, 0x41, 0x41, 0x41, 0x3E}, // O
	{0x7F, 0x09, 0x09, 0x09, 0x06}, // P
	{0x3E, 0x41, 0x51, 0x21, 0x5E}, // Q
	{0x7F, 0x09, 0x19, 0x29, 0x46}, // R
	{0x46, 0x49, 0x49, 0x49, 0x31}, // S
	{0x01, 0x01, 0x7F, 0x01, 0x01}, // T
	{0x3F, 0x40, 0x40, 0x40, 0x3F}, // U
	{0x1F, 0x20, 0x40, 0x20, 0x1F}, // V
	{0x3F, 0x40, 0x38, 0x40, 0x3F}, // W
	{0x63, 0x14, 0x08, 0x14, 0x63}, // X
	{0x07, 0x08, 0x70, 0x08, 0x07}, // Y
	{0x61, 0x51, 0x49, 0x45, 0x43}, // Z
	{0x00, 0x7F, 0x41, 0x41, 0x00}, // [
	{0x02, 0x04, 0x08, 0x10, 0x20}, // \
	{0x00, 0x41, 0x41, 0x7F, 0x00}, // ]
	{0x04, 0x02, 0x01, 0x02, 0x04}, // ^
	{0x40, 0x40, 0x40, 0x40, 0x40}, // _
}

/// glyphIndex returns the glyph for a character. Lower case letters use
/// the upper case glyph and anything else unknown is blank.
///
func glyphIndex(c rune) int {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}

	if c < ' ' || c > '_' {
		return 0
	}

	return int(c - ' ')
}

/// createFont renders the glyphs onto a texture, one glyph cell per
/// GlyphWidth+1 pixels.
///
func createFont(renderer *sdl.Renderer) (*sdl.Texture, error) {
	surface, err := sdl.CreateRGBSurface(0, int32(len(Glyphs)*(GlyphWidth+1)), GlyphHeight, 32, 0xFF0000, 0xFF00, 0xFF, 0)
	if err != nil {
		return nil, err
	}

	defer surface.Free()

	// get the magenta color
	mask := sdl.MapRGB(surface.Format, 255, 0, 255)
	white := sdl.MapRGB(surface.Format, 255, 255, 255)

	_ = surface.FillRect(nil, mask)

	for i, g := range Glyphs {
		for col, bits := range g {
			for row := 0; row < GlyphHeight; row++ {
				if bits&(1<<uint(row)) == 0 {
					continue
				}

				_ = surface.FillRect(&sdl.Rect{
					X: int32(i*(GlyphWidth+1) + col),
					Y: int32(row),
					W: 1,
					H: 1,
				}, white)
			}
		}
	}

	// set the mask color key
	if err := surface.SetColorKey(true, mask); err != nil {
		return nil, err
	}

	return renderer.CreateTextureFromSurface(surface)
}

/// DrawText using the debug font.
///
func (w *Window) DrawText(s string, x, y int32) {
	src := sdl.Rect{W: GlyphWidth, H: GlyphHeight}
	dst := sdl.Rect{
		X: x,
		Y: y,
		W: GlyphWidth,
		H: GlyphHeight,
	}

	// loop over all the characters in the string
	for _, c := range s {
		if i := glyphIndex(c); i > 0 {
			src.X = int32(i * (GlyphWidth + 1))

			// draw the character to the renderer
			_ = w.renderer.Copy(w.font, &src, &dst)
		}

		// advance
		dst.X += GlyphAdvance
	}
}
