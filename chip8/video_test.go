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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/retroenv/retrogolib/assert"
)

func TestVideoDrawXor(t *testing.T) {
	var v Video

	sprite := Font[0:GlyphSize]

	assert.False(t, v.Draw(10, 5, sprite))
	assert.True(t, v.Pixel(10, 5))
	assert.True(t, v.Pixel(13, 5))
	assert.False(t, v.Pixel(14, 5))

	// drawing the same sprite again erases it
	assert.True(t, v.Draw(10, 5, sprite))

	if diff := cmp.Diff(Frame{}, v.Snapshot()); diff != "" {
		t.Errorf("display not cleared (-want +got):\n%s", diff)
	}
}

func TestVideoDrawWraps(t *testing.T) {
	var v Video

	v.Draw(62, 31, []byte{0xF0, 0xF0})

	assert.True(t, v.Pixel(62, 31))
	assert.True(t, v.Pixel(63, 31))
	assert.True(t, v.Pixel(0, 31))
	assert.True(t, v.Pixel(1, 31))
	assert.True(t, v.Pixel(62, 0))
	assert.True(t, v.Pixel(1, 0))
	assert.False(t, v.Pixel(2, 0))

	// coordinates past the edge wrap before drawing
	var w Video

	w.Draw(64+3, 32+2, []byte{0x80})
	assert.True(t, w.Pixel(3, 2))
}

func TestVideoDrawClamp(t *testing.T) {
	var v Video

	sprite := make([]byte, 20)
	for i := range sprite {
		sprite[i] = 0x80
	}

	v.Draw(0, 0, sprite)

	assert.True(t, v.Pixel(0, MaxSpriteRows-1))
	assert.False(t, v.Pixel(0, MaxSpriteRows))
}

func TestVideoClear(t *testing.T) {
	var v Video

	v.Draw(0, 0, []byte{0xFF})
	v.Clear()

	assert.False(t, v.Pixel(0, 0))

	w, h := v.Resolution()
	assert.Equal(t, 64, w)
	assert.Equal(t, 32, h)
}

func TestKeypad(t *testing.T) {
	var k Keypad

	assert.True(t, k.SetKey(7, true))
	assert.True(t, k.IsPressed(7))

	// held keys don't produce another press
	assert.False(t, k.SetKey(7, true))
	assert.False(t, k.SetKey(7, false))
	assert.False(t, k.IsPressed(7))

	// out of range keys are ignored
	assert.False(t, k.SetKey(16, true))
	assert.False(t, k.IsPressed(-1))

	k.Await(3)

	x, ok := k.Waiting()
	assert.True(t, ok)
	assert.Equal(t, 3, x)

	k.Release()

	_, ok = k.Waiting()
	assert.False(t, ok)
}

func TestTimers(t *testing.T) {
	var tm Timers

	tm.SetDelay(2)
	tm.SetSound(1)

	tm.Tick()
	assert.Equal(t, byte(1), tm.Delay())
	assert.Equal(t, byte(0), tm.Sound())

	tm.Tick()
	tm.Tick()
	assert.Equal(t, byte(0), tm.Delay())
	assert.Equal(t, byte(0), tm.Sound())
}
