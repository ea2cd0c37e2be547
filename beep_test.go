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
	"testing"

	"github.com/faiface/beep"
	"github.com/retroenv/retrogolib/assert"
)

func TestSquare(t *testing.T) {
	assert.Equal(t, Volume, square(0, 100))
	assert.Equal(t, Volume, square(49, 100))
	assert.Equal(t, -Volume, square(50, 100))
	assert.Equal(t, Volume, square(100, 100))
}

func TestBeeperStream(t *testing.T) {
	b := &Beeper{rate: beep.SampleRate(44100)}
	samples := make([][2]float64, 200)

	// silent until played
	n, ok := b.stream(samples)
	assert.Equal(t, 200, n)
	assert.True(t, ok)

	for _, s := range samples {
		assert.Equal(t, 0.0, s[0])
	}

	b.Play(true)
	b.stream(samples)

	period := 44100 / ToneHz

	assert.Equal(t, Volume, samples[0][0])
	assert.Equal(t, Volume, samples[0][1])
	assert.Equal(t, -Volume, samples[period/2][0])
	assert.Equal(t, Volume, samples[period][0])
}

func TestNilBeeper(t *testing.T) {
	var b *Beeper

	b.Play(true)
	b.Close()
}
