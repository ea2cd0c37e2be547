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
	"time"

	"github.com/retroenv/retrogolib/assert"
)

func TestClockAdvance(t *testing.T) {
	tests := []struct {
		name  string
		speed int
		steps int
	}{
		{"default", DefaultSpeed, 500},
		{"slowest", MinSpeed, 50},
		{"fastest", MaxSpeed, 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClock(tt.speed)

			steps, ticks := c.Advance(time.Second)
			assert.Equal(t, tt.steps, steps)
			assert.Equal(t, TimerHz, ticks)
		})
	}
}

func TestClockFractions(t *testing.T) {
	c := NewClock(DefaultSpeed)

	total, ticks := 0, 0

	// 1000 small slices add up to a full second
	for i := 0; i < 1000; i++ {
		s, n := c.Advance(time.Millisecond)

		total += s
		ticks += n
	}

	assert.Equal(t, 500, total)
	assert.Equal(t, 60, ticks)
}

func TestClockSetSpeed(t *testing.T) {
	c := NewClock(10)
	assert.Equal(t, MinSpeed, c.Speed())

	c.SetSpeed(100000)
	assert.Equal(t, MaxSpeed, c.Speed())

	steps, ticks := c.Advance(0)
	assert.Equal(t, 0, steps)
	assert.Equal(t, 0, ticks)
}
