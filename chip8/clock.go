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
	"time"
)

const (
	/// DefaultSpeed is how many instructions are executed per second. The
	/// RCA 1802 ran at 4-5 MHz, and each instruction took 16-24 clock
	/// cycles. Best estimations are the 1802 could interpret 500 CHIP-8
	/// instructions per second.
	///
	DefaultSpeed = 500

	/// MinSpeed is the slowest the processor can be set to.
	///
	MinSpeed = 50

	/// MaxSpeed is the fastest the processor can be set to.
	///
	MaxSpeed = 2000

	/// SpeedStep is how much IncSpeed and DecSpeed change the speed by.
	///
	SpeedStep = 50
)

/// Clock converts elapsed real time into the number of instructions and
/// timer ticks that are due. The two are tracked separately, so changing
/// the processor speed never changes how fast the timers count down.
///
type Clock struct {
	speed int

	// fractional progress toward the next instruction and tick, in
	// units of nanoseconds times rate
	cpu   int64
	timer int64
}

/// NewClock returns a clock running at speed instructions per second.
///
func NewClock(speed int) *Clock {
	c := &Clock{}
	c.SetSpeed(speed)

	return c
}

/// Speed returns the number of instructions executed per second.
///
func (c *Clock) Speed() int {
	return c.speed
}

/// SetSpeed clamps and sets the instructions executed per second.
///
func (c *Clock) SetSpeed(speed int) {
	if speed < MinSpeed {
		speed = MinSpeed
	}
	if speed > MaxSpeed {
		speed = MaxSpeed
	}

	// keep the same fraction of an instruction pending
	if c.speed != 0 {
		c.cpu = c.cpu * int64(speed) / int64(c.speed)
	}

	c.speed = speed
}

/// Reset drops any partially elapsed instruction or tick.
///
func (c *Clock) Reset() {
	c.cpu = 0
	c.timer = 0
}

/// Advance the clock and return how many instructions and timer ticks
/// are now due.
///
func (c *Clock) Advance(elapsed time.Duration) (steps, ticks int) {
	if elapsed <= 0 {
		return 0, 0
	}

	c.cpu += int64(elapsed) * int64(c.speed)
	c.timer += int64(elapsed) * TimerHz

	// whole instructions and ticks
	steps = int(c.cpu / int64(time.Second))
	ticks = int(c.timer / int64(time.Second))

	// keep the remainders
	c.cpu -= int64(steps) * int64(time.Second)
	c.timer -= int64(ticks) * int64(time.Second)

	return steps, ticks
}
