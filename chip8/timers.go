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

/// TimerHz is the fixed rate the delay and sound timers count down at.
///
const TimerHz = 60

/// Timers holds the delay and sound timer registers. Both count down
/// once per tick until they reach zero.
///
type Timers struct {
	delay byte
	sound byte
}

/// Reset both timers to zero.
///
func (t *Timers) Reset() {
	t.delay = 0
	t.sound = 0
}

/// Tick decrements each timer that is still running.
///
func (t *Timers) Tick() {
	if t.delay > 0 {
		t.delay--
	}

	if t.sound > 0 {
		t.sound--
	}
}

/// Delay returns the delay timer register.
///
func (t *Timers) Delay() byte {
	return t.delay
}

/// SetDelay loads the delay timer register.
///
func (t *Timers) SetDelay(v byte) {
	t.delay = v
}

/// Sound returns the sound timer register. While non-zero a tone plays.
///
func (t *Timers) Sound() byte {
	return t.sound
}

/// SetSound loads the sound timer register.
///
func (t *Timers) SetSound(v byte) {
	t.sound = v
}
