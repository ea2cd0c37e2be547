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
	"fmt"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const (
	/// ToneHz is the pitch of the CHIP-8 buzzer.
	///
	ToneHz = 440

	/// Volume of the tone, 0 to 1.
	///
	Volume = 0.25
)

/// square returns the square wave sample at phase for a wave with the
/// given period in samples.
///
func square(phase, period int) float64 {
	if phase%period < period/2 {
		return Volume
	}

	return -Volume
}

/// Beeper plays the tone on the speaker while the sound timer is running.
/// It's used by the terminal, which has no audio of its own.
///
type Beeper struct {
	rate beep.SampleRate
	on   atomic.Bool

	// only touched by the speaker goroutine
	phase int
}

/// NewBeeper opens the default speaker and starts streaming silence.
///
func NewBeeper() (*Beeper, error) {
	b := &Beeper{rate: beep.SampleRate(44100)}

	if err := speaker.Init(b.rate, b.rate.N(time.Second/30)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}

	speaker.Play(beep.StreamerFunc(b.stream))

	return b, nil
}

/// stream fills samples with the tone or silence.
///
func (b *Beeper) stream(samples [][2]float64) (int, bool) {
	period := int(b.rate) / ToneHz

	for i := range samples {
		v := 0.0

		if b.on.Load() {
			v = square(b.phase, period)
		}

		b.phase = (b.phase + 1) % period

		samples[i][0] = v
		samples[i][1] = v
	}

	return len(samples), true
}

/// Play turns the tone on or off.
///
func (b *Beeper) Play(on bool) {
	if b != nil {
		b.on.Store(on)
	}
}

/// Close the speaker.
///
func (b *Beeper) Close() {
	if b != nil {
		speaker.Close()
	}
}
