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

	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

/// AudioFreq is the sample rate of the SDL audio device.
///
const AudioFreq = 22050

/// Audio queues the tone on an SDL audio device one frame at a time while
/// the sound timer is running.
///
type Audio struct {
	dev   sdl.AudioDeviceID
	phase int

	// one frame of signed 8-bit samples
	buf []byte
}

/// NewAudio opens an audio device for the CHIP-8 virtual machine.
///
func NewAudio() (*Audio, error) {
	spec := &sdl.AudioSpec{
		Freq:     AudioFreq,
		Format:   sdl.AUDIO_S8,
		Channels: 1,
		Samples:  512,
	}

	dev, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}

	// start playing whatever is queued immediately
	sdl.PauseAudioDevice(dev, false)

	return &Audio{
		dev: dev,
		buf: make([]byte, AudioFreq/60),
	}, nil
}

/// Play queues another frame of tone while on, and drops anything queued
/// when off so the tone stops right away.
///
func (a *Audio) Play(on bool) {
	if a == nil {
		return
	}

	if !on {
		sdl.ClearQueuedAudio(a.dev)
		return
	}

	// keep no more than a couple frames queued
	if sdl.GetQueuedAudioSize(a.dev) > uint32(2*len(a.buf)) {
		return
	}

	period := AudioFreq / ToneHz

	for i := range a.buf {
		a.buf[i] = byte(int8(square(a.phase, period) * 127))
		a.phase = (a.phase + 1) % period
	}

	if err := sdl.QueueAudio(a.dev, a.buf); err != nil {
		logger.Error("Queueing audio failed", log.Err(err))
	}
}

/// Close the audio device.
///
func (a *Audio) Close() {
	if a != nil {
		sdl.CloseAudioDevice(a.dev)
	}
}
