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
	"path/filepath"
	"testing"

	"github.com/massung/chip-8/chip8"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

/// boot resets the globals and loads the boot program.
///
func boot(t *testing.T) {
	t.Helper()

	logger = log.NewTestLogger(t)
	Options = options{speed: chip8.DefaultSpeed, scale: 5}
	File = ""

	assert.NoError(t, Load())
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-speed", "1000", "-paused", "-term", "pong.ch8"})
	assert.NoError(t, err)

	assert.Equal(t, "pong.ch8", opts.rom)
	assert.Equal(t, 1000, opts.speed)
	assert.Equal(t, 5, opts.scale)
	assert.True(t, opts.paused)
	assert.True(t, opts.term)
	assert.False(t, opts.mute)

	opts, err = parseFlags(nil)
	assert.NoError(t, err)
	assert.Equal(t, "", opts.rom)
	assert.Equal(t, chip8.DefaultSpeed, opts.speed)

	_, err = parseFlags([]string{"a.ch8", "b.ch8"})
	assert.ErrorContains(t, err, "expected a single rom")

	_, err = parseFlags([]string{"-scale", "0"})
	assert.ErrorContains(t, err, "scale must be at least 1")
}

func TestBootProgram(t *testing.T) {
	asm, err := chip8.Assemble(bootSource)
	assert.NoError(t, err)
	assert.True(t, len(asm.ROM) > 0)

	boot(t)

	assert.Equal(t, chip8.Running, VM.State())

	// the boot program waits for a key after drawing
	_, err = VM.Process(MaxElapsed)
	assert.NoError(t, err)
	assert.Equal(t, chip8.AwaitingKey, VM.State())

	frame := VM.Snapshot()
	lit := 0

	for _, row := range frame {
		for _, on := range row {
			if on {
				lit++
			}
		}
	}

	assert.True(t, lit > 0)
}

func TestLoadFailureKeepsMachine(t *testing.T) {
	boot(t)

	vm := VM
	File = filepath.Join(t.TempDir(), "missing.ch8")

	assert.Error(t, Load())
	assert.True(t, vm == VM)
}

func TestSave(t *testing.T) {
	boot(t)

	file := filepath.Join(t.TempDir(), "boot.ch8")
	assert.NoError(t, Save(file))

	File = file
	assert.NoError(t, Load())
	assert.Equal(t, len(VM.Program()), len(mustAssemble(t).ROM))
}

func mustAssemble(t *testing.T) *chip8.Assembly {
	t.Helper()

	asm, err := chip8.Assemble(bootSource)
	assert.NoError(t, err)

	return asm
}
