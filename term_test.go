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
	"time"

	"github.com/massung/chip-8/chip8"
	"github.com/nsf/termbox-go"
	"github.com/retroenv/retrogolib/assert"
)

func newTestTerminal(t *testing.T) *Terminal {
	t.Helper()

	boot(t)

	return &Terminal{held: make(map[int]time.Time)}
}

func TestTerminalKeys(t *testing.T) {
	term := newTestTerminal(t)

	assert.True(t, term.key(termbox.Event{Type: termbox.EventKey, Ch: 'q'}))
	assert.True(t, VM.IsPressed(0x4))

	// typing again keeps it held
	assert.True(t, term.key(termbox.Event{Type: termbox.EventKey, Ch: 'Q'}))
	assert.Equal(t, 1, len(term.held))

	term.release(time.Now())
	assert.True(t, VM.IsPressed(0x4))

	term.release(time.Now().Add(HoldTime))
	assert.False(t, VM.IsPressed(0x4))
	assert.Equal(t, 0, len(term.held))
}

func TestTerminalControls(t *testing.T) {
	term := newTestTerminal(t)

	assert.True(t, term.key(termbox.Event{Type: termbox.EventKey, Ch: ']'}))
	assert.Equal(t, chip8.DefaultSpeed+chip8.SpeedStep, VM.Speed())

	assert.True(t, term.key(termbox.Event{Type: termbox.EventKey, Key: termbox.KeySpace}))
	assert.True(t, VM.Paused())

	assert.True(t, term.key(termbox.Event{Type: termbox.EventKey, Key: termbox.KeyF6}))
	assert.Equal(t, uint16(chip8.ProgramStart+2), VM.Registers().PC)

	// reset paused
	assert.True(t, term.key(termbox.Event{Type: termbox.EventKey, Key: termbox.KeyCtrlR}))
	assert.True(t, VM.Paused())
	assert.Equal(t, uint16(chip8.ProgramStart), VM.Registers().PC)

	// no dialogs in the terminal
	n := Log.Len()
	assert.True(t, term.key(termbox.Event{Type: termbox.EventKey, Key: termbox.KeyF3}))
	assert.Equal(t, n+1, Log.Len())

	assert.False(t, term.key(termbox.Event{Type: termbox.EventKey, Key: termbox.KeyCtrlC}))
}
