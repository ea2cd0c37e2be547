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
	"context"
	"fmt"
	"os"
	"time"
	"unicode"

	"github.com/massung/chip-8/chip8"
	"github.com/nsf/termbox-go"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

/// HoldTime is how long a key stays down in the terminal after its last
/// keystroke, since terminals never report a key being released.
///
const HoldTime = time.Second / 5

/// Mapping of terminal keys to emulator controls.
///
var TermControls = map[termbox.Key]Control{
	termbox.KeyEsc:        ControlUnload,
	termbox.KeyBackspace:  ControlReset,
	termbox.KeyBackspace2: ControlReset,
	termbox.KeySpace:      ControlPause,
	termbox.KeyF5:         ControlPause,
	termbox.KeyF6:         ControlStep,
	termbox.KeyF10:        ControlStep,
	termbox.KeyF7:         ControlStepOver,
	termbox.KeyF11:        ControlStepOver,
	termbox.KeyF9:         ControlBreakpoint,
	termbox.KeyF2:         ControlReload,
	termbox.KeyF3:         ControlOpen,
	termbox.KeyF4:         ControlSave,
	termbox.KeyArrowUp:    ControlLogUp,
	termbox.KeyPgup:       ControlLogUp,
	termbox.KeyArrowDown:  ControlLogDown,
	termbox.KeyPgdn:       ControlLogDown,
	termbox.KeyHome:       ControlLogHome,
	termbox.KeyEnd:        ControlLogEnd,
}

/// Mapping of printable characters to emulator controls.
///
var TermCharControls = map[rune]Control{
	'[': ControlSlower,
	']': ControlFaster,
	'H': ControlHelp,
}

/// Terminal is the text frontend. The display is drawn with half block
/// characters so each cell holds two rows of pixels.
///
type Terminal struct {
	events chan termbox.Event
	done   chan struct{}
	cancel context.CancelFunc

	/// state of the terminal before termbox took it over.
	///
	state *term.State

	/// held is when each CHIP-8 key was last typed.
	///
	held map[int]time.Time

	tone *Beeper

	/// address is the top of the disassembly panel.
	///
	address uint16
}

/// NewTerminal takes over the terminal.
///
func NewTerminal(sound bool) (*Terminal, error) {
	state, err := term.GetState(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("reading terminal state: %w", err)
	}

	if err := termbox.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}

	termbox.SetInputMode(termbox.InputEsc)

	ctx, cancel := context.WithCancel(context.Background())

	t := &Terminal{
		events: make(chan termbox.Event, 64),
		done:   make(chan struct{}),
		cancel: cancel,
		state:  state,
		held:   make(map[int]time.Time),
	}

	go t.poll(ctx)

	if sound {
		if t.tone, err = NewBeeper(); err != nil {
			logger.Warn("Audio disabled", log.Err(err))
		}
	}

	return t, nil
}

/// poll forwards terminal events until cancelled.
///
func (t *Terminal) poll(ctx context.Context) {
	defer close(t.done)

	for {
		ev := termbox.PollEvent()
		if ev.Type == termbox.EventInterrupt {
			return
		}

		select {
		case t.events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

/// Close restores the terminal.
///
func (t *Terminal) Close() {
	t.tone.Close()

	// stop polling
	t.cancel()
	termbox.Interrupt()
	<-t.done

	termbox.Close()

	if err := term.Restore(int(os.Stdin.Fd()), t.state); err != nil {
		logger.Error("Restoring terminal failed", log.Err(err))
	}
}

/// Events handles all pending terminal input without blocking.
///
func (t *Terminal) Events() bool {
	for {
		select {
		case ev := <-t.events:
			switch ev.Type {
			case termbox.EventError:
				logger.Error("Terminal input failed", log.Err(ev.Err))
				return false
			case termbox.EventKey:
				if !t.key(ev) {
					return false
				}
			}
		default:
			t.release(time.Now())
			return true
		}
	}
}

/// key handles a single keystroke.
///
func (t *Terminal) key(ev termbox.Event) bool {
	if ev.Ch != 0 {
		c := unicode.ToUpper(ev.Ch)

		if key, ok := KeyMap[c]; ok {
			if _, down := t.held[key]; !down {
				VM.PressKey(key)
			}

			t.held[key] = time.Now()
			return true
		}

		return DoControl(TermCharControls[c], false)
	}

	switch ev.Key {
	case termbox.KeyCtrlC:
		return false
	case termbox.KeyCtrlR:
		return DoControl(ControlReset, true)
	}

	switch c := TermControls[ev.Key]; c {
	case ControlOpen, ControlSave:
		Log.Log("Not available in the terminal")
	default:
		return DoControl(c, false)
	}

	return true
}

/// release every key that hasn't been typed recently.
///
func (t *Terminal) release(now time.Time) {
	for key, at := range t.held {
		if now.Sub(at) >= HoldTime {
			delete(t.held, key)
			VM.ReleaseKey(key)
		}
	}
}

/// Refresh redraws the terminal and updates the tone.
///
func (t *Terminal) Refresh() {
	_ = termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)

	_, h := termbox.Size()

	// display with a border
	t.box(0, 0, chip8.Width+2, chip8.Height/2+2)
	t.screen(1, 1)

	// machine state under the display
	status := fmt.Sprintf("%s - %d IPS", VM.State(), VM.Speed())
	t.text(1, chip8.Height/2+2, status, termbox.ColorDefault)

	// debugger to the right
	x := chip8.Width + 3
	n := chip8.Height/2 + 2

	t.address = DisassemblyTop(t.address, VM.Registers().PC, n)

	for i, line := range Disassembly(VM, t.address, n) {
		fg := termbox.ColorDefault

		if line.PC {
			fg = termbox.ColorYellow | termbox.AttrBold
			t.text(x, i, ">", fg)
		}

		if line.Break {
			t.text(x+1, i, "*", termbox.ColorRed)
		}

		t.text(x+2, i, line.Text, fg)
	}

	left, right := Registers(VM)

	for i, s := range left {
		t.text(x+28, i, s, termbox.ColorDefault)
	}

	for i, s := range right {
		t.text(x+38, i, s, termbox.ColorDefault)
	}

	// log below the display
	y := chip8.Height/2 + 4

	if rows := h - y; rows > 0 {
		if rows > LogWindow {
			rows = LogWindow
		}

		for i, line := range Log.Window(rows) {
			t.text(1, y+i, line, termbox.ColorDefault)
		}
	}

	_ = termbox.Flush()

	t.tone.Play(VM.SoundTimer() > 0)
}

/// screen draws the CHIP-8 display at x, y.
///
func (t *Terminal) screen(x, y int) {
	frame := VM.Snapshot()

	for row := 0; row < chip8.Height; row += 2 {
		for col := 0; col < chip8.Width; col++ {
			termbox.SetCell(x+col, y+row/2, '▀', pixel(frame[row][col]), pixel(frame[row+1][col]))
		}
	}
}

/// pixel returns the color of a lit or unlit pixel.
///
func pixel(on bool) termbox.Attribute {
	if on {
		return termbox.ColorWhite
	}

	return termbox.ColorBlack
}

/// box draws a border.
///
func (t *Terminal) box(x, y, w, h int) {
	fg, bg := termbox.ColorDefault, termbox.ColorDefault

	for i := x + 1; i < x+w-1; i++ {
		termbox.SetCell(i, y, '─', fg, bg)
		termbox.SetCell(i, y+h-1, '─', fg, bg)
	}

	for i := y + 1; i < y+h-1; i++ {
		termbox.SetCell(x, i, '│', fg, bg)
		termbox.SetCell(x+w-1, i, '│', fg, bg)
	}

	termbox.SetCell(x, y, '┌', fg, bg)
	termbox.SetCell(x+w-1, y, '┐', fg, bg)
	termbox.SetCell(x, y+h-1, '└', fg, bg)
	termbox.SetCell(x+w-1, y+h-1, '┘', fg, bg)
}

/// text writes a string starting at x, y.
///
func (t *Terminal) text(x, y int, s string, fg termbox.Attribute) {
	for _, c := range s {
		termbox.SetCell(x, y, c, fg, termbox.ColorDefault)
		x++
	}
}
