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
	"github.com/massung/chip-8/chip8"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

/// Control is an emulator key binding that isn't a CHIP-8 key.
///
type Control uint8

const (
	ControlNone Control = iota
	ControlUnload
	ControlReset
	ControlSlower
	ControlFaster
	ControlPause
	ControlStep
	ControlStepOver
	ControlBreakpoint
	ControlReload
	ControlOpen
	ControlSave
	ControlHelp
	ControlLogUp
	ControlLogDown
	ControlLogHome
	ControlLogEnd
)

/// Mapping of modern keyboard to CHIP-8 keys, by the character on the
/// key. The 4x4 block on the left of the keyboard matches the layout of
/// the original hex keypad.
///
var KeyMap = map[rune]int{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'Q': 0x4, 'W': 0x5, 'E': 0x6, 'R': 0xD,
	'A': 0x7, 'S': 0x8, 'D': 0x9, 'F': 0xE,
	'Z': 0xA, 'X': 0x0, 'C': 0xB, 'V': 0xF,
}

/// Mapping of SDL key positions to the characters in KeyMap.
///
var ScancodeKeys = map[sdl.Scancode]rune{
	sdl.SCANCODE_1: '1', sdl.SCANCODE_2: '2', sdl.SCANCODE_3: '3', sdl.SCANCODE_4: '4',
	sdl.SCANCODE_Q: 'Q', sdl.SCANCODE_W: 'W', sdl.SCANCODE_E: 'E', sdl.SCANCODE_R: 'R',
	sdl.SCANCODE_A: 'A', sdl.SCANCODE_S: 'S', sdl.SCANCODE_D: 'D', sdl.SCANCODE_F: 'F',
	sdl.SCANCODE_Z: 'Z', sdl.SCANCODE_X: 'X', sdl.SCANCODE_C: 'C', sdl.SCANCODE_V: 'V',
}

/// Mapping of SDL keys to emulator controls.
///
var ScancodeControls = map[sdl.Scancode]Control{
	sdl.SCANCODE_ESCAPE:       ControlUnload,
	sdl.SCANCODE_BACKSPACE:    ControlReset,
	sdl.SCANCODE_LEFTBRACKET:  ControlSlower,
	sdl.SCANCODE_RIGHTBRACKET: ControlFaster,
	sdl.SCANCODE_SPACE:        ControlPause,
	sdl.SCANCODE_F5:           ControlPause,
	sdl.SCANCODE_F6:           ControlStep,
	sdl.SCANCODE_F10:          ControlStep,
	sdl.SCANCODE_F7:           ControlStepOver,
	sdl.SCANCODE_F11:          ControlStepOver,
	sdl.SCANCODE_F9:           ControlBreakpoint,
	sdl.SCANCODE_F2:           ControlReload,
	sdl.SCANCODE_F3:           ControlOpen,
	sdl.SCANCODE_F4:           ControlSave,
	sdl.SCANCODE_H:            ControlHelp,
	sdl.SCANCODE_UP:           ControlLogUp,
	sdl.SCANCODE_PAGEUP:       ControlLogUp,
	sdl.SCANCODE_DOWN:         ControlLogDown,
	sdl.SCANCODE_PAGEDOWN:     ControlLogDown,
	sdl.SCANCODE_HOME:         ControlLogHome,
	sdl.SCANCODE_END:          ControlLogEnd,
}

/// LogWindow is how many lines of the log are visible.
///
const LogWindow = 15

/// DoControl performs a control key action. Returns false if the
/// emulator should quit. The frontend handles opening and saving.
///
func DoControl(c Control, ctrl bool) bool {
	switch c {
	case ControlUnload:
		if File == "" {
			return false
		}

		// go back to the boot program
		File = ""

		Log.Logln("Unloading ROM")
		_ = Load()
	case ControlReset:
		VM.Reset()

		// holding control during reset will reboot paused
		if ctrl {
			VM.Pause()
		}

		Log.Logln("Reset")
	case ControlSlower:
		VM.DecSpeed()
		Log.Logf("Speed %d", VM.Speed())
	case ControlFaster:
		VM.IncSpeed()
		Log.Logf("Speed %d", VM.Speed())
	case ControlPause:
		VM.TogglePause()
	case ControlStep:
		if VM.Paused() {
			if err := VM.Step(); err != nil {
				logger.Warn("Step failed", log.Err(err))
			}
		}
	case ControlStepOver:
		if VM.Paused() {
			if err := VM.SetOverBreakpoint(); err != nil {
				logger.Warn("Step over failed", log.Err(err))
			}
		}
	case ControlBreakpoint:
		if VM.Paused() {
			pc := VM.Registers().PC

			if VM.ToggleBreakpoint(pc) {
				Log.Logf("Breakpoint set at #%04X", pc)
			} else {
				Log.Logf("Breakpoint cleared at #%04X", pc)
			}
		}
	case ControlReload:
		_ = Load()
	case ControlHelp:
		Help()
	case ControlLogUp:
		Log.ScrollUp()
	case ControlLogDown:
		Log.ScrollDown(LogWindow)
	case ControlLogHome:
		Log.Home()
	case ControlLogEnd:
		Log.End()
	}

	return true
}

/// PressKey forwards a keyboard character to the virtual machine if it
/// maps to a CHIP-8 key.
///
func PressKey(c rune, pressed bool) bool {
	key, ok := KeyMap[c]
	if ok {
		VM.SetKey(key, pressed)
	}

	return ok
}

/// keyNames returns the keyboard character for each CHIP-8 key.
///
func keyNames() [chip8.KeyCount]rune {
	var names [chip8.KeyCount]rune

	for c, key := range KeyMap {
		names[key] = c
	}

	return names
}

/// Events from SDL are mapped to the CHIP-8 keys and controls.
///
func (w *Window) Events() bool {
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch ev := e.(type) {
		case *sdl.QuitEvent:
			return false
		case *sdl.KeyboardEvent:
			pressed := ev.Type == sdl.KEYDOWN

			// held keys repeat, but the CHIP-8 only sees the first press
			if c, ok := ScancodeKeys[ev.Keysym.Scancode]; ok {
				if ev.Repeat == 0 {
					PressKey(c, pressed)
				}

				continue
			}

			if !pressed {
				continue
			}

			switch c := ScancodeControls[ev.Keysym.Scancode]; c {
			case ControlOpen:
				OpenDialog()
			case ControlSave:
				SaveDialog()
			default:
				if !DoControl(c, ev.Keysym.Mod&sdl.KMOD_CTRL != 0) {
					return false
				}
			}
		}
	}

	return true
}
