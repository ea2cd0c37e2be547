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

	"github.com/massung/chip-8/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

/// DebugLine is a single line of disassembly in the debugger.
///
type DebugLine struct {
	Text string

	/// PC is true for the instruction about to execute.
	///
	PC bool

	/// Break is true if there's a breakpoint on the instruction.
	///
	Break bool
}

/// DisassemblyTop returns the first address to show in a window of n
/// instructions so that pc stays visible. The window only moves when pc
/// leaves it or jumps to an odd alignment.
///
func DisassemblyTop(top, pc uint16, n int) uint16 {
	end := int(top) + n*2

	if pc < top || int(pc) >= end || (top^pc)&1 == 1 {
		if pc < 2 {
			return pc
		}

		return pc - 2
	}

	return top
}

/// Disassembly returns n lines of disassembly starting at top.
///
func Disassembly(vm *chip8.VM, top uint16, n int) []DebugLine {
	pc := vm.Registers().PC

	// breakpoints by address
	breaks := make(map[uint16]bool)
	for _, bp := range vm.Breakpoints() {
		breaks[bp.Address] = true
	}

	lines := make([]DebugLine, 0, n)

	for i := 0; i < n; i++ {
		address := top + uint16(i*2)

		lines = append(lines, DebugLine{
			Text:  vm.Disassemble(address),
			PC:    address == pc,
			Break: breaks[address],
		})
	}

	return lines
}

/// Registers returns a line of text for each register and the machine
/// state, in two columns.
///
func Registers(vm *chip8.VM) (left, right []string) {
	r := vm.Registers()

	for i, v := range r.V {
		left = append(left, fmt.Sprintf("V%X - #%02X", i, v))
	}

	right = []string{
		fmt.Sprintf("PC - #%04X", r.PC),
		fmt.Sprintf("SP - #%02X", r.Depth()),
		fmt.Sprintf("I  - #%04X", r.I),
		"",
		fmt.Sprintf("DT - #%02X", vm.DelayTimer()),
		fmt.Sprintf("ST - #%02X", vm.SoundTimer()),
		"",
		fmt.Sprintf("%d IPS", vm.Speed()),
		vm.State().String(),
	}

	// return addresses, most recent first
	for i := r.Depth() - 1; i >= 0 && len(right) < len(left); i-- {
		right = append(right, fmt.Sprintf("  #%04X", r.Stack[i]))
	}

	return left, right
}

/// DebugAssembly renders the disassembled instructions around the CHIP-8
/// program counter.
///
func (w *Window) DebugAssembly(x, y int32, n int) {
	w.address = DisassemblyTop(w.address, VM.Registers().PC, n)

	// show the disassembled instructions
	for i, line := range Disassembly(VM, w.address, n) {
		ly := y + int32(i*10)

		if line.PC {
			if VM.Paused() {
				_ = w.renderer.SetDrawColor(176, 32, 57, 255)
			} else {
				_ = w.renderer.SetDrawColor(57, 102, 176, 255)
			}

			// highlight the current instruction
			_ = w.renderer.FillRect(&sdl.Rect{
				X: x - 2,
				Y: ly - 2,
				W: 200,
				H: 11,
			})
		}

		if line.Break {
			w.DrawText("*", x, ly)
		}

		w.DrawText(line.Text, x+GlyphAdvance, ly)
	}
}

/// DebugRegisters shows the current value of all the CHIP-8 registers.
///
func (w *Window) DebugRegisters(x, y int32) {
	left, right := Registers(VM)

	for i, s := range left {
		w.DrawText(s, x, y+int32(i*10))
	}

	// shift over for the right column
	x += 62

	for i, s := range right {
		w.DrawText(s, x, y+int32(i*10))
	}
}

/// DebugLog shows the visible portion of the log.
///
func (w *Window) DebugLog(x, y int32, cols int) {
	for _, line := range Log.Window(LogWindow) {
		if len(line) > cols {
			line = line[:cols-3] + "..."
		}

		w.DrawText(line, x, y)

		// advance to the next line
		y += 10
	}
}

/// DebugKeys shows which keys are held down.
///
func (w *Window) DebugKeys(x, y int32) {
	names := keyNames()

	for key, c := range names {
		if VM.IsPressed(key) {
			w.DrawText(string(c), x, y)
		}

		x += GlyphAdvance
	}
}
