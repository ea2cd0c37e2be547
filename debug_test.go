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

	"github.com/massung/chip-8/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDisassemblyTop(t *testing.T) {
	tests := []struct {
		name    string
		top, pc uint16
		want    uint16
	}{
		{"visible", 0x200, 0x204, 0x200},
		{"last line", 0x200, 0x212, 0x200},
		{"below", 0x200, 0x214, 0x212},
		{"above", 0x210, 0x200, 0x1FE},
		{"odd alignment", 0x200, 0x203, 0x201},
		{"start of memory", 0x200, 0x000, 0x000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisassemblyTop(tt.top, tt.pc, 10))
		})
	}
}

func TestDisassembly(t *testing.T) {
	vm, err := chip8.LoadROM([]byte{0x60, 0x05, 0x12, 0x02})
	assert.NoError(t, err)

	vm.ToggleBreakpoint(0x202)

	lines := Disassembly(vm, 0x200, 3)
	assert.Len(t, lines, 3)

	assert.Equal(t, "0200 - LD     V0, #05", lines[0].Text)
	assert.True(t, lines[0].PC)
	assert.False(t, lines[0].Break)

	assert.Equal(t, "0202 - JP     #202", lines[1].Text)
	assert.False(t, lines[1].PC)
	assert.True(t, lines[1].Break)
}

func TestRegisters(t *testing.T) {
	// call a subroutine that never returns
	vm, err := chip8.LoadROM([]byte{0x22, 0x02, 0x12, 0x02})
	assert.NoError(t, err)
	assert.NoError(t, vm.Step())

	left, right := Registers(vm)

	assert.Len(t, left, 16)
	assert.Equal(t, "V0 - #00", left[0])
	assert.Equal(t, "VF - #00", left[15])

	assert.Equal(t, "PC - #0202", right[0])
	assert.Equal(t, "SP - #01", right[1])
	assert.Equal(t, "  #0202", right[len(right)-1])
	assert.True(t, len(right) <= len(left))
}
