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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/retroenv/retrogolib/assert"
)

func TestAssembleProgram(t *testing.T) {
	src := `
; draw a sprite forever
.start  LD    V0, #05
        LD    I, sprite
        DRW   V0, V1, 5
        CALL  routine
        JP    start

.routine CLS
        RET

.sprite BYTE  $1111...., $1..1....
`

	asm, err := Assemble([]byte(src))
	assert.NoError(t, err)

	want := []byte{
		0x60, 0x05,
		0xA2, 0x0E,
		0xD0, 0x15,
		0x22, 0x0A,
		0x12, 0x00,
		0x00, 0xE0,
		0x00, 0xEE,
		0xF0, 0x90,
	}

	if diff := cmp.Diff(want, asm.ROM); diff != "" {
		t.Errorf("rom mismatch (-want +got):\n%s", diff)
	}
}

func TestAssembleInstructions(t *testing.T) {
	tests := []struct {
		src  string
		want uint16
	}{
		{"CLS", 0x00E0},
		{"RET", 0x00EE},
		{"SYS #123", 0x0123},
		{"JP #345", 0x1345},
		{"JP V0, #345", 0xB345},
		{"CALL #456", 0x2456},
		{"SE V1, #22", 0x3122},
		{"SNE V1, 34", 0x4122},
		{"SE V1, V2", 0x5120},
		{"SNE V1, V2", 0x9120},
		{"LD V3, -1", 0x63FF},
		{"ADD V3, 1", 0x7301},
		{"LD V3, V4", 0x8340},
		{"OR V3, V4", 0x8341},
		{"AND V3, V4", 0x8342},
		{"XOR V3, V4", 0x8343},
		{"ADD V3, V4", 0x8344},
		{"SUB V3, V4", 0x8345},
		{"SHR V3", 0x8336},
		{"SHR V3, V4", 0x8346},
		{"SUBN V3, V4", 0x8347},
		{"SHL V3", 0x833E},
		{"LD I, #ABC", 0xAABC},
		{"RND VA, $1111", 0xCA0F},
		{"DRW VA, VB, 15", 0xDABF},
		{"SKP VC", 0xEC9E},
		{"SKNP VC", 0xECA1},
		{"LD VD, DT", 0xFD07},
		{"LD VD, K", 0xFD0A},
		{"LD DT, VD", 0xFD15},
		{"LD ST, VD", 0xFD18},
		{"ADD I, VD", 0xFD1E},
		{"LD F, VD", 0xFD29},
		{"LD B, VD", 0xFD33},
		{"LD [I], VD", 0xFD55},
		{"LD VD, [I]", 0xFD65},
		{"ld ve, #ff ; lower case", 0x6EFF},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			asm, err := Assemble([]byte("  " + tt.src))
			assert.NoError(t, err)
			assert.Equal(t, 2, len(asm.ROM))
			assert.Equal(t, tt.want, uint16(asm.ROM[0])<<8|uint16(asm.ROM[1]))

			// everything assembled decodes
			inst, err := Decode(tt.want)
			assert.NoError(t, err)
			assert.True(t, inst.Op != OpInvalid)
		})
	}
}

func TestAssembleRoundTrip(t *testing.T) {
	for _, raw := range []uint16{0x00E0, 0x6A12, 0xA2F0, 0xD125, 0xF533, 0xF265, 0x8AB4, 0xB210} {
		inst, err := Decode(raw)
		assert.NoError(t, err)

		asm, err := Assemble([]byte("  " + inst.String()))
		assert.NoError(t, err)
		assert.Equal(t, raw, uint16(asm.ROM[0])<<8|uint16(asm.ROM[1]))
	}
}

func TestAssembleDirectives(t *testing.T) {
	src := `
.count  EQU   3
        BYTE  1, "hi", count
        ALIGN
        WORD  #1234, data
        PAD   count
.data   BYTE  -1
        ALIGN 4
        LD    V0, count
`

	asm, err := Assemble([]byte(src))
	assert.NoError(t, err)

	want := []byte{
		0x01, 'H', 'I', 0x03,
		0x12, 0x34, 0x02, 0x0B,
		0x00, 0x00, 0x00,
		0xFF,
		0x60, 0x03,
	}

	if diff := cmp.Diff(want, asm.ROM); diff != "" {
		t.Errorf("rom mismatch (-want +got):\n%s", diff)
	}
}

func TestAssembleBreakpoints(t *testing.T) {
	src := `
        LD    V0, 1
        BREAK first
        LD    V1, 2
        BREAK
`

	asm, err := Assemble([]byte(src))
	assert.NoError(t, err)
	assert.Equal(t, 2, len(asm.Breakpoints))
	assert.Equal(t, uint16(0x202), asm.Breakpoints[0].Address)
	assert.Equal(t, "FIRST", asm.Breakpoints[0].Reason)
	assert.Equal(t, uint16(0x204), asm.Breakpoints[1].Address)
	assert.Equal(t, "", asm.Breakpoints[1].Reason)
}

func TestAssembleErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"byte too large", "  LD V0, #100", "line 1"},
		{"unknown label", "  JP nowhere", "unresolved label: NOWHERE"},
		{"duplicate label", ".a CLS\n.a CLS", "line 2 - duplicate label"},
		{"bad operands", "  DRW V0, V1", "illegal instruction"},
		{"too many operands", "  CLS V0", "illegal instruction"},
		{"bad indirection", "  LD [V0], V1", "illegal indirection"},
		{"unterminated string", "  BYTE \"abc", "unterminated string"},
		{"unexpected token", "  LD V0 V1", "unexpected token"},
		{"sprite too tall", "  DRW V0, V1, 16", "illegal instruction"},
		{"bad label assignment", ".x EQU", "illegal label assignment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asm, err := Assemble([]byte(tt.src))
			assert.Error(t, err)
			assert.True(t, asm == nil)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestAssembleTooLarge(t *testing.T) {
	_, err := Assemble([]byte("  PAD 3584\n  CLS"))
	assert.ErrorContains(t, err, ErrCapacityExceeded.Error())

	asm, err := Assemble([]byte("  PAD 3584"))
	assert.NoError(t, err)
	assert.Equal(t, MaxProgramSize, len(asm.ROM))
}
