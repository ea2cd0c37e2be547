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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/retroenv/retrogolib/assert"
)

func TestMemoryFont(t *testing.T) {
	m := NewMemory()

	font, err := m.Slice(FontAddress, len(Font))
	assert.NoError(t, err)

	if diff := cmp.Diff(Font[:], font); diff != "" {
		t.Errorf("font mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryLoad(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr error
	}{
		{"empty", 0, nil},
		{"small", 2, nil},
		{"largest", MaxProgramSize, nil},
		{"one byte too many", MaxProgramSize + 1, ErrCapacityExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMemory()
			program := make([]byte, tt.size)

			for i := range program {
				program[i] = byte(i)
			}

			err := m.Load(program)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Equal(t, 0, len(m.Program()))
				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, m.Program())

			if diff := cmp.Diff(program, m.Program()); diff != "" {
				t.Errorf("program mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMemoryLoadClears(t *testing.T) {
	m := NewMemory()

	assert.NoError(t, m.Write(0xFFF, 0xAA))
	assert.NoError(t, m.Load([]byte{0x12, 0x00}))

	b, err := m.Read(0xFFF)
	assert.NoError(t, err)
	assert.Equal(t, byte(0), b)

	// font survives a reload
	b, err = m.Read(FontAddress)
	assert.NoError(t, err)
	assert.Equal(t, Font[0], b)
}

func TestMemoryBounds(t *testing.T) {
	m := NewMemory()

	_, err := m.Read(0x1000)
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	err = m.Write(0x1000, 1)
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	// the second byte of a word must be addressable too
	_, err = m.ReadWord(0xFFF)
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	_, err = m.Slice(0xFFE, 3)
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	s, err := m.Slice(0xFFE, 2)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(s))
}

func TestMemoryReadWord(t *testing.T) {
	m := NewMemory()

	assert.NoError(t, m.Load([]byte{0xA2, 0x1E}))

	w, err := m.ReadWord(ProgramStart)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0xA21E), w)
}

func TestRegistersStack(t *testing.T) {
	var r Registers

	r.Reset()
	assert.Equal(t, uint16(ProgramStart), r.PC)

	_, err := r.Pop()
	assert.True(t, errors.Is(err, ErrStackUnderflow))

	for i := 0; i < StackDepth; i++ {
		assert.NoError(t, r.Push(uint16(0x200+i*2)))
	}

	assert.True(t, errors.Is(r.Push(0x300), ErrStackOverflow))
	assert.Equal(t, StackDepth, r.Depth())

	a, err := r.Pop()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x200+(StackDepth-1)*2), a)
}
