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
	"fmt"
)

const (
	/// MemorySize is the number of addressable bytes.
	///
	MemorySize = 0x1000

	/// ProgramStart is where all programs are loaded and begin execution.
	///
	ProgramStart = 0x200

	/// MaxProgramSize is the largest program that can be loaded.
	///
	MaxProgramSize = MemorySize - ProgramStart
)

/// Memory addressable by CHIP-8. The font sprites live at the bottom of
/// the interpreter area and programs are loaded to 0x200.
///
type Memory struct {
	buf [MemorySize]byte

	// size of the loaded program
	size int
}

/// NewMemory returns memory with the font sprites copied in.
///
func NewMemory() *Memory {
	m := &Memory{}
	m.clear()

	return m
}

/// clear all memory and copy the font back in.
///
func (m *Memory) clear() {
	m.buf = [MemorySize]byte{}
	m.size = 0

	// font sprites are always present
	copy(m.buf[FontAddress:], Font[:])
}

/// Load a program into memory at 0x200. Everything outside the font and
/// program is cleared. Nothing is written if the program won't fit.
///
func (m *Memory) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%d bytes: %w", len(program), ErrCapacityExceeded)
	}

	m.clear()

	// copy the program into memory
	m.size = copy(m.buf[ProgramStart:], program)

	return nil
}

/// Program returns a copy of the loaded program bytes as they are now.
///
func (m *Memory) Program() []byte {
	program := make([]byte, m.size)
	copy(program, m.buf[ProgramStart:])

	return program
}

/// Read a byte from memory.
///
func (m *Memory) Read(address uint16) (byte, error) {
	if int(address) >= MemorySize {
		return 0, fmt.Errorf("read %04X: %w", address, ErrOutOfBounds)
	}

	return m.buf[address], nil
}

/// Write a byte to memory.
///
func (m *Memory) Write(address uint16, value byte) error {
	if int(address) >= MemorySize {
		return fmt.Errorf("write %04X: %w", address, ErrOutOfBounds)
	}

	m.buf[address] = value

	return nil
}

/// ReadWord returns the big-endian 16-bit value at address.
///
func (m *Memory) ReadWord(address uint16) (uint16, error) {
	if int(address)+1 >= MemorySize {
		return 0, fmt.Errorf("fetch %04X: %w", address, ErrOutOfBounds)
	}

	return uint16(m.buf[address])<<8 | uint16(m.buf[address+1]), nil
}

/// Slice returns n bytes of memory beginning at address. The slice
/// aliases memory and must not be retained.
///
func (m *Memory) Slice(address uint16, n int) ([]byte, error) {
	if int(address)+n > MemorySize {
		return nil, fmt.Errorf("range %04X+%d: %w", address, n, ErrOutOfBounds)
	}

	return m.buf[int(address) : int(address)+n], nil
}
