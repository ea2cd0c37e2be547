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
	"fmt"
)

var (
	/// ErrCapacityExceeded is returned when a program won't fit in memory.
	///
	ErrCapacityExceeded = errors.New("program too large to fit in memory")

	/// ErrOutOfBounds is returned when an address is past the end of memory.
	///
	ErrOutOfBounds = errors.New("address out of bounds")

	/// ErrStackOverflow is returned by a CALL with 16 return addresses pushed.
	///
	ErrStackOverflow = errors.New("stack overflow")

	/// ErrStackUnderflow is returned by a RET with an empty stack.
	///
	ErrStackUnderflow = errors.New("stack underflow")

	/// ErrUnknownOpcode is returned when decoding an unsupported bit pattern.
	///
	ErrUnknownOpcode = errors.New("unknown opcode")
)

/// HaltError is the fatal error that halted the virtual machine. It holds
/// the address and raw bytes of the instruction being executed.
///
type HaltError struct {
	Address uint16
	Raw     uint16
	Err     error
}

/// Error implements the error interface.
///
func (e *HaltError) Error() string {
	return fmt.Sprintf("halted at %04X [%04X]: %v", e.Address, e.Raw, e.Err)
}

/// Unwrap returns the underlying error so errors.Is works on sentinels.
///
func (e *HaltError) Unwrap() error {
	return e.Err
}
