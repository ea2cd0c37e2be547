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

/// StackDepth is the maximum number of nested subroutine calls.
///
const StackDepth = 16

/// Registers is the CHIP-8 register file.
///
type Registers struct {
	/// V are the 16 virtual registers. VF doubles as the carry, borrow
	/// and collision flag.
	///
	V [16]byte

	/// I is the address register.
	///
	I uint16

	/// PC is the program counter. All programs begin at 0x200.
	///
	PC uint16

	/// Stack of return addresses pushed by CALL.
	///
	Stack [StackDepth]uint16

	/// SP is the number of return addresses on the stack.
	///
	SP int
}

/// Reset all registers and point the program counter at 0x200.
///
func (r *Registers) Reset() {
	*r = Registers{PC: ProgramStart}
}

/// Push a return address onto the stack.
///
func (r *Registers) Push(address uint16) error {
	if r.SP >= StackDepth {
		return ErrStackOverflow
	}

	r.Stack[r.SP] = address
	r.SP++

	return nil
}

/// Pop the most recent return address from the stack.
///
func (r *Registers) Pop() (uint16, error) {
	if r.SP == 0 {
		return 0, ErrStackUnderflow
	}

	r.SP--

	return r.Stack[r.SP], nil
}

/// Depth returns the number of return addresses on the stack.
///
func (r *Registers) Depth() int {
	return r.SP
}

/// Flag sets VF to 1 if set, otherwise 0.
///
func (r *Registers) Flag(set bool) {
	if set {
		r.V[0xF] = 1
	} else {
		r.V[0xF] = 0
	}
}
