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
	"strings"

	isa "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

/// Disassemble a CHIP-8 instruction in memory.
///
func Disassemble(m *Memory, i uint16) string {
	inst, err := m.ReadWord(i)
	if err != nil {
		return ""
	}

	// end of program memory?
	if inst == 0 {
		return fmt.Sprintf("%04X -", i)
	}

	d, err := Decode(inst)
	if err != nil {
		return fmt.Sprintf("%04X - ??     #%04X", i, inst)
	}

	if ops := d.Operands(); ops != "" {
		return fmt.Sprintf("%04X - %-6s %s", i, Mnemonic(inst), ops)
	}

	return fmt.Sprintf("%04X - %s", i, Mnemonic(inst))
}

/// Mnemonic returns the instruction name for a raw opcode, looked up in
/// the shared CHIP-8 opcode table.
///
func Mnemonic(inst uint16) string {
	for _, op := range isa.Opcodes[int(inst>>12)] {
		if op.Info.Mask&inst == op.Info.Value && op.Instruction != nil {
			return strings.ToUpper(op.Instruction.Name)
		}
	}

	// fall back to the local table
	if d, err := Decode(inst); err == nil {
		return d.Op.String()
	}

	return "??"
}
