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

/// Op identifies one of the 35 CHIP-8 instructions.
///
type Op uint8

/// All supported instructions. The comment is the encoding.
///
const (
	OpInvalid Op = iota
	OpSYS        // 0nnn
	OpCLS        // 00E0
	OpRET        // 00EE
	OpJP         // 1nnn
	OpCALL       // 2nnn
	OpSEByte     // 3xkk
	OpSNEByte    // 4xkk
	OpSEReg      // 5xy0
	OpLDByte     // 6xkk
	OpADDByte    // 7xkk
	OpLDReg      // 8xy0
	OpOR         // 8xy1
	OpAND        // 8xy2
	OpXOR        // 8xy3
	OpADDReg     // 8xy4
	OpSUB        // 8xy5
	OpSHR        // 8xy6
	OpSUBN       // 8xy7
	OpSHL        // 8xyE
	OpSNEReg     // 9xy0
	OpLDI        // Annn
	OpJPV0       // Bnnn
	OpRND        // Cxkk
	OpDRW        // Dxyn
	OpSKP        // Ex9E
	OpSKNP       // ExA1
	OpLDVxDT     // Fx07
	OpLDVxK      // Fx0A
	OpLDDTVx     // Fx15
	OpLDSTVx     // Fx18
	OpADDI       // Fx1E
	OpLDF        // Fx29
	OpLDB        // Fx33
	OpLDIVx      // Fx55
	OpLDVxI      // Fx65
)

/// opcode pairs a bit pattern with the instruction it decodes to.
///
type opcode struct {
	mask  uint16
	value uint16
	op    Op
}

/// Encoding table, searched in order. CLS and RET must come before SYS.
///
var opcodes = []opcode{
	{0xFFFF, 0x00E0, OpCLS},
	{0xFFFF, 0x00EE, OpRET},
	{0xF000, 0x0000, OpSYS},
	{0xF000, 0x1000, OpJP},
	{0xF000, 0x2000, OpCALL},
	{0xF000, 0x3000, OpSEByte},
	{0xF000, 0x4000, OpSNEByte},
	{0xF00F, 0x5000, OpSEReg},
	{0xF000, 0x6000, OpLDByte},
	{0xF000, 0x7000, OpADDByte},
	{0xF00F, 0x8000, OpLDReg},
	{0xF00F, 0x8001, OpOR},
	{0xF00F, 0x8002, OpAND},
	{0xF00F, 0x8003, OpXOR},
	{0xF00F, 0x8004, OpADDReg},
	{0xF00F, 0x8005, OpSUB},
	{0xF00F, 0x8006, OpSHR},
	{0xF00F, 0x8007, OpSUBN},
	{0xF00F, 0x800E, OpSHL},
	{0xF00F, 0x9000, OpSNEReg},
	{0xF000, 0xA000, OpLDI},
	{0xF000, 0xB000, OpJPV0},
	{0xF000, 0xC000, OpRND},
	{0xF000, 0xD000, OpDRW},
	{0xF0FF, 0xE09E, OpSKP},
	{0xF0FF, 0xE0A1, OpSKNP},
	{0xF0FF, 0xF007, OpLDVxDT},
	{0xF0FF, 0xF00A, OpLDVxK},
	{0xF0FF, 0xF015, OpLDDTVx},
	{0xF0FF, 0xF018, OpLDSTVx},
	{0xF0FF, 0xF01E, OpADDI},
	{0xF0FF, 0xF029, OpLDF},
	{0xF0FF, 0xF033, OpLDB},
	{0xF0FF, 0xF055, OpLDIVx},
	{0xF0FF, 0xF065, OpLDVxI},
}

/// mnemonics used when no other name is available.
///
var mnemonics = map[Op]string{
	OpSYS:     "SYS",
	OpCLS:     "CLS",
	OpRET:     "RET",
	OpJP:      "JP",
	OpCALL:    "CALL",
	OpSEByte:  "SE",
	OpSNEByte: "SNE",
	OpSEReg:   "SE",
	OpLDByte:  "LD",
	OpADDByte: "ADD",
	OpLDReg:   "LD",
	OpOR:      "OR",
	OpAND:     "AND",
	OpXOR:     "XOR",
	OpADDReg:  "ADD",
	OpSUB:     "SUB",
	OpSHR:     "SHR",
	OpSUBN:    "SUBN",
	OpSHL:     "SHL",
	OpSNEReg:  "SNE",
	OpLDI:     "LD",
	OpJPV0:    "JP",
	OpRND:     "RND",
	OpDRW:     "DRW",
	OpSKP:     "SKP",
	OpSKNP:    "SKNP",
	OpLDVxDT:  "LD",
	OpLDVxK:   "LD",
	OpLDDTVx:  "LD",
	OpLDSTVx:  "LD",
	OpADDI:    "ADD",
	OpLDF:     "LD",
	OpLDB:     "LD",
	OpLDIVx:   "LD",
	OpLDVxI:   "LD",
}

/// String returns the assembler mnemonic for the op.
///
func (op Op) String() string {
	if s, ok := mnemonics[op]; ok {
		return s
	}

	return "??"
}

/// Instruction is a decoded 16-bit CHIP-8 instruction.
///
type Instruction struct {
	Op  Op
	Raw uint16

	/// X and Y register operands.
	///
	X, Y int

	/// N is the low nibble (sprite height for DRW).
	///
	N byte

	/// KK is the low byte immediate.
	///
	KK byte

	/// NNN is the 12-bit address operand.
	///
	NNN uint16
}

/// Decode splits a raw instruction into its operand fields. Bit patterns
/// that aren't one of the 35 instructions return ErrUnknownOpcode.
///
func Decode(raw uint16) (Instruction, error) {
	inst := Instruction{
		Raw: raw,
		X:   int(raw >> 8 & 0xF),
		Y:   int(raw >> 4 & 0xF),
		N:   byte(raw & 0xF),
		KK:  byte(raw & 0xFF),
		NNN: raw & 0xFFF,
	}

	for _, o := range opcodes {
		if raw&o.mask == o.value {
			inst.Op = o.op
			return inst, nil
		}
	}

	return inst, fmt.Errorf("%04X: %w", raw, ErrUnknownOpcode)
}

/// Operands returns the assembler operand text for the instruction.
///
func (inst Instruction) Operands() string {
	switch inst.Op {
	case OpSYS, OpJP, OpCALL:
		return fmt.Sprintf("#%03X", inst.NNN)
	case OpSEByte, OpSNEByte, OpLDByte, OpADDByte, OpRND:
		return fmt.Sprintf("V%X, #%02X", inst.X, inst.KK)
	case OpSEReg, OpSNEReg, OpLDReg, OpOR, OpAND, OpXOR, OpADDReg, OpSUB, OpSUBN:
		return fmt.Sprintf("V%X, V%X", inst.X, inst.Y)
	case OpSHR, OpSHL, OpSKP, OpSKNP:
		return fmt.Sprintf("V%X", inst.X)
	case OpLDI:
		return fmt.Sprintf("I, #%03X", inst.NNN)
	case OpJPV0:
		return fmt.Sprintf("V0, #%03X", inst.NNN)
	case OpDRW:
		return fmt.Sprintf("V%X, V%X, %d", inst.X, inst.Y, inst.N)
	case OpLDVxDT:
		return fmt.Sprintf("V%X, DT", inst.X)
	case OpLDVxK:
		return fmt.Sprintf("V%X, K", inst.X)
	case OpLDDTVx:
		return fmt.Sprintf("DT, V%X", inst.X)
	case OpLDSTVx:
		return fmt.Sprintf("ST, V%X", inst.X)
	case OpADDI:
		return fmt.Sprintf("I, V%X", inst.X)
	case OpLDF:
		return fmt.Sprintf("F, V%X", inst.X)
	case OpLDB:
		return fmt.Sprintf("B, V%X", inst.X)
	case OpLDIVx:
		return fmt.Sprintf("[I], V%X", inst.X)
	case OpLDVxI:
		return fmt.Sprintf("V%X, [I]", inst.X)
	}

	return ""
}

/// String returns the instruction as assembly.
///
func (inst Instruction) String() string {
	if ops := inst.Operands(); ops != "" {
		return fmt.Sprintf("%-6s %s", inst.Op, ops)
	}

	return inst.Op.String()
}
