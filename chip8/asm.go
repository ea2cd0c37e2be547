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
	"bufio"
	"bytes"
	"fmt"
)

/// Assembly is a completely assembled source file.
///
type Assembly struct {
	/// ROM is the final, assembled bytes to load.
	///
	ROM []byte

	/// Breakpoints is a list of addresses.
	///
	Breakpoints []Breakpoint

	/// Label mapping.
	///
	Labels map[string]token

	/// Addresses with unresolved labels.
	///
	Unresolved map[int]fixup
}

/// fixup is a forward reference to a label waiting to be resolved.
///
type fixup struct {
	label string

	// true if all 16 bits are the address (WORD)
	word bool
}

/// Assemble an input CHIP-8 source code file.
///
func Assemble(program []byte) (out *Assembly, err error) {
	var line int

	// create an empty, return assembly
	out = &Assembly{
		ROM:        make([]byte, ProgramStart, MemorySize),
		Labels:     make(map[string]token),
		Unresolved: make(map[int]fixup),
	}

	// handle panics during assembly
	defer func() {
		if r := recover(); r != nil {
			if line > 0 {
				err = fmt.Errorf("line %d - %v", line, r)
			} else {
				err = fmt.Errorf("%v", r)
			}

			out = nil
		}
	}()

	// create simple line scanner over the file
	reader := bytes.NewReader(bytes.ToUpper(program))
	scanner := bufio.NewScanner(reader)

	// parse and assemble
	for line = 1; scanner.Scan(); line++ {
		out.assemble(&tokenScanner{bytes: scanner.Bytes()})
	}

	// clear the line number as we're done assembling
	line = 0

	// resolve all label addresses
	for address, f := range out.Unresolved {
		t, ok := out.Labels[f.label]
		if !ok {
			panic(fmt.Errorf("unresolved label: %s", f.label))
		}

		if t.typ != TOKEN_LIT {
			panic("label does not resolve to address!")
		}

		v := t.val.(int)

		if f.word {
			out.ROM[address] = byte(v >> 8)
		} else {
			out.ROM[address] = byte(v>>8&0xF) | (out.ROM[address] & 0xF0)
		}

		out.ROM[address+1] = byte(v & 0xFF)
	}

	if len(out.ROM) > MemorySize {
		panic(fmt.Errorf("%d bytes: %w", len(out.ROM)-ProgramStart, ErrCapacityExceeded))
	}

	// drop the first 512 bytes from the rom
	out.ROM = out.ROM[ProgramStart:]

	return out, nil
}

/// Compile a single line into the assembly.
///
func (a *Assembly) assemble(s *tokenScanner) {
	t := s.scanToken()

	// assign labels
	if t.typ == TOKEN_LABEL {
		t = a.assembleLabel(t.val.(string), s)
	}

	// continue assembling
	switch t.typ {
	case TOKEN_INSTRUCTION:
		a.assembleInstruction(t.val.(string), s)
	case TOKEN_BREAK:
		a.assembleBreakpoint(s)
	case TOKEN_END:
	default:
		panic("unexpected token")
	}
}

/// Scan for a label and add it to the assembly.
///
func (a *Assembly) assembleLabel(label string, s *tokenScanner) token {
	if _, exists := a.Labels[label]; exists {
		panic("duplicate label")
	}

	// by default, the label is assigned the current address
	a.Labels[label] = token{typ: TOKEN_LIT, val: len(a.ROM)}

	// scan the next token
	t := s.scanToken()

	// if EQU, reassign the label
	if t.typ == TOKEN_EQU {
		if v := s.scanToken(); v.typ == TOKEN_LIT {
			a.Labels[label] = v

			// should be the final token
			if t = s.scanToken(); t.typ == TOKEN_END {
				return t
			}
		}

		panic("illegal label assignment")
	}

	return t
}

/// Create a new breakpoint at the current address.
///
func (a *Assembly) assembleBreakpoint(s *tokenScanner) {
	reason := s.scanToEnd().val.(string)

	a.Breakpoints = append(a.Breakpoints, Breakpoint{
		Address: uint16(len(a.ROM)),
		Reason:  reason,
	})
}

/// Compile a single instruction into the assembly.
///
func (a *Assembly) assembleInstruction(i string, s *tokenScanner) {
	tokens := s.scanOperands()

	switch i {
	case "CLS":
		a.ROM = append(a.ROM, a.assembleNoOperands(tokens, 0x00, 0xE0)...)
	case "RET":
		a.ROM = append(a.ROM, a.assembleNoOperands(tokens, 0x00, 0xEE)...)
	case "SYS":
		a.ROM = append(a.ROM, a.assembleAddress(tokens, 0x00)...)
	case "JP":
		a.ROM = append(a.ROM, a.assembleJP(tokens)...)
	case "CALL":
		a.ROM = append(a.ROM, a.assembleAddress(tokens, 0x20)...)
	case "SE":
		a.ROM = append(a.ROM, a.assembleSkip(tokens, 0x30, 0x50)...)
	case "SNE":
		a.ROM = append(a.ROM, a.assembleSkip(tokens, 0x40, 0x90)...)
	case "SKP":
		a.ROM = append(a.ROM, a.assembleKey(tokens, 0x9E)...)
	case "SKNP":
		a.ROM = append(a.ROM, a.assembleKey(tokens, 0xA1)...)
	case "OR":
		a.ROM = append(a.ROM, a.assembleLogic(tokens, 0x01)...)
	case "AND":
		a.ROM = append(a.ROM, a.assembleLogic(tokens, 0x02)...)
	case "XOR":
		a.ROM = append(a.ROM, a.assembleLogic(tokens, 0x03)...)
	case "SUB":
		a.ROM = append(a.ROM, a.assembleLogic(tokens, 0x05)...)
	case "SUBN":
		a.ROM = append(a.ROM, a.assembleLogic(tokens, 0x07)...)
	case "SHR":
		a.ROM = append(a.ROM, a.assembleShift(tokens, 0x06)...)
	case "SHL":
		a.ROM = append(a.ROM, a.assembleShift(tokens, 0x0E)...)
	case "ADD":
		a.ROM = append(a.ROM, a.assembleADD(tokens)...)
	case "RND":
		a.ROM = append(a.ROM, a.assembleRND(tokens)...)
	case "DRW":
		a.ROM = append(a.ROM, a.assembleDRW(tokens)...)
	case "LD":
		a.ROM = append(a.ROM, a.assembleLD(tokens)...)
	case "BYTE":
		a.ROM = append(a.ROM, a.assembleBYTE(tokens)...)
	case "WORD":
		a.ROM = append(a.ROM, a.assembleWORD(tokens)...)
	case "ALIGN":
		a.ROM = append(a.ROM, a.assembleALIGN(tokens)...)
	case "PAD":
		a.ROM = append(a.ROM, a.assemblePAD(tokens)...)
	}
}

/// Expand a label reference to its value if it is known.
///
func (a *Assembly) expand(t token) token {
	if t.typ == TOKEN_REF {
		if v, exists := a.Labels[t.val.(string)]; exists {
			return v
		}
	}

	return t
}

/// Resolve an address operand. A reference to a label that isn't known
/// yet is recorded at the given ROM offset to be fixed up later.
///
func (a *Assembly) address(t token, at int, word bool) int {
	if t = a.expand(t); t.typ == TOKEN_LIT {
		return t.val.(int)
	}

	// add an unresolved address
	a.Unresolved[at] = fixup{label: t.val.(string), word: word}

	return 0
}

/// Match the desired tokens with a list of tokens. Expand labels. A
/// desired TOKEN_REF matches any address: a literal or a label.
///
func (a *Assembly) assembleOperands(tokens []token, m ...tokenType) ([]token, bool) {
	ops := make([]token, 0, 3)

	// the number of desired tokens should match
	if len(tokens) != len(m) {
		return nil, false
	}

	// expand and compare the token types
	for i, typ := range m {
		t := tokens[i]

		if typ == TOKEN_REF {
			if t.typ != TOKEN_REF && t.typ != TOKEN_LIT {
				return nil, false
			}
		} else if t = a.expand(t); t.typ != typ {
			return nil, false
		}

		ops = append(ops, t)
	}

	return ops, true
}

/// Assemble an instruction with no operands.
///
func (a *Assembly) assembleNoOperands(tokens []token, msb, lsb byte) []byte {
	if len(tokens) == 0 {
		return []byte{msb, lsb}
	}

	panic("illegal instruction")
}

/// Assemble an instruction taking a single 12-bit address.
///
func (a *Assembly) assembleAddress(tokens []token, msb byte) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_REF); ok {
		n := a.address(ops[0], len(a.ROM), false)

		if n >= 0 && n < MemorySize {
			return []byte{msb | byte(n>>8&0xF), byte(n & 0xFF)}
		}
	}

	panic("illegal instruction")
}

/// Assemble a JP instruction.
///
func (a *Assembly) assembleJP(tokens []token) []byte {
	if len(tokens) == 1 {
		return a.assembleAddress(tokens, 0x10)
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_REF); ok && ops[0].val.(int) == 0 {
		n := a.address(ops[1], len(a.ROM), false)

		if n >= 0 && n < MemorySize {
			return []byte{0xB0 | byte(n>>8&0xF), byte(n & 0xFF)}
		}
	}

	panic("illegal instruction")
}

/// Assemble a SE or SNE instruction.
///
func (a *Assembly) assembleSkip(tokens []token, imm, reg byte) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_LIT); ok {
		x := ops[0].val.(int)
		b := ops[1].val.(int)

		if isByte(b) {
			return []byte{imm | byte(x), byte(b)}
		}
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_V); ok {
		x := ops[0].val.(int)
		y := ops[1].val.(int)

		return []byte{reg | byte(x), byte(y << 4)}
	}

	panic("illegal instruction")
}

/// Assemble a SKP or SKNP instruction.
///
func (a *Assembly) assembleKey(tokens []token, lsb byte) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V); ok {
		x := ops[0].val.(int)

		return []byte{0xE0 | byte(x), lsb}
	}

	panic("illegal instruction")
}

/// Assemble a register to register 8xyN instruction.
///
func (a *Assembly) assembleLogic(tokens []token, n byte) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_V); ok {
		x := ops[0].val.(int)
		y := ops[1].val.(int)

		return []byte{0x80 | byte(x), byte(y<<4) | n}
	}

	panic("illegal instruction")
}

/// Assemble a SHR or SHL instruction. The optional second register is
/// accepted but ignored.
///
func (a *Assembly) assembleShift(tokens []token, n byte) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V); ok {
		x := ops[0].val.(int)

		return []byte{0x80 | byte(x), byte(x<<4) | n}
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_V); ok {
		x := ops[0].val.(int)
		y := ops[1].val.(int)

		return []byte{0x80 | byte(x), byte(y<<4) | n}
	}

	panic("illegal instruction")
}

/// Assemble a ADD instruction.
///
func (a *Assembly) assembleADD(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_LIT); ok {
		x := ops[0].val.(int)
		b := ops[1].val.(int)

		if isByte(b) {
			return []byte{0x70 | byte(x), byte(b)}
		}
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_V); ok {
		x := ops[0].val.(int)
		y := ops[1].val.(int)

		return []byte{0x80 | byte(x), byte(y<<4) | 0x04}
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_I, TOKEN_V); ok {
		x := ops[1].val.(int)

		return []byte{0xF0 | byte(x), 0x1E}
	}

	panic("illegal instruction")
}

/// Assemble a RND instruction.
///
func (a *Assembly) assembleRND(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_LIT); ok {
		x := ops[0].val.(int)
		b := ops[1].val.(int)

		if isByte(b) {
			return []byte{0xC0 | byte(x), byte(b)}
		}
	}

	panic("illegal instruction")
}

/// Assemble a DRW instruction.
///
func (a *Assembly) assembleDRW(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_V, TOKEN_LIT); ok {
		x := ops[0].val.(int)
		y := ops[1].val.(int)
		n := ops[2].val.(int)

		if n >= 0 && n <= MaxSpriteRows {
			return []byte{0xD0 | byte(x), byte(y<<4) | byte(n)}
		}
	}

	panic("illegal instruction")
}

/// Assemble a LD instruction.
///
func (a *Assembly) assembleLD(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_LIT); ok {
		x := ops[0].val.(int)
		b := ops[1].val.(int)

		if isByte(b) {
			return []byte{0x60 | byte(x), byte(b)}
		}
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_V); ok {
		x := ops[0].val.(int)
		y := ops[1].val.(int)

		return []byte{0x80 | byte(x), byte(y << 4)}
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_I, TOKEN_REF); ok {
		n := a.address(ops[1], len(a.ROM), false)

		if n >= 0 && n < MemorySize {
			return []byte{0xA0 | byte(n>>8&0xF), byte(n & 0xFF)}
		}
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_DT); ok {
		x := ops[0].val.(int)
		return []byte{0xF0 | byte(x), 0x07}
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_K); ok {
		x := ops[0].val.(int)
		return []byte{0xF0 | byte(x), 0x0A}
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_DT, TOKEN_V); ok {
		x := ops[1].val.(int)
		return []byte{0xF0 | byte(x), 0x15}
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_ST, TOKEN_V); ok {
		x := ops[1].val.(int)
		return []byte{0xF0 | byte(x), 0x18}
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_F, TOKEN_V); ok {
		x := ops[1].val.(int)
		return []byte{0xF0 | byte(x), 0x29}
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_B, TOKEN_V); ok {
		x := ops[1].val.(int)
		return []byte{0xF0 | byte(x), 0x33}
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_EFFECTIVE_ADDRESS, TOKEN_V); ok {
		x := ops[1].val.(int)
		return []byte{0xF0 | byte(x), 0x55}
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_EFFECTIVE_ADDRESS); ok {
		x := ops[0].val.(int)
		return []byte{0xF0 | byte(x), 0x65}
	}

	panic("illegal instruction")
}

/// Assemble a BYTE instruction.
///
func (a *Assembly) assembleBYTE(tokens []token) []byte {
	b := make([]byte, 0, len(tokens))

	for _, t := range tokens {
		op := a.expand(t)

		switch op.typ {
		case TOKEN_LIT:
			if !isByte(op.val.(int)) {
				panic("invalid byte")
			}

			b = append(b, byte(op.val.(int)))
		case TOKEN_TEXT:
			b = append(b, op.val.(string)...)
		default:
			panic("invalid byte")
		}
	}

	return b
}

/// Assemble a WORD instruction.
///
func (a *Assembly) assembleWORD(tokens []token) []byte {
	b := make([]byte, 0, len(tokens)*2)

	for _, t := range tokens {
		if t.typ != TOKEN_REF && t.typ != TOKEN_LIT {
			panic("invalid word")
		}

		n := a.address(t, len(a.ROM)+len(b), true)
		if n < 0 || n > 0xFFFF {
			panic("invalid word")
		}

		msb := n >> 8 & 0xFF
		lsb := n & 0xFF

		// store msb first
		b = append(b, byte(msb), byte(lsb))
	}

	return b
}

/// Assemble an ALIGN directive, padding with zeros to a multiple of n
/// (2 when not given).
///
func (a *Assembly) assembleALIGN(tokens []token) []byte {
	n := 2

	if len(tokens) > 0 {
		ops, ok := a.assembleOperands(tokens, TOKEN_LIT)
		if !ok || ops[0].val.(int) <= 0 {
			panic("illegal alignment")
		}

		n = ops[0].val.(int)
	}

	if r := len(a.ROM) % n; r > 0 {
		return make([]byte, n-r)
	}

	return nil
}

/// Assemble a PAD directive, n zero bytes.
///
func (a *Assembly) assemblePAD(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_LIT); ok {
		if n := ops[0].val.(int); n >= 0 && n < MemorySize {
			return make([]byte, n)
		}
	}

	panic("illegal pad")
}

/// isByte returns true if n fits in a byte, signed or unsigned.
///
func isByte(n int) bool {
	return n >= -0x80 && n < 0x100
}
