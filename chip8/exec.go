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
	"math/rand"
	"time"
)

/// Effect tells the engine about side effects of an instruction that
/// change how it should proceed.
///
type Effect uint8

const (
	/// EffectNone means execution continues normally.
	///
	EffectNone Effect = iota

	/// EffectDraw means video memory changed.
	///
	EffectDraw

	/// EffectAwaitKey means the machine is blocked on a key press.
	///
	EffectAwaitKey
)

/// Machine is all the state a CHIP-8 program can touch.
///
type Machine struct {
	Memory Memory
	Reg    Registers
	Keys   Keypad
	Video  Video
	Timers Timers

	/// Rand is the source for RND.
	///
	Rand *rand.Rand
}

/// NewMachine returns a machine with the font loaded, registers reset
/// and a time-seeded random source.
///
func NewMachine() *Machine {
	m := &Machine{
		Rand: rand.New(rand.NewSource(time.Now().UTC().UnixNano())),
	}

	m.Memory.clear()
	m.Reg.Reset()

	return m
}

/// Execute a decoded instruction against the machine. The program counter
/// must already point past the instruction. Any error returned is fatal.
///
func Execute(m *Machine, inst Instruction) (Effect, error) {
	r := &m.Reg

	x, y := inst.X, inst.Y

	switch inst.Op {
	case OpSYS:
		// there's no RCA 1802 to call into

	case OpCLS:
		m.Video.Clear()
		return EffectDraw, nil

	case OpRET:
		address, err := r.Pop()
		if err != nil {
			return EffectNone, err
		}

		r.PC = address

	case OpJP:
		r.PC = inst.NNN

	case OpCALL:
		if err := r.Push(r.PC); err != nil {
			return EffectNone, err
		}

		r.PC = inst.NNN

	case OpSEByte:
		skipIf(r, r.V[x] == inst.KK)

	case OpSNEByte:
		skipIf(r, r.V[x] != inst.KK)

	case OpSEReg:
		skipIf(r, r.V[x] == r.V[y])

	case OpSNEReg:
		skipIf(r, r.V[x] != r.V[y])

	case OpLDByte:
		r.V[x] = inst.KK

	case OpADDByte:
		r.V[x] += inst.KK

	case OpLDReg:
		r.V[x] = r.V[y]

	case OpOR:
		r.V[x] |= r.V[y]

	case OpAND:
		r.V[x] &= r.V[y]

	case OpXOR:
		r.V[x] ^= r.V[y]

	case OpADDReg:
		sum := uint16(r.V[x]) + uint16(r.V[y])

		// the flag is written last so VF as an operand loses
		r.V[x] = byte(sum)
		r.Flag(sum > 0xFF)

	case OpSUB:
		nb := r.V[x] >= r.V[y]

		r.V[x] -= r.V[y]
		r.Flag(nb)

	case OpSUBN:
		nb := r.V[y] >= r.V[x]

		r.V[x] = r.V[y] - r.V[x]
		r.Flag(nb)

	case OpSHR:
		c := r.V[x] & 1

		r.V[x] >>= 1
		r.V[0xF] = c

	case OpSHL:
		c := r.V[x] >> 7

		r.V[x] <<= 1
		r.V[0xF] = c

	case OpLDI:
		r.I = inst.NNN

	case OpJPV0:
		r.PC = (inst.NNN + uint16(r.V[0])) & 0xFFF

	case OpRND:
		r.V[x] = byte(m.Rand.Intn(0x100)) & inst.KK

	case OpDRW:
		sprite, err := m.Memory.Slice(r.I, int(inst.N))
		if err != nil {
			return EffectNone, err
		}

		r.Flag(m.Video.Draw(int(r.V[x]), int(r.V[y]), sprite))

		return EffectDraw, nil

	case OpSKP:
		skipIf(r, m.Keys.IsPressed(int(r.V[x]&0xF)))

	case OpSKNP:
		skipIf(r, !m.Keys.IsPressed(int(r.V[x]&0xF)))

	case OpLDVxDT:
		r.V[x] = m.Timers.Delay()

	case OpLDVxK:
		m.Keys.Await(x)
		return EffectAwaitKey, nil

	case OpLDDTVx:
		m.Timers.SetDelay(r.V[x])

	case OpLDSTVx:
		m.Timers.SetSound(r.V[x])

	case OpADDI:
		r.I += uint16(r.V[x])

	case OpLDF:
		r.I = FontAddress + uint16(r.V[x]&0xF)*GlyphSize

	case OpLDB:
		return EffectNone, storeBCD(m, r.V[x])

	case OpLDIVx:
		for i := 0; i <= x; i++ {
			if err := m.Memory.Write(r.I+uint16(i), r.V[i]); err != nil {
				return EffectNone, err
			}
		}

	case OpLDVxI:
		for i := 0; i <= x; i++ {
			b, err := m.Memory.Read(r.I + uint16(i))
			if err != nil {
				return EffectNone, err
			}

			r.V[i] = b
		}

	default:
		return EffectNone, ErrUnknownOpcode
	}

	return EffectNone, nil
}

/// skip the next instruction if the condition is true.
///
func skipIf(r *Registers, cond bool) {
	if cond {
		r.PC += 2
	}
}

/// storeBCD writes the 3 decimal digits of n to I, I+1 and I+2.
///
func storeBCD(m *Machine, n byte) error {
	v := uint16(n)
	b := uint16(0)

	// double dabble, perform 8 shifts
	for i := uint(0); i < 8; i++ {
		if (b>>0)&0xF >= 5 {
			b += 3
		}
		if (b>>4)&0xF >= 5 {
			b += 3 << 4
		}
		if (b>>8)&0xF >= 5 {
			b += 3 << 8
		}

		// apply shift, pull next bit
		b = (b << 1) | (v >> (7 - i) & 1)
	}

	digits := [3]byte{
		byte(b>>8) & 0xF,
		byte(b>>4) & 0xF,
		byte(b>>0) & 0xF,
	}

	for i, d := range digits {
		if err := m.Memory.Write(m.Reg.I+uint16(i), d); err != nil {
			return err
		}
	}

	return nil
}
