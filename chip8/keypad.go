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

/// KeyCount is the number of keys on the hex keypad.
///
const KeyCount = 16

/// Keypad holds the current state for the 16-key pad and the register
/// waiting on the next key press, if any.
///
type Keypad struct {
	keys [KeyCount]bool

	// register waiting for a key (LD Vx, K)
	waiting bool
	target  int
}

/// Reset releases all keys and cancels any wait.
///
func (k *Keypad) Reset() {
	*k = Keypad{}
}

/// SetKey records a key transition. It returns true when the key went
/// from released to pressed. Keys outside 0-F are ignored.
///
func (k *Keypad) SetKey(key int, pressed bool) bool {
	if key < 0 || key >= KeyCount {
		return false
	}

	edge := pressed && !k.keys[key]
	k.keys[key] = pressed

	return edge
}

/// IsPressed returns true if the key is currently held down.
///
func (k *Keypad) IsPressed(key int) bool {
	if key < 0 || key >= KeyCount {
		return false
	}

	return k.keys[key]
}

/// Await blocks register x until the next key press.
///
func (k *Keypad) Await(x int) {
	k.waiting = true
	k.target = x
}

/// Waiting returns the register waiting for a key press.
///
func (k *Keypad) Waiting() (int, bool) {
	return k.target, k.waiting
}

/// Release cancels the wait.
///
func (k *Keypad) Release() {
	k.waiting = false
	k.target = 0
}
