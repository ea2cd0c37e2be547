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

package main

import (
	"fmt"
	"strings"
)

// Scrollback is an output log that can be viewed and scrolled.
type Scrollback struct {
	// buf contains each line of logged text.
	buf []string

	// max is the number of lines kept, older lines are dropped.
	max int

	// pos is the current user read position within the log.
	pos int
}

// NewScrollback creates a new Scrollback keeping up to max lines.
func NewScrollback(max int) *Scrollback {
	return &Scrollback{
		buf: make([]string, 0, 100),
		max: max,
	}
}

// Log outputs a new line to the log.
func (log *Scrollback) Log(s ...string) {
	log.append(strings.Join(s, " "))
}

// Logf outputs a new formatted line to the log.
func (log *Scrollback) Logf(format string, args ...interface{}) {
	log.append(fmt.Sprintf(format, args...))
}

// Logln outputs a new line to the log, with an empty line prefixed.
func (log *Scrollback) Logln(s ...string) {
	log.append("", strings.Join(s, " "))
}

// append lines, following them if the log is scrolled to the end.
func (log *Scrollback) append(lines ...string) {
	scroll := log.pos == len(log.buf)

	log.buf = append(log.buf, lines...)

	// drop the oldest lines
	if n := len(log.buf) - log.max; n > 0 {
		log.buf = append(log.buf[:0], log.buf[n:]...)
		log.pos -= n

		if log.pos < 0 {
			log.pos = 0
		}
	}

	if scroll {
		log.pos = len(log.buf)
	}
}

// Len returns the number of lines in the log.
func (log *Scrollback) Len() int {
	return len(log.buf)
}

// Window returns a slice of strings logged.
func (log *Scrollback) Window(n int) []string {
	start := log.pos - n

	// don't scroll past the beginning
	if start < 0 {
		start = 0
	}

	if start+n >= len(log.buf) {
		return log.buf[start:]
	}

	return log.buf[start : start+n]
}

// Home scrolls the log to the beginning.
func (log *Scrollback) Home() {
	log.pos = 0
}

// End scrolls the log to the end.
func (log *Scrollback) End() {
	log.pos = len(log.buf)
}

// ScrollUp scrolls the log back one position.
func (log *Scrollback) ScrollUp() {
	log.pos--

	// clamp to home
	if log.pos < 0 {
		log.Home()
	}
}

// ScrollDown scrolls the log forward one position.
func (log *Scrollback) ScrollDown(windowSize int) {
	log.pos++

	// if less than the window size, drop to it
	if log.pos <= windowSize {
		log.pos = windowSize + 1
	}

	// clamp to end
	if log.pos >= len(log.buf) {
		log.End()
	}
}
