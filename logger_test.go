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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/retroenv/retrogolib/assert"
)

func TestScrollbackFollows(t *testing.T) {
	log := NewScrollback(100)

	log.Log("a")
	log.Logf("%s%d", "b", 1)
	log.Logln("c")

	if diff := cmp.Diff([]string{"a", "b1", "", "c"}, log.Window(10)); diff != "" {
		t.Errorf("window mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"", "c"}, log.Window(2)); diff != "" {
		t.Errorf("window mismatch (-want +got):\n%s", diff)
	}
}

func TestScrollbackTrims(t *testing.T) {
	log := NewScrollback(5)

	for i := 0; i < 8; i++ {
		log.Log(fmt.Sprint(i))
	}

	assert.Equal(t, 5, log.Len())

	if diff := cmp.Diff([]string{"3", "4", "5", "6", "7"}, log.Window(5)); diff != "" {
		t.Errorf("window mismatch (-want +got):\n%s", diff)
	}
}

/// window compares the last two visible lines.
///
func window(t *testing.T, log *Scrollback, want string) {
	t.Helper()

	if got := strings.Join(log.Window(2), " "); got != want {
		t.Errorf("window = %q, want %q", got, want)
	}
}

func TestScrollbackScroll(t *testing.T) {
	log := NewScrollback(100)

	for i := 0; i < 10; i++ {
		log.Log(fmt.Sprint(i))
	}

	log.ScrollUp()
	window(t, log, "7 8")

	// scrolled back, new lines don't move the window
	log.Log("10")
	window(t, log, "7 8")

	log.Home()
	window(t, log, "0 1")

	log.ScrollDown(2)
	window(t, log, "1 2")

	log.End()
	window(t, log, "9 10")

	log.ScrollDown(2)
	window(t, log, "9 10")
}
