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
	"errors"

	"github.com/retroenv/retrogolib/log"
	"github.com/sqweek/dialog"
)

/// OpenDialog asks for a ROM or source file and loads it. The running
/// program is kept if it fails to load.
///
func OpenDialog() {
	file, err := dialog.File().
		Title("Load ROM").
		Filter("CHIP-8 ROM", "ch8", "rom").
		Filter("CHIP-8 assembly", "c8", "asm", "s").
		Filter("All files", "*").
		Load()
	if err != nil {
		if !errors.Is(err, dialog.ErrCancelled) {
			logger.Error("Open dialog failed", log.Err(err))
		}

		return
	}

	prev := File
	File = file

	if err := Load(); err != nil {
		File = prev
		ShowError(err)
	}
}

/// SaveDialog asks where to save the program in memory.
///
func SaveDialog() {
	file, err := dialog.File().
		Title("Save ROM").
		Filter("CHIP-8 ROM", "ch8").
		Save()
	if err != nil {
		if !errors.Is(err, dialog.ErrCancelled) {
			logger.Error("Save dialog failed", log.Err(err))
		}

		return
	}

	if err := Save(file); err != nil {
		ShowError(err)
	}
}

/// ShowError in a message box.
///
func ShowError(err error) {
	logger.Error("Error", log.Err(err))

	dialog.Message("%s", err.Error()).Title("CHIP-8").Error()
}
