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

	"github.com/massung/chip-8/chip8"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

/// Window is the SDL frontend: the CHIP-8 display with the debugger
/// panels beside and below it.
///
type Window struct {
	window   *sdl.Window
	renderer *sdl.Renderer

	/// screen is the render target for the CHIP-8 video memory.
	///
	screen *sdl.Texture

	/// font is the texture containing the debug font.
	///
	font *sdl.Texture

	audio *Audio

	/// layout, derived from the scale of the display
	///
	scale         int32
	width, height int32

	/// address is the top of the disassembly panel.
	///
	address uint16
}

/// NewWindow initializes SDL and opens the main window.
///
func NewWindow(scale int, sound bool) (*Window, error) {
	var err error

	// initialize SDL
	if err = sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("initializing sdl: %w", err)
	}

	w := &Window{scale: int32(scale)}

	sw, sh := w.screenSize()

	// room for the disassembly on the right and registers and log below
	w.width = sw + 238
	w.height = sh + 206

	// create the main window and renderer
	if w.window, w.renderer, err = sdl.CreateWindowAndRenderer(w.width, w.height, sdl.WINDOW_SHOWN); err != nil {
		w.Close()
		return nil, fmt.Errorf("creating window: %w", err)
	}

	w.window.SetTitle("CHIP-8")

	// create a render target for the display
	if w.screen, err = w.renderer.CreateTexture(sdl.PIXELFORMAT_RGB888, sdl.TEXTUREACCESS_TARGET, chip8.Width, chip8.Height); err != nil {
		w.Close()
		return nil, fmt.Errorf("creating screen: %w", err)
	}

	if w.font, err = createFont(w.renderer); err != nil {
		w.Close()
		return nil, fmt.Errorf("creating font: %w", err)
	}

	if sound {
		if w.audio, err = NewAudio(); err != nil {
			logger.Warn("Audio disabled", log.Err(err))
		}
	}

	return w, nil
}

/// screenSize returns the size of the scaled CHIP-8 display.
///
func (w *Window) screenSize() (int32, int32) {
	return chip8.Width * w.scale, chip8.Height * w.scale
}

/// Close destroys everything created and shuts down SDL.
///
func (w *Window) Close() {
	w.audio.Close()

	if w.font != nil {
		_ = w.font.Destroy()
	}

	if w.screen != nil {
		_ = w.screen.Destroy()
	}

	if w.renderer != nil {
		_ = w.renderer.Destroy()
	}

	if w.window != nil {
		_ = w.window.Destroy()
	}

	sdl.Quit()
}

/// Refresh redraws the whole window and updates the tone.
///
func (w *Window) Refresh() {
	sw, sh := w.screenSize()

	_ = w.renderer.SetDrawColor(32, 42, 53, 255)
	_ = w.renderer.Clear()

	// panels below the display
	py := sh + 16
	ph := w.height - py - 8

	// frame various portions of the app
	w.Frame(8, 8, sw+2, sh+2)
	w.Frame(sw+18, 8, 212, sh+2)
	w.Frame(8, py, 146, ph)
	w.Frame(162, py, w.width-170, ph)

	// update the video screen and copy it
	w.RefreshScreen()
	w.CopyScreen(9, 9, sw, sh)

	// debug assembly and virtual registers
	w.DebugAssembly(sw+24, 14, int(sh-8)/10)
	w.DebugRegisters(14, py+6)
	w.DebugLog(168, py+6, int(w.width-182)/GlyphAdvance)
	w.DebugKeys(14, py+ph-10)

	// show the new frame
	w.renderer.Present()

	w.audio.Play(VM.SoundTimer() > 0)
}

/// Frame draws a beveled border.
///
func (w *Window) Frame(x, y, width, height int32) {
	_ = w.renderer.SetDrawColor(0, 0, 0, 255)
	_ = w.renderer.DrawLine(x, y, x+width, y)
	_ = w.renderer.DrawLine(x, y, x, y+height)

	// highlight
	_ = w.renderer.SetDrawColor(95, 112, 120, 255)
	_ = w.renderer.DrawLine(x+width, y, x+width, y+height)
	_ = w.renderer.DrawLine(x, y+height, x+width, y+height)
}

/// RefreshScreen with the CHIP-8 video memory.
///
func (w *Window) RefreshScreen() {
	if err := w.renderer.SetRenderTarget(w.screen); err != nil {
		logger.Error("Refreshing screen failed", log.Err(err))
		return
	}

	// the background color for the screen
	_ = w.renderer.SetDrawColor(143, 145, 133, 255)
	_ = w.renderer.Clear()

	// set the pixel color
	_ = w.renderer.SetDrawColor(17, 29, 43, 255)

	frame := VM.Snapshot()

	// draw all the pixels
	for y, row := range frame {
		for x, on := range row {
			if on {
				_ = w.renderer.DrawPoint(int32(x), int32(y))
			}
		}
	}

	// restore the render target
	_ = w.renderer.SetRenderTarget(nil)
}

/// CopyScreen to the render target, stretched to fit.
///
func (w *Window) CopyScreen(x, y, width, height int32) {
	_ = w.renderer.Copy(w.screen, nil, &sdl.Rect{X: x, Y: y, W: width, H: height})
}
