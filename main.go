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
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/massung/chip-8/chip8"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

/// MaxElapsed is the most real time a single refresh will emulate. A
/// longer stall (window drag, debugger) is dropped instead of replayed.
///
const MaxElapsed = time.Second / 10

/// The boot program is run when no ROM is loaded.
///
//go:embed boot.c8
var bootSource []byte

var (
	/// The CHIP-8 virtual machine.
	///
	VM *chip8.VM

	/// File is the ROM or source file loaded, empty for the boot program.
	///
	File string

	/// Log is the scrollback shown in the debug panel.
	///
	Log = NewScrollback(1000)

	/// Options from the command line.
	///
	Options options

	logger *log.Logger
)

/// options are the command line settings.
///
type options struct {
	rom    string
	speed  int
	scale  int
	paused bool
	term   bool
	debug  bool
	quiet  bool
	mute   bool
}

/// Frontend presents the virtual machine to the user.
///
type Frontend interface {
	/// Events handles pending input and returns false to quit.
	///
	Events() bool

	/// Refresh redraws the display and updates the tone.
	///
	Refresh()

	/// Close releases everything the frontend opened.
	///
	Close()
}

func init() {
	runtime.LockOSThread()
}

func main() {
	ctx := app.Context()

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		createLogger(false, false).Fatal(err.Error())
	}

	Options = opts
	logger = createLogger(opts.debug, opts.quiet)

	logger.Info("CHIP-8 emulator", log.String("version", buildinfo.Version(version, commit, date)))

	File = opts.rom

	// start with the program requested or boot
	if err := Load(); err != nil {
		logger.Fatal("Loading failed", log.String("file", File), log.Err(err))
	}

	if opts.paused {
		VM.Pause()
	}

	fe, err := newFrontend(opts)
	if err != nil {
		logger.Fatal("Starting frontend failed", log.Err(err))
	}

	defer fe.Close()

	Log.Log("Press H for help")

	run(ctx, fe)
}

/// parseFlags reads the command line into options.
///
func parseFlags(args []string) (options, error) {
	var opts options

	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flags.IntVar(&opts.speed, "speed", chip8.DefaultSpeed, "instructions executed per second")
	flags.IntVar(&opts.scale, "scale", 5, "pixel size of the display")
	flags.BoolVar(&opts.paused, "paused", false, "start paused in the debugger")
	flags.BoolVar(&opts.term, "term", false, "run in the terminal instead of a window")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.quiet, "q", false, "only log errors")
	flags.BoolVar(&opts.mute, "mute", false, "disable the tone")

	if err := flags.Parse(args); err != nil {
		return opts, err
	}

	switch rest := flags.Args(); len(rest) {
	case 0:
	case 1:
		opts.rom = rest[0]
	default:
		return opts, fmt.Errorf("expected a single rom, got %d", len(rest))
	}

	if opts.scale < 1 {
		return opts, errors.New("scale must be at least 1")
	}

	return opts, nil
}

/// createLogger returns the process logger for the verbosity requested.
///
func createLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()

	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}

	return log.NewWithConfig(cfg)
}

/// newFrontend opens a window, or takes over the terminal when asked to.
///
func newFrontend(opts options) (Frontend, error) {
	if opts.term {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, errors.New("stdout is not a terminal")
		}

		return NewTerminal(!opts.mute)
	}

	return NewWindow(opts.scale, !opts.mute)
}

/// Load the current File, or the boot program if there isn't one. The
/// running machine is only replaced if loading succeeds.
///
func Load() error {
	vm, err := load(File)
	if err != nil {
		Log.Logln("Failed to load", filepath.Base(File))
		Log.Log(err.Error())

		return err
	}

	vm.SetLogger(logger)
	vm.SetSpeed(Options.speed)

	VM = vm

	if File == "" {
		Log.Logln("Booted")
	} else {
		Log.Logln("Loaded", filepath.Base(File))
	}

	logger.Debug("Loaded", log.String("file", File), log.Int("size", len(vm.Program())))

	return nil
}

func load(file string) (*chip8.VM, error) {
	if file != "" {
		return chip8.LoadFile(file)
	}

	asm, err := chip8.Assemble(bootSource)
	if err != nil {
		return nil, fmt.Errorf("assembling boot program: %w", err)
	}

	vm := chip8.New()

	if err := vm.LoadAssembly(asm); err != nil {
		return nil, err
	}

	return vm, nil
}

/// Save the program in memory to file.
///
func Save(file string) error {
	if err := os.WriteFile(file, VM.Program(), 0o644); err != nil {
		Log.Logln("Failed to save", filepath.Base(file))
		return fmt.Errorf("saving rom: %w", err)
	}

	Log.Logln("Saved", filepath.Base(file))

	return nil
}

/// run the emulation until the user quits or the context is cancelled.
///
func run(ctx context.Context, fe Frontend) {
	video := time.NewTicker(time.Second / 60)
	defer video.Stop()

	last := time.Now()

	// the error that halted the machine, reported once
	var halted error

	for fe.Events() {
		select {
		case <-ctx.Done():
			logger.Info("Interrupted")
			return
		case now := <-video.C:
			elapsed := now.Sub(last)
			last = now

			if elapsed > MaxElapsed {
				elapsed = MaxElapsed
			}

			bp, err := VM.Process(elapsed)
			if bp != nil {
				Log.Logln(fmt.Sprintf("Breakpoint at #%04X", bp.Address))

				if bp.Reason != "" {
					Log.Log(bp.Reason)
				}
			}

			if err != nil && err != halted {
				Log.Logln("Halted")
				Log.Log(err.Error())
			}

			halted = err

			fe.Refresh()
		}
	}
}

/// Help writes the key bindings to the log.
///
func Help() {
	Log.Logln("Keys:")
	Log.Log("  1 2 3 4   1 2 3 C")
	Log.Log("  Q W E R   4 5 6 D")
	Log.Log("  A S D F   7 8 9 E")
	Log.Log("  Z X C V   A 0 B F")
	Log.Logln("Emulation:")
	Log.Log("  ESC       - Unload / quit")
	Log.Log("  BACK      - Reset (+CTRL paused)")
	Log.Log("  [ ]       - Speed down / up")
	Log.Log("  SPACE/F5  - Pause")
	Log.Log("  F6/F10    - Step")
	Log.Log("  F7/F11    - Step over")
	Log.Log("  F9        - Breakpoint")
	Log.Log("  F2        - Reload")
	Log.Log("  F3 / F4   - Open / save")
	Log.Log("  PGUP/PGDN - Scroll log")
}
