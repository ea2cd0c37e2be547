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
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/retroenv/retrogolib/log"
)

/// State of the virtual machine.
///
type State uint8

const (
	/// Running executes instructions as they come due.
	///
	Running State = iota

	/// Paused is stopped by the host or a breakpoint.
	///
	Paused

	/// AwaitingKey is blocked on LD Vx, K until a key is pressed.
	///
	AwaitingKey

	/// Halted stopped on a fatal error. Only Reset or Load recover.
	///
	Halted
)

/// String returns the name of the state.
///
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case AwaitingKey:
		return "awaiting key"
	case Halted:
		return "halted"
	}

	return fmt.Sprintf("state(%d)", uint8(s))
}

/// Breakpoint pauses the virtual machine before the instruction at
/// Address executes.
///
type Breakpoint struct {
	Address uint16
	Reason  string

	// removed once hit (step over)
	once bool
}

/// VM is the CHIP-8 virtual machine emulator. It owns the machine state
/// and schedules instructions and timer ticks against real time.
///
/// All exported methods are safe to call from more than one goroutine,
/// each call is applied as a whole.
///
type VM struct {
	Machine

	mu sync.Mutex

	/// rom is the pristine program that Reset restores memory from.
	///
	rom []byte

	/// state is the current execution state and resume is the state to
	/// return to when unpaused.
	///
	state  State
	resume State

	/// err is the error that halted the machine.
	///
	err error

	/// clock schedules instructions and ticks.
	///
	clock *Clock

	/// cycles is how many instructions have been executed.
	///
	cycles int64

	/// breakpoints by address, and whether the next step ignores the
	/// breakpoint it is paused on.
	///
	breakpoints map[uint16]Breakpoint
	skipBreak   bool

	logger *log.Logger
}

/// New returns a virtual machine with an empty program.
///
func New() *VM {
	vm := &VM{
		Machine:     *NewMachine(),
		clock:       NewClock(DefaultSpeed),
		breakpoints: make(map[uint16]Breakpoint),
	}

	vm.reset()

	return vm
}

/// LoadROM creates a new virtual machine running program.
///
func LoadROM(program []byte) (*VM, error) {
	vm := New()

	if err := vm.Load(program); err != nil {
		return nil, err
	}

	return vm, nil
}

/// LoadFile reads a ROM and creates a new virtual machine running it.
/// Assembly source files (.c8, .asm, .s) are assembled first.
///
func LoadFile(file string) (*VM, error) {
	program, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading rom: %w", err)
	}

	vm := New()

	if !IsSource(file) {
		if err := vm.Load(program); err != nil {
			return nil, fmt.Errorf("loading %s: %w", filepath.Base(file), err)
		}

		return vm, nil
	}

	asm, err := Assemble(program)
	if err != nil {
		return nil, fmt.Errorf("assembling %s: %w", filepath.Base(file), err)
	}

	if err := vm.LoadAssembly(asm); err != nil {
		return nil, fmt.Errorf("loading %s: %w", filepath.Base(file), err)
	}

	return vm, nil
}

/// IsSource returns true if the file name looks like assembly source.
///
func IsSource(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".c8", ".asm", ".s":
		return true
	}

	return false
}

/// SetLogger sets the logger used to report state changes.
///
func (vm *VM) SetLogger(logger *log.Logger) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.logger = logger
}

/// Load replaces the program and resets the machine. On error the
/// current program is left untouched.
///
func (vm *VM) Load(program []byte) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	return vm.load(program)
}

/// LoadAssembly loads an assembled program and its breakpoints.
///
func (vm *VM) LoadAssembly(asm *Assembly) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if err := vm.load(asm.ROM); err != nil {
		return err
	}

	for _, bp := range asm.Breakpoints {
		vm.breakpoints[bp.Address] = bp
	}

	return nil
}

func (vm *VM) load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%d bytes: %w", len(program), ErrCapacityExceeded)
	}

	vm.rom = append([]byte(nil), program...)
	vm.breakpoints = make(map[uint16]Breakpoint)
	vm.reset()

	if vm.logger != nil {
		vm.logger.Debug("Program loaded", log.Int("size", len(program)))
	}

	return nil
}

/// Reset the virtual machine to the state right after the program was
/// loaded. This recovers a halted machine.
///
func (vm *VM) Reset() {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.reset()
}

func (vm *VM) reset() {
	// cannot fail, the size was checked when loaded
	_ = vm.Memory.Load(vm.rom)

	vm.Reg.Reset()
	vm.Keys.Reset()
	vm.Video.Clear()
	vm.Timers.Reset()
	vm.clock.Reset()

	// drop any step over breakpoints
	for address, bp := range vm.breakpoints {
		if bp.once {
			delete(vm.breakpoints, address)
		}
	}

	vm.state = Running
	vm.resume = Running
	vm.err = nil
	vm.cycles = 0
	vm.skipBreak = false
}

/// State returns the current execution state.
///
func (vm *VM) State() State {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	return vm.state
}

/// Err returns the error that halted the machine or nil.
///
func (vm *VM) Err() error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	return vm.err
}

/// Cycles returns the number of instructions executed since reset.
///
func (vm *VM) Cycles() int64 {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	return vm.cycles
}

/// Paused returns true if the machine is paused.
///
func (vm *VM) Paused() bool {
	return vm.State() == Paused
}

/// Pause stops execution. Timers are frozen while paused.
///
func (vm *VM) Pause() {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.pause()
}

func (vm *VM) pause() {
	if vm.state == Running || vm.state == AwaitingKey {
		vm.resume = vm.state
		vm.state = Paused

		if vm.logger != nil {
			vm.logger.Debug("Paused", log.Hex("pc", vm.Reg.PC))
		}
	}
}

/// Resume execution after a pause.
///
func (vm *VM) Resume() {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.unpause()
}

func (vm *VM) unpause() {
	if vm.state == Paused {
		vm.state = vm.resume

		// don't let a long pause turn into a burst of instructions
		vm.clock.Reset()

		if vm.logger != nil {
			vm.logger.Debug("Resumed", log.String("state", vm.state.String()))
		}
	}
}

/// TogglePause pauses a running machine or resumes a paused one.
///
func (vm *VM) TogglePause() {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.state == Paused {
		vm.unpause()
	} else {
		vm.pause()
	}
}

/// Speed returns the number of instructions executed per second.
///
func (vm *VM) Speed() int {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	return vm.clock.Speed()
}

/// SetSpeed sets the instructions executed per second. This has no
/// effect on the timers.
///
func (vm *VM) SetSpeed(speed int) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.clock.SetSpeed(speed)
}

/// IncSpeed speeds up the processor.
///
func (vm *VM) IncSpeed() {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.clock.SetSpeed(vm.clock.Speed() + SpeedStep)
}

/// DecSpeed slows down the processor.
///
func (vm *VM) DecSpeed() {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.clock.SetSpeed(vm.clock.Speed() - SpeedStep)
}

/// SetKey emulates a CHIP-8 key being pressed or released. Pressing a key
/// while waiting on LD Vx, K stores it in Vx and resumes execution.
///
func (vm *VM) SetKey(key int, pressed bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if !vm.Keys.SetKey(key, pressed) || vm.state != AwaitingKey {
		return
	}

	// if waiting for a key, set it now
	if x, ok := vm.Keys.Waiting(); ok {
		vm.Reg.V[x] = byte(key)
		vm.Keys.Release()
		vm.state = Running
	}
}

/// PressKey emulates a CHIP-8 key being pressed.
///
func (vm *VM) PressKey(key int) {
	vm.SetKey(key, true)
}

/// ReleaseKey emulates a CHIP-8 key being released.
///
func (vm *VM) ReleaseKey(key int) {
	vm.SetKey(key, false)
}

/// IsPressed returns true if key is held down.
///
func (vm *VM) IsPressed(key int) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	return vm.Keys.IsPressed(key)
}

/// DelayTimer returns the delay timer register.
///
func (vm *VM) DelayTimer() byte {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	return vm.Timers.Delay()
}

/// SoundTimer returns the sound timer register. A tone should play for
/// as long as it is non-zero.
///
func (vm *VM) SoundTimer() byte {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	return vm.Timers.Sound()
}

/// Snapshot returns a copy of the display.
///
func (vm *VM) Snapshot() Frame {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	return vm.Video.Snapshot()
}

/// Registers returns a copy of the register file.
///
func (vm *VM) Registers() Registers {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	return vm.Reg
}

/// Tick the delay and sound timers once.
///
func (vm *VM) Tick() {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.Timers.Tick()
}

/// Step the CHIP-8 virtual machine a single instruction. This works while
/// paused, for single stepping in the debugger.
///
func (vm *VM) Step() error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	err := vm.step()

	// moved off any breakpoint
	vm.skipBreak = false

	return err
}

func (vm *VM) step() error {
	if vm.state == Halted {
		return vm.err
	}

	// blocked until a key is pressed
	if _, waiting := vm.Keys.Waiting(); waiting {
		return nil
	}

	pc := vm.Reg.PC

	// fetch the next instruction
	raw, err := vm.Memory.ReadWord(pc)
	if err != nil {
		return vm.halt(pc, raw, err)
	}

	inst, err := Decode(raw)
	if err != nil {
		return vm.halt(pc, raw, err)
	}

	// advance the program counter
	vm.Reg.PC += 2

	effect, err := Execute(&vm.Machine, inst)
	if err != nil {
		return vm.halt(pc, raw, err)
	}

	if effect == EffectAwaitKey {
		if vm.state == Paused {
			vm.resume = AwaitingKey
		} else {
			vm.state = AwaitingKey
		}
	}

	// increment the cycle count
	vm.cycles++

	return nil
}

/// halt the machine with a fatal error.
///
func (vm *VM) halt(pc, raw uint16, err error) error {
	vm.Reg.PC = pc

	vm.err = &HaltError{Address: pc, Raw: raw, Err: err}
	vm.state = Halted

	if vm.logger != nil {
		vm.logger.Error("Halted",
			log.Hex("pc", pc),
			log.Hex("opcode", raw),
			log.Err(err))
	}

	return vm.err
}

/// Process emulation for elapsed real time. Instructions are executed at
/// the processor speed and the timers tick at 60 Hz, interleaved. If a
/// breakpoint is reached the machine pauses and it is returned.
///
func (vm *VM) Process(elapsed time.Duration) (*Breakpoint, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	steps, ticks := vm.clock.Advance(elapsed)

	switch vm.state {
	case Halted:
		return nil, vm.err
	case Paused:
		return nil, nil
	}

	done := 0

	// spread the instructions evenly between timer ticks
	for t := 1; t <= ticks; t++ {
		due := steps * t / ticks

		if bp, err := vm.run(due - done); bp != nil || err != nil {
			return bp, err
		}

		done = due

		vm.Timers.Tick()
	}

	return vm.run(steps - done)
}

/// run up to n instructions.
///
func (vm *VM) run(n int) (*Breakpoint, error) {
	for i := 0; i < n; i++ {
		if vm.state != Running {
			return nil, nil
		}

		if bp, ok := vm.breakpoints[vm.Reg.PC]; ok && !vm.skipBreak {
			if bp.once {
				delete(vm.breakpoints, bp.Address)
			}

			vm.pause()
			vm.skipBreak = true

			if vm.logger != nil {
				vm.logger.Info("Breakpoint",
					log.Hex("pc", bp.Address),
					log.String("reason", bp.Reason))
			}

			return &bp, nil
		}

		vm.skipBreak = false

		if err := vm.step(); err != nil {
			return nil, err
		}
	}

	return nil, nil
}

/// ToggleBreakpoint adds or removes a breakpoint at address. Returns true
/// if the breakpoint is now set.
///
func (vm *VM) ToggleBreakpoint(address uint16) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if _, ok := vm.breakpoints[address]; ok {
		delete(vm.breakpoints, address)
		return false
	}

	vm.breakpoints[address] = Breakpoint{
		Address: address,
		Reason:  "user break",
	}

	return true
}

/// Breakpoints returns all breakpoints ordered by address.
///
func (vm *VM) Breakpoints() []Breakpoint {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	bps := make([]Breakpoint, 0, len(vm.breakpoints))
	for _, bp := range vm.breakpoints {
		bps = append(bps, bp)
	}

	sort.Slice(bps, func(i, j int) bool {
		return bps[i].Address < bps[j].Address
	})

	return bps
}

/// SetOverBreakpoint steps over the instruction at the program counter
/// while paused. A CALL runs until it returns, anything else is a single
/// step.
///
func (vm *VM) SetOverBreakpoint() error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.state != Paused {
		return nil
	}

	raw, err := vm.Memory.ReadWord(vm.Reg.PC)
	if err != nil {
		return vm.halt(vm.Reg.PC, raw, err)
	}

	if inst, err := Decode(raw); err == nil && inst.Op == OpCALL {
		next := vm.Reg.PC + 2

		// an existing breakpoint there is kept
		if _, ok := vm.breakpoints[next]; !ok {
			vm.breakpoints[next] = Breakpoint{
				Address: next,
				Reason:  "step over",
				once:    true,
			}
		}

		vm.skipBreak = true
		vm.unpause()

		return nil
	}

	err = vm.step()
	vm.skipBreak = false

	return err
}

/// Disassemble the instruction at address.
///
func (vm *VM) Disassemble(address uint16) string {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	return Disassemble(&vm.Memory, address)
}

/// Program returns the loaded program image as it currently is in memory.
///
func (vm *VM) Program() []byte {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	return vm.Memory.Program()
}
