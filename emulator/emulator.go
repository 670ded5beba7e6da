// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"

	log "github.com/sirupsen/logrus"

	"github.com/ezrec/zenith/cpu"
	"github.com/ezrec/zenith/io"
)

// Emulator state. CPU + program listing + IO tape.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Tape     io.Tape // Tape IO channel.
	MaxTicks int     // If non-zero, Run fails after this many instructions.
}

// NewEmulator creates a new emulator, with the tape attached to the CPU.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	emu.Cpu.SetChannel(&emu.Tape)

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for name, value := range emu.Cpu.Defines() {
			if !yield(name, value) {
				return
			}
		}
		yield("MAX_TICKS", fmt.Sprintf("%d", emu.MaxTicks))
	}
}

// Reset the CPU and load the program image.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	emu.Cpu.Reset()

	err = emu.Cpu.Load(emu.Program.Binary())
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Debugf("emulator: %d opcodes loaded", len(emu.Program.Opcodes))
	}

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Ip returns current instruction pointer.
func (emu *Emulator) Ip() int {
	return int(emu.Cpu.Ip)
}

// Code returns the instruction code at the instruction pointer, or the
// fetch fault when the pointer is past the last full word.
func (emu *Emulator) Code() (code cpu.Code, err error) {
	code, err = emu.Cpu.Fetch()
	return
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	op := emu.Program.Debug(emu.Cpu.Ip)
	if op == nil {
		return 0
	}

	return op.LineNo
}

// Tick performs a single tick of the emulator. done is set once the CPU has
// halted, for any reason.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	if !emu.Cpu.IsRunning() {
		done = true
		return
	}

	lineno := emu.LineNo()
	err = emu.Cpu.Step()
	if err != nil {
		err = &ErrRuntime{LineNo: lineno, Err: err}
	}

	done = !emu.Cpu.IsRunning()

	return
}

// Run ticks the emulator until it halts, faults or exceeds MaxTicks.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		if emu.MaxTicks > 0 && emu.Cpu.Ticks >= emu.MaxTicks {
			err = &ErrRuntime{LineNo: emu.LineNo(), Err: ErrTickLimit}
			return
		}

		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
