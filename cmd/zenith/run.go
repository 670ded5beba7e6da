package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ezrec/zenith/cpu"
	"github.com/ezrec/zenith/emulator"
	zio "github.com/ezrec/zenith/io"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] [program.zen]",
	Short: "Assemble and run a ZENITH program.",
	Long: `Assemble a ZENITH program and run it until it halts.
OUT instructions print to standard output; INP instructions read a line from
standard input.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runProgramCmd,
}

func runProgramCmd(cmd *cobra.Command, args []string) {
	verbose := GetFlag(cmd, "verbose")
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	file := DEFAULT_PROGRAM
	if len(args) > 0 {
		file = args[0]
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.MaxTicks = GetInt(cmd, "max-ticks")

	emu.Tape.Input = os.Stdin
	emu.Tape.Output = os.Stdout
	emu.Tape.Prompt = term.IsTerminal(int(os.Stdin.Fd()))

	err := runProgram(os.Stdout, emu, file, GetFlag(cmd, "binary"))
	if err != nil {
		log.Errorf("%v: %v", file, err)
		os.Exit(3)
	}
}

// runProgram loads a program file into the emulator and runs it, writing
// why it stopped to w. A missing file is reported to w and nothing runs.
// Only load errors are returned.
func runProgram(w io.Writer, emu *emulator.Emulator, file string, binary bool) (err error) {
	_, err = os.Stat(file)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(w, f("%v not found.", file))
		err = nil
		return
	}

	if binary {
		emu.Program, err = readImage(file)
	} else {
		emu.Program, err = assembleFile(file, emu.Verbose, emu.Defines())
	}
	if err != nil {
		return
	}

	err = emu.Reset()
	if err != nil {
		return
	}

	reportHalt(w, emu, emu.Run())

	return
}

// reportHalt writes why the program stopped. A HLT writes nothing.
func reportHalt(w io.Writer, emu *emulator.Emulator, err error) {
	var opcode cpu.ErrOpcode

	switch {
	case err == nil:
	case errors.As(err, &opcode):
		fmt.Fprintln(w, f("Unknown opcode %X", int(opcode.Op())))
	default:
		fmt.Fprintln(w, err)
	}

	log.Debugf("%d ticks\n%v", emu.Ticks(), emu.Cpu)
}

// readImage loads an assembled image, and disassembles it for line
// reporting.
func readImage(file string) (prog *cpu.Program, err error) {
	inf, err := os.Open(file)
	if err != nil {
		return
	}
	defer inf.Close()

	var image zio.Image
	err = image.Unmarshal(inf)
	if err != nil {
		return
	}

	prog = cpu.Disassemble(image)
	return
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("binary", false, "treat the program file as an assembled image")
	runCmd.Flags().Int("max-ticks", 0, "stop after this many instructions (0 for no limit)")
}
