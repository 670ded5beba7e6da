package main

import (
	"fmt"
	"iter"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ezrec/zenith/cpu"
	zio "github.com/ezrec/zenith/io"
)

var asmCmd = &cobra.Command{
	Use:     "asm [flags] program.zen",
	Short:   "Assemble a ZENITH program.",
	Long:    `Assemble a ZENITH program into a memory image, and optionally print its listing.`,
	Aliases: []string{"assemble"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		verbose := GetFlag(cmd, "verbose")
		if verbose {
			log.SetLevel(log.DebugLevel)
		}

		prog, err := assembleFile(args[0], verbose, nil)
		if err != nil {
			log.Errorf("%v: %v", args[0], err)
			os.Exit(3)
		}

		if GetFlag(cmd, "list") {
			for _, op := range prog.Opcodes {
				fmt.Println(op)
			}
		}

		output := GetString(cmd, "output")
		if len(output) == 0 {
			return
		}

		ouf, err := os.Create(output)
		if err != nil {
			log.Errorf("%v: %v", output, err)
			os.Exit(3)
		}
		defer ouf.Close()

		err = zio.Image(prog.Binary()).Marshal(ouf)
		if err != nil {
			log.Errorf("%v: %v", output, err)
			os.Exit(3)
		}
	},
}

// assembleFile assembles a source file, with optional extra defines.
func assembleFile(file string, verbose bool, defines iter.Seq2[string, string]) (prog *cpu.Program, err error) {
	inf, err := os.Open(file)
	if err != nil {
		return
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: verbose}
	if defines != nil {
		for name, value := range defines {
			asm.Predefine(name, value)
		}
	}

	prog, err = asm.Parse(inf)
	return
}

func init() {
	rootCmd.AddCommand(asmCmd)
	asmCmd.Flags().StringP("output", "o", "", "write the memory image to this file")
	asmCmd.Flags().BoolP("list", "l", false, "print the program listing")
}
