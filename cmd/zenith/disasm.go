package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm [flags] program.bin",
	Short: "Disassemble a ZENITH memory image.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}

		prog, err := readImage(args[0])
		if err != nil {
			log.Errorf("%v: %v", args[0], err)
			os.Exit(3)
		}

		for _, op := range prog.Opcodes {
			fmt.Println(op)
		}
	},
}

func init() {
	rootCmd.AddCommand(disasmCmd)
}
