package main

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ezrec/zenith/translate"
)

var f = translate.From

// Version is filled when building with make, but *not* when installing via "go
// install".
var Version string

// DEFAULT_PROGRAM is run when no program file is named.
const DEFAULT_PROGRAM = "main.zen"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "zenith [flags] [program.zen]",
	Short: "The ZENITH virtual machine.",
	Long:  "Assemble and run programs for the ZENITH 16-bit virtual machine.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			fmt.Print("zenith ")
			if Version != "" {
				fmt.Printf("%s", Version)
			} else if info, ok := debug.ReadBuildInfo(); ok {
				fmt.Printf("%s", info.Main.Version)
			} else {
				fmt.Printf("(unknown version)")
			}
			fmt.Println()
			return
		}
		runProgramCmd(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// GetFlag gets an expected boolean flag, or exits.
func GetFlag(cmd *cobra.Command, flag string) bool {
	value, err := cmd.Flags().GetBool(flag)
	if err != nil {
		log.Error(err)
		os.Exit(2)
	}

	return value
}

// GetString gets an expected string flag, or exits.
func GetString(cmd *cobra.Command, flag string) string {
	value, err := cmd.Flags().GetString(flag)
	if err != nil {
		log.Error(err)
		os.Exit(2)
	}

	return value
}

// GetInt gets an expected int flag, or exits.
func GetInt(cmd *cobra.Command, flag string) int {
	value, err := cmd.Flags().GetInt(flag)
	if err != nil {
		log.Error(err)
		os.Exit(2)
	}

	return value
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.Flags().Bool("version", false, "print the version and exit")
	rootCmd.Flags().Bool("binary", false, "treat the program file as an assembled image")
	rootCmd.Flags().Int("max-ticks", 0, "stop after this many instructions (0 for no limit)")
}
