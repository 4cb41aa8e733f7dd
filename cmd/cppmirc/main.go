package main

import (
	"os"

	"github.com/spf13/cobra"

	"cppmir/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "cppmirc",
	Short: "cppmir translator core demo",
	Long:  `cppmirc wires internal/context, internal/batch, and internal/mirser together over a fixture translation unit, to exercise the C++-to-MIR pipeline end to end.`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(lowerCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize diagnostic output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "accepted for command-line compatibility; no subcommand reads it")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
