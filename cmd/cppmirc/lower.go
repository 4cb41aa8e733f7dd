package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cppmir/internal/ast"
	"cppmir/internal/batch"
	"cppmir/internal/diag"
	"cppmir/internal/mirser"
	"cppmir/internal/source"
	"cppmir/internal/version"
)

var (
	lowerConfigPath string
	lowerOutPath    string
	lowerJobs       int
)

func init() {
	lowerCmd.Flags().StringVar(&lowerConfigPath, "config", "cppmir.toml", "path to a cppmir.toml config file")
	lowerCmd.Flags().StringVar(&lowerOutPath, "out", "", "write the lowered MIR module to this path (msgpack)")
	lowerCmd.Flags().IntVar(&lowerJobs, "jobs", 0, "max concurrent translation units (0 = GOMAXPROCS)")
}

var lowerCmd = &cobra.Command{
	Use:   "lower",
	Short: "Lower a fixture translation unit through the core pipeline and print its diagnostics",
	RunE: func(cmd *cobra.Command, args []string) error {
		rc, err := loadConfig(lowerConfigPath)
		if err != nil {
			return err
		}

		units := []batch.Unit{
			{Name: "fixture.cpp", Options: rc.Options},
		}
		for i := range units {
			tree := ast.NewTree(16)
			units[i].Tree = tree
			units[i].Strings = source.NewInterner()
			units[i].Populate = buildFixture(tree)
		}

		results, err := batch.LowerAll(context.Background(), units, lowerJobs)
		if err != nil {
			return fmt.Errorf("lowering failed: %w", err)
		}

		colorize := shouldColorize(cmd)
		hadWarnings, hadErrors := false, false
		for _, r := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "== %s (%d functions) ==\n", r.Name, len(r.Functions))
			for _, fn := range r.Functions {
				name := r.TU.Strings.MustLookup(fn.Name)
				fmt.Fprintf(cmd.OutOrStdout(), "  %s -> %s (%d blocks, poisoned=%v)\n", name, fn.Symbol, len(fn.Blocks), fn.Poisoned)
			}
			r.Bag.Sort()
			for _, d := range r.Bag.Items() {
				diag.Render(cmd.OutOrStdout(), d, nil, colorize)
			}
			hadWarnings = hadWarnings || r.Bag.HasWarnings()
			hadErrors = hadErrors || r.Bag.HasErrors()

			if lowerOutPath != "" {
				name := fmt.Sprintf("%s (%s)", r.Name, version.Fingerprint())
				mod := mirser.NewModule(name, r.Functions)
				if err := mirser.WriteFile(lowerOutPath, mod); err != nil {
					return fmt.Errorf("writing %s: %w", lowerOutPath, err)
				}
			}
		}

		if hadErrors || (rc.WarningsAsErrors && hadWarnings) {
			return fmt.Errorf("lowering produced diagnostics at or above the configured severity")
		}
		return nil
	},
}

func shouldColorize(cmd *cobra.Command) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}
