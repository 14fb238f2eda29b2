// Command reconctl drives the reconciler core directly from the terminal:
// bench (synthetic edit throughput), inspect (classifier path + instruction
// counts for a before/after tree pair), paste (clipboard-sourced
// multi-block insert), and tui (a live bubbletea driver). Mirrors
// internal/cli/root.go's single cobra root command with subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doctree/reconciler/internal/rconfig"
	"github.com/doctree/reconciler/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "reconctl",
	Short:         "Drive the attributed-buffer reconciler from the command line",
	Version:       version.Get(),
	SilenceErrors: true,
	SilenceUsage:  true,
}

var configPath string

// cfg is the loaded capability-flag config, populated in main before any
// subcommand's RunE runs. Subcommands that care about tuning (tui's
// inspector pane, for instance) read it directly rather than each
// re-deriving their own default.
var cfg *rconfig.Config

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a rconfig YAML file (defaults to ~/.reconctl/config.yaml)")
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(pasteCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	cobra.OnInitialize(loadConfig)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "reconctl: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() {
	var err error
	if configPath != "" {
		cfg, err = rconfig.LoadFrom(configPath)
	} else {
		cfg, err = rconfig.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "reconctl: loading config: %v\n", err)
		cfg = rconfig.Default()
	}
}
