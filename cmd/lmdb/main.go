// Package main is the entry point for the lmdb CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jacksmith/lmdb/internal/cli"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lmdb",
	Short: "lmdb - a local film catalog",
	Long: `lmdb keeps a small catalog of films in a JSON file.

Run without a command to open the interactive menu, or use the
subcommands below from scripts and the shell.

Configuration is read from .lmdb.yaml in the working directory and
LMDB_* environment variables; --data overrides the catalog file.`,
	Version:       Version,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runMenu,
}

// dataPath overrides the configured catalog file.
var dataPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "catalog file (default from config: data/films.json)")

	// Replaced by our own completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.SetVersionTemplate("lmdb version {{.Version}}\n")
}
