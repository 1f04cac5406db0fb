package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacksmith/lmdb/internal/cli"
	"github.com/jacksmith/lmdb/internal/model"
	"github.com/jacksmith/lmdb/internal/ops"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check catalog integrity",
	Long: `Check the catalog file for problems that hand edits can introduce.

Checks for:
- A file that cannot be parsed
- Duplicate IDs
- Non-positive IDs
- Release years outside the accepted range

Exits with status 1 when anything is found.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.store.LoadErr(); err != nil {
		return fmt.Errorf("catalog cannot be loaded: %w", err)
	}

	films := a.store.List()
	issues := ops.Check(films)
	if len(issues) == 0 {
		fmt.Println(cli.Green(fmt.Sprintf("No issues found in %d film(s).", len(films))))
		return nil
	}

	fmt.Printf("Found %d issue(s):\n\n", len(issues))
	for _, issue := range issues {
		fmt.Printf("%s %s: %s\n", model.FormatID(issue.FilmID), cli.Red(string(issue.Type)), issue.Message)
	}

	return fmt.Errorf("%d issue(s) found in %s", len(issues), a.store.Path())
}
