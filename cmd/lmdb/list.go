package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacksmith/lmdb/internal/cli"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all films",
	Long: `List every film in the catalog, in the order they were added.

Examples:
  lmdb list
  lmdb --data ~/films.json list`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	films := a.store.List()
	if len(films) == 0 {
		fmt.Println("No films found.")
		return nil
	}

	fmt.Println(cli.FilmTable(films))
	fmt.Println(cli.Gray(fmt.Sprintf("%d film(s)", len(films))))
	return nil
}
