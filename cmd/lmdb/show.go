package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacksmith/lmdb/internal/cli"
	"github.com/jacksmith/lmdb/internal/ops"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show film details",
	Long: `Show every field of one film.

The ID may be written as 7 or #7.`,
	Args:              cobra.ExactArgs(1),
	RunE:              runShow,
	ValidArgsFunction: completeFilmIDs,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseFilmID(args[0])
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	f, err := ops.GetFilm(a.store, id)
	if err != nil {
		return err
	}

	fmt.Print(cli.FilmDetails(f))
	return nil
}
