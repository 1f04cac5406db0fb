package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jacksmith/lmdb/internal/cli"
	"github.com/jacksmith/lmdb/internal/model"
	"github.com/jacksmith/lmdb/internal/ops"
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a film",
	Long: `Add a film to the catalog. The new film gets the next free ID.

Words after the command are joined into the title, so quoting is optional.

Examples:
  lmdb add Alien --director="Ridley Scott" --year=1979
  lmdb add "The Thing" --year=1982`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addDirector string
	addYear     int
)

func init() {
	addCmd.Flags().StringVar(&addDirector, "director", "", "film director")
	addCmd.Flags().IntVar(&addYear, "year", 0, "release year")
	_ = addCmd.MarkFlagRequired("year")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	f, err := ops.AddFilm(a.store, ops.FilmOptions{
		Title:    strings.Join(args, " "),
		Director: addDirector,
		Year:     addYear,
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s added: %s\n", cli.Green(model.FormatID(f.ID)), f.Title)
	return nil
}
