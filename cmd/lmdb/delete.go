package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jacksmith/lmdb/internal/cli"
	"github.com/jacksmith/lmdb/internal/model"
	"github.com/jacksmith/lmdb/internal/ops"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a film",
	Long: `Delete a film from the catalog. IDs of deleted films are not reused.

Asks for confirmation unless --yes is given.

Examples:
  lmdb delete 3
  lmdb delete #3 --yes`,
	Args:              cobra.ExactArgs(1),
	RunE:              runDelete,
	ValidArgsFunction: completeFilmIDs,
}

var deleteYes bool

// stdin is where confirmations are read from.
var stdin io.Reader = os.Stdin

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip confirmation")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
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

	if !deleteYes {
		p := cli.NewPrompter(stdin, os.Stdout)
		ok, err := p.Confirm(fmt.Sprintf("Delete %q (%s)?", f.Title, model.FormatID(f.ID)))
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if !ok {
			fmt.Println("Deletion cancelled.")
			return nil
		}
	}

	if err := ops.DeleteFilm(a.store, id); err != nil {
		return err
	}

	fmt.Printf("%s deleted.\n", model.FormatID(id))
	return nil
}
