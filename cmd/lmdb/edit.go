package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jacksmith/lmdb/internal/cli"
	"github.com/jacksmith/lmdb/internal/model"
	"github.com/jacksmith/lmdb/internal/ops"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a film",
	Long: `Edit a film's fields.

Use flags to change specific fields, or -i to edit in $EDITOR.
Fields that are not given keep their current value. Blank text is
ignored, so a title or director cannot be cleared.

Examples:
  lmdb edit 2 --year=1980
  lmdb edit #2 --title="Aliens" --director="James Cameron"
  lmdb edit 2 -i                   # open in $EDITOR`,
	Args:              cobra.ExactArgs(1),
	RunE:              runEdit,
	ValidArgsFunction: completeFilmIDs,
}

var (
	editTitle       string
	editDirector    string
	editYear        int
	editInteractive bool
)

func init() {
	editCmd.Flags().StringVar(&editTitle, "title", "", "set film title")
	editCmd.Flags().StringVar(&editDirector, "director", "", "set film director")
	editCmd.Flags().IntVar(&editYear, "year", 0, "set release year")
	editCmd.Flags().BoolVarP(&editInteractive, "interactive", "i", false, "edit in $EDITOR")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := parseFilmID(args[0])
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if editInteractive {
		return runEditInteractive(a.store, id)
	}

	changes := ops.FilmChanges{}
	if cmd.Flags().Changed("title") {
		changes.Title = &editTitle
	}
	if cmd.Flags().Changed("director") {
		changes.Director = &editDirector
	}
	if cmd.Flags().Changed("year") {
		changes.Year = &editYear
	}

	if changes.IsEmpty() {
		return fmt.Errorf("no changes specified")
	}

	f, err := ops.EditFilm(a.store, id, changes)
	if err != nil {
		return err
	}

	fmt.Printf("%s updated.\n", model.FormatID(f.ID))
	return nil
}

// editableFilm is the document shown in the editor.
type editableFilm struct {
	Title    string `yaml:"title"`
	Director string `yaml:"director"`
	Year     int    `yaml:"year"`
}

func runEditInteractive(c ops.Catalog, id int) error {
	f, err := ops.GetFilm(c, id)
	if err != nil {
		return err
	}

	content, err := marshalEditable(f)
	if err != nil {
		return err
	}

	edited, err := cli.EditInEditor(content, ".yaml")
	if err != nil {
		return err
	}

	changes, err := changesFromEditable(f, edited)
	if err != nil {
		return err
	}
	if changes.IsEmpty() {
		fmt.Println("No changes.")
		return nil
	}

	updated, err := ops.EditFilm(c, id, changes)
	if err != nil {
		return err
	}

	fmt.Printf("%s updated.\n", model.FormatID(updated.ID))
	return nil
}

func marshalEditable(f model.Film) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# Editing film %s\n# Save and close editor to apply changes. Blank text keeps the current value.\n\n", model.FormatID(f.ID))

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(editableFilm{Title: f.Title, Director: f.Director, Year: f.Year}); err != nil {
		return nil, fmt.Errorf("failed to marshal film: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal film: %w", err)
	}
	return buf.Bytes(), nil
}

// changesFromEditable compares the edited document with f and returns only
// the fields that differ.
func changesFromEditable(f model.Film, edited []byte) (ops.FilmChanges, error) {
	var doc editableFilm
	if err := yaml.Unmarshal(edited, &doc); err != nil {
		return ops.FilmChanges{}, fmt.Errorf("invalid YAML: %w", err)
	}

	changes := ops.FilmChanges{}
	if doc.Title != f.Title {
		changes.Title = &doc.Title
	}
	if doc.Director != f.Director {
		changes.Director = &doc.Director
	}
	if doc.Year != f.Year {
		changes.Year = &doc.Year
	}
	return changes, nil
}
