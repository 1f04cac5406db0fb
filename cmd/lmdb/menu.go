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

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the interactive menu",
	Long: `Open the interactive menu. This is also what lmdb does with no command.

Options can be chosen by number, by name, or by a unique name prefix:
  1 list    2 show    3 add    4 update    5 delete    q quit`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

func runMenu(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	return NewMenu(a.store, stdin, os.Stdout).Run()
}

var menuItems = []cli.MenuItem{
	{Key: "1", Name: "list", Label: "List All Films"},
	{Key: "2", Name: "show", Label: "View Film Details"},
	{Key: "3", Name: "add", Label: "Add New Film"},
	{Key: "4", Name: "update", Label: "Update Film"},
	{Key: "5", Name: "delete", Label: "Delete Film"},
	{Key: "q", Name: "quit", Label: "Quit"},
}

// Menu is the interactive prompt loop over a catalog.
type Menu struct {
	catalog ops.Catalog
	prompt  *cli.Prompter
	out     io.Writer

	// pause and clear the screen between rounds
	interactive bool
}

// NewMenu returns a menu reading choices from in and writing to out.
func NewMenu(c ops.Catalog, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		catalog:     c,
		prompt:      cli.NewPrompter(in, out),
		out:         out,
		interactive: cli.IsInputTerminal(in) && cli.IsTerminal(out),
	}
}

// Run loops until the user quits or input ends.
func (m *Menu) Run() error {
	fmt.Fprintln(m.out, cli.Bold("LocalMovieDatabase (LMDb), where films float in the ether"))

	for {
		m.printMenu()

		line, err := m.prompt.ReadLine("Select an option: ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(m.out)
			return m.quit()
		}
		if err != nil {
			return err
		}

		item, err := cli.MatchMenuItem(line, menuItems)
		if err != nil {
			fmt.Fprintf(m.out, "Invalid choice (%v). Choose another option.\n", err)
			continue
		}
		if item.Name == "quit" {
			return m.quit()
		}

		if err := m.dispatch(item.Name); err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(m.out)
				return m.quit()
			}
			m.report(err)
		}

		if m.interactive {
			if _, err := m.prompt.ReadLine("\nPress Enter to continue..."); err != nil {
				return m.quit()
			}
			cli.ClearScreen(m.out)
		}
	}
}

func (m *Menu) printMenu() {
	fmt.Fprintln(m.out, "\n--- LMDb Film Menu ---")
	for _, item := range menuItems {
		fmt.Fprintf(m.out, "%s. %s\n", item.Key, item.Label)
	}
}

func (m *Menu) quit() error {
	fmt.Fprintln(m.out, "Closing LMDb, goodbye")
	return nil
}

func (m *Menu) dispatch(name string) error {
	switch name {
	case "list":
		return m.list()
	case "show":
		return m.show()
	case "add":
		return m.add()
	case "update":
		return m.update()
	case "delete":
		return m.delete()
	default:
		return fmt.Errorf("unhandled menu option %q", name)
	}
}

// report prints a failed action. A persistence failure is a warning: the
// change is visible for the rest of the session but was not saved.
func (m *Menu) report(err error) {
	var pe *ops.PersistError
	if errors.As(err, &pe) {
		fmt.Fprintln(m.out, cli.Yellow("warning: "+err.Error()))
		return
	}
	fmt.Fprintln(m.out, cli.Red(cli.FormatError(err)))
}

func (m *Menu) list() error {
	fmt.Fprintln(m.out, "\n--- All Films ---")
	films := m.catalog.List()
	if len(films) == 0 {
		fmt.Fprintln(m.out, "No films found.")
		return nil
	}
	fmt.Fprintln(m.out, cli.FilmTable(films))
	return nil
}

func (m *Menu) show() error {
	id, err := m.prompt.ReadID("Enter ID of the film to view: ")
	if err != nil {
		return err
	}
	f, err := ops.GetFilm(m.catalog, id)
	if err != nil {
		return err
	}

	fmt.Fprintln(m.out, "\n--- Film Details ---")
	fmt.Fprint(m.out, cli.FilmDetails(f))
	return nil
}

func (m *Menu) add() error {
	fmt.Fprintln(m.out, "\n--- Add New Film ---")

	title, err := m.prompt.ReadLine("Enter Title: ")
	if err != nil {
		return err
	}
	director, err := m.prompt.ReadLine("Enter Director: ")
	if err != nil {
		return err
	}
	year, err := m.prompt.ReadYear("Enter Year: ")
	if err != nil {
		return err
	}

	f, err := ops.AddFilm(m.catalog, ops.FilmOptions{Title: title, Director: director, Year: year})
	if err != nil {
		return err
	}

	fmt.Fprintf(m.out, "Film added with ID %s.\n", cli.Green(model.FormatID(f.ID)))
	return nil
}

func (m *Menu) update() error {
	fmt.Fprintln(m.out, "\n--- Update Film ---")

	id, err := m.prompt.ReadID("Enter ID of the film to update: ")
	if err != nil {
		return err
	}
	existing, err := ops.GetFilm(m.catalog, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Updating film %s: %s\n", model.FormatID(existing.ID), existing.Title)

	title, err := m.prompt.ReadLine(fmt.Sprintf("New title (blank keeps %q): ", existing.Title))
	if err != nil {
		return err
	}
	director, err := m.prompt.ReadLine(fmt.Sprintf("New director (blank keeps %q): ", existing.Director))
	if err != nil {
		return err
	}
	year, err := m.prompt.ReadOptionalYear(fmt.Sprintf("New year (blank keeps %d): ", existing.Year))
	if err != nil {
		return err
	}

	if _, err := ops.EditFilm(m.catalog, id, ops.FilmChanges{Title: &title, Director: &director, Year: year}); err != nil {
		return err
	}

	fmt.Fprintln(m.out, "Film updated.")
	return nil
}

func (m *Menu) delete() error {
	fmt.Fprintln(m.out, "\n--- Delete Film ---")

	id, err := m.prompt.ReadID("Enter ID of the film to delete: ")
	if err != nil {
		return err
	}
	f, err := ops.GetFilm(m.catalog, id)
	if err != nil {
		return err
	}

	ok, err := m.prompt.Confirm(fmt.Sprintf("Are you sure you want to delete %q (%s)?", f.Title, model.FormatID(f.ID)))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(m.out, "Deletion cancelled.")
		return nil
	}

	if err := ops.DeleteFilm(m.catalog, id); err != nil {
		return err
	}

	fmt.Fprintln(m.out, "Film deleted.")
	return nil
}
