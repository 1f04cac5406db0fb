package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacksmith/lmdb/internal/cli"
	"github.com/jacksmith/lmdb/internal/model"
	"github.com/jacksmith/lmdb/internal/ops"
	"github.com/jacksmith/lmdb/internal/storage"
)

// setupCatalog changes into a fresh directory holding films at the default
// catalog path and returns that path.
func setupCatalog(t *testing.T, films ...model.Film) string {
	t.Helper()

	dir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
	t.Setenv("LMDB_COLOR", "never")
	dataPath = ""

	path := filepath.Join(dir, storage.DefaultDataPath)
	if len(films) > 0 {
		require.NoError(t, model.SaveFilms(path, films))
	}
	return path
}

func sampleFilms() []model.Film {
	return []model.Film{
		{ID: 1, Title: "Alien", Director: "Ridley Scott", Year: 1979},
		{ID: 2, Title: "Heat", Director: "Michael Mann", Year: 1995},
		{ID: 4, Title: "Arrival", Director: "Denis Villeneuve", Year: 2016},
	}
}

// captureOutput runs fn with stdout redirected and returns what it printed.
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runErr := fn()

	w.Close()
	var buf bytes.Buffer
	buf.ReadFrom(r)
	os.Stdout = old

	return buf.String(), runErr
}

// resetFlags restores every flag of cmd to its default and clears Changed.
func resetFlags(t *testing.T, cmd *cobra.Command) {
	t.Helper()
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
	})
}

func loadCatalog(t *testing.T, path string) []model.Film {
	t.Helper()
	films, err := model.LoadFilms(path)
	require.NoError(t, err)
	return films
}

func TestListCommand(t *testing.T) {
	t.Run("empty catalog", func(t *testing.T) {
		setupCatalog(t)

		output, err := captureOutput(t, func() error { return runList(listCmd, nil) })
		require.NoError(t, err)
		assert.Equal(t, "No films found.\n", output)
	})

	t.Run("films in catalog order", func(t *testing.T) {
		setupCatalog(t, sampleFilms()...)

		output, err := captureOutput(t, func() error { return runList(listCmd, nil) })
		require.NoError(t, err)

		for _, s := range []string{"#1", "Alien", "Ridley Scott", "#2", "Heat", "#4", "Arrival", "3 film(s)"} {
			assert.Contains(t, output, s, "expected output to contain %q", s)
		}
		assert.Less(t, strings.Index(output, "Alien"), strings.Index(output, "Heat"))
		assert.Less(t, strings.Index(output, "Heat"), strings.Index(output, "Arrival"))
		assert.NotContains(t, output, "\033[", "colour disabled by LMDB_COLOR")
	})

	t.Run("data flag selects another file", func(t *testing.T) {
		setupCatalog(t, sampleFilms()...)
		require.NoError(t, model.SaveFilms("other.json", []model.Film{{ID: 9, Title: "Solaris", Year: 1972}}))
		dataPath = "other.json"
		defer func() { dataPath = "" }()

		output, err := captureOutput(t, func() error { return runList(listCmd, nil) })
		require.NoError(t, err)
		assert.Contains(t, output, "Solaris")
		assert.NotContains(t, output, "Alien")
	})

	t.Run("config file selects the data path", func(t *testing.T) {
		setupCatalog(t)
		require.NoError(t, os.WriteFile(".lmdb.yaml", []byte("data_path: films/catalog.json\n"), 0644))
		require.NoError(t, model.SaveFilms(filepath.Join("films", "catalog.json"), []model.Film{{ID: 1, Title: "Stalker", Year: 1979}}))

		output, err := captureOutput(t, func() error { return runList(listCmd, nil) })
		require.NoError(t, err)
		assert.Contains(t, output, "Stalker")
	})

	t.Run("invalid config is an error", func(t *testing.T) {
		setupCatalog(t)
		require.NoError(t, os.WriteFile(".lmdb.yaml", []byte("log_format: xml\n"), 0644))

		_, err := captureOutput(t, func() error { return runList(listCmd, nil) })
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})
}

func TestShowCommand(t *testing.T) {
	setupCatalog(t, sampleFilms()...)

	for _, arg := range []string{"2", "#2"} {
		output, err := captureOutput(t, func() error { return runShow(showCmd, []string{arg}) })
		require.NoError(t, err)
		assert.Contains(t, output, "Heat")
		assert.Contains(t, output, "Director: Michael Mann")
		assert.Contains(t, output, "Year:     1995")
	}

	_, err := captureOutput(t, func() error { return runShow(showCmd, []string{"3"}) })
	var nf *cli.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "error: film 3 not found", cli.FormatError(err))

	_, err = captureOutput(t, func() error { return runShow(showCmd, []string{"three"}) })
	var ve *cli.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "id", ve.Field)
}

func TestAddCommand(t *testing.T) {
	t.Run("adds with next id", func(t *testing.T) {
		path := setupCatalog(t, sampleFilms()...)
		resetFlags(t, addCmd)
		require.NoError(t, addCmd.Flags().Set("director", "John Carpenter"))
		require.NoError(t, addCmd.Flags().Set("year", "1982"))

		output, err := captureOutput(t, func() error { return runAdd(addCmd, []string{"The", "Thing"}) })
		require.NoError(t, err)
		assert.Equal(t, "#5 added: The Thing\n", output)

		films := loadCatalog(t, path)
		require.Len(t, films, 4)
		assert.Equal(t, model.Film{ID: 5, Title: "The Thing", Director: "John Carpenter", Year: 1982}, films[3])
	})

	t.Run("first film creates the data directory", func(t *testing.T) {
		path := setupCatalog(t)
		resetFlags(t, addCmd)
		require.NoError(t, addCmd.Flags().Set("year", "1979"))

		_, err := captureOutput(t, func() error { return runAdd(addCmd, []string{"Alien"}) })
		require.NoError(t, err)

		films := loadCatalog(t, path)
		require.Len(t, films, 1)
		assert.Equal(t, 1, films[0].ID)
	})

	t.Run("invalid year is rejected", func(t *testing.T) {
		path := setupCatalog(t)
		resetFlags(t, addCmd)
		require.NoError(t, addCmd.Flags().Set("year", "1850"))

		_, err := captureOutput(t, func() error { return runAdd(addCmd, []string{"Too early"}) })
		var ve *cli.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "year", ve.Field)

		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr), "nothing should be written")
	})

	t.Run("save failure is reported", func(t *testing.T) {
		setupCatalog(t)
		require.NoError(t, os.WriteFile("blocker", []byte("file"), 0644))
		dataPath = filepath.Join("blocker", "films.json")
		defer func() { dataPath = "" }()
		resetFlags(t, addCmd)
		require.NoError(t, addCmd.Flags().Set("year", "1979"))

		_, err := captureOutput(t, func() error { return runAdd(addCmd, []string{"Alien"}) })
		var pe *ops.PersistError
		require.True(t, errors.As(err, &pe))
		assert.Contains(t, err.Error(), "film #1 was added in memory but not saved")
	})
}

func TestEditCommand(t *testing.T) {
	t.Run("changes only given fields", func(t *testing.T) {
		path := setupCatalog(t, sampleFilms()...)
		resetFlags(t, editCmd)
		require.NoError(t, editCmd.Flags().Set("year", "1996"))

		output, err := captureOutput(t, func() error { return runEdit(editCmd, []string{"#2"}) })
		require.NoError(t, err)
		assert.Equal(t, "#2 updated.\n", output)

		films := loadCatalog(t, path)
		assert.Equal(t, model.Film{ID: 2, Title: "Heat", Director: "Michael Mann", Year: 1996}, films[1])
		assert.Equal(t, sampleFilms()[0], films[0])
		assert.Equal(t, sampleFilms()[2], films[2])
	})

	t.Run("blank title keeps the current one", func(t *testing.T) {
		path := setupCatalog(t, sampleFilms()...)
		resetFlags(t, editCmd)
		require.NoError(t, editCmd.Flags().Set("title", ""))
		require.NoError(t, editCmd.Flags().Set("director", "R. Scott"))

		_, err := captureOutput(t, func() error { return runEdit(editCmd, []string{"1"}) })
		require.NoError(t, err)

		films := loadCatalog(t, path)
		assert.Equal(t, "Alien", films[0].Title)
		assert.Equal(t, "R. Scott", films[0].Director)
	})

	t.Run("no changes", func(t *testing.T) {
		setupCatalog(t, sampleFilms()...)
		resetFlags(t, editCmd)

		_, err := captureOutput(t, func() error { return runEdit(editCmd, []string{"1"}) })
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no changes specified")
	})

	t.Run("unknown film", func(t *testing.T) {
		setupCatalog(t, sampleFilms()...)
		resetFlags(t, editCmd)
		require.NoError(t, editCmd.Flags().Set("year", "2000"))

		_, err := captureOutput(t, func() error { return runEdit(editCmd, []string{"3"}) })
		var nf *cli.NotFoundError
		require.True(t, errors.As(err, &nf))
	})

	t.Run("interactive edit applies the saved document", func(t *testing.T) {
		path := setupCatalog(t, sampleFilms()...)
		resetFlags(t, editCmd)
		editInteractive = true
		defer func() { editInteractive = false }()

		script := filepath.Join(t.TempDir(), "editor.sh")
		require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nsed -i 's/^year: 1979$/year: 1980/' \"$1\"\n"), 0755))
		t.Setenv("VISUAL", "")
		t.Setenv("EDITOR", script)

		output, err := captureOutput(t, func() error { return runEdit(editCmd, []string{"1"}) })
		require.NoError(t, err)
		assert.Equal(t, "#1 updated.\n", output)

		films := loadCatalog(t, path)
		assert.Equal(t, model.Film{ID: 1, Title: "Alien", Director: "Ridley Scott", Year: 1980}, films[0])
	})

	t.Run("interactive edit without changes", func(t *testing.T) {
		setupCatalog(t, sampleFilms()...)
		resetFlags(t, editCmd)
		editInteractive = true
		defer func() { editInteractive = false }()
		t.Setenv("VISUAL", "")
		t.Setenv("EDITOR", "true")

		output, err := captureOutput(t, func() error { return runEdit(editCmd, []string{"1"}) })
		require.NoError(t, err)
		assert.Equal(t, "No changes.\n", output)
	})
}

func TestEditableRoundTrip(t *testing.T) {
	f := model.Film{ID: 7, Title: "Alien", Director: "Ridley Scott", Year: 1979}

	content, err := marshalEditable(f)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# Editing film #7")
	assert.Contains(t, string(content), "title: Alien\n")
	assert.Contains(t, string(content), "year: 1979\n")

	changes, err := changesFromEditable(f, content)
	require.NoError(t, err)
	assert.True(t, changes.IsEmpty())

	edited := strings.Replace(string(content), "title: Alien", "title: Aliens", 1)
	changes, err = changesFromEditable(f, []byte(edited))
	require.NoError(t, err)
	require.NotNil(t, changes.Title)
	assert.Equal(t, "Aliens", *changes.Title)
	assert.Nil(t, changes.Director)
	assert.Nil(t, changes.Year)

	_, err = changesFromEditable(f, []byte("title: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid YAML")
}

func TestDeleteCommand(t *testing.T) {
	t.Run("yes skips confirmation", func(t *testing.T) {
		path := setupCatalog(t, sampleFilms()...)
		resetFlags(t, deleteCmd)
		deleteYes = true

		output, err := captureOutput(t, func() error { return runDelete(deleteCmd, []string{"2"}) })
		require.NoError(t, err)
		assert.Equal(t, "#2 deleted.\n", output)

		films := loadCatalog(t, path)
		require.Len(t, films, 2)
		assert.Equal(t, 1, films[0].ID)
		assert.Equal(t, 4, films[1].ID)
	})

	t.Run("confirmation declined", func(t *testing.T) {
		path := setupCatalog(t, sampleFilms()...)
		resetFlags(t, deleteCmd)
		stdin = strings.NewReader("n\n")
		defer func() { stdin = os.Stdin }()

		output, err := captureOutput(t, func() error { return runDelete(deleteCmd, []string{"2"}) })
		require.NoError(t, err)
		assert.Contains(t, output, `Delete "Heat" (#2)? (y/n)`)
		assert.Contains(t, output, "Deletion cancelled.")
		assert.Len(t, loadCatalog(t, path), 3)
	})

	t.Run("confirmation accepted", func(t *testing.T) {
		path := setupCatalog(t, sampleFilms()...)
		resetFlags(t, deleteCmd)
		stdin = strings.NewReader("y\n")
		defer func() { stdin = os.Stdin }()

		output, err := captureOutput(t, func() error { return runDelete(deleteCmd, []string{"1"}) })
		require.NoError(t, err)
		assert.Contains(t, output, "#1 deleted.")
		assert.Len(t, loadCatalog(t, path), 2)
	})

	t.Run("unknown film", func(t *testing.T) {
		setupCatalog(t, sampleFilms()...)
		resetFlags(t, deleteCmd)
		deleteYes = true

		_, err := captureOutput(t, func() error { return runDelete(deleteCmd, []string{"3"}) })
		var nf *cli.NotFoundError
		require.True(t, errors.As(err, &nf))
		assert.Equal(t, "film 3 not found", err.Error())
	})
}

func TestCheckCommand(t *testing.T) {
	t.Run("clean catalog", func(t *testing.T) {
		setupCatalog(t, sampleFilms()...)

		output, err := captureOutput(t, func() error { return runCheck(checkCmd, nil) })
		require.NoError(t, err)
		assert.Contains(t, output, "No issues found in 3 film(s).")
	})

	t.Run("hand-edited problems", func(t *testing.T) {
		setupCatalog(t,
			model.Film{ID: 1, Title: "Alien", Year: 1979},
			model.Film{ID: 1, Title: "Alien copy", Year: 1979},
			model.Film{ID: 2, Title: "Old", Year: 1066},
		)

		output, err := captureOutput(t, func() error { return runCheck(checkCmd, nil) })
		require.Error(t, err)
		assert.Contains(t, err.Error(), "2 issue(s) found")
		assert.Contains(t, output, "#1 duplicate_id")
		assert.Contains(t, output, "#2 year_out_of_range")
	})

	t.Run("malformed file", func(t *testing.T) {
		path := setupCatalog(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

		_, err := captureOutput(t, func() error { return runCheck(checkCmd, nil) })
		require.Error(t, err)
		assert.Contains(t, err.Error(), "catalog cannot be loaded")
	})
}

func TestMenu(t *testing.T) {
	cli.SetColorEnabled(false)
	defer cli.SetColorEnabled(true)

	runScript := func(c ops.Catalog, script string) string {
		var out bytes.Buffer
		require.NoError(t, NewMenu(c, strings.NewReader(script), &out).Run())
		return out.String()
	}

	t.Run("alien session", func(t *testing.T) {
		c := storage.NewMemStore()
		script := strings.Join([]string{
			"3", "Alien", "Ridley Scott", "1979",
			"add", "Aliens", "James Cameron", "1986",
			"5", "1", "y",
			"4", "2", "", "", "1980",
			"1",
			"q",
		}, "\n") + "\n"

		output := runScript(c, script)

		assert.Contains(t, output, "Film added with ID #1.")
		assert.Contains(t, output, "Film added with ID #2.")
		assert.Contains(t, output, "Film deleted.")
		assert.Contains(t, output, "Film updated.")
		assert.Contains(t, output, "Closing LMDb, goodbye")

		films := c.List()
		require.Len(t, films, 1)
		assert.Equal(t, model.Film{ID: 2, Title: "Aliens", Director: "James Cameron", Year: 1980}, films[0])
	})

	t.Run("menu lists every option", func(t *testing.T) {
		output := runScript(storage.NewMemStore(), "q\n")
		for _, item := range menuItems {
			assert.Contains(t, output, item.Key+". "+item.Label)
		}
	})

	t.Run("view details", func(t *testing.T) {
		output := runScript(storage.NewMemStore(sampleFilms()...), "2\n#4\n")
		assert.Contains(t, output, "--- Film Details ---")
		assert.Contains(t, output, "Denis Villeneuve")
	})

	t.Run("empty list", func(t *testing.T) {
		output := runScript(storage.NewMemStore(), "list\nq\n")
		assert.Contains(t, output, "No films found.")
	})

	t.Run("invalid choice continues", func(t *testing.T) {
		output := runScript(storage.NewMemStore(), "9\nq\n")
		assert.Contains(t, output, "Invalid choice")
		assert.Equal(t, 2, strings.Count(output, "--- LMDb Film Menu ---"))
	})

	t.Run("year prompt loops until valid", func(t *testing.T) {
		c := storage.NewMemStore()
		output := runScript(c, "3\nHeat\nMichael Mann\nsoon\n1200\n1995\nq\n")

		assert.Equal(t, 2, strings.Count(output, "Invalid year."))
		f, ok := c.Get(1)
		require.True(t, ok)
		assert.Equal(t, 1995, f.Year)
	})

	t.Run("missing and malformed ids", func(t *testing.T) {
		output := runScript(storage.NewMemStore(sampleFilms()...), "2\n3\n4\nabc\n5\n9\nq\n")
		assert.Contains(t, output, "error: film 3 not found")
		assert.Contains(t, output, `error: invalid id: "abc" is not a film id`)
		assert.Contains(t, output, "error: film 9 not found")
	})

	t.Run("blank year keeps a stored year outside the range", func(t *testing.T) {
		c := storage.NewMemStore(model.Film{ID: 1, Title: "Old", Director: "Unknown", Year: 1800})
		output := runScript(c, "4\n1\nNew Title\n\n\nq\n")

		assert.Contains(t, output, "Film updated.")
		assert.NotContains(t, output, "error:")
		f, ok := c.Get(1)
		require.True(t, ok)
		assert.Equal(t, model.Film{ID: 1, Title: "New Title", Director: "Unknown", Year: 1800}, f)
	})

	t.Run("declined delete", func(t *testing.T) {
		c := storage.NewMemStore(sampleFilms()...)
		output := runScript(c, "delete\n1\nn\nq\n")
		assert.Contains(t, output, "Deletion cancelled.")
		assert.Len(t, c.List(), 3)
	})

	t.Run("unsaved change is a warning", func(t *testing.T) {
		c := storage.NewMemStore()
		c.SaveErr = errors.New("disk full")

		output := runScript(c, "3\nAlien\nRidley Scott\n1979\nq\n")
		assert.Contains(t, output, "warning: film #1 was added in memory but not saved: disk full")
		assert.Len(t, c.List(), 1)
	})

	t.Run("end of input quits", func(t *testing.T) {
		output := runScript(storage.NewMemStore(), "3\nAlien\n")
		assert.Contains(t, output, "Closing LMDb, goodbye")
	})
}

func TestMenuCommandPersists(t *testing.T) {
	path := setupCatalog(t)
	stdin = strings.NewReader("3\nAlien\nRidley Scott\n1979\nq\n")
	defer func() { stdin = os.Stdin }()

	output, err := captureOutput(t, func() error { return runMenu(menuCmd, nil) })
	require.NoError(t, err)
	assert.Contains(t, output, "Film added with ID #1.")

	films := loadCatalog(t, path)
	assert.Equal(t, []model.Film{{ID: 1, Title: "Alien", Director: "Ridley Scott", Year: 1979}}, films)
}

func TestFilmIDCompletions(t *testing.T) {
	films := []model.Film{
		{ID: 1, Title: "Alien"},
		{ID: 12, Title: "Heat"},
		{ID: 2, Title: "Arrival"},
	}

	assert.Equal(t, []string{"1\tAlien", "12\tHeat", "2\tArrival"}, filmIDCompletions(films, ""))
	assert.Equal(t, []string{"1\tAlien", "12\tHeat"}, filmIDCompletions(films, "1"))
	assert.Equal(t, []string{"12\tHeat"}, filmIDCompletions(films, "#12"))
	assert.Empty(t, filmIDCompletions(films, "9"))
}
