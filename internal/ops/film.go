package ops

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jacksmith/lmdb/internal/cli"
	"github.com/jacksmith/lmdb/internal/model"
	"github.com/jacksmith/lmdb/internal/validation"
)

// FilmOptions contains the fields for a new film.
type FilmOptions struct {
	Title    string
	Director string
	Year     int `validate:"filmyear"`
}

// FilmChanges represents fields that can be updated on a film.
// A nil field keeps the stored value, and so does blank text.
type FilmChanges struct {
	Title    *string
	Director *string
	Year     *int
}

// IsEmpty reports whether no field would change.
func (c FilmChanges) IsEmpty() bool {
	return c.Title == nil && c.Director == nil && c.Year == nil
}

// PersistError indicates the catalog applied a change in memory but could not
// write it to disk.
type PersistError struct {
	Op  string // "add", "update" or "delete"
	ID  int
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("film %s was %s in memory but not saved: %v", model.FormatID(e.ID), pastTense(e.Op), e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

func pastTense(op string) string {
	switch op {
	case "add":
		return "added"
	case "update":
		return "updated"
	case "delete":
		return "deleted"
	default:
		return op
	}
}

// ValidateYear checks that year is a plausible release year.
func ValidateYear(year int) error {
	if !validation.ValidFilmYear(year) {
		return &cli.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("must be between %d and %d", validation.MinFilmYear, validation.MaxFilmYear()),
		}
	}
	return nil
}

// GetFilm returns the film with the given ID.
func GetFilm(c Catalog, id int) (model.Film, error) {
	f, ok := c.Get(id)
	if !ok {
		return model.Film{}, notFound(id)
	}
	return f, nil
}

// AddFilm validates opts and adds a new film to the catalog.
// When the film is added but not saved, the returned film is valid and the
// error is a *PersistError.
func AddFilm(c Catalog, opts FilmOptions) (model.Film, error) {
	if err := validation.ValidateStruct(opts); err != nil {
		return model.Film{}, fromRequestError(err)
	}

	f, err := c.Add(model.Film{
		Title:    strings.TrimSpace(opts.Title),
		Director: strings.TrimSpace(opts.Director),
		Year:     opts.Year,
	})
	if err != nil {
		return f, &PersistError{Op: "add", ID: f.ID, Err: err}
	}
	return f, nil
}

// EditFilm applies changes to the film with the given ID.
// Unchanged fields are copied from the stored film before Update, so the
// catalog always receives a complete record.
func EditFilm(c Catalog, id int, changes FilmChanges) (model.Film, error) {
	existing, ok := c.Get(id)
	if !ok {
		return model.Film{}, notFound(id)
	}

	updated := existing
	if changes.Title != nil {
		if title := strings.TrimSpace(*changes.Title); title != "" {
			updated.Title = title
		}
	}
	if changes.Director != nil {
		if director := strings.TrimSpace(*changes.Director); director != "" {
			updated.Director = director
		}
	}
	if changes.Year != nil {
		if err := ValidateYear(*changes.Year); err != nil {
			return existing, err
		}
		updated.Year = *changes.Year
	}

	ok, err := c.Update(updated)
	if !ok {
		// Removed between Get and Update.
		return model.Film{}, notFound(id)
	}
	if err != nil {
		return updated, &PersistError{Op: "update", ID: id, Err: err}
	}
	return updated, nil
}

// DeleteFilm removes the film with the given ID.
func DeleteFilm(c Catalog, id int) error {
	ok, err := c.Delete(id)
	if !ok {
		return notFound(id)
	}
	if err != nil {
		return &PersistError{Op: "delete", ID: id, Err: err}
	}
	return nil
}

func notFound(id int) error {
	return &cli.NotFoundError{Type: "film", ID: fmt.Sprint(id)}
}

// fromRequestError turns the first failed rule into a *cli.ValidationError.
func fromRequestError(err error) error {
	var reqErr *validation.RequestValidationError
	if !errors.As(err, &reqErr) || len(reqErr.Fields) == 0 {
		return err
	}
	fe := reqErr.Fields[0]
	return &cli.ValidationError{
		Field:   fe.Field,
		Message: strings.TrimPrefix(fe.Message, fe.Field+" "),
	}
}
