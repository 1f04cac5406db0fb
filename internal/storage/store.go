// Package storage provides the film catalog backed by a single JSON file.
//
// The whole collection lives in memory. Reads are served from memory and every
// mutation rewrites the entire file. Persistence failures are logged and
// returned, but the in-memory change is kept: the catalog runs ahead of the
// file until the next successful save.
package storage

import (
	"errors"
	"io/fs"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/jacksmith/lmdb/internal/logging"
	"github.com/jacksmith/lmdb/internal/model"
)

// Store is the file-backed catalog.
type Store struct {
	path   string
	logger *zap.Logger

	mu      sync.Mutex // guards the mutate-then-save sequence
	films   []model.Film
	nextID  int
	loadErr error
}

// Open loads the catalog at path.
// A missing, empty or whitespace-only file gives an empty catalog. A file that
// cannot be read or parsed is logged, exposed through LoadErr, and also gives
// an empty catalog. Open itself never fails.
func Open(path string, logger *zap.Logger) *Store {
	s := &Store{
		path:   path,
		logger: logging.Component(logger, "catalog"),
	}
	s.load()
	return s
}

func (s *Store) load() {
	films, err := model.LoadFilms(s.path)
	switch {
	case err == nil:
		s.films = films
		s.logger.Debug("loaded catalog",
			zap.String("path", s.path),
			zap.Int("films", len(films)))
	case errors.Is(err, fs.ErrNotExist):
		s.films = []model.Film{}
		s.logger.Debug("no catalog file yet", zap.String("path", s.path))
	default:
		s.films = []model.Film{}
		s.loadErr = err
		s.logger.Error("failed to load catalog",
			zap.String("op", "load"),
			zap.String("path", s.path),
			zap.Error(err),
			zap.String("impact", "starting with an empty catalog; the next change overwrites the file"))
	}
	s.nextID = model.MaxID(s.films) + 1
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// LoadErr returns the error hit while loading, if any.
func (s *Store) LoadErr() error {
	return s.loadErr
}

// NextID returns the ID the next Add will assign.
func (s *Store) NextID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextID
}

// List returns every film in insertion order.
// The slice is a copy; changing it does not affect the store.
func (s *Store) List() []model.Film {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.films)
}

// Get returns the first film with the given ID.
func (s *Store) Get(id int) (model.Film, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Film{}, false
	}
	return s.films[i], true
}

// Add assigns the next ID to f, appends it and saves.
// Any ID set by the caller is ignored. The returned film carries the assigned
// ID even when the save fails.
func (s *Store) Add(f model.Film) (model.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f.ID = s.nextID
	s.nextID++
	s.films = append(s.films, f)

	return f, s.save("add", f.ID)
}

// Update copies the title, director and year of f onto the stored film with
// the same ID. It reports false, and changes nothing, when no such film exists.
func (s *Store) Update(f model.Film) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(f.ID)
	if i < 0 {
		return false, nil
	}
	s.films[i] = s.films[i].WithFields(f)

	return true, s.save("update", f.ID)
}

// Delete removes the first film with the given ID.
// It reports false, and changes nothing, when no such film exists.
func (s *Store) Delete(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.films = slices.Delete(s.films, i, i+1)

	return true, s.save("delete", id)
}

func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.films, func(f model.Film) bool { return f.ID == id })
}

// save rewrites the whole file. Callers hold mu.
func (s *Store) save(op string, id int) error {
	if err := model.SaveFilms(s.path, s.films); err != nil {
		s.logger.Error("failed to save catalog",
			zap.String("op", op),
			zap.Int("film_id", id),
			zap.String("path", s.path),
			zap.Error(err),
			zap.String("impact", "change is kept in memory but not written to disk"))
		return err
	}
	s.logger.Debug("saved catalog",
		zap.String("op", op),
		zap.Int("film_id", id),
		zap.Int("films", len(s.films)))
	return nil
}
