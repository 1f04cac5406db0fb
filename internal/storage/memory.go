package storage

import (
	"slices"

	"github.com/jacksmith/lmdb/internal/model"
)

// MemStore is a catalog with no backing file.
// It follows the same ID and not-found rules as Store.
type MemStore struct {
	films  []model.Film
	nextID int

	// SaveErr, when set, is returned from every mutation after the change
	// has been applied, mimicking a Store whose file cannot be written.
	SaveErr error
}

// NewMemStore returns a catalog seeded with films.
func NewMemStore(films ...model.Film) *MemStore {
	seeded := make([]model.Film, len(films))
	copy(seeded, films)
	return &MemStore{
		films:  seeded,
		nextID: model.MaxID(seeded) + 1,
	}
}

// NextID returns the ID the next Add will assign.
func (m *MemStore) NextID() int {
	return m.nextID
}

// List returns a copy of every film in insertion order.
func (m *MemStore) List() []model.Film {
	return slices.Clone(m.films)
}

// Get returns the first film with the given ID.
func (m *MemStore) Get(id int) (model.Film, bool) {
	i := m.indexOf(id)
	if i < 0 {
		return model.Film{}, false
	}
	return m.films[i], true
}

// Add assigns the next ID and appends f.
func (m *MemStore) Add(f model.Film) (model.Film, error) {
	f.ID = m.nextID
	m.nextID++
	m.films = append(m.films, f)
	return f, m.SaveErr
}

// Update copies the mutable fields of f onto the stored film.
func (m *MemStore) Update(f model.Film) (bool, error) {
	i := m.indexOf(f.ID)
	if i < 0 {
		return false, nil
	}
	m.films[i] = m.films[i].WithFields(f)
	return true, m.SaveErr
}

// Delete removes the first film with the given ID.
func (m *MemStore) Delete(id int) (bool, error) {
	i := m.indexOf(id)
	if i < 0 {
		return false, nil
	}
	m.films = slices.Delete(m.films, i, i+1)
	return true, m.SaveErr
}

func (m *MemStore) indexOf(id int) int {
	return slices.IndexFunc(m.films, func(f model.Film) bool { return f.ID == id })
}
