package ops

import (
	"github.com/jacksmith/lmdb/internal/model"
)

// Catalog defines the persistence interface required by film operations.
// storage.Store is the file-backed implementation; storage.MemStore backs tests.
type Catalog interface {
	List() []model.Film
	Get(id int) (model.Film, bool)
	Add(f model.Film) (model.Film, error)
	Update(f model.Film) (bool, error)
	Delete(id int) (bool, error)
}
