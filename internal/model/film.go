// Package model defines the core data structures for lmdb.
package model

// Film is one entry in the catalog.
// ID is assigned by the store; callers never choose it on create.
type Film struct {
	ID       int    `json:"id" yaml:"-"`
	Title    string `json:"title" yaml:"title"`
	Director string `json:"director" yaml:"director"`
	Year     int    `json:"year" yaml:"year"`
}

// WithFields returns a copy of f carrying the mutable fields of src.
// The ID of f is kept.
func (f Film) WithFields(src Film) Film {
	f.Title = src.Title
	f.Director = src.Director
	f.Year = src.Year
	return f
}
