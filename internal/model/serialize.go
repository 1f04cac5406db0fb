package model

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

// DecodeFilms parses the contents of a catalog file.
// Empty or whitespace-only input and a JSON null both yield an empty slice.
// Anything that is not an array of film objects is an error.
func DecodeFilms(data []byte) ([]Film, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []Film{}, nil
	}

	var films []Film
	if err := json.Unmarshal(data, &films); err != nil {
		return nil, err
	}
	if films == nil {
		films = []Film{}
	}
	return films, nil
}

// EncodeFilms renders films as an indented JSON array.
// A nil slice is written as [] rather than null.
func EncodeFilms(films []Film) ([]byte, error) {
	if films == nil {
		films = []Film{}
	}
	data, err := json.MarshalIndent(films, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// LoadFilms reads and parses a catalog file.
// The caller decides how to treat a missing file; the returned error wraps
// fs.ErrNotExist in that case.
func LoadFilms(path string) ([]Film, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	films, err := DecodeFilms(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	return films, nil
}

// SaveFilms writes the whole collection to path, replacing any previous
// content. The parent directory is created if needed and the file is swapped
// in with a rename so readers never see a half-written document.
func SaveFilms(path string, films []Film) error {
	data, err := EncodeFilms(films)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write catalog file %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace catalog file %s: %w", path, err)
	}

	return nil
}
