package main

import (
	"fmt"

	"github.com/jacksmith/lmdb/internal/cli"
	"github.com/jacksmith/lmdb/internal/model"
)

// parseFilmID parses an ID argument such as "7" or "#7".
func parseFilmID(arg string) (int, error) {
	id, err := model.ParseID(arg)
	if err != nil {
		return 0, &cli.ValidationError{Field: "id", Message: fmt.Sprintf("%q is not a film id", arg)}
	}
	return id, nil
}
