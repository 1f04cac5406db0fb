package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when an ID cannot be parsed.
var ErrInvalidID = errors.New("invalid ID format")

// ParseID parses a film ID as typed by a user.
// Accepts "7", " 7 " and "#7". IDs must be positive.
func ParseID(s string) (int, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), "#")
	id, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidID, s)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: %q must be positive", ErrInvalidID, s)
	}
	return id, nil
}

// FormatID renders an ID the way list views show it.
func FormatID(id int) string {
	return "#" + strconv.Itoa(id)
}

// MaxID returns the largest ID in films, or 0 for an empty slice.
func MaxID(films []Film) int {
	highest := 0
	for _, f := range films {
		if f.ID > highest {
			highest = f.ID
		}
	}
	return highest
}
