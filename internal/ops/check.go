package ops

import (
	"fmt"

	"github.com/jacksmith/lmdb/internal/model"
	"github.com/jacksmith/lmdb/internal/validation"
)

// IssueType represents the kind of integrity problem found in a catalog file.
type IssueType string

const (
	IssueDuplicateID    IssueType = "duplicate_id"
	IssueInvalidID      IssueType = "invalid_id"
	IssueYearOutOfRange IssueType = "year_out_of_range"
)

// Issue is a single integrity problem.
type Issue struct {
	Type    IssueType
	FilmID  int
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s - %s", model.FormatID(i.FilmID), i.Type, i.Message)
}

// Check inspects films for problems the store does not prevent when the file
// was edited by hand: repeated or non-positive IDs and implausible years.
// Issues are reported in file order.
func Check(films []model.Film) []Issue {
	var issues []Issue

	seen := make(map[int]bool)
	for _, f := range films {
		if f.ID <= 0 {
			issues = append(issues, Issue{
				Type:    IssueInvalidID,
				FilmID:  f.ID,
				Message: fmt.Sprintf("%q has a non-positive id", f.Title),
			})
		} else if seen[f.ID] {
			issues = append(issues, Issue{
				Type:    IssueDuplicateID,
				FilmID:  f.ID,
				Message: fmt.Sprintf("%q reuses an id; only the first record is reachable", f.Title),
			})
		}
		seen[f.ID] = true

		if !validation.ValidFilmYear(f.Year) {
			issues = append(issues, Issue{
				Type:   IssueYearOutOfRange,
				FilmID: f.ID,
				Message: fmt.Sprintf("%q has year %d, expected %d-%d",
					f.Title, f.Year, validation.MinFilmYear, validation.MaxFilmYear()),
			})
		}
	}

	return issues
}
