// Package cli provides CLI infrastructure for lmdb.
package cli

import (
	"fmt"
	"strings"
)

// MenuItem is one entry of the interactive menu.
type MenuItem struct {
	Key   string // single-key shortcut, e.g. "1" or "q"
	Name  string // command name, e.g. "list"
	Label string // text shown in the menu
}

// MatchMenuItem finds the item selected by input.
// The key or the full name wins first; otherwise input must be a prefix of
// exactly one name. Matching ignores case and surrounding space.
func MatchMenuItem(input string, items []MenuItem) (MenuItem, error) {
	choice := strings.ToLower(strings.TrimSpace(input))
	if choice == "" {
		return MenuItem{}, fmt.Errorf("no option selected")
	}

	// First check for exact match
	for _, item := range items {
		if strings.ToLower(item.Key) == choice || strings.ToLower(item.Name) == choice {
			return item, nil
		}
	}

	// Check for prefix match
	var matches []MenuItem
	for _, item := range items {
		if strings.HasPrefix(strings.ToLower(item.Name), choice) {
			matches = append(matches, item)
		}
	}

	switch len(matches) {
	case 0:
		return MenuItem{}, fmt.Errorf("unknown option %q", choice)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Name
		}
		return MenuItem{}, fmt.Errorf("ambiguous option %q matches: %s", choice, strings.Join(names, ", "))
	}
}
