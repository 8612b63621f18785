package model

import (
	"fmt"
	"strings"
)

// Todo is a single list entry. ID is assigned once and never changes.
type Todo struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// EditSession names the record being edited and holds its draft text.
// At most one exists at a time.
type EditSession struct {
	TargetID string
	Buffer   string
}

// NormalizeText trims raw and reports whether anything is left.
func NormalizeText(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	return s, s != ""
}

// Validate checks the list invariants: non-empty trimmed text, unique ids.
func Validate(todos []Todo) error {
	seen := make(map[string]struct{}, len(todos))
	for i, t := range todos {
		if t.ID == "" {
			return fmt.Errorf("item %d: empty id", i)
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("item %d: duplicate id %q", i, t.ID)
		}
		seen[t.ID] = struct{}{}
		if _, ok := NormalizeText(t.Text); !ok {
			return fmt.Errorf("item %d (%s): empty text", i, t.ID)
		}
	}
	return nil
}

// Equal reports whether a and b hold the same records in the same order.
func Equal(a, b []Todo) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
