package todolist

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/idilsaglam/tada/internal/model"
)

// Pure list transforms. Each returns a new slice and leaves its input alone.

func appendTodo(items []model.Todo, t model.Todo) []model.Todo {
	out := make([]model.Todo, 0, len(items)+1)
	out = append(out, items...)
	return append(out, t)
}

func removeTodo(items []model.Todo, id string) []model.Todo {
	out := make([]model.Todo, 0, len(items))
	for _, t := range items {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

func replaceText(items []model.Todo, id, text string) ([]model.Todo, bool) {
	out := make([]model.Todo, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ID == id {
			out[i].Text = text
			return out, true
		}
	}
	return items, false
}

// Resolve maps a user reference to an id: an exact id, a 1-based position,
// or a unique id prefix, tried in that order.
func (s *Store) Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", ErrNotFound)
	}
	if s.indexOf(ref) >= 0 {
		return ref, nil
	}
	n, numErr := strconv.Atoi(ref)
	if numErr == nil && n >= 1 && n <= len(s.items) {
		return s.items[n-1].ID, nil
	}
	var match string
	for _, t := range s.items {
		if strings.HasPrefix(t.ID, ref) {
			if match != "" {
				return "", fmt.Errorf("ambiguous id prefix %q", ref)
			}
			match = t.ID
		}
	}
	if match != "" {
		return match, nil
	}
	// All-digit id prefixes are possible, so ranges are only checked last.
	if numErr == nil {
		return "", fmt.Errorf("%w: index out of range: have %d, got %d", ErrNotFound, len(s.items), n)
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
}
