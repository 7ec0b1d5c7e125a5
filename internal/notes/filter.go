package notes

import (
	"strings"

	"brain/internal/types"
)

// Bucket filters that exist regardless of the loaded data.
const (
	FilterAll   = "All"
	FilterTasks = "Tasks"
)

// Categories returns the filter tokens for a collection: the two bucket
// filters followed by each distinct category in first-seen order.
func Categories(notes []types.Note) []string {
	out := []string{FilterAll, FilterTasks}
	seen := map[string]struct{}{}
	for _, note := range notes {
		category, ok := note.CategoryValue()
		if !ok {
			continue
		}
		if _, dup := seen[category]; dup {
			continue
		}
		seen[category] = struct{}{}
		out = append(out, category)
	}
	return out
}

// MatchesSearch reports whether the note's content or file path contains
// query, ignoring case. An empty query matches everything.
func MatchesSearch(note types.Note, query string) bool {
	if query == "" {
		return true
	}
	needle := strings.ToLower(query)
	if strings.Contains(strings.ToLower(note.Content), needle) {
		return true
	}
	return strings.Contains(strings.ToLower(note.FilePathValue()), needle)
}

// MatchesFilter applies a filter token. Literal categories compare exactly
// against the raw value, so uncategorized notes only pass the bucket filters.
func MatchesFilter(note types.Note, filter string) bool {
	switch filter {
	case FilterAll:
		return true
	case FilterTasks:
		return note.Task()
	}
	category, ok := note.CategoryValue()
	return ok && category == filter
}

// Visible derives the list to display. It never reorders its input.
func Visible(notes []types.Note, query, filter string) []types.Note {
	out := make([]types.Note, 0, len(notes))
	for _, note := range notes {
		if !MatchesSearch(note, query) {
			continue
		}
		if !MatchesFilter(note, filter) {
			continue
		}
		out = append(out, note)
	}
	return out
}

type Stats struct {
	Total int
	Tasks int
}

func Summarize(notes []types.Note) Stats {
	stats := Stats{Total: len(notes)}
	for _, note := range notes {
		if note.Task() {
			stats.Tasks++
		}
	}
	return stats
}
