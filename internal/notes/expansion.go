package notes

import "brain/internal/types"

// Expansion tracks the single card shown in detail. The zero value is
// collapsed.
type Expansion struct {
	id       int64
	expanded bool
}

func Expanded(id int64) Expansion {
	return Expansion{id: id, expanded: true}
}

func (e Expansion) ID() (int64, bool) {
	return e.id, e.expanded
}

func (e Expansion) IsExpanded(id int64) bool {
	return e.expanded && e.id == id
}

func (e Expansion) Collapsed() bool {
	return !e.expanded
}

// Toggle returns the state after a click on note. Notes without a code
// snippet or web context are not interactive.
func (e Expansion) Toggle(note types.Note) Expansion {
	if !note.HasExtraContent() {
		return e
	}
	if e.IsExpanded(note.ID) {
		return Expansion{}
	}
	return Expanded(note.ID)
}
