// Package notes holds the client-side state for browsing a notes
// collection: the session gate, the fetched store, the derived visible list
// and the expanded card.
//
// State is not safe for concurrent use. All mutators are meant to be called
// from one event loop; only Execute runs elsewhere.
package notes

import (
	"context"
	"strings"

	"brain/internal/logging"
	"brain/internal/types"
)

type State struct {
	identity string
	loggedIn bool
	store    *Store
	query    string
	filter   string
	expanded Expansion
	logger   logging.Logger
}

// Snapshot is a read-only view for the presentation layer.
type Snapshot struct {
	Identity   string
	LoggedIn   bool
	Loading    bool
	Notes      []types.Note
	Visible    []types.Note
	Categories []string
	Stats      Stats
	Query      string
	Filter     string
	Expanded   Expansion
	LastError  error
}

func NewState(logger logging.Logger) *State {
	if logger == nil {
		logger = logging.Nop()
	}
	return &State{
		store:  NewStore(logger),
		filter: FilterAll,
		logger: logger,
	}
}

// Login sets the identity and issues a refresh the caller must execute.
// Whitespace-only input is rejected with ErrEmptyIdentity and changes
// nothing.
func (s *State) Login(identity string) (RefreshRequest, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return RefreshRequest{}, ErrEmptyIdentity
	}
	s.identity = identity
	s.loggedIn = true
	s.logger.Info("session_login", logging.F("identity", identity))
	return s.store.Begin(identity), nil
}

func (s *State) Logout() {
	if s.loggedIn {
		s.logger.Info("session_logout", logging.F("identity", s.identity))
	}
	s.identity = ""
	s.loggedIn = false
	s.store.Reset()
}

// Retry issues a new refresh for the current identity.
func (s *State) Retry() (RefreshRequest, error) {
	if !s.loggedIn {
		return RefreshRequest{}, ErrNoSession
	}
	return s.store.Begin(s.identity), nil
}

func (s *State) Apply(result RefreshResult) RefreshOutcome {
	return s.store.Apply(result)
}

// Sync runs req to completion on the calling goroutine.
func (s *State) Sync(ctx context.Context, fetcher Fetcher, req RefreshRequest) RefreshOutcome {
	return s.Apply(Execute(ctx, fetcher, req))
}

func (s *State) SetSearchText(text string) {
	s.query = text
}

func (s *State) SetSelectedFilter(token string) {
	s.filter = token
}

// ToggleExpand applies a card click and reports whether the expanded card
// changed. Unknown ids are ignored.
func (s *State) ToggleExpand(noteID int64) bool {
	note, ok := s.store.find(noteID)
	if !ok {
		return false
	}
	next := s.expanded.Toggle(note)
	changed := next != s.expanded
	s.expanded = next
	return changed
}

func (s *State) Identity() (string, bool) {
	return s.identity, s.loggedIn
}

func (s *State) Loading() bool {
	return s.store.Loading()
}

func (s *State) Query() string {
	return s.query
}

func (s *State) Filter() string {
	return s.filter
}

func (s *State) Expanded() Expansion {
	return s.expanded
}

func (s *State) Notes() []types.Note {
	return s.store.Notes()
}

func (s *State) Visible() []types.Note {
	return Visible(s.store.notes, s.query, s.filter)
}

func (s *State) Categories() []string {
	return Categories(s.store.notes)
}

func (s *State) LastError() error {
	return s.store.LastError()
}

func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Identity:   s.identity,
		LoggedIn:   s.loggedIn,
		Loading:    s.store.Loading(),
		Notes:      s.store.Notes(),
		Visible:    s.Visible(),
		Categories: s.Categories(),
		Stats:      Summarize(s.store.notes),
		Query:      s.query,
		Filter:     s.filter,
		Expanded:   s.expanded,
		LastError:  s.store.LastError(),
	}
}
