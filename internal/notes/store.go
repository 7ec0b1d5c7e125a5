package notes

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"brain/internal/logging"
	"brain/internal/types"
)

var (
	ErrEmptyIdentity = errors.New("identity is required")
	ErrNoSession     = errors.New("not logged in")
	errNoFetcher     = errors.New("notes fetcher is not configured")
)

// Fetcher loads the full collection scoped to identity. The result order is
// unspecified.
type Fetcher interface {
	ListNotes(ctx context.Context, identity string) ([]types.Note, error)
}

// RefreshRequest is issued by the store and carries the sequence number the
// response must echo back to be applied.
type RefreshRequest struct {
	Seq      uint64
	Identity string
}

type RefreshResult struct {
	Seq      uint64
	Identity string
	Notes    []types.Note
	Err      error
}

type RefreshOutcome struct {
	Applied bool
	Stale   bool
	Count   int
	Err     error
}

// FetchError is surfaced to the caller when the latest refresh failed. The
// store keeps the previously loaded collection.
type FetchError struct {
	Seq      uint64
	Identity string
	Err      error
}

func (e *FetchError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("fetch notes for %q: %v", e.Identity, e.Err)
}

func (e *FetchError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Retryable is always true; the core never retries on its own.
func (e *FetchError) Retryable() bool {
	return e != nil
}

// Store owns the fetched collection. It has a single writer, Apply, which
// only accepts the response to the most recently issued request.
type Store struct {
	notes   []types.Note
	loading bool
	seq     uint64
	lastErr *FetchError
	logger  logging.Logger
}

func NewStore(logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Store{logger: logger}
}

func (s *Store) Begin(identity string) RefreshRequest {
	s.seq++
	s.loading = true
	return RefreshRequest{Seq: s.seq, Identity: identity}
}

func (s *Store) Apply(result RefreshResult) RefreshOutcome {
	if result.Seq != s.seq {
		s.logger.Debug("notes_refresh_stale",
			logging.F("seq", result.Seq),
			logging.F("latest", s.seq),
			logging.F("identity", result.Identity),
		)
		return RefreshOutcome{Stale: true}
	}
	s.loading = false
	if result.Err != nil {
		fetchErr := &FetchError{Seq: result.Seq, Identity: result.Identity, Err: result.Err}
		s.lastErr = fetchErr
		s.logger.Warn("notes_fetch_failed",
			logging.F("seq", result.Seq),
			logging.F("identity", result.Identity),
			logging.Err(result.Err),
		)
		return RefreshOutcome{Err: fetchErr}
	}
	s.notes = SortNewestFirst(result.Notes)
	s.lastErr = nil
	s.logger.Debug("notes_refreshed",
		logging.F("seq", result.Seq),
		logging.F("identity", result.Identity),
		logging.F("count", len(s.notes)),
	)
	return RefreshOutcome{Applied: true, Count: len(s.notes)}
}

// Reset empties the store and invalidates any request still in flight.
func (s *Store) Reset() {
	s.seq++
	s.notes = nil
	s.loading = false
	s.lastErr = nil
}

func (s *Store) Notes() []types.Note {
	return append([]types.Note(nil), s.notes...)
}

func (s *Store) Loading() bool {
	return s.loading
}

func (s *Store) LastError() error {
	if s.lastErr == nil {
		return nil
	}
	return s.lastErr
}

func (s *Store) find(id int64) (types.Note, bool) {
	for _, note := range s.notes {
		if note.ID == id {
			return note, true
		}
	}
	return types.Note{}, false
}

// Execute performs the fetch for req. It touches no store state and is safe
// to run off the event loop.
func Execute(ctx context.Context, fetcher Fetcher, req RefreshRequest) RefreshResult {
	result := RefreshResult{Seq: req.Seq, Identity: req.Identity}
	if fetcher == nil {
		result.Err = errNoFetcher
		return result
	}
	result.Notes, result.Err = fetcher.ListNotes(ctx, req.Identity)
	return result
}

// SortNewestFirst returns a copy ordered by descending id.
func SortNewestFirst(notes []types.Note) []types.Note {
	out := make([]types.Note, len(notes))
	copy(out, notes)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID > out[j].ID
	})
	return out
}
