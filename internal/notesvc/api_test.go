package notesvc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"brain/internal/client"
	"brain/internal/notes"
	"brain/internal/types"
)

type fakeLister struct {
	users []string
	notes []types.Note
	err   error
}

func (f *fakeLister) List(ctx context.Context, userID string) ([]types.Note, error) {
	f.users = append(f.users, userID)
	return f.notes, f.err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestListNotesRequiresIdentity(t *testing.T) {
	lister := &fakeLister{}
	server := httptest.NewServer((&API{Notes: lister}).Router())
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/notes")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	var payload map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["error"] == "" {
		t.Fatalf("expected error message")
	}
	if len(lister.users) != 0 {
		t.Fatalf("expected no store access, got %v", lister.users)
	}
}

func TestListNotesReturnsArray(t *testing.T) {
	lister := &fakeLister{notes: []types.Note{{ID: 1, Content: "a"}, {ID: 2, Content: "b", IsTask: true}}}
	server := httptest.NewServer((&API{Notes: lister}).Router())
	defer server.Close()

	req, _ := http.NewRequest(http.MethodGet, server.URL+"/api/notes", nil)
	req.Header.Set("X-User-ID", "alice")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("expected permissive CORS header")
	}
	var raw []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(raw) != 2 || raw[1]["is_task"] != float64(1) || raw[0]["category"] != nil {
		t.Fatalf("unexpected payload: %v", raw)
	}
	if len(lister.users) != 1 || lister.users[0] != "alice" {
		t.Fatalf("unexpected users: %v", lister.users)
	}
}

func TestListNotesStoreFailure(t *testing.T) {
	lister := &fakeLister{err: unavailableError("list notes", errors.New("disk I/O error"))}
	server := httptest.NewServer((&API{Notes: lister}).Router())
	defer server.Close()

	_, err := client.NewWithBaseURL(server.URL).ListNotes(context.Background(), "alice")
	apiErr := client.AsAPIError(err)
	if apiErr == nil || apiErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 api error, got %v", err)
	}
}

func TestPreflightIsAnswered(t *testing.T) {
	server := httptest.NewServer((&API{Notes: &fakeLister{}}).Router())
	defer server.Close()

	req, _ := http.NewRequest(http.MethodOptions, server.URL+"/api/notes", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
}

func TestServiceEndToEnd(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	if _, err := store.Seed(ctx, "alice", []types.Note{
		{ID: 1, Content: "buy milk", IsTask: true},
		{ID: 2, Content: "refactor parser", Category: types.StringPtr("Work")},
	}); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	server := httptest.NewServer((&API{Notes: store}).Router())
	defer server.Close()

	state := notes.NewState(nil)
	req, err := state.Login(" alice ")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if outcome := state.Sync(ctx, client.NewWithBaseURL(server.URL), req); !outcome.Applied {
		t.Fatalf("expected refresh to apply: %+v", outcome)
	}

	state.SetSelectedFilter(notes.FilterTasks)
	if visible := state.Visible(); len(visible) != 1 || visible[0].ID != 1 {
		t.Fatalf("unexpected tasks view: %+v", visible)
	}
	state.SetSelectedFilter("Work")
	if visible := state.Visible(); len(visible) != 1 || visible[0].ID != 2 {
		t.Fatalf("unexpected work view: %+v", visible)
	}
	state.SetSelectedFilter(notes.FilterAll)
	state.SetSearchText("parser")
	if visible := state.Visible(); len(visible) != 1 || visible[0].ID != 2 {
		t.Fatalf("unexpected search view: %+v", visible)
	}
}
