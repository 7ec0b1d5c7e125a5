package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"brain/internal/app"
	"brain/internal/config"
	"brain/internal/logging"
	"brain/internal/notes"
	"brain/internal/notesvc"
	"brain/internal/types"
)

type fakeCommandClient struct {
	notes      []types.Note
	err        error
	identities []string
}

func (f *fakeCommandClient) ListNotes(_ context.Context, identity string) ([]types.Note, error) {
	f.identities = append(f.identities, identity)
	return f.notes, f.err
}

func (f *fakeCommandClient) BaseURL() string {
	return "http://notes.test"
}

func fixedFactory(client commandClient) clientFactory {
	return func(config.CoreConfig, logging.Logger) (commandClient, error) {
		return client, nil
	}
}

func testWiring(stdout, stderr *bytes.Buffer, client commandClient) commandWiring {
	return commandWiring{
		stdout: stdout,
		stderr: stderr,
		loadConfig: func() (config.CoreConfig, error) {
			return config.DefaultCoreConfig(), nil
		},
		newClient: fixedFactory(client),
		signalContext: func() (context.Context, context.CancelFunc) {
			return context.WithCancel(context.Background())
		},
		version: "test",
	}
}

func cliNotes() []types.Note {
	return []types.Note{
		{ID: 1, Content: "buy milk", IsTask: true},
		{ID: 2, Content: "refactor parser\nsecond line", Category: types.StringPtr("Work_Items"), CreatedAt: "2024-03-05T09:07:00"},
		{ID: 3, Content: "read article", Category: types.StringPtr("Reading")},
	}
}

func TestListCommandPrintsFilteredNotes(t *testing.T) {
	stdout := &bytes.Buffer{}
	fake := &fakeCommandClient{notes: cliNotes()}
	cmd := NewListCommand(testWiring(stdout, &bytes.Buffer{}, fake))

	if err := cmd.Run([]string{"--user", " alice ", "--filter", "Work_Items"}); err != nil {
		t.Fatalf("expected ls to succeed, got err=%v", err)
	}
	if len(fake.identities) != 1 || fake.identities[0] != "alice" {
		t.Fatalf("unexpected identities: %v", fake.identities)
	}
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %q", stdout.String())
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[0], "CONTENT") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "Work_Items") || !strings.Contains(lines[1], "Mar 5, 09:07") || !strings.HasSuffix(lines[1], "refactor parser") {
		t.Fatalf("unexpected row: %q", lines[1])
	}
}

func TestListCommandWritesJSON(t *testing.T) {
	stdout := &bytes.Buffer{}
	cmd := NewListCommand(testWiring(stdout, &bytes.Buffer{}, &fakeCommandClient{notes: cliNotes()}))

	if err := cmd.Run([]string{"--user", "alice", "--search", "MILK", "--json"}); err != nil {
		t.Fatalf("expected ls to succeed, got err=%v", err)
	}
	var got []map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(got) != 1 || got[0]["id"] != float64(1) || got[0]["is_task"] != float64(1) {
		t.Fatalf("unexpected json: %v", got)
	}
}

func TestListCommandRequiresUser(t *testing.T) {
	fake := &fakeCommandClient{}
	cmd := NewListCommand(testWiring(&bytes.Buffer{}, &bytes.Buffer{}, fake))

	err := cmd.Run([]string{"--user", "   "})
	if !errors.Is(err, errMissingUser) {
		t.Fatalf("expected missing user error, got %v", err)
	}
	if len(fake.identities) != 0 {
		t.Fatalf("expected no fetch")
	}
}

func TestListCommandUsesConfiguredIdentity(t *testing.T) {
	fake := &fakeCommandClient{notes: cliNotes()}
	wiring := testWiring(&bytes.Buffer{}, &bytes.Buffer{}, fake)
	wiring.loadConfig = func() (config.CoreConfig, error) {
		cfg := config.DefaultCoreConfig()
		cfg.UI.Identity = "bob"
		return cfg, nil
	}

	if err := NewListCommand(wiring).Run(nil); err != nil {
		t.Fatalf("expected ls to succeed, got err=%v", err)
	}
	if len(fake.identities) != 1 || fake.identities[0] != "bob" {
		t.Fatalf("unexpected identities: %v", fake.identities)
	}
}

func TestListCommandSurfacesFetchError(t *testing.T) {
	cause := errors.New("connection refused")
	cmd := NewListCommand(testWiring(&bytes.Buffer{}, &bytes.Buffer{}, &fakeCommandClient{err: cause}))

	err := cmd.Run([]string{"--user", "alice"})
	var fetchErr *notes.FetchError
	if !errors.As(err, &fetchErr) || !errors.Is(err, cause) {
		t.Fatalf("expected fetch error wrapping cause, got %v", err)
	}
}

func TestCategoriesCommandPrintsCounts(t *testing.T) {
	stdout := &bytes.Buffer{}
	cmd := NewCategoriesCommand(testWiring(stdout, &bytes.Buffer{}, &fakeCommandClient{notes: cliNotes()}))

	if err := cmd.Run([]string{"--user", "alice"}); err != nil {
		t.Fatalf("expected categories to succeed, got err=%v", err)
	}
	out := stdout.String()
	for _, want := range []string{"All", "Tasks", "Reading", "Work_Items", "Work Items"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header and four filters, got %d lines", len(lines))
	}
	if fields := strings.Fields(lines[1]); len(fields) != 3 || fields[0] != "All" || fields[2] != "3" {
		t.Fatalf("unexpected All row: %q", lines[1])
	}
}

func TestUICommandRunsUIWithIdentity(t *testing.T) {
	fake := &fakeCommandClient{}
	wiring := testWiring(&bytes.Buffer{}, &bytes.Buffer{}, fake)
	var got app.Options
	wiring.runUI = func(opts app.Options) error {
		got = opts
		return nil
	}
	logConfigured := false
	wiring.configureUILogging = func(logging.Level) (logging.Logger, func()) {
		logConfigured = true
		return logging.Nop(), func() {}
	}

	if err := NewUICommand(wiring).Run([]string{"--user", "alice"}); err != nil {
		t.Fatalf("expected ui to succeed, got err=%v", err)
	}
	if !logConfigured {
		t.Fatalf("expected ui logging to be configured")
	}
	if got.Identity != "alice" || got.Fetcher != fake || got.Timeout != config.DefaultCoreConfig().RequestTimeout() {
		t.Fatalf("unexpected ui options: %+v", got)
	}
}

func TestServeCommandSeedsAndServes(t *testing.T) {
	dir := t.TempDir()
	seedPath := filepath.Join(dir, "seed.json")
	if err := os.WriteFile(seedPath, []byte(`[{"id": 7, "content": "from seed", "is_task": 1}]`), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	stdout := &bytes.Buffer{}
	wiring := testWiring(stdout, &bytes.Buffer{}, &fakeCommandClient{})
	var served []types.Note
	var servedAddr string
	wiring.serve = func(ctx context.Context, addr string, lister notesvc.NoteLister, _ logging.Logger) error {
		servedAddr = addr
		var err error
		served, err = lister.List(ctx, "alice")
		return err
	}

	err := NewServeCommand(wiring).Run([]string{
		"--addr", "127.0.0.1:9911",
		"--db", filepath.Join(dir, "notes.db"),
		"--seed", seedPath,
		"--seed-user", "alice",
	})
	if err != nil {
		t.Fatalf("expected serve to succeed, got err=%v", err)
	}
	if servedAddr != "127.0.0.1:9911" {
		t.Fatalf("unexpected addr %q", servedAddr)
	}
	if len(served) != 1 || served[0].ID != 7 || !served[0].Task() {
		t.Fatalf("unexpected served notes: %+v", served)
	}
	if !strings.Contains(stdout.String(), "http://127.0.0.1:9911") {
		t.Fatalf("unexpected stdout %q", stdout.String())
	}
}

func TestServeCommandRequiresSeedUser(t *testing.T) {
	wiring := testWiring(&bytes.Buffer{}, &bytes.Buffer{}, &fakeCommandClient{})
	wiring.serve = func(context.Context, string, notesvc.NoteLister, logging.Logger) error {
		t.Fatalf("serve must not run")
		return nil
	}
	if err := NewServeCommand(wiring).Run([]string{"--seed", "notes.json"}); err == nil {
		t.Fatalf("expected error without --seed-user")
	}
}

func TestConfigCommandPrintsTOML(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	stdout := &bytes.Buffer{}
	cmd := NewConfigCommand(stdout, &bytes.Buffer{}, func() (config.CoreConfig, error) {
		cfg := config.DefaultCoreConfig()
		cfg.Service.BaseURL = "notes.internal:9000/"
		return cfg, nil
	})

	if err := cmd.Run([]string{"--format", "toml"}); err != nil {
		t.Fatalf("expected config to succeed, got err=%v", err)
	}
	out := stdout.String()
	for _, want := range []string{"[service]", "base_url = 'http://notes.internal:9000'", "notes_path = '/api/notes'", "level = 'info'"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestConfigCommandRejectsUnknownFormat(t *testing.T) {
	cmd := NewConfigCommand(&bytes.Buffer{}, &bytes.Buffer{}, func() (config.CoreConfig, error) {
		return config.DefaultCoreConfig(), nil
	})
	if err := cmd.Run([]string{"--format", "yaml"}); err == nil {
		t.Fatalf("expected format error")
	}
}
