package logging

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoggerWritesLogfmt(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Info).(*logfmtLogger)
	logger.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	logger.With(F("identity", "alice")).Warn("notes_fetch_failed", F("seq", uint64(3)), Err(errors.New("dial tcp: refused")))

	got := strings.TrimSpace(buf.String())
	want := `ts=2024-01-02T03:04:05Z level=warn msg=notes_fetch_failed identity=alice seq=3 error="dial tcp: refused"`
	if got != want {
		t.Fatalf("unexpected line:\n got=%s\nwant=%s", got, want)
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Warn)
	logger.Info("skipped")
	logger.Debug("skipped")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %q", buf.String())
	}
	if logger.Enabled(Info) {
		t.Fatalf("expected info to be disabled")
	}
	if !logger.Enabled(Error) {
		t.Fatalf("expected error to be enabled")
	}
}

func TestNopLoggerDiscardsEverything(t *testing.T) {
	logger := Nop()
	if logger.Enabled(Error) {
		t.Fatalf("expected nop logger to be disabled")
	}
	logger.Error("ignored")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   Debug,
		" WARN ":  Warn,
		"warning": Warn,
		"error":   Error,
		"":        Info,
		"verbose": Info,
	}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestOpenFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ui.log")
	logger, closer, err := OpenFile(path, Debug)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer closer.Close()
	logger.Debug("hello")
}

func TestNewRequestIDIsUnique(t *testing.T) {
	a, b := NewRequestID(), NewRequestID()
	if a == "" || a == b {
		t.Fatalf("expected distinct request ids, got %q and %q", a, b)
	}
}
