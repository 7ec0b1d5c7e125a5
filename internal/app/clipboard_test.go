package app

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"

	"brain/internal/types"
)

func swapClipboard(t *testing.T, writeAll, writeOSC52 func(string) error) {
	t.Helper()
	origWriteAll := clipboardWriteAll
	origWriteOSC52 := clipboardWriteOSC52
	t.Cleanup(func() {
		clipboardWriteAll = origWriteAll
		clipboardWriteOSC52 = origWriteOSC52
	})
	clipboardWriteAll = writeAll
	clipboardWriteOSC52 = writeOSC52
}

func TestCopyTextToClipboardUsesSystemBackend(t *testing.T) {
	fallbackCalled := false
	swapClipboard(t, func(string) error { return nil }, func(string) error {
		fallbackCalled = true
		return nil
	})

	method, err := copyTextToClipboard("hello")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if method != clipboardMethodSystem {
		t.Fatalf("expected system method, got %v", method)
	}
	if fallbackCalled {
		t.Fatalf("expected no OSC52 fallback call")
	}
}

func TestCopyTextToClipboardFallsBackToOSC52(t *testing.T) {
	swapClipboard(t, func(string) error { return errors.New("exit status 1") }, func(string) error { return nil })

	method, err := copyTextToClipboard("hello")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if method != clipboardMethodOSC52 {
		t.Fatalf("expected OSC52 method, got %v", method)
	}
}

func TestCopyTextToClipboardReportsBothFailures(t *testing.T) {
	swapClipboard(t,
		func(string) error { return errors.New("no xclip") },
		func(string) error { return errors.New("no tty") },
	)

	_, err := copyTextToClipboard("hello")
	if err == nil || !strings.Contains(err.Error(), "no xclip") || !strings.Contains(err.Error(), "no tty") {
		t.Fatalf("expected combined error, got %v", err)
	}
}

func TestWriteOSC52SequenceEncodesText(t *testing.T) {
	t.Setenv("TMUX", "")
	t.Setenv("TERM", "xterm-256color")
	var buf bytes.Buffer
	if err := writeOSC52Sequence(&buf, "hi"); err != nil {
		t.Fatalf("writeOSC52Sequence: %v", err)
	}
	// "hi" base64-encodes to aGk=.
	if !strings.Contains(buf.String(), "]52;c;aGk=") {
		t.Fatalf("unexpected sequence %q", buf.String())
	}
}

func TestShouldAttemptOSC52(t *testing.T) {
	t.Setenv("BRAIN_DISABLE_OSC52", "")
	t.Setenv("TERM", "dumb")
	if shouldAttemptOSC52() {
		t.Fatalf("expected dumb terminal to skip OSC52")
	}
	t.Setenv("TERM", "xterm")
	if !shouldAttemptOSC52() {
		t.Fatalf("expected xterm to allow OSC52")
	}
	t.Setenv("BRAIN_DISABLE_OSC52", "yes")
	if shouldAttemptOSC52() {
		t.Fatalf("expected env to disable OSC52")
	}
}

func TestNoteClipboardTextSkipsEmptyPayloads(t *testing.T) {
	note := types.Note{ID: 1, Content: "hello", CodeSnippet: types.StringPtr(""), FilePath: types.StringPtr("/a/b.go")}
	if got := noteClipboardText(note); got != "hello\n\n/a/b.go" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestRenderCodeSnippetKeepsFullSnippet(t *testing.T) {
	snippet := "func main() {\n\tprintln(\"```\")\n}"
	out := xansi.Strip(renderCodeSnippet(snippet, 60))
	for _, want := range []string{"func main() {", "println", "```"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in rendered snippet:\n%s", want, out)
		}
	}
	if renderCodeSnippet("\n", 60) != "" {
		t.Fatalf("expected empty snippet to render nothing")
	}
}
