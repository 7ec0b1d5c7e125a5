package main

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-runewidth"

	"brain/internal/config"
	"brain/internal/logging"
	"brain/internal/notes"
	"brain/internal/types"
)

const (
	version          = "dev"
	listContentWidth = 60
)

var errMissingUser = errors.New("workspace id is required: pass --user or set ui.identity in config")

func printNotes(output io.Writer, list []types.Note) {
	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tTASK\tCATEGORY\tCREATED\tCONTENT")
	for _, note := range list {
		task := "-"
		if note.Task() {
			task = "yes"
		}
		category, ok := note.CategoryValue()
		if !ok {
			category = "-"
		}
		created := notes.FormatCreatedAt(note.CreatedAt)
		if created == "" {
			created = "-"
		}
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\n", note.ID, task, category, created, summarizeContent(note.Content))
	}
	_ = writer.Flush()
}

func summarizeContent(content string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(content), "\n")
	return runewidth.Truncate(line, listContentWidth, "...")
}

// fetchState logs in as identity and performs the initial refresh
// synchronously.
func fetchState(cfg config.CoreConfig, fetcher notes.Fetcher, identity string, logger logging.Logger) (*notes.State, error) {
	state := notes.NewState(logger)
	req, err := state.Login(identity)
	if errors.Is(err, notes.ErrEmptyIdentity) {
		return nil, errMissingUser
	}
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
	defer cancel()
	if outcome := state.Sync(ctx, fetcher, req); outcome.Err != nil {
		return nil, outcome.Err
	}
	return state, nil
}

func resolveIdentity(flagValue string, cfg config.CoreConfig) string {
	if strings.TrimSpace(flagValue) != "" {
		return flagValue
	}
	return cfg.DefaultIdentity()
}

func applyURLOverride(cfg *config.CoreConfig, url string) {
	if strings.TrimSpace(url) != "" {
		cfg.Service.BaseURL = url
	}
}

func commandLogger(stderr io.Writer, cfg config.CoreConfig) logging.Logger {
	return logging.New(stderr, logging.ParseLevel(cfg.LogLevel()))
}

func exitOnErr(label string, err error, stderr io.Writer) {
	if err == nil {
		return
	}
	fmt.Fprintf(stderr, "%s error: %v\n", label, err)
	os.Exit(1)
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		var revision string
		var modified string
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				revision = setting.Value
			case "vcs.modified":
				modified = setting.Value
			}
		}
		if revision != "" {
			if modified == "true" {
				return revision + "-dirty"
			}
			return revision
		}
	}

	exe, err := os.Executable()
	if err == nil {
		file, err := os.Open(exe)
		if err == nil {
			defer file.Close()
			hasher := sha256.New()
			if _, err := io.Copy(hasher, file); err == nil {
				sum := hasher.Sum(nil)
				return fmt.Sprintf("bin-%x", sum[:6])
			}
		}
	}

	return version
}
