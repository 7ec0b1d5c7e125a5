package main

import (
	"context"

	notesclient "brain/internal/client"
	"brain/internal/config"
	"brain/internal/logging"
	"brain/internal/types"
)

type clientFactory func(cfg config.CoreConfig, logger logging.Logger) (commandClient, error)

// commandClient is the slice of the notes client the commands use. It is
// also a notes.Fetcher.
type commandClient interface {
	ListNotes(ctx context.Context, identity string) ([]types.Note, error)
	BaseURL() string
}

func newNotesClient(cfg config.CoreConfig, logger logging.Logger) (commandClient, error) {
	return notesclient.New(cfg, logger), nil
}
