package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"brain/internal/config"
	"brain/internal/logging"
	"brain/internal/notesvc"
)

type ServeCommand struct {
	stdout        io.Writer
	stderr        io.Writer
	loadConfig    func() (config.CoreConfig, error)
	serve         serveFunc
	signalContext func() (context.Context, context.CancelFunc)
}

func NewServeCommand(wiring commandWiring) *ServeCommand {
	return &ServeCommand{
		stdout:        wiring.stdout,
		stderr:        wiring.stderr,
		loadConfig:    wiring.loadConfig,
		serve:         wiring.serve,
		signalContext: wiring.signalContext,
	}
}

func (c *ServeCommand) Run(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	addr := fs.String("addr", "", "listen address (default from config)")
	dbPath := fs.String("db", "", "sqlite database path (default from config)")
	seedPath := fs.String("seed", "", "JSON file of notes to load before serving")
	seedUser := fs.String("seed-user", "", "workspace id that owns the seeded notes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *seedPath != "" && strings.TrimSpace(*seedUser) == "" {
		return errors.New("--seed-user is required with --seed")
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Address = *addr
	}
	if *dbPath != "" {
		cfg.Server.DBPath = *dbPath
	}
	path, err := cfg.ServerDBPath()
	if err != nil {
		return err
	}
	logger := commandLogger(c.stderr, cfg)

	store, err := notesvc.OpenStore(path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := c.signalContext()
	defer cancel()

	if *seedPath != "" {
		seed, err := notesvc.LoadSeedFile(*seedPath)
		if err != nil {
			return err
		}
		count, err := store.Seed(ctx, *seedUser, seed)
		if err != nil {
			return err
		}
		logger.Info("notes_seeded", logging.F("user_id", strings.TrimSpace(*seedUser)), logging.F("count", count), logging.F("db", path))
	}

	fmt.Fprintf(c.stdout, "serving notes from %s on http://%s\n", path, cfg.ServerAddress())
	return c.serve(ctx, cfg.ServerAddress(), store, logger)
}
