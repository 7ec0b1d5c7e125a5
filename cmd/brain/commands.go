package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"brain/internal/app"
	"brain/internal/config"
	"brain/internal/logging"
	"brain/internal/notesvc"
)

type commandRunner interface {
	Run(args []string) error
}

type serveFunc func(ctx context.Context, addr string, notes notesvc.NoteLister, logger logging.Logger) error

type commandWiring struct {
	stdout             io.Writer
	stderr             io.Writer
	loadConfig         func() (config.CoreConfig, error)
	newClient          clientFactory
	runUI              func(app.Options) error
	configureUILogging func(level logging.Level) (logging.Logger, func())
	serve              serveFunc
	signalContext      func() (context.Context, context.CancelFunc)
	version            string
}

func defaultCommandWiring(stdout, stderr io.Writer) commandWiring {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return commandWiring{
		stdout:             stdout,
		stderr:             stderr,
		loadConfig:         config.LoadCoreConfig,
		newClient:          newNotesClient,
		runUI:              app.Run,
		configureUILogging: configureUILogging,
		serve:              serveNotes,
		signalContext: func() (context.Context, context.CancelFunc) {
			return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		},
		version: buildVersion(),
	}
}

func buildCommands(wiring commandWiring) map[string]commandRunner {
	return map[string]commandRunner{
		"ui":         NewUICommand(wiring),
		"ls":         NewListCommand(wiring),
		"categories": NewCategoriesCommand(wiring),
		"serve":      NewServeCommand(wiring),
		"config":     NewConfigCommand(wiring.stdout, wiring.stderr, wiring.loadConfig),
	}
}

func serveNotes(ctx context.Context, addr string, notes notesvc.NoteLister, logger logging.Logger) error {
	return notesvc.NewServer(addr, notes, logger).Run(ctx)
}
