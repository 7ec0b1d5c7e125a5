package main

import (
	"flag"
	"io"
	"log"
	"os"

	"brain/internal/app"
	"brain/internal/config"
	"brain/internal/logging"
)

type UICommand struct {
	stderr             io.Writer
	loadConfig         func() (config.CoreConfig, error)
	newClient          clientFactory
	runUI              func(app.Options) error
	configureUILogging func(level logging.Level) (logging.Logger, func())
	version            string
}

func NewUICommand(wiring commandWiring) *UICommand {
	return &UICommand{
		stderr:             wiring.stderr,
		loadConfig:         wiring.loadConfig,
		newClient:          wiring.newClient,
		runUI:              wiring.runUI,
		configureUILogging: wiring.configureUILogging,
		version:            wiring.version,
	}
}

func (c *UICommand) Run(args []string) error {
	fs := flag.NewFlagSet("ui", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	user := fs.String("user", "", "workspace id to log in with (skips the login screen)")
	url := fs.String("url", "", "notes service base url")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	applyURLOverride(&cfg, *url)

	logger := logging.Nop()
	if c.configureUILogging != nil {
		var closeLog func()
		logger, closeLog = c.configureUILogging(logging.ParseLevel(cfg.LogLevel()))
		defer closeLog()
	}

	client, err := c.newClient(cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("ui_started", logging.F("version", c.version), logging.F("base_url", client.BaseURL()))
	return c.runUI(app.Options{
		Fetcher:  client,
		Logger:   logger,
		Timeout:  cfg.RequestTimeout(),
		Identity: resolveIdentity(*user, cfg),
	})
}

// configureUILogging sends both the std log package and the structured
// logger to ui.log so nothing is written over the terminal UI.
func configureUILogging(level logging.Level) (logging.Logger, func()) {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logPath, err := config.UILogPath()
	if err != nil {
		return logging.Nop(), func() {}
	}
	logger, closer, err := logging.OpenFile(logPath, level)
	if err != nil {
		log.SetOutput(io.Discard)
		return logging.Nop(), func() {}
	}
	if file, ok := closer.(*os.File); ok {
		log.SetOutput(file)
	}
	return logger, func() { _ = closer.Close() }
}
