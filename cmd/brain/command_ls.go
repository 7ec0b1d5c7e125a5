package main

import (
	"encoding/json"
	"flag"
	"io"

	"brain/internal/config"
	"brain/internal/notes"
)

type ListCommand struct {
	stdout     io.Writer
	stderr     io.Writer
	loadConfig func() (config.CoreConfig, error)
	newClient  clientFactory
}

func NewListCommand(wiring commandWiring) *ListCommand {
	return &ListCommand{
		stdout:     wiring.stdout,
		stderr:     wiring.stderr,
		loadConfig: wiring.loadConfig,
		newClient:  wiring.newClient,
	}
}

func (c *ListCommand) Run(args []string) error {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	user := fs.String("user", "", "workspace id")
	url := fs.String("url", "", "notes service base url")
	search := fs.String("search", "", "case-insensitive text to match against content and file path")
	filter := fs.String("filter", notes.FilterAll, "category filter: All, Tasks or a category name")
	asJSON := fs.Bool("json", false, "print notes as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	applyURLOverride(&cfg, *url)
	logger := commandLogger(c.stderr, cfg)
	client, err := c.newClient(cfg, logger)
	if err != nil {
		return err
	}
	state, err := fetchState(cfg, client, resolveIdentity(*user, cfg), logger)
	if err != nil {
		return err
	}
	state.SetSearchText(*search)
	state.SetSelectedFilter(*filter)
	visible := state.Visible()

	if *asJSON {
		encoder := json.NewEncoder(c.stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(visible)
	}
	printNotes(c.stdout, visible)
	return nil
}
