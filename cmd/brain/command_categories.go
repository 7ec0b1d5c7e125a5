package main

import (
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"brain/internal/config"
	"brain/internal/notes"
)

type CategoriesCommand struct {
	stdout     io.Writer
	stderr     io.Writer
	loadConfig func() (config.CoreConfig, error)
	newClient  clientFactory
}

func NewCategoriesCommand(wiring commandWiring) *CategoriesCommand {
	return &CategoriesCommand{
		stdout:     wiring.stdout,
		stderr:     wiring.stderr,
		loadConfig: wiring.loadConfig,
		newClient:  wiring.newClient,
	}
}

func (c *CategoriesCommand) Run(args []string) error {
	fs := flag.NewFlagSet("categories", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	user := fs.String("user", "", "workspace id")
	url := fs.String("url", "", "notes service base url")
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

	all := state.Notes()
	writer := tabwriter.NewWriter(c.stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "FILTER\tLABEL\tNOTES")
	for _, category := range state.Categories() {
		count := 0
		for _, note := range all {
			if notes.MatchesFilter(note, category) {
				count++
			}
		}
		fmt.Fprintf(writer, "%s\t%s\t%d\n", category, notes.CategoryLabel(category), count)
	}
	return writer.Flush()
}
