package main

import (
	"fmt"
	"os"
)

const usageText = `brain browses the notes collected in a Second Brain workspace.

Usage:
  brain <command> [flags]

Commands:
  ui          run terminal UI
  ls          list notes for a workspace
  categories  list the category filters for a workspace
  serve       run a local notes service backed by SQLite
  config      print effective configuration
  help        show help

Flags:
  -h, --help   show help

Examples:
  brain ui --user alice
  brain ls --user alice --search parser --filter Tasks
  brain serve --seed notes.json --seed-user alice
  brain config --format toml
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		return
	}

	wiring := defaultCommandWiring(os.Stdout, os.Stderr)
	commands := buildCommands(wiring)

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return
	}

	runner, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
	exitOnErr(args[0], runner.Run(args[1:]), wiring.stderr)
}
