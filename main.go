package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/adrischez00/campel-fichajes/api"
	"github.com/adrischez00/campel-fichajes/cli"
	"github.com/adrischez00/campel-fichajes/tui"
)

func main() {
	args := os.Args[1:]

	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: campel <command> [args...]\n")
		fmt.Fprintf(os.Stderr, "Commands: fichar, status, resumen, ausencias, solicitar, balance, tui\n")
		os.Exit(1)
	}

	// A missing .env is fine; the environment may carry the config directly.
	_ = godotenv.Load()

	cfg, err := api.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	client := api.NewClient(cfg)

	command := args[0]

	// Handle TUI separately to avoid importing tui in cli package
	if command == "tui" {
		if err := tui.LaunchTUI(client, cfg.Location); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Handle all other commands through CLI
	if err := cli.RunCLI(client, cfg.Location, args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
