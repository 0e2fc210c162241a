package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Config  string `kong:"default='rps.hcl',help='Path to HCL configuration file'"`
	Debug   bool   `kong:"help='Enable debug logging'"`
	LogFile string `kong:"name='log-file',help='Log file used while playing (overrides config)'"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Play interactively in the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Play many unattended rounds and report outcome statistics"`
	Rules    RulesCmd         `cmd:"" help:"Print the rules for a game mode"`
	Score    ScoreCmd         `cmd:"" help:"Inspect or reset persisted scores"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("rps"),
		kong.Description("Rock Paper Scissors (and Lizard Spock) against the computer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
