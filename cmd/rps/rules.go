package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/rockpaperscissors/internal/catalog"
)

var headerStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Bold(true)

type RulesCmd struct {
	Mode string `kong:"help='Game mode: Basic or Advance (all modes when empty)'"`
}

func (c *RulesCmd) Run(g *Globals) error {
	modes := catalog.Modes()
	if c.Mode != "" {
		modes = []catalog.GameMode{catalog.ParseMode(c.Mode)}
	}
	return printRules(os.Stdout, modes)
}

func printRules(w io.Writer, modes []catalog.GameMode) error {
	for i, mode := range modes {
		cat, err := catalog.For(mode)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, headerStyle.Render(" "+strings.Join(catalog.Title(mode), " ")+" "))
		for _, r := range cat.Rules() {
			fmt.Fprintf(w, "  %s\n", r)
		}
	}
	return nil
}
