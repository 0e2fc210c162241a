package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/rockpaperscissors/internal/game"
)

// Options configures Run
type Options struct {
	NoColor bool
	Logger  *log.Logger
}

// Run blocks until the user quits the game
func Run(session *game.Session, changes Changes, opts Options) error {
	if opts.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	model := NewModel(session, changes, opts.Logger)
	program := tea.NewProgram(model, tea.WithAltScreen())

	model.logger.Info("Starting game", "mode", session.Mode(), "score", model.State().Score)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	model.logger.Info("Game finished", "mode", session.Mode(), "score", session.State().Score)
	return nil
}
