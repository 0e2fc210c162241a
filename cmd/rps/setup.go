package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/rockpaperscissors/internal/config"
	"github.com/lox/rockpaperscissors/internal/game"
)

// loadConfig reads the config file, applies command overrides and the
// global flags, then validates the result.
func (g *Globals) loadConfig(overrides ...func(*config.Config)) (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	for _, apply := range overrides {
		apply(cfg)
	}
	if g.Debug {
		cfg.Log.Level = "debug"
	}
	if g.LogFile != "" {
		cfg.Log.File = g.LogFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger creates a logger writing to w at the named level
func newLogger(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           lvl,
	})
}

// consoleLogger logs warnings to stderr for the non-interactive commands
func (g *Globals) consoleLogger() *log.Logger {
	if g.Debug {
		return newLogger(os.Stderr, "debug")
	}
	return newLogger(os.Stderr, "warn")
}

// openLogFile opens path for appending. The interactive game owns the
// terminal, so its logs go to a file.
func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// delays converts the configured pauses to session options. A configured
// zero means no pause at all, not the session's default pause.
func delays(cfg *config.Config) (think, reveal time.Duration, err error) {
	think, err = cfg.ThinkDelay()
	if err != nil {
		return 0, 0, err
	}
	reveal, err = cfg.RevealDelay()
	if err != nil {
		return 0, 0, err
	}
	if think == 0 {
		think = game.NoDelay
	}
	if reveal == 0 {
		reveal = game.NoDelay
	}
	return think, reveal, nil
}
