package main

import (
	"context"

	"github.com/coder/quartz"

	"github.com/lox/rockpaperscissors/internal/config"
	"github.com/lox/rockpaperscissors/internal/game"
	"github.com/lox/rockpaperscissors/internal/randutil"
	"github.com/lox/rockpaperscissors/internal/score"
	"github.com/lox/rockpaperscissors/internal/tui"
)

type PlayCmd struct {
	Mode    string `kong:"help='Game mode: Basic or Advance (overrides config)'"`
	Seed    *int64 `kong:"help='Deterministic RNG seed for the computer (optional)'"`
	Think   string `kong:"help='Pause before the computer picks, e.g. 500ms or 0s (overrides config)'"`
	NoColor bool   `kong:"name='no-color',help='Disable colors'"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig(func(cfg *config.Config) {
		if c.Mode != "" {
			cfg.Game.Mode = c.Mode
		}
		if c.Think != "" {
			cfg.Game.ThinkDelay = c.Think
		}
		if c.Seed != nil {
			cfg.Game.Seed = *c.Seed
		}
	})
	if err != nil {
		return err
	}

	logFile, err := openLogFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := newLogger(logFile, cfg.Log.Level)

	think, reveal, err := delays(cfg)
	if err != nil {
		return err
	}

	seed := randutil.Seed(cfg.Game.Seed)
	logger.Info("Using seed", "seed", seed, "deterministic", cfg.Game.Seed != 0)

	store, closer, err := score.Open(context.Background(), cfg.Score, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close score store", "error", err)
		}
	}()

	changes := tui.NewChanges()
	session := game.NewSession(cfg.Mode(), game.Options{
		Store:       store,
		Rand:        randutil.New(seed),
		Clock:       quartz.NewReal(),
		ThinkDelay:  think,
		RevealDelay: reveal,
		Logger:      logger,
		OnChange:    changes.Push,
	})
	defer session.Close()

	return tui.Run(session, changes, tui.Options{
		NoColor: c.NoColor,
		Logger:  logger,
	})
}
