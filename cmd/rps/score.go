package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/lox/rockpaperscissors/internal/catalog"
	"github.com/lox/rockpaperscissors/internal/score"
)

type ScoreCmd struct {
	Show  ScoreShowCmd  `cmd:"" help:"Show the persisted score for every mode"`
	Reset ScoreResetCmd `cmd:"" help:"Delete persisted scores"`
}

type ScoreShowCmd struct{}

func (c *ScoreShowCmd) Run(g *Globals) error {
	return withStore(g, func(store score.Store) error {
		return showScores(os.Stdout, store)
	})
}

type ScoreResetCmd struct {
	Mode   string `kong:"help='Only reset this mode (all modes when empty)'"`
	Legacy bool   `kong:"help='Also delete the score written under the old unsuffixed key'"`
}

func (c *ScoreResetCmd) Run(g *Globals) error {
	return withStore(g, func(store score.Store) error {
		return resetScores(os.Stdout, store, c.Mode, c.Legacy)
	})
}

func withStore(g *Globals, fn func(score.Store) error) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}

	logger := g.consoleLogger()

	store, closer, err := score.Open(context.Background(), cfg.Score, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close score store", "error", err)
		}
	}()

	logger.Debug("Opened score store", "backend", cfg.Score.Backend)
	return fn(store)
}

func showScores(w io.Writer, store score.Store) error {
	for _, mode := range catalog.Modes() {
		value, ok := store.Get(score.Key(mode))
		if !ok {
			fmt.Fprintf(w, "%-8s -\n", mode)
			continue
		}
		fmt.Fprintf(w, "%-8s %d\n", mode, value)
	}
	return nil
}

func resetScores(w io.Writer, store score.Store, mode string, legacy bool) error {
	modes := catalog.Modes()
	if mode != "" {
		modes = []catalog.GameMode{catalog.ParseMode(mode)}
	}

	keys := make([]string, 0, len(modes)+1)
	for _, m := range modes {
		keys = append(keys, score.Key(m))
	}
	if legacy {
		keys = append(keys, score.LegacyKey)
	}

	for _, key := range keys {
		if err := store.Delete(key); err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
		fmt.Fprintf(w, "Deleted %s\n", key)
	}
	return nil
}
