package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/lox/rockpaperscissors/internal/catalog"
	"github.com/lox/rockpaperscissors/internal/config"
	"github.com/lox/rockpaperscissors/internal/randutil"
	"github.com/lox/rockpaperscissors/internal/simulator"
	"github.com/lox/rockpaperscissors/internal/statistics"
)

type SimulateCmd struct {
	Rounds  int    `kong:"default='10000',help='Number of rounds to play'"`
	Workers int    `kong:"default='0',help='Parallel workers (0 for one per CPU)'"`
	Mode    string `kong:"help='Game mode: Basic or Advance (overrides config)'"`
	Seed    *int64 `kong:"help='Deterministic RNG seed (optional)'"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig(func(cfg *config.Config) {
		if c.Mode != "" {
			cfg.Game.Mode = c.Mode
		}
		if c.Seed != nil {
			cfg.Game.Seed = *c.Seed
		}
	})
	if err != nil {
		return err
	}

	logger := g.consoleLogger()

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	seed := randutil.Seed(cfg.Game.Seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting simulation: %d rounds of %s on %d workers (seed: %d)\n",
		c.Rounds, cfg.Mode(), workers, seed)

	start := time.Now()
	stats, err := simulator.RunSimulation(ctx, cfg.Mode(), c.Rounds, workers, seed, logger)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	printResults(cfg.Mode(), stats, time.Since(start))
	return nil
}

func printResults(mode catalog.GameMode, stats *statistics.Statistics, duration time.Duration) {
	low, high := stats.ConfidenceInterval95()

	fmt.Println()
	fmt.Println(headerStyle.Render(fmt.Sprintf(" %s results ", mode)))
	fmt.Printf("Rounds:    %d in %s (%.0f rounds/sec)\n",
		stats.Rounds, duration.Round(time.Millisecond), float64(stats.Rounds)/max(duration.Seconds(), 1e-9))
	fmt.Printf("Wins:      %d\n", stats.Wins)
	fmt.Printf("Losses:    %d\n", stats.Losses)
	fmt.Printf("Win rate:  %.4f ± %.4f SE\n", stats.WinRate(), stats.StdError())
	fmt.Printf("95%% CI:    [%.4f, %.4f]\n", low, high)
	fmt.Printf("Net score: %+d\n", stats.NetScore)

	fmt.Println()
	fmt.Printf("%-10s %8s %8s %10s\n", "Move", "Played", "Won", "Computer")
	cat := catalog.MustFor(mode)
	for _, id := range stats.MoveIDs() {
		m := stats.Moves[id]
		name := id
		if mv, ok := cat.Lookup(id); ok {
			name = mv.Name
		}
		fmt.Printf("%-10s %8d %8d %9.1f%%\n", name, m.UserPicks, m.UserWins, 100*stats.ComputerShare(id))
	}
}
