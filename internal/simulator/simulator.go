package simulator

import (
	"context"
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/rockpaperscissors/internal/catalog"
	"github.com/lox/rockpaperscissors/internal/game"
	"github.com/lox/rockpaperscissors/internal/randutil"
	"github.com/lox/rockpaperscissors/internal/score"
	"github.com/lox/rockpaperscissors/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Mode    catalog.GameMode
	Rounds  int
	Workers int
	Seed    int64
	Logger  *log.Logger
}

// Simulator plays many unattended rounds and collects outcome statistics.
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	config.Mode = catalog.ParseMode(string(config.Mode))
	return &Simulator{config: config}
}

// Run plays the configured number of rounds split across workers. Each worker
// owns its own session, store and random streams, so workers share nothing.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Rounds < 0 {
		return nil, fmt.Errorf("rounds cannot be negative: %d", s.config.Rounds)
	}

	workers := min(s.config.Workers, max(s.config.Rounds, 1))
	perWorker := s.config.Rounds / workers
	remainder := s.config.Rounds % workers

	logger := s.config.Logger.WithPrefix("simulator")
	logger.Info("Starting simulation",
		"mode", s.config.Mode,
		"rounds", s.config.Rounds,
		"workers", workers,
		"seed", s.config.Seed)

	results := make([]*statistics.Statistics, workers)
	g, ctx := errgroup.WithContext(ctx)

	for w := 0; w < workers; w++ {
		rounds := perWorker
		if w < remainder {
			rounds++
		}
		seed := randutil.Derive(s.config.Seed, w)

		g.Go(func() error {
			stats, err := s.runWorker(ctx, rounds, seed)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			results[w] = stats
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := &statistics.Statistics{}
	for _, r := range results {
		total.Merge(r)
	}

	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	logger.Info("Simulation complete", "rounds", total.Rounds, "win_rate", total.WinRate())
	return total, nil
}

func (s *Simulator) runWorker(ctx context.Context, rounds int, seed int64) (*statistics.Statistics, error) {
	session := game.NewSession(s.config.Mode, game.Options{
		Store:       score.NewMemoryStore(),
		Rand:        randutil.New(seed),
		Clock:       quartz.NewReal(),
		ThinkDelay:  game.NoDelay,
		RevealDelay: game.NoDelay,
		Logger:      s.config.Logger,
	})
	defer session.Close()

	player := randutil.New(seed ^ 0x5bd1e995)
	ids := session.Catalog().IDs()
	stats := &statistics.Statistics{}

	for round := 0; round < rounds; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err := playRound(session, ids, player)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", round+1, err)
		}
		stats.Add(result)
	}
	return stats, nil
}

// playRound plays one round with a uniformly random user move. The session
// runs without delays, so the round is complete when SubmitUserMove returns.
func playRound(session *game.Session, ids []string, player *rand.Rand) (statistics.RoundResult, error) {
	before := session.State()
	pick := ids[player.IntN(len(ids))]

	if !session.SubmitUserMove(pick) {
		return statistics.RoundResult{}, fmt.Errorf("move %q rejected in step %s", pick, before.Step)
	}

	after := session.State()
	if after.Step != game.Result || after.Win == nil {
		return statistics.RoundResult{}, fmt.Errorf("round did not resolve, stuck in %s", after.Step)
	}
	if !session.PlayAgain() {
		return statistics.RoundResult{}, fmt.Errorf("play again rejected in step %s", after.Step)
	}

	return statistics.RoundResult{
		UserMove:     after.UserMoveID,
		ComputerMove: after.ComputerMoveID,
		Win:          *after.Win,
		ScoreBefore:  before.Score,
		ScoreAfter:   after.Score,
	}, nil
}

// RunSimulation is a convenience function for running a simulation with basic parameters
func RunSimulation(ctx context.Context, mode catalog.GameMode, rounds, workers int, seed int64, logger *log.Logger) (*statistics.Statistics, error) {
	return New(Config{
		Mode:    mode,
		Rounds:  rounds,
		Workers: workers,
		Seed:    seed,
		Logger:  logger,
	}).Run(ctx)
}
