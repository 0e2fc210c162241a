package game

import (
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/rockpaperscissors/internal/catalog"
	"github.com/lox/rockpaperscissors/internal/randutil"
	"github.com/lox/rockpaperscissors/internal/roundid"
	"github.com/lox/rockpaperscissors/internal/score"
)

var (
	// ErrInvalidTransition is logged when a transition is requested from a
	// step that does not permit it.
	ErrInvalidTransition = errors.New("invalid transition for current step")

	// ErrUnknownMove is logged when a submitted move is not in the active catalog.
	ErrUnknownMove = errors.New("move not in active catalog")

	// ErrSessionClosed is logged when a transition is requested after Close.
	ErrSessionClosed = errors.New("session closed")
)

const (
	// DefaultThinkDelay is the pause before the computer reveals its move.
	DefaultThinkDelay = time.Second

	// NoDelay makes a scheduled transition run immediately instead of
	// going through the clock.
	NoDelay time.Duration = -1
)

// RandSource picks a uniform integer in [0, n). *rand.Rand from math/rand/v2
// satisfies it.
type RandSource interface {
	IntN(n int) int
}

// Options configures a Session. Zero values pick sensible defaults.
type Options struct {
	Store score.Store
	Rand  RandSource
	Clock quartz.Clock

	// ThinkDelay is the pause between the user's move and the computer's.
	// Zero means DefaultThinkDelay; NoDelay means immediately.
	ThinkDelay time.Duration
	// RevealDelay is the pause between the computer's move and the result.
	// Zero or NoDelay means immediately.
	RevealDelay time.Duration

	Logger *log.Logger

	// OnChange is called with the new state after every applied transition,
	// outside the session's lock. It may be called from the clock's goroutine.
	OnChange func(State)
}

// Session sequences rounds for one game mode.
type Session struct {
	mu sync.Mutex

	mode    catalog.GameMode
	catalog catalog.Catalog
	state   State
	round   string

	store       score.Store
	rand        RandSource
	clock       quartz.Clock
	thinkDelay  time.Duration
	revealDelay time.Duration
	logger      *log.Logger
	onChange    func(State)

	pending    *quartz.Timer
	generation uint64
	closed     bool
}

// anyGeneration skips the stale-callback check for direct method calls.
const anyGeneration = ^uint64(0)

// NewSession creates a session for mode and loads the score persisted for it.
// Unknown modes fall back to Basic.
func NewSession(mode catalog.GameMode, opts Options) *Session {
	if opts.Store == nil {
		opts.Store = score.NewMemoryStore()
	}
	if opts.Rand == nil {
		opts.Rand = randutil.New(randutil.Seed(0))
	}
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	think := opts.ThinkDelay
	switch {
	case think == 0:
		think = DefaultThinkDelay
	case think < 0:
		think = 0
	}
	reveal := max(opts.RevealDelay, 0)

	s := &Session{
		store:       opts.Store,
		rand:        opts.Rand,
		clock:       opts.Clock,
		thinkDelay:  think,
		revealDelay: reveal,
		logger:      opts.Logger.WithPrefix("session"),
		onChange:    opts.OnChange,
	}
	s.resetLocked(mode)
	return s
}

// State returns a snapshot of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Mode returns the active game mode.
func (s *Session) Mode() catalog.GameMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Catalog returns a copy of the active move catalog.
func (s *Session) Catalog() catalog.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Clone()
}

// UserMove returns the user's move for the current round, if any.
func (s *Session) UserMove() (catalog.Move, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Lookup(s.state.UserMoveID)
}

// ComputerMove returns the computer's move for the current round, if any.
func (s *Session) ComputerMove() (catalog.Move, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Lookup(s.state.ComputerMoveID)
}

// RoundID identifies the round in progress in log output. It is empty in
// UserTurn.
func (s *Session) RoundID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round
}

// SubmitUserMove commits the user's move and schedules the computer's turn.
// It returns false, leaving the state untouched, outside UserTurn or for a
// move that is not in the active catalog.
func (s *Session) SubmitUserMove(id string) bool {
	s.mu.Lock()
	if !s.allowedLocked("submit", UserCompletedTurn{MoveID: id}, anyGeneration) {
		s.mu.Unlock()
		return false
	}
	if _, ok := s.catalog.Lookup(id); !ok {
		s.logger.Debug("Rejecting move", "move", id, "mode", s.mode, "error", ErrUnknownMove)
		s.mu.Unlock()
		return false
	}

	s.state = Reduce(s.state, UserCompletedTurn{MoveID: id})
	s.round = roundid.New(s.clock.Now())
	s.logger.Debug("User moved", "round", s.round, "move", id)
	gen, immediate := s.scheduleLocked(s.thinkDelay, s.computerThink)
	next := s.state.clone()
	s.mu.Unlock()

	s.notify(next)
	if immediate {
		s.computerThink(gen)
	}
	return true
}

// ComputerThink picks the computer's move. It is normally called by the
// timer scheduled in SubmitUserMove, but may be called directly to skip the
// pause; any pending timer is cancelled.
func (s *Session) ComputerThink() bool {
	return s.computerThink(anyGeneration)
}

func (s *Session) computerThink(gen uint64) bool {
	s.mu.Lock()
	if !s.allowedLocked("think", ComputerCompletedTurn{}, gen) {
		s.mu.Unlock()
		return false
	}

	// The computer never mirrors the user: the user's move is removed before
	// the draw rather than re-rolled after it.
	var candidates []string
	for _, id := range s.catalog.IDs() {
		if id != s.state.UserMoveID {
			candidates = append(candidates, id)
		}
	}
	n := len(candidates)
	idx := s.rand.IntN(n)
	if idx < 0 || idx >= n {
		// Wrap rather than stall the round with no timer left to advance it.
		s.logger.Warn("Random source returned out of range index", "index", idx, "n", n)
		idx = ((idx % n) + n) % n
	}
	pick := candidates[idx]

	s.state = Reduce(s.state, ComputerCompletedTurn{MoveID: pick})
	s.logger.Debug("Computer moved", "round", s.round, "move", pick)
	gen, immediate := s.scheduleLocked(s.revealDelay, s.resolve)
	next := s.state.clone()
	s.mu.Unlock()

	s.notify(next)
	if immediate {
		s.resolve(gen)
	}
	return true
}

// Resolve decides the round, adjusts the score by one and persists it.
func (s *Session) Resolve() bool {
	return s.resolve(anyGeneration)
}

func (s *Session) resolve(gen uint64) bool {
	s.mu.Lock()
	if !s.allowedLocked("resolve", RoundResolved{}, gen) {
		s.mu.Unlock()
		return false
	}
	s.cancelLocked()

	user, _ := s.catalog.Lookup(s.state.UserMoveID)
	win := user.Defeats(s.state.ComputerMoveID)
	newScore := s.state.Score - 1
	if win {
		newScore = s.state.Score + 1
	}

	if err := s.store.Set(score.Key(s.mode), newScore); err != nil {
		// The in-memory score stays authoritative until the next load.
		s.logger.Warn("Failed to persist score", "mode", s.mode, "score", newScore, "error", err)
	}

	s.state = Reduce(s.state, RoundResolved{Win: win, Score: newScore})
	s.logger.Info("Round resolved",
		"round", s.round,
		"mode", s.mode,
		"user", s.state.UserMoveID,
		"computer", s.state.ComputerMoveID,
		"win", win,
		"score", newScore)
	next := s.state.clone()
	s.mu.Unlock()

	s.notify(next)
	return true
}

// PlayAgain clears the finished round and returns to UserTurn, keeping the score.
func (s *Session) PlayAgain() bool {
	s.mu.Lock()
	if !s.allowedLocked("play again", PlayAgain{}, anyGeneration) {
		s.mu.Unlock()
		return false
	}
	s.state = Reduce(s.state, PlayAgain{})
	s.round = ""
	next := s.state.clone()
	s.mu.Unlock()

	s.notify(next)
	return true
}

// SetMode switches rule sets. Any pending computer move is cancelled, the
// round is discarded and the score persisted for the new mode is loaded.
func (s *Session) SetMode(mode catalog.GameMode) {
	s.mu.Lock()
	if s.closed {
		s.logger.Debug("Ignoring mode switch", "error", ErrSessionClosed)
		s.mu.Unlock()
		return
	}
	s.resetLocked(mode)
	next := s.state.clone()
	s.mu.Unlock()

	s.notify(next)
}

// Close cancels any pending scheduled transition and rejects all further
// transitions. It is safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	s.closed = true
}

func (s *Session) resetLocked(mode catalog.GameMode) {
	s.cancelLocked()

	mode = catalog.ParseMode(string(mode))
	s.mode = mode
	s.catalog = catalog.MustFor(mode)
	s.state = InitialState()
	s.round = ""

	if v, ok := s.store.Get(score.Key(mode)); ok {
		s.state = Reduce(s.state, ScoreLoaded{Score: v})
	}
	s.logger.Debug("Session reset", "mode", mode, "score", s.state.Score)
}

// allowedLocked guards every transition. gen is the generation a scheduled
// callback was created under, or anyGeneration for direct calls.
func (s *Session) allowedLocked(name string, action Action, gen uint64) bool {
	if s.closed {
		s.logger.Debug("Ignoring transition", "transition", name, "error", ErrSessionClosed)
		return false
	}
	if gen != anyGeneration && gen != s.generation {
		s.logger.Debug("Discarding stale scheduled transition", "transition", name)
		return false
	}
	if !Allowed(s.state, action) {
		s.logger.Debug("Ignoring transition",
			"transition", name,
			"step", s.state.Step,
			"error", ErrInvalidTransition)
		return false
	}
	return true
}

// scheduleLocked arranges for fn to run after d under a fresh generation.
// When d is zero it reports immediate, and the caller must run fn with the
// returned generation itself after releasing the lock.
func (s *Session) scheduleLocked(d time.Duration, fn func(gen uint64) bool) (gen uint64, immediate bool) {
	s.cancelLocked()
	gen = s.generation
	if d <= 0 {
		return gen, true
	}
	s.pending = s.clock.AfterFunc(d, func() {
		fn(gen)
	})
	return gen, false
}

// cancelLocked stops the pending timer and invalidates any callback that
// already escaped Stop.
func (s *Session) cancelLocked() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	s.generation++
}

func (s *Session) notify(state State) {
	if s.onChange != nil {
		s.onChange(state)
	}
}

func (s State) clone() State {
	if s.Win != nil {
		win := *s.Win
		s.Win = &win
	}
	return s
}
