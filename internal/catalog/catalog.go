// Package catalog defines the moves available in each game mode and the
// "beats" relation between them.
//
// Catalogs are built once at package initialisation and never mutated. Every
// accessor hands out copies so callers cannot corrupt the shared tables.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// GameMode selects which rule set is active.
type GameMode string

const (
	Basic   GameMode = "Basic"
	Advance GameMode = "Advance"
)

// ErrUnknownMode is returned for a GameMode outside the enumerated set.
var ErrUnknownMode = errors.New("unknown game mode")

// Modes returns every supported game mode in display order.
func Modes() []GameMode {
	return []GameMode{Basic, Advance}
}

// ParseMode maps an externally supplied mode name onto a GameMode.
// Matching ignores case and surrounding whitespace; anything unrecognised
// falls back to Basic.
func ParseMode(s string) GameMode {
	s = strings.TrimSpace(s)
	for _, m := range Modes() {
		if strings.EqualFold(s, string(m)) {
			return m
		}
	}
	return Basic
}

// Valid reports whether m is one of the enumerated modes.
func (m GameMode) Valid() bool {
	return m == Basic || m == Advance
}

// Next returns the mode that follows m, wrapping around.
func (m GameMode) Next() GameMode {
	if m == Basic {
		return Advance
	}
	return Basic
}

// Move is an immutable catalog entry.
type Move struct {
	ID    string
	Name  string
	Beats []string
}

// Defeats reports whether m beats the move with the given id.
func (m Move) Defeats(id string) bool {
	return slices.Contains(m.Beats, id)
}

func (m Move) clone() Move {
	m.Beats = slices.Clone(m.Beats)
	return m
}

// Outcome is the result of one move played against another.
type Outcome int

const (
	Draw Outcome = iota
	Win
	Lose
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Lose:
		return "lose"
	default:
		return "draw"
	}
}

// Catalog is the ordered set of moves for one mode, plus an opaque
// background asset identifier for the presentation layer.
type Catalog struct {
	Mode       GameMode
	Moves      []Move
	Background string
}

// For returns the catalog for mode.
func For(mode GameMode) (Catalog, error) {
	c, ok := catalogs[mode]
	if !ok {
		return Catalog{}, fmt.Errorf("%w: %q", ErrUnknownMode, string(mode))
	}
	return c.Clone(), nil
}

// MovesFor returns the ordered moves available in mode.
func MovesFor(mode GameMode) ([]Move, error) {
	c, err := For(mode)
	if err != nil {
		return nil, err
	}
	return c.Moves, nil
}

// MustFor is like For but panics on an unknown mode. Only use it with modes
// that came from ParseMode or the exported constants.
func MustFor(mode GameMode) Catalog {
	c, err := For(mode)
	if err != nil {
		panic(err)
	}
	return c
}

// Clone returns a deep copy that shares no slices with c.
func (c Catalog) Clone() Catalog {
	moves := make([]Move, len(c.Moves))
	for i, m := range c.Moves {
		moves[i] = m.clone()
	}
	c.Moves = moves
	return c
}

// Lookup finds a move by id.
func (c Catalog) Lookup(id string) (Move, bool) {
	for _, m := range c.Moves {
		if m.ID == id {
			return m.clone(), true
		}
	}
	return Move{}, false
}

// IDs returns the move ids in catalog order.
func (c Catalog) IDs() []string {
	ids := make([]string, len(c.Moves))
	for i, m := range c.Moves {
		ids[i] = m.ID
	}
	return ids
}

// Outcome resolves move a played against move b from a's point of view.
func (c Catalog) Outcome(a, b string) (Outcome, error) {
	ma, ok := c.Lookup(a)
	if !ok {
		return Draw, fmt.Errorf("move %q not in %s catalog", a, c.Mode)
	}
	mb, ok := c.Lookup(b)
	if !ok {
		return Draw, fmt.Errorf("move %q not in %s catalog", b, c.Mode)
	}
	switch {
	case ma.ID == mb.ID:
		return Draw, nil
	case ma.Defeats(mb.ID):
		return Win, nil
	default:
		return Lose, nil
	}
}

// Validate checks that the beats relation forms a regular tournament: ids are
// unique, every beaten id exists, nothing beats itself, every move beats
// (n-1)/2 others, and each distinct pair has exactly one winner.
func (c Catalog) Validate() error {
	n := len(c.Moves)
	if n < 3 || n%2 == 0 {
		return fmt.Errorf("%s: need an odd number of moves (at least 3), got %d", c.Mode, n)
	}

	seen := make(map[string]bool, n)
	for _, m := range c.Moves {
		if m.ID == "" {
			return fmt.Errorf("%s: move with empty id", c.Mode)
		}
		if seen[m.ID] {
			return fmt.Errorf("%s: duplicate move id %q", c.Mode, m.ID)
		}
		seen[m.ID] = true
	}

	want := (n - 1) / 2
	for _, m := range c.Moves {
		for _, id := range m.Beats {
			if id == m.ID {
				return fmt.Errorf("%s: %q beats itself", c.Mode, m.ID)
			}
			if !seen[id] {
				return fmt.Errorf("%s: %q beats unknown move %q", c.Mode, m.ID, id)
			}
		}
		if len(m.Beats) != want {
			return fmt.Errorf("%s: %q beats %d moves, want %d", c.Mode, m.ID, len(m.Beats), want)
		}
	}

	for i, a := range c.Moves {
		for _, b := range c.Moves[i+1:] {
			ab, ba := a.Defeats(b.ID), b.Defeats(a.ID)
			if ab == ba {
				return fmt.Errorf("%s: %q and %q must have exactly one winner", c.Mode, a.ID, b.ID)
			}
		}
	}
	return nil
}
