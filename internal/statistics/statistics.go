package statistics

import (
	"fmt"
	"math"
	"sort"
)

// RoundResult represents the outcome of a single round
type RoundResult struct {
	UserMove     string
	ComputerMove string
	Win          bool
	ScoreBefore  int
	ScoreAfter   int
}

// MoveStats tracks how one move fared
type MoveStats struct {
	UserPicks     int // Times the user played it
	UserWins      int // Rounds won while the user played it
	ComputerPicks int // Times the computer played it
}

// Statistics tracks round outcomes across a simulation
type Statistics struct {
	Rounds int
	Wins   int
	Losses int

	// Invariant checks: both must stay zero
	Mirrors   int // Computer picked the user's own move
	BadDeltas int // Score moved by something other than exactly one

	NetScore int // Sum of per-round score changes

	Moves map[string]*MoveStats
}

func (s *Statistics) move(id string) *MoveStats {
	if s.Moves == nil {
		s.Moves = make(map[string]*MoveStats)
	}
	m, ok := s.Moves[id]
	if !ok {
		m = &MoveStats{}
		s.Moves[id] = m
	}
	return m
}

// Add incorporates a new round result into the statistics
func (s *Statistics) Add(result RoundResult) {
	s.Rounds++
	if result.Win {
		s.Wins++
	} else {
		s.Losses++
	}

	if result.UserMove == result.ComputerMove {
		s.Mirrors++
	}

	delta := result.ScoreAfter - result.ScoreBefore
	want := -1
	if result.Win {
		want = 1
	}
	if delta != want {
		s.BadDeltas++
	}
	s.NetScore += delta

	user := s.move(result.UserMove)
	user.UserPicks++
	if result.Win {
		user.UserWins++
	}
	s.move(result.ComputerMove).ComputerPicks++
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	if other == nil {
		return
	}
	s.Rounds += other.Rounds
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Mirrors += other.Mirrors
	s.BadDeltas += other.BadDeltas
	s.NetScore += other.NetScore
	for id, m := range other.Moves {
		mine := s.move(id)
		mine.UserPicks += m.UserPicks
		mine.UserWins += m.UserWins
		mine.ComputerPicks += m.ComputerPicks
	}
}

// WinRate returns the fraction of rounds the user won
func (s *Statistics) WinRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Rounds)
}

// StdError returns the standard error of the win rate
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	p := s.WinRate()
	return math.Sqrt(p * (1 - p) / float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the win rate
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	p := s.WinRate()
	margin := 1.96 * s.StdError()
	return p - margin, p + margin
}

// ComputerShare returns the fraction of rounds in which the computer played id
func (s *Statistics) ComputerShare(id string) float64 {
	if s.Rounds == 0 || s.Moves[id] == nil {
		return 0
	}
	return float64(s.Moves[id].ComputerPicks) / float64(s.Rounds)
}

// MoveIDs returns the ids seen so far, sorted
func (s *Statistics) MoveIDs() []string {
	ids := make([]string, 0, len(s.Moves))
	for id := range s.Moves {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Validate performs consistency checks on the collected data
func (s *Statistics) Validate() error {
	if s.Wins+s.Losses != s.Rounds {
		return fmt.Errorf("outcome mismatch: wins=%d losses=%d rounds=%d", s.Wins, s.Losses, s.Rounds)
	}
	if s.Mirrors != 0 {
		return fmt.Errorf("computer mirrored the user in %d rounds", s.Mirrors)
	}
	if s.BadDeltas != 0 {
		return fmt.Errorf("score changed by other than one in %d rounds", s.BadDeltas)
	}
	if s.NetScore != s.Wins-s.Losses {
		return fmt.Errorf("net score %d does not match wins-losses %d", s.NetScore, s.Wins-s.Losses)
	}

	userPicks, computerPicks := 0, 0
	for _, m := range s.Moves {
		userPicks += m.UserPicks
		computerPicks += m.ComputerPicks
	}
	if userPicks != s.Rounds || computerPicks != s.Rounds {
		return fmt.Errorf("pick counts (user=%d computer=%d) do not match rounds %d", userPicks, computerPicks, s.Rounds)
	}
	return nil
}
