package game

// Step identifies where a round currently is.
type Step int

const (
	UserTurn Step = iota
	WaitingForComputerTurn
	ComputerTurned
	Result
)

func (s Step) String() string {
	switch s {
	case UserTurn:
		return "UserTurn"
	case WaitingForComputerTurn:
		return "WaitingForComputerTurn"
	case ComputerTurned:
		return "ComputerTurned"
	case Result:
		return "Result"
	default:
		return "Unknown"
	}
}

// State is a snapshot of a session. Empty move ids and a nil Win mean the
// value has not been decided yet this round.
type State struct {
	Score          int
	Step           Step
	UserMoveID     string
	ComputerMoveID string
	Win            *bool
}

// InitialState is the state of a fresh session before any score is loaded.
func InitialState() State {
	return State{Step: UserTurn}
}

// Won reports whether the round was resolved as a win. It is false until
// the round reaches Result.
func (s State) Won() bool {
	return s.Win != nil && *s.Win
}

// Resolved reports whether the round's outcome is known.
func (s State) Resolved() bool {
	return s.Win != nil
}

// Equal reports whether two states hold the same values.
func (s State) Equal(o State) bool {
	if s.Score != o.Score || s.Step != o.Step ||
		s.UserMoveID != o.UserMoveID || s.ComputerMoveID != o.ComputerMoveID {
		return false
	}
	if (s.Win == nil) != (o.Win == nil) {
		return false
	}
	return s.Win == nil || *s.Win == *o.Win
}

// Action is an input to Reduce.
type Action interface {
	isAction()
}

// UserCompletedTurn records the user's committed move.
type UserCompletedTurn struct{ MoveID string }

// ComputerCompletedTurn records the computer's move.
type ComputerCompletedTurn struct{ MoveID string }

// RoundResolved records the outcome of the round and the new score.
type RoundResolved struct {
	Win   bool
	Score int
}

// PlayAgain starts the next round.
type PlayAgain struct{}

// ScoreLoaded replaces the score with a value read from storage.
type ScoreLoaded struct{ Score int }

func (UserCompletedTurn) isAction()     {}
func (ComputerCompletedTurn) isAction() {}
func (RoundResolved) isAction()         {}
func (PlayAgain) isAction()             {}
func (ScoreLoaded) isAction()           {}

// Allowed reports whether action is valid in state. Reduce returns the state
// unchanged whenever this is false.
func Allowed(state State, action Action) bool {
	switch action.(type) {
	case UserCompletedTurn:
		return state.Step == UserTurn
	case ComputerCompletedTurn:
		return state.Step == WaitingForComputerTurn
	case RoundResolved:
		return state.Step == ComputerTurned
	case PlayAgain:
		return state.Step == Result
	case ScoreLoaded:
		return state.Step == UserTurn && state.UserMoveID == ""
	default:
		return false
	}
}

// Reduce returns the state that follows applying action to state. It does not
// validate move ids; that is the Session's job.
func Reduce(state State, action Action) State {
	if !Allowed(state, action) {
		return state
	}

	switch a := action.(type) {
	case UserCompletedTurn:
		state.UserMoveID = a.MoveID
		state.Step = WaitingForComputerTurn
	case ComputerCompletedTurn:
		state.ComputerMoveID = a.MoveID
		state.Step = ComputerTurned
	case RoundResolved:
		win := a.Win
		state.Win = &win
		state.Score = a.Score
		state.Step = Result
	case PlayAgain:
		state.UserMoveID = ""
		state.ComputerMoveID = ""
		state.Win = nil
		state.Step = UserTurn
	case ScoreLoaded:
		state.Score = a.Score
	}
	return state
}
