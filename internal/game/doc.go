// Package game implements the turn sequencing of a Rock-Paper-Scissors round.
//
// A round moves through four steps:
//
//	UserTurn -> WaitingForComputerTurn -> ComputerTurned -> Result
//
// and PlayAgain returns from Result to UserTurn. There is no terminal step.
//
// # Reducer
//
// Reduce is a pure function from a State and an Action to the next State. It
// ignores any action that is not valid for the current step and returns the
// input unchanged:
//
//	s := game.InitialState()
//	s = game.Reduce(s, game.UserCompletedTurn{MoveID: "rock"})
//	s.Step // WaitingForComputerTurn
//
// # Session
//
// Session wraps the reducer with the collaborators a round needs: the move
// catalog for the active mode, a random source for the computer's pick, a
// score store and a clock used to schedule the computer's "thinking" pause.
//
//	s := game.NewSession(catalog.Basic, game.Options{
//	    Store: score.NewMemoryStore(),
//	    Clock: quartz.NewReal(),
//	})
//	defer s.Close()
//	s.SubmitUserMove("rock") // computer moves after ThinkDelay
//
// # Deterministic Testing
//
// Inject a quartz.Mock clock and a scripted RandSource; advancing the mock by
// ThinkDelay fires the computer's move synchronously with MustWait:
//
//	clock := quartz.NewMock(t)
//	s := game.NewSession(catalog.Basic, game.Options{Clock: clock, Rand: fixed{1}})
//	s.SubmitUserMove("rock")
//	clock.Advance(time.Second).MustWait(ctx)
//
// Setting ThinkDelay and RevealDelay to a negative value (NoDelay) runs the
// whole round inside SubmitUserMove, which the simulator relies on.
package game
