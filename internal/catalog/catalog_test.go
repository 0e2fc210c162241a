package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want GameMode
	}{
		{"Basic", Basic},
		{"Advance", Advance},
		{"advance", Advance},
		{"  ADVANCE ", Advance},
		{"", Basic},
		{"expert", Basic},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseMode(tt.in), "ParseMode(%q)", tt.in)
	}
}

func TestBuiltInCatalogsAreTournaments(t *testing.T) {
	t.Parallel()

	for _, mode := range Modes() {
		t.Run(string(mode), func(t *testing.T) {
			c, err := For(mode)
			require.NoError(t, err)
			require.NoError(t, c.Validate())

			for _, a := range c.Moves {
				for _, b := range c.Moves {
					if a.ID == b.ID {
						assert.False(t, a.Defeats(b.ID), "%s beats itself", a.ID)
						continue
					}
					assert.NotEqual(t, a.Defeats(b.ID), b.Defeats(a.ID),
						"exactly one of %s/%s must win", a.ID, b.ID)
				}
			}
		})
	}
}

func TestCatalogSizes(t *testing.T) {
	t.Parallel()

	basic, err := MovesFor(Basic)
	require.NoError(t, err)
	assert.Len(t, basic, 3)
	for _, m := range basic {
		assert.Len(t, m.Beats, 1, m.ID)
	}

	advance, err := MovesFor(Advance)
	require.NoError(t, err)
	assert.Len(t, advance, 5)
	for _, m := range advance {
		assert.Len(t, m.Beats, 2, m.ID)
	}

	assert.Equal(t, []string{"paper", "scissor", "rock"}, MustFor(Basic).IDs())
	assert.Equal(t, "triangle", MustFor(Basic).Background)
	assert.Equal(t, "pentagon", MustFor(Advance).Background)
}

func TestUnknownMode(t *testing.T) {
	t.Parallel()

	_, err := For(GameMode("Expert"))
	assert.ErrorIs(t, err, ErrUnknownMode)

	_, err = MovesFor(GameMode(""))
	assert.ErrorIs(t, err, ErrUnknownMode)

	assert.Panics(t, func() { MustFor("nope") })
}

func TestCatalogIsImmutable(t *testing.T) {
	t.Parallel()

	c := MustFor(Basic)
	c.Moves[0].Beats[0] = "scissor"
	c.Moves[1].ID = "hacked"

	fresh := MustFor(Basic)
	assert.Equal(t, []string{"rock"}, fresh.Moves[0].Beats)
	assert.Equal(t, "scissor", fresh.Moves[1].ID)

	m, ok := fresh.Lookup("rock")
	require.True(t, ok)
	m.Beats[0] = "paper"
	again, _ := MustFor(Basic).Lookup("rock")
	assert.Equal(t, []string{"scissor"}, again.Beats)
}

func TestCloneSharesNothing(t *testing.T) {
	t.Parallel()

	orig := MustFor(Advance)
	c := orig.Clone()
	c.Moves[0].Beats[1] = "rock"
	c.Moves = append(c.Moves[:1], c.Moves[2:]...)

	assert.Equal(t, []string{"paper", "lizard"}, orig.Moves[0].Beats)
	assert.Len(t, orig.Moves, 5)
	assert.Equal(t, "spock", orig.Moves[1].ID)
}

func TestOutcome(t *testing.T) {
	t.Parallel()

	basic := MustFor(Basic)
	o, err := basic.Outcome("rock", "scissor")
	require.NoError(t, err)
	assert.Equal(t, Win, o)

	o, err = basic.Outcome("rock", "paper")
	require.NoError(t, err)
	assert.Equal(t, Lose, o)

	o, err = basic.Outcome("rock", "rock")
	require.NoError(t, err)
	assert.Equal(t, Draw, o)

	_, err = basic.Outcome("rock", "spock")
	assert.Error(t, err)

	// lizard poisons spock
	o, err = MustFor(Advance).Outcome("spock", "lizard")
	require.NoError(t, err)
	assert.Equal(t, Lose, o)
}

func TestValidateRejectsBrokenTables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		moves []Move
		want  string
	}{
		{
			name: "unknown id",
			moves: []Move{
				{ID: "a", Beats: []string{"b"}},
				{ID: "b", Beats: []string{"z"}},
				{ID: "c", Beats: []string{"a"}},
			},
			want: "unknown move",
		},
		{
			name: "beats itself",
			moves: []Move{
				{ID: "a", Beats: []string{"a"}},
				{ID: "b", Beats: []string{"c"}},
				{ID: "c", Beats: []string{"a"}},
			},
			want: "beats itself",
		},
		{
			name: "irregular",
			moves: []Move{
				{ID: "a", Beats: []string{"b", "c"}},
				{ID: "b", Beats: []string{"c"}},
				{ID: "c", Beats: nil},
			},
			want: "want 1",
		},
		{
			name: "mutual",
			moves: []Move{
				{ID: "a", Beats: []string{"b"}},
				{ID: "b", Beats: []string{"a"}},
				{ID: "c", Beats: []string{"a"}},
			},
			want: "exactly one winner",
		},
		{
			name: "duplicate",
			moves: []Move{
				{ID: "a", Beats: []string{"b"}},
				{ID: "a", Beats: []string{"b"}},
				{ID: "b", Beats: []string{"a"}},
			},
			want: "duplicate",
		},
		{
			name:  "even",
			moves: []Move{{ID: "a", Beats: []string{"b"}}, {ID: "b"}},
			want:  "odd number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Catalog{Mode: "Test", Moves: tt.moves}.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRules(t *testing.T) {
	t.Parallel()

	basic := MustFor(Basic).Rules()
	require.Len(t, basic, 3)
	assert.Equal(t, "Paper covers Rock", basic[0].String())
	assert.Equal(t, "Scissors cuts Paper", basic[1].String())
	assert.Equal(t, "Rock crushes Scissors", basic[2].String())

	assert.Len(t, MustFor(Advance).Rules(), 10)
	assert.Equal(t, []string{"Rock", "Paper", "Scissors", "Lizard", "Spock"}, Title(Advance))
	assert.Len(t, Title(Basic), 3)
}

func TestModeNext(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Advance, Basic.Next())
	assert.Equal(t, Basic, Advance.Next())
	assert.True(t, Basic.Valid())
	assert.False(t, GameMode("x").Valid())
}
