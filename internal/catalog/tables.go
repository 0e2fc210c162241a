package catalog

import "fmt"

var catalogs = map[GameMode]Catalog{
	Basic: {
		Mode: Basic,
		Moves: []Move{
			{ID: "paper", Name: "Paper", Beats: []string{"rock"}},
			{ID: "scissor", Name: "Scissors", Beats: []string{"paper"}},
			{ID: "rock", Name: "Rock", Beats: []string{"scissor"}},
		},
		Background: "triangle",
	},
	Advance: {
		Mode: Advance,
		Moves: []Move{
			{ID: "scissor", Name: "Scissors", Beats: []string{"paper", "lizard"}},
			{ID: "spock", Name: "Spock", Beats: []string{"scissor", "rock"}},
			{ID: "paper", Name: "Paper", Beats: []string{"rock", "spock"}},
			{ID: "lizard", Name: "Lizard", Beats: []string{"spock", "paper"}},
			{ID: "rock", Name: "Rock", Beats: []string{"lizard", "scissor"}},
		},
		Background: "pentagon",
	},
}

// verbs describe how the winner of a pair defeats the loser.
var verbs = map[[2]string]string{
	{"scissor", "paper"}:  "cuts",
	{"paper", "rock"}:     "covers",
	{"rock", "lizard"}:    "crushes",
	{"lizard", "spock"}:   "poisons",
	{"spock", "scissor"}:  "smashes",
	{"scissor", "lizard"}: "decapitates",
	{"lizard", "paper"}:   "eats",
	{"paper", "spock"}:    "disproves",
	{"spock", "rock"}:     "vaporizes",
	{"rock", "scissor"}:   "crushes",
}

// Rule is one human readable line of the rules, e.g. "Scissors cuts Paper".
type Rule struct {
	Winner string
	Verb   string
	Loser  string
}

func (r Rule) String() string {
	return fmt.Sprintf("%s %s %s", r.Winner, r.Verb, r.Loser)
}

// Rules lists every winning pair in catalog order.
func (c Catalog) Rules() []Rule {
	var rules []Rule
	for _, m := range c.Moves {
		for _, id := range m.Beats {
			loser, ok := c.Lookup(id)
			if !ok {
				continue
			}
			verb, ok := verbs[[2]string{m.ID, id}]
			if !ok {
				verb = "beats"
			}
			rules = append(rules, Rule{Winner: m.Name, Verb: verb, Loser: loser.Name})
		}
	}
	return rules
}

// Title returns the header words shown for mode.
func Title(mode GameMode) []string {
	if mode == Advance {
		return []string{"Rock", "Paper", "Scissors", "Lizard", "Spock"}
	}
	return []string{"Rock", "Paper", "Scissors"}
}
