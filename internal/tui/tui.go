package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/rockpaperscissors/internal/catalog"
	"github.com/lox/rockpaperscissors/internal/game"
)

// Changes buffers session state changes until the program loop reads them.
type Changes chan game.State

// NewChanges creates a change feed suitable for game.Options.OnChange.
func NewChanges() Changes {
	return make(Changes, 8)
}

// Push delivers state without blocking. A dropped state is harmless since the
// model re-reads the session whenever it wakes up.
func (c Changes) Push(state game.State) {
	select {
	case c <- state:
	default:
	}
}

// StateMsg is delivered when the session changed outside of a key press,
// typically when the thinking timer fired.
type StateMsg struct {
	State game.State
}

// Model is the Bubble Tea model for one game session
type Model struct {
	session *game.Session
	changes Changes
	logger  *log.Logger

	keys keyMap
	help help.Model

	state     game.State
	cursor    int
	showRules bool
	quitting  bool
	width     int
}

// NewModel creates a model driving session. changes should be the feed the
// session was created with, or nil when nothing happens asynchronously.
func NewModel(session *game.Session, changes Changes, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.Default()
	}
	m := &Model{
		session: session,
		changes: changes,
		logger:  logger.WithPrefix("tui"),
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
	m.sync()
	return m
}

// Init starts listening for session changes
func (m *Model) Init() tea.Cmd {
	return m.listen()
}

// listen returns a command that waits for the next session change
func (m *Model) listen() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	return func() tea.Msg {
		return StateMsg{State: <-m.changes}
	}
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StateMsg:
		m.sync()
		return m, m.listen()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.logger.Debug("Key pressed", "key", msg.String(), "step", m.state.Step)

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Rules):
		m.showRules = !m.showRules
		return m, nil
	case key.Matches(msg, m.keys.Mode):
		next := m.session.Mode().Next()
		m.logger.Info("Switching mode", "mode", next)
		m.session.SetMode(next)
		m.cursor = 0
		m.sync()
		return m, nil
	}

	ids := m.session.Catalog().IDs()

	switch m.state.Step {
	case game.UserTurn:
		switch {
		case key.Matches(msg, m.keys.Left):
			m.cursor = (m.cursor - 1 + len(ids)) % len(ids)
		case key.Matches(msg, m.keys.Right):
			m.cursor = (m.cursor + 1) % len(ids)
		case key.Matches(msg, m.keys.Pick):
			idx := int(msg.String()[0] - '1')
			if idx >= len(ids) {
				return m, nil
			}
			m.cursor = idx
			m.session.SubmitUserMove(ids[idx])
		case key.Matches(msg, m.keys.Submit):
			m.session.SubmitUserMove(ids[m.cursor])
		}
	case game.WaitingForComputerTurn:
		if key.Matches(msg, m.keys.Skip) {
			m.session.ComputerThink()
		}
	case game.ComputerTurned:
		if key.Matches(msg, m.keys.Skip) {
			m.session.Resolve()
		}
	case game.Result:
		if key.Matches(msg, m.keys.Again) {
			m.session.PlayAgain()
		}
	}

	m.sync()
	return m, nil
}

// sync copies the session state into the model
func (m *Model) sync() {
	next := m.session.State()
	if !next.Equal(m.state) {
		m.logger.Debug("State changed", "step", next.Step, "score", next.Score)
	}
	m.state = next
	if n := len(m.session.Catalog().Moves); m.cursor >= n {
		m.cursor = 0
	}
}

// State returns the state the model last rendered from
func (m *Model) State() game.State {
	return m.state
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	cat := m.session.Catalog()
	var b strings.Builder

	b.WriteString(HeaderStyle.Render(strings.Join(catalog.Title(cat.Mode), " · ")))
	b.WriteString("  ")
	b.WriteString(ScoreStyle.Render(fmt.Sprintf("Score: %d", m.state.Score)))
	b.WriteString("\n")
	b.WriteString(ModeStyle.Render(fmt.Sprintf("Mode: %s", cat.Mode)))
	b.WriteString("\n\n")

	switch m.state.Step {
	case game.UserTurn:
		b.WriteString("Pick your move\n")
		b.WriteString(m.renderMoves(cat))
	case game.WaitingForComputerTurn:
		b.WriteString(m.renderPick("You Picked", cat, m.state.UserMoveID))
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render("Computer is thinking..."))
	case game.ComputerTurned:
		b.WriteString(m.renderPicks(cat))
	case game.Result:
		b.WriteString(m.renderPicks(cat))
		b.WriteString("\n\n")
		if m.state.Won() {
			b.WriteString(WinStyle.Render("YOU WIN"))
		} else {
			b.WriteString(LoseStyle.Render("YOU LOSE"))
		}
	}
	b.WriteString("\n")

	if m.showRules {
		b.WriteString("\n")
		b.WriteString(m.renderRules(cat))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.stepKeys()))
	return b.String()
}

func (m *Model) renderMoves(cat catalog.Catalog) string {
	boxes := make([]string, 0, len(cat.Moves))
	for i, mv := range cat.Moves {
		label := fmt.Sprintf("%d %s", i+1, mv.Name)
		if i == m.cursor {
			boxes = append(boxes, SelectedMoveStyle.Render(label))
		} else {
			boxes = append(boxes, MoveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (m *Model) renderPick(label string, cat catalog.Catalog, id string) string {
	name := id
	if mv, ok := cat.Lookup(id); ok {
		name = mv.Name
	}
	return fmt.Sprintf("%s: %s", label, PickStyle.Render(name))
}

func (m *Model) renderPicks(cat catalog.Catalog) string {
	return m.renderPick("You Picked", cat, m.state.UserMoveID) + "\n" +
		m.renderPick("Computer Picked", cat, m.state.ComputerMoveID)
}

func (m *Model) renderRules(cat catalog.Catalog) string {
	rules := cat.Rules()
	lines := make([]string, 0, len(rules)+1)
	lines = append(lines, InfoStyle.Render(fmt.Sprintf("Rules (%s)", cat.Background)))
	for _, r := range rules {
		lines = append(lines, r.String())
	}
	return RulesStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) stepKeys() stepKeys {
	var keys stepKeys
	switch m.state.Step {
	case game.UserTurn:
		keys = stepKeys{m.keys.Left, m.keys.Right, m.keys.Pick, m.keys.Submit}
	case game.WaitingForComputerTurn, game.ComputerTurned:
		keys = stepKeys{m.keys.Skip}
	case game.Result:
		keys = stepKeys{m.keys.Again}
	}
	return append(keys, m.keys.Mode, m.keys.Rules, m.keys.Quit)
}
