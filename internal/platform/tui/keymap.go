package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cuprace/internal/core"
)

// ActionKind identifies what a key press asks the table to do.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionContinue
	ActionToggleCard // Arg: hand index
	ActionPlay       // Arg: race index
	ActionDiscard
	ActionClaimMode
	ActionClaim // Arg: color
	ActionCancel
	ActionNewGame
	ActionHelp
	ActionQuit
)

// Action is a decoded key press.
type Action struct {
	Kind ActionKind
	Arg  int
}

// TableKeyMap defines the key bindings for the game table.
type TableKeyMap struct {
	Continue key.Binding
	Card     key.Binding
	Race     key.Binding
	Discard  key.Binding
	Claim    key.Binding
	Cancel   key.Binding
	NewGame  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// raceKeys maps a key to a race slot, left to right.
var raceKeys = map[string]int{"a": 0, "s": 1, "d": 2, "f": 3}

// ShortHelp returns key bindings for the short help view.
func (k TableKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Continue, k.Card, k.Race, k.Claim, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k TableKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Continue, k.Card, k.Race, k.Discard},
		{k.Claim, k.Cancel, k.NewGame},
		{k.Help, k.Quit},
	}
}

// DefaultTableKeyMap returns default key bindings.
func DefaultTableKeyMap() TableKeyMap {
	return TableKeyMap{
		Continue: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "continue"),
		),
		Card: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8"),
			key.WithHelp("1-8", "pick card"),
		),
		Race: key.NewBinding(
			key.WithKeys("a", "s", "d", "f"),
			key.WithHelp("a/s/d/f", "play on race"),
		),
		Discard: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "discard selected"),
		),
		Claim: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "claim cup"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		NewGame: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new game"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key press into a table action. In claim mode the
// number keys 1-5 pick a cup color instead of a hand card.
func (k TableKeyMap) MapKey(msg tea.KeyMsg, claiming bool) Action {
	switch {
	case key.Matches(msg, k.Quit):
		return Action{Kind: ActionQuit}
	case key.Matches(msg, k.Cancel):
		return Action{Kind: ActionCancel}
	case key.Matches(msg, k.Help):
		return Action{Kind: ActionHelp}
	}

	if claiming {
		if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= core.NumColors {
			return Action{Kind: ActionClaim, Arg: n - 1}
		}
		return Action{Kind: ActionCancel}
	}

	switch {
	case key.Matches(msg, k.Continue):
		return Action{Kind: ActionContinue}
	case key.Matches(msg, k.Card):
		n, _ := strconv.Atoi(msg.String())
		return Action{Kind: ActionToggleCard, Arg: n - 1}
	case key.Matches(msg, k.Race):
		return Action{Kind: ActionPlay, Arg: raceKeys[msg.String()]}
	case key.Matches(msg, k.Discard):
		return Action{Kind: ActionDiscard}
	case key.Matches(msg, k.Claim):
		return Action{Kind: ActionClaimMode}
	case key.Matches(msg, k.NewGame):
		return Action{Kind: ActionNewGame}
	}
	return Action{Kind: ActionNone}
}
