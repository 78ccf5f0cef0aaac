package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cuprace/internal/config"
	"github.com/vovakirdan/cuprace/internal/core"
	"github.com/vovakirdan/cuprace/internal/game"
	"github.com/vovakirdan/cuprace/internal/storage"
)

// noticeTimeout is how long a transient notice stays on screen.
const noticeTimeout = 4 * time.Second

// Options configures a TableModel.
type Options struct {
	Config config.Config
	Store  *storage.Store // Nil disables result saving
	Logger *log.Logger
	Width  int
	Height int
}

// TableModel is the Bubble Tea model for one hot-seat table.
type TableModel struct {
	ctrl   *game.Controller
	events *eventLog
	store  *storage.Store
	logger *log.Logger
	theme  Theme
	keys   TableKeyMap
	help   help.Model
	names  [core.NumPlayers]string

	width    int
	height   int
	claiming bool
	abandon  bool // n was pressed once during a running game
	lastErr  error
	notice   string
	noticeID int
	quitting bool
}

// NewTableModel creates a table and deals the first game.
func NewTableModel(opts Options) TableModel {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// Use time-based seed if not specified
	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	names := [core.NumPlayers]string{cfg.Players.Left, cfg.Players.Right}
	events := newEventLog(names)
	ctrl := game.New(game.Options{
		Seed:     seed,
		Names:    names,
		Listener: events,
		Logger:   logger,
		Strict:   cfg.Game.Strict,
	})
	ctrl.NewGame()

	h := help.New()
	h.ShowAll = false

	return TableModel{
		ctrl:   ctrl,
		events: events,
		store:  opts.Store,
		logger: logger,
		theme:  NewTheme(cfg.Theme),
		keys:   DefaultTableKeyMap(),
		help:   h,
		names:  names,
		width:  opts.Width,
		height: opts.Height,
	}
}

// Snapshot returns the state of the table's game.
func (m TableModel) Snapshot() game.Snapshot {
	return m.ctrl.Snapshot()
}

// Claiming reports whether the model is waiting for a cup color.
func (m TableModel) Claiming() bool {
	return m.claiming
}

// Init initializes the table model.
func (m TableModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m TableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.apply(m.keys.MapKey(msg, m.claiming))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case resultSavedMsg:
		if msg.err != nil {
			return m.flash(fmt.Sprintf("Result not saved: %v", msg.err))
		}
		return m.flash("Result saved.")

	case clearNoticeMsg:
		if int(msg) == m.noticeID {
			m.notice = ""
		}
		return m, nil
	}

	return m, nil
}

// apply runs one decoded key press against the controller.
func (m TableModel) apply(a Action) (tea.Model, tea.Cmd) {
	if a.Kind != ActionNewGame {
		m.abandon = false
	}

	var err error
	switch a.Kind {
	case ActionNone:
		return m, nil

	case ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case ActionCancel:
		m.claiming = false
		return m, nil

	case ActionClaimMode:
		if m.ctrl.GameState() != core.InGame {
			return m, nil
		}
		m.claiming = true
		return m.flash("Claim which cup? Press 1-5, esc to cancel.")

	case ActionClaim:
		m.claiming = false
		err = m.ctrl.ClaimCup(core.Color(a.Arg))

	case ActionContinue:
		switch {
		case m.ctrl.GameState() == core.Initialising:
			m.ctrl.NewGame()
		case m.ctrl.TurnState() == core.PickCardsFromHandToDiscard:
			err = m.ctrl.ConfirmDiscardSelection()
		default:
			err = m.ctrl.ContinueTurn()
		}

	case ActionToggleCard:
		p := m.ctrl.CurrentPlayer()
		if m.ctrl.Snapshot().IsSelected(a.Arg) {
			err = m.ctrl.DeselectHandCard(p, a.Arg)
		} else {
			err = m.ctrl.SelectHandCard(p, a.Arg)
		}

	case ActionPlay:
		err = m.ctrl.PlaySelectedCardOnRace(a.Arg)

	case ActionDiscard:
		err = m.ctrl.ConfirmDiscardSelection()

	case ActionNewGame:
		if m.ctrl.GameState() == core.InGame && !m.abandon {
			m.abandon = true
			return m.flash("Press n again to abandon this game.")
		}
		m.abandon = false
		m.ctrl.NewGame()
	}

	m.lastErr = err
	if summary := m.events.TakeFinished(); summary != nil && m.store != nil {
		return m, saveResultCmd(m.store, storage.NewResult(*summary, m.names), m.logger)
	}
	return m, nil
}

// flash shows a notice that clears itself after noticeTimeout.
func (m TableModel) flash(text string) (tea.Model, tea.Cmd) {
	m.noticeID++
	m.notice = text
	return m, clearNoticeAfter(noticeTimeout, m.noticeID)
}

// View renders the table.
func (m TableModel) View() string {
	if m.quitting {
		return ""
	}

	s := m.ctrl.Snapshot()
	var b strings.Builder

	b.WriteString(RenderBoard(s, m.theme, m.width))
	b.WriteString("\n\n")

	statusStyle := lipgloss.NewStyle().Bold(true)
	if m.lastErr != nil {
		statusStyle = statusStyle.Foreground(lipgloss.Color("196"))
	}
	b.WriteString(statusStyle.Render(s.Status))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(m.theme.accent.Render(m.notice))
		b.WriteString("\n")
	}

	if lines := m.events.Lines(); len(lines) > 0 {
		b.WriteString("\n")
		b.WriteString(renderLog(lines, m.theme))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// resultSavedMsg reports the outcome of saving a finished game.
type resultSavedMsg struct {
	id  string
	err error
}

// saveResultCmd persists a result off the update loop.
func saveResultCmd(store *storage.Store, r storage.Result, logger *log.Logger) tea.Cmd {
	return func() tea.Msg {
		id, err := store.SaveResult(r)
		if err != nil {
			logger.Error("failed to save result", "err", err)
		} else {
			logger.Info("result saved", "id", id, "winner", r.WinnerName(), "reason", r.EndReason)
		}
		return resultSavedMsg{id: id, err: err}
	}
}

// Run starts the Bubble Tea program for a local hot-seat table.
func Run(opts Options) error {
	model := NewTableModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
