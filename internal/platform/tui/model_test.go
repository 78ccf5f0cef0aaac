package tui

import (
	"math/rand"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cuprace/internal/config"
	"github.com/vovakirdan/cuprace/internal/core"
	"github.com/vovakirdan/cuprace/internal/game"
	"github.com/vovakirdan/cuprace/internal/storage"
)

func newTestModel(t *testing.T, store *storage.Store) TableModel {
	t.Helper()
	cfg := config.Default()
	cfg.Players.Left, cfg.Players.Right = "Ann", "Bob"
	cfg.Game.Seed = 7
	cfg.Game.Strict = true
	return NewTableModel(Options{Config: cfg, Store: store, Width: 140, Height: 40})
}

// press feeds one key to the model.
func press(t *testing.T, m TableModel, k string) (TableModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(keyMsg(k))
	tm, ok := next.(TableModel)
	require.True(t, ok, "Update returned %T", next)
	return tm, cmd
}

func TestTableModelDealsGame(t *testing.T) {
	m := newTestModel(t, nil)
	s := m.Snapshot()

	assert.Equal(t, core.InGame, s.GameState)
	assert.Equal(t, core.StartingPlayerTurn, s.TurnState)
	assert.Equal(t, int64(7), s.Seed)
	assert.Nil(t, m.Init())

	view := m.View()
	assert.Contains(t, view, "Ann")
	assert.Contains(t, view, "Bob")
	assert.Contains(t, view, "continue")
}

func TestContinueKeyRevealsHand(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(t, m, "enter")

	s := m.Snapshot()
	assert.True(t, s.HandRevealed)
	assert.Contains(t, []core.TurnState{core.PickCardFromHand, core.PickCardsFromHandToDiscard}, s.TurnState)
	assert.NoError(t, m.lastErr)
}

func TestCardKeyTogglesSelection(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(t, m, " ")

	m, _ = press(t, m, "3")
	assert.Equal(t, []int{2}, m.Snapshot().Selected)
	if m.Snapshot().TurnState != core.PickCardsFromHandToDiscard {
		assert.Equal(t, core.PlayCardOnRace, m.Snapshot().TurnState)
	}

	m, _ = press(t, m, "3")
	assert.Empty(t, m.Snapshot().Selected)
	assert.NoError(t, m.lastErr)
}

func TestRejectedKeyKeepsState(t *testing.T) {
	m := newTestModel(t, nil)
	before := m.Snapshot()

	// Playing before the hand is revealed is refused.
	m, _ = press(t, m, "a")
	require.Error(t, m.lastErr)
	after := m.Snapshot()
	assert.Equal(t, before.TurnState, after.TurnState)
	assert.Equal(t, before.Races, after.Races)
	assert.Contains(t, after.Status, "play card")

	m, _ = press(t, m, "enter")
	assert.NoError(t, m.lastErr, "a successful action clears the error")
}

func TestClaimMode(t *testing.T) {
	m := newTestModel(t, nil)

	m, cmd := press(t, m, "c")
	assert.True(t, m.Claiming())
	assert.NotNil(t, cmd, "notice should schedule its own expiry")
	assert.Contains(t, m.View(), "Claim which cup?")

	m, _ = press(t, m, "esc")
	assert.False(t, m.Claiming())

	m, _ = press(t, m, "c")
	m, _ = press(t, m, "3")
	assert.False(t, m.Claiming())
	require.Error(t, m.lastErr, "nobody holds enough cubes yet")
	assert.Contains(t, m.Snapshot().Status, "claim cup")
	assert.Equal(t, core.StartingPlayerTurn, m.Snapshot().TurnState)
}

func TestNoticeExpires(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(t, m, "c")
	require.NotEmpty(t, m.notice)

	stale, _ := m.Update(clearNoticeMsg(m.noticeID - 1))
	assert.NotEmpty(t, stale.(TableModel).notice, "an older timer must not clear a newer notice")

	cleared, _ := m.Update(clearNoticeMsg(m.noticeID))
	assert.Empty(t, cleared.(TableModel).notice)
}

func TestNewGameNeedsConfirmation(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(t, m, "enter")
	seed := m.Snapshot().Seed

	m, _ = press(t, m, "n")
	assert.Equal(t, seed, m.Snapshot().Seed, "first press only warns")
	assert.Contains(t, m.notice, "abandon")

	m, _ = press(t, m, "n")
	s := m.Snapshot()
	assert.NotEqual(t, seed, s.Seed)
	assert.Equal(t, core.StartingPlayerTurn, s.TurnState)
	assert.Equal(t, 1, s.Turn)
}

func TestNewGameConfirmationResets(t *testing.T) {
	m := newTestModel(t, nil)
	seed := m.Snapshot().Seed

	m, _ = press(t, m, "n")
	m, _ = press(t, m, "enter")
	m, _ = press(t, m, "n")
	assert.Equal(t, seed, m.Snapshot().Seed, "another key in between cancels the confirmation")
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t, nil)
	m, cmd := press(t, m, "q")

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestWindowResize(t *testing.T) {
	m := newTestModel(t, nil)
	next, cmd := m.Update(tea.WindowSizeMsg{Width: 50, Height: 20})
	assert.Nil(t, cmd)

	tm := next.(TableModel)
	assert.Equal(t, 50, tm.width)
	assert.Equal(t, 20, tm.height)
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t, nil)
	assert.NotContains(t, m.View(), "discard selected")

	m, _ = press(t, m, "?")
	assert.Contains(t, m.View(), "discard selected")
}

// nextKeys picks the keys for one legal action of the current player.
func nextKeys(t *testing.T, s game.Snapshot, rng *rand.Rand) []string {
	t.Helper()
	p := s.Current

	switch s.TurnState {
	case core.PickCardFromHand:
		type play struct{ card, race int }
		var plays []play
		for i, card := range s.Players[p].Hand {
			if card.IsZero() {
				continue
			}
			for ri, r := range s.Races {
				if r.State != core.Finished && len(r.Played[p]) < r.NumCubes && r.Remaining[p][card.Color] > 0 {
					plays = append(plays, play{i, ri})
				}
			}
		}
		require.NotEmpty(t, plays, "no legal play in %s", s.TurnState)
		pick := plays[rng.Intn(len(plays))]
		return []string{strconv.Itoa(pick.card + 1), string("asdf"[pick.race])}

	case core.PlayCardOnRace:
		return []string{strconv.Itoa(s.Selected[0] + 1)}

	case core.PickCardsFromHandToDiscard:
		var keys []string
		for _, i := range rng.Perm(core.HandSize)[:rng.Intn(core.MaxDiscard+1)] {
			keys = append(keys, strconv.Itoa(i+1))
		}
		return append(keys, "x")
	}
	return []string{"enter"}
}

func TestKeyDrivenGameIsSaved(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	m := newTestModel(t, store)
	rng := rand.New(rand.NewSource(3))

	var saved *resultSavedMsg
	for steps := 0; m.Snapshot().GameState == core.InGame; steps++ {
		require.Less(t, steps, 20000, "game did not finish")
		for _, k := range nextKeys(t, m.Snapshot(), rng) {
			var cmd tea.Cmd
			m, cmd = press(t, m, k)
			require.NoError(t, m.lastErr, "key %q in %s", k, m.Snapshot().TurnState)
			if cmd != nil && m.Snapshot().GameState == core.EndGame {
				msg, ok := cmd().(resultSavedMsg)
				require.True(t, ok)
				saved = &msg
			}
		}
	}

	require.NotNil(t, saved, "finishing a game should save it")
	require.NoError(t, saved.err)

	next, _ := m.Update(*saved)
	m = next.(TableModel)
	assert.Equal(t, "Result saved.", m.notice)

	s := m.Snapshot()
	got, err := store.ResultByID(saved.id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, s.RoundWinner, got.Winner)
	assert.Equal(t, [core.NumPlayers]string{"Ann", "Bob"}, got.Names)
	assert.Equal(t, string(s.EndReason), got.EndReason)
	assert.Equal(t, s.Seed, got.Seed)
	assert.True(t, strings.Contains(strings.Join(m.events.Lines(), "\n"), "game over"))

	// Continue twice: back to the idle table, then a fresh deal.
	m, _ = press(t, m, "enter")
	assert.Equal(t, core.Initialising, m.Snapshot().GameState)
	m, _ = press(t, m, "enter")
	assert.Equal(t, core.InGame, m.Snapshot().GameState)
}
