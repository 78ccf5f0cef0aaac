package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cuprace/internal/core"
)

var testClock = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

func newTestGame(t *testing.T, seed int64) (*Controller, *recorder) {
	t.Helper()
	events := &recorder{}
	g := New(Options{
		Seed:     seed,
		Names:    [core.NumPlayers]string{"Ann", "Bob"},
		Listener: events,
		Strict:   true,
		Now:      testClock,
	})
	g.NewGame()
	return g, events
}

// legalPlay returns the first hand index and race the current player can use.
func legalPlay(g *Controller) (int, int, bool) {
	p := g.CurrentPlayer()
	for i, card := range g.hands[p] {
		for ri, r := range g.races {
			if r.CanPlayerPlayCard(p, card) {
				return i, ri, true
			}
		}
	}
	return 0, 0, false
}

// playPhaseGame returns a game whose current player is picking a card to play.
func playPhaseGame(t *testing.T) (*Controller, *recorder) {
	t.Helper()
	for seed := int64(1); seed < 200; seed++ {
		g, events := newTestGame(t, seed)
		require.NoError(t, g.ContinueTurn())
		if g.TurnState() == core.PickCardFromHand {
			return g, events
		}
	}
	t.Fatal("no seed opens with a legal play")
	return nil, nil
}

func quiet(s Snapshot) Snapshot {
	s.Status = ""
	return s
}

func TestNewGameDealsTable(t *testing.T) {
	g, events := newTestGame(t, 1)

	assert.Equal(t, core.InGame, g.GameState())
	assert.Equal(t, core.StartingPlayerTurn, g.TurnState())
	assert.True(t, g.CurrentPlayer().Valid())
	require.NoError(t, g.CheckInvariants())

	s := g.Snapshot()
	assert.Equal(t, core.TotalCubes-10, s.BagRemaining)
	assert.Equal(t, core.FullDeckSize-2*core.HandSize, s.DrawPile)
	assert.Zero(t, s.DiscardPile)
	assert.False(t, s.HandRevealed)
	assert.Equal(t, 1, s.Turn)
	assert.Equal(t, int64(1), s.Seed)
	assert.Equal(t, "Ann", s.Players[core.Left].Name)
	assert.Equal(t, 10, events.reveals)

	expected := []core.RaceState{core.Lowest, core.Highest, core.Lowest, core.Highest}
	for i, rs := range s.Races {
		assert.Equal(t, expected[i], rs.State, "race %d", i)
		assert.Len(t, rs.Revealed, i+1)
	}
	for _, p := range core.Players() {
		for i, card := range s.Players[p].Hand {
			assert.False(t, card.IsZero(), "%s slot %d", p, i)
		}
	}
}

func TestCommandsRequireGame(t *testing.T) {
	g := New(Options{})
	require.Equal(t, core.Initialising, g.GameState())

	require.ErrorIs(t, g.ContinueTurn(), ErrNoGame)
	require.ErrorIs(t, g.SelectHandCard(core.Left, 0), ErrNoGame)
	require.ErrorIs(t, g.DeselectHandCard(core.Left, 0), ErrNoGame)
	require.ErrorIs(t, g.PlaySelectedCardOnRace(0), ErrNoGame)
	require.ErrorIs(t, g.ConfirmDiscardSelection(), ErrNoGame)
	require.ErrorIs(t, g.ClaimCup(core.Red), ErrNoGame)
	assert.Contains(t, g.Status(), "no game in progress")
	assert.NoError(t, g.CheckInvariants())
}

func TestRejectedActionsChangeNothing(t *testing.T) {
	g, _ := newTestGame(t, 2)
	p := g.CurrentPlayer()
	before := quiet(g.Snapshot())

	tests := []struct {
		name     string
		action   func() error
		expected error
	}{
		{"select before reveal", func() error { return g.SelectHandCard(p, 0) }, ErrWrongPhase},
		{"select for other player", func() error { return g.SelectHandCard(p.Other(), 0) }, ErrNotYourTurn},
		{"select out of range", func() error { return g.SelectHandCard(p, core.HandSize) }, ErrHandIndex},
		{"select negative", func() error { return g.SelectHandCard(p, -1) }, ErrHandIndex},
		{"deselect before reveal", func() error { return g.DeselectHandCard(p, 0) }, ErrWrongPhase},
		{"play before reveal", func() error { return g.PlaySelectedCardOnRace(0) }, ErrWrongPhase},
		{"discard before reveal", func() error { return g.ConfirmDiscardSelection() }, ErrWrongPhase},
		{"claim unknown color", func() error { return g.ClaimCup(core.NoColor) }, ErrInvalidColor},
		{"claim without cubes", func() error { return g.ClaimCup(core.Red) }, ErrCupNotClaimable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.action()
			require.ErrorIs(t, err, tc.expected)
			assert.Equal(t, err.Error(), g.Status())
			assert.Equal(t, before, quiet(g.Snapshot()))
		})
	}
}

func TestContinueRevealsHand(t *testing.T) {
	g, events := newTestGame(t, 3)
	handEvents := events.handCards

	require.NoError(t, g.ContinueTurn())
	s := g.Snapshot()
	assert.True(t, s.HandRevealed)
	assert.Contains(t, []core.TurnState{core.PickCardFromHand, core.PickCardsFromHandToDiscard}, s.TurnState)
	assert.Equal(t, handEvents+core.HandSize, events.handCards)

	_, _, ok := legalPlay(g)
	assert.Equal(t, ok, s.TurnState == core.PickCardFromHand)
	assert.Equal(t, core.MaxSelect(s.TurnState), s.MaxSelect)
}

func TestSelectAndDeselect(t *testing.T) {
	g, _ := playPhaseGame(t)
	p := g.CurrentPlayer()
	idx, _, ok := legalPlay(g)
	require.True(t, ok)
	other := (idx + 1) % core.HandSize

	require.NoError(t, g.SelectHandCard(p, idx))
	assert.Equal(t, core.PlayCardOnRace, g.TurnState())
	assert.Equal(t, []int{idx}, g.Snapshot().Selected)

	// Selecting the selected card again toggles it off.
	require.NoError(t, g.SelectHandCard(p, idx))
	assert.Equal(t, core.PickCardFromHand, g.TurnState())
	assert.Empty(t, g.Snapshot().Selected)

	require.NoError(t, g.SelectHandCard(p, idx))
	require.NoError(t, g.SelectHandCard(p, other))
	assert.Equal(t, core.PlayCardOnRace, g.TurnState())
	assert.Equal(t, []int{other}, g.Snapshot().Selected)

	require.ErrorIs(t, g.DeselectHandCard(p, idx), ErrNotSelected)
	require.NoError(t, g.DeselectHandCard(p, other))
	assert.Equal(t, core.PickCardFromHand, g.TurnState())
	assert.Empty(t, g.Snapshot().Selected)
}

func TestPlayCardOnRace(t *testing.T) {
	g, events := playPhaseGame(t)
	p := g.CurrentPlayer()
	idx, race, ok := legalPlay(g)
	require.True(t, ok)
	card := g.hands[p][idx]

	require.ErrorIs(t, g.PlaySelectedCardOnRace(race), ErrWrongPhase, "nothing selected yet")
	require.NoError(t, g.SelectHandCard(p, idx))

	for ri, r := range g.races {
		if r.CanPlayerPlayCard(p, card) {
			continue
		}
		before := quiet(g.Snapshot())
		require.ErrorIs(t, g.PlaySelectedCardOnRace(ri), ErrCardRejected)
		assert.Equal(t, before, quiet(g.Snapshot()), "rejected play on race %d", ri)
	}
	require.ErrorIs(t, g.PlaySelectedCardOnRace(core.NumRaces), ErrRaceIndex)
	require.Equal(t, core.PlayCardOnRace, g.TurnState())

	plays := events.plays
	require.NoError(t, g.PlaySelectedCardOnRace(race))
	assert.Equal(t, plays+1, events.plays)
	assert.Equal(t, []core.Card{card}, g.Race(race).Played(p))
	assert.False(t, g.hands[p][idx].IsZero(), "slot refilled")
	assert.NotEqual(t, card, g.hands[p][idx])

	// The opponent has not played, so no race can complete on the first play.
	assert.Equal(t, core.StartingPlayerTurn, g.TurnState())
	assert.Equal(t, p.Other(), g.CurrentPlayer())
	assert.Equal(t, 2, g.Snapshot().Turn)
	assert.Empty(t, g.Snapshot().Selected)
	require.NoError(t, g.CheckInvariants())
}

func TestDiscardPasses(t *testing.T) {
	g, _ := newTestGame(t, 4)
	require.NoError(t, g.ContinueTurn())
	p := g.CurrentPlayer()
	g.turnState = core.PickCardsFromHandToDiscard
	g.selected = nil

	for i := range core.MaxDiscard {
		require.NoError(t, g.SelectHandCard(p, i))
	}
	assert.Equal(t, []int{3, 2, 1, 0}, g.Snapshot().Selected, "newest first")
	require.ErrorIs(t, g.SelectHandCard(p, 4), ErrSelectionLimit)
	assert.Equal(t, []int{3, 2, 1, 0}, g.Snapshot().Selected)

	require.NoError(t, g.SelectHandCard(p, 1), "toggle off")
	assert.Equal(t, []int{3, 2, 0}, g.Snapshot().Selected)
	require.NoError(t, g.DeselectHandCard(p, 3))
	require.NoError(t, g.SelectHandCard(p, 5))
	assert.Equal(t, []int{5, 2, 0}, g.Snapshot().Selected)

	discarded := []core.Card{g.hands[p][5], g.hands[p][2], g.hands[p][0]}
	drawPile := g.deck.DrawPileSize()
	require.NoError(t, g.ConfirmDiscardSelection())

	s := g.Snapshot()
	assert.True(t, s.DiscardPassUsed)
	assert.Equal(t, 3, s.DiscardPile)
	assert.Equal(t, drawPile-3, s.DrawPile)
	assert.ElementsMatch(t, discarded, g.deck.discard)
	assert.Contains(t, []core.TurnState{core.PickCardFromHand, core.PickCardsFromHandToDiscard}, s.TurnState)
	assert.Equal(t, p, g.CurrentPlayer())
	require.NoError(t, g.CheckInvariants())

	// A second pass ends the action even with nothing selected.
	g.turnState = core.PickCardsFromHandToDiscard
	g.selected = nil
	require.NoError(t, g.ConfirmDiscardSelection())
	assert.Equal(t, core.StartingPlayerTurn, g.TurnState())
	assert.Equal(t, p.Other(), g.CurrentPlayer())
	assert.False(t, g.Snapshot().DiscardPassUsed)
	require.NoError(t, g.CheckInvariants())
}

// giveCup hands p a cup outright and optionally some wildcards.
func giveCup(t *testing.T, g *Controller, p core.Player, c core.Color, wildcards int) {
	t.Helper()
	giveCubes(t, g.economy, p, c, core.Threshold(c)+wildcards*core.WildcardRate)
	require.NoError(t, g.economy.Update())
	require.Equal(t, p, g.economy.CupOwner(c))
}

func TestClaimCupDuringTurn(t *testing.T) {
	g, events := newTestGame(t, 5)
	p := g.CurrentPlayer()
	giveCup(t, g, p, core.Grey, 2)
	giveCubes(t, g.economy, p, core.Blue, 2)

	require.NoError(t, g.ClaimCup(core.Blue))
	assert.Equal(t, p, g.economy.CupOwner(core.Blue))
	assert.Zero(t, g.economy.Wildcards(p))
	assert.Contains(t, g.Status(), "claims the Blue cup")
	assert.Contains(t, events.cups, cupEvent{p, core.Blue})
	assert.Equal(t, core.StartingPlayerTurn, g.TurnState())

	require.ErrorIs(t, g.ClaimCup(core.Grey), ErrCupOwned)
	require.ErrorIs(t, g.ClaimCup(core.Red), ErrCupNotClaimable)
}

func TestClaimCupWrongPhase(t *testing.T) {
	g, _ := playPhaseGame(t)
	p := g.CurrentPlayer()
	giveCup(t, g, p, core.Grey, 2)
	giveCubes(t, g.economy, p, core.Blue, 2)

	idx, _, ok := legalPlay(g)
	require.True(t, ok)
	require.NoError(t, g.SelectHandCard(p, idx))
	require.ErrorIs(t, g.ClaimCup(core.Blue), ErrWrongPhase)
	assert.Equal(t, core.Unknown, g.economy.CupOwner(core.Blue))
}

func TestClaimingThirdCupEndsGame(t *testing.T) {
	g, events := newTestGame(t, 6)
	p := g.CurrentPlayer()
	giveCup(t, g, p, core.Grey, 2)
	giveCup(t, g, p, core.Blue, 0)
	giveCubes(t, g.economy, p, core.Green, core.Threshold(core.Green)-2)

	require.NoError(t, g.ClaimCup(core.Green))
	assert.True(t, g.HasPlayerWon(p))
	assert.False(t, g.HasPlayerWon(p.Other()))
	assert.Equal(t, core.EndGame, g.GameState())
	assert.Equal(t, core.FinishingGame, g.TurnState())
	assert.Equal(t, p, g.RoundWinner())

	require.Len(t, events.finished, 1)
	summary := events.finished[0]
	assert.Equal(t, p, summary.Winner)
	assert.Equal(t, EndReasonCups, summary.Reason)
	assert.Equal(t, []core.Color{core.Grey, core.Blue, core.Green}, summary.Cups[p])
	assert.Equal(t, int64(6), summary.Seed)
	assert.Equal(t, testClock(), summary.EndedAt)

	require.ErrorIs(t, g.SelectHandCard(p, 0), ErrNoGame)
	require.NoError(t, g.ContinueTurn())
	assert.Equal(t, core.Initialising, g.GameState())
	require.ErrorIs(t, g.ContinueTurn(), ErrNoGame)
}

func TestEndingPlayerTurnOffersClaim(t *testing.T) {
	g, _ := playPhaseGame(t)
	p := g.CurrentPlayer()
	other := p.Other()
	giveCup(t, g, other, core.Grey, 2)
	giveCubes(t, g.economy, other, core.Blue, 2)

	idx, race, ok := legalPlay(g)
	require.True(t, ok)
	require.NoError(t, g.SelectHandCard(p, idx))
	require.NoError(t, g.PlaySelectedCardOnRace(race))
	require.Equal(t, core.EndingPlayerTurn, g.TurnState())
	assert.Equal(t, p, g.CurrentPlayer())

	// Only the current player may claim.
	require.ErrorIs(t, g.ClaimCup(core.Blue), ErrCupNotClaimable)

	require.NoError(t, g.ContinueTurn())
	require.Equal(t, core.StartingPlayerTurn, g.TurnState())
	require.Equal(t, other, g.CurrentPlayer())
	require.NoError(t, g.ClaimCup(core.Blue))
	assert.Equal(t, other, g.economy.CupOwner(core.Blue))
}

func TestRaceWinnerGoesAgain(t *testing.T) {
	for seed := int64(1); seed < 20; seed++ {
		g, _ := newTestGame(t, seed)
		d := newDriver(seed)
		for range 2000 {
			if g.TurnState() == core.FinishingRace || g.GameState() != core.InGame {
				break
			}
			require.NoError(t, d.step(g))
		}
		if g.TurnState() != core.FinishingRace {
			continue
		}

		winner := g.Snapshot().LastRaceWinner
		require.True(t, winner.Valid())
		require.NoError(t, g.ContinueTurn())
		if g.TurnState() == core.EndingPlayerTurn {
			require.NoError(t, g.ContinueTurn())
		}
		if g.GameState() != core.InGame {
			continue
		}
		assert.Equal(t, core.StartingPlayerTurn, g.TurnState())
		assert.Equal(t, winner, g.CurrentPlayer())
		return
	}
	t.Fatal("no race finished")
}

func TestStalledRaces(t *testing.T) {
	g, _ := newTestGame(t, 7)
	for _, r := range g.races {
		r.state = core.Lowest
		r.playedCount = [core.NumPlayers]int{}
		r.played = [core.NumPlayers][core.MaxRaceCubes]core.Card{}
		r.remaining = [core.NumPlayers][core.NumColors]int{}
	}
	grey := func(v int) core.Card { return core.NewCard(core.Grey, v) }

	// Race 2 holds two Grey cards and still needs Blue. Race 3 holds two
	// Grey cards and needs two more, which only exist once race 2 pays out.
	r2, r3 := g.races[2], g.races[3]
	r2.played[core.Left] = [core.MaxRaceCubes]core.Card{grey(7), grey(9)}
	r2.playedCount[core.Left] = 2
	r2.remaining[core.Left][core.Blue] = 1
	r2.remaining[core.Right][core.Blue] = 3

	r3.played[core.Left] = [core.MaxRaceCubes]core.Card{grey(3), grey(5)}
	r3.playedCount[core.Left] = 2
	r3.remaining[core.Left][core.Red] = 2
	r3.remaining[core.Right][core.Grey] = 2
	r3.remaining[core.Right][core.Red] = 2

	assert.Equal(t, [core.NumRaces]bool{}, g.stalledRaces())
	assert.False(t, g.tableExhausted())

	// If race 2 also needs Grey, neither can ever finish.
	r2.remaining[core.Right][core.Blue] = 1
	r2.remaining[core.Right][core.Grey] = 2
	assert.Equal(t, [core.NumRaces]bool{false, false, true, true}, g.stalledRaces())
	assert.False(t, g.tableExhausted(), "races 0 and 1 still run")

	g.races[0].state = core.Finished
	g.races[1].state = core.Finished
	assert.True(t, g.tableExhausted())
}
