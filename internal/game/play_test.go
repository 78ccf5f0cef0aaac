package game

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cuprace/internal/core"
)

// driver plays random legal actions for whichever player is current.
type driver struct {
	rng *rand.Rand
}

func newDriver(seed int64) *driver {
	return &driver{rng: rand.New(rand.NewSource(seed))}
}

// step performs one complete player action.
func (d *driver) step(g *Controller) error {
	p := g.CurrentPlayer()
	switch g.TurnState() {
	case core.StartingPlayerTurn, core.EndingPlayerTurn:
		if claims := g.economy.ClaimableColors(p); len(claims) > 0 && d.rng.Intn(2) == 0 {
			return g.ClaimCup(claims[d.rng.Intn(len(claims))])
		}
		return g.ContinueTurn()

	case core.FinishingRace, core.FinishingGame:
		return g.ContinueTurn()

	case core.PickCardFromHand:
		type play struct{ index, race int }
		var plays []play
		for i, card := range g.hands[p] {
			for ri, r := range g.races {
				if r.CanPlayerPlayCard(p, card) {
					plays = append(plays, play{i, ri})
				}
			}
		}
		if len(plays) == 0 {
			return fmt.Errorf("%s has no legal play in %s", p, g.TurnState())
		}
		pick := plays[d.rng.Intn(len(plays))]
		if err := g.SelectHandCard(p, pick.index); err != nil {
			return err
		}
		return g.PlaySelectedCardOnRace(pick.race)

	case core.PlayCardOnRace:
		card := g.hands[p][g.selected[0]]
		for ri, r := range g.races {
			if r.CanPlayerPlayCard(p, card) {
				return g.PlaySelectedCardOnRace(ri)
			}
		}
		return g.DeselectHandCard(p, g.selected[0])

	case core.PickCardsFromHandToDiscard:
		for _, i := range d.rng.Perm(core.HandSize)[:d.rng.Intn(core.MaxDiscard+1)] {
			if err := g.SelectHandCard(p, i); err != nil {
				return err
			}
		}
		return g.ConfirmDiscardSelection()
	}
	return fmt.Errorf("unexpected turn state %s", g.TurnState())
}

// playOut drives a game to its end, checking invariants after every action.
func playOut(t *testing.T, g *Controller, d *driver) int {
	t.Helper()
	steps := 0
	for g.GameState() == core.InGame {
		require.Less(t, steps, 20000, "game did not finish")
		require.NoError(t, d.step(g), "step %d", steps)
		require.NoError(t, g.CheckInvariants(), "step %d in %s", steps, g.TurnState())
		steps++
	}
	return steps
}

func TestRandomGamesKeepInvariants(t *testing.T) {
	for seed := int64(1); seed <= 30; seed++ {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			g, events := newTestGame(t, seed)
			playOut(t, g, newDriver(seed))

			require.Equal(t, core.EndGame, g.GameState())
			require.Equal(t, core.FinishingGame, g.TurnState())
			require.Len(t, events.finished, 1)
			summary := events.finished[0]
			assert.Equal(t, g.RoundWinner(), summary.Winner)
			assert.Positive(t, summary.Races)

			switch summary.Reason {
			case EndReasonCups:
				require.True(t, summary.Winner.Valid())
				assert.GreaterOrEqual(t, len(summary.Cups[summary.Winner]), core.CupsToWin)
			case EndReasonExhausted:
				assert.Equal(t, g.leaderByCups(), summary.Winner)
				assert.True(t, g.tableExhausted())
			default:
				t.Fatalf("unexpected end reason %q", summary.Reason)
			}

			// Every cup was awarded at most once.
			owned := make(map[core.Color]core.Player)
			for _, ev := range events.cups {
				_, dup := owned[ev.Color]
				require.False(t, dup, "%s cup awarded twice", ev.Color)
				owned[ev.Color] = ev.Player
				assert.Equal(t, ev.Player, g.economy.CupOwner(ev.Color))
			}
		})
	}
}

func TestSameSeedSameGame(t *testing.T) {
	run := func() Snapshot {
		g, _ := newTestGame(t, 99)
		playOut(t, g, newDriver(99))
		return g.Snapshot()
	}
	assert.Equal(t, run(), run())
}

func TestNextGameUsesFreshSeed(t *testing.T) {
	g, _ := newTestGame(t, 11)
	playOut(t, g, newDriver(11))
	require.NoError(t, g.ContinueTurn())
	require.Equal(t, core.Initialising, g.GameState())

	g.NewGame()
	second := g.Snapshot().Seed
	assert.NotEqual(t, int64(11), second)
	require.NoError(t, g.CheckInvariants())

	other, _ := newTestGame(t, 11)
	other.NewGame()
	assert.Equal(t, second, other.Snapshot().Seed, "seed sequence is reproducible")
}
