package game

import (
	"github.com/vovakirdan/cuprace/internal/core"
)

// RaceSnapshot is a read-only view of one race slot.
type RaceSnapshot struct {
	Slot      int
	NumCubes  int
	State     core.RaceState
	Revealed  []core.Color
	Played    [core.NumPlayers][]core.Card
	Remaining [core.NumPlayers][core.NumColors]int
	Last      *RaceResult
}

// PlayerSnapshot is a read-only view of one player's holdings.
type PlayerSnapshot struct {
	Name      string
	Hand      [core.HandSize]core.Card
	Raw       [core.NumColors]int
	Wildcards int
	Cups      []core.Color
	Claimable []core.Color
}

// Snapshot captures the complete table state for rendering and tests.
type Snapshot struct {
	GameState       core.GameState
	TurnState       core.TurnState
	Current         core.Player
	LastRaceWinner  core.Player
	RoundWinner     core.Player
	EndReason       EndReason
	HandRevealed    bool
	Selected        []int // newest first
	MaxSelect       int
	DiscardPassUsed bool

	Players   [core.NumPlayers]PlayerSnapshot
	Races     [core.NumRaces]RaceSnapshot
	CupOwners [core.NumColors]core.Player

	BagRemaining int
	DrawPile     int
	DiscardPile  int

	Status   string
	Turn     int
	RacesRun int
	Seed     int64
}

// Snapshot returns the current table state.
func (g *Controller) Snapshot() Snapshot {
	s := Snapshot{
		GameState:       g.gameState,
		TurnState:       g.turnState,
		Current:         g.current,
		LastRaceWinner:  g.lastRaceWinner,
		RoundWinner:     g.roundWinner,
		EndReason:       g.endReason,
		HandRevealed:    g.handRevealed,
		Selected:        append([]int(nil), g.selected...),
		MaxSelect:       core.MaxSelect(g.turnState),
		DiscardPassUsed: g.discardPassUsed,
		BagRemaining:    g.bag.Remaining(),
		DrawPile:        g.deck.DrawPileSize(),
		DiscardPile:     g.deck.DiscardPileSize(),
		Status:          g.status,
		Turn:            g.turns,
		RacesRun:        g.racesRun,
		Seed:            g.seed,
	}

	for _, p := range core.Players() {
		ps := PlayerSnapshot{
			Name:      g.names[p],
			Hand:      g.hands[p],
			Wildcards: g.economy.Wildcards(p),
			Cups:      g.economy.Cups(p),
			Claimable: g.economy.ClaimableColors(p),
		}
		for _, c := range core.Colors() {
			ps.Raw[c] = g.economy.Raw(p, c)
		}
		s.Players[p] = ps
	}

	for i, r := range g.races {
		rs := RaceSnapshot{
			Slot:     r.Slot(),
			NumCubes: r.NumCubes(),
			State:    r.State(),
			Revealed: r.Revealed(),
			Last:     r.LastResult(),
		}
		for _, p := range core.Players() {
			rs.Played[p] = r.Played(p)
			for _, c := range core.Colors() {
				rs.Remaining[p][c] = r.Remaining(p, c)
			}
		}
		s.Races[i] = rs
	}

	for _, c := range core.Colors() {
		s.CupOwners[c] = g.economy.CupOwner(c)
	}
	return s
}

// IsSelected reports whether a hand index is selected.
func (s Snapshot) IsSelected(index int) bool {
	for _, i := range s.Selected {
		if i == index {
			return true
		}
	}
	return false
}
