package game

import (
	"github.com/vovakirdan/cuprace/internal/core"
)

// RaceHost is the capability a race needs from the game that owns it.
type RaceHost interface {
	// CubesInBag returns how many cubes are left to reveal.
	CubesInBag() int
	// DrawFromBag takes the next cube out of the bag.
	DrawFromBag() (core.Color, error)
	// AddCubeToPlayer awards one raw cube to a player.
	AddCubeToPlayer(p core.Player, c core.Color)
	// DiscardCard returns a played card to the discard pile.
	DiscardCard(card core.Card)
	// RaceFinished is called once a race has a winner and has paid out.
	RaceFinished(r *Race)
}

// RaceResult is the outcome of the last completed run of a race.
type RaceResult struct {
	State  core.RaceState // Scoring rule the race was decided under
	Winner core.Player
	Scores [core.NumPlayers]int
	Played [core.NumPlayers][]core.Card
	Cubes  []core.Color
}

// Race is one race slot. It is created once and restarted for every run.
type Race struct {
	slot     int
	numCubes int
	state    core.RaceState
	winner   core.Player

	revealed    []core.Color
	played      [core.NumPlayers][core.MaxRaceCubes]core.Card
	playedCount [core.NumPlayers]int
	remaining   [core.NumPlayers][core.NumColors]int

	last *RaceResult

	host   RaceHost
	events Listener
}

// NewRace creates a race for the given slot revealing numCubes cubes per run.
func NewRace(slot, numCubes int, host RaceHost, events Listener) *Race {
	if events == nil {
		events = NopListener{}
	}
	numCubes = max(1, min(numCubes, core.MaxRaceCubes))
	return &Race{
		slot:     slot,
		numCubes: numCubes,
		state:    core.Finished,
		winner:   core.Unknown,
		host:     host,
		events:   events,
	}
}

// Slot returns the race slot index.
func (r *Race) Slot() int { return r.slot }

// NumCubes returns the number of cubes revealed per run.
func (r *Race) NumCubes() int { return r.numCubes }

// State returns the current scoring rule or Finished.
func (r *Race) State() core.RaceState { return r.state }

// Winner returns the winner of the current run, Unknown until resolved.
func (r *Race) Winner() core.Player { return r.winner }

// LastResult returns the outcome of the most recent completed run, if any.
func (r *Race) LastResult() *RaceResult { return r.last }

// Revealed returns the cubes revealed for the current run.
func (r *Race) Revealed() []core.Color {
	out := make([]core.Color, len(r.revealed))
	copy(out, r.revealed)
	return out
}

// Played returns the cards a player has played into this run, in slot order.
func (r *Race) Played(p core.Player) []core.Card {
	i := p.Index()
	if i < 0 {
		return nil
	}
	out := make([]core.Card, r.playedCount[i])
	copy(out, r.played[i][:r.playedCount[i]])
	return out
}

// PlayedCount returns how many cards a player has played into this run.
func (r *Race) PlayedCount(p core.Player) int {
	i := p.Index()
	if i < 0 {
		return 0
	}
	return r.playedCount[i]
}

// Remaining returns how many more cards of a color a player may still play.
func (r *Race) Remaining(p core.Player, c core.Color) int {
	pi, ci := p.Index(), c.Index()
	if pi < 0 || ci < 0 {
		return 0
	}
	return r.remaining[pi][ci]
}

// NewGame sets the opening scoring rule from the race size and starts a run.
func (r *Race) NewGame() {
	r.last = nil
	if r.numCubes%2 == 1 {
		r.state = core.Lowest
	} else {
		r.state = core.Highest
	}
	r.events.RaceStateChanged(r.slot, r.state)
	r.StartRace()
}

// StartRace clears the race and reveals a fresh set of cubes.
// If the bag cannot fill the race it becomes Finished for good.
func (r *Race) StartRace() {
	r.revealed = r.revealed[:0]
	r.winner = core.Unknown
	for pi := range core.NumPlayers {
		r.playedCount[pi] = 0
		for s := range r.played[pi] {
			r.played[pi][s] = core.NoCard
		}
		for ci := range core.NumColors {
			r.remaining[pi][ci] = 0
		}
	}

	if r.host.CubesInBag() < r.numCubes {
		if r.state != core.Finished {
			r.state = core.Finished
			r.events.RaceStateChanged(r.slot, r.state)
		}
		return
	}

	for i := range r.numCubes {
		c, err := r.host.DrawFromBag()
		if err != nil {
			// Host already reported the breach; leave the race unplayable.
			r.state = core.Finished
			r.events.RaceStateChanged(r.slot, r.state)
			return
		}
		r.revealed = append(r.revealed, c)
		for pi := range core.NumPlayers {
			r.remaining[pi][c]++
		}
		r.events.CubeRevealed(r.slot, i, c)
	}
}

// CanPlayCard reports whether any player may still play a card of this color.
func (r *Race) CanPlayCard(card core.Card) bool {
	if r.state == core.Finished || !card.Color.Valid() {
		return false
	}
	for pi := range core.NumPlayers {
		if r.remaining[pi][card.Color] > 0 {
			return true
		}
	}
	return false
}

// CanPlayerPlayCard reports whether p could play card here right now.
func (r *Race) CanPlayerPlayCard(p core.Player, card core.Card) bool {
	pi := p.Index()
	if r.state == core.Finished || pi < 0 || !card.Color.Valid() {
		return false
	}
	return r.playedCount[pi] < r.numCubes && r.remaining[pi][card.Color] > 0
}

// PlayCard plays a card for actor. It returns false and changes nothing when
// the play is illegal. When the play completes the race it is scored
// immediately, with ties going to tieBreak.
func (r *Race) PlayCard(actor core.Player, card core.Card, tieBreak core.Player) bool {
	if !r.CanPlayerPlayCard(actor, card) {
		return false
	}
	pi := actor.Index()
	r.remaining[pi][card.Color]--
	slot := r.playedCount[pi]
	r.played[pi][slot] = card
	r.playedCount[pi]++
	r.events.CardPlayed(r.slot, actor, slot, card)

	if r.complete() {
		r.finishRace(tieBreak)
	}
	return true
}

func (r *Race) complete() bool {
	for pi := range core.NumPlayers {
		if r.playedCount[pi] != r.numCubes {
			return false
		}
	}
	return true
}

// computeWinner picks the winner for the current scoring rule. Only the rule
// in force is evaluated, and a tie goes to tieBreak.
func (r *Race) computeWinner(scores [core.NumPlayers]int, tieBreak core.Player) core.Player {
	left, right := scores[core.Left], scores[core.Right]
	switch r.state {
	case core.Lowest:
		switch {
		case left < right:
			return core.Left
		case right < left:
			return core.Right
		}
	case core.Highest:
		switch {
		case left > right:
			return core.Left
		case right > left:
			return core.Right
		}
	default:
		return core.Unknown
	}
	return tieBreak
}

// finishRace scores the run, pays the winner one cube per card they played,
// returns every played card to the discard pile and flips the scoring rule.
func (r *Race) finishRace(tieBreak core.Player) {
	var scores [core.NumPlayers]int
	result := &RaceResult{State: r.state, Cubes: r.Revealed()}
	for pi := range core.NumPlayers {
		cards := r.played[pi][:r.playedCount[pi]]
		scores[pi] = core.Sum(cards)
		result.Played[pi] = append([]core.Card(nil), cards...)
	}
	result.Scores = scores

	r.winner = r.computeWinner(scores, tieBreak)
	result.Winner = r.winner

	if wi := r.winner.Index(); wi >= 0 {
		for _, card := range r.played[wi][:r.playedCount[wi]] {
			r.host.AddCubeToPlayer(r.winner, card.Color)
		}
	}
	for pi := range core.NumPlayers {
		for s := range r.playedCount[pi] {
			r.host.DiscardCard(r.played[pi][s])
			r.played[pi][s] = core.NoCard
		}
		r.playedCount[pi] = 0
	}
	// The revealed cubes now belong to the winner.
	r.revealed = r.revealed[:0]
	r.last = result

	r.state = r.state.Toggle()
	r.events.RaceStateChanged(r.slot, r.state)
	r.host.RaceFinished(r)
}

// heldCubes returns the cubes revealed and not yet paid out.
func (r *Race) heldCubes() int {
	return len(r.revealed)
}

// heldCards returns the number of cards sitting in played slots.
func (r *Race) heldCards() int {
	n := 0
	for pi := range core.NumPlayers {
		n += r.playedCount[pi]
	}
	return n
}
