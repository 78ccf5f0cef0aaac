package game

import (
	"github.com/vovakirdan/cuprace/internal/core"
)

type cupEvent struct {
	Player core.Player
	Color  core.Color
}

type raceStateEvent struct {
	Race  int
	State core.RaceState
}

// recorder captures notifications for assertions.
type recorder struct {
	NopListener

	statuses   []string
	reveals    int
	plays      int
	raceStates []raceStateEvent
	cups       []cupEvent
	wildcards  [core.NumPlayers]int
	handCards  int
	finished   []Summary
}

func (r *recorder) StatusChanged(msg string) { r.statuses = append(r.statuses, msg) }

func (r *recorder) CubeRevealed(int, int, core.Color) { r.reveals++ }

func (r *recorder) CardPlayed(int, core.Player, int, core.Card) { r.plays++ }

func (r *recorder) RaceStateChanged(race int, s core.RaceState) {
	r.raceStates = append(r.raceStates, raceStateEvent{Race: race, State: s})
}

func (r *recorder) WildcardCountChanged(p core.Player, count int) { r.wildcards[p] = count }

func (r *recorder) CupAwarded(p core.Player, c core.Color) {
	r.cups = append(r.cups, cupEvent{Player: p, Color: c})
}

func (r *recorder) HandCardChanged(core.Player, int, core.Card) { r.handCards++ }

func (r *recorder) GameFinished(s Summary) { r.finished = append(r.finished, s) }

func (r *recorder) lastStatus() string {
	if len(r.statuses) == 0 {
		return ""
	}
	return r.statuses[len(r.statuses)-1]
}

// fakeHost is a RaceHost with a scripted cube sequence.
type fakeHost struct {
	cubes     []core.Color // drawn front to back
	awarded   []cupEvent
	discarded []core.Card
	finished  []*Race
}

func (h *fakeHost) CubesInBag() int { return len(h.cubes) }

func (h *fakeHost) DrawFromBag() (core.Color, error) {
	if len(h.cubes) == 0 {
		return core.NoColor, ErrBagEmpty
	}
	c := h.cubes[0]
	h.cubes = h.cubes[1:]
	return c, nil
}

func (h *fakeHost) AddCubeToPlayer(p core.Player, c core.Color) {
	h.awarded = append(h.awarded, cupEvent{Player: p, Color: c})
}

func (h *fakeHost) DiscardCard(card core.Card) { h.discarded = append(h.discarded, card) }

func (h *fakeHost) RaceFinished(r *Race) { h.finished = append(h.finished, r) }
