package game

import (
	"time"

	"github.com/vovakirdan/cuprace/internal/core"
)

// Listener receives fire-and-forget notifications from the rules engine.
// Implementations must not call back into the Controller.
type Listener interface {
	StatusChanged(msg string)
	CubeRevealed(race, index int, c core.Color)
	CardPlayed(race int, p core.Player, slot int, card core.Card)
	RaceStateChanged(race int, s core.RaceState)
	PlayerCubeCountChanged(p core.Player, c core.Color, count int)
	WildcardCountChanged(p core.Player, count int)
	CupAwarded(p core.Player, c core.Color)
	HandCardChanged(p core.Player, index int, card core.Card)
	GameFinished(summary Summary)
}

// EndReason describes why a game ended.
type EndReason string

const (
	EndReasonCups      EndReason = "cups"      // A player collected enough cups
	EndReasonExhausted EndReason = "exhausted" // No race can be refilled from the bag
)

// Summary describes a finished game. Delivered once per game.
type Summary struct {
	Winner    core.Player // Unknown on a draw
	Reason    EndReason
	Cups      [core.NumPlayers][]core.Color
	Races     int // Races completed
	Turns     int
	Seed      int64
	StartedAt time.Time
	EndedAt   time.Time
}

// NopListener ignores every notification. Embed it to implement only a subset.
type NopListener struct{}

func (NopListener) StatusChanged(string)                                {}
func (NopListener) CubeRevealed(int, int, core.Color)                   {}
func (NopListener) CardPlayed(int, core.Player, int, core.Card)         {}
func (NopListener) RaceStateChanged(int, core.RaceState)                {}
func (NopListener) PlayerCubeCountChanged(core.Player, core.Color, int) {}
func (NopListener) WildcardCountChanged(core.Player, int)               {}
func (NopListener) CupAwarded(core.Player, core.Color)                  {}
func (NopListener) HandCardChanged(core.Player, int, core.Card)         {}
func (NopListener) GameFinished(Summary)                                {}

var _ Listener = NopListener{}
