package game

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/cuprace/internal/core"
)

// CheckInvariants verifies the conservation and ownership rules of the table.
// It returns nil when everything holds, or every breach joined together.
func (g *Controller) CheckInvariants() error {
	if g.gameState == core.Initialising || g.gameState == core.NewGame {
		return nil
	}

	var errs []error
	breach := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...)))
	}

	cubes := g.bag.Remaining() + g.economy.heldCubes()
	for _, r := range g.races {
		cubes += r.heldCubes()
	}
	if cubes != core.TotalCubes {
		breach("cube count %d, want %d", cubes, core.TotalCubes)
	}

	cards := g.deck.DrawPileSize() + g.deck.DiscardPileSize()
	for _, r := range g.races {
		cards += r.heldCards()
	}
	for _, p := range core.Players() {
		for i, card := range g.hands[p] {
			if card.IsZero() {
				breach("%s hand slot %d is empty", p, i)
				continue
			}
			cards++
		}
	}
	if cards != g.deck.FullSize() {
		breach("card count %d, want %d", cards, g.deck.FullSize())
	}

	for _, r := range g.races {
		for _, p := range core.Players() {
			if n := r.PlayedCount(p); n > r.NumCubes() {
				breach("race %d: %s played %d cards into %d slots", r.Slot(), p, n, r.NumCubes())
			}
			for _, c := range core.Colors() {
				if n := r.Remaining(p, c); n < 0 {
					breach("race %d: %s has %d %s left to play", r.Slot(), p, n, c)
				}
			}
		}
	}

	// Won colors convert to wildcards at quiescent points. Mid-resolution the
	// winner's cubes are still raw until the economy update runs.
	if g.turnState != core.FinishingRace {
		for _, c := range core.Colors() {
			if g.economy.CupOwner(c) == core.Unknown {
				continue
			}
			for _, p := range core.Players() {
				if raw := g.economy.Raw(p, c); raw >= core.WildcardRate {
					breach("%s holds %d raw %s cubes of a won color", p, raw, c)
				}
			}
		}
		for _, p := range core.Players() {
			for _, c := range core.Colors() {
				if g.economy.CupOwner(c) != core.Unknown {
					continue
				}
				if raw := g.economy.Raw(p, c); raw >= core.Threshold(c) {
					breach("%s holds %d %s cubes without the cup", p, raw, c)
				}
			}
		}
	}

	if w := g.economy.Winner(); w != core.Unknown && g.gameState != core.EndGame {
		breach("%s has %d cups but the game is still running", w, len(g.economy.Cups(w)))
	}

	return errors.Join(errs...)
}
