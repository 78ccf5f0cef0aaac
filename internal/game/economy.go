package game

import (
	"fmt"

	"github.com/vovakirdan/cuprace/internal/core"
)

// Economy tracks every player's cubes, wildcards and cups.
type Economy struct {
	raw       [core.NumPlayers][core.NumColors]int
	wildcards [core.NumPlayers]int
	cupOwner  [core.NumColors]core.Player

	// Cube-equivalents locked into awarded cups (raw cubes spent plus
	// WildcardRate per wildcard spent).
	cupCubes int

	events Listener
}

// NewEconomy returns an empty economy.
func NewEconomy(events Listener) *Economy {
	if events == nil {
		events = NopListener{}
	}
	e := &Economy{events: events}
	e.Reset()
	return e
}

// Reset clears all counts and cup ownership.
func (e *Economy) Reset() {
	e.raw = [core.NumPlayers][core.NumColors]int{}
	e.wildcards = [core.NumPlayers]int{}
	for ci := range e.cupOwner {
		e.cupOwner[ci] = core.Unknown
	}
	e.cupCubes = 0
}

// Raw returns a player's raw cube count for a color.
func (e *Economy) Raw(p core.Player, c core.Color) int {
	pi, ci := p.Index(), c.Index()
	if pi < 0 || ci < 0 {
		return 0
	}
	return e.raw[pi][ci]
}

// Wildcards returns a player's wildcard count.
func (e *Economy) Wildcards(p core.Player) int {
	if pi := p.Index(); pi >= 0 {
		return e.wildcards[pi]
	}
	return 0
}

// CupOwner returns the owner of a color's cup, or Unknown.
func (e *Economy) CupOwner(c core.Color) core.Player {
	if !c.Valid() {
		return core.Unknown
	}
	return e.cupOwner[c]
}

// Cups returns the colors whose cups a player owns, in color order.
func (e *Economy) Cups(p core.Player) []core.Color {
	var cups []core.Color
	for _, c := range core.Colors() {
		if p.Valid() && e.cupOwner[c] == p {
			cups = append(cups, c)
		}
	}
	return cups
}

// AddCubeToPlayer awards one raw cube. Called once per winning card.
func (e *Economy) AddCubeToPlayer(p core.Player, c core.Color) error {
	pi, ci := p.Index(), c.Index()
	if pi < 0 {
		return fmt.Errorf("add cube: %w", ErrUnknownPlayer)
	}
	if ci < 0 {
		return fmt.Errorf("add cube: %w", ErrInvalidColor)
	}
	e.raw[pi][ci]++
	e.events.PlayerCubeCountChanged(p, c, e.raw[pi][ci])
	return nil
}

// Update awards every cup a player has reached on raw cubes alone, then
// converts raw cubes of won colors into wildcards. Automatic awards always
// happen before any wildcard claim can be considered.
func (e *Economy) Update() error {
	var errs error
	for _, p := range core.Players() {
		pi := p.Index()
		for _, c := range core.Colors() {
			if e.cupOwner[c] != core.Unknown {
				continue
			}
			threshold := core.Threshold(c)
			if e.raw[pi][c] < threshold {
				continue
			}
			if err := e.award(p, c); err != nil {
				errs = err
				continue
			}
			e.raw[pi][c] -= threshold
			e.cupCubes += threshold
			e.events.PlayerCubeCountChanged(p, c, e.raw[pi][c])
		}
	}
	e.convertWonColors()
	return errs
}

// convertWonColors turns raw cubes of won colors into wildcards, keeping the
// remainder as stranded raw cubes.
func (e *Economy) convertWonColors() {
	for _, c := range core.Colors() {
		if e.cupOwner[c] == core.Unknown {
			continue
		}
		for _, p := range core.Players() {
			pi := p.Index()
			n := e.raw[pi][c] / core.WildcardRate
			if n == 0 {
				continue
			}
			e.raw[pi][c] -= n * core.WildcardRate
			e.wildcards[pi] += n
			e.events.PlayerCubeCountChanged(p, c, e.raw[pi][c])
			e.events.WildcardCountChanged(p, e.wildcards[pi])
		}
	}
}

func (e *Economy) award(p core.Player, c core.Color) error {
	if owner := e.cupOwner[c]; owner != core.Unknown {
		return fmt.Errorf("%s cup to %s, already owned by %s: %w", c, p, owner, ErrCupDoubleAward)
	}
	e.cupOwner[c] = p
	e.events.CupAwarded(p, c)
	return nil
}

// WildcardsNeeded returns how many wildcards p must spend to claim c, and
// whether the claim is possible at all. Zero means raw cubes suffice.
func (e *Economy) WildcardsNeeded(p core.Player, c core.Color) (int, bool) {
	pi, ci := p.Index(), c.Index()
	if pi < 0 || ci < 0 || e.cupOwner[ci] != core.Unknown {
		return 0, false
	}
	need := max(0, core.Threshold(c)-e.raw[pi][ci])
	return need, need <= e.wildcards[pi]
}

// Claimable reports whether p can claim c right now using wildcards.
func (e *Economy) Claimable(p core.Player, c core.Color) bool {
	need, ok := e.WildcardsNeeded(p, c)
	return ok && need > 0
}

// ClaimableColors returns every color p could claim with wildcards.
func (e *Economy) ClaimableColors(p core.Player) []core.Color {
	var out []core.Color
	for _, c := range core.Colors() {
		if e.Claimable(p, c) {
			out = append(out, c)
		}
	}
	return out
}

// AnyClaimable reports whether some player could claim some cup.
func (e *Economy) AnyClaimable() bool {
	for _, p := range core.Players() {
		if len(e.ClaimableColors(p)) > 0 {
			return true
		}
	}
	return false
}

// ClaimCup spends wildcards to complete a cup. Rejected without any change
// when the cup is owned, when raw cubes alone already suffice, or when raw
// cubes plus wildcards fall short.
func (e *Economy) ClaimCup(p core.Player, c core.Color) error {
	if !p.Valid() {
		return ErrUnknownPlayer
	}
	if !c.Valid() {
		return ErrInvalidColor
	}
	if owner := e.cupOwner[c]; owner != core.Unknown {
		return fmt.Errorf("%s cup owned by %s: %w", c, owner, ErrCupOwned)
	}
	need, ok := e.WildcardsNeeded(p, c)
	if need == 0 {
		return fmt.Errorf("%s: %w", c, ErrUseAutomaticAward)
	}
	if !ok {
		return fmt.Errorf("%s needs %d wildcards, have %d: %w",
			c, need, e.Wildcards(p), ErrCupNotClaimable)
	}

	pi := p.Index()
	e.cupCubes += e.raw[pi][c] + need*core.WildcardRate
	e.wildcards[pi] -= need
	e.raw[pi][c] = 0
	e.cupOwner[c] = p
	e.events.PlayerCubeCountChanged(p, c, 0)
	e.events.WildcardCountChanged(p, e.wildcards[pi])
	e.events.CupAwarded(p, c)
	return nil
}

// HasPlayerWon reports whether p owns enough distinct cups to win.
func (e *Economy) HasPlayerWon(p core.Player) bool {
	return p.Valid() && len(e.Cups(p)) >= core.CupsToWin
}

// Winner returns the player who has won, or Unknown.
func (e *Economy) Winner() core.Player {
	for _, p := range core.Players() {
		if e.HasPlayerWon(p) {
			return p
		}
	}
	return core.Unknown
}

// heldCubes returns every cube-equivalent the economy accounts for.
func (e *Economy) heldCubes() int {
	total := e.cupCubes
	for pi := range core.NumPlayers {
		total += e.wildcards[pi] * core.WildcardRate
		for ci := range core.NumColors {
			total += e.raw[pi][ci]
		}
	}
	return total
}
