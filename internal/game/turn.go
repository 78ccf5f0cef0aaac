package game

import (
	"fmt"
	"slices"

	"github.com/vovakirdan/cuprace/internal/core"
)

// ContinueTurn advances whichever step is waiting for the player to go on.
func (g *Controller) ContinueTurn() error {
	if g.gameState == core.Initialising || g.gameState == core.NewGame {
		return g.reject("continue", ErrNoGame)
	}

	switch g.turnState {
	case core.StartingPlayerTurn:
		g.revealHand()
		g.routeAfterHand()
	case core.FinishingRace:
		g.resolveFinishedRace()
	case core.EndingPlayerTurn:
		g.advanceTurn()
	case core.FinishingGame:
		g.gameState = core.Initialising
		g.setStatus("Start a new game.")
	default:
		return g.reject("continue", fmt.Errorf("%w (%s)", ErrWrongPhase, g.turnState))
	}
	return nil
}

// SelectHandCard selects a card from p's hand. In the single-select phases,
// selecting the selected card again deselects it.
func (g *Controller) SelectHandCard(p core.Player, index int) error {
	const action = "select card"
	if err := g.checkHandAction(p, index); err != nil {
		return g.reject(action, err)
	}

	switch g.turnState {
	case core.PickCardFromHand:
		g.selected = []int{index}
		g.turnState = core.PlayCardOnRace
		g.setStatus("%s: play %s on a race.", g.name(p), g.hands[p][index])
	case core.PlayCardOnRace:
		if g.selected[0] == index {
			g.selected = nil
			g.turnState = core.PickCardFromHand
			g.setStatus("%s: pick a card to play.", g.name(p))
			return nil
		}
		g.selected = []int{index}
		g.setStatus("%s: play %s on a race.", g.name(p), g.hands[p][index])
	case core.PickCardsFromHandToDiscard:
		if i := slices.Index(g.selected, index); i >= 0 {
			g.selected = slices.Delete(g.selected, i, i+1)
			g.discardStatus()
			return nil
		}
		if len(g.selected) >= core.MaxDiscard {
			return g.reject(action, fmt.Errorf("%w (%d)", ErrSelectionLimit, core.MaxDiscard))
		}
		g.selected = slices.Insert(g.selected, 0, index)
		g.discardStatus()
	default:
		return g.reject(action, fmt.Errorf("%w (%s)", ErrWrongPhase, g.turnState))
	}
	return nil
}

// DeselectHandCard removes a card from the selection.
func (g *Controller) DeselectHandCard(p core.Player, index int) error {
	const action = "deselect card"
	if err := g.checkHandAction(p, index); err != nil {
		return g.reject(action, err)
	}

	switch g.turnState {
	case core.PickCardFromHand, core.PlayCardOnRace, core.PickCardsFromHandToDiscard:
	default:
		return g.reject(action, fmt.Errorf("%w (%s)", ErrWrongPhase, g.turnState))
	}
	i := slices.Index(g.selected, index)
	if i < 0 {
		return g.reject(action, ErrNotSelected)
	}

	g.selected = slices.Delete(g.selected, i, i+1)
	if g.turnState == core.PlayCardOnRace {
		g.turnState = core.PickCardFromHand
		g.setStatus("%s: pick a card to play.", g.name(p))
		return nil
	}
	g.discardStatus()
	return nil
}

// PlaySelectedCardOnRace plays the selected card on a race. A refused play
// leaves the turn unchanged so the player can pick another race or card.
func (g *Controller) PlaySelectedCardOnRace(race int) error {
	const action = "play card"
	if g.gameState != core.InGame {
		return g.reject(action, ErrNoGame)
	}
	if g.turnState != core.PlayCardOnRace {
		return g.reject(action, fmt.Errorf("%w (%s)", ErrWrongPhase, g.turnState))
	}
	r := g.Race(race)
	if r == nil {
		return g.reject(action, fmt.Errorf("%w: %d", ErrRaceIndex, race))
	}
	if len(g.selected) != 1 {
		return g.reject(action, ErrNothingSelected)
	}

	p := g.current
	index := g.selected[0]
	card := g.hands[p][index]
	if reason := g.whyNot(r, p, card); reason != "" {
		return g.reject(action, fmt.Errorf("%s on race %d: %s: %w", card, race+1, reason, ErrCardRejected))
	}
	if !r.PlayCard(p, card, g.current) {
		return g.reject(action, fmt.Errorf("%s on race %d: %w", card, race+1, ErrCardRejected))
	}

	g.hands[p][index] = core.NoCard
	g.events.HandCardChanged(p, index, core.NoCard)
	g.drawInto(p, index)
	g.selected = nil

	if g.finishedRace != nil {
		res := g.finishedRace.LastResult()
		g.turnState = core.FinishingRace
		g.setStatus("%s wins race %d (%s: %d vs %d). Press continue.",
			g.name(res.Winner), race+1, res.State,
			res.Scores[core.Left], res.Scores[core.Right])
		return nil
	}
	g.endOfAction()
	return nil
}

// ConfirmDiscardSelection discards the selected cards and draws replacements.
// The first pass re-checks for a legal play; the second pass ends the action.
func (g *Controller) ConfirmDiscardSelection() error {
	const action = "discard"
	if g.gameState != core.InGame {
		return g.reject(action, ErrNoGame)
	}
	if g.turnState != core.PickCardsFromHandToDiscard {
		return g.reject(action, fmt.Errorf("%w (%s)", ErrWrongPhase, g.turnState))
	}

	p := g.current
	for _, index := range g.selected {
		g.deck.Discard(g.hands[p][index])
		g.hands[p][index] = core.NoCard
		g.events.HandCardChanged(p, index, core.NoCard)
	}
	for _, index := range g.selected {
		g.drawInto(p, index)
	}
	n := len(g.selected)
	g.selected = nil
	g.logger.Debug("discarded", "player", p, "cards", n, "second_pass", g.discardPassUsed)

	if g.discardPassUsed {
		g.endOfAction()
		return nil
	}
	g.discardPassUsed = true
	g.routeAfterHand()
	return nil
}

// ClaimCup spends the current player's wildcards to claim a cup.
func (g *Controller) ClaimCup(c core.Color) error {
	const action = "claim cup"
	if g.gameState != core.InGame {
		return g.reject(action, ErrNoGame)
	}
	switch g.turnState {
	case core.StartingPlayerTurn, core.PickCardFromHand, core.PickCardsFromHandToDiscard, core.EndingPlayerTurn:
	default:
		return g.reject(action, fmt.Errorf("%w (%s)", ErrWrongPhase, g.turnState))
	}
	if err := g.economy.ClaimCup(g.current, c); err != nil {
		return g.reject(action, err)
	}

	g.logger.Info("cup claimed", "player", g.current, "color", c)
	g.updateEconomy()
	if w := g.economy.Winner(); w != core.Unknown {
		g.finishGame(w, EndReasonCups)
		return nil
	}
	g.setStatus("%s claims the %s cup.", g.name(g.current), c)
	return nil
}

func (g *Controller) checkHandAction(p core.Player, index int) error {
	if g.gameState != core.InGame {
		return ErrNoGame
	}
	if p != g.current {
		return fmt.Errorf("%w: %s", ErrNotYourTurn, p)
	}
	if index < 0 || index >= core.HandSize {
		return fmt.Errorf("%w: %d", ErrHandIndex, index)
	}
	return nil
}

// whyNot explains why p cannot play card on r, or returns "".
func (g *Controller) whyNot(r *Race, p core.Player, card core.Card) string {
	switch {
	case r.State() == core.Finished:
		return "race is finished"
	case r.PlayedCount(p) >= r.NumCubes():
		return "no free slot"
	case r.Remaining(p, card.Color) == 0:
		return fmt.Sprintf("no %s cube left to match", card.Color)
	}
	return ""
}

func (g *Controller) revealHand() {
	p := g.current
	g.handRevealed = true
	for i, card := range g.hands[p] {
		g.events.HandCardChanged(p, i, card)
	}
}

// hasLegalPlay reports whether some card in p's hand fits some race.
func (g *Controller) hasLegalPlay(p core.Player) bool {
	for _, card := range g.hands[p] {
		for _, r := range g.races {
			if r.CanPlayerPlayCard(p, card) {
				return true
			}
		}
	}
	return false
}

// routeAfterHand picks the play phase when a legal play exists and the
// discard phase otherwise.
func (g *Controller) routeAfterHand() {
	p := g.current
	g.selected = nil
	if g.hasLegalPlay(p) {
		g.turnState = core.PickCardFromHand
		g.setStatus("%s: pick a card to play.", g.name(p))
		return
	}
	g.turnState = core.PickCardsFromHandToDiscard
	g.discardStatus()
}

func (g *Controller) discardStatus() {
	p := g.current
	if g.discardPassUsed {
		g.setStatus("%s: still no legal play. Discard up to %d cards (%d selected), then confirm to end the turn.",
			g.name(p), core.MaxDiscard, len(g.selected))
		return
	}
	g.setStatus("%s: no legal play. Discard up to %d cards (%d selected) and confirm.",
		g.name(p), core.MaxDiscard, len(g.selected))
}

// resolveFinishedRace runs the economy after a race, then either ends the
// game or restarts the race and moves on.
func (g *Controller) resolveFinishedRace() {
	g.updateEconomy()
	if w := g.economy.Winner(); w != core.Unknown {
		g.finishGame(w, EndReasonCups)
		return
	}

	if r := g.finishedRace; r != nil {
		r.StartRace()
	}
	g.endOfAction()
}

// endOfAction gives players a chance to claim a cup before the turn passes.
func (g *Controller) endOfAction() {
	if g.economy.AnyClaimable() {
		g.turnState = core.EndingPlayerTurn
		g.setStatus("A cup can be claimed with wildcards. Claim it or press continue.")
		return
	}
	g.advanceTurn()
}

// advanceTurn hands the turn to the last race winner, or to the other player.
func (g *Controller) advanceTurn() {
	if g.lastRaceWinner.Valid() {
		g.current = g.lastRaceWinner
	} else {
		g.current = g.current.Other()
	}
	g.lastRaceWinner = core.Unknown
	g.finishedRace = nil
	g.selected = nil
	g.handRevealed = false
	g.discardPassUsed = false
	g.turns++

	g.updateEconomy()
	if w := g.economy.Winner(); w != core.Unknown {
		g.finishGame(w, EndReasonCups)
		return
	}
	if g.tableExhausted() {
		g.finishGame(g.leaderByCups(), EndReasonExhausted)
		return
	}
	g.turnState = core.StartingPlayerTurn
	g.setStatus("%s's turn. Press continue to see your hand.", g.name(g.current))
}

func (g *Controller) updateEconomy() {
	if err := g.economy.Update(); err != nil {
		g.violation(err)
	}
}

// tableExhausted reports whether no race can ever be completed again: every
// race is Finished for want of cubes or stalled for want of cards.
func (g *Controller) tableExhausted() bool {
	stalled := g.stalledRaces()
	for i, r := range g.races {
		if r.State() != core.Finished && !stalled[i] {
			return false
		}
	}
	return true
}

// stalledRaces marks the running races that can never be completed. A race
// needs one card per open slot, matching its remaining cube colors. Cards in
// hands and piles are free; cards played into a race come back only once that
// race completes, so races are released in rounds until nothing changes.
func (g *Controller) stalledRaces() [core.NumRaces]bool {
	var free [core.NumColors]int
	for _, c := range core.Colors() {
		free[c] = len(core.CardValues(c))
	}
	var pending [core.NumRaces]bool
	for i, r := range g.races {
		pending[i] = r.State() != core.Finished
		for _, p := range core.Players() {
			for _, card := range r.Played(p) {
				free[card.Color]--
			}
		}
	}

	for changed := true; changed; {
		changed = false
		for i, r := range g.races {
			if !pending[i] || !raceCompletable(r, free) {
				continue
			}
			pending[i] = false
			changed = true
			for _, p := range core.Players() {
				for _, card := range r.Played(p) {
					free[card.Color]++
				}
			}
		}
	}
	return pending
}

func raceCompletable(r *Race, free [core.NumColors]int) bool {
	for _, c := range core.Colors() {
		need := 0
		for _, p := range core.Players() {
			need += r.Remaining(p, c)
		}
		if need > free[c] {
			return false
		}
	}
	return true
}

// leaderByCups returns the player with more cups, or Unknown on a tie.
func (g *Controller) leaderByCups() core.Player {
	left, right := len(g.economy.Cups(core.Left)), len(g.economy.Cups(core.Right))
	switch {
	case left > right:
		return core.Left
	case right > left:
		return core.Right
	default:
		return core.Unknown
	}
}

func (g *Controller) finishGame(winner core.Player, reason EndReason) {
	g.roundWinner = winner
	g.endReason = reason
	g.selected = nil
	g.turnState = core.FinishingGame
	g.gameState = core.EndGame

	summary := Summary{
		Winner:    winner,
		Reason:    reason,
		Races:     g.racesRun,
		Turns:     g.turns,
		Seed:      g.seed,
		StartedAt: g.startedAt,
		EndedAt:   g.now(),
	}
	for _, p := range core.Players() {
		summary.Cups[p] = g.economy.Cups(p)
	}
	g.logger.Info("game finished", "winner", winner, "reason", reason, "races", g.racesRun, "turns", g.turns)
	g.events.GameFinished(summary)

	if winner == core.Unknown {
		g.setStatus("No race can be refilled. The game is a draw.")
		return
	}
	if reason == EndReasonExhausted {
		g.setStatus("No race can be refilled. %s wins on cups!", g.name(winner))
		return
	}
	g.setStatus("%s wins the game!", g.name(winner))
}
