package game

import "errors"

// Rejected player actions. These are the routine, recoverable failures: the
// action is refused and no state changes.
var (
	ErrNoGame            = errors.New("no game in progress")
	ErrWrongPhase        = errors.New("action not allowed in this phase")
	ErrNotYourTurn       = errors.New("not this player's turn")
	ErrHandIndex         = errors.New("hand index out of range")
	ErrRaceIndex         = errors.New("race index out of range")
	ErrNotSelected       = errors.New("card is not selected")
	ErrNothingSelected   = errors.New("no card selected")
	ErrSelectionLimit    = errors.New("selection limit reached")
	ErrCardRejected      = errors.New("card cannot be played on this race")
	ErrInvalidColor      = errors.New("invalid color")
	ErrCupOwned          = errors.New("cup already owned")
	ErrCupNotClaimable   = errors.New("not enough cubes and wildcards to claim cup")
	ErrUseAutomaticAward = errors.New("cup is won by raw cubes alone")
)

// Contract breaches. Reaching one of these means a rules invariant was broken.
var (
	ErrInvariant      = errors.New("invariant violation")
	ErrBagEmpty       = errors.New("cube bag is empty")
	ErrDrawPileEmpty  = errors.New("draw pile is empty")
	ErrDiscardEmpty   = errors.New("discard pile is empty")
	ErrCupDoubleAward = errors.New("cup awarded twice")
	ErrUnknownPlayer  = errors.New("unknown player")
)
