// Package core provides the fundamental types and the fixed rule table of the
// game. It has no dependencies beyond the standard library so rules code stays
// pure and testable.
package core

// Fixed rule table. Rule variants are not configurable.
const (
	HandSize      = 8 // Cards each player holds
	MaxDiscard    = 4 // Cards that may be swapped in a discard pass
	CupsToWin     = 3 // Distinct cups needed to win
	WildcardRate  = 3 // Raw cubes of a won color per wildcard
	NumRaces      = 4 // Race slots on the table
	MaxRaceCubes  = 4 // Largest race
	TotalCubes    = 45
	FullDeckSize  = 45
	MinCardValue  = 1
	MaxCardValue  = 13
	maxHandSelect = 1
)

// startingCubes is the number of cubes of each color put in the bag.
var startingCubes = [NumColors]int{
	Grey:   5,
	Blue:   7,
	Green:  9,
	Yellow: 11,
	Red:    13,
}

// cardValues lists the card values printed for each color.
// Every list is centred on 7 so no color is strictly "low" or "high".
var cardValues = [NumColors][]int{
	Grey:   {3, 5, 7, 9, 11},
	Blue:   {2, 4, 6, 7, 8, 10, 12},
	Green:  {1, 3, 5, 6, 7, 8, 9, 11, 13},
	Yellow: {1, 2, 3, 5, 6, 7, 8, 9, 11, 12, 13},
	Red:    {1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13},
}

// raceSizes is the number of cubes revealed by each race slot.
var raceSizes = [NumRaces]int{1, 2, 3, 4}

// StartingCubes returns the bag count for a color, or 0 for an invalid color.
func StartingCubes(c Color) int {
	if !c.Valid() {
		return 0
	}
	return startingCubes[c]
}

// Threshold returns the cube count needed to win the color's cup outright.
func Threshold(c Color) int {
	return (StartingCubes(c) + 1) / 2
}

// CardValues returns a copy of the value list printed for a color.
func CardValues(c Color) []int {
	if !c.Valid() {
		return nil
	}
	out := make([]int, len(cardValues[c]))
	copy(out, cardValues[c])
	return out
}

// RaceSizes returns the cube count of every race slot, in slot order.
func RaceSizes() [NumRaces]int {
	return raceSizes
}

// MaxSelect returns how many hand cards may be selected in a turn state.
func MaxSelect(s TurnState) int {
	switch s {
	case PickCardFromHand, PlayCardOnRace:
		return maxHandSelect
	case PickCardsFromHandToDiscard:
		return MaxDiscard
	default:
		return 0
	}
}
