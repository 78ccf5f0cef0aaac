package core

// RaceState is the scoring rule of a race, or Finished when it cannot run.
type RaceState int

const (
	Lowest RaceState = iota
	Highest
	Finished
)

// String returns a human-readable name for the race state.
func (s RaceState) String() string {
	switch s {
	case Lowest:
		return "Lowest"
	case Highest:
		return "Highest"
	case Finished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// Toggle swaps Lowest and Highest. Finished is never produced or left.
func (s RaceState) Toggle() RaceState {
	switch s {
	case Lowest:
		return Highest
	case Highest:
		return Lowest
	default:
		return s
	}
}

// GameState is the phase of the whole game.
type GameState int

const (
	Initialising GameState = iota
	NewGame
	InGame
	EndGame
)

var gameStateNames = map[GameState]string{
	Initialising: "Initialising",
	NewGame:      "NewGame",
	InGame:       "InGame",
	EndGame:      "EndGame",
}

func (s GameState) String() string {
	if n, ok := gameStateNames[s]; ok {
		return n
	}
	return "Unknown"
}

// TurnState is the phase of the current player's turn.
type TurnState int

const (
	StartingPlayerTurn TurnState = iota
	PickCardFromHand
	PickCardsFromHandToDiscard
	PlayCardOnRace
	FinishingRace
	FinishingGame
	EndingPlayerTurn
)

var turnStateNames = map[TurnState]string{
	StartingPlayerTurn:         "StartingPlayerTurn",
	PickCardFromHand:           "PickCardFromHand",
	PickCardsFromHandToDiscard: "PickCardsFromHandToDiscard",
	PlayCardOnRace:             "PlayCardOnRace",
	FinishingRace:              "FinishingRace",
	FinishingGame:              "FinishingGame",
	EndingPlayerTurn:           "EndingPlayerTurn",
}

func (s TurnState) String() string {
	if n, ok := turnStateNames[s]; ok {
		return n
	}
	return "Unknown"
}
