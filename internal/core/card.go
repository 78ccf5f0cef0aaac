package core

import "fmt"

// Card is an immutable (Color, Value) pair.
type Card struct {
	Color Color
	Value int
}

// NoCard marks an empty hand or race slot.
var NoCard = Card{Color: NoColor}

// NewCard creates a card.
func NewCard(c Color, v int) Card {
	return Card{Color: c, Value: v}
}

// IsZero reports whether the card is the empty sentinel.
func (c Card) IsZero() bool {
	return !c.Color.Valid()
}

// String returns e.g. "Red 13".
func (c Card) String() string {
	if c.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%s %d", c.Color, c.Value)
}

// Sum returns the total value of the given cards, ignoring empty slots.
func Sum(cards []Card) int {
	total := 0
	for _, c := range cards {
		if !c.IsZero() {
			total += c.Value
		}
	}
	return total
}
