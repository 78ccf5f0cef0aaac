package game

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/cuprace/internal/core"
)

// Deck manages the draw pile and the discard pile.
// The discard pile is a pool: it is only ever reshuffled wholesale.
type Deck struct {
	full    []core.Card
	draw    []core.Card // top of the pile is the last element
	discard []core.Card
	rng     *rand.Rand
}

// NewDeck builds the canonical deck. Both piles start empty until NewRound.
func NewDeck(rng *rand.Rand) *Deck {
	return &Deck{
		full:    BuildFullDeck(),
		draw:    make([]core.Card, 0, core.FullDeckSize),
		discard: make([]core.Card, 0, core.FullDeckSize),
		rng:     rng,
	}
}

// BuildFullDeck returns every card of the game in color then value order.
func BuildFullDeck() []core.Card {
	cards := make([]core.Card, 0, core.FullDeckSize)
	for _, c := range core.Colors() {
		for _, v := range core.CardValues(c) {
			cards = append(cards, core.NewCard(c, v))
		}
	}
	return cards
}

// NewRound empties the discard pile and puts a shuffled full deck in the draw pile.
func (d *Deck) NewRound() {
	d.discard = d.discard[:0]
	d.draw = append(d.draw[:0], d.full...)
	d.shuffle(d.draw)
}

// Draw pops the top card of the draw pile.
func (d *Deck) Draw() (core.Card, error) {
	if len(d.draw) == 0 {
		return core.NoCard, fmt.Errorf("draw: %w", ErrDrawPileEmpty)
	}
	top := d.draw[len(d.draw)-1]
	d.draw = d.draw[:len(d.draw)-1]
	return top, nil
}

// ReshuffleFromDiscard turns the discard pile into a freshly shuffled draw pile.
func (d *Deck) ReshuffleFromDiscard() error {
	if len(d.discard) == 0 {
		return fmt.Errorf("reshuffle: %w", ErrDiscardEmpty)
	}
	d.draw = append(d.draw[:0], d.discard...)
	d.discard = d.discard[:0]
	d.shuffle(d.draw)
	return nil
}

// Discard adds a card to the discard pile.
func (d *Deck) Discard(card core.Card) {
	d.discard = append(d.discard, card)
}

// DrawPileSize returns the number of cards left to draw.
func (d *Deck) DrawPileSize() int {
	return len(d.draw)
}

// DiscardPileSize returns the number of cards in the discard pile.
func (d *Deck) DiscardPileSize() int {
	return len(d.discard)
}

// FullSize returns the size of the complete deck.
func (d *Deck) FullSize() int {
	return len(d.full)
}

func (d *Deck) shuffle(cards []core.Card) {
	d.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}
