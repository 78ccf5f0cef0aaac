package game

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/cuprace/internal/core"
)

// Bag holds the face-down cubes. Cubes leave the bag and never come back.
type Bag struct {
	cubes     []core.Color // cubes[:remaining] are still in the bag
	remaining int
	rng       *rand.Rand
}

// NewBag builds a full bag from the starting cube counts.
func NewBag(rng *rand.Rand) *Bag {
	b := &Bag{
		cubes: make([]core.Color, 0, core.TotalCubes),
		rng:   rng,
	}
	b.Reset()
	return b
}

// Reset refills the bag with every starting cube, unshuffled.
func (b *Bag) Reset() {
	b.cubes = b.cubes[:0]
	for _, c := range core.Colors() {
		for range core.StartingCubes(c) {
			b.cubes = append(b.cubes, c)
		}
	}
	b.remaining = len(b.cubes)
}

// Shuffle uniformly permutes the cubes still in the bag.
func (b *Bag) Shuffle() {
	b.rng.Shuffle(b.remaining, func(i, j int) {
		b.cubes[i], b.cubes[j] = b.cubes[j], b.cubes[i]
	})
}

// Remaining returns the number of cubes left in the bag.
func (b *Bag) Remaining() int {
	return b.remaining
}

// RemainingOf returns how many cubes of a color are left in the bag.
func (b *Bag) RemainingOf(c core.Color) int {
	n := 0
	for _, cube := range b.cubes[:b.remaining] {
		if cube == c {
			n++
		}
	}
	return n
}

// Next takes the top cube out of the bag.
func (b *Bag) Next() (core.Color, error) {
	if b.remaining <= 0 {
		return core.NoColor, fmt.Errorf("next cube: %w", ErrBagEmpty)
	}
	b.remaining--
	return b.cubes[b.remaining], nil
}
