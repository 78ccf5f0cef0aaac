package core

import "strings"

// Color identifies a cube color, a card suit and a cup.
type Color int

// Cube colors, in ordinal order. ColorCount doubles as the "no color" sentinel.
const (
	Grey Color = iota
	Blue
	Green
	Yellow
	Red
	ColorCount
)

// NoColor is returned where a lookup has no color result.
const NoColor = ColorCount

// NumColors is the number of real colors.
const NumColors = int(ColorCount)

var colorNames = [NumColors]string{
	Grey:   "Grey",
	Blue:   "Blue",
	Green:  "Green",
	Yellow: "Yellow",
	Red:    "Red",
}

// String returns a human-readable name for the color.
func (c Color) String() string {
	if !c.Valid() {
		return "None"
	}
	return colorNames[c]
}

// Valid reports whether c is one of the five real colors.
func (c Color) Valid() bool {
	return c >= Grey && c < ColorCount
}

// Index returns the array index for per-color tables.
// Callers must check Valid first; invalid colors map to -1.
func (c Color) Index() int {
	if !c.Valid() {
		return -1
	}
	return int(c)
}

// Colors returns all real colors in ordinal order.
func Colors() [NumColors]Color {
	return [NumColors]Color{Grey, Blue, Green, Yellow, Red}
}

// ParseColor converts a case-insensitive name into a Color.
func ParseColor(s string) (Color, bool) {
	for _, c := range Colors() {
		if strings.EqualFold(c.String(), s) {
			return c, true
		}
	}
	return NoColor, false
}
