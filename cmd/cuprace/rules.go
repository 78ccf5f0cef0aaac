package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cuprace/internal/core"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the rule table",
	Long:  `Shows the cube counts, cup thresholds and card values of every color.`,
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		printRules(os.Stdout)
	},
}

func printRules(w io.Writer) {
	fmt.Fprintln(w, "Colors:")
	fmt.Fprintln(w)

	// Print header
	fmt.Fprintf(w, "  %-7s  %-5s  %-9s  %s\n", "Color", "Cubes", "Threshold", "Card values")
	fmt.Fprintf(w, "  %-7s  %-5s  %-9s  %s\n", "-----", "-----", "---------", "-----------")

	for _, c := range core.Colors() {
		values := core.CardValues(c)
		parts := make([]string, len(values))
		for i, v := range values {
			parts[i] = fmt.Sprint(v)
		}
		fmt.Fprintf(w, "  %-7s  %-5d  %-9d  %s\n", c, core.StartingCubes(c), core.Threshold(c), strings.Join(parts, " "))
	}

	sizes := core.RaceSizes()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Races:      %d slots revealing %v cubes\n", core.NumRaces, sizes)
	fmt.Fprintf(w, "Hand:       %d cards, discard up to %d when no card fits\n", core.HandSize, core.MaxDiscard)
	fmt.Fprintf(w, "Wildcards:  one per %d cubes of a color whose cup you hold\n", core.WildcardRate)
	fmt.Fprintf(w, "Winning:    first to %d cups\n", core.CupsToWin)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'cuprace play' to start a game.")
}
