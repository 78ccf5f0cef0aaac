package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cuprace/internal/platform/tui"
	"github.com/vovakirdan/cuprace/internal/storage"
)

var (
	flagLimit       int
	flagInteractive bool
	flagResultID    string
	flagClear       bool
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show finished games",
	Long: `Display the most recent finished games and the win counts per seat.

Examples:
  cuprace results
  cuprace results --limit 5
  cuprace results --interactive
  cuprace results --id 0b6f1c1e-8f0e-4c55-9d4f-1f8c2f1f4b4e
  cuprace results --clear`,
	Args: cobra.NoArgs,
	RunE: runResults,
}

func init() {
	resultsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of games to list")
	resultsCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse results in a table")
	resultsCmd.Flags().StringVar(&flagResultID, "id", "", "Show a single game by ID")
	resultsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded games")
}

func runResults(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("error opening results database: %w", err)
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearResults(); err != nil {
			return err
		}
		fmt.Println("All results deleted.")
		return nil

	case flagResultID != "":
		r, err := store.ResultByID(flagResultID)
		if err != nil {
			return err
		}
		if r == nil {
			return fmt.Errorf("no game with ID %q", flagResultID)
		}
		printResult(os.Stdout, *r)
		return nil

	case flagInteractive:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunResults(store, width, height)
	}

	results, err := store.RecentResults(flagLimit)
	if err != nil {
		return fmt.Errorf("error retrieving results: %w", err)
	}
	counts, err := store.WinCounts()
	if err != nil {
		return fmt.Errorf("error retrieving win counts: %w", err)
	}

	printResults(os.Stdout, results, counts)
	return nil
}

// printResults writes the results list in plain text.
func printResults(w io.Writer, results []storage.Result, counts storage.WinCounts) {
	fmt.Fprintln(w, "Recent games")
	fmt.Fprintln(w)

	if len(results) == 0 {
		fmt.Fprintln(w, "No games recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'cuprace play' to record the first one!")
		return
	}

	// Print header
	fmt.Fprintf(w, "  %-16s  %-12s  %-24s  %-5s  %-9s  %s\n", "Date", "Winner", "Players", "Cups", "End", "ID")
	fmt.Fprintf(w, "  %-16s  %-12s  %-24s  %-5s  %-9s  %s\n", "----", "------", "-------", "----", "---", "--")

	for _, r := range results {
		fmt.Fprintf(w, "  %-16s  %-12s  %-24s  %-5s  %-9s  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.WinnerName(),
			r.Names[0]+" v "+r.Names[1],
			fmt.Sprintf("%d-%d", len(r.Cups[0]), len(r.Cups[1])),
			r.EndReason,
			r.ID,
		)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Games: %d  Left wins: %d  Right wins: %d  Draws: %d\n",
		counts.Games, counts.Left, counts.Right, counts.Draws)
}

// printResult writes one game in detail.
func printResult(w io.Writer, r storage.Result) {
	fmt.Fprintf(w, "Game %s\n\n", r.ID)
	fmt.Fprintf(w, "  Played:   %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "  Winner:   %s\n", r.WinnerName())
	fmt.Fprintf(w, "  Ended by: %s\n", r.EndReason)
	for i, name := range r.Names {
		fmt.Fprintf(w, "  %-8s  %d cup(s) %v\n", name+":", len(r.Cups[i]), r.Cups[i])
	}
	fmt.Fprintf(w, "  Races:    %d\n", r.Races)
	fmt.Fprintf(w, "  Turns:    %d\n", r.Turns)
	fmt.Fprintf(w, "  Duration: %s\n", r.Duration)
	fmt.Fprintf(w, "  Seed:     %d\n", r.Seed)
}
