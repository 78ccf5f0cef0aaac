package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cuprace/internal/config"
	"github.com/vovakirdan/cuprace/internal/core"
	"github.com/vovakirdan/cuprace/internal/game"
)

// Board layout constants
const (
	raceBoxWidth     = 30 // Width of one race panel, padding included
	cubeGlyph        = "■"
	hiddenCard       = "##"
	emptyPlayedSlot  = "·"
	maxEventLogLines = 6
)

// Theme holds the lipgloss styles the board is drawn with.
type Theme struct {
	colors [core.NumColors]lipgloss.Style
	accent lipgloss.Style
	muted  lipgloss.Style
	border lipgloss.Color
}

// NewTheme builds styles from the configured terminal colors.
func NewTheme(cfg config.ThemeConfig) Theme {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return Theme{
		colors: [core.NumColors]lipgloss.Style{
			core.Grey:   fg(cfg.Grey),
			core.Blue:   fg(cfg.Blue),
			core.Green:  fg(cfg.Green),
			core.Yellow: fg(cfg.Yellow),
			core.Red:    fg(cfg.Red),
		},
		accent: fg(cfg.Accent).Bold(true),
		muted:  fg(cfg.Muted),
		border: lipgloss.Color(cfg.Muted),
	}
}

// Color returns the style for a cube color.
func (t Theme) Color(c core.Color) lipgloss.Style {
	if !c.Valid() {
		return t.muted
	}
	return t.colors[c]
}

func (t Theme) cube(c core.Color) string {
	return t.Color(c).Render(cubeGlyph)
}

func (t Theme) card(c core.Card) string {
	if c.IsZero() {
		return t.muted.Render("-")
	}
	return t.Color(c.Color).Render(c.String())
}

// shortCard renders a card as e.g. "Rd13" for the narrow race panels.
func (t Theme) shortCard(c core.Card) string {
	if c.IsZero() {
		return t.muted.Render(emptyPlayedSlot)
	}
	return t.Color(c.Color).Render(fmt.Sprintf("%s%d", colorTags[c.Color], c.Value))
}

// RenderBoard draws the whole table from a snapshot. Only the current
// player's hand is ever shown, and only once it has been revealed.
func RenderBoard(s game.Snapshot, th Theme, width int) string {
	if s.GameState == core.Initialising {
		return th.muted.Render("No game in progress. Press n to deal a new game.")
	}

	sections := []string{
		renderHeader(s, th),
		renderRaces(s, th, width),
		renderPlayers(s, th),
		renderCups(s, th),
		renderHand(s, th),
	}
	return strings.Join(sections, "\n\n")
}

func renderHeader(s game.Snapshot, th Theme) string {
	title := th.accent.Render("CUP RACE")
	piles := th.muted.Render(fmt.Sprintf("bag %d  draw %d  discard %d", s.BagRemaining, s.DrawPile, s.DiscardPile))

	if s.GameState == core.EndGame {
		outcome := "Game drawn"
		if i := s.RoundWinner.Index(); i >= 0 {
			outcome = s.Players[i].Name + " wins the game"
		}
		return fmt.Sprintf("%s  turn %d  %s (%s)    %s", title, s.Turn, th.accent.Render(outcome), s.EndReason, piles)
	}

	who := "-"
	if i := s.Current.Index(); i >= 0 {
		who = s.Players[i].Name
	}
	return fmt.Sprintf("%s  turn %d  %s to play  [%s]    %s", title, s.Turn, th.accent.Render(who), phaseLabel(s.TurnState), piles)
}

// phaseLabel returns a short description of a turn phase.
func phaseLabel(ts core.TurnState) string {
	switch ts {
	case core.StartingPlayerTurn:
		return "start of turn"
	case core.PickCardFromHand:
		return "pick a card"
	case core.PickCardsFromHandToDiscard:
		return "discard"
	case core.PlayCardOnRace:
		return "pick a race"
	case core.FinishingRace:
		return "race won"
	case core.FinishingGame:
		return "game over"
	case core.EndingPlayerTurn:
		return "end of turn"
	default:
		return ts.String()
	}
}

func renderRaces(s game.Snapshot, th Theme, width int) string {
	boxes := make([]string, len(s.Races))
	for i, r := range s.Races {
		boxes[i] = renderRace(r, s, th)
	}
	perRow := width / (raceBoxWidth + 2)
	perRow = max(1, min(perRow, len(boxes)))

	rows := make([]string, 0, len(boxes)/perRow+1)
	for start := 0; start < len(boxes); start += perRow {
		end := min(start+perRow, len(boxes))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes[start:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderRace(r game.RaceSnapshot, s game.Snapshot, th Theme) string {
	var b strings.Builder

	keys := "asdf"
	fmt.Fprintf(&b, "Race %d [%c]  %d cube", r.Slot+1, keys[r.Slot], r.NumCubes)
	if r.NumCubes != 1 {
		b.WriteString("s")
	}
	b.WriteString("\n")

	if r.State == core.Finished {
		b.WriteString(th.muted.Render("finished"))
	} else {
		b.WriteString(th.accent.Render(r.State.String()))
		b.WriteString("  ")
		for _, c := range r.Revealed {
			b.WriteString(th.cube(c))
		}
	}
	b.WriteString("\n")

	for _, p := range core.Players() {
		fmt.Fprintf(&b, "%-6.6s ", s.Players[p].Name)
		for i := 0; i < r.NumCubes; i++ {
			card := core.NoCard
			if i < len(r.Played[p]) {
				card = r.Played[p][i]
			}
			b.WriteString(th.shortCard(card))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	if last := r.Last; last != nil {
		winner := "-"
		if i := last.Winner.Index(); i >= 0 {
			winner = s.Players[i].Name
		}
		b.WriteString(th.muted.Render(fmt.Sprintf("last: %s, %d-%d", winner, last.Scores[core.Left], last.Scores[core.Right])))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.border).
		Width(raceBoxWidth).
		Padding(0, 1)
	return box.Render(strings.TrimRight(b.String(), "\n"))
}

// colorTags are the short labels used in the player panel.
var colorTags = [core.NumColors]string{"Gy", "Bl", "Gn", "Ye", "Rd"}

func renderPlayers(s game.Snapshot, th Theme) string {
	lines := make([]string, 0, core.NumPlayers)
	for _, p := range core.Players() {
		ps := s.Players[p]
		name := fmt.Sprintf("%-10.10s", ps.Name)
		if p == s.Current && s.GameState == core.InGame {
			name = th.accent.Render(name)
		}

		var b strings.Builder
		b.WriteString(name)
		for _, c := range core.Colors() {
			b.WriteString("  ")
			b.WriteString(th.Color(c).Render(fmt.Sprintf("%s:%d", colorTags[c], ps.Raw[c])))
		}
		fmt.Fprintf(&b, "  wild:%d  cups:%d/%d", ps.Wildcards, len(ps.Cups), core.CupsToWin)
		if len(ps.Claimable) > 0 && p == s.Current {
			b.WriteString(th.accent.Render("  claim ready"))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

func renderCups(s game.Snapshot, th Theme) string {
	parts := make([]string, 0, core.NumColors)
	for _, c := range core.Colors() {
		owner := "-"
		if i := s.CupOwners[c].Index(); i >= 0 {
			owner = s.Players[i].Name
		}
		label := fmt.Sprintf("%d:%s cup (%d) %s", c.Index()+1, c, core.Threshold(c), owner)
		parts = append(parts, th.Color(c).Render(label))
	}
	return strings.Join(parts, "   ")
}

func renderHand(s game.Snapshot, th Theme) string {
	i := s.Current.Index()
	if i < 0 || s.GameState != core.InGame {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s's hand: ", s.Players[i].Name)
	for slot, card := range s.Players[i].Hand {
		text := hiddenCard
		if s.HandRevealed {
			text = th.card(card)
		}
		if s.IsSelected(slot) {
			text = "[" + text + "]"
		} else {
			text = " " + text + " "
		}
		fmt.Fprintf(&b, "%d:%s ", slot+1, text)
	}
	if !s.HandRevealed {
		b.WriteString(th.muted.Render(" (hidden)"))
	}
	return strings.TrimRight(b.String(), " ")
}

// renderLog draws the most recent event lines.
func renderLog(lines []string, th Theme) string {
	if len(lines) > maxEventLogLines {
		lines = lines[len(lines)-maxEventLogLines:]
	}
	return th.muted.Render(strings.Join(lines, "\n"))
}
