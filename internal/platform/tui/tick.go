// Package tui provides the Bubble Tea front end for cuprace.
// It renders the table, maps keys to engine commands and saves finished games.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// clearNoticeMsg asks the model to drop the notice with the given ID.
type clearNoticeMsg int

// clearNoticeAfter returns a Bubble Tea command that expires a notice.
// A newer notice keeps its place because its ID no longer matches.
func clearNoticeAfter(d time.Duration, id int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearNoticeMsg(id)
	})
}
