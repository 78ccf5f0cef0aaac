package tui

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/cuprace/internal/core"
	"github.com/vovakirdan/cuprace/internal/game"
)

// eventLog turns engine notifications into short log lines and holds the
// summary of a finished game until the model has saved it.
type eventLog struct {
	game.NopListener

	mu       sync.Mutex
	names    [core.NumPlayers]string
	lines    []string
	finished *game.Summary
}

func newEventLog(names [core.NumPlayers]string) *eventLog {
	return &eventLog{names: names}
}

func (l *eventLog) name(p core.Player) string {
	if i := p.Index(); i >= 0 {
		return l.names[i]
	}
	return "nobody"
}

func (l *eventLog) add(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
	if len(l.lines) > 2*maxEventLogLines {
		l.lines = l.lines[len(l.lines)-maxEventLogLines:]
	}
}

// Lines returns a copy of the retained log lines, oldest first.
func (l *eventLog) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

// TakeFinished returns the pending game summary once, then nil.
func (l *eventLog) TakeFinished() *game.Summary {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := l.finished
	l.finished = nil
	return s
}

func (l *eventLog) CardPlayed(race int, p core.Player, _ int, card core.Card) {
	l.add("%s played %s on race %d", l.name(p), card, race+1)
}

func (l *eventLog) RaceStateChanged(race int, s core.RaceState) {
	if s == core.Finished {
		l.add("race %d is closed", race+1)
	}
}

func (l *eventLog) CupAwarded(p core.Player, c core.Color) {
	l.add("%s takes the %s cup", l.name(p), c)
}

func (l *eventLog) WildcardCountChanged(p core.Player, count int) {
	if count > 0 {
		l.add("%s has %d wildcard(s)", l.name(p), count)
	}
}

func (l *eventLog) GameFinished(summary game.Summary) {
	l.add("game over: %s (%s)", l.name(summary.Winner), summary.Reason)
	l.mu.Lock()
	l.finished = &summary
	l.mu.Unlock()
}

var _ game.Listener = (*eventLog)(nil)
