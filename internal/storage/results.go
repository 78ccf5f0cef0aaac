package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/cuprace/internal/core"
	"github.com/vovakirdan/cuprace/internal/game"
)

// Result is one finished game.
type Result struct {
	ID        string
	Winner    core.Player // Unknown on a draw
	Names     [core.NumPlayers]string
	Cups      [core.NumPlayers][]core.Color
	Races     int
	Turns     int
	EndReason string
	Seed      int64
	Duration  time.Duration
	CreatedAt time.Time
}

// WinnerName returns the winner's display name, or "draw".
func (r Result) WinnerName() string {
	if i := r.Winner.Index(); i >= 0 {
		return r.Names[i]
	}
	return "draw"
}

// WinCounts aggregates results per seat.
type WinCounts struct {
	Left  int
	Right int
	Draws int
	Games int
}

// NewResult builds a result row from a finished game.
func NewResult(summary game.Summary, names [core.NumPlayers]string) Result {
	return Result{
		Winner:    summary.Winner,
		Names:     names,
		Cups:      summary.Cups,
		Races:     summary.Races,
		Turns:     summary.Turns,
		EndReason: string(summary.Reason),
		Seed:      summary.Seed,
		Duration:  summary.EndedAt.Sub(summary.StartedAt),
		CreatedAt: summary.EndedAt,
	}
}

// SaveResult records a finished game and returns its ID.
// A new UUID is assigned when the result has none.
func (s *Store) SaveResult(r Result) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	} else if _, err := uuid.Parse(r.ID); err != nil {
		return "", fmt.Errorf("storage: invalid result ID %q: %w", r.ID, err)
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO results
		 (id, winner, left_name, right_name, left_cups, right_cups, races, turns, end_reason, seed, duration_secs, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		winnerKey(r.Winner),
		r.Names[core.Left],
		r.Names[core.Right],
		joinCups(r.Cups[core.Left]),
		joinCups(r.Cups[core.Right]),
		r.Races,
		r.Turns,
		r.EndReason,
		r.Seed,
		int64(r.Duration/time.Second),
		r.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save result: %w", err)
	}
	return r.ID, nil
}

const resultColumns = `id, winner, left_name, right_name, left_cups, right_cups,
	races, turns, end_reason, seed, duration_secs, created_at`

// ResultByID retrieves a result by its ID. Returns nil if it does not exist.
func (s *Store) ResultByID(id string) (*Result, error) {
	row := s.db.QueryRow(`SELECT `+resultColumns+` FROM results WHERE id = ?`, id)
	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query result: %w", err)
	}
	return &r, nil
}

// RecentResults retrieves the most recent results, newest first.
func (s *Store) RecentResults(limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM results
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// WinCounts counts wins per seat and draws over all recorded games.
func (s *Store) WinCounts() (WinCounts, error) {
	var wc WinCounts
	rows, err := s.db.Query(`SELECT winner, COUNT(*) FROM results GROUP BY winner`)
	if err != nil {
		return wc, fmt.Errorf("storage: cannot query win counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var winner string
		var n int
		if err := rows.Scan(&winner, &n); err != nil {
			return wc, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		switch winner {
		case winnerKey(core.Left):
			wc.Left += n
		case winnerKey(core.Right):
			wc.Right += n
		default:
			wc.Draws += n
		}
		wc.Games += n
	}

	if err := rows.Err(); err != nil {
		return wc, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return wc, nil
}

// ClearResults deletes every recorded result.
func (s *Store) ClearResults() error {
	if _, err := s.db.Exec("DELETE FROM results"); err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(sc scanner) (Result, error) {
	var r Result
	var winner, leftCups, rightCups string
	var durationSecs int64
	var createdAt any

	if err := sc.Scan(
		&r.ID,
		&winner,
		&r.Names[core.Left],
		&r.Names[core.Right],
		&leftCups,
		&rightCups,
		&r.Races,
		&r.Turns,
		&r.EndReason,
		&r.Seed,
		&durationSecs,
		&createdAt,
	); err != nil {
		return r, err
	}

	r.Winner = parseWinner(winner)
	r.Cups[core.Left] = splitCups(leftCups)
	r.Cups[core.Right] = splitCups(rightCups)
	r.Duration = time.Duration(durationSecs) * time.Second
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

func winnerKey(p core.Player) string {
	if !p.Valid() {
		return ""
	}
	return strings.ToLower(p.String())
}

func parseWinner(s string) core.Player {
	for _, p := range core.Players() {
		if s == winnerKey(p) {
			return p
		}
	}
	return core.Unknown
}

func joinCups(cups []core.Color) string {
	names := make([]string, len(cups))
	for i, c := range cups {
		names[i] = c.String()
	}
	return strings.Join(names, ",")
}

func splitCups(s string) []core.Color {
	if s == "" {
		return nil
	}
	var cups []core.Color
	for _, name := range strings.Split(s, ",") {
		if c, ok := core.ParseColor(name); ok {
			cups = append(cups, c)
		}
	}
	return cups
}
