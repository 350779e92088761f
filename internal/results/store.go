// Package results records finished games and serves the leaderboard.
package results

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// DefaultLimit is the leaderboard size used when none is requested.
const DefaultLimit = 20

type Result struct {
	GameID     string    `json:"gameId"`
	Total      int       `json:"total"`
	Bonus      bool      `json:"bonus"`
	FinishedAt time.Time `json:"finishedAt"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Record stores r. A game that was already recorded is left untouched.
func (s *Store) Record(ctx context.Context, r Result) error {
	bonus := 0
	if r.Bonus {
		bonus = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO results(game_id, total, bonus, finished_at)
		VALUES(?,?,?,?)`, r.GameID, r.Total, bonus, r.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record result %s: %w", r.GameID, err)
	}
	return nil
}

// Leaderboard returns the best totals, earliest finish first on ties.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT game_id, total, bonus, finished_at
		FROM results
		ORDER BY total DESC, finished_at ASC
		LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Result, 0, limit)
	for rows.Next() {
		var (
			r        Result
			bonus    int
			finished string
		)
		if err := rows.Scan(&r.GameID, &r.Total, &bonus, &finished); err != nil {
			return nil, err
		}
		r.Bonus = bonus != 0
		r.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		out = append(out, r)
	}
	return out, rows.Err()
}
