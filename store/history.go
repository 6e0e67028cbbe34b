package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/CammyCodes/Remik/game"
)

// HistoryStore persists finished rounds for the leaderboard
type HistoryStore interface {
	RecordRound(ctx context.Context, gameID string, r *game.Round) error
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error)
	Close() error
}

// LeaderboardRow is one player's aggregate standing
type LeaderboardRow struct {
	PlayerName  string `json:"playerName"`
	Rounds      int    `json:"rounds"`
	Wins        int    `json:"wins"`
	Remiks      int    `json:"remiks"`
	TotalPoints int    `json:"totalPoints"`
}

const historySchema = `
CREATE TABLE IF NOT EXISTS round_results (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    game_id     TEXT NOT NULL,
    player_id   TEXT NOT NULL,
    player_name TEXT NOT NULL,
    score       INTEGER NOT NULL,
    won         INTEGER NOT NULL,
    remik       INTEGER NOT NULL,
    created_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_round_results_player ON round_results(player_name);
`

// SQLiteHistoryStore records round outcomes in a local SQLite file
type SQLiteHistoryStore struct {
	db *sql.DB
}

// NewSQLiteHistoryStore opens (creating if missing) the database at
// dsn, with WAL journaling and a busy timeout, and ensures the schema
// exists.
func NewSQLiteHistoryStore(dsn string) (*SQLiteHistoryStore, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}

	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteHistoryStore{db: db}, nil
}

// RecordRound writes one row per seat of a finished round
func (s *SQLiteHistoryStore) RecordRound(ctx context.Context, gameID string, r *game.Round) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	for i, p := range r.Players {
		won := i == r.Winner
		_, err := tx.ExecContext(ctx, `
        INSERT INTO round_results
            (game_id, player_id, player_name, score, won, remik)
        VALUES (?, ?, ?, ?, ?, ?)`,
			gameID, p.PlayerID, p.Name, p.Score, won, won && r.Remik,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("insert result: %w", err)
		}
	}

	return tx.Commit()
}

// Leaderboard aggregates recorded rounds per player, most wins first
func (s *SQLiteHistoryStore) Leaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT player_name,
               COUNT(1),
               SUM(won),
               SUM(remik),
               SUM(score)
        FROM round_results
        GROUP BY player_name
        ORDER BY SUM(won) DESC, SUM(score) ASC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LeaderboardRow, 0, limit)
	for rows.Next() {
		var r LeaderboardRow
		if err := rows.Scan(&r.PlayerName, &r.Rounds, &r.Wins, &r.Remiks, &r.TotalPoints); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteHistoryStore) Close() error {
	return s.db.Close()
}
