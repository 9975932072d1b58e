package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/mile-high-maps/nearby-cli/internal/model"
)

// SQLiteStore implements SnapshotStore using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL
// mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS snapshots (
	id         TEXT PRIMARY KEY,
	run_id     TEXT NOT NULL,
	category   TEXT NOT NULL,
	items      TEXT NOT NULL,
	item_count INTEGER NOT NULL,
	taken_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_snapshots_category_taken_at ON snapshots(category, taken_at);
CREATE INDEX IF NOT EXISTS idx_snapshots_run_id ON snapshots(run_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveSnapshot(ctx context.Context, runID string, key model.CategoryKey, items []model.Item) error {
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal items")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (id, run_id, category, items, item_count, taken_at) VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), runID, string(key), string(itemsJSON), len(items), time.Now().UTC(),
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: insert snapshot")
	}
	return nil
}

func (s *SQLiteStore) LatestSnapshot(ctx context.Context, key model.CategoryKey) (*Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT run_id, items, taken_at FROM snapshots WHERE category = ? ORDER BY taken_at DESC, rowid DESC LIMIT 1`,
		string(key),
	)

	var snap Snapshot
	var itemsJSON string
	if err := row.Scan(&snap.RunID, &itemsJSON, &snap.TakenAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "sqlite: scan snapshot")
	}

	if err := json.Unmarshal([]byte(itemsJSON), &snap.Items); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal items")
	}
	snap.Key = key
	return &snap, nil
}
