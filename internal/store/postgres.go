package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/mile-high-maps/nearby-cli/internal/db"
	"github.com/mile-high-maps/nearby-cli/internal/model"
)

// PostgresStore implements SnapshotStore using a pgx pool.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool; used by tests with pgxmock.
func NewPostgresWithPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS snapshots (
	id         UUID PRIMARY KEY,
	run_id     TEXT NOT NULL,
	category   TEXT NOT NULL,
	items      JSONB NOT NULL,
	item_count INTEGER NOT NULL,
	taken_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_snapshots_category_taken_at ON snapshots(category, taken_at DESC);
CREATE INDEX IF NOT EXISTS idx_snapshots_run_id ON snapshots(run_id);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveSnapshot(ctx context.Context, runID string, key model.CategoryKey, items []model.Item) error {
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal items")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO snapshots (id, run_id, category, items, item_count, taken_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New().String(), runID, string(key), itemsJSON, len(items), time.Now().UTC(),
	)
	if err != nil {
		return eris.Wrap(err, "postgres: insert snapshot")
	}
	return nil
}

func (s *PostgresStore) LatestSnapshot(ctx context.Context, key model.CategoryKey) (*Snapshot, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT run_id, items, taken_at FROM snapshots WHERE category = $1 ORDER BY taken_at DESC LIMIT 1`,
		string(key),
	)

	var snap Snapshot
	var itemsJSON []byte
	if err := row.Scan(&snap.RunID, &itemsJSON, &snap.TakenAt); err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "postgres: scan snapshot")
	}

	if err := json.Unmarshal(itemsJSON, &snap.Items); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal items")
	}
	snap.Key = key
	return &snap, nil
}

var _ SnapshotStore = (*PostgresStore)(nil)
var _ SnapshotStore = (*SQLiteStore)(nil)
