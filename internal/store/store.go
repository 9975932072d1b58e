package store

import (
	"context"
	"time"

	"github.com/mile-high-maps/nearby-cli/internal/model"
)

// Snapshot is one category's persisted item set from a load run.
type Snapshot struct {
	RunID   string            `json:"run_id"`
	Key     model.CategoryKey `json:"key"`
	Items   []model.Item      `json:"items"`
	TakenAt time.Time         `json:"taken_at"`
}

// SnapshotStore persists the item sets produced by load runs. Snapshots are
// observability only: the in-memory registry remains the single query
// source, and snapshot failures never fail a load.
type SnapshotStore interface {
	// SaveSnapshot records a category's items under a load run ID.
	SaveSnapshot(ctx context.Context, runID string, key model.CategoryKey, items []model.Item) error
	// LatestSnapshot returns the most recent snapshot for a category, or
	// nil when none exists.
	LatestSnapshot(ctx context.Context, key model.CategoryKey) (*Snapshot, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
