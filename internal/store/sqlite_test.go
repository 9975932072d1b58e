package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mile-high-maps/nearby-cli/internal/model"
)

func testSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLiteStore_SaveAndLatest(t *testing.T) {
	s := testSQLite(t)
	ctx := context.Background()

	items := []model.Item{
		{Name: "King Soopers - Speer", Details: "1155 E 9th Ave", Lat: 39.7316, Lng: -104.9739},
		{Name: "Safeway - Corona", Lat: 39.7266, Lng: -104.9747},
	}
	require.NoError(t, s.SaveSnapshot(ctx, "run-1", model.CategoryGrocery, items))

	snap, err := s.LatestSnapshot(ctx, model.CategoryGrocery)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "run-1", snap.RunID)
	assert.Equal(t, model.CategoryGrocery, snap.Key)
	assert.Equal(t, items, snap.Items)
	assert.False(t, snap.TakenAt.IsZero())
}

func TestSQLiteStore_LatestWins(t *testing.T) {
	s := testSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSnapshot(ctx, "run-1", model.CategoryTransit, []model.Item{{Name: "old", Lat: 1, Lng: 2}}))
	require.NoError(t, s.SaveSnapshot(ctx, "run-2", model.CategoryTransit, []model.Item{{Name: "new", Lat: 3, Lng: 4}}))

	snap, err := s.LatestSnapshot(ctx, model.CategoryTransit)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "run-2", snap.RunID)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "new", snap.Items[0].Name)
}

func TestSQLiteStore_NoSnapshot(t *testing.T) {
	s := testSQLite(t)

	snap, err := s.LatestSnapshot(context.Background(), model.CategoryRNOs)
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSQLiteStore_CategoriesIsolated(t *testing.T) {
	s := testSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSnapshot(ctx, "run-1", model.CategoryGrocery, []model.Item{{Name: "g", Lat: 1, Lng: 2}}))

	snap, err := s.LatestSnapshot(ctx, model.CategoryTransit)
	require.NoError(t, err)
	assert.Nil(t, snap)
}
