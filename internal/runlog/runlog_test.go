package runlog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jameskane05/shadow/internal/timeutil"
)

func openTestDB(t *testing.T, clock timeutil.Clock) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"), clock)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordAndList(t *testing.T) {
	clock := timeutil.NewMockClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	db := openTestDB(t, clock)

	id, err := db.Record(Run{
		Kind:            KindImport,
		Source:          "walk.json",
		Frames:          120,
		DurationSeconds: 4.0,
		ReferenceSpace:  "local-floor",
		Status:          "FINISHED",
		Message:         "Imported 120 frames",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id, "Record should assign an id")

	clock.Advance(time.Minute)
	_, err = db.Record(Run{Kind: KindExport, Source: "out.json", Frames: 120, Status: "FINISHED"})
	require.NoError(t, err)

	runs, err := db.List(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, KindExport, runs[0].Kind)
	assert.Equal(t, KindImport, runs[1].Kind)
	assert.Equal(t, id, runs[1].ID)
	assert.Equal(t, "walk.json", runs[1].Source)
	assert.Equal(t, 120, runs[1].Frames)
	assert.Equal(t, 4.0, runs[1].DurationSeconds)
	assert.Equal(t, "local-floor", runs[1].ReferenceSpace)
	assert.True(t, runs[0].CreatedAt.After(runs[1].CreatedAt))
}

func TestRecordKeepsExplicitID(t *testing.T) {
	db := openTestDB(t, nil)
	id, err := db.Record(Run{ID: "fixed-id", Kind: KindImport, Status: "CANCELLED"})
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", id)
}

func TestListLimit(t *testing.T) {
	clock := timeutil.NewMockClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	db := openTestDB(t, clock)
	for i := 0; i < 5; i++ {
		_, err := db.Record(Run{Kind: KindImport, Status: "FINISHED"})
		require.NoError(t, err)
		clock.Advance(time.Second)
	}

	runs, err := db.List(3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)

	// A non-positive limit falls back to the default page size.
	runs, err = db.List(0)
	require.NoError(t, err)
	assert.Len(t, runs, 5)
}

func TestListEmpty(t *testing.T) {
	db := openTestDB(t, nil)
	runs, err := db.List(10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runs.db")

	db, err := Open(path, nil)
	require.NoError(t, err)
	_, err = db.Record(Run{Kind: KindImport, Status: "FINISHED"})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening applies no migrations and keeps existing rows.
	db, err = Open(path, nil)
	require.NoError(t, err)
	defer db.Close()
	runs, err := db.List(10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
