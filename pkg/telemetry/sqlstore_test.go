package telemetry

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestSQLStoreRecordAndRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.sqlite")
	store, err := OpenSQLStore(path)
	if err != nil {
		t.Fatalf("OpenSQLStore: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Record(ctx, FromStats("reorder", 5*time.Millisecond, 2, 1, 1)); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Record(ctx, FromStats("delete-blocks", 3*time.Millisecond, 1, 0, 1)); err != nil {
		t.Fatalf("Record: %v", err)
	}

	rows, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0].PathLabel != "delete-blocks" {
		t.Fatalf("rows[0].PathLabel = %q, want delete-blocks (newest first)", rows[0].PathLabel)
	}
}
