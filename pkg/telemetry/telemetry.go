// Package telemetry records reconcile outcomes
// behind one Recorder interface with two swappable backends, mirroring
// internal/storage's bbolt/sqlite dual-implementation shape for its own
// Store interface.
package telemetry

import (
	"context"
	"time"
)

// Row is one reconcile's recorded metrics.
type Row struct {
	ID            int64
	Timestamp     time.Time
	PathLabel     string
	DurationNanos int64
	DirtyNodes    int
	RangesAdded   int
	RangesDeleted int
}

// Recorder persists reconcile metric rows and queries them back, fully
// swappable.
type Recorder interface {
	Record(ctx context.Context, row Row) error
	Recent(ctx context.Context, limit int) ([]Row, error)
	Close() error
}

// FromStats converts a pkg/reconcile.Stats-shaped result into a Row ready
// to record. Reconciler packages pass their own Stats fields directly
// rather than this package importing pkg/reconcile, avoiding an import
// cycle (pkg/reconcile is the natural caller of telemetry, not the other
// way around).
func FromStats(pathLabel string, duration time.Duration, dirtyNodes, rangesAdded, rangesDeleted int) Row {
	return Row{
		PathLabel:     pathLabel,
		DurationNanos: duration.Nanoseconds(),
		DirtyNodes:    dirtyNodes,
		RangesAdded:   rangesAdded,
		RangesDeleted: rangesDeleted,
	}
}
