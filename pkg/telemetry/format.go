package telemetry

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ncruces/go-strftime"
)

// FormatStats renders a Row as one summary line: human-readable duration
// and comma-grouped dirty and range counts, following
// the rest of this repo's CLI surface in preferring ecosystem formatting
// helpers over ad hoc fmt.Sprintf arithmetic.
func FormatStats(row Row) string {
	dur := humanize.RelTime(time.Now(), time.Now().Add(time.Duration(row.DurationNanos)), "", "")
	return fmt.Sprintf("%s: %s, dirty=%s, +%s/-%s ranges",
		row.PathLabel,
		dur,
		humanize.Comma(int64(row.DirtyNodes)),
		humanize.Comma(int64(row.RangesAdded)),
		humanize.Comma(int64(row.RangesDeleted)),
	)
}

// FormatTimestamp renders row.Timestamp using a configurable strftime
// layout supplied by the caller, so it can match whatever timestamp
// convention the caller's own logs already use.
func FormatTimestamp(row Row, layout string) (string, error) {
	out, err := strftime.Format(layout, row.Timestamp)
	if err != nil {
		return "", fmt.Errorf("telemetry: format timestamp: %w", err)
	}
	return out, nil
}
