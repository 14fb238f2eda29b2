package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doctree/reconciler/pkg/buffer"
	"github.com/doctree/reconciler/pkg/document"
	"github.com/doctree/reconciler/pkg/frontend"
	"github.com/doctree/reconciler/pkg/reconcile"
	"github.com/doctree/reconciler/pkg/telemetry"
)

var (
	benchEdits int
	benchWords int
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Drive N synthetic single-word insertions through Reconcile and report export_metrics",
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&benchEdits, "edits", 1000, "number of synthetic edits to apply")
	benchCmd.Flags().IntVar(&benchWords, "words", 6, "starting word count of the paragraph")
}

func runBench(cmd *cobra.Command, args []string) error {
	b := document.NewBuilder()
	root := b.State().RootKey
	para := b.Element(root, "", "\n")
	textKey := b.Text(para, seedParagraph(benchWords))

	rec := reconcile.New(buffer.NewStringBuffer(), frontend.NoOp{})
	prev := b.State()

	var rows []telemetry.Row
	for i := 0; i < benchEdits; i++ {
		next := b.Clone()
		node, _ := next.State().Get(textKey)
		node.Text = node.Text + " word" + humanize.Comma(int64(i))
		next.MarkDirty(textKey, "bench-append")

		start := time.Now()
		stats, err := rec.Reconcile(context.Background(), prev, next.State(), reconcile.Options{ReconcileSelection: false})
		if err != nil {
			return fmt.Errorf("reconcile: %w", err)
		}
		rows = append(rows, telemetry.FromStats(stats.PathLabel, time.Since(start), stats.DirtyNodes, stats.RangesAdded, stats.RangesDeleted))

		prev = next.State()
		b = next
	}

	pathCounts := map[string]int{}
	var total time.Duration
	for _, r := range rows {
		pathCounts[r.PathLabel]++
		total += time.Duration(r.DurationNanos)
	}

	fmt.Printf("%d edits in %s (avg %s/edit)\n", len(rows), total, total/time.Duration(max(len(rows), 1)))
	for path, n := range pathCounts {
		fmt.Printf("  %-24s %s\n", path, humanize.Comma(int64(n)))
	}
	return nil
}

func seedParagraph(words int) string {
	lexicon := []string{"the", "quick", "fox", "jumps", "over", "lazy", "dog", "and", "runs", "away"}
	out := ""
	for i := 0; i < words; i++ {
		if i > 0 {
			out += " "
		}
		out += lexicon[rand.IntN(len(lexicon))]
	}
	return out
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
