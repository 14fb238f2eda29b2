// Package reconcile wires the classifier, fast paths, applicator, decorator
// reconciliation, and selection projector into the single entry point:
// Reconcile(prev, next, options). Grounded on
// pkg/lotus/reconciler/context.go's Render/RenderWithElement, which guards
// a create-or-reconcile-existing-instance dispatch behind a package-level
// mutex; generalized here into a per-Reconciler mutex around the single
// critical section the single-writer model requires.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/doctree/reconciler/pkg/buffer"
	"github.com/doctree/reconciler/pkg/classify"
	"github.com/doctree/reconciler/pkg/decorator"
	"github.com/doctree/reconciler/pkg/document"
	"github.com/doctree/reconciler/pkg/frontend"
	"github.com/doctree/reconciler/pkg/instruction"
	"github.com/doctree/reconciler/pkg/paths"
	"github.com/doctree/reconciler/pkg/rangeindex"
	"github.com/doctree/reconciler/pkg/selection"
)

// Stats is the result of one Reconcile call: which path handled the transition, how long it took, and how
// much it touched.
type Stats struct {
	PathLabel    string
	Duration     time.Duration
	DirtyNodes   int
	RangesAdded  int
	RangesDeleted int
	InstructionStats instruction.Stats
	DecoratorDiff    decorator.Diff
	Selection        selection.ProjectedSelection
}

// Reconciler owns the long-lived RangeIndex, Buffer, and Frontend a host
// application reconciles against repeatedly across editor-state
// generations. The single-writer model assumes the caller serializes
// edits at the input layer: a Reconcile call that overlaps one already in
// progress, whether reentrant or from another goroutine, is rejected with
// ErrBufferEditReentry rather than queued.
type Reconciler struct {
	mu sync.Mutex
	inSession bool

	Index    *rangeindex.Index
	Buffer   buffer.Buffer
	Frontend frontend.Frontend

	DefaultAttrs buffer.Attrs
	Logger       *slog.Logger

	decoratorPositions decorator.PositionCache
}

// New creates a Reconciler over an empty RangeIndex and the given buffer
// and frontend. Pass frontend.NoOp{} for headless use.
func New(buf buffer.Buffer, fe frontend.Frontend) *Reconciler {
	return &Reconciler{
		Index:              rangeindex.NewIndex(),
		Buffer:             buf,
		Frontend:           fe,
		decoratorPositions: decorator.PositionCache{},
		Logger:             slog.Default(),
	}
}

// Reconcile drives prev→next through the classifier ladder, applies the
// winning path's instructions, reconciles decorators, and — unless the
// composition path owns selection this generation — projects next's
// selection through the refreshed RangeIndex.
func (r *Reconciler) Reconcile(ctx context.Context, prev, next *document.EditorState, opts Options) (Stats, error) {
	r.mu.Lock()
	if r.inSession {
		r.mu.Unlock()
		return Stats{}, fmt.Errorf("reconcile: %w", ErrBufferEditReentry)
	}
	r.inSession = true
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.inSession = false
		r.mu.Unlock()
	}()

	start := time.Now()

	pctx := &paths.Context{
		Prev:         prev,
		Next:         next,
		Index:        r.Index,
		Buffer:       r.Buffer,
		App:          instruction.New(r.Buffer),
		Frontend:     r.Frontend,
		Decorators:   r.decoratorPositions,
		MarkedOp:     opts.MarkedTextOp,
		DefaultAttrs: r.DefaultAttrs,
	}

	result, err := classify.Run(ctx, pctx, r.Logger)
	if err != nil {
		return Stats{}, fmt.Errorf("reconcile: %w", err)
	}

	diff, nextPositions := decorator.Reconcile(prev, next, r.decoratorPositions)
	for _, keys := range [][]document.Key{diff.Added, diff.Kept, diff.Moved, diff.Redecorate} {
		for _, k := range keys {
			if it, ok := r.Index.Get(k); ok {
				nextPositions.RecordPosition(k, r.Index.AbsoluteLocation(it))
			}
		}
	}
	r.decoratorPositions = nextPositions

	stats := Stats{
		PathLabel:        result.PathName,
		Duration:         time.Since(start),
		DirtyNodes:       len(next.DirtySet),
		RangesAdded:      result.Stats.Inserts,
		RangesDeleted:    result.Stats.Deletes,
		InstructionStats: result.Stats,
		DecoratorDiff:    diff,
	}

	if opts.ReconcileSelection && result.PathName != "composition" {
		if next.Selection != nil {
			projected, perr := selection.Project(r.Index, next, next.Selection)
			if perr != nil {
				return stats, fmt.Errorf("reconcile: project selection: %w", perr)
			}
			stats.Selection = projected
			if r.Frontend != nil {
				r.Frontend.UpdateNativeSelection(*next.Selection)
			}
		} else if r.Frontend != nil {
			r.Frontend.ResetNativeSelection()
		}
	}

	return stats, nil
}
