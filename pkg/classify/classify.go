// Package classify implements the reconciler's ordered precondition ladder:
// composition, full-rebuild, fresh-hydration, none-dirty, the
// seven structural fast paths in priority order, then the
// slow path as an unconditional fallback. Grounded on
// pkg/lotus/reconciler/context.go's canUseFastPath/UpdateWithElement
// try-then-fall-back shape and pkg/lotus/reconciler/diff.go's top-level
// type-switch dispatch, generalized into the full ladder.
package classify

import (
	"context"
	"log/slog"

	"github.com/doctree/reconciler/pkg/instruction"
	"github.com/doctree/reconciler/pkg/paths"
)

// Ladder is the ordered list of named paths the classifier tries in turn.
// Exported so pkg/reconcile and tests can introspect path names without
// duplicating the ordering.
var Ladder = []paths.Named{
	{Name: "composition", Run: paths.TryComposition},
	{Name: "full-rebuild", Run: paths.TryFullRebuild},
	{Name: "fresh-hydration", Run: paths.TryFreshHydration},
	{Name: "none-dirty", Run: paths.TryNoneDirty},
	{Name: "multi-block-insert", Run: paths.TryMultiBlockInsert},
	{Name: "paragraph-split", Run: paths.TryParagraphSplit},
	{Name: "single-block-insert", Run: paths.TrySingleBlockInsert},
	{Name: "text-only", Run: paths.TryTextOnly},
	{Name: "reorder", Run: paths.TryReorderChildren},
	{Name: "delete-blocks", Run: paths.TryDeleteBlocks},
	{Name: "attribute-only", Run: paths.TryAttributeOnly},
}

// Result reports which path handled a transition and what it did.
type Result struct {
	PathName string
	Stats    instruction.Stats
}

// Run evaluates the ladder in order and returns the first match. If every
// entry declines — including full-rebuild's own dirty-type gate — Run
// falls back to the unconditional paths.TrySlowPath.
func Run(ctx context.Context, pctx *paths.Context, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dirtyCount := len(pctx.Next.DirtySet)

	for _, step := range Ladder {
		handled, stats, err := step.Run(pctx)
		if err != nil {
			logger.ErrorContext(ctx, "reconcile path failed", "path", step.Name, "error", err)
			return Result{}, err
		}
		if handled {
			logger.InfoContext(ctx, "reconcile path matched", "path", step.Name, "dirty_nodes", dirtyCount,
				"deletes", stats.Deletes, "inserts", stats.Inserts, "attribute_sets", stats.AttributeSets)
			return Result{PathName: step.Name, Stats: stats}, nil
		}
		logger.DebugContext(ctx, "reconcile path declined", "path", step.Name)
	}

	logger.InfoContext(ctx, "reconcile fell through to slow path", "dirty_nodes", dirtyCount)
	handled, stats, err := paths.TrySlowPath(pctx)
	if err != nil {
		return Result{}, err
	}
	if !handled {
		// TrySlowPath never declines; this branch exists only so Run's
		// contract ("always returns a handled result or an error") holds
		// even if that invariant is ever broken by a future change.
		return Result{}, ErrNoPathMatched
	}
	return Result{PathName: "slow-path", Stats: stats}, nil
}
