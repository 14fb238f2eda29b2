package paths

import (
	"fmt"

	"github.com/doctree/reconciler/pkg/buffer"
	"github.com/doctree/reconciler/pkg/document"
	"github.com/doctree/reconciler/pkg/instruction"
)

// TryFullRebuild handles the classifier's explicit "dirty_type ==
// full_rebuild" step — the upstream update system has
// already decided the whole tree is dirty, so there's no point evaluating
// any structural precondition first.
func TryFullRebuild(ctx *Context) (bool, instruction.Stats, error) {
	if ctx.Next.DirtyType != document.DirtyFullRebuild {
		return false, instruction.Stats{}, nil
	}
	stats, err := rebuildAll(ctx)
	if err != nil {
		return false, instruction.Stats{}, err
	}
	return true, stats, nil
}

// TrySlowPath is the canonical full-rebuild fallback: it never declines. Every fast path's precondition is conservative
// by design — a fast path that cannot prove its shortcut is safe simply
// returns handled=false, and the classifier ladder's unconditional final
// step picks up the transition here, discarding the index and buffer and
// recomputing ctx.Next from scratch. Grounded on
// pkg/lotus/reconciler/context.go's NewUI/Update, which parse-then-layout
// the whole tree whenever it can't prove an incremental update applies.
func TrySlowPath(ctx *Context) (bool, instruction.Stats, error) {
	stats, err := rebuildAll(ctx)
	if err != nil {
		return false, instruction.Stats{}, err
	}
	return true, stats, nil
}

// rebuildAll discards the index's tracked items and the buffer's current
// contents, recomputes every node's location and part lengths from
// ctx.Next starting at the root, and replaces the buffer wholesale with
// the freshly flattened content.
func rebuildAll(ctx *Context) (instruction.Stats, error) {
	ctx.Index.Reset()

	if _, err := ctx.Index.RecomputeSubtree(ctx.Next, ctx.Next.RootKey, 0); err != nil {
		return instruction.Stats{}, fmt.Errorf("paths: slow path recompute: %w", err)
	}

	content := flattenAttributed(ctx.Next, ctx.Next.RootKey, ctx.DefaultAttrs)

	oldLen := ctx.Buffer.Length()
	instrs := []instruction.Instruction{
		instruction.Delete(buffer.Range{Start: 0, End: oldLen}),
		instruction.Insert(0, content),
	}
	return ctx.App.Apply(instrs), nil
}
