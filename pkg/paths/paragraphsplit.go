package paths

import (
	"fmt"

	"github.com/doctree/reconciler/pkg/buffer"
	"github.com/doctree/reconciler/pkg/document"
	"github.com/doctree/reconciler/pkg/instruction"
)

// TryParagraphSplit handles pressing Enter mid-paragraph: one existing text
// node's content is truncated to a prefix and a new sibling node carrying
// the suffix is inserted immediately after it, with nothing else changed
//. This is a single-block insert plus one concatenation
// invariant on the split node's old and new text, which is why it runs
// ahead of the generic single-block path in the classify ladder (that path
// would otherwise decline, since the split node's own text also changed).
func TryParagraphSplit(ctx *Context) (bool, instruction.Stats, error) {
	added, removed := diffKeySets(ctx.Prev, ctx.Next)
	if len(added) != 1 || len(removed) != 0 {
		return false, instruction.Stats{}, nil
	}
	newKey := added[0]

	parentKey, index, ok := singleInsertionSite(ctx.Prev, ctx.Next, newKey)
	if !ok || index == 0 {
		return false, instruction.Stats{}, nil
	}
	nextParent, _ := ctx.Next.Get(parentKey)
	splitKey := nextParent.Children[index-1]

	prevSplit, ok := ctx.Prev.Get(splitKey)
	if !ok {
		return false, instruction.Stats{}, nil
	}
	nextSplit, _ := ctx.Next.Get(splitKey)
	nextNew, _ := ctx.Next.Get(newKey)

	if prevSplit.Text != nextSplit.Text+nextNew.Text {
		return false, instruction.Stats{}, nil
	}
	if prevSplit.Preamble != nextSplit.Preamble || prevSplit.Postamble != nextSplit.Postamble {
		// A host that models the paragraph separator as the split node's own
		// postamble (rather than the new node's preamble) changes splitKey's
		// part lengths in a way this path's buffer edit never touches —
		// decline and let the slow path rebuild it correctly.
		return false, instruction.Stats{}, nil
	}
	skipText := map[document.Key]bool{newKey: true, splitKey: true}
	if !structuralOtherNodesUnchanged(ctx.Prev, ctx.Next, skipText, parentKey) {
		return false, instruction.Stats{}, nil
	}

	ctx.Index.MaterializeFenwick()

	splitItem, ok := ctx.Index.Get(splitKey)
	if !ok {
		return false, instruction.Stats{}, nil
	}
	abs := ctx.Index.AbsoluteLocation(splitItem)
	oldTextStart := splitItem.TextStart(abs)
	oldTextLen := splitItem.TextLength
	newTextLen := buffer.UTF16Len(nextSplit.Text)

	oldTextEnd := oldTextStart + oldTextLen
	newTextEnd := oldTextStart + newTextLen

	splitItem.TextLength = newTextLen

	newContent := flattenAttributed(ctx.Next, newKey, ctx.DefaultAttrs)
	entireLen, err := ctx.Index.RecomputeSubtree(ctx.Next, newKey, newTextEnd)
	if err != nil {
		return false, instruction.Stats{}, fmt.Errorf("paths: paragraph-split recompute: %w", err)
	}

	delta := entireLen - (oldTextEnd - newTextEnd)
	ctx.Index.PropagateChildrenDelta(ctx.Next, parentKey, delta)
	ctx.Index.ShiftLocationsAfter(oldTextEnd, delta, subtreeSet(ctx.Next, newKey))

	instrs := []instruction.Instruction{
		instruction.Delete(buffer.Range{Start: newTextEnd, End: oldTextEnd}),
		instruction.Insert(newTextEnd, newContent),
	}
	stats := ctx.App.Apply(instrs)
	return true, stats, nil
}
