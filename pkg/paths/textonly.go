package paths

import (
	"fmt"

	"github.com/doctree/reconciler/pkg/buffer"
	"github.com/doctree/reconciler/pkg/instruction"
)

// TryTextOnly handles a transition where the tree's structure is entirely
// unchanged and exactly one text node's content changed.
// It diffs the old and new text at the grapheme-cluster boundary nearest
// the edit and emits a single delete+insert pair spanning only the
// differing middle section, rather than replacing the whole node's text.
func TryTextOnly(ctx *Context) (bool, instruction.Stats, error) {
	if !sameKeySet(ctx.Prev, ctx.Next) || !sameStructure(ctx.Prev, ctx.Next) {
		return false, instruction.Stats{}, nil
	}
	changed := differingTextKeys(ctx.Prev, ctx.Next)
	if len(changed) != 1 {
		return false, instruction.Stats{}, nil
	}
	key := changed[0]
	prevNode, _ := ctx.Prev.Get(key)
	nextNode, _ := ctx.Next.Get(key)

	item, ok := ctx.Index.Get(key)
	if !ok {
		return false, instruction.Stats{}, nil
	}
	abs := ctx.Index.AbsoluteLocation(item)
	textStart := item.TextStart(abs)

	oldStart, oldEnd, newStart, newEnd := graphemeDiff(prevNode.Text, nextNode.Text)
	if oldStart == oldEnd && newStart == newEnd {
		// Text identical after grapheme-safe comparison; nothing to do, but
		// this path already committed to handling the transition.
		return true, instruction.Stats{}, nil
	}

	delRange := buffer.Range{Start: textStart + oldStart, End: textStart + oldEnd}
	attrs := buffer.Attrs(nextNode.Styles)
	insertContent := buffer.NewAttributedString(sliceUTF16(nextNode.Text, newStart, newEnd), attrs)

	instrs := []instruction.Instruction{
		instruction.Delete(delRange),
		instruction.Insert(delRange.Start, insertContent),
	}

	delta := (newEnd - newStart) - (oldEnd - oldStart)
	if delta != 0 {
		item.TextLength += delta
		if nextNode.HasParent {
			ctx.Index.PropagateChildrenDelta(ctx.Next, nextNode.Parent, delta)
		}
		if err := ctx.Index.ShiftSuffix(ctx.Next, key, delta); err != nil {
			return false, instruction.Stats{}, fmt.Errorf("paths: text-only shift suffix: %w", err)
		}
	}

	stats := ctx.App.Apply(instrs)
	return true, stats, nil
}

func sliceUTF16(s string, start, end int) string {
	units := buffer.UTF16FromString(s)
	if start < 0 {
		start = 0
	}
	if end > len(units) {
		end = len(units)
	}
	if start > end {
		start = end
	}
	return buffer.UTF16ToString(units[start:end])
}
