package paths

import (
	"github.com/doctree/reconciler/pkg/buffer"
	"github.com/doctree/reconciler/pkg/document"
	"github.com/doctree/reconciler/pkg/instruction"
	"github.com/doctree/reconciler/pkg/rangeindex"
)

// TryComposition handles an IME marked-text operation. It
// resolves the replacement range's start to a Point, builds the marked
// string using that node's current style, replaces the buffer range, and
// adjusts the affected node's cached text length by the resulting delta.
// The core holds no composition state beyond this call; marked-text
// lifetime belongs to the frontend.
//
// This only handles a replacement landing entirely within one node's text
// part — the common case for typing-in-place composition. A replacement
// spanning a part boundary declines, falling through to the slow path.
func TryComposition(ctx *Context) (bool, instruction.Stats, error) {
	if ctx.MarkedOp == nil || !ctx.MarkedOp.CreateMarked {
		return false, instruction.Stats{}, nil
	}

	start := ctx.MarkedOp.ReplacementRange.Start
	end := ctx.MarkedOp.ReplacementRange.End

	point, err := ctx.Index.Resolve(ctx.Prev, start, rangeindex.Forward)
	if err != nil {
		return false, instruction.Stats{}, nil
	}
	if point.Part != rangeindex.PartText {
		return false, instruction.Stats{}, nil
	}

	item, ok := ctx.Index.Get(point.Key)
	if !ok {
		return false, instruction.Stats{}, nil
	}
	node, ok := ctx.Prev.Get(point.Key)
	if !ok {
		return false, instruction.Stats{}, nil
	}

	abs := ctx.Index.AbsoluteLocation(item)
	textStart := item.TextStart(abs)
	textEnd := textStart + item.TextLength
	if start < textStart || end > textEnd {
		return false, instruction.Stats{}, nil
	}

	attrs := mergeAttrs(ctx.DefaultAttrs, node.Styles)
	marked := buffer.NewAttributedString(ctx.MarkedOp.MarkedString, attrs)
	delta := marked.Len() - (end - start)

	ctx.Index.MaterializeFenwick()
	item.TextLength += delta
	if node.HasParent {
		ctx.Index.PropagateChildrenDelta(ctx.Prev, node.Parent, delta)
	}
	ctx.Index.ShiftLocationsAfter(textEnd, delta, map[document.Key]bool(nil))

	instrs := []instruction.Instruction{
		instruction.Delete(buffer.Range{Start: start, End: end}),
		instruction.Insert(start, marked),
	}
	stats := ctx.App.Apply(instrs)

	if ctx.Frontend != nil {
		ctx.Frontend.SetMarkedText(marked, ctx.MarkedOp.MarkedInternalSelection)
	}

	return true, stats, nil
}
