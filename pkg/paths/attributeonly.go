package paths

import (
	"github.com/doctree/reconciler/pkg/buffer"
	"github.com/doctree/reconciler/pkg/instruction"
)

// TryAttributeOnly handles a transition where structure and every node's
// text are unchanged, and only style/block attributes differ. No buffer-length change occurs, so no RangeIndex
// rewrite is needed — only SetAttributes/ApplyBlockAttrs instructions.
func TryAttributeOnly(ctx *Context) (bool, instruction.Stats, error) {
	if !sameKeySet(ctx.Prev, ctx.Next) || !sameStructure(ctx.Prev, ctx.Next) {
		return false, instruction.Stats{}, nil
	}
	if len(differingTextKeys(ctx.Prev, ctx.Next)) != 0 {
		return false, instruction.Stats{}, nil
	}
	for k, pn := range ctx.Prev.Nodes {
		if nn, ok := ctx.Next.Nodes[k]; ok && (pn.Preamble != nn.Preamble || pn.Postamble != nn.Postamble) {
			return false, instruction.Stats{}, nil
		}
	}
	changed := attrsDiffer(ctx.Prev, ctx.Next)
	if len(changed) == 0 {
		return false, instruction.Stats{}, nil
	}

	var instrs []instruction.Instruction
	for _, key := range changed {
		item, ok := ctx.Index.Get(key)
		if !ok {
			continue
		}
		nextNode, _ := ctx.Next.Get(key)
		prevNode, _ := ctx.Prev.Get(key)
		abs := ctx.Index.AbsoluteLocation(item)

		if !stringMapsEqual(prevNode.Styles, nextNode.Styles) {
			r := buffer.Range{Start: abs, End: abs + item.EntireLength()}
			instrs = append(instrs, instruction.SetAttributes(r, buffer.Attrs(nextNode.Styles)))
		}
		if !stringMapsEqual(prevNode.BlockAttrs, nextNode.BlockAttrs) {
			instrs = append(instrs, instruction.ApplyBlockAttrs(abs, map[string]string(nextNode.BlockAttrs)))
		}
	}

	stats := ctx.App.Apply(instrs)
	return true, stats, nil
}
