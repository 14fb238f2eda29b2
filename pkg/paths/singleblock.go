package paths

import (
	"fmt"

	"github.com/doctree/reconciler/pkg/document"
	"github.com/doctree/reconciler/pkg/instruction"
)

// TrySingleBlockInsert handles a transition that inserts exactly one new
// node as a child of an existing element, with every other node's
// structure, text, and attributes unchanged. It materializes any pending lazy shift before mutating
// structure, since a freshly allocated node_index cannot yet be trusted to
// sort with the rest of the tree's node_index values.
func TrySingleBlockInsert(ctx *Context) (bool, instruction.Stats, error) {
	added, removed := diffKeySets(ctx.Prev, ctx.Next)
	if len(added) != 1 || len(removed) != 0 {
		return false, instruction.Stats{}, nil
	}
	newKey := added[0]

	parentKey, index, ok := singleInsertionSite(ctx.Prev, ctx.Next, newKey)
	if !ok {
		return false, instruction.Stats{}, nil
	}
	if !structuralOtherNodesUnchanged(ctx.Prev, ctx.Next, map[document.Key]bool{newKey: true}, parentKey) {
		return false, instruction.Stats{}, nil
	}

	ctx.Index.MaterializeFenwick()

	parentItem, ok := ctx.Index.Get(parentKey)
	if !ok {
		return false, instruction.Stats{}, nil
	}
	nextChildren, _ := ctx.Next.Get(parentKey)

	location := parentItem.ChildrenStart(ctx.Index.AbsoluteLocation(parentItem))
	if index > 0 {
		prevSiblingKey := nextChildren.Children[index-1]
		siblingItem, ok := ctx.Index.Get(prevSiblingKey)
		if !ok {
			return false, instruction.Stats{}, nil
		}
		location = ctx.Index.AbsoluteLocation(siblingItem) + siblingItem.EntireLength()
	}

	content := flattenAttributed(ctx.Next, newKey, ctx.DefaultAttrs)

	entireLen, err := ctx.Index.RecomputeSubtree(ctx.Next, newKey, location)
	if err != nil {
		return false, instruction.Stats{}, fmt.Errorf("paths: single-block insert recompute: %w", err)
	}
	ctx.Index.PropagateChildrenDelta(ctx.Next, parentKey, entireLen)
	exclude := subtreeSet(ctx.Next, newKey)
	ctx.Index.ShiftLocationsAfter(location, entireLen, exclude)

	stats := ctx.App.Apply([]instruction.Instruction{instruction.Insert(location, content)})
	return true, stats, nil
}

// diffKeySets returns keys reachable only in next (added) and only in prev
// (removed).
func diffKeySets(prev, next *document.EditorState) (added, removed []document.Key) {
	a := prev.Reachable()
	b := next.Reachable()
	for k := range b {
		if _, ok := a[k]; !ok {
			added = append(added, k)
		}
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			removed = append(removed, k)
		}
	}
	return added, removed
}

// singleInsertionSite reports newKey's parent and position in the parent's
// children list in next, provided next's parent children list equals
// prev's with exactly newKey spliced in at one position and nothing else
// reordered.
func singleInsertionSite(prev, next *document.EditorState, newKey document.Key) (document.Key, int, bool) {
	nn, ok := next.Get(newKey)
	if !ok || !nn.HasParent {
		return "", 0, false
	}
	parentKey := nn.Parent
	if _, ok := prev.Get(parentKey); !ok {
		return "", 0, false
	}
	prevChildren := prev.Nodes[parentKey].Children
	nextChildren := next.Nodes[parentKey].Children
	if len(nextChildren) != len(prevChildren)+1 {
		return "", 0, false
	}
	for i, k := range nextChildren {
		if k != newKey {
			continue
		}
		rest := append(append([]document.Key{}, nextChildren[:i]...), nextChildren[i+1:]...)
		if !keysEqual(rest, prevChildren) {
			return "", 0, false
		}
		return parentKey, i, true
	}
	return "", 0, false
}

func keysEqual(a, b []document.Key) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

