package paths

import (
	"github.com/doctree/reconciler/pkg/buffer"
	"github.com/doctree/reconciler/pkg/document"
	"github.com/doctree/reconciler/pkg/instruction"
)

// TryDeleteBlocks handles a transition that removes a contiguous run of
// sibling subtrees from one parent, with every other node unchanged. It resolves
// the boundary-recursion question by recursing the
// contiguity check only one level — a deleted run's *roots* must be
// contiguous siblings; whether their own descendants were internally
// contiguous is irrelevant since the whole subtree is pruned as a unit.
func TryDeleteBlocks(ctx *Context) (bool, instruction.Stats, error) {
	added, removed := diffKeySets(ctx.Prev, ctx.Next)
	if len(added) != 0 || len(removed) == 0 {
		return false, instruction.Stats{}, nil
	}

	parentKey, roots, ok := contiguousRemovalSite(ctx.Prev, ctx.Next, removed)
	if !ok {
		return false, instruction.Stats{}, nil
	}
	if !structuralNodesUnchangedForRemoval(ctx.Prev, ctx.Next, removed, parentKey) {
		return false, instruction.Stats{}, nil
	}

	ctx.Index.MaterializeFenwick()

	firstItem, ok := ctx.Index.Get(roots[0])
	if !ok {
		return false, instruction.Stats{}, nil
	}
	lastItem, ok := ctx.Index.Get(roots[len(roots)-1])
	if !ok {
		return false, instruction.Stats{}, nil
	}
	start := ctx.Index.AbsoluteLocation(firstItem)
	end := ctx.Index.AbsoluteLocation(lastItem) + lastItem.EntireLength()
	deletedLen := end - start

	ctx.Index.PropagateChildrenDelta(ctx.Prev, parentKey, -deletedLen)
	ctx.Index.Prune(removed)
	ctx.Index.ShiftLocationsAfter(end, -deletedLen, nil)

	stats := ctx.App.Apply([]instruction.Instruction{instruction.Delete(buffer.Range{Start: start, End: end})})
	return true, stats, nil
}

// contiguousRemovalSite reports the shared parent and the ordered list of
// top-level removed roots (removed keys whose parent is not itself
// removed), provided those roots form one contiguous run in prev's
// children list under that parent.
func contiguousRemovalSite(prev, next *document.EditorState, removed []document.Key) (document.Key, []document.Key, bool) {
	removedSet := make(map[document.Key]bool, len(removed))
	for _, k := range removed {
		removedSet[k] = true
	}

	var roots []document.Key
	var parentKey document.Key
	havParent := false
	for _, k := range removed {
		n, ok := prev.Get(k)
		if !ok {
			return "", nil, false
		}
		if n.HasParent && removedSet[n.Parent] {
			continue // not a top-level root of this removal
		}
		if !n.HasParent {
			return "", nil, false // refuse to delete the document root
		}
		if !havParent {
			parentKey = n.Parent
			havParent = true
		} else if parentKey != n.Parent {
			return "", nil, false
		}
		roots = append(roots, k)
	}
	if len(roots) == 0 {
		return "", nil, false
	}

	prevParent, ok := prev.Get(parentKey)
	if !ok {
		return "", nil, false
	}
	nextParent, ok := next.Get(parentKey)
	if !ok {
		return "", nil, false
	}

	rootSet := make(map[document.Key]bool, len(roots))
	for _, k := range roots {
		rootSet[k] = true
	}

	startIndex := -1
	var ordered []document.Key
	var rest []document.Key
	for i, k := range prevParent.Children {
		if rootSet[k] {
			if startIndex == -1 {
				startIndex = i
			}
			ordered = append(ordered, k)
			continue
		}
		rest = append(rest, k)
	}
	if startIndex == -1 || len(ordered) != len(roots) {
		return "", nil, false
	}
	// Roots must occupy one contiguous span starting at startIndex.
	for i, k := range ordered {
		if prevParent.Children[startIndex+i] != k {
			return "", nil, false
		}
	}
	if !keysEqual(rest, nextParent.Children) {
		return "", nil, false
	}
	return parentKey, ordered, true
}

// structuralNodesUnchangedForRemoval reports whether every prev node
// outside the removed set survives unchanged in next, with parent's
// children list shrinking by exactly the removed run.
func structuralNodesUnchangedForRemoval(prev, next *document.EditorState, removed []document.Key, parent document.Key) bool {
	removedSet := make(map[document.Key]bool, len(removed))
	for _, k := range removed {
		removedSet[k] = true
	}
	for k, pn := range prev.Nodes {
		if removedSet[k] {
			continue
		}
		nn, ok := next.Nodes[k]
		if !ok {
			return false
		}
		if pn.Parent != nn.Parent || pn.HasParent != nn.HasParent || pn.Kind != nn.Kind {
			return false
		}
		if pn.Text != nn.Text || pn.Preamble != nn.Preamble || pn.Postamble != nn.Postamble {
			return false
		}
		if !stringMapsEqual(pn.Styles, nn.Styles) || !stringMapsEqual(pn.BlockAttrs, nn.BlockAttrs) {
			return false
		}
		if k == parent {
			continue
		}
		if !keysEqual(pn.Children, nn.Children) {
			return false
		}
	}
	return true
}
