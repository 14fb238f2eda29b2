package paths

import (
	"fmt"

	"github.com/doctree/reconciler/pkg/buffer"
	"github.com/doctree/reconciler/pkg/document"
	"github.com/doctree/reconciler/pkg/instruction"
)

// TryMultiBlockInsert handles a transition that inserts two or more new
// sibling nodes (each with any new descendants of its own), contiguously,
// as children of one existing element, with every other node unchanged.
// Declines (falls through to single-block, then slow path) when the
// inserted siblings aren't a single contiguous run under one parent.
func TryMultiBlockInsert(ctx *Context) (bool, instruction.Stats, error) {
	added, removed := diffKeySets(ctx.Prev, ctx.Next)
	// The inserted siblings are the added keys whose parent already exists
	// in prev; added descendants travel inside their subtrees.
	var roots []document.Key
	for _, k := range added {
		if n, ok := ctx.Next.Get(k); ok && n.HasParent {
			if _, existed := ctx.Prev.Get(n.Parent); existed {
				roots = append(roots, k)
			}
		}
	}
	if len(roots) < 2 || len(removed) != 0 {
		return false, instruction.Stats{}, nil
	}

	parentKey, startIndex, ok := contiguousInsertionSite(ctx.Prev, ctx.Next, roots)
	if !ok {
		return false, instruction.Stats{}, nil
	}
	skipText := make(map[document.Key]bool, len(added))
	for _, k := range added {
		skipText[k] = true
	}
	if !structuralOtherNodesUnchanged(ctx.Prev, ctx.Next, skipText, parentKey) {
		return false, instruction.Stats{}, nil
	}

	ctx.Index.MaterializeFenwick()

	parentItem, ok := ctx.Index.Get(parentKey)
	if !ok {
		return false, instruction.Stats{}, nil
	}
	nextParent, _ := ctx.Next.Get(parentKey)
	insertedKeys := nextParent.Children[startIndex : startIndex+len(roots)]

	location := parentItem.ChildrenStart(ctx.Index.AbsoluteLocation(parentItem))
	if startIndex > 0 {
		prevSiblingKey := nextParent.Children[startIndex-1]
		siblingItem, ok := ctx.Index.Get(prevSiblingKey)
		if !ok {
			return false, instruction.Stats{}, nil
		}
		location = ctx.Index.AbsoluteLocation(siblingItem) + siblingItem.EntireLength()
	}

	var contentParts []buffer.AttributedString
	cursor := location
	totalLen := 0
	for _, k := range insertedKeys {
		contentParts = append(contentParts, flattenAttributed(ctx.Next, k, ctx.DefaultAttrs))
		l, err := ctx.Index.RecomputeSubtree(ctx.Next, k, cursor)
		if err != nil {
			return false, instruction.Stats{}, fmt.Errorf("paths: multi-block insert recompute: %w", err)
		}
		cursor += l
		totalLen += l
	}

	ctx.Index.PropagateChildrenDelta(ctx.Next, parentKey, totalLen)
	exclude := make(map[document.Key]bool)
	for _, k := range insertedKeys {
		for sk := range subtreeSet(ctx.Next, k) {
			exclude[sk] = true
		}
	}
	ctx.Index.ShiftLocationsAfter(location, totalLen, exclude)

	content := buffer.Concat(contentParts...)
	stats := ctx.App.Apply([]instruction.Instruction{instruction.Insert(location, content)})
	return true, stats, nil
}

// contiguousInsertionSite reports the parent and starting index of a
// contiguous run of added keys within next's children list, provided
// removing that run from next's children list reproduces prev's exactly.
func contiguousInsertionSite(prev, next *document.EditorState, added []document.Key) (document.Key, int, bool) {
	addedSet := map[document.Key]bool{}
	for _, k := range added {
		addedSet[k] = true
	}

	first, ok := next.Get(added[0])
	if !ok || !first.HasParent {
		return "", 0, false
	}
	parentKey := first.Parent
	for _, k := range added {
		n, ok := next.Get(k)
		if !ok || !n.HasParent || n.Parent != parentKey {
			return "", 0, false
		}
	}

	prevParent, ok := prev.Get(parentKey)
	if !ok {
		return "", 0, false
	}
	nextParent, ok := next.Get(parentKey)
	if !ok {
		return "", 0, false
	}

	startIndex := -1
	var rest []document.Key
	for i, k := range nextParent.Children {
		if addedSet[k] {
			if startIndex == -1 {
				startIndex = i
			}
			continue
		}
		if startIndex != -1 && i < startIndex+len(added) {
			// a non-added key interrupted the run
			return "", 0, false
		}
		rest = append(rest, k)
	}
	if startIndex == -1 || len(nextParent.Children)-startIndex < len(added) {
		return "", 0, false
	}
	if !keysEqual(rest, prevParent.Children) {
		return "", 0, false
	}
	return parentKey, startIndex, true
}

