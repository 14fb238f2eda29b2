package paths

import (
	"fmt"

	"github.com/doctree/reconciler/pkg/buffer"
	"github.com/doctree/reconciler/pkg/document"
	"github.com/doctree/reconciler/pkg/instruction"
	"golang.org/x/exp/slices"
)

// TryReorderChildren handles a transition where exactly one parent's
// children were permuted — same key set, same per-node text/attrs,
// different order.
//
// It computes the longest increasing subsequence of the permutation to find
// the minimal set of children that actually need their bytes moved: an
// LIS member keeps its old neighbor-relative order, so splicing the
// non-LIS runs out and back in around it repositions its content as a side
// effect, the same way removing an element from a slice shifts the tail
// without rewriting it. Only the non-LIS runs get an explicit
// delete-plus-reinsert; every child's Index entry still needs its cached
// location corrected afterward regardless of LIS membership, via
// ShiftRange for a leaf child's own single item or a full RecomputeSubtree
// when the child has descendants (ShiftRange's node_index range only
// brackets a subtree reliably when that subtree has no internal structure
// of its own — an unrelated sibling elsewhere in the tree can hold a
// node_index that falls inside a non-leaf child's range after a prior
// insert allocated it out of document order).
func TryReorderChildren(ctx *Context) (bool, instruction.Stats, error) {
	added, removed := diffKeySets(ctx.Prev, ctx.Next)
	if len(added) != 0 || len(removed) != 0 {
		return false, instruction.Stats{}, nil
	}

	parentKey, ok := singleReorderedParent(ctx.Prev, ctx.Next)
	if !ok {
		return false, instruction.Stats{}, nil
	}
	if !structuralOtherNodesUnchanged(ctx.Prev, ctx.Next, nil, parentKey) {
		return false, instruction.Stats{}, nil
	}

	prevChildren := ctx.Prev.Nodes[parentKey].Children
	nextChildren := ctx.Next.Nodes[parentKey].Children
	lis := longestIncreasingSubsequence(permutationIndices(prevChildren, nextChildren))
	kept := make(map[int]bool, len(lis))
	for _, i := range lis {
		kept[i] = true
	}

	ctx.Index.MaterializeFenwick()

	parentItem, ok := ctx.Index.Get(parentKey)
	if !ok {
		return false, instruction.Stats{}, nil
	}
	abs := ctx.Index.AbsoluteLocation(parentItem)
	childrenStart := parentItem.ChildrenStart(abs)
	childrenEnd := childrenStart + parentItem.ChildrenLength

	oldAbs := make(map[document.Key]int, len(nextChildren))
	length := make(map[document.Key]int, len(nextChildren))
	for _, ck := range nextChildren {
		item, ok := ctx.Index.Get(ck)
		if !ok {
			return false, instruction.Stats{}, fmt.Errorf("paths: reorder: unknown child %s", ck)
		}
		oldAbs[ck] = ctx.Index.AbsoluteLocation(item)
		length[ck] = item.EntireLength()
	}

	newAbs := make(map[document.Key]int, len(nextChildren))
	cursor := childrenStart
	for _, ck := range nextChildren {
		newAbs[ck] = cursor
		cursor += length[ck]
	}

	// Only the non-LIS runs move bytes. Each run is anchored to the old
	// position of the kept child immediately following it in the new
	// order (or the end of the children region for a trailing run), so
	// its reinsertion lands exactly where the splice needs it without
	// disturbing anything the LIS says is already in place.
	var instrs []instruction.Instruction
	for i := 0; i < len(nextChildren); {
		if kept[i] {
			i++
			continue
		}
		start := i
		for i < len(nextChildren) && !kept[i] {
			i++
		}
		run := nextChildren[start:i]

		anchor := childrenEnd
		if i < len(nextChildren) {
			anchor = oldAbs[nextChildren[i]]
		}

		parts := make([]buffer.AttributedString, 0, len(run))
		for _, ck := range run {
			instrs = append(instrs, instruction.Delete(buffer.Range{
				Start: oldAbs[ck],
				End:   oldAbs[ck] + length[ck],
			}))
			parts = append(parts, flattenAttributed(ctx.Next, ck, ctx.DefaultAttrs))
		}
		instrs = append(instrs, instruction.Insert(anchor, buffer.Concat(parts...)))
	}

	for _, ck := range nextChildren {
		node := ctx.Next.Nodes[ck]
		if node.Kind == document.KindElement && len(node.Children) > 0 {
			if _, err := ctx.Index.RecomputeSubtree(ctx.Next, ck, newAbs[ck]); err != nil {
				return false, instruction.Stats{}, fmt.Errorf("paths: reorder recompute: %w", err)
			}
			continue
		}
		if delta := newAbs[ck] - oldAbs[ck]; delta != 0 {
			if err := ctx.Index.ShiftRange(ck, ck, delta); err != nil {
				return false, instruction.Stats{}, fmt.Errorf("paths: reorder shift: %w", err)
			}
		}
	}
	ctx.Index.InvalidateDFSOrder()

	stats := ctx.App.Apply(instrs)
	return true, stats, nil
}

// singleReorderedParent finds the one key whose children are the same
// multiset in prev and next but in a different order, with every other
// key's children list identical. Returns ok=false if zero or more than one
// parent qualifies (ambiguous transitions fall through to the slow path).
func singleReorderedParent(prev, next *document.EditorState) (document.Key, bool) {
	var candidate document.Key
	found := false
	for k, pn := range prev.Nodes {
		nn, ok := next.Nodes[k]
		if !ok {
			continue
		}
		if keysEqual(pn.Children, nn.Children) {
			continue
		}
		if !sameMultiset(pn.Children, nn.Children) {
			return "", false
		}
		if found {
			return "", false
		}
		candidate = k
		found = true
	}
	return candidate, found
}

func sameMultiset(a, b []document.Key) bool {
	if len(a) != len(b) {
		return false
	}
	counts := map[document.Key]int{}
	for _, k := range a {
		counts[k]++
	}
	for _, k := range b {
		counts[k]--
	}
	for _, c := range counts {
		if c != 0 {
			return false
		}
	}
	return true
}

// permutationIndices maps each key in newOrder to its index in oldOrder.
func permutationIndices(oldOrder, newOrder []document.Key) []int {
	pos := make(map[document.Key]int, len(oldOrder))
	for i, k := range oldOrder {
		pos[k] = i
	}
	out := make([]int, len(newOrder))
	for i, k := range newOrder {
		out[i] = pos[k]
	}
	return out
}

// longestIncreasingSubsequence returns the indices (into seq) forming the
// longest increasing subsequence (non-decreasing where seq repeats a value,
// strictly increasing for a permutation), via patience sorting with
// binary search (golang.org/x/exp/slices.BinarySearch) for the O(n log n)
// tail-pile lookup.
func longestIncreasingSubsequence(seq []int) []int {
	if len(seq) == 0 {
		return nil
	}
	tails := make([]int, 0, len(seq))   // tails[i] = index into seq of the smallest tail of an increasing run of length i+1
	prev := make([]int, len(seq))
	tailValues := make([]int, 0, len(seq))

	for i, v := range seq {
		pos, found := slices.BinarySearch(tailValues, v)
		if found {
			pos++ // allow equal runs to extend past a duplicate value
		}
		if pos == len(tailValues) {
			tailValues = append(tailValues, v)
			tails = append(tails, i)
		} else {
			tailValues[pos] = v
			tails[pos] = i
		}
		if pos > 0 {
			prev[i] = tails[pos-1]
		} else {
			prev[i] = -1
		}
	}

	out := make([]int, len(tails))
	k := tails[len(tails)-1]
	for i := len(tails) - 1; i >= 0; i-- {
		out[i] = k
		k = prev[k]
	}
	return out
}
