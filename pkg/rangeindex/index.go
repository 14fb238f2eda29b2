package rangeindex

import (
	"fmt"

	"github.com/doctree/reconciler/pkg/buffer"
	"github.com/doctree/reconciler/pkg/document"
	"github.com/doctree/reconciler/pkg/fenwick"
)

// decoratorMarker is the single code unit a decorator with no literal text
// contributes to the buffer.
const decoratorMarker = "￼"

// MapEntry is one (key, part, local-range) hit returned by Map, in document
// order.
type MapEntry struct {
	Key   document.Key
	Part  Part
	Start int // local offset into the named part
	End   int
}

// Index is the RangeIndex: a flat map of per-node
// RangeCacheItems plus a Fenwick tree of pending suffix-shift deltas.
// Grounded on pkg/lotus/reconciler/cache.go's global cache with a
// SetEnabled/Clear/Size capability-toggle shape, generalized here into the
// Lazy field gating eager-vs-Fenwick suffix shifts.
type Index struct {
	items         map[document.Key]*Item
	dfsOrder      []document.Key
	dfsValid      bool
	fen           *fenwick.Tree
	nextNodeIndex int

	// Lazy selects the Fenwick-backed O(log N) ShiftSuffix when true, and
	// the eager O(N) walk when false.
	Lazy bool
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		items: make(map[document.Key]*Item),
		fen:   fenwick.New(0),
	}
}

// Get returns the cached item for key.
func (ix *Index) Get(key document.Key) (*Item, bool) {
	it, ok := ix.items[key]
	return it, ok
}

// Size reports how many nodes are currently tracked.
func (ix *Index) Size() int { return len(ix.items) }

// AbsoluteLocation resolves an item's true buffer location, folding in any
// pending lazy Fenwick delta.
func (ix *Index) AbsoluteLocation(it *Item) int {
	if ix.Lazy {
		return it.Location + ix.fen.PrefixSum(it.NodeIndex)
	}
	return it.Location
}

func (ix *Index) allocateNodeIndex() int {
	ix.nextNodeIndex++
	return ix.nextNodeIndex
}

// itemFor returns the existing item for key or allocates a fresh one with a
// new dense node_index.
func (ix *Index) itemFor(key document.Key) *Item {
	if it, ok := ix.items[key]; ok {
		return it
	}
	it := &Item{Key: key, NodeIndex: ix.allocateNodeIndex()}
	ix.items[key] = it
	return it
}

// Reset discards every tracked item and the node_index counter, used by
// the slow path before rebuilding the whole tree from scratch, replace buffer wholesale").
func (ix *Index) Reset() {
	ix.items = make(map[document.Key]*Item)
	ix.dfsOrder = nil
	ix.dfsValid = false
	ix.fen = fenwick.New(0)
	ix.nextNodeIndex = 0
}

// Prune removes exactly the given keys from the index (it does not look up
// descendants itself), used by the delete-blocks path with every key of a
// subtree once that subtree has been spliced out of the buffer.
func (ix *Index) Prune(keys []document.Key) {
	for _, k := range keys {
		delete(ix.items, k)
	}
	ix.dfsValid = false
}

// RecomputeSubtree rewrites location and part lengths for key and every
// descendant, in DFS order, starting key at startLocation. It returns the subtree's new entire_length.
func (ix *Index) RecomputeSubtree(state *document.EditorState, key document.Key, startLocation int) (int, error) {
	node, ok := state.Get(key)
	if !ok {
		return 0, fmt.Errorf("rangeindex: recompute %s: %w", key, ErrUnknownKey)
	}

	it := ix.itemFor(key)
	it.Location = startLocation
	it.PreambleLength = buffer.UTF16Len(node.Preamble)
	it.PostambleLength = buffer.UTF16Len(node.Postamble)

	if node.Kind != document.KindElement {
		text := node.Text
		if node.Kind == document.KindDecorator && text == "" {
			text = decoratorMarker
		}
		it.TextLength = buffer.UTF16Len(text)
		it.ChildrenLength = 0
	} else {
		it.TextLength = buffer.UTF16Len(node.Text)
		childLoc := startLocation + it.PreambleLength
		childrenLen := 0
		for _, childKey := range node.Children {
			l, err := ix.RecomputeSubtree(state, childKey, childLoc+childrenLen)
			if err != nil {
				return 0, err
			}
			childrenLen += l
		}
		it.ChildrenLength = childrenLen
	}

	ix.dfsValid = false
	return it.EntireLength(), nil
}

// PropagateChildrenDelta adds delta to parentKey's children_length and to
// every ancestor's children_length up the tree, keeping the sum rule
// intact after a child subtree's entire_length changes by
// delta without a full recompute.
func (ix *Index) PropagateChildrenDelta(state *document.EditorState, parentKey document.Key, delta int) {
	if delta == 0 {
		return
	}
	k := parentKey
	for {
		if it, ok := ix.items[k]; ok {
			it.ChildrenLength += delta
		}
		node, ok := state.Get(k)
		if !ok || !node.HasParent {
			return
		}
		k = node.Parent
	}
}

// ShiftSuffix adds delta to the location of every item whose node_index
// exceeds afterItem's, i.e. everything positioned after afterKey in DFS
// order. Dispatches to the eager O(N) walk or
// the lazy O(log N) Fenwick update per ix.Lazy.
//
// This is only valid when the set of tracked node_index values and their
// relative DFS order are unchanged since the last rebuild — true for a
// pure text-length change, false immediately after an insert/delete/reorder
// (a freshly allocated node_index is appended to the counter, not spliced
// into its document-order position). Structural paths call
// ShiftLocationsAfter instead, which shifts by absolute location rather
// than by node_index.
func (ix *Index) ShiftSuffix(state *document.EditorState, afterKey document.Key, delta int) error {
	if delta == 0 {
		return nil
	}
	after, ok := ix.items[afterKey]
	if !ok {
		return fmt.Errorf("rangeindex: shift_suffix %s: %w", afterKey, ErrUnknownKey)
	}
	if ix.Lazy {
		ix.fen.Add(after.NodeIndex+1, delta)
		return nil
	}
	ix.EnsureDFSOrder(state)
	for _, k := range ix.dfsOrder {
		it := ix.items[k]
		if it.NodeIndex > after.NodeIndex {
			it.Location += delta
		}
	}
	return nil
}

// ShiftLocationsAfter adds delta to the Location of every tracked item
// (other than those in exclude) whose current absolute location is >=
// threshold. Used by the insert/delete/split/composition paths after they've
// already assigned correct final locations to the subtree they just
// touched (via RecomputeSubtree) and need every *other* node past the
// edited span to shift by the edit's net length change. Operating on a location threshold rather than walking
// "after this key" in DFS order sidesteps a subtlety key-based shifting
// gets wrong: if the touched key itself has descendants, its own subtree's
// items sit immediately after it in DFS order and must not be shifted
// twice. Callers must call MaterializeFenwick first so every item's
// Location is already absolute.
func (ix *Index) ShiftLocationsAfter(threshold, delta int, exclude map[document.Key]bool) {
	if delta == 0 {
		return
	}
	for k, it := range ix.items {
		if exclude[k] {
			continue
		}
		if it.Location >= threshold {
			it.Location += delta
		}
	}
	ix.dfsValid = false
}

// ShiftRange adds delta to the location of every item whose node_index
// falls in [fromKey, toKey] inclusive, used by the reorder path with
// fromKey == toKey to move one leaf child's item.
func (ix *Index) ShiftRange(fromKey, toKey document.Key, delta int) error {
	if delta == 0 {
		return nil
	}
	from, ok := ix.items[fromKey]
	if !ok {
		return fmt.Errorf("rangeindex: shift_range %s: %w", fromKey, ErrUnknownKey)
	}
	to, ok := ix.items[toKey]
	if !ok {
		return fmt.Errorf("rangeindex: shift_range %s: %w", toKey, ErrUnknownKey)
	}
	if ix.Lazy {
		ix.fen.AddRange(from.NodeIndex, to.NodeIndex, delta)
		return nil
	}
	for _, it := range ix.items {
		if it.NodeIndex >= from.NodeIndex && it.NodeIndex <= to.NodeIndex {
			it.Location += delta
		}
	}
	return nil
}

// InvalidateDFSOrder marks the cached DFS key order stale, used by paths
// that reorder siblings via ShiftRange instead of RecomputeSubtree (which
// invalidates it implicitly) so the next EnsureDFSOrder call rebuilds
// document order from the freshly reordered state.
func (ix *Index) InvalidateDFSOrder() {
	ix.dfsValid = false
}

// MaterializeFenwick folds every pending Fenwick delta into each item's
// Location and clears the tree, used by the structural paths before they
// read or rewrite plain locations.
func (ix *Index) MaterializeFenwick() {
	for _, it := range ix.items {
		it.Location += ix.fen.PrefixSum(it.NodeIndex)
	}
	ix.fen.Clear()
}

// EnsureDFSOrder rebuilds the cached DFS key order if it was invalidated by
// a structural change since the last rebuild.
func (ix *Index) EnsureDFSOrder(state *document.EditorState) {
	if ix.dfsValid {
		return
	}
	ix.RebuildDFSOrder(state)
}

// RebuildDFSOrder unconditionally recomputes the DFS key order and each
// item's DFSPosition.
func (ix *Index) RebuildDFSOrder(state *document.EditorState) {
	order := make([]document.Key, 0, len(ix.items))
	var walk func(document.Key)
	walk = func(k document.Key) {
		node, ok := state.Get(k)
		if !ok {
			return
		}
		order = append(order, k)
		for _, c := range node.Children {
			walk(c)
		}
	}
	walk(state.RootKey)

	ix.dfsOrder = order
	for i, k := range order {
		if it, ok := ix.items[k]; ok {
			it.DFSPosition = i
		}
	}
	ix.dfsValid = true
}

// Resolve maps an absolute buffer location to its tree-level Point.
// direction disambiguates which side of an exact child
// boundary to prefer.
func (ix *Index) Resolve(state *document.EditorState, location int, direction Direction) (Point, error) {
	root, ok := ix.items[state.RootKey]
	if !ok {
		return Point{}, fmt.Errorf("rangeindex: resolve: %w", ErrUnknownKey)
	}
	rootAbs := ix.AbsoluteLocation(root)
	if location < rootAbs || location > rootAbs+root.EntireLength() {
		return Point{}, fmt.Errorf("rangeindex: resolve %d: %w", location, ErrOutOfBounds)
	}
	return ix.resolveNode(state, state.RootKey, location, direction)
}

func (ix *Index) resolveNode(state *document.EditorState, key document.Key, location int, direction Direction) (Point, error) {
	it, ok := ix.items[key]
	if !ok {
		return Point{}, fmt.Errorf("rangeindex: resolve: %w", ErrUnknownKey)
	}
	abs := ix.AbsoluteLocation(it)
	preambleEnd := abs + it.PreambleLength
	childrenEnd := preambleEnd + it.ChildrenLength
	textEnd := childrenEnd + it.TextLength

	switch {
	case location < preambleEnd:
		return Point{Key: key, Part: PartPreamble, Offset: location - abs}, nil
	case location < childrenEnd:
		return ix.resolveChild(state, key, location, direction)
	case location < textEnd, direction == Backward && location == textEnd && it.TextLength > 0:
		return Point{Key: key, Part: PartText, Offset: location - childrenEnd}, nil
	default:
		return Point{Key: key, Part: PartPostamble, Offset: location - textEnd}, nil
	}
}

func (ix *Index) resolveChild(state *document.EditorState, parentKey document.Key, location int, direction Direction) (Point, error) {
	node, ok := state.Get(parentKey)
	if !ok || len(node.Children) == 0 {
		return Point{Key: parentKey, Part: PartChildrenBoundary, Offset: 0}, nil
	}
	parent := ix.items[parentKey]
	cursor := parent.ChildrenStart(ix.AbsoluteLocation(parent))

	for i, childKey := range node.Children {
		childItem, ok := ix.items[childKey]
		if !ok {
			return Point{}, fmt.Errorf("rangeindex: resolve: %w", ErrUnknownKey)
		}
		entireLen := childItem.EntireLength()
		childEnd := cursor + entireLen

		if location == cursor && i > 0 && direction == Backward {
			return ix.resolveNode(state, node.Children[i-1], location, direction)
		}
		if location < childEnd {
			return ix.resolveNode(state, childKey, location, direction)
		}
		cursor = childEnd
	}
	return Point{Key: parentKey, Part: PartChildrenBoundary, Offset: 0}, nil
}

// Map enumerates every (key, part, local-range) segment overlapping r, in
// document order. Grounded on
// pkg/lotus/render/diff.go's DiffRegion/mergeRegions shape, adapted from
// merging adjacent dirty screen regions to walking preamble/children/text/
// postamble in document order.
func (ix *Index) Map(state *document.EditorState, r Range) ([]MapEntry, error) {
	if _, ok := ix.items[state.RootKey]; !ok {
		return nil, fmt.Errorf("rangeindex: map: %w", ErrUnknownKey)
	}
	var out []MapEntry
	var walk func(document.Key)
	walk = func(key document.Key) {
		node, ok := state.Get(key)
		if !ok {
			return
		}
		it, ok := ix.items[key]
		if !ok {
			return
		}
		abs := ix.AbsoluteLocation(it)
		preambleEnd := abs + it.PreambleLength

		if seg, ok := overlap(abs, preambleEnd, r); ok {
			out = append(out, MapEntry{Key: key, Part: PartPreamble, Start: seg.Start - abs, End: seg.End - abs})
		}
		for _, c := range node.Children {
			walk(c)
		}

		childrenEnd := abs + it.PreambleLength + it.ChildrenLength
		textEnd := childrenEnd + it.TextLength
		if seg, ok := overlap(childrenEnd, textEnd, r); ok {
			out = append(out, MapEntry{Key: key, Part: PartText, Start: seg.Start - childrenEnd, End: seg.End - childrenEnd})
		}

		postambleEnd := textEnd + it.PostambleLength
		if seg, ok := overlap(textEnd, postambleEnd, r); ok {
			out = append(out, MapEntry{Key: key, Part: PartPostamble, Start: seg.Start - textEnd, End: seg.End - textEnd})
		}
	}
	walk(state.RootKey)
	return out, nil
}

// overlap intersects [start, end) with r, reporting ok=false for an empty
// intersection.
func overlap(start, end int, r Range) (Range, bool) {
	s := start
	if r.Start > s {
		s = r.Start
	}
	e := end
	if r.End < e {
		e = r.End
	}
	if s >= e {
		return Range{}, false
	}
	return Range{Start: s, End: e}, true
}
