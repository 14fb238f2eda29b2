package rangeindex

import (
	"testing"

	"github.com/doctree/reconciler/pkg/document"
)

// buildSimpleTree makes root -> [text("hello"), text(" world")].
func buildSimpleTree() (*document.EditorState, document.Key, document.Key) {
	b := document.NewBuilder()
	root := b.State().RootKey
	t1 := b.Text(root, "hello")
	t2 := b.Text(root, " world")
	return b.State(), t1, t2
}

func newIndexFor(t *testing.T, state *document.EditorState, lazy bool) *Index {
	t.Helper()
	ix := NewIndex()
	ix.Lazy = lazy
	if _, err := ix.RecomputeSubtree(state, state.RootKey, 0); err != nil {
		t.Fatalf("RecomputeSubtree: %v", err)
	}
	return ix
}

func TestRecomputeSubtreeLengths(t *testing.T) {
	state, t1, t2 := buildSimpleTree()
	ix := newIndexFor(t, state, false)

	root, ok := ix.Get(state.RootKey)
	if !ok {
		t.Fatal("missing root item")
	}
	if got, want := root.EntireLength(), len("hello")+len(" world"); got != want {
		t.Fatalf("root entire length = %d, want %d", got, want)
	}

	it1, _ := ix.Get(t1)
	if it1.Location != 0 || it1.TextLength != 5 {
		t.Fatalf("t1 = %+v, want location=0 textLength=5", it1)
	}
	it2, _ := ix.Get(t2)
	if it2.Location != 5 || it2.TextLength != 6 {
		t.Fatalf("t2 = %+v, want location=5 textLength=6", it2)
	}
}

func TestResolveBoundaryDirection(t *testing.T) {
	state, t1, t2 := buildSimpleTree()
	ix := newIndexFor(t, state, false)

	// location 5 is the boundary between t1's end and t2's start.
	fwd, err := ix.Resolve(state, 5, Forward)
	if err != nil {
		t.Fatalf("Resolve forward: %v", err)
	}
	if fwd.Key != t2 || fwd.Offset != 0 {
		t.Fatalf("forward at boundary = %+v, want key=t2 offset=0", fwd)
	}

	back, err := ix.Resolve(state, 5, Backward)
	if err != nil {
		t.Fatalf("Resolve backward: %v", err)
	}
	if back.Key != t1 || back.Offset != 5 {
		t.Fatalf("backward at boundary = %+v, want key=t1 offset=5", back)
	}
}

func TestResolveOutOfBounds(t *testing.T) {
	state, _, _ := buildSimpleTree()
	ix := newIndexFor(t, state, false)

	if _, err := ix.Resolve(state, -1, Forward); err == nil {
		t.Fatal("expected error for negative location")
	}
	if _, err := ix.Resolve(state, 100, Forward); err == nil {
		t.Fatal("expected error for out-of-range location")
	}
}

func TestShiftSuffixEagerAndLazyAgree(t *testing.T) {
	state, t1, t2 := buildSimpleTree()

	eager := newIndexFor(t, state, false)
	lazy := newIndexFor(t, state, true)

	if err := eager.ShiftSuffix(state, t1, 3); err != nil {
		t.Fatalf("eager ShiftSuffix: %v", err)
	}
	if err := lazy.ShiftSuffix(state, t1, 3); err != nil {
		t.Fatalf("lazy ShiftSuffix: %v", err)
	}

	eagerIt, _ := eager.Get(t2)
	lazyIt, _ := lazy.Get(t2)
	if got, want := lazy.AbsoluteLocation(lazyIt), eager.AbsoluteLocation(eagerIt); got != want {
		t.Fatalf("lazy absolute location = %d, want %d (eager)", got, want)
	}

	t1Eager, _ := eager.Get(t1)
	t1Lazy, _ := lazy.Get(t1)
	if eager.AbsoluteLocation(t1Eager) != lazy.AbsoluteLocation(t1Lazy) {
		t.Fatal("t1 (before shift point) must be unaffected in both modes")
	}
}

func TestMaterializeFenwickFoldsDeltas(t *testing.T) {
	state, t1, t2 := buildSimpleTree()
	ix := newIndexFor(t, state, true)

	if err := ix.ShiftSuffix(state, t1, 4); err != nil {
		t.Fatalf("ShiftSuffix: %v", err)
	}
	before := ix.AbsoluteLocation(mustGet(t, ix, t2))
	ix.MaterializeFenwick()
	after := mustGet(t, ix, t2).Location

	if before != after {
		t.Fatalf("materialize changed absolute location: before=%d after=%d", before, after)
	}
	if !ix.fen.IsClean() {
		t.Fatal("fenwick tree should be clean after materialize")
	}
}

func TestPropagateChildrenDelta(t *testing.T) {
	b := document.NewBuilder()
	root := b.State().RootKey
	para := b.Element(root, "", "")
	txt := b.Text(para, "hi")
	state := b.State()

	ix := newIndexFor(t, state, false)
	rootItem, _ := ix.Get(root)
	paraItem, _ := ix.Get(para)
	_ = txt

	if rootItem.ChildrenLength != paraItem.EntireLength() {
		t.Fatalf("sum rule violated before propagate: root.children=%d para.entire=%d", rootItem.ChildrenLength, paraItem.EntireLength())
	}

	ix.PropagateChildrenDelta(state, para, 3)
	if want := 2 + 3; paraItem.ChildrenLength != want {
		t.Fatalf("para.ChildrenLength = %d, want %d", paraItem.ChildrenLength, want)
	}
	if rootItem.ChildrenLength != paraItem.EntireLength() {
		t.Fatalf("sum rule violated after propagate: root.children=%d para.entire=%d", rootItem.ChildrenLength, paraItem.EntireLength())
	}
}

func TestMapEnumeratesInDocumentOrder(t *testing.T) {
	state, t1, t2 := buildSimpleTree()
	ix := newIndexFor(t, state, false)

	entries, err := ix.Map(state, Range{Start: 3, End: 8})
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %+v, want 2", entries)
	}
	if entries[0].Key != t1 || entries[0].Part != PartText {
		t.Fatalf("entries[0] = %+v, want t1/text", entries[0])
	}
	if entries[1].Key != t2 || entries[1].Part != PartText {
		t.Fatalf("entries[1] = %+v, want t2/text", entries[1])
	}
	if entries[0].Start != 3 || entries[0].End != 5 {
		t.Fatalf("entries[0] range = [%d,%d), want [3,5)", entries[0].Start, entries[0].End)
	}
	if entries[1].Start != 0 || entries[1].End != 3 {
		t.Fatalf("entries[1] range = [%d,%d), want [0,3)", entries[1].Start, entries[1].End)
	}
}

func mustGet(t *testing.T, ix *Index, k document.Key) *Item {
	t.Helper()
	it, ok := ix.Get(k)
	if !ok {
		t.Fatalf("missing item for %s", k)
	}
	return it
}
