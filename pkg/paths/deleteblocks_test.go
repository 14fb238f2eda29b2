package paths

import (
	"testing"

	"github.com/doctree/reconciler/pkg/buffer"
	"github.com/doctree/reconciler/pkg/document"
	"github.com/doctree/reconciler/pkg/instruction"
	"github.com/doctree/reconciler/pkg/rangeindex"
)

func TestTryDeleteBlocksRemovesContiguousSiblings(t *testing.T) {
	b := document.NewBuilder()
	root := b.State().RootKey
	b.Text(root, "a")
	middleKey := b.Text(root, "b")
	b.Text(root, "c")
	prev := b.State()

	ix := rangeindex.NewIndex()
	if _, err := ix.RecomputeSubtree(prev, root, 0); err != nil {
		t.Fatalf("RecomputeSubtree: %v", err)
	}
	buf := buffer.NewStringBuffer()
	buf.Insert(buffer.NewAttributedString("abc", nil), 0)

	next := b.Clone()
	next.Detach(middleKey)

	ctx := &Context{
		Prev:   prev,
		Next:   next.State(),
		Index:  ix,
		Buffer: buf,
		App:    instruction.New(buf),
	}

	handled, stats, err := TryDeleteBlocks(ctx)
	if err != nil {
		t.Fatalf("TryDeleteBlocks: %v", err)
	}
	if !handled {
		t.Fatal("TryDeleteBlocks declined a single-sibling removal, want handled")
	}
	if stats.Deletes != 1 {
		t.Fatalf("Deletes = %d, want 1", stats.Deletes)
	}
	if got, want := buf.String(), "ac"; got != want {
		t.Fatalf("buf = %q, want %q", got, want)
	}
	if _, ok := ix.Get(middleKey); ok {
		t.Fatal("index still tracks the removed key")
	}
}

func TestTryDeleteBlocksDeclinesOnNonContiguousRemoval(t *testing.T) {
	b := document.NewBuilder()
	root := b.State().RootKey
	first := b.Text(root, "a")
	b.Text(root, "b")
	third := b.Text(root, "c")
	prev := b.State()

	next := b.Clone()
	next.Detach(first)
	next.Detach(third)

	ctx := &Context{Prev: prev, Next: next.State(), Index: rangeindex.NewIndex()}
	handled, _, err := TryDeleteBlocks(ctx)
	if err != nil {
		t.Fatalf("TryDeleteBlocks: %v", err)
	}
	if handled {
		t.Fatal("TryDeleteBlocks handled a non-contiguous removal, want declined")
	}
}
