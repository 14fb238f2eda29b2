package paths

import (
	"testing"

	"github.com/doctree/reconciler/pkg/buffer"
	"github.com/doctree/reconciler/pkg/document"
	"github.com/doctree/reconciler/pkg/instruction"
	"github.com/doctree/reconciler/pkg/rangeindex"
)

func TestTrySingleBlockInsertAppendsSibling(t *testing.T) {
	b := document.NewBuilder()
	root := b.State().RootKey
	b.Text(root, "hello")
	prev := b.State()

	ix := rangeindex.NewIndex()
	if _, err := ix.RecomputeSubtree(prev, root, 0); err != nil {
		t.Fatalf("RecomputeSubtree: %v", err)
	}
	buf := buffer.NewStringBuffer()
	buf.Insert(buffer.NewAttributedString("hello", nil), 0)

	next := b.Clone()
	next.Text(root, " world")

	ctx := &Context{
		Prev:   prev,
		Next:   next.State(),
		Index:  ix,
		Buffer: buf,
		App:    instruction.New(buf),
	}

	handled, stats, err := TrySingleBlockInsert(ctx)
	if err != nil {
		t.Fatalf("TrySingleBlockInsert: %v", err)
	}
	if !handled {
		t.Fatal("TrySingleBlockInsert declined an unambiguous append, want handled")
	}
	if stats.Inserts != 1 {
		t.Fatalf("Inserts = %d, want 1", stats.Inserts)
	}
	if got, want := buf.String(), "hello world"; got != want {
		t.Fatalf("buf = %q, want %q", got, want)
	}
}

func TestTrySingleBlockInsertDeclinesOnMultipleAdds(t *testing.T) {
	b := document.NewBuilder()
	root := b.State().RootKey
	b.Text(root, "hello")
	prev := b.State()

	next := b.Clone()
	next.Text(root, " world")
	next.Text(root, "!")

	ctx := &Context{Prev: prev, Next: next.State(), Index: rangeindex.NewIndex()}
	handled, _, err := TrySingleBlockInsert(ctx)
	if err != nil {
		t.Fatalf("TrySingleBlockInsert: %v", err)
	}
	if handled {
		t.Fatal("TrySingleBlockInsert handled a two-node insert, want declined")
	}
}
