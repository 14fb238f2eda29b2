package paths

import (
	"testing"

	"github.com/doctree/reconciler/pkg/buffer"
	"github.com/doctree/reconciler/pkg/document"
	"github.com/doctree/reconciler/pkg/instruction"
	"github.com/doctree/reconciler/pkg/rangeindex"
)

func TestTryTextOnlyDiffsOnlyTheChangedMiddle(t *testing.T) {
	b := document.NewBuilder()
	root := b.State().RootKey
	textKey := b.Text(root, "hello world")
	prev := b.State()

	ix := rangeindex.NewIndex()
	if _, err := ix.RecomputeSubtree(prev, root, 0); err != nil {
		t.Fatalf("RecomputeSubtree: %v", err)
	}
	buf := buffer.NewStringBuffer()
	buf.Insert(buffer.NewAttributedString("hello world", nil), 0)

	next := b.Clone()
	node, _ := next.State().Get(textKey)
	node.Text = "hello there world"

	ctx := &Context{
		Prev:   prev,
		Next:   next.State(),
		Index:  ix,
		Buffer: buf,
		App:    instruction.New(buf),
	}

	handled, _, err := TryTextOnly(ctx)
	if err != nil {
		t.Fatalf("TryTextOnly: %v", err)
	}
	if !handled {
		t.Fatal("TryTextOnly declined a single-node edit, want handled")
	}
	if got, want := buf.String(), "hello there world"; got != want {
		t.Fatalf("buf = %q, want %q", got, want)
	}

	item, _ := ix.Get(textKey)
	if item.TextLength != len("hello there world") {
		t.Fatalf("TextLength = %d, want %d", item.TextLength, len("hello there world"))
	}
}

func TestTryTextOnlyDeclinesOnStructuralChange(t *testing.T) {
	b := document.NewBuilder()
	root := b.State().RootKey
	b.Text(root, "hello")
	prev := b.State()

	next := b.Clone()
	next.Text(root, "world")

	ctx := &Context{Prev: prev, Next: next.State(), Index: rangeindex.NewIndex()}
	handled, _, err := TryTextOnly(ctx)
	if err != nil {
		t.Fatalf("TryTextOnly: %v", err)
	}
	if handled {
		t.Fatal("TryTextOnly handled a structural change, want declined")
	}
}
