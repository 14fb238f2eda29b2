package paths

import (
	"testing"

	"github.com/doctree/reconciler/pkg/buffer"
	"github.com/doctree/reconciler/pkg/document"
	"github.com/doctree/reconciler/pkg/instruction"
	"github.com/doctree/reconciler/pkg/rangeindex"
)

func TestTryParagraphSplitSplitsTextIntoSibling(t *testing.T) {
	b := document.NewBuilder()
	root := b.State().RootKey
	splitKey := b.Text(root, "hello world")
	prev := b.State()

	ix := rangeindex.NewIndex()
	if _, err := ix.RecomputeSubtree(prev, root, 0); err != nil {
		t.Fatalf("RecomputeSubtree: %v", err)
	}
	buf := buffer.NewStringBuffer()
	buf.Insert(buffer.NewAttributedString("hello world", nil), 0)

	next := b.Clone()
	node, _ := next.State().Get(splitKey)
	node.Text = "hello "
	next.Text(root, "world")

	ctx := &Context{
		Prev:   prev,
		Next:   next.State(),
		Index:  ix,
		Buffer: buf,
		App:    instruction.New(buf),
	}

	handled, _, err := TryParagraphSplit(ctx)
	if err != nil {
		t.Fatalf("TryParagraphSplit: %v", err)
	}
	if !handled {
		t.Fatal("TryParagraphSplit declined a clean split, want handled")
	}
	if got, want := buf.String(), "hello world"; got != want {
		t.Fatalf("buf = %q, want %q (split shouldn't change total content)", got, want)
	}

	splitItem, _ := ix.Get(splitKey)
	if splitItem.TextLength != len("hello ") {
		t.Fatalf("split node TextLength = %d, want %d", splitItem.TextLength, len("hello "))
	}
}

func TestTryParagraphSplitDeclinesWhenTextDoesntConcatenate(t *testing.T) {
	b := document.NewBuilder()
	root := b.State().RootKey
	splitKey := b.Text(root, "hello world")
	prev := b.State()

	next := b.Clone()
	node, _ := next.State().Get(splitKey)
	node.Text = "hello "
	next.Text(root, "planet") // doesn't concatenate back to "hello world"

	ctx := &Context{Prev: prev, Next: next.State(), Index: rangeindex.NewIndex()}
	handled, _, err := TryParagraphSplit(ctx)
	if err != nil {
		t.Fatalf("TryParagraphSplit: %v", err)
	}
	if handled {
		t.Fatal("TryParagraphSplit handled a non-concatenating split, want declined")
	}
}
