package paths

import (
	"testing"

	"github.com/doctree/reconciler/pkg/buffer"
	"github.com/doctree/reconciler/pkg/document"
	"github.com/doctree/reconciler/pkg/instruction"
	"github.com/doctree/reconciler/pkg/rangeindex"
)

func TestTryAttributeOnlySetsStyleWithoutTouchingBuffer(t *testing.T) {
	b := document.NewBuilder()
	root := b.State().RootKey
	textKey := b.Text(root, "hello")
	prev := b.State()

	ix := rangeindex.NewIndex()
	if _, err := ix.RecomputeSubtree(prev, root, 0); err != nil {
		t.Fatalf("RecomputeSubtree: %v", err)
	}
	buf := buffer.NewStringBuffer()
	buf.Insert(buffer.NewAttributedString("hello", nil), 0)

	next := b.Clone()
	next.SetStyle(textKey, "bold", "true")

	ctx := &Context{
		Prev:   prev,
		Next:   next.State(),
		Index:  ix,
		Buffer: buf,
		App:    instruction.New(buf),
	}

	handled, stats, err := TryAttributeOnly(ctx)
	if err != nil {
		t.Fatalf("TryAttributeOnly: %v", err)
	}
	if !handled {
		t.Fatal("TryAttributeOnly declined a pure style change, want handled")
	}
	if stats.AttributeSets != 1 {
		t.Fatalf("AttributeSets = %d, want 1", stats.AttributeSets)
	}
	if got, want := buf.String(), "hello"; got != want {
		t.Fatalf("buf = %q, want unchanged %q", got, want)
	}
}

func TestTryAttributeOnlyDeclinesWhenTextChanges(t *testing.T) {
	b := document.NewBuilder()
	root := b.State().RootKey
	textKey := b.Text(root, "hello")
	prev := b.State()

	next := b.Clone()
	node, _ := next.State().Get(textKey)
	node.Text = "hellp"

	ctx := &Context{Prev: prev, Next: next.State(), Index: rangeindex.NewIndex()}
	handled, _, err := TryAttributeOnly(ctx)
	if err != nil {
		t.Fatalf("TryAttributeOnly: %v", err)
	}
	if handled {
		t.Fatal("TryAttributeOnly handled a text change, want declined")
	}
}
