package classify

import (
	"context"
	"testing"

	"github.com/doctree/reconciler/pkg/buffer"
	"github.com/doctree/reconciler/pkg/document"
	"github.com/doctree/reconciler/pkg/instruction"
	"github.com/doctree/reconciler/pkg/paths"
	"github.com/doctree/reconciler/pkg/rangeindex"
)

func newPathContext(prev, next *document.EditorState, ix *rangeindex.Index, buf buffer.Buffer) *paths.Context {
	return &paths.Context{
		Prev:  prev,
		Next:  next,
		Index: ix,
		Buffer: buf,
		App:   instruction.New(buf),
	}
}

func TestRunPicksFreshHydrationOnEmptyIndex(t *testing.T) {
	b := document.NewBuilder()
	root := b.State().RootKey
	para := b.Element(root, "", "\n")
	b.Text(para, "hello")

	ix := rangeindex.NewIndex()
	buf := buffer.NewStringBuffer()
	pctx := newPathContext(document.NewEditorState(root), b.State(), ix, buf)

	result, err := Run(context.Background(), pctx, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.PathName != "fresh-hydration" {
		t.Fatalf("PathName = %q, want fresh-hydration", result.PathName)
	}
	if got, want := buf.String(), "hello\n"; got != want {
		t.Fatalf("buf = %q, want %q", got, want)
	}
}

func TestRunPicksTextOnlyAfterHydration(t *testing.T) {
	b := document.NewBuilder()
	root := b.State().RootKey
	para := b.Element(root, "", "\n")
	textKey := b.Text(para, "hello")

	ix := rangeindex.NewIndex()
	buf := buffer.NewStringBuffer()
	pctx := newPathContext(document.NewEditorState(root), b.State(), ix, buf)
	if _, err := Run(context.Background(), pctx, nil); err != nil {
		t.Fatalf("hydration Run: %v", err)
	}

	prev := b.State()
	next := b.Clone()
	node, _ := next.State().Get(textKey)
	node.Text = "hellothere"
	next.MarkDirty(textKey, "edit")

	pctx2 := newPathContext(prev, next.State(), ix, buf)
	result, err := Run(context.Background(), pctx2, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.PathName != "text-only" {
		t.Fatalf("PathName = %q, want text-only", result.PathName)
	}
	if got, want := buf.String(), "hellothere\n"; got != want {
		t.Fatalf("buf = %q, want %q", got, want)
	}
}

func TestRunNoneDirtyTouchesNothing(t *testing.T) {
	b := document.NewBuilder()
	root := b.State().RootKey
	para := b.Element(root, "", "\n")
	b.Text(para, "hello")

	ix := rangeindex.NewIndex()
	buf := buffer.NewStringBuffer()
	pctx := newPathContext(document.NewEditorState(root), b.State(), ix, buf)
	if _, err := Run(context.Background(), pctx, nil); err != nil {
		t.Fatalf("hydration Run: %v", err)
	}

	before := buf.String()
	prev := b.State()
	next := b.Clone()
	next.State().DirtyType = document.DirtyNone

	pctx2 := newPathContext(prev, next.State(), ix, buf)
	result, err := Run(context.Background(), pctx2, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.PathName != "none-dirty" {
		t.Fatalf("PathName = %q, want none-dirty", result.PathName)
	}
	if buf.String() != before {
		t.Fatalf("buffer mutated by none-dirty path: %q != %q", buf.String(), before)
	}
}
