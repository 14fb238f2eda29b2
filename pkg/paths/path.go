// Package paths implements the classifier's fast paths and the canonical
// slow-path fallback. Each path is a plain function over a
// shared Context, returning a boolean did-handle with no exception-based
// control flow. Grounded on
// pkg/lotus/reconciler/context.go's canUseFastPath/UpdateWithElement, whose
// try-fast-path-then-fall-back-to-full-render shape generalizes here into
// classify.go's ordered ladder of path preconditions.
package paths

import (
	"github.com/doctree/reconciler/pkg/buffer"
	"github.com/doctree/reconciler/pkg/decorator"
	"github.com/doctree/reconciler/pkg/document"
	"github.com/doctree/reconciler/pkg/frontend"
	"github.com/doctree/reconciler/pkg/instruction"
	"github.com/doctree/reconciler/pkg/rangeindex"
)

// Context carries everything a path needs to inspect a transition and, if
// it handles it, apply instructions.
type Context struct {
	Prev   *document.EditorState
	Next   *document.EditorState
	Index  *rangeindex.Index
	Buffer buffer.Buffer
	App    *instruction.Applicator

	Frontend     frontend.Frontend
	Decorators   decorator.PositionCache
	MarkedOp     *document.MarkedTextOperation
	DefaultAttrs buffer.Attrs
}

// Path is one classify step: it inspects ctx and either fully applies the
// transition and returns handled=true, or declines (handled=false) having
// made no mutation.
type Path func(ctx *Context) (handled bool, stats instruction.Stats, err error)

// Named pairs a Path with the name telemetry reports for it.
type Named struct {
	Name string
	Run  Path
}

// sameKeySet reports whether prev and next contain exactly the same set of
// reachable keys.
func sameKeySet(prev, next *document.EditorState) bool {
	a := prev.Reachable()
	b := next.Reachable()
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// sameStructure reports whether every shared key has the same parent and
// the same ordered children list in both states (ignoring text/attrs).
func sameStructure(prev, next *document.EditorState) bool {
	for k, pn := range prev.Nodes {
		nn, ok := next.Nodes[k]
		if !ok {
			return false
		}
		if pn.Parent != nn.Parent || pn.HasParent != nn.HasParent || pn.Kind != nn.Kind {
			return false
		}
		if len(pn.Children) != len(nn.Children) {
			return false
		}
		for i := range pn.Children {
			if pn.Children[i] != nn.Children[i] {
				return false
			}
		}
	}
	return true
}

// differingTextKeys returns the keys whose Node.Text differs between prev
// and next, restricted to keys present in both; node kind is not compared.
func differingTextKeys(prev, next *document.EditorState) []document.Key {
	var out []document.Key
	for k, pn := range prev.Nodes {
		nn, ok := next.Nodes[k]
		if !ok {
			continue
		}
		if pn.Text != nn.Text {
			out = append(out, k)
		}
	}
	return out
}

// attrsDiffer reports whether any shared key's Styles or BlockAttrs
// changed.
func attrsDiffer(prev, next *document.EditorState) []document.Key {
	var out []document.Key
	for k, pn := range prev.Nodes {
		nn, ok := next.Nodes[k]
		if !ok {
			continue
		}
		if !stringMapsEqual(pn.Styles, nn.Styles) || !stringMapsEqual(pn.BlockAttrs, nn.BlockAttrs) {
			out = append(out, k)
		}
	}
	return out
}

// structuralOtherNodesUnchanged reports whether every node outside
// skipText has identical parent/kind/text/preamble/postamble/attrs between
// prev and next, and identical children lists except for parent (whose
// children list legitimately changed shape). Shared by every structural
// fast path (insert/split) to confirm the only real difference is the
// specific structural edit the path is about to apply.
func structuralOtherNodesUnchanged(prev, next *document.EditorState, skipText map[document.Key]bool, parent document.Key) bool {
	for k, pn := range prev.Nodes {
		if skipText[k] {
			continue
		}
		nn, ok := next.Nodes[k]
		if !ok {
			return false
		}
		if pn.Parent != nn.Parent || pn.HasParent != nn.HasParent || pn.Kind != nn.Kind {
			return false
		}
		if pn.Text != nn.Text || pn.Preamble != nn.Preamble || pn.Postamble != nn.Postamble {
			return false
		}
		if !stringMapsEqual(pn.Styles, nn.Styles) || !stringMapsEqual(pn.BlockAttrs, nn.BlockAttrs) {
			return false
		}
		if k == parent {
			continue
		}
		if !keysEqual(pn.Children, nn.Children) {
			return false
		}
	}
	return true
}

// subtreeSet returns key and every descendant of key in state, as a set,
// used to exclude a just-recomputed subtree's own items from a
// ShiftLocationsAfter sweep.
func subtreeSet(state *document.EditorState, key document.Key) map[document.Key]bool {
	keys := state.Subtree(key)
	out := make(map[document.Key]bool, len(keys))
	for _, k := range keys {
		out[k] = true
	}
	return out
}

func stringMapsEqual[M ~map[string]string](a, b M) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}

// flattenAttributed renders key's own contributed text (preamble+text+
// postamble, recursing into children in order) as an AttributedString,
// used by the slow path and fresh-hydration to populate a buffer from
// scratch.
func flattenAttributed(state *document.EditorState, key document.Key, attrs buffer.Attrs) buffer.AttributedString {
	node, ok := state.Get(key)
	if !ok {
		return buffer.AttributedString{}
	}
	parts := []buffer.AttributedString{
		buffer.NewAttributedString(node.Preamble, mergeAttrs(attrs, node.Styles)),
	}
	if node.Kind == document.KindElement {
		for _, c := range node.Children {
			parts = append(parts, flattenAttributed(state, c, attrs))
		}
	} else {
		text := node.Text
		if node.Kind == document.KindDecorator && text == "" {
			text = "￼"
		}
		parts = append(parts, buffer.NewAttributedString(text, mergeAttrs(attrs, node.Styles)))
	}
	parts = append(parts, buffer.NewAttributedString(node.Postamble, mergeAttrs(attrs, node.Styles)))
	return buffer.Concat(parts...)
}

func mergeAttrs(base buffer.Attrs, styles document.Attributes) buffer.Attrs {
	if len(styles) == 0 {
		return base
	}
	out := base.Clone()
	if out == nil {
		out = buffer.Attrs{}
	}
	for k, v := range styles {
		out[k] = v
	}
	return out
}

// graphemeDiff finds the longest common grapheme-cluster prefix and suffix
// between oldText and newText, never splitting a cluster.
// It returns the UTF-16 offsets, in oldText/newText respectively, that
// bound the differing middle span.
func graphemeDiff(oldText, newText string) (oldStart, oldEnd, newStart, newEnd int) {
	oldBounds := buffer.GraphemeBoundaries(oldText)
	newBounds := buffer.GraphemeBoundaries(newText)
	oldUnits := buffer.UTF16FromString(oldText)
	newUnits := buffer.UTF16FromString(newText)

	lcp := 0
	for lcp < len(oldBounds)-1 && lcp < len(newBounds)-1 && oldBounds[lcp+1] <= len(oldUnits) && newBounds[lcp+1] <= len(newUnits) {
		oStart, oEndB := oldBounds[lcp], oldBounds[lcp+1]
		nStart, nEndB := newBounds[lcp], newBounds[lcp+1]
		if !unitsEqual(oldUnits[oStart:oEndB], newUnits[nStart:nEndB]) {
			break
		}
		lcp++
	}

	oldSuffix := len(oldBounds) - 1
	newSuffix := len(newBounds) - 1
	for oldSuffix > lcp && newSuffix > lcp {
		oStart, oEndB := oldBounds[oldSuffix-1], oldBounds[oldSuffix]
		nStart, nEndB := newBounds[newSuffix-1], newBounds[newSuffix]
		if !unitsEqual(oldUnits[oStart:oEndB], newUnits[nStart:nEndB]) {
			break
		}
		oldSuffix--
		newSuffix--
	}

	return oldBounds[lcp], oldBounds[oldSuffix], newBounds[lcp], newBounds[newSuffix]
}

func unitsEqual(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
