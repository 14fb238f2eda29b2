// Package selection projects tree-level selection points through a
// reconcile and resolves them back to absolute buffer locations. Grounded on pkg/lotus/reconciler/context.go's
// GetCursorPosition/SetFocus/GetFocus (translating a component's logical
// position into terminal row/col and tracking which component currently
// owns the cursor), generalized from a single focused-component ID to a
// full anchor/focus Selection projected against the RangeIndex.
package selection

import (
	"fmt"

	"github.com/doctree/reconciler/pkg/document"
	"github.com/doctree/reconciler/pkg/rangeindex"
)

// ResolveInverse maps a tree-level Point back to its absolute buffer
// location, the inverse of Index.Resolve.
func ResolveInverse(ix *rangeindex.Index, state *document.EditorState, p rangeindex.Point) (int, error) {
	it, ok := ix.Get(p.Key)
	if !ok {
		return 0, fmt.Errorf("selection: resolve_inverse %s: %w", p.Key, rangeindex.ErrUnknownKey)
	}
	abs := ix.AbsoluteLocation(it)

	switch p.Part {
	case rangeindex.PartPreamble:
		return abs + p.Offset, nil
	case rangeindex.PartText:
		return it.TextStart(abs) + p.Offset, nil
	case rangeindex.PartPostamble:
		return it.PostambleStart(abs) + p.Offset, nil
	case rangeindex.PartChildrenBoundary:
		return it.ChildrenStart(abs), nil
	default:
		return 0, fmt.Errorf("selection: resolve_inverse %s: unknown part %v", p.Key, p.Part)
	}
}

// Point is a tree-level selection endpoint,
// deliberately a thin alias of the document package's SelectionPoint so
// callers building a document.Selection and the RangeIndex speak the same
// shape without an extra conversion type.
type Point = document.SelectionPoint

// ProjectedSelection is an anchor/focus pair already resolved to absolute
// buffer locations, the form a host text-input control consumes directly.
type ProjectedSelection struct {
	AnchorLocation int
	FocusLocation  int
}

// Collapsed reports whether the projected selection has zero length.
func (p ProjectedSelection) Collapsed() bool { return p.AnchorLocation == p.FocusLocation }

// Project resolves a document.Selection's anchor and focus tree points to
// absolute buffer locations via ix.
func Project(ix *rangeindex.Index, state *document.EditorState, sel *document.Selection) (ProjectedSelection, error) {
	if sel == nil {
		return ProjectedSelection{}, nil
	}
	anchor, err := ResolveInverse(ix, state, toRangeIndexPart(sel.Anchor))
	if err != nil {
		return ProjectedSelection{}, fmt.Errorf("selection: project anchor: %w", err)
	}
	focus, err := ResolveInverse(ix, state, toRangeIndexPart(sel.Focus))
	if err != nil {
		return ProjectedSelection{}, fmt.Errorf("selection: project focus: %w", err)
	}
	return ProjectedSelection{AnchorLocation: anchor, FocusLocation: focus}, nil
}

// toRangeIndexPart converts a document.SelectionPoint's Part (preamble/
// children/text/postamble) into the rangeindex package's equivalent Part
// enum, the one place the two packages' independently-declared Part types
// need bridging.
func toRangeIndexPart(p document.SelectionPoint) rangeindex.Point {
	var part rangeindex.Part
	switch p.Part {
	case document.PartPreamble:
		part = rangeindex.PartPreamble
	case document.PartText:
		part = rangeindex.PartText
	case document.PartPostamble:
		part = rangeindex.PartPostamble
	case document.PartChildren:
		part = rangeindex.PartChildrenBoundary
	}
	return rangeindex.Point{Key: p.Key, Part: part, Offset: p.Offset}
}
