package reconcile

import "github.com/doctree/reconciler/pkg/document"

// Options configures one Reconcile call.
type Options struct {
	// ReconcileSelection, when true, projects next's selection through the
	// RangeIndex after the buffer mutation and pushes it to the Frontend.
	// Composition paths ignore this.
	ReconcileSelection bool

	// MarkedTextOp, when non-nil, is dispatched to the composition path
	// ahead of any structural classification.
	MarkedTextOp *document.MarkedTextOperation

	// DeletionClampRange bounds a selection-driven delete to the range the
	// caller actually selected, guarding against over-deletion when a naive per-group delete
	// would reach into a neighboring boundary postamble the user never
	// selected. paths.TryDeleteBlocks derives its delete range directly
	// from the diffed subtree boundaries rather than from boundary-postamble
	// heuristics, so there is no over-deletion for this clamp to correct
	// against; it is accepted here for Caller API completeness and
	// currently unused (see DESIGN.md).
	DeletionClampRange *document.Range
}
