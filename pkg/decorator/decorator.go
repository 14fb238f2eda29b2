// Package decorator reconciles the set of decorator nodes (custom embedded
// views) between two tree snapshots.
// Grounded on pkg/lotus/runtime/reconciliation.go's reconcileComponents,
// which caches component instances by "type@path" across renders so
// stateful components survive a re-render; generalized here from a single
// component-cache map to a three-way added/removed/present-in-both diff
// keyed by document.Key instead of a synthesized path string, since
// decorator identity in this domain is the node key itself, not a
// recomputed tree position.
package decorator

import "github.com/doctree/reconciler/pkg/document"

// Diff is the outcome of reconciling one generation of decorators.
type Diff struct {
	Added   []document.Key
	Removed []document.Key
	Kept    []document.Key
	// Moved holds keys present in both trees whose parent key differs
	// between them, which the host should treat as re-parented rather than
	// merely shifted in place.
	Moved []document.Key
	// Redecorate holds keys whose parent is unchanged but whose view must
	// still be refreshed rather than reused as-is: either the node is in
	// next's dirty set, or the host never actually recorded a live view's
	// position for it last generation (the decorator survived structurally
	// but has no has-view state to reuse).
	Redecorate []document.Key
}

// PositionCache maps a decorator's key to the absolute buffer location it
// occupied in the previous generation. Reconcile only checks whether a
// same-parent decorator has an entry (no entry sends it to Redecorate
// instead of Kept); the location value itself is not compared.
type PositionCache map[document.Key]int

// collectDecorators walks state from root, returning the set of decorator
// node keys reachable in it.
func collectDecorators(state *document.EditorState) map[document.Key]struct{} {
	out := map[document.Key]struct{}{}
	for k := range state.Reachable() {
		if n, ok := state.Get(k); ok && n.Kind == document.KindDecorator {
			out[k] = struct{}{}
		}
	}
	return out
}

// Reconcile computes the added/removed/kept/moved/redecorate decorator sets
// between prev and next. A key present in both generations whose parent key
// changed is classified as Moved: a decorator kept across generations but
// reparented is a move, not a remove+add, provided its node key is
// unchanged — so that heuristic keys off identity (does the key survive)
// rather than off proximity of the new location to the old one.
//
// Among same-parent survivors, prevPositions (the decorator locations the
// previous generation's reconcile recorded) decides whether the kept view
// can really be reused as-is: a key missing from prevPositions survived
// structurally but was never actually handed a live view, so it has no
// has-view state to reuse and needs one created same as an Added key would.
// Combined with next's dirty set, a same-parent key transitions has-view →
// needs-redecoration whenever its content changed or it never had a view
// in the first place; Kept is reserved for keys that are both clean and
// already tracked.
func Reconcile(prev, next *document.EditorState, prevPositions PositionCache) (Diff, PositionCache) {
	var diff Diff
	nextPositions := PositionCache{}

	prevSet := collectDecorators(prev)
	nextSet := collectDecorators(next)

	for k := range nextSet {
		if _, ok := prevSet[k]; !ok {
			diff.Added = append(diff.Added, k)
			continue
		}
		prevNode, _ := prev.Get(k)
		nextNode, _ := next.Get(k)
		if prevNode.Parent != nextNode.Parent {
			diff.Moved = append(diff.Moved, k)
			continue
		}
		_, dirty := next.DirtySet[k]
		_, hadView := prevPositions[k]
		if dirty || !hadView {
			diff.Redecorate = append(diff.Redecorate, k)
			continue
		}
		diff.Kept = append(diff.Kept, k)
	}
	for k := range prevSet {
		if _, ok := nextSet[k]; !ok {
			diff.Removed = append(diff.Removed, k)
		}
	}

	return diff, nextPositions
}

// RecordPosition stores a decorator's freshly computed absolute location in
// c, used by the caller after recomputing the RangeIndex so the next
// generation's Reconcile call has prevPositions available.
func (c PositionCache) RecordPosition(key document.Key, location int) {
	c[key] = location
}
