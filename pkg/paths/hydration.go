package paths

import "github.com/doctree/reconciler/pkg/instruction"

// TryFreshHydration handles the very first reconcile against an empty
// index — there is no prior tree to diff against, so every other fast path
// would either panic on a nil lookup or spuriously "succeed" against an
// empty prev. It shares rebuildAll with the slow path:
// hydration and full-rebuild are the same operation, only the telemetry
// label differs.
func TryFreshHydration(ctx *Context) (bool, instruction.Stats, error) {
	if ctx.Prev != nil && ctx.Index.Size() > 0 {
		return false, instruction.Stats{}, nil
	}
	stats, err := rebuildAll(ctx)
	if err != nil {
		return false, instruction.Stats{}, err
	}
	return true, stats, nil
}
