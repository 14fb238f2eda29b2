package paths

import (
	"github.com/doctree/reconciler/pkg/document"
	"github.com/doctree/reconciler/pkg/instruction"
)

// TryNoneDirty handles a reconcile where nothing changed content-wise
//. It
// never touches the buffer or the index; selection projection, if
// requested, happens in pkg/reconcile after the path returns.
func TryNoneDirty(ctx *Context) (bool, instruction.Stats, error) {
	if ctx.Next.DirtyType != document.DirtyNone {
		return false, instruction.Stats{}, nil
	}
	return true, instruction.Stats{}, nil
}
