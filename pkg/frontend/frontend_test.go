package frontend

import (
	"testing"

	"github.com/doctree/reconciler/pkg/buffer"
	"github.com/doctree/reconciler/pkg/document"
)

func TestNoOpSatisfiesFrontend(t *testing.T) {
	var f Frontend = NoOp{}

	f.UpdateNativeSelection(document.Selection{})
	f.ResetNativeSelection()
	f.SetMarkedText(buffer.AttributedString{}, nil)
	f.InvalidateLayout(buffer.Range{})
	f.InvalidateDisplay(buffer.Range{})
}
