// Package frontend declares the native-view collaborator the reconciler
// drives for selection and IME bookkeeping. The core never
// renders; it only tells the frontend what the native selection and
// marked-text range should be and which screen regions need redraw.
package frontend

import (
	"github.com/doctree/reconciler/pkg/buffer"
	"github.com/doctree/reconciler/pkg/document"
)

// Frontend is the external collaborator the reconciler drives for
// selection and IME state. invalidate_layout/invalidate_display
// are posted asynchronously by the caller, never from inside a buffer
// editing session.
type Frontend interface {
	UpdateNativeSelection(sel document.Selection)
	ResetNativeSelection()
	SetMarkedText(s buffer.AttributedString, internalSelection *document.Selection)
	InvalidateLayout(r buffer.Range)
	InvalidateDisplay(r buffer.Range)
}

// NoOp is a Frontend that records nothing and does nothing, used by tests
// and headless callers (e.g. the CLI's batch-reconcile mode) that have no
// native view to drive.
type NoOp struct{}

func (NoOp) UpdateNativeSelection(document.Selection)                 {}
func (NoOp) ResetNativeSelection()                                    {}
func (NoOp) SetMarkedText(buffer.AttributedString, *document.Selection) {}
func (NoOp) InvalidateLayout(buffer.Range)                            {}
func (NoOp) InvalidateDisplay(buffer.Range)                           {}
