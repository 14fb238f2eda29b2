package buffer

import "fmt"

// EditingMode gates who is allowed to write attributed strings into the
// buffer. The reconciler always writes
// under ControllerMode; a host application's own direct-typing path (out
// of scope here) would use UserMode.
type EditingMode int

const (
	ControllerMode EditingMode = iota
	UserMode
)

// StringBuffer is a reference Buffer implementation over a single
// UTF-16-unit slice. It is pkg/lotus/render/buffer.go's render.Buffer
// (a 2-D Cell grid) generalized to 1-D: one run sequence instead of a row/column grid, and
// WriteString's "walk runes, write cells" shape becomes Insert's "walk
// runs, splice units" shape.
type StringBuffer struct {
	units      []uint16
	attrs      []Attrs // attrs[i] is the style applied to units[i]
	mode       EditingMode
	editDepth  int
	fixCount   int
	editCount  int
}

// NewStringBuffer creates an empty buffer.
func NewStringBuffer() *StringBuffer {
	return &StringBuffer{mode: ControllerMode}
}

// SetMode switches between controller-driven and user-driven writes.
// Attempting a Buffer mutation while in UserMode from reconciler
// code is a programmer error the caller is expected never to trigger; this
// reference implementation does not enforce it (no host frontend exists
// here to race against), but records the mode for introspection.
func (b *StringBuffer) SetMode(m EditingMode) { b.mode = m }

// Mode reports the current editing mode.
func (b *StringBuffer) Mode() EditingMode { return b.mode }

// BeginEditing nests; idempotent within a reconcile.
func (b *StringBuffer) BeginEditing() { b.editDepth++ }

// EndEditing closes the innermost batched editing session.
func (b *StringBuffer) EndEditing() {
	if b.editDepth > 0 {
		b.editDepth--
	}
}

// InEditingSession reports whether a begin/end pair is currently open.
func (b *StringBuffer) InEditingSession() bool { return b.editDepth > 0 }

func (b *StringBuffer) Length() int { return len(b.units) }

func (b *StringBuffer) DeleteCharacters(r Range) {
	r = r.Clamp(b.Length())
	b.units = append(b.units[:r.Start], b.units[r.End:]...)
	b.attrs = append(b.attrs[:r.Start], b.attrs[r.End:]...)
	b.editCount++
}

func (b *StringBuffer) Insert(s AttributedString, at int) {
	at = ClampLocation(at, b.Length())
	units, attrs := flatten(s)

	newUnits := make([]uint16, 0, len(b.units)+len(units))
	newUnits = append(newUnits, b.units[:at]...)
	newUnits = append(newUnits, units...)
	newUnits = append(newUnits, b.units[at:]...)
	b.units = newUnits

	newAttrs := make([]Attrs, 0, len(b.attrs)+len(attrs))
	newAttrs = append(newAttrs, b.attrs[:at]...)
	newAttrs = append(newAttrs, attrs...)
	newAttrs = append(newAttrs, b.attrs[at:]...)
	b.attrs = newAttrs
	b.editCount++
}

func (b *StringBuffer) ReplaceCharacters(r Range, with AttributedString) {
	b.BeginEditing()
	b.DeleteCharacters(r)
	b.Insert(with, r.Start)
	b.EndEditing()
}

func (b *StringBuffer) SetAttributes(attrs Attrs, r Range) {
	r = r.Clamp(b.Length())
	for i := r.Start; i < r.End; i++ {
		b.attrs[i] = attrs.Clone()
	}
	b.editCount++
}

// FixAttributes canonicalizes per-run attributes after edits. The
// reference buffer has no run-coalescing representation to canonicalize
// (attrs is stored per-unit), so this is a no-op beyond bounds-clamping and
// bookkeeping — real buffer implementations (ropes, piece tables) use this
// hook to merge adjacent identical-attribute runs.
func (b *StringBuffer) FixAttributes(r Range) {
	_ = r.Clamp(b.Length())
	b.fixCount++
}

func (b *StringBuffer) AttributedSubstring(r Range) AttributedString {
	r = r.Clamp(b.Length())
	var out AttributedString
	for i := r.Start; i < r.End; i++ {
		run := Run{Text: []uint16{b.units[i]}, Attrs: b.attrs[i]}
		out = Concat(out, AttributedString{Runs: []Run{run}})
	}
	return out
}

func (b *StringBuffer) EnumerateAttribute(name string, r Range, cb func(value string, run Range)) {
	r = r.Clamp(b.Length())
	if r.Len() == 0 {
		return
	}
	runStart := r.Start
	cur, ok := b.attrs[r.Start][name]
	for i := r.Start + 1; i <= r.End; i++ {
		var v string
		var has bool
		if i < r.End {
			v, has = b.attrs[i][name]
		}
		if i == r.End || v != cur || has != ok {
			if ok {
				cb(cur, Range{Start: runStart, End: i})
			}
			runStart = i
			if i < r.End {
				cur, ok = v, has
			}
		}
	}
}

// String renders the buffer's raw text content.
func (b *StringBuffer) String() string {
	return UTF16ToString(b.units)
}

// Clone returns a deep copy, used by tests asserting round-trip invariants
// without mutating the original.
func (b *StringBuffer) Clone() *StringBuffer {
	nb := &StringBuffer{mode: b.mode}
	nb.units = append(nb.units, b.units...)
	for _, a := range b.attrs {
		nb.attrs = append(nb.attrs, a.Clone())
	}
	return nb
}

// DebugString renders a compact human-readable form for test failure
// messages.
func (b *StringBuffer) DebugString() string {
	return fmt.Sprintf("%q (len=%d)", b.String(), b.Length())
}

func flatten(s AttributedString) ([]uint16, []Attrs) {
	var units []uint16
	var attrs []Attrs
	for _, r := range s.Runs {
		units = append(units, r.Text...)
		for range r.Text {
			attrs = append(attrs, r.Attrs.Clone())
		}
	}
	return units, attrs
}
