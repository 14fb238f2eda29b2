package buffer

// Attrs is an immutable-by-convention style run attribute map, analogous
// to pkg/lotus/render/buffer.go's render.Style, generalized
// from a fixed struct of terminal-cell attributes to an open string map
// since the core's node model carries an arbitrary style
// attribute dictionary per node, not a fixed terminal attribute set.
type Attrs map[string]string

// Clone returns an independent copy.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Run is a contiguous span of UTF-16 code units sharing one attribute set.
type Run struct {
	Text  []uint16
	Attrs Attrs
}

// AttributedString is an ordered sequence of runs — the payload type for
// Buffer.Insert / Buffer.ReplaceCharacters and the return type of
// Buffer.AttributedSubstring.
type AttributedString struct {
	Runs []Run
}

// NewAttributedString builds a single-run attributed string from plain
// text.
func NewAttributedString(text string, attrs Attrs) AttributedString {
	return AttributedString{Runs: []Run{{Text: UTF16FromString(text), Attrs: attrs}}}
}

// Len reports the total length in UTF-16 code units.
func (a AttributedString) Len() int {
	n := 0
	for _, r := range a.Runs {
		n += len(r.Text)
	}
	return n
}

// String renders the attributed string's raw text, discarding attributes.
func (a AttributedString) String() string {
	var units []uint16
	for _, r := range a.Runs {
		units = append(units, r.Text...)
	}
	return UTF16ToString(units)
}

// Concat appends the runs of parts in order, merging adjacent runs with identical
// attributes to keep run counts from growing unboundedly across repeated
// small inserts.
func Concat(parts ...AttributedString) AttributedString {
	var out AttributedString
	for _, p := range parts {
		for _, r := range p.Runs {
			if len(out.Runs) > 0 {
				last := &out.Runs[len(out.Runs)-1]
				if attrsEqual(last.Attrs, r.Attrs) {
					last.Text = append(last.Text, r.Text...)
					continue
				}
			}
			out.Runs = append(out.Runs, Run{Text: append([]uint16(nil), r.Text...), Attrs: r.Attrs})
		}
	}
	return out
}

func attrsEqual(a, b Attrs) bool {
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
