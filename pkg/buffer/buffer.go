// Package buffer declares the flat attributed-character buffer the
// reconciler core mutates. The buffer's storage strategy
// (gap buffer, piece table, rope) is explicitly out of scope; this
// package defines only the interface contract plus one reference
// implementation (StringBuffer) used by tests, the CLI, and the bubbletea
// demo.
package buffer

// Buffer is the external collaborator the Applicator drives.
// All ranges and locations are in UTF-16 code units, matching
// RangeCacheItem's unit.
type Buffer interface {
	BeginEditing()
	EndEditing()

	Length() int
	DeleteCharacters(r Range)
	Insert(s AttributedString, at int)
	ReplaceCharacters(r Range, with AttributedString)
	SetAttributes(attrs Attrs, r Range)
	FixAttributes(r Range)
	AttributedSubstring(r Range) AttributedString
	EnumerateAttribute(name string, r Range, cb func(value string, run Range))
}

// Range is a half-open [Start, End) interval in UTF-16 code units.
type Range struct {
	Start int
	End   int
}

// Len reports the range's length.
func (r Range) Len() int { return r.End - r.Start }

// Clamp intersects r with [0, length], matching the Applicator's
// bounds-safety contract.
func (r Range) Clamp(length int) Range {
	start, end := r.Start, r.End
	if start < 0 {
		start = 0
	}
	if end > length {
		end = length
	}
	if start > length {
		start = length
	}
	if end < start {
		end = start
	}
	return Range{Start: start, End: end}
}

// ClampLocation clamps a single insertion location to [0, length]:
// an insert clamps its location to [0, current_length].
func ClampLocation(loc, length int) int {
	if loc < 0 {
		return 0
	}
	if loc > length {
		return length
	}
	return loc
}
