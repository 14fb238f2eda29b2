package buffer

import "github.com/rivo/uniseg"

// GraphemeBoundaries returns the UTF-16 code-unit offsets of every
// grapheme-cluster boundary in s, including 0 and len(UTF16FromString(s)).
// The text-only path uses these to make sure its LCP/LCS scan
// never lands inside a multi-rune grapheme cluster (e.g. an emoji with a
// combining modifier, or a Hangul jamo sequence), which would otherwise
// split a single user-perceived character across a Delete and an Insert.
func GraphemeBoundaries(s string) []int {
	bounds := make([]int, 0, len(s)/2+1)
	bounds = append(bounds, 0)
	units := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		units += UTF16Len(gr.Str())
		bounds = append(bounds, units)
	}
	return bounds
}

// SnapBack moves loc to the nearest grapheme boundary at or before loc.
func SnapBack(bounds []int, loc int) int {
	best := 0
	for _, b := range bounds {
		if b <= loc {
			best = b
		} else {
			break
		}
	}
	return best
}

// SnapForward moves loc to the nearest grapheme boundary at or after loc.
func SnapForward(bounds []int, loc int) int {
	for _, b := range bounds {
		if b >= loc {
			return b
		}
	}
	if len(bounds) == 0 {
		return loc
	}
	return bounds[len(bounds)-1]
}
