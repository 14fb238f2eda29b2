package buffer

import "unicode/utf16"

// UTF16FromString converts a Go string (UTF-8) to UTF-16 code units, the
// unit used for every RangeCacheItem length and Buffer range.
func UTF16FromString(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// UTF16ToString converts UTF-16 code units back to a Go string.
func UTF16ToString(units []uint16) string {
	return string(utf16.Decode(units))
}

// UTF16Len reports the UTF-16 code-unit length of s without allocating the
// intermediate slice, used by node-model adapters that only need a length.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		if r1, r2 := utf16.EncodeRune(r); r1 != 0xFFFD || r2 != 0xFFFD {
			n += 2
		} else {
			n++
		}
	}
	return n
}
