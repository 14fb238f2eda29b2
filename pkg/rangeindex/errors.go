package rangeindex

import "errors"

// Sentinel errors for RangeIndex operations. Wrapped with fmt.Errorf("...: %w", ...) at call sites.
var (
	// ErrOutOfBounds is returned by Resolve when a location falls outside
	// [0, root.entire_length].
	ErrOutOfBounds = errors.New("rangeindex: location out of bounds")

	// ErrUnknownKey is returned by RecomputeSubtree when a key is absent
	// from the backing state, and by Resolve, ShiftSuffix and ShiftRange
	// when a key is absent from the index.
	ErrUnknownKey = errors.New("rangeindex: unknown key")
)
