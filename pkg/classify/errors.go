package classify

import "errors"

// ErrNoPathMatched is returned only if the unconditional slow-path
// fallback itself declines, which should never happen; kept as a sentinel
// so Run's error path is exhaustive rather than silently returning a zero
// Result.
var ErrNoPathMatched = errors.New("classify: no path matched, including slow path")
