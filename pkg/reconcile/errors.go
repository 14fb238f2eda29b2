package reconcile

import "errors"

// Sentinel errors for the top-level reconcile pipeline. rangeindex.ErrOutOfBounds and rangeindex.ErrUnknownKey round out
// the remaining two failure kinds; these two are specific to
// the reconcile/applicator layer rather than the RangeIndex itself.
var (
	// ErrInvariantViolation marks an internal consistency check failing
	// after the applicator has begun mutating the buffer. The
	// current reconcile call's buffer session still completes; the caller
	// should force a full rebuild on the next reconcile.
	ErrInvariantViolation = errors.New("reconcile: invariant violation")

	// ErrBufferEditReentry is returned when Reconcile is invoked while a
	// prior call on the same Reconciler is still in its critical section.
	ErrBufferEditReentry = errors.New("reconcile: buffer edit reentry")
)
