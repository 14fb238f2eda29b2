package rangeindex

import "github.com/doctree/reconciler/pkg/document"

// Part names which slice of a node's range a location falls in.
type Part int

const (
	PartPreamble Part = iota
	PartText
	PartPostamble
	PartChildrenBoundary
)

func (p Part) String() string {
	switch p {
	case PartPreamble:
		return "preamble"
	case PartText:
		return "text"
	case PartPostamble:
		return "postamble"
	case PartChildrenBoundary:
		return "children-boundary"
	default:
		return "unknown"
	}
}

// Direction disambiguates which side of a boundary Resolve should prefer.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Point is the tree-level position (node_key, part, offset) counterpart of
// a buffer-space integer location.
type Point struct {
	Key    document.Key
	Part   Part
	Offset int
}

// Range is a half-open [Start, End) interval in UTF-16 code units.
type Range struct {
	Start int
	End   int
}

// Len reports the range's length.
func (r Range) Len() int { return r.End - r.Start }

// Item is a RangeCacheItem: one node's position and part lengths.
// Location is the *base* location; when the owning Index has
// pending Fenwick deltas, the absolute location is Location +
// fenwick.PrefixSum(NodeIndex).
type Item struct {
	Key              document.Key
	Location         int
	PreambleLength   int
	ChildrenLength   int
	TextLength       int
	PostambleLength  int
	NodeIndex        int // dense, monotonic, 1-based Fenwick coordinate
	DFSPosition      int // cached index into the owning Index's dfs_order
}

// EntireLength is the full span the node contributes to the buffer.
func (it *Item) EntireLength() int {
	return it.PreambleLength + it.ChildrenLength + it.TextLength + it.PostambleLength
}

// TextStart is the absolute start of the text part, given the item's
// absolute location.
func (it *Item) TextStart(absLocation int) int {
	return absLocation + it.PreambleLength + it.ChildrenLength
}

// PostambleStart is the absolute start of the postamble part, given the
// item's absolute location.
func (it *Item) PostambleStart(absLocation int) int {
	return absLocation + it.PreambleLength + it.ChildrenLength + it.TextLength
}

// ChildrenStart is the absolute start of the children region, given the
// item's absolute location.
func (it *Item) ChildrenStart(absLocation int) int {
	return absLocation + it.PreambleLength
}

// EntireRange returns the item's [location, location+entire_length) range
// given its absolute location.
func (it *Item) EntireRange(absLocation int) Range {
	return Range{Start: absLocation, End: absLocation + it.EntireLength()}
}
