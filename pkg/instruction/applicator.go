package instruction

import (
	"sort"

	"github.com/doctree/reconciler/pkg/buffer"
)

// Stats summarizes one Apply call, surfaced to telemetry.
type Stats struct {
	Deletes        int
	Inserts        int
	AttributeSets  int
	FixAttributes  int
	DecoratorAdds  int
	DecoratorRemoves int
	DecoratorMarks int
	BlockAttrApplies int
}

// Applicator drives a Buffer through a batch of instructions under a single
// editing session, honoring the ordering contract: descending target
// location, and delete before insert before set-attributes at equal
// locations, followed by exactly one trailing FixAttributes pass over the
// instructions' combined span.
// Grounded on pkg/lotus/reconciler/context.go's ApplyPatches, which opens a
// single render pass and dispatches each Patch's Apply in sequence; the
// ordering/bounds-clamping discipline here is an addition on top of that
// shape, since a tree-patch list has no such ordering requirement.
type Applicator struct {
	buf buffer.Buffer
}

// New creates an Applicator bound to buf.
func New(buf buffer.Buffer) *Applicator {
	return &Applicator{buf: buf}
}

func kindPriority(k Kind) int {
	switch k {
	case KindDelete:
		return 0
	case KindInsert:
		return 1
	case KindSetAttributes, KindApplyBlockAttrs, KindDecoratorAdd, KindDecoratorRemove, KindDecoratorMark:
		return 2
	default:
		return 3
	}
}

// Apply executes instrs against the bound buffer inside one editing
// session, in descending-location order with delete/insert/set-attributes
// tie-broken at equal locations, then issues a single trailing
// FixAttributes pass over the full touched span.
func (a *Applicator) Apply(instrs []Instruction) Stats {
	ordered := make([]Instruction, len(instrs))
	copy(ordered, instrs)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Location != ordered[j].Location {
			return ordered[i].Location > ordered[j].Location
		}
		return kindPriority(ordered[i].Kind) < kindPriority(ordered[j].Kind)
	})

	var stats Stats
	minTouched, maxTouched := -1, -1
	touch := func(start, end int) {
		if minTouched == -1 || start < minTouched {
			minTouched = start
		}
		if end > maxTouched {
			maxTouched = end
		}
	}

	a.buf.BeginEditing()
	for _, in := range ordered {
		length := a.buf.Length()
		switch in.Kind {
		case KindDelete:
			r := in.Range.Clamp(length)
			a.buf.DeleteCharacters(r)
			stats.Deletes++
			touch(r.Start, r.Start)
		case KindInsert:
			at := buffer.ClampLocation(in.Location, length)
			a.buf.Insert(in.Content, at)
			stats.Inserts++
			touch(at, at+in.Content.Len())
		case KindSetAttributes:
			r := in.Range.Clamp(length)
			a.buf.SetAttributes(in.Attrs, r)
			stats.AttributeSets++
			touch(r.Start, r.End)
		case KindFixAttributes:
			r := in.Range.Clamp(length)
			a.buf.FixAttributes(r)
			stats.FixAttributes++
		case KindDecoratorAdd:
			stats.DecoratorAdds++
		case KindDecoratorRemove:
			stats.DecoratorRemoves++
		case KindDecoratorMark:
			stats.DecoratorMarks++
		case KindApplyBlockAttrs:
			stats.BlockAttrApplies++
		}
	}

	if minTouched != -1 {
		a.buf.FixAttributes(buffer.Range{Start: minTouched, End: maxTouched}.Clamp(a.buf.Length()))
		stats.FixAttributes++
	}
	a.buf.EndEditing()

	return stats
}
