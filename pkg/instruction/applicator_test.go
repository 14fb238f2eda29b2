package instruction

import (
	"testing"

	"github.com/doctree/reconciler/pkg/buffer"
)

func TestApplicatorDescendingOrderKeepsLocationsStable(t *testing.T) {
	buf := buffer.NewStringBuffer()
	buf.Insert(buffer.NewAttributedString("abcdefgh", nil), 0)

	instrs := []Instruction{
		Delete(buffer.Range{Start: 1, End: 2}), // "b" at location 1
		Insert(6, buffer.NewAttributedString("XY", nil)),
	}

	New(buf).Apply(instrs)

	// insert at 6 is applied before the lower-location delete at 1, so its
	// target location is unaffected by the later deletion shifting text left.
	if got, want := buf.String(), "acdefXYgh"; got != want {
		t.Fatalf("buf = %q, want %q", got, want)
	}
}

func TestApplicatorOrdersDeleteBeforeInsertAtSameLocation(t *testing.T) {
	buf := buffer.NewStringBuffer()
	buf.Insert(buffer.NewAttributedString("hello", nil), 0)

	instrs := []Instruction{
		Insert(2, buffer.NewAttributedString("XX", nil)),
		Delete(buffer.Range{Start: 2, End: 3}), // deletes "l"
	}

	New(buf).Apply(instrs)

	// delete at location 2 runs before insert at location 2: "he" + delete("l") -> "he" + "lo" = "helo",
	// then insert "XX" at 2 -> "heXXlo"
	if got, want := buf.String(), "heXXlo"; got != want {
		t.Fatalf("buf = %q, want %q", got, want)
	}
}

func TestApplicatorDescendingLocationsDontShiftEarlierOps(t *testing.T) {
	buf := buffer.NewStringBuffer()
	buf.Insert(buffer.NewAttributedString("0123456789", nil), 0)

	instrs := []Instruction{
		Delete(buffer.Range{Start: 2, End: 4}), // removes "23"
		Delete(buffer.Range{Start: 7, End: 9}),  // removes "78", applied first (higher location)
	}

	New(buf).Apply(instrs)

	if got, want := buf.String(), "014569"; got != want {
		t.Fatalf("buf = %q, want %q", got, want)
	}
}

func TestApplicatorStats(t *testing.T) {
	buf := buffer.NewStringBuffer()
	buf.Insert(buffer.NewAttributedString("hello", nil), 0)

	stats := New(buf).Apply([]Instruction{
		Insert(5, buffer.NewAttributedString("!", nil)),
		SetAttributes(buffer.Range{Start: 0, End: 2}, buffer.Attrs{"bold": "true"}),
	})

	if stats.Inserts != 1 || stats.AttributeSets != 1 {
		t.Fatalf("stats = %+v, want 1 insert + 1 attribute set", stats)
	}
	if stats.FixAttributes != 1 {
		t.Fatalf("stats.FixAttributes = %d, want exactly one trailing pass", stats.FixAttributes)
	}
}
