// Package instruction defines the buffer-mutation vocabulary the
// classify/paths layer emits and the Applicator executes. Grounded on pkg/lotus/reconciler/diff.go's Patch interface
// (UpdateTextPatch/UpdateStylePatch/InsertNodePatch/DeleteNodePatch), here
// specialized to a flat-buffer instruction set rather than a tree-patch set.
package instruction

import "github.com/doctree/reconciler/pkg/buffer"

// Kind tags which buffer operation an Instruction performs.
type Kind int

const (
	KindDelete Kind = iota
	KindInsert
	KindSetAttributes
	KindFixAttributes
	KindDecoratorAdd
	KindDecoratorRemove
	KindDecoratorMark
	KindApplyBlockAttrs
)

func (k Kind) String() string {
	switch k {
	case KindDelete:
		return "delete"
	case KindInsert:
		return "insert"
	case KindSetAttributes:
		return "set-attributes"
	case KindFixAttributes:
		return "fix-attributes"
	case KindDecoratorAdd:
		return "decorator-add"
	case KindDecoratorRemove:
		return "decorator-remove"
	case KindDecoratorMark:
		return "decorator-mark"
	case KindApplyBlockAttrs:
		return "apply-block-attrs"
	default:
		return "unknown"
	}
}

// Instruction is one unit of buffer mutation a Path produces. Location is the target
// location in the buffer space the instruction was computed against —
// always descending-sorted before application.
type Instruction struct {
	Kind       Kind
	Location   int
	Range      buffer.Range      // used by Delete, SetAttributes, FixAttributes
	Content    buffer.AttributedString // used by Insert
	Attrs      buffer.Attrs      // used by SetAttributes
	DecoratorID string           // used by DecoratorAdd/Remove/Mark
	BlockAttrs  map[string]string
}

// Delete builds a delete instruction over r, targeted at r.Start for
// ordering purposes.
func Delete(r buffer.Range) Instruction {
	return Instruction{Kind: KindDelete, Location: r.Start, Range: r}
}

// Insert builds an insert instruction of content at location.
func Insert(location int, content buffer.AttributedString) Instruction {
	return Instruction{Kind: KindInsert, Location: location, Content: content}
}

// SetAttributes builds an attribute-set instruction over r.
func SetAttributes(r buffer.Range, attrs buffer.Attrs) Instruction {
	return Instruction{Kind: KindSetAttributes, Location: r.Start, Range: r, Attrs: attrs}
}

// FixAttributes builds the trailing fix-attributes instruction over r.
func FixAttributes(r buffer.Range) Instruction {
	return Instruction{Kind: KindFixAttributes, Location: r.Start, Range: r}
}

// DecoratorAdd records that a decorator entered the tree at location.
func DecoratorAdd(location int, id string) Instruction {
	return Instruction{Kind: KindDecoratorAdd, Location: location, DecoratorID: id}
}

// DecoratorRemove records that a decorator left the tree.
func DecoratorRemove(location int, id string) Instruction {
	return Instruction{Kind: KindDecoratorRemove, Location: location, DecoratorID: id}
}

// DecoratorMark records that a decorator present in both trees needs a
// position refresh without teardown.
func DecoratorMark(location int, id string) Instruction {
	return Instruction{Kind: KindDecoratorMark, Location: location, DecoratorID: id}
}

// ApplyBlockAttrs records a paragraph-level attribute change with no
// buffer-text effect.
func ApplyBlockAttrs(location int, attrs map[string]string) Instruction {
	return Instruction{Kind: KindApplyBlockAttrs, Location: location, BlockAttrs: attrs}
}
