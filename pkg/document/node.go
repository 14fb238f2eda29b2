// Package document provides a reference implementation of the reconciler's
// external node model and editor-state snapshot. The
// reconciler core imports this package for the Node/EditorState types
// declared here, which a host application fills from its own tree. The
// builder and key allocator in this package exist so the core
// is testable and demoable in isolation.
package document

import "github.com/google/uuid"

// Key identifies a node. Keys are opaque and compared by equality; this
// reference implementation mints them as UUIDs, but the core never
// constructs or inspects a Key itself.
type Key string

// NewKey mints a fresh opaque node key.
func NewKey() Key {
	return Key(uuid.NewString())
}

// Kind tags what capability a Node exposes "tagged variant
// over four kinds" design note.
type Kind int

const (
	KindText Kind = iota
	KindElement
	KindDecorator
	KindLineBreak
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindElement:
		return "element"
	case KindDecorator:
		return "decorator"
	case KindLineBreak:
		return "line-break"
	default:
		return "unknown"
	}
}

// BlockAttributes is a paragraph-level attribute bundle.
type BlockAttributes map[string]string

// Attributes is a style attribute map.
type Attributes map[string]string

// Clone returns a shallow copy safe to mutate independently.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Node is the external node model the reconciler reads but never mutates
//. Preamble/postamble/text are opaque node-contributed string
// parts; the core treats a node purely as a provider of these four parts
// plus an attribute dictionary.
type Node struct {
	Key        Key
	Kind       Kind
	Parent     Key
	HasParent  bool
	Children   []Key
	Preamble   string
	Text       string
	Postamble  string
	Styles     Attributes
	BlockAttrs BlockAttributes
	IsDecorator bool
	IsInline    bool
}

// EntireText renders the node's self-contributed parts without descending
// into children — used by reference buffer construction in hydration and
// slow-path rebuilds.
func (n *Node) EntireText() string {
	return n.Preamble + n.Text + n.Postamble
}
