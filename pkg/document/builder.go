package document

// Builder provides a fluent API for constructing EditorState trees in
// tests and in the CLI demo. Mirrors pkg/lotus/core/builder.go's
// BoxBuilder/TextBuilder fluent style, generalized from markup-string
// construction to direct tree construction since the core has no markup
// layer of its own.
type Builder struct {
	state *EditorState
}

// NewBuilder starts a new tree rooted at a fresh element node.
func NewBuilder() *Builder {
	root := NewKey()
	return &Builder{state: NewEditorState(root)}
}

// State returns the built EditorState.
func (b *Builder) State() *EditorState {
	return b.state
}

// Element appends a new element child under parent and returns its key.
func (b *Builder) Element(parent Key, preamble, postamble string) Key {
	return b.add(parent, &Node{Kind: KindElement, Preamble: preamble, Postamble: postamble})
}

// Text appends a new text child under parent and returns its key.
func (b *Builder) Text(parent Key, text string) Key {
	return b.add(parent, &Node{Kind: KindText, Text: text})
}

// Decorator appends a new decorator child under parent and returns its key.
func (b *Builder) Decorator(parent Key) Key {
	return b.add(parent, &Node{Kind: KindDecorator, IsDecorator: true})
}

// LineBreak appends a new line-break child under parent and returns its key.
func (b *Builder) LineBreak(parent Key) Key {
	return b.add(parent, &Node{Kind: KindLineBreak})
}

func (b *Builder) add(parent Key, n *Node) Key {
	k := NewKey()
	n.Key = k
	n.Parent = parent
	n.HasParent = true
	b.state.Nodes[k] = n
	p := b.state.Nodes[parent]
	p.Children = append(p.Children, k)
	return k
}

// SetStyle sets a style attribute on a node.
func (b *Builder) SetStyle(k Key, name, value string) {
	n := b.state.Nodes[k]
	if n.Styles == nil {
		n.Styles = Attributes{}
	}
	n.Styles[name] = value
}

// Clone produces a deep-enough independent copy of the state for use as a
// "next" snapshot that the caller can then mutate via the returned
// Builder, leaving the original snapshot (the "prev" passed to Reconcile)
// untouched immutability requirement.
func (b *Builder) Clone() *Builder {
	nb := &EditorState{
		RootKey:   b.state.RootKey,
		Nodes:     make(map[Key]*Node, len(b.state.Nodes)),
		DirtySet:  map[Key]DirtyReason{},
		DirtyType: DirtyNone,
	}
	for k, n := range b.state.Nodes {
		cp := *n
		cp.Children = append([]Key(nil), n.Children...)
		cp.Styles = n.Styles.Clone()
		nb.Nodes[k] = &cp
	}
	if b.state.Selection != nil {
		sel := *b.state.Selection
		nb.Selection = &sel
	}
	return &Builder{state: nb}
}

// MarkDirty records a dirty key/reason and bumps DirtyType to at least
// partial.
func (b *Builder) MarkDirty(k Key, reason DirtyReason) {
	if b.state.DirtySet == nil {
		b.state.DirtySet = map[Key]DirtyReason{}
	}
	b.state.DirtySet[k] = reason
	if b.state.DirtyType == DirtyNone {
		b.state.DirtyType = DirtyPartial
	}
}

// Detach removes a node and its subtree from the parent's children list
// and the node map.
func (b *Builder) Detach(k Key) {
	n, ok := b.state.Nodes[k]
	if !ok {
		return
	}
	if n.HasParent {
		p := b.state.Nodes[n.Parent]
		for i, c := range p.Children {
			if c == k {
				p.Children = append(p.Children[:i], p.Children[i+1:]...)
				break
			}
		}
	}
	var walk func(Key)
	walk = func(key Key) {
		node, ok := b.state.Nodes[key]
		if !ok {
			return
		}
		for _, c := range node.Children {
			walk(c)
		}
		delete(b.state.Nodes, key)
	}
	walk(k)
}

// InsertChildAt inserts an existing (already-added) key into parent's
// children slice at index, used when composing reordered/inserted trees
// by hand in tests.
func (b *Builder) InsertChildAt(parent Key, index int, k Key) {
	p := b.state.Nodes[parent]
	n := b.state.Nodes[k]
	n.Parent = parent
	n.HasParent = true
	children := p.Children
	if index < 0 {
		index = 0
	}
	if index > len(children) {
		index = len(children)
	}
	children = append(children, "")
	copy(children[index+1:], children[index:])
	children[index] = k
	p.Children = children
}
