package surface

import "strings"

// Kind identifies the type of a surface node.
type Kind uint8

const (
	KindText    Kind = iota // raw text run
	KindElement             // foreign element with arbitrary children
	KindLine                // canonical line container
	KindBreak               // forced line-break marker
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindElement:
		return "element"
	case KindLine:
		return "line"
	case KindBreak:
		return "break"
	default:
		return "unknown"
	}
}

// Node is a single node in the surface tree.
type Node struct {
	kind     Kind
	text     string // KindText only
	class    string // KindElement style class
	id       string // optional host-assigned or generated identity
	children []*Node
	parent   *Node
}

// NewTextNode creates a raw text node.
func NewTextNode(text string) *Node {
	return &Node{kind: KindText, text: text}
}

// NewBreakNode creates a forced line-break marker.
func NewBreakNode() *Node {
	return &Node{kind: KindBreak}
}

// NewElementNode creates a foreign element with the given children.
func NewElementNode(class string, children ...*Node) *Node {
	n := &Node{kind: KindElement, class: class}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

// NewLineNode creates a canonical line container carrying text.
// An empty text yields a line holding a single break marker, so the
// line remains visible.
func NewLineNode(text string) *Node {
	n := &Node{kind: KindLine}
	if text == "" {
		n.AppendChild(NewBreakNode())
	} else {
		n.AppendChild(NewTextNode(text))
	}
	return n
}

// Kind returns the node kind.
func (n *Node) Kind() Kind { return n.kind }

// Class returns the element's style class. Empty for non-elements.
func (n *Node) Class() string { return n.class }

// ID returns the node's identity, if one was assigned.
func (n *Node) ID() string { return n.id }

// SetID assigns an identity to the node.
func (n *Node) SetID(id string) { n.id = id }

// Parent returns the node's parent, or nil for a direct surface child.
func (n *Node) Parent() *Node { return n.parent }

// Text returns the node's own text. Only KindText nodes carry text.
func (n *Node) Text() string { return n.text }

// SetText replaces a text node's content.
func (n *Node) SetText(text string) {
	if n.kind == KindText {
		n.text = text
	}
}

// Children returns the node's children slice. Callers must not mutate it.
func (n *Node) Children() []*Node { return n.children }

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.children) }

// ChildAt returns the child at index i, or nil if out of range.
func (n *Node) ChildAt(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// IndexOfChild returns the index of child within n, or -1.
func (n *Node) IndexOfChild(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// AppendChild adds a child at the end.
func (n *Node) AppendChild(child *Node) {
	child.parent = n
	n.children = append(n.children, child)
}

// InsertChild inserts a child at index i, clamped to valid bounds.
func (n *Node) InsertChild(i int, child *Node) {
	if i < 0 {
		i = 0
	}
	if i > len(n.children) {
		i = len(n.children)
	}
	child.parent = n
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = child
}

// RemoveChild removes the child at index i.
func (n *Node) RemoveChild(i int) {
	if i < 0 || i >= len(n.children) {
		return
	}
	n.children[i].parent = nil
	n.children = append(n.children[:i], n.children[i+1:]...)
}

// ReplaceChildren replaces all children with the given nodes.
func (n *Node) ReplaceChildren(children ...*Node) {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = n.children[:0]
	for _, c := range children {
		n.AppendChild(c)
	}
}

// TextContent returns the concatenated text of the node and all
// descendants, in order. Break markers contribute nothing.
func (n *Node) TextContent() string {
	if n.kind == KindText {
		return n.text
	}
	if len(n.children) == 0 {
		return ""
	}
	var b strings.Builder
	for _, c := range n.children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// HasBreak reports whether the node or any descendant is a break marker.
func (n *Node) HasBreak() bool {
	if n.kind == KindBreak {
		return true
	}
	for _, c := range n.children {
		if c.HasBreak() {
			return true
		}
	}
	return false
}

// FirstText returns the first KindText descendant in document order,
// or nil if the subtree carries no text node.
func (n *Node) FirstText() *Node {
	if n.kind == KindText {
		return n
	}
	for _, c := range n.children {
		if t := c.FirstText(); t != nil {
			return t
		}
	}
	return nil
}

// LastText returns the last KindText descendant in document order,
// or nil if the subtree carries no text node.
func (n *Node) LastText() *Node {
	if n.kind == KindText {
		return n
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		if t := n.children[i].LastText(); t != nil {
			return t
		}
	}
	return nil
}
