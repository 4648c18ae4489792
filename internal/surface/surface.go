package surface

import "strings"

// Position is a point inside a node's text, measured in bytes.
type Position struct {
	Node   *Node
	Offset int
}

// Selection is the live selection over the surface. Anchor is where the
// selection started, Focus where it currently ends. A collapsed
// selection (caret) has Anchor equal to Focus.
type Selection struct {
	Anchor Position
	Focus  Position
}

// IsCollapsed reports whether the selection is a bare caret.
func (s Selection) IsCollapsed() bool {
	return s.Anchor.Node == s.Focus.Node && s.Anchor.Offset == s.Focus.Offset
}

// Capabilities describes what the host surface supports. The engine
// records these at construction and never branches on them internally.
type Capabilities struct {
	// PlaintextEditing is true when the host can restrict editing to
	// plain text natively. When false the host falls back to stripping
	// formatting itself; either way the engine sees only plain text.
	PlaintextEditing bool
}

// Surface is the editable surface: an ordered list of nodes plus the
// live selection. The engine owns the structure; the host syncs it to
// its real rendering tree at the boundary.
type Surface struct {
	children []*Node
	sel      *Selection
	caps     Capabilities
}

// New creates an empty surface.
func New(caps Capabilities) *Surface {
	return &Surface{caps: caps}
}

// Capabilities returns the host capability flags recorded at creation.
func (s *Surface) Capabilities() Capabilities { return s.caps }

// Len returns the number of direct children.
func (s *Surface) Len() int { return len(s.children) }

// Children returns the direct children. Callers must not mutate the slice.
func (s *Surface) Children() []*Node { return s.children }

// ChildAt returns the direct child at index i, or nil if out of range.
func (s *Surface) ChildAt(i int) *Node {
	if i < 0 || i >= len(s.children) {
		return nil
	}
	return s.children[i]
}

// IndexOf returns the index of a direct child, or -1.
func (s *Surface) IndexOf(n *Node) int {
	for i, c := range s.children {
		if c == n {
			return i
		}
	}
	return -1
}

// AppendChild adds a node at the end of the surface.
func (s *Surface) AppendChild(n *Node) {
	n.parent = nil
	s.children = append(s.children, n)
}

// InsertChild inserts a node at index i, clamped to valid bounds.
func (s *Surface) InsertChild(i int, n *Node) {
	if i < 0 {
		i = 0
	}
	if i > len(s.children) {
		i = len(s.children)
	}
	n.parent = nil
	s.children = append(s.children, nil)
	copy(s.children[i+1:], s.children[i:])
	s.children[i] = n
}

// ReplaceChild swaps the child at index i for n.
func (s *Surface) ReplaceChild(i int, n *Node) {
	if i < 0 || i >= len(s.children) {
		return
	}
	n.parent = nil
	s.children[i] = n
}

// RemoveChild removes the child at index i.
func (s *Surface) RemoveChild(i int) {
	if i < 0 || i >= len(s.children) {
		return
	}
	s.children = append(s.children[:i], s.children[i+1:]...)
}

// Selection returns the live selection, or nil when none exists.
func (s *Surface) Selection() *Selection { return s.sel }

// SetSelection replaces the live selection.
func (s *Surface) SetSelection(sel Selection) {
	s.sel = &sel
}

// Collapse places a collapsed caret at the given node and offset.
func (s *Surface) Collapse(n *Node, offset int) {
	p := Position{Node: n, Offset: offset}
	s.sel = &Selection{Anchor: p, Focus: p}
}

// ClearSelection removes the selection entirely.
func (s *Surface) ClearSelection() { s.sel = nil }

// LineContaining walks up from n to the canonical line container that
// is a direct child of the surface. Returns nil when n is not inside
// one, matching the soft-failure contract of caret capture.
func (s *Surface) LineContaining(n *Node) *Node {
	for n != nil && n.parent != nil {
		n = n.parent
	}
	if n == nil || n.kind != KindLine {
		return nil
	}
	if s.IndexOf(n) < 0 {
		return nil
	}
	return n
}

// TextContent returns the concatenated text of all children, with no
// separators. Used to derive the has-content flag.
func (s *Surface) TextContent() string {
	var b strings.Builder
	for _, c := range s.children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}
