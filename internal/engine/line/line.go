package line

import (
	"errors"
	"strings"

	"github.com/dshills/linesmith/internal/surface"
)

// ErrNotLine is returned when wrapping a node that is not a canonical
// line container.
var ErrNotLine = errors.New("node is not a line container")

// lineWhitespace is the set of characters treated as whitespace within
// a line. Newlines never occur inside line text.
const lineWhitespace = " \t"

// Line is one visual row of the surface.
type Line struct {
	node *surface.Node
}

// FromNode wraps an existing canonical line node.
func FromNode(n *surface.Node) (*Line, error) {
	if n == nil || n.Kind() != surface.KindLine {
		return nil, ErrNotLine
	}
	return &Line{node: n}, nil
}

// Node returns the underlying surface node.
func (l *Line) Node() *surface.Node { return l.node }

// Text returns the line's raw text.
func (l *Line) Text() string {
	return l.node.TextContent()
}

// Len returns the raw text length in bytes.
func (l *Line) Len() int {
	return len(l.Text())
}

// SetText replaces the line's content. Empty text installs a single
// break marker so the line stays visible. Setting text equal to the
// current content is a no-op, which keeps unrelated child nodes (for
// example highlight spans) intact across formatting passes.
func (l *Line) SetText(text string) {
	if text == l.Text() {
		return
	}
	if text == "" {
		l.node.ReplaceChildren(surface.NewBreakNode())
		return
	}
	l.node.ReplaceChildren(surface.NewTextNode(text))
}

// LeadingWhitespace returns the run of spaces and tabs at the start of
// the line.
func (l *Line) LeadingWhitespace() string {
	t := l.Text()
	return t[:len(t)-len(strings.TrimLeft(t, lineWhitespace))]
}

// TrailingWhitespace returns the run of spaces and tabs at the end of
// the line.
func (l *Line) TrailingWhitespace() string {
	t := l.Text()
	return t[len(strings.TrimRight(t, lineWhitespace)):]
}

// TrimmedContent returns the line text with leading and trailing
// whitespace removed.
func (l *Line) TrimmedContent() string {
	return strings.Trim(l.Text(), lineWhitespace)
}

// IsBlank reports whether the line has no non-whitespace content.
func (l *Line) IsBlank() bool {
	return l.TrimmedContent() == ""
}
