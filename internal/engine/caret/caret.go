package caret

import (
	"fmt"

	"github.com/rivo/uniseg"

	"github.com/dshills/linesmith/internal/surface"
)

// Coordinate is a caret position relative to a specific line at
// capture time. Offset is a byte offset into the text of the child at
// ChildIndex and is re-clamped at restore time.
type Coordinate struct {
	LineIndex  int
	ChildIndex int
	Offset     int
}

// String returns a human-readable representation of the coordinate.
func (c Coordinate) String() string {
	return fmt.Sprintf("(line %d, child %d, offset %d)", c.LineIndex, c.ChildIndex, c.Offset)
}

// Capture reads the live selection and returns its position as a
// Coordinate. The second return is false when no selection exists or
// the selection focus is not inside a traceable line container; the
// caller then falls back to end-of-document placement.
func Capture(s *surface.Surface) (Coordinate, bool) {
	sel := s.Selection()
	if sel == nil || sel.Focus.Node == nil {
		return Coordinate{}, false
	}

	ln := s.LineContaining(sel.Focus.Node)
	if ln == nil {
		return Coordinate{}, false
	}

	// The focus may sit below a wrapper (e.g. a highlight span); record
	// the index of the direct line child that contains it.
	child := sel.Focus.Node
	for child.Parent() != nil && child.Parent() != ln {
		child = child.Parent()
	}
	childIdx := ln.IndexOfChild(child)
	if childIdx < 0 {
		childIdx = 0
	}

	return Coordinate{
		LineIndex:  s.IndexOf(ln),
		ChildIndex: childIdx,
		Offset:     sel.Focus.Offset,
	}, true
}

// Restore resolves a coordinate against the current surface and places
// a collapsed selection there. Returns false when the line index no
// longer resolves; the caller then falls back to end-of-document
// placement. The offset is clamped to the target text's length and
// snapped to a grapheme boundary.
func Restore(s *surface.Surface, c Coordinate) bool {
	ln := s.ChildAt(c.LineIndex)
	if ln == nil || ln.Kind() != surface.KindLine {
		return false
	}

	target := textBearingChild(ln, c.ChildIndex)
	if target == nil {
		// Blank line: only a break marker remains. Park the caret on
		// the line container itself.
		s.Collapse(ln, 0)
		return true
	}

	s.Collapse(target, clampOffset(target.Text(), c.Offset))
	return true
}

// PlaceEnd places the caret at the very end of the document: the last
// text of the last line, or the last line itself when it is blank.
func PlaceEnd(s *surface.Surface) {
	last := s.ChildAt(s.Len() - 1)
	if last == nil {
		s.ClearSelection()
		return
	}
	if t := last.LastText(); t != nil {
		s.Collapse(t, len(t.Text()))
		return
	}
	s.Collapse(last, 0)
}

// textBearingChild returns the text node to restore into: the recorded
// child when it carries text, otherwise the line's first text node.
func textBearingChild(ln *surface.Node, childIdx int) *surface.Node {
	if c := ln.ChildAt(childIdx); c != nil {
		if t := c.FirstText(); t != nil {
			return t
		}
	}
	return ln.FirstText()
}

// clampOffset clamps off to [0, len(text)] and snaps it back to the
// nearest grapheme cluster boundary at or before it.
func clampOffset(text string, off int) int {
	if off <= 0 {
		return 0
	}
	if off >= len(text) {
		return len(text)
	}

	boundary := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		next := boundary + len(cluster)
		if next > off {
			return boundary
		}
		boundary = next
	}
	return boundary
}
