package caret

import (
	"testing"

	"github.com/dshills/linesmith/internal/surface"
)

func buildSurface(lines ...string) *surface.Surface {
	s := surface.New(surface.Capabilities{})
	for _, text := range lines {
		s.AppendChild(surface.NewLineNode(text))
	}
	return s
}

func TestCaptureNoSelection(t *testing.T) {
	s := buildSurface("hello")
	if _, ok := Capture(s); ok {
		t.Error("capture should fail with no selection")
	}
}

func TestCaptureOutsideLine(t *testing.T) {
	s := buildSurface("hello")
	stray := surface.NewTextNode("stray")
	s.AppendChild(stray)
	s.Collapse(stray, 2)

	if _, ok := Capture(s); ok {
		t.Error("capture should fail for a node outside a line container")
	}
}

func TestCaptureAndRestore(t *testing.T) {
	s := buildSurface("first", "second")
	text := s.ChildAt(1).FirstText()
	s.Collapse(text, 3)

	coord, ok := Capture(s)
	if !ok {
		t.Fatal("capture failed")
	}
	if coord.LineIndex != 1 || coord.ChildIndex != 0 || coord.Offset != 3 {
		t.Errorf("unexpected coordinate %v", coord)
	}

	s.ClearSelection()
	if !Restore(s, coord) {
		t.Fatal("restore failed")
	}
	sel := s.Selection()
	if sel == nil || sel.Focus.Node != text || sel.Focus.Offset != 3 {
		t.Errorf("caret not restored to original position")
	}
}

func TestCaptureInsideWrapper(t *testing.T) {
	// The focus may sit below a wrapper element; the coordinate records
	// the direct line child containing it.
	s := surface.New(surface.Capabilities{})
	ln := surface.NewLineNode("")
	inner := surface.NewTextNode("bc")
	span := surface.NewElementNode("mark", inner)
	ln.ReplaceChildren(surface.NewTextNode("a"), span)
	s.AppendChild(ln)
	s.Collapse(inner, 1)

	coord, ok := Capture(s)
	if !ok {
		t.Fatal("capture failed")
	}
	if coord.ChildIndex != 1 {
		t.Errorf("expected child index 1, got %d", coord.ChildIndex)
	}
}

func TestRestoreClampsOffset(t *testing.T) {
	s := buildSurface("ab")
	if !Restore(s, Coordinate{LineIndex: 0, Offset: 99}) {
		t.Fatal("restore failed")
	}
	sel := s.Selection()
	if sel.Focus.Offset != 2 {
		t.Errorf("expected offset clamped to 2, got %d", sel.Focus.Offset)
	}

	if !Restore(s, Coordinate{LineIndex: 0, Offset: -5}) {
		t.Fatal("restore failed")
	}
	if s.Selection().Focus.Offset != 0 {
		t.Errorf("expected offset clamped to 0, got %d", s.Selection().Focus.Offset)
	}
}

func TestRestoreOutOfRangeLine(t *testing.T) {
	s := buildSurface("only")
	if Restore(s, Coordinate{LineIndex: 4}) {
		t.Error("restore should fail for an out-of-range line index")
	}
}

func TestRestoreBlankLine(t *testing.T) {
	s := buildSurface("")
	if !Restore(s, Coordinate{LineIndex: 0, Offset: 3}) {
		t.Fatal("restore failed")
	}
	sel := s.Selection()
	if sel.Focus.Node != s.ChildAt(0) || sel.Focus.Offset != 0 {
		t.Error("caret should park on the blank line container")
	}
}

func TestRestoreSnapsToGraphemeBoundary(t *testing.T) {
	// 🇺🇸 is a single 8-byte grapheme cluster; an offset landing inside
	// it snaps back to its start.
	s := buildSurface("a\U0001F1FA\U0001F1F8b")
	if !Restore(s, Coordinate{LineIndex: 0, Offset: 4}) {
		t.Fatal("restore failed")
	}
	if got := s.Selection().Focus.Offset; got != 1 {
		t.Errorf("expected offset snapped to 1, got %d", got)
	}
}

func TestPlaceEnd(t *testing.T) {
	s := buildSurface("first", "last")
	PlaceEnd(s)

	sel := s.Selection()
	if sel == nil {
		t.Fatal("no selection after PlaceEnd")
	}
	text := s.ChildAt(1).FirstText()
	if sel.Focus.Node != text || sel.Focus.Offset != len("last") {
		t.Error("caret should be at the end of the last line")
	}
}

func TestPlaceEndBlankLastLine(t *testing.T) {
	s := buildSurface("content", "")
	PlaceEnd(s)

	sel := s.Selection()
	if sel.Focus.Node != s.ChildAt(1) || sel.Focus.Offset != 0 {
		t.Error("caret should park on the blank last line")
	}
}

func TestPlaceEndEmptySurface(t *testing.T) {
	s := surface.New(surface.Capabilities{})
	PlaceEnd(s)
	if s.Selection() != nil {
		t.Error("empty surface should have no selection")
	}
}
