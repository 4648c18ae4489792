package highlight

import (
	"testing"

	"github.com/dshills/linesmith/internal/surface"
)

func selectRange(s *surface.Surface, n *surface.Node, start, end int) {
	s.SetSelection(surface.Selection{
		Anchor: surface.Position{Node: n, Offset: start},
		Focus:  surface.Position{Node: n, Offset: end},
	})
}

func buildLine(text string) (*surface.Surface, *surface.Node) {
	s := surface.New(surface.Capabilities{})
	ln := surface.NewLineNode(text)
	s.AppendChild(ln)
	return s, ln.FirstText()
}

func TestWrapMiddleOfText(t *testing.T) {
	s, text := buildLine("hello world")
	selectRange(s, text, 6, 11)

	h := New("mark", nil)
	id, err := h.Wrap(s)
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}
	if id == "" {
		t.Error("expected a span id")
	}

	ln := s.ChildAt(0)
	if ln.TextContent() != "hello world" {
		t.Errorf("wrap changed text: %q", ln.TextContent())
	}
	if ln.ChildCount() != 2 {
		t.Fatalf("expected 2 children, got %d", ln.ChildCount())
	}
	span := ln.ChildAt(1)
	if span.Kind() != surface.KindElement || span.Class() != "mark" {
		t.Errorf("unexpected span node: kind=%v class=%q", span.Kind(), span.Class())
	}
	if span.TextContent() != "world" {
		t.Errorf("expected span text %q, got %q", "world", span.TextContent())
	}
	if span.ID() != id {
		t.Error("span should carry the returned id")
	}
}

func TestWrapWholeText(t *testing.T) {
	s, text := buildLine("all")
	selectRange(s, text, 0, 3)

	if _, err := New("mark", nil).Wrap(s); err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}

	ln := s.ChildAt(0)
	if ln.ChildCount() != 1 {
		t.Fatalf("expected single span child, got %d", ln.ChildCount())
	}
	if ln.ChildAt(0).TextContent() != "all" {
		t.Errorf("unexpected span content %q", ln.ChildAt(0).TextContent())
	}
}

func TestWrapReversedSelection(t *testing.T) {
	s, text := buildLine("hello")
	selectRange(s, text, 4, 1)

	if _, err := New("mark", nil).Wrap(s); err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}
	span := s.ChildAt(0).ChildAt(1)
	if span.TextContent() != "ell" {
		t.Errorf("expected %q, got %q", "ell", span.TextContent())
	}
}

func TestWrapErrors(t *testing.T) {
	h := New("mark", nil)

	s, text := buildLine("hello")
	if _, err := h.Wrap(s); err != ErrNoSelection {
		t.Errorf("expected ErrNoSelection, got %v", err)
	}

	s.Collapse(text, 2)
	if _, err := h.Wrap(s); err != ErrCollapsed {
		t.Errorf("expected ErrCollapsed, got %v", err)
	}

	other := surface.NewTextNode("other")
	s.SetSelection(surface.Selection{
		Anchor: surface.Position{Node: text, Offset: 0},
		Focus:  surface.Position{Node: other, Offset: 2},
	})
	if _, err := h.Wrap(s); err != ErrCrossesLines {
		t.Errorf("expected ErrCrossesLines, got %v", err)
	}
}

func TestWrapDetachedNode(t *testing.T) {
	// A detached text node has no parent; extraction fails without
	// panicking out of the caller.
	s := surface.New(surface.Capabilities{})
	detached := surface.NewTextNode("floating")
	selectRange(s, detached, 0, 4)

	if _, err := New("mark", nil).Wrap(s); err != ErrWrapFailed {
		t.Errorf("expected ErrWrapFailed, got %v", err)
	}
}

func TestWrapOutOfRangeOffsets(t *testing.T) {
	s, text := buildLine("ab")
	selectRange(s, text, 0, 99)

	if _, err := New("mark", nil).Wrap(s); err != ErrWrapFailed {
		t.Errorf("expected ErrWrapFailed, got %v", err)
	}
}
