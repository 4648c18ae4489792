// Package highlight implements the selection-highlight wrap operation:
// wrapping the currently selected text range in a styled span node.
//
// The operation is standalone and shares no state with the formatting
// engine. It can fail independently; faults are recovered, logged as
// warnings and never abort the surrounding render cycle.
package highlight

import (
	"errors"

	"github.com/google/uuid"

	"github.com/dshills/linesmith/internal/log"
	"github.com/dshills/linesmith/internal/surface"
)

// Errors returned by Wrap.
var (
	ErrNoSelection  = errors.New("no selection to highlight")
	ErrCollapsed    = errors.New("selection is collapsed")
	ErrCrossesLines = errors.New("selection spans multiple nodes")
	ErrWrapFailed   = errors.New("highlight wrap failed")
)

// Highlighter wraps selected ranges in highlight spans.
type Highlighter struct {
	class  string
	logger *log.Logger
}

// New creates a highlighter producing spans with the given style class.
func New(class string, logger *log.Logger) *Highlighter {
	if logger == nil {
		logger = log.Discard()
	}
	return &Highlighter{class: class, logger: logger.WithComponent("highlight")}
}

// Wrap extracts the selected range and wraps it in a span element
// carrying the highlighter's class and a generated id. The selection
// must cover a range within a single text node. Returns the span id.
//
// Any unexpected fault during range extraction is recovered, logged as
// a warning, and reported as ErrWrapFailed; the surface is left with
// whatever mutations already occurred.
func (h *Highlighter) Wrap(s *surface.Surface) (spanID string, err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Warn("recovered during range extraction: %v", r)
			err = ErrWrapFailed
		}
	}()

	sel := s.Selection()
	if sel == nil {
		return "", ErrNoSelection
	}
	if sel.IsCollapsed() {
		return "", ErrCollapsed
	}
	if sel.Anchor.Node != sel.Focus.Node || sel.Anchor.Node.Kind() != surface.KindText {
		return "", ErrCrossesLines
	}

	node := sel.Anchor.Node
	start, end := sel.Anchor.Offset, sel.Focus.Offset
	if start > end {
		start, end = end, start
	}
	text := node.Text()
	if start < 0 || end > len(text) {
		return "", ErrWrapFailed
	}

	parent := node.Parent()
	if parent == nil {
		return "", ErrWrapFailed
	}
	idx := parent.IndexOfChild(node)
	if idx < 0 {
		return "", ErrWrapFailed
	}

	span := surface.NewElementNode(h.class, surface.NewTextNode(text[start:end]))
	span.SetID(uuid.NewString())

	// Split the text node around the selection, keeping order.
	parent.RemoveChild(idx)
	pos := idx
	if start > 0 {
		parent.InsertChild(pos, surface.NewTextNode(text[:start]))
		pos++
	}
	parent.InsertChild(pos, span)
	pos++
	if end < len(text) {
		parent.InsertChild(pos, surface.NewTextNode(text[end:]))
	}

	// Collapse the caret after the wrapped range.
	if t := span.FirstText(); t != nil {
		s.Collapse(t, len(t.Text()))
	}

	return span.ID(), nil
}
