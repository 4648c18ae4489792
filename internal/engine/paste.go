package engine

import (
	"strings"

	"github.com/dshills/linesmith/internal/engine/caret"
	"github.com/dshills/linesmith/internal/surface"
)

// ProcessPastedText inserts plain text at the caret, splitting on line
// breaks into additional lines, then runs a full render cycle. When no
// caret can be resolved the text is appended at the end of the
// document.
func (e *Engine) ProcessPastedText(text string) {
	if text == "" {
		e.renderCycle()
		return
	}

	text = normalizeLineEndings(text)

	e.doc.Normalize()

	coord, ok := caret.Capture(e.surf)
	if !ok {
		caret.PlaceEnd(e.surf)
		coord, ok = caret.Capture(e.surf)
	}
	if ok {
		if err := e.insertText(coord, text); err != nil {
			e.logger.Warn("paste insert: %v", err)
		}
	}

	e.renderCycle()
}

// normalizeLineEndings converts CRLF and bare CR to LF so pasted text
// splits cleanly on \n.
func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// insertText splices text into the line at coord. The first pasted
// fragment joins the text before the caret, the last joins the text
// after it, and fragments in between become whole lines. The caret
// lands after the last pasted fragment.
func (e *Engine) insertText(coord caret.Coordinate, text string) error {
	l, err := e.doc.Line(coord.LineIndex)
	if err != nil {
		return err
	}

	cur := l.Text()
	off := absoluteOffset(l.Node(), coord)
	if off > len(cur) {
		off = len(cur)
	}
	before, after := cur[:off], cur[off:]

	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		if err := e.doc.SetLineText(coord.LineIndex, before+text+after); err != nil {
			return err
		}
		e.collapseInLine(coord.LineIndex, off+len(text))
		return nil
	}

	if err := e.doc.SetLineText(coord.LineIndex, before+parts[0]); err != nil {
		return err
	}

	idx := coord.LineIndex
	for _, part := range parts[1 : len(parts)-1] {
		if _, err := e.doc.InsertLineAfter(idx, part); err != nil {
			return err
		}
		idx++
	}

	last := parts[len(parts)-1]
	if _, err := e.doc.InsertLineAfter(idx, last+after); err != nil {
		return err
	}
	e.collapseInLine(idx+1, len(last))
	return nil
}

// collapseInLine places the caret at a byte offset within line i.
func (e *Engine) collapseInLine(i, off int) {
	l, err := e.doc.Line(i)
	if err != nil {
		return
	}
	if t := l.Node().FirstText(); t != nil {
		if off > len(t.Text()) {
			off = len(t.Text())
		}
		e.surf.Collapse(t, off)
		return
	}
	e.surf.Collapse(l.Node(), 0)
}

// absoluteOffset converts a caret coordinate into a byte offset within
// the whole line text, accounting for children before the recorded one.
func absoluteOffset(ln *surface.Node, coord caret.Coordinate) int {
	total := 0
	for i := 0; i < coord.ChildIndex && i < ln.ChildCount(); i++ {
		total += len(ln.ChildAt(i).TextContent())
	}
	return total + coord.Offset
}
