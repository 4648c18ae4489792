package main

import (
	"unicode/utf8"

	"github.com/dshills/linesmith/internal/surface"
)

// editor applies host-side edits to the surface: rune insertion,
// deletion and caret movement. The engine never edits text itself; it
// only reshapes and formats what the host wrote.
type editor struct {
	surf *surface.Surface
}

func newEditor(surf *surface.Surface) *editor {
	return &editor{surf: surf}
}

// caretLine resolves the line and in-line byte offset of the caret.
func (e *editor) caretLine() (ln *surface.Node, off int, ok bool) {
	sel := e.surf.Selection()
	if sel == nil || sel.Focus.Node == nil {
		return nil, 0, false
	}
	ln = e.surf.LineContaining(sel.Focus.Node)
	if ln == nil {
		return nil, 0, false
	}
	off = offsetWithin(ln, sel.Focus.Node, sel.Focus.Offset)
	return ln, off, true
}

// offsetWithin flattens a (node, offset) position into a byte offset
// within the whole line text.
func offsetWithin(ln, target *surface.Node, off int) int {
	total := 0
	var walk func(n *surface.Node) bool
	walk = func(n *surface.Node) bool {
		if n == target {
			if n.Kind() == surface.KindText {
				if off > len(n.Text()) {
					off = len(n.Text())
				}
				total += off
			}
			return true
		}
		if n.Kind() == surface.KindText {
			total += len(n.Text())
			return false
		}
		for _, c := range n.Children() {
			if walk(c) {
				return true
			}
		}
		return false
	}
	for _, c := range ln.Children() {
		if walk(c) {
			break
		}
	}
	return total
}

// setLineText rewrites a line's content and places the caret at off.
func (e *editor) setLineText(ln *surface.Node, text string, off int) {
	if text == "" {
		ln.ReplaceChildren(surface.NewBreakNode())
		e.surf.Collapse(ln, 0)
		return
	}
	t := surface.NewTextNode(text)
	ln.ReplaceChildren(t)
	if off > len(text) {
		off = len(text)
	}
	e.surf.Collapse(t, off)
}

// insertRune inserts one rune at the caret. Without a caret the rune
// goes to the end of the last line, creating one if the surface is
// empty.
func (e *editor) insertRune(r rune) {
	ln, off, ok := e.caretLine()
	if !ok {
		if e.surf.Len() == 0 {
			e.surf.AppendChild(surface.NewLineNode(""))
		}
		ln = e.surf.ChildAt(e.surf.Len() - 1)
		off = len(ln.TextContent())
	}
	text := ln.TextContent()
	e.setLineText(ln, text[:off]+string(r)+text[off:], off+utf8.RuneLen(r))
}

// deleteBackward removes the rune before the caret. At the start of a
// line it joins the line with its predecessor instead.
func (e *editor) deleteBackward() {
	ln, off, ok := e.caretLine()
	if !ok {
		return
	}
	text := ln.TextContent()

	if off > 0 {
		_, size := utf8.DecodeLastRuneInString(text[:off])
		e.setLineText(ln, text[:off-size]+text[off:], off-size)
		return
	}

	idx := e.surf.IndexOf(ln)
	if idx <= 0 {
		return
	}
	prev := e.surf.ChildAt(idx - 1)
	joinAt := len(prev.TextContent())
	e.setLineText(prev, prev.TextContent()+text, joinAt)
	e.surf.RemoveChild(idx)
}

// moveHorizontal moves the caret by one rune. With extend, the focus
// moves while the anchor stays, growing a selection for highlighting.
func (e *editor) moveHorizontal(dir int, extend bool) {
	sel := e.surf.Selection()
	ln, off, ok := e.caretLine()
	if !ok {
		return
	}
	text := ln.TextContent()

	switch {
	case dir < 0 && off > 0:
		_, size := utf8.DecodeLastRuneInString(text[:off])
		off -= size
	case dir > 0 && off < len(text):
		_, size := utf8.DecodeRuneInString(text[off:])
		off += size
	case dir < 0:
		idx := e.surf.IndexOf(ln)
		if idx <= 0 {
			return
		}
		ln = e.surf.ChildAt(idx - 1)
		off = len(ln.TextContent())
	default:
		idx := e.surf.IndexOf(ln)
		if idx < 0 || idx+1 >= e.surf.Len() {
			return
		}
		ln = e.surf.ChildAt(idx + 1)
		off = 0
	}

	e.placeCaret(ln, off, extend, sel)
}

// moveVertical moves the caret to the adjacent line, clamping the
// offset to the target line's length.
func (e *editor) moveVertical(dir int) {
	ln, off, ok := e.caretLine()
	if !ok {
		return
	}
	idx := e.surf.IndexOf(ln) + dir
	target := e.surf.ChildAt(idx)
	if target == nil {
		return
	}
	if max := len(target.TextContent()); off > max {
		off = max
	}
	e.placeCaret(target, off, false, nil)
}

// placeCaret resolves a line-relative offset back to a concrete text
// node position. With extend, the previous anchor is preserved.
func (e *editor) placeCaret(ln *surface.Node, off int, extend bool, prev *surface.Selection) {
	node, nodeOff := resolveOffset(ln, off)
	if node == nil {
		e.surf.Collapse(ln, 0)
		return
	}
	if extend && prev != nil {
		e.surf.SetSelection(surface.Selection{
			Anchor: prev.Anchor,
			Focus:  surface.Position{Node: node, Offset: nodeOff},
		})
		return
	}
	e.surf.Collapse(node, nodeOff)
}

// resolveOffset finds the text node containing a line-relative byte
// offset.
func resolveOffset(ln *surface.Node, off int) (*surface.Node, int) {
	var found *surface.Node
	foundOff := 0
	remaining := off
	var walk func(n *surface.Node) bool
	walk = func(n *surface.Node) bool {
		if n.Kind() == surface.KindText {
			if remaining <= len(n.Text()) {
				found = n
				foundOff = remaining
				return true
			}
			remaining -= len(n.Text())
			return false
		}
		for _, c := range n.Children() {
			if walk(c) {
				return true
			}
		}
		return false
	}
	for _, c := range ln.Children() {
		if walk(c) {
			break
		}
	}
	if found == nil {
		if t := ln.LastText(); t != nil {
			return t, len(t.Text())
		}
		return nil, 0
	}
	return found, foundOff
}
