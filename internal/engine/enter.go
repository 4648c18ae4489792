package engine

import (
	"strings"

	"github.com/dshills/linesmith/internal/engine/caret"
)

// sentenceStops are the terminators the auto-full-stop rule accepts as
// already present.
const sentenceStops = ".!?"

// ProcessEnter runs the enter-key transition on the line holding the
// caret, then a full render cycle. When the caret cannot be resolved to
// a line, the transition is a no-op and only the cycle runs.
func (e *Engine) ProcessEnter() {
	e.doc.Normalize()

	if coord, ok := caret.Capture(e.surf); ok {
		if err := e.splitLine(coord); err != nil {
			e.logger.Debug("enter transition skipped: %v", err)
		}
	}

	e.renderCycle()
}

// splitLine finalizes the line at coord and creates its successor:
//
//  1. Append a period when auto-full-stop applies.
//  2. Format the now-punctuated line.
//  3. Seed a new line with the indentation the user typed, captured
//     from the original text before punctuation or formatting touched
//     it.
//  4. Move the caret to the new line, after the indentation.
func (e *Engine) splitLine(coord caret.Coordinate) error {
	l, err := e.doc.Line(coord.LineIndex)
	if err != nil {
		return err
	}

	indent := l.LeadingWhitespace()

	if e.opts.AutoFullStop {
		trimmed := l.TrimmedContent()
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") && !endsInStop(trimmed) {
			text := strings.TrimRight(l.Text(), " \t")
			if err := e.doc.SetLineText(coord.LineIndex, text+"."); err != nil {
				return err
			}
		}
	}

	if err := e.doc.SetLineText(coord.LineIndex, e.formatter.Format(l.Text())); err != nil {
		return err
	}

	next, err := e.doc.InsertLineAfter(coord.LineIndex, indent)
	if err != nil {
		return err
	}

	if t := next.Node().FirstText(); t != nil {
		e.surf.Collapse(t, len(indent))
	} else {
		e.surf.Collapse(next.Node(), 0)
	}
	return nil
}

// endsInStop reports whether trimmed content already ends in a
// sentence terminator.
func endsInStop(trimmed string) bool {
	return strings.ContainsAny(trimmed[len(trimmed)-1:], sentenceStops)
}
