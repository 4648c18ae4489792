package document

import (
	"errors"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/linesmith/internal/engine/line"
	"github.com/dshills/linesmith/internal/surface"
)

// Errors returned by document operations.
var (
	ErrNilSurface     = errors.New("surface is nil")
	ErrLineOutOfRange = errors.New("line index out of range")
)

// RevisionID identifies a document revision. Every structural or
// textual mutation produces a new revision.
type RevisionID uint64

// revisionCounter generates unique revision IDs.
var revisionCounter uint64

// NewRevisionID returns the next revision ID.
func NewRevisionID() RevisionID {
	return RevisionID(atomic.AddUint64(&revisionCounter, 1))
}

// Document is the ordered sequence of lines over a surface. It is
// created on first normalization and lives as long as the surface.
type Document struct {
	id       uuid.UUID
	surface  *surface.Surface
	revision RevisionID
}

// New creates a document over the given surface.
func New(s *surface.Surface) (*Document, error) {
	if s == nil {
		return nil, ErrNilSurface
	}
	return &Document{
		id:       uuid.New(),
		surface:  s,
		revision: NewRevisionID(),
	}, nil
}

// ID returns the document's identity.
func (d *Document) ID() uuid.UUID { return d.id }

// Surface returns the underlying surface.
func (d *Document) Surface() *surface.Surface { return d.surface }

// Revision returns the current revision ID.
func (d *Document) Revision() RevisionID { return d.revision }

// bump records a mutation.
func (d *Document) bump() {
	d.revision = NewRevisionID()
}

// Normalize rewrites the surface into canonical shape: every direct
// child becomes exactly one line container, in original order.
//
//   - An empty surface gains a single empty line.
//   - A raw text child is wrapped into a new line carrying its text.
//   - A foreign element child is wrapped into a new line inheriting its
//     inner text; an element with no text keeps a break marker so the
//     line stays visible.
//   - Canonical line containers are left untouched in place.
func (d *Document) Normalize() {
	if d.surface.Len() == 0 {
		d.surface.AppendChild(surface.NewLineNode(""))
		d.bump()
		return
	}

	changed := false
	for i := 0; i < d.surface.Len(); i++ {
		child := d.surface.ChildAt(i)
		switch child.Kind() {
		case surface.KindLine:
			// already canonical
		case surface.KindText:
			d.surface.ReplaceChild(i, surface.NewLineNode(child.Text()))
			changed = true
		default:
			d.surface.ReplaceChild(i, surface.NewLineNode(child.TextContent()))
			changed = true
		}
	}
	if changed {
		d.bump()
	}
}

// LineCount returns the number of lines. Meaningful after Normalize.
func (d *Document) LineCount() int {
	return d.surface.Len()
}

// Line returns the line at index i.
func (d *Document) Line(i int) (*line.Line, error) {
	n := d.surface.ChildAt(i)
	if n == nil {
		return nil, ErrLineOutOfRange
	}
	return line.FromNode(n)
}

// Lines returns all lines in order. Children that are not canonical
// line containers are skipped; call Normalize first to avoid that.
func (d *Document) Lines() []*line.Line {
	out := make([]*line.Line, 0, d.surface.Len())
	for _, n := range d.surface.Children() {
		l, err := line.FromNode(n)
		if err != nil {
			continue
		}
		out = append(out, l)
	}
	return out
}

// SetLineText replaces the text of line i, bumping the revision when
// the text actually changes.
func (d *Document) SetLineText(i int, text string) error {
	l, err := d.Line(i)
	if err != nil {
		return err
	}
	if l.Text() == text {
		return nil
	}
	l.SetText(text)
	d.bump()
	return nil
}

// InsertLineAfter creates a new line immediately after index i, seeded
// with the given text, and returns it.
func (d *Document) InsertLineAfter(i int, text string) (*line.Line, error) {
	if i < 0 || i >= d.surface.Len() {
		return nil, ErrLineOutOfRange
	}
	n := surface.NewLineNode(text)
	d.surface.InsertChild(i+1, n)
	d.bump()
	return line.FromNode(n)
}

// TotalTextLen returns the byte length of all line text combined.
func (d *Document) TotalTextLen() int {
	return len(d.surface.TextContent())
}

// HasContent reports whether the document carries any text at all,
// whitespace included.
func (d *Document) HasContent() bool {
	return d.TotalTextLen() > 0
}
