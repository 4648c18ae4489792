package engine

import (
	"github.com/google/uuid"

	"github.com/dshills/linesmith/internal/engine/caret"
	"github.com/dshills/linesmith/internal/engine/document"
	"github.com/dshills/linesmith/internal/engine/notify"
	"github.com/dshills/linesmith/internal/format"
	"github.com/dshills/linesmith/internal/format/luarule"
	"github.com/dshills/linesmith/internal/highlight"
	"github.com/dshills/linesmith/internal/log"
	"github.com/dshills/linesmith/internal/surface"
)

// Engine owns a surface and keeps it in canonical, formatted shape
// across host input events.
type Engine struct {
	id          uuid.UUID
	surf        *surface.Surface
	doc         *document.Document
	opts        format.Options
	formatter   *format.Formatter
	rule        format.Rule
	highlighter *highlight.Highlighter
	notifier    *notify.Notifier
	logger      *log.Logger
	hasContent  bool
}

// New creates an engine over the given surface and runs an initial
// render cycle so the surface starts in canonical shape. A nil surface
// or an unloadable rule script is a construction fault: New returns the
// error and leaves no partial state behind.
func New(surf *surface.Surface, opts ...Option) (*Engine, error) {
	if surf == nil {
		return nil, ErrNilSurface
	}

	e := &Engine{
		id:     uuid.New(),
		surf:   surf,
		opts:   format.DefaultOptions(),
		logger: log.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}

	doc, err := document.New(surf)
	if err != nil {
		return nil, err
	}
	e.doc = doc

	if e.rule == nil && e.opts.RulePath != "" {
		rule, err := luarule.Load(e.opts.RulePath)
		if err != nil {
			return nil, err
		}
		e.rule = rule
	}

	e.formatter = newFormatter(e.opts, e.rule)
	e.highlighter = highlight.New(e.opts.HighlightClass, e.logger)
	e.notifier = notify.New()

	e.renderCycle()
	return e, nil
}

func newFormatter(opts format.Options, rule format.Rule) *format.Formatter {
	if rule != nil {
		return format.New(opts, format.WithRule(rule))
	}
	return format.New(opts)
}

// ID returns the engine instance identity.
func (e *Engine) ID() uuid.UUID { return e.id }

// Surface returns the surface the engine operates on.
func (e *Engine) Surface() *surface.Surface { return e.surf }

// Document returns the document view over the surface.
func (e *Engine) Document() *document.Document { return e.doc }

// Options returns the current options snapshot.
func (e *Engine) Options() format.Options { return e.opts }

// HasContent reports whether the document carried any text after the
// last render cycle.
func (e *Engine) HasContent() bool { return e.hasContent }

// SetOptions swaps the options snapshot. The new snapshot takes effect
// on the next render cycle. Observers subscribed to option changes are
// notified.
func (e *Engine) SetOptions(opts format.Options) {
	old := e.opts
	e.opts = opts
	e.formatter = newFormatter(opts, e.rule)
	e.highlighter = highlight.New(opts.HighlightClass, e.logger)
	e.notifier.Publish(notify.Change{
		Type:     notify.ChangeOptions,
		OldValue: old,
		NewValue: opts,
	})
}

// Subscribe registers an observer for all engine state changes.
func (e *Engine) Subscribe(obs notify.Observer) *notify.Subscription {
	return e.notifier.Subscribe(obs)
}

// SubscribeType registers an observer for one change type.
func (e *Engine) SubscribeType(typ notify.ChangeType, obs notify.Observer) *notify.Subscription {
	return e.notifier.SubscribeType(typ, obs)
}

// Close releases resources held by a loaded rule script, if any.
func (e *Engine) Close() {
	if c, ok := e.rule.(interface{ Close() }); ok {
		c.Close()
	}
}

// ProcessInput runs a full render cycle. Hosts call it on every
// content-mutating input event.
func (e *Engine) ProcessInput() {
	e.renderCycle()
}

// HighlightSelection wraps the current selection in a highlight span
// and returns the span id. Failures during range extraction are logged
// and returned; the surrounding state is unaffected.
func (e *Engine) HighlightSelection() (string, error) {
	if !e.opts.HighlightEnabled {
		return "", ErrHighlightDisabled
	}
	id, err := e.highlighter.Wrap(e.surf)
	if err != nil {
		e.logger.Warn("highlight wrap: %v", err)
		return "", err
	}
	return id, nil
}

// renderCycle is one complete pass: capture caret, normalize, format
// every line, restore the caret or fall back to end-of-document, then
// recompute derived state.
func (e *Engine) renderCycle() {
	coord, captured := caret.Capture(e.surf)

	e.doc.Normalize()

	for i := 0; i < e.doc.LineCount(); i++ {
		l, err := e.doc.Line(i)
		if err != nil {
			continue
		}
		if err := e.doc.SetLineText(i, e.formatter.Format(l.Text())); err != nil {
			e.logger.Warn("formatting line %d: %v", i, err)
		}
	}

	if !captured || !caret.Restore(e.surf, coord) {
		caret.PlaceEnd(e.surf)
	}

	e.updateDerivedState(coord, captured)
}

// updateDerivedState recomputes the has-content flag and publishes
// state change notifications.
func (e *Engine) updateDerivedState(old caret.Coordinate, hadCaret bool) {
	has := e.doc.HasContent()
	if has != e.hasContent {
		prev := e.hasContent
		e.hasContent = has
		e.notifier.Publish(notify.Change{
			Type:     notify.ChangeContent,
			OldValue: prev,
			NewValue: has,
		})
	}

	if cur, ok := caret.Capture(e.surf); ok {
		if !hadCaret || cur != old {
			e.notifier.Publish(notify.Change{
				Type:     notify.ChangeCaret,
				OldValue: old,
				NewValue: cur,
			})
		}
	}
}
