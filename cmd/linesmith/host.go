package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/dshills/linesmith/internal/engine"
	"github.com/dshills/linesmith/internal/format"
	"github.com/dshills/linesmith/internal/log"
	"github.com/dshills/linesmith/internal/surface"
)

// optionsEvent carries a reloaded options snapshot into the event loop
// so it is applied between render cycles, never during one.
type optionsEvent struct {
	when time.Time
	opts format.Options
}

func (e *optionsEvent) When() time.Time { return e.when }

// host owns the terminal and the real event loop, translating key
// events into engine calls and syncing the surface back to the screen.
type host struct {
	screen   tcell.Screen
	eng      *engine.Engine
	editor   *editor
	logger   *log.Logger
	pasting  bool
	pasteBuf []rune
}

func newHost(eng *engine.Engine, logger *log.Logger) (*host, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &host{
		screen: screen,
		eng:    eng,
		editor: newEditor(eng.Surface()),
		logger: logger.WithComponent("host"),
	}, nil
}

// postOptions hands a reloaded options snapshot to the event loop.
func (h *host) postOptions(opts format.Options) {
	_ = h.screen.PostEvent(&optionsEvent{when: time.Now(), opts: opts})
}

func (h *host) run() error {
	if err := h.screen.Init(); err != nil {
		return err
	}
	defer h.screen.Fini()
	h.screen.EnablePaste()

	h.draw()
	for {
		ev := h.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			h.screen.Sync()
		case *optionsEvent:
			h.eng.SetOptions(ev.opts)
			h.eng.ProcessInput()
		case *tcell.EventPaste:
			h.handlePaste(ev)
		case *tcell.EventKey:
			if quit := h.handleKey(ev); quit {
				return nil
			}
		}
		h.draw()
	}
}

func (h *host) handlePaste(ev *tcell.EventPaste) {
	if ev.Start() {
		h.pasting = true
		h.pasteBuf = h.pasteBuf[:0]
		return
	}
	h.pasting = false
	h.eng.ProcessPastedText(string(h.pasteBuf))
	h.pasteBuf = h.pasteBuf[:0]
}

// handleKey applies one key event. Returns true on quit.
func (h *host) handleKey(ev *tcell.EventKey) bool {
	if h.pasting {
		switch ev.Key() {
		case tcell.KeyRune:
			h.pasteBuf = append(h.pasteBuf, ev.Rune())
		case tcell.KeyEnter:
			h.pasteBuf = append(h.pasteBuf, '\n')
		case tcell.KeyTab:
			h.pasteBuf = append(h.pasteBuf, '\t')
		}
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyEnter:
		h.eng.ProcessEnter()
	case tcell.KeyRune:
		h.editor.insertRune(ev.Rune())
		h.eng.ProcessInput()
	case tcell.KeyTab:
		h.editor.insertRune('\t')
		h.eng.ProcessInput()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		h.editor.deleteBackward()
		h.eng.ProcessInput()
	case tcell.KeyLeft:
		h.editor.moveHorizontal(-1, ev.Modifiers()&tcell.ModShift != 0)
	case tcell.KeyRight:
		h.editor.moveHorizontal(1, ev.Modifiers()&tcell.ModShift != 0)
	case tcell.KeyUp:
		h.editor.moveVertical(-1)
	case tcell.KeyDown:
		h.editor.moveVertical(1)
	case tcell.KeyCtrlH:
		if _, err := h.eng.HighlightSelection(); err != nil {
			h.logger.Debug("highlight: %v", err)
		}
	}
	return false
}

var (
	styleText        = tcell.StyleDefault
	stylePlaceholder = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHighlight   = tcell.StyleDefault.Reverse(true)
	styleStatus      = tcell.StyleDefault.Foreground(tcell.ColorTeal)
)

func (h *host) draw() {
	h.screen.Clear()
	width, height := h.screen.Size()

	surf := h.eng.Surface()
	if !h.eng.HasContent() {
		drawString(h.screen, 0, 0, h.eng.Options().Placeholder, stylePlaceholder, width)
	}

	for y, ln := range surf.Children() {
		if y >= height-1 {
			break
		}
		x := 0
		for _, child := range ln.Children() {
			style := styleText
			if child.Kind() == surface.KindElement {
				style = styleHighlight
			}
			x = drawString(h.screen, x, y, child.TextContent(), style, width)
		}
	}

	h.drawStatus(width, height)
	h.drawCursor()
	h.screen.Show()
}

func (h *host) drawStatus(width, height int) {
	opts := h.eng.Options()
	status := "enter:split  ctrl-h:highlight  esc:quit  |"
	status += flagLabel(" caps", opts.AutoCapitalizeFirstWord)
	status += flagLabel(" headings", opts.AutoCapitalizeHeadings)
	status += flagLabel(" fullstop", opts.AutoFullStop)
	status += flagLabel(" tabs", opts.ConvertDoubleSpacesToTabs)
	drawString(h.screen, 0, height-1, status, styleStatus, width)
}

func flagLabel(name string, on bool) string {
	if on {
		return name + ":on"
	}
	return name + ":off"
}

// drawCursor maps the surface selection to screen coordinates.
func (h *host) drawCursor() {
	surf := h.eng.Surface()
	sel := surf.Selection()
	if sel == nil || sel.Focus.Node == nil {
		h.screen.HideCursor()
		return
	}
	ln := surf.LineContaining(sel.Focus.Node)
	if ln == nil {
		h.screen.HideCursor()
		return
	}
	y := surf.IndexOf(ln)

	// Column is the rendered width of everything before the focus.
	x := 0
	done := false
	var walk func(n *surface.Node) bool
	walk = func(n *surface.Node) bool {
		if n == sel.Focus.Node {
			if n.Kind() == surface.KindText {
				x += runewidth.StringWidth(n.Text()[:clamp(sel.Focus.Offset, len(n.Text()))])
			}
			return true
		}
		if n.Kind() == surface.KindText {
			x += runewidth.StringWidth(n.Text())
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
			done = true
			break
		}
	}
	if !done && sel.Focus.Node != ln {
		h.screen.HideCursor()
		return
	}
	h.screen.ShowCursor(x, y)
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// drawString renders s starting at x on row y, honoring rune widths.
// Returns the x position after the last cell drawn.
func drawString(s tcell.Screen, x, y int, text string, style tcell.Style, width int) int {
	for _, r := range text {
		if x >= width {
			break
		}
		w := runewidth.RuneWidth(r)
		if r == '\t' {
			// Render tabs as a fixed four-cell gap.
			x += 4
			continue
		}
		if w == 0 {
			continue
		}
		s.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}
