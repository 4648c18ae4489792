package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/linesmith/internal/engine/caret"
	"github.com/dshills/linesmith/internal/engine/notify"
	"github.com/dshills/linesmith/internal/format"
	"github.com/dshills/linesmith/internal/surface"
)

func testOptions() format.Options {
	return format.Options{
		AutoCapitalizeHeadings:  true,
		AutoCapitalizeFirstWord: true,
		AutoFullStop:            true,
	}
}

func newTestEngine(t *testing.T, opts format.Options) (*Engine, *surface.Surface) {
	t.Helper()
	surf := surface.New(surface.Capabilities{PlaintextEditing: true})
	eng, err := New(surf, WithOptions(opts))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return eng, surf
}

// typeText simulates the host writing text into line i and placing the
// caret after it, the way an input event leaves the surface.
func typeText(surf *surface.Surface, i int, text string, caretOff int) {
	ln := surf.ChildAt(i)
	node := surface.NewTextNode(text)
	ln.ReplaceChildren(node)
	surf.Collapse(node, caretOff)
}

func lineTexts(surf *surface.Surface) []string {
	out := make([]string, 0, surf.Len())
	for _, n := range surf.Children() {
		out = append(out, n.TextContent())
	}
	return out
}

func TestNewRejectsNilSurface(t *testing.T) {
	if _, err := New(nil); err != ErrNilSurface {
		t.Errorf("expected ErrNilSurface, got %v", err)
	}
}

func TestNewRejectsBadRuleScript(t *testing.T) {
	surf := surface.New(surface.Capabilities{})
	opts := testOptions()
	opts.RulePath = "/nonexistent/rule.lua"
	if _, err := New(surf, WithOptions(opts)); err == nil {
		t.Error("expected construction to fail for missing rule script")
	}
}

func TestNewNormalizesEmptySurface(t *testing.T) {
	eng, surf := newTestEngine(t, testOptions())

	if surf.Len() != 1 {
		t.Fatalf("expected 1 line after construction, got %d", surf.Len())
	}
	if eng.HasContent() {
		t.Error("empty document should report no content")
	}
}

func TestProcessInputCaretStability(t *testing.T) {
	// Typing a lowercase first letter: the caret stays immediately
	// after the now-uppercased character.
	eng, surf := newTestEngine(t, testOptions())
	typeText(surf, 0, "a", 1)

	eng.ProcessInput()

	sel := surf.Selection()
	if sel == nil {
		t.Fatal("no selection after cycle")
	}
	if got := sel.Focus.Node.Text(); got != "A" {
		t.Errorf("expected line text %q, got %q", "A", got)
	}
	if sel.Focus.Offset != 1 {
		t.Errorf("expected caret offset 1, got %d", sel.Focus.Offset)
	}
}

func TestProcessInputCaretClampedAfterShortening(t *testing.T) {
	opts := testOptions()
	opts.ConvertDoubleSpacesToTabs = true
	eng, surf := newTestEngine(t, opts)
	typeText(surf, 0, "ab  cd", 6)

	eng.ProcessInput()

	if got := lineTexts(surf); got[0] != "ab\tcd" {
		t.Fatalf("expected tab substitution, got %q", got[0])
	}
	sel := surf.Selection()
	if sel.Focus.Offset != 5 {
		t.Errorf("expected caret clamped to 5, got %d", sel.Focus.Offset)
	}
}

func TestProcessInputFallbackWithoutCaret(t *testing.T) {
	eng, surf := newTestEngine(t, testOptions())
	typeText(surf, 0, "content", 3)
	surf.ClearSelection()

	eng.ProcessInput()

	sel := surf.Selection()
	if sel == nil {
		t.Fatal("expected end-of-document fallback selection")
	}
	if sel.Focus.Offset != len("Content") {
		t.Errorf("expected caret at end, got offset %d", sel.Focus.Offset)
	}
}

func TestProcessInputIdempotent(t *testing.T) {
	eng, surf := newTestEngine(t, testOptions())
	typeText(surf, 0, "hello world", 5)

	eng.ProcessInput()
	first := lineTexts(surf)
	firstCoord, _ := caret.Capture(surf)

	eng.ProcessInput()
	second := lineTexts(surf)
	secondCoord, _ := caret.Capture(surf)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("document changed across idle cycle (-first +second):\n%s", diff)
	}
	if firstCoord != secondCoord {
		t.Errorf("caret moved across idle cycle: %v -> %v", firstCoord, secondCoord)
	}
}

func TestProcessEnterAppendsFullStop(t *testing.T) {
	eng, surf := newTestEngine(t, testOptions())
	typeText(surf, 0, "hello world", 11)

	eng.ProcessEnter()

	got := lineTexts(surf)
	if got[0] != "Hello world." {
		t.Errorf("expected %q, got %q", "Hello world.", got[0])
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(got))
	}
	if got[1] != "" {
		t.Errorf("new line should be empty, got %q", got[1])
	}
}

func TestProcessEnterNoDoublePunctuation(t *testing.T) {
	eng, surf := newTestEngine(t, testOptions())
	typeText(surf, 0, "done.", 5)

	eng.ProcessEnter()

	if got := lineTexts(surf)[0]; got != "Done." {
		t.Errorf("expected %q, got %q", "Done.", got)
	}

	// Repeating enter on already-punctuated lines never stacks periods.
	typeText(surf, 0, "Done.", 5)
	eng.ProcessEnter()
	if got := lineTexts(surf)[0]; got != "Done." {
		t.Errorf("expected %q after repeat, got %q", "Done.", got)
	}
}

func TestProcessEnterSkipsHeadings(t *testing.T) {
	eng, surf := newTestEngine(t, testOptions())
	typeText(surf, 0, "# heading text", 14)

	eng.ProcessEnter()

	if got := lineTexts(surf)[0]; got != "# Heading Text" {
		t.Errorf("expected no period on heading, got %q", got)
	}
}

func TestProcessEnterPreservesIndentation(t *testing.T) {
	eng, surf := newTestEngine(t, testOptions())
	typeText(surf, 0, "    indented text", 17)

	eng.ProcessEnter()

	got := lineTexts(surf)
	if got[1] != "    " {
		t.Errorf("new line should carry the original indentation, got %q", got[1])
	}

	sel := surf.Selection()
	if sel == nil {
		t.Fatal("no selection after enter")
	}
	ln := surf.LineContaining(sel.Focus.Node)
	if surf.IndexOf(ln) != 1 {
		t.Errorf("caret should be on the new line")
	}
	if sel.Focus.Offset != 4 {
		t.Errorf("caret should sit after the indentation, got offset %d", sel.Focus.Offset)
	}
}

func TestProcessEnterWithoutCaret(t *testing.T) {
	eng, surf := newTestEngine(t, testOptions())
	typeText(surf, 0, "text", 4)
	surf.ClearSelection()

	eng.ProcessEnter()

	// No-op transition: no split happened, only the cycle ran.
	if surf.Len() != 1 {
		t.Errorf("expected no line split, got %d lines", surf.Len())
	}
}

func TestProcessPastedTextSingleLine(t *testing.T) {
	eng, surf := newTestEngine(t, testOptions())
	typeText(surf, 0, "ad", 1)

	eng.ProcessPastedText("bc")

	if got := lineTexts(surf)[0]; got != "Abcd" {
		t.Errorf("expected %q, got %q", "Abcd", got)
	}
	sel := surf.Selection()
	if sel.Focus.Offset != 3 {
		t.Errorf("expected caret after pasted text, got offset %d", sel.Focus.Offset)
	}
}

func TestProcessPastedTextMultiLine(t *testing.T) {
	eng, surf := newTestEngine(t, testOptions())
	typeText(surf, 0, "startend", 5)

	eng.ProcessPastedText("one\ntwo\nthree")

	want := []string{"Startone", "Two", "Threeend"}
	if diff := cmp.Diff(want, lineTexts(surf)); diff != "" {
		t.Errorf("unexpected document (-want +got):\n%s", diff)
	}

	sel := surf.Selection()
	ln := surf.LineContaining(sel.Focus.Node)
	if surf.IndexOf(ln) != 2 {
		t.Errorf("caret should be on the last pasted line")
	}
	if sel.Focus.Offset != len("three") {
		t.Errorf("expected caret offset %d, got %d", len("three"), sel.Focus.Offset)
	}
}

func TestProcessPastedTextCRLF(t *testing.T) {
	eng, surf := newTestEngine(t, testOptions())
	typeText(surf, 0, "", 0)

	eng.ProcessPastedText("a\r\nb\rc")

	want := []string{"A", "B", "C"}
	if diff := cmp.Diff(want, lineTexts(surf)); diff != "" {
		t.Errorf("unexpected document (-want +got):\n%s", diff)
	}
}

func TestProcessPastedTextWithoutCaret(t *testing.T) {
	eng, surf := newTestEngine(t, testOptions())
	typeText(surf, 0, "first", 5)
	eng.ProcessInput()
	surf.ClearSelection()

	eng.ProcessPastedText(" second")

	if got := lineTexts(surf)[0]; got != "First second" {
		t.Errorf("expected append at end, got %q", got)
	}
}

func TestHasContentNotification(t *testing.T) {
	eng, surf := newTestEngine(t, testOptions())

	var changes []notify.Change
	sub := eng.SubscribeType(notify.ChangeContent, func(c notify.Change) {
		changes = append(changes, c)
	})
	defer sub.Unsubscribe()

	typeText(surf, 0, "x", 1)
	eng.ProcessInput()

	if !eng.HasContent() {
		t.Error("expected content after typing")
	}
	if len(changes) != 1 {
		t.Fatalf("expected 1 content change, got %d", len(changes))
	}
	if changes[0].NewValue != true {
		t.Error("expected content flag to flip to true")
	}

	// An idle cycle must not re-notify.
	eng.ProcessInput()
	if len(changes) != 1 {
		t.Errorf("idle cycle re-published content change")
	}
}

func TestSetOptionsNotifiesAndApplies(t *testing.T) {
	eng, surf := newTestEngine(t, format.Options{})

	var got []notify.Change
	sub := eng.SubscribeType(notify.ChangeOptions, func(c notify.Change) {
		got = append(got, c)
	})
	defer sub.Unsubscribe()

	typeText(surf, 0, "hello", 5)
	eng.ProcessInput()
	if lineTexts(surf)[0] != "hello" {
		t.Fatal("formatting should be off initially")
	}

	eng.SetOptions(testOptions())
	if len(got) != 1 {
		t.Fatalf("expected 1 options change, got %d", len(got))
	}

	eng.ProcessInput()
	if lineTexts(surf)[0] != "Hello" {
		t.Error("new options should apply on the next cycle")
	}
}

func TestHighlightSelectionDisabled(t *testing.T) {
	eng, _ := newTestEngine(t, format.Options{})
	if _, err := eng.HighlightSelection(); err != ErrHighlightDisabled {
		t.Errorf("expected ErrHighlightDisabled, got %v", err)
	}
}

func TestHighlightSelectionWraps(t *testing.T) {
	opts := testOptions()
	opts.HighlightEnabled = true
	opts.HighlightClass = "mark"
	eng, surf := newTestEngine(t, opts)
	typeText(surf, 0, "Hello world", 0)
	eng.ProcessInput()

	node := surf.ChildAt(0).FirstText()
	surf.SetSelection(surface.Selection{
		Anchor: surface.Position{Node: node, Offset: 0},
		Focus:  surface.Position{Node: node, Offset: 5},
	})

	id, err := eng.HighlightSelection()
	if err != nil {
		t.Fatalf("HighlightSelection failed: %v", err)
	}
	if id == "" {
		t.Error("expected a span id")
	}
	if got := surf.ChildAt(0).TextContent(); got != "Hello world" {
		t.Errorf("highlighting changed text: %q", got)
	}
}
