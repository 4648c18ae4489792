// Package caret captures and restores the caret across render cycles.
//
// A caret position is remembered as a Coordinate relative to a line:
// the line's index in the surface, the index of the text-bearing child
// within the line, and a byte offset into that child's text. The
// coordinate is transient; it is captured at the start of a render
// cycle and consumed at the end.
//
// Formatting can change a line's text length between capture and
// restore, so the offset is always re-clamped to the current text at
// restore time. The clamp additionally snaps to the nearest preceding
// grapheme cluster boundary so the restored caret never lands inside a
// multi-byte cluster.
package caret
