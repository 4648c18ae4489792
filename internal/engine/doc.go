// Package engine provides the render cycle orchestrator: the public
// surface of the formatting engine.
//
// A render cycle is one complete pass triggered by a single host event:
// capture the caret, normalize the surface structure, format every
// line, restore the caret (or fall back to end-of-document), and
// recompute the has-content flag. Cycles are idempotent; running two in
// a row with no intervening edit produces an identical document and
// caret position.
//
// Hosts drive the engine through three synchronous entry points:
//
//   - ProcessInput, on every content-mutating input event
//   - ProcessEnter, on a line-split request
//   - ProcessPastedText, after intercepting a paste
//
// Everything runs to completion inside the caller's event dispatch;
// there is no internal queuing and no concurrency. Only the engine
// mutates document state, and only inside a cycle.
package engine
