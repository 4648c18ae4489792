// Package line provides the Line record: one visual row of the
// editable surface, the atomic unit of formatting. A Line wraps a
// canonical line node and derives leading whitespace, trailing
// whitespace and trimmed content from its raw text.
//
// Whitespace within a line means spaces and tabs. Line text never
// contains newlines; line breaks exist only between line containers.
package line
