// Package format implements the per-line text formatter.
//
// Format is a pure function from line text to line text over an
// immutable Options snapshot. Rules run in a fixed order, because later
// rules assume whitespace already normalized by earlier ones:
//
//  1. Double-space to tab substitution (optional), before any analysis
//     so indentation and heading detection see the substituted text.
//  2. Trailing whitespace is split off and carried through untouched,
//     preserving a still-in-progress trailing space while typing.
//  3. Blank lines terminate early: whitespace-only lines are preserved
//     verbatim, truly empty lines stay empty (the line container
//     renders them as a forced line break).
//  4. Heading capitalization (optional): a run of '#' followed by
//     whitespace has the first letter of every word after it
//     capitalized.
//  5. First-word capitalization (optional): the first alphabetic
//     character after the indentation is uppercased when the line is
//     not indented, when indented capitalization is enabled, or when
//     the content starts with a list or quote marker. List markers are
//     always eligible regardless of the indentation setting.
//
// Formatting is idempotent: formatting a line twice with the same
// options yields the same text.
package format
