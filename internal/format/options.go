package format

// Options is an immutable configuration snapshot consumed by the
// formatter and the enter-key transition. Mutating a copy does not
// affect a formatter already holding the snapshot.
type Options struct {
	// Placeholder is advisory text the host shows while the surface has
	// no content. The engine exposes the has-content flag; displaying
	// the placeholder is a host concern.
	Placeholder string

	// AutoCapitalizeHeadings capitalizes every word of a heading line
	// (a '#' run followed by whitespace).
	AutoCapitalizeHeadings bool

	// AutoCapitalizeFirstWord capitalizes the first alphabetic
	// character of a line's content.
	AutoCapitalizeFirstWord bool

	// AutoCapitalizeIndented extends first-word capitalization to
	// indented lines. Lines carrying a list or quote marker are always
	// eligible regardless of this setting.
	AutoCapitalizeIndented bool

	// AutoFullStop appends a period to an unterminated line when it is
	// split by the enter key.
	AutoFullStop bool

	// ConvertDoubleSpacesToTabs substitutes every pair of spaces with a
	// single tab before any other rule runs.
	ConvertDoubleSpacesToTabs bool

	// HighlightEnabled and HighlightClass govern the selection
	// highlight collaborator, not the formatter itself.
	HighlightEnabled bool
	HighlightClass   string

	// RulePath is an optional path to a Lua script defining a custom
	// per-line rule, run after the built-in rules.
	RulePath string
}

// DefaultOptions returns the options used when the host supplies none.
// Tab substitution is off unless explicitly enabled.
func DefaultOptions() Options {
	return Options{
		AutoCapitalizeHeadings:  true,
		AutoCapitalizeFirstWord: true,
		AutoFullStop:            true,
		HighlightClass:          "linesmith-highlight",
	}
}
