package format

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// lineWhitespace is the whitespace alphabet within a line.
const lineWhitespace = " \t"

// headingRe matches a heading structurally: a '#' run, whitespace, then
// the heading text. A '#' run with no following whitespace is not a
// heading.
var headingRe = regexp.MustCompile(`^(#+[ \t]+)(.*)$`)

// orderedMarkerRe matches an ordered-list marker: digits, a period,
// then whitespace.
var orderedMarkerRe = regexp.MustCompile(`^[0-9]+\.[ \t]`)

// Rule is a custom per-line transformation run after the built-in
// rules. Implementations must be idempotent. A non-nil error leaves the
// line at its built-in result.
type Rule interface {
	Apply(text string) (string, error)
}

// Formatter applies the configured rule set to line text.
type Formatter struct {
	opts Options
	rule Rule
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithRule installs a custom rule run after the built-in rules.
func WithRule(r Rule) FormatterOption {
	return func(f *Formatter) {
		f.rule = r
	}
}

// New creates a formatter over an options snapshot.
func New(opts Options, fopts ...FormatterOption) *Formatter {
	f := &Formatter{opts: opts}
	for _, fo := range fopts {
		fo(f)
	}
	return f
}

// Options returns the formatter's options snapshot.
func (f *Formatter) Options() Options { return f.opts }

// Format transforms one line of text. It is pure with respect to the
// options snapshot and idempotent.
func (f *Formatter) Format(text string) string {
	if f.opts.ConvertDoubleSpacesToTabs {
		text = strings.ReplaceAll(text, "  ", "\t")
	}

	core := strings.TrimRight(text, lineWhitespace)
	trailing := text[len(core):]

	body := strings.TrimLeft(core, lineWhitespace)
	if body == "" {
		// Whitespace-only lines are preserved verbatim; truly empty
		// lines stay empty.
		return text
	}
	lead := core[:len(core)-len(body)]

	if f.opts.AutoCapitalizeHeadings {
		if m := headingRe.FindStringSubmatch(body); m != nil {
			body = m[1] + capitalizeWords(m[2])
		}
	}

	indented := lead != ""
	if f.opts.AutoCapitalizeFirstWord &&
		(!indented || f.opts.AutoCapitalizeIndented || HasListMarker(body)) {
		body = capitalizeFirstLetter(body)
	}

	result := lead + body
	if f.rule != nil {
		if out, err := f.rule.Apply(result); err == nil {
			result = out
		}
	}

	return result + trailing
}

// HasListMarker reports whether content (already stripped of leading
// whitespace) begins with a recognized list-style marker: an ordered
// marker (digits, period, whitespace), an unordered marker ('-', '*' or
// '+' followed by whitespace), or a block-quote marker ('>' followed by
// whitespace).
func HasListMarker(content string) bool {
	if orderedMarkerRe.MatchString(content) {
		return true
	}
	if len(content) < 2 {
		return false
	}
	switch content[0] {
	case '-', '*', '+', '>':
		return content[1] == ' ' || content[1] == '\t'
	}
	return false
}

// capitalizeFirstLetter uppercases the first alphabetic character in s,
// searching forward past marker punctuation and spaces. Everything else
// is left untouched.
func capitalizeFirstLetter(s string) string {
	for i, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		u := unicode.ToUpper(r)
		if u == r {
			return s
		}
		return s[:i] + string(u) + s[i+utf8.RuneLen(r):]
	}
	return s
}

// capitalizeWords uppercases the first letter of every
// whitespace-delimited word. A word whose first character is not a
// letter is left alone.
func capitalizeWords(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	atStart := true
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			atStart = true
			b.WriteRune(r)
		case atStart && unicode.IsLetter(r):
			b.WriteRune(unicode.ToUpper(r))
			atStart = false
		default:
			atStart = false
			b.WriteRune(r)
		}
	}
	return b.String()
}
