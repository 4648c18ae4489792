package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/linesmith/internal/format"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "LINESMITH_"

// fileConfig mirrors the TOML schema. Pointer fields distinguish an
// absent key from an explicit false, so unspecified options keep their
// defaults.
type fileConfig struct {
	Placeholder *string `toml:"placeholder"`

	Capitalize struct {
		Headings  *bool `toml:"headings"`
		FirstWord *bool `toml:"first-word"`
		Indented  *bool `toml:"indented"`
	} `toml:"capitalize"`

	Punctuation struct {
		AutoFullStop *bool `toml:"auto-full-stop"`
	} `toml:"punctuation"`

	Whitespace struct {
		DoubleSpaceToTab *bool `toml:"double-space-to-tab"`
	} `toml:"whitespace"`

	Highlight struct {
		Enabled *bool   `toml:"enabled"`
		Class   *string `toml:"class"`
	} `toml:"highlight"`

	Rule struct {
		Path *string `toml:"path"`
	} `toml:"rule"`
}

// Load builds an options snapshot: defaults, overlaid with the TOML
// file at path (a missing file is not an error), overlaid with
// environment variables.
func Load(path string) (format.Options, error) {
	opts := format.DefaultOptions()

	if path != "" {
		if err := applyFile(&opts, path); err != nil {
			return format.Options{}, err
		}
	}

	applyEnv(&opts)
	return opts, nil
}

// Parse builds an options snapshot from TOML data held in memory, with
// the same layering as Load.
func Parse(data []byte) (format.Options, error) {
	opts := format.DefaultOptions()
	if err := applyTOML(&opts, data, "<data>"); err != nil {
		return format.Options{}, err
	}
	applyEnv(&opts)
	return opts, nil
}

func applyFile(opts *format.Options, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return applyTOML(opts, data, path)
}

func applyTOML(opts *format.Options, data []byte, source string) error {
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config %s: %w", source, err)
	}

	setString(&opts.Placeholder, fc.Placeholder)
	setBool(&opts.AutoCapitalizeHeadings, fc.Capitalize.Headings)
	setBool(&opts.AutoCapitalizeFirstWord, fc.Capitalize.FirstWord)
	setBool(&opts.AutoCapitalizeIndented, fc.Capitalize.Indented)
	setBool(&opts.AutoFullStop, fc.Punctuation.AutoFullStop)
	setBool(&opts.ConvertDoubleSpacesToTabs, fc.Whitespace.DoubleSpaceToTab)
	setBool(&opts.HighlightEnabled, fc.Highlight.Enabled)
	setString(&opts.HighlightClass, fc.Highlight.Class)
	setString(&opts.RulePath, fc.Rule.Path)
	return nil
}

// applyEnv overlays LINESMITH_* environment variables. Boolean values
// accept anything strconv.ParseBool does; unparseable values are
// ignored.
func applyEnv(opts *format.Options) {
	if v, ok := os.LookupEnv(EnvPrefix + "PLACEHOLDER"); ok {
		opts.Placeholder = v
	}
	envBool(&opts.AutoCapitalizeHeadings, "CAPITALIZE_HEADINGS")
	envBool(&opts.AutoCapitalizeFirstWord, "CAPITALIZE_FIRST_WORD")
	envBool(&opts.AutoCapitalizeIndented, "CAPITALIZE_INDENTED")
	envBool(&opts.AutoFullStop, "AUTO_FULL_STOP")
	envBool(&opts.ConvertDoubleSpacesToTabs, "DOUBLE_SPACE_TO_TAB")
	envBool(&opts.HighlightEnabled, "HIGHLIGHT_ENABLED")
	if v, ok := os.LookupEnv(EnvPrefix + "HIGHLIGHT_CLASS"); ok {
		opts.HighlightClass = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "RULE_PATH"); ok {
		opts.RulePath = v
	}
}

func envBool(dst *bool, name string) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return
	}
	*dst = b
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
