package engine

import (
	"github.com/dshills/linesmith/internal/format"
	"github.com/dshills/linesmith/internal/log"
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithOptions sets the formatting options snapshot.
func WithOptions(opts format.Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRule installs a custom formatting rule, overriding any RulePath
// in the options snapshot.
func WithRule(rule format.Rule) Option {
	return func(e *Engine) {
		e.rule = rule
	}
}
