package pformat

import (
	"log/slog"
)

// ReplaceMode selects how FormatWith rewrites tokens when there are more
// placeholders than arguments.
type ReplaceMode int

const (
	// ReplaceBySpan rewrites every token at its own position.
	ReplaceBySpan ReplaceMode = iota

	// ReplaceByValue replaces every occurrence of a token's text in the
	// progressively rewritten buffer, one token at a time. Duplicate
	// tokens are all consumed by the first match, and a renumbered token
	// can be hit again by a later step. Kept for output parity with the
	// legacy implementation.
	ReplaceByValue
)

// String returns the mode name used in configuration.
func (m ReplaceMode) String() string {
	switch m {
	case ReplaceBySpan:
		return "span"
	case ReplaceByValue:
		return "value"
	default:
		return "unknown"
	}
}

// ParseReplaceMode maps a configuration name back to a ReplaceMode.
func ParseReplaceMode(s string) (ReplaceMode, bool) {
	switch s {
	case "", "span":
		return ReplaceBySpan, true
	case "value", "legacy":
		return ReplaceByValue, true
	}

	return ReplaceBySpan, false
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithCulture sets the conventions used by format specs.
func WithCulture(c *Culture) Option {
	return func(f *Formatter) {
		if c != nil {
			f.culture = c
		}
	}
}

// WithReplaceMode selects the FormatWith partial-path strategy.
func WithReplaceMode(m ReplaceMode) Option {
	return func(f *Formatter) {
		f.mode = m
	}
}

// WithLogger attaches a logger that receives debug records for every
// renumbered placeholder.
func WithLogger(l *slog.Logger) Option {
	return func(f *Formatter) {
		f.logger = l
	}
}
