package tokenizer

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures a Tokenizer.
type Option func(*options)

type options struct {
	lowercase bool
	specials  SpecialTokens
	entries   []string
	hasVocab  bool
	logger    *zap.Logger
	learned   prometheus.Counter
	unknown   prometheus.Counter
}

// WithLowercase makes matching case-insensitive by lower-casing every word.
func WithLowercase(on bool) Option {
	return func(o *options) {
		o.lowercase = on
	}
}

// WithVocabulary loads newline-delimited vocabulary content at construction.
func WithVocabulary(content string) Option {
	return func(o *options) {
		o.entries = ParseEntries(content)
		o.hasVocab = true
	}
}

// WithEntries loads an ordered entry list at construction.
func WithEntries(entries []string) Option {
	return func(o *options) {
		o.entries = entries
		o.hasVocab = true
	}
}

// WithSpecialTokens overrides the special token strings.
func WithSpecialTokens(s SpecialTokens) Option {
	return func(o *options) {
		o.specials = s
	}
}

// WithLogger sets the logger. Defaults to zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithCounters sets counters for learned and unknown words. Either may be nil.
func WithCounters(learned, unknown prometheus.Counter) Option {
	return func(o *options) {
		o.learned = learned
		o.unknown = unknown
	}
}
