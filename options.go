package lexdex

import (
	"io"

	"go.uber.org/zap"
)

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	bundlePath   string
	bundleReader io.Reader
	bundleFormat string
	vocabulary   *string
	lowercase    bool
	accumulate   bool
	cacheSize    int
	metrics      bool
	logger       *zap.Logger
}

// WithBundleFile loads the corpus bundle from path. Format and compression
// are derived from the file name (corpus.json, corpus.yaml.zst, corpus.cbor.lz4).
func WithBundleFile(path string) Option {
	return func(c *clientConfig) {
		c.bundlePath = path
	}
}

// WithBundleReader decodes an uncompressed bundle from r. format is json, yaml or cbor.
func WithBundleReader(r io.Reader, format string) Option {
	return func(c *clientConfig) {
		c.bundleReader = r
		c.bundleFormat = format
	}
}

// WithVocabulary sets newline-delimited vocabulary content for the tokenizer.
// By default the bundle vocabulary is used.
func WithVocabulary(content string) Option {
	return func(c *clientConfig) {
		c.vocabulary = &content
	}
}

// WithLowercase makes token matching case-insensitive.
func WithLowercase(on bool) Option {
	return func(c *clientConfig) {
		c.lowercase = on
	}
}

// WithAccumulate sums the weights of repeated query tokens instead of keeping one.
func WithAccumulate() Option {
	return func(c *clientConfig) {
		c.accumulate = true
	}
}

// WithQueryCache memoizes up to size query vectors.
func WithQueryCache(size int) Option {
	return func(c *clientConfig) {
		c.cacheSize = size
	}
}

// WithMetrics registers Prometheus metrics with the default registry and
// instruments searches and tokenization.
func WithMetrics() Option {
	return func(c *clientConfig) {
		c.metrics = true
	}
}

// WithLogger sets the logger. Defaults to zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}
