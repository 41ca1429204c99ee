package lexdex

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/lexdex/internal/bundle"
	"github.com/kailas-cloud/lexdex/internal/domain/search/weighting"
	"github.com/kailas-cloud/lexdex/internal/metrics"
	"github.com/kailas-cloud/lexdex/internal/repository/querycache"
	"github.com/kailas-cloud/lexdex/internal/tokenizer"
	searchuc "github.com/kailas-cloud/lexdex/internal/usecase/search"
)

// Client is the lexdex entry point. It is safe for concurrent use.
type Client struct {
	tok      *tokenizer.Tokenizer
	svc      *searchuc.Service
	searcher searchuc.BatchSearcher
}

// New loads a bundle and wires the tokenizer and search service.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	b, err := loadBundle(cfg)
	if err != nil {
		return nil, err
	}

	tok, err := newTokenizer(cfg, b)
	if err != nil {
		return nil, err
	}

	return wireClient(cfg, b, tok)
}

func loadBundle(cfg *clientConfig) (*bundle.Bundle, error) {
	switch {
	case cfg.bundleReader != nil:
		b, err := bundle.Decode(cfg.bundleReader, bundle.Format(cfg.bundleFormat))
		if err != nil {
			return nil, fmt.Errorf("lexdex: decode bundle: %w", err)
		}
		return b, nil
	case cfg.bundlePath != "":
		b, err := bundle.Load(cfg.bundlePath)
		if err != nil {
			return nil, fmt.Errorf("lexdex: load bundle: %w", err)
		}
		return b, nil
	default:
		return nil, errors.New("lexdex: bundle required (use WithBundleFile or WithBundleReader)")
	}
}

func newTokenizer(cfg *clientConfig, b *bundle.Bundle) (*tokenizer.Tokenizer, error) {
	opts := []tokenizer.Option{
		tokenizer.WithLowercase(cfg.lowercase),
		tokenizer.WithLogger(cfg.logger),
	}
	if cfg.vocabulary != nil {
		opts = append(opts, tokenizer.WithVocabulary(*cfg.vocabulary))
	} else {
		opts = append(opts, tokenizer.WithEntries(b.VocabEntries()))
	}
	if cfg.metrics {
		opts = append(opts, tokenizer.WithCounters(metrics.TokenizerLearnedTotal, metrics.TokenizerUnknownTotal))
	}

	tok, err := tokenizer.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("lexdex: create tokenizer: %w", err)
	}
	return tok, nil
}

func wireClient(cfg *clientConfig, b *bundle.Bundle, tok *tokenizer.Tokenizer) (*Client, error) {
	var cacheTotal *prometheus.CounterVec
	if cfg.metrics {
		metrics.Register()
		cacheTotal = metrics.QueryCacheTotal
	}

	svcOpts := []searchuc.Option{searchuc.WithLogger(cfg.logger)}
	if cfg.accumulate {
		svcOpts = append(svcOpts, searchuc.WithWeighting(weighting.Accumulate))
	}
	if cfg.cacheSize > 0 {
		svcOpts = append(svcOpts, searchuc.WithQueryCache(querycache.New(cfg.cacheSize, cacheTotal, cfg.logger)))
	}

	svc, err := searchuc.New(b, tok, svcOpts...)
	if err != nil {
		return nil, fmt.Errorf("lexdex: create search service: %w", err)
	}

	var searcher searchuc.BatchSearcher = svc
	if cfg.metrics {
		searcher = searchuc.NewInstrumentedSearcher(svc, cfg.logger)
	}

	return &Client{tok: tok, svc: svc, searcher: searcher}, nil
}

// Tokenize splits sentence into vocabulary tokens. Unknown pieces map to the unknown token.
func (c *Client) Tokenize(sentence string) TokenizeResult {
	return fromTokenResult(c.tok.TokenizeSentence(sentence, false))
}

// Learn tokenizes sentence, adding pieces that cannot be decomposed to the
// client's extra vocabulary. Learned ids start at VocabSize.
func (c *Client) Learn(sentence string) TokenizeResult {
	return fromTokenResult(c.tok.TokenizeSentence(sentence, true))
}

// Decode joins token ids back into text.
func (c *Client) Decode(ids []int) string {
	return c.tok.Decode(ids)
}

// TokenID returns the id of a vocabulary or learned token.
func (c *Client) TokenID(tok string) (int, bool) {
	return c.tok.TokenID(tok)
}

// VocabSize returns the number of loaded vocabulary entries, excluding learned tokens.
func (c *Client) VocabSize() int {
	return c.tok.VocabSize()
}

// Len returns the number of documents in the corpus.
func (c *Client) Len() int {
	return c.svc.Len()
}
