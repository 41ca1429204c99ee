package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/lexdex/internal/bundle"
	"github.com/kailas-cloud/lexdex/internal/domain/document"
	"github.com/kailas-cloud/lexdex/internal/domain/search/result"
	"github.com/kailas-cloud/lexdex/internal/domain/search/weighting"
	"github.com/kailas-cloud/lexdex/internal/domain/sparse"
)

// DefaultTopK is the result count used when the caller has no preference.
const DefaultTopK = 5

// Service ranks an immutable corpus snapshot against text queries.
// Search is safe for concurrent use as long as the tokenizer is not learning.
type Service struct {
	vocab     map[string]int
	idf       []float64
	specials  map[int]struct{}
	docs      []document.Document
	tok       Tokenizer
	weighting weighting.Weighting
	cache     QueryCache
	logger    *zap.Logger
}

// New validates b and builds a service over its documents.
func New(b *bundle.Bundle, tok Tokenizer, opts ...Option) (*Service, error) {
	if tok == nil {
		return nil, fmt.Errorf("tokenizer is required")
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("validate bundle: %w", err)
	}
	docs, err := b.Corpus()
	if err != nil {
		return nil, fmt.Errorf("build corpus: %w", err)
	}

	s := &Service{
		vocab:     make(map[string]int, len(b.Vocab)),
		idf:       append([]float64(nil), b.IDF...),
		specials:  make(map[int]struct{}, len(b.SpecialTokens)),
		docs:      docs,
		tok:       tok,
		weighting: weighting.Overwrite,
		logger:    zap.NewNop(),
	}
	for t, id := range b.Vocab {
		s.vocab[t] = id
	}
	for _, id := range b.SpecialTokens {
		s.specials[id] = struct{}{}
	}
	for _, opt := range opts {
		opt(s)
	}
	if !s.weighting.IsValid() {
		return nil, fmt.Errorf("unsupported weighting %q", s.weighting)
	}

	s.logger.Info("Search corpus ready",
		zap.Int("documents", len(s.docs)),
		zap.Int("vocab_size", len(s.vocab)),
		zap.Int("idf_entries", len(s.idf)),
		zap.String("weighting", string(s.weighting)),
	)
	return s, nil
}

// Search tokenizes query, scores every document and returns at most topK hits
// with a non-zero score, best first. Ties keep corpus order.
func (s *Service) Search(ctx context.Context, query string, topK int) ([]result.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	if topK <= 0 {
		return []result.Result{}, nil
	}

	q := s.QueryVector(query)
	if len(q) == 0 {
		return []result.Result{}, nil
	}
	return s.rank(q, topK), nil
}

// QueryVector tokenizes query without learning and builds its sparse vector.
func (s *Service) QueryVector(query string) sparse.Vector {
	build := func() sparse.Vector {
		res := s.tok.TokenizeSentence(query, false)
		return s.BuildQueryVector(res.Tokens)
	}
	if s.cache != nil {
		return s.cache.GetOrCompute(query, build)
	}
	return build()
}

// BuildQueryVector maps tokens to idf-weighted dimensions. Tokens outside the
// vocabulary and special tokens are skipped; missing idf entries weigh 1.
func (s *Service) BuildQueryVector(tokens []string) sparse.Vector {
	q := make(sparse.Vector, len(tokens))
	for _, tok := range tokens {
		id, ok := s.vocab[tok]
		if !ok {
			continue
		}
		if _, special := s.specials[id]; special {
			continue
		}
		w := s.idfWeight(id)
		if s.weighting == weighting.Accumulate {
			q[id] += w
		} else {
			q[id] = w
		}
	}
	return q
}

// Score returns the dot product of a query vector and a document vector.
func Score(query, doc sparse.Vector) float64 {
	return sparse.Dot(query, doc)
}

// Len returns the number of documents in the corpus.
func (s *Service) Len() int { return len(s.docs) }

func (s *Service) idfWeight(id int) float64 {
	if id >= 0 && id < len(s.idf) {
		return s.idf[id]
	}
	return 1
}
