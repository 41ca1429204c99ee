package search

import (
	"context"

	"github.com/kailas-cloud/lexdex/internal/domain/search/result"
	"github.com/kailas-cloud/lexdex/internal/domain/sparse"
	"github.com/kailas-cloud/lexdex/internal/domain/token"
)

// Tokenizer turns query text into vocabulary tokens.
type Tokenizer interface {
	TokenizeSentence(sentence string, allowLearning bool) token.Result
}

// QueryCache memoizes query vectors.
type QueryCache interface {
	GetOrCompute(query string, compute func() sparse.Vector) sparse.Vector
}

// Searcher runs a ranked search over a corpus.
type Searcher interface {
	Search(ctx context.Context, query string, topK int) ([]result.Result, error)
}

// BatchSearcher also runs several queries at once.
type BatchSearcher interface {
	Searcher
	SearchBatch(ctx context.Context, queries []string, topK int) ([][]result.Result, error)
	SearchFused(ctx context.Context, queries []string, topK int) ([]result.Result, error)
}
