package search

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/lexdex/internal/domain/search/result"
)

// Batch runs independent queries concurrently through s. Results are index-aligned
// with queries. The first failure cancels the remaining queries.
func Batch(ctx context.Context, s Searcher, queries []string, topK int) ([][]result.Result, error) {
	out := make([][]result.Result, len(queries))
	if len(queries) == 0 {
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, q := range queries {
		g.Go(func() error {
			res, err := s.Search(gctx, q, topK)
			if err != nil {
				return fmt.Errorf("query %d: %w", i, err)
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Fused runs every query through s and merges the ranked lists with Reciprocal Rank Fusion.
func Fused(ctx context.Context, s Searcher, queries []string, topK int) ([]result.Result, error) {
	if topK <= 0 {
		return []result.Result{}, nil
	}
	lists, err := Batch(ctx, s, queries, topK)
	if err != nil {
		return nil, err
	}
	return fuseRRF(lists, topK), nil
}

// SearchBatch runs queries concurrently against the service.
func (s *Service) SearchBatch(ctx context.Context, queries []string, topK int) ([][]result.Result, error) {
	return Batch(ctx, s, queries, topK)
}

// SearchFused fuses the ranked lists of all queries.
func (s *Service) SearchFused(ctx context.Context, queries []string, topK int) ([]result.Result, error) {
	return Fused(ctx, s, queries, topK)
}

// SearchBatch runs queries concurrently; every query is recorded.
func (p *InstrumentedSearcher) SearchBatch(
	ctx context.Context, queries []string, topK int,
) ([][]result.Result, error) {
	return Batch(ctx, p, queries, topK)
}

// SearchFused fuses the ranked lists of all queries; every query is recorded.
func (p *InstrumentedSearcher) SearchFused(
	ctx context.Context, queries []string, topK int,
) ([]result.Result, error) {
	return Fused(ctx, p, queries, topK)
}
