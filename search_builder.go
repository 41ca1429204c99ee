package lexdex

import (
	"context"
	"errors"
	"fmt"
)

// SearchBuilder is a fluent builder for one or more queries.
type SearchBuilder struct {
	client  *Client
	queries []string
	limit   int
	fused   bool
}

// Query starts a search over the given queries.
func (c *Client) Query(queries ...string) *SearchBuilder {
	return &SearchBuilder{client: c, queries: queries}
}

// Limit sets the maximum number of hits per list. Zero means DefaultTopK.
func (b *SearchBuilder) Limit(n int) *SearchBuilder {
	b.limit = n
	return b
}

// Fused merges the ranked lists of all queries with Reciprocal Rank Fusion.
func (b *SearchBuilder) Fused() *SearchBuilder {
	b.fused = true
	return b
}

func (b *SearchBuilder) topK() int {
	if b.limit == 0 {
		return DefaultTopK
	}
	return b.limit
}

// Do runs a single query, or all queries when Fused is set.
func (b *SearchBuilder) Do(ctx context.Context) ([]Hit, error) {
	if b.fused {
		res, err := b.client.searcher.SearchFused(ctx, b.queries, b.topK())
		if err != nil {
			return nil, fmt.Errorf("fused search: %w", err)
		}
		return fromResults(res), nil
	}

	switch len(b.queries) {
	case 0:
		return []Hit{}, nil
	case 1:
		return b.client.Search(ctx, b.queries[0], b.topK())
	default:
		return nil, errors.New("lexdex: several queries need Fused() or DoEach()")
	}
}

// DoEach runs every query concurrently. Hit lists are index-aligned with the queries.
func (b *SearchBuilder) DoEach(ctx context.Context) ([][]Hit, error) {
	lists, err := b.client.searcher.SearchBatch(ctx, b.queries, b.topK())
	if err != nil {
		return nil, fmt.Errorf("batch search: %w", err)
	}
	out := make([][]Hit, len(lists))
	for i, l := range lists {
		out[i] = fromResults(l)
	}
	return out, nil
}
