package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/lexdex/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/lexdex/internal/logger"
	"github.com/kailas-cloud/lexdex/internal/metrics"
)

// InstrumentedSearcher wraps a Searcher with metrics and logging.
type InstrumentedSearcher struct {
	inner  Searcher
	logger *zap.Logger
}

// NewInstrumentedSearcher wraps a searcher with observability.
func NewInstrumentedSearcher(inner Searcher, logger *zap.Logger) *InstrumentedSearcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstrumentedSearcher{inner: inner, logger: logger}
}

// Search delegates to the inner searcher and records duration, status and result count.
// A logger stored in ctx takes precedence over the one given at construction.
func (p *InstrumentedSearcher) Search(
	ctx context.Context, query string, topK int,
) ([]result.Result, error) {
	log := logpkg.FromContextOr(ctx, p.logger)
	start := time.Now()

	results, err := p.inner.Search(ctx, query, topK)

	duration := time.Since(start)
	metrics.SearchDuration.Observe(duration.Seconds())

	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		log.Error("Search failed",
			zap.String("query", query),
			zap.Int("top_k", topK),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, fmt.Errorf("search: %w", err)
	}

	status := "ok"
	if len(results) == 0 {
		status = "empty"
	}
	metrics.SearchRequestsTotal.WithLabelValues(status).Inc()
	metrics.SearchResults.Observe(float64(len(results)))

	log.Debug("Search completed",
		zap.String("query", query),
		zap.Int("top_k", topK),
		zap.Int("results", len(results)),
		zap.Duration("duration", duration),
	)
	return results, nil
}
