package search

import (
	"go.uber.org/zap"

	"github.com/kailas-cloud/lexdex/internal/domain/search/weighting"
)

// Option configures a Service.
type Option func(*Service)

// WithWeighting sets how repeated query terms are weighted. Defaults to weighting.Overwrite.
func WithWeighting(w weighting.Weighting) Option {
	return func(s *Service) {
		s.weighting = w
	}
}

// WithQueryCache memoizes query vectors in c.
func WithQueryCache(c QueryCache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// WithLogger sets the logger. Defaults to zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
