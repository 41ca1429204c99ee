package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/kailas-cloud/lexdex/internal/bundle"
	"github.com/kailas-cloud/lexdex/internal/config"
	"github.com/kailas-cloud/lexdex/internal/domain/search/result"
	"github.com/kailas-cloud/lexdex/internal/domain/search/weighting"
	"github.com/kailas-cloud/lexdex/internal/domain/token"
	logpkg "github.com/kailas-cloud/lexdex/internal/logger"
	"github.com/kailas-cloud/lexdex/internal/metrics"
	"github.com/kailas-cloud/lexdex/internal/repository/querycache"
	"github.com/kailas-cloud/lexdex/internal/tokenizer"
	searchuc "github.com/kailas-cloud/lexdex/internal/usecase/search"
	"github.com/kailas-cloud/lexdex/internal/version"
)

var errHelp = errors.New("help requested")

type flags struct {
	env         string
	configPath  string
	bundlePath  string
	vocabPath   string
	topK        int
	lowercase   bool
	accumulate  bool
	tokenize    bool
	learn       bool
	fuse        bool
	dumpMetrics bool
	showVersion bool
}

type searchLine struct {
	Query   string        `json:"query"`
	Results []result.View `json:"results"`
}

type fusedLine struct {
	Queries []string      `json:"queries"`
	Results []result.View `json:"results"`
}

type tokenizeLine struct {
	Query  string       `json:"query"`
	Tokens token.Result `json:"tokens"`
}

func parseFlags(args []string, stderr io.Writer) (flags, *pflag.FlagSet, error) {
	var f flags
	fs := pflag.NewFlagSet("lexdex", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.env, "env", config.GetEnv(), "environment: local, dev, docker, prod, test")
	fs.StringVar(&f.configPath, "config", "", "explicit config file (default: config/<env>.yaml)")
	fs.StringVar(&f.bundlePath, "bundle", "", "corpus bundle path (overrides corpus.bundle_path)")
	fs.StringVar(&f.vocabPath, "vocab", "", "newline-delimited vocabulary (default: bundle vocab)")
	fs.IntVarP(&f.topK, "top-k", "k", 0, "results per query (default: search.default_top_k)")
	fs.BoolVar(&f.lowercase, "lowercase", false, "lower-case words before matching")
	fs.BoolVar(&f.accumulate, "accumulate", false, "sum weights of repeated query tokens")
	fs.BoolVar(&f.tokenize, "tokenize", false, "print tokenization instead of search results")
	fs.BoolVar(&f.learn, "learn", false, "with --tokenize, learn unknown pieces as extra tokens")
	fs.BoolVar(&f.fuse, "fuse", false, "merge all queries into one list with reciprocal rank fusion")
	fs.BoolVar(&f.dumpMetrics, "metrics", false, "dump Prometheus metrics to stderr on exit")
	fs.BoolVar(&f.showVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return f, fs, errHelp
		}
		return f, fs, fmt.Errorf("parse flags: %w", err)
	}
	return f, fs, nil
}

// overrides maps explicitly set flags onto the loaded config.
func (f flags) overrides(fs *pflag.FlagSet) []config.Override {
	var out []config.Override
	if f.bundlePath != "" {
		out = append(out, func(c *config.Config) {
			c.Corpus.BundlePath = f.bundlePath
			c.Corpus.Format = ""
			c.Corpus.Compression = ""
		})
	}
	if f.vocabPath != "" {
		out = append(out, func(c *config.Config) { c.Tokenizer.VocabPath = f.vocabPath })
	}
	if fs.Changed("lowercase") {
		out = append(out, func(c *config.Config) { c.Tokenizer.Lowercase = f.lowercase })
	}
	if f.accumulate {
		out = append(out, func(c *config.Config) { c.Search.Weighting = string(weighting.Accumulate) })
	}
	return out
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	f, fs, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if f.showVersion {
		fmt.Fprintln(stdout, version.String("lexdex"))
		return nil
	}

	var cfg config.Config
	if f.configPath != "" {
		cfg, err = config.LoadFile(f.configPath, f.overrides(fs)...)
	} else {
		cfg, err = config.Load(f.env, f.overrides(fs)...)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(f.env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting lexdex",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", f.env),
		zap.String("bundle", cfg.Corpus.BundlePath),
	)

	metrics.Register()
	if f.dumpMetrics {
		defer func() {
			if err := metrics.WriteText(stderr, prometheus.DefaultGatherer, "lexdex_"); err != nil {
				logger.Warn("Failed to dump metrics", zap.Error(err))
			}
		}()
	}

	b, err := loadBundle(cfg.Corpus)
	if err != nil {
		return err
	}

	tok, err := newTokenizer(cfg.Tokenizer, b, logger)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	queries := fs.Args()

	if f.tokenize {
		for _, q := range queries {
			if err := enc.Encode(tokenizeLine{Query: q, Tokens: tok.TokenizeSentence(q, f.learn)}); err != nil {
				return fmt.Errorf("write tokens: %w", err)
			}
		}
		return nil
	}

	svcOpts := []searchuc.Option{
		searchuc.WithWeighting(weighting.Weighting(cfg.Search.Weighting)),
		searchuc.WithLogger(logger),
	}
	if cfg.Search.CacheSize > 0 {
		svcOpts = append(svcOpts, searchuc.WithQueryCache(
			querycache.New(cfg.Search.CacheSize, metrics.QueryCacheTotal, logger),
		))
	}
	svc, err := searchuc.New(b, tok, svcOpts...)
	if err != nil {
		return fmt.Errorf("create search service: %w", err)
	}

	topK := clampTopK(f.topK, cfg.Search)

	searcher := searchuc.NewInstrumentedSearcher(svc, logger)

	if f.fuse {
		res, err := searcher.SearchFused(ctx, queries, topK)
		if err != nil {
			return fmt.Errorf("fused search: %w", err)
		}
		if err := enc.Encode(fusedLine{Queries: queries, Results: views(res)}); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
		return nil
	}

	for i, q := range queries {
		qctx := logpkg.ContextWithLogger(ctx, logger.With(zap.Int("query_index", i)))
		res, err := searcher.Search(qctx, q, topK)
		if err != nil {
			return err
		}
		if err := enc.Encode(searchLine{Query: q, Results: views(res)}); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
	}
	return nil
}

func loadBundle(cfg config.CorpusConfig) (*bundle.Bundle, error) {
	format, comp := bundle.Format(cfg.Format), bundle.Compression(cfg.Compression)
	if format == "" || comp == "" {
		detFormat, detComp, err := bundle.DetectPath(cfg.BundlePath)
		if err != nil && format == "" {
			return nil, fmt.Errorf("load bundle %s: %w", cfg.BundlePath, err)
		}
		if format == "" {
			format = detFormat
		}
		if comp == "" {
			comp = detComp
			if err != nil {
				comp = bundle.CompressionNone
			}
		}
	}

	b, err := bundle.LoadAs(cfg.BundlePath, format, comp)
	if err != nil {
		return nil, fmt.Errorf("load bundle %s: %w", cfg.BundlePath, err)
	}
	return b, nil
}

func newTokenizer(cfg config.TokenizerConfig, b *bundle.Bundle, logger *zap.Logger) (*tokenizer.Tokenizer, error) {
	opts := []tokenizer.Option{
		tokenizer.WithLowercase(cfg.Lowercase),
		tokenizer.WithLogger(logger),
		tokenizer.WithCounters(metrics.TokenizerLearnedTotal, metrics.TokenizerUnknownTotal),
	}
	if cfg.VocabPath != "" {
		data, err := os.ReadFile(filepath.Clean(cfg.VocabPath))
		if err != nil {
			return nil, fmt.Errorf("read vocabulary: %w", err)
		}
		opts = append(opts, tokenizer.WithVocabulary(string(data)))
	} else {
		opts = append(opts, tokenizer.WithEntries(b.VocabEntries()))
	}

	tok, err := tokenizer.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create tokenizer: %w", err)
	}
	return tok, nil
}

func clampTopK(requested int, cfg config.SearchConfig) int {
	if requested <= 0 {
		requested = cfg.DefaultTopK
	}
	return min(requested, cfg.MaxTopK)
}

func views(res []result.Result) []result.View {
	out := make([]result.View, len(res))
	for i, r := range res {
		out[i] = r.View()
	}
	return out
}
