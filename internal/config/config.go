package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/lexdex/internal/bundle"
	"github.com/kailas-cloud/lexdex/internal/domain/search/weighting"
)

// Config holds the lexdex configuration.
type Config struct {
	Tokenizer TokenizerConfig `yaml:"tokenizer"`
	Corpus    CorpusConfig    `yaml:"corpus"`
	Search    SearchConfig    `yaml:"search"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// TokenizerConfig holds tokenizer settings.
type TokenizerConfig struct {
	Lowercase bool `yaml:"lowercase"`
	// VocabPath is a newline-delimited vocabulary. Empty means the bundle vocab is used.
	VocabPath string `yaml:"vocab_path"`
}

// CorpusConfig locates the corpus bundle.
type CorpusConfig struct {
	BundlePath  string `yaml:"bundle_path"`
	Format      string `yaml:"format"`      // json, yaml, cbor (default: from extension)
	Compression string `yaml:"compression"` // none, zstd, lz4 (default: from extension)
}

// SearchConfig holds ranking settings.
type SearchConfig struct {
	DefaultTopK int    `yaml:"default_top_k"`
	MaxTopK     int    `yaml:"max_top_k"`
	Weighting   string `yaml:"weighting"`  // overwrite | accumulate
	CacheSize   int    `yaml:"cache_size"` // 0 = no query cache
}

// Override adjusts a parsed config before defaults and validation run.
type Override func(*Config)

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string, overrides ...Override) (Config, error) {
	return LoadFile(findConfigPath(env), overrides...)
}

// LoadFile reads configuration from an explicit path.
func LoadFile(configPath string, overrides ...Override) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	for _, o := range overrides {
		o(&cfg)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Search.DefaultTopK <= 0 {
		c.Search.DefaultTopK = 5
	}
	if c.Search.MaxTopK <= 0 {
		c.Search.MaxTopK = 100
	}
	if c.Search.Weighting == "" {
		c.Search.Weighting = string(weighting.Overwrite)
	}
	if c.Search.CacheSize < 0 {
		c.Search.CacheSize = 0
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.Corpus.BundlePath == "" {
		return fmt.Errorf("corpus.bundle_path is required")
	}
	if c.Corpus.Format != "" && !bundle.Format(c.Corpus.Format).IsValid() {
		return fmt.Errorf("corpus.format must be json, yaml or cbor, got %q", c.Corpus.Format)
	}
	if c.Corpus.Compression != "" && !bundle.Compression(c.Corpus.Compression).IsValid() {
		return fmt.Errorf("corpus.compression must be none, zstd or lz4, got %q", c.Corpus.Compression)
	}
	if !weighting.Weighting(c.Search.Weighting).IsValid() {
		return fmt.Errorf(
			"search.weighting must be \"overwrite\" or \"accumulate\", got %q", c.Search.Weighting,
		)
	}
	if c.Search.DefaultTopK > c.Search.MaxTopK {
		return fmt.Errorf("search.default_top_k (%d) exceeds search.max_top_k (%d)",
			c.Search.DefaultTopK, c.Search.MaxTopK)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
