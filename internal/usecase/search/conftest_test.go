package search

import (
	"os"
	"testing"

	"github.com/kailas-cloud/lexdex/internal/bundle"
	"github.com/kailas-cloud/lexdex/internal/domain/search/result"
	"github.com/kailas-cloud/lexdex/internal/domain/sparse"
	"github.com/kailas-cloud/lexdex/internal/domain/token"
	"github.com/kailas-cloud/lexdex/internal/metrics"
	"github.com/kailas-cloud/lexdex/internal/tokenizer"
)

func TestMain(m *testing.M) {
	metrics.Register()
	os.Exit(m.Run())
}

var scenarioVocab = []string{"[PAD]", "[UNK]", "[CLS]", "[SEP]", "[MASK]", "run", "##ning", "jump"}

// scenarioBundle: doc1 holds "run", doc2 holds "jump", idf all 1.
func scenarioBundle() *bundle.Bundle {
	return &bundle.Bundle{
		Vocab:         bundle.FromVocabulary(scenarioVocab),
		IDF:           []float64{1, 1, 1, 1, 1, 1, 1, 1},
		SpecialTokens: []int{0, 1, 2, 3, 4},
		Documents: []bundle.Entry{
			{ID: "doc1", Document: bundle.Body{Text: "run", Vector: bundle.Vector{5: 1}}},
			{ID: "doc2", Document: bundle.Body{Text: "jump", Vector: bundle.Vector{7: 1}}},
		},
	}
}

func newScenarioTokenizer(t *testing.T) *tokenizer.Tokenizer {
	t.Helper()
	tk, err := tokenizer.New(tokenizer.WithEntries(scenarioVocab))
	if err != nil {
		t.Fatalf("tokenizer.New: %v", err)
	}
	return tk
}

func newTestService(t *testing.T, b *bundle.Bundle, opts ...Option) *Service {
	t.Helper()
	s, err := New(b, newScenarioTokenizer(t), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

// fakeTokenizer returns fixed tokens for every sentence.
type fakeTokenizer struct {
	tokens []string
	calls  int
}

func (f *fakeTokenizer) TokenizeSentence(_ string, _ bool) token.Result {
	f.calls++
	var r token.Result
	for i, tok := range f.tokens {
		r.Append(i, tok, i, i+1)
	}
	return r
}

// countingCache is a map-backed QueryCache.
type countingCache struct {
	entries map[string]sparse.Vector
	hits    int
}

func (c *countingCache) GetOrCompute(query string, compute func() sparse.Vector) sparse.Vector {
	if v, ok := c.entries[query]; ok {
		c.hits++
		return v
	}
	v := compute()
	c.entries[query] = v
	return v
}

func ids(results []result.Result) []string {
	out := make([]string, len(results))
	for i := range results {
		out[i] = results[i].ID()
	}
	return out
}
