package lexdex

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/lexdex/internal/domain/search/result"
	"github.com/kailas-cloud/lexdex/internal/domain/token"
)

// DefaultTopK is the result count used when no limit is given.
const DefaultTopK = 5

// Hit is one ranked document.
type Hit struct {
	ID    string  `json:"id"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// Offset is a half-open rune range in the tokenized sentence.
type Offset struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// TokenizeResult holds parallel token ids, token strings and offsets.
type TokenizeResult struct {
	IDs     []int    `json:"ids"`
	Tokens  []string `json:"tokens"`
	Offsets []Offset `json:"offsets"`
}

// Search ranks the corpus against query and returns at most topK hits with a
// non-zero score, best first.
func (c *Client) Search(ctx context.Context, query string, topK int) ([]Hit, error) {
	res, err := c.searcher.Search(ctx, query, topK)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return fromResults(res), nil
}

func fromResults(res []result.Result) []Hit {
	hits := make([]Hit, len(res))
	for i, r := range res {
		hits[i] = Hit{ID: r.ID(), Text: r.Text(), Score: r.Score()}
	}
	return hits
}

func fromTokenResult(r token.Result) TokenizeResult {
	out := TokenizeResult{
		IDs:     r.IDs,
		Tokens:  r.Tokens,
		Offsets: make([]Offset, len(r.Offsets)),
	}
	for i, o := range r.Offsets {
		out.Offsets[i] = Offset{Start: o.Start, End: o.End}
	}
	return out
}
