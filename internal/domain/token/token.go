// Package token holds the value types produced by segmentation and subword tokenization.
package token

// Category classifies a segment produced by the sentence splitter.
type Category string

// Segment categories.
const (
	Word      Category = "word"
	Space     Category = "space"
	Separator Category = "separator"
)

// IsValid checks if the category is one of the supported values.
func (c Category) IsValid() bool {
	return c == Word || c == Space || c == Separator
}

// Token is a contiguous span of normalized text. Start and End are rune offsets, End exclusive.
type Token struct {
	Text     string
	Start    int
	End      int
	Category Category
}

// Len returns the span length in runes.
func (t Token) Len() int { return t.End - t.Start }

// Offset is a [Start, End) rune range.
type Offset struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Result is the output of sentence tokenization. The three slices are index-aligned;
// continuation pieces in Tokens carry the continuation marker.
type Result struct {
	IDs     []int    `json:"ids"`
	Tokens  []string `json:"tokens"`
	Offsets []Offset `json:"offsets"`
}

// Len returns the number of tokens.
func (r *Result) Len() int { return len(r.IDs) }

// IsEmpty reports whether the result holds no tokens.
func (r *Result) IsEmpty() bool { return len(r.IDs) == 0 }

// Append adds one token with its id and offsets.
func (r *Result) Append(id int, tok string, start, end int) {
	r.IDs = append(r.IDs, id)
	r.Tokens = append(r.Tokens, tok)
	r.Offsets = append(r.Offsets, Offset{Start: start, End: end})
}
