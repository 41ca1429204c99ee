package tokenizer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/lexdex/internal/domain"
)

// ContinuationMarker prefixes vocabulary entries that may only continue a word.
const ContinuationMarker = "##"

var markerLen = utf8.RuneCountInString(ContinuationMarker)

// Vocabulary is an immutable token table. Ids follow entry order, starting at 0.
type Vocabulary struct {
	ids         map[string]int
	tokens      []string
	affixes     map[string]int // bare affix -> id of the marked entry
	maxAffixLen int            // runes
}

// BuildVocabulary indexes entries in order. Duplicate entries are rejected.
func BuildVocabulary(entries []string) (*Vocabulary, error) {
	v := &Vocabulary{
		ids:     make(map[string]int, len(entries)),
		tokens:  make([]string, 0, len(entries)),
		affixes: make(map[string]int),
	}
	for _, e := range entries {
		if _, dup := v.ids[e]; dup {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateToken, e)
		}
		id := len(v.tokens)
		v.ids[e] = id
		v.tokens = append(v.tokens, e)

		if bare, ok := strings.CutPrefix(e, ContinuationMarker); ok && bare != "" {
			v.affixes[bare] = id
			if n := utf8.RuneCountInString(bare); n > v.maxAffixLen {
				v.maxAffixLen = n
			}
		}
	}
	return v, nil
}

// ParseEntries splits newline-delimited vocabulary content. Blank lines are skipped
// and a trailing carriage return is dropped.
func ParseEntries(content string) []string {
	lines := strings.Split(content, "\n")
	entries := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		entries = append(entries, line)
	}
	return entries
}

// ID returns the id of a whole vocabulary entry.
func (v *Vocabulary) ID(tok string) (int, bool) {
	id, ok := v.ids[tok]
	return id, ok
}

// AffixID returns the id of the marked entry for a bare affix.
func (v *Vocabulary) AffixID(bare string) (int, bool) {
	id, ok := v.affixes[bare]
	return id, ok
}

// Token returns the entry for id.
func (v *Vocabulary) Token(id int) (string, bool) {
	if id < 0 || id >= len(v.tokens) {
		return "", false
	}
	return v.tokens[id], true
}

// Size returns the number of entries.
func (v *Vocabulary) Size() int { return len(v.tokens) }

// AffixCount returns the number of continuation entries.
func (v *Vocabulary) AffixCount() int { return len(v.affixes) }

// MaxAffixLength returns the rune length of the longest bare affix.
func (v *Vocabulary) MaxAffixLength() int { return v.maxAffixLen }

// Entries returns a copy of the entries in id order.
func (v *Vocabulary) Entries() []string {
	out := make([]string, len(v.tokens))
	copy(out, v.tokens)
	return out
}
