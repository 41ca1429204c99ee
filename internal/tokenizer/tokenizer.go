// Package tokenizer implements a WordPiece-style subword tokenizer: accent-insensitive
// sentence segmentation followed by greedy longest-prefix decomposition of each word
// into vocabulary entries and "##"-marked continuation pieces.
package tokenizer

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/lexdex/internal/domain/token"
)

// Piece is one subword emitted by the matcher.
type Piece struct {
	Text         string
	ID           int
	Continuation bool
}

// Tokenizer owns a vocabulary and the words it learned at runtime.
// Tokenization without learning may run concurrently; reloads and learning are serialized.
type Tokenizer struct {
	mu sync.RWMutex

	lowercase     bool
	specialTokens SpecialTokens

	vocab    *Vocabulary
	specials SpecialIDs
	loaded   bool

	extra       map[string]int
	extraTokens []string

	logger  *zap.Logger
	learned prometheus.Counter
	unknown prometheus.Counter
}

// New creates a tokenizer. Without WithVocabulary/WithEntries it starts empty
// and tokenizes everything to an empty result until LoadDictionary is called.
func New(opts ...Option) (*Tokenizer, error) {
	o := options{specials: DefaultSpecialTokens()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	empty, _ := BuildVocabulary(nil)
	t := &Tokenizer{
		lowercase:     o.lowercase,
		specialTokens: o.specials,
		vocab:         empty,
		extra:         make(map[string]int),
		logger:        o.logger,
		learned:       o.learned,
		unknown:       o.unknown,
	}

	if o.hasVocab {
		if err := t.LoadEntries(o.entries); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// LoadDictionary replaces the vocabulary with newline-delimited content.
func (t *Tokenizer) LoadDictionary(content string) error {
	return t.LoadEntries(ParseEntries(content))
}

// LoadEntries replaces the vocabulary with an ordered entry list. Learned words are
// discarded. On error the previous vocabulary stays in place.
func (t *Tokenizer) LoadEntries(entries []string) error {
	v, err := BuildVocabulary(entries)
	if err != nil {
		return fmt.Errorf("load dictionary: %w", err)
	}
	specials, err := t.specialTokens.Resolve(v)
	if err != nil {
		return fmt.Errorf("load dictionary: %w", err)
	}

	t.mu.Lock()
	t.vocab = v
	t.specials = specials
	t.loaded = true
	t.extra = make(map[string]int)
	t.extraTokens = nil
	t.mu.Unlock()

	t.logger.Info("Vocabulary loaded",
		zap.Int("vocab_size", v.Size()),
		zap.Int("affixes", v.AffixCount()),
		zap.Int("max_affix_length", v.MaxAffixLength()),
	)
	return nil
}

// TokenizeSentence segments sentence and decomposes every word into subword pieces.
// Space and separator segments are dropped. With allowLearning, words that cannot
// be decomposed are added to this tokenizer's extra vocabulary.
func (t *Tokenizer) TokenizeSentence(sentence string, allowLearning bool) token.Result {
	var res token.Result
	if sentence == "" {
		return res
	}

	if allowLearning {
		t.mu.Lock()
		defer t.mu.Unlock()
	} else {
		t.mu.RLock()
		defer t.mu.RUnlock()
	}
	if !t.loaded {
		return res
	}

	var pieces []Piece
	for _, seg := range SplitSentence(sentence) {
		if seg.Category != token.Word {
			continue
		}
		pieces = t.match(seg.Text, allowLearning, false, pieces[:0])

		cursor := seg.Start
		for _, p := range pieces {
			n := utf8.RuneCountInString(p.Text)
			if p.Continuation {
				n -= markerLen
			}
			res.Append(p.ID, p.Text, cursor, cursor+n)
			cursor += n
		}
	}
	return res
}

// TokenizeWord decomposes a single word. isContinuation treats the word as the
// tail of a longer word, so matches come from the affix table and carry the marker.
func (t *Tokenizer) TokenizeWord(word string, allowLearning, isContinuation bool) []Piece {
	if allowLearning {
		t.mu.Lock()
		defer t.mu.Unlock()
	} else {
		t.mu.RLock()
		defer t.mu.RUnlock()
	}
	if !t.loaded {
		return nil
	}
	return t.match(word, allowLearning, isContinuation, nil)
}

// match runs greedy longest-prefix decomposition. The residual word is consumed
// left to right; every step either consumes at least one rune or ends the loop.
func (t *Tokenizer) match(word string, allowLearning, cont bool, out []Piece) []Piece {
	if t.lowercase {
		word = strings.ToLower(word)
	}
	rest := []rune(word)

	for len(rest) > 0 {
		s := string(rest)
		if id, ok := t.lookupWhole(s, cont); ok {
			return append(out, Piece{Text: mark(s, cont), ID: id, Continuation: cont})
		}

		matched, id := 0, 0
		for l := min(len(rest)-1, t.vocab.MaxAffixLength()); l >= 1; l-- {
			if pid, ok := t.lookupPrefix(string(rest[:l]), cont); ok {
				matched, id = l, pid
				break
			}
		}

		if matched == 0 {
			if allowLearning {
				return append(out, Piece{Text: mark(s, cont), ID: t.learn(mark(s, cont)), Continuation: cont})
			}
			if t.unknown != nil {
				t.unknown.Inc()
			}
			return append(out, Piece{Text: mark(s, cont), ID: t.specials.Unk, Continuation: cont})
		}

		out = append(out, Piece{Text: mark(string(rest[:matched]), cont), ID: id, Continuation: cont})
		rest = rest[matched:]
		cont = true
	}
	return out
}

func (t *Tokenizer) lookupWhole(s string, cont bool) (int, bool) {
	if id, ok := t.lookupPrefix(s, cont); ok {
		return id, true
	}
	id, ok := t.extra[mark(s, cont)]
	return id, ok
}

func (t *Tokenizer) lookupPrefix(s string, cont bool) (int, bool) {
	if cont {
		return t.vocab.AffixID(s)
	}
	return t.vocab.ID(s)
}

// learn registers tok in the extra vocabulary. Caller holds the write lock.
func (t *Tokenizer) learn(tok string) int {
	id := t.vocab.Size() + len(t.extraTokens)
	t.extra[tok] = id
	t.extraTokens = append(t.extraTokens, tok)
	if t.learned != nil {
		t.learned.Inc()
	}
	t.logger.Debug("Learned token", zap.String("token", tok), zap.Int("id", id))
	return id
}

func mark(s string, cont bool) string {
	if cont {
		return ContinuationMarker + s
	}
	return s
}

// TokenID returns the id of tok in the vocabulary or the extra vocabulary.
func (t *Tokenizer) TokenID(tok string) (int, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if id, ok := t.vocab.ID(tok); ok {
		return id, true
	}
	id, ok := t.extra[tok]
	return id, ok
}

// IDToken returns the token for id, looking in the extra vocabulary past the vocabulary size.
func (t *Tokenizer) IDToken(id int) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.idToken(id)
}

func (t *Tokenizer) idToken(id int) (string, bool) {
	if tok, ok := t.vocab.Token(id); ok {
		return tok, true
	}
	i := id - t.vocab.Size()
	if i < 0 || i >= len(t.extraTokens) {
		return "", false
	}
	return t.extraTokens[i], true
}

// VocabSize returns the number of loaded vocabulary entries.
func (t *Tokenizer) VocabSize() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.vocab.Size()
}

// ExtraSize returns the number of learned entries.
func (t *Tokenizer) ExtraSize() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.extraTokens)
}

// MaxAffixLength returns the rune length of the longest bare affix.
func (t *Tokenizer) MaxAffixLength() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.vocab.MaxAffixLength()
}

// Specials returns the resolved special ids. ok is false before a vocabulary is loaded.
func (t *Tokenizer) Specials() (SpecialIDs, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.specials, t.loaded
}

// Entries returns the loaded vocabulary in id order.
func (t *Tokenizer) Entries() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.vocab.Entries()
}
