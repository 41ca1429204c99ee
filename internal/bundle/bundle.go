// Package bundle decodes and validates the corpus snapshot a search service is built from:
// the vocabulary, IDF table, special token ids and documents with precomputed sparse vectors.
package bundle

import (
	"fmt"
	"sort"

	"github.com/kailas-cloud/lexdex/internal/domain"
	"github.com/kailas-cloud/lexdex/internal/domain/document"
	"github.com/kailas-cloud/lexdex/internal/domain/sparse"
)

// Bundle is the construction input of a search service.
type Bundle struct {
	Vocab         map[string]int `json:"vocab" yaml:"vocab" cbor:"vocab"`
	IDF           []float64      `json:"idf" yaml:"idf" cbor:"idf"`
	SpecialTokens []int          `json:"special_tokens" yaml:"special_tokens" cbor:"special_tokens"`
	Documents     []Entry        `json:"documents" yaml:"documents" cbor:"documents"`
	// NumDocuments, when non-zero, must equal len(Documents).
	NumDocuments int `json:"num_documents,omitempty" yaml:"num_documents,omitempty" cbor:"num_documents,omitempty"`
}

// Entry is one document of the collection.
type Entry struct {
	ID       string `json:"id" yaml:"id" cbor:"id"`
	Document Body   `json:"document" yaml:"document" cbor:"document"`
}

// Body holds the document text and its sparse vector.
type Body struct {
	Text   string `json:"text" yaml:"text" cbor:"text"`
	Vector Vector `json:"vector" yaml:"vector" cbor:"vector"`
}

// FromVocabulary builds the vocab map from entries in id order.
func FromVocabulary(entries []string) map[string]int {
	vocab := make(map[string]int, len(entries))
	for i, e := range entries {
		vocab[e] = i
	}
	return vocab
}

// VocabEntries returns the vocab tokens ordered by id.
func (b *Bundle) VocabEntries() []string {
	entries := make([]string, 0, len(b.Vocab))
	for tok := range b.Vocab {
		entries = append(entries, tok)
	}
	sort.Slice(entries, func(i, j int) bool {
		return b.Vocab[entries[i]] < b.Vocab[entries[j]]
	})
	return entries
}

// Validate checks that the tables agree with each other: vocab ids unique and
// contiguous from 0, IDF no longer than the vocab, special ids and vector
// dimensions inside the vocab, document ids unique and the declared document
// count matching.
func (b *Bundle) Validate() error {
	size := len(b.Vocab)

	seen := make([]bool, size)
	for tok, id := range b.Vocab {
		if id < 0 || id >= size {
			return fmt.Errorf("%w: vocab id %d of %q outside [0, %d)", domain.ErrInconsistentCorpus, id, tok, size)
		}
		if seen[id] {
			return fmt.Errorf("%w: vocab id %d assigned twice", domain.ErrInconsistentCorpus, id)
		}
		seen[id] = true
	}

	if len(b.IDF) > size {
		return fmt.Errorf("%w: idf has %d entries, vocab has %d", domain.ErrInconsistentCorpus, len(b.IDF), size)
	}
	for _, id := range b.SpecialTokens {
		if id < 0 || id >= size {
			return fmt.Errorf("%w: special token id %d outside vocab", domain.ErrInconsistentCorpus, id)
		}
	}
	if b.NumDocuments != 0 && b.NumDocuments != len(b.Documents) {
		return fmt.Errorf("%w: declared %d documents, got %d",
			domain.ErrInconsistentCorpus, b.NumDocuments, len(b.Documents))
	}

	ids := make(map[string]struct{}, len(b.Documents))
	for i, e := range b.Documents {
		if e.ID == "" {
			return fmt.Errorf("%w: document %d has no id", domain.ErrInconsistentCorpus, i)
		}
		if _, dup := ids[e.ID]; dup {
			return fmt.Errorf("%w: duplicate document id %q", domain.ErrInconsistentCorpus, e.ID)
		}
		ids[e.ID] = struct{}{}
		if err := sparse.Vector(e.Document.Vector).CheckBounds(size); err != nil {
			return fmt.Errorf("%w: document %q: %w", domain.ErrInconsistentCorpus, e.ID, err)
		}
	}
	return nil
}

// Corpus converts the entries into documents, in bundle order.
func (b *Bundle) Corpus() ([]document.Document, error) {
	docs := make([]document.Document, 0, len(b.Documents))
	for _, e := range b.Documents {
		d, err := document.New(e.ID, e.Document.Text, sparse.Vector(e.Document.Vector))
		if err != nil {
			return nil, fmt.Errorf("document %q: %w", e.ID, err)
		}
		docs = append(docs, d)
	}
	return docs, nil
}
