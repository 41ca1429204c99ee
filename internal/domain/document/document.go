package document

import (
	"fmt"

	"github.com/kailas-cloud/lexdex/internal/domain"
	"github.com/kailas-cloud/lexdex/internal/domain/sparse"
)

// MaxIDLength is the maximum document identifier length in bytes.
const MaxIDLength = 256

// Document is a corpus entry with its precomputed sparse vector (immutable value object).
type Document struct {
	id     string
	text   string
	vector sparse.Vector
}

// New validates and creates a Document.
// ID: non-empty, at most 256 bytes. Text may be empty. The vector is copied.
func New(id, text string, vector sparse.Vector) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("%w: document ID is required", domain.ErrInvalidDocument)
	}
	if len(id) > MaxIDLength {
		return Document{}, fmt.Errorf("%w: document ID too long (max %d)", domain.ErrInvalidDocument, MaxIDLength)
	}
	return Document{id: id, text: text, vector: vector.Clone()}, nil
}

// Reconstruct creates a Document without validation or copying.
func Reconstruct(id, text string, vector sparse.Vector) Document {
	return Document{id: id, text: text, vector: vector}
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Text returns the document text.
func (d *Document) Text() string { return d.text }

// Vector returns the sparse vector. Callers must not modify it.
func (d *Document) Vector() sparse.Vector { return d.vector }
