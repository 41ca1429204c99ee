package document

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/lexdex/internal/domain"
	"github.com/kailas-cloud/lexdex/internal/domain/sparse"
)

func TestNew_Valid(t *testing.T) {
	doc, err := New("doc-1", "run fast", sparse.Vector{5: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID() != "doc-1" {
		t.Errorf("ID() = %q", doc.ID())
	}
	if doc.Text() != "run fast" {
		t.Errorf("Text() = %q", doc.Text())
	}
	if doc.Vector()[5] != 1 {
		t.Errorf("Vector() = %v", doc.Vector())
	}
}

func TestNew_ClonesVector(t *testing.T) {
	vec := sparse.Vector{5: 1}
	doc, _ := New("doc-1", "", vec)

	vec[5] = 42
	if doc.Vector()[5] != 1 {
		t.Error("document vector changed after caller mutated its input")
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"empty id", ""},
		{"too long", strings.Repeat("a", MaxIDLength+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.id, "text", nil)
			if !errors.Is(err, domain.ErrInvalidDocument) {
				t.Fatalf("expected ErrInvalidDocument, got %v", err)
			}
		})
	}
}

func TestReconstruct(t *testing.T) {
	vec := sparse.Vector{7: 2}
	doc := Reconstruct("", "jump", vec)
	if doc.ID() != "" || doc.Text() != "jump" || doc.Vector()[7] != 2 {
		t.Errorf("Reconstruct() = %+v", doc)
	}
}
