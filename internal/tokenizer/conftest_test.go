package tokenizer

import "testing"

// scenarioVocab is the BERT-like vocabulary used across tests: ids 0-7.
var scenarioVocab = []string{"[PAD]", "[UNK]", "[CLS]", "[SEP]", "[MASK]", "run", "##ning", "jump"}

func newTestTokenizer(t *testing.T, opts ...Option) *Tokenizer {
	t.Helper()
	tk, err := New(append([]Option{WithEntries(scenarioVocab)}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tk
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
