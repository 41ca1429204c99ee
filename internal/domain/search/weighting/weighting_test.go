package weighting

import "testing"

func TestIsValid(t *testing.T) {
	valid := []Weighting{Overwrite, Accumulate}
	for _, w := range valid {
		if !w.IsValid() {
			t.Errorf("%q.IsValid() = false, want true", w)
		}
	}

	invalid := []Weighting{"", "sum", "OVERWRITE"}
	for _, w := range invalid {
		if w.IsValid() {
			t.Errorf("%q.IsValid() = true, want false", w)
		}
	}
}

func TestConstants(t *testing.T) {
	if Overwrite != "overwrite" {
		t.Errorf("Overwrite = %q", Overwrite)
	}
	if Accumulate != "accumulate" {
		t.Errorf("Accumulate = %q", Accumulate)
	}
}
