package token

import "testing"

func TestCategory_IsValid(t *testing.T) {
	valid := []Category{Word, Space, Separator}
	for _, c := range valid {
		if !c.IsValid() {
			t.Errorf("%q.IsValid() = false, want true", c)
		}
	}

	invalid := []Category{"", "punct", "WORD"}
	for _, c := range invalid {
		if c.IsValid() {
			t.Errorf("%q.IsValid() = true, want false", c)
		}
	}
}

func TestToken_Len(t *testing.T) {
	tok := Token{Text: "run", Start: 4, End: 7, Category: Word}
	if tok.Len() != 3 {
		t.Errorf("Len() = %d, want 3", tok.Len())
	}
}

func TestResult_Append(t *testing.T) {
	var r Result
	if !r.IsEmpty() {
		t.Fatal("zero Result should be empty")
	}

	r.Append(5, "run", 0, 3)
	r.Append(6, "##ning", 3, 7)

	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	if r.IDs[1] != 6 || r.Tokens[1] != "##ning" {
		t.Errorf("second token = (%d, %q)", r.IDs[1], r.Tokens[1])
	}
	if r.Offsets[1] != (Offset{Start: 3, End: 7}) {
		t.Errorf("second offset = %+v", r.Offsets[1])
	}
}
