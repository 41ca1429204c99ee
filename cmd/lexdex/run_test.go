package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, extra string) string {
	t.Helper()
	bundlePath, err := filepath.Abs(filepath.Join("testdata", "corpus.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	content := "corpus:\n  bundle_path: " + bundlePath + "\nlogging:\n  level: error\n" + extra
	path := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), append([]string{"--env", "test"}, args...), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func decodeLines[T any](t *testing.T, out string) []T {
	t.Helper()
	var lines []T
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		var v T
		if err := json.Unmarshal(sc.Bytes(), &v); err != nil {
			t.Fatalf("decode %q: %v", sc.Text(), err)
		}
		lines = append(lines, v)
	}
	return lines
}

func resultIDs(line searchLine) []string {
	out := make([]string, len(line.Results))
	for i, r := range line.Results {
		out[i] = r.ID
	}
	return out
}

func TestRun_Search(t *testing.T) {
	cfg := writeConfig(t, "")
	out, _, err := runCLI(t, "--config", cfg, "running", "jumping dog", "zebra")
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	lines := decodeLines[searchLine](t, out)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %s", len(lines), out)
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"running", []string{"doc1"}},
		{"jumping dog", []string{"doc2", "doc3"}},
		{"zebra", []string{}},
	}
	for i, tt := range tests {
		if lines[i].Query != tt.query {
			t.Errorf("line %d query = %q, want %q", i, lines[i].Query, tt.query)
		}
		got := resultIDs(lines[i])
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("%q results = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestRun_TopKClampedToMax(t *testing.T) {
	cfg := writeConfig(t, "search:\n  default_top_k: 1\n  max_top_k: 1\n")
	out, _, err := runCLI(t, "--config", cfg, "--top-k", "10", "jumping dog")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	lines := decodeLines[searchLine](t, out)
	if len(lines) != 1 || len(lines[0].Results) != 1 || lines[0].Results[0].ID != "doc2" {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestRun_Tokenize(t *testing.T) {
	cfg := writeConfig(t, "")
	out, _, err := runCLI(t, "--config", cfg, "--lowercase", "--tokenize", "Running dog")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	lines := decodeLines[tokenizeLine](t, out)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	got := lines[0].Tokens
	wantIDs := []int{5, 6, 11}
	if len(got.IDs) != len(wantIDs) {
		t.Fatalf("ids = %v, want %v", got.IDs, wantIDs)
	}
	for i := range wantIDs {
		if got.IDs[i] != wantIDs[i] {
			t.Errorf("ids = %v, want %v", got.IDs, wantIDs)
			break
		}
	}
	if got.Offsets[2].Start != 8 || got.Offsets[2].End != 11 {
		t.Errorf("dog offset = %+v, want {8 11}", got.Offsets[2])
	}
}

func TestRun_VocabFile(t *testing.T) {
	cfg := writeConfig(t, "")
	vocab, err := filepath.Abs(filepath.Join("testdata", "vocab.txt"))
	if err != nil {
		t.Fatal(err)
	}
	out, _, err := runCLI(t, "--config", cfg, "--vocab", vocab, "walking")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	lines := decodeLines[searchLine](t, out)
	if got := resultIDs(lines[0]); strings.Join(got, ",") != "doc3,doc2" {
		t.Errorf("walking results = %v, want [doc3 doc2]", got)
	}
}

func TestRun_Fuse(t *testing.T) {
	cfg := writeConfig(t, "")
	out, _, err := runCLI(t, "--config", cfg, "--fuse", "running", "walking")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	lines := decodeLines[fusedLine](t, out)
	if len(lines) != 1 {
		t.Fatalf("expected 1 fused line, got %d", len(lines))
	}
	var got []string
	for _, r := range lines[0].Results {
		got = append(got, r.ID)
	}
	if strings.Join(got, ",") != "doc1,doc3,doc2" {
		t.Errorf("fused results = %v, want [doc1 doc3 doc2]", got)
	}
}

func TestRun_Metrics(t *testing.T) {
	cfg := writeConfig(t, "")
	_, stderr, err := runCLI(t, "--config", cfg, "--metrics", "running")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stderr, "lexdex_search_requests_total") {
		t.Errorf("metrics dump missing search counter:\n%s", stderr)
	}
}

func TestRun_Version(t *testing.T) {
	out, _, err := runCLI(t, "--version")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(out, "lexdex ") {
		t.Errorf("version output = %q", out)
	}
}

func TestRun_Errors(t *testing.T) {
	cfg := writeConfig(t, "")

	t.Run("missing bundle", func(t *testing.T) {
		_, _, err := runCLI(t, "--config", cfg, "--bundle", filepath.Join(t.TempDir(), "none.json"), "q")
		if err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("missing config", func(t *testing.T) {
		_, _, err := runCLI(t, "--config", filepath.Join(t.TempDir(), "none.yaml"), "q")
		if err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("missing vocab", func(t *testing.T) {
		_, _, err := runCLI(t, "--config", cfg, "--vocab", filepath.Join(t.TempDir(), "none.txt"), "q")
		if err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("help", func(t *testing.T) {
		_, _, err := runCLI(t, "--help")
		if !errors.Is(err, errHelp) {
			t.Fatalf("expected errHelp, got %v", err)
		}
	})
}
