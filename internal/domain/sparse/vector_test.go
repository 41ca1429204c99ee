package sparse

import (
	"math"
	"testing"
)

func TestDot(t *testing.T) {
	tests := []struct {
		name string
		a, b Vector
		want float64
	}{
		{"disjoint", Vector{1: 1}, Vector{2: 1}, 0},
		{"single overlap", Vector{5: 1}, Vector{5: 1, 7: 3}, 1},
		{"weighted", Vector{1: 0.5, 2: 2}, Vector{1: 4, 2: 0.25, 3: 9}, 2.5},
		{"nil query", nil, Vector{1: 1}, 0},
		{"both empty", Vector{}, Vector{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dot(tt.a, tt.b); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Dot() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDot_Symmetric(t *testing.T) {
	pairs := [][2]Vector{
		{{1: 0.3, 4: 1.7, 9: 2}, {4: 0.1, 9: 5, 11: 8}},
		{{0: 1}, {0: 2, 1: 3, 2: 4}},
		{{}, {3: 1}},
	}
	a, b := denseOverlap(16)
	pairs = append(pairs, [2]Vector{a, b})
	for _, p := range pairs {
		if Dot(p[0], p[1]) != Dot(p[1], p[0]) {
			t.Errorf("Dot not symmetric for %v, %v", p[0], p[1])
		}
	}
}

// denseOverlap builds two vectors sharing n dimensions with weights that are
// not exactly representable, so the sum depends on the order of addition.
func denseOverlap(n int) (Vector, Vector) {
	a, b := make(Vector, n), make(Vector, n+3)
	for i := range n {
		a[i*7] = 0.1 + float64(i)/3
		b[i*7] = 1.0/float64(i+3) + 0.01*float64(i)
	}
	b[1000], b[1001], b[1002] = 0.7, 0.9, 1.1
	return a, b
}

func TestDot_Deterministic(t *testing.T) {
	a, b := denseOverlap(12)
	want := Dot(a, b)
	for i := range 2000 {
		if got := Dot(a, b); got != want {
			t.Fatalf("call %d: Dot() = %v, want %v", i, got, want)
		}
		if got := Dot(b, a); got != want {
			t.Fatalf("call %d: Dot(b, a) = %v, want %v", i, got, want)
		}
	}
}

func TestDotDims(t *testing.T) {
	a, b := denseOverlap(12)
	dims := a.Dims()
	want := Dot(a, b)
	for range 500 {
		if got := DotDims(dims, a, b); got != want {
			t.Fatalf("DotDims() = %v, want %v", got, want)
		}
	}
	if got := DotDims(nil, a, b); got != 0 {
		t.Errorf("DotDims(nil) = %v, want 0", got)
	}
}

func TestDot_DoesNotMutate(t *testing.T) {
	a := Vector{1: 1, 2: 2}
	b := Vector{2: 3}
	_ = Dot(a, b)
	if len(a) != 2 || len(b) != 1 || b[2] != 3 {
		t.Errorf("vectors mutated: a=%v b=%v", a, b)
	}
}

func TestDims(t *testing.T) {
	v := Vector{9: 1, 2: 1, 5: 1}
	dims := v.Dims()
	want := []int{2, 5, 9}
	if len(dims) != len(want) {
		t.Fatalf("Dims() = %v, want %v", dims, want)
	}
	for i := range want {
		if dims[i] != want[i] {
			t.Errorf("Dims()[%d] = %d, want %d", i, dims[i], want[i])
		}
	}
}

func TestClone(t *testing.T) {
	v := Vector{1: 1}
	c := v.Clone()
	c[1] = 2
	if v[1] != 1 {
		t.Error("Clone shares storage with the original")
	}
	if Vector(nil).Clone() != nil {
		t.Error("Clone(nil) should be nil")
	}
}

func TestCheckBounds(t *testing.T) {
	if err := (Vector{0: 1, 7: 1}).CheckBounds(8); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (Vector{8: 1}).CheckBounds(8); err == nil {
		t.Error("expected error for dimension == size")
	}
	if err := (Vector{-1: 1}).CheckBounds(8); err == nil {
		t.Error("expected error for negative dimension")
	}
}

func TestFromStringKeys(t *testing.T) {
	v, err := FromStringKeys(map[string]float64{"5": 1, "12": 0.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v[5] != 1 || v[12] != 0.5 {
		t.Errorf("FromStringKeys() = %v", v)
	}

	if _, err := FromStringKeys(map[string]float64{"run": 1}); err == nil {
		t.Error("expected error for non-numeric key")
	}
}
