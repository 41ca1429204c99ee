// Package sparse implements sparse vectors keyed by vocabulary id.
package sparse

import (
	"fmt"
	"sort"
	"strconv"
)

// Vector maps a dimension id to its weight. Absent dimensions are zero.
type Vector map[int]float64

// Dot returns the dot product of a and b. Products are summed in ascending
// dimension order, so the result is bit-identical across calls and Dot(a, b) == Dot(b, a).
func Dot(a, b Vector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	shared := make([]int, 0, len(a))
	for dim := range a {
		if _, ok := b[dim]; ok {
			shared = append(shared, dim)
		}
	}
	sort.Ints(shared)
	return DotDims(shared, a, b)
}

// DotDims sums a[d]*b[d] over dims in the given order, skipping dimensions
// absent from b. With dims = a.Dims() it equals Dot(a, b) bit for bit.
func DotDims(dims []int, a, b Vector) float64 {
	var sum float64
	for _, dim := range dims {
		if v, ok := b[dim]; ok {
			sum += a[dim] * v
		}
	}
	return sum
}

// Len returns the number of defined dimensions.
func (v Vector) Len() int { return len(v) }

// Dims returns the defined dimensions in ascending order.
func (v Vector) Dims() []int {
	dims := make([]int, 0, len(v))
	for d := range v {
		dims = append(dims, d)
	}
	sort.Ints(dims)
	return dims
}

// Clone returns a deep copy. A nil vector clones to nil.
func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}
	out := make(Vector, len(v))
	for d, w := range v {
		out[d] = w
	}
	return out
}

// CheckBounds returns an error if any dimension falls outside [0, size).
func (v Vector) CheckBounds(size int) error {
	for d := range v {
		if d < 0 || d >= size {
			return fmt.Errorf("dimension %d out of range [0, %d)", d, size)
		}
	}
	return nil
}

// FromStringKeys converts a map keyed by decimal dimension ids, as found in JSON documents.
func FromStringKeys(m map[string]float64) (Vector, error) {
	out := make(Vector, len(m))
	for k, w := range m {
		d, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("invalid dimension %q: %w", k, err)
		}
		out[d] = w
	}
	return out, nil
}
