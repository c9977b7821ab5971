package slice

import (
	"fmt"
	"strings"
)

// Range selects Count indices of one dimension: Start, Start+Stride, ...
type Range struct {
	Start  int
	Count  int
	Stride int
}

// Index returns the k-th selected index.
func (r Range) Index(k int) int { return r.Start + k*r.Stride }

// Last returns the final selected index.
func (r Range) Last() int { return r.Index(r.Count - 1) }

// Full selects every index of a dimension of the given length.
func Full(length int) Range { return Range{Start: 0, Count: length, Stride: 1} }

// Single selects one index.
func Single(i int) Range { return Range{Start: i, Count: 1, Stride: 1} }

func (r Range) validate(length int) error {
	if r.Count < 1 || r.Stride < 1 {
		return fmt.Errorf("%w: count %d stride %d", ErrInvalidPlan, r.Count, r.Stride)
	}
	if r.Start < 0 || r.Last() >= length {
		return fmt.Errorf("%w: %d+(%d-1)*%d >= %d", ErrOutOfBounds, r.Start, r.Count, r.Stride, length)
	}
	return nil
}

// Plan holds one Range per dimension, outermost first.
type Plan struct {
	Dims   []string
	Ranges []Range
}

// FullPlan selects every element of a variable of the given shape.
func FullPlan(dims []string, shape []int) Plan {
	p := Plan{Dims: dims, Ranges: make([]Range, len(shape))}
	for i, n := range shape {
		p.Ranges[i] = Full(n)
	}
	return p
}

// Validate checks every range against shape.
func (p Plan) Validate(shape []int) error {
	if len(p.Ranges) != len(shape) {
		return fmt.Errorf("%w: rank %d for shape %v", ErrInvalidPlan, len(p.Ranges), shape)
	}
	for i, r := range p.Ranges {
		if err := r.validate(shape[i]); err != nil {
			return fmt.Errorf("dimension %d: %w", i, err)
		}
	}
	return nil
}

// Counts returns the per-dimension counts, i.e. the shape of the result.
func (p Plan) Counts() []int {
	c := make([]int, len(p.Ranges))
	for i, r := range p.Ranges {
		c[i] = r.Count
	}
	return c
}

// Size returns the number of elements selected.
func (p Plan) Size() int {
	n := 1
	for _, r := range p.Ranges {
		n *= r.Count
	}
	return n
}

func (p Plan) String() string {
	parts := make([]string, len(p.Ranges))
	for i, r := range p.Ranges {
		name := fmt.Sprint(i)
		if i < len(p.Dims) {
			name = p.Dims[i]
		}
		parts[i] = fmt.Sprintf("%s=%d:%d:%d", name, r.Start, r.Count, r.Stride)
	}
	return strings.Join(parts, " ")
}
