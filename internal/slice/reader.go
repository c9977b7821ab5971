package slice

import (
	"context"
	"fmt"

	"github.com/san-kum/ncpeek/internal/dataset"
)

// Reader executes plans against one variable. Every selected index of the
// leading dimension costs one GetSlice call; the remaining dimensions are
// sampled in memory from that slab.
type Reader struct {
	Name   string
	Source dataset.Source
	Shape  []int
}

func NewReader(v *dataset.Variable, src dataset.Source) *Reader {
	return &Reader{Name: v.Name, Source: src, Shape: v.Shape()}
}

// Read runs p and returns a grid whose shape equals p.Counts(). Failures of
// the underlying source are returned as *ReadError and are not retried.
func (r *Reader) Read(ctx context.Context, p Plan) (*Grid, error) {
	if err := p.Validate(r.Shape); err != nil {
		return nil, err
	}
	grid := NewGrid(p.Counts())

	if len(r.Shape) == 0 {
		vals, err := r.slab(0)
		if err != nil {
			return nil, err
		}
		grid.Values = append(grid.Values, vals[0])
		return grid, nil
	}

	inner := r.Shape[1:]
	strides := rowMajor(inner)
	slabSize := 1
	for _, n := range inner {
		slabSize *= n
	}

	lead := p.Ranges[0]
	innerRanges := p.Ranges[1:]
	counts := p.Counts()[1:]
	for k := 0; k < lead.Count; k++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		idx := lead.Index(k)
		vals, err := r.slab(idx)
		if err != nil {
			return nil, err
		}
		if len(vals) != slabSize {
			return nil, &ReadError{Variable: r.Name, Index: idx,
				Err: fmt.Errorf("%w: got %d values, want %d", ErrShapeMismatch, len(vals), slabSize)}
		}

		w := NewWalker(counts)
		for pos, ok := w.Next(); ok; pos, ok = w.Next() {
			off := 0
			for d, c := range pos {
				off += innerRanges[d].Index(c) * strides[d]
			}
			grid.Values = append(grid.Values, vals[off])
		}
	}
	return grid, nil
}

func (r *Reader) slab(idx int) ([]float64, error) {
	raw, err := r.Source.GetSlice(int64(idx), int64(idx)+1)
	if err != nil {
		return nil, &ReadError{Variable: r.Name, Index: idx, Err: err}
	}
	vals, _, err := dataset.Flatten(raw)
	if err != nil {
		return nil, &ReadError{Variable: r.Name, Index: idx, Err: err}
	}
	if len(vals) == 0 {
		return nil, &ReadError{Variable: r.Name, Index: idx, Err: ErrShapeMismatch}
	}
	return vals, nil
}

func rowMajor(shape []int) []int {
	strides := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= shape[i]
	}
	return strides
}
