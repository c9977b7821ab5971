package slice

import (
	"context"
	"errors"
	"testing"
)

// memSource serves slabs of a dense row-major array.
type memSource struct {
	shape []int
	data  []float64
	calls []int64
	fail  int64
}

func newMemSource(shape ...int) *memSource {
	n := 1
	for _, s := range shape {
		n *= s
	}
	data := make([]float64, n)
	for i := range data {
		data[i] = float64(i)
	}
	return &memSource{shape: shape, data: data, fail: -1}
}

func (m *memSource) GetSlice(begin, end int64) (any, error) {
	m.calls = append(m.calls, begin)
	if begin == m.fail {
		return nil, errors.New("disk on fire")
	}
	slab := len(m.data) / m.shape[0]
	if end > int64(m.shape[0]) {
		return nil, errors.New("out of range")
	}
	return m.data[int(begin)*slab : int(end)*slab], nil
}

func TestReaderStrided(t *testing.T) {
	src := newMemSource(3, 6, 8)
	r := &Reader{Name: "v", Source: src, Shape: src.shape}

	p := Plan{Ranges: []Range{{2, 1, 1}, {1, 2, 3}, {0, 4, 2}}}
	g, err := r.Read(context.Background(), p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if g.Rows() != 2 || g.Cols() != 4 {
		t.Fatalf("expected 2x4 grid, got %dx%d", g.Rows(), g.Cols())
	}
	for row := 0; row < 2; row++ {
		for col := 0; col < 4; col++ {
			want := float64(2*48 + (1+row*3)*8 + col*2)
			got, ok := g.Cell(row, col)
			if !ok || got != want {
				t.Errorf("cell (%d,%d): expected %v, got %v", row, col, want, got)
			}
		}
	}
	if len(src.calls) != 1 || src.calls[0] != 2 {
		t.Errorf("expected one slab read at index 2, got %v", src.calls)
	}
}

func TestReaderShapeMatchesPlan(t *testing.T) {
	src := newMemSource(4, 5, 6)
	r := &Reader{Name: "v", Source: src, Shape: src.shape}
	p := Plan{Ranges: []Range{{0, 2, 2}, {1, 2, 2}, {0, 3, 2}}}
	g, err := r.Read(context.Background(), p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if g.Len() != p.Size() {
		t.Errorf("expected %d values, got %d", p.Size(), g.Len())
	}
	for i, c := range p.Counts() {
		if g.Shape[i] != c {
			t.Errorf("dimension %d: expected %d, got %d", i, c, g.Shape[i])
		}
	}
	if len(src.calls) != 2 || src.calls[0] != 0 || src.calls[1] != 2 {
		t.Errorf("expected slab reads at 0 and 2, got %v", src.calls)
	}
}

func TestReaderOneDimensional(t *testing.T) {
	src := newMemSource(5)
	r := &Reader{Name: "time", Source: src, Shape: src.shape}
	g, err := r.Read(context.Background(), FullPlan([]string{"time"}, src.shape))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for i, v := range g.Values {
		if v != float64(i) {
			t.Errorf("value %d: expected %d, got %v", i, i, v)
		}
	}
}

func TestReaderErrors(t *testing.T) {
	src := newMemSource(3, 2, 2)
	src.fail = 1
	r := &Reader{Name: "tas", Source: src, Shape: src.shape}

	_, err := r.Read(context.Background(), FullPlan(nil, src.shape))
	var readErr *ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("expected ReadError, got %v", err)
	}
	if readErr.Variable != "tas" || readErr.Index != 1 {
		t.Errorf("unexpected error context %+v", readErr)
	}

	_, err = r.Read(context.Background(), Plan{Ranges: []Range{{0, 4, 1}, Full(2), Full(2)}})
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestReaderCanceled(t *testing.T) {
	src := newMemSource(3, 2)
	r := &Reader{Name: "v", Source: src, Shape: src.shape}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Read(ctx, FullPlan(nil, src.shape)); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(src.calls) != 0 {
		t.Errorf("no reads expected after cancel, got %v", src.calls)
	}
}

func TestWalkerOrder(t *testing.T) {
	w := NewWalker([]int{2, 3})
	var got [][2]int
	for idx, ok := w.Next(); ok; idx, ok = w.Next() {
		got = append(got, [2]int{idx[0], idx[1]})
	}
	want := [][2]int{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}
	if len(got) != len(want) {
		t.Fatalf("expected %d tuples, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tuple %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	empty := NewWalker([]int{2, 0})
	if _, ok := empty.Next(); ok {
		t.Error("walker over an empty box should yield nothing")
	}

	scalar := NewWalker(nil)
	n := 0
	for _, ok := scalar.Next(); ok; _, ok = scalar.Next() {
		n++
	}
	if n != 1 {
		t.Errorf("rank-0 walker should yield once, got %d", n)
	}
}

func TestGridMask(t *testing.T) {
	g := NewGrid([]int{2, 2})
	g.Values = append(g.Values, 1, -9, 3, 4)
	g.Mask(func(v float64) bool { return v == -9 })

	if _, ok := g.Cell(0, 1); ok {
		t.Error("sentinel cell should be missing")
	}
	valid := g.Valid()
	if len(valid) != 3 {
		t.Errorf("expected 3 valid values, got %v", valid)
	}
}
