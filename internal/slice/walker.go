package slice

// Walker visits every index tuple of a box of the given counts in row-major
// order. It keeps one fixed-size index array and never recurses.
type Walker struct {
	counts []int
	idx    []int
	fresh  bool
	done   bool
}

func NewWalker(counts []int) *Walker {
	w := &Walker{counts: counts, idx: make([]int, len(counts)), fresh: true}
	for _, c := range counts {
		if c <= 0 {
			w.done = true
		}
	}
	return w
}

// Next returns the next index tuple. The returned slice is reused between
// calls.
func (w *Walker) Next() ([]int, bool) {
	if w.done {
		return nil, false
	}
	if w.fresh {
		w.fresh = false
		return w.idx, true
	}
	for d := len(w.idx) - 1; d >= 0; d-- {
		w.idx[d]++
		if w.idx[d] < w.counts[d] {
			return w.idx, true
		}
		w.idx[d] = 0
	}
	w.done = true
	return nil, false
}
