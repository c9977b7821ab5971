package slice

// Grid is a dense row-major block of samples. Shape matches the counts of
// the plan that produced it. Missing marks sentinel cells once a filter has
// been applied.
type Grid struct {
	Shape   []int
	Values  []float64
	Missing []bool
}

func NewGrid(shape []int) *Grid {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return &Grid{
		Shape:   append([]int(nil), shape...),
		Values:  make([]float64, 0, n),
		Missing: make([]bool, n),
	}
}

func (g *Grid) Len() int { return len(g.Values) }

// Cols is the length of the innermost dimension.
func (g *Grid) Cols() int {
	if len(g.Shape) == 0 {
		return 1
	}
	return g.Shape[len(g.Shape)-1]
}

// Rows is the number of innermost rows, all outer dimensions folded.
func (g *Grid) Rows() int {
	cols := g.Cols()
	if cols == 0 {
		return 0
	}
	return g.Len() / cols
}

// Cell returns the value at (row, col) of the folded 2D view and whether it
// holds data.
func (g *Grid) Cell(row, col int) (float64, bool) {
	i := row*g.Cols() + col
	return g.Values[i], !g.Missing[i]
}

// Mask marks every cell for which missing reports true.
func (g *Grid) Mask(missing func(float64) bool) {
	if len(g.Missing) != len(g.Values) {
		g.Missing = make([]bool, len(g.Values))
	}
	for i, v := range g.Values {
		g.Missing[i] = missing(v)
	}
}

// Valid returns the values not marked missing.
func (g *Grid) Valid() []float64 {
	out := make([]float64, 0, len(g.Values))
	for i, v := range g.Values {
		if !g.Missing[i] {
			out = append(out, v)
		}
	}
	return out
}
