package slice

import (
	"fmt"

	"github.com/san-kum/ncpeek/internal/dataset"
)

// DefaultMargin is the number of terminal rows kept free for the header and
// legend lines.
const DefaultMargin = 2

// Target is the rendering surface a frame must fit into.
type Target struct {
	Columns int
	Rows    int
	Margin  int
}

// Extent returns the usable columns and rows, never less than 1.
func (t Target) Extent() (cols, rows int) {
	cols = max(t.Columns, 1)
	rows = max(t.Rows-t.Margin, 1)
	return cols, rows
}

// Stride returns the smallest stride s >= 1 with floor(length/s) <= extent.
func Stride(length, extent int) int {
	if extent < 1 {
		extent = 1
	}
	if length <= extent {
		return 1
	}
	return (length + extent - 1) / extent
}

// SharedStride returns the stride used for both spatial axes:
// ceil(max(lon/cols, lat/rows)).
func SharedStride(lonLen, latLen int, t Target) int {
	cols, rows := t.Extent()
	return max(Stride(lonLen, cols), Stride(latLen, rows))
}

// DimNames names the time and spatial dimensions.
type DimNames struct {
	Time string
	Lat  string
	Lon  string
}

// Axes holds dimension positions; Time is -1 when the variable has none.
type Axes struct {
	Time int
	Lat  int
	Lon  int
}

// ResolveAxes finds the time and spatial axes of v by name, falling back to
// the last two dimensions for lat/lon and the first remaining one for time.
func ResolveAxes(v *dataset.Variable, names DimNames) (Axes, error) {
	rank := v.Rank()
	if rank < 2 {
		return Axes{}, fmt.Errorf("%w: %s has rank %d", ErrRank, v.Name, rank)
	}
	ax := Axes{Time: v.DimIndex(names.Time), Lat: v.DimIndex(names.Lat), Lon: v.DimIndex(names.Lon)}
	if ax.Lon < 0 {
		ax.Lon = rank - 1
	}
	if ax.Lat < 0 || ax.Lat == ax.Lon {
		ax.Lat = rank - 2
		if ax.Lat == ax.Lon {
			ax.Lat = rank - 1
		}
	}
	if ax.Time < 0 && rank > 2 {
		for i := 0; i < rank; i++ {
			if i != ax.Lat && i != ax.Lon {
				ax.Time = i
				break
			}
		}
	}
	if ax.Time == ax.Lat || ax.Time == ax.Lon {
		ax.Time = -1
	}
	return ax, nil
}

// Coordinator computes read plans for one variable.
type Coordinator struct {
	name  string
	dims  []string
	shape []int
	axes  Axes
}

func NewCoordinator(v *dataset.Variable, names DimNames) (*Coordinator, error) {
	ax, err := ResolveAxes(v, names)
	if err != nil {
		return nil, err
	}
	return &Coordinator{name: v.Name, dims: v.DimNames(), shape: v.Shape(), axes: ax}, nil
}

func (c *Coordinator) Axes() Axes     { return c.axes }
func (c *Coordinator) Shape() []int   { return c.shape }
func (c *Coordinator) Dims() []string { return c.dims }

// TimeLength returns the number of time steps, 1 without a time axis.
func (c *Coordinator) TimeLength() int {
	if c.axes.Time < 0 {
		return 1
	}
	return c.shape[c.axes.Time]
}

// FrameSize returns the width and height of a frame fitted to t.
func (c *Coordinator) FrameSize(t Target) (width, height int) {
	lon, lat := c.shape[c.axes.Lon], c.shape[c.axes.Lat]
	stride := SharedStride(lon, lat, t)
	return max(lon/stride, 1), max(lat/stride, 1)
}

// Fit plans a down-sampled frame at timeIndex that fits inside t.
func (c *Coordinator) Fit(t Target, timeIndex int) (Plan, error) {
	lon, lat := c.shape[c.axes.Lon], c.shape[c.axes.Lat]
	stride := SharedStride(lon, lat, t)
	width, height := c.FrameSize(t)

	p := c.base(timeIndex)
	p.Ranges[c.axes.Lat] = Range{Start: 0, Count: height, Stride: stride}
	p.Ranges[c.axes.Lon] = Range{Start: 0, Count: width, Stride: stride}
	if err := p.Validate(c.shape); err != nil {
		return Plan{}, err
	}
	return p, nil
}

// Span is a half-open index interval [Start, End).
type Span struct {
	Start int
	End   int
}

// Box is an explicit spatial window.
type Box struct {
	Lat Span
	Lon Span
}

// FullBox covers the whole spatial extent.
func (c *Coordinator) FullBox() Box {
	return Box{
		Lat: Span{0, c.shape[c.axes.Lat]},
		Lon: Span{0, c.shape[c.axes.Lon]},
	}
}

// Box plans a stride-1 read of b at timeIndex. Boxes reaching past a
// dimension fail with ErrOutOfBounds.
func (c *Coordinator) Box(b Box, timeIndex int) (Plan, error) {
	p := c.base(timeIndex)
	for _, ax := range []struct {
		pos  int
		span Span
	}{{c.axes.Lat, b.Lat}, {c.axes.Lon, b.Lon}} {
		length := c.shape[ax.pos]
		if ax.span.Start < 0 || ax.span.End > length || ax.span.Start >= ax.span.End {
			return Plan{}, fmt.Errorf("%w: %s [%d, %d) of %d", ErrOutOfBounds, c.dims[ax.pos], ax.span.Start, ax.span.End, length)
		}
		p.Ranges[ax.pos] = Range{Start: ax.span.Start, Count: ax.span.End - ax.span.Start, Stride: 1}
	}
	if err := p.Validate(c.shape); err != nil {
		return Plan{}, err
	}
	return p, nil
}

// base pins every dimension at index 0 and the time axis at timeIndex.
func (c *Coordinator) base(timeIndex int) Plan {
	p := Plan{Dims: c.dims, Ranges: make([]Range, len(c.shape))}
	for i := range p.Ranges {
		p.Ranges[i] = Single(0)
	}
	if c.axes.Time >= 0 {
		p.Ranges[c.axes.Time] = Single(timeIndex)
	}
	return p
}
