// Package series reduces a variable to one spatial mean per time step.
package series

import (
	"context"
	"math"
	"slices"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/ncpeek/internal/pipeline"
)

// Means returns the mean of the valid cells of every time step, read at full
// resolution. Steps without valid cells yield NaN.
func Means(ctx context.Context, p *pipeline.Pipeline) ([]float64, error) {
	box := p.Coord.FullBox()
	means := make([]float64, p.Frames())
	for t := range means {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g, err := p.BoxSample(ctx, box, t)
		if err != nil {
			return nil, err
		}
		means[t] = Mean(g.Valid())
	}
	return means, nil
}

// Mean is the arithmetic mean of vs, NaN when empty.
func Mean(vs []float64) float64 {
	if len(vs) == 0 {
		return math.NaN()
	}
	return floats.Sum(vs) / float64(len(vs))
}

// Plot draws means as a line chart. Steps without data leave gaps.
func Plot(means []float64, caption string, width, height int) string {
	if !slices.ContainsFunc(means, func(v float64) bool { return !math.IsNaN(v) }) {
		return caption + ": no valid samples"
	}
	return asciigraph.Plot(means,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
