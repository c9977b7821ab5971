package export

import (
	"context"
	"encoding/json"
	"io"

	"github.com/san-kum/ncpeek/internal/pipeline"
	"github.com/san-kum/ncpeek/internal/render"
	"github.com/san-kum/ncpeek/internal/scale"
	"github.com/san-kum/ncpeek/internal/slice"
)

// BoxBounds is a half-open index window per spatial axis.
type BoxBounds struct {
	Lat [2]int `json:"lat"`
	Lon [2]int `json:"lon"`
}

// GridDocument is a glyph rendering of a bounding box together with the
// scaling that produced it.
type GridDocument struct {
	Variable string               `json:"variable"`
	Time     int                  `json:"time"`
	Box      BoxBounds            `json:"box"`
	Domain   scale.Domain         `json:"domain"`
	Range    [2]float64           `json:"range"`
	Ticks    []float64            `json:"ticks"`
	Legend   []render.LegendEntry `json:"legend"`
	Grid     [][]string           `json:"grid"`
}

// BuildGrid reads b at time index t and assigns one glyph per cell.
func BuildGrid(ctx context.Context, p *pipeline.Pipeline, b slice.Box, t, ticks int, glyphs scale.Glyphs) (*GridDocument, error) {
	g, err := p.BoxSample(ctx, b, t)
	if err != nil {
		return nil, err
	}
	buckets := scale.NewBuckets(p.Domain(g), ticks)
	return &GridDocument{
		Variable: p.Variable.Name,
		Time:     t,
		Box: BoxBounds{
			Lat: [2]int{b.Lat.Start, b.Lat.End},
			Lon: [2]int{b.Lon.Start, b.Lon.End},
		},
		Domain: buckets.Domain(),
		Range:  buckets.Range(),
		Ticks:  buckets.Ticks(),
		Legend: render.SymbolLegend(buckets, glyphs),
		Grid:   render.Symbols(g, buckets, glyphs),
	}, nil
}

// WriteGrid encodes doc with indentation. Glyphs are written literally.
func WriteGrid(w io.Writer, doc *GridDocument) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
