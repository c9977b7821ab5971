package render

import (
	"math"

	"github.com/san-kum/ncpeek/internal/scale"
	"github.com/san-kum/ncpeek/internal/slice"
)

// LegendEntry describes the values drawn with one glyph.
type LegendEntry struct {
	Glyph string  `json:"glyph"`
	From  float64 `json:"from"`
	To    float64 `json:"to"`
}

// Symbols maps every cell of g to a one-character string. Missing and
// non-finite cells get the missing glyph.
func Symbols(g *slice.Grid, b *scale.Buckets, glyphs scale.Glyphs) [][]string {
	rows := make([][]string, g.Rows())
	missing := string(glyphs.Missing)
	for row := range rows {
		rows[row] = make([]string, g.Cols())
		for col := range rows[row] {
			v, ok := g.Cell(row, col)
			if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
				rows[row][col] = missing
				continue
			}
			rows[row][col] = string(glyphs.Rune(b.Bucket(v)))
		}
	}
	return rows
}

// SymbolLegend lists every bucket with the interval of the nice domain
// that rounds to it.
func SymbolLegend(b *scale.Buckets, glyphs scale.Glyphs) []LegendEntry {
	d := b.Domain()
	n := len(b.Ticks())
	lin := scale.Linear{Domain: d, R0: 0, R1: float64(n)}
	out := make([]LegendEntry, b.Count())
	for i := range out {
		from := math.Max(d.Min, lin.Invert(float64(i)-0.5))
		to := math.Min(d.Max, lin.Invert(float64(i)+0.5))
		out[i] = LegendEntry{Glyph: string(glyphs.Rune(i)), From: from, To: to}
	}
	return out
}
