package render

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/san-kum/ncpeek/internal/scale"
	"github.com/san-kum/ncpeek/internal/slice"
)

// HeaderLines is the number of lines written before the grid body: title,
// time index and legend.
const HeaderLines = 3

// LegendCells is the number of swatches in the legend gradient.
const LegendCells = 17

// Frame is one rendered image. Width and Height count grid cells only.
type Frame struct {
	Width  int
	Height int
	Lines  []string
}

// String joins the lines, each terminated by a newline.
func (f Frame) String() string {
	var b strings.Builder
	for _, l := range f.Lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}

// Renderer turns sample grids into terminal frames.
type Renderer struct {
	lg    *lipgloss.Renderer
	cmap  Colormap
	bold  lipgloss.Style
	cells map[string]lipgloss.Style
}

// NewRenderer detects the colour support of w.
func NewRenderer(w io.Writer, cmap Colormap) *Renderer {
	lg := lipgloss.NewRenderer(w)
	return &Renderer{
		lg:    lg,
		cmap:  cmap,
		bold:  lg.NewStyle().Bold(true),
		cells: make(map[string]lipgloss.Style),
	}
}

// SetColorProfile overrides the detected colour support.
func (r *Renderer) SetColorProfile(p termenv.Profile) {
	r.lg.SetColorProfile(p)
}

func (r *Renderer) Colormap() Colormap { return r.cmap }

func (r *Renderer) swatch(t float64) string {
	hex := r.cmap.Hex(t)
	st, ok := r.cells[hex]
	if !ok {
		st = r.lg.NewStyle().Background(lipgloss.Color(hex))
		r.cells[hex] = st
	}
	return st.Render(" ")
}

func (r *Renderer) header(title string, timeIndex int) []string {
	return []string{
		r.bold.Render(title),
		r.bold.Render(fmt.Sprintf("time: %d", timeIndex)),
	}
}

// Legend renders the gradient swatch with the domain bounds on either side.
func (r *Renderer) Legend(d scale.Domain) string {
	var b strings.Builder
	b.WriteString(FormatValue(d.Min))
	b.WriteByte(' ')
	for i := 0; i < LegendCells; i++ {
		b.WriteString(r.swatch(float64(i) / float64(LegendCells-1)))
	}
	b.WriteByte(' ')
	b.WriteString(FormatValue(d.Max))
	return b.String()
}

// Frame renders g in colour. Missing and non-finite cells are blank; the
// rest are coloured by their position in d.
func (r *Renderer) Frame(title string, timeIndex int, g *slice.Grid, d scale.Domain) Frame {
	lin := scale.Unit(d)
	f := Frame{Width: g.Cols(), Height: g.Rows()}
	f.Lines = append(r.header(title, timeIndex), r.Legend(d))

	var b strings.Builder
	for row := 0; row < f.Height; row++ {
		b.Reset()
		for col := 0; col < f.Width; col++ {
			v, ok := g.Cell(row, col)
			if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(r.swatch(lin.Clamp(v)))
		}
		f.Lines = append(f.Lines, b.String())
	}
	return f
}

// SymbolFrame renders g as one glyph per cell under a header whose legend
// lists each glyph with the lower bound of its bucket.
func (r *Renderer) SymbolFrame(title string, timeIndex int, g *slice.Grid, b *scale.Buckets, glyphs scale.Glyphs) Frame {
	f := Frame{Width: g.Cols(), Height: g.Rows()}
	f.Lines = r.header(title, timeIndex)

	entries := SymbolLegend(b, glyphs)
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = e.Glyph + " " + FormatValue(e.From)
	}
	f.Lines = append(f.Lines, strings.Join(parts, "  "))

	for _, row := range Symbols(g, b, glyphs) {
		f.Lines = append(f.Lines, strings.Join(row, ""))
	}
	return f
}

// FormatValue prints v with up to six significant digits.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
