// Package inspect prints the schema of an array file: its attributes,
// dimensions and variables.
package inspect

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/ncpeek/internal/dataset"
)

// Printer writes a styled schema listing. Verbose adds a ROOT section and
// per-variable shape details.
type Printer struct {
	Verbose bool

	out            io.Writer
	h1, h2, h3, h4 lipgloss.Style
	key            lipgloss.Style
}

// heading widths, so successive levels form a shrinking staircase
const (
	h1Width  = 32
	h2Width  = 28
	h3Width  = 24
	h4Width  = 20
	keyWidth = 15
)

func NewPrinter(w io.Writer, verbose bool) *Printer {
	r := lipgloss.NewRenderer(w)
	heading := func(bg string) lipgloss.Style {
		return r.NewStyle().Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color(bg))
	}
	return &Printer{
		Verbose: verbose,
		out:     w,
		h1:      heading("#0000aa"),
		h2:      heading("#00aaaa"),
		h3:      heading("#00aa00"),
		h4:      heading("#aaaa00"),
		key:     r.NewStyle().Foreground(lipgloss.Color("#aa00aa")),
	}
}

func pad(title string, width int) string {
	return title + strings.Repeat(" ", max(1, width-len(title)))
}

type listing struct {
	p *Printer
	b strings.Builder
}

func (l *listing) heading(st lipgloss.Style, title string, width int) {
	l.b.WriteByte('\n')
	l.b.WriteString(st.Render(pad(title, width)))
	l.b.WriteByte('\n')
}

func (l *listing) prop(name string, value any) {
	l.b.WriteString(l.p.key.Render(name + ":" + strings.Repeat(" ", max(1, keyWidth-len(name)))))
	l.b.WriteByte(' ')
	fmt.Fprint(&l.b, value)
	l.b.WriteByte('\n')
}

func (l *listing) attributes(a dataset.Attributes) {
	for _, k := range a.Keys() {
		at, _ := a.Get(k)
		l.prop(at.Name, at.Value)
	}
}

func (l *listing) dimensions(dims []dataset.Dimension, sub lipgloss.Style, width int) {
	for _, d := range dims {
		if l.p.Verbose {
			l.heading(sub, d.Name, width)
			l.prop("length", d.Length)
			continue
		}
		l.prop(d.Name, fmt.Sprintf("length: %d", d.Length))
	}
}

// Print writes the listing for f in one write.
func (p *Printer) Print(f *dataset.File) error {
	l := &listing{p: p}

	if p.Verbose {
		l.heading(p.h1, "ROOT", h1Width)
		l.prop("path", f.Path)
		l.prop("attributes", f.Attributes.Len())
		l.prop("dimensions", len(f.Dimensions))
		l.prop("variables", len(f.Variables))
	}

	l.heading(p.h1, "ATTRIBUTES", h1Width)
	l.attributes(f.Attributes)

	l.heading(p.h1, "DIMENSIONS", h1Width)
	l.dimensions(f.Dimensions, p.h2, h2Width)

	l.heading(p.h1, "VARIABLES", h1Width)
	for _, v := range f.Variables {
		if p.Verbose {
			l.heading(p.h2, v.Name, h2Width)
			l.prop("type", v.Type)
			l.prop("dimensions", strings.Join(v.DimNames(), ", "))
			l.prop("shape", v.Shape())
			l.prop("size", v.Size())
			l.prop("data", v.DataBearing)
		} else {
			l.heading(p.h2, fmt.Sprintf("%s (%s)", v.Name, v.Type), h2Width)
		}
		l.heading(p.h3, "dimensions", h3Width)
		l.dimensions(v.Dimensions, p.h4, h4Width)
		l.heading(p.h3, "attributes", h3Width)
		l.attributes(v.Attributes)
	}

	_, err := io.WriteString(p.out, l.b.String())
	return err
}
