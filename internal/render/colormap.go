package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

var ErrUnknownColormap = errors.New("render: unknown colormap")

// Colormap interpolates evenly spaced colour stops in Lab space.
type Colormap struct {
	Name  string
	stops []colorful.Color
}

func newColormap(name string, hexes ...string) Colormap {
	cm := Colormap{Name: name, stops: make([]colorful.Color, len(hexes))}
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(fmt.Sprintf("colormap %s: %v", name, err))
		}
		cm.stops[i] = c
	}
	return cm
}

// Available colormaps
var (
	Viridis = newColormap("viridis",
		"#440154", "#472d7b", "#3b528b", "#2c728e", "#21918c",
		"#28ae80", "#5ec962", "#addc30", "#fde725")

	Magma = newColormap("magma",
		"#000004", "#1c1044", "#4f127b", "#812581", "#b5367a",
		"#e55964", "#fb8761", "#fec287", "#fcfdbf")

	Inferno = newColormap("inferno",
		"#000004", "#1f0c48", "#550f6d", "#88226a", "#ba3655",
		"#e35933", "#f98e09", "#f9cb35", "#fcffa4")

	Plasma = newColormap("plasma",
		"#0d0887", "#4c02a1", "#7e03a8", "#a92395", "#cc4778",
		"#e56b5d", "#f89540", "#fdc527", "#f0f921")

	Greys = newColormap("greys", "#ffffff", "#000000")
)

var colormaps = []Colormap{Viridis, Magma, Inferno, Plasma, Greys}

// GetColormap returns a colormap by name.
func GetColormap(name string) (Colormap, error) {
	for _, c := range colormaps {
		if c.Name == name {
			return c, nil
		}
	}
	return Colormap{}, fmt.Errorf("%w: %q", ErrUnknownColormap, name)
}

// ColormapNames returns list of available colormap names
func ColormapNames() []string {
	names := make([]string, len(colormaps))
	for i, c := range colormaps {
		names[i] = c.Name
	}
	return names
}

// At returns the colour at t, clamped to [0, 1].
func (c Colormap) At(t float64) colorful.Color {
	if math.IsNaN(t) {
		t = 0
	}
	t = math.Max(0, math.Min(1, t))
	n := len(c.stops) - 1
	if n == 0 {
		return c.stops[0]
	}
	pos := t * float64(n)
	i := int(pos)
	if i >= n {
		return c.stops[n]
	}
	return c.stops[i].BlendLab(c.stops[i+1], pos-float64(i)).Clamped()
}

// Hex returns At(t) as #rrggbb.
func (c Colormap) Hex(t float64) string {
	return c.At(t).Hex()
}
