// Package datasettest writes small NetCDF classic files for tests.
package datasettest

import (
	"path/filepath"

	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/batchatco/go-native-netcdf/netcdf/cdf"
	"github.com/batchatco/go-native-netcdf/netcdf/util"
)

// TB is the part of testing.TB the writers need. GinkgoT satisfies it too.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
}

// FillValue is the sentinel written into Grid fixtures.
const FillValue float32 = -9999

// Attr is one attribute in declaration order.
type Attr struct {
	Name  string
	Value any
}

// Var is one variable to write. Values must be a (nested) slice whose depth
// matches len(Dims).
type Var struct {
	Name   string
	Dims   []string
	Values any
	Attrs  []Attr
}

// Fixture describes a whole file.
type Fixture struct {
	Attrs []Attr
	Vars  []Var
}

// Write stores f under dir as name and returns the full path.
func Write(tb TB, dir, name string, f Fixture) string {
	tb.Helper()
	path := filepath.Join(dir, name)
	cw, err := cdf.OpenWriter(path)
	if err != nil {
		tb.Fatalf("create %s: %v", path, err)
	}
	if len(f.Attrs) > 0 {
		if err := cw.AddGlobalAttrs(orderedMap(tb, f.Attrs)); err != nil {
			tb.Fatalf("global attributes: %v", err)
		}
	}
	for _, v := range f.Vars {
		vr := api.Variable{Values: v.Values, Dimensions: v.Dims}
		if len(v.Attrs) > 0 {
			vr.Attributes = orderedMap(tb, v.Attrs)
		}
		if err := cw.AddVar(v.Name, vr); err != nil {
			tb.Fatalf("add %s: %v", v.Name, err)
		}
	}
	if err := cw.Close(); err != nil {
		tb.Fatalf("close %s: %v", path, err)
	}
	return path
}

func orderedMap(tb TB, attrs []Attr) *util.OrderedMap {
	tb.Helper()
	keys := make([]string, len(attrs))
	values := make(map[string]any, len(attrs))
	for i, a := range attrs {
		keys[i] = a.Name
		values[a.Name] = a.Value
	}
	om, err := util.NewOrderedMap(keys, values)
	if err != nil {
		tb.Fatalf("attributes: %v", err)
	}
	return om
}

// Value is the deterministic payload of Grid at (t, lat, lon).
func Value(t, lat, lon int) float32 {
	return float32(t*1000 + lat*10 + lon)
}

// Grid writes a time x lat x lon file with coordinate variables and one
// data variable "tas". Cells where (lat+lon)%7 == 6 hold FillValue.
func Grid(tb TB, dir string, nTime, nLat, nLon int) string {
	tb.Helper()
	times := make([]int32, nTime)
	for i := range times {
		times[i] = int32(i)
	}
	lats := make([]float32, nLat)
	for i := range lats {
		lats[i] = -90 + 180*float32(i)/float32(nLat)
	}
	lons := make([]float32, nLon)
	for i := range lons {
		lons[i] = 360 * float32(i) / float32(nLon)
	}
	tas := make([][][]float32, nTime)
	for t := range tas {
		tas[t] = make([][]float32, nLat)
		for y := range tas[t] {
			tas[t][y] = make([]float32, nLon)
			for x := range tas[t][y] {
				if (y+x)%7 == 6 {
					tas[t][y][x] = FillValue
					continue
				}
				tas[t][y][x] = Value(t, y, x)
			}
		}
	}
	return Write(tb, dir, "grid.nc", Fixture{
		Attrs: []Attr{{"title", "synthetic grid"}},
		Vars: []Var{
			{Name: "time", Dims: []string{"time"}, Values: times,
				Attrs: []Attr{{"units", "years since 2006-01-01"}}},
			{Name: "lat", Dims: []string{"lat"}, Values: lats,
				Attrs: []Attr{{"units", "degrees_north"}}},
			{Name: "lon", Dims: []string{"lon"}, Values: lons,
				Attrs: []Attr{{"units", "degrees_east"}}},
			{Name: "tas", Dims: []string{"time", "lat", "lon"}, Values: tas,
				Attrs: []Attr{
					{"long_name", "Near-Surface Air Temperature"},
					{"units", "K"},
					{"_FillValue", FillValue},
					{"missing_value", FillValue},
				}},
		},
	})
}
