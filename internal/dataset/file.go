package dataset

import (
	"fmt"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

// Source is the read capability of one variable: a slab of consecutive
// entries along its leading dimension. api.VarGetter satisfies it.
type Source interface {
	GetSlice(begin, end int64) (any, error)
}

// File is an opened array file. It is owned by a single command for the
// duration of the process and is not safe for concurrent use.
type File struct {
	Path       string
	Attributes Attributes
	Dimensions []Dimension
	Variables  []*Variable

	group   api.Group
	getters map[string]api.VarGetter
}

// Open opens path and reads its metadata. Failures are reported as
// *FileOpenError.
func Open(path string) (*File, error) {
	g, err := netcdf.Open(path)
	if err != nil {
		return nil, &FileOpenError{Path: path, Err: err}
	}
	f, err := fromGroup(path, g)
	if err != nil {
		g.Close()
		return nil, &FileOpenError{Path: path, Err: err}
	}
	return f, nil
}

func fromGroup(path string, g api.Group) (*File, error) {
	f := &File{
		Path:       path,
		Attributes: convertAttributes(g.Attributes()),
		group:      g,
		getters:    make(map[string]api.VarGetter),
	}

	names := g.ListVariables()
	for _, name := range names {
		vg, err := g.GetVarGetter(name)
		if err != nil {
			return nil, fmt.Errorf("variable %s: %w", name, err)
		}
		f.getters[name] = vg
	}

	lengths := make(map[string]int)
	for i, dn := range g.ListDimensions() {
		n, ok := g.GetDimension(dn)
		if !ok {
			return nil, fmt.Errorf("dimension %s: %w", dn, ErrNotFound)
		}
		length := int(n)
		if length == 0 {
			// unlimited: the record count is the leading length of any
			// variable that uses it
			length = recordCount(dn, names, f.getters)
		}
		lengths[dn] = length
		f.Dimensions = append(f.Dimensions, Dimension{Name: dn, Length: length, Position: i})
	}

	for _, name := range names {
		vg := f.getters[name]
		v := &Variable{
			Name:        name,
			Type:        vg.Type(),
			Attributes:  convertAttributes(vg.Attributes()),
			DataBearing: true,
		}
		for i, dn := range vg.Dimensions() {
			length, ok := lengths[dn]
			if !ok {
				length = int(vg.Len())
			}
			if i == 0 && length == 0 {
				length = int(vg.Len())
			}
			v.Dimensions = append(v.Dimensions, Dimension{Name: dn, Length: length, Position: i})
		}
		if _, isDim := lengths[name]; isDim {
			v.DataBearing = false
		}
		f.Variables = append(f.Variables, v)
	}
	return f, nil
}

func recordCount(dim string, names []string, getters map[string]api.VarGetter) int {
	for _, name := range names {
		dims := getters[name].Dimensions()
		if len(dims) > 0 && dims[0] == dim {
			return int(getters[name].Len())
		}
	}
	return 0
}

// Close releases the underlying file.
func (f *File) Close() {
	if f.group != nil {
		f.group.Close()
	}
}

// Dimension looks up a file-level dimension by name.
func (f *File) Dimension(name string) (Dimension, bool) {
	for _, d := range f.Dimensions {
		if d.Name == name {
			return d, true
		}
	}
	return Dimension{}, false
}

// Variable looks up a variable by name.
func (f *File) Variable(name string) (*Variable, error) {
	for _, v := range f.Variables {
		if v.Name == name {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: variable %q", ErrNotFound, name)
}

// DataVariable returns the named variable, or the first data-bearing one
// when name is empty.
func (f *File) DataVariable(name string) (*Variable, error) {
	if name != "" {
		return f.Variable(name)
	}
	for _, v := range f.Variables {
		if v.DataBearing {
			return v, nil
		}
	}
	return nil, ErrNoDataVariable
}

// Source returns the read capability for v.
func (f *File) Source(v *Variable) (Source, error) {
	vg, ok := f.getters[v.Name]
	if !ok {
		return nil, fmt.Errorf("%w: variable %q", ErrNotFound, v.Name)
	}
	return vg, nil
}
