package dataset

// Dimension is a named axis. Position is the ordinal of the dimension within
// the owning variable's shape, or its declaration order at file level.
type Dimension struct {
	Name     string
	Length   int
	Position int
}

// Variable describes a named multi-dimensional array.
type Variable struct {
	Name       string
	Type       string
	Dimensions []Dimension
	Attributes Attributes

	// DataBearing is false for coordinate variables, whose name is also the
	// name of a dimension.
	DataBearing bool
}

func (v *Variable) Rank() int { return len(v.Dimensions) }

// Shape returns the length of every dimension, outermost first.
func (v *Variable) Shape() []int {
	shape := make([]int, len(v.Dimensions))
	for i, d := range v.Dimensions {
		shape[i] = d.Length
	}
	return shape
}

// Size returns the number of elements, 1 for a scalar.
func (v *Variable) Size() int {
	n := 1
	for _, d := range v.Dimensions {
		n *= d.Length
	}
	return n
}

// DimIndex returns the position of the named dimension or -1.
func (v *Variable) DimIndex(name string) int {
	for i, d := range v.Dimensions {
		if d.Name == name {
			return i
		}
	}
	return -1
}

// DimNames returns the dimension names in shape order.
func (v *Variable) DimNames() []string {
	names := make([]string, len(v.Dimensions))
	for i, d := range v.Dimensions {
		names[i] = d.Name
	}
	return names
}

// Title is the header text for the variable: its long name and units when
// present, its name otherwise.
func (v *Variable) Title() string {
	title := v.Name
	if ln, ok := v.Attributes.LongName(); ok && ln != "" {
		title = ln
	}
	if u, ok := v.Attributes.Units(); ok && u != "" {
		title += " (" + u + ")"
	}
	return title
}
