// Package mask classifies raw samples as valid or missing.
//
// A value is missing when it equals the variable's _FillValue or
// missing_value attribute. Optional exclusion predicates cover quantities
// where some values are physically meaningless, such as non-positive
// precipitation; none are applied unless asked for.
package mask

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/ncpeek/internal/dataset"
	"github.com/san-kum/ncpeek/internal/slice"
)

var ErrUnknownPredicate = errors.New("mask: unknown exclusion predicate")

// Predicate reports whether a value should be treated as missing.
type Predicate func(float64) bool

func NonPositive(v float64) bool { return v <= 0 }

func NonFinite(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }

var predicates = map[string]Predicate{
	"nonpositive": NonPositive,
	"nonfinite":   NonFinite,
}

// PredicateByName returns a named exclusion predicate.
func PredicateByName(name string) (Predicate, error) {
	p, ok := predicates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPredicate, name)
	}
	return p, nil
}

// PredicateNames lists the registered predicate names.
func PredicateNames() []string {
	names := make([]string, 0, len(predicates))
	for n := range predicates {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Filter holds the sentinel set of one variable.
type Filter struct {
	sentinels []float64
	nanMarker bool
	exclude   []Predicate
}

// New builds a filter from a variable's attributes. Absent attributes
// contribute no sentinel.
func New(attrs dataset.Attributes, exclude ...Predicate) *Filter {
	f := &Filter{exclude: exclude}
	for _, get := range []func() (float64, bool){attrs.FillValue, attrs.MissingValue} {
		v, ok := get()
		if !ok {
			continue
		}
		if math.IsNaN(v) {
			f.nanMarker = true
			continue
		}
		f.sentinels = append(f.sentinels, v)
	}
	return f
}

// FromNames is New with predicates looked up by name.
func FromNames(attrs dataset.Attributes, names []string) (*Filter, error) {
	preds := make([]Predicate, 0, len(names))
	for _, n := range names {
		p, err := PredicateByName(n)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	return New(attrs, preds...), nil
}

func (f *Filter) IsMissing(v float64) bool {
	if f.nanMarker && math.IsNaN(v) {
		return true
	}
	for _, s := range f.sentinels {
		if v == s {
			return true
		}
	}
	for _, p := range f.exclude {
		if p(v) {
			return true
		}
	}
	return false
}

// Apply marks the missing cells of g in place.
func (f *Filter) Apply(g *slice.Grid) {
	g.Mask(f.IsMissing)
}

// Sentinels returns the declared sentinel values.
func (f *Filter) Sentinels() []float64 {
	out := append([]float64(nil), f.sentinels...)
	if f.nanMarker {
		out = append(out, math.NaN())
	}
	return out
}
