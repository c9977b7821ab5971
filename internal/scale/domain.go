package scale

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrEmptyDomain is returned with DefaultDomain when a sample set holds no
// valid values. It is not fatal: callers log it and continue.
var ErrEmptyDomain = errors.New("scale: no valid samples, using default domain")

// Domain is a closed interval [Min, Max].
type Domain struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultDomain substitutes for the extent of an empty sample set.
var DefaultDomain = Domain{Min: 0, Max: 1}

func (d Domain) Span() float64 { return d.Max - d.Min }

func (d Domain) Degenerate() bool { return d.Min == d.Max }

func (d Domain) Contains(v float64) bool { return v >= d.Min && v <= d.Max }

// Union returns the smallest domain covering both.
func (d Domain) Union(o Domain) Domain {
	return Domain{Min: math.Min(d.Min, o.Min), Max: math.Max(d.Max, o.Max)}
}

// Extent returns [min, max] of the finite values. Non-finite values are
// ignored. An empty set yields DefaultDomain and ErrEmptyDomain.
func Extent(values []float64) (Domain, error) {
	finite := values
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			finite = make([]float64, 0, len(values))
			finite = append(finite, values[:i]...)
			for _, w := range values[i+1:] {
				if !math.IsNaN(w) && !math.IsInf(w, 0) {
					finite = append(finite, w)
				}
			}
			break
		}
	}
	if len(finite) == 0 {
		return DefaultDomain, ErrEmptyDomain
	}
	return Domain{Min: floats.Min(finite), Max: floats.Max(finite)}, nil
}
