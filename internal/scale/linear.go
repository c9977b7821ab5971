package scale

import "math"

// Linear maps a domain onto a range. A degenerate domain maps every input to
// the midpoint of the range. Domains wider than the float64 range are mapped
// at half scale.
type Linear struct {
	Domain Domain
	R0, R1 float64
}

// Unit maps d onto [0, 1].
func Unit(d Domain) Linear {
	return Linear{Domain: d, R0: 0, R1: 1}
}

// WithRange returns a copy mapping onto [r0, r1].
func (l Linear) WithRange(r0, r1 float64) Linear {
	l.R0, l.R1 = r0, r1
	return l
}

func (l Linear) Map(v float64) float64 {
	if l.Domain.Degenerate() {
		return (l.R0 + l.R1) / 2
	}
	var t float64
	if span := l.Domain.Span(); finite(span) {
		t = (v - l.Domain.Min) / span
	} else {
		t = (v/2 - l.Domain.Min/2) / (l.Domain.Max/2 - l.Domain.Min/2)
	}
	return l.R0 + t*(l.R1-l.R0)
}

// Invert maps a range value back into the domain.
func (l Linear) Invert(y float64) float64 {
	if l.R0 == l.R1 {
		return (l.Domain.Min + l.Domain.Max) / 2
	}
	t := (y - l.R0) / (l.R1 - l.R0)
	span := l.Domain.Span()
	if !finite(span) {
		return l.Domain.Min*(1-t) + l.Domain.Max*t
	}
	return l.Domain.Min + t*span
}

// Clamp is Map limited to the range.
func (l Linear) Clamp(v float64) float64 {
	lo, hi := math.Min(l.R0, l.R1), math.Max(l.R0, l.R1)
	return math.Max(lo, math.Min(hi, l.Map(v)))
}

// Nice returns a copy whose domain is extended to round bounds for about
// count ticks, together with those ticks.
func (l Linear) Nice(count int) (Linear, []float64) {
	s := NiceStep(l.Domain, count)
	l.Domain = s.Domain()
	return l, s.Ticks()
}
