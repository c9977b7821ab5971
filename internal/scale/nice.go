package scale

import "math"

// Step is a tick spacing from the 1-2-5 sequence together with the integer
// tick indices it produces over a domain. Fractional steps are held as their
// inverse so tick values come out as exact decimals. A domain too wide for
// any such step gets evenly spread ticks instead.
type Step struct {
	Size   float64
	inv    float64
	lo, hi int
	spread []float64
}

var mantissas = [...]float64{1, 2, 5}

// maxIndex keeps tick indices exact in a float64 and within int range.
const maxIndex = 1 << 52

// NiceStep picks the 1, 2 or 5 times a power of ten step whose outward
// rounding of d yields a tick count closest to count. Ties go to the larger
// step. A degenerate domain is widened around its value first. Domains whose
// width does not fit in a float64 are split into count even ticks.
func NiceStep(d Domain, count int) Step {
	count = max(count, 1)
	if !finite(d.Min) || !finite(d.Max) || d.Min > d.Max {
		d = DefaultDomain
	}
	if d.Degenerate() {
		d = widen(d)
	}
	span := d.Span()
	if !finite(span) {
		return spreadStep(d, count)
	}

	p := int(math.Floor(math.Log10(span / float64(count))))
	var (
		best  Step
		found bool
	)
	bestDiff := math.MaxInt
	for e := p - 1; e <= p+1; e++ {
		for _, m := range mantissas {
			s, ok := newStep(m*math.Pow(10, float64(e)), d)
			if !ok {
				continue
			}
			diff := s.Count() - count
			if diff < 0 {
				diff = -diff
			}
			if diff <= bestDiff {
				best, bestDiff, found = s, diff, true
			}
		}
	}
	if !found || best.Count() > 2*count+2 {
		return spreadStep(d, count)
	}
	return best
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// widen opens a degenerate domain by a tenth of its value, or by 1 around
// zero, without leaving the float64 range.
func widen(d Domain) Domain {
	w := math.Abs(d.Min) / 10
	if w == 0 {
		w = 1
	}
	lo, hi := d.Min-w, d.Max+w
	if !finite(lo) {
		lo = d.Min
	}
	if !finite(hi) {
		hi = d.Max
	}
	return Domain{Min: lo, Max: hi}
}

// newStep rounds d outward to multiples of size. It fails when the step or
// a rounded bound cannot be represented.
func newStep(size float64, d Domain) (Step, bool) {
	if size <= 0 || !finite(size) {
		return Step{}, false
	}
	s := Step{Size: size}
	if size < 1 {
		s.inv = math.Round(1 / size)
		if !finite(s.inv) {
			return Step{}, false
		}
	}
	lo, hi := snap(s.index(d.Min)), snap(s.index(d.Max))
	if math.Abs(lo) > maxIndex || math.Abs(hi) > maxIndex {
		return Step{}, false
	}
	s.lo = int(math.Floor(lo))
	s.hi = int(math.Ceil(hi))
	if s.value(s.lo) > d.Min {
		s.lo--
	}
	if s.value(s.hi) < d.Max {
		s.hi++
	}
	if nd := s.Domain(); !finite(nd.Min) || !finite(nd.Max) {
		return Step{}, false
	}
	return s, true
}

// spreadStep places count ticks (at least two) evenly from d.Min to d.Max.
func spreadStep(d Domain, count int) Step {
	n := max(count, 2)
	s := Step{
		Size:   d.Max/float64(n-1) - d.Min/float64(n-1),
		spread: make([]float64, n),
	}
	for i := range s.spread {
		t := float64(i) / float64(n-1)
		s.spread[i] = d.Min*(1-t) + d.Max*t
	}
	s.spread[0], s.spread[n-1] = d.Min, d.Max
	return s
}

func (s Step) index(v float64) float64 {
	if s.inv > 0 {
		return v * s.inv
	}
	return v / s.Size
}

func (s Step) value(i int) float64 {
	if s.inv > 0 {
		return float64(i) / s.inv
	}
	return float64(i) * s.Size
}

// snap removes floating point noise around integers.
func snap(q float64) float64 {
	r := math.Round(q)
	if math.Abs(q-r) <= 1e-9 {
		return r
	}
	return q
}

// Domain is the rounded domain.
func (s Step) Domain() Domain {
	if s.spread != nil {
		return Domain{Min: s.spread[0], Max: s.spread[len(s.spread)-1]}
	}
	return Domain{Min: s.value(s.lo), Max: s.value(s.hi)}
}

// Count is the number of ticks, both bounds included.
func (s Step) Count() int {
	if s.spread != nil {
		return len(s.spread)
	}
	return s.hi - s.lo + 1
}

func (s Step) Ticks() []float64 {
	if s.spread != nil {
		return append([]float64(nil), s.spread...)
	}
	ticks := make([]float64, 0, s.Count())
	for i := s.lo; i <= s.hi; i++ {
		ticks = append(ticks, s.value(i))
	}
	return ticks
}

// MaxBuckets bounds the bucket count NewBuckets can produce for a tick
// target: NiceStep never returns more than 2*ticks+2 ticks.
func MaxBuckets(ticks int) int {
	return 2*max(ticks, 1) + 3
}
