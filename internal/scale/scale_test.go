package scale

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"
)

func TestExtent(t *testing.T) {
	d, err := Extent([]float64{3, math.NaN(), -2, 7, math.Inf(1)})
	if err != nil {
		t.Fatalf("extent: %v", err)
	}
	if d != (Domain{-2, 7}) {
		t.Errorf("expected [-2, 7], got %+v", d)
	}

	d, err = Extent(nil)
	if !errors.Is(err, ErrEmptyDomain) {
		t.Errorf("expected ErrEmptyDomain, got %v", err)
	}
	if d != DefaultDomain {
		t.Errorf("expected default domain, got %+v", d)
	}

	if _, err := Extent([]float64{math.NaN()}); !errors.Is(err, ErrEmptyDomain) {
		t.Errorf("all-NaN set should be empty, got %v", err)
	}
}

func TestUnitEndpointsAndMonotonic(t *testing.T) {
	domains := []Domain{{0, 1}, {-40, 55.5}, {250, 320}, {1e-6, 3e-6}}
	for _, d := range domains {
		l := Unit(d)
		if got := l.Map(d.Min); got != 0 {
			t.Errorf("%+v: Map(min) = %v", d, got)
		}
		if got := l.Map(d.Max); got != 1 {
			t.Errorf("%+v: Map(max) = %v", d, got)
		}
		prev := -1.0
		for i := 0; i <= 100; i++ {
			v := d.Min + d.Span()*float64(i)/100
			y := l.Map(v)
			if y < prev {
				t.Fatalf("%+v: not monotonic at %v", d, v)
			}
			prev = y
		}
		if inv := l.Invert(0.5); math.Abs(inv-(d.Min+d.Max)/2) > 1e-9*math.Max(1, math.Abs(d.Max)) {
			t.Errorf("%+v: Invert(0.5) = %v", d, inv)
		}
	}
}

func TestDegenerateDomain(t *testing.T) {
	l := Unit(Domain{4, 4})
	for _, v := range []float64{-100, 4, 1e9} {
		if got := l.Map(v); got != 0.5 {
			t.Errorf("Map(%v) = %v, want 0.5", v, got)
		}
	}
	b := NewBuckets(Domain{4, 4}, 8)
	if !b.Domain().Contains(4) {
		t.Errorf("degenerate nice domain %+v lost the value", b.Domain())
	}
}

func TestNiceExamples(t *testing.T) {
	tests := []struct {
		in    Domain
		want  Domain
		ticks int
	}{
		{Domain{0, 100}, Domain{0, 100}, 6},
		{Domain{3, 97}, Domain{0, 100}, 6},
		{Domain{1.2, 8.7}, Domain{1, 9}, 9},
		{Domain{0, 1}, Domain{0, 1}, 6},
	}
	for _, tt := range tests {
		s := NiceStep(tt.in, 8)
		if s.Domain() != tt.want {
			t.Errorf("%+v: expected %+v, got %+v", tt.in, tt.want, s.Domain())
		}
		if s.Count() != tt.ticks {
			t.Errorf("%+v: expected %d ticks, got %d", tt.in, tt.ticks, s.Count())
		}
	}

	ticks := NiceStep(Domain{0, 1}, 8).Ticks()
	want := []float64{0, 0.2, 0.4, 0.6, 0.8, 1}
	for i := range want {
		if ticks[i] != want[i] {
			t.Errorf("tick %d: expected %v, got %v", i, want[i], ticks[i])
		}
	}
}

func TestNiceNeverClips(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		k := rng.Intn(12) - 6
		a := (rng.Float64() - 0.5) * math.Pow(10, float64(k+rng.Intn(3)))
		span := (0.05 + rng.Float64()) * math.Pow(10, float64(k))
		d := Domain{a, a + span}
		for _, count := range []int{4, 8, 10} {
			s := NiceStep(d, count)
			nd := s.Domain()
			if nd.Min > d.Min || nd.Max < d.Max {
				t.Fatalf("%+v count %d: nice domain %+v clips data", d, count, nd)
			}
			n := s.Count()
			if diff := n - count; diff < -tickSlack(count) || diff > tickSlack(count) {
				t.Fatalf("%+v count %d: %d ticks outside window", d, count, n)
			}
			if n+1 > MaxBuckets(count) {
				t.Fatalf("%+v count %d: %d buckets above MaxBuckets", d, count, n+1)
			}
		}
	}
}

// tickSlack is how far the tick count may stray from the target. One
// candidate step lies in [r, 2.5r) for r = span/count and yields between
// count/2.5+1 and count+2 ticks. Ties go to the larger step, so a target of 8
// can come back as 5 ticks: [262.5, 449.9] gives 11 ticks at step 20 and 5
// at step 50, and 50 wins.
func tickSlack(count int) int {
	return max(2, count-int(math.Ceil(float64(count)/2.5))-1)
}

func TestNiceTieTakesLargerStep(t *testing.T) {
	s := NiceStep(Domain{262.5, 449.9}, 8)
	if s.Size != 50 || s.Count() != 5 {
		t.Errorf("expected step 50 with 5 ticks, got %v with %d", s.Size, s.Count())
	}
	if s.Domain() != (Domain{250, 450}) {
		t.Errorf("expected [250, 450], got %+v", s.Domain())
	}
}

func TestNiceOverflowingSpan(t *testing.T) {
	domains := []Domain{
		{-math.MaxFloat64 / 2, math.MaxFloat64},
		{-math.MaxFloat64, math.MaxFloat64},
		{0, math.MaxFloat64},
		{math.MaxFloat64, math.MaxFloat64},
	}
	for _, d := range domains {
		done := make(chan Step, 1)
		go func() { done <- NiceStep(d, 8) }()

		var s Step
		select {
		case s = <-done:
		case <-time.After(3 * time.Second):
			t.Fatalf("%+v: NiceStep did not return", d)
		}
		nd := s.Domain()
		if math.IsInf(nd.Min, 0) || math.IsInf(nd.Max, 0) || math.IsNaN(nd.Min) || math.IsNaN(nd.Max) {
			t.Errorf("%+v: non-finite nice domain %+v", d, nd)
		}
		if nd.Min > d.Min || nd.Max < d.Max {
			t.Errorf("%+v: nice domain %+v clips data", d, nd)
		}
		if n := s.Count(); n < 2 || n+1 > MaxBuckets(8) {
			t.Errorf("%+v: %d ticks", d, n)
		}
	}

	b := NewBuckets(Domain{-math.MaxFloat64 / 2, math.MaxFloat64}, 8)
	if got := b.Bucket(-math.MaxFloat64 / 2); got != 0 {
		t.Errorf("lowest value in bucket %d", got)
	}
	if got, want := b.Bucket(math.MaxFloat64), b.Count()-1; got != want {
		t.Errorf("highest value in bucket %d, want %d", got, want)
	}
	if got := Unit(Domain{-math.MaxFloat64, math.MaxFloat64}).Map(0); got != 0.5 {
		t.Errorf("Map(0) over the full float range = %v, want 0.5", got)
	}
}

func TestBuckets(t *testing.T) {
	b := NewBuckets(Domain{3, 97}, 8)
	if b.Count() != 7 {
		t.Fatalf("expected 7 buckets, got %d", b.Count())
	}
	if r := b.Range(); r != [2]float64{0, 6} {
		t.Errorf("unexpected range %v", r)
	}
	tests := []struct {
		v    float64
		want int
	}{{3, 0}, {0, 0}, {10, 1}, {50, 3}, {97, 6}, {100, 6}, {-50, 0}, {500, 6}}
	for _, tt := range tests {
		if got := b.Bucket(tt.v); got != tt.want {
			t.Errorf("Bucket(%v) = %d, want %d", tt.v, got, tt.want)
		}
	}
	if b.Source() != (Domain{3, 97}) {
		t.Errorf("unexpected source %+v", b.Source())
	}
}

func TestGlyphsSkipReserved(t *testing.T) {
	g := DefaultGlyphs()
	prev := rune(0)
	want := []rune{33, 35, 36, 37, 38, 39, 40, 41, 42, 43}
	for i := 0; i < 10; i++ {
		r := g.Rune(i)
		if r != want[i] {
			t.Errorf("bucket %d: expected %d, got %d", i, want[i], r)
		}
		if r <= prev {
			t.Errorf("bucket %d: %d not increasing", i, r)
		}
		prev = r
	}

	for i := 0; i < 200; i++ {
		r := g.Rune(i)
		if r == '"' || r == '\\' || r == g.Missing {
			t.Fatalf("bucket %d emitted reserved %q", i, r)
		}
	}
	if g.Rune(57) != 91 || g.Rune(58) != 93 {
		t.Errorf("expected 91, 93 around the backslash, got %d, %d", g.Rune(57), g.Rune(58))
	}
	if !g.Reserved('\\') || g.Reserved('A') {
		t.Error("reserved lookup wrong")
	}
}

func TestGlyphsFits(t *testing.T) {
	g := NewGlyphs(120, GlyphQuote, GlyphBackslash)
	if !g.Fits(7) {
		t.Error("buckets 0..6 end at '~' and should fit")
	}
	if g.Fits(8) {
		t.Errorf("bucket 7 is %d, past '~'", g.Rune(7))
	}
	if !DefaultGlyphs().Fits(MaxBuckets(DefaultTicks)) {
		t.Error("default glyphs should fit the default tick target")
	}
	if !g.Fits(0) {
		t.Error("no buckets always fit")
	}
}
