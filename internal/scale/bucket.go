package scale

import (
	"math"
	"sort"
)

// DefaultTicks is the tick target for discrete mode.
const DefaultTicks = 8

// Buckets maps values to integer buckets 0..n over a nice domain with n
// ticks.
type Buckets struct {
	source Domain
	ticks  []float64
	lin    Linear
}

// NewBuckets rounds d for about count ticks and maps the result onto
// [0, len(ticks)].
func NewBuckets(d Domain, count int) *Buckets {
	nice, ticks := Unit(d).Nice(count)
	return &Buckets{
		source: d,
		ticks:  ticks,
		lin:    nice.WithRange(0, float64(len(ticks))),
	}
}

// Bucket returns the bucket of v, clamped to the range.
func (b *Buckets) Bucket(v float64) int {
	return int(math.Round(b.lin.Clamp(v)))
}

// Count is the number of distinct buckets, len(ticks)+1.
func (b *Buckets) Count() int { return len(b.ticks) + 1 }

func (b *Buckets) Ticks() []float64 { return b.ticks }

// Domain is the rounded domain; Source the extent it was built from.
func (b *Buckets) Domain() Domain { return b.lin.Domain }
func (b *Buckets) Source() Domain { return b.source }

// Range is the output interval [0, len(ticks)].
func (b *Buckets) Range() [2]float64 { return [2]float64{b.lin.R0, b.lin.R1} }

// Glyphs assigns printable characters to buckets.
type Glyphs struct {
	Base     rune
	Missing  rune
	reserved []rune
}

// Reserved character codes: the quote delimits strings in the JSON grid
// document and the backslash escapes inside them.
const (
	GlyphQuote     = '"'
	GlyphBackslash = '\\'
	GlyphMissing   = ' '
	DefaultBase    = 33
)

func DefaultGlyphs() Glyphs {
	return NewGlyphs(DefaultBase, GlyphQuote, GlyphBackslash)
}

// NewGlyphs starts at base and never emits any of reserved.
func NewGlyphs(base rune, reserved ...rune) Glyphs {
	rs := append([]rune(nil), reserved...)
	sort.Slice(rs, func(i, j int) bool { return rs[i] < rs[j] })
	return Glyphs{Base: base, Missing: GlyphMissing, reserved: rs}
}

func (g Glyphs) Rune(bucket int) rune {
	code := g.Base + rune(bucket)
	for _, r := range g.reserved {
		if r >= g.Base && code >= r {
			code++
		}
	}
	return code
}

// LastPrintable is the highest glyph code a bucket may use.
const LastPrintable = '~'

// Fits reports whether every bucket below n gets a printable glyph.
func (g Glyphs) Fits(n int) bool {
	return n <= 0 || g.Rune(n-1) <= LastPrintable
}

// Reserved reports whether r is never emitted for a bucket.
func (g Glyphs) Reserved(r rune) bool {
	for _, x := range g.reserved {
		if x == r {
			return true
		}
	}
	return false
}
