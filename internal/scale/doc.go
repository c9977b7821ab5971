// Package scale maps sample values onto visual ranges.
//
// Continuous mode maps a domain linearly onto [0, 1] for colour lookup.
// Discrete mode rounds the domain outward to 1-2-5 steps, computes ticks and
// assigns one bucket, and so one glyph, per tick interval.
package scale
