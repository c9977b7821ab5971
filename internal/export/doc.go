// Package export writes extracted variables and glyph grids to JSON and CSV
// files. Documents are assembled in memory and written atomically.
package export
