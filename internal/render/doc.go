// Package render draws sample grids as colour terminal frames or as glyph
// grids.
package render
