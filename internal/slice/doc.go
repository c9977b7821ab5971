// Package slice plans and executes strided reads of N-dimensional variables.
//
// A [Coordinator] turns a variable's shape and a target output size into a
// [Plan]: one [Range] (start, count, stride) per dimension. [Reader] runs a
// plan against a [dataset.Source] and assembles a [Grid] in the plan's order,
// outermost dimension first.
//
// Spatial axes share a single stride so a down-sampled frame keeps the
// source grid's aspect ratio. Dimensions other than time, lat and lon are
// pinned at index 0.
package slice
