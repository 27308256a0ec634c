// Package dataset provides the annotated data container the preprocessing
// functions operate on: a primary matrix X (rows = samples/cells, columns =
// features/genes), zero or more named layers aligned row-for-row with X, and
// per-row metadata columns (obs).
//
// The container owns no algorithms. Normalization and other transforms read
// X and the layers, optionally overwrite their contents in place, and record
// per-row diagnostics through SetObs.
//
// Layer iteration order is deterministic: LayerNames returns names sorted
// lexicographically.
package dataset
