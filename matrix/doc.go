// Package matrix offers the numeric matrix representations used by the
// preprocessing pipeline.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix backed by a single flat slice,
//     with SIMD-accelerated row kernels (viterin/vek) on contiguous rows.
//   - CSR, a compressed-sparse-row matrix for count data where most
//     entries are zero; row scaling never changes the sparsity pattern.
//   - RowOps, the capability surface normalization actually needs:
//     per-row sums over an optional column subset, and in-place per-row
//     scaling.
//
// Dense is best for small or saturated matrices; CSR is best for large
// count matrices where the nonzero fraction is low. Both satisfy Matrix
// and RowOps, so callers stay representation-agnostic.
//
// See the examples in this package and normalize for usage patterns.
package matrix
