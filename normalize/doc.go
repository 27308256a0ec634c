// Package normalize rescales per-sample count matrices so that every sample
// (row) carries a comparable total signal.
//
// The package provides:
//
//   - NormalizeTotal: classic total-count normalization — every qualifying
//     row is rescaled to a common target total (explicit, or the median of
//     the qualifying rows' totals). The same approach is used by Seurat,
//     Cell Ranger and SPRING.
//   - NormalizeQuantile: the same, except columns whose value dominates any
//     row beyond a quantile fraction of that row's total are excluded from
//     the scaling-factor computation (one runaway gene no longer skews the
//     factor).
//   - ScaleRows: the per-row scaling primitive both entry points are built
//     on, exported for callers that bring their own row sums.
//
// Both entry points work in place by default and can instead return fresh
// copies (WithCopy), propagate the scaling policy to secondary layers
// (WithLayers / WithAllLayers, WithLayerNorm), record the pre-normalization
// row totals into the dataset's obs store (WithCountsKey), and log progress
// through an injected Logger (WithLogger) — there is no global logging state.
//
// Rows whose pre-normalization total falls below the minimum-count filter do
// not contribute to the median target and are left unchanged. Zero-sum rows
// are always left unchanged (their divisor is forced to 1). Sparse matrices
// keep their sparsity pattern: scaling touches stored values only.
//
// See the examples in this package for usage patterns.
package normalize
