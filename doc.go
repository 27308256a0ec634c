// Package scanpy is an in-memory toolkit for preprocessing single-cell
// count matrices — from dense and sparse matrix primitives to
// quantile-filtered total-count normalization and quick QC plots.
//
// 🚀 What is scanpy?
//
//	A focused, deterministic preprocessing library that brings together:
//		• Matrix primitives: dense row-major and CSR sparse, one interface
//		• Row operations: vectorized row sums & in-place row scaling
//		• Normalization: total-count scaling with a dominant-gene quantile filter
//		• Dataset container: primary matrix + named layers + per-cell metadata
//		• I/O: headerless CSV and MatrixMarket (coordinate & array)
//		• QC plots: counts-per-cell histograms
//
// ✨ Why choose scanpy?
//
//   - Predictable numerics – identical results for dense and sparse input
//   - Explicit failure modes – sentinel errors for every misuse, no panics
//   - Non-destructive option – every operation can copy instead of mutate
//   - Extensible – any type satisfying matrix.Matrix plugs into the pipeline
//
// Under the hood, everything is organized under five subpackages and a CLI:
//
//	matrix/     — Dense & CSR storage, the Matrix and RowOps interfaces
//	dataset/    — Dataset container: X, layers, per-cell observations
//	normalize/  — NormalizeTotal & NormalizeQuantile with functional options
//	matio/      — CSV and MatrixMarket readers & writers
//	qcplot/     — counts-per-cell histogram rendering
//	cmd/scanpy/ — the command-line front end
//
// Quick example:
//
//	    cells ──▶ │ 1 0 1 │      normalize      │ .50 .00 .50 │
//	              │ 3 0 1 │   ──────────────▶   │ .75 .00 .25 │
//	              │ 5 6 1 │   (target = 1)      │ .42 .50 .08 │
//
//	each row ends up summing to the same target total.
//
// Dive into the package docs for the quantile filter semantics, layer
// normalization policies, and sparse-structure guarantees.
//
//	go get github.com/DaneseAnna/scanpy
package scanpy
