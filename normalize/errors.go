// SPDX-License-Identifier: MIT
// Package normalize: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors. All entry points MUST
// return these sentinels for their own precondition failures and tests MUST
// check them via errors.Is. Shape violations reuse the matrix package
// sentinels (matrix.ErrDimensionMismatch et al.) so callers match one set of
// structural errors across the module.

package normalize

import "errors"

// NOTE ON FAIL-FAST ORDER
// -----------------------
// Argument validation (quantile range, layer policy, counts/filter conflict)
// happens before any matrix is touched. Once scaling has started there is no
// rollback: a failure while processing layer k leaves layers 0..k-1 mutated.

var (
	// ErrNilDataset indicates that a nil *dataset.Dataset was passed in.
	ErrNilDataset = errors.New("normalize: nil dataset")

	// ErrQuantileRange is returned when the quantile option lies outside [0,1].
	ErrQuantileRange = errors.New("normalize: quantile must be within [0, 1]")

	// ErrLayerPolicy is returned when the layer-norm option is not one of
	// LayerNormOwn, LayerNormAfter or LayerNormX.
	ErrLayerPolicy = errors.New("normalize: unknown layer-norm policy")

	// ErrNoLayer indicates that a selected layer name is absent from the dataset.
	ErrNoLayer = errors.New("normalize: no such layer")

	// ErrCountsWithFilter is returned when precomputed per-row counts are
	// combined with quantile filtering: the counts would not reflect the
	// filtered column subset, silently skewing the divisors.
	ErrCountsWithFilter = errors.New("normalize: precomputed counts cannot be combined with quantile < 1")

	// ErrNoQualifyingRows is returned when a median-derived target total is
	// requested but no row passes the minimum-count filter. Deriving the
	// median of an empty set would propagate NaN through every divisor, so
	// the call fails fast instead.
	ErrNoQualifyingRows = errors.New("normalize: no rows qualify for the median target")
)
