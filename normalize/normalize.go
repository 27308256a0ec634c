// SPDX-License-Identifier: MIT
// Package normalize — the orchestrating entry points.
//
// Control flow (linear, no branching back):
//   validate → column subset (quantile < 1) → row sums over subset →
//   record counts (optional) → qualifying mask → resolve targets →
//   scale X → scale each selected layer → assemble result.
//
// Failure semantics: argument validation happens before any mutation; once
// scaling starts there is no rollback — a failure at layer k leaves X and
// layers 0..k-1 normalized (each layer step is independent and non-atomic).

package normalize

import (
	"fmt"

	"github.com/DaneseAnna/scanpy/dataset"
	"github.com/DaneseAnna/scanpy/matrix"
)

// ResultKeyX is the Result key holding the normalized primary matrix.
const ResultKeyX = "X"

// Result maps logical names ("X" plus each selected layer name) to freshly
// allocated normalized matrices. It is nil when normalizing in place —
// in-place mutation and returned copies are mutually exclusive.
type Result map[string]matrix.Matrix

// NormalizeQuantile normalizes each row by its total over the columns that
// survive the quantile filter, so every qualifying row ends up with the same
// total. A column survives only if, for every row, its entry contributes at
// most the quantile fraction of that row's full total — this screens out a
// handful of extremely dominant features (one gene consuming most of a
// cell's transcripts) before the scaling factor is derived.
//
// With WithQuantile(1) (the default) no filtering happens and the call
// reduces to NormalizeTotal.
//
// Returns nil when in place (default); with WithCopy, returns the map of
// logical name → normalized matrix and leaves the dataset untouched.
//
// Errors: ErrNilDataset, ErrQuantileRange, ErrLayerPolicy, ErrNoLayer,
// ErrCountsWithFilter, ErrNoQualifyingRows, plus propagated matrix errors.
func NormalizeQuantile(ds *dataset.Dataset, opts ...Option) (Result, error) {
	return run(ds, gatherOptions(opts...))
}

// NormalizeTotal normalizes each row by its total over ALL columns — the
// quantile is pinned to 1 regardless of options. It additionally honors
// WithCounts (precomputed per-row totals), skipping the row-sum pass.
//
// Equivalent to NormalizeQuantile with WithQuantile(1).
func NormalizeTotal(ds *dataset.Dataset, opts ...Option) (Result, error) {
	o := gatherOptions(opts...)
	o.quantile = DefaultQuantile

	return run(ds, o)
}

// run executes the linear state machine shared by both entry points.
func run(ds *dataset.Dataset, o Options) (Result, error) {
	// Stage 1 (Validate): fail fast, before any matrix mutation.
	if ds == nil {
		return nil, ErrNilDataset
	}
	if o.quantile < 0 || o.quantile > 1 {
		return nil, fmt.Errorf("quantile %g: %w", o.quantile, ErrQuantileRange)
	}
	switch o.layerNorm {
	case LayerNormOwn, LayerNormAfter, LayerNormX:
	default:
		return nil, fmt.Errorf("layer norm %d: %w", o.layerNorm, ErrLayerPolicy)
	}
	if o.counts != nil && o.quantile < 1 {
		return nil, ErrCountsWithFilter
	}
	x := ds.X()
	if o.counts != nil {
		if err := matrix.ValidateVecLen(len(o.counts), x.Rows()); err != nil {
			return nil, fmt.Errorf("normalize: counts: %w", err)
		}
	}
	layerNames := o.layers
	if o.allLayers {
		layerNames = ds.LayerNames()
	}
	for _, name := range layerNames {
		if _, ok := ds.Layer(name); !ok {
			return nil, fmt.Errorf("layer %q: %w", name, ErrNoLayer)
		}
	}

	// Stage 2 (Column subset): only when the filter can exclude anything.
	var colSubset []bool
	if o.quantile < 1 {
		o.logger.Printf("normalizing counts per cell, using genes below %g of each cell's total", o.quantile)
		totals, err := rowSums(x, nil)
		if err != nil {
			return nil, fmt.Errorf("normalize: totals: %w", err)
		}
		var excluded int
		if colSubset, excluded, err = dominantColumnSubset(x, totals, o.quantile); err != nil {
			return nil, fmt.Errorf("normalize: column filter: %w", err)
		}
		o.logger.Printf("excluded %d dominant gene(s) from the scaling factor", excluded)
	} else {
		o.logger.Printf("normalizing counts per cell")
	}

	// Stage 3 (Row sums over the subset, or precomputed counts).
	sums := o.counts
	if sums == nil {
		var err error
		if sums, err = rowSums(x, colSubset); err != nil {
			return nil, fmt.Errorf("normalize: row sums: %w", err)
		}
	}

	// Optional side effect: record pre-normalization totals per row.
	if o.countsKey != "" {
		if err := ds.SetObs(o.countsKey, sums); err != nil {
			return nil, fmt.Errorf("normalize: counts key: %w", err)
		}
		o.logger.Printf("added %q, counts per cell before normalization (obs)", o.countsKey)
	}

	// Stage 4 (Qualifying mask): rows below the threshold stay unchanged.
	qualifying := make([]bool, len(sums))
	for i, s := range sums {
		qualifying[i] = s >= o.minCounts
	}

	// Stage 5 (Targets): resolve the primary total once so the layer policy
	// can reference it, then derive the layer policy's target.
	primaryTotal, err := o.target.resolve(sums, qualifying)
	if err != nil {
		return nil, fmt.Errorf("normalize: target: %w", err)
	}
	var layerTarget TargetTotal
	if len(layerNames) > 0 {
		switch o.layerNorm {
		case LayerNormAfter:
			layerTarget = Explicit(primaryTotal)
		case LayerNormX:
			xMedian, merr := MedianOfQualifying().resolve(sums, qualifying)
			if merr != nil {
				return nil, fmt.Errorf("normalize: layer target: %w", merr)
			}
			layerTarget = Explicit(xMedian)
		case LayerNormOwn:
			layerTarget = MedianOfQualifying()
		}
	}

	var result Result
	if !o.inPlace {
		result = make(Result, 1+len(layerNames))
	}

	// Stage 6 (Primary matrix).
	scaledX, _, err := ScaleRows(x, sums, qualifying, Explicit(primaryTotal), !o.inPlace)
	if err != nil {
		return nil, fmt.Errorf("normalize: X: %w", err)
	}
	if !o.inPlace {
		result[ResultKeyX] = scaledX
	}

	// Stage 7 (Layers): each computes its own sums and its own qualifying
	// mask against the same threshold; the target comes from the policy.
	for _, name := range layerNames {
		layer, _ := ds.Layer(name) // presence validated in Stage 1
		lsums, lerr := rowSums(layer, nil)
		if lerr != nil {
			return nil, fmt.Errorf("normalize: layer %q sums: %w", name, lerr)
		}
		lmask := make([]bool, len(lsums))
		for i, s := range lsums {
			lmask[i] = s >= o.minCounts
		}
		scaled, _, lerr := ScaleRows(layer, lsums, lmask, layerTarget, !o.inPlace)
		if lerr != nil {
			return nil, fmt.Errorf("normalize: layer %q: %w", name, lerr)
		}
		if !o.inPlace {
			result[name] = scaled
		}
	}

	o.logger.Printf("    finished: normalized X and %d layer(s)", len(layerNames))

	return result, nil
}

// dominantColumnSubset marks the columns that survive the quantile filter.
// A column is excluded when ANY row's entry exceeds rowTotal*quantile.
// Assumes count data (non-negative entries): structural zeros of a sparse
// matrix can never exceed a non-negative threshold and are not visited.
//
// Returns the inclusion mask (true = column participates in row sums) and
// the number of excluded columns.
// Complexity: O(r*c) dense, O(nnz) sparse.
func dominantColumnSubset(m matrix.Matrix, totals []float64, quantile float64) ([]bool, int, error) {
	r, c := m.Rows(), m.Cols()
	if err := matrix.ValidateVecLen(len(totals), r); err != nil {
		return nil, 0, err
	}
	excluded := make([]bool, c)

	switch t := m.(type) {
	case *matrix.Dense:
		for i := 0; i < r; i++ {
			row, err := t.Row(i)
			if err != nil {
				return nil, 0, err
			}
			thr := totals[i] * quantile
			for j, v := range row {
				if v > thr {
					excluded[j] = true
				}
			}
		}
	case *matrix.CSR:
		t.Do(func(i, j int, v float64) bool {
			if v > totals[i]*quantile {
				excluded[j] = true
			}
			return true
		})
	default:
		// Generic fallback through At (deterministic i→j order).
		for i := 0; i < r; i++ {
			thr := totals[i] * quantile
			for j := 0; j < c; j++ {
				v, err := m.At(i, j)
				if err != nil {
					return nil, 0, err
				}
				if v > thr {
					excluded[j] = true
				}
			}
		}
	}

	included := make([]bool, c)
	n := 0
	for j := range excluded {
		if excluded[j] {
			n++
		}
		included[j] = !excluded[j]
	}

	return included, n, nil
}
