// SPDX-License-Identifier: MIT
// Package normalize — the per-row scaling primitive (the only mutation site).
//
// Purpose:
//   - ScaleRows is the one routine that touches matrix storage; the entry
//     points in normalize.go only compute vectors and call it.
//   - It is pure with respect to its inputs: the caller's sums slice is never
//     mutated (the transformed divisor vector is returned instead), removing
//     the hidden aliasing the classic formulation relies on.
//
// Representation handling:
//   - Matrices implementing matrix.RowOps (Dense, CSR) take the kernel path.
//   - Anything else falls back to At/Set loops — slower, same semantics.

package normalize

import (
	"fmt"

	"github.com/DaneseAnna/scanpy/matrix"
)

// ScaleRows rescales each row of m so qualifying rows end up with the target
// total, operating on m itself or on a clone.
//
// Implementation:
//   - Stage 1 (Validate): m non-nil; len(sums) == Rows; mask length when given.
//   - Stage 2 (Resolve): explicit target passes through; otherwise the median
//     of sums over qualifying rows (all rows when qualifying is nil).
//   - Stage 3 (Divisors): rows outside the mask get divisor 1 (left as-is);
//     qualifying rows get sum/target; exact-zero divisors are replaced by 1
//     so empty rows stay empty instead of dividing by zero.
//   - Stage 4 (Apply): every row is multiplied by 1/divisor, in place on m,
//     or on m.Clone() when copyFirst is true.
//
// Returns the matrix that was scaled (m, or the clone) and the resolved
// divisor vector. The input sums slice is never written to.
//
// Errors: matrix.ErrNilMatrix, matrix.ErrDimensionMismatch,
// ErrNoQualifyingRows; plus whatever the matrix kernels raise.
//
// Complexity: O(r log r) target resolution + O(r*c) dense / O(nnz) sparse.
func ScaleRows(m matrix.Matrix, sums []float64, qualifying []bool, target TargetTotal, copyFirst bool) (matrix.Matrix, []float64, error) {
	// Stage 1 (Validate).
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, nil, fmt.Errorf("normalize.ScaleRows: %w", err)
	}
	rows := m.Rows()
	if err := matrix.ValidateVecLen(len(sums), rows); err != nil {
		return nil, nil, fmt.Errorf("normalize.ScaleRows: sums: %w", err)
	}
	if qualifying != nil {
		if err := matrix.ValidateVecLen(len(qualifying), rows); err != nil {
			return nil, nil, fmt.Errorf("normalize.ScaleRows: mask: %w", err)
		}
	}

	// Stage 2 (Resolve target).
	total, err := target.resolve(sums, qualifying)
	if err != nil {
		return nil, nil, fmt.Errorf("normalize.ScaleRows: %w", err)
	}

	// Stage 3 (Divisors). Non-qualifying rows are pinned to 1 BEFORE the
	// zero-guard so the guard only ever fires for genuinely empty rows.
	divisors := make([]float64, rows)
	for i := range divisors {
		if qualifying != nil && !qualifying[i] {
			divisors[i] = 1
			continue
		}
		d := sums[i] / total
		if d == 0 {
			d = 1 // empty row: values are already zero and must stay zero
		}
		divisors[i] = d
	}

	// Stage 4 (Apply): multiply each row by the reciprocal divisor.
	out := m
	if copyFirst {
		out = m.Clone()
	}
	factors := make([]float64, rows)
	for i := range factors {
		factors[i] = 1 / divisors[i]
	}
	if err = applyRowFactors(out, factors); err != nil {
		return nil, nil, fmt.Errorf("normalize.ScaleRows: %w", err)
	}

	return out, divisors, nil
}

// rowSums reduces m to one scalar per row over an optional column subset.
// Kernel path when m implements matrix.RowOps; At-loop fallback otherwise.
// Complexity: O(r*c) dense / O(nnz) sparse; fallback always O(r*c).
func rowSums(m matrix.Matrix, cols []bool) ([]float64, error) {
	if ro, ok := m.(matrix.RowOps); ok {
		return ro.RowSums(cols)
	}

	// Generic fallback: deterministic i→j accumulation through At.
	r, c := m.Rows(), m.Cols()
	if cols != nil {
		if err := matrix.ValidateVecLen(len(cols), c); err != nil {
			return nil, fmt.Errorf("rowSums: %w", err)
		}
	}
	sums := make([]float64, r)
	var v float64
	var err error
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if cols != nil && !cols[j] {
				continue
			}
			if v, err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("rowSums: %w", err)
			}
			sums[i] += v
		}
	}

	return sums, nil
}

// applyRowFactors multiplies row i by factors[i].
// Kernel path when m implements matrix.RowOps; At/Set fallback otherwise.
// The fallback writes v*f, which is 0 for structural zeros, so sparse
// implementations behind the interface keep their pattern too.
func applyRowFactors(m matrix.Matrix, factors []float64) error {
	if ro, ok := m.(matrix.RowOps); ok {
		return ro.ScaleRows(factors)
	}

	r, c := m.Rows(), m.Cols()
	if err := matrix.ValidateVecLen(len(factors), r); err != nil {
		return fmt.Errorf("applyRowFactors: %w", err)
	}
	var v float64
	var err error
	for i := 0; i < r; i++ {
		if factors[i] == 1 {
			continue // identity scaling must be bit-exact
		}
		for j := 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return fmt.Errorf("applyRowFactors: %w", err)
			}
			if v == 0 {
				continue // nothing to scale; also keeps sparse patterns intact
			}
			if err = m.Set(i, j, v*factors[i]); err != nil {
				return fmt.Errorf("applyRowFactors: %w", err)
			}
		}
	}

	return nil
}
