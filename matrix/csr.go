// SPDX-License-Identifier: MIT
// Package matrix — CSR, the compressed-sparse-row implementation.
//
// Purpose:
//   - Hold large count matrices where most entries are structural zeros.
//   - Guarantee that row scaling touches stored values only: the sparsity
//     pattern (rowPtr/colIdx) is immutable after construction.
//
// Layout:
//   - rowPtr has length r+1; row i owns values[rowPtr[i]:rowPtr[i+1]].
//   - colIdx is strictly increasing inside each row (canonical CSR).
//
// AI-Hints:
//   - Stored values may legitimately be zero (e.g., after scaling a zero);
//     "structural zero" means the coordinate is absent from colIdx.
//   - values[start:end] is contiguous, so vek kernels apply per row exactly
//     as they do for Dense rows.

package matrix

import (
	"fmt"
	"sort"

	"github.com/viterin/vek"
)

// csrErrorf wraps an underlying error with CSR method context.
func csrErrorf(method string, err error) error {
	return fmt.Errorf("CSR.%s: %w", method, err)
}

// CSR is a compressed-sparse-row matrix of float64 values.
type CSR struct {
	r, c   int
	rowPtr []int     // length r+1, monotone, rowPtr[0]==0, rowPtr[r]==nnz
	colIdx []int     // length nnz, strictly increasing within each row
	values []float64 // length nnz, aligned with colIdx
}

// NewCSR builds a CSR matrix from a canonical compressed-row layout.
// All three slices are copied; the caller keeps ownership of its buffers.
// Stage 1 (Validate): shape, rowPtr monotonicity/bounds, per-row column order.
// Stage 2 (Execute): copy slices into fresh storage.
// Errors: ErrBadShape, ErrBadSparseStructure.
// Complexity: O(nnz).
func NewCSR(rows, cols int, rowPtr, colIdx []int, values []float64) (*CSR, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrBadShape
	}
	if len(rowPtr) != rows+1 || rowPtr[0] != 0 || rowPtr[rows] != len(values) || len(colIdx) != len(values) {
		return nil, csrErrorf("NewCSR", ErrBadSparseStructure)
	}
	for i := 0; i < rows; i++ {
		start, end := rowPtr[i], rowPtr[i+1]
		if start > end || end > len(values) {
			return nil, csrErrorf("NewCSR", ErrBadSparseStructure)
		}
		for k := start; k < end; k++ {
			// Strictly increasing column order is what At's binary search assumes.
			if colIdx[k] < 0 || colIdx[k] >= cols || (k > start && colIdx[k] <= colIdx[k-1]) {
				return nil, csrErrorf("NewCSR", ErrBadSparseStructure)
			}
		}
	}

	m := &CSR{
		r:      rows,
		c:      cols,
		rowPtr: make([]int, len(rowPtr)),
		colIdx: make([]int, len(colIdx)),
		values: make([]float64, len(values)),
	}
	copy(m.rowPtr, rowPtr)
	copy(m.colIdx, colIdx)
	copy(m.values, values)

	return m, nil
}

// CSRFromDense converts a Dense matrix to CSR, dropping exact zeros.
// Complexity: O(r*c).
func CSRFromDense(d *Dense) (*CSR, error) {
	if err := ValidateNotNil(d); err != nil {
		return nil, csrErrorf("CSRFromDense", err)
	}
	rowPtr := make([]int, d.r+1)
	var colIdx []int
	var values []float64
	for i := 0; i < d.r; i++ {
		base := i * d.c
		for j := 0; j < d.c; j++ {
			if v := d.data[base+j]; v != 0 {
				colIdx = append(colIdx, j)
				values = append(values, v)
			}
		}
		rowPtr[i+1] = len(values)
	}

	return &CSR{r: d.r, c: d.c, rowPtr: rowPtr, colIdx: colIdx, values: values}, nil
}

// Rows returns the number of rows. Complexity: O(1).
func (m *CSR) Rows() int { return m.r }

// Cols returns the number of columns. Complexity: O(1).
func (m *CSR) Cols() int { return m.c }

// NNZ returns the number of stored (structural) entries. Complexity: O(1).
func (m *CSR) NNZ() int { return len(m.values) }

// find locates the storage slot of (row, col), or returns found=false when
// the coordinate is a structural zero. Assumes indices already validated.
// Complexity: O(log nnz(row)).
func (m *CSR) find(row, col int) (int, bool) {
	start, end := m.rowPtr[row], m.rowPtr[row+1]
	k := start + sort.SearchInts(m.colIdx[start:end], col)
	if k < end && m.colIdx[k] == col {
		return k, true
	}

	return 0, false
}

// At retrieves the element at (row, col); structural zeros read as 0.
// Complexity: O(log nnz(row)).
func (m *CSR) At(row, col int) (float64, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, csrErrorf("At", ErrOutOfRange)
	}
	if k, ok := m.find(row, col); ok {
		return m.values[k], nil
	}

	return 0, nil
}

// Set assigns v at (row, col) when the coordinate is stored. Writing a
// nonzero into a structural zero would change the pattern and is refused
// with ErrBadSparseStructure; writing 0 there is a no-op.
// Complexity: O(log nnz(row)).
func (m *CSR) Set(row, col int, v float64) error {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return csrErrorf("Set", ErrOutOfRange)
	}
	if k, ok := m.find(row, col); ok {
		m.values[k] = v
		return nil
	}
	if v == 0 {
		return nil // already a structural zero
	}

	return csrErrorf("Set", ErrBadSparseStructure)
}

// Clone returns a deep copy sharing no storage with the original.
// Complexity: O(nnz).
func (m *CSR) Clone() Matrix {
	cp := &CSR{
		r:      m.r,
		c:      m.c,
		rowPtr: make([]int, len(m.rowPtr)),
		colIdx: make([]int, len(m.colIdx)),
		values: make([]float64, len(m.values)),
	}
	copy(cp.rowPtr, m.rowPtr)
	copy(cp.colIdx, m.colIdx)
	copy(cp.values, m.values)

	return cp
}

// RowSums returns per-row totals, optionally restricted to a column subset.
// Stage 1: validate the optional mask length.
// Stage 2 (fast path): cols == nil → vek.Sum over each row's value span.
// Stage 2 (masked): walk stored entries, keeping those whose column is set.
// Complexity: O(nnz) time, O(r) space.
func (m *CSR) RowSums(cols []bool) ([]float64, error) {
	if cols != nil {
		if err := ValidateVecLen(len(cols), m.c); err != nil {
			return nil, csrErrorf("RowSums", err)
		}
	}
	sums := make([]float64, m.r)

	if cols == nil {
		for i := 0; i < m.r; i++ {
			if span := m.values[m.rowPtr[i]:m.rowPtr[i+1]]; len(span) > 0 {
				sums[i] = vek.Sum(span)
			}
		}
		return sums, nil
	}

	var s float64
	for i := 0; i < m.r; i++ {
		s = 0.0
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			if cols[m.colIdx[k]] {
				s += m.values[k]
			}
		}
		sums[i] = s
	}

	return sums, nil
}

// ScaleRows multiplies every stored entry of row i by factors[i], in place.
// The sparsity pattern is untouched: only values change.
// Complexity: O(nnz) time, O(1) extra space.
func (m *CSR) ScaleRows(factors []float64) error {
	if err := ValidateVecLen(len(factors), m.r); err != nil {
		return csrErrorf("ScaleRows", err)
	}
	for i := 0; i < m.r; i++ {
		if factors[i] == 1 {
			continue // identity scaling must be bit-exact
		}
		if span := m.values[m.rowPtr[i]:m.rowPtr[i+1]]; len(span) > 0 {
			vek.MulNumber_Inplace(span, factors[i])
		}
	}

	return nil
}

// Do calls f for every stored entry in row-major order, stopping early when
// f returns false. Structural zeros are never visited.
// Complexity: O(nnz).
func (m *CSR) Do(f func(i, j int, v float64) bool) {
	for i := 0; i < m.r; i++ {
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			if !f(i, m.colIdx[k], m.values[k]) {
				return
			}
		}
	}
}

// ToDense materializes the matrix as Dense (structural zeros become 0.0).
// Complexity: O(r*c).
func (m *CSR) ToDense() (*Dense, error) {
	d, err := NewDense(m.r, m.c)
	if err != nil {
		return nil, csrErrorf("ToDense", err)
	}
	for i := 0; i < m.r; i++ {
		base := i * m.c
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			d.data[base+m.colIdx[k]] = m.values[k]
		}
	}

	return d, nil
}
