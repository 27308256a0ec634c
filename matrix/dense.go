// SPDX-License-Identifier: MIT
// Package matrix — Dense, the row-major float64 implementation.
//
// Purpose:
//   - Store elements in one flat slice for cache friendliness and to expose
//     contiguous row slices to the vek SIMD kernels (Sum, MulNumber_Inplace).
//   - Keep loops deterministic: fixed i→j traversal everywhere.
//
// AI-Hints:
//   - Prefer *Dense for small/saturated matrices; use CSR for sparse counts.
//   - Row(i) returns a live view — mutate it only under call-scoped exclusivity.

package matrix

import (
	"fmt"
	"strings"

	"github.com/viterin/vek"
)

// denseErrorf wraps an underlying error with Dense method context.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major matrix of float64 values.
// r is rows, c is columns, and data holds r*c elements in row-major order.
type Dense struct {
	r, c int       // number of rows and columns
	data []float64 // flat backing storage, length == r*c
}

// NewDense creates an r×c Dense matrix initialized to zeros.
// Stage 1 (Validate): ensure rows and cols > 0.
// Stage 2 (Prepare): allocate flat backing slice.
// Stage 3 (Finalize): return new Dense or ErrBadShape.
// Complexity: O(r*c) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	// Validate dimensions
	if rows <= 0 || cols <= 0 {
		return nil, ErrBadShape
	}
	// Allocate flat slice
	data := make([]float64, rows*cols)

	// Return initialized Dense
	return &Dense{r: rows, c: cols, data: data}, nil
}

// NewDenseData creates an r×c Dense from a row-major value slice.
// The slice is copied, so the caller keeps ownership of data.
// Stage 1 (Validate): shape > 0 and len(data) == rows*cols.
// Stage 2 (Execute): copy into fresh backing storage.
// Complexity: O(r*c).
func NewDenseData(rows, cols int, data []float64) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrBadShape
	}
	if len(data) != rows*cols {
		return nil, validatorErrorf("NewDenseData", ErrDimensionMismatch)
	}
	buf := make([]float64, len(data))
	copy(buf, data)

	return &Dense{r: rows, c: cols, data: buf}, nil
}

// Rows returns the number of rows in the matrix.
// Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns in the matrix.
// Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	// Validate row index
	if row < 0 || row >= m.r {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}
	// Validate column index
	if col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}

	// Compute flat offset
	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns value v at (row, col).
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// Row returns the live row-major slice of row i (a view, not a copy).
// Mutations through the returned slice are visible in the matrix.
// Complexity: O(1).
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf("Row", i, 0, ErrOutOfRange)
	}

	return m.data[i*m.c : (i+1)*m.c], nil
}

// Clone returns a deep copy of the Dense matrix.
// Complexity: O(r*c) time and memory.
func (m *Dense) Clone() Matrix {
	copyData := make([]float64, len(m.data))
	copy(copyData, m.data)

	return &Dense{r: m.r, c: m.c, data: copyData}
}

// RowSums returns per-row totals, optionally restricted to a column subset.
// Implementation:
//   - Stage 1: Validate the optional mask length.
//   - Stage 2 (fast path): cols == nil → vek.Sum over each contiguous row.
//   - Stage 2 (masked): fixed i→j loop accumulating only unmasked columns.
//
// Behavior highlights:
//   - Always returns a fresh slice; never aliases internal storage.
//
// Complexity: O(r*c) time, O(r) space.
func (m *Dense) RowSums(cols []bool) ([]float64, error) {
	if cols != nil {
		if err := ValidateVecLen(len(cols), m.c); err != nil {
			return nil, fmt.Errorf("Dense.RowSums: %w", err)
		}
	}
	sums := make([]float64, m.r)

	if cols == nil {
		// Full-row reduction on contiguous slices (SIMD-friendly).
		for i := 0; i < m.r; i++ {
			sums[i] = vek.Sum(m.data[i*m.c : (i+1)*m.c])
		}
		return sums, nil
	}

	// Masked reduction: deterministic i→j accumulation.
	var s float64
	for i := 0; i < m.r; i++ {
		s = 0.0
		base := i * m.c // cache row base offset
		for j := 0; j < m.c; j++ {
			if cols[j] {
				s += m.data[base+j]
			}
		}
		sums[i] = s
	}

	return sums, nil
}

// ScaleRows multiplies every entry of row i by factors[i], in place.
// Implementation:
//   - Stage 1: Validate factors length.
//   - Stage 2: per-row vek.MulNumber_Inplace on the contiguous row slice;
//     factor == 1 rows are skipped (exact no-op, avoids rounding drift).
//
// Complexity: O(r*c) time, O(1) extra space.
func (m *Dense) ScaleRows(factors []float64) error {
	if err := ValidateVecLen(len(factors), m.r); err != nil {
		return fmt.Errorf("Dense.ScaleRows: %w", err)
	}
	for i := 0; i < m.r; i++ {
		if factors[i] == 1 {
			continue // identity scaling must be bit-exact
		}
		vek.MulNumber_Inplace(m.data[i*m.c:(i+1)*m.c], factors[i])
	}

	return nil
}

// String implements fmt.Stringer for easy debugging.
// Complexity: O(r*c).
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
