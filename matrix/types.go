// SPDX-License-Identifier: MIT

// Package matrix: domain-facing types shared by the dense and sparse
// implementations. Errors and validators live in dedicated files
// (errors.go, validators.go) per the package conventions.
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
// Both Dense and CSR satisfy it; algorithms that only need shape and
// element access should accept Matrix and stay representation-agnostic.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)
// for Dense, O(nnz) for CSR) and At/Set on CSR (O(log nnz(row))).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	// Complexity: O(1).
	Rows() int

	// Cols returns the number of columns in the matrix.
	// Complexity: O(1).
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid. On CSR, writing a
	// nonzero into a structurally-zero cell returns ErrBadSparseStructure
	// (the pattern is immutable after construction).
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	// The returned Matrix is independent of the original and has the same
	// concrete representation.
	Clone() Matrix
}

// RowOps is the capability surface the normalization kernels require.
// It deliberately contains only the two reductions the pipeline performs,
// so a representation qualifies by implementing exactly what is exercised.
//
// AI-Hints:
//   - RowSums(nil) is the full row-total reduction; pass a column mask only
//     for the quantile-filtered pass.
//   - ScaleRows mutates in place; callers wanting a copy Clone() first.
type RowOps interface {
	// RowSums returns one scalar per row: the sum of the row's entries,
	// restricted to columns where cols[j] is true when cols is non-nil.
	// A non-nil cols must have length Cols(), else ErrDimensionMismatch.
	// Complexity: O(r*c) dense, O(nnz) sparse.
	RowSums(cols []bool) ([]float64, error)

	// ScaleRows multiplies every entry of row i by factors[i], in place.
	// factors must have length Rows(), else ErrDimensionMismatch.
	// The sparsity pattern of a sparse matrix never changes (stored values
	// are scaled; structural zeros stay structural).
	// Complexity: O(r*c) dense, O(nnz) sparse.
	ScaleRows(factors []float64) error
}
