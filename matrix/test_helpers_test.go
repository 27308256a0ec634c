// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers.
//
// Purpose:
//   - Provide small, deterministic fixtures for the dense and sparse kernels.
//   - Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math"
	"testing"

	"github.com/DaneseAnna/scanpy/matrix"
)

// MustDense allocates an r×c *Dense or fails the test.
func MustDense(t *testing.T, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	if err != nil {
		t.Fatalf("NewDense(%d,%d): %v", r, c, err)
	}

	return m
}

// NewFilledDense builds an r×c *Dense from row-major values or fails the test.
func NewFilledDense(t *testing.T, r, c int, vals []float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseData(r, c, vals)
	if err != nil {
		t.Fatalf("NewDenseData(%d,%d): %v", r, c, err)
	}

	return m
}

// MustCSR converts a dense fixture to CSR or fails the test.
func MustCSR(t *testing.T, d *matrix.Dense) *matrix.CSR {
	t.Helper()
	s, err := matrix.CSRFromDense(d)
	if err != nil {
		t.Fatalf("CSRFromDense: %v", err)
	}

	return s
}

// MustAt reads (i,j) or fails the test.
func MustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	if err != nil {
		t.Fatalf("At(%d,%d): %v", i, j, err)
	}

	return v
}

// sliceClose asserts |got[i]-want[i]| <= atol + rtol*|want[i]| element-wise.
func sliceClose(t *testing.T, got, want []float64, rtol, atol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d want %d", len(got), len(want))
	}
	for i := range want {
		tol := atol + rtol*math.Abs(want[i])
		if math.Abs(got[i]-want[i]) > tol {
			t.Fatalf("elem %d: got %g want %g (tol %g)", i, got[i], want[i], tol)
		}
	}
}

// CompareClose asserts two matrices agree element-wise within tolerance.
func CompareClose(t *testing.T, a, b matrix.Matrix, rtol, atol float64) {
	t.Helper()
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		t.Fatalf("shape mismatch: %dx%d vs %dx%d", a.Rows(), a.Cols(), b.Rows(), b.Cols())
	}
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			va, vb := MustAt(t, a, i, j), MustAt(t, b, i, j)
			tol := atol + rtol*math.Abs(vb)
			if math.Abs(va-vb) > tol {
				t.Fatalf("(%d,%d): %g vs %g (tol %g)", i, j, va, vb, tol)
			}
		}
	}
}
