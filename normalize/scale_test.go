// SPDX-License-Identifier: MIT

package normalize_test

import (
	"errors"
	"math"
	"testing"

	"github.com/DaneseAnna/scanpy/matrix"
	"github.com/DaneseAnna/scanpy/normalize"
)

const epsTight = 1e-12

// hide wraps a Matrix to mask its concrete type, forcing the At/Set
// fallback paths in the code under test.
type hide struct{ matrix.Matrix }

func newDense(t *testing.T, r, c int, vals []float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseData(r, c, vals)
	if err != nil {
		t.Fatalf("NewDenseData: %v", err)
	}

	return m
}

func mustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	if err != nil {
		t.Fatalf("At(%d,%d): %v", i, j, err)
	}

	return v
}

func matClose(t *testing.T, got, want matrix.Matrix, tol float64) {
	t.Helper()
	if got.Rows() != want.Rows() || got.Cols() != want.Cols() {
		t.Fatalf("shape: %dx%d vs %dx%d", got.Rows(), got.Cols(), want.Rows(), want.Cols())
	}
	for i := 0; i < got.Rows(); i++ {
		for j := 0; j < got.Cols(); j++ {
			g, w := mustAt(t, got, i, j), mustAt(t, want, i, j)
			if math.Abs(g-w) > tol {
				t.Fatalf("(%d,%d): got %g want %g", i, j, g, w)
			}
		}
	}
}

func TestScaleRows_MedianTarget_InPlace(t *testing.T) {
	t.Parallel()

	m := newDense(t, 3, 2, []float64{1, 0, 3, 0, 5, 6})
	sums := []float64{1, 3, 11}

	out, divisors, err := normalize.ScaleRows(m, sums, nil, normalize.MedianOfQualifying(), false)
	if err != nil {
		t.Fatalf("ScaleRows: %v", err)
	}
	if out != matrix.Matrix(m) {
		t.Fatalf("in-place call must return the input matrix")
	}
	// Median of {1,3,11} is 3; divisors are sum/3.
	wantDiv := []float64{1.0 / 3, 1, 11.0 / 3}
	for i := range wantDiv {
		if math.Abs(divisors[i]-wantDiv[i]) > epsTight {
			t.Fatalf("divisor %d: got %g want %g", i, divisors[i], wantDiv[i])
		}
	}
	// Each row becomes row * 3/sum.
	want := newDense(t, 3, 2, []float64{3, 0, 3, 0, 15.0 / 11, 18.0 / 11})
	matClose(t, m, want, 1e-12)

	// Input sums must be untouched (pure w.r.t. the caller's vector).
	if sums[0] != 1 || sums[1] != 3 || sums[2] != 11 {
		t.Fatalf("caller's sums mutated: %v", sums)
	}
}

func TestScaleRows_ZeroRowGuard(t *testing.T) {
	t.Parallel()

	m := newDense(t, 3, 2, []float64{0, 0, 2, 2, 4, 0})
	sums := []float64{0, 4, 4}

	_, divisors, err := normalize.ScaleRows(m, sums, nil, normalize.Explicit(2), false)
	if err != nil {
		t.Fatalf("ScaleRows: %v", err)
	}
	if divisors[0] != 1 {
		t.Fatalf("zero-sum divisor must be forced to 1, got %g", divisors[0])
	}
	if mustAt(t, m, 0, 0) != 0 || mustAt(t, m, 0, 1) != 0 {
		t.Fatalf("zero row must stay zero")
	}
	matClose(t, m, newDense(t, 3, 2, []float64{0, 0, 1, 1, 2, 0}), epsTight)
}

func TestScaleRows_MaskPinsDivisorToOne(t *testing.T) {
	t.Parallel()

	m := newDense(t, 3, 2, []float64{1, 0, 3, 0, 5, 6})
	sums := []float64{1, 3, 11}
	mask := []bool{false, true, true}

	_, divisors, err := normalize.ScaleRows(m, sums, mask, normalize.MedianOfQualifying(), false)
	if err != nil {
		t.Fatalf("ScaleRows: %v", err)
	}
	// Median over qualifying rows only: median{3,11} target; row 0 untouched.
	if divisors[0] != 1 {
		t.Fatalf("masked-out divisor: got %g want 1", divisors[0])
	}
	if mustAt(t, m, 0, 0) != 1 {
		t.Fatalf("masked-out row changed")
	}
}

func TestScaleRows_CopyLeavesInputUntouched(t *testing.T) {
	t.Parallel()

	m := newDense(t, 2, 2, []float64{2, 0, 4, 4})
	orig := m.Clone()

	out, _, err := normalize.ScaleRows(m, []float64{2, 8}, nil, normalize.Explicit(2), true)
	if err != nil {
		t.Fatalf("ScaleRows: %v", err)
	}
	matClose(t, m, orig, 0)
	matClose(t, out, newDense(t, 2, 2, []float64{2, 0, 1, 1}), epsTight)
}

func TestScaleRows_ValidatesShapes(t *testing.T) {
	t.Parallel()

	m := newDense(t, 2, 2, []float64{1, 2, 3, 4})

	_, _, err := normalize.ScaleRows(m, []float64{1}, nil, normalize.Explicit(1), false)
	if !errors.Is(err, matrix.ErrDimensionMismatch) {
		t.Fatalf("short sums: want ErrDimensionMismatch, got %v", err)
	}
	_, _, err = normalize.ScaleRows(m, []float64{1, 2}, []bool{true}, normalize.Explicit(1), false)
	if !errors.Is(err, matrix.ErrDimensionMismatch) {
		t.Fatalf("short mask: want ErrDimensionMismatch, got %v", err)
	}
	_, _, err = normalize.ScaleRows(nil, []float64{1}, nil, normalize.Explicit(1), false)
	if !errors.Is(err, matrix.ErrNilMatrix) {
		t.Fatalf("nil matrix: want ErrNilMatrix, got %v", err)
	}
}

func TestScaleRows_NoQualifyingRows(t *testing.T) {
	t.Parallel()

	m := newDense(t, 2, 2, []float64{1, 2, 3, 4})
	_, _, err := normalize.ScaleRows(m, []float64{3, 7}, []bool{false, false}, normalize.MedianOfQualifying(), false)
	if !errors.Is(err, normalize.ErrNoQualifyingRows) {
		t.Fatalf("want ErrNoQualifyingRows, got %v", err)
	}
}

func TestScaleRows_FallbackMatchesKernelPath(t *testing.T) {
	t.Parallel()

	vals := []float64{1, 0, 1, 3, 0, 1, 5, 6, 1}
	fast := newDense(t, 3, 3, vals)
	slow := hide{newDense(t, 3, 3, vals)}
	sums := []float64{2, 4, 12}

	_, _, err := normalize.ScaleRows(fast, sums, nil, normalize.MedianOfQualifying(), false)
	if err != nil {
		t.Fatalf("fast: %v", err)
	}
	_, _, err = normalize.ScaleRows(slow, sums, nil, normalize.MedianOfQualifying(), false)
	if err != nil {
		t.Fatalf("slow: %v", err)
	}
	matClose(t, slow, fast, epsTight)
}

func TestScaleRows_SparsePatternPreserved(t *testing.T) {
	t.Parallel()

	d := newDense(t, 3, 3, []float64{1, 0, 1, 3, 0, 1, 5, 6, 1})
	s, err := matrix.CSRFromDense(d)
	if err != nil {
		t.Fatalf("CSRFromDense: %v", err)
	}
	nnz := s.NNZ()

	_, _, err = normalize.ScaleRows(s, []float64{2, 4, 12}, nil, normalize.Explicit(4), false)
	if err != nil {
		t.Fatalf("ScaleRows: %v", err)
	}
	if s.NNZ() != nnz {
		t.Fatalf("pattern changed: nnz %d -> %d", nnz, s.NNZ())
	}
	if mustAt(t, s, 0, 1) != 0 {
		t.Fatalf("structural zero moved")
	}
	sums, err := s.RowSums(nil)
	if err != nil {
		t.Fatalf("RowSums: %v", err)
	}
	for i, sum := range sums {
		if math.Abs(sum-4) > epsTight {
			t.Fatalf("row %d: sum %g, want 4", i, sum)
		}
	}
}
