// SPDX-License-Identifier: MIT

package matrix_test

import (
	"errors"
	"testing"

	"github.com/DaneseAnna/scanpy/matrix"
)

func TestNewDense_RejectsBadShape(t *testing.T) {
	t.Parallel()

	for _, shape := range [][2]int{{0, 3}, {3, 0}, {-1, 2}, {2, -5}} {
		if _, err := matrix.NewDense(shape[0], shape[1]); !errors.Is(err, matrix.ErrBadShape) {
			t.Fatalf("NewDense(%d,%d): want ErrBadShape, got %v", shape[0], shape[1], err)
		}
	}
}

func TestNewDenseData_LengthMismatch(t *testing.T) {
	t.Parallel()

	_, err := matrix.NewDenseData(2, 2, []float64{1, 2, 3})
	if !errors.Is(err, matrix.ErrDimensionMismatch) {
		t.Fatalf("want ErrDimensionMismatch, got %v", err)
	}
}

func TestDense_AtSetBounds(t *testing.T) {
	t.Parallel()

	m := MustDense(t, 2, 3)
	if err := m.Set(1, 2, 7.5); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := MustAt(t, m, 1, 2); got != 7.5 {
		t.Fatalf("At: got %g", got)
	}
	if _, err := m.At(2, 0); !errors.Is(err, matrix.ErrOutOfRange) {
		t.Fatalf("row overflow: want ErrOutOfRange, got %v", err)
	}
	if err := m.Set(0, -1, 1); !errors.Is(err, matrix.ErrOutOfRange) {
		t.Fatalf("col underflow: want ErrOutOfRange, got %v", err)
	}
}

func TestDense_RowSums_FullAndMasked(t *testing.T) {
	t.Parallel()

	m := NewFilledDense(t, 3, 2, []float64{1, 0, 3, 0, 5, 6})

	full, err := m.RowSums(nil)
	if err != nil {
		t.Fatalf("full: %v", err)
	}
	sliceClose(t, full, []float64{1, 3, 11}, 0, 0)

	// Keep only column 0.
	masked, err := m.RowSums([]bool{true, false})
	if err != nil {
		t.Fatalf("masked: %v", err)
	}
	sliceClose(t, masked, []float64{1, 3, 5}, 0, 0)

	if _, err = m.RowSums([]bool{true}); !errors.Is(err, matrix.ErrDimensionMismatch) {
		t.Fatalf("short mask: want ErrDimensionMismatch, got %v", err)
	}
}

func TestDense_ScaleRows(t *testing.T) {
	t.Parallel()

	m := NewFilledDense(t, 2, 2, []float64{2, 4, 3, 9})
	if err := m.ScaleRows([]float64{0.5, 1}); err != nil {
		t.Fatalf("ScaleRows: %v", err)
	}
	want := NewFilledDense(t, 2, 2, []float64{1, 2, 3, 9})
	CompareClose(t, m, want, 0, 0)

	if err := m.ScaleRows([]float64{1}); !errors.Is(err, matrix.ErrDimensionMismatch) {
		t.Fatalf("short factors: want ErrDimensionMismatch, got %v", err)
	}
}

func TestDense_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	m := NewFilledDense(t, 2, 2, []float64{1, 2, 3, 4})
	cp := m.Clone()
	if err := m.Set(0, 0, 100); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := MustAt(t, cp, 0, 0); got != 1 {
		t.Fatalf("clone mutated: got %g", got)
	}
}

func TestDense_RowIsLiveView(t *testing.T) {
	t.Parallel()

	m := NewFilledDense(t, 2, 2, []float64{1, 2, 3, 4})
	row, err := m.Row(1)
	if err != nil {
		t.Fatalf("Row: %v", err)
	}
	row[0] = 42
	if got := MustAt(t, m, 1, 0); got != 42 {
		t.Fatalf("view not live: got %g", got)
	}
	if _, err = m.Row(5); !errors.Is(err, matrix.ErrOutOfRange) {
		t.Fatalf("want ErrOutOfRange, got %v", err)
	}
}
