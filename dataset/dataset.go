// SPDX-License-Identifier: MIT
// Package dataset — container type and accessors.
//
// Purpose:
//   - Keep X, layers and obs behind a small API so row alignment is enforced
//     in exactly one place (matrix.ValidateSameRows / ValidateVecLen).
//   - Stay storage-agnostic: X and layers are matrix.Matrix values; dense and
//     CSR mix freely within one dataset.
//
// Concurrency: none. Callers must guarantee call-scoped exclusive access
// while a transform is running (read-then-write passes over shared storage).

package dataset

import (
	"fmt"
	"sort"

	"github.com/DaneseAnna/scanpy/matrix"
)

// Dataset is an annotated data matrix: primary X, named aligned layers and
// per-row metadata columns.
type Dataset struct {
	x      matrix.Matrix
	layers map[string]matrix.Matrix
	obs    map[string][]float64
}

// New wraps a primary matrix into a Dataset.
// Errors: matrix.ErrNilMatrix when x is nil.
func New(x matrix.Matrix) (*Dataset, error) {
	if err := matrix.ValidateNotNil(x); err != nil {
		return nil, fmt.Errorf("dataset.New: %w", err)
	}

	return &Dataset{
		x:      x,
		layers: make(map[string]matrix.Matrix),
		obs:    make(map[string][]float64),
	}, nil
}

// X returns the primary matrix. The dataset keeps ownership; in-place
// transforms mutate the returned value's storage.
func (d *Dataset) X() matrix.Matrix { return d.x }

// NRows returns the number of rows (samples) of X.
func (d *Dataset) NRows() int { return d.x.Rows() }

// NCols returns the number of columns (features) of X.
func (d *Dataset) NCols() int { return d.x.Cols() }

// SetLayer registers (or replaces) a named layer. The layer must share the
// row count of X; columns may differ (alternate quantifications).
// Errors: matrix.ErrNilMatrix, matrix.ErrDimensionMismatch.
func (d *Dataset) SetLayer(name string, m matrix.Matrix) error {
	if err := matrix.ValidateNotNil(m); err != nil {
		return fmt.Errorf("dataset.SetLayer(%q): %w", name, err)
	}
	if err := matrix.ValidateSameRows(d.x, m); err != nil {
		return fmt.Errorf("dataset.SetLayer(%q): %w", name, err)
	}
	d.layers[name] = m

	return nil
}

// Layer returns the named layer and whether it exists.
func (d *Dataset) Layer(name string) (matrix.Matrix, bool) {
	m, ok := d.layers[name]
	return m, ok
}

// LayerNames returns all layer names in lexicographic order.
func (d *Dataset) LayerNames() []string {
	names := make([]string, 0, len(d.layers))
	for name := range d.layers {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// SetObs stores a per-row metadata column under name. The column is copied.
// Errors: matrix.ErrDimensionMismatch when len(col) != NRows().
func (d *Dataset) SetObs(name string, col []float64) error {
	if err := matrix.ValidateVecLen(len(col), d.x.Rows()); err != nil {
		return fmt.Errorf("dataset.SetObs(%q): %w", name, err)
	}
	cp := make([]float64, len(col))
	copy(cp, col)
	d.obs[name] = cp

	return nil
}

// Obs returns the named per-row metadata column and whether it exists.
// The returned slice is the stored one; treat it as read-only.
func (d *Dataset) Obs(name string) ([]float64, bool) {
	col, ok := d.obs[name]
	return col, ok
}

// ObsNames returns all metadata column names in lexicographic order.
func (d *Dataset) ObsNames() []string {
	names := make([]string, 0, len(d.obs))
	for name := range d.obs {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
