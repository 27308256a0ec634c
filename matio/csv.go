// SPDX-License-Identifier: MIT
// Package matio — dense CSV grids.
//
// The CSV dialect is deliberately minimal: no header row, one float per
// field, every record the same width. encoding/csv already enforces the
// rectangular shape (ErrFieldCount), so only value parsing is checked here.

package matio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/DaneseAnna/scanpy/matrix"
)

// ReadCSVDense parses a headerless float grid into a Dense matrix.
// Errors: ErrBadEntry (wrapped with record/field position), encoding/csv
// errors, matrix.ErrBadShape for empty input.
func ReadCSVDense(r io.Reader) (*matrix.Dense, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("matio.ReadCSVDense: %w", err)
	}
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, fmt.Errorf("matio.ReadCSVDense: empty input: %w", matrix.ErrBadShape)
	}

	rows, cols := len(records), len(records[0])
	vals := make([]float64, 0, rows*cols)
	for i, rec := range records {
		for j, field := range rec {
			v, perr := strconv.ParseFloat(field, 64)
			if perr != nil {
				return nil, fmt.Errorf("matio.ReadCSVDense: record %d field %d %q: %w", i+1, j+1, field, ErrBadEntry)
			}
			vals = append(vals, v)
		}
	}

	m, err := matrix.NewDenseData(rows, cols, vals)
	if err != nil {
		return nil, fmt.Errorf("matio.ReadCSVDense: %w", err)
	}

	return m, nil
}

// WriteCSV writes any Matrix as a headerless float grid.
// Values are rendered with strconv 'g' formatting (shortest round-trip).
func WriteCSV(w io.Writer, m matrix.Matrix) error {
	if err := matrix.ValidateNotNil(m); err != nil {
		return fmt.Errorf("matio.WriteCSV: %w", err)
	}
	cw := csv.NewWriter(w)
	record := make([]string, m.Cols())
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, err := m.At(i, j)
			if err != nil {
				return fmt.Errorf("matio.WriteCSV: %w", err)
			}
			record[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("matio.WriteCSV: %w", err)
		}
	}
	cw.Flush()

	return cw.Error()
}
