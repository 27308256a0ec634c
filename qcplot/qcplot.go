// SPDX-License-Identifier: MIT

// Package qcplot renders quality-control plots for preprocessing runs.
// Currently: the distribution of counts per cell before normalization, the
// standard first look at a fresh count matrix.
//
// The output format follows the file extension (.png, .svg, .pdf, ...),
// as supported by gonum plot's Save.
package qcplot

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	// ErrNoData is returned when there are no values to plot.
	ErrNoData = errors.New("qcplot: no data")

	// ErrBadBins is returned for a non-positive bin count.
	ErrBadBins = errors.New("qcplot: bins must be > 0")
)

// CountsHistogram writes a histogram of per-cell totals to path.
// Complexity: O(n) plus rendering.
func CountsHistogram(counts []float64, bins int, title, path string) error {
	if len(counts) == 0 {
		return ErrNoData
	}
	if bins <= 0 {
		return ErrBadBins
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "counts per cell"
	p.Y.Label.Text = "cells"

	h, err := plotter.NewHist(plotter.Values(counts), bins)
	if err != nil {
		return fmt.Errorf("qcplot.CountsHistogram: %w", err)
	}
	p.Add(h)

	if err = p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("qcplot.CountsHistogram: %w", err)
	}

	return nil
}
