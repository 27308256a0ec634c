// SPDX-License-Identifier: MIT

// Package main provides the scanpy CLI entry point: total-count
// normalization of matrix files and quick QC plots, without writing Go.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DaneseAnna/scanpy/dataset"
	"github.com/DaneseAnna/scanpy/matio"
	"github.com/DaneseAnna/scanpy/matrix"
	"github.com/DaneseAnna/scanpy/normalize"
	"github.com/DaneseAnna/scanpy/qcplot"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "scanpy",
		Short: "scanpy - preprocessing for single-cell count matrices",
		Long: `scanpy normalizes per-cell count matrices so every cell carries a
comparable total signal, optionally excluding dominant genes from the
scaling factor (quantile filter), and renders quick QC plots.

Supported matrix formats: headerless CSV (dense) and MatrixMarket
coordinate/array (.mtx).`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("scanpy v%s\n", version)
		},
	})

	normalizeCmd := &cobra.Command{
		Use:   "normalize [matrix file]",
		Short: "Normalize total counts per cell",
		Long: `Normalize each cell (row) by its total count so that every qualifying
cell ends up with the same total. With --quantile below 1, genes that
make up more than that fraction of any single cell's total are excluded
from the scaling-factor computation.`,
		Args: cobra.ExactArgs(1),
		RunE: runNormalize,
	}
	normalizeCmd.Flags().StringP("out", "o", "-", "Output file (\"-\" for stdout)")
	normalizeCmd.Flags().String("format", "auto", "Matrix format: csv, mtx or auto (by extension)")
	normalizeCmd.Flags().Float64("quantile", 1, "Dominant-gene filter quantile in [0,1]; 1 disables filtering")
	normalizeCmd.Flags().Float64("target", 0, "Post-normalization total per cell; 0 derives the median")
	normalizeCmd.Flags().Float64("min-counts", 1, "Cells with fewer counts are left unchanged")
	normalizeCmd.Flags().String("counts-key", "n_counts", "Metadata column name for pre-normalization counts")
	normalizeCmd.Flags().String("counts-out", "", "Write pre-normalization counts per cell to this file (one per line)")
	normalizeCmd.Flags().String("config", "", "YAML config file (flags take precedence)")
	normalizeCmd.Flags().BoolP("verbose", "v", false, "Log progress to stderr")
	rootCmd.AddCommand(normalizeCmd)

	plotCmd := &cobra.Command{
		Use:   "plot-counts [matrix file]",
		Short: "Plot the distribution of counts per cell",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlotCounts,
	}
	plotCmd.Flags().StringP("out", "o", "counts.png", "Output image (format by extension)")
	plotCmd.Flags().Int("bins", 50, "Histogram bin count")
	plotCmd.Flags().String("format", "auto", "Matrix format: csv, mtx or auto (by extension)")
	plotCmd.Flags().String("config", "", "YAML config file (flags take precedence)")
	rootCmd.AddCommand(plotCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig merges file config (if any) under changed flags.
func loadConfig(cmd *cobra.Command) (Config, error) {
	cfg := DefaultConfig()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		if cfg, err = LoadConfig(path); err != nil {
			return cfg, err
		}
	}
	// Flags changed on the command line win over the file.
	if cmd.Flags().Changed("quantile") {
		cfg.Quantile, _ = cmd.Flags().GetFloat64("quantile")
	}
	if cmd.Flags().Changed("target") {
		cfg.Target, _ = cmd.Flags().GetFloat64("target")
	}
	if cmd.Flags().Changed("min-counts") {
		cfg.MinCounts, _ = cmd.Flags().GetFloat64("min-counts")
	}
	if cmd.Flags().Changed("bins") {
		cfg.Bins, _ = cmd.Flags().GetInt("bins")
	}

	return cfg, nil
}

// detectFormat resolves "auto" from the file extension.
func detectFormat(format, path string) (string, error) {
	if format != "auto" {
		if format != "csv" && format != "mtx" {
			return "", fmt.Errorf("unknown format %q (want csv or mtx)", format)
		}
		return format, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "csv", nil
	case ".mtx":
		return "mtx", nil
	default:
		return "", fmt.Errorf("cannot detect format of %q; pass --format", path)
	}
}

func readMatrix(path, format string) (matrix.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if format == "csv" {
		return matio.ReadCSVDense(f)
	}

	return matio.ReadMTX(f)
}

func writeMatrix(path, format string, m matrix.Matrix) error {
	var w io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if format == "csv" {
		return matio.WriteCSV(w, m)
	}

	return matio.WriteMTX(w, m)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	in := args[0]
	format, _ := cmd.Flags().GetString("format")
	if format, err = detectFormat(format, in); err != nil {
		return err
	}

	m, err := readMatrix(in, format)
	if err != nil {
		return err
	}
	ds, err := dataset.New(m)
	if err != nil {
		return err
	}

	countsKey, _ := cmd.Flags().GetString("counts-key")
	opts := []normalize.Option{
		normalize.WithQuantile(cfg.Quantile),
		normalize.WithMinCounts(cfg.MinCounts),
		normalize.WithCountsKey(countsKey),
	}
	if cfg.Target > 0 {
		opts = append(opts, normalize.WithTarget(normalize.Explicit(cfg.Target)))
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		opts = append(opts, normalize.WithLogger(log.New(os.Stderr, "", 0)))
	}

	if _, err = normalize.NormalizeQuantile(ds, opts...); err != nil {
		return err
	}

	if countsOut, _ := cmd.Flags().GetString("counts-out"); countsOut != "" {
		counts, ok := ds.Obs(countsKey)
		if !ok {
			return fmt.Errorf("--counts-out requires a non-empty --counts-key")
		}
		if err = writeCounts(countsOut, counts); err != nil {
			return err
		}
	}

	out, _ := cmd.Flags().GetString("out")
	return writeMatrix(out, format, ds.X())
}

func runPlotCounts(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	in := args[0]
	format, _ := cmd.Flags().GetString("format")
	if format, err = detectFormat(format, in); err != nil {
		return err
	}

	m, err := readMatrix(in, format)
	if err != nil {
		return err
	}
	ro, ok := m.(matrix.RowOps)
	if !ok {
		return fmt.Errorf("matrix type %T does not support row sums", m)
	}
	counts, err := ro.RowSums(nil)
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	return qcplot.CountsHistogram(counts, cfg.Bins, "counts per cell", out)
}

// writeCounts dumps one count per line.
func writeCounts(path string, counts []float64) error {
	var sb strings.Builder
	for _, c := range counts {
		sb.WriteString(strconv.FormatFloat(c, 'g', -1, 64))
		sb.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(sb.String()), 0o644)
}
