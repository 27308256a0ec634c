// Package matio reads and writes the matrix file formats the CLI speaks:
//
//   - headerless CSV grids of floats (dense), via encoding/csv;
//   - MatrixMarket files: "coordinate real general" maps to matrix.CSR and
//     "array real general" (column-major, per the format spec) to
//     matrix.Dense.
//
// Parsing is strict: a malformed header fails with ErrBadHeader and a
// malformed value or coordinate with ErrBadEntry, both wrapped with the
// offending line number.
package matio
