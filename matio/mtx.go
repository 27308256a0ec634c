// SPDX-License-Identifier: MIT
// Package matio — MatrixMarket exchange format.
//
// Supported banner subset (case-insensitive, per the NIST format spec):
//
//	%%MatrixMarket matrix coordinate real|integer general  → matrix.CSR
//	%%MatrixMarket matrix array      real|integer general  → matrix.Dense
//
// Coordinate entries are 1-based and may arrive in any order; they are
// sorted into canonical CSR here. Array values are column-major, as the
// format requires.

package matio

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/DaneseAnna/scanpy/matrix"
)

type mtxEntry struct {
	row, col int
	val      float64
}

// ReadMTX parses a MatrixMarket file. Coordinate files come back as *CSR,
// array files as *Dense (both as the Matrix interface).
// Errors: ErrBadHeader, ErrBadEntry (wrapped with the line number).
func ReadMTX(r io.Reader) (matrix.Matrix, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	// Stage 1 (Banner).
	if !sc.Scan() {
		return nil, fmt.Errorf("matio.ReadMTX: empty input: %w", ErrBadHeader)
	}
	banner := strings.Fields(strings.ToLower(sc.Text()))
	if len(banner) != 5 || banner[0] != "%%matrixmarket" || banner[1] != "matrix" ||
		(banner[2] != "coordinate" && banner[2] != "array") ||
		(banner[3] != "real" && banner[3] != "integer") ||
		banner[4] != "general" {
		return nil, fmt.Errorf("matio.ReadMTX: banner %q: %w", sc.Text(), ErrBadHeader)
	}
	coordinate := banner[2] == "coordinate"

	// Stage 2 (Size line, skipping % comments).
	line, lineNo, err := nextDataLine(sc, 1)
	if err != nil {
		return nil, err
	}
	size := strings.Fields(line)
	wantSizeFields := 2
	if coordinate {
		wantSizeFields = 3
	}
	if len(size) != wantSizeFields {
		return nil, fmt.Errorf("matio.ReadMTX: line %d: size line %q: %w", lineNo, line, ErrBadHeader)
	}
	dims := make([]int, len(size))
	for i, f := range size {
		if dims[i], err = strconv.Atoi(f); err != nil || dims[i] < 0 {
			return nil, fmt.Errorf("matio.ReadMTX: line %d: size %q: %w", lineNo, f, ErrBadHeader)
		}
	}

	if coordinate {
		return readCoordinate(sc, dims[0], dims[1], dims[2], lineNo)
	}

	return readArray(sc, dims[0], dims[1], lineNo)
}

// nextDataLine advances past blank and comment lines.
func nextDataLine(sc *bufio.Scanner, lineNo int) (string, int, error) {
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		return line, lineNo, nil
	}

	return "", lineNo, fmt.Errorf("matio.ReadMTX: unexpected end of input: %w", ErrBadHeader)
}

// readCoordinate collects 1-based triplets and builds canonical CSR.
func readCoordinate(sc *bufio.Scanner, rows, cols, nnz, lineNo int) (*matrix.CSR, error) {
	entries := make([]mtxEntry, 0, nnz)
	for len(entries) < nnz {
		line, no, err := nextDataLine(sc, lineNo)
		if err != nil {
			return nil, err
		}
		lineNo = no
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("matio.ReadMTX: line %d: %q: %w", lineNo, line, ErrBadEntry)
		}
		i, err1 := strconv.Atoi(fields[0])
		j, err2 := strconv.Atoi(fields[1])
		v, err3 := strconv.ParseFloat(fields[2], 64)
		if err1 != nil || err2 != nil || err3 != nil ||
			i < 1 || i > rows || j < 1 || j > cols {
			return nil, fmt.Errorf("matio.ReadMTX: line %d: %q: %w", lineNo, line, ErrBadEntry)
		}
		entries = append(entries, mtxEntry{row: i - 1, col: j - 1, val: v})
	}

	// Canonicalize: row-major, columns ascending within a row.
	sort.Slice(entries, func(a, b int) bool {
		if entries[a].row != entries[b].row {
			return entries[a].row < entries[b].row
		}
		return entries[a].col < entries[b].col
	})

	rowPtr := make([]int, rows+1)
	colIdx := make([]int, len(entries))
	values := make([]float64, len(entries))
	for k, e := range entries {
		rowPtr[e.row+1]++
		colIdx[k] = e.col
		values[k] = e.val
	}
	for i := 0; i < rows; i++ {
		rowPtr[i+1] += rowPtr[i]
	}

	m, err := matrix.NewCSR(rows, cols, rowPtr, colIdx, values)
	if err != nil {
		return nil, fmt.Errorf("matio.ReadMTX: %w", err)
	}

	return m, nil
}

// readArray reads column-major dense values.
func readArray(sc *bufio.Scanner, rows, cols, lineNo int) (*matrix.Dense, error) {
	m, err := matrix.NewDense(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("matio.ReadMTX: %w", err)
	}
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			line, no, lerr := nextDataLine(sc, lineNo)
			if lerr != nil {
				return nil, lerr
			}
			lineNo = no
			v, perr := strconv.ParseFloat(line, 64)
			if perr != nil {
				return nil, fmt.Errorf("matio.ReadMTX: line %d: %q: %w", lineNo, line, ErrBadEntry)
			}
			if err = m.Set(i, j, v); err != nil {
				return nil, fmt.Errorf("matio.ReadMTX: %w", err)
			}
		}
	}

	return m, nil
}

// WriteMTX writes m as MatrixMarket: CSR becomes a coordinate file (stored
// entries only, row-major order), everything else an array file
// (column-major, per the format definition).
func WriteMTX(w io.Writer, m matrix.Matrix) error {
	if err := matrix.ValidateNotNil(m); err != nil {
		return fmt.Errorf("matio.WriteMTX: %w", err)
	}
	bw := bufio.NewWriter(w)

	if s, ok := m.(*matrix.CSR); ok {
		fmt.Fprintln(bw, "%%MatrixMarket matrix coordinate real general")
		fmt.Fprintf(bw, "%d %d %d\n", s.Rows(), s.Cols(), s.NNZ())
		s.Do(func(i, j int, v float64) bool {
			fmt.Fprintf(bw, "%d %d %s\n", i+1, j+1, strconv.FormatFloat(v, 'g', -1, 64))
			return true
		})
		return bw.Flush()
	}

	fmt.Fprintln(bw, "%%MatrixMarket matrix array real general")
	fmt.Fprintf(bw, "%d %d\n", m.Rows(), m.Cols())
	for j := 0; j < m.Cols(); j++ {
		for i := 0; i < m.Rows(); i++ {
			v, err := m.At(i, j)
			if err != nil {
				return fmt.Errorf("matio.WriteMTX: %w", err)
			}
			fmt.Fprintln(bw, strconv.FormatFloat(v, 'g', -1, 64))
		}
	}

	return bw.Flush()
}
