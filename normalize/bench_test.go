// SPDX-License-Identifier: MIT

package normalize_test

import (
	"math/rand"
	"testing"

	"github.com/DaneseAnna/scanpy/dataset"
	"github.com/DaneseAnna/scanpy/matrix"
	"github.com/DaneseAnna/scanpy/normalize"
)

// benchDense builds a deterministic pseudo-count matrix (fixed seed).
func benchDense(b *testing.B, r, c int) *matrix.Dense {
	b.Helper()
	rng := rand.New(rand.NewSource(42))
	vals := make([]float64, r*c)
	for i := range vals {
		if rng.Float64() < 0.3 { // ~30% nonzero, count-like
			vals[i] = float64(rng.Intn(20) + 1)
		}
	}
	m, err := matrix.NewDenseData(r, c, vals)
	if err != nil {
		b.Fatalf("NewDenseData: %v", err)
	}

	return m
}

func BenchmarkNormalizeTotal_Dense(b *testing.B) {
	x := benchDense(b, 1000, 200)
	ds, err := dataset.New(x)
	if err != nil {
		b.Fatalf("dataset.New: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = normalize.NormalizeTotal(ds, normalize.WithCopy()); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkNormalizeQuantile_CSR(b *testing.B) {
	s, err := matrix.CSRFromDense(benchDense(b, 1000, 200))
	if err != nil {
		b.Fatalf("CSRFromDense: %v", err)
	}
	ds, err := dataset.New(s)
	if err != nil {
		b.Fatalf("dataset.New: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = normalize.NormalizeQuantile(ds, normalize.WithQuantile(0.9), normalize.WithCopy()); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkScaleRows_Dense(b *testing.B) {
	m := benchDense(b, 1000, 200)
	sums, err := m.RowSums(nil)
	if err != nil {
		b.Fatalf("RowSums: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err = normalize.ScaleRows(m, sums, nil, normalize.Explicit(100), true); err != nil {
			b.Fatal(err)
		}
	}
}
