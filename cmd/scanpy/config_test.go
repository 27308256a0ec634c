// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "quantile: 0.95\ntarget: 10000\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, 0.95, cfg.Quantile)
	require.Equal(t, 10000.0, cfg.Target)
	// Untouched keys keep their defaults.
	require.Equal(t, DefaultConfig().MinCounts, cfg.MinCounts)
	require.Equal(t, DefaultConfig().Bins, cfg.Bins)
}

func TestLoadConfig_RejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "quantile: 0.9\nquantiel: 0.5\n")
	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		format, path, want string
		wantErr            bool
	}{
		"explicit csv": {"csv", "whatever.bin", "csv", false},
		"explicit mtx": {"mtx", "whatever.bin", "mtx", false},
		"auto csv":     {"auto", "counts.CSV", "csv", false},
		"auto mtx":     {"auto", "counts.mtx", "mtx", false},
		"auto unknown": {"auto", "counts.bin", "", true},
		"bad format":   {"tsv", "counts.csv", "", true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := detectFormat(tc.format, tc.path)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}
