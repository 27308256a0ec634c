// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the CLI defaults loadable from a YAML file.
//
// Precedence (highest to lowest):
//  1. Command-line flags (--quantile, --target, ...)
//  2. Config file (--config normalize.yaml)
//  3. Built-in defaults
//
// Example file:
//
//	quantile: 0.95
//	target: 10000
//	min_counts: 1
//	bins: 50
type Config struct {
	// Quantile is the dominant-gene filter; 1 disables filtering.
	Quantile float64 `yaml:"quantile"`
	// Target is the post-normalization total per cell; 0 derives the median
	// of the qualifying cells' totals.
	Target float64 `yaml:"target"`
	// MinCounts is the qualifying-cell threshold.
	MinCounts float64 `yaml:"min_counts"`
	// Bins is the histogram bin count for plot-counts.
	Bins int `yaml:"bins"`
}

// DefaultConfig mirrors the library defaults.
func DefaultConfig() Config {
	return Config{
		Quantile:  1,
		Target:    0,
		MinCounts: 1,
		Bins:      50,
	}
}

// LoadConfig reads a YAML config file over the built-in defaults.
// Unknown keys are rejected so typos surface instead of silently applying
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err = dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}
