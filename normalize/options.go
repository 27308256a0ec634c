// SPDX-License-Identifier: MIT

// Package normalize: functional configuration for the normalization entry
// points. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors,
//   - gatherOptions helper (internal) that applies defaults then options.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each option impacts behavior and is covered by tests.
//   - User-triggered range violations (quantile outside [0,1], unknown layer
//     policy) are NOT panics: they surface as sentinel errors from the entry
//     points before any matrix is touched, because they are runtime inputs
//     (CLI flags, config files), not programmer errors.

package normalize

// DEFAULTS - single source of truth for zero-value behavior.
const (
	// DefaultQuantile disables column filtering: every column contributes to
	// the row sums.
	DefaultQuantile = 1.0

	// DefaultMinCounts qualifies every row with at least one count. Rows
	// below the threshold are left unchanged and do not shape the median.
	DefaultMinCounts = 1.0

	// DefaultInPlace mutates the dataset's storage; WithCopy flips to
	// returning fresh matrices instead.
	DefaultInPlace = true
)

// LayerNorm selects how secondary layers derive their target total.
type LayerNorm int

const (
	// LayerNormOwn (default): each layer derives its own median target from
	// its own row sums, restricted to the rows qualifying by the layer's own
	// sums against the same minimum-count threshold.
	LayerNormOwn LayerNorm = iota

	// LayerNormAfter: every layer reuses the primary matrix's resolved
	// target total (the caller-supplied one, or the primary-derived median).
	LayerNormAfter

	// LayerNormX: every layer uses the median of the primary matrix's
	// qualifying row sums, even when the primary itself was rescaled to an
	// explicit target.
	LayerNormX
)

// Options carries the gathered configuration. Fields are unexported; public
// APIs consume ...Option.
type Options struct {
	target    TargetTotal
	quantile  float64
	minCounts float64
	countsKey string
	counts    []float64 // precomputed per-row sums (NormalizeTotal only)
	inPlace   bool
	layers    []string
	allLayers bool
	layerNorm LayerNorm
	logger    Logger
}

// Option mutates internal options. Safe to apply repeatedly (last write wins).
type Option func(*Options)

// WithTarget pins or derives the common post-normalization row total.
// Default: MedianOfQualifying().
func WithTarget(t TargetTotal) Option {
	return func(o *Options) { o.target = t }
}

// WithQuantile excludes columns that individually contribute more than
// fraction q of any row's total from the scaling-factor computation.
// q == 1 keeps every column. Range is validated by the entry points
// (ErrQuantileRange), not here.
func WithQuantile(q float64) Option {
	return func(o *Options) { o.quantile = q }
}

// WithMinCounts sets the qualifying-row threshold: rows whose sum is below
// min do not shape the median target and are left unchanged.
func WithMinCounts(min float64) Option {
	return func(o *Options) { o.minCounts = min }
}

// WithCountsKey records the pre-normalization row sums into the dataset's
// obs store under the given name (side effect; empty name disables it).
func WithCountsKey(name string) Option {
	return func(o *Options) { o.countsKey = name }
}

// WithCounts supplies precomputed per-row counts to NormalizeTotal, skipping
// the row-sum pass. Incompatible with quantile filtering
// (ErrCountsWithFilter). The slice is read, never mutated.
func WithCounts(counts []float64) Option {
	return func(o *Options) { o.counts = counts }
}

// WithCopy returns freshly allocated normalized matrices instead of mutating
// the dataset (Result maps "X" and each selected layer name to its copy).
func WithCopy() Option {
	return func(o *Options) { o.inPlace = false }
}

// WithLayers selects named layers to normalize alongside X.
func WithLayers(names ...string) Option {
	return func(o *Options) { o.layers = append(o.layers, names...) }
}

// WithAllLayers selects every layer of the dataset (deterministic,
// lexicographic order).
func WithAllLayers() Option {
	return func(o *Options) { o.allLayers = true }
}

// WithLayerNorm selects the layer target-total policy. Unknown values are
// rejected by the entry points with ErrLayerPolicy.
func WithLayerNorm(policy LayerNorm) Option {
	return func(o *Options) { o.layerNorm = policy }
}

// WithLogger injects the progress logger. Default: NopLogger.
func WithLogger(l Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

// gatherOptions applies documented defaults, then user options, in order.
func gatherOptions(opts ...Option) Options {
	o := Options{
		target:    MedianOfQualifying(),
		quantile:  DefaultQuantile,
		minCounts: DefaultMinCounts,
		inPlace:   DefaultInPlace,
		layerNorm: LayerNormOwn,
		logger:    NopLogger,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
