// SPDX-License-Identifier: MIT
// Package normalize — target-total resolution.
//
// Purpose:
//   - Replace the "nil means derive the median" sentinel with an explicit
//     tagged option, so no call site branches on magic values.
//   - Keep the median computation in one place (vek.Median over a gathered
//     scratch slice).

package normalize

import "github.com/viterin/vek"

// TargetTotal selects the common post-normalization row total.
// The zero value derives the median of the qualifying rows' sums, which is
// the classic default; Explicit pins a caller-chosen value.
type TargetTotal struct {
	value    float64
	explicit bool
}

// Explicit returns a TargetTotal pinned to v.
// Every qualifying row is rescaled so its (filtered) total equals v.
func Explicit(v float64) TargetTotal {
	return TargetTotal{value: v, explicit: true}
}

// MedianOfQualifying returns the derive-the-median target (the zero value,
// spelled out for readability at call sites).
func MedianOfQualifying() TargetTotal {
	return TargetTotal{}
}

// IsExplicit reports whether the target carries a pinned value.
func (t TargetTotal) IsExplicit() bool { return t.explicit }

// resolve turns the tagged option into a concrete total.
// Stage 1: explicit targets pass through untouched.
// Stage 2: gather the sums of qualifying rows (all rows when mask is nil)
// into a scratch slice and take their median.
// Errors: ErrNoQualifyingRows when the gathered set is empty.
// Complexity: O(r) gather + O(r log r) median.
func (t TargetTotal) resolve(sums []float64, qualifying []bool) (float64, error) {
	if t.explicit {
		return t.value, nil
	}

	// Gather qualifying sums; vek.Median needs a materialized slice and the
	// scratch copy also shields the caller's vector from reordering.
	scratch := make([]float64, 0, len(sums))
	for i, s := range sums {
		if qualifying == nil || qualifying[i] {
			scratch = append(scratch, s)
		}
	}
	if len(scratch) == 0 {
		return 0, ErrNoQualifyingRows
	}

	return vek.Median(scratch), nil
}
