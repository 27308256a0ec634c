// SPDX-License-Identifier: MIT
// Re-export of private helpers for white-box property tests.

package normalize

// DominantColumnSubset exposes the quantile column filter to tests.
var DominantColumnSubset = dominantColumnSubset
