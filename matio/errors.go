// SPDX-License-Identifier: MIT
// Package matio: sentinel error set. Matched with errors.Is; wrapped with
// line context at the parse site.

package matio

import "errors"

var (
	// ErrBadHeader signals a missing or unsupported MatrixMarket banner or
	// size line (only "matrix coordinate|array real/integer general" is read).
	ErrBadHeader = errors.New("matio: bad or unsupported header")

	// ErrBadEntry signals an unparsable value line: wrong field count,
	// non-numeric value, or a coordinate outside the declared shape.
	ErrBadEntry = errors.New("matio: bad entry")
)
