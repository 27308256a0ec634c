// SPDX-License-Identifier: MIT
// Package normalize — injected logging capability.
//
// Purpose:
//   - Progress messages are observational only; they never change behavior.
//   - The logger is passed explicitly via WithLogger: no package-level or
//     process-wide logging state. *log.Logger satisfies the interface.

package normalize

// Logger receives human-readable progress messages before/after the major
// normalization phases. Implementations must be safe to call with any
// Printf-style arguments; output formatting is theirs to decide.
type Logger interface {
	Printf(format string, v ...any)
}

// NopLogger discards all messages. It is the default when WithLogger is not
// supplied.
var NopLogger Logger = nopLogger{}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}
