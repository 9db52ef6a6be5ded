// Package ruff is the boundary to the external ruff executable. Ruff is a
// black-box collaborator: it receives a text blob through a scoped temporary
// workspace and hands back formatted text or structured diagnostics. Nothing
// in this package inspects Python semantics.
package ruff

import (
	"context"
	"errors"
)

// FormatOptions configures a single format invocation.
type FormatOptions struct {
	// SingleQuotes makes ruff prefer single-quoted string literals. Used for
	// expressions embedded in double-quoted markup attributes.
	SingleQuotes bool

	// LineLength overrides ruff's line width. Zero keeps the tool default.
	LineLength int
}

// CheckOptions configures a single check invocation.
type CheckOptions struct {
	// Fix asks ruff to apply safe autofixes and return the rewritten source.
	Fix bool
}

// RawPosition is a 1-indexed position as reported by ruff.
type RawPosition struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// RawDiagnostic mirrors one entry of ruff's JSON diagnostic output.
type RawDiagnostic struct {
	Code        string      `json:"code"`
	Message     string      `json:"message"`
	Location    RawPosition `json:"location"`
	EndLocation RawPosition `json:"end_location"`
}

// CheckResult is the outcome of a check invocation.
type CheckResult struct {
	Diagnostics []RawDiagnostic

	// Fixed holds the rewritten source when CheckOptions.Fix was set.
	Fixed string
}

// Sentinel errors for the two hard failure modes of the tool boundary.
var (
	ErrUnavailable = errors.New("ruff executable not found")
	ErrTimeout     = errors.New("ruff timed out")
)

// Runner abstracts the external formatter/checker. The command-line
// implementation is CommandRunner; tests substitute fakes.
type Runner interface {
	// Format formats Python source. A source that ruff cannot format (for
	// example one with syntax errors) is returned unchanged without error.
	Format(ctx context.Context, source string, opts FormatOptions) (string, error)

	// Check lints Python source and returns raw diagnostics in 1-indexed
	// tool coordinates.
	Check(ctx context.Context, source string, opts CheckOptions) (CheckResult, error)

	// Available probes whether the tool can be invoked at all.
	Available(ctx context.Context) error
}
