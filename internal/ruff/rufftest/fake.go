// Package rufftest provides a scripted stand-in for the external ruff
// executable so pipeline behavior can be tested without a child process.
package rufftest

import (
	"context"
	"sync"

	"github.com/fork-tongue/ruff-cgx/internal/ruff"
)

// Fake implements ruff.Runner with scripted responses. The zero value echoes
// sources back unchanged and reports no diagnostics.
type Fake struct {
	// Formats maps exact input source to formatted output. Inputs not in
	// the map come back unchanged.
	Formats map[string]string

	// FormatFunc, when set, overrides Formats entirely.
	FormatFunc func(source string, opts ruff.FormatOptions) (string, error)

	// CheckFunc, when set, scripts check results.
	CheckFunc func(source string, opts ruff.CheckOptions) (ruff.CheckResult, error)

	// AvailableErr is returned from Available (nil means available).
	AvailableErr error

	mu           sync.Mutex
	formatCalls  []string
	checkCalls   []string
	formatOption []ruff.FormatOptions
}

var _ ruff.Runner = (*Fake)(nil)

// Format implements ruff.Runner.
func (f *Fake) Format(_ context.Context, source string, opts ruff.FormatOptions) (string, error) {
	f.mu.Lock()
	f.formatCalls = append(f.formatCalls, source)
	f.formatOption = append(f.formatOption, opts)
	f.mu.Unlock()

	if f.FormatFunc != nil {
		return f.FormatFunc(source, opts)
	}
	if out, ok := f.Formats[source]; ok {
		return out, nil
	}
	return source, nil
}

// Check implements ruff.Runner.
func (f *Fake) Check(_ context.Context, source string, opts ruff.CheckOptions) (ruff.CheckResult, error) {
	f.mu.Lock()
	f.checkCalls = append(f.checkCalls, source)
	f.mu.Unlock()

	if f.CheckFunc != nil {
		return f.CheckFunc(source, opts)
	}
	return ruff.CheckResult{}, nil
}

// Available implements ruff.Runner.
func (f *Fake) Available(context.Context) error {
	return f.AvailableErr
}

// FormatCalls returns the sources passed to Format, in order.
func (f *Fake) FormatCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.formatCalls...)
}

// FormatOptionsSeen returns the options passed to Format, in call order.
func (f *Fake) FormatOptionsSeen() []ruff.FormatOptions {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ruff.FormatOptions(nil), f.formatOption...)
}

// CheckCalls returns the sources passed to Check, in order.
func (f *Fake) CheckCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.checkCalls...)
}
