// Package diagnostics defines the document-coordinate diagnostic model and
// the remapping from raw checker output. The checker runs over a pseudo
// document whose prefix padding keeps line numbers identical to the original
// file, so remapping only shifts the index base and drops reports that fall
// on synthesized trailing lines.
package diagnostics

import (
	"strings"

	"github.com/fork-tongue/ruff-cgx/internal/ruff"
)

// Severity classifies a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Diagnostic is one reported issue, positioned in 0-indexed original
// document coordinates. Immutable once created.
type Diagnostic struct {
	Line      int
	Column    int
	EndLine   int
	EndColumn int
	Message   string
	Code      string
	Severity  Severity
	Source    string
}

// SeverityFor classifies a ruff rule code. Pycodestyle errors (E) and
// pyflakes correctness/undefined-reference codes (F) are errors; every other
// rule family defaults to warning.
func SeverityFor(code string) Severity {
	if strings.HasPrefix(code, "E") || strings.HasPrefix(code, "F") {
		return SeverityError
	}
	return SeverityWarning
}

// Remap converts raw 1-indexed checker diagnostics into 0-indexed document
// coordinates. Diagnostics at or beyond limit (the first synthesized line)
// are dropped entirely; pass limit <= 0 to keep everything.
func Remap(raw []ruff.RawDiagnostic, limit int) []Diagnostic {
	diags := make([]Diagnostic, 0, len(raw))
	for _, d := range raw {
		line := max(d.Location.Row-1, 0)
		if limit > 0 && line >= limit {
			continue
		}
		code := d.Code
		if code == "" {
			code = "unknown"
		}
		diags = append(diags, Diagnostic{
			Line:      line,
			Column:    max(d.Location.Column-1, 0),
			EndLine:   max(d.EndLocation.Row-1, 0),
			EndColumn: max(d.EndLocation.Column-1, 0),
			Message:   d.Message,
			Code:      code,
			Severity:  SeverityFor(code),
			Source:    "ruff",
		})
	}
	return diags
}

// Unavailable is the synthetic diagnostic for a missing ruff executable.
func Unavailable() Diagnostic {
	return synthetic("ruff-unavailable", "Ruff is not available. Please install it: uv tool install ruff")
}

// Timeout is the synthetic diagnostic for a checker call exceeding its bound.
func Timeout() Diagnostic {
	return synthetic("ruff-timeout", "Ruff timed out while linting")
}

// ParseFailure is the synthetic diagnostic for an unparseable document.
func ParseFailure(detail string) Diagnostic {
	msg := "Failed to parse CGX file"
	if detail != "" {
		msg += ": " + detail
	}
	return synthetic("parse-error", msg)
}

// ToolFailure is the synthetic diagnostic for any other checker failure.
func ToolFailure(detail string) Diagnostic {
	return synthetic("ruff-error", "Error running ruff: "+detail)
}

func synthetic(code, message string) Diagnostic {
	return Diagnostic{
		Message:  message,
		Code:     code,
		Severity: SeverityError,
		Source:   "ruff",
	}
}

// HasErrors reports whether any diagnostic has error severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
