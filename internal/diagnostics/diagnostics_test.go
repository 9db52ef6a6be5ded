package diagnostics_test

import (
	"testing"

	"github.com/fork-tongue/ruff-cgx/internal/diagnostics"
	"github.com/fork-tongue/ruff-cgx/internal/ruff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityFor(t *testing.T) {
	assert.Equal(t, diagnostics.SeverityError, diagnostics.SeverityFor("E501"))
	assert.Equal(t, diagnostics.SeverityError, diagnostics.SeverityFor("F821"))
	assert.Equal(t, diagnostics.SeverityWarning, diagnostics.SeverityFor("W291"))
	assert.Equal(t, diagnostics.SeverityWarning, diagnostics.SeverityFor("I001"))
	assert.Equal(t, diagnostics.SeverityWarning, diagnostics.SeverityFor(""))
}

func TestRemap(t *testing.T) {
	t.Run("positions shift to zero-indexed", func(t *testing.T) {
		raw := []ruff.RawDiagnostic{
			{
				Code:        "F821",
				Message:     "undefined name 'x'",
				Location:    ruff.RawPosition{Row: 6, Column: 1},
				EndLocation: ruff.RawPosition{Row: 6, Column: 2},
			},
		}
		diags := diagnostics.Remap(raw, 0)
		require.Len(t, diags, 1)

		d := diags[0]
		assert.Equal(t, 5, d.Line)
		assert.Equal(t, 0, d.Column)
		assert.Equal(t, 5, d.EndLine)
		assert.Equal(t, 1, d.EndColumn)
		assert.Equal(t, diagnostics.SeverityError, d.Severity)
		assert.Equal(t, "ruff", d.Source)
	})

	t.Run("diagnostics on synthesized lines are dropped", func(t *testing.T) {
		raw := []ruff.RawDiagnostic{
			{Code: "E501", Location: ruff.RawPosition{Row: 3, Column: 1}},
			{Code: "E501", Location: ruff.RawPosition{Row: 11, Column: 1}},
			{Code: "E501", Location: ruff.RawPosition{Row: 12, Column: 1}},
		}
		diags := diagnostics.Remap(raw, 10)
		require.Len(t, diags, 1)
		assert.Equal(t, 2, diags[0].Line)
	})

	t.Run("missing code becomes unknown", func(t *testing.T) {
		raw := []ruff.RawDiagnostic{
			{Message: "syntax error", Location: ruff.RawPosition{Row: 1, Column: 1}},
		}
		diags := diagnostics.Remap(raw, 0)
		require.Len(t, diags, 1)
		assert.Equal(t, "unknown", diags[0].Code)
	})

	t.Run("zero positions clamp instead of going negative", func(t *testing.T) {
		raw := []ruff.RawDiagnostic{{Code: "E999"}}
		diags := diagnostics.Remap(raw, 0)
		require.Len(t, diags, 1)
		assert.Equal(t, 0, diags[0].Line)
		assert.Equal(t, 0, diags[0].Column)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		assert.Empty(t, diagnostics.Remap(nil, 10))
	})
}

func TestSyntheticDiagnostics(t *testing.T) {
	tests := []struct {
		name string
		diag diagnostics.Diagnostic
		code string
	}{
		{"unavailable", diagnostics.Unavailable(), "ruff-unavailable"},
		{"timeout", diagnostics.Timeout(), "ruff-timeout"},
		{"parse failure", diagnostics.ParseFailure("bad input"), "parse-error"},
		{"tool failure", diagnostics.ToolFailure("exit 2"), "ruff-error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.diag.Code)
			assert.Equal(t, diagnostics.SeverityError, tt.diag.Severity)
			assert.Equal(t, 0, tt.diag.Line)
			assert.NotEmpty(t, tt.diag.Message)
		})
	}

	assert.Contains(t, diagnostics.ParseFailure("bad input").Message, "bad input")
}

func TestHasErrors(t *testing.T) {
	assert.False(t, diagnostics.HasErrors(nil))
	assert.False(t, diagnostics.HasErrors([]diagnostics.Diagnostic{{Severity: diagnostics.SeverityWarning}}))
	assert.True(t, diagnostics.HasErrors([]diagnostics.Diagnostic{
		{Severity: diagnostics.SeverityWarning},
		{Severity: diagnostics.SeverityError},
	}))
}
