package cgx_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fork-tongue/ruff-cgx/internal/diagnostics"
	"github.com/fork-tongue/ruff-cgx/internal/ruff"
	"github.com/fork-tongue/ruff-cgx/internal/ruff/rufftest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLintContent(t *testing.T) {
	ctx := context.Background()

	t.Run("pseudo document preserves line numbers", func(t *testing.T) {
		// rows: 0-2 template, 3 blank, 4 open tag, 5 code, 6 close tag
		content := "<template>\n  <item />\n</template>\n\n<script>\nimport os\n</script>\n"

		var seen string
		fake := &rufftest.Fake{CheckFunc: func(source string, opts ruff.CheckOptions) (ruff.CheckResult, error) {
			seen = source
			return ruff.CheckResult{Diagnostics: []ruff.RawDiagnostic{{
				Code:        "F401",
				Message:     "`os` imported but unused",
				Location:    ruff.RawPosition{Row: 6, Column: 8},
				EndLocation: ruff.RawPosition{Row: 6, Column: 10},
			}}}, nil
		}}

		diags := newTool(fake).LintContent(ctx, content)
		require.Len(t, diags, 1)
		assert.Equal(t, 5, diags[0].Line)
		assert.Equal(t, 7, diags[0].Column)
		assert.Equal(t, "F401", diags[0].Code)
		assert.Equal(t, diagnostics.SeverityError, diags[0].Severity)

		// five suppressed filler lines stand in for everything before the code
		lines := strings.Split(seen, "\n")
		for i := range 5 {
			assert.Equal(t, "# noqa", lines[i])
		}
		assert.Equal(t, "import os", lines[5])
	})

	t.Run("virtual render subclass keeps template names used", func(t *testing.T) {
		content := "<template>\n  <item :value=\"count\" />\n</template>\n\n<script>\nclass Comp:\n    count = 1\n</script>\n"

		var seen string
		fake := &rufftest.Fake{CheckFunc: func(source string, opts ruff.CheckOptions) (ruff.CheckResult, error) {
			seen = source
			return ruff.CheckResult{}, nil
		}}

		diags := newTool(fake).LintContent(ctx, content)
		assert.Empty(t, diags)
		assert.Contains(t, seen, "class VirtualComp(Comp):  # noqa\n")
		assert.Contains(t, seen, "'value': (count)")
	})

	t.Run("diagnostics on synthesized lines never surface", func(t *testing.T) {
		content := "<item :v=\"x\" />\n<script>\nclass C:\n    pass\n</script>\n"
		// code occupies rows 2-3, so anything from row 4 on is synthesized
		fake := &rufftest.Fake{CheckFunc: func(source string, opts ruff.CheckOptions) (ruff.CheckResult, error) {
			return ruff.CheckResult{Diagnostics: []ruff.RawDiagnostic{
				{Code: "E501", Location: ruff.RawPosition{Row: 5, Column: 1}},
			}}, nil
		}}
		assert.Empty(t, newTool(fake).LintContent(ctx, content))
	})

	t.Run("inline markers are stripped from the pseudo document", func(t *testing.T) {
		var seen string
		fake := &rufftest.Fake{CheckFunc: func(source string, opts ruff.CheckOptions) (ruff.CheckResult, error) {
			seen = source
			return ruff.CheckResult{}, nil
		}}
		newTool(fake).LintContent(ctx, "<script>x = 1</script>\n")
		assert.Equal(t, "x = 1\n", seen)
	})

	t.Run("no script region means nothing to lint", func(t *testing.T) {
		fake := &rufftest.Fake{}
		assert.Empty(t, newTool(fake).LintContent(ctx, "<template>\n  <item />\n</template>\n"))
		assert.Empty(t, fake.CheckCalls())
	})

	t.Run("unavailable checker yields one synthetic error", func(t *testing.T) {
		fake := &rufftest.Fake{AvailableErr: ruff.ErrUnavailable}
		diags := newTool(fake).LintContent(ctx, "<script>\nx = 1\n</script>\n")
		require.Len(t, diags, 1)
		assert.Equal(t, "ruff-unavailable", diags[0].Code)
		assert.Equal(t, diagnostics.SeverityError, diags[0].Severity)
	})

	t.Run("checker timeout yields one synthetic error", func(t *testing.T) {
		fake := &rufftest.Fake{CheckFunc: func(string, ruff.CheckOptions) (ruff.CheckResult, error) {
			return ruff.CheckResult{}, ruff.ErrTimeout
		}}
		diags := newTool(fake).LintContent(ctx, "<script>\nx = 1\n</script>\n")
		require.Len(t, diags, 1)
		assert.Equal(t, "ruff-timeout", diags[0].Code)
	})

	t.Run("other checker failures yield a tool error", func(t *testing.T) {
		fake := &rufftest.Fake{CheckFunc: func(string, ruff.CheckOptions) (ruff.CheckResult, error) {
			return ruff.CheckResult{}, errors.New("exit 2: panicked")
		}}
		diags := newTool(fake).LintContent(ctx, "<script>\nx = 1\n</script>\n")
		require.Len(t, diags, 1)
		assert.Equal(t, "ruff-error", diags[0].Code)
		assert.Contains(t, diags[0].Message, "exit 2: panicked")
	})
}

func TestLintFile(t *testing.T) {
	ctx := context.Background()

	t.Run("reports diagnostics without touching the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "comp.cgx")
		content := "<script>\nimport os\n</script>\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		fake := &rufftest.Fake{CheckFunc: func(string, ruff.CheckOptions) (ruff.CheckResult, error) {
			return ruff.CheckResult{Diagnostics: []ruff.RawDiagnostic{
				{Code: "F401", Location: ruff.RawPosition{Row: 2, Column: 8}},
			}}, nil
		}}

		diags, changed, err := newTool(fake).LintFile(ctx, path, false)
		require.NoError(t, err)
		assert.False(t, changed)
		require.Len(t, diags, 1)
		assert.Equal(t, 1, diags[0].Line)

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, content, string(raw))
	})

	t.Run("fix mode writes the repaired script back", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "comp.cgx")
		require.NoError(t, os.WriteFile(path, []byte("<script>\nimport os\nx = 1\n</script>\n"), 0o644))

		fake := &rufftest.Fake{CheckFunc: func(source string, opts ruff.CheckOptions) (ruff.CheckResult, error) {
			require.True(t, opts.Fix)
			// the unused import line is removed from the pseudo document
			return ruff.CheckResult{Fixed: strings.Replace(source, "import os\n", "", 1)}, nil
		}}

		_, changed, err := newTool(fake).LintFile(ctx, path, true)
		require.NoError(t, err)
		assert.True(t, changed)

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "<script>\nx = 1\n</script>\n", string(raw))
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, _, err := newTool(&rufftest.Fake{}).LintFile(ctx, filepath.Join(t.TempDir(), "missing.cgx"), false)
		assert.Error(t, err)
	})
}
