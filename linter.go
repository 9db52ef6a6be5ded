package cgx

import (
	"context"
	"errors"
	"os"
	"slices"
	"strings"

	"github.com/fork-tongue/ruff-cgx/internal/diagnostics"
	"github.com/fork-tongue/ruff-cgx/internal/document"
	"github.com/fork-tongue/ruff-cgx/internal/log"
	"github.com/fork-tongue/ruff-cgx/internal/markup"
	"github.com/fork-tongue/ruff-cgx/internal/regions"
	"github.com/fork-tongue/ruff-cgx/internal/ruff"
	"github.com/fork-tongue/ruff-cgx/internal/synth"
)

// LintContent lints CGX content and returns diagnostics in 0-indexed
// original-document coordinates. This entry point never fails: an
// unavailable checker or unparseable document yields a single synthetic
// error diagnostic.
func (t *Tool) LintContent(ctx context.Context, content string) []diagnostics.Diagnostic {
	diags, _, _ := t.lintDocument(ctx, content, false)
	return diags
}

// LintFile lints the file at path. With fix set, ruff's safe autofixes are
// applied to the script region and written back; the returned bool reports
// whether the file was rewritten.
func (t *Tool) LintFile(ctx context.Context, path string, fix bool) ([]diagnostics.Diagnostic, bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	content := string(raw)

	diags, fixed, err := t.lintDocument(ctx, content, fix)
	if err != nil {
		return diags, false, err
	}
	if fix && fixed != "" && fixed != content {
		if err := os.WriteFile(path, []byte(fixed), 0o644); err != nil {
			return diags, false, err
		}
		return diags, true, nil
	}
	return diags, false, nil
}

// lintDocument runs the lint pipeline: parse, extract the script region,
// synthesize the pseudo document, check, remap. The pseudo document pads
// every line preceding the code with suppressed placeholders so the checker
// reports code lines at their original numbers, and appends the virtual
// render subclass so names referenced only from markup count as used.
func (t *Tool) lintDocument(ctx context.Context, content string, fix bool) ([]diagnostics.Diagnostic, string, error) {
	if err := t.runner.Available(ctx); err != nil {
		return []diagnostics.Diagnostic{diagnostics.Unavailable()}, "", nil
	}

	tree, err := markup.Parse(content)
	if err != nil {
		return []diagnostics.Diagnostic{diagnostics.ParseFailure(err.Error())}, "", nil
	}

	loc := regions.Locate(tree)
	if loc.Script == nil {
		// no script region: nothing to lint
		return nil, "", nil
	}
	sc, ok := regions.ExtractScript(loc.Script)
	if !ok {
		return nil, "", nil
	}

	doc := document.New(content)
	code := scriptLines(doc, sc)
	start, _ := sc.ContentSpan()
	limit := start + len(code)

	pseudo := make([]string, 0, limit+4)
	for range start {
		pseudo = append(pseudo, "# noqa\n")
	}
	pseudo = append(pseudo, code...)

	synthLines, synthesized := synth.Synthesize(tree, strings.Join(code, ""))
	if synthesized {
		pseudo = append(pseudo, synthLines...)
	}

	result, err := t.runner.Check(ctx, strings.Join(pseudo, ""), ruff.CheckOptions{Fix: fix})
	switch {
	case errors.Is(err, ruff.ErrUnavailable):
		return []diagnostics.Diagnostic{diagnostics.Unavailable()}, "", nil
	case errors.Is(err, ruff.ErrTimeout):
		return []diagnostics.Diagnostic{diagnostics.Timeout()}, "", nil
	case err != nil:
		return []diagnostics.Diagnostic{diagnostics.ToolFailure(err.Error())}, "", nil
	}

	diags := diagnostics.Remap(result.Diagnostics, limit)

	var fixed string
	if fix && result.Fixed != "" {
		fixed, err = t.applyFixed(doc, loc.Script, sc, result.Fixed, start, synthLines)
		if err != nil {
			log.Warn("could not splice fixed code back: %v", err)
			fixed = ""
		}
	}
	return diags, fixed, nil
}

// scriptLines returns the code region's source lines with any inline
// markers stripped, preserving original line numbering.
func scriptLines(doc *document.Document, sc regions.ScriptContent) []string {
	start, end := sc.ContentSpan()
	lines := doc.Slice(start, end)
	for i, line := range lines {
		if !strings.HasSuffix(line, "\n") {
			lines[i] = line + "\n"
		}
	}
	if len(lines) == 0 {
		return lines
	}
	if sc.InlineOpen && sc.StartColumn <= len(lines[0]) {
		lines[0] = lines[0][sc.StartColumn:]
	}
	if sc.InlineClose {
		end := sc.EndColumn
		if sc.InlineOpen && len(lines) == 1 {
			// open and close markers share the line; the open marker is
			// already stripped
			end -= sc.StartColumn
		}
		last := lines[len(lines)-1]
		if end >= 0 && end <= len(last) {
			lines[len(lines)-1] = strings.TrimRight(last[:end], " \t") + "\n"
		}
	}
	return lines
}

// applyFixed extracts the code region out of the fixed pseudo document and
// splices it back over the original span.
func (t *Tool) applyFixed(doc *document.Document, node *markup.Node, sc regions.ScriptContent, fixedPseudo string, start int, synthLines []string) (string, error) {
	lines := document.SplitLines(fixedPseudo)
	if len(lines) < start {
		return "", errors.New("fixed output shorter than prefix padding")
	}
	body := lines[start:]
	if len(synthLines) > 0 {
		if idx := slices.Index(body, synthLines[0]); idx >= 0 {
			body = body[:idx]
		}
	}
	rep := scriptReplacement(node, sc, body)
	return document.Reassemble(doc, []document.Replacement{rep})
}
