package cgx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fork-tongue/ruff-cgx/internal/document"
	"github.com/fork-tongue/ruff-cgx/internal/log"
	"github.com/fork-tongue/ruff-cgx/internal/markup"
	"github.com/fork-tongue/ruff-cgx/internal/regions"
	"github.com/fork-tongue/ruff-cgx/internal/ruff"
)

// FormatContent formats CGX content and returns the result. This entry
// point never fails: a document that cannot be parsed, or a script region
// the external formatter cannot handle, comes back unchanged.
func (t *Tool) FormatContent(ctx context.Context, content string) string {
	formatted, err := t.formatDocument(ctx, content)
	if err != nil {
		log.Warn("formatting failed, keeping original content: %v", err)
		return content
	}
	return formatted
}

// FormatFile formats the file at path in place. Non-CGX files are skipped.
// It reports whether the file content would change (check mode) or was
// changed (write mode).
func (t *Tool) FormatFile(ctx context.Context, path string, check bool) (bool, error) {
	if filepath.Ext(path) != Extension {
		return false, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	content := string(raw)

	formatted, err := t.formatDocument(ctx, content)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}

	changed := formatted != content
	if changed && !check {
		if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
			return false, err
		}
	}
	return changed, nil
}

// formatDocument runs the full format pipeline: parse, locate regions,
// transform each region independently, reassemble. Region failures are
// isolated: a script the formatter cannot handle keeps its original text
// while sibling markup regions still format.
func (t *Tool) formatDocument(ctx context.Context, content string) (string, error) {
	tree, err := markup.Parse(content)
	if err != nil {
		return "", err
	}

	doc := document.New(content)
	loc := regions.Locate(tree)

	var reps []document.Replacement
	if loc.Script != nil {
		if sc, ok := regions.ExtractScript(loc.Script); ok {
			if rep, ok := t.formatScript(ctx, loc.Script, sc); ok {
				reps = append(reps, rep)
			}
		}
	}
	for _, node := range loc.Markup {
		lines := t.renderer.RenderRegion(ctx, node)
		start, end := regions.MarkupSpan(node)
		reps = append(reps, document.Replacement{Lines: lines, Start: start, End: end})
	}

	return document.Reassemble(doc, reps)
}

// formatScript formats the extracted code through ruff and builds the
// replacement for its span. ok=false keeps the original region.
func (t *Tool) formatScript(ctx context.Context, node *markup.Node, sc regions.ScriptContent) (document.Replacement, bool) {
	formatted, err := t.runner.Format(ctx, sc.Text, ruff.FormatOptions{LineLength: t.cfg.LineLength})
	if err != nil {
		log.Warn("skipping script region: %v", err)
		return document.Replacement{}, false
	}
	return scriptReplacement(node, sc, document.SplitLines(formatted)), true
}

// scriptReplacement splices code lines into the script region's span. When
// the code shared a line with a marker, the marker is re-synthesized on its
// own line and its source line joins the replaced span.
func scriptReplacement(node *markup.Node, sc regions.ScriptContent, lines []string) document.Replacement {
	lines = append([]string(nil), lines...)
	if n := len(lines); n > 0 && !strings.HasSuffix(lines[n-1], "\n") {
		lines[n-1] += "\n"
	}
	if sc.InlineOpen {
		lines = append([]string{openTagLine(node)}, lines...)
	}
	if sc.InlineClose {
		lines = append(lines, "</"+node.Tag+">\n")
	}
	start, end := sc.ContentSpan()
	return document.Replacement{Lines: lines, Start: start, End: end}
}

// openTagLine rebuilds a script element's opening tag on its own line.
func openTagLine(node *markup.Node) string {
	var b strings.Builder
	b.WriteString("<" + node.Tag)
	for _, attr := range node.Attrs {
		if attr.Bare {
			b.WriteString(" " + attr.Name)
		} else {
			b.WriteString(` ` + attr.Name + `="` + attr.Value + `"`)
		}
	}
	b.WriteString(">\n")
	return b.String()
}
