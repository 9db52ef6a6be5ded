// Package render converts markup trees back to canonical indented text.
// Rendering is deterministic: identical input trees always produce identical
// lines, attribute order follows a fixed precedence, and embedded Python
// expressions are formatted through the external formatter.
package render

import (
	"context"
	"strings"

	"github.com/fork-tongue/ruff-cgx/internal/markup"
	"github.com/fork-tongue/ruff-cgx/internal/ruff"
)

// Indent is the canonical indentation unit.
const Indent = "  "

// Renderer formats markup nodes. A nil runner disables expression
// formatting; attribute values then pass through verbatim.
type Renderer struct {
	runner     ruff.Runner
	lineLength int
}

// New creates a Renderer. lineLength is the document-level line width;
// expression formatting narrows it by the current indentation.
func New(runner ruff.Runner, lineLength int) *Renderer {
	return &Renderer{runner: runner, lineLength: lineLength}
}

// RenderRegion renders a root-level markup node to newline-terminated
// lines. Literal tabs in source text are replaced with the indent unit.
func (r *Renderer) RenderRegion(ctx context.Context, node *markup.Node) []string {
	raw := r.renderNode(ctx, node, 0)
	lines := make([]string, len(raw))
	for i, line := range raw {
		lines[i] = strings.ReplaceAll(line, "\t", Indent) + "\n"
	}
	return lines
}

func (r *Renderer) renderNode(ctx context.Context, node *markup.Node, depth int) []string {
	indent := strings.Repeat(Indent, depth)

	switch node.Kind {
	case markup.KindComment:
		return []string{indent + "<!--" + node.Content + "-->"}
	case markup.KindText:
		return []string{indent + strings.TrimSpace(node.Content)}
	}

	var result []string
	open := indent + "<" + node.Tag

	// bracket placement: inline for at most one attribute, otherwise on its
	// own line under the attributes
	multiAttr := len(node.Attrs) >= 2
	if multiAttr {
		result = append(result, open)
		for _, attr := range sortAttrs(node.Attrs) {
			result = append(result, indent+Indent+r.formatAttribute(ctx, attr, depth))
		}
		if len(node.Children) == 0 {
			result = append(result, indent+"/>")
		} else {
			result = append(result, indent+">")
		}
	} else {
		if len(node.Attrs) == 1 {
			open += " " + r.formatAttribute(ctx, node.Attrs[0], depth)
		}
		if len(node.Children) == 0 {
			open += " />"
		} else {
			open += ">"
		}
		result = append(result, open)
	}

	for _, child := range node.Children {
		result = append(result, r.renderNode(ctx, child, depth+1)...)
	}
	if len(node.Children) > 0 {
		result = append(result, indent+"</"+node.Tag+">")
	}
	return result
}

// formatAttribute renders one attribute. Boolean attributes come out bare;
// bound, event and directive values are treated as code expressions.
func (r *Renderer) formatAttribute(ctx context.Context, attr markup.Attr, depth int) string {
	name := attr.Name
	if attr.Bare && !strings.HasPrefix(name, ":") && !strings.HasPrefix(name, "@") {
		return name
	}

	value := attr.Value
	if isExpressionAttr(name) && strings.TrimSpace(value) != "" {
		value = strings.TrimSpace(value)
		switch {
		case strings.HasPrefix(name, "v-for"):
			// `item in items` is not a plain expression: format each side of
			// the first ` in ` independently
			if loopVar, iter, found := strings.Cut(value, " in "); found {
				value = r.formatExpression(ctx, loopVar, depth) + " in " + r.formatExpression(ctx, iter, depth)
			}
		case strings.HasPrefix(name, "v-slot"), strings.HasPrefix(name, "#"):
			// slot grammar is not a plain expression; pass through
		default:
			value = r.formatExpression(ctx, value, depth)
		}
	}
	return name + `="` + value + `"`
}

func isExpressionAttr(name string) bool {
	return strings.HasPrefix(name, ":") || strings.HasPrefix(name, "@") || strings.HasPrefix(name, "v-")
}

// expressionPrefix wraps expressions in an assignment so the external
// formatter sees valid code.
const expressionPrefix = "__dummy__ = "

// formatExpression formats a Python expression through ruff, preferring
// single-quoted strings so literals survive inside double-quoted attribute
// values. Failures fall back to the input.
func (r *Renderer) formatExpression(ctx context.Context, expr string, depth int) string {
	if r.runner == nil || strings.TrimSpace(expr) == "" {
		return expr
	}

	width := r.lineLength - depth*len(Indent)
	formatted, err := r.runner.Format(ctx, expressionPrefix+expr+"\n", ruff.FormatOptions{
		SingleQuotes: true,
		LineLength:   width,
	})
	if err != nil {
		return expr
	}

	rest, ok := strings.CutPrefix(formatted, expressionPrefix)
	if !ok {
		return expr
	}
	rest = strings.TrimRight(rest, "\n")
	if strings.Contains(rest, "\n") {
		// a reflowed multi-line expression cannot live inside an attribute
		return expr
	}
	return rest
}
