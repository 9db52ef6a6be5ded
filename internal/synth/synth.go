// Package synth compiles a CGX document's markup into a virtual render
// method and appends it to the extracted code as a suppressed subclass. A
// generic unused-name checker run on the code region alone would flag names
// that are only referenced from markup expressions; the virtual method makes
// those references visible. Every synthesized line carries a noqa marker so
// the checker neither reports it nor proposes fixes for it.
package synth

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fork-tongue/ruff-cgx/internal/markup"
)

var classDefPattern = regexp.MustCompile(`(?m)^class\s+([A-Za-z_][A-Za-z0-9_]*)`)

// Suppression is the marker appended to every synthesized line.
const Suppression = "  # noqa"

// Synthesize builds the suppressed virtual subclass for the given document.
// It returns the synthesized lines (newline-terminated, ready to append
// after the code region) and ok=false when synthesis is not possible: no
// top-level class in the code, or nothing in the markup to compile.
// Synthesis failure is always recoverable; callers degrade to the
// unaugmented code region.
func Synthesize(tree *markup.Tree, code string) ([]string, bool) {
	className := lastClassName(code)
	if className == "" {
		return nil, false
	}

	var exprs []string
	for _, n := range tree.Roots {
		if n.Kind == markup.KindElement && n.Tag == "script" {
			continue
		}
		if expr, ok := compileNode(n); ok {
			exprs = append(exprs, expr)
		}
	}
	if len(exprs) == 0 {
		return nil, false
	}

	ret := exprs[0]
	if len(exprs) > 1 {
		ret = "(" + strings.Join(exprs, ", ") + ")"
	}

	// Subclassing the real component keeps any code that follows the last
	// class definition working, and ties the compiled markup expressions to
	// the component's own scope.
	body := []string{
		fmt.Sprintf("class Virtual%s(%s):", className, className),
		"    def render(self):",
		"        return " + ret,
	}
	lines := make([]string, len(body))
	for i, line := range body {
		lines[i] = line + Suppression + "\n"
	}
	return lines, true
}

// lastClassName finds the name of the last top-level class definition in
// the code, the component class by convention.
func lastClassName(code string) string {
	matches := classDefPattern.FindAllStringSubmatch(code, -1)
	if len(matches) == 0 {
		return ""
	}
	return matches[len(matches)-1][1]
}

// compileNode converts a markup node into a Python expression that
// references every name the node's directive and binding expressions use.
func compileNode(n *markup.Node) (string, bool) {
	switch n.Kind {
	case markup.KindComment:
		return "", false
	case markup.KindText:
		text := strings.TrimSpace(n.Content)
		if text == "" {
			return "", false
		}
		return pyString(text), true
	}

	call := elementCall(n)

	// v-for wraps the element in a comprehension so the loop variable is
	// defined and the iterable counts as referenced
	if attr, ok := n.Attr("v-for"); ok && !attr.Bare {
		if loopVar, iter, found := strings.Cut(attr.Value, " in "); found {
			return "[" + call + " for " + strings.TrimSpace(loopVar) + " in " + strings.TrimSpace(iter) + "]", true
		}
	}
	return call, true
}

func elementCall(n *markup.Node) string {
	var b strings.Builder
	b.WriteString("h(")
	b.WriteString(pyString(n.Tag))

	var props []string
	for _, attr := range n.Attrs {
		if entry, ok := compileAttr(attr); ok {
			props = append(props, entry)
		}
	}
	if len(props) > 0 {
		b.WriteString(", {")
		b.WriteString(strings.Join(props, ", "))
		b.WriteString("}")
	}

	for _, child := range n.Children {
		if expr, ok := compileNode(child); ok {
			b.WriteString(", ")
			b.WriteString(expr)
		}
	}
	b.WriteString(")")
	return b.String()
}

// compileAttr maps one attribute to a dict entry. Bound values are spliced
// in verbatim as expressions; plain values stay string literals.
func compileAttr(attr markup.Attr) (string, bool) {
	name, value := attr.Name, strings.TrimSpace(attr.Value)
	expr := !attr.Bare && value != ""

	switch {
	case name == "v-for":
		// handled by the enclosing comprehension
		return "", false
	case strings.HasPrefix(name, "v-slot") || strings.HasPrefix(name, "#"):
		// slot grammar is not a plain expression
		return pyString(name) + ": True", true
	case strings.HasPrefix(name, ":") && expr:
		return pyString(name[1:]) + ": (" + value + ")", true
	case strings.HasPrefix(name, "@") && expr:
		return pyString("on_"+name[1:]) + ": (" + value + ")", true
	case strings.HasPrefix(name, "v-bind:") && expr:
		return pyString(strings.TrimPrefix(name, "v-bind:")) + ": (" + value + ")", true
	case strings.HasPrefix(name, "v-on:") && expr:
		return pyString("on_"+strings.TrimPrefix(name, "v-on:")) + ": (" + value + ")", true
	case strings.HasPrefix(name, "v-") && expr:
		// conditionals and other directives: the value is an expression
		return pyString(name) + ": (" + value + ")", true
	case !expr:
		return pyString(name) + ": True", true
	default:
		return pyString(name) + ": " + pyString(value), true
	}
}

var pyEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)

func pyString(s string) string {
	return "'" + pyEscaper.Replace(s) + "'"
}
