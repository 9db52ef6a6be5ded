// Package regions splits a parsed CGX document into its addressable
// sub-regions: at most one script region holding embedded Python, and any
// number of root-level markup regions. Spans are 0-indexed half-open line
// ranges in the original document.
package regions

import (
	"strings"

	"github.com/fork-tongue/ruff-cgx/internal/markup"
)

// ScriptTag is the tag name identifying the embedded code block.
const ScriptTag = "script"

// Located is the outcome of scanning the root level of a parsed document.
type Located struct {
	// Script is the script element, or nil when the document has none.
	// A missing script block is not an error: there is nothing to format
	// or lint in that case.
	Script *markup.Node

	// Markup holds every other root-level node in document order.
	Markup []*markup.Node
}

// Locate identifies the script region and the markup regions of a tree.
// Pure function: the tree is not modified.
func Locate(tree *markup.Tree) Located {
	var loc Located
	for _, n := range tree.Roots {
		if n.Kind == markup.KindElement && n.Tag == ScriptTag {
			// the first script element is the code region; a script node is
			// never a markup node
			if loc.Script == nil {
				loc.Script = n
			}
			continue
		}
		loc.Markup = append(loc.Markup, n)
	}
	return loc
}

// ScriptContent is the extracted embedded code of a script element.
type ScriptContent struct {
	// Text is the code with surrounding whitespace trimmed and exactly one
	// trailing newline.
	Text string

	// StartLine is the document line where the code content begins. When
	// the code shares a line with the opening tag this is the tag's own
	// line, otherwise the line after it.
	StartLine int

	// EndLine is the document line holding the closing tag.
	EndLine int

	// InlineOpen reports that code begins on the opening tag's line, so a
	// formatter must re-synthesize the tag on its own line.
	InlineOpen bool

	// InlineClose reports that the closing tag does not start at column
	// zero, so its line belongs to the replaced span as well.
	InlineClose bool

	// StartColumn is the column where code begins on StartLine. Non-zero
	// only when InlineOpen.
	StartColumn int

	// EndColumn is the column where the closing tag begins on EndLine.
	EndColumn int
}

// ContentSpan returns the half-open line span the extracted code occupies in
// the original document, accounting for inline markers.
func (sc ScriptContent) ContentSpan() (start, end int) {
	start = sc.StartLine
	end = sc.EndLine
	if sc.InlineClose {
		end = sc.EndLine + 1
	}
	return start, end
}

// ExtractScript pulls the code text out of a script element. It returns
// ok=false when the element has no content: an empty script block is a
// legitimate empty result, not an error.
func ExtractScript(node *markup.Node) (ScriptContent, bool) {
	if node == nil {
		return ScriptContent{}, false
	}
	var raw *markup.Node
	for _, child := range node.Children {
		if child.Kind == markup.KindText {
			raw = child
			break
		}
	}
	if raw == nil {
		return ScriptContent{}, false
	}

	openRow := node.Span.Start.Row
	sc := ScriptContent{
		EndLine:     node.CloseStart.Row,
		EndColumn:   node.CloseStart.Column,
		InlineClose: node.CloseStart.Column > 0,
	}

	text := raw.Content
	if strings.HasPrefix(text, "\n") {
		// code begins on the line after the tag
		sc.StartLine = openRow + 1
		text = text[1:]
	} else {
		sc.StartLine = openRow
		sc.StartColumn = raw.Span.Start.Column
		sc.InlineOpen = true
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return ScriptContent{}, false
	}
	sc.Text = text + "\n"
	return sc, true
}

// MarkupSpan returns the half-open line span a root-level markup node
// occupies, covering its opening through closing tag lines.
func MarkupSpan(n *markup.Node) (start, end int) {
	start = n.Span.Start.Row
	end = n.Span.End.Row + 1
	if n.Span.End.Column == 0 {
		// the node ends exactly at a line boundary
		end = n.Span.End.Row
	}
	return start, end
}
