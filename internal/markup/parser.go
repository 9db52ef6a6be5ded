package markup

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
)

// ErrParse indicates the document could not be parsed into a tree at all.
// Content-based callers recover by returning the input unchanged.
var ErrParse = errors.New("malformed cgx document")

var htmlLang = sitter.NewLanguage(tree_sitter_html.Language())

// Parser converts CGX source into a Tree of typed nodes. The underlying
// grammar is tree-sitter's HTML grammar; comments are first-class nodes so
// no extension of the parser is needed for them.
type Parser struct {
	parser *sitter.Parser
}

// parserPool is a pool of reusable parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(htmlLang); err != nil {
			panic(fmt.Sprintf("failed to set HTML language: %v", err))
		}
		return &Parser{parser: parser}
	},
}

// AcquireParser gets a parser from the pool
func AcquireParser() *Parser {
	p := parserPool.Get().(*Parser)
	p.parser.Reset()
	return p
}

// ReleaseParser returns a parser to the pool
func ReleaseParser(p *Parser) {
	if p != nil {
		parserPool.Put(p)
	}
}

// Close closes the parser and releases its resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// ClosePool closes all parsers in the pool
func ClosePool() {
	for range 100 {
		if p, ok := parserPool.Get().(*Parser); ok && p != nil {
			p.Close()
		}
	}
}

// Parse converts source text into a Tree. Whitespace-only text runs are not
// materialized as nodes, matching the reference parser behavior.
func (p *Parser) Parse(source string) (*Tree, error) {
	sourceBytes := []byte(source)
	tree := p.parser.Parse(sourceBytes, nil)
	if tree == nil {
		return nil, ErrParse
	}
	defer tree.Close()

	root := tree.RootNode()
	out := &Tree{}
	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		if node := convertNode(child, sourceBytes); node != nil {
			out.Roots = append(out.Roots, node)
		}
	}
	return out, nil
}

// Parse is a convenience wrapper using the parser pool.
func Parse(source string) (*Tree, error) {
	p := AcquireParser()
	defer ReleaseParser(p)
	return p.Parse(source)
}

func toPoint(p sitter.Point) Point {
	return Point{Row: int(p.Row), Column: int(p.Column)}
}

func nodeSpan(n *sitter.Node) Span {
	return Span{Start: toPoint(n.StartPosition()), End: toPoint(n.EndPosition())}
}

func nodeText(n *sitter.Node, source []byte) string {
	return string(source[n.StartByte():n.EndByte()])
}

func convertNode(n *sitter.Node, source []byte) *Node {
	switch n.Kind() {
	case "element", "script_element", "style_element":
		return convertElement(n, source)
	case "comment":
		content := nodeText(n, source)
		content = strings.TrimPrefix(content, "<!--")
		content = strings.TrimSuffix(content, "-->")
		if strings.TrimSpace(content) == "" {
			return nil
		}
		return &Node{Kind: KindComment, Content: content, Span: nodeSpan(n), CloseStart: toPoint(n.EndPosition())}
	case "text":
		content := nodeText(n, source)
		if strings.TrimSpace(content) == "" {
			return nil
		}
		return &Node{Kind: KindText, Content: content, Span: nodeSpan(n), CloseStart: toPoint(n.EndPosition())}
	default:
		// doctype, erroneous end tags, and parse artifacts are not part of
		// the document model
		return nil
	}
}

func convertElement(n *sitter.Node, source []byte) *Node {
	el := &Node{Kind: KindElement, Span: nodeSpan(n), CloseStart: toPoint(n.EndPosition())}

	var startTag, endTag *sitter.Node
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		switch child.Kind() {
		case "start_tag", "self_closing_tag":
			if startTag == nil {
				startTag = child
			}
		case "end_tag":
			endTag = child
		}
	}

	if startTag != nil {
		for i := uint(0); i < startTag.ChildCount(); i++ {
			child := startTag.Child(i)
			switch child.Kind() {
			case "tag_name":
				el.Tag = nodeText(child, source)
			case "attribute":
				el.Attrs = append(el.Attrs, convertAttribute(child, source))
			}
		}
	}
	if endTag != nil {
		el.CloseStart = toPoint(endTag.StartPosition())
	}

	// Script and style contents arrive as a single raw text child spanning
	// everything between the tags. Slice it from the tag boundaries rather
	// than the raw_text token so surrounding whitespace is preserved; the
	// extractor depends on a leading newline to tell inline code apart.
	if (n.Kind() == "script_element" || n.Kind() == "style_element") && startTag != nil && endTag != nil {
		from, to := startTag.EndByte(), endTag.StartByte()
		if from < to {
			el.Children = append(el.Children, &Node{
				Kind:    KindText,
				Content: string(source[from:to]),
				Span: Span{
					Start: toPoint(startTag.EndPosition()),
					End:   toPoint(endTag.StartPosition()),
				},
				CloseStart: toPoint(endTag.StartPosition()),
			})
		}
		return el
	}

	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		switch child.Kind() {
		case "start_tag", "self_closing_tag", "end_tag":
			continue
		}
		if node := convertNode(child, source); node != nil {
			el.Children = append(el.Children, node)
		}
	}
	return el
}

func convertAttribute(n *sitter.Node, source []byte) Attr {
	attr := Attr{Bare: true}
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		switch child.Kind() {
		case "attribute_name":
			attr.Name = nodeText(child, source)
		case "attribute_value":
			attr.Bare = false
			attr.Value = nodeText(child, source)
		case "quoted_attribute_value":
			attr.Bare = false
			for j := uint(0); j < child.ChildCount(); j++ {
				if inner := child.Child(j); inner.Kind() == "attribute_value" {
					attr.Value = nodeText(inner, source)
				}
			}
		}
	}
	return attr
}
