package markup

// NodeKind discriminates the closed set of tree node variants.
type NodeKind int

const (
	// KindElement is a tag with attributes and children
	KindElement NodeKind = iota
	// KindText is a run of raw character data
	KindText
	// KindComment is an HTML-style comment
	KindComment
)

func (k NodeKind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindComment:
		return "comment"
	default:
		return "unknown"
	}
}

// Point is a 0-indexed line/column position in the source document.
type Point struct {
	Row    int
	Column int
}

// Span is the source extent of a node: [Start, End) in document coordinates.
type Span struct {
	Start Point
	End   Point
}

// Attr is a single element attribute, in source order. Bare is true for
// boolean attributes written without a value (e.g. `disabled`).
type Attr struct {
	Name  string
	Value string
	Bare  bool
}

// Node is one node of the parsed CGX tree. Nodes form a strict tree: every
// node is owned by exactly one parent and carries its source span.
type Node struct {
	Kind NodeKind

	// Tag is the element tag name (KindElement only).
	Tag string

	// Content is the raw payload for KindText and KindComment. For comments
	// the surrounding <!-- --> markers are stripped but interior whitespace
	// is kept verbatim.
	Content string

	Attrs    []Attr
	Children []*Node

	Span Span

	// CloseStart is the position where the closing tag begins. For
	// self-closing and void elements it equals Span.End.
	CloseStart Point
}

// Attr returns the value of the named attribute and whether it exists.
func (n *Node) Attr(name string) (Attr, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attr{}, false
}

// Tree is a parsed CGX document: the ordered sequence of root-level nodes.
// There is no enclosing root element requirement; a document may have any
// number of root-level elements, comments and text runs.
type Tree struct {
	Roots []*Node
}

// ChildWithTag returns the first root-level element with the given tag name.
func (t *Tree) ChildWithTag(tag string) *Node {
	for _, n := range t.Roots {
		if n.Kind == KindElement && n.Tag == tag {
			return n
		}
	}
	return nil
}
