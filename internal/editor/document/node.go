// Package document provides the in-memory document tree edited by a rich-text
// surface, together with the selection model and the read-only queries the
// toolbar derives its state from.
package document

import "strings"

// NodeType identifies the kind of a node in the document tree.
type NodeType string

const (
	TypeRoot        NodeType = "root"
	TypeParagraph   NodeType = "paragraph"
	TypeHeading     NodeType = "heading"
	TypeQuote       NodeType = "quote"
	TypeCode        NodeType = "code"
	TypeList        NodeType = "list"
	TypeListItem    NodeType = "listitem"
	TypeLink        NodeType = "link"
	TypeText        NodeType = "text"
	TypeTable       NodeType = "table"
	TypeTableRow    NodeType = "tablerow"
	TypeTableCell   NodeType = "tablecell"
	TypeLayout      NodeType = "layout"
	TypeLayoutItem  NodeType = "layoutitem"
	TypeCollapsible NodeType = "collapsible"

	// Decorator nodes carry attributes instead of children.
	TypeHorizontalRule NodeType = "horizontalrule"
	TypePageBreak      NodeType = "page-break"
	TypeImage          NodeType = "image"
	TypeInlineImage    NodeType = "inline-image"
	TypeEquation       NodeType = "equation"
)

// Alignment is the element format (text alignment) of a block.
type Alignment string

const (
	AlignNone    Alignment = ""
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "justify"
	AlignStart   Alignment = "start"
	AlignEnd     Alignment = "end"
)

// ListType is the flavour of a list node.
type ListType string

const (
	ListBullet ListType = "bullet"
	ListNumber ListType = "number"
	ListCheck  ListType = "check"
)

// Direction is the reading direction of an element.
type Direction string

const (
	DirectionAuto Direction = ""
	DirectionLTR  Direction = "ltr"
	DirectionRTL  Direction = "rtl"
)

// Key uniquely identifies a node within a State.
type Key string

// Node is a single node of the document tree. Nodes are only mutated inside an
// update transaction, on the working copy handed out by the editing surface.
type Node struct {
	key      Key
	typ      NodeType
	parent   *Node
	children []*Node

	tag       string
	listType  ListType
	language  string
	format    Alignment
	indent    int
	direction Direction
	url       string

	text  string
	marks Format
	style string

	attrs map[string]string
}

func newElement(t NodeType, children []*Node) *Node {
	n := &Node{typ: t}
	for _, c := range children {
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

// NewRoot creates a document root.
func NewRoot(children ...*Node) *Node { return newElement(TypeRoot, children) }

// NewParagraph creates a paragraph block.
func NewParagraph(children ...*Node) *Node { return newElement(TypeParagraph, children) }

// NewHeading creates a heading block. tag is one of h1..h6.
func NewHeading(tag string, children ...*Node) *Node {
	n := newElement(TypeHeading, children)
	n.tag = tag
	return n
}

// NewQuote creates a block quote.
func NewQuote(children ...*Node) *Node { return newElement(TypeQuote, children) }

// NewCode creates a code block in the given language.
func NewCode(language string, children ...*Node) *Node {
	n := newElement(TypeCode, children)
	n.language = language
	return n
}

// NewList creates a list of the given type.
func NewList(lt ListType, items ...*Node) *Node {
	n := newElement(TypeList, items)
	n.listType = lt
	return n
}

// NewListItem creates a list item.
func NewListItem(children ...*Node) *Node { return newElement(TypeListItem, children) }

// NewLink creates an inline link element.
func NewLink(url string, children ...*Node) *Node {
	n := newElement(TypeLink, children)
	n.url = url
	return n
}

// NewTable creates a table from rows.
func NewTable(rows ...*Node) *Node { return newElement(TypeTable, rows) }

// NewTableRow creates a table row from cells.
func NewTableRow(cells ...*Node) *Node { return newElement(TypeTableRow, cells) }

// NewTableCell creates a table cell.
func NewTableCell(children ...*Node) *Node { return newElement(TypeTableCell, children) }

// NewLayout creates a column layout container.
func NewLayout(columns ...*Node) *Node { return newElement(TypeLayout, columns) }

// NewLayoutItem creates one column of a layout.
func NewLayoutItem(children ...*Node) *Node { return newElement(TypeLayoutItem, children) }

// NewCollapsible creates a collapsible container.
func NewCollapsible(children ...*Node) *Node { return newElement(TypeCollapsible, children) }

// NewText creates a text leaf.
func NewText(text string) *Node { return &Node{typ: TypeText, text: text} }

// NewDecorator creates an attribute-only node such as an image or a rule.
func NewDecorator(t NodeType, attrs map[string]string) *Node {
	n := &Node{typ: t, attrs: make(map[string]string, len(attrs))}
	for k, v := range attrs {
		n.attrs[k] = v
	}
	return n
}

// WithMarks sets the text format marks and returns the node for chaining.
func (n *Node) WithMarks(f ...Format) *Node {
	for _, m := range f {
		n.marks |= m
	}
	return n
}

// WithStyle sets the inline CSS style and returns the node for chaining.
func (n *Node) WithStyle(css string) *Node {
	n.style = css
	return n
}

// WithAlignment sets the element format and returns the node for chaining.
func (n *Node) WithAlignment(a Alignment) *Node {
	n.format = a
	return n
}

// WithDirection forces the reading direction and returns the node for chaining.
func (n *Node) WithDirection(d Direction) *Node {
	n.direction = d
	return n
}

func (n *Node) Key() Key { return n.key }
func (n *Node) Type() NodeType { return n.typ }
func (n *Node) Parent() *Node { return n.parent }
func (n *Node) Children() []*Node { return n.children }
func (n *Node) Tag() string { return n.tag }
func (n *Node) ListType() ListType { return n.listType }
func (n *Node) Language() string { return n.language }
func (n *Node) Alignment() Alignment { return n.format }
func (n *Node) Indent() int { return n.indent }
func (n *Node) URL() string { return n.url }
func (n *Node) Text() string { return n.text }
func (n *Node) Marks() Format { return n.marks }
func (n *Node) Style() string { return n.style }

// PreviousSibling returns the sibling before n, or nil.
func (n *Node) PreviousSibling() *Node {
	if n.parent == nil {
		return nil
	}
	if i := n.parent.indexOf(n); i > 0 {
		return n.parent.children[i-1]
	}
	return nil
}

// NextSibling returns the sibling after n, or nil.
func (n *Node) NextSibling() *Node {
	if n.parent == nil {
		return nil
	}
	if i := n.parent.indexOf(n); i >= 0 && i+1 < len(n.parent.children) {
		return n.parent.children[i+1]
	}
	return nil
}

// Attr returns a decorator attribute.
func (n *Node) Attr(name string) string { return n.attrs[name] }

// IsText reports whether n is a text leaf.
func (n *Node) IsText() bool { return n.typ == TypeText }

// IsDecorator reports whether n is an attribute-only node.
func (n *Node) IsDecorator() bool {
	switch n.typ {
	case TypeHorizontalRule, TypePageBreak, TypeImage, TypeInlineImage, TypeEquation:
		return true
	}
	return false
}

// IsElement reports whether n can hold children.
func (n *Node) IsElement() bool { return !n.IsText() && !n.IsDecorator() }

// IsInline reports whether n flows inside a block rather than forming one.
func (n *Node) IsInline() bool {
	switch n.typ {
	case TypeText, TypeLink, TypeInlineImage:
		return true
	}
	return false
}

// IsRootOrShadowRoot reports whether n starts a block context: the document
// root, or a table cell or layout column whose children are blocks of their
// own.
func (n *Node) IsRootOrShadowRoot() bool {
	if n == nil {
		return false
	}
	switch n.typ {
	case TypeRoot, TypeTableCell, TypeLayoutItem:
		return true
	}
	return false
}

// TextContent concatenates the text of n and its descendants.
func (n *Node) TextContent() string {
	if n.IsText() {
		return n.text
	}
	var b strings.Builder
	for i, c := range n.children {
		b.WriteString(c.TextContent())
		if !c.IsInline() && i < len(n.children)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// TopLevelElement returns the ancestor (or n itself) whose parent is the root
// or a shadow root. It returns nil for detached nodes.
func (n *Node) TopLevelElement() *Node {
	for node := n; node != nil; node = node.parent {
		if node.parent.IsRootOrShadowRoot() {
			return node
		}
	}
	return nil
}

// FindMatchingParent walks from n (inclusive) towards the root and returns the
// first node satisfying match.
func FindMatchingParent(n *Node, match func(*Node) bool) *Node {
	for node := n; node != nil; node = node.parent {
		if match(node) {
			return node
		}
	}
	return nil
}

// IsOfType returns a predicate matching nodes of type t.
func IsOfType(t NodeType) func(*Node) bool {
	return func(n *Node) bool { return n.typ == t }
}

// Equal reports whether two subtrees have the same content, ignoring keys.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.typ != b.typ || a.tag != b.tag || a.listType != b.listType ||
		a.language != b.language || a.format != b.format || a.indent != b.indent ||
		a.direction != b.direction || a.url != b.url || a.text != b.text ||
		a.marks != b.marks || a.style != b.style || len(a.attrs) != len(b.attrs) ||
		len(a.children) != len(b.children) {
		return false
	}
	for k, v := range a.attrs {
		if b.attrs[k] != v {
			return false
		}
	}
	for i := range a.children {
		if !Equal(a.children[i], b.children[i]) {
			return false
		}
	}
	return true
}

func (n *Node) clone(parent *Node, index map[Key]*Node) *Node {
	c := *n
	c.parent = parent
	c.children = nil
	if n.attrs != nil {
		c.attrs = make(map[string]string, len(n.attrs))
		for k, v := range n.attrs {
			c.attrs[k] = v
		}
	}
	for _, child := range n.children {
		c.children = append(c.children, child.clone(&c, index))
	}
	index[c.key] = &c
	return &c
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}
