package document

// Selection is the user's current selection inside a State. The concrete
// kinds are *RangeSelection, *TableSelection and *NodeSelection.
type Selection interface {
	selection()
}

// Point addresses a position inside a node. For text nodes Offset counts
// runes; for elements it counts children.
type Point struct {
	Key    Key
	Offset int
}

// RangeSelection is a caret (anchor == focus) or a contiguous text range.
// Format and Style hold the marks and style that typing at a caret applies.
type RangeSelection struct {
	Anchor Point
	Focus  Point
	Format Format
	Style  string
}

// TableSelection spans one or more table cells.
type TableSelection struct {
	Table Key
	Cells []Key
}

// NodeSelection selects whole decorator nodes, e.g. an image.
type NodeSelection struct {
	Keys []Key
}

func (*RangeSelection) selection() {}
func (*TableSelection) selection() {}
func (*NodeSelection) selection()  {}

// IsCollapsed reports whether the range is a caret.
func (r *RangeSelection) IsCollapsed() bool { return r.Anchor == r.Focus }

// Caret returns a collapsed selection at offset inside the node with key k,
// inheriting format and style from that node the way typing would.
func Caret(s *State, k Key, offset int) *RangeSelection {
	sel := &RangeSelection{Anchor: Point{k, offset}, Focus: Point{k, offset}}
	if n := s.NodeByKey(k); n != nil && n.IsText() {
		sel.Format = n.marks
		sel.Style = n.style
	}
	return sel
}

// Range returns a selection from anchor to focus.
func Range(anchor, focus Point) *RangeSelection {
	return &RangeSelection{Anchor: anchor, Focus: focus}
}

func cloneSelection(sel Selection) Selection {
	switch v := sel.(type) {
	case *RangeSelection:
		c := *v
		return &c
	case *TableSelection:
		return &TableSelection{Table: v.Table, Cells: append([]Key(nil), v.Cells...)}
	case *NodeSelection:
		return &NodeSelection{Keys: append([]Key(nil), v.Keys...)}
	}
	return nil
}

// AnchorNode returns the node holding the anchor of sel, or nil.
func (s *State) AnchorNode(sel *RangeSelection) *Node {
	return s.NodeByKey(sel.Anchor.Key)
}

// documentOrder returns the pre-order position of every attached node.
func (s *State) documentOrder() map[*Node]int {
	order := make(map[*Node]int, len(s.nodes))
	i := 0
	Walk(s.root, func(n *Node) bool {
		order[n] = i
		i++
		return true
	})
	return order
}

// IsBackward reports whether the focus precedes the anchor.
func (s *State) IsBackward(sel *RangeSelection) bool {
	a, f := s.NodeByKey(sel.Anchor.Key), s.NodeByKey(sel.Focus.Key)
	if a == nil || f == nil {
		return false
	}
	if a == f {
		return sel.Focus.Offset < sel.Anchor.Offset
	}
	order := s.documentOrder()
	return order[f] < order[a]
}

func atNodeEnd(n *Node, offset int) bool {
	if n.IsText() {
		return offset >= len([]rune(n.text))
	}
	return offset >= len(n.children)
}

// SelectedNode returns the node the selection is considered to be "on": the
// anchor for a caret, otherwise whichever end is not sitting at a node end.
func (s *State) SelectedNode(sel *RangeSelection) *Node {
	anchor, focus := s.NodeByKey(sel.Anchor.Key), s.NodeByKey(sel.Focus.Key)
	if anchor == nil || focus == nil || anchor == focus {
		return anchor
	}
	if s.IsBackward(sel) {
		if atNodeEnd(focus, sel.Focus.Offset) {
			return anchor
		}
		return focus
	}
	if atNodeEnd(anchor, sel.Anchor.Offset) {
		return anchor
	}
	return focus
}

// SelectedTextNodes returns the text nodes covered by sel in document order.
// A caret yields its anchor node when that is text.
func (s *State) SelectedTextNodes(sel Selection) []*Node {
	switch v := sel.(type) {
	case *RangeSelection:
		return s.rangeTextNodes(v)
	case *TableSelection:
		var out []*Node
		for _, k := range v.Cells {
			cell := s.NodeByKey(k)
			if cell == nil {
				continue
			}
			Walk(cell, func(n *Node) bool {
				if n.IsText() {
					out = append(out, n)
				}
				return true
			})
		}
		return out
	}
	return nil
}

func (s *State) rangeTextNodes(sel *RangeSelection) []*Node {
	start, end := s.NodeByKey(sel.Anchor.Key), s.NodeByKey(sel.Focus.Key)
	if start == nil || end == nil {
		return nil
	}
	if s.IsBackward(sel) {
		start, end = end, start
	}
	if start == end {
		if start.IsText() {
			return []*Node{start}
		}
	}
	var out []*Node
	inside := false
	Walk(s.root, func(n *Node) bool {
		if n == start {
			inside = true
		}
		if inside && n.IsText() {
			out = append(out, n)
		}
		if n == end {
			if !end.IsText() {
				Walk(end, func(d *Node) bool {
					if d != end && d.IsText() {
						out = append(out, d)
					}
					return true
				})
			}
			return false
		}
		return true
	})
	return out
}

// HasFormat reports whether f applies to the whole selection. A caret answers
// from its typing format; ranges and table selections are true only when every
// covered text node carries f.
func (s *State) HasFormat(sel Selection, f Format) bool {
	if r, ok := sel.(*RangeSelection); ok && r.IsCollapsed() {
		return r.Format.Has(f)
	}
	nodes := s.SelectedTextNodes(sel)
	if len(nodes) == 0 {
		return false
	}
	for _, n := range nodes {
		if !n.marks.Has(f) {
			return false
		}
	}
	return true
}

// StyleValue returns the value of a CSS property across sel. Unset values
// resolve to def; differing values across the range resolve to "".
func (s *State) StyleValue(sel Selection, prop, def string) string {
	if r, ok := sel.(*RangeSelection); ok && r.IsCollapsed() {
		if r.Style != "" {
			if v, ok := StyleObject(r.Style)[prop]; ok && v != "" {
				return v
			}
			return def
		}
		return NodeStyleValue(s.AnchorNode(r), prop, def)
	}
	var value *string
	for _, n := range s.SelectedTextNodes(sel) {
		v := NodeStyleValue(n, prop, def)
		if value == nil {
			value = &v
			continue
		}
		if *value != v {
			return ""
		}
	}
	if value == nil {
		return def
	}
	return *value
}

// IsParentElementRTL reports whether the element containing the anchor reads
// right to left.
func (s *State) IsParentElementRTL(sel *RangeSelection) bool {
	anchor := s.AnchorNode(sel)
	if anchor == nil {
		return false
	}
	parent := anchor
	if anchor.typ != TypeRoot {
		parent = anchor.parent
	}
	if parent == nil {
		return false
	}
	return parent.Direction() == DirectionRTL
}
