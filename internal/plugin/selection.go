package plugin

import (
	"github.com/felixgeelhaar/richfield/internal/editor/document"
)

func isBlock(n *document.Node) bool {
	switch n.Type() {
	case document.TypeParagraph, document.TypeHeading, document.TypeQuote,
		document.TypeCode, document.TypeListItem:
		return true
	}
	return false
}

func blockOf(n *document.Node) *document.Node {
	return document.FindMatchingParent(n, isBlock)
}

// selectedBlocks returns the distinct blocks touched by the selection, in
// document order.
func selectedBlocks(st *document.State) []*document.Node {
	sel := st.Selection()
	if sel == nil {
		return nil
	}

	seen := make(map[*document.Node]bool)
	var blocks []*document.Node
	add := func(n *document.Node) {
		if b := blockOf(n); b != nil && !seen[b] {
			seen[b] = true
			blocks = append(blocks, b)
		}
	}

	switch v := sel.(type) {
	case *document.RangeSelection:
		if anchor := st.AnchorNode(v); anchor != nil && v.IsCollapsed() {
			add(anchor)
			return blocks
		}
		for _, n := range st.SelectedTextNodes(v) {
			add(n)
		}
		if len(blocks) == 0 {
			add(st.AnchorNode(v))
		}
	case *document.TableSelection:
		for _, n := range st.SelectedTextNodes(v) {
			add(n)
		}
	case *document.NodeSelection:
		for _, k := range v.Keys {
			add(st.NodeByKey(k))
		}
	}
	return blocks
}

// insertionPoint returns the node a new block is inserted after, or nil to
// append to the root.
func insertionPoint(st *document.State) *document.Node {
	var n *document.Node
	switch v := st.Selection().(type) {
	case *document.RangeSelection:
		n = st.NodeByKey(v.Focus.Key)
	case *document.TableSelection:
		if len(v.Cells) > 0 {
			n = st.NodeByKey(v.Cells[len(v.Cells)-1])
		}
	case *document.NodeSelection:
		if len(v.Keys) > 0 {
			n = st.NodeByKey(v.Keys[len(v.Keys)-1])
		}
	}
	if n == nil || n.Type() == document.TypeRoot {
		return nil
	}
	if n.Type() == document.TypeTableCell {
		return n.Parent().Parent()
	}
	return n.TopLevelElement()
}

func insertBlock(st *document.State, n *document.Node) error {
	if ref := insertionPoint(st); ref != nil {
		return st.InsertAfter(ref, n)
	}
	return st.Append(st.Root(), n)
}

// insertInline places n at the caret, splitting the text node under it.
// Without a caret it falls back to a block insertion wrapped in a paragraph.
func insertInline(st *document.State, n *document.Node) error {
	sel, ok := st.Selection().(*document.RangeSelection)
	if !ok {
		return insertBlock(st, document.NewParagraph(n))
	}
	anchor := st.AnchorNode(sel)
	if anchor == nil {
		return insertBlock(st, document.NewParagraph(n))
	}
	if !anchor.IsText() {
		if !anchor.IsElement() {
			return st.InsertAfter(anchor, n)
		}
		children := anchor.Children()
		if sel.Anchor.Offset < len(children) {
			return st.InsertBefore(children[sel.Anchor.Offset], n)
		}
		return st.Append(anchor, n)
	}
	if sel.Anchor.Offset <= 0 {
		return st.InsertBefore(anchor, n)
	}
	if _, err := st.SplitText(anchor, sel.Anchor.Offset); err != nil {
		return err
	}
	return st.InsertAfter(anchor, n)
}
