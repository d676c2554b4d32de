package state

import (
	"github.com/felixgeelhaar/richfield/internal/editor/document"
)

// trackedFormats are the marks mirrored into Snapshot.Formats.
var trackedFormats = []document.Format{
	document.FormatBold,
	document.FormatItalic,
	document.FormatUnderline,
	document.FormatStrikethrough,
	document.FormatSubscript,
	document.FormatSuperscript,
	document.FormatCode,
	document.FormatHighlight,
	document.FormatLowercase,
	document.FormatUppercase,
	document.FormatCapitalize,
}

// derive computes the snapshot for st starting from prev. It reports false
// when the selection is neither a range nor a table selection, in which case
// prev stays current. st is only read.
func derive(st *document.State, prev Snapshot, nested bool) (Snapshot, bool) {
	next := prev

	switch sel := st.Selection().(type) {
	case *document.RangeSelection:
		if deriveRange(st, sel, &next, nested) {
			deriveFormats(st, sel, &next)
		}
		return next, true
	case *document.TableSelection:
		deriveFormats(st, sel, &next)
		return next, true
	}
	return prev, false
}

// deriveFormats fills the values that range and table selections share.
func deriveFormats(st *document.State, sel document.Selection, next *Snapshot) {
	var formats document.Format
	for _, f := range trackedFormats {
		if st.HasFormat(sel, f) {
			formats |= f
		}
	}
	next.Formats = formats
	next.FontSize = st.StyleValue(sel, "font-size", DefaultFontSize)
}

// resolveBlock returns the ancestor of anchor directly under the root or a
// shadow root, falling back to the anchor's top-level element.
func resolveBlock(anchor *document.Node) *document.Node {
	if anchor.Type() == document.TypeRoot {
		return anchor
	}
	block := document.FindMatchingParent(anchor, func(n *document.Node) bool {
		return n.Parent().IsRootOrShadowRoot()
	})
	if block == nil {
		block = anchor.TopLevelElement()
	}
	return block
}

// deriveRange fills the range-only values. It reports false when derivation
// stops there: inside a code block only the language is tracked.
func deriveRange(st *document.State, sel *document.RangeSelection, next *Snapshot, nested bool) bool {
	next.IsImageCaption = nested

	anchor := st.AnchorNode(sel)
	if anchor == nil {
		return true
	}
	block := resolveBlock(anchor)

	next.IsRTL = st.IsParentElementRTL(sel)

	node := st.SelectedNode(sel)
	parent := node.Parent()
	next.IsLink = node.Type() == document.TypeLink || (parent != nil && parent.Type() == document.TypeLink)

	if document.FindMatchingParent(node, document.IsOfType(document.TypeTable)) != nil {
		next.RootType = RootTable
	} else {
		next.RootType = RootDocument
	}

	if block != nil {
		if block.Type() == document.TypeList {
			// The toolbar shows the list the block belongs to, which for a
			// nested list is the outer list holding it.
			list := document.FindMatchingParent(block, document.IsOfType(document.TypeList))
			next.BlockType = BlockType(list.ListType())
		} else {
			bt := BlockType(block.Type())
			if block.Type() == document.TypeHeading {
				bt = BlockType(block.Tag())
			}
			if bt.Recognized() {
				next.BlockType = bt
			}
			if block.Type() == document.TypeCode {
				next.CodeLanguage = NormalizeCodeLanguage(block.Language())
				return false
			}
		}
	}

	next.FontColor = st.StyleValue(sel, "color", DefaultFontColor)
	next.BgColor = st.StyleValue(sel, "background-color", DefaultBgColor)
	next.FontFamily = st.StyleValue(sel, "font-family", DefaultFontFamily)
	next.ElementFormat = elementFormat(node, parent)
	return true
}

// elementFormat returns the alignment shown for the selected node. Links
// carry no alignment; inside one the containing block's alignment applies.
func elementFormat(node, parent *document.Node) document.Alignment {
	var align document.Alignment
	switch {
	case parent != nil && parent.Type() == document.TypeLink:
		block := document.FindMatchingParent(node, func(n *document.Node) bool {
			return n.IsElement() && !n.IsInline()
		})
		if block != nil {
			align = block.Alignment()
		}
	case node.IsElement():
		align = node.Alignment()
	case parent != nil:
		align = parent.Alignment()
	}
	if align == document.AlignNone {
		return document.AlignLeft
	}
	return align
}
