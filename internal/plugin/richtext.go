package plugin

import (
	"strings"

	"github.com/felixgeelhaar/richfield/internal/editor/document"
	"github.com/felixgeelhaar/richfield/internal/editor/sdk"
)

// BlockFormats lists the block types CommandFormatBlock accepts.
var BlockFormats = []sdk.BlockFormat{
	"paragraph", "h1", "h2", "h3", "h4", "h5", "h6",
	"bullet", "number", "check", "quote", "code",
}

func newBlock(target sdk.BlockFormat) *document.Node {
	switch {
	case target == "paragraph":
		return document.NewParagraph()
	case target == "quote":
		return document.NewQuote()
	case target == "code":
		return document.NewCode("")
	case len(target) == 2 && target[0] == 'h' && target[1] >= '1' && target[1] <= '6':
		return document.NewHeading(string(target))
	}
	return nil
}

func listTypeOf(target sdk.BlockFormat) (document.ListType, bool) {
	switch lt := document.ListType(target); lt {
	case document.ListBullet, document.ListNumber, document.ListCheck:
		return lt, true
	}
	return "", false
}

func installRichText(s sdk.Surface, env Env) []*sdk.Subscription {
	log := env.logger()

	formatBlock := func(payload any, _ sdk.Surface) bool {
		target, ok := payload.(sdk.BlockFormat)
		if !ok {
			return false
		}
		handled := false
		s.Update(func(st *document.State) {
			blocks := selectedBlocks(st)
			if len(blocks) == 0 {
				return
			}
			if err := applyBlockFormat(st, blocks, target); err != nil {
				log.Warn("block format failed", "target", string(target), "error", err)
				return
			}
			handled = true
		})
		return handled
	}

	formatElement := func(payload any, _ sdk.Surface) bool {
		align, ok := payload.(document.Alignment)
		if !ok {
			return false
		}
		s.Update(func(st *document.State) {
			for _, b := range selectedBlocks(st) {
				st.SetAlignment(b, align)
			}
		})
		return true
	}

	indent := func(delta int) sdk.CommandHandler {
		return func(any, sdk.Surface) bool {
			s.Update(func(st *document.State) {
				for _, b := range selectedBlocks(st) {
					st.SetIndent(b, b.Indent()+delta)
				}
			})
			return true
		}
	}

	patchStyle := func(payload any, _ sdk.Surface) bool {
		patch, ok := payload.(sdk.StylePatch)
		if !ok || len(patch.Styles) == 0 {
			return false
		}
		var opts []sdk.UpdateOption
		if patch.SkipHistory {
			opts = append(opts, sdk.WithTag(sdk.TagHistoric))
		}
		s.Update(func(st *document.State) {
			sel := st.Selection()
			if r, ok := sel.(*document.RangeSelection); ok && r.IsCollapsed() {
				r.Style = document.PatchStyle(r.Style, patch.Styles)
				return
			}
			for _, n := range st.SelectedTextNodes(sel) {
				st.SetStyle(n, document.PatchStyle(n.Style(), patch.Styles))
			}
		}, opts...)
		return true
	}

	clearFormatting := func(any, sdk.Surface) bool {
		s.Update(func(st *document.State) {
			sel := st.Selection()
			if r, ok := sel.(*document.RangeSelection); ok {
				r.Format = 0
				r.Style = ""
			}
			for _, n := range st.SelectedTextNodes(sel) {
				st.SetMarks(n, 0)
				st.SetStyle(n, "")
			}
			for _, b := range selectedBlocks(st) {
				st.SetAlignment(b, document.AlignNone)
				if b.Type() == document.TypeHeading || b.Type() == document.TypeQuote {
					if err := st.ReplaceElement(b, document.NewParagraph()); err != nil {
						log.Warn("clear formatting failed", "error", err)
					}
				}
			}
		})
		return true
	}

	codeLanguage := func(payload any, _ sdk.Surface) bool {
		lang, ok := payload.(string)
		if !ok {
			return false
		}
		handled := false
		s.Update(func(st *document.State) {
			r, ok := st.Selection().(*document.RangeSelection)
			if !ok {
				return
			}
			code := document.FindMatchingParent(st.AnchorNode(r), document.IsOfType(document.TypeCode))
			if code == nil {
				return
			}
			st.SetLanguage(code, strings.ToLower(lang))
			handled = true
		})
		return handled
	}

	insertText := func(payload any, _ sdk.Surface) bool {
		text, ok := payload.(string)
		if !ok || text == "" {
			return false
		}
		handled := false
		s.Update(func(st *document.State) {
			r, ok := st.Selection().(*document.RangeSelection)
			if !ok || !r.IsCollapsed() {
				return
			}
			if err := insertTextAtCaret(st, r, text); err != nil {
				log.Warn("insert text failed", "error", err)
				return
			}
			handled = true
		})
		return handled
	}

	return []*sdk.Subscription{
		s.RegisterCommand(sdk.CommandFormatBlock, formatBlock, sdk.PriorityEditor),
		s.RegisterCommand(sdk.CommandFormatElement, formatElement, sdk.PriorityEditor),
		s.RegisterCommand(sdk.CommandIndent, indent(1), sdk.PriorityEditor),
		s.RegisterCommand(sdk.CommandOutdent, indent(-1), sdk.PriorityEditor),
		s.RegisterCommand(sdk.CommandPatchStyle, patchStyle, sdk.PriorityEditor),
		s.RegisterCommand(sdk.CommandClearFormatting, clearFormatting, sdk.PriorityEditor),
		s.RegisterCommand(sdk.CommandCodeLanguage, codeLanguage, sdk.PriorityEditor),
		s.RegisterCommand(sdk.CommandInsertText, insertText, sdk.PriorityEditor),
	}
}

func applyBlockFormat(st *document.State, blocks []*document.Node, target sdk.BlockFormat) error {
	if lt, ok := listTypeOf(target); ok {
		for _, b := range blocks {
			if b.Type() == document.TypeListItem {
				st.SetListType(b.Parent(), lt)
				continue
			}
			item := document.NewListItem()
			if err := st.ReplaceElement(b, item); err != nil {
				return err
			}
			if prev := item.PreviousSibling(); prev != nil && prev.Type() == document.TypeList && prev.ListType() == lt {
				if err := st.Append(prev, item); err != nil {
					return err
				}
				continue
			}
			if err := st.Wrap([]*document.Node{item}, document.NewList(lt)); err != nil {
				return err
			}
		}
		return nil
	}

	if newBlock(target) == nil {
		return nil
	}
	unwrapped := make(map[*document.Node]bool)
	for _, b := range blocks {
		if b.Type() != document.TypeListItem {
			if err := st.ReplaceElement(b, newBlock(target)); err != nil {
				return err
			}
			continue
		}
		list := b.Parent()
		if list == nil || unwrapped[list] {
			continue
		}
		unwrapped[list] = true
		for _, item := range append([]*document.Node(nil), list.Children()...) {
			if err := st.ReplaceElement(item, newBlock(target)); err != nil {
				return err
			}
		}
		if err := st.Unwrap(list); err != nil {
			return err
		}
	}
	return nil
}

func insertTextAtCaret(st *document.State, r *document.RangeSelection, text string) error {
	anchor := st.AnchorNode(r)
	if anchor == nil {
		return document.ErrNodeNotFound
	}
	inserted := []rune(text)

	if anchor.IsText() && anchor.Marks() == r.Format && anchor.Style() == r.Style {
		runes := []rune(anchor.Text())
		off := min(max(r.Anchor.Offset, 0), len(runes))
		st.SetText(anchor, string(runes[:off])+text+string(runes[off:]))
		r.Anchor.Offset = off + len(inserted)
		r.Focus = r.Anchor
		return nil
	}

	node := document.NewText(text).WithMarks(r.Format).WithStyle(r.Style)
	var err error
	switch {
	case anchor.IsText() && r.Anchor.Offset <= 0:
		err = st.InsertBefore(anchor, node)
	case anchor.IsText():
		if _, err = st.SplitText(anchor, r.Anchor.Offset); err == nil {
			err = st.InsertAfter(anchor, node)
		}
	case anchor.IsElement():
		if children := anchor.Children(); r.Anchor.Offset < len(children) {
			err = st.InsertBefore(children[r.Anchor.Offset], node)
		} else {
			err = st.Append(anchor, node)
		}
	default:
		err = st.InsertAfter(anchor, node)
	}
	if err != nil {
		return err
	}
	r.Anchor = document.Point{Key: node.Key(), Offset: len(inserted)}
	r.Focus = r.Anchor
	return nil
}
