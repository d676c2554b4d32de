package plugin

import (
	"github.com/felixgeelhaar/richfield/internal/editor/document"
	"github.com/felixgeelhaar/richfield/internal/editor/sdk"
)

func installLink(s sdk.Surface, env Env) []*sdk.Subscription {
	log := env.logger()

	toggle := func(payload any, _ sdk.Surface) bool {
		var url *string
		switch v := payload.(type) {
		case *string:
			url = v
		case string:
			url = &v
		case nil:
		default:
			return false
		}

		handled := false
		s.Update(func(st *document.State) {
			r, ok := st.Selection().(*document.RangeSelection)
			if !ok {
				return
			}
			var err error
			if url == nil {
				handled, err = removeLinks(st, r)
			} else {
				handled, err = applyLink(st, r, *url)
			}
			if err != nil {
				log.Warn("toggle link failed", "error", err)
			}
		})
		return handled
	}

	return []*sdk.Subscription{
		s.RegisterCommand(sdk.CommandToggleLink, toggle, sdk.PriorityEditor),
	}
}

func enclosingLink(n *document.Node) *document.Node {
	return document.FindMatchingParent(n, document.IsOfType(document.TypeLink))
}

func removeLinks(st *document.State, r *document.RangeSelection) (bool, error) {
	seen := make(map[*document.Node]bool)
	for _, n := range st.SelectedTextNodes(r) {
		link := enclosingLink(n)
		if link == nil || seen[link] {
			continue
		}
		seen[link] = true
		if err := st.Unwrap(link); err != nil {
			return false, err
		}
	}
	return len(seen) > 0, nil
}

func applyLink(st *document.State, r *document.RangeSelection, url string) (bool, error) {
	if link := enclosingLink(st.SelectedNode(r)); link != nil {
		st.SetURL(link, url)
		return true, nil
	}
	if r.IsCollapsed() {
		return false, nil
	}

	if err := isolateRange(st, r); err != nil {
		return false, err
	}

	var group []*document.Node
	wrap := func() error {
		if len(group) == 0 {
			return nil
		}
		err := st.Wrap(group, document.NewLink(url))
		group = nil
		return err
	}
	for _, n := range st.SelectedTextNodes(r) {
		if enclosingLink(n) != nil {
			continue
		}
		if len(group) > 0 && group[len(group)-1].NextSibling() != n {
			if err := wrap(); err != nil {
				return false, err
			}
		}
		group = append(group, n)
	}
	if err := wrap(); err != nil {
		return false, err
	}
	return true, nil
}

// isolateRange splits the text nodes at both ends of r so that the selected
// text is made of whole nodes, and rewrites r to cover exactly those nodes.
func isolateRange(st *document.State, r *document.RangeSelection) error {
	start, end := r.Anchor, r.Focus
	if st.IsBackward(r) {
		start, end = end, start
	}
	startNode, endNode := st.NodeByKey(start.Key), st.NodeByKey(end.Key)
	if startNode == nil || endNode == nil || !startNode.IsText() || !endNode.IsText() {
		return nil
	}

	if _, err := st.SplitText(endNode, end.Offset); err != nil {
		return err
	}
	first := startNode
	right, err := st.SplitText(startNode, start.Offset)
	if err != nil {
		return err
	}
	if right != nil {
		first = right
		if startNode == endNode {
			endNode = right
		}
	}

	r.Anchor = document.Point{Key: first.Key(), Offset: 0}
	r.Focus = document.Point{Key: endNode.Key(), Offset: len([]rune(endNode.Text()))}
	return nil
}
