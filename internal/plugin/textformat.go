package plugin

import (
	"github.com/felixgeelhaar/richfield/internal/editor/document"
	"github.com/felixgeelhaar/richfield/internal/editor/sdk"
)

func installTextFormat(s sdk.Surface, _ Env) []*sdk.Subscription {
	formatText := func(payload any, _ sdk.Surface) bool {
		f, ok := payload.(document.Format)
		if !ok || f == 0 {
			return false
		}
		handled := false
		s.Update(func(st *document.State) {
			sel := st.Selection()
			switch v := sel.(type) {
			case *document.RangeSelection:
				if !v.IsCollapsed() {
					toggleMarks(st, st.SelectedTextNodes(v), f)
				}
				v.Format = v.Format.Toggle(f)
				handled = true
			case *document.TableSelection:
				toggleMarks(st, st.SelectedTextNodes(v), f)
				handled = true
			}
		})
		return handled
	}

	return []*sdk.Subscription{
		s.RegisterCommand(sdk.CommandFormatText, formatText, sdk.PriorityEditor),
	}
}

// toggleMarks removes f from every node when all of them carry it, and adds it
// to the rest otherwise.
func toggleMarks(st *document.State, nodes []*document.Node, f document.Format) {
	all := len(nodes) > 0
	for _, n := range nodes {
		if !n.Marks().Has(f) {
			all = false
			break
		}
	}
	for _, n := range nodes {
		if all || !n.Marks().Has(f) {
			st.SetMarks(n, n.Marks().Toggle(f))
		}
	}
}
