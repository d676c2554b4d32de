package plugin

import (
	"fmt"
	"strconv"

	"github.com/felixgeelhaar/richfield/internal/editor/document"
	"github.com/felixgeelhaar/richfield/internal/editor/sdk"
)

// Defaults of the table dialog.
const (
	DefaultTableRows    = 5
	DefaultTableColumns = 5
)

// insertHandler builds a handler that inserts the node built from payload.
// build returns nil to reject the payload.
func insertHandler(s sdk.Surface, env Env, inline bool, build func(payload any) []*document.Node) sdk.CommandHandler {
	return func(payload any, _ sdk.Surface) bool {
		nodes := build(payload)
		if len(nodes) == 0 {
			return false
		}
		insert := insertBlock
		if inline {
			insert = insertInline
		}
		handled := true
		s.Update(func(st *document.State) {
			if err := insertAll(st, nodes, insert); err != nil {
				env.logger().Warn("insert failed", "nodes", len(nodes), "error", err)
				handled = false
				return
			}
			if last := nodes[len(nodes)-1]; last.IsDecorator() {
				st.SetSelection(&document.NodeSelection{Keys: []document.Key{last.Key()}})
			}
		})
		return handled
	}
}

// insertAll inserts nodes in order. When one fails, st is restored to its
// content before the first insertion.
func insertAll(st *document.State, nodes []*document.Node, insert func(*document.State, *document.Node) error) error {
	var before *document.State
	if len(nodes) > 1 {
		before = st.Clone()
	}
	for i, n := range nodes {
		if err := insert(st, n); err != nil {
			if before != nil && i > 0 {
				st.Replace(before)
			}
			return fmt.Errorf("insert %s: %w", n.Type(), err)
		}
	}
	return nil
}

func imageNode(t document.NodeType, p sdk.ImagePayload, source string) *document.Node {
	attrs := map[string]string{
		"src":     p.Src,
		"altText": p.AltText,
		"caption": strconv.FormatBool(p.Caption),
	}
	if source != "" {
		attrs["source"] = source
	}
	return document.NewDecorator(t, attrs)
}

func installImages(s sdk.Surface, env Env) []*sdk.Subscription {
	build := func(t document.NodeType) func(any) []*document.Node {
		return func(payload any) []*document.Node {
			p, ok := payload.(sdk.ImagePayload)
			if !ok || p.Src == "" {
				return nil
			}
			return []*document.Node{imageNode(t, p, "")}
		}
	}
	return []*sdk.Subscription{
		s.RegisterCommand(sdk.CommandInsertImage,
			insertHandler(s, env, false, build(document.TypeImage)), sdk.PriorityEditor),
		s.RegisterCommand(sdk.CommandInsertInlineImage,
			insertHandler(s, env, true, build(document.TypeInlineImage)), sdk.PriorityEditor),
	}
}

func installMediaImage(s sdk.Surface, env Env) []*sdk.Subscription {
	build := func(payload any) []*document.Node {
		assets, ok := payload.([]sdk.ImagePayload)
		if !ok {
			return nil
		}
		var nodes []*document.Node
		for _, a := range assets {
			if a.Src == "" {
				continue
			}
			nodes = append(nodes, imageNode(document.TypeImage, a, "media-library"))
		}
		return nodes
	}
	return []*sdk.Subscription{
		s.RegisterCommand(sdk.CommandInsertMediaImage, insertHandler(s, env, false, build), sdk.PriorityEditor),
	}
}

func installDividers(s sdk.Surface, env Env) []*sdk.Subscription {
	decorator := func(t document.NodeType) func(any) []*document.Node {
		return func(any) []*document.Node {
			return []*document.Node{document.NewDecorator(t, nil)}
		}
	}
	return []*sdk.Subscription{
		s.RegisterCommand(sdk.CommandInsertHorizontalRule,
			insertHandler(s, env, false, decorator(document.TypeHorizontalRule)), sdk.PriorityEditor),
		s.RegisterCommand(sdk.CommandInsertPageBreak,
			insertHandler(s, env, false, decorator(document.TypePageBreak)), sdk.PriorityEditor),
	}
}

func installTable(s sdk.Surface, env Env) []*sdk.Subscription {
	build := func(payload any) []*document.Node {
		p, _ := payload.(sdk.TablePayload)
		if p.Rows == 0 && p.Columns == 0 {
			p = sdk.TablePayload{Rows: DefaultTableRows, Columns: DefaultTableColumns}
		}
		if p.Rows < 1 || p.Columns < 1 {
			return nil
		}
		rows := make([]*document.Node, 0, p.Rows)
		for i := 0; i < p.Rows; i++ {
			cells := make([]*document.Node, 0, p.Columns)
			for j := 0; j < p.Columns; j++ {
				cells = append(cells, document.NewTableCell(document.NewParagraph()))
			}
			rows = append(rows, document.NewTableRow(cells...))
		}
		return []*document.Node{document.NewTable(rows...)}
	}
	return []*sdk.Subscription{
		s.RegisterCommand(sdk.CommandInsertTable, insertHandler(s, env, false, build), sdk.PriorityEditor),
	}
}

func installLayout(s sdk.Surface, env Env) []*sdk.Subscription {
	build := func(payload any) []*document.Node {
		columns, ok := payload.(int)
		if !ok || columns < 1 {
			return nil
		}
		items := make([]*document.Node, 0, columns)
		for i := 0; i < columns; i++ {
			items = append(items, document.NewLayoutItem(document.NewParagraph()))
		}
		return []*document.Node{document.NewLayout(items...)}
	}
	return []*sdk.Subscription{
		s.RegisterCommand(sdk.CommandInsertLayout, insertHandler(s, env, false, build), sdk.PriorityEditor),
	}
}

func installEquation(s sdk.Surface, env Env) []*sdk.Subscription {
	build := func(inline bool) func(any) []*document.Node {
		return func(payload any) []*document.Node {
			p, ok := payload.(sdk.EquationPayload)
			if !ok || p.Equation == "" || p.Inline != inline {
				return nil
			}
			return []*document.Node{document.NewDecorator(document.TypeEquation, map[string]string{
				"equation": p.Equation,
				"inline":   strconv.FormatBool(p.Inline),
			})}
		}
	}
	// Block and inline equations share the command; each handler claims its own shape.
	return []*sdk.Subscription{
		s.RegisterCommand(sdk.CommandInsertEquation, insertHandler(s, env, true, build(true)), sdk.PriorityEditor),
		s.RegisterCommand(sdk.CommandInsertEquation, insertHandler(s, env, false, build(false)), sdk.PriorityEditor),
	}
}

func installCollapsible(s sdk.Surface, env Env) []*sdk.Subscription {
	build := func(any) []*document.Node {
		return []*document.Node{document.NewCollapsible(document.NewParagraph())}
	}
	return []*sdk.Subscription{
		s.RegisterCommand(sdk.CommandInsertCollapsible, insertHandler(s, env, false, build), sdk.PriorityEditor),
	}
}
