package item

import "github.com/felixgeelhaar/richfield/internal/editor/sdk"

// Undo reverts the last change of the active surface.
func Undo(p Props) *Control {
	d := p.deps()
	return &Control{
		Key:      "actions.history.undo",
		Kind:     KindButton,
		Label:    p.label("Undo"),
		Icon:     "format undo",
		Title:    p.title("Undo"),
		Shortcut: "Ctrl+Z",
		Disabled: !p.Snapshot.CanUndo || !d.IsEditable(),
		action: func() error {
			return d.Dispatch(sdk.CommandUndo, nil)
		},
	}
}

// Redo reapplies the last undone change.
func Redo(p Props) *Control {
	d := p.deps()
	return &Control{
		Key:      "actions.history.redo",
		Kind:     KindButton,
		Label:    p.label("Redo"),
		Icon:     "format redo",
		Title:    p.title("Redo"),
		Shortcut: "Ctrl+Y",
		Disabled: !p.Snapshot.CanRedo || !d.IsEditable(),
		action: func() error {
			return d.Dispatch(sdk.CommandRedo, nil)
		},
	}
}
