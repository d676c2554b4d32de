package item

import (
	"github.com/felixgeelhaar/richfield/internal/editor/sdk"
	"github.com/felixgeelhaar/richfield/internal/linksearch"
)

// Link toggles a link on the selection. Adding a link opens the floating
// link editor on a placeholder URL; removing it closes the editor.
func Link(p Props) *Control {
	d := p.deps()
	isLink := p.Snapshot.IsLink
	return &Control{
		Key:      "link",
		Kind:     KindButton,
		Label:    p.label("Insert link"),
		Icon:     "format link",
		Title:    p.title("Insert link"),
		Active:   isLink,
		Disabled: !d.IsEditable(),
		action: func() error {
			if !isLink {
				if err := d.SetLinkEditMode(true); err != nil {
					return err
				}
				url := linksearch.SanitizeURL("https://")
				return d.Dispatch(sdk.CommandToggleLink, &url)
			}
			if err := d.SetLinkEditMode(false); err != nil {
				return err
			}
			return d.Dispatch(sdk.CommandToggleLink, nil)
		},
	}
}
