package item

import (
	"sort"

	"github.com/felixgeelhaar/richfield/internal/editor/sdk"
	"github.com/felixgeelhaar/richfield/internal/plugin"
)

// EmojiPicker offers the known emoji shortcodes.
func EmojiPicker(p Props) *Control {
	d := p.deps()
	editable := d.IsEditable()

	codes := make([]string, 0, len(plugin.Emojis))
	for code := range plugin.Emojis {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	c := &Control{
		Key:      "emojiPicker",
		Kind:     KindDropdown,
		Label:    p.label("Emoji"),
		Icon:     "icon emoji",
		Title:    p.title("Insert emoji"),
		Disabled: !editable,
	}
	for _, code := range codes {
		code := code
		c.Children = append(c.Children, &Control{
			Key:      code,
			Kind:     KindOption,
			Label:    plugin.Emojis[code] + " :" + code + ":",
			Disabled: !editable,
			action: func() error {
				return d.Dispatch(sdk.CommandInsertEmoji, code)
			},
		})
	}
	return c
}
