package item

import (
	"github.com/felixgeelhaar/richfield/internal/editor/document"
	"github.com/felixgeelhaar/richfield/internal/editor/sdk"
)

// FormatButton renders a toggle for one text mark.
func FormatButton(key string, f document.Format, label, icon, title string) Renderer {
	return func(p Props) *Control {
		d := p.deps()
		return &Control{
			Key:      key,
			Kind:     KindButton,
			Label:    p.label(label),
			Icon:     icon,
			Title:    p.title(title),
			Active:   p.Snapshot.Has(f),
			Disabled: !d.IsEditable(),
			action: func() error {
				return d.Dispatch(sdk.CommandFormatText, f)
			},
		}
	}
}

var (
	Bold          = FormatButton("bold", document.FormatBold, "Bold", "format bold", "Format text as bold")
	Italic        = FormatButton("italic", document.FormatItalic, "Italic", "format italic", "Format text as italics")
	Underline     = FormatButton("underline", document.FormatUnderline, "Underline", "format underline", "Format text to underlined")
	InlineCode    = FormatButton("inlineCode", document.FormatCode, "Insert code block", "format code", "Insert code block")
	Lowercase     = FormatButton("lowercase", document.FormatLowercase, "Lowercase", "icon lowercase", "Format text to lowercase")
	Uppercase     = FormatButton("uppercase", document.FormatUppercase, "Uppercase", "icon uppercase", "Format text to uppercase")
	Capitalize    = FormatButton("capitalize", document.FormatCapitalize, "Capitalize", "icon capitalize", "Format text to capitalize")
	Strikethrough = FormatButton("strikethrough", document.FormatStrikethrough, "Strikethrough", "icon strikethrough", "Format text with a strikethrough")
	Subscript     = FormatButton("subscript", document.FormatSubscript, "Subscript", "icon subscript", "Format text with a subscript")
	Superscript   = FormatButton("superscript", document.FormatSuperscript, "Superscript", "icon superscript", "Format text with a superscript")
	Highlight     = FormatButton("highlight", document.FormatHighlight, "Highlight", "icon highlight", "Format text with a highlight")
)

// ClearFormatting removes marks, inline styles and block formatting from the
// selection.
func ClearFormatting(p Props) *Control {
	d := p.deps()
	return &Control{
		Key:      "clearFormatting",
		Kind:     KindButton,
		Label:    p.label("Clear Formatting"),
		Icon:     "icon clear",
		Title:    p.title("Clear all text formatting"),
		Disabled: !d.IsEditable(),
		action: func() error {
			return d.Dispatch(sdk.CommandClearFormatting, nil)
		},
	}
}
