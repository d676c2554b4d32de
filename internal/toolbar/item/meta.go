package item

import (
	"strconv"

	"github.com/felixgeelhaar/richfield/internal/editor/document"
	"github.com/felixgeelhaar/richfield/internal/editor/sdk"
	"github.com/felixgeelhaar/richfield/internal/toolbar/state"
)

// BlockFormatOptions are the entries of the block format dropdown.
var BlockFormatOptions = []state.BlockType{
	state.BlockParagraph,
	state.BlockH1, state.BlockH2, state.BlockH3,
	state.BlockBullet, state.BlockNumber, state.BlockCheck,
	state.BlockQuote, state.BlockCode,
}

func isListBlock(b state.BlockType) bool {
	return b == state.BlockBullet || b == state.BlockNumber || b == state.BlockCheck
}

// BlockFormat is the block type dropdown. Choosing the list type the
// selection already has turns it back into paragraphs; choosing any other
// current type does nothing.
func BlockFormat(p Props) *Control {
	d := p.deps()
	current := p.Snapshot.BlockType
	editable := d.IsEditable()

	c := &Control{
		Key:      "meta.blockTypes",
		Kind:     KindDropdown,
		Label:    p.label(state.BlockNames[current]),
		Icon:     "icon block-type " + string(current),
		Title:    p.title("Formatting options for text style"),
		Value:    string(current),
		Disabled: !editable,
	}
	for _, bt := range BlockFormatOptions {
		bt := bt
		c.Children = append(c.Children, &Control{
			Key:      string(bt),
			Kind:     KindOption,
			Label:    state.BlockNames[bt],
			Icon:     "icon " + string(bt),
			Active:   bt == current,
			Disabled: !editable,
			action: func() error {
				target := bt
				switch {
				case target == state.BlockParagraph:
				case target == current && isListBlock(target):
					target = state.BlockParagraph
				case target == current:
					return nil
				}
				return d.Dispatch(sdk.CommandFormatBlock, sdk.BlockFormat(target))
			},
		})
	}
	return c
}

// CodeLanguage is the language dropdown shown inside a code block.
func CodeLanguage(p Props) *Control {
	d := p.deps()
	editable := d.IsEditable()
	current := p.Snapshot.CodeLanguage

	c := &Control{
		Key:      "meta.codeLanguage",
		Kind:     KindDropdown,
		Label:    p.label(state.CodeLanguageName(current)),
		Title:    p.title("Select language"),
		Value:    current,
		Disabled: !editable,
	}
	for _, lang := range state.CodeLanguages() {
		id := lang.ID
		c.Children = append(c.Children, &Control{
			Key:      id,
			Kind:     KindOption,
			Label:    lang.Name,
			Active:   id == current,
			Disabled: !editable,
			action: func() error {
				return d.Dispatch(sdk.CommandCodeLanguage, id)
			},
		})
	}
	return c
}

type alignmentOption struct {
	format  document.Alignment
	name    string
	icon    string
	iconRTL string
}

var alignmentOptions = []alignmentOption{
	{document.AlignLeft, "Left Align", "left-align", "left-align"},
	{document.AlignCenter, "Center Align", "center-align", "center-align"},
	{document.AlignRight, "Right Align", "right-align", "right-align"},
	{document.AlignJustify, "Justify Align", "justify-align", "justify-align"},
	{document.AlignStart, "Start Align", "left-align", "right-align"},
	{document.AlignEnd, "End Align", "right-align", "left-align"},
}

func (o alignmentOption) iconFor(rtl bool) string {
	if rtl {
		return "icon " + o.iconRTL
	}
	return "icon " + o.icon
}

// Alignment is the element format dropdown, with indent and outdent.
func Alignment(p Props) *Control {
	d := p.deps()
	editable := d.IsEditable()
	rtl := p.Snapshot.IsRTL
	value := p.Snapshot.ElementFormat
	if value == document.AlignNone {
		value = document.AlignLeft
	}

	current := alignmentOptions[0]
	for _, o := range alignmentOptions {
		if o.format == value {
			current = o
		}
	}

	c := &Control{
		Key:      "meta.alignment",
		Kind:     KindDropdown,
		Label:    p.label(current.name),
		Icon:     current.iconFor(rtl),
		Title:    p.title("Formatting options for text alignment"),
		Value:    string(value),
		Disabled: !editable,
	}
	for _, o := range alignmentOptions {
		format := o.format
		c.Children = append(c.Children, &Control{
			Key:      string(format),
			Kind:     KindOption,
			Label:    o.name,
			Icon:     o.iconFor(rtl),
			Active:   format == value,
			Disabled: !editable,
			action: func() error {
				return d.Dispatch(sdk.CommandFormatElement, format)
			},
		})
	}

	outdent, indent := "icon outdent", "icon indent"
	if rtl {
		outdent, indent = indent, outdent
	}
	c.Children = append(c.Children,
		divider(),
		&Control{
			Key:      "outdent",
			Kind:     KindOption,
			Label:    "Outdent",
			Icon:     outdent,
			Disabled: !editable,
			action:   func() error { return d.Dispatch(sdk.CommandOutdent, nil) },
		},
		&Control{
			Key:      "indent",
			Kind:     KindOption,
			Label:    "Indent",
			Icon:     indent,
			Disabled: !editable,
			action:   func() error { return d.Dispatch(sdk.CommandIndent, nil) },
		},
	)
	return c
}

// DefaultFontFamilies are offered when the field configures none.
var DefaultFontFamilies = []string{
	"Arial",
	"Courier New",
	"Georgia",
	"Times New Roman",
	"Trebuchet MS",
	"Verdana",
}

// Font size bounds used when the field configures none.
const (
	DefaultMinFontSize = 10
	DefaultMaxFontSize = 20
)

func styleDropdown(p Props, key, property, value, title, icon string, options []string) *Control {
	d := p.deps()
	editable := d.IsEditable()
	c := &Control{
		Key:      key,
		Kind:     KindDropdown,
		Label:    p.label(value),
		Icon:     icon,
		Title:    p.title(title),
		Value:    value,
		Disabled: !editable,
	}
	for _, option := range options {
		patch := sdk.StylePatch{Styles: map[string]string{property: option}}
		c.Children = append(c.Children, &Control{
			Key:      option,
			Kind:     KindOption,
			Label:    option,
			Active:   option == value,
			Disabled: !editable,
			action: func() error {
				return d.Dispatch(sdk.CommandPatchStyle, patch)
			},
		})
	}
	return c
}

// FontFamily renders the font family dropdown. An empty list uses
// DefaultFontFamilies.
func FontFamily(families []string) Renderer {
	if len(families) == 0 {
		families = DefaultFontFamilies
	}
	return func(p Props) *Control {
		return styleDropdown(p, "meta.fontFamily", "font-family", p.Snapshot.FontFamily,
			"Formatting options for font family", "icon block-type font-family", families)
	}
}

// FontSize renders the font size dropdown with one entry per pixel size
// between minSize and maxSize. Non-positive bounds use the defaults.
func FontSize(minSize, maxSize int) Renderer {
	if minSize <= 0 {
		minSize = DefaultMinFontSize
	}
	if maxSize < minSize {
		maxSize = max(DefaultMaxFontSize, minSize)
	}
	sizes := make([]string, 0, maxSize-minSize+1)
	for s := minSize; s <= maxSize; s++ {
		sizes = append(sizes, strconv.Itoa(s)+"px")
	}
	return func(p Props) *Control {
		return styleDropdown(p, "meta.fontSize", "font-size", p.Snapshot.FontSize,
			"Formatting options for font size", "", sizes)
	}
}

func colorControl(p Props, key, property, value, title, icon string) *Control {
	d := p.deps()
	return &Control{
		Key:      key,
		Kind:     KindColor,
		Label:    p.label(value),
		Icon:     icon,
		Title:    p.title(title),
		Value:    value,
		Disabled: !d.IsEditable(),
		pick: func(v string, skipHistory bool) error {
			return d.Dispatch(sdk.CommandPatchStyle, sdk.StylePatch{
				Styles:      map[string]string{property: v},
				SkipHistory: skipHistory,
			})
		},
	}
}

// FontColor is the text color picker.
func FontColor(p Props) *Control {
	return colorControl(p, "meta.fontColor", "color", p.Snapshot.FontColor, "Formatting text color", "icon font-color")
}

// BgColor is the background color picker.
func BgColor(p Props) *Control {
	return colorControl(p, "meta.bgColor", "background-color", p.Snapshot.BgColor, "Formatting background color", "icon bg-color")
}
