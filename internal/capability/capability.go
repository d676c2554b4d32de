// Package capability holds the catalogue of editing capabilities a field can
// enable and resolves a field's configuration from host overrides.
package capability

import (
	"fmt"

	"github.com/felixgeelhaar/richfield/internal/editor/sdk"
	"github.com/felixgeelhaar/richfield/internal/plugin"
	"github.com/felixgeelhaar/richfield/internal/toolbar/item"
)

// ID identifies a capability.
type ID int

const (
	Bold ID = iota
	Italic
	Underline
	InlineCode
	EmojiPicker
	Lowercase
	Uppercase
	Capitalize
	Strikethrough
	Subscript
	Superscript
	ClearFormatting
	Link
	MediaImage
	HorizontalRule
	PageBreak
	Image
	InlineImage
	Table
	Columns
	Equation
	Collapsible
	Highlight

	idCount
)

var idNames = [...]string{
	Bold:            "bold",
	Italic:          "italic",
	Underline:       "underline",
	InlineCode:      "inlineCode",
	EmojiPicker:     "emojiPicker",
	Lowercase:       "lowercase",
	Uppercase:       "uppercase",
	Capitalize:      "capitalize",
	Strikethrough:   "strikethrough",
	Subscript:       "subscript",
	Superscript:     "superscript",
	ClearFormatting: "clearFormatting",
	Link:            "link",
	MediaImage:      "mediaImage",
	HorizontalRule:  "horizontalRule",
	PageBreak:       "pageBreak",
	Image:           "image",
	InlineImage:     "inlineImage",
	Table:           "table",
	Columns:         "columns",
	Equation:        "equation",
	Collapsible:     "collapsible",
	Highlight:       "highlight",
}

// Every ID needs a name.
var _ [0]struct{} = [len(idNames) - int(idCount)]struct{}{}

var idsByName = func() map[string]ID {
	m := make(map[string]ID, idCount)
	for id, name := range idNames {
		m[name] = ID(id)
	}
	return m
}()

// String returns the id used in configuration keys.
func (id ID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("capability(%d)", int(id))
	}
	return idNames[id]
}

// Valid reports whether id is a known capability.
func (id ID) Valid() bool { return id >= 0 && id < idCount }

// Parse maps a configuration id such as "bold" to its ID.
func Parse(name string) (ID, error) {
	id, ok := idsByName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", sdk.ErrUnknownCapability, name)
	}
	return id, nil
}

// All returns every capability in declaration order.
func All() []ID {
	ids := make([]ID, idCount)
	for i := range ids {
		ids[i] = ID(i)
	}
	return ids
}

// Descriptor describes one capability. Plugin and Item are optional: some
// capabilities only add a toolbar control, others only an editor extension.
type Descriptor struct {
	ID                 ID
	DefaultLabel       string
	DefaultDescription string
	EnabledByDefault   bool
	Plugin             *plugin.Factory
	Item               item.Renderer
}

func catalogue() []Descriptor {
	return []Descriptor{
		{ID: Bold, DefaultLabel: "Bold", DefaultDescription: "Enable bold text", EnabledByDefault: true, Plugin: plugin.TextFormat, Item: item.Bold},
		{ID: Italic, DefaultLabel: "Italic", DefaultDescription: "Enable italic text", EnabledByDefault: true, Plugin: plugin.TextFormat, Item: item.Italic},
		{ID: Underline, DefaultLabel: "Underline", DefaultDescription: "Enable underlining of text", EnabledByDefault: true, Plugin: plugin.TextFormat, Item: item.Underline},
		{ID: InlineCode, DefaultLabel: "Inline Code", DefaultDescription: "Enable inline monospace-code", Plugin: plugin.TextFormat, Item: item.InlineCode},
		{ID: EmojiPicker, DefaultLabel: "Emoji Picker", DefaultDescription: "Enable emoji picker", Plugin: plugin.Emoji, Item: item.EmojiPicker},
		{ID: Lowercase, DefaultLabel: "Lowercase", DefaultDescription: "Enable inline lowercase", Plugin: plugin.TextFormat, Item: item.Lowercase},
		{ID: Uppercase, DefaultLabel: "Uppercase", DefaultDescription: "Enable inline uppercase", Plugin: plugin.TextFormat, Item: item.Uppercase},
		{ID: Capitalize, DefaultLabel: "Capitalize", DefaultDescription: "Enable inline capitalize", Plugin: plugin.TextFormat, Item: item.Capitalize},
		{ID: Strikethrough, DefaultLabel: "Strikethrough", DefaultDescription: "Enable inline strikethrough", Plugin: plugin.TextFormat, Item: item.Strikethrough},
		{ID: Subscript, DefaultLabel: "Subscript", DefaultDescription: "Enable inline subscript", Plugin: plugin.TextFormat, Item: item.Subscript},
		{ID: Superscript, DefaultLabel: "Superscript", DefaultDescription: "Enable inline superscript", Plugin: plugin.TextFormat, Item: item.Superscript},
		{ID: ClearFormatting, DefaultLabel: "Clear Formatting", DefaultDescription: "Enable button to clear formatting", Item: item.ClearFormatting},
		{ID: Link, DefaultLabel: "Links", DefaultDescription: "Enable links to internal and external targets", EnabledByDefault: true, Plugin: plugin.Link, Item: item.Link},
		{ID: MediaImage, DefaultLabel: "Media Library Images", DefaultDescription: "Enable embedding images from the media library", Plugin: plugin.MediaImage, Item: item.MediaImage},
		{ID: HorizontalRule, DefaultLabel: "Horizontal Rule", DefaultDescription: "Enable horizontal rule", Plugin: plugin.Dividers, Item: item.HorizontalRule},
		{ID: PageBreak, DefaultLabel: "Page Break", DefaultDescription: "Enable page break", Plugin: plugin.Dividers, Item: item.PageBreak},
		{ID: Image, DefaultLabel: "Image", DefaultDescription: "Enable image", Plugin: plugin.Images, Item: item.Image},
		{ID: InlineImage, DefaultLabel: "Inline Image", DefaultDescription: "Enable inline image", Plugin: plugin.Images, Item: item.InlineImage},
		{ID: Table, DefaultLabel: "Table", DefaultDescription: "Enable table", Plugin: plugin.Table, Item: item.Table},
		{ID: Columns, DefaultLabel: "Columns", DefaultDescription: "Enable columns", Plugin: plugin.Layout, Item: item.Columns},
		{ID: Equation, DefaultLabel: "Equation", DefaultDescription: "Enable equation", Plugin: plugin.Equation, Item: item.Equation},
		{ID: Collapsible, DefaultLabel: "Collapsible", DefaultDescription: "Enable collapsible", Plugin: plugin.Collapsible, Item: item.Collapsible},
		{ID: Highlight, DefaultLabel: "Highlight", DefaultDescription: "Enable inline highlight", Plugin: plugin.TextFormat, Item: item.Highlight},
	}
}
