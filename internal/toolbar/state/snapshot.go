// Package state derives the toolbar's view of the selection. A Synchronizer
// listens to the editing surfaces and publishes an immutable Snapshot after
// every relevant change.
package state

import "github.com/felixgeelhaar/richfield/internal/editor/document"

// BlockType is the block format shown by the block type dropdown.
type BlockType string

const (
	BlockParagraph BlockType = "paragraph"
	BlockH1        BlockType = "h1"
	BlockH2        BlockType = "h2"
	BlockH3        BlockType = "h3"
	BlockH4        BlockType = "h4"
	BlockH5        BlockType = "h5"
	BlockH6        BlockType = "h6"
	BlockBullet    BlockType = "bullet"
	BlockNumber    BlockType = "number"
	BlockCheck     BlockType = "check"
	BlockQuote     BlockType = "quote"
	BlockCode      BlockType = "code"
)

// BlockNames maps the recognized block types to their display names.
var BlockNames = map[BlockType]string{
	BlockBullet:    "Bulleted List",
	BlockCheck:     "Check List",
	BlockCode:      "Code Block",
	BlockH1:        "Heading 1",
	BlockH2:        "Heading 2",
	BlockH3:        "Heading 3",
	BlockH4:        "Heading 4",
	BlockH5:        "Heading 5",
	BlockH6:        "Heading 6",
	BlockNumber:    "Numbered List",
	BlockParagraph: "Normal",
	BlockQuote:     "Quote",
}

// Recognized reports whether b is a block type the toolbar can display.
func (b BlockType) Recognized() bool {
	_, ok := BlockNames[b]
	return ok
}

// RootType tells whether the selection sits in the document root or in a
// table.
type RootType string

const (
	RootDocument RootType = "root"
	RootTable    RootType = "table"
)

// Style fallbacks used when the selection carries no explicit value.
const (
	DefaultFontColor  = "#000"
	DefaultBgColor    = "#fff"
	DefaultFontFamily = "Arial"
	DefaultFontSize   = "15px"
)

// Snapshot is the toolbar state derived from one version of the selection.
// Snapshots are values; a new one replaces the previous one wholesale.
type Snapshot struct {
	BlockType     BlockType
	RootType      RootType
	ElementFormat document.Alignment

	// Formats holds the text marks applied across the whole selection.
	Formats document.Format

	IsLink         bool
	IsRTL          bool
	FontColor      string
	BgColor        string
	FontFamily     string
	FontSize       string
	CodeLanguage   string
	CanUndo        bool
	CanRedo        bool
	IsImageCaption bool
}

// DefaultSnapshot is the state shown before the first derivation.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		BlockType:     BlockParagraph,
		RootType:      RootDocument,
		ElementFormat: document.AlignLeft,
		FontColor:     DefaultFontColor,
		BgColor:       DefaultBgColor,
		FontFamily:    DefaultFontFamily,
		FontSize:      DefaultFontSize,
	}
}

// Has reports whether format f applies to the whole selection.
func (s Snapshot) Has(f document.Format) bool { return s.Formats.Has(f) }

func (s Snapshot) IsBold() bool          { return s.Has(document.FormatBold) }
func (s Snapshot) IsItalic() bool        { return s.Has(document.FormatItalic) }
func (s Snapshot) IsUnderline() bool     { return s.Has(document.FormatUnderline) }
func (s Snapshot) IsStrikethrough() bool { return s.Has(document.FormatStrikethrough) }
func (s Snapshot) IsSubscript() bool     { return s.Has(document.FormatSubscript) }
func (s Snapshot) IsSuperscript() bool   { return s.Has(document.FormatSuperscript) }
func (s Snapshot) IsCode() bool          { return s.Has(document.FormatCode) }
func (s Snapshot) IsLowercase() bool     { return s.Has(document.FormatLowercase) }
func (s Snapshot) IsUppercase() bool     { return s.Has(document.FormatUppercase) }
func (s Snapshot) IsCapitalize() bool    { return s.Has(document.FormatCapitalize) }
