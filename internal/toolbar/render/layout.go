package render

import "github.com/felixgeelhaar/richfield/internal/toolbar/state"

// Toolbar keys that are not capabilities.
const (
	KeyUndo         = "actions.history.undo"
	KeyRedo         = "actions.history.redo"
	KeyBlockTypes   = "meta.blockTypes"
	KeyCodeLanguage = "meta.codeLanguage"
	KeyAlignment    = "meta.alignment"
	KeyFontFamily   = "meta.fontFamily"
	KeyFontSize     = "meta.fontSize"
	KeyFontColor    = "meta.fontColor"
	KeyBgColor      = "meta.bgColor"

	nodeTypePrefix = "nodeType."
)

// NodeType returns the toolbar key of a capability id such as "bold".
func NodeType(id string) string { return nodeTypePrefix + id }

// SectionKind is how a section is drawn.
type SectionKind int

const (
	// SectionGroup draws its items inline.
	SectionGroup SectionKind = iota
	// SectionDropdown folds its items into one dropdown.
	SectionDropdown
)

// Section is a run of toolbar keys drawn together and followed by a
// divider. A section whose keys all render nothing is omitted, divider
// included.
type Section struct {
	Kind  SectionKind
	Key   string
	Label string
	Icon  string
	Title string
	Keys  []string

	// Hidden omits the section for the given snapshot.
	Hidden func(state.Snapshot) bool
}

// Group returns an inline section.
func Group(keys ...string) Section {
	return Section{Kind: SectionGroup, Keys: keys}
}

// Dropdown returns a section folded into a dropdown.
func Dropdown(key, label, icon, title string, keys ...string) Section {
	return Section{Kind: SectionDropdown, Key: key, Label: label, Icon: icon, Title: title, Keys: keys}
}

func (s Section) hidden(snap state.Snapshot) bool {
	return s.Hidden != nil && s.Hidden(snap)
}

// DefaultLayout is the field toolbar.
func DefaultLayout() []Section {
	insert := Dropdown("insert", "Insert", "icon plus", "Insert specialized editor node",
		NodeType("horizontalRule"),
		NodeType("pageBreak"),
		NodeType("image"),
		NodeType("inlineImage"),
		NodeType("table"),
		NodeType("columns"),
		NodeType("equation"),
		NodeType("collapsible"),
	)
	insert.Hidden = func(s state.Snapshot) bool { return s.IsImageCaption }

	return []Section{
		Group(KeyUndo, KeyRedo),
		Group(KeyBlockTypes),
		Group(NodeType("bold"), NodeType("italic"), NodeType("underline"), NodeType("inlineCode")),
		Group(NodeType("link"), NodeType("mediaImage"), NodeType("emojiPicker")),
		Dropdown("more", "", "icon dropdown-more", "Formatting options for additional text styles",
			NodeType("lowercase"),
			NodeType("uppercase"),
			NodeType("capitalize"),
			NodeType("strikethrough"),
			NodeType("subscript"),
			NodeType("superscript"),
			NodeType("highlight"),
			NodeType("clearFormatting"),
		),
		insert,
		Group(KeyCodeLanguage, KeyAlignment),
		Group(KeyFontFamily, KeyFontSize, KeyFontColor, KeyBgColor),
	}
}
