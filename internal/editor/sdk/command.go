package sdk

// Command names an imperative action on the editor command bus.
type Command string

const (
	CommandSelectionChange Command = "selection.change"
	CommandCanUndo         Command = "history.canUndo"
	CommandCanRedo         Command = "history.canRedo"
	CommandUndo            Command = "history.undo"
	CommandRedo            Command = "history.redo"

	CommandFormatText      Command = "format.text"    // payload document.Format
	CommandFormatElement   Command = "format.element" // payload document.Alignment
	CommandFormatBlock     Command = "format.block"   // payload BlockFormat
	CommandPatchStyle      Command = "format.style"   // payload StylePatch
	CommandClearFormatting Command = "format.clear"
	CommandIndent          Command = "format.indent"
	CommandOutdent         Command = "format.outdent"
	CommandCodeLanguage    Command = "code.language" // payload string

	CommandToggleLink Command = "link.toggle" // payload *string, nil removes

	CommandInsertHorizontalRule Command = "insert.horizontalRule"
	CommandInsertPageBreak      Command = "insert.pageBreak"
	CommandInsertImage          Command = "insert.image"       // payload ImagePayload
	CommandInsertMediaImage     Command = "insert.mediaImage"  // payload []ImagePayload
	CommandInsertInlineImage    Command = "insert.inlineImage" // payload ImagePayload
	CommandInsertTable          Command = "insert.table"       // payload TablePayload
	CommandInsertLayout         Command = "insert.layout"      // payload int (columns)
	CommandInsertEquation       Command = "insert.equation"    // payload EquationPayload
	CommandInsertCollapsible    Command = "insert.collapsible"
	CommandInsertText           Command = "insert.text"  // payload string
	CommandInsertEmoji          Command = "insert.emoji" // payload string shortcode
)

// BlockFormat is the payload of CommandFormatBlock: a block type name such as
// "paragraph", "h2", "bullet" or "code".
type BlockFormat string

// StylePatch is the payload of CommandPatchStyle.
type StylePatch struct {
	Styles map[string]string
	// SkipHistory applies the patch without an undo entry.
	SkipHistory bool
}

// ImagePayload is the payload of the image insert commands.
type ImagePayload struct {
	Src     string
	AltText string
	Caption bool
}

// TablePayload is the payload of CommandInsertTable.
type TablePayload struct {
	Rows    int
	Columns int
}

// EquationPayload is the payload of CommandInsertEquation.
type EquationPayload struct {
	Equation string
	Inline   bool
}
