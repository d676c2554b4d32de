package plugin_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/felixgeelhaar/richfield/internal/editor/document"
	"github.com/felixgeelhaar/richfield/internal/editor/engine"
	"github.com/felixgeelhaar/richfield/internal/editor/sdk"
	"github.com/felixgeelhaar/richfield/internal/plugin"
	"github.com/felixgeelhaar/richfield/internal/wordcount"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSurface(t *testing.T, root *document.Node, factories ...*plugin.Factory) *engine.Editor {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ed := engine.New(engine.WithLogger(logger), engine.WithDocument(root))
	env := plugin.Env{Logger: logger}
	for _, f := range factories {
		for _, sub := range f.Install(ed, env) {
			t.Cleanup(sub.Release)
		}
	}
	return ed
}

func caretAt(ed *engine.Editor, n *document.Node, offset int) {
	ed.Update(func(st *document.State) {
		st.SetSelection(document.Caret(st, n.Key(), offset))
	})
}

func selectRange(ed *engine.Editor, from *document.Node, fromOff int, to *document.Node, toOff int) {
	ed.Select(document.Range(
		document.Point{Key: from.Key(), Offset: fromOff},
		document.Point{Key: to.Key(), Offset: toOff},
	))
}

func TestRichText_FormatBlockHeading(t *testing.T) {
	text := document.NewText("title")
	ed := newSurface(t, document.NewRoot(document.NewParagraph(text)), plugin.RichText)
	caretAt(ed, text, 0)

	require.True(t, ed.Dispatch(sdk.CommandFormatBlock, sdk.BlockFormat("h2")))

	block := ed.State().Root().Children()[0]
	assert.Equal(t, document.TypeHeading, block.Type())
	assert.Equal(t, "h2", block.Tag())
	assert.Equal(t, "title", block.TextContent())
}

func TestRichText_FormatBlockList(t *testing.T) {
	first := document.NewText("one")
	second := document.NewText("two")
	ed := newSurface(t, document.NewRoot(
		document.NewParagraph(first),
		document.NewParagraph(second),
	), plugin.RichText)
	selectRange(ed, first, 0, second, 3)

	require.True(t, ed.Dispatch(sdk.CommandFormatBlock, sdk.BlockFormat("number")))

	root := ed.State().Root()
	require.Len(t, root.Children(), 1)
	list := root.Children()[0]
	assert.Equal(t, document.TypeList, list.Type())
	assert.Equal(t, document.ListNumber, list.ListType())
	assert.Len(t, list.Children(), 2)

	require.True(t, ed.Dispatch(sdk.CommandFormatBlock, sdk.BlockFormat("paragraph")))

	root = ed.State().Root()
	require.Len(t, root.Children(), 2)
	assert.Equal(t, document.TypeParagraph, root.Children()[0].Type())
	assert.Equal(t, "two", root.Children()[1].TextContent())
}

func TestRichText_AlignmentAndIndent(t *testing.T) {
	text := document.NewText("body")
	ed := newSurface(t, document.NewRoot(document.NewParagraph(text)), plugin.RichText)
	caretAt(ed, text, 1)

	require.True(t, ed.Dispatch(sdk.CommandFormatElement, document.AlignCenter))
	require.True(t, ed.Dispatch(sdk.CommandIndent, nil))
	require.True(t, ed.Dispatch(sdk.CommandIndent, nil))
	require.True(t, ed.Dispatch(sdk.CommandOutdent, nil))

	block := ed.State().Root().Children()[0]
	assert.Equal(t, document.AlignCenter, block.Alignment())
	assert.Equal(t, 1, block.Indent())
}

func TestRichText_PatchStyleRange(t *testing.T) {
	text := document.NewText("colored")
	ed := newSurface(t, document.NewRoot(document.NewParagraph(text)), plugin.RichText)
	selectRange(ed, text, 0, text, 7)

	require.True(t, ed.Dispatch(sdk.CommandPatchStyle, sdk.StylePatch{
		Styles: map[string]string{"color": "#ff0000"},
	}))

	node := ed.State().NodeByKey(text.Key())
	assert.Equal(t, "#ff0000", document.NodeStyleValue(node, "color", "#000"))
}

func TestRichText_InsertTextAtCaret(t *testing.T) {
	text := document.NewText("helo")
	ed := newSurface(t, document.NewRoot(document.NewParagraph(text)), plugin.RichText)
	caretAt(ed, text, 2)

	require.True(t, ed.Dispatch(sdk.CommandInsertText, "l"))

	assert.Equal(t, "hello", ed.State().Root().TextContent())
}

func TestTextFormat_ToggleRange(t *testing.T) {
	a := document.NewText("a").WithMarks(document.FormatBold)
	b := document.NewText("b")
	ed := newSurface(t, document.NewRoot(document.NewParagraph(a, b)), plugin.TextFormat)
	selectRange(ed, a, 0, b, 1)

	require.True(t, ed.Dispatch(sdk.CommandFormatText, document.FormatBold))

	st := ed.State()
	assert.True(t, st.NodeByKey(a.Key()).Marks().Has(document.FormatBold))
	assert.True(t, st.NodeByKey(b.Key()).Marks().Has(document.FormatBold))

	require.True(t, ed.Dispatch(sdk.CommandFormatText, document.FormatBold))

	st = ed.State()
	assert.False(t, st.NodeByKey(a.Key()).Marks().Has(document.FormatBold))
	assert.False(t, st.NodeByKey(b.Key()).Marks().Has(document.FormatBold))
}

func TestTextFormat_CaretTogglesTypingFormat(t *testing.T) {
	text := document.NewText("x")
	ed := newSurface(t, document.NewRoot(document.NewParagraph(text)), plugin.TextFormat)
	caretAt(ed, text, 1)

	require.True(t, ed.Dispatch(sdk.CommandFormatText, document.FormatItalic))

	sel, ok := ed.State().Selection().(*document.RangeSelection)
	require.True(t, ok)
	assert.True(t, sel.Format.Has(document.FormatItalic))
	assert.False(t, ed.State().NodeByKey(text.Key()).Marks().Has(document.FormatItalic))
}

func TestHistory_UndoRedo(t *testing.T) {
	text := document.NewText("v1")
	ed := newSurface(t, document.NewRoot(document.NewParagraph(text)), plugin.History)

	var canUndo, canRedo []bool
	ed.RegisterCommand(sdk.CommandCanUndo, func(p any, _ sdk.Surface) bool {
		canUndo = append(canUndo, p.(bool))
		return false
	}, sdk.PriorityCritical)
	ed.RegisterCommand(sdk.CommandCanRedo, func(p any, _ sdk.Surface) bool {
		canRedo = append(canRedo, p.(bool))
		return false
	}, sdk.PriorityCritical)

	caretAt(ed, text, 0)
	assert.Empty(t, canUndo, "selection-only updates are not recorded")

	ed.Update(func(st *document.State) {
		st.SetText(st.NodeByKey(text.Key()), "v2")
	})
	assert.Equal(t, []bool{true}, canUndo)

	require.True(t, ed.Dispatch(sdk.CommandUndo, nil))
	assert.Equal(t, "v1", ed.State().Root().TextContent())
	assert.Equal(t, []bool{true, false}, canUndo)
	assert.Equal(t, []bool{true}, canRedo)

	require.True(t, ed.Dispatch(sdk.CommandRedo, nil))
	assert.Equal(t, "v2", ed.State().Root().TextContent())
	assert.Equal(t, []bool{true, false}, canRedo)

	assert.False(t, ed.Dispatch(sdk.CommandRedo, nil))
}

func TestLink_ToggleWrapsAndUnwraps(t *testing.T) {
	text := document.NewText("visit site now")
	ed := newSurface(t, document.NewRoot(document.NewParagraph(text)), plugin.Link)
	selectRange(ed, text, 6, text, 10)

	url := "https://example.com"
	require.True(t, ed.Dispatch(sdk.CommandToggleLink, &url))

	para := ed.State().Root().Children()[0]
	require.Len(t, para.Children(), 3)
	link := para.Children()[1]
	assert.Equal(t, document.TypeLink, link.Type())
	assert.Equal(t, url, link.URL())
	assert.Equal(t, "site", link.TextContent())

	require.True(t, ed.Dispatch(sdk.CommandToggleLink, nil))

	para = ed.State().Root().Children()[0]
	for _, c := range para.Children() {
		assert.NotEqual(t, document.TypeLink, c.Type())
	}
	assert.Equal(t, "visit site now", para.TextContent())
}

func TestInsert_TableAndDividers(t *testing.T) {
	text := document.NewText("x")
	ed := newSurface(t, document.NewRoot(document.NewParagraph(text)), plugin.Table, plugin.Dividers)
	caretAt(ed, text, 1)

	require.True(t, ed.Dispatch(sdk.CommandInsertTable, sdk.TablePayload{Rows: 2, Columns: 3}))

	root := ed.State().Root()
	require.Len(t, root.Children(), 2)
	table := root.Children()[1]
	assert.Equal(t, document.TypeTable, table.Type())
	require.Len(t, table.Children(), 2)
	assert.Len(t, table.Children()[0].Children(), 3)

	require.True(t, ed.Dispatch(sdk.CommandInsertHorizontalRule, nil))
	root = ed.State().Root()
	require.Len(t, root.Children(), 3)
	assert.Equal(t, document.TypeHorizontalRule, root.Children()[1].Type())
	_, isNodeSelection := ed.State().Selection().(*document.NodeSelection)
	assert.True(t, isNodeSelection)

	assert.False(t, ed.Dispatch(sdk.CommandInsertTable, sdk.TablePayload{Rows: -1, Columns: 2}))
}

func TestEmoji_InsertsThroughText(t *testing.T) {
	text := document.NewText("hi ")
	ed := newSurface(t, document.NewRoot(document.NewParagraph(text)), plugin.RichText, plugin.Emoji)
	caretAt(ed, text, 3)

	require.True(t, ed.Dispatch(sdk.CommandInsertEmoji, ":rocket:"))
	assert.Equal(t, "hi "+plugin.Emojis["rocket"], ed.State().Root().TextContent())

	assert.False(t, ed.Dispatch(sdk.CommandInsertEmoji, "no-such-emoji"))
}

func TestWordCount_Reports(t *testing.T) {
	counter, err := wordcount.New(wordcount.CharsetUTF16, 20)
	require.NoError(t, err)

	var reports []wordcount.Counts
	factory := plugin.NewWordCount(counter, func(c wordcount.Counts) { reports = append(reports, c) })

	text := document.NewText("two words")
	ed := newSurface(t, document.NewRoot(document.NewParagraph(text)), factory)
	require.Len(t, reports, 1)
	assert.Equal(t, 2, reports[0].Words)

	caretAt(ed, text, 0)
	assert.Len(t, reports, 1)

	ed.Update(func(st *document.State) {
		st.SetText(st.NodeByKey(text.Key()), "now three words")
	})
	require.Len(t, reports, 2)
	assert.Equal(t, 3, reports[1].Words)
	assert.Equal(t, 5, reports[1].Remaining)
}
