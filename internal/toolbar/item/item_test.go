package item_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/felixgeelhaar/richfield/internal/editor/document"
	"github.com/felixgeelhaar/richfield/internal/editor/engine"
	"github.com/felixgeelhaar/richfield/internal/editor/sdk"
	"github.com/felixgeelhaar/richfield/internal/plugin"
	"github.com/felixgeelhaar/richfield/internal/toolbar/deps"
	"github.com/felixgeelhaar/richfield/internal/toolbar/item"
	"github.com/felixgeelhaar/richfield/internal/toolbar/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	editor   *engine.Editor
	deps     *deps.RenderDependencies
	ctx      context.Context
	linkMode []bool
	dialog   []bool
	modal    func(onClose func()) any
	title    string
	closed   int
}

func newFixture(t *testing.T, root *document.Node) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := &fixture{}
	f.editor = engine.New(engine.WithLogger(logger), engine.WithDocument(root))
	env := plugin.Env{Logger: logger}
	for _, factory := range []*plugin.Factory{
		plugin.RichText, plugin.History, plugin.TextFormat, plugin.Link,
		plugin.Emoji, plugin.Table, plugin.Images, plugin.MediaImage,
	} {
		for _, sub := range factory.Install(f.editor, env) {
			t.Cleanup(sub.Release)
		}
	}

	d, err := deps.New(deps.Config{
		Surface:      f.editor,
		LinkEditMode: func(on bool) { f.linkMode = append(f.linkMode, on) },
		ImageDialog:  func(open bool) { f.dialog = append(f.dialog, open) },
		Modal: deps.ModalFunc(func(title string, body func(onClose func()) any) {
			f.title = title
			f.modal = body
		}),
		Logger: logger,
	})
	require.NoError(t, err)
	f.deps = d
	f.ctx = deps.WithDependencies(context.Background(), d)
	return f
}

func (f *fixture) props(snap state.Snapshot) item.Props {
	return item.Props{Ctx: f.ctx, Snapshot: snap}
}

func (f *fixture) openDialog() any {
	return f.modal(func() { f.closed++ })
}

func TestFormatButton_DispatchesToActiveSurface(t *testing.T) {
	text := document.NewText("abc")
	f := newFixture(t, document.NewRoot(document.NewParagraph(text)))
	f.editor.Select(document.Range(
		document.Point{Key: text.Key(), Offset: 0},
		document.Point{Key: text.Key(), Offset: 3},
	))

	c := item.Bold(f.props(state.DefaultSnapshot()))
	assert.Equal(t, "bold", c.Key)
	assert.False(t, c.Active)
	require.NoError(t, c.Click())

	assert.True(t, f.editor.State().NodeByKey(text.Key()).Marks().Has(document.FormatBold))

	snap := state.DefaultSnapshot()
	snap.Formats = document.FormatBold
	assert.True(t, item.Bold(f.props(snap)).Active)
}

func TestControl_NotEditable(t *testing.T) {
	text := document.NewText("abc")
	f := newFixture(t, document.NewRoot(document.NewParagraph(text)))

	c := item.Italic(f.props(state.DefaultSnapshot()))
	f.deps.SetEditable(false)
	assert.ErrorIs(t, c.Click(), deps.ErrNotEditable, "editability is checked again at click time")

	disabled := item.Italic(f.props(state.DefaultSnapshot()))
	assert.True(t, disabled.Disabled)
	assert.ErrorIs(t, disabled.Click(), item.ErrControlDisabled)
}

func TestRenderer_OutsideScopePanics(t *testing.T) {
	var accessErr *sdk.ConfigurationAccessError
	func() {
		defer func() {
			r := recover()
			err, ok := r.(error)
			require.True(t, ok)
			assert.ErrorAs(t, err, &accessErr)
		}()
		item.Bold(item.Props{Ctx: context.Background()})
	}()
	require.NotNil(t, accessErr)
}

func TestLink_TogglesAndSwitchesEditMode(t *testing.T) {
	text := document.NewText("go here")
	f := newFixture(t, document.NewRoot(document.NewParagraph(text)))
	f.editor.Select(document.Range(
		document.Point{Key: text.Key(), Offset: 3},
		document.Point{Key: text.Key(), Offset: 7},
	))

	require.NoError(t, item.Link(f.props(state.DefaultSnapshot())).Click())

	para := f.editor.State().Root().Children()[0]
	require.Len(t, para.Children(), 2)
	link := para.Children()[1]
	assert.Equal(t, document.TypeLink, link.Type())
	assert.Equal(t, "https://", link.URL())

	snap := state.DefaultSnapshot()
	snap.IsLink = true
	c := item.Link(f.props(snap))
	assert.True(t, c.Active)
	require.NoError(t, c.Click())

	for _, child := range f.editor.State().Root().Children()[0].Children() {
		assert.NotEqual(t, document.TypeLink, child.Type())
	}
	assert.Equal(t, []bool{true, false}, f.linkMode)
}

func TestHistory_DisabledWithoutHistory(t *testing.T) {
	f := newFixture(t, document.NewRoot(document.NewParagraph(document.NewText("x"))))

	snap := state.DefaultSnapshot()
	assert.True(t, item.Undo(f.props(snap)).Disabled)
	assert.True(t, item.Redo(f.props(snap)).Disabled)

	snap.CanUndo = true
	assert.False(t, item.Undo(f.props(snap)).Disabled)
	assert.True(t, item.Redo(f.props(snap)).Disabled)
}

func TestBlockFormat(t *testing.T) {
	text := document.NewText("line")
	f := newFixture(t, document.NewRoot(document.NewParagraph(text)))
	f.editor.Update(func(st *document.State) {
		st.SetSelection(document.Caret(st, text.Key(), 0))
	})

	c := item.BlockFormat(f.props(state.DefaultSnapshot()))
	assert.Equal(t, "Normal", c.Label)
	assert.True(t, c.Option("paragraph").Active)
	require.NoError(t, c.Select("bullet"))
	assert.Equal(t, document.TypeList, f.editor.State().Root().Children()[0].Type())

	snap := state.DefaultSnapshot()
	snap.BlockType = state.BlockBullet
	require.NoError(t, item.BlockFormat(f.props(snap)).Select("bullet"))
	assert.Equal(t, document.TypeParagraph, f.editor.State().Root().Children()[0].Type())

	assert.ErrorIs(t, c.Select("h6"), item.ErrUnknownOption)
}

func TestAlignment(t *testing.T) {
	text := document.NewText("x")
	f := newFixture(t, document.NewRoot(document.NewParagraph(text)))
	f.editor.Update(func(st *document.State) {
		st.SetSelection(document.Caret(st, text.Key(), 0))
	})

	snap := state.DefaultSnapshot()
	snap.ElementFormat = document.AlignNone
	c := item.Alignment(f.props(snap))
	assert.Equal(t, "Left Align", c.Label)
	assert.Equal(t, "left", c.Value)

	require.NoError(t, c.Select("center"))
	require.NoError(t, c.Select("indent"))
	block := f.editor.State().Root().Children()[0]
	assert.Equal(t, document.AlignCenter, block.Alignment())
	assert.Equal(t, 1, block.Indent())

	snap.ElementFormat = document.AlignStart
	snap.IsRTL = true
	rtl := item.Alignment(f.props(snap))
	assert.Equal(t, "icon right-align", rtl.Icon)
	assert.Equal(t, "icon outdent", rtl.Option("indent").Icon)
}

func TestFontSize(t *testing.T) {
	text := document.NewText("sized")
	f := newFixture(t, document.NewRoot(document.NewParagraph(text)))
	f.editor.Select(document.Range(
		document.Point{Key: text.Key(), Offset: 0},
		document.Point{Key: text.Key(), Offset: 5},
	))

	c := item.FontSize(0, 0)(f.props(state.DefaultSnapshot()))
	require.Len(t, c.Children, 11)
	assert.Equal(t, "10px", c.Children[0].Key)
	assert.True(t, c.Option("15px").Active)

	require.NoError(t, c.Select("12px"))
	node := f.editor.State().NodeByKey(text.Key())
	assert.Equal(t, "12px", document.NodeStyleValue(node, "font-size", ""))

	assert.Len(t, item.FontSize(8, 9)(f.props(state.DefaultSnapshot())).Children, 2)
}

func TestFontColor_PickSkipsHistory(t *testing.T) {
	text := document.NewText("hue")
	f := newFixture(t, document.NewRoot(document.NewParagraph(text)))
	f.editor.Select(document.Range(
		document.Point{Key: text.Key(), Offset: 0},
		document.Point{Key: text.Key(), Offset: 3},
	))

	var tags [][]string
	f.editor.RegisterUpdateListener(func(e sdk.UpdateEvent) { tags = append(tags, e.Tags) })

	c := item.FontColor(f.props(state.DefaultSnapshot()))
	assert.Equal(t, item.KindColor, c.Kind)
	assert.Equal(t, "#000", c.Value)
	require.NoError(t, c.Pick("#ff0000", true))

	assert.Equal(t, "#ff0000", document.NodeStyleValue(f.editor.State().NodeByKey(text.Key()), "color", ""))
	require.Len(t, tags, 1)
	assert.Contains(t, tags[0], sdk.TagHistoric)
}

func TestTableDialog(t *testing.T) {
	text := document.NewText("x")
	f := newFixture(t, document.NewRoot(document.NewParagraph(text)))
	f.editor.Update(func(st *document.State) {
		st.SetSelection(document.Caret(st, text.Key(), 1))
	})

	require.NoError(t, item.Table(f.props(state.DefaultSnapshot())).Click())
	assert.Equal(t, "Insert Table", f.title)

	dlg, ok := f.openDialog().(*item.TableDialog)
	require.True(t, ok)
	assert.Equal(t, "5", dlg.Rows)

	dlg.Rows = "zero"
	assert.ErrorIs(t, dlg.Confirm(), item.ErrInvalidTableSize)
	assert.Zero(t, f.closed)

	dlg.Rows, dlg.Columns = "2", "2"
	require.NoError(t, dlg.Confirm())
	assert.Equal(t, 1, f.closed)
	table := f.editor.State().Root().Children()[1]
	assert.Equal(t, document.TypeTable, table.Type())
	assert.Len(t, table.Children(), 2)
}

func TestImageDialog_Inline(t *testing.T) {
	text := document.NewText("ab")
	f := newFixture(t, document.NewRoot(document.NewParagraph(text)))
	f.editor.Update(func(st *document.State) {
		st.SetSelection(document.Caret(st, text.Key(), 1))
	})

	require.NoError(t, item.InlineImage(f.props(state.DefaultSnapshot())).Click())
	dlg, ok := f.openDialog().(*item.ImageDialog)
	require.True(t, ok)
	assert.True(t, dlg.Inline())
	assert.ErrorIs(t, dlg.Confirm(), item.ErrEmptyImageSource)

	dlg.Src = "https://example.com/cat.png"
	dlg.AltText = "cat"
	require.NoError(t, dlg.Confirm())

	var found *document.Node
	document.Walk(f.editor.State().Root(), func(n *document.Node) bool {
		if n.Type() == document.TypeInlineImage {
			found = n
			return false
		}
		return true
	})
	require.NotNil(t, found)
	assert.Equal(t, "cat", found.Attr("altText"))
}

func TestMediaImage(t *testing.T) {
	text := document.NewText("x")
	f := newFixture(t, document.NewRoot(document.NewParagraph(text)))
	f.editor.Update(func(st *document.State) {
		st.SetSelection(document.Caret(st, text.Key(), 1))
	})

	require.NoError(t, item.MediaImage(f.props(state.DefaultSnapshot())).Click())
	require.NoError(t, item.InsertMedia(f.deps, []sdk.ImagePayload{{Src: "/uploads/a.png"}}))

	assert.Equal(t, []bool{true, false}, f.dialog)
	assert.Len(t, f.editor.State().Root().Children(), 2)
}

func TestEmojiPicker(t *testing.T) {
	text := document.NewText("")
	f := newFixture(t, document.NewRoot(document.NewParagraph(text)))
	f.editor.Update(func(st *document.State) {
		st.SetSelection(document.Caret(st, text.Key(), 0))
	})

	c := item.EmojiPicker(f.props(state.DefaultSnapshot()))
	assert.Len(t, c.Children, len(plugin.Emojis))
	require.NoError(t, c.Select("tada"))

	assert.Equal(t, plugin.Emojis["tada"], f.editor.State().Root().TextContent())
}

func TestProps_LabelOverride(t *testing.T) {
	f := newFixture(t, document.NewRoot(document.NewParagraph(document.NewText("x"))))

	c := item.Underline(item.Props{Ctx: f.ctx, Snapshot: state.DefaultSnapshot(), Label: "Souligné"})

	assert.Equal(t, "Souligné", c.Label)
	assert.Equal(t, "Format text to underlined", c.Title)
}
