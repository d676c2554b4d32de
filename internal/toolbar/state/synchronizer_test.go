package state_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/felixgeelhaar/richfield/internal/editor/document"
	"github.com/felixgeelhaar/richfield/internal/editor/engine"
	"github.com/felixgeelhaar/richfield/internal/editor/sdk"
	"github.com/felixgeelhaar/richfield/internal/toolbar/deps"
	"github.com/felixgeelhaar/richfield/internal/toolbar/state"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	editor *engine.Editor
	deps   *deps.RenderDependencies
	sync   *state.Synchronizer
}

func newFixture(t *testing.T, root *document.Node) *fixture {
	t.Helper()
	ed := engine.New(engine.WithLogger(quietLogger()), engine.WithDocument(root))
	return newFixtureOn(t, ed, ed)
}

func newFixtureOn(t *testing.T, ed *engine.Editor, top sdk.Surface) *fixture {
	t.Helper()
	d, err := deps.New(deps.Config{Surface: top, Logger: quietLogger()})
	require.NoError(t, err)
	s := state.NewSynchronizer(d, state.WithLogger(quietLogger()))
	s.Start()
	t.Cleanup(s.Stop)
	return &fixture{editor: ed, deps: d, sync: s}
}

func caret(f *fixture, n *document.Node, offset int) {
	f.editor.Update(func(st *document.State) {
		st.SetSelection(document.Caret(st, n.Key(), offset))
	})
}

func TestSynchronizer_StartPublishesDefaults(t *testing.T) {
	f := newFixture(t, nil)

	// A fresh document has no selection yet.
	assert.Equal(t, state.PhaseIdle, f.sync.Phase())
	assert.Equal(t, uint64(1), f.sync.Stats().Skipped)
	if diff := cmp.Diff(state.DefaultSnapshot(), f.sync.Snapshot()); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestSynchronizer_CaretWithoutMarks(t *testing.T) {
	text := document.NewText("plain")
	f := newFixture(t, document.NewRoot(document.NewParagraph(text)))

	caret(f, text, 2)

	snap := f.sync.Snapshot()
	assert.Equal(t, state.PhasePublished, f.sync.Phase())
	assert.Zero(t, snap.Formats)
	for _, flag := range []bool{
		snap.IsBold(), snap.IsItalic(), snap.IsUnderline(), snap.IsStrikethrough(),
		snap.IsSubscript(), snap.IsSuperscript(), snap.IsCode(),
		snap.IsLowercase(), snap.IsUppercase(), snap.IsCapitalize(),
	} {
		assert.False(t, flag)
	}
	assert.Equal(t, "15px", snap.FontSize)
	assert.Equal(t, "#000", snap.FontColor)
	assert.Equal(t, "#fff", snap.BgColor)
	assert.Equal(t, "Arial", snap.FontFamily)
	assert.Equal(t, state.BlockParagraph, snap.BlockType)
	assert.Equal(t, state.RootDocument, snap.RootType)
	assert.Equal(t, document.AlignLeft, snap.ElementFormat)
	assert.False(t, snap.IsLink)
	assert.False(t, snap.IsRTL)
}

func TestSynchronizer_FontColor(t *testing.T) {
	red := document.NewText("red").WithStyle("color: #ff0000")
	plain := document.NewText("plain")
	f := newFixture(t, document.NewRoot(document.NewParagraph(red, plain)))

	caret(f, red, 1)
	assert.Equal(t, "#ff0000", f.sync.Snapshot().FontColor)

	caret(f, plain, 1)
	assert.Equal(t, "#000", f.sync.Snapshot().FontColor)
}

func TestSynchronizer_MixedStyleRangeIsUnset(t *testing.T) {
	red := document.NewText("red").WithStyle("color: #ff0000; font-size: 20px")
	blue := document.NewText("blue").WithStyle("color: #0000ff; font-size: 20px")
	f := newFixture(t, document.NewRoot(document.NewParagraph(red, blue)))

	f.editor.Select(document.Range(
		document.Point{Key: red.Key(), Offset: 0},
		document.Point{Key: blue.Key(), Offset: 4},
	))

	snap := f.sync.Snapshot()
	assert.Equal(t, "", snap.FontColor)
	assert.Equal(t, "20px", snap.FontSize)
}

func TestSynchronizer_NestedListUsesOuterList(t *testing.T) {
	text := document.NewText("inner item")
	inner := document.NewList(document.ListBullet, document.NewListItem(text))
	outer := document.NewList(document.ListNumber, document.NewListItem(inner))
	f := newFixture(t, document.NewRoot(outer))

	caret(f, text, 0)

	assert.Equal(t, state.BlockNumber, f.sync.Snapshot().BlockType)
}

func TestSynchronizer_BlockTypes(t *testing.T) {
	heading := document.NewText("title")
	quote := document.NewText("quoted")
	inCollapsible := document.NewText("hidden")
	f := newFixture(t, document.NewRoot(
		document.NewHeading("h2", heading),
		document.NewQuote(quote),
		document.NewCollapsible(document.NewParagraph(inCollapsible)),
	))

	caret(f, heading, 0)
	assert.Equal(t, state.BlockH2, f.sync.Snapshot().BlockType)

	caret(f, quote, 0)
	assert.Equal(t, state.BlockQuote, f.sync.Snapshot().BlockType)

	// Unrecognized block types leave the previous value in place.
	caret(f, inCollapsible, 0)
	assert.Equal(t, state.BlockQuote, f.sync.Snapshot().BlockType)
}

func TestSynchronizer_CodeBlockStopsDerivation(t *testing.T) {
	red := document.NewText("red").WithStyle("color: #ff0000; font-size: 20px")
	code := document.NewText("const x = 1").
		WithMarks(document.FormatBold, document.FormatItalic).
		WithStyle("color: #00ff00; font-size: 30px")
	f := newFixture(t, document.NewRoot(
		document.NewParagraph(red),
		document.NewCode("javascript", code),
	))

	caret(f, red, 0)
	before := f.sync.Snapshot()
	require.False(t, before.IsBold())
	require.Equal(t, "20px", before.FontSize)

	caret(f, code, 0)

	snap := f.sync.Snapshot()
	assert.Equal(t, state.BlockCode, snap.BlockType)
	assert.Equal(t, "js", snap.CodeLanguage)
	assert.Equal(t, "JavaScript", state.CodeLanguageName(snap.CodeLanguage))
	assert.Equal(t, "#ff0000", snap.FontColor, "code blocks keep the previous style values")
	assert.Equal(t, before.Formats, snap.Formats)
	assert.False(t, snap.IsBold())
	assert.False(t, snap.IsItalic())
	assert.Equal(t, "20px", snap.FontSize)
}

func TestSynchronizer_SingleDeclarationStyles(t *testing.T) {
	tests := []struct {
		name  string
		style string
		get   func(state.Snapshot) string
		want  string
	}{
		{"font color", "color: #ff0000", func(s state.Snapshot) string { return s.FontColor }, "#ff0000"},
		{"background", "background-color: #ffff00", func(s state.Snapshot) string { return s.BgColor }, "#ffff00"},
		{"font size", "font-size: 30px", func(s state.Snapshot) string { return s.FontSize }, "30px"},
		{"font family", "font-family: Georgia", func(s state.Snapshot) string { return s.FontFamily }, "Georgia"},
		{"padded", "  color: #ff0000 ", func(s state.Snapshot) string { return s.FontColor }, "#ff0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := document.NewText("styled").WithStyle(tt.style)
			f := newFixture(t, document.NewRoot(document.NewParagraph(text)))

			caret(f, text, 1)

			assert.Equal(t, tt.want, tt.get(f.sync.Snapshot()))
		})
	}
}

func TestSynchronizer_LinkUsesParagraphAlignment(t *testing.T) {
	text := document.NewText("docs")
	para := document.NewParagraph(
		document.NewText("see "),
		document.NewLink("https://example.com", text),
	).WithAlignment(document.AlignCenter)
	f := newFixture(t, document.NewRoot(para))

	caret(f, text, 1)

	snap := f.sync.Snapshot()
	assert.True(t, snap.IsLink)
	assert.Equal(t, document.AlignCenter, snap.ElementFormat)
}

func TestSynchronizer_RTL(t *testing.T) {
	text := document.NewText("שלום עולם")
	f := newFixture(t, document.NewRoot(document.NewParagraph(text)))

	caret(f, text, 1)

	assert.True(t, f.sync.Snapshot().IsRTL)
}

func tableOf(cells ...*document.Node) *document.Node {
	wrapped := make([]*document.Node, 0, len(cells))
	for _, c := range cells {
		wrapped = append(wrapped, document.NewTableCell(document.NewParagraph(c)))
	}
	return document.NewTable(document.NewTableRow(wrapped...))
}

func selectCells(f *fixture, table *document.Node) {
	var keys []document.Key
	for _, row := range table.Children() {
		for _, cell := range row.Children() {
			keys = append(keys, cell.Key())
		}
	}
	f.editor.Select(&document.TableSelection{Table: table.Key(), Cells: keys})
}

func TestSynchronizer_TableSelectionFormats(t *testing.T) {
	t.Run("uniformly bold", func(t *testing.T) {
		table := tableOf(
			document.NewText("a").WithMarks(document.FormatBold),
			document.NewText("b").WithMarks(document.FormatBold),
			document.NewText("c").WithMarks(document.FormatBold, document.FormatItalic),
		)
		f := newFixture(t, document.NewRoot(table))

		selectCells(f, table)

		snap := f.sync.Snapshot()
		assert.True(t, snap.IsBold())
		assert.False(t, snap.IsItalic())
	})

	t.Run("mixed bold", func(t *testing.T) {
		table := tableOf(
			document.NewText("a").WithMarks(document.FormatBold),
			document.NewText("b"),
			document.NewText("c").WithMarks(document.FormatBold),
		)
		f := newFixture(t, document.NewRoot(table))

		selectCells(f, table)

		assert.False(t, f.sync.Snapshot().IsBold())
	})
}

func TestSynchronizer_TableRootType(t *testing.T) {
	inCell := document.NewText("cell")
	outside := document.NewText("outside")
	f := newFixture(t, document.NewRoot(
		tableOf(inCell),
		document.NewParagraph(outside),
	))

	caret(f, inCell, 0)
	assert.Equal(t, state.RootTable, f.sync.Snapshot().RootType)
	assert.Equal(t, state.BlockParagraph, f.sync.Snapshot().BlockType)

	caret(f, outside, 0)
	assert.Equal(t, state.RootDocument, f.sync.Snapshot().RootType)
}

func TestSynchronizer_NodeSelectionIsSkipped(t *testing.T) {
	text := document.NewText("bold").WithMarks(document.FormatBold)
	image := document.NewDecorator(document.TypeImage, map[string]string{"src": "a.png"})
	f := newFixture(t, document.NewRoot(document.NewParagraph(text), image))

	caret(f, text, 1)
	before := f.sync.Snapshot()
	skipped := f.sync.Stats().Skipped

	f.editor.Select(&document.NodeSelection{Keys: []document.Key{image.Key()}})

	assert.Equal(t, before, f.sync.Snapshot())
	assert.Greater(t, f.sync.Stats().Skipped, skipped)
	assert.Equal(t, state.TransitionSkipped, f.sync.Refresh())
	assert.Equal(t, state.PhasePublished, f.sync.Phase())
}

func TestSynchronizer_HistoryAvailability(t *testing.T) {
	f := newFixture(t, nil)

	f.editor.Dispatch(sdk.CommandCanUndo, true)
	assert.True(t, f.sync.Snapshot().CanUndo)
	assert.False(t, f.sync.Snapshot().CanRedo)

	f.editor.Dispatch(sdk.CommandCanRedo, true)
	f.editor.Dispatch(sdk.CommandCanUndo, false)
	assert.False(t, f.sync.Snapshot().CanUndo)
	assert.True(t, f.sync.Snapshot().CanRedo)
}

func TestSynchronizer_EditableToggle(t *testing.T) {
	text := document.NewText("x")
	f := newFixture(t, document.NewRoot(document.NewParagraph(text)))
	caret(f, text, 0)
	published := f.sync.Stats().Published

	f.editor.SetEditable(false)

	assert.False(t, f.deps.IsEditable())
	assert.Equal(t, published+1, f.sync.Stats().Published)

	f.editor.SetEditable(true)
	assert.True(t, f.deps.IsEditable())
}

func TestSynchronizer_NestedSurface(t *testing.T) {
	body := document.NewText("body")
	f := newFixture(t, document.NewRoot(document.NewParagraph(body)))
	captionText := document.NewText("caption")
	caption := engine.NewNested(f.editor,
		engine.WithDocument(document.NewRoot(document.NewParagraph(captionText))))

	caption.Update(func(st *document.State) {
		st.SetSelection(document.Caret(st, captionText.Key(), 0))
	})

	assert.Equal(t, caption.ID(), f.deps.ActiveSurface().ID())
	assert.True(t, f.sync.Snapshot().IsImageCaption)

	// Updates on the caption now drive the toolbar; the top-level listeners
	// were rebound.
	caption.Dispatch(sdk.CommandCanUndo, true)
	assert.True(t, f.sync.Snapshot().CanUndo)

	caret(f, body, 0)
	assert.Equal(t, f.editor.ID(), f.deps.ActiveSurface().ID())
	assert.False(t, f.sync.Snapshot().IsImageCaption)
}

func TestSynchronizer_OnPublish(t *testing.T) {
	text := document.NewText("x")
	f := newFixture(t, document.NewRoot(document.NewParagraph(text)))

	var seen []state.Snapshot
	sub := f.sync.OnPublish(func(s state.Snapshot) { seen = append(seen, s) })

	caret(f, text, 0)
	require.NotEmpty(t, seen)
	assert.Equal(t, f.sync.Snapshot(), seen[len(seen)-1])

	sub.Release()
	count := len(seen)
	caret(f, text, 1)
	assert.Len(t, seen, count)
}

// readHookSurface runs a hook before every read of the wrapped editor.
type readHookSurface struct {
	*engine.Editor
	onRead func()
}

func (s *readHookSurface) Read(fn func(*document.State)) {
	if s.onRead != nil {
		hook := s.onRead
		s.onRead = nil
		hook()
	}
	s.Editor.Read(fn)
}

func TestSynchronizer_SurfaceSwitchDiscardsInFlightDerivation(t *testing.T) {
	text := document.NewText("top")
	ed := engine.New(engine.WithLogger(quietLogger()),
		engine.WithDocument(document.NewRoot(document.NewParagraph(text))))
	top := &readHookSurface{Editor: ed}
	f := newFixtureOn(t, ed, top)

	captionText := document.NewText("caption")
	caption := engine.NewNested(ed,
		engine.WithDocument(document.NewRoot(document.NewParagraph(captionText))))

	top.onRead = func() {
		caption.Select(document.Caret(caption.State(), captionText.Key(), 0))
	}

	assert.Equal(t, state.TransitionDiscarded, f.sync.Refresh())
	assert.Equal(t, uint64(1), f.sync.Stats().Discarded)
	assert.Equal(t, caption.ID(), f.deps.ActiveSurface().ID())
	assert.True(t, f.sync.Snapshot().IsImageCaption)
}

func TestSynchronizer_StopReleasesListeners(t *testing.T) {
	text := document.NewText("x")
	f := newFixture(t, document.NewRoot(document.NewParagraph(text)))
	f.sync.Stop()
	published := f.sync.Stats().Published

	caret(f, text, 0)
	f.editor.Dispatch(sdk.CommandCanUndo, true)

	assert.Equal(t, published, f.sync.Stats().Published)
	assert.Equal(t, 0, f.editor.Commands().HandlerCount(sdk.CommandSelectionChange))
}
