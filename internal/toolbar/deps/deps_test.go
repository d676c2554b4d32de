package deps_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/felixgeelhaar/richfield/internal/editor/engine"
	"github.com/felixgeelhaar/richfield/internal/editor/sdk"
	"github.com/felixgeelhaar/richfield/internal/toolbar/deps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEditor() *engine.Editor {
	return engine.New(engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestNew_RequiresSurface(t *testing.T) {
	_, err := deps.New(deps.Config{})
	assert.ErrorIs(t, err, sdk.ErrNoActiveSurface)
}

func TestDispatch_UsesSurfaceActiveAtCallTime(t *testing.T) {
	top := newEditor()
	caption := engine.NewNested(top)

	var origins []string
	top.RegisterCommand("test.cmd", func(_ any, origin sdk.Surface) bool {
		origins = append(origins, origin.ID())
		return true
	}, sdk.PriorityEditor)

	d, err := deps.New(deps.Config{Surface: top})
	require.NoError(t, err)

	require.NoError(t, d.Dispatch("test.cmd", nil))
	d.SetActiveSurface(caption)
	require.NoError(t, d.Dispatch("test.cmd", nil))
	d.SetActiveSurface(nil)
	require.NoError(t, d.Dispatch("test.cmd", nil))

	assert.Equal(t, []string{top.ID(), caption.ID(), top.ID()}, origins)
}

func TestDispatch_NotEditable(t *testing.T) {
	top := newEditor()
	var calls int
	top.RegisterCommand("test.cmd", func(any, sdk.Surface) bool {
		calls++
		return true
	}, sdk.PriorityEditor)

	var linkMode, dialog, modal int
	d, err := deps.New(deps.Config{
		Surface:      top,
		LinkEditMode: func(bool) { linkMode++ },
		ImageDialog:  func(bool) { dialog++ },
		Modal:        deps.ModalFunc(func(string, func(func()) any) { modal++ }),
	})
	require.NoError(t, err)

	d.SetEditable(false)

	assert.ErrorIs(t, d.Dispatch("test.cmd", nil), deps.ErrNotEditable)
	assert.ErrorIs(t, d.SetLinkEditMode(true), deps.ErrNotEditable)
	assert.ErrorIs(t, d.SetImageDialogOpen(true), deps.ErrNotEditable)
	assert.ErrorIs(t, d.ShowModal("x", nil), deps.ErrNotEditable)
	assert.Zero(t, calls)
	assert.Zero(t, linkMode+dialog+modal)

	d.SetEditable(true)
	require.NoError(t, d.Dispatch("test.cmd", nil))
	require.NoError(t, d.ShowModal("x", nil))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, modal)
}

func TestShowModal_WithoutLauncher(t *testing.T) {
	d, err := deps.New(deps.Config{Surface: newEditor()})
	require.NoError(t, err)

	assert.ErrorIs(t, d.ShowModal("Insert table", nil), deps.ErrNoModalLauncher)
}

func TestFromContext(t *testing.T) {
	d, err := deps.New(deps.Config{Surface: newEditor()})
	require.NoError(t, err)

	ctx := deps.WithDependencies(context.Background(), d)
	assert.Same(t, d, deps.FromContext(ctx))
}

func TestFromContext_OutsideScopePanics(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		var accessErr *sdk.ConfigurationAccessError
		assert.True(t, errors.As(err, &accessErr))
		assert.ErrorIs(t, err, sdk.ErrConfigurationAccess)
	}()

	deps.FromContext(context.Background())
	t.Fatal("expected panic")
}
