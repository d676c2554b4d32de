package composer_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/felixgeelhaar/richfield/internal/capability"
	"github.com/felixgeelhaar/richfield/internal/composer"
	"github.com/felixgeelhaar/richfield/internal/editor/engine"
	"github.com/felixgeelhaar/richfield/internal/editor/sdk"
	"github.com/felixgeelhaar/richfield/internal/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolve(t *testing.T, values map[string]any) capability.Configuration {
	t.Helper()
	o, err := capability.FromFlat(values)
	require.NoError(t, err)
	return capability.Resolve(capability.DefaultRegistry(), o)
}

func allDisabled() map[string]any {
	values := make(map[string]any)
	for _, id := range capability.All() {
		values["options.enabledNodeTypes."+id.String()] = false
	}
	return values
}

func TestCompose(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
		want   []*plugin.Factory
	}{
		{
			name:   "defaults",
			values: nil,
			want:   []*plugin.Factory{plugin.TextFormat, plugin.Link},
		},
		{
			name: "shared factory appears once",
			values: map[string]any{
				"options.enabledNodeTypes.link":           false,
				"options.enabledNodeTypes.horizontalRule": true,
				"options.enabledNodeTypes.pageBreak":      true,
				"options.enabledNodeTypes.image":          true,
				"options.enabledNodeTypes.inlineImage":    true,
			},
			want: []*plugin.Factory{plugin.TextFormat, plugin.Dividers, plugin.Images},
		},
		{
			name: "registry order",
			values: map[string]any{
				"options.enabledNodeTypes.bold":        false,
				"options.enabledNodeTypes.italic":      false,
				"options.enabledNodeTypes.underline":   false,
				"options.enabledNodeTypes.collapsible": true,
				"options.enabledNodeTypes.emojiPicker": true,
				"options.enabledNodeTypes.table":       true,
				"options.enabledNodeTypes.highlight":   true,
			},
			want: []*plugin.Factory{plugin.Emoji, plugin.Link, plugin.Table, plugin.Collapsible, plugin.TextFormat},
		},
		{
			name:   "toolbar only capability",
			values: map[string]any{"options.enabledNodeTypes.clearFormatting": true, "options.enabledNodeTypes.link": false, "options.enabledNodeTypes.bold": false, "options.enabledNodeTypes.italic": false, "options.enabledNodeTypes.underline": false},
			want:   []*plugin.Factory{},
		},
		{
			name:   "all disabled",
			values: allDisabled(),
			want:   []*plugin.Factory{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := composer.Compose(capability.DefaultRegistry(), resolve(t, tt.values))
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Same(t, tt.want[i], got[i], "position %d", i)
			}
		})
	}
}

func TestCompose_NoDuplicates(t *testing.T) {
	values := make(map[string]any)
	for _, id := range capability.All() {
		values["options.enabledNodeTypes."+id.String()] = true
	}

	got := composer.Compose(capability.DefaultRegistry(), resolve(t, values))

	seen := make(map[*plugin.Factory]bool)
	for _, f := range got {
		assert.False(t, seen[f], f.Name())
		seen[f] = true
	}
	assert.Len(t, got, 10)
}

func TestInstall(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ed := engine.New(engine.WithLogger(logger))

	subs, err := composer.Install(ed, []*plugin.Factory{plugin.Table, plugin.Table, plugin.History}, plugin.Env{Logger: logger})
	require.NoError(t, err)

	assert.Equal(t, 1, ed.Commands().HandlerCount(sdk.CommandInsertTable))
	assert.Equal(t, 1, ed.Commands().HandlerCount(sdk.CommandUndo))
	assert.Equal(t, 1, ed.Commands().HandlerCount(sdk.CommandFormatBlock))
	assert.Zero(t, ed.Commands().HandlerCount(sdk.CommandToggleLink))

	subs.ReleaseAll()

	assert.Zero(t, ed.Commands().HandlerCount(sdk.CommandInsertTable))
	assert.Zero(t, ed.Commands().HandlerCount(sdk.CommandUndo))
	assert.False(t, ed.Dispatch(sdk.CommandInsertTable, sdk.TablePayload{Rows: 2, Columns: 2}))
}

func TestInstall_NoSurface(t *testing.T) {
	_, err := composer.Install(nil, nil, plugin.Env{})
	assert.ErrorIs(t, err, sdk.ErrNoActiveSurface)
}
