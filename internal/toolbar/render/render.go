// Package render lays out the field toolbar. It resolves toolbar keys to
// controls using the field's configuration and the render dependencies
// scoped to the context, and keeps the rendered controls in step with the
// published selection snapshot.
package render

import (
	"context"
	"log/slog"
	"strings"

	"github.com/felixgeelhaar/richfield/internal/capability"
	"github.com/felixgeelhaar/richfield/internal/toolbar/deps"
	"github.com/felixgeelhaar/richfield/internal/toolbar/item"
	"github.com/felixgeelhaar/richfield/internal/toolbar/state"
)

// Renderer turns a layout into controls.
type Renderer struct {
	registry *capability.Registry
	layout   []Section
	logger   *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithLayout replaces DefaultLayout.
func WithLayout(layout []Section) Option {
	return func(r *Renderer) { r.layout = layout }
}

// New creates a renderer for the capabilities of reg.
func New(reg *capability.Registry, opts ...Option) *Renderer {
	r := &Renderer{
		registry: reg,
		layout:   DefaultLayout(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render builds the toolbar for snap. ctx must carry both the field
// configuration (capability.WithConfiguration) and the render dependencies
// (deps.WithDependencies).
func (r *Renderer) Render(ctx context.Context, snap state.Snapshot) []*item.Control {
	d := deps.FromContext(ctx)
	var out []*item.Control
	for _, section := range r.layout {
		if section.hidden(snap) {
			continue
		}
		var controls []*item.Control
		for _, key := range section.Keys {
			if c := r.Item(ctx, key, snap); c != nil {
				controls = append(controls, c)
			}
		}
		if len(controls) == 0 {
			continue
		}
		switch section.Kind {
		case SectionDropdown:
			out = append(out, &item.Control{
				Key:      section.Key,
				Kind:     item.KindDropdown,
				Label:    section.Label,
				Icon:     section.Icon,
				Title:    section.Title,
				Disabled: !d.IsEditable(),
				Children: controls,
			})
		default:
			out = append(out, controls...)
		}
		out = append(out, &item.Control{Kind: item.KindDivider, Disabled: true})
	}
	return out
}

// Item resolves one toolbar key. It returns nil for a disabled capability,
// a capability without a toolbar control, a meta control that does not
// apply to snap and an unknown key.
func (r *Renderer) Item(ctx context.Context, key string, snap state.Snapshot) *item.Control {
	cfg := capability.FromContext(ctx)
	props := item.Props{Ctx: ctx, Snapshot: snap}

	if name, ok := strings.CutPrefix(key, nodeTypePrefix); ok {
		id, err := capability.Parse(name)
		if err != nil {
			r.logger.Debug("unknown toolbar key", "key", key)
			return nil
		}
		desc, ok := r.registry.Lookup(id)
		if !ok || desc.Item == nil || !cfg.Enabled(id) {
			return nil
		}
		c := desc.Item(props)
		if c != nil {
			c.Key = key
		}
		return c
	}

	switch key {
	case KeyUndo:
		if cfg.Actions.SessionHistory {
			return item.Undo(props)
		}
	case KeyRedo:
		if cfg.Actions.SessionHistory {
			return item.Redo(props)
		}
	case KeyBlockTypes:
		d := deps.FromContext(ctx)
		if snap.BlockType.Recognized() && d.ActiveSurface().ID() == d.TopSurface().ID() {
			return item.BlockFormat(props)
		}
	case KeyCodeLanguage:
		if snap.BlockType == state.BlockCode {
			return item.CodeLanguage(props)
		}
	case KeyAlignment:
		if snap.BlockType != state.BlockCode {
			return item.Alignment(props)
		}
	case KeyFontFamily:
		if snap.BlockType != state.BlockCode {
			return item.FontFamily(cfg.Font.Families)(props)
		}
	case KeyFontSize:
		if snap.BlockType != state.BlockCode {
			return item.FontSize(cfg.Font.MinSize, cfg.Font.MaxSize)(props)
		}
	case KeyFontColor:
		if snap.BlockType != state.BlockCode {
			return item.FontColor(props)
		}
	case KeyBgColor:
		if snap.BlockType != state.BlockCode {
			return item.BgColor(props)
		}
	default:
		r.logger.Debug("unknown toolbar key", "key", key)
	}
	return nil
}

// Find returns the control with key among controls and their dropdown
// children, or nil.
func Find(controls []*item.Control, key string) *item.Control {
	for _, c := range controls {
		if c.Key == key && c.Kind != item.KindDivider {
			return c
		}
		if found := Find(c.Children, key); found != nil {
			return found
		}
	}
	return nil
}
