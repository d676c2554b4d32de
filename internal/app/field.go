package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/felixgeelhaar/richfield/internal/capability"
	"github.com/felixgeelhaar/richfield/internal/composer"
	"github.com/felixgeelhaar/richfield/internal/editor/document"
	"github.com/felixgeelhaar/richfield/internal/editor/engine"
	"github.com/felixgeelhaar/richfield/internal/editor/sdk"
	"github.com/felixgeelhaar/richfield/internal/linksearch"
	"github.com/felixgeelhaar/richfield/internal/plugin"
	"github.com/felixgeelhaar/richfield/internal/toolbar/deps"
	"github.com/felixgeelhaar/richfield/internal/toolbar/render"
	"github.com/felixgeelhaar/richfield/internal/toolbar/state"
	"github.com/felixgeelhaar/richfield/internal/wordcount"
	"github.com/felixgeelhaar/richfield/pkg/observability"
	"github.com/google/uuid"
)

// ErrFieldClosed is returned when a closed field is used.
var ErrFieldClosed = errors.New("field is closed")

// MountOptions are the per-instance inputs of a field.
type MountOptions struct {
	// Surface is the editing surface to attach to. When nil a new editor is
	// created holding Document.
	Surface sdk.Surface

	// Document is the initial content of a created editor.
	Document *document.Node

	// Overrides are layered over the container's options.
	Overrides capability.Overrides

	LinkEditMode func(bool)
	ImageDialog  func(bool)
	Modal        deps.ModalLauncher

	// OnCount receives the text counts after every content change.
	OnCount func(wordcount.Counts)

	// Layout replaces the default toolbar layout.
	Layout []render.Section
}

// Field is one mounted rich-text field: the resolved configuration, the
// installed extensions and a running toolbar.
type Field struct {
	ID      string
	Config  capability.Configuration
	Plugins []*plugin.Factory
	Surface sdk.Surface
	Deps    *deps.RenderDependencies
	Sync    *state.Synchronizer
	Toolbar *render.Toolbar
	Counter *wordcount.Counter

	ctx      context.Context
	logger   *slog.Logger
	searcher linksearch.Searcher
	scope    linksearch.Query

	mu     sync.Mutex
	counts wordcount.Counts
	subs   *sdk.Subscriptions
	closed bool
}

// Mount resolves the field options, installs the enabled extensions on the
// surface and starts the toolbar.
func (c *Container) Mount(ctx context.Context, opts MountOptions) (*Field, error) {
	id := uuid.NewString()
	ctx = observability.WithMountID(ctx, id)
	logger := c.Logger.With(observability.MountIDKey, id)

	overrides, err := c.Overrides.Merge(opts.Overrides)
	if err != nil {
		return nil, fmt.Errorf("mount field: %w", err)
	}
	cfg := capability.Resolve(c.Registry, overrides)

	surface := opts.Surface
	if surface == nil {
		surface = engine.New(engine.WithID(id), engine.WithDocument(opts.Document), engine.WithLogger(logger))
	}

	factories := composer.Compose(c.Registry, cfg)
	subs, err := composer.Install(surface, factories, plugin.Env{Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("mount field: %w", err)
	}

	f := &Field{
		ID:       id,
		Config:   cfg,
		Plugins:  factories,
		Surface:  surface,
		logger:   logger,
		searcher: c.Searcher,
		scope:    c.SearchScope(),
		subs:     subs,
	}

	counter, err := wordcount.New(cfg.Counter.Charset, cfg.Counter.Limit)
	if err != nil {
		subs.ReleaseAll()
		return nil, fmt.Errorf("mount field: %w", err)
	}
	f.Counter = counter
	subs.Add(plugin.NewWordCount(counter, func(counts wordcount.Counts) {
		f.mu.Lock()
		f.counts = counts
		f.mu.Unlock()
		if opts.OnCount != nil {
			opts.OnCount(counts)
		}
	}).Install(surface, plugin.Env{Logger: logger})...)

	d, err := deps.New(deps.Config{
		Surface:      surface,
		LinkEditMode: opts.LinkEditMode,
		ImageDialog:  opts.ImageDialog,
		Modal:        opts.Modal,
		Logger:       logger,
	})
	if err != nil {
		subs.ReleaseAll()
		return nil, fmt.Errorf("mount field: %w", err)
	}
	f.Deps = d

	f.ctx = deps.WithDependencies(capability.WithConfiguration(ctx, cfg), d)

	f.Sync = state.NewSynchronizer(d, state.WithLogger(logger))
	renderOpts := []render.Option{render.WithLogger(logger)}
	if opts.Layout != nil {
		renderOpts = append(renderOpts, render.WithLayout(opts.Layout))
	}
	f.Toolbar = render.NewToolbar(f.ctx, render.New(c.Registry, renderOpts...), f.Sync)

	metrics := c.Metrics
	subs.Add(f.Sync.OnPublish(func(state.Snapshot) {
		metrics.Counter(observability.MetricToolbarRenders, 1)
	}))
	f.Sync.Start()
	f.Toolbar.Start()

	metrics.Counter(observability.MetricMounts, 1)
	logger.InfoContext(ctx, "field mounted",
		"capabilities", len(cfg.EnabledIDs()),
		"extensions", len(factories),
	)
	return f, nil
}

// Context returns the render scope of the field. It carries the resolved
// configuration and the render dependencies.
func (f *Field) Context() context.Context { return f.ctx }

// Counts returns the latest text counts.
func (f *Field) Counts() wordcount.Counts {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts
}

// LinkDialog opens the link dialog for the link under the cursor.
func (f *Field) LinkDialog(ctx context.Context, current string) (*linksearch.Dialog, error) {
	f.mu.Lock()
	closed := f.closed
	f.mu.Unlock()
	if closed {
		return nil, ErrFieldClosed
	}
	return linksearch.NewDialog(ctx, f.searcher, f.scope, current), nil
}

// Close stops the toolbar and uninstalls every extension. It is safe to
// call more than once.
func (f *Field) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	f.mu.Unlock()

	f.Toolbar.Stop()
	f.Sync.Stop()
	f.subs.ReleaseAll()
	f.logger.Debug("field unmounted")
}
