package render

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/felixgeelhaar/richfield/internal/editor/sdk"
	"github.com/felixgeelhaar/richfield/internal/toolbar/item"
	"github.com/felixgeelhaar/richfield/internal/toolbar/state"
)

// Toolbar re-renders the controls every time the synchronizer publishes a
// snapshot.
type Toolbar struct {
	ctx      context.Context
	renderer *Renderer
	sync     *state.Synchronizer

	controls atomic.Pointer[[]*item.Control]
	renders  atomic.Uint64

	mu  sync.Mutex
	sub *sdk.Subscription
}

// NewToolbar binds renderer to synchronizer. ctx is the render scope passed to
// Renderer.Render.
func NewToolbar(ctx context.Context, renderer *Renderer, synchronizer *state.Synchronizer) *Toolbar {
	t := &Toolbar{ctx: ctx, renderer: renderer, sync: synchronizer}
	empty := []*item.Control{}
	t.controls.Store(&empty)
	return t
}

// Start renders the current snapshot and subscribes to later ones. The
// synchronizer is started separately.
func (t *Toolbar) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sub != nil {
		return
	}
	t.sub = t.sync.OnPublish(t.render)
	t.render(t.sync.Snapshot())
}

// Stop unsubscribes. The last controls stay readable.
func (t *Toolbar) Stop() {
	t.mu.Lock()
	sub := t.sub
	t.sub = nil
	t.mu.Unlock()
	sub.Release()
}

func (t *Toolbar) render(snap state.Snapshot) {
	controls := t.renderer.Render(t.ctx, snap)
	t.controls.Store(&controls)
	t.renders.Add(1)
}

// Controls returns the controls of the last render.
func (t *Toolbar) Controls() []*item.Control { return *t.controls.Load() }

// Control returns the control with key from the last render, or nil.
func (t *Toolbar) Control(key string) *item.Control { return Find(t.Controls(), key) }

// Renders counts renders since construction.
func (t *Toolbar) Renders() uint64 { return t.renders.Load() }
