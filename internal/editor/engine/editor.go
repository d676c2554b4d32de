// Package engine provides an in-memory editing surface implementing the
// sdk.Surface contract. Hosts embedding a real editor engine supply their own
// Surface; this one backs the CLI and the package tests.
package engine

import (
	"log/slog"
	"reflect"
	"sync"

	"github.com/felixgeelhaar/richfield/internal/editor/document"
	"github.com/felixgeelhaar/richfield/internal/editor/sdk"
	"github.com/google/uuid"
)

// Editor is an in-memory editing surface.
//
// Transactions are expected to run on a single goroutine, as with any
// editor engine driven by a UI event loop; Update calls made from inside a
// running update join that update instead of starting a new one.
type Editor struct {
	id     string
	parent *Editor
	logger *slog.Logger

	mu       sync.RWMutex
	state    *document.State
	editable bool

	pending     *document.State
	pendingTags []string

	commands *CommandRegistry

	listenersMu       sync.Mutex
	nextListener      uint64
	updateListeners   []updateEntry
	editableListeners []editableEntry
}

type updateEntry struct {
	id uint64
	fn sdk.UpdateListener
}

type editableEntry struct {
	id uint64
	fn sdk.EditableListener
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithDocument sets the initial document.
func WithDocument(root *document.Node) Option {
	return func(e *Editor) { e.state = document.NewState(root) }
}

// WithID overrides the generated surface id.
func WithID(id string) Option {
	return func(e *Editor) { e.id = id }
}

// New creates a top-level editing surface.
func New(opts ...Option) *Editor {
	e := &Editor{
		id:       uuid.NewString(),
		logger:   slog.Default(),
		editable: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.state == nil {
		e.state = document.NewState(nil)
	}
	e.commands = NewCommandRegistry(e.logger)
	return e
}

// NewNested creates a surface embedded in parent, e.g. an image caption.
// Commands dispatched on it propagate to parent's handlers.
func NewNested(parent *Editor, opts ...Option) *Editor {
	e := New(append([]Option{WithLogger(parent.logger)}, opts...)...)
	e.parent = parent
	return e
}

// ID returns the surface id.
func (e *Editor) ID() string { return e.id }

// Parent returns the embedding surface, or nil.
func (e *Editor) Parent() sdk.Surface {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

// Nested reports whether the surface is embedded.
func (e *Editor) Nested() bool { return e.parent != nil }

// Editable reports whether the surface accepts edits.
func (e *Editor) Editable() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.editable
}

// SetEditable toggles editability and notifies listeners on change.
func (e *Editor) SetEditable(editable bool) {
	e.mu.Lock()
	changed := e.editable != editable
	e.editable = editable
	e.mu.Unlock()

	if !changed {
		return
	}
	e.listenersMu.Lock()
	listeners := append([]editableEntry(nil), e.editableListeners...)
	e.listenersMu.Unlock()
	for _, l := range listeners {
		l.fn(editable)
	}
}

// Commands exposes the command registry of this surface.
func (e *Editor) Commands() *CommandRegistry { return e.commands }

// RegisterCommand subscribes h to cmd at priority p.
func (e *Editor) RegisterCommand(cmd sdk.Command, h sdk.CommandHandler, p sdk.Priority) *sdk.Subscription {
	return e.commands.Register(cmd, h, p)
}

// Dispatch fires cmd on this surface and then on its ancestors, highest
// priority first across the whole chain, until a handler claims it.
func (e *Editor) Dispatch(cmd sdk.Command, payload any) bool {
	var chain []*Editor
	for s := e; s != nil; s = s.parent {
		chain = append(chain, s)
	}
	for p := sdk.PriorityCritical; p >= sdk.PriorityEditor; p-- {
		for _, s := range chain {
			for _, h := range s.commands.Handlers(cmd, p) {
				if h(payload, e) {
					return true
				}
			}
		}
	}
	e.logger.Debug("command not handled",
		"surface_id", e.id,
		"command", string(cmd),
	)
	return false
}

// RegisterUpdateListener subscribes to committed updates.
func (e *Editor) RegisterUpdateListener(l sdk.UpdateListener) *sdk.Subscription {
	e.listenersMu.Lock()
	e.nextListener++
	id := e.nextListener
	e.updateListeners = append(e.updateListeners, updateEntry{id: id, fn: l})
	e.listenersMu.Unlock()

	return sdk.NewSubscription(func() {
		e.listenersMu.Lock()
		defer e.listenersMu.Unlock()
		for i, u := range e.updateListeners {
			if u.id == id {
				e.updateListeners = append(e.updateListeners[:i:i], e.updateListeners[i+1:]...)
				return
			}
		}
	})
}

// RegisterEditableListener subscribes to editability changes.
func (e *Editor) RegisterEditableListener(l sdk.EditableListener) *sdk.Subscription {
	e.listenersMu.Lock()
	e.nextListener++
	id := e.nextListener
	e.editableListeners = append(e.editableListeners, editableEntry{id: id, fn: l})
	e.listenersMu.Unlock()

	return sdk.NewSubscription(func() {
		e.listenersMu.Lock()
		defer e.listenersMu.Unlock()
		for i, u := range e.editableListeners {
			if u.id == id {
				e.editableListeners = append(e.editableListeners[:i:i], e.editableListeners[i+1:]...)
				return
			}
		}
	})
}

// Read runs fn against the committed state, or against the working copy when
// called from inside an update.
func (e *Editor) Read(fn func(*document.State)) {
	if e.pending != nil {
		fn(e.pending)
		return
	}
	e.mu.RLock()
	st := e.state
	e.mu.RUnlock()
	fn(st)
}

// Update runs fn against a working copy of the state and commits it. Update
// listeners run after the commit; a selection change is announced with
// sdk.CommandSelectionChange.
func (e *Editor) Update(fn func(*document.State), opts ...sdk.UpdateOption) {
	var o sdk.UpdateOptions
	for _, opt := range opts {
		opt(&o)
	}

	if e.pending != nil {
		e.pendingTags = append(e.pendingTags, o.Tags...)
		fn(e.pending)
		return
	}

	e.mu.RLock()
	prev := e.state
	e.mu.RUnlock()

	work := prev.Clone()
	e.pending = work
	e.pendingTags = o.Tags
	fn(work)
	tags := e.pendingTags
	e.pending = nil
	e.pendingTags = nil

	e.mu.Lock()
	e.state = work
	e.mu.Unlock()

	event := sdk.UpdateEvent{
		State:     work,
		Previous:  prev,
		Tags:      tags,
		Selection: !reflect.DeepEqual(prev.Selection(), work.Selection()),
		Dirty:     !document.Equal(prev.Root(), work.Root()),
	}

	e.listenersMu.Lock()
	listeners := append([]updateEntry(nil), e.updateListeners...)
	e.listenersMu.Unlock()
	for _, l := range listeners {
		l.fn(event)
	}

	if event.Selection {
		e.Dispatch(sdk.CommandSelectionChange, nil)
	}
}

// Select replaces the selection in its own update transaction.
func (e *Editor) Select(sel document.Selection) {
	e.Update(func(st *document.State) { st.SetSelection(sel) })
}

// State returns the committed state.
func (e *Editor) State() *document.State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

var _ sdk.Surface = (*Editor)(nil)
