// Package sdk defines the contracts between the toolbar core and the editing
// engine: editing surfaces, their command bus and transactions, and the
// errors shared across the toolbar packages.
package sdk

import "github.com/felixgeelhaar/richfield/internal/editor/document"

// Priority orders command handlers. Higher priorities run first.
type Priority int

const (
	PriorityEditor Priority = iota
	PriorityLow
	PriorityNormal
	PriorityHigh
	PriorityCritical
)

// CommandHandler handles a dispatched command. origin is the surface the
// command was dispatched on, which may be a nested surface of the one the
// handler is registered with. Returning true stops propagation.
type CommandHandler func(payload any, origin Surface) bool

// UpdateEvent describes a committed update transaction.
type UpdateEvent struct {
	State     *document.State
	Previous  *document.State
	Tags      []string
	Selection bool // the selection changed
	Dirty     bool // the document content changed
}

// HasTag reports whether the update carried tag.
func (e UpdateEvent) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// UpdateListener observes committed updates.
type UpdateListener func(UpdateEvent)

// EditableListener observes editability changes.
type EditableListener func(editable bool)

// TagHistoric marks updates that must not be recorded in the undo history.
const TagHistoric = "historic"

// UpdateOptions tune an update transaction.
type UpdateOptions struct {
	Tags []string
}

// UpdateOption configures UpdateOptions.
type UpdateOption func(*UpdateOptions)

// WithTag tags an update transaction.
func WithTag(tag string) UpdateOption {
	return func(o *UpdateOptions) { o.Tags = append(o.Tags, tag) }
}

// Surface is one editing surface: the top-level editor of a field or an
// editor nested inside its content, such as an image caption.
//
// Reads happen inside Read, mutations inside Update. The engine serializes
// transactions on a surface; Read never observes a half-applied update.
type Surface interface {
	// ID returns a stable identifier for the surface.
	ID() string

	// Parent returns the surface this one is embedded in, or nil.
	Parent() Surface

	// Nested reports whether the surface is embedded in another surface.
	Nested() bool

	// Editable reports whether the surface accepts edits.
	Editable() bool

	// SetEditable toggles editability and notifies editable listeners.
	SetEditable(editable bool)

	// Dispatch fires cmd. It reports whether any handler claimed it.
	Dispatch(cmd Command, payload any) bool

	// RegisterCommand subscribes h to cmd at priority p.
	RegisterCommand(cmd Command, h CommandHandler, p Priority) *Subscription

	// RegisterUpdateListener subscribes to committed updates.
	RegisterUpdateListener(l UpdateListener) *Subscription

	// RegisterEditableListener subscribes to editability changes.
	RegisterEditableListener(l EditableListener) *Subscription

	// Read runs fn against the committed state.
	Read(fn func(*document.State))

	// Update runs fn against a working copy and commits it.
	Update(fn func(*document.State), opts ...UpdateOption)
}
