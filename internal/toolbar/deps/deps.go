// Package deps holds the render dependencies shared by every toolbar control
// of one mounted field: the active editing surface, the editability flag and
// the dialog collaborators.
package deps

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/felixgeelhaar/richfield/internal/editor/sdk"
)

var (
	// ErrNotEditable is returned when a control is used while the field is
	// read-only. No command reaches the surface.
	ErrNotEditable = errors.New("editing surface is not editable")

	// ErrNoModalLauncher is returned when a control needs a dialog but the
	// host supplied no modal launcher.
	ErrNoModalLauncher = errors.New("no modal launcher configured")
)

// ModalLauncher shows a dialog. The body is built by the caller and receives
// a function closing the dialog; the launcher owns the dialog chrome.
type ModalLauncher interface {
	Show(title string, body func(onClose func()) any)
}

// ModalFunc adapts a function to ModalLauncher.
type ModalFunc func(title string, body func(onClose func()) any)

// Show calls f.
func (f ModalFunc) Show(title string, body func(onClose func()) any) { f(title, body) }

// Config are the collaborators supplied at mount.
type Config struct {
	// Surface is the top-level editing surface of the field.
	Surface sdk.Surface

	// LinkEditMode switches the floating link editor on or off.
	LinkEditMode func(bool)

	// ImageDialog opens or closes the media library dialog.
	ImageDialog func(bool)

	// Modal shows dialogs such as the table or equation dialogs.
	Modal ModalLauncher

	Logger *slog.Logger
}

type surfaceRef struct{ sdk.Surface }

// RenderDependencies is built once per mount. Only the active surface and
// the editability flag change afterwards.
type RenderDependencies struct {
	top      sdk.Surface
	active   atomic.Pointer[surfaceRef]
	editable atomic.Bool

	linkEditMode func(bool)
	imageDialog  func(bool)
	modal        ModalLauncher
	logger       *slog.Logger
}

// New creates the dependencies of one mounted toolbar.
func New(cfg Config) (*RenderDependencies, error) {
	if cfg.Surface == nil {
		return nil, sdk.ErrNoActiveSurface
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	d := &RenderDependencies{
		top:          cfg.Surface,
		linkEditMode: cfg.LinkEditMode,
		imageDialog:  cfg.ImageDialog,
		modal:        cfg.Modal,
		logger:       logger,
	}
	d.active.Store(&surfaceRef{cfg.Surface})
	d.editable.Store(cfg.Surface.Editable())
	return d, nil
}

// TopSurface returns the field's top-level surface.
func (d *RenderDependencies) TopSurface() sdk.Surface { return d.top }

// ActiveSurface returns the surface that currently has focus, which may be a
// nested surface such as an image caption.
func (d *RenderDependencies) ActiveSurface() sdk.Surface {
	return d.active.Load().Surface
}

// SetActiveSurface swaps the active surface. A nil surface restores the
// top-level one.
func (d *RenderDependencies) SetActiveSurface(s sdk.Surface) {
	if s == nil {
		s = d.top
	}
	prev := d.active.Swap(&surfaceRef{s})
	if prev.Surface.ID() != s.ID() {
		d.logger.Debug("active surface changed",
			"from", prev.Surface.ID(),
			"to", s.ID(),
			"nested", s.Nested(),
		)
	}
}

// IsEditable reports whether controls may act on the surface.
func (d *RenderDependencies) IsEditable() bool { return d.editable.Load() }

// SetEditable updates the editability flag.
func (d *RenderDependencies) SetEditable(editable bool) { d.editable.Store(editable) }

// Dispatch sends cmd to the surface active right now.
func (d *RenderDependencies) Dispatch(cmd sdk.Command, payload any) error {
	if !d.IsEditable() {
		return ErrNotEditable
	}
	s := d.ActiveSurface()
	if !s.Dispatch(cmd, payload) {
		d.logger.Debug("command not handled by active surface",
			"command", string(cmd),
			"surface_id", s.ID(),
		)
	}
	return nil
}

// SetLinkEditMode toggles the floating link editor.
func (d *RenderDependencies) SetLinkEditMode(on bool) error {
	if !d.IsEditable() {
		return ErrNotEditable
	}
	if d.linkEditMode != nil {
		d.linkEditMode(on)
	}
	return nil
}

// SetImageDialogOpen opens or closes the media library dialog.
func (d *RenderDependencies) SetImageDialogOpen(open bool) error {
	if !d.IsEditable() {
		return ErrNotEditable
	}
	if d.imageDialog != nil {
		d.imageDialog(open)
	}
	return nil
}

// ShowModal opens a dialog through the host's modal launcher.
func (d *RenderDependencies) ShowModal(title string, body func(onClose func()) any) error {
	if !d.IsEditable() {
		return ErrNotEditable
	}
	if d.modal == nil {
		return ErrNoModalLauncher
	}
	d.modal.Show(title, body)
	return nil
}

type contextKey struct{}

// WithDependencies scopes d to ctx.
func WithDependencies(ctx context.Context, d *RenderDependencies) context.Context {
	return context.WithValue(ctx, contextKey{}, d)
}

// FromContext returns the dependencies scoped to ctx. Reading them outside a
// WithDependencies scope is a wiring bug and panics with a
// *sdk.ConfigurationAccessError.
func FromContext(ctx context.Context) *RenderDependencies {
	if d, ok := ctx.Value(contextKey{}).(*RenderDependencies); ok && d != nil {
		return d
	}
	panic(sdk.NewConfigurationAccessError("render dependencies", "deps.FromContext"))
}
