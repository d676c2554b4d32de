// Package item builds the leaf controls of the toolbar. A Renderer turns the
// current Snapshot into a Control. Controls act on the editing surface that
// is active when they are clicked, through the render dependencies scoped to
// the renderer's context.
package item

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/richfield/internal/toolbar/deps"
	"github.com/felixgeelhaar/richfield/internal/toolbar/state"
)

var (
	// ErrControlDisabled is returned when a disabled control is used.
	ErrControlDisabled = errors.New("control is disabled")

	// ErrUnknownOption is returned when a dropdown has no option with the
	// requested key.
	ErrUnknownOption = errors.New("unknown dropdown option")
)

// Kind is the widget a Control is drawn as.
type Kind int

const (
	KindButton Kind = iota
	KindDropdown
	KindOption
	KindColor
	KindDivider
)

func (k Kind) String() string {
	switch k {
	case KindButton:
		return "button"
	case KindDropdown:
		return "dropdown"
	case KindOption:
		return "option"
	case KindColor:
		return "color"
	case KindDivider:
		return "divider"
	}
	return "unknown"
}

// Control is one rendered toolbar control.
type Control struct {
	Key      string
	Kind     Kind
	Label    string
	Icon     string
	Title    string
	Shortcut string
	Active   bool
	Disabled bool

	// Value is the current value shown on a dropdown or color control.
	Value string

	// Children are the options of a dropdown.
	Children []*Control

	action func() error
	pick   func(value string, skipHistory bool) error
}

// Click activates the control.
func (c *Control) Click() error {
	if c.Disabled {
		return ErrControlDisabled
	}
	if c.action == nil {
		return nil
	}
	return c.action()
}

// Select clicks the dropdown option with the given key.
func (c *Control) Select(key string) error {
	if c.Disabled {
		return ErrControlDisabled
	}
	opt := c.Option(key)
	if opt == nil {
		return ErrUnknownOption
	}
	return opt.Click()
}

// Option returns the child with the given key, or nil.
func (c *Control) Option(key string) *Control {
	for _, child := range c.Children {
		if child.Key == key {
			return child
		}
	}
	return nil
}

// Pick applies a value chosen in a color control. skipHistory is set while
// the user is still dragging through the palette.
func (c *Control) Pick(value string, skipHistory bool) error {
	if c.Disabled {
		return ErrControlDisabled
	}
	if c.pick == nil {
		return nil
	}
	return c.pick(value, skipHistory)
}

// Props are the inputs of a Renderer.
type Props struct {
	// Ctx carries the render dependencies (see deps.WithDependencies).
	Ctx context.Context

	Snapshot state.Snapshot

	// Label and Title override the defaults of the control.
	Label string
	Title string
}

// Renderer builds a control for the given props. A nil result renders
// nothing.
type Renderer func(Props) *Control

func (p Props) deps() *deps.RenderDependencies { return deps.FromContext(p.Ctx) }

func (p Props) label(def string) string {
	if p.Label != "" {
		return p.Label
	}
	return def
}

func (p Props) title(def string) string {
	if p.Title != "" {
		return p.Title
	}
	return def
}

func divider() *Control { return &Control{Kind: KindDivider, Disabled: true} }
