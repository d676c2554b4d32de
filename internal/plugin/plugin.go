// Package plugin provides the editor extensions a field installs on its
// editing surface. Each extension is a *Factory; several capabilities may
// share one factory, and the factory pointer is its identity.
package plugin

import (
	"log/slog"

	"github.com/felixgeelhaar/richfield/internal/editor/sdk"
)

// Env carries what an extension needs at install time.
type Env struct {
	Logger *slog.Logger
}

func (e Env) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

// InstallFunc registers an extension's handlers on a surface and returns the
// owned registrations.
type InstallFunc func(s sdk.Surface, env Env) []*sdk.Subscription

// Factory builds one editor extension.
type Factory struct {
	name    string
	install InstallFunc
}

// New creates a factory.
func New(name string, install InstallFunc) *Factory {
	return &Factory{name: name, install: install}
}

// Name returns the extension name.
func (f *Factory) Name() string { return f.name }

// Install registers the extension on s.
func (f *Factory) Install(s sdk.Surface, env Env) []*sdk.Subscription {
	env.logger().Debug("installing editor extension", "plugin", f.name, "surface_id", s.ID())
	return f.install(s, env)
}

// Extensions shared by the capability catalogue.
var (
	TextFormat  = New("text-format", installTextFormat)
	Link        = New("link", installLink)
	Emoji       = New("emoji", installEmoji)
	Images      = New("images", installImages)
	MediaImage  = New("media-image", installMediaImage)
	Dividers    = New("dividers", installDividers)
	Table       = New("table", installTable)
	Layout      = New("layout", installLayout)
	Equation    = New("equation", installEquation)
	Collapsible = New("collapsible", installCollapsible)
)

// Base extensions every field installs regardless of its capabilities.
var (
	RichText = New("rich-text", installRichText)
	History  = New("history", installHistory)
)
