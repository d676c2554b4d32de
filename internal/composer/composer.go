// Package composer turns a field's resolved configuration into the set of
// editor extensions installed on its editing surface.
package composer

import (
	"fmt"

	"github.com/felixgeelhaar/richfield/internal/capability"
	"github.com/felixgeelhaar/richfield/internal/editor/sdk"
	"github.com/felixgeelhaar/richfield/internal/plugin"
)

// Compose returns the extensions of the enabled capabilities in registry
// order. A factory shared by several capabilities appears once, at the
// position of the first capability that needs it.
func Compose(reg *capability.Registry, cfg capability.Configuration) []*plugin.Factory {
	seen := make(map[*plugin.Factory]bool)
	factories := []*plugin.Factory{}
	for _, d := range reg.Descriptors() {
		if d.Plugin == nil || !cfg.Enabled(d.ID) || seen[d.Plugin] {
			continue
		}
		seen[d.Plugin] = true
		factories = append(factories, d.Plugin)
	}
	return factories
}

// Base returns the extensions every field installs.
func Base() []*plugin.Factory {
	return []*plugin.Factory{plugin.RichText, plugin.History}
}

// Install registers the base extensions followed by factories on s. The
// returned handles own every registration; releasing them uninstalls the
// extensions.
func Install(s sdk.Surface, factories []*plugin.Factory, env plugin.Env) (*sdk.Subscriptions, error) {
	if s == nil {
		return nil, fmt.Errorf("install extensions: %w", sdk.ErrNoActiveSurface)
	}

	subs := &sdk.Subscriptions{}
	seen := make(map[*plugin.Factory]bool)
	for _, f := range append(Base(), factories...) {
		if f == nil || seen[f] {
			continue
		}
		seen[f] = true
		subs.Add(f.Install(s, env)...)
	}
	return subs, nil
}
