package capability

import (
	"context"

	"github.com/felixgeelhaar/richfield/internal/editor/sdk"
)

type contextKey struct{}

// WithConfiguration scopes cfg to ctx.
func WithConfiguration(ctx context.Context, cfg Configuration) context.Context {
	cfg = cfg.Clone()
	return context.WithValue(ctx, contextKey{}, &cfg)
}

// FromContext returns the configuration scoped to ctx. Reading it outside a
// WithConfiguration scope is a wiring bug and panics with a
// *sdk.ConfigurationAccessError.
func FromContext(ctx context.Context) Configuration {
	if cfg, ok := ctx.Value(contextKey{}).(*Configuration); ok && cfg != nil {
		return cfg.Clone()
	}
	panic(sdk.NewConfigurationAccessError("capability configuration", "capability.FromContext"))
}
