package observability

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	correlationIDCtxKey contextKey = "correlation_id"
	mountIDCtxKey       contextKey = "mount_id"
)

// Attribute keys used in logs and metrics.
const (
	CorrelationIDKey = "correlation_id"
	MountIDKey       = "mount_id"
	OperationKey     = "operation"
	DurationKey      = "duration_ms"
	ErrorKey         = "error"
)

// WithCorrelationID adds a correlation ID to the context. An empty id
// generates one.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = uuid.NewString()
	}
	return context.WithValue(ctx, correlationIDCtxKey, id)
}

// CorrelationIDFromContext extracts the correlation ID from context.
func CorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationIDCtxKey).(string)
	return id
}

// WithMountID tags the context with the id of a mounted field.
func WithMountID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, mountIDCtxKey, id)
}

// MountIDFromContext extracts the mount ID from context.
func MountIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(mountIDCtxKey).(string)
	return id
}
