package sdk

import "errors"

var (
	// ErrConfigurationAccess is the sentinel behind ConfigurationAccessError.
	ErrConfigurationAccess = errors.New("configuration accessed outside its provider scope")

	// ErrUnknownCapability marks a capability id absent from the registry.
	ErrUnknownCapability = errors.New("unknown capability")

	// ErrNoActiveSurface is returned when there is no surface to dispatch to.
	ErrNoActiveSurface = errors.New("no active editing surface")

	// ErrSearchFailed marks a failed call to the link-target search collaborator.
	ErrSearchFailed = errors.New("link target search failed")
)

// ConfigurationAccessError reports a read of a scoped value (the resolved
// capability configuration or the render dependencies) outside the scope that
// provides it. It indicates a wiring bug and is raised as a panic.
type ConfigurationAccessError struct {
	Resource string
	Accessor string
}

func (e *ConfigurationAccessError) Error() string {
	return e.Accessor + ": " + e.Resource + " must be read within its provider scope"
}

func (e *ConfigurationAccessError) Unwrap() error {
	return ErrConfigurationAccess
}

// NewConfigurationAccessError creates a ConfigurationAccessError.
func NewConfigurationAccessError(resource, accessor string) *ConfigurationAccessError {
	return &ConfigurationAccessError{Resource: resource, Accessor: accessor}
}
