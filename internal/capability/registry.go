package capability

import (
	"errors"
	"fmt"
	"log/slog"
)

var (
	// ErrDuplicateCapability is returned when a registry is built with two
	// descriptors for one ID.
	ErrDuplicateCapability = errors.New("duplicate capability descriptor")

	// ErrInvalidCapability is returned for a descriptor whose ID is out of
	// range.
	ErrInvalidCapability = errors.New("invalid capability id")
)

// Registry is the immutable catalogue of capabilities, in declaration
// order.
type Registry struct {
	order       []ID
	descriptors [idCount]*Descriptor
	logger      *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used while resolving configurations.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry builds a registry from descriptors. Their order is the
// registry order.
func NewRegistry(descriptors []Descriptor, opts ...RegistryOption) (*Registry, error) {
	r := &Registry{logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	for _, d := range descriptors {
		if !d.ID.Valid() {
			return nil, fmt.Errorf("%w: %d", ErrInvalidCapability, int(d.ID))
		}
		if r.descriptors[d.ID] != nil {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCapability, d.ID)
		}
		desc := d
		r.descriptors[d.ID] = &desc
		r.order = append(r.order, d.ID)
	}
	return r, nil
}

// DefaultRegistry returns the full capability catalogue.
func DefaultRegistry(opts ...RegistryOption) *Registry {
	r, err := NewRegistry(catalogue(), opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the descriptor of id.
func (r *Registry) Lookup(id ID) (Descriptor, bool) {
	if !id.Valid() || r.descriptors[id] == nil {
		return Descriptor{}, false
	}
	return *r.descriptors[id], true
}

// IDs returns the registered ids in registry order.
func (r *Registry) IDs() []ID {
	return append([]ID(nil), r.order...)
}

// Descriptors returns the descriptors in registry order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.descriptors[id])
	}
	return out
}

// Len returns the number of registered capabilities.
func (r *Registry) Len() int { return len(r.order) }

// OptionItem is one checkbox of the field settings.
type OptionItem struct {
	Name        string
	Label       string
	Description string
	Type        string
}

// OptionSection groups option items under a title.
type OptionSection struct {
	Title string
	Items []OptionItem
}

// OptionSections describes the settings a host shows when an administrator
// configures a field.
func (r *Registry) OptionSections() []OptionSection {
	nodeTypes := OptionSection{Title: "Select the node types to enable"}
	for _, d := range r.Descriptors() {
		nodeTypes.Items = append(nodeTypes.Items, OptionItem{
			Name:        nodeTypePath(d.ID),
			Label:       d.DefaultLabel,
			Description: d.DefaultDescription,
			Type:        "checkbox",
		})
	}
	return []OptionSection{
		nodeTypes,
		{
			Title: "Select actions to enable",
			Items: []OptionItem{
				{Name: pathSessionHistory, Label: "Session history", Description: "Add buttons to undo/redo within the current editing session", Type: "checkbox"},
				{Name: pathClear, Label: "Clear", Description: "Add button to clear all text within the current editor", Type: "checkbox"},
				{Name: pathExportAsMarkdown, Label: "Export as Markdown", Description: "Add button to export editor text in Markdown format", Type: "checkbox"},
				{Name: pathImport, Label: "Import", Description: "Add button to import existing formatted text", Type: "checkbox"},
				{Name: pathExport, Label: "Export", Description: "Add button to export text in the editor's format", Type: "checkbox"},
			},
		},
		{
			Title: "Select developer settings to enable",
			Items: []OptionItem{
				{Name: pathTreeView, Label: "Tree view", Description: "Add button to show the internal document tree", Type: "checkbox"},
			},
		},
	}
}
