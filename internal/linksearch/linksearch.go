// Package linksearch talks to the host's link-target search endpoint. The
// link dialog uses it to find content entries an internal link can point at.
package linksearch

import (
	"context"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/richfield/internal/editor/sdk"
)

var (
	// ErrCircuitOpen is returned while the breaker rejects calls.
	ErrCircuitOpen = errors.New("link search circuit open")

	// ErrNotFound is returned by Get when the target does not exist.
	ErrNotFound = errors.New("link target not found")
)

// Result is one linkable content entry.
type Result struct {
	DocumentID     string `json:"documentId"`
	ID             int    `json:"id"`
	Label          string `json:"label"`
	CollectionName string `json:"collectionName"`
}

// Target returns the internal link URL pointing at r.
func (r Result) Target() string {
	return InternalScheme + r.CollectionName + "/" + r.DocumentID
}

// Query scopes a search to the field being edited.
type Query struct {
	Model  string
	Field  string
	Q      string
	Locale string
}

// Searcher finds link targets.
type Searcher interface {
	// Search returns the entries matching q.
	Search(ctx context.Context, q Query) ([]Result, error)

	// Get returns the entry an internal link points at. id is the part of
	// the link after the scheme.
	Get(ctx context.Context, id string) (*Result, error)
}

// SearchError wraps a failed call to the search endpoint.
type SearchError struct {
	Op     string
	Status int
	Err    error
}

func (e *SearchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("link search %s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("link search %s: %v", e.Op, e.Err)
}

func (e *SearchError) Unwrap() []error {
	if e.Err == nil {
		return []error{sdk.ErrSearchFailed}
	}
	return []error{sdk.ErrSearchFailed, e.Err}
}
