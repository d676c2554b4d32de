package linksearch

import (
	"context"
	"errors"
	"log/slog"
)

// Safe turns every search failure into an empty result set. The dialog
// never shows an error for a failed search, it shows no results.
type Safe struct {
	next   Searcher
	logger *slog.Logger
}

// NewSafe wraps next.
func NewSafe(next Searcher, logger *slog.Logger) *Safe {
	if logger == nil {
		logger = slog.Default()
	}
	return &Safe{next: next, logger: logger}
}

// Search implements Searcher. It never returns an error.
func (s *Safe) Search(ctx context.Context, q Query) ([]Result, error) {
	results, err := s.next.Search(ctx, q)
	if err != nil {
		s.logger.Warn("link search failed",
			"model", q.Model,
			"field", q.Field,
			"error", err,
		)
		return []Result{}, nil
	}
	if results == nil {
		results = []Result{}
	}
	return results, nil
}

// Get implements Searcher. A failed lookup reports ErrNotFound.
func (s *Safe) Get(ctx context.Context, id string) (*Result, error) {
	result, err := s.next.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("link target lookup failed", "id", id, "error", err)
		}
		return nil, ErrNotFound
	}
	return result, nil
}
