package app

import (
	"context"
	"time"

	"github.com/felixgeelhaar/richfield/internal/linksearch"
	"github.com/felixgeelhaar/richfield/pkg/observability"
)

// disabledSearcher stands in when no search endpoint is configured.
type disabledSearcher struct{}

func (disabledSearcher) Search(context.Context, linksearch.Query) ([]linksearch.Result, error) {
	return []linksearch.Result{}, nil
}

func (disabledSearcher) Get(context.Context, string) (*linksearch.Result, error) {
	return nil, linksearch.ErrNotFound
}

// instrumented records request counts, errors and latency of a Searcher.
type instrumented struct {
	next    linksearch.Searcher
	metrics observability.Metrics
}

func (s *instrumented) Search(ctx context.Context, q linksearch.Query) ([]linksearch.Result, error) {
	start := time.Now()
	results, err := s.next.Search(ctx, q)
	s.record("search", start, err)
	return results, err
}

func (s *instrumented) Get(ctx context.Context, id string) (*linksearch.Result, error) {
	start := time.Now()
	result, err := s.next.Get(ctx, id)
	s.record("get", start, err)
	return result, err
}

func (s *instrumented) record(op string, start time.Time, err error) {
	tag := observability.T("op", op)
	s.metrics.Counter(observability.MetricSearchRequests, 1, tag)
	s.metrics.Timing(observability.MetricSearchDuration, time.Since(start), tag)
	if err != nil {
		s.metrics.Counter(observability.MetricSearchErrors, 1, tag)
	}
}
