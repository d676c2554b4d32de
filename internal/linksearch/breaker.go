package linksearch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerConfig configures the circuit breaker around a Searcher.
type BreakerConfig struct {
	// MaxRequests is the number of probes allowed while half-open.
	MaxRequests uint32

	// Interval is the cyclic period of the closed state.
	Interval time.Duration

	// Timeout is the period of the open state.
	Timeout time.Duration

	// FailureThreshold trips the breaker after that many consecutive
	// failures.
	FailureThreshold uint32
}

// DefaultBreakerConfig returns the breaker settings used when none are
// configured.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// Breaker stops calling a failing search endpoint for a while.
type Breaker struct {
	next   Searcher
	search *gobreaker.CircuitBreaker[[]Result]
	lookup *gobreaker.CircuitBreaker[*Result]
	logger *slog.Logger
}

// NewBreaker wraps next. A missing target is not counted as a failure.
func NewBreaker(next Searcher, cfg BreakerConfig, logger *slog.Logger) *Breaker {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = DefaultBreakerConfig().FailureThreshold
	}
	settings := func(name string) gobreaker.Settings {
		return gobreaker.Settings{
			Name:        name,
			MaxRequests: cfg.MaxRequests,
			Interval:    cfg.Interval,
			Timeout:     cfg.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= cfg.FailureThreshold
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Info("link search breaker state changed",
					"breaker", name,
					"from", from.String(),
					"to", to.String(),
				)
			},
		}
	}
	return &Breaker{
		next:   next,
		search: gobreaker.NewCircuitBreaker[[]Result](settings("link-search")),
		lookup: gobreaker.NewCircuitBreaker[*Result](settings("link-get")),
		logger: logger,
	}
}

// Search implements Searcher.
func (b *Breaker) Search(ctx context.Context, q Query) ([]Result, error) {
	results, err := b.search.Execute(func() ([]Result, error) {
		return b.next.Search(ctx, q)
	})
	return results, translateBreakerErr(err)
}

// Get implements Searcher.
func (b *Breaker) Get(ctx context.Context, id string) (*Result, error) {
	result, err := b.lookup.Execute(func() (*Result, error) {
		return b.next.Get(ctx, id)
	})
	return result, translateBreakerErr(err)
}

// State reports the state of the search breaker.
func (b *Breaker) State() string { return b.search.State().String() }

func translateBreakerErr(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrCircuitOpen
	}
	return err
}
