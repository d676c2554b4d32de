package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/richfield/internal/capability"
	"github.com/felixgeelhaar/richfield/internal/linksearch"
	"github.com/felixgeelhaar/richfield/pkg/config"
	"github.com/felixgeelhaar/richfield/pkg/observability"
	"github.com/redis/go-redis/v9"
)

const redisPingTimeout = 2 * time.Second

// Container holds the dependencies shared by every field mounted in one
// process.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *observability.InMemoryMetrics
	Health  *observability.HealthRegistry

	// Registry lists the capabilities fields can enable.
	Registry *capability.Registry

	// Overrides are the field options loaded from Config.OptionsFile. Each
	// mount may layer its own overrides on top.
	Overrides capability.Overrides

	// Redis caches search results. Nil when not configured or unreachable.
	RedisClient *redis.Client

	// Breaker guards the search endpoint. Nil when search is disabled.
	Breaker *linksearch.Breaker

	// Searcher never fails: errors turn into empty result sets.
	Searcher linksearch.Searcher
}

// Option configures a Container.
type Option func(*Container)

// WithRegistry replaces the default capability registry.
func WithRegistry(reg *capability.Registry) Option {
	return func(c *Container) { c.Registry = reg }
}

// WithSearcher replaces the search collaborator built from the config. The
// given searcher is still wrapped so failures yield empty results.
func WithSearcher(s linksearch.Searcher) Option {
	return func(c *Container) { c.Searcher = s }
}

// NewContainer creates a new dependency container.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewInMemoryMetrics(),
		Health:  observability.NewHealthRegistry(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Registry == nil {
		c.Registry = capability.DefaultRegistry(capability.WithLogger(logger))
	}
	c.Metrics.Gauge(observability.MetricCapabilities, float64(c.Registry.Len()))

	if cfg.OptionsFile != "" {
		o, err := LoadOverrides(cfg.OptionsFile)
		if err != nil {
			return nil, err
		}
		c.Overrides = o
		logger.Info("loaded field options", "path", cfg.OptionsFile, "keys", len(o.Keys()))
	}

	if err := c.connectRedis(ctx); err != nil {
		return nil, err
	}

	c.Searcher = linksearch.NewSafe(&instrumented{next: c.searcher(), metrics: c.Metrics}, logger)

	return c, nil
}

// connectRedis sets up the search cache. Redis is optional in development.
func (c *Container) connectRedis(ctx context.Context) error {
	if c.Config.RedisURL == "" {
		return nil
	}

	opt, err := redis.ParseURL(c.Config.RedisURL)
	if err != nil {
		if !c.Config.IsDevelopment() {
			return fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		c.Logger.Warn("invalid Redis URL, search results will be cached in memory", "error", err)
		return nil
	}

	client := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		if !c.Config.IsDevelopment() {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.Logger.Warn("Redis not available, search results will be cached in memory", "error", err)
		return nil
	}

	c.RedisClient = client
	c.Health.Register("redis", observability.RedisHealthChecker(func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}))
	c.Logger.Info("connected to Redis")
	return nil
}

// searcher builds the search chain: HTTP client, circuit breaker, then the
// result cache.
func (c *Container) searcher() linksearch.Searcher {
	if c.Searcher != nil {
		return c.Searcher
	}
	if !c.Config.SearchEnabled() {
		c.Logger.Debug("link search disabled, no endpoint configured")
		return disabledSearcher{}
	}

	client := linksearch.NewClient(c.Config.SearchURL,
		linksearch.WithTimeout(c.Config.SearchTimeout),
		linksearch.WithLogger(c.Logger),
	)

	c.Breaker = linksearch.NewBreaker(client, linksearch.BreakerConfig{
		MaxRequests:      c.Config.BreakerMaxRequests,
		Interval:         c.Config.BreakerInterval,
		Timeout:          c.Config.BreakerTimeout,
		FailureThreshold: c.Config.BreakerFailureThreshold,
	}, c.Logger)
	c.Health.Register("search", observability.BreakerHealthChecker(c.Breaker.State))

	var cache linksearch.Cache = linksearch.NewMemoryCache()
	if c.RedisClient != nil {
		cache = linksearch.NewRedisCache(c.RedisClient, "richfield:search:")
	}
	return linksearch.NewCached(c.Breaker, cache, c.Config.SearchCacheTTL, c.Logger)
}

// SearchScope is the query scope configured for link search.
func (c *Container) SearchScope() linksearch.Query {
	return linksearch.Query{
		Model:  c.Config.SearchModel,
		Field:  c.Config.SearchField,
		Locale: c.Config.SearchLocale,
	}
}

// Close releases resources.
func (c *Container) Close() {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing Redis connection", "error", err)
		}
	}
}

// LoadOverrides reads field options from a YAML or JSON file. The format
// follows the extension; anything other than .json is read as YAML.
func LoadOverrides(path string) (capability.Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return capability.NoOverrides, fmt.Errorf("failed to read options file: %w", err)
	}

	var o capability.Overrides
	if strings.EqualFold(filepath.Ext(path), ".json") {
		o, err = capability.FromJSON(data)
	} else {
		o, err = capability.FromYAML(data)
	}
	if err != nil {
		return capability.NoOverrides, fmt.Errorf("failed to parse options file %s: %w", path, err)
	}
	return o, nil
}
