package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("creates text logger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Level: LogLevelInfo, Format: LogFormatText, Output: &buf})
		require.NotNil(t, logger)

		logger.Info("test message", "key", "value")

		assert.Contains(t, buf.String(), "test message")
		assert.Contains(t, buf.String(), "key=value")
	})

	t.Run("creates JSON logger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Level: LogLevelInfo, Format: LogFormatJSON, Output: &buf})

		logger.Info("test message", "key", "value")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "test message", entry["msg"])
		assert.Equal(t, "value", entry["key"])
	})

	t.Run("respects log level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Level: LogLevelWarn, Format: LogFormatText, Output: &buf})

		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("warn message")

		assert.NotContains(t, buf.String(), "debug message")
		assert.NotContains(t, buf.String(), "info message")
		assert.Contains(t, buf.String(), "warn message")
	})

	t.Run("adds service attributes and context ids", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{
			Level:          LogLevelInfo,
			Format:         LogFormatJSON,
			Output:         &buf,
			ServiceName:    "richfield",
			ServiceVersion: "1.0.0",
		})
		ctx := WithMountID(WithCorrelationID(context.Background(), "corr-123"), "mount-7")

		logger.InfoContext(ctx, "mounted")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "richfield", entry["service"])
		assert.Equal(t, "1.0.0", entry["version"])
		assert.Equal(t, "corr-123", entry[CorrelationIDKey])
		assert.Equal(t, "mount-7", entry[MountIDKey])
	})

	t.Run("keeps attributes through With", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Format: LogFormatText, Output: &buf, ServiceName: "richfield"})

		logger.With("component", "toolbar").Info("rendered")

		assert.Contains(t, buf.String(), "component=toolbar")
		assert.Contains(t, buf.String(), "service=richfield")
	})
}

func TestDefaultLogConfig(t *testing.T) {
	cfg := DefaultLogConfig()

	assert.Equal(t, LogLevelInfo, cfg.Level)
	assert.Equal(t, LogFormatText, cfg.Format)
	assert.Equal(t, "richfield", cfg.ServiceName)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    LogLevel
		expected slog.Level
	}{
		{LogLevelDebug, slog.LevelDebug},
		{LogLevelInfo, slog.LevelInfo},
		{LogLevelWarn, slog.LevelWarn},
		{LogLevelError, slog.LevelError},
		{"unknown", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestLogOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	LogOperation(logger, "resolve", "extra", "attr").Info("done")

	assert.Contains(t, buf.String(), "operation=resolve")
	assert.Contains(t, buf.String(), "extra=attr")
}

func TestWithCorrelationID_Generates(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "")

	assert.Len(t, CorrelationIDFromContext(ctx), 36)
	assert.Empty(t, CorrelationIDFromContext(context.Background()))
	assert.Empty(t, MountIDFromContext(context.Background()))
}

func TestHealthRegistry(t *testing.T) {
	r := NewHealthRegistry()
	r.Register("redis", RedisHealthChecker(func(context.Context) error { return errors.New("refused") }))
	r.Register("search", BreakerHealthChecker(func() string { return "closed" }))

	results := r.Check(context.Background())

	assert.Equal(t, []string{"redis", "search"}, r.Names())
	assert.Equal(t, HealthStatusDegraded, results["redis"].Status)
	assert.Contains(t, results["redis"].Message, "refused")
	assert.Equal(t, HealthStatusHealthy, results["search"].Status)
	assert.Equal(t, HealthStatusDegraded, Overall(results))

	assert.Equal(t, HealthStatusHealthy, Overall(nil))
	assert.Equal(t, HealthStatusUnhealthy, Overall(map[string]HealthCheckResult{
		"a": {Status: HealthStatusDegraded},
		"b": {Status: HealthStatusUnhealthy},
	}))
}

func TestBreakerHealthChecker_Open(t *testing.T) {
	result := BreakerHealthChecker(func() string { return "open" })(context.Background())

	assert.Equal(t, HealthStatusDegraded, result.Status)
	assert.Equal(t, "search breaker open", result.Message)
}
