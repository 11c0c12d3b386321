package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	return entry
}

func TestNewWithWriter_JSONFormat(t *testing.T) {
	var buf bytes.Buffer

	logger := NewWithWriter(Config{
		Level:   "info",
		Format:  "json",
		Service: "quotes-service",
		Version: "1.2.3",
	}, &buf)

	logger.Info("reload completed", slog.Int("loaded", 42))

	entry := parseLine(t, &buf)
	assert.Equal(t, "reload completed", entry["msg"])
	assert.Equal(t, "quotes-service", entry["service_name"])
	assert.Equal(t, "1.2.3", entry["service_version"])
	assert.Equal(t, float64(42), entry["loaded"])
}

func TestNewWithWriter_TextFormat(t *testing.T) {
	var buf bytes.Buffer

	logger := NewWithWriter(Config{Level: "info", Format: "text"}, &buf)
	logger.Info("hello")

	assert.Contains(t, buf.String(), "msg=hello")
}

func TestNewWithWriter_PrettyFormat(t *testing.T) {
	var buf bytes.Buffer

	logger := NewWithWriter(Config{Level: "debug", Format: "pretty"}, &buf)
	logger.Debug("hello pretty")

	assert.Contains(t, buf.String(), "hello pretty")
}

func TestNewWithWriter_LevelFiltersRecords(t *testing.T) {
	var buf bytes.Buffer

	logger := NewWithWriter(Config{Level: "warn", Format: "json"}, &buf)

	logger.Info("dropped")
	assert.Zero(t, buf.Len())

	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.in))
		})
	}
}

func TestRedaction_SensitiveFieldNames(t *testing.T) {
	var buf bytes.Buffer

	logger := NewWithWriter(Config{Level: "info", Format: "json"}, &buf)
	logger.Info("login attempt", slog.String("password", "hunter2"))

	out := buf.String()
	assert.NotContains(t, out, "hunter2")
}

func TestRedaction_BearerTokens(t *testing.T) {
	var buf bytes.Buffer

	logger := NewWithWriter(Config{Level: "info", Format: "json"}, &buf)
	logger.Info("proxying request", slog.String("header", "Bearer abc123secret"))

	assert.NotContains(t, buf.String(), "abc123secret")
}

func TestContextLogger_RoundTrip(t *testing.T) {
	var buf bytes.Buffer

	base := NewWithWriter(Config{Level: "info", Format: "json"}, &buf)
	ctx := WithContext(context.Background(), base)

	assert.Same(t, base, FromContext(ctx))
}

func TestContextLogger_FallsBackToDefault(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
	assert.NotNil(t, FromContext(nil)) //nolint:staticcheck // nil ctx fallback is the point
}

func TestWithRequestID_EnrichesLogger(t *testing.T) {
	var buf bytes.Buffer

	base := NewWithWriter(Config{Level: "info", Format: "json"}, &buf)
	ctx := WithContext(context.Background(), base)
	ctx = WithRequestID(ctx, "req-123")

	FromContext(ctx).Info("handling")

	entry := parseLine(t, &buf)
	assert.Equal(t, "req-123", entry["request_id"])
}

func TestMultiHandler_WritesToAllSinks(t *testing.T) {
	var a, b bytes.Buffer

	handler := NewMultiHandler(
		slog.NewJSONHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
	)
	logger := slog.New(handler)

	logger.Info("fan out")

	assert.Contains(t, a.String(), "fan out")
	assert.Contains(t, b.String(), "fan out")
}

func TestMultiHandler_RespectsPerSinkLevels(t *testing.T) {
	var verbose, quiet bytes.Buffer

	handler := NewMultiHandler(
		slog.NewJSONHandler(&verbose, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewJSONHandler(&quiet, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	logger := slog.New(handler)

	logger.Debug("detail")

	assert.Contains(t, verbose.String(), "detail")
	assert.Zero(t, quiet.Len())
}

func TestMultiHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer

	handler := NewMultiHandler(slog.NewJSONHandler(&buf, nil))
	logger := slog.New(handler).With(slog.String("component", "test"))

	logger.Info("tagged")

	line := buf.String()
	assert.Contains(t, line, "component")
	assert.True(t, strings.Contains(line, "tagged"))
}
