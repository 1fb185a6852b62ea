package tracing

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.False(t, cfg.Enabled, "tracing should be disabled by default")
	require.Equal(t, "file", cfg.Exporter, "default exporter should be file")
	require.Equal(t, "", cfg.FilePath, "file path should be empty by default")
	require.Equal(t, "localhost:4317", cfg.OTLPEndpoint, "default OTLP endpoint")
	require.Equal(t, "ac", cfg.ServiceName, "default service name")
}

func TestNewProvider_Disabled(t *testing.T) {
	provider, err := NewProvider(Config{Enabled: false})
	require.NoError(t, err, "should not error when disabled")
	require.NotNil(t, provider, "should return provider even when disabled")
	require.False(t, provider.Enabled(), "provider should report as disabled")

	// The no-op tracer still hands out usable spans.
	ctx, span := provider.StartInvocation(context.Background(), "weather", "get_weather")
	require.NotNil(t, ctx)
	require.NotNil(t, span)
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProvider_FileExporter(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")

	provider, err := NewProvider(Config{
		Enabled:  true,
		Exporter: "file",
		FilePath: tracePath,
	})
	require.NoError(t, err, "should create provider with file exporter")
	require.True(t, provider.Enabled())

	_, span := provider.StartInvocation(context.Background(), "weather", "get_weather")
	require.True(t, span.SpanContext().IsValid(), "span context should be valid")
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))

	data, err := os.ReadFile(tracePath)
	require.NoError(t, err, "trace file should exist after shutdown")

	var record SpanRecord
	require.NoError(t, json.Unmarshal(data, &record), "trace file should hold one JSON span per line")
	require.Equal(t, "dispatch", record.Name)
	require.Equal(t, "weather", record.Attributes["app"])
	require.Equal(t, "get_weather", record.Attributes["command"])
	require.NotEmpty(t, record.Attributes["invocation.id"])
}

func TestNewProvider_FileExporterRequiresPath(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: "file"})
	require.Error(t, err, "file exporter without a path should fail")
}

func TestNewProvider_UnsupportedExporter(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: "carrier-pigeon"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported exporter type")
}

func TestStartInvocation_FreshIDs(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")

	provider, err := NewProvider(Config{
		Enabled:  true,
		Exporter: "file",
		FilePath: tracePath,
	})
	require.NoError(t, err)

	_, span1 := provider.StartInvocation(context.Background(), "a", "x")
	span1.End()
	_, span2 := provider.StartInvocation(context.Background(), "a", "x")
	span2.End()
	require.NoError(t, provider.Shutdown(context.Background()))

	f, err := os.Open(tracePath)
	require.NoError(t, err)
	defer f.Close()

	var ids []string
	dec := json.NewDecoder(f)
	for dec.More() {
		var record SpanRecord
		require.NoError(t, dec.Decode(&record))
		ids = append(ids, record.Attributes["invocation.id"].(string))
	}
	require.Len(t, ids, 2)
	require.NotEqual(t, ids[0], ids[1], "each invocation gets its own id")
}
