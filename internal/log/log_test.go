package log

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvanvugt/auto-cli/internal/pubsub"
)

// TestLogger file sink and listener see the same entries, and disabling the
// logger silences both. One test because Init is once per process.
func TestLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := Init(path)
	require.NoError(t, err)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := NewListener(ctx)
	require.NotNil(t, events)

	Info(CatStore, "Saved app", "name", "weather")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[INFO] [store] Saved app name=weather")

	select {
	case e := <-events:
		assert.Equal(t, pubsub.CreatedEvent, e.Type)
		assert.Contains(t, e.Payload, "Saved app")
	case <-time.After(time.Second):
		t.Fatal("no log event received")
	}

	SetEnabled(false)
	defer SetEnabled(true)
	Info(CatStore, "Suppressed", "name", "weather")

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Suppressed")
}
