package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-loot/internal/logger"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("chatty"))
}

func TestJSONFormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(&buf, logger.Config{Level: "warn", Format: "json"})

	l.Info("hidden")
	l.Warn("attempt failed", "attempt", 2)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "attempt failed", entry["msg"])
	assert.Equal(t, float64(2), entry["attempt"])
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	_, ok := logger.RequestIDFromContext(ctx)
	assert.False(t, ok)

	id := logger.GenerateRequestID()
	ctx = logger.WithRequestID(ctx, id)

	got, ok := logger.RequestIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, id, got)
}

func TestFromContextAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	defer slog.SetDefault(previous)
	logger.Setup(&buf, logger.Config{Format: "json"})

	ctx := logger.WithRequestID(context.Background(), "run-1")
	logger.FromContext(ctx).Info("batch finished")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "run-1", entry["request_id"])
}
