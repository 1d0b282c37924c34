package app

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitTelemetryWithoutCollector(t *testing.T) {
	shutdown, err := InitTelemetry(Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	shutdown(context.Background())
}

func TestTeeHandler(t *testing.T) {
	var debug, warn bytes.Buffer

	logger := slog.New(newTeeHandler(
		slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&warn, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)).With("booking_id", 7).WithGroup("seats")

	logger.Debug("locking seats", "count", 2)
	logger.Warn("seat conflict", "count", 1)

	require.Contains(t, debug.String(), "locking seats")
	require.Contains(t, debug.String(), "seat conflict")
	require.Contains(t, debug.String(), "booking_id=7")
	require.Contains(t, debug.String(), "seats.count=2")

	require.NotContains(t, warn.String(), "locking seats")
	require.Contains(t, warn.String(), "seat conflict")
	require.Contains(t, warn.String(), "seats.count=1")
}
