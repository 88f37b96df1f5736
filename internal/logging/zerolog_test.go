package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestZerologLogger_FieldsAndLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))
	ctx := context.Background()

	log.Info(ctx, "sale recorded", "total", 202000, "err", errors.New("none"))
	out := buf.String()

	require.Contains(t, out, `"level":"info"`)
	require.Contains(t, out, `"message":"sale recorded"`)
	require.Contains(t, out, `"total":202000`)
	require.Contains(t, out, `"err":"none"`)
}

func TestZerologLogger_With(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(zerolog.New(&buf)).With("component", "sequencer")

	log.Warn(context.Background(), "reserve failed")

	require.Contains(t, buf.String(), `"component":"sequencer"`)
}

func TestZerologLogger_DanglingKey(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(zerolog.New(&buf))

	log.Error(context.Background(), "odd", "lonely")

	require.Contains(t, buf.String(), `"!BADKEY":"lonely"`)
}

func TestConsoleLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsoleLogger(&buf, "error")

	log.Info(context.Background(), "quiet")
	require.Empty(t, buf.String())

	log.Error(context.Background(), "loud")
	require.Contains(t, buf.String(), "loud")
}

func TestZerologLogger_ContextFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(zerolog.New(&buf))

	ctx := ContextWith(context.Background(), "request_id", "r-9")
	log.Error(ctx, "handler failed", "status", 500)

	require.Contains(t, buf.String(), `"request_id":"r-9"`)
	require.Contains(t, buf.String(), `"status":500`)
}
