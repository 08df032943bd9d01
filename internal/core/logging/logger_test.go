package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureGlobal(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestComponent(t *testing.T) {
	buf := captureGlobal(t)

	logger := Component("search")
	logger.Info().Msg("searching")

	entry := decodeEntry(t, buf)
	assert.Equal(t, "search", entry[ComponentKey])
	assert.Equal(t, "searching", entry["message"])
	assert.Equal(t, "info", entry["level"])
}

func TestComponent_follows_global_level(t *testing.T) {
	buf := captureGlobal(t)
	log.Logger = log.Logger.Level(zerolog.WarnLevel)

	logger := Component("tui")
	logger.Debug().Msg("hidden")

	assert.Empty(t, buf.String())
}

func TestFailure(t *testing.T) {
	buf := captureGlobal(t)

	Failure("reviews", "delete review", errors.New("connection refused")).
		Int64("review_id", 7).
		Msg("delete review failed")

	entry := decodeEntry(t, buf)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "reviews", entry[ComponentKey])
	assert.Equal(t, "delete review", entry["op"])
	assert.Equal(t, "connection refused", entry["error"])
	assert.EqualValues(t, 7, entry["review_id"])
	assert.Equal(t, "delete review failed", entry["message"])
}
