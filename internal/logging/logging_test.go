package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(Config{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("game over", zap.Bool("won", true), zap.Int("tries", 3))
	require.NoError(t, logger.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "game over", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, true, entry["won"])
	assert.EqualValues(t, 3, entry["tries"])
	assert.Contains(t, entry, "ts")
}

func TestNewLogger_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(Config{Level: "debug", Format: "console"}, &buf)
	require.NoError(t, err)

	logger.Debug("guess", zap.String("row", "🟩🟩🟩🟩🟩 TRIAL"))
	assert.Contains(t, buf.String(), "🟩🟩🟩🟩🟩 TRIAL")
}

func TestNewLogger_Invalid(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.ErrorContains(t, err, "invalid log level")

	_, err = New(Config{Level: "info", Format: "xml"})
	assert.ErrorContains(t, err, "invalid log format")
}
