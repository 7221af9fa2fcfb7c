package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(&buf, "render", "debug", "json")
	require.NoError(t, err)

	logger.Debug().Int("kind_code", 42).Msg("fallback")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "render", entry["component"])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "fallback", entry["message"])
	assert.EqualValues(t, 42, entry["kind_code"])
}

func TestNewWithWriter_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(&buf, "render", "warn", "")
	require.NoError(t, err)

	logger.Info().Msg("hidden")
	assert.Zero(t, buf.Len())
	logger.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewWithWriter_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(&buf, "serve", "info", "console")
	require.NoError(t, err)
	logger.Info().Msg("listening")
	assert.Contains(t, buf.String(), "listening")
}

func TestErrors(t *testing.T) {
	_, err := NewWithWriter(&bytes.Buffer{}, "x", "loud", "json")
	assert.Error(t, err)

	_, err = NewWithWriter(&bytes.Buffer{}, "x", "info", "xml")
	assert.Error(t, err)

	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, lvl)
}
