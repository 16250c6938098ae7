package log_test

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artmuseum/internal/log"
)

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := log.NewLogger("loud", "")
	assert.Error(t, err)
}

func TestNewLoggerWritesToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "museum.log")
	logger, err := log.NewLogger("info", out)
	require.NoError(t, err)

	logger.Info().Msg("hello")
	logger.Debug().Msg("filtered")
}

func TestComponentTagsEvents(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, zerolog.InfoLevel).Component("copier")

	logger.Info().Int("rows", 3).Msg("copied")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "copier", event["component"])
	assert.Equal(t, float64(3), event["rows"])
	assert.Equal(t, "copied", event["message"])
}
