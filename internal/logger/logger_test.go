package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWriter_JSON(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	require.NoError(t, SetupWriter(&buf, "warn", "json"))

	log.Info().Msg("hidden")
	log.Warn().Str("category", "LOW").Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "LOW", entry["category"])
	assert.Equal(t, "warn", entry["level"])
}

func TestSetupWriter_Invalid(t *testing.T) {
	assert.Error(t, SetupWriter(&bytes.Buffer{}, "loud", "json"))
	assert.Error(t, SetupWriter(&bytes.Buffer{}, "info", "xml"))
}
