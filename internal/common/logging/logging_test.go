package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReleaseWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	SetupWriter(&buf, "release", "info")
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Info().Str("module", "session").Str("code", "ABC234").Msg("session created")
	log.Debug().Msg("hidden")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "session", line["module"])
	assert.Equal(t, "ABC234", line["code"])
	assert.Equal(t, "session created", line["message"])
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	SetupWriter(&buf, "release", "chatty")
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
