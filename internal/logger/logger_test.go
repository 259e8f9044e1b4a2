package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLevelForVerbosity(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{-1, zerolog.ErrorLevel},
		{0, zerolog.ErrorLevel},
		{1, zerolog.WarnLevel},
		{2, zerolog.InfoLevel},
		{3, zerolog.DebugLevel},
		{4, zerolog.TraceLevel},
		{10, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelForVerbosity(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("loud"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel(""))
}

// TestNew verifies messages below the threshold are dropped.
func TestNew(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zerolog.WarnLevel)

	log.Debug().Msg("hidden detail")
	log.Warn().Str("name", "devnet").Msg("visible warning")

	out := buf.String()
	assert.NotContains(t, out, "hidden detail")
	assert.Contains(t, out, "visible warning")
	assert.Contains(t, out, "devnet")
}
