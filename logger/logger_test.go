package logger

import (
	"bytes"
	"encoding/json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"os"
	"testing"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	require.Equal(t, zerolog.ErrorLevel, ParseLevel(LOG_LEVEL_ERROR))
	require.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	t.Setenv(LogLevelEnv, LOG_LEVEL_WARN)

	l := NewLogger("realiser")
	l.Info().Msg("hidden")
	require.Zero(t, buf.Len())

	l.Warn().Str("tid", "t-1").Msg("visible")
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "realiser", entry["component"])
	require.Equal(t, "t-1", entry["tid"])
	require.Equal(t, "visible", entry["message"])
}
