package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ist-rebalancer/pkg/logger"
)

func TestNew_JSONEnProduccion(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "info", Out: &buf})

	l.Debug().Msg("no debe salir")
	l.Child(l.With().Str("run_id", "r-1")).Info().Int("rows", 3).Msg("corrida")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "r-1", entry["run_id"])
	assert.Equal(t, float64(3), entry["rows"])
	assert.Equal(t, "corrida", entry["message"])
}

func TestNop_NoEscribe(t *testing.T) {
	l := logger.Nop()
	assert.NotPanics(t, func() {
		l.Warn().Msg("silencio")
	})
}
