package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvocationID(t *testing.T) {
	id := InvocationID()
	assert.NotEmpty(t, id)

	// Stable within a process
	assert.Equal(t, id, InvocationID())

	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}

func TestSetupLoggerVerbosity(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	tests := []struct {
		verbosity int
		level     zerolog.Level
	}{
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{10, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		SetupLogger(tt.verbosity)
		assert.Equal(t, tt.level, zerolog.GlobalLevel(), "verbosity %d", tt.verbosity)
	}
}

func TestSetupLoggerCreatesLogFile(t *testing.T) {
	stateHome := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateHome)

	SetupLogger(1)

	logger := GetLogger("test")
	logger.Warn().Msg("hello from test")

	data, err := os.ReadFile(filepath.Join(stateHome, "boopifier", "boopifier.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	assert.Contains(t, string(data), InvocationID())
}

func TestGetLoggerComponent(t *testing.T) {
	stateHome := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateHome)
	SetupLogger(1)

	logger := GetLogger("dispatch")
	logger.Warn().Msg("component check")

	data, err := os.ReadFile(filepath.Join(stateHome, "boopifier", "boopifier.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "dispatch")
}
