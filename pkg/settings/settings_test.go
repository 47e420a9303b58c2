package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/boopifier/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, s.GracePeriod)
	assert.Equal(t, 30*time.Second, s.WebhookTimeout)
	assert.Equal(t, "notify-send", s.DesktopCommand)
	assert.Equal(t, []string{"paplay", "aplay", "afplay"}, s.SoundPlayers)
}

func TestLoadMissingUserFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err, "a missing user file falls back to defaults")
	assert.Equal(t, "notify-send", s.DesktopCommand)
}

func TestLoadUserOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boopifier.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[dispatch]
grace_period = "10s"

[desktop]
command = "dunstify"
`), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, s.GracePeriod)
	assert.Equal(t, "dunstify", s.DesktopCommand)
	assert.Equal(t, 30*time.Second, s.WebhookTimeout, "defaults survive partial overrides")
}

func TestLoadMalformedUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boopifier.toml")
	require.NoError(t, os.WriteFile(path, []byte(`[dispatch`), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestLoadBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boopifier.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[dispatch]
grace_period = "soon"
`), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}
