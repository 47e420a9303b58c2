// Package settings carries process-level tuning that is not part of the
// per-handler configuration: shutdown grace period, HTTP timeouts, and the
// external commands used by the notification back-ends.
//
// Settings are layered: embedded defaults first, then the optional user file
// at $XDG_CONFIG_HOME/boopifier/boopifier.toml.
package settings

import (
	_ "embed"
	"errors"
	"os"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	booperr "github.com/arthur-debert/boopifier/pkg/errors"
	"github.com/arthur-debert/boopifier/pkg/logging"
)

//go:embed embedded/defaults.toml
var defaultSettings []byte

// Settings holds the merged process configuration
type Settings struct {
	// GracePeriod bounds how long in-flight handlers may run after a
	// shutdown signal
	GracePeriod time.Duration

	// WebhookTimeout bounds a single webhook HTTP request
	WebhookTimeout time.Duration

	// DesktopCommand raises desktop notifications
	DesktopCommand string

	// SoundPlayers are tried in order until one is found on PATH
	SoundPlayers []string
}

// rawBytesProvider implements the koanf provider interface for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Load merges the embedded defaults with the user settings file at the
// given path. A missing user file is fine; a malformed one is an error.
func Load(userPath string) (Settings, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultSettings}, toml.Parser()); err != nil {
		return Settings{}, booperr.Wrap(err, booperr.ErrInternal, "failed to load embedded defaults")
	}

	if userPath != "" {
		if _, err := os.Stat(userPath); err == nil {
			if err := k.Load(file.Provider(userPath), toml.Parser()); err != nil {
				return Settings{}, booperr.Wrapf(err, booperr.ErrConfigParse,
					"failed to load settings from %s", userPath)
			}
			logger := logging.GetLogger("settings")
			logger.Debug().Str("path", userPath).Msg("loaded user settings")
		}
	}

	return fromKoanf(k)
}

func fromKoanf(k *koanf.Koanf) (Settings, error) {
	s := Settings{
		DesktopCommand: k.String("desktop.command"),
		SoundPlayers:   k.Strings("sound.players"),
	}

	var err error
	if s.GracePeriod, err = time.ParseDuration(k.String("dispatch.grace_period")); err != nil {
		return Settings{}, booperr.Wrap(err, booperr.ErrConfigValid, "invalid dispatch.grace_period")
	}
	if s.WebhookTimeout, err = time.ParseDuration(k.String("webhook.timeout")); err != nil {
		return Settings{}, booperr.Wrap(err, booperr.ErrConfigValid, "invalid webhook.timeout")
	}

	return s, nil
}
