package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"strings"
	"unicode"

	"github.com/arthur-debert/boopifier/pkg/errors"
	"github.com/arthur-debert/boopifier/pkg/event"
	"github.com/arthur-debert/boopifier/pkg/logging"
)

// ScriptInvoker runs an arbitrary command with the event on stdin.
//
// Config: command (required, run through the shell). Every other string
// config value is exported to the child as BOOP_<KEY>; the full event JSON
// arrives on stdin.
type ScriptInvoker struct{}

// Type returns the type string handlers reference in configuration
func (s *ScriptInvoker) Type() string { return "script" }

// Invoke delivers one notification
func (s *ScriptInvoker) Invoke(ctx context.Context, ev event.Event, config map[string]interface{}) error {
	command, ok := getString(config, "command")
	if !ok || command == "" {
		return errors.New(errors.ErrHandlerInvalid, "script handler requires 'command' configuration")
	}

	payload, err := json.Marshal(ev.Data)
	if err != nil {
		return errors.Wrap(err, errors.ErrHandlerExecute, "failed to encode event for script")
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Env = append(os.Environ(), configEnv(config)...)

	logger := logging.GetLogger("handlers.script")
	logger.Debug().Str("command", command).Msg("running script")

	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.Wrapf(err, errors.ErrHandlerExecute,
			"script failed: %s", string(out))
	}
	return nil
}

// configEnv exports string config values as BOOP_<KEY> variables
func configEnv(config map[string]interface{}) []string {
	var env []string
	for key, value := range config {
		if key == "command" {
			continue
		}
		s, ok := value.(string)
		if !ok {
			continue
		}
		env = append(env, "BOOP_"+envName(key)+"="+s)
	}
	return env
}

func envName(key string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToUpper(r)
		}
		return '_'
	}, key)
	return mapped
}
