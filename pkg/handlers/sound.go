package handlers

import (
	"context"
	"math/rand"
	"os/exec"
	"strconv"

	"github.com/arthur-debert/boopifier/pkg/errors"
	"github.com/arthur-debert/boopifier/pkg/event"
	"github.com/arthur-debert/boopifier/pkg/logging"
	"github.com/arthur-debert/boopifier/pkg/template"
)

// SoundInvoker plays an audio file through the first available player.
//
// Config: either "file" (single path) or "files" (list of paths, combined
// with "random": true for random selection, otherwise the first is used),
// plus an optional "volume" between 0.0 and 1.0 (paplay only).
type SoundInvoker struct {
	// Players are candidate player commands tried in PATH order
	Players []string
}

// Type returns the type string handlers reference in configuration
func (s *SoundInvoker) Type() string { return "sound" }

// Invoke delivers one notification
func (s *SoundInvoker) Invoke(ctx context.Context, _ event.Event, config map[string]interface{}) error {
	file, err := pickSoundFile(config)
	if err != nil {
		return err
	}
	file = template.ExpandTilde(file)

	player, err := s.findPlayer()
	if err != nil {
		return err
	}

	args := []string{}
	if player == "paplay" {
		if volume, ok := config["volume"].(float64); ok {
			// paplay volume is linear, 0..65536
			args = append(args, "--volume", strconv.Itoa(int(volume*65536)))
		}
	}
	args = append(args, file)

	logger := logging.GetLogger("handlers.sound")
	logger.Debug().Str("player", player).Str("file", file).Msg("playing sound")

	cmd := exec.CommandContext(ctx, player, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.Wrapf(err, errors.ErrHandlerExecute,
			"sound playback failed: %s", string(out))
	}
	return nil
}

func pickSoundFile(config map[string]interface{}) (string, error) {
	if file, ok := getString(config, "file"); ok {
		return file, nil
	}

	files := stringList(config, "files")
	if len(files) == 0 {
		return "", errors.New(errors.ErrHandlerInvalid,
			"sound handler requires 'file' or a non-empty 'files' list")
	}

	if boolOr(config, "random", false) {
		return files[rand.Intn(len(files))], nil
	}
	return files[0], nil
}

func (s *SoundInvoker) findPlayer() (string, error) {
	for _, player := range s.Players {
		if _, err := exec.LookPath(player); err == nil {
			return player, nil
		}
	}
	return "", errors.Newf(errors.ErrHandlerExecute,
		"no sound player available, tried %v", s.Players)
}
