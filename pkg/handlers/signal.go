package handlers

import (
	"context"
	"os/exec"

	"github.com/arthur-debert/boopifier/pkg/errors"
	"github.com/arthur-debert/boopifier/pkg/event"
	"github.com/arthur-debert/boopifier/pkg/logging"
)

// SignalInvoker sends a Signal message through signal-cli.
//
// Config: recipient (required); message (default: the event as JSON);
// account (optional sender number); signal_cli_path (default "signal-cli").
type SignalInvoker struct{}

// Type returns the type string handlers reference in configuration
func (s *SignalInvoker) Type() string { return "signal" }

// Invoke delivers one notification
func (s *SignalInvoker) Invoke(ctx context.Context, ev event.Event, config map[string]interface{}) error {
	recipient, ok := getString(config, "recipient")
	if !ok || recipient == "" {
		return errors.New(errors.ErrHandlerInvalid, "signal handler requires 'recipient' configuration")
	}

	message := stringOr(config, "message", defaultMessage(ev))
	cliPath := stringOr(config, "signal_cli_path", "signal-cli")

	var args []string
	if account, ok := getString(config, "account"); ok {
		args = append(args, "-a", account)
	}
	args = append(args, "send", "-m", message, recipient)

	logger := logging.GetLogger("handlers.signal")
	logger.Debug().Str("recipient", recipient).Msg("sending signal message")

	cmd := exec.CommandContext(ctx, cliPath, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.Wrapf(err, errors.ErrHandlerExecute,
			"signal-cli failed: %s", string(out))
	}
	return nil
}
