package handlers

import (
	"context"
	"os/exec"
	"strconv"

	"github.com/arthur-debert/boopifier/pkg/errors"
	"github.com/arthur-debert/boopifier/pkg/event"
	"github.com/arthur-debert/boopifier/pkg/logging"
)

// DesktopInvoker raises a desktop notification through an external
// notify-send compatible command.
//
// Config: summary (default "Claude Code"), body (default: the event as
// JSON), urgency (low|normal|critical), timeout in milliseconds.
type DesktopInvoker struct {
	// Command is the notification command, from settings
	Command string
}

// Type returns the type string handlers reference in configuration
func (d *DesktopInvoker) Type() string { return "desktop" }

// Invoke delivers one notification
func (d *DesktopInvoker) Invoke(ctx context.Context, ev event.Event, config map[string]interface{}) error {
	summary := stringOr(config, "summary", "Claude Code")
	body := stringOr(config, "body", defaultMessage(ev))
	urgency := stringOr(config, "urgency", "normal")
	timeoutMS := intOr(config, "timeout", 5000)

	switch urgency {
	case "low", "normal", "critical":
	default:
		urgency = "normal"
	}

	args := []string{
		"--urgency", urgency,
		"--expire-time", strconv.Itoa(timeoutMS),
		summary, body,
	}

	logger := logging.GetLogger("handlers.desktop")
	logger.Debug().Str("command", d.Command).Str("summary", summary).Msg("sending desktop notification")

	cmd := exec.CommandContext(ctx, d.Command, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.Wrapf(err, errors.ErrHandlerExecute,
			"desktop notification failed: %s", string(out))
	}
	return nil
}
