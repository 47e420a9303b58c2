package handlers

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/arthur-debert/boopifier/pkg/errors"
	"github.com/arthur-debert/boopifier/pkg/event"
	"github.com/arthur-debert/boopifier/pkg/logging"
)

// EmailInvoker sends a plain-text email over SMTP.
//
// Config: to, from, smtp_server (required); smtp_port (default 25);
// subject (default "Claude Code Notification"); body (default: the event
// as JSON); username/password for PLAIN auth (optional).
//
// net/smtp has no context support, so when the context is cancelled during
// the grace period the in-flight SMTP session is abandoned rather than torn
// down; its connection is released when the single-shot process exits.
type EmailInvoker struct{}

// Type returns the type string handlers reference in configuration
func (e *EmailInvoker) Type() string { return "email" }

// Invoke delivers one notification
func (e *EmailInvoker) Invoke(ctx context.Context, ev event.Event, config map[string]interface{}) error {
	to, ok := getString(config, "to")
	if !ok || to == "" {
		return errors.New(errors.ErrHandlerInvalid, "email handler requires 'to' configuration")
	}
	from, ok := getString(config, "from")
	if !ok || from == "" {
		return errors.New(errors.ErrHandlerInvalid, "email handler requires 'from' configuration")
	}
	server, ok := getString(config, "smtp_server")
	if !ok || server == "" {
		return errors.New(errors.ErrHandlerInvalid, "email handler requires 'smtp_server' configuration")
	}

	port := intOr(config, "smtp_port", 25)
	subject := stringOr(config, "subject", "Claude Code Notification")
	body := stringOr(config, "body", defaultMessage(ev))

	var auth smtp.Auth
	if username, ok := getString(config, "username"); ok {
		password := stringOr(config, "password", "")
		auth = smtp.PlainAuth("", username, password, server)
	}

	msg := strings.Join([]string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	addr := net.JoinHostPort(server, strconv.Itoa(port))
	logger := logging.GetLogger("handlers.email")
	logger.Debug().Str("server", addr).Str("to", to).Msg("sending email")

	// The buffered channel lets an abandoned send finish without blocking;
	// see the type doc for the cancellation caveat.
	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, from, []string{to}, []byte(msg))
	}()

	select {
	case err := <-done:
		if err != nil {
			return errors.Wrap(err, errors.ErrHandlerExecute, "failed to send email")
		}
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), errors.ErrHandlerExecute,
			fmt.Sprintf("email send to %s interrupted", addr))
	}
}
