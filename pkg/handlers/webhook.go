package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/arthur-debert/boopifier/pkg/errors"
	"github.com/arthur-debert/boopifier/pkg/event"
	"github.com/arthur-debert/boopifier/pkg/logging"
)

// WebhookInvoker POSTs a JSON payload to a webhook URL. Slack, Discord and
// generic JSON payload shapes are supported.
//
// Config: url (required), type ("slack", "discord" or "json", default
// "json"). Slack uses "text" plus optional "channel"/"username"; Discord
// uses "content" plus optional "username"; json sends the "payload" object
// when present, otherwise the whole event.
type WebhookInvoker struct {
	// Timeout bounds one request, from settings
	Timeout time.Duration

	// The invoker is shared by every configured webhook handler and those
	// run concurrently, so the client is built exactly once.
	clientOnce sync.Once
	client     *http.Client
}

// Type returns the type string handlers reference in configuration
func (w *WebhookInvoker) Type() string { return "webhook" }

// Invoke delivers one notification
func (w *WebhookInvoker) Invoke(ctx context.Context, ev event.Event, config map[string]interface{}) error {
	url, ok := getString(config, "url")
	if !ok || url == "" {
		return errors.New(errors.ErrHandlerInvalid, "webhook handler requires 'url' configuration")
	}

	payload, err := buildPayload(stringOr(config, "type", "json"), ev, config)
	if err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, errors.ErrHandlerExecute, "failed to encode webhook payload")
	}

	logger := logging.GetLogger("handlers.webhook")
	logger.Debug().Str("url", url).Int("bytes", len(body)).Msg("sending webhook")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, errors.ErrHandlerExecute, "failed to build webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient().Do(req)
	if err != nil {
		return errors.Wrap(err, errors.ErrHandlerExecute, "webhook request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Newf(errors.ErrHandlerExecute,
			"webhook request failed with status %s", resp.Status)
	}
	return nil
}

func (w *WebhookInvoker) httpClient() *http.Client {
	w.clientOnce.Do(func() {
		w.client = &http.Client{Timeout: w.Timeout}
	})
	return w.client
}

func buildPayload(payloadType string, ev event.Event, config map[string]interface{}) (interface{}, error) {
	switch payloadType {
	case "slack":
		payload := map[string]interface{}{
			"text": stringOr(config, "text", defaultMessage(ev)),
		}
		if channel, ok := getString(config, "channel"); ok {
			payload["channel"] = channel
		}
		if username, ok := getString(config, "username"); ok {
			payload["username"] = username
		}
		return payload, nil

	case "discord":
		payload := map[string]interface{}{
			"content": stringOr(config, "content", defaultMessage(ev)),
		}
		if username, ok := getString(config, "username"); ok {
			payload["username"] = username
		}
		return payload, nil

	case "json":
		if custom, ok := config["payload"]; ok {
			return custom, nil
		}
		return ev.Data, nil

	default:
		return nil, errors.Newf(errors.ErrHandlerInvalid, "unknown webhook type: %s", payloadType)
	}
}
