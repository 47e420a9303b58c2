// Package handlers provides the notification back-ends. Each back-end
// registers under a type string and receives the fully rendered handler
// config; it owns all actual I/O and its own required-field validation.
package handlers

import (
	"context"

	"github.com/arthur-debert/boopifier/pkg/event"
	"github.com/arthur-debert/boopifier/pkg/registry"
	"github.com/arthur-debert/boopifier/pkg/settings"
)

// Invoker is one notification back-end. Invoke receives the event and the
// handler config with all template placeholders already substituted.
type Invoker interface {
	// Type returns the type string handlers reference in configuration
	Type() string

	// Invoke delivers one notification
	Invoke(ctx context.Context, ev event.Event, config map[string]interface{}) error
}

// NewRegistry builds the registry of built-in back-ends
func NewRegistry(s settings.Settings) registry.Registry[Invoker] {
	reg := registry.New[Invoker]()
	for _, inv := range []Invoker{
		&DesktopInvoker{Command: s.DesktopCommand},
		&SoundInvoker{Players: s.SoundPlayers},
		&WebhookInvoker{Timeout: s.WebhookTimeout},
		&EmailInvoker{},
		&SignalInvoker{},
		&ScriptInvoker{},
	} {
		registry.MustRegister(reg, inv.Type(), inv)
	}
	return reg
}

// Config value helpers. Handler configs come straight out of JSON, so
// numbers are float64 and everything is optional unless a back-end says
// otherwise.

func getString(config map[string]interface{}, key string) (string, bool) {
	s, ok := config[key].(string)
	return s, ok
}

func stringOr(config map[string]interface{}, key, fallback string) string {
	if s, ok := getString(config, key); ok {
		return s
	}
	return fallback
}

func intOr(config map[string]interface{}, key string, fallback int) int {
	if f, ok := config[key].(float64); ok {
		return int(f)
	}
	return fallback
}

func floatOr(config map[string]interface{}, key string, fallback float64) float64 {
	if f, ok := config[key].(float64); ok {
		return f
	}
	return fallback
}

func boolOr(config map[string]interface{}, key string, fallback bool) bool {
	if b, ok := config[key].(bool); ok {
		return b
	}
	return fallback
}

func stringList(config map[string]interface{}, key string) []string {
	items, ok := config[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// defaultMessage is the fallback body when a handler config does not
// provide its own template: the whole event as compact JSON.
func defaultMessage(ev event.Event) string {
	return event.CoerceString(ev.Data)
}
