// Package dispatch runs the matched handlers for one event. Matching and
// template rendering happen first, sequentially, so the set of handlers to
// fire is fixed before any delivery starts; the deliveries themselves run
// concurrently.
package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/arthur-debert/boopifier/pkg/config"
	"github.com/arthur-debert/boopifier/pkg/event"
	"github.com/arthur-debert/boopifier/pkg/handlers"
	"github.com/arthur-debert/boopifier/pkg/logging"
	"github.com/arthur-debert/boopifier/pkg/registry"
	"github.com/arthur-debert/boopifier/pkg/rules"
	"github.com/arthur-debert/boopifier/pkg/template"
)

// Status classifies what happened to one configured handler
type Status string

const (
	// StatusInvoked means the back-end ran and reported success
	StatusInvoked Status = "invoked"
	// StatusSkipped means the handler's rules did not match the event
	StatusSkipped Status = "skipped"
	// StatusFailed means the handler matched but could not be delivered
	StatusFailed Status = "failed"
)

// Outcome reports the result for one configured handler
type Outcome struct {
	Handler  string
	Type     string
	Status   Status
	Reason   string
	Duration time.Duration
}

// Summary aggregates outcomes for logging
type Summary struct {
	Invoked int
	Skipped int
	Failed  int
}

// Summarize counts outcomes by status
func Summarize(outcomes []Outcome) Summary {
	var s Summary
	for _, o := range outcomes {
		switch o.Status {
		case StatusInvoked:
			s.Invoked++
		case StatusSkipped:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		}
	}
	return s
}

// selected is one handler that passed matching, with its config rendered
// and its back-end looked up, ready to invoke.
type selected struct {
	spec    config.HandlerSpec
	invoker handlers.Invoker
	config  map[string]interface{}
	slot    int
}

// Dispatch matches every handler in resolved against the event and fires
// the matches concurrently. It returns one Outcome per configured handler,
// in configuration order. A failing handler never blocks its siblings; the
// context bounds how long in-flight deliveries may run.
func Dispatch(ctx context.Context, resolved config.ResolvedConfig, ev event.Event, reg registry.Registry[handlers.Invoker]) []Outcome {
	logger := logging.GetLogger("dispatch")
	defer logging.LogDuration(time.Now(), "dispatch")

	outcomes := make([]Outcome, len(resolved.Handlers))
	var toInvoke []selected

	// Phase 1: match and render, in order. Rendering resolves secrets, so
	// it only runs for handlers that will actually fire.
	for i, spec := range resolved.Handlers {
		outcomes[i] = Outcome{Handler: spec.Name, Type: spec.Type}

		// An invalid regex is a configuration defect of this handler. It is
		// surfaced here as a per-handler failure instead of silently reading
		// as a non-match.
		if err := rules.Validate(spec.Rule); err != nil {
			logger.Error().Str("handler", spec.Name).Err(err).
				Msg("handler has an invalid match pattern")
			outcomes[i].Status = StatusFailed
			outcomes[i].Reason = "invalid match pattern: " + err.Error()
			continue
		}

		if !rules.Matches(spec.Rule, ev) {
			logger.Debug().Str("handler", spec.Name).
				Str("rule", rules.Describe(spec.Rule)).Msg("rules did not match")
			outcomes[i].Status = StatusSkipped
			continue
		}

		invoker, err := reg.Get(spec.Type)
		if err != nil {
			logger.Error().Str("handler", spec.Name).Str("type", spec.Type).
				Msg("unknown handler type")
			outcomes[i].Status = StatusFailed
			outcomes[i].Reason = err.Error()
			continue
		}

		toInvoke = append(toInvoke, selected{
			spec:    spec,
			invoker: invoker,
			config:  template.RenderConfig(spec.Config, ev),
			slot:    i,
		})
	}

	// Phase 2: fire. Each goroutine owns exactly one outcome slot.
	var wg sync.WaitGroup
	for _, sel := range toInvoke {
		wg.Add(1)
		go func(sel selected) {
			defer wg.Done()
			start := time.Now()
			err := sel.invoker.Invoke(ctx, ev, sel.config)
			out := &outcomes[sel.slot]
			out.Duration = time.Since(start)
			if err != nil {
				logger.Error().Str("handler", sel.spec.Name).Err(err).
					Msg("handler failed")
				out.Status = StatusFailed
				out.Reason = err.Error()
				return
			}
			logger.Info().Str("handler", sel.spec.Name).Str("type", sel.spec.Type).
				Dur("duration", out.Duration).Msg("handler invoked")
			out.Status = StatusInvoked
		}(sel)
	}
	wg.Wait()

	return outcomes
}
