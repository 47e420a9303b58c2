package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arthur-debert/boopifier/pkg/config"
	"github.com/arthur-debert/boopifier/pkg/dispatch"
	"github.com/arthur-debert/boopifier/pkg/event"
	"github.com/arthur-debert/boopifier/pkg/handlers"
	"github.com/arthur-debert/boopifier/pkg/hooks"
	"github.com/arthur-debert/boopifier/pkg/logging"
	"github.com/arthur-debert/boopifier/pkg/paths"
	"github.com/arthur-debert/boopifier/pkg/settings"

	"github.com/arthur-debert/boopifier/internal/version"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	verbosity  int
	configPath string

	rootCmd = &cobra.Command{
		Use:   "boopifier",
		Short: "Notifications for Claude Code hook events",
		Long: `boopifier is a Claude Code hook: it reads one hook event as JSON on
stdin, matches it against your configured notification handlers, fires the
matches (desktop, sound, webhook, email, signal, script) and replies with a
hook response on stdout.

Configuration is resolved from --config, then
$CLAUDE_PROJECT_DIR/.claude/boopifier.json, then ~/.claude/boopifier.json.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
)

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "",
		"Explicit config file (disables project/global resolution)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listHandlersCmd)
}

// run is the hook entry point. Every failure path still prints a valid
// hook response and returns nil: a broken notifier must never break the
// Claude Code session that called it.
func run(stdin io.Reader, stdout io.Writer) error {
	logger := logging.GetLogger("cmd")

	raw, err := io.ReadAll(stdin)
	if err != nil {
		return respond(stdout, warn(logger, err, "could not read the hook event"))
	}
	if len(raw) == 0 {
		logger.Debug().Msg("empty stdin, nothing to dispatch")
		return respond(stdout, hooks.Passive())
	}

	ev, err := event.Parse(raw)
	if err != nil {
		return respond(stdout, warn(logger, err, "could not parse the hook event"))
	}

	set, err := settings.Load(paths.SettingsPath())
	if err != nil {
		return respond(stdout, warn(logger, err, "could not load settings"))
	}

	resolved, err := config.Resolve(configPath, paths.ProjectDir(), paths.GlobalConfigPath())
	if err != nil {
		return respond(stdout, warn(logger, err, "could not load configuration"))
	}

	hook := hooks.FromEvent(ev)
	logger.Info().
		Str("hook", hook.Name).
		Str("tool", hook.ToolName).
		Str("config", string(resolved.Source)).
		Int("handlers", len(resolved.Handlers)).
		Msg("dispatching event")

	ctx, cancel := shutdownContext(set.GracePeriod)
	defer cancel()

	outcomes := dispatch.Dispatch(ctx, resolved, ev, handlers.NewRegistry(set))
	summary := dispatch.Summarize(outcomes)
	logger.Info().
		Int("invoked", summary.Invoked).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Msg("dispatch finished")
	for _, o := range outcomes {
		if o.Status == dispatch.StatusFailed {
			logger.Warn().Str("handler", o.Handler).Str("reason", o.Reason).
				Msg("handler was not delivered")
		}
	}

	return respond(stdout, hook.Response())
}

// shutdownContext cancels dispatch a grace period after SIGINT/SIGTERM,
// giving in-flight deliveries time to finish.
func shutdownContext(grace time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	go func() {
		defer stop()
		select {
		case <-ctx.Done():
			return
		case <-sigCtx.Done():
		}
		log.Warn().Dur("grace", grace).Msg("shutdown requested, waiting for in-flight handlers")
		select {
		case <-time.After(grace):
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

func warn(logger zerolog.Logger, err error, msg string) hooks.Response {
	logger.Error().Err(err).Msg(msg)
	return hooks.Warning(fmt.Sprintf("boopifier: %s: %v", msg, err))
}

func respond(stdout io.Writer, r hooks.Response) error {
	_, err := fmt.Fprintln(stdout, r.JSON())
	return err
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "boopifier version %s\n", version.Version)
		fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", version.Commit)
		fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", version.Date)
	},
}
