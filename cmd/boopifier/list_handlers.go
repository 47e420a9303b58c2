package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/boopifier/pkg/handlers"
	"github.com/arthur-debert/boopifier/pkg/paths"
	"github.com/arthur-debert/boopifier/pkg/settings"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// one-line usage hints shown next to each handler type
var handlerHints = map[string]string{
	"desktop": "desktop notification via notify-send",
	"sound":   "play an audio file (paplay/aplay/afplay)",
	"webhook": "HTTP POST (slack, discord or raw json payloads)",
	"email":   "plain-text email over SMTP",
	"signal":  "Signal message via signal-cli",
	"script":  "run a command with the event on stdin",
}

var (
	handlerNameStyle = lipgloss.NewStyle().Bold(true)
	handlerHintStyle = lipgloss.NewStyle().Faint(true)
)

var listHandlersCmd = &cobra.Command{
	Use:   "list-handlers",
	Short: "List the available handler types",
	Long: `List every handler type this build can dispatch to, with a one-line
description. Use these as the "type" field of a handler entry in
boopifier.json.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := settings.Load(paths.SettingsPath())
		if err != nil {
			return err
		}

		styled := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		for _, name := range handlers.NewRegistry(set).List() {
			hint := handlerHints[name]
			if styled {
				fmt.Fprintf(cmd.OutOrStdout(), "%-22s %s\n",
					handlerNameStyle.Render(name), handlerHintStyle.Render(hint))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", name, hint)
			}
		}
		return nil
	},
}
