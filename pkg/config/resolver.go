package config

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/boopifier/pkg/logging"
)

// Source identifies which configuration layer produced the resolved handlers
type Source string

const (
	// SourceExplicit is a config passed on the command line
	SourceExplicit Source = "explicit"
	// SourceProject is a .claude/boopifier.json inside the project directory
	SourceProject Source = "project"
	// SourceGlobal is the user-wide config, possibly adjusted by overrides
	SourceGlobal Source = "global"
	// SourceNone means no configuration file was found
	SourceNone Source = "none"
)

// ResolvedConfig is the single source of truth consumed by dispatch: an
// ordered handler list plus provenance for logging.
type ResolvedConfig struct {
	Handlers []HandlerSpec
	Source   Source
	Path     string
}

// ProjectConfigName is the project-local config path relative to the
// project directory.
const ProjectConfigName = ".claude/boopifier.json"

// Resolve discovers and loads the active configuration. Exactly one layer
// contributes the final handler list, first success wins:
//
//  1. explicitPath, loaded verbatim (a missing explicit path is an error;
//     overrides are never applied).
//  2. projectDir/.claude/boopifier.json if it exists, loaded verbatim.
//  3. globalPath, with its overrides evaluated against projectDir (or the
//     working directory when no project directory is known): patterns are
//     tested in order, the last match wins, and its handler list fully
//     replaces the base list.
//  4. No file at all resolves to an empty handler list, not an error.
//
// Later layers are not read once an earlier one succeeds.
func Resolve(explicitPath, projectDir, globalPath string) (ResolvedConfig, error) {
	logger := logging.GetLogger("config.resolver")

	if explicitPath != "" {
		cfg, err := Load(explicitPath)
		if err != nil {
			return ResolvedConfig{}, err
		}
		logger.Debug().Str("path", explicitPath).Int("handlers", len(cfg.Handlers)).
			Msg("using explicit config")
		return ResolvedConfig{Handlers: cfg.Handlers, Source: SourceExplicit, Path: explicitPath}, nil
	}

	if projectDir != "" {
		projectPath := filepath.Join(projectDir, ProjectConfigName)
		if _, err := os.Stat(projectPath); err == nil {
			cfg, err := Load(projectPath)
			if err != nil {
				return ResolvedConfig{}, err
			}
			logger.Debug().Str("path", projectPath).Int("handlers", len(cfg.Handlers)).
				Msg("using project config")
			return ResolvedConfig{Handlers: cfg.Handlers, Source: SourceProject, Path: projectPath}, nil
		}
	}

	if _, err := os.Stat(globalPath); err != nil {
		logger.Debug().Str("path", globalPath).Msg("no config found, dispatch will be a no-op")
		return ResolvedConfig{Source: SourceNone}, nil
	}

	cfg, err := Load(globalPath)
	if err != nil {
		return ResolvedConfig{}, err
	}

	handlers := applyOverrides(cfg, overrideTarget(projectDir))
	logger.Debug().Str("path", globalPath).Int("handlers", len(handlers)).
		Msg("using global config")
	return ResolvedConfig{Handlers: handlers, Source: SourceGlobal, Path: globalPath}, nil
}

// overrideTarget returns the path that override patterns are matched
// against: the project directory when known, the working directory otherwise.
func overrideTarget(projectDir string) string {
	if projectDir != "" {
		return projectDir
	}
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return cwd
}

// applyOverrides selects the final handler list from a global config.
// Patterns are tested in array order and the last matching override's
// handler list completely replaces the base list. No pattern matching
// leaves the base list unchanged.
func applyOverrides(cfg *Config, target string) []HandlerSpec {
	if target == "" {
		return cfg.Handlers
	}

	logger := logging.GetLogger("config.resolver")
	handlers := cfg.Handlers
	for _, override := range cfg.Overrides {
		if matchPathPattern(override.PathPattern, target) {
			logger.Debug().Str("pattern", override.PathPattern).Str("target", target).
				Msg("override pattern matched")
			handlers = override.Handlers
		}
	}
	return handlers
}
