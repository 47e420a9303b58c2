// Package config loads and resolves the layered handler configuration.
//
// A configuration file is a JSON document of the form:
//
//	{
//	  "handlers": [
//	    {"name": "...", "type": "...", "match_rules": {...}, "config": {...}}
//	  ],
//	  "overrides": [
//	    {"path_pattern": "/home/me/work/**", "handlers": [...]}
//	  ]
//	}
//
// Overrides are only meaningful in the global file: they swap in a different
// handler list based on the current project path. Explicit and project-local
// configuration files are authoritative and self-contained.
package config

import (
	"encoding/json"
	"errors"
	"os"

	booperr "github.com/arthur-debert/boopifier/pkg/errors"
	"github.com/arthur-debert/boopifier/pkg/rules"
)

// HandlerSpec describes one configured notification handler. It is never
// mutated after load; dispatch consumes a read-only view.
type HandlerSpec struct {
	// Name identifies this handler instance within its handler list
	Name string `json:"name"`

	// Type selects the back-end ("desktop", "sound", "webhook", ...)
	Type string `json:"type"`

	// MatchRules gates the handler; nil matches every event
	MatchRules map[string]interface{} `json:"match_rules,omitempty"`

	// MatchType selects exact (default) or regex field matching
	MatchType string `json:"match_type,omitempty"`

	// Config holds back-end specific settings, possibly containing
	// unresolved {{...}} placeholders
	Config map[string]interface{} `json:"config"`

	// Rule is the parsed form of MatchRules, built once at load time
	Rule *rules.Node `json:"-"`
}

// Override swaps in a different handler list when its glob pattern matches
// the current project path. Only the global file carries overrides.
type Override struct {
	PathPattern string        `json:"path_pattern"`
	Handlers    []HandlerSpec `json:"handlers"`
}

// Config is one parsed configuration document
type Config struct {
	Handlers  []HandlerSpec `json:"handlers"`
	Overrides []Override    `json:"overrides,omitempty"`
}

// Load reads and parses a configuration file. A missing file, malformed
// JSON, or a schema violation is a fatal configuration error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, booperr.Wrapf(err, booperr.ErrConfigLoad,
			"failed to read config file %s", path)
	}
	return Parse(data, path)
}

// Parse parses a configuration document from raw JSON
func Parse(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, booperr.Wrapf(err, booperr.ErrConfigValid,
				"config file %s has wrong type for field %q", path, typeErr.Field)
		}
		return nil, booperr.Wrapf(err, booperr.ErrConfigParse,
			"config file %s is not valid JSON", path)
	}

	if err := cfg.validate(path); err != nil {
		return nil, err
	}

	compileRules(cfg.Handlers)
	for i := range cfg.Overrides {
		compileRules(cfg.Overrides[i].Handlers)
	}

	return &cfg, nil
}

func (c *Config) validate(path string) error {
	if err := validateHandlers(c.Handlers, path); err != nil {
		return err
	}
	for _, override := range c.Overrides {
		if override.PathPattern == "" {
			return booperr.Newf(booperr.ErrConfigValid,
				"config file %s has an override without a path_pattern", path)
		}
		if err := validateHandlers(override.Handlers, path); err != nil {
			return err
		}
	}
	return nil
}

func validateHandlers(handlers []HandlerSpec, path string) error {
	seen := make(map[string]bool, len(handlers))
	for _, h := range handlers {
		if h.Name == "" {
			return booperr.Newf(booperr.ErrConfigValid,
				"config file %s has a handler without a name", path)
		}
		if h.Type == "" {
			return booperr.Newf(booperr.ErrConfigValid,
				"config file %s: handler %q has no type", path, h.Name)
		}
		if seen[h.Name] {
			return booperr.Newf(booperr.ErrConfigValid,
				"config file %s: duplicate handler name %q", path, h.Name)
		}
		seen[h.Name] = true
	}
	return nil
}

func compileRules(handlers []HandlerSpec) {
	for i := range handlers {
		mode := rules.ParseMode(handlers[i].MatchType)
		handlers[i].Rule = rules.Parse(handlers[i].MatchRules, mode)
	}
}
