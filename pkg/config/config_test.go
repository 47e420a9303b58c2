package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/boopifier/pkg/errors"
	"github.com/arthur-debert/boopifier/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "boopifier.json", `{
		"handlers": [
			{
				"name": "stop-sound",
				"type": "sound",
				"match_rules": {"hook_event_name": "Stop"},
				"config": {"file": "~/sounds/done.wav"}
			}
		]
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Handlers, 1)

	h := cfg.Handlers[0]
	assert.Equal(t, "stop-sound", h.Name)
	assert.Equal(t, "sound", h.Type)
	assert.Equal(t, "~/sounds/done.wav", h.Config["file"])
	require.NotNil(t, h.Rule, "match rules are compiled at load time")
	assert.Equal(t, rules.KindField, h.Rule.Kind)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoadInvalidJSON(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "bad.json", `{"handlers": [`)
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestLoadWrongFieldTypes(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"handlers not a list", `{"handlers": {"a": 1}}`},
		{"match_rules not an object", `{"handlers": [{"name": "a", "type": "sound", "match_rules": "Stop", "config": {}}]}`},
		{"config not an object", `{"handlers": [{"name": "a", "type": "sound", "config": "x"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), "bad.json", tt.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid), "got %v", err)
		})
	}
}

func TestLoadSchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"handler without name", `{"handlers": [{"type": "sound", "config": {}}]}`},
		{"handler without type", `{"handlers": [{"name": "a", "config": {}}]}`},
		{"duplicate names", `{"handlers": [
			{"name": "a", "type": "sound", "config": {}},
			{"name": "a", "type": "desktop", "config": {}}
		]}`},
		{"override without pattern", `{"handlers": [], "overrides": [{"handlers": []}]}`},
		{"invalid override handler", `{"handlers": [], "overrides": [
			{"path_pattern": "/x/*", "handlers": [{"name": "", "type": "sound", "config": {}}]}
		]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), "bad.json", tt.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid), "got %v", err)
		})
	}
}

func TestLoadNullMatchRules(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "boopifier.json", `{
		"handlers": [{"name": "all", "type": "desktop", "match_rules": null, "config": {}}]
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Nil(t, cfg.Handlers[0].Rule, "null match_rules matches everything")
}

func TestLoadMatchTypeRegex(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "boopifier.json", `{
		"handlers": [{
			"name": "perm",
			"type": "desktop",
			"match_rules": {"message": ".*permission.*"},
			"match_type": "regex",
			"config": {}
		}]
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Handlers[0].Rule)
	assert.Equal(t, rules.ModeRegex, cfg.Handlers[0].Rule.Mode)
}

func TestLoadOverrideRulesCompiled(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "boopifier.json", `{
		"handlers": [],
		"overrides": [{
			"path_pattern": "/work/**",
			"handlers": [{"name": "w", "type": "webhook", "match_rules": {"x": "y"}, "config": {}}]
		}]
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Overrides, 1)
	assert.NotNil(t, cfg.Overrides[0].Handlers[0].Rule)
}
