// Package paths provides centralized path handling for boopifier. The core
// never decides lookup locations itself; it receives them from here.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvProjectDir is set by Claude Code to the current project directory
	EnvProjectDir = "CLAUDE_PROJECT_DIR"

	// EnvGlobalConfig overrides the global handler config location
	EnvGlobalConfig = "BOOPIFIER_CONFIG"
)

// File and directory names
const (
	// AppDirName is the directory name for boopifier-specific files
	AppDirName = "boopifier"

	// GlobalConfigFile is the global handler config, resolved under ~/.claude
	GlobalConfigFile = ".claude/boopifier.json"

	// SettingsFile is the process-tuning TOML under the XDG config dir
	SettingsFile = "boopifier.toml"

	// LogFileName is the name of the log file
	LogFileName = "boopifier.log"
)

// ProjectDir returns the project directory Claude Code is running in, or ""
// when unknown.
func ProjectDir() string {
	return os.Getenv(EnvProjectDir)
}

// GlobalConfigPath returns the location of the global handler config,
// honoring the BOOPIFIER_CONFIG override.
func GlobalConfigPath() string {
	if override := os.Getenv(EnvGlobalConfig); override != "" {
		return override
	}
	return filepath.Join(xdg.Home, GlobalConfigFile)
}

// SettingsPath returns the location of the process settings file
// ($XDG_CONFIG_HOME/boopifier/boopifier.toml).
func SettingsPath() string {
	return filepath.Join(xdg.ConfigHome, AppDirName, SettingsFile)
}

// LogFilePath returns the location of the log file
// ($XDG_STATE_HOME/boopifier/boopifier.log).
func LogFilePath() string {
	return filepath.Join(xdg.StateHome, AppDirName, LogFileName)
}
