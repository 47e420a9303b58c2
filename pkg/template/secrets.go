package template

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/boopifier/pkg/logging"
)

// resolveEnv resolves an {{env.NAME}} secret. A missing variable substitutes
// the empty string; whether the resulting value is acceptable is the
// handler's own validation concern.
func resolveEnv(name string) string {
	value, ok := os.LookupEnv(name)
	if !ok {
		logger := logging.GetLogger("template.secrets")
		logger.Debug().Str("var", name).Msg("environment variable not set, substituting empty string")
	}
	return value
}

// resolveFile resolves a {{file.PATH}} secret to the trimmed contents of the
// file, expanding a leading ~ to the user's home directory. Unreadable files
// substitute the empty string.
func resolveFile(path string) string {
	expanded := ExpandTilde(path)

	data, err := os.ReadFile(expanded)
	if err != nil {
		logger := logging.GetLogger("template.secrets")
		logger.Debug().Err(err).Str("path", expanded).Msg("secret file not readable, substituting empty string")
		return ""
	}
	return strings.TrimSpace(string(data))
}

// ExpandTilde expands a leading "~" or "~/" path prefix to the current
// user's home directory. Paths without the prefix are returned unchanged.
func ExpandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
