package config

import (
	"path/filepath"
	"strings"
)

// matchPathPattern matches an override glob pattern against a project path,
// segment by segment. A "*" matches within a single path segment and "**"
// matches any number of segments, including none.
//
// The standard library's filepath.Match handles single segments but has no
// "**" support, so the cross-segment walk lives here.
func matchPathPattern(pattern, path string) bool {
	return matchSegments(splitPath(pattern), splitPath(path))
}

func splitPath(p string) []string {
	return strings.Split(strings.Trim(filepath.ToSlash(p), "/"), "/")
}

func matchSegments(pattern, path []string) bool {
	if len(pattern) == 0 {
		return len(path) == 0
	}

	if pattern[0] == "**" {
		// Consume zero or more path segments.
		for skip := 0; skip <= len(path); skip++ {
			if matchSegments(pattern[1:], path[skip:]) {
				return true
			}
		}
		return false
	}

	if len(path) == 0 {
		return false
	}

	matched, err := filepath.Match(pattern[0], path[0])
	if err != nil || !matched {
		return false
	}
	return matchSegments(pattern[1:], path[1:])
}
