// Package template substitutes {{...}} placeholders in handler configuration
// values at dispatch time.
//
// Placeholders resolve, in order: "env.NAME" to an environment variable,
// "file.PATH" to trimmed file contents (with ~ expansion), and anything else
// as a dotted path into the event. Unresolvable placeholders substitute the
// empty string; rendering itself never fails. Per-handler required-field
// validation belongs to the handler back-ends, not here.
package template

import (
	"strings"

	"github.com/arthur-debert/boopifier/pkg/event"
)

// Render substitutes placeholders in a JSON-like config value. Strings are
// scanned for {{...}} tokens; maps and slices are rendered recursively with
// structure preserved; all other values pass through unchanged.
func Render(value interface{}, ev event.Event) interface{} {
	switch v := value.(type) {
	case string:
		return RenderString(v, ev)
	case map[string]interface{}:
		rendered := make(map[string]interface{}, len(v))
		for key, item := range v {
			rendered[key] = Render(item, ev)
		}
		return rendered
	case []interface{}:
		rendered := make([]interface{}, len(v))
		for i, item := range v {
			rendered[i] = Render(item, ev)
		}
		return rendered
	default:
		return value
	}
}

// RenderConfig renders every value of a handler config map
func RenderConfig(config map[string]interface{}, ev event.Event) map[string]interface{} {
	rendered, _ := Render(config, ev).(map[string]interface{})
	return rendered
}

// RenderString substitutes all placeholders in one string. The result is
// always a string: a placeholder referring to a numeric or boolean event
// field renders as its textual form. Tokens without a closing "}}" or with
// nested braces are copied through literally.
func RenderString(s string, ev event.Event) string {
	if !strings.Contains(s, "{{") {
		return s
	}

	var out strings.Builder
	rest := s
	for {
		start := strings.Index(rest, "{{")
		if start < 0 {
			out.WriteString(rest)
			return out.String()
		}
		out.WriteString(rest[:start])
		rest = rest[start:]

		end := strings.Index(rest[2:], "}}")
		if end < 0 {
			// No closing braces: the remainder is literal.
			out.WriteString(rest)
			return out.String()
		}

		name := rest[2 : 2+end]
		if strings.ContainsAny(name, "{}") {
			// Nested braces are not a placeholder.
			out.WriteString(rest[:2+end+2])
		} else {
			out.WriteString(resolve(name, ev))
		}
		rest = rest[2+end+2:]
	}
}

// resolve looks up a single placeholder name, first match wins
func resolve(name string, ev event.Event) string {
	if envName, ok := strings.CutPrefix(name, "env."); ok {
		return resolveEnv(envName)
	}
	if filePath, ok := strings.CutPrefix(name, "file."); ok {
		return resolveFile(filePath)
	}
	if value, found := ev.Lookup(name); found {
		return event.CoerceString(value)
	}
	return ""
}
