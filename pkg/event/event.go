// Package event defines the inbound hook event payload.
//
// Events arrive as a single JSON object on stdin. There is no fixed schema:
// each hook type ships its own field set, so the event is kept as a loose
// map and consumers resolve fields by dotted path.
package event

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/arthur-debert/boopifier/pkg/errors"
)

// Event is one hook event payload. It is read-only after Parse.
type Event struct {
	Data map[string]interface{}
}

// Parse decodes a single JSON object into an Event
func Parse(raw []byte) (Event, error) {
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return Event{}, errors.Wrap(err, errors.ErrEventParse, "failed to parse event JSON")
	}
	return Event{Data: data}, nil
}

// GetString returns a top-level field as a string, or "" when the field is
// absent or not a string.
func (e Event) GetString(key string) string {
	if s, ok := e.Data[key].(string); ok {
		return s
	}
	return ""
}

// Lookup resolves a dotted path (e.g. "tool.name") against the event by
// descending through nested objects. Arrays are not indexable by path
// syntax: a segment that lands on an array reports the field as absent.
func (e Event) Lookup(path string) (interface{}, bool) {
	var current interface{} = e.Data
	for _, part := range strings.Split(path, ".") {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// CoerceString converts a resolved event value to its textual form. The same
// coercion is used by rule matching and template substitution: strings pass
// through, booleans and numbers render as JSON scalars ("true", "5"), and
// composite values render as compact JSON.
func CoerceString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case nil:
		return "null"
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
}
