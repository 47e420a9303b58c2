package rules

import (
	"sort"

	"github.com/arthur-debert/boopifier/pkg/event"
)

// Parse converts a raw match_rules object into a rule tree. A nil map yields
// a nil node, which matches everything.
//
// Parsing is total: it never fails. Malformed operator values (e.g. a "not"
// whose value is not an object) contribute no constraint, and an object that
// used only malformed operators degrades to a never-matching node rather
// than silently matching everything.
func Parse(raw map[string]interface{}, mode Mode) *Node {
	if raw == nil {
		return nil
	}

	var children []*Node
	sawOperator := false

	// Field keys are visited in sorted order so the parsed tree is stable
	// across invocations.
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := raw[key]
		switch key {
		case "all":
			sawOperator = true
			if items, ok := value.([]interface{}); ok {
				children = append(children, All(parseList(items, mode)...))
			}
		case "any":
			sawOperator = true
			if items, ok := value.([]interface{}); ok {
				children = append(children, Any(parseList(items, mode)...))
			}
		case "not":
			sawOperator = true
			if obj, ok := value.(map[string]interface{}); ok {
				children = append(children, Not(Parse(obj, mode)))
			}
		default:
			children = append(children, Field(key, event.CoerceString(value), mode))
		}
	}

	if len(children) == 0 {
		if sawOperator {
			// Operators were present but unusable. Matching everything here
			// would fire handlers the user tried to constrain.
			return Any()
		}
		return All()
	}

	if len(children) == 1 {
		return children[0]
	}
	return All(children...)
}

func parseList(items []interface{}, mode Mode) []*Node {
	nodes := make([]*Node, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]interface{}); ok {
			nodes = append(nodes, Parse(obj, mode))
		}
	}
	return nodes
}
