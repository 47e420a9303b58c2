// Package rules implements the boolean rule language that gates handlers.
//
// A rule is a tree of nodes combined with all/any/not semantics over field
// matches. In configuration files a rule is written as a JSON object: flat
// field→pattern pairs mean "all fields must match", while the reserved keys
// "all", "any" and "not" introduce explicit boolean operators. Reserved keys
// and sibling field constraints are ANDed together.
package rules

// Kind discriminates the rule node variants
type Kind int

const (
	// KindField matches a single event field against a pattern
	KindField Kind = iota
	// KindAll is true iff every child is true (empty: vacuously true)
	KindAll
	// KindAny is true iff at least one child is true (empty: false)
	KindAny
	// KindNot negates its single child
	KindNot
)

// Mode selects how field patterns are compared
type Mode int

const (
	// ModeExact requires full string equality
	ModeExact Mode = iota
	// ModeRegex requires an unanchored regular expression match
	ModeRegex
)

// ParseMode converts the config-file match_type value to a Mode.
// Unrecognized values fall back to exact matching.
func ParseMode(s string) Mode {
	if s == "regex" {
		return ModeRegex
	}
	return ModeExact
}

// Node is one node of a rule tree. A nil *Node matches every event.
type Node struct {
	Kind Kind

	// Field leaf data (KindField)
	Path    string
	Pattern string
	Mode    Mode

	// Children (KindAll, KindAny; KindNot uses exactly one)
	Children []*Node
}

// Field constructs a field-match leaf
func Field(path, pattern string, mode Mode) *Node {
	return &Node{Kind: KindField, Path: path, Pattern: pattern, Mode: mode}
}

// All constructs an AND node
func All(children ...*Node) *Node {
	return &Node{Kind: KindAll, Children: children}
}

// Any constructs an OR node
func Any(children ...*Node) *Node {
	return &Node{Kind: KindAny, Children: children}
}

// Not constructs a negation node
func Not(child *Node) *Node {
	return &Node{Kind: KindNot, Children: []*Node{child}}
}
