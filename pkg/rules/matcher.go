package rules

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/boopifier/pkg/event"
)

// Matches evaluates a rule tree against an event. It is pure and total:
// absent fields and malformed regex patterns make the affected leaf false,
// they never abort evaluation of sibling rules.
func Matches(rule *Node, ev event.Event) bool {
	if rule == nil {
		return true
	}

	switch rule.Kind {
	case KindField:
		return matchField(rule, ev)

	case KindAll:
		for _, child := range rule.Children {
			if !Matches(child, ev) {
				return false
			}
		}
		return true

	case KindAny:
		for _, child := range rule.Children {
			if Matches(child, ev) {
				return true
			}
		}
		return false

	case KindNot:
		if len(rule.Children) != 1 {
			return false
		}
		return !Matches(rule.Children[0], ev)

	default:
		return false
	}
}

func matchField(rule *Node, ev event.Event) bool {
	value, found := ev.Lookup(rule.Path)
	if !found {
		return false
	}

	text := event.CoerceString(value)

	switch rule.Mode {
	case ModeRegex:
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			// Malformed patterns are reported at dispatch time; here they
			// are simply a non-match.
			return false
		}
		return re.MatchString(text)
	default:
		return text == rule.Pattern
	}
}

// Validate reports the first malformed regex pattern in the tree, so that
// dispatch can surface configuration problems without affecting matching.
func Validate(rule *Node) error {
	if rule == nil {
		return nil
	}

	if rule.Kind == KindField && rule.Mode == ModeRegex {
		if _, err := regexp.Compile(rule.Pattern); err != nil {
			return err
		}
	}

	for _, child := range rule.Children {
		if err := Validate(child); err != nil {
			return err
		}
	}
	return nil
}

// Describe renders a compact human-readable form of the rule tree, used in
// debug logging.
func Describe(rule *Node) string {
	if rule == nil {
		return "<match-all>"
	}

	switch rule.Kind {
	case KindField:
		op := "=="
		if rule.Mode == ModeRegex {
			op = "=~"
		}
		return rule.Path + op + rule.Pattern
	case KindAll:
		return "all(" + describeChildren(rule.Children) + ")"
	case KindAny:
		return "any(" + describeChildren(rule.Children) + ")"
	case KindNot:
		return "not(" + describeChildren(rule.Children) + ")"
	default:
		return "<invalid>"
	}
}

func describeChildren(children []*Node) string {
	parts := make([]string, len(children))
	for i, child := range children {
		parts[i] = Describe(child)
	}
	return strings.Join(parts, ", ")
}
