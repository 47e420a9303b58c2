package rules

import (
	"testing"

	"github.com/arthur-debert/boopifier/pkg/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEvent(t *testing.T, raw string) event.Event {
	t.Helper()
	ev, err := event.Parse([]byte(raw))
	require.NoError(t, err)
	return ev
}

func TestNilRuleMatchesEverything(t *testing.T) {
	events := []string{
		`{}`,
		`{"hook_event_name": "Stop"}`,
		`{"anything": {"goes": true}}`,
	}
	for _, raw := range events {
		assert.True(t, Matches(nil, mustEvent(t, raw)), "event %s", raw)
	}
}

func TestFieldExactMatch(t *testing.T) {
	ev := mustEvent(t, `{"event_type": "success", "tool": "bash"}`)

	assert.True(t, Matches(Field("event_type", "success", ModeExact), ev))
	assert.False(t, Matches(Field("event_type", "error", ModeExact), ev))
	assert.False(t, Matches(Field("missing", "success", ModeExact), ev))
}

func TestFieldExactMatchCoercion(t *testing.T) {
	ev := mustEvent(t, `{"exit_code": 0, "ok": true, "count": 5}`)

	assert.True(t, Matches(Field("exit_code", "0", ModeExact), ev))
	assert.True(t, Matches(Field("ok", "true", ModeExact), ev))
	assert.True(t, Matches(Field("count", "5", ModeExact), ev))
	assert.False(t, Matches(Field("count", "5.0", ModeExact), ev))
}

func TestNestedPathMatch(t *testing.T) {
	ev := mustEvent(t, `{"tool": {"name": "bash", "status": "ok"}}`)

	assert.True(t, Matches(Field("tool.name", "bash", ModeExact), ev))
	assert.False(t, Matches(Field("tool.name", "python", ModeExact), ev))
	assert.False(t, Matches(Field("tool.missing", "bash", ModeExact), ev))
}

func TestArrayPathsAreAbsent(t *testing.T) {
	ev := mustEvent(t, `{"args": ["a", "b"]}`)

	assert.False(t, Matches(Field("args.0", "a", ModeExact), ev))
}

func TestRegexMatch(t *testing.T) {
	matched := mustEvent(t, `{"message": "needs permission to run"}`)
	unmatched := mustEvent(t, `{"message": "all clear"}`)

	rule := Field("message", ".*permission.*", ModeRegex)
	assert.True(t, Matches(rule, matched))
	assert.False(t, Matches(rule, unmatched))
}

func TestRegexIsUnanchored(t *testing.T) {
	ev := mustEvent(t, `{"message": "Claude needs your permission to use Write"}`)
	assert.True(t, Matches(Field("message", "permission", ModeRegex), ev))
}

func TestMalformedRegexIsNonMatch(t *testing.T) {
	ev := mustEvent(t, `{"message": "anything"}`)
	assert.False(t, Matches(Field("message", "([unclosed", ModeRegex), ev))

	// Siblings still evaluated: the Any short-circuits to its valid branch
	rule := Any(
		Field("message", "([unclosed", ModeRegex),
		Field("message", "any", ModeRegex),
	)
	assert.True(t, Matches(rule, ev))
}

func TestAllSemantics(t *testing.T) {
	ev := mustEvent(t, `{"type": "success", "tool": "bash"}`)

	assert.True(t, Matches(All(), ev), "empty All is vacuously true")
	assert.True(t, Matches(All(
		Field("type", "success", ModeExact),
		Field("tool", "bash", ModeExact),
	), ev))
	assert.False(t, Matches(All(
		Field("type", "success", ModeExact),
		Field("tool", "python", ModeExact),
	), ev))
}

func TestAnySemantics(t *testing.T) {
	ev := mustEvent(t, `{"status": "ok"}`)

	assert.False(t, Matches(Any(), ev), "empty Any matches nothing")
	assert.True(t, Matches(Any(
		Field("status", "error", ModeExact),
		Field("status", "ok", ModeExact),
	), ev))
	assert.False(t, Matches(Any(
		Field("status", "error", ModeExact),
		Field("status", "failed", ModeExact),
	), ev))
}

func TestNotNegates(t *testing.T) {
	ev := mustEvent(t, `{"status": "ok"}`)

	rulesToNegate := []*Node{
		nil,
		Field("status", "ok", ModeExact),
		Field("status", "error", ModeExact),
		All(),
		Any(),
		Not(Field("status", "ok", ModeExact)),
	}
	for _, r := range rulesToNegate {
		assert.Equal(t, !Matches(r, ev), Matches(Not(r), ev), "rule %s", Describe(r))
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(nil))
	assert.NoError(t, Validate(Field("a", "b", ModeExact)))
	assert.NoError(t, Validate(Field("a", ".*", ModeRegex)))
	assert.Error(t, Validate(Field("a", "([bad", ModeRegex)))
	assert.Error(t, Validate(All(
		Field("a", ".*", ModeRegex),
		Not(Field("b", "([bad", ModeRegex)),
	)))

	// Exact-mode patterns are never regex-validated
	assert.NoError(t, Validate(Field("a", "([not-a-regex", ModeExact)))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "<match-all>", Describe(nil))
	assert.Equal(t, "status==ok", Describe(Field("status", "ok", ModeExact)))
	assert.Equal(t, "message=~.*", Describe(Field("message", ".*", ModeRegex)))
	assert.Equal(t, "any(a==1, not(b==2))", Describe(Any(
		Field("a", "1", ModeExact),
		Not(Field("b", "2", ModeExact)),
	)))
}
