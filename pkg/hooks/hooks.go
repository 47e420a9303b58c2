// Package hooks models the Claude Code hook protocol: the hook event names
// boopifier understands and the JSON response the hook expects on stdout.
package hooks

import (
	"encoding/json"

	"github.com/arthur-debert/boopifier/pkg/event"
)

// EventNameField is the event key carrying the hook type
const EventNameField = "hook_event_name"

// Type identifies one Claude Code hook
type Type string

const (
	Stop              Type = "Stop"
	SubagentStop      Type = "SubagentStop"
	Notification      Type = "Notification"
	PreToolUse        Type = "PreToolUse"
	PostToolUse       Type = "PostToolUse"
	PermissionRequest Type = "PermissionRequest"
	UserPromptSubmit  Type = "UserPromptSubmit"
	SessionStart      Type = "SessionStart"
	SessionEnd        Type = "SessionEnd"
	PreCompact        Type = "PreCompact"

	// Unknown stands in for hook names this version does not recognize.
	// They are handled passively, never rejected, so new hook types keep
	// working against older binaries.
	Unknown Type = ""
)

var knownTypes = map[string]Type{
	"Stop":              Stop,
	"SubagentStop":      SubagentStop,
	"Notification":      Notification,
	"PreToolUse":        PreToolUse,
	"PostToolUse":       PostToolUse,
	"PermissionRequest": PermissionRequest,
	"UserPromptSubmit":  UserPromptSubmit,
	"SessionStart":      SessionStart,
	"SessionEnd":        SessionEnd,
	"PreCompact":        PreCompact,
}

// TypeOf maps a hook event name to its Type
func TypeOf(name string) (Type, bool) {
	t, ok := knownTypes[name]
	return t, ok
}

// Hook is the hook context extracted from one event
type Hook struct {
	// Type is Unknown when the event names a hook this version does not know
	Type Type

	// Name is the hook_event_name verbatim, empty when the event omits it
	Name string

	// ToolName is set for PreToolUse and PostToolUse events
	ToolName string
}

// FromEvent reads the hook context out of an event
func FromEvent(ev event.Event) Hook {
	h := Hook{Name: ev.GetString(EventNameField)}
	h.Type, _ = TypeOf(h.Name)
	if h.Type == PreToolUse || h.Type == PostToolUse {
		h.ToolName = ev.GetString("tool_name")
	}
	return h
}

// Response is the stdout reply to the hook. All fields are optional; the
// zero value marshals to the passive response "{}", which every hook type
// accepts.
type Response struct {
	Continue       *bool  `json:"continue,omitempty"`
	Decision       string `json:"decision,omitempty"`
	Reason         string `json:"reason,omitempty"`
	SystemMessage  string `json:"systemMessage,omitempty"`
	SuppressOutput *bool  `json:"suppressOutput,omitempty"`
}

// Passive returns the response that lets the hook proceed untouched
func Passive() Response {
	return Response{}
}

// Warning returns a response that lets the hook proceed while surfacing
// a message to the user. Used when boopifier itself failed; notification
// problems must never block the session.
func Warning(msg string) Response {
	yes := true
	return Response{Continue: &yes, SystemMessage: msg}
}

// Response builds the reply for this hook. Every hook type is currently
// passive; per-type decisions would hang off the Type switch here.
func (h Hook) Response() Response {
	return Passive()
}

// JSON renders the response for stdout
func (r Response) JSON() string {
	data, err := json.Marshal(r)
	if err != nil {
		return "{}"
	}
	return string(data)
}
