// Package handlers implements the workspace file tools exposed to the
// review and revision agents. Filesystem problems come back as failed
// ToolOutputs the agent can read, never as errors; only malformed
// arguments (which no retry will fix) are ValidationErrors.
package handlers

import (
	"github.com/webcraft-agents/webcraft/internal/tools"
)

// requiredString extracts a required string argument.
func requiredString(invocation *tools.ToolInvocation, name string) (string, error) {
	raw, ok := invocation.Arguments[name]
	if !ok {
		return "", tools.NewValidationErrorf("missing required argument: %s", name)
	}
	s, ok := raw.(string)
	if !ok {
		return "", tools.NewValidationErrorf("%s must be a string", name)
	}
	return s, nil
}

// optionalString extracts an optional string argument, returning
// fallback when absent.
func optionalString(invocation *tools.ToolInvocation, name, fallback string) (string, error) {
	raw, ok := invocation.Arguments[name]
	if !ok {
		return fallback, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", tools.NewValidationErrorf("%s must be a string", name)
	}
	if s == "" {
		return fallback, nil
	}
	return s, nil
}

// optionalInt extracts an optional integer argument. JSON numbers
// arrive as float64.
func optionalInt(invocation *tools.ToolInvocation, name string, fallback int) (int, error) {
	raw, ok := invocation.Arguments[name]
	if !ok {
		return fallback, nil
	}
	switch v := raw.(type) {
	case int:
		return v, nil
	case float64:
		return int(v), nil
	default:
		return 0, tools.NewValidationErrorf("%s must be an integer", name)
	}
}

// optionalBool extracts an optional boolean argument.
func optionalBool(invocation *tools.ToolInvocation, name string, fallback bool) (bool, error) {
	raw, ok := invocation.Arguments[name]
	if !ok {
		return fallback, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return false, tools.NewValidationErrorf("%s must be a boolean", name)
	}
	return b, nil
}
