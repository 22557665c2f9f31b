package activities

import (
	"context"
	"fmt"

	"github.com/webcraft-agents/webcraft/internal/models"
	"github.com/webcraft-agents/webcraft/internal/tools"
)

// ToolActivityInput is the input for tool execution.
type ToolActivityInput struct {
	Invocation tools.ToolInvocation `json:"invocation"`
}

// ToolActivityOutput is the result handed back into the agent's
// conversation. Failed tool calls come back as Output with
// Success=false, never as activity errors, so agents can self-correct
// within their turn.
type ToolActivityOutput struct {
	CallID string                           `json:"call_id"`
	Output models.FunctionCallOutputPayload `json:"output"`
}

// ToolActivities contains tool-related activities.
type ToolActivities struct {
	registry *tools.ToolRegistry
}

// NewToolActivities creates a new ToolActivities instance.
func NewToolActivities(registry *tools.ToolRegistry) *ToolActivities {
	return &ToolActivities{registry: registry}
}

// ExecuteTool dispatches a single tool call through the registry.
// Malformed arguments surface as non-retryable application errors;
// everything else (missing files, disallowed extensions) is a failed
// tool result.
func (a *ToolActivities) ExecuteTool(ctx context.Context, input ToolActivityInput) (ToolActivityOutput, error) {
	invocation := input.Invocation

	handler, err := a.registry.GetHandler(invocation.ToolName)
	if err != nil {
		return toolFailure(invocation.CallID, fmt.Sprintf("Tool not found: %s", invocation.ToolName)), nil
	}

	output, err := handler.Handle(ctx, &invocation)
	if err != nil {
		if tools.IsValidationError(err) {
			return ToolActivityOutput{}, models.WrapActivityError(models.NewFatalError(err.Error()))
		}
		return toolFailure(invocation.CallID, err.Error()), nil
	}

	return ToolActivityOutput{
		CallID: invocation.CallID,
		Output: models.FunctionCallOutputPayload{
			Content: output.Content,
			Success: output.Success,
		},
	}, nil
}

func toolFailure(callID, message string) ToolActivityOutput {
	success := false
	return ToolActivityOutput{
		CallID: callID,
		Output: models.FunctionCallOutputPayload{Content: message, Success: &success},
	}
}
