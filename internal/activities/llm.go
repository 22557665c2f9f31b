// Package activities contains the Temporal activity implementations the
// review workflow schedules: LLM invocations, tool execution, linting,
// and progress display.
package activities

import (
	"context"
	"errors"

	"github.com/webcraft-agents/webcraft/internal/llm"
	"github.com/webcraft-agents/webcraft/internal/models"
	"github.com/webcraft-agents/webcraft/internal/tools"
)

// LLMActivityInput is the input for one agent model invocation.
type LLMActivityInput struct {
	// Agent names which loop role is calling, for logging and metrics.
	Agent string `json:"agent"`

	History      []models.ConversationItem `json:"history"`
	ModelConfig  models.ModelConfig        `json:"model_config"`
	ToolSpecs    []tools.ToolSpec          `json:"tool_specs,omitempty"`
	SystemPrompt string                    `json:"system_prompt,omitempty"`
}

// LLMActivityOutput is the model's complete response: assistant text
// plus any function calls, in order.
type LLMActivityOutput struct {
	Items        []models.ConversationItem `json:"items"`
	FinishReason models.FinishReason       `json:"finish_reason"`
	TokenUsage   models.TokenUsage         `json:"token_usage"`
}

// LLMActivities contains LLM-related activities.
type LLMActivities struct {
	client llm.LLMClient
}

// NewLLMActivities creates a new LLMActivities instance.
func NewLLMActivities(client llm.LLMClient) *LLMActivities {
	return &LLMActivities{client: client}
}

// InvokeAgent executes one LLM call for a loop agent. Provider errors
// arrive as *models.ActivityError and are rewrapped as application
// errors whose Type() the workflow can classify without parsing text.
func (a *LLMActivities) InvokeAgent(ctx context.Context, input LLMActivityInput) (LLMActivityOutput, error) {
	request := llm.LLMRequest{
		History:      input.History,
		ModelConfig:  input.ModelConfig,
		ToolSpecs:    input.ToolSpecs,
		SystemPrompt: input.SystemPrompt,
	}

	response, err := a.client.Call(ctx, request)
	if err != nil {
		var activityErr *models.ActivityError
		if errors.As(err, &activityErr) {
			return LLMActivityOutput{}, models.WrapActivityError(activityErr)
		}
		return LLMActivityOutput{}, err
	}

	return LLMActivityOutput{
		Items:        response.Items,
		FinishReason: response.FinishReason,
		TokenUsage:   response.TokenUsage,
	}, nil
}
