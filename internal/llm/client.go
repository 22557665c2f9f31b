// Package llm provides the provider clients the review agents call
// through. All calls happen inside activities; errors come back as
// *models.ActivityError so the activity layer can wrap them with the
// right retry semantics.
package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/webcraft-agents/webcraft/internal/models"
	"github.com/webcraft-agents/webcraft/internal/tools"
)

// LLMRequest is one complete, stateless model invocation: the agent's
// system prompt, its conversation so far, and the tools it may call.
type LLMRequest struct {
	History      []models.ConversationItem `json:"history"`
	ModelConfig  models.ModelConfig        `json:"model_config"`
	ToolSpecs    []tools.ToolSpec          `json:"tool_specs,omitempty"`
	SystemPrompt string                    `json:"system_prompt,omitempty"`
}

// LLMResponse carries the model's output items (assistant text plus any
// function calls) and usage accounting.
type LLMResponse struct {
	Items        []models.ConversationItem `json:"items"`
	FinishReason models.FinishReason       `json:"finish_reason"`
	TokenUsage   models.TokenUsage         `json:"token_usage"`
}

// LLMClient is the interface for LLM providers.
type LLMClient interface {
	Call(ctx context.Context, request LLMRequest) (LLMResponse, error)
}

// classifyByStatusCode maps an HTTP status code to the appropriate
// ActivityError. Shared by all provider error classifiers.
//
// Classification:
//   - 429 (Too Many Requests): rate limit, retryable with delay
//   - 408 (Request Timeout), 409 (Conflict): transient, retryable
//   - Other 4xx: fatal client error, non-retryable (e.g., 400, 401, 403, 404)
//   - 5xx: transient server error, retryable
func classifyByStatusCode(statusCode int, err error) *models.ActivityError {
	switch {
	case statusCode == http.StatusTooManyRequests:
		return models.NewAPILimitError(fmt.Sprintf("rate limit (%d): %v", statusCode, err))
	case statusCode == http.StatusRequestTimeout || statusCode == http.StatusConflict:
		return models.NewTransientError(fmt.Sprintf("retryable error (%d): %v", statusCode, err))
	case statusCode >= 400 && statusCode < 500:
		return models.NewFatalError(fmt.Sprintf("client error (%d): %v", statusCode, err))
	case statusCode >= 500:
		return models.NewTransientError(fmt.Sprintf("server error (%d): %v", statusCode, err))
	default:
		return models.NewTransientError(fmt.Sprintf("unexpected status (%d): %v", statusCode, err))
	}
}
