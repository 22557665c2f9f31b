package llm

import (
	"context"
	"fmt"
)

// MultiProviderClient implements LLMClient by dispatching on the
// ModelConfig.Provider field. A single LLMActivities instance can then
// serve per-agent provider overrides without knowing them at
// registration time.
type MultiProviderClient struct {
	openai    *OpenAIClient
	anthropic *AnthropicClient
}

// NewMultiProviderClient creates a client that can dispatch to multiple providers.
func NewMultiProviderClient() *MultiProviderClient {
	return &MultiProviderClient{
		openai:    NewOpenAIClient(),
		anthropic: NewAnthropicClient(),
	}
}

// Call dispatches to the provider named by ModelConfig.Provider,
// defaulting to anthropic.
func (c *MultiProviderClient) Call(ctx context.Context, request LLMRequest) (LLMResponse, error) {
	provider := request.ModelConfig.Provider
	if provider == "" {
		provider = "anthropic"
	}

	switch provider {
	case "anthropic":
		return c.anthropic.Call(ctx, request)
	case "openai":
		return c.openai.Call(ctx, request)
	default:
		return LLMResponse{}, fmt.Errorf("unsupported LLM provider: %s (supported: anthropic, openai)", provider)
	}
}
