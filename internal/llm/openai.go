package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/webcraft-agents/webcraft/internal/models"
	"github.com/webcraft-agents/webcraft/internal/tools"
)

// OpenAIClient implements LLMClient using OpenAI's Chat Completions API.
type OpenAIClient struct {
	client openai.Client
}

// NewOpenAIClient creates an OpenAI client using OPENAI_API_KEY.
func NewOpenAIClient() *OpenAIClient {
	apiKey := os.Getenv("OPENAI_API_KEY")
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{client: client}
}

// Call sends a request to OpenAI and returns the complete response.
func (c *OpenAIClient) Call(ctx context.Context, request LLMRequest) (LLMResponse, error) {
	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(request.ModelConfig.Model),
		Messages: c.buildMessages(request),
	}

	if request.ModelConfig.Temperature > 0 {
		params.Temperature = openai.Float(request.ModelConfig.Temperature)
	}
	if request.ModelConfig.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(request.ModelConfig.MaxTokens))
	}
	if len(request.ToolSpecs) > 0 {
		params.Tools = c.buildToolDefinitions(request.ToolSpecs)
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return LLMResponse{}, classifyOpenAIError(err)
	}

	items, finishReason := c.parseResponse(resp)

	return LLMResponse{
		Items:        items,
		FinishReason: finishReason,
		TokenUsage: models.TokenUsage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}, nil
}

// buildMessages prepends the system prompt (when set) to the converted
// conversation history.
func (c *OpenAIClient) buildMessages(request LLMRequest) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(request.History)+1)
	if request.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(request.SystemPrompt))
	}
	return append(messages, c.convertHistoryToMessages(request.History)...)
}

// convertHistoryToMessages converts ConversationItems to chat messages.
// Consecutive FunctionCall items are grouped onto one assistant message
// (an API requirement); tool outputs become tool-role messages.
func (c *OpenAIClient) convertHistoryToMessages(history []models.ConversationItem) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history))

	i := 0
	for i < len(history) {
		item := history[i]

		switch item.Type {
		case models.ItemTypeUserMessage:
			messages = append(messages, openai.UserMessage(item.Content))
			i++

		case models.ItemTypeAssistantMessage, models.ItemTypeFunctionCall:
			assistant := openai.ChatCompletionAssistantMessageParam{}

			j := i
			if item.Type == models.ItemTypeAssistantMessage {
				if item.Content != "" {
					assistant.Content = openai.ChatCompletionAssistantMessageParamContentUnion{
						OfString: openai.String(item.Content),
					}
				}
				j++
			}

			for j < len(history) && history[j].Type == models.ItemTypeFunctionCall {
				toolCall := history[j]
				assistant.ToolCalls = append(assistant.ToolCalls, openai.ChatCompletionMessageToolCallUnionParam{
					OfFunction: &openai.ChatCompletionMessageFunctionToolCallParam{
						ID: toolCall.CallID,
						Function: openai.ChatCompletionMessageFunctionToolCallFunctionParam{
							Name:      toolCall.Name,
							Arguments: toolCall.Arguments,
						},
					},
				})
				j++
			}

			messages = append(messages, openai.ChatCompletionMessageParamUnion{
				OfAssistant: &assistant,
			})
			i = j

		case models.ItemTypeFunctionCallOutput:
			content := ""
			if item.Output != nil {
				content = item.Output.Content
			}
			messages = append(messages, openai.ToolMessage(content, item.CallID))
			i++

		default:
			i++
		}
	}

	return messages
}

// buildToolDefinitions converts ToolSpecs to chat completion tools.
func (c *OpenAIClient) buildToolDefinitions(specs []tools.ToolSpec) []openai.ChatCompletionToolUnionParam {
	toolDefs := make([]openai.ChatCompletionToolUnionParam, 0, len(specs))

	for _, spec := range specs {
		properties := make(map[string]interface{})
		required := make([]string, 0)

		for _, p := range spec.Parameters {
			prop := map[string]interface{}{
				"type":        p.Type,
				"description": p.Description,
			}
			if p.Items != nil {
				prop["items"] = p.Items
			}
			properties[p.Name] = prop
			if p.Required {
				required = append(required, p.Name)
			}
		}

		toolDefs = append(toolDefs, openai.ChatCompletionToolUnionParam{
			OfFunction: &openai.ChatCompletionFunctionToolParam{
				Function: shared.FunctionDefinitionParam{
					Name:        spec.Name,
					Description: openai.String(spec.Description),
					Parameters: shared.FunctionParameters{
						"type":       "object",
						"properties": properties,
						"required":   required,
					},
				},
			},
		})
	}

	return toolDefs
}

// parseResponse converts the first choice to ConversationItems.
func (c *OpenAIClient) parseResponse(resp *openai.ChatCompletion) ([]models.ConversationItem, models.FinishReason) {
	var items []models.ConversationItem
	finishReason := models.FinishReasonStop

	if len(resp.Choices) == 0 {
		return []models.ConversationItem{{Type: models.ItemTypeAssistantMessage}}, finishReason
	}

	choice := resp.Choices[0]
	if choice.Message.Content != "" {
		items = append(items, models.ConversationItem{
			Type:    models.ItemTypeAssistantMessage,
			Content: choice.Message.Content,
		})
	}

	for _, toolCall := range choice.Message.ToolCalls {
		finishReason = models.FinishReasonToolCalls
		items = append(items, models.ConversationItem{
			Type:      models.ItemTypeFunctionCall,
			CallID:    toolCall.ID,
			Name:      toolCall.Function.Name,
			Arguments: toolCall.Function.Arguments,
		})
	}

	if len(items) == 0 {
		items = append(items, models.ConversationItem{Type: models.ItemTypeAssistantMessage})
	}

	switch choice.FinishReason {
	case "tool_calls":
		finishReason = models.FinishReasonToolCalls
	case "length":
		finishReason = models.FinishReasonLength
	case "stop":
		if finishReason != models.FinishReasonToolCalls {
			finishReason = models.FinishReasonStop
		}
	}

	return items, finishReason
}

// classifyOpenAIError categorizes an OpenAI API error using the HTTP
// status code when available, falling back to message heuristics.
func classifyOpenAIError(err error) error {
	if apiErr, ok := err.(*openai.Error); ok {
		return classifyByStatusCode(apiErr.StatusCode, err)
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "rate_limit") || strings.Contains(errMsg, "rate limit") {
		return models.NewAPILimitError(err.Error())
	}
	return models.NewTransientError(fmt.Sprintf("OpenAI API error: %v", err))
}
