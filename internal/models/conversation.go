package models

// ConversationItemType discriminates the variants of ConversationItem.
type ConversationItemType string

const (
	ItemTypeUserMessage        ConversationItemType = "user_message"
	ItemTypeAssistantMessage   ConversationItemType = "assistant_message"
	ItemTypeFunctionCall       ConversationItemType = "function_call"
	ItemTypeFunctionCallOutput ConversationItemType = "function_call_output"
)

// FunctionCallOutputPayload carries a tool result back to the model.
// Success=false marks the content as an error description the model can
// react to; it is never raised as an exception across the boundary.
type FunctionCallOutputPayload struct {
	Content string `json:"content"`
	Success *bool  `json:"success,omitempty"`
}

// ConversationItem is one element of an agent's message history.
// Different fields are populated depending on Type:
//
//	UserMessage / AssistantMessage: Content
//	FunctionCall:                   CallID, Name, Arguments
//	FunctionCallOutput:             CallID, Output
type ConversationItem struct {
	Type ConversationItemType `json:"type"`

	Content string `json:"content,omitempty"`

	CallID    string `json:"call_id,omitempty"`
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments,omitempty"` // raw JSON string

	Output *FunctionCallOutputPayload `json:"output,omitempty"`
}

// FinishReason indicates why the LLM stopped generating.
type FinishReason string

const (
	FinishReasonStop      FinishReason = "stop"
	FinishReasonToolCalls FinishReason = "tool_calls"
	FinishReasonLength    FinishReason = "length"
)

// TokenUsage tracks token consumption for one LLM call.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
