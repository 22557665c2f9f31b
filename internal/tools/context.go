package tools

// ToolKind classifies the type of tool handler.
type ToolKind int

const (
	ToolKindFunction ToolKind = iota
)

// ToolOutput represents the result of tool execution. Success=false
// marks Content as an error description for the agent, never an
// exception: agents must be able to self-correct within their turn.
type ToolOutput struct {
	Content string `json:"content"`
	Success *bool  `json:"success,omitempty"`
}

// OK wraps content as a successful output.
func OK(content string) *ToolOutput {
	success := true
	return &ToolOutput{Content: content, Success: &success}
}

// Fail wraps an error description as a failed-but-handled output.
func Fail(content string) *ToolOutput {
	success := false
	return &ToolOutput{Content: content, Success: &success}
}

// ToolInvocation provides context for tool execution.
type ToolInvocation struct {
	CallID    string                 `json:"call_id"`
	ToolName  string                 `json:"tool_name"`
	Arguments map[string]interface{} `json:"arguments"`

	// WorkRoot is the website workspace all relative paths resolve
	// against.
	WorkRoot string `json:"work_root,omitempty"`
}
