package models

// Agent names used for per-agent model overrides, tool budgets, and logging.
const (
	AgentReviewer       = "reviewer"
	AgentScoreEvaluator = "score_evaluator"
	AgentTaskGenerator  = "task_generator"
	AgentCodeRevision   = "code_revision"
)

// ModelConfig selects an LLM provider and model for one agent.
type ModelConfig struct {
	Provider    string  `json:"provider"` // "anthropic" or "openai"
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// SessionConfiguration is the immutable per-session input to ReviewWorkflow.
type SessionConfiguration struct {
	SessionID string `json:"session_id"`

	// WorkRoot is the absolute path of the website workspace all file
	// tools resolve relative paths against.
	WorkRoot string `json:"work_root"`

	// UserPrompt is the original site request, carried into every
	// reviewer and revision prompt so drift from it is scored.
	UserPrompt string `json:"user_prompt"`

	// MaxIterations bounds the number of review passes (default 5).
	MaxIterations int `json:"max_iterations"`

	// MaxRetries is the number of extra validated-call attempts after
	// the first (default 3, so 4 attempts total).
	MaxRetries int `json:"max_retries"`

	// SessionBudgetMinutes is the wall-clock budget for the whole
	// session (default 90). Checked before starting each pass.
	SessionBudgetMinutes int `json:"session_budget_minutes"`

	// ToolCallBudget caps tool invocations per agent per iteration
	// (default 30). Exceeding it yields a refusal string, not an error.
	ToolCallBudget int `json:"tool_call_budget"`

	// DefaultModel applies to agents without an entry in AgentModels.
	DefaultModel ModelConfig            `json:"default_model"`
	AgentModels  map[string]ModelConfig `json:"agent_models,omitempty"`
}

const (
	DefaultMaxIterations        = 5
	DefaultMaxRetries           = 3
	DefaultSessionBudgetMinutes = 90
	DefaultToolCallBudget       = 30
)

// DefaultSessionConfiguration returns a configuration with all defaults
// applied. WorkRoot, UserPrompt and SessionID must still be set by the caller.
func DefaultSessionConfiguration() SessionConfiguration {
	return SessionConfiguration{
		MaxIterations:        DefaultMaxIterations,
		MaxRetries:           DefaultMaxRetries,
		SessionBudgetMinutes: DefaultSessionBudgetMinutes,
		ToolCallBudget:       DefaultToolCallBudget,
		DefaultModel: ModelConfig{
			Provider:    "anthropic",
			Model:       "claude-sonnet-4-5",
			Temperature: 0.2,
			MaxTokens:   8192,
		},
	}
}

// ApplyDefaults fills zero-valued fields with the package defaults.
func (c *SessionConfiguration) ApplyDefaults() {
	if c.MaxIterations <= 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.SessionBudgetMinutes <= 0 {
		c.SessionBudgetMinutes = DefaultSessionBudgetMinutes
	}
	if c.ToolCallBudget <= 0 {
		c.ToolCallBudget = DefaultToolCallBudget
	}
	if c.DefaultModel.Provider == "" {
		c.DefaultModel = DefaultSessionConfiguration().DefaultModel
	}
}

// ModelFor returns the model configuration for the named agent, falling
// back to the session default.
func (c *SessionConfiguration) ModelFor(agent string) ModelConfig {
	if mc, ok := c.AgentModels[agent]; ok {
		return mc
	}
	return c.DefaultModel
}
