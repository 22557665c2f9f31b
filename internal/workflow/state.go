// Package workflow contains the Temporal workflow driving the review
// and revision loop.
//
// state.go holds the workflow's input, result, and queryable state types.
package workflow

import (
	"github.com/webcraft-agents/webcraft/internal/history"
	"github.com/webcraft-agents/webcraft/internal/lint"
	"github.com/webcraft-agents/webcraft/internal/models"
	"github.com/webcraft-agents/webcraft/internal/score"
	"github.com/webcraft-agents/webcraft/internal/tools"
)

// Handler name constants for ReviewWorkflow.
const (
	// QueryGetStatus returns a StatusSnapshot of loop progress.
	QueryGetStatus = "get_status"
)

// LoopPhase labels where in the pass the workflow currently is.
type LoopPhase string

const (
	PhaseLinting   LoopPhase = "linting"
	PhaseReviewing LoopPhase = "reviewing"
	PhaseScoring   LoopPhase = "scoring"
	PhaseRevising  LoopPhase = "revising"
	PhaseDone      LoopPhase = "done"
)

// Terminal reasons reported in WorkflowResult.Reason.
const (
	ReasonApproved = "approved"
	// ReasonMeanBelowThreshold: every category cleared its threshold so no
	// revision is justified, but the mean gate failed.
	ReasonMeanBelowThreshold = "mean_below_threshold"
	ReasonMaxIterations      = "max_iterations_reached"
	ReasonBudgetExceeded     = "session_budget_exceeded"
)

// WorkflowInput is the complete input to ReviewWorkflow.
type WorkflowInput struct {
	Config models.SessionConfiguration `json:"config"`
	Lint   lint.Config                 `json:"lint"`
	Policy score.PolicyConfig          `json:"policy"`
}

// WorkflowResult is the terminal outcome of the loop.
type WorkflowResult struct {
	Approved    bool           `json:"approved"`
	Reason      string         `json:"reason"`
	Iterations  int            `json:"iterations"`
	FinalScores map[string]int `json:"final_scores,omitempty"`
	Summary     string         `json:"summary,omitempty"`
	AllFixes    []string       `json:"all_fixes,omitempty"`
}

// StatusSnapshot is the queryable view of loop progress.
type StatusSnapshot struct {
	SessionID     string         `json:"session_id"`
	Iteration     int            `json:"iteration"`
	MaxIterations int            `json:"max_iterations"`
	Phase         LoopPhase      `json:"phase"`
	LastScores    map[string]int `json:"last_scores,omitempty"`
	LastSummary   string         `json:"last_summary,omitempty"`
	Regression    string         `json:"regression,omitempty"`
}

// loopState is the workflow's mutable state. It is touched only from
// the main workflow goroutine (the fan-out branches write their results
// through dedicated fields guarded by completion flags), keeping
// replay deterministic without locks.
type loopState struct {
	input   WorkflowInput
	history *history.Context
	budget  *tools.Budget
	phase   LoopPhase

	lastScores  map[string]int
	lastSummary string
	lastTasks   []models.Task
}

func newLoopState(input WorkflowInput) *loopState {
	return &loopState{
		input:   input,
		history: history.NewContext(input.Config.MaxIterations),
		budget:  tools.NewBudget(input.Config.ToolCallBudget),
		phase:   PhaseLinting,
	}
}

func (s *loopState) snapshot() StatusSnapshot {
	return StatusSnapshot{
		SessionID:     s.input.Config.SessionID,
		Iteration:     s.history.CurrentIteration,
		MaxIterations: s.input.Config.MaxIterations,
		Phase:         s.phase,
		LastScores:    s.lastScores,
		LastSummary:   s.lastSummary,
		Regression:    s.history.LatestRegressionDetails(),
	}
}
