package activities

import (
	"context"

	"github.com/webcraft-agents/webcraft/internal/display"
	"github.com/webcraft-agents/webcraft/internal/models"
	"github.com/webcraft-agents/webcraft/internal/score"
)

// BannerInput announces the start of a review pass.
type BannerInput struct {
	Iteration     int `json:"iteration"`
	MaxIterations int `json:"max_iterations"`
}

// ScoreReportInput shows the evaluator's verdict for one pass.
type ScoreReportInput struct {
	Scores     map[string]int     `json:"scores"`
	Policy     score.PolicyConfig `json:"policy"`
	Regression string             `json:"regression,omitempty"`
}

// TaskTableInput shows the generated revision tasks.
type TaskTableInput struct {
	Summary string        `json:"summary"`
	Tasks   []models.Task `json:"tasks"`
}

// SessionResultInput shows the loop's terminal state.
type SessionResultInput struct {
	Approved    bool               `json:"approved"`
	Iterations  int                `json:"iterations"`
	FinalScores map[string]int     `json:"final_scores,omitempty"`
	Policy      score.PolicyConfig `json:"policy"`
	Summary     string             `json:"summary,omitempty"`
}

// DisplayActivities render loop progress on the worker's terminal.
// They are observational only: they never return errors, so a broken
// terminal cannot fail the loop.
type DisplayActivities struct {
	renderer *display.Renderer
}

// NewDisplayActivities creates a new DisplayActivities instance.
func NewDisplayActivities(renderer *display.Renderer) *DisplayActivities {
	return &DisplayActivities{renderer: renderer}
}

// ShowIterationBanner prints the start-of-pass banner.
func (a *DisplayActivities) ShowIterationBanner(ctx context.Context, input BannerInput) error {
	a.renderer.IterationBanner(input.Iteration, input.MaxIterations)
	return nil
}

// ShowScoreReport prints per-category scores and any regression warning.
func (a *DisplayActivities) ShowScoreReport(ctx context.Context, input ScoreReportInput) error {
	a.renderer.ScoreReport(input.Scores, input.Policy, input.Regression)
	return nil
}

// ShowTaskTable prints the revision task table.
func (a *DisplayActivities) ShowTaskTable(ctx context.Context, input TaskTableInput) error {
	a.renderer.TaskTable(input.Summary, input.Tasks)
	return nil
}

// ShowSessionResult prints the final approved / follow-up banner.
func (a *DisplayActivities) ShowSessionResult(ctx context.Context, input SessionResultInput) error {
	a.renderer.SessionResult(input.Approved, input.Iterations, input.FinalScores, input.Policy, input.Summary)
	return nil
}
