package activities

import (
	"context"

	"go.temporal.io/sdk/activity"

	"github.com/webcraft-agents/webcraft/internal/lint"
)

// LintActivityInput names the workspace to lint and the commands to run.
type LintActivityInput struct {
	WorkRoot string      `json:"work_root"`
	Config   lint.Config `json:"config"`
}

// LintActivityOutput carries the per-command results plus the formatted
// report the reviewer sees.
type LintActivityOutput struct {
	Report    lint.Report `json:"report"`
	Formatted string      `json:"formatted"`
}

// LintActivities contains the deterministic linter stage.
type LintActivities struct{}

// NewLintActivities creates a new LintActivities instance.
func NewLintActivities() *LintActivities {
	return &LintActivities{}
}

// RunLinters runs every enabled linter command against the workspace.
// Individual command failures (missing binary, timeout) are recorded in
// the report, not raised: diagnostics are advisory input to the
// reviewer, never a reason to stop the loop.
func (a *LintActivities) RunLinters(ctx context.Context, input LintActivityInput) (LintActivityOutput, error) {
	logger := activity.GetLogger(ctx)

	runner := &lint.Runner{WorkRoot: input.WorkRoot, Config: input.Config}
	report := runner.Run(ctx)

	for _, result := range report.Results {
		logger.Info("linter finished", "name", result.Name, "success", result.Success, "output_bytes", len(result.Output))
	}

	return LintActivityOutput{
		Report:    report,
		Formatted: report.FormatForReviewer(),
	}, nil
}
