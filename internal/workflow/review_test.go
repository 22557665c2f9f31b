package workflow

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/testsuite"

	"github.com/webcraft-agents/webcraft/internal/activities"
	"github.com/webcraft-agents/webcraft/internal/lint"
	"github.com/webcraft-agents/webcraft/internal/models"
	"github.com/webcraft-agents/webcraft/internal/score"
)

// Stub activity functions for the test environment. OnActivity mocks
// override the interesting ones; the display stubs run as-is.

func InvokeAgent(_ context.Context, _ activities.LLMActivityInput) (activities.LLMActivityOutput, error) {
	panic("stub: should be mocked")
}

func ExecuteTool(_ context.Context, _ activities.ToolActivityInput) (activities.ToolActivityOutput, error) {
	panic("stub: should be mocked")
}

func RunLinters(_ context.Context, _ activities.LintActivityInput) (activities.LintActivityOutput, error) {
	panic("stub: should be mocked")
}

func ShowIterationBanner(_ context.Context, _ activities.BannerInput) error { return nil }

func ShowScoreReport(_ context.Context, _ activities.ScoreReportInput) error { return nil }

func ShowTaskTable(_ context.Context, _ activities.TaskTableInput) error { return nil }

func ShowSessionResult(_ context.Context, _ activities.SessionResultInput) error { return nil }

type ReviewWorkflowTestSuite struct {
	suite.Suite
	testsuite.WorkflowTestSuite
	env *testsuite.TestWorkflowEnvironment
}

func TestReviewWorkflowSuite(t *testing.T) {
	suite.Run(t, new(ReviewWorkflowTestSuite))
}

func (s *ReviewWorkflowTestSuite) SetupTest() {
	s.env = s.NewTestWorkflowEnvironment()
	s.env.RegisterActivity(InvokeAgent)
	s.env.RegisterActivity(ExecuteTool)
	s.env.RegisterActivity(RunLinters)
	s.env.RegisterActivity(ShowIterationBanner)
	s.env.RegisterActivity(ShowScoreReport)
	s.env.RegisterActivity(ShowTaskTable)
	s.env.RegisterActivity(ShowSessionResult)
}

func (s *ReviewWorkflowTestSuite) AfterTest(suiteName, testName string) {
	s.env.AssertExpectations(s.T())
}

func testInput() WorkflowInput {
	return WorkflowInput{
		Config: models.SessionConfiguration{
			SessionID:            "sess-test-1",
			WorkRoot:             "/tmp/site",
			UserPrompt:           "Build a coffee shop landing page",
			MaxIterations:        5,
			MaxRetries:           3,
			SessionBudgetMinutes: 90,
			ToolCallBudget:       30,
			DefaultModel: models.ModelConfig{
				Provider:  "anthropic",
				Model:     "claude-sonnet-4-5",
				MaxTokens: 4096,
			},
		},
		Lint:   lint.Config{Commands: []lint.Command{{Name: "oxlint", Command: "npx oxlint ."}}},
		Policy: score.DefaultPolicy(),
	}
}

func assistantResponse(content string) activities.LLMActivityOutput {
	return activities.LLMActivityOutput{
		Items: []models.ConversationItem{
			{Type: models.ItemTypeAssistantMessage, Content: content},
		},
		FinishReason: models.FinishReasonStop,
	}
}

func lintOutput(formatted string) activities.LintActivityOutput {
	return activities.LintActivityOutput{
		Report: lint.Report{Results: []lint.Result{
			{Name: "oxlint", Success: true, Output: "clean"},
		}},
		Formatted: formatted,
	}
}

// scoreXML renders a review_scores document with every policy category
// at the given value.
func scoreXML(value int) string {
	var b strings.Builder
	b.WriteString("<review_scores>\n")
	for _, cat := range score.DefaultPolicy().Categories() {
		fmt.Fprintf(&b, "<%s><score>%d</score></%s>\n", cat, value, cat)
	}
	b.WriteString("</review_scores>")
	return b.String()
}

const tasksXML = `<revision_tasks>
<summary>Navigation and contrast issues.</summary>
<tasks>
<task>
<files>index.html</files>
<description>Fix broken nav anchor</description>
<priority>HIGH</priority>
</task>
</tasks>
</revision_tasks>`

const revisionResponse = `All tasks handled.
<fixes_applied>
<fix>Fixed broken nav anchor in index.html</fix>
</fixes_applied>`

// dispatchAgents builds an InvokeAgent mock handler that routes by
// agent name. Per-agent handlers may be stateful.
func dispatchAgents(handlers map[string]func(activities.LLMActivityInput) activities.LLMActivityOutput) func(context.Context, activities.LLMActivityInput) (activities.LLMActivityOutput, error) {
	return func(_ context.Context, input activities.LLMActivityInput) (activities.LLMActivityOutput, error) {
		handler, ok := handlers[input.Agent]
		if !ok {
			return activities.LLMActivityOutput{}, fmt.Errorf("unexpected agent: %s", input.Agent)
		}
		return handler(input), nil
	}
}

func respondWith(content string) func(activities.LLMActivityInput) activities.LLMActivityOutput {
	return func(activities.LLMActivityInput) activities.LLMActivityOutput {
		return assistantResponse(content)
	}
}

func (s *ReviewWorkflowTestSuite) TestApprovedFirstIteration() {
	s.env.OnActivity("RunLinters", mock.Anything, mock.Anything).
		Return(lintOutput("\nLinter Results:\noxlint: ✓ PASS\nclean"), nil).Once()

	s.env.OnActivity("InvokeAgent", mock.Anything, mock.Anything).
		Return(dispatchAgents(map[string]func(activities.LLMActivityInput) activities.LLMActivityOutput{
			models.AgentReviewer:       respondWith("The site is polished and complete."),
			models.AgentScoreEvaluator: respondWith(scoreXML(18)),
			models.AgentTaskGenerator:  respondWith(tasksXML),
		}))

	s.env.ExecuteWorkflow(ReviewWorkflow, testInput())

	require.True(s.T(), s.env.IsWorkflowCompleted())
	var result WorkflowResult
	require.NoError(s.T(), s.env.GetWorkflowResult(&result))
	assert.True(s.T(), result.Approved)
	assert.Equal(s.T(), ReasonApproved, result.Reason)
	assert.Equal(s.T(), 1, result.Iterations)
	assert.Equal(s.T(), 18, result.FinalScores[score.CategoryCodeValidity])
	assert.Equal(s.T(), "Navigation and contrast issues.", result.Summary)
}

func (s *ReviewWorkflowTestSuite) TestRevisionThenApproval() {
	s.env.OnActivity("RunLinters", mock.Anything, mock.Anything).
		Return(lintOutput("\nLinter Results:\noxlint: ✓ PASS"), nil).Times(2)

	// Workspace exploration before the revision agent runs.
	s.env.OnActivity("ExecuteTool", mock.Anything, mock.Anything).
		Return(func(_ context.Context, input activities.ToolActivityInput) (activities.ToolActivityOutput, error) {
			s.Equal("list_files", input.Invocation.ToolName)
			success := true
			return activities.ToolActivityOutput{
				CallID: input.Invocation.CallID,
				Output: models.FunctionCallOutputPayload{
					Content: "Files in '.' (recursive):\n  index.html",
					Success: &success,
				},
			}, nil
		}).Once()

	scoreCalls := 0
	s.env.OnActivity("InvokeAgent", mock.Anything, mock.Anything).
		Return(dispatchAgents(map[string]func(activities.LLMActivityInput) activities.LLMActivityOutput{
			models.AgentReviewer: respondWith("Several issues remain."),
			models.AgentScoreEvaluator: func(activities.LLMActivityInput) activities.LLMActivityOutput {
				scoreCalls++
				if scoreCalls == 1 {
					return assistantResponse(scoreXML(12))
				}
				return assistantResponse(scoreXML(19))
			},
			models.AgentTaskGenerator: respondWith(tasksXML),
			models.AgentCodeRevision:  respondWith(revisionResponse),
		}))

	s.env.ExecuteWorkflow(ReviewWorkflow, testInput())

	require.True(s.T(), s.env.IsWorkflowCompleted())
	var result WorkflowResult
	require.NoError(s.T(), s.env.GetWorkflowResult(&result))
	assert.True(s.T(), result.Approved)
	assert.Equal(s.T(), 2, result.Iterations)
	assert.Equal(s.T(), []string{"Fixed broken nav anchor in index.html"}, result.AllFixes)
}

func (s *ReviewWorkflowTestSuite) TestScoreEvaluatorRetriesOnMalformedXML() {
	input := testInput()
	input.Config.MaxIterations = 1

	s.env.OnActivity("RunLinters", mock.Anything, mock.Anything).
		Return(lintOutput(""), nil).Once()

	scoreCalls := 0
	s.env.OnActivity("InvokeAgent", mock.Anything, mock.Anything).
		Return(dispatchAgents(map[string]func(activities.LLMActivityInput) activities.LLMActivityOutput{
			models.AgentReviewer: respondWith("Decent but flawed."),
			models.AgentScoreEvaluator: func(in activities.LLMActivityInput) activities.LLMActivityOutput {
				scoreCalls++
				if scoreCalls == 1 {
					return assistantResponse("<review_scores><oops></review_scores>")
				}
				// The retry prompt must carry the failure back.
				lastUser := in.History[len(in.History)-1].Content
				s.Contains(lastUser, "<last_attempt>")
				return assistantResponse(scoreXML(18))
			},
			models.AgentTaskGenerator: respondWith(tasksXML),
		}))

	s.env.ExecuteWorkflow(ReviewWorkflow, input)

	require.True(s.T(), s.env.IsWorkflowCompleted())
	var result WorkflowResult
	require.NoError(s.T(), s.env.GetWorkflowResult(&result))
	assert.True(s.T(), result.Approved)
	assert.Equal(s.T(), 2, scoreCalls)
}

func (s *ReviewWorkflowTestSuite) TestDegradedScoresAfterExhaustedRetries() {
	input := testInput()
	input.Config.MaxIterations = 1
	input.Config.MaxRetries = 1

	s.env.OnActivity("RunLinters", mock.Anything, mock.Anything).
		Return(lintOutput(""), nil).Once()

	s.env.OnActivity("InvokeAgent", mock.Anything, mock.Anything).
		Return(dispatchAgents(map[string]func(activities.LLMActivityInput) activities.LLMActivityOutput{
			models.AgentReviewer:       respondWith("Unclear."),
			models.AgentScoreEvaluator: respondWith("no xml here at all"),
			models.AgentTaskGenerator:  respondWith(tasksXML),
		}))

	s.env.ExecuteWorkflow(ReviewWorkflow, input)

	require.True(s.T(), s.env.IsWorkflowCompleted())
	var result WorkflowResult
	require.NoError(s.T(), s.env.GetWorkflowResult(&result))
	assert.False(s.T(), result.Approved)
	assert.Equal(s.T(), ReasonMaxIterations, result.Reason)
	for _, cat := range score.DefaultPolicy().Categories() {
		assert.Equal(s.T(), 10, result.FinalScores[cat], cat)
	}
}

func (s *ReviewWorkflowTestSuite) TestDegradedTasksSkipRevision() {
	input := testInput()
	input.Config.MaxIterations = 2
	input.Config.MaxRetries = 0

	s.env.OnActivity("RunLinters", mock.Anything, mock.Anything).
		Return(lintOutput(""), nil).Times(2)

	s.env.OnActivity("InvokeAgent", mock.Anything, mock.Anything).
		Return(dispatchAgents(map[string]func(activities.LLMActivityInput) activities.LLMActivityOutput{
			models.AgentReviewer:       respondWith("Needs work."),
			models.AgentScoreEvaluator: respondWith(scoreXML(12)),
			models.AgentTaskGenerator:  respondWith("not parseable"),
		}))

	s.env.ExecuteWorkflow(ReviewWorkflow, input)

	require.True(s.T(), s.env.IsWorkflowCompleted())
	var result WorkflowResult
	require.NoError(s.T(), s.env.GetWorkflowResult(&result))
	// Revision never ran (no ExecuteTool expectations), no fixes recorded.
	assert.False(s.T(), result.Approved)
	assert.Equal(s.T(), 2, result.Iterations)
	assert.Empty(s.T(), result.AllFixes)
	assert.Equal(s.T(), "Task generation failed", result.Summary)
}

func (s *ReviewWorkflowTestSuite) TestSessionBudgetStopsLoop() {
	input := testInput()
	input.Config.SessionBudgetMinutes = 1

	// The first pass's lint alone outlasts the budget; no second pass
	// may start even though iterations remain.
	s.env.OnActivity("RunLinters", mock.Anything, mock.Anything).
		After(2*time.Minute).
		Return(lintOutput(""), nil).Once()

	s.env.OnActivity("InvokeAgent", mock.Anything, mock.Anything).
		Return(dispatchAgents(map[string]func(activities.LLMActivityInput) activities.LLMActivityOutput{
			models.AgentReviewer:       respondWith("Needs work."),
			models.AgentScoreEvaluator: respondWith(scoreXML(12)),
			models.AgentTaskGenerator:  respondWith("not parseable"),
		}))

	s.env.ExecuteWorkflow(ReviewWorkflow, input)

	require.True(s.T(), s.env.IsWorkflowCompleted())
	var result WorkflowResult
	require.NoError(s.T(), s.env.GetWorkflowResult(&result))
	assert.False(s.T(), result.Approved)
	assert.Equal(s.T(), ReasonBudgetExceeded, result.Reason)
	assert.Equal(s.T(), 1, result.Iterations)
}

func (s *ReviewWorkflowTestSuite) TestZeroPolicyFallsBackToDefault() {
	input := testInput()
	input.Config.MaxIterations = 1
	input.Policy = score.PolicyConfig{}

	s.env.OnActivity("RunLinters", mock.Anything, mock.Anything).
		Return(lintOutput(""), nil).Once()

	s.env.OnActivity("InvokeAgent", mock.Anything, mock.Anything).
		Return(dispatchAgents(map[string]func(activities.LLMActivityInput) activities.LLMActivityOutput{
			models.AgentReviewer:       respondWith("Needs work."),
			models.AgentScoreEvaluator: respondWith(scoreXML(12)),
			models.AgentTaskGenerator:  respondWith("not parseable"),
		}))

	s.env.ExecuteWorkflow(ReviewWorkflow, input)

	require.True(s.T(), s.env.IsWorkflowCompleted())
	var result WorkflowResult
	require.NoError(s.T(), s.env.GetWorkflowResult(&result))
	// A score of 12 must fail the default thresholds; with an empty
	// policy it would vacuously pass and end the session early.
	assert.False(s.T(), result.Approved)
	assert.Equal(s.T(), ReasonMaxIterations, result.Reason)
	for _, cat := range score.DefaultPolicy().Categories() {
		assert.Equal(s.T(), 12, result.FinalScores[cat], cat)
	}
}

func (s *ReviewWorkflowTestSuite) TestReviewerToolLoop() {
	input := testInput()
	input.Config.MaxIterations = 1

	s.env.OnActivity("RunLinters", mock.Anything, mock.Anything).
		Return(lintOutput(""), nil).Once()

	s.env.OnActivity("ExecuteTool", mock.Anything, mock.Anything).
		Return(func(_ context.Context, in activities.ToolActivityInput) (activities.ToolActivityOutput, error) {
			s.Equal("read_file", in.Invocation.ToolName)
			s.Equal("/tmp/site", in.Invocation.WorkRoot)
			success := true
			return activities.ToolActivityOutput{
				CallID: in.Invocation.CallID,
				Output: models.FunctionCallOutputPayload{Content: "File: index.html\n     1\t<html>", Success: &success},
			}, nil
		}).Once()

	reviewerCalls := 0
	s.env.OnActivity("InvokeAgent", mock.Anything, mock.Anything).
		Return(dispatchAgents(map[string]func(activities.LLMActivityInput) activities.LLMActivityOutput{
			models.AgentReviewer: func(in activities.LLMActivityInput) activities.LLMActivityOutput {
				reviewerCalls++
				if reviewerCalls == 1 {
					return activities.LLMActivityOutput{
						Items: []models.ConversationItem{{
							Type:      models.ItemTypeFunctionCall,
							CallID:    "call-1",
							Name:      "read_file",
							Arguments: `{"path": "index.html"}`,
						}},
						FinishReason: models.FinishReasonToolCalls,
					}
				}
				// Tool result must be in the follow-up history.
				last := in.History[len(in.History)-1]
				s.Equal(models.ItemTypeFunctionCallOutput, last.Type)
				s.Equal("call-1", last.CallID)
				return assistantResponse("Reviewed after reading index.html.")
			},
			models.AgentScoreEvaluator: respondWith(scoreXML(18)),
			models.AgentTaskGenerator:  respondWith(tasksXML),
		}))

	s.env.ExecuteWorkflow(ReviewWorkflow, input)

	require.True(s.T(), s.env.IsWorkflowCompleted())
	var result WorkflowResult
	require.NoError(s.T(), s.env.GetWorkflowResult(&result))
	assert.True(s.T(), result.Approved)
	assert.Equal(s.T(), 2, reviewerCalls)
}
