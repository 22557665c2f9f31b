// review.go implements ReviewWorkflow: a bounded lint / review / score /
// revise cycle over a static website workspace.
package workflow

import (
	"encoding/json"
	"strings"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/webcraft-agents/webcraft/internal/activities"
	"github.com/webcraft-agents/webcraft/internal/agents"
	"github.com/webcraft-agents/webcraft/internal/models"
	"github.com/webcraft-agents/webcraft/internal/reviewxml"
	"github.com/webcraft-agents/webcraft/internal/score"
	"github.com/webcraft-agents/webcraft/internal/tools"
)

const (
	llmActivityTimeout     = 5 * time.Minute
	toolActivityTimeout    = 2 * time.Minute
	lintActivityTimeout    = 10 * time.Minute
	displayActivityTimeout = 10 * time.Second

	// maxAgentTurns bounds the inner LLM+tool loop of a single agent so
	// a model that never stops calling tools cannot stall the pass.
	maxAgentTurns = 20
)

// fallbackScore is assigned to every category when the score evaluator
// exhausts its retries without producing parseable output. Mid-scale, so
// a broken evaluator forces another revision pass instead of a spurious
// approval.
const fallbackScore = 10

// ReviewWorkflow runs the review loop until the site is approved, the
// iteration cap is reached, or the session wall-clock budget runs out.
func ReviewWorkflow(ctx workflow.Context, input WorkflowInput) (WorkflowResult, error) {
	logger := workflow.GetLogger(ctx)
	input.Config.ApplyDefaults()
	if len(input.Policy.Categories()) == 0 {
		input.Policy = score.DefaultPolicy()
	}

	state := newLoopState(input)
	if err := workflow.SetQueryHandler(ctx, QueryGetStatus, func() (StatusSnapshot, error) {
		return state.snapshot(), nil
	}); err != nil {
		return WorkflowResult{}, err
	}

	start := workflow.Now(ctx)
	sessionBudget := time.Duration(input.Config.SessionBudgetMinutes) * time.Minute

	reason := ReasonMaxIterations
	approved := false

	for state.history.ShouldContinue() {
		if workflow.Now(ctx).Sub(start) >= sessionBudget {
			logger.Warn("session budget exhausted", "budget_minutes", input.Config.SessionBudgetMinutes)
			reason = ReasonBudgetExceeded
			break
		}

		iteration := state.history.IncrementIteration()
		state.budget.Reset()
		showBanner(ctx, iteration, input.Config.MaxIterations)

		// Lint stage. Command failures are folded into the report, so
		// the only error path here is activity infrastructure.
		state.phase = PhaseLinting
		var lintOut activities.LintActivityOutput
		if err := workflow.ExecuteActivity(lintCtx(ctx), "RunLinters", activities.LintActivityInput{
			WorkRoot: input.Config.WorkRoot,
			Config:   input.Lint,
		}).Get(ctx, &lintOut); err != nil {
			return WorkflowResult{}, err
		}

		// Review stage: read-only exploration, free-text verdict.
		state.phase = PhaseReviewing
		reviewText, err := runToolAgent(ctx, state, agentRun{
			Agent:        models.AgentReviewer,
			SystemPrompt: agents.ReviewerSystemPrompt(input.Config.UserPrompt),
			UserMessage:  agents.ReviewerTurnPrompt(lintOut.Formatted, state.history.FormatSummaryForReviewer(input.Policy)),
			ToolSpecs:    tools.ReadOnlySpecs(),
		})
		if err != nil {
			return WorkflowResult{}, err
		}

		// Score and task branches run concurrently; the decision step
		// waits for both.
		state.phase = PhaseScoring
		var (
			scores    map[string]int
			scoreErr  error
			scoreDone bool
			review    models.ReviewOutput
			taskErr   error
			tasksDone bool
		)
		workflow.Go(ctx, func(gctx workflow.Context) {
			scores, scoreErr = runScoreEvaluator(gctx, state, reviewText)
			scoreDone = true
		})
		workflow.Go(ctx, func(gctx workflow.Context) {
			review.Summary, review.Tasks, taskErr = runTaskGenerator(gctx, state, reviewText)
			tasksDone = true
		})
		if err := workflow.Await(ctx, func() bool { return scoreDone && tasksDone }); err != nil {
			return WorkflowResult{}, err
		}
		if scoreErr != nil {
			return WorkflowResult{}, scoreErr
		}
		if taskErr != nil {
			return WorkflowResult{}, taskErr
		}

		state.lastScores = scores
		state.lastSummary = review.Summary
		state.lastTasks = review.Tasks
		state.history.AddIterationResult(scores, taskLines(review.Tasks))

		showScoreReport(ctx, scores, input, state.history.LatestRegressionDetails())
		showTaskTable(ctx, review.Summary, review.Tasks)

		if !input.Policy.NeedsRevision(scores) {
			approved = input.Policy.Approved(scores)
			if approved {
				reason = ReasonApproved
			} else {
				reason = ReasonMeanBelowThreshold
			}
			break
		}
		if !state.history.ShouldContinue() {
			break
		}
		if len(review.Tasks) == 0 {
			logger.Info("no revision tasks generated, skipping revision", "iteration", iteration)
			continue
		}

		// Revision stage: the one agent allowed to write.
		state.phase = PhaseRevising
		fixes, err := runRevision(ctx, state, review)
		if err != nil {
			return WorkflowResult{}, err
		}
		state.history.RecordFixes(fixes)
	}

	state.phase = PhaseDone
	result := WorkflowResult{
		Approved:    approved,
		Reason:      reason,
		Iterations:  state.history.CurrentIteration,
		FinalScores: state.lastScores,
		Summary:     state.lastSummary,
		AllFixes:    state.history.AllFixesApplied(),
	}
	showSessionResult(ctx, result, input)
	return result, nil
}

// agentRun bundles the parameters of one inner agent loop.
type agentRun struct {
	Agent        string
	SystemPrompt string
	UserMessage  string
	ToolSpecs    []tools.ToolSpec
}

// runToolAgent drives one agent's LLM+tool loop to completion and
// returns the concatenated assistant text. Tool calls beyond the
// per-iteration budget receive a refusal result instead of executing.
func runToolAgent(ctx workflow.Context, state *loopState, run agentRun) (string, error) {
	logger := workflow.GetLogger(ctx)

	conversation := []models.ConversationItem{{
		Type:    models.ItemTypeUserMessage,
		Content: run.UserMessage,
	}}
	var transcript strings.Builder

	for turn := 0; turn < maxAgentTurns; turn++ {
		var llmOut activities.LLMActivityOutput
		err := workflow.ExecuteActivity(llmCtx(ctx), "InvokeAgent", activities.LLMActivityInput{
			Agent:        run.Agent,
			History:      conversation,
			ModelConfig:  state.input.Config.ModelFor(run.Agent),
			ToolSpecs:    run.ToolSpecs,
			SystemPrompt: run.SystemPrompt,
		}).Get(ctx, &llmOut)
		if err != nil {
			return "", err
		}

		conversation = append(conversation, llmOut.Items...)
		for _, item := range llmOut.Items {
			if item.Type == models.ItemTypeAssistantMessage && item.Content != "" {
				transcript.WriteString(item.Content)
				transcript.WriteString("\n")
			}
		}

		calls := functionCalls(llmOut.Items)
		if len(calls) == 0 {
			return strings.TrimSpace(transcript.String()), nil
		}

		for _, call := range calls {
			output := executeBudgetedTool(ctx, state, run.Agent, call)
			conversation = append(conversation, models.ConversationItem{
				Type:   models.ItemTypeFunctionCallOutput,
				CallID: call.CallID,
				Output: &output,
			})
		}
	}

	logger.Warn("agent exceeded max turns", "agent", run.Agent, "max_turns", maxAgentTurns)
	return strings.TrimSpace(transcript.String()), nil
}

// executeBudgetedTool runs one tool call through the tool activity,
// substituting a refusal result once the agent's budget is spent.
func executeBudgetedTool(ctx workflow.Context, state *loopState, agent string, call models.ConversationItem) models.FunctionCallOutputPayload {
	if !state.budget.Allow(agent) {
		success := false
		return models.FunctionCallOutputPayload{
			Content: tools.RefusalMessage(agent),
			Success: &success,
		}
	}

	args := map[string]interface{}{}
	if call.Arguments != "" {
		// Malformed arguments become a failed tool result the agent
		// can correct; the decode itself is deterministic.
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			success := false
			return models.FunctionCallOutputPayload{
				Content: "Error: invalid tool arguments: " + err.Error(),
				Success: &success,
			}
		}
	}

	var toolOut activities.ToolActivityOutput
	err := workflow.ExecuteActivity(toolCtx(ctx), "ExecuteTool", activities.ToolActivityInput{
		Invocation: tools.ToolInvocation{
			CallID:    call.CallID,
			ToolName:  call.Name,
			Arguments: args,
			WorkRoot:  state.input.Config.WorkRoot,
		},
	}).Get(ctx, &toolOut)
	if err != nil {
		success := false
		return models.FunctionCallOutputPayload{
			Content: "Error: tool execution failed: " + err.Error(),
			Success: &success,
		}
	}
	return toolOut.Output
}

// runScoreEvaluator converts the review into category scores, retrying
// schema failures with an error-bearing re-prompt. After the final
// failed attempt every category falls back to a mid-scale default.
func runScoreEvaluator(ctx workflow.Context, state *loopState, reviewText string) (map[string]int, error) {
	logger := workflow.GetLogger(ctx)
	required := state.input.Policy.Categories()

	var lastErr error
	for attempt := 0; attempt <= state.input.Config.MaxRetries; attempt++ {
		prompt := agents.ScoreEvaluatorTurnPrompt(reviewText)
		if attempt > 0 {
			prompt = agents.ScoreEvaluatorRetryPrompt(lastErr.Error(), reviewText)
		}

		text, err := invokePlainAgent(ctx, state, models.AgentScoreEvaluator, agents.ScoreEvaluatorSystemPrompt(), prompt)
		if err != nil {
			return nil, err
		}

		parsed, parseErr := reviewxml.ParseScores(reviewxml.ExtractTag(text, reviewxml.ScoreTag), required)
		if parseErr == nil {
			scores := make(map[string]int, len(parsed))
			for _, cs := range parsed {
				scores[cs.Name] = cs.Score
			}
			return scores, nil
		}
		if !reviewxml.IsSchemaError(parseErr) {
			return nil, parseErr
		}
		lastErr = parseErr
		logger.Warn("score evaluation attempt failed validation", "attempt", attempt+1, "error", parseErr)
	}

	logger.Warn("score evaluation failed after retries, using default scores", "error", lastErr)
	scores := make(map[string]int, len(required))
	for _, cat := range required {
		scores[cat] = fallbackScore
	}
	return scores, nil
}

// runTaskGenerator converts the review into a structured task list with
// the same retry discipline. After the final failed attempt the pass
// proceeds with no tasks and a failure summary.
func runTaskGenerator(ctx workflow.Context, state *loopState, reviewText string) (string, []models.Task, error) {
	logger := workflow.GetLogger(ctx)

	var lastErr error
	for attempt := 0; attempt <= state.input.Config.MaxRetries; attempt++ {
		prompt := agents.TaskGeneratorTurnPrompt(reviewText, state.history.FormatSummaryForTaskGenerator())
		if attempt > 0 {
			prompt = agents.TaskGeneratorRetryPrompt(lastErr.Error(), reviewText)
		}

		text, err := invokePlainAgent(ctx, state, models.AgentTaskGenerator, agents.TaskGeneratorSystemPrompt(), prompt)
		if err != nil {
			return "", nil, err
		}

		summary, tasks, parseErr := reviewxml.ParseTasks(reviewxml.ExtractTag(text, reviewxml.TaskTag), reviewxml.TaskTag)
		if parseErr == nil {
			return summary, tasks, nil
		}
		if !reviewxml.IsSchemaError(parseErr) {
			return "", nil, parseErr
		}
		lastErr = parseErr
		logger.Warn("task generation attempt failed validation", "attempt", attempt+1, "error", parseErr)
	}

	logger.Warn("task generation failed after retries, continuing without tasks", "error", lastErr)
	return "Task generation failed", nil, nil
}

// runRevision dispatches the code revision agent against the generated
// task list and extracts the fixes it reports.
func runRevision(ctx workflow.Context, state *loopState, review models.ReviewOutput) ([]string, error) {
	// The workspace listing is fetched through the tool activity so the
	// revision prompt starts from the real current tree.
	listing := executeBudgetedTool(ctx, state, models.AgentCodeRevision, models.ConversationItem{
		Type:      models.ItemTypeFunctionCall,
		CallID:    "workspace-exploration",
		Name:      "list_files",
		Arguments: `{"recursive": true}`,
	})

	response, err := runToolAgent(ctx, state, agentRun{
		Agent: models.AgentCodeRevision,
		SystemPrompt: agents.CodeRevisionSystemPrompt(
			state.history.CurrentIteration,
			state.input.Config.MaxIterations,
			state.history.AllFixesApplied(),
		),
		UserMessage: agents.CodeRevisionTurnPrompt(listing.Content, agents.RenderTaskList(review.Summary, review.Tasks)),
		ToolSpecs:   tools.RevisionSpecs(),
	})
	if err != nil {
		return nil, err
	}
	return reviewxml.ExtractFixes(response), nil
}

// invokePlainAgent performs one tool-less LLM call and returns the
// assistant text.
func invokePlainAgent(ctx workflow.Context, state *loopState, agent, systemPrompt, userMessage string) (string, error) {
	var llmOut activities.LLMActivityOutput
	err := workflow.ExecuteActivity(llmCtx(ctx), "InvokeAgent", activities.LLMActivityInput{
		Agent: agent,
		History: []models.ConversationItem{{
			Type:    models.ItemTypeUserMessage,
			Content: userMessage,
		}},
		ModelConfig:  state.input.Config.ModelFor(agent),
		SystemPrompt: systemPrompt,
	}).Get(ctx, &llmOut)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, item := range llmOut.Items {
		if item.Type == models.ItemTypeAssistantMessage {
			b.WriteString(item.Content)
		}
	}
	return b.String(), nil
}

// functionCalls filters the model's response items down to tool calls.
func functionCalls(items []models.ConversationItem) []models.ConversationItem {
	var calls []models.ConversationItem
	for _, item := range items {
		if item.Type == models.ItemTypeFunctionCall {
			calls = append(calls, item)
		}
	}
	return calls
}

func taskLines(tasks []models.Task) []string {
	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		lines = append(lines, t.Description)
	}
	return lines
}

// Activity option helpers. LLM calls treat Fatal application errors as
// non-retryable; everything else follows the default backoff.

func llmCtx(ctx workflow.Context) workflow.Context {
	return workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: llmActivityTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts:        3,
			NonRetryableErrorTypes: []string{string(models.ErrorTypeFatal)},
		},
	})
}

func toolCtx(ctx workflow.Context) workflow.Context {
	return workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: toolActivityTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts:        2,
			NonRetryableErrorTypes: []string{string(models.ErrorTypeFatal)},
		},
	})
}

func lintCtx(ctx workflow.Context) workflow.Context {
	return workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: lintActivityTimeout,
		RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 2},
	})
}

func displayCtx(ctx workflow.Context) workflow.Context {
	return workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: displayActivityTimeout,
		RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 1},
	})
}

// Display helpers are best-effort: a failed render never fails the loop.

func showBanner(ctx workflow.Context, iteration, maxIterations int) {
	_ = workflow.ExecuteActivity(displayCtx(ctx), "ShowIterationBanner", activities.BannerInput{
		Iteration:     iteration,
		MaxIterations: maxIterations,
	}).Get(ctx, nil)
}

func showScoreReport(ctx workflow.Context, scores map[string]int, input WorkflowInput, regression string) {
	_ = workflow.ExecuteActivity(displayCtx(ctx), "ShowScoreReport", activities.ScoreReportInput{
		Scores:     scores,
		Policy:     input.Policy,
		Regression: regression,
	}).Get(ctx, nil)
}

func showTaskTable(ctx workflow.Context, summary string, tasks []models.Task) {
	_ = workflow.ExecuteActivity(displayCtx(ctx), "ShowTaskTable", activities.TaskTableInput{
		Summary: summary,
		Tasks:   tasks,
	}).Get(ctx, nil)
}

func showSessionResult(ctx workflow.Context, result WorkflowResult, input WorkflowInput) {
	_ = workflow.ExecuteActivity(displayCtx(ctx), "ShowSessionResult", activities.SessionResultInput{
		Approved:    result.Approved,
		Iterations:  result.Iterations,
		FinalScores: result.FinalScores,
		Policy:      input.Policy,
		Summary:     result.Summary,
	}).Get(ctx, nil)
}
