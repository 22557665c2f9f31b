// E2E tests for webcraft review sessions.
//
// CRITICAL: These tests use REAL services:
// - Real LLM API (requires ANTHROPIC_API_KEY or OPENAI_API_KEY)
// - Real Temporal server (requires 'temporal server start-dev')
// - Real worker (must be running)
//
// Prerequisites:
// 1. Terminal 1: temporal server start-dev
// 2. Terminal 2: export ANTHROPIC_API_KEY=sk-... && go run cmd/worker/main.go
// 3. Terminal 3: export ANTHROPIC_API_KEY=sk-... && go test -v ./e2e/...
package e2e

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"

	"github.com/webcraft-agents/webcraft/internal/lint"
	"github.com/webcraft-agents/webcraft/internal/models"
	"github.com/webcraft-agents/webcraft/internal/score"
	"github.com/webcraft-agents/webcraft/internal/workflow"
)

const (
	TaskQueue        = "webcraft-review"
	TemporalHostPort = "localhost:7233"
	WorkflowTimeout  = 20 * time.Minute
)

func dialTemporal(t *testing.T) client.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}
	if os.Getenv("ANTHROPIC_API_KEY") == "" && os.Getenv("OPENAI_API_KEY") == "" {
		t.Skip("No LLM provider API key set, skipping E2E test")
	}
	c, err := client.Dial(client.Options{HostPort: TemporalHostPort})
	require.NoError(t, err, "Failed to connect to Temporal server. Is it running?")
	return c
}

// writeWorkspace creates a small static site for the agents to review.
// The page carries deliberate problems (missing viewport meta, empty alt,
// dead anchor) so at least one revision pass is plausible.
func writeWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"index.html": `<!DOCTYPE html>
<html lang="en">
<head><title>Blue Bean Coffee</title><link rel="stylesheet" href="styles.css"></head>
<body>
<nav><a href="#menu">Menu</a> <a href="#hours">Hours</a> <a href="#contact">Contact</a></nav>
<h1>Blue Bean Coffee</h1>
<img src="hero.svg" alt="">
<section id="menu"><h2>Menu</h2><p>Espresso, filter, cold brew.</p></section>
<section id="hours"><h2>Hours</h2><p>Mon-Fri 7-18, Sat-Sun 8-16.</p></section>
<script src="script.js"></script>
</body>
</html>
`,
		"styles.css": "body { font-family: sans-serif; margin: 0; }\nnav a { padding: 4px; }\n",
		"script.js":  "document.querySelectorAll('nav a').forEach(function (a) {\n  a.addEventListener('click', function () {});\n});\n",
		"hero.svg":   `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

// noopLintConfig avoids npx-based linters so the test does not depend on
// a Node toolchain being installed on the worker host.
func noopLintConfig() lint.Config {
	return lint.Config{
		Commands: []lint.Command{
			{Name: "noop", Command: "true"},
		},
	}
}

func testInput(workflowID, workroot, prompt string, maxIterations int) workflow.WorkflowInput {
	cfg := models.DefaultSessionConfiguration()
	cfg.SessionID = workflowID
	cfg.WorkRoot = workroot
	cfg.UserPrompt = prompt
	cfg.MaxIterations = maxIterations
	return workflow.WorkflowInput{
		Config: cfg,
		Lint:   noopLintConfig(),
		Policy: score.DefaultPolicy(),
	}
}

// TestReviewSession_CompletesWithinIterationCap runs a full review
// session against a small site and checks the terminal result shape.
func TestReviewSession_CompletesWithinIterationCap(t *testing.T) {
	c := dialTemporal(t)
	defer c.Close()

	workroot := writeWorkspace(t)
	workflowID := "test-review-" + uuid.New().String()[:8]
	input := testInput(workflowID, workroot,
		"Build a single-page site for Blue Bean Coffee with menu, hours, and contact sections.", 2)

	t.Logf("Starting workflow: %s", workflowID)
	t.Logf("Workspace: %s", workroot)

	ctx, cancel := context.WithTimeout(context.Background(), WorkflowTimeout)
	defer cancel()

	run, err := c.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID: workflowID, TaskQueue: TaskQueue,
		WorkflowRunTimeout: WorkflowTimeout,
	}, "ReviewWorkflow", input)
	require.NoError(t, err, "Failed to start workflow")

	var result workflow.WorkflowResult
	err = run.Get(ctx, &result)
	require.NoError(t, err, "Workflow execution failed")

	assert.GreaterOrEqual(t, result.Iterations, 1)
	assert.LessOrEqual(t, result.Iterations, 2)
	assert.NotEmpty(t, result.Reason)
	if result.Approved {
		assert.Equal(t, workflow.ReasonApproved, result.Reason)
	}
	// Every policy category must be scored, even on a degraded pass.
	for _, cat := range score.DefaultPolicy().Categories() {
		assert.Contains(t, result.FinalScores, cat)
	}

	t.Logf("Approved: %v, Reason: %s, Iterations: %d", result.Approved, result.Reason, result.Iterations)
	t.Logf("Scores: %v", result.FinalScores)
	t.Logf("Fixes: %v", result.AllFixes)
}

// TestReviewSession_StatusQuery starts a session and queries progress
// while it runs.
func TestReviewSession_StatusQuery(t *testing.T) {
	c := dialTemporal(t)
	defer c.Close()

	workroot := writeWorkspace(t)
	workflowID := "test-review-status-" + uuid.New().String()[:8]
	input := testInput(workflowID, workroot,
		"Build a single-page site for Blue Bean Coffee with menu, hours, and contact sections.", 1)

	ctx, cancel := context.WithTimeout(context.Background(), WorkflowTimeout)
	defer cancel()

	run, err := c.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID: workflowID, TaskQueue: TaskQueue,
		WorkflowRunTimeout: WorkflowTimeout,
	}, "ReviewWorkflow", input)
	require.NoError(t, err, "Failed to start workflow")

	// Give the first pass a moment to begin before querying.
	time.Sleep(3 * time.Second)

	resp, err := c.QueryWorkflow(ctx, workflowID, "", workflow.QueryGetStatus)
	require.NoError(t, err, "Failed to query status")

	var snap workflow.StatusSnapshot
	require.NoError(t, resp.Get(&snap))
	assert.Equal(t, workflowID, snap.SessionID)
	assert.Equal(t, 1, snap.MaxIterations)
	assert.GreaterOrEqual(t, snap.Iteration, 1)

	t.Logf("Status: iteration %d/%d, phase %s", snap.Iteration, snap.MaxIterations, snap.Phase)

	var result workflow.WorkflowResult
	require.NoError(t, run.Get(ctx, &result), "Workflow execution failed")
	assert.Equal(t, 1, result.Iterations)
}
