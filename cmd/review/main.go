// CLI client for webcraft review workflows.
//
// Sub-commands:
//
//	start   --workroot <dir> --prompt "..."  Start a review session, print workflow ID
//	status  --workflow-id <id>               Query loop progress
//	result  --workflow-id <id>               Wait for the session and print the outcome
//	watch   --workflow-id <id>               Poll progress until the session closes
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"gopkg.in/yaml.v3"

	"github.com/webcraft-agents/webcraft/internal/lint"
	"github.com/webcraft-agents/webcraft/internal/models"
	"github.com/webcraft-agents/webcraft/internal/score"
	"github.com/webcraft-agents/webcraft/internal/temporalclient"
	"github.com/webcraft-agents/webcraft/internal/workflow"
)

const (
	TaskQueue = "webcraft-review"

	watchInterval = 5 * time.Second
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	subcommand := os.Args[1]
	switch subcommand {
	case "start":
		cmdStart(os.Args[2:])
	case "status":
		cmdStatus(os.Args[2:])
	case "result":
		cmdResult(os.Args[2:])
	case "watch":
		cmdWatch(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown sub-command: %s\n\n", subcommand)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: review <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  start   Start a review session for a website workspace")
	fmt.Fprintln(os.Stderr, "  status  Query loop progress of a running session")
	fmt.Fprintln(os.Stderr, "  result  Wait for the session to finish and print the outcome")
	fmt.Fprintln(os.Stderr, "  watch   Poll progress until the session closes")
}

func dialTemporal() client.Client {
	c, err := client.Dial(temporalclient.MustLoadClientOptions("", ""))
	if err != nil {
		log.Fatalf("Failed to create Temporal client: %v", err)
	}
	return c
}

// fileConfig is the optional YAML configuration file (--config). Any
// section may be omitted; missing values fall back to the defaults.
type fileConfig struct {
	Session struct {
		MaxIterations        int                  `yaml:"max_iterations"`
		MaxRetries           int                  `yaml:"max_retries"`
		SessionBudgetMinutes int                  `yaml:"session_budget_minutes"`
		ToolCallBudget       int                  `yaml:"tool_call_budget"`
		DefaultModel         fileModel            `yaml:"default_model"`
		AgentModels          map[string]fileModel `yaml:"agent_models"`
	} `yaml:"session"`
	Lint   lint.Config         `yaml:"lint"`
	Policy *score.PolicyConfig `yaml:"policy"`
}

type fileModel struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

func (m fileModel) toModelConfig() models.ModelConfig {
	return models.ModelConfig{
		Provider:    m.Provider,
		Model:       m.Model,
		Temperature: m.Temperature,
		MaxTokens:   m.MaxTokens,
	}
}

func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// cmdStart starts a new review session workflow.
func cmdStart(args []string) {
	fs := flag.NewFlagSet("start", flag.ExitOnError)
	workroot := fs.String("workroot", "", "Website workspace directory (required)")
	prompt := fs.String("prompt", "", "Original site request the review is judged against (required)")
	configPath := fs.String("config", "", "Optional YAML config file (session, lint, policy sections)")
	model := fs.String("model", "", "Default LLM model override")
	provider := fs.String("provider", "", "Default LLM provider override (anthropic or openai)")
	maxIterations := fs.Int("max-iterations", 0, "Review pass cap override")
	watch := fs.Bool("watch", false, "Poll progress until the session closes")
	fs.Parse(args)

	if *workroot == "" || *prompt == "" {
		log.Fatal("Error: --workroot and --prompt are required\n\nUsage: review start --workroot ./site --prompt \"Build a ...\"")
	}

	absRoot, err := filepath.Abs(*workroot)
	if err != nil {
		log.Fatalf("Failed to resolve workroot: %v", err)
	}
	if info, err := os.Stat(absRoot); err != nil || !info.IsDir() {
		log.Fatalf("Workroot is not a directory: %s", absRoot)
	}

	sessionConfig := models.DefaultSessionConfiguration()
	lintConfig := lint.DefaultConfig()
	policy := score.DefaultPolicy()

	if *configPath != "" {
		fc, err := loadFileConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if fc.Session.MaxIterations > 0 {
			sessionConfig.MaxIterations = fc.Session.MaxIterations
		}
		if fc.Session.MaxRetries > 0 {
			sessionConfig.MaxRetries = fc.Session.MaxRetries
		}
		if fc.Session.SessionBudgetMinutes > 0 {
			sessionConfig.SessionBudgetMinutes = fc.Session.SessionBudgetMinutes
		}
		if fc.Session.ToolCallBudget > 0 {
			sessionConfig.ToolCallBudget = fc.Session.ToolCallBudget
		}
		if fc.Session.DefaultModel.Model != "" {
			sessionConfig.DefaultModel = fc.Session.DefaultModel.toModelConfig()
		}
		for agent, m := range fc.Session.AgentModels {
			if sessionConfig.AgentModels == nil {
				sessionConfig.AgentModels = map[string]models.ModelConfig{}
			}
			sessionConfig.AgentModels[agent] = m.toModelConfig()
		}
		if len(fc.Lint.Commands) > 0 {
			lintConfig = fc.Lint
		}
		if fc.Policy != nil {
			policy = *fc.Policy
		}
	}

	// Flag overrides win over the config file.
	if *model != "" {
		sessionConfig.DefaultModel.Model = *model
	}
	if *provider != "" {
		sessionConfig.DefaultModel.Provider = *provider
	}
	if *maxIterations > 0 {
		sessionConfig.MaxIterations = *maxIterations
	}

	workflowID := fmt.Sprintf("review-%s", uuid.New().String()[:8])
	sessionConfig.SessionID = workflowID
	sessionConfig.WorkRoot = absRoot
	sessionConfig.UserPrompt = *prompt

	input := workflow.WorkflowInput{
		Config: sessionConfig,
		Lint:   lintConfig,
		Policy: policy,
	}

	c := dialTemporal()
	defer c.Close()

	log.Printf("Starting review session: %s", workflowID)
	log.Printf("Workspace: %s", absRoot)

	// Hard wall-clock bound: the session budget plus slack for the pass
	// in flight when the budget expires.
	runTimeout := time.Duration(sessionConfig.SessionBudgetMinutes)*time.Minute + 15*time.Minute

	ctx := context.Background()
	run, err := c.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:                 workflowID,
		TaskQueue:          TaskQueue,
		WorkflowRunTimeout: runTimeout,
	}, "ReviewWorkflow", input)
	if err != nil {
		log.Fatalf("Failed to start workflow: %v", err)
	}

	log.Printf("Workflow started successfully")
	log.Printf("Workflow ID: %s", workflowID)
	log.Printf("Run ID: %s", run.GetRunID())

	// Print workflow ID on stdout for scripting
	fmt.Println(workflowID)

	if *watch {
		watchSession(c, workflowID)
	}
}

// cmdStatus queries loop progress of a running session.
func cmdStatus(args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	workflowID := fs.String("workflow-id", "", "Workflow ID (required)")
	fs.Parse(args)

	if *workflowID == "" {
		log.Fatal("Error: --workflow-id is required")
	}

	c := dialTemporal()
	defer c.Close()

	snap, err := queryStatus(c, *workflowID)
	if err != nil {
		log.Fatalf("Failed to query status: %v", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal status: %v", err)
	}
	fmt.Println(string(data))
}

// cmdResult blocks until the session finishes and prints the outcome.
func cmdResult(args []string) {
	fs := flag.NewFlagSet("result", flag.ExitOnError)
	workflowID := fs.String("workflow-id", "", "Workflow ID (required)")
	fs.Parse(args)

	if *workflowID == "" {
		log.Fatal("Error: --workflow-id is required")
	}

	c := dialTemporal()
	defer c.Close()

	result, err := fetchResult(c, *workflowID)
	if err != nil {
		log.Fatalf("Workflow failed: %v", err)
	}
	printResult(result)
}

// cmdWatch polls progress until the session closes, then prints the outcome.
func cmdWatch(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	workflowID := fs.String("workflow-id", "", "Workflow ID (required)")
	fs.Parse(args)

	if *workflowID == "" {
		log.Fatal("Error: --workflow-id is required")
	}

	c := dialTemporal()
	defer c.Close()

	watchSession(c, *workflowID)
}

func queryStatus(c client.Client, workflowID string) (workflow.StatusSnapshot, error) {
	var snap workflow.StatusSnapshot
	resp, err := c.QueryWorkflow(context.Background(), workflowID, "", workflow.QueryGetStatus)
	if err != nil {
		return snap, err
	}
	err = resp.Get(&snap)
	return snap, err
}

func fetchResult(c client.Client, workflowID string) (workflow.WorkflowResult, error) {
	var result workflow.WorkflowResult
	err := c.GetWorkflow(context.Background(), workflowID, "").Get(context.Background(), &result)
	return result, err
}

// watchSession polls the status query until the workflow execution
// leaves the RUNNING state, then prints the terminal result.
func watchSession(c client.Client, workflowID string) {
	var last workflow.StatusSnapshot
	for {
		desc, err := c.DescribeWorkflowExecution(context.Background(), workflowID, "")
		if err != nil {
			log.Fatalf("Failed to describe workflow: %v", err)
		}
		status := desc.GetWorkflowExecutionInfo().GetStatus()
		if status != enumspb.WORKFLOW_EXECUTION_STATUS_RUNNING {
			break
		}

		snap, err := queryStatus(c, workflowID)
		if err == nil && (snap.Iteration != last.Iteration || snap.Phase != last.Phase || snap.Regression != last.Regression) {
			log.Printf("Iteration %d/%d: %s", snap.Iteration, snap.MaxIterations, snap.Phase)
			if snap.Regression != "" {
				log.Printf("  %s", snap.Regression)
			}
			last = snap
		}

		time.Sleep(watchInterval)
	}

	result, err := fetchResult(c, workflowID)
	if err != nil {
		log.Fatalf("Workflow failed: %v", err)
	}
	printResult(result)
}

func printResult(result workflow.WorkflowResult) {
	if result.Approved {
		log.Printf("Approved after %d iteration(s)", result.Iterations)
	} else {
		log.Printf("Not approved after %d iteration(s): %s", result.Iterations, result.Reason)
	}
	for cat, v := range result.FinalScores {
		log.Printf("  %s: %d/20", cat, v)
	}
	if result.Summary != "" {
		log.Printf("Last review summary: %s", result.Summary)
	}
	for _, fix := range result.AllFixes {
		log.Printf("  fix: %s", fix)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal result: %v", err)
	}
	fmt.Println(string(data))
}
