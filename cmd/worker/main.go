// Worker executable for webcraft.
//
// Starts a Temporal worker that executes the review workflow and its
// activities. Requires at least one LLM provider API key.
package main

import (
	"log"
	"os"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/webcraft-agents/webcraft/internal/activities"
	"github.com/webcraft-agents/webcraft/internal/display"
	"github.com/webcraft-agents/webcraft/internal/llm"
	"github.com/webcraft-agents/webcraft/internal/temporalclient"
	"github.com/webcraft-agents/webcraft/internal/tools"
	"github.com/webcraft-agents/webcraft/internal/tools/handlers"
	"github.com/webcraft-agents/webcraft/internal/version"
	"github.com/webcraft-agents/webcraft/internal/workflow"
)

const (
	TaskQueue = "webcraft-review"
)

func main() {
	hasOpenAI := os.Getenv("OPENAI_API_KEY") != ""
	hasAnthropic := os.Getenv("ANTHROPIC_API_KEY") != ""

	if !hasOpenAI && !hasAnthropic {
		log.Fatal("At least one LLM provider API key is required: OPENAI_API_KEY or ANTHROPIC_API_KEY")
	}

	if hasOpenAI {
		log.Println("OpenAI provider available")
	}
	if hasAnthropic {
		log.Println("Anthropic provider available")
	}

	// Load Temporal client options via envconfig (supports env vars, config files, TLS)
	opts := temporalclient.MustLoadClientOptions("", "")

	c, err := client.Dial(opts)
	if err != nil {
		log.Fatalf("Failed to create Temporal client: %v", err)
	}
	defer c.Close()

	w := worker.New(c, TaskQueue, worker.Options{})

	w.RegisterWorkflow(workflow.ReviewWorkflow)

	// Workspace file tools shared by the reviewer and revision agents.
	toolRegistry := tools.NewToolRegistry()
	toolRegistry.Register(handlers.NewListFilesTool())
	toolRegistry.Register(handlers.NewReadFileTool())
	toolRegistry.Register(handlers.NewWriteFileTool())
	toolRegistry.Register(handlers.NewGrepFilesTool())
	toolRegistry.Register(handlers.NewGlobFilesTool())
	log.Printf("Registered %d tools", toolRegistry.ToolCount())

	// Multi-provider LLM client (supports both OpenAI and Anthropic)
	llmClient := llm.NewMultiProviderClient()

	llmActivities := activities.NewLLMActivities(llmClient)
	w.RegisterActivity(llmActivities.InvokeAgent)

	toolActivities := activities.NewToolActivities(toolRegistry)
	w.RegisterActivity(toolActivities.ExecuteTool)

	lintActivities := activities.NewLintActivities()
	w.RegisterActivity(lintActivities.RunLinters)

	displayActivities := activities.NewDisplayActivities(display.NewRenderer(os.Stdout, os.Getenv("NO_COLOR") != ""))
	w.RegisterActivity(displayActivities.ShowIterationBanner)
	w.RegisterActivity(displayActivities.ShowScoreReport)
	w.RegisterActivity(displayActivities.ShowTaskTable)
	w.RegisterActivity(displayActivities.ShowSessionResult)

	log.Printf("Worker version: %s", version.GitCommit)
	log.Printf("Starting worker on task queue: %s", TaskQueue)
	if opts.HostPort != "" {
		log.Printf("Temporal server: %s", opts.HostPort)
	}

	err = w.Run(worker.InterruptCh())
	if err != nil {
		log.Fatalf("Failed to start worker: %v", err)
	}

	log.Println("Worker stopped")
}
