package lint

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	wcexec "github.com/webcraft-agents/webcraft/internal/exec"
)

// CommandTimeout bounds each individual linter invocation.
const CommandTimeout = 120 * time.Second

// Result is the outcome of one linter command. Success means the
// command started and finished inside the timeout; a nonzero exit code
// still counts as success, since diagnostics on bad input are exactly
// what the reviewer wants. Missing binaries and timeouts fail with
// empty output.
type Result struct {
	Name    string `json:"name"`
	Success bool   `json:"success"`
	Output  string `json:"output"`
}

// Report is the ordered outcome of a full linter pass.
type Report struct {
	Results []Result `json:"results"`
}

// Runner executes the configured linter commands against a workspace.
type Runner struct {
	WorkRoot string
	Config   Config
}

// Run executes every enabled command in order. Individual failures are
// recorded, never propagated: the linter stage must not be able to halt
// the review pipeline.
func (r *Runner) Run(ctx context.Context) Report {
	var report Report
	for _, cmd := range r.Config.Enabled() {
		success, output := r.runCommand(ctx, cmd.Command)
		report.Results = append(report.Results, Result{
			Name:    cmd.Name,
			Success: success,
			Output:  output,
		})
	}
	return report
}

func (r *Runner) runCommand(ctx context.Context, command string) (bool, string) {
	cmdCtx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, "sh", "-c", command)
	cmd.Dir = r.WorkRoot

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if cmdCtx.Err() == context.DeadlineExceeded {
		return false, ""
	}
	if err != nil {
		// Exit codes carry diagnostics; only start failures are fatal.
		if _, isExit := err.(*exec.ExitError); !isExit {
			return false, ""
		}
	}

	merged := wcexec.AggregateOutput(stdout.Bytes(), stderr.Bytes())
	return true, string(merged)
}
