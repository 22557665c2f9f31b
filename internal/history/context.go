// Package history keeps cross-iteration memory for a review session:
// which scores each pass earned, which tasks were generated, which
// fixes were applied, and whether quality regressed. Agents never see
// this struct directly; they receive the formatted digests.
package history

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/webcraft-agents/webcraft/internal/models"
	"github.com/webcraft-agents/webcraft/internal/score"
)

// Digest caps. Reviewer digests show the previous iteration only; the
// task generator sees the whole backlog.
const (
	reviewerItemCap      = 5
	taskGeneratorItemCap = 10
	digestItemWidth      = 100
	backlogItemWidth     = 80
)

// Context is the per-session review memory. It is owned and mutated
// exclusively by workflow code (single writer); all fields are exported
// so the struct survives Temporal serialization.
type Context struct {
	MaxIterations    int                      `json:"max_iterations"`
	CurrentIteration int                      `json:"current_iteration"`
	Iterations       []models.IterationResult `json:"iterations"`
}

// NewContext creates an empty context for a fresh session.
func NewContext(maxIterations int) *Context {
	return &Context{MaxIterations: maxIterations}
}

// IncrementIteration advances and returns the iteration counter. Called
// once on loop entry and on every reset edge.
func (c *Context) IncrementIteration() int {
	c.CurrentIteration++
	return c.CurrentIteration
}

// ShouldContinue reports whether another pass is allowed.
func (c *Context) ShouldContinue() bool {
	return c.CurrentIteration < c.MaxIterations
}

// AddIterationResult appends the record for the current iteration.
// Scores are compared against the previous record before appending, and
// any regression is stamped onto the new record. Fixes start empty and
// are attached later via RecordFixes, after the revision step runs.
func (c *Context) AddIterationResult(scores map[string]int, tasksGenerated []string) {
	result := models.IterationResult{
		Iteration:      c.CurrentIteration,
		Scores:         copyScores(scores),
		TasksGenerated: append([]string(nil), tasksGenerated...),
		FixesApplied:   []string{},
	}

	if prev := c.PreviousScores(); prev != nil {
		if details, regressed := score.DetectRegression(scores, prev); regressed {
			result.RegressionDetected = true
			result.RegressionDetails = details
		}
	}

	c.Iterations = append(c.Iterations, result)
}

// RecordFixes attaches the revision agent's reported fixes to the most
// recently appended record. This is the single sanctioned mutation of
// an appended record: fixes are only known after the revision step,
// which runs after the record was created.
func (c *Context) RecordFixes(fixes []string) {
	if len(c.Iterations) == 0 || len(fixes) == 0 {
		return
	}
	latest := &c.Iterations[len(c.Iterations)-1]
	latest.FixesApplied = append(latest.FixesApplied, fixes...)
}

// PreviousScores returns the latest recorded score map, nil when no
// iteration has completed yet.
func (c *Context) PreviousScores() map[string]int {
	if len(c.Iterations) == 0 {
		return nil
	}
	return copyScores(c.Iterations[len(c.Iterations)-1].Scores)
}

// AllTasksGenerated flattens every iteration's task list in order.
func (c *Context) AllTasksGenerated() []string {
	var all []string
	for _, it := range c.Iterations {
		all = append(all, it.TasksGenerated...)
	}
	return all
}

// AllFixesApplied flattens every iteration's fix list in order.
func (c *Context) AllFixesApplied() []string {
	var all []string
	for _, it := range c.Iterations {
		all = append(all, it.FixesApplied...)
	}
	return all
}

// HadRegression reports whether any iteration regressed.
func (c *Context) HadRegression() bool {
	for _, it := range c.Iterations {
		if it.RegressionDetected {
			return true
		}
	}
	return false
}

// LatestRegressionDetails returns the most recent regression message,
// "" when none occurred.
func (c *Context) LatestRegressionDetails() string {
	for i := len(c.Iterations) - 1; i >= 0; i-- {
		if c.Iterations[i].RegressionDetected {
			return c.Iterations[i].RegressionDetails
		}
	}
	return ""
}

// LatestAverageScore is the mean of the latest record's scores, 0 when
// there is no history.
func (c *Context) LatestAverageScore() float64 {
	return averageScore(c.PreviousScores())
}

// ScoresImproved reports whether the latest iteration's average beats
// the one before it. False with fewer than two records.
func (c *Context) ScoresImproved() bool {
	n := len(c.Iterations)
	if n < 2 {
		return false
	}
	return averageScore(c.Iterations[n-1].Scores) > averageScore(c.Iterations[n-2].Scores)
}

// FormatSummaryForReviewer builds the prior-context digest injected
// into the reviewer prompt: previous scores with pass/fail annotation
// against policy, the previous task and fix lists capped at 5 items,
// and a regression warning when applicable. Empty string before the
// first iteration completes, the no-prior-context sentinel.
func (c *Context) FormatSummaryForReviewer(policy score.PolicyConfig) string {
	if c.CurrentIteration == 0 || len(c.Iterations) == 0 {
		return ""
	}
	latest := c.Iterations[len(c.Iterations)-1]

	var b strings.Builder
	fmt.Fprintf(&b, "=== PREVIOUS REVIEW CONTEXT (Iteration %d of %d) ===\n\n",
		c.CurrentIteration, c.MaxIterations)

	b.WriteString("PREVIOUS SCORES:\n")
	for _, cat := range sortedKeys(latest.Scores) {
		s := latest.Scores[cat]
		status := "NEEDS IMPROVEMENT"
		if threshold := policy.ThresholdFor(cat); threshold > 0 && s >= threshold {
			status = "PASS"
		}
		fmt.Fprintf(&b, "  - %s: %d/20 (%s)\n", cat, s, status)
	}
	b.WriteString("\n")

	if len(latest.TasksGenerated) > 0 {
		b.WriteString("TASKS FROM PREVIOUS ITERATION (should have been addressed):\n")
		writeCappedList(&b, latest.TasksGenerated, reviewerItemCap, digestItemWidth, true, "tasks")
	}

	if len(latest.FixesApplied) > 0 {
		b.WriteString("FIXES APPLIED IN PREVIOUS ITERATION:\n")
		writeCappedList(&b, latest.FixesApplied, reviewerItemCap, digestItemWidth, false, "fixes")
	}

	if latest.RegressionDetected {
		b.WriteString("WARNING: REGRESSION DETECTED IN PREVIOUS ITERATION\n")
		fmt.Fprintf(&b, "Details: %s\n", latest.RegressionDetails)
		b.WriteString("Please try a DIFFERENT approach to fix the issues.\n\n")
	}

	b.WriteString("CRITICAL INSTRUCTIONS FOR THIS ITERATION:\n")
	b.WriteString("- Focus ONLY on issues that REMAIN after previous fixes\n")
	b.WriteString("- Do NOT re-report issues that were already addressed\n")
	b.WriteString("- If a fix was attempted but didn't work, suggest a DIFFERENT approach\n")
	b.WriteString("- Acknowledge improvements that were made\n\n")
	b.WriteString(strings.Repeat("=", 60))
	return b.String()
}

// FormatSummaryForTaskGenerator builds the backlog digest for
// delta-focused task generation: every previously generated task,
// capped at 10 items. Empty string with no history.
func (c *Context) FormatSummaryForTaskGenerator() string {
	if c.CurrentIteration == 0 || len(c.Iterations) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "=== ITERATION CONTEXT (%d of %d) ===\n\n",
		c.CurrentIteration, c.MaxIterations)

	if all := c.AllTasksGenerated(); len(all) > 0 {
		b.WriteString("PREVIOUSLY GENERATED TASKS (do not regenerate these):\n")
		writeCappedList(&b, all, taskGeneratorItemCap, backlogItemWidth, true, "")
	}

	b.WriteString("TASK GENERATION RULES FOR THIS ITERATION:\n")
	b.WriteString("- Generate tasks ONLY for NEW issues or issues that REMAIN unfixed\n")
	b.WriteString("- Do NOT regenerate tasks that were already created in previous iterations\n")
	b.WriteString("- If a previous fix didn't work, suggest a DIFFERENT approach\n")
	b.WriteString("- Focus on fewer, more impactful tasks\n")
	return b.String()
}

func writeCappedList(b *strings.Builder, items []string, limit, width int, numbered bool, noun string) {
	shown := items
	if len(shown) > limit {
		shown = shown[:limit]
	}
	for i, item := range shown {
		if numbered {
			fmt.Fprintf(b, "  %d. %s\n", i+1, truncate(item, width))
		} else {
			fmt.Fprintf(b, "  - %s\n", truncate(item, width))
		}
	}
	if len(items) > limit {
		suffix := strings.TrimSpace("more " + noun)
		fmt.Fprintf(b, "  ... and %d %s\n", len(items)-limit, suffix)
	}
	b.WriteString("\n")
}

// truncate cuts s to at most n bytes, backing up to a rune boundary so
// the digest never carries a split multi-byte sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func copyScores(scores map[string]int) map[string]int {
	out := make(map[string]int, len(scores))
	for k, v := range scores {
		out[k] = v
	}
	return out
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func averageScore(scores map[string]int) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, v := range scores {
		sum += v
	}
	return float64(sum) / float64(len(scores))
}
