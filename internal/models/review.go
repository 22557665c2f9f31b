// Package models contains shared types for the webcraft review pipeline.
package models

// TaskPriority orders revision tasks from most to least urgent.
type TaskPriority string

const (
	PriorityCritical TaskPriority = "CRITICAL"
	PriorityHigh     TaskPriority = "HIGH"
	PriorityMedium   TaskPriority = "MEDIUM"
	PriorityLow      TaskPriority = "LOW"
)

// ValidPriority reports whether p is one of the four known levels.
func ValidPriority(p TaskPriority) bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// CategoryScore is a single review dimension rated 0..20.
// Produced once per iteration by the score evaluator; immutable after parse.
type CategoryScore struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Task is one actionable revision item produced by the task generator.
type Task struct {
	Files       []string     `json:"files"`
	Description string       `json:"description"`
	Priority    TaskPriority `json:"priority,omitempty"`
}

// ReviewOutput aggregates the structured results of one review pass:
// the evaluator's scores plus the task generator's summary and task list.
type ReviewOutput struct {
	CategoryScores []CategoryScore `json:"category_scores"`
	Summary        string          `json:"summary"`
	Tasks          []Task          `json:"tasks"`
}

// ScoreMap returns the scores keyed by category name.
func (r ReviewOutput) ScoreMap() map[string]int {
	m := make(map[string]int, len(r.CategoryScores))
	for _, cs := range r.CategoryScores {
		m[cs.Name] = cs.Score
	}
	return m
}

// AverageScore is the mean across all categories, 0 when empty.
func (r ReviewOutput) AverageScore() float64 {
	if len(r.CategoryScores) == 0 {
		return 0
	}
	sum := 0
	for _, cs := range r.CategoryScores {
		sum += cs.Score
	}
	return float64(sum) / float64(len(r.CategoryScores))
}

// TaskLines renders the task list as short one-line descriptions for
// history tracking and prompt digests.
func (r ReviewOutput) TaskLines() []string {
	lines := make([]string, 0, len(r.Tasks))
	for _, t := range r.Tasks {
		lines = append(lines, t.Description)
	}
	return lines
}

// IterationResult records what one completed review pass produced.
// Appended to history by the workflow; FixesApplied is the only field
// updated after append (the revision step runs after the record is created).
type IterationResult struct {
	Iteration          int            `json:"iteration"`
	Scores             map[string]int `json:"scores"`
	TasksGenerated     []string       `json:"tasks_generated"`
	FixesApplied       []string       `json:"fixes_applied"`
	RegressionDetected bool           `json:"regression_detected"`
	RegressionDetails  string         `json:"regression_details,omitempty"`
}
