package tools

import "fmt"

// Budget caps tool invocations per agent within one iteration. It is
// owned by workflow code (deterministic, single writer) and reset on
// every loop re-entry so limits apply fresh per pass.
type Budget struct {
	Limit  int            `json:"limit"`
	Counts map[string]int `json:"counts"`
}

// NewBudget creates a budget with the given per-agent limit.
func NewBudget(limit int) *Budget {
	return &Budget{Limit: limit, Counts: make(map[string]int)}
}

// Allow records one tool call for the agent and reports whether it was
// within budget. Once the limit is reached further calls are refused
// (and not counted).
func (b *Budget) Allow(agent string) bool {
	if b.Limit > 0 && b.Counts[agent] >= b.Limit {
		return false
	}
	b.Counts[agent]++
	return true
}

// Count returns the number of calls the agent has made this iteration.
func (b *Budget) Count(agent string) int {
	return b.Counts[agent]
}

// Reset zeroes all per-agent counters. Called on every iteration reset.
func (b *Budget) Reset() {
	b.Counts = make(map[string]int)
}

// RefusalMessage is the string result handed to an agent whose call
// exceeded the budget. It is a normal tool result, not an error, so the
// agent can wrap up gracefully.
func RefusalMessage(agent string) string {
	return fmt.Sprintf("Tool limit exceeded for agent '%s'. Do not call any more tools; finish your response with what you have.", agent)
}
