package agents

import (
	"fmt"
	"strings"

	"github.com/webcraft-agents/webcraft/internal/models"
)

const codeRevisionSystem = `You are a Code Revision Specialist working in a multi-agent web development system.

CONTEXT:
A code reviewer has analyzed the website code and provided feedback containing:
1. A REVIEW SUMMARY - brief overview of main issues
2. TASKS TO FIX organized by priority with specific issues to address

Your role is to address each issue raised in the review and improve the code quality.

YOUR TASK:
You will receive a review summary and a task list.
Your responsibilities are:
1. First, read the review summary to understand the overall assessment
2. Then, follow the task list to address each issue in order
3. First tasks are the most important - fix them first
4. Review the affected files to understand the current implementation
5. Make the necessary corrections to address each task
6. Ensure your fixes don't break other functionality
7. Re-test the changes by reading the modified files

WORKFLOW:
1. Read the review summary first for context
2. Follow the task list to fix issues in order (first tasks = highest priority)
3. For each task mentioned:
    a. Find and read the relevant files
    b. Understand what needs to be changed
    c. Make the necessary edits
    d. Verify the changes address the issue

IMPORTANT - FIX SUMMARY REQUIREMENT:
At the END of your work, you MUST provide a summary of fixes applied in the following format:

<fixes_applied>
    <fix>Brief description of fix 1</fix>
    <fix>Brief description of fix 2</fix>
    ...
</fixes_applied>

This summary is critical for tracking progress across review iterations.

GOAL:
Fix all issues in the task list to improve the code quality. Provide a summary of all fixes at the end.

Available tools:
- list_files: List files and directories in a path
- read_file: Read contents of a file with line numbers
- write_file: Create or rewrite a web file (.html, .js, .css, .svg, .json, .md only)
- grep_files: Search for patterns in files
- glob_files: Find files using glob patterns

The workspace exploration will be provided to you at the start.`

// priorFixDigestCap bounds how many previous fixes are replayed into the
// revision prompt.
const priorFixDigestCap = 10

// CodeRevisionSystemPrompt builds the revision agent's system prompt.
// When prior iterations applied fixes, a do-not-repeat digest is
// prepended so the agent tries different approaches for issues that did
// not resolve.
func CodeRevisionSystemPrompt(iteration, maxIterations int, previousFixes []string) string {
	digest := priorFixContext(iteration, maxIterations, previousFixes)
	if digest == "" {
		return codeRevisionSystem
	}
	return digest + "\n\n" + codeRevisionSystem
}

func priorFixContext(iteration, maxIterations int, previousFixes []string) string {
	if iteration <= 1 || len(previousFixes) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "=== PREVIOUS ITERATION CONTEXT ===\n")
	fmt.Fprintf(&b, "Iteration: %d of %d\n\n", iteration, maxIterations)
	b.WriteString("FIXES ALREADY APPLIED IN PREVIOUS ITERATIONS:\n")
	for i, fix := range previousFixes {
		if i >= priorFixDigestCap {
			break
		}
		fmt.Fprintf(&b, "- %s\n", fix)
	}
	b.WriteString("\nIMPORTANT:\n")
	b.WriteString("- Do NOT re-apply fixes that were already made\n")
	b.WriteString("- Focus on NEW issues identified in this iteration's review\n")
	b.WriteString("- If a previous fix didn't work, try a DIFFERENT approach\n")
	b.WriteString("================================")
	return b.String()
}

// CodeRevisionTurnPrompt assembles the revision agent's turn input from
// the recursive workspace listing and the rendered task list.
func CodeRevisionTurnPrompt(workspaceListing, taskText string) string {
	return fmt.Sprintf(`WORKSPACE EXPLORATION RESULTS:
%s

REVISION TASKS TO COMPLETE:
%s

Please fix all the issues mentioned in the revision tasks. Focus on the most important issues first.

REMINDER: At the end of your work, provide a <fixes_applied> summary listing all fixes you made.`, workspaceListing, taskText)
}

// RenderTaskList formats the task generator's output for the revision
// agent: summary first, then tasks in priority order.
func RenderTaskList(summary string, tasks []models.Task) string {
	var b strings.Builder
	b.WriteString("REVIEW SUMMARY:\n")
	b.WriteString(summary)
	b.WriteString("\n\nTASKS:\n")
	if len(tasks) == 0 {
		b.WriteString("(no tasks)")
		return b.String()
	}
	for i, task := range tasks {
		fmt.Fprintf(&b, "%d. [%s] %s", i+1, task.Priority, task.Description)
		if len(task.Files) > 0 {
			fmt.Fprintf(&b, " (files: %s)", strings.Join(task.Files, ", "))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
