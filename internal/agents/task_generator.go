package agents

import "fmt"

const taskGeneratorSystem = `You are a Task Generation Specialist. You receive natural language code reviews and convert them into structured, actionable tasks for the code revision agent.

Your role is to parse the review and create specific, actionable tasks organized by priority.

TASK GENERATION RULES:
- List the most important fixes first (blocking issues, critical bugs)
- Specify which files need to be modified
- Provide a short, clear description of what to fix
- Be specific about CSS properties, HTML elements, and exact issues
- Make tasks actionable and specific

CRITICAL INSTRUCTION:
Extract specific, actionable tasks from the review. Be precise about file names and exact changes needed. The code revision agent will execute these tasks in order. Output your tasks in the required XML format.`

const taskGeneratorTurnTemplate = `REVIEW TO PROCESS:
<review>
%s
</review>

Convert the review into the following XML format:

<revision_tasks>
    <summary>
        A brief summary of the overall review and main issues found
    </summary>
    <tasks>
        <task>
            <files>file1.html, file2.css</files>
            <description>Fix the layout issue where elements overlap on mobile screens</description>
        </task>
        <task>
            <files>styles.css</files>
            <description>Add missing hover states for interactive elements</description>
        </task>
    </tasks>
</revision_tasks>`

const taskGeneratorRetryTemplate = `Your previous task generation attempt had formatting issues:

<last_attempt>
%s
</last_attempt>

Please generate the task list again using the correct XML format. Ensure:
1. Root element is <revision_tasks>
2. Contains a <summary> section
3. Contains a <tasks> section with at least one <task>
4. Each task has <files> (comma-separated) and <description>

Original review:
<review>
%s
</review>`

// TaskGeneratorSystemPrompt is the task generator's system prompt.
func TaskGeneratorSystemPrompt() string {
	return taskGeneratorSystem
}

// TaskGeneratorTurnPrompt builds the first-attempt prompt. The history
// summary (prior tasks, avoid-duplicates digest) is prepended when the
// loop has completed at least one iteration.
func TaskGeneratorTurnPrompt(reviewText, historySummary string) string {
	turn := fmt.Sprintf(taskGeneratorTurnTemplate, reviewText)
	if historySummary == "" {
		return turn
	}
	return historySummary + "\n" + turn
}

// TaskGeneratorRetryPrompt builds the re-prompt after a validation
// failure.
func TaskGeneratorRetryPrompt(lastError, reviewText string) string {
	return fmt.Sprintf(taskGeneratorRetryTemplate, lastError, reviewText)
}
