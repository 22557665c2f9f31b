package reviewxml

import (
	"strings"

	"github.com/webcraft-agents/webcraft/internal/models"
)

// TaskTag and ReviewTag are the two accepted root tags for task
// generator output. The schema is identical; <priority> is optional
// either way and defaults to MEDIUM.
const (
	TaskTag   = "revision_tasks"
	ReviewTag = "review"
)

// ParseTasks validates a task generator block rooted at rootTag and
// returns its summary plus the task list. Tasks without a description
// are schema violations; an empty <tasks> list is legal and signals an
// approved-quality pass.
func ParseTasks(xmlContent, rootTag string) (string, []models.Task, error) {
	root, err := parseElement(xmlContent)
	if err != nil {
		return "", nil, err
	}
	if root.tag != rootTag {
		return "", nil, schemaErrorf("root element must be '%s', found '%s'", rootTag, root.tag)
	}

	summaryElem := root.child("summary")
	if summaryElem == nil {
		return "", nil, schemaErrorf("missing required element: summary")
	}
	summary := strings.TrimSpace(summaryElem.text)

	tasksElem := root.child("tasks")
	if tasksElem == nil {
		return "", nil, schemaErrorf("missing required element: tasks")
	}

	var tasks []models.Task
	for i, taskElem := range tasksElem.eachChild("task") {
		description := taskElem.childText("description")
		if description == "" {
			return "", nil, schemaErrorf("task %d is missing a description", i+1)
		}

		priority := models.TaskPriority(strings.ToUpper(taskElem.childText("priority")))
		if priority == "" {
			priority = models.PriorityMedium
		}
		if !models.ValidPriority(priority) {
			return "", nil, schemaErrorf("task %d has unknown priority %q", i+1, priority)
		}

		tasks = append(tasks, models.Task{
			Files:       splitFiles(taskElem.childText("files")),
			Description: description,
			Priority:    priority,
		})
	}
	return summary, tasks, nil
}

// splitFiles parses the comma-separated <files> payload.
func splitFiles(raw string) []string {
	if raw == "" {
		return nil
	}
	var files []string
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			files = append(files, f)
		}
	}
	return files
}
