package handlers

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	wcexec "github.com/webcraft-agents/webcraft/internal/exec"
	"github.com/webcraft-agents/webcraft/internal/tools"
)

// ReadFileTool reads file contents with optional offset/limit.
type ReadFileTool struct{}

// NewReadFileTool creates a new read_file tool handler.
func NewReadFileTool() *ReadFileTool {
	return &ReadFileTool{}
}

// Name returns the tool's name.
func (t *ReadFileTool) Name() string {
	return "read_file"
}

// Kind returns ToolKindFunction.
func (t *ReadFileTool) Kind() tools.ToolKind {
	return tools.ToolKindFunction
}

// IsMutating returns false.
func (t *ReadFileTool) IsMutating(*tools.ToolInvocation) bool {
	return false
}

// Handle reads a file and returns its contents with line numbers.
func (t *ReadFileTool) Handle(_ context.Context, invocation *tools.ToolInvocation) (*tools.ToolOutput, error) {
	path, err := requiredString(invocation, "path")
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, tools.NewValidationError("path cannot be empty")
	}
	offset, err := optionalInt(invocation, "offset", 0)
	if err != nil {
		return nil, err
	}
	limit, err := optionalInt(invocation, "limit", -1)
	if err != nil {
		return nil, err
	}

	resolved := tools.ResolvePath(invocation.WorkRoot, path)
	file, openErr := os.Open(resolved)
	if openErr != nil {
		return tools.Fail(fmt.Sprintf("Error: File '%s' does not exist or cannot be opened: %v", path, openErr)), nil
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	var result strings.Builder
	lineNum := 0
	linesRead := 0

	for lineNum < offset && scanner.Scan() {
		lineNum++
	}

	for scanner.Scan() {
		if limit > 0 && linesRead >= limit {
			break
		}

		line := scanner.Text()
		if len(line) > 2000 {
			line = line[:2000] + "... (truncated)"
		}

		result.WriteString(fmt.Sprintf("%6d\t%s\n", lineNum+1, line))
		lineNum++
		linesRead++
	}

	if err := scanner.Err(); err != nil {
		return tools.Fail(fmt.Sprintf("Error: Could not read '%s' as text: %v", path, err)), nil
	}

	content := result.String()
	if limited, truncated := wcexec.LimitOutput([]byte(content)); truncated {
		content = string(limited) + "\n... (output truncated)"
	}
	if content == "" {
		if offset > 0 {
			content = fmt.Sprintf("(file has fewer than %d lines)", offset)
		} else {
			content = "(empty file)"
		}
	}

	// File path header so the model knows which file this content
	// belongs to during multi-tool turns.
	return tools.OK(fmt.Sprintf("File: %s\n%s", path, content)), nil
}
