package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/webcraft-agents/webcraft/internal/tools"
)

// WriteFileTool creates or rewrites a workspace file. Writes are
// restricted to web asset extensions; violations come back as an ERROR
// string result so the agent can pick a different path in the same turn.
type WriteFileTool struct{}

// NewWriteFileTool creates a new write_file tool handler.
func NewWriteFileTool() *WriteFileTool {
	return &WriteFileTool{}
}

// Name returns the tool's name.
func (t *WriteFileTool) Name() string {
	return "write_file"
}

// Kind returns ToolKindFunction.
func (t *WriteFileTool) Kind() tools.ToolKind {
	return tools.ToolKindFunction
}

// IsMutating returns true.
func (t *WriteFileTool) IsMutating(*tools.ToolInvocation) bool {
	return true
}

// Handle writes the file, creating parent directories as needed.
func (t *WriteFileTool) Handle(_ context.Context, invocation *tools.ToolInvocation) (*tools.ToolOutput, error) {
	path, err := requiredString(invocation, "path")
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, tools.NewValidationError("path cannot be empty")
	}
	content, err := requiredString(invocation, "content")
	if err != nil {
		return nil, err
	}

	if !tools.IsAllowedWebFile(path) {
		return tools.Fail(tools.DisallowedExtensionMessage(path)), nil
	}

	resolved := tools.ResolvePath(invocation.WorkRoot, path)
	if info, statErr := os.Stat(resolved); statErr == nil && info.IsDir() {
		return tools.Fail(fmt.Sprintf("Error: '%s' is a directory, not a file. To create a file in a folder, use 'folder/file.html' format.", path)), nil
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return tools.Fail(fmt.Sprintf("Error: %v", err)), nil
	}
	if err := os.WriteFile(resolved, []byte(content), 0o644); err != nil {
		return tools.Fail(fmt.Sprintf("Error: %v", err)), nil
	}

	return tools.OK(fmt.Sprintf("File '%s' written successfully (%d bytes)", path, len(content))), nil
}
