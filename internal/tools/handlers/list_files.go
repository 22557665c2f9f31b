package handlers

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/webcraft-agents/webcraft/internal/tools"
)

// ListFilesTool lists workspace files and directories, optionally
// recursively. The recursive listing doubles as the workspace
// exploration preamble in the revision prompt.
type ListFilesTool struct{}

// NewListFilesTool creates a new list_files tool handler.
func NewListFilesTool() *ListFilesTool {
	return &ListFilesTool{}
}

// Name returns the tool's name.
func (t *ListFilesTool) Name() string {
	return "list_files"
}

// Kind returns ToolKindFunction.
func (t *ListFilesTool) Kind() tools.ToolKind {
	return tools.ToolKindFunction
}

// IsMutating returns false.
func (t *ListFilesTool) IsMutating(*tools.ToolInvocation) bool {
	return false
}

// Handle lists the requested directory. Directories are prefixed with a
// folder marker and a trailing slash; entries are sorted.
func (t *ListFilesTool) Handle(_ context.Context, invocation *tools.ToolInvocation) (*tools.ToolOutput, error) {
	path, err := optionalString(invocation, "path", ".")
	if err != nil {
		return nil, err
	}
	recursive, err := optionalBool(invocation, "recursive", false)
	if err != nil {
		return nil, err
	}

	resolved := tools.ResolvePath(invocation.WorkRoot, path)
	info, statErr := os.Stat(resolved)
	if statErr != nil {
		return tools.Fail(fmt.Sprintf("Error: Path '%s' does not exist", path)), nil
	}
	if !info.IsDir() {
		return tools.Fail(fmt.Sprintf("Error: '%s' is not a directory", path)), nil
	}

	if recursive {
		return t.listRecursive(path, resolved)
	}
	return t.listFlat(path, resolved)
}

func (t *ListFilesTool) listFlat(display, dir string) (*tools.ToolOutput, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return tools.Fail(fmt.Sprintf("Error: %v", err)), nil
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, formatEntry(entry.Name(), entry.IsDir()))
	}
	sort.Strings(lines)

	return tools.OK(fmt.Sprintf("Contents of '%s':\n%s", display, strings.Join(lines, "\n"))), nil
}

func (t *ListFilesTool) listRecursive(display, dir string) (*tools.ToolOutput, error) {
	var lines []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if path == dir {
			return nil
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return nil
		}
		lines = append(lines, formatEntry(rel, d.IsDir()))
		return nil
	})
	if err != nil {
		return tools.Fail(fmt.Sprintf("Error: %v", err)), nil
	}
	sort.Strings(lines)

	return tools.OK(fmt.Sprintf("Files in '%s' (recursive):\n%s", display, strings.Join(lines, "\n"))), nil
}

func formatEntry(name string, isDir bool) string {
	if isDir {
		return "📁 " + name + "/"
	}
	return "  " + name
}
