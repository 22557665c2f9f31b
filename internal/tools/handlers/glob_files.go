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

// GlobFilesTool finds files whose names match a glob pattern.
type GlobFilesTool struct{}

// NewGlobFilesTool creates a new glob_files tool handler.
func NewGlobFilesTool() *GlobFilesTool {
	return &GlobFilesTool{}
}

// Name returns the tool's name.
func (t *GlobFilesTool) Name() string {
	return "glob_files"
}

// Kind returns ToolKindFunction.
func (t *GlobFilesTool) Kind() tools.ToolKind {
	return tools.ToolKindFunction
}

// IsMutating returns false.
func (t *GlobFilesTool) IsMutating(*tools.ToolInvocation) bool {
	return false
}

// Handle walks the directory and matches the pattern against both the
// workspace-relative path and the base name, so "*.css" finds styles in
// subdirectories too.
func (t *GlobFilesTool) Handle(ctx context.Context, invocation *tools.ToolInvocation) (*tools.ToolOutput, error) {
	pattern, err := requiredString(invocation, "pattern")
	if err != nil {
		return nil, err
	}
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, tools.NewValidationError("pattern must not be empty")
	}
	path, err := optionalString(invocation, "path", ".")
	if err != nil {
		return nil, err
	}

	if _, matchErr := filepath.Match(pattern, ""); matchErr != nil {
		return tools.Fail(fmt.Sprintf("Error: invalid pattern '%s': %v", pattern, matchErr)), nil
	}

	root := tools.ResolvePath(invocation.WorkRoot, path)
	if info, statErr := os.Stat(root); statErr != nil || !info.IsDir() {
		return tools.Fail(fmt.Sprintf("Error: Path '%s' does not exist", path)), nil
	}

	var matches []string
	walkErr := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return nil
		}
		if byPath, _ := filepath.Match(pattern, rel); byPath {
			matches = append(matches, rel)
			return nil
		}
		if byBase, _ := filepath.Match(pattern, filepath.Base(p)); byBase {
			matches = append(matches, rel)
		}
		return nil
	})
	if walkErr != nil {
		return tools.Fail(fmt.Sprintf("Error: %v", walkErr)), nil
	}

	if len(matches) == 0 {
		return tools.Fail(fmt.Sprintf("No files found matching '%s' in '%s'", pattern, path)), nil
	}
	sort.Strings(matches)

	return tools.OK(fmt.Sprintf("Files matching '%s' in '%s':\n%s", pattern, path, strings.Join(matches, "\n"))), nil
}
