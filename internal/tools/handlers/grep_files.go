package handlers

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/webcraft-agents/webcraft/internal/tools"
)

const grepResultLimit = 50

// GrepFilesTool searches workspace files for a regex pattern and
// returns file:line: matches.
type GrepFilesTool struct{}

// NewGrepFilesTool creates a new grep_files tool handler.
func NewGrepFilesTool() *GrepFilesTool {
	return &GrepFilesTool{}
}

// Name returns the tool's name.
func (t *GrepFilesTool) Name() string {
	return "grep_files"
}

// Kind returns ToolKindFunction.
func (t *GrepFilesTool) Kind() tools.ToolKind {
	return tools.ToolKindFunction
}

// IsMutating returns false.
func (t *GrepFilesTool) IsMutating(*tools.ToolInvocation) bool {
	return false
}

// Handle searches line by line, case-insensitively, skipping files that
// are not valid UTF-8 text. Results are capped at 50 matches.
func (t *GrepFilesTool) Handle(ctx context.Context, invocation *tools.ToolInvocation) (*tools.ToolOutput, error) {
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
	filePattern, err := optionalString(invocation, "file_pattern", "*")
	if err != nil {
		return nil, err
	}

	regex, compileErr := regexp.Compile("(?i)" + pattern)
	if compileErr != nil {
		return tools.Fail(fmt.Sprintf("Error: invalid pattern '%s': %v", pattern, compileErr)), nil
	}

	root := tools.ResolvePath(invocation.WorkRoot, path)
	if _, statErr := os.Stat(root); statErr != nil {
		return tools.Fail(fmt.Sprintf("Error: Path '%s' does not exist", path)), nil
	}

	var results []string
	walkErr := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if len(results) >= grepResultLimit {
			return filepath.SkipAll
		}

		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return nil
		}
		if matched, _ := filepath.Match(filePattern, filepath.Base(p)); !matched {
			return nil
		}

		data, readErr := os.ReadFile(p)
		if readErr != nil || !utf8.Valid(data) {
			return nil
		}

		for i, line := range strings.Split(string(data), "\n") {
			if regex.MatchString(line) {
				results = append(results, fmt.Sprintf("%s:%d: %s", rel, i+1, line))
				if len(results) >= grepResultLimit {
					return filepath.SkipAll
				}
			}
		}
		return nil
	})
	if walkErr != nil && walkErr != filepath.SkipAll {
		return tools.Fail(fmt.Sprintf("Error: %v", walkErr)), nil
	}

	if len(results) == 0 {
		return tools.Fail(fmt.Sprintf("No matches found for pattern '%s' in '%s'", pattern, path)), nil
	}

	return tools.OK(fmt.Sprintf("Matches for '%s' in '%s':\n%s", pattern, path, strings.Join(results, "\n"))), nil
}
