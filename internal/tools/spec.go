// Package tools provides the tool registry, specifications, and
// invocation types shared by the agents and the tool activity.
package tools

// Default activity timeouts in milliseconds.
const (
	DefaultReadFileTimeoutMs = 30_000  // 30s
	DefaultToolTimeoutMs     = 120_000 // 2min fallback
)

// ToolSpec defines the specification for a tool (sent to the LLM).
type ToolSpec struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ToolParameter `json:"parameters"`

	// DefaultTimeoutMs is the StartToCloseTimeout for this tool's
	// activity.
	DefaultTimeoutMs int64 `json:"-"` // not sent to LLM
}

// ToolParameter defines a parameter for a tool.
type ToolParameter struct {
	Name        string                 `json:"name"`
	Type        string                 `json:"type"`
	Description string                 `json:"description"`
	Required    bool                   `json:"required"`
	Items       map[string]interface{} `json:"items,omitempty"` // array element schema
}

// NewListFilesToolSpec creates the specification for the list_files tool.
func NewListFilesToolSpec() ToolSpec {
	return ToolSpec{
		Name:        "list_files",
		Description: "List files and directories in a path within the website workspace.",
		Parameters: []ToolParameter{
			{Name: "path", Type: "string", Description: "Path to list, relative to the workspace root (default: workspace root)"},
			{Name: "recursive", Type: "boolean", Description: "List files recursively (default: false)"},
		},
		DefaultTimeoutMs: DefaultReadFileTimeoutMs,
	}
}

// NewReadFileToolSpec creates the specification for the read_file tool.
func NewReadFileToolSpec() ToolSpec {
	return ToolSpec{
		Name:        "read_file",
		Description: "Read the contents of a file. Returns the file content with line numbers.",
		Parameters: []ToolParameter{
			{Name: "path", Type: "string", Description: "The path to the file to read", Required: true},
			{Name: "offset", Type: "integer", Description: "Starting line number (0-indexed, optional)"},
			{Name: "limit", Type: "integer", Description: "Maximum number of lines to read (optional)"},
		},
		DefaultTimeoutMs: DefaultReadFileTimeoutMs,
	}
}

// NewWriteFileToolSpec creates the specification for the write_file tool.
// Writes are restricted to web asset extensions; a disallowed path comes
// back as an ERROR string result the agent can react to.
func NewWriteFileToolSpec() ToolSpec {
	return ToolSpec{
		Name:        "write_file",
		Description: "Create or rewrite a file with new content. Only web files (.html, .js, .css, .svg, .json, .md) may be written.",
		Parameters: []ToolParameter{
			{Name: "path", Type: "string", Description: "The path to the file to create or rewrite", Required: true},
			{Name: "content", Type: "string", Description: "The full new content of the file", Required: true},
		},
		DefaultTimeoutMs: DefaultReadFileTimeoutMs,
	}
}

// NewGrepFilesToolSpec creates the specification for the grep_files tool.
func NewGrepFilesToolSpec() ToolSpec {
	return ToolSpec{
		Name:        "grep_files",
		Description: "Search for a regex pattern in workspace files. Returns file:line: matches.",
		Parameters: []ToolParameter{
			{Name: "pattern", Type: "string", Description: "Regex pattern to search for (case-insensitive)", Required: true},
			{Name: "path", Type: "string", Description: "Path to search in (default: workspace root)"},
			{Name: "file_pattern", Type: "string", Description: "Glob to restrict matched files, e.g. *.css (default: all files)"},
		},
		DefaultTimeoutMs: DefaultReadFileTimeoutMs,
	}
}

// NewGlobFilesToolSpec creates the specification for the glob_files tool.
func NewGlobFilesToolSpec() ToolSpec {
	return ToolSpec{
		Name:        "glob_files",
		Description: "Find files using a glob pattern, e.g. *.css or assets/*.svg.",
		Parameters: []ToolParameter{
			{Name: "pattern", Type: "string", Description: "Glob pattern to match files against", Required: true},
			{Name: "path", Type: "string", Description: "Path to search in (default: workspace root)"},
		},
		DefaultTimeoutMs: DefaultReadFileTimeoutMs,
	}
}

// ReadOnlySpecs is the tool surface of the reviewer: explore but never
// modify.
func ReadOnlySpecs() []ToolSpec {
	return []ToolSpec{
		NewListFilesToolSpec(),
		NewReadFileToolSpec(),
		NewGrepFilesToolSpec(),
		NewGlobFilesToolSpec(),
	}
}

// RevisionSpecs is the tool surface of the code revision agent.
func RevisionSpecs() []ToolSpec {
	return append(ReadOnlySpecs(), NewWriteFileToolSpec())
}
