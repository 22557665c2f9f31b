package tools

import (
	"path/filepath"
	"strings"
)

// AllowedWebExtensions is the set of file extensions the revision agent
// may write. Everything a static site needs, nothing else.
var AllowedWebExtensions = []string{".html", ".js", ".css", ".svg", ".json", ".md"}

// IsAllowedWebFile reports whether path ends in an allowed extension.
func IsAllowedWebFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range AllowedWebExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// DisallowedExtensionMessage is the ERROR string returned to the agent
// for a write outside the allow-list.
func DisallowedExtensionMessage(path string) string {
	return "ERROR: Only files with extensions " + strings.Join(AllowedWebExtensions, ", ") +
		" are allowed. The path '" + path + "' does not have an allowed extension."
}

// ResolvePath resolves path against the workspace root. Absolute paths
// pass through unchanged.
func ResolvePath(workRoot, path string) string {
	if path == "" || path == "." {
		return workRoot
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workRoot, path)
}
