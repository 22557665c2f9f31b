package tools

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBudgetAllowAndRefuse(t *testing.T) {
	b := NewBudget(2)

	assert.True(t, b.Allow("reviewer"))
	assert.True(t, b.Allow("reviewer"))
	assert.False(t, b.Allow("reviewer"))
	// Refused calls are not counted.
	assert.Equal(t, 2, b.Count("reviewer"))

	// Other agents have their own counter.
	assert.True(t, b.Allow("code_revision"))
	assert.Equal(t, 1, b.Count("code_revision"))
}

func TestBudgetReset(t *testing.T) {
	b := NewBudget(1)
	assert.True(t, b.Allow("reviewer"))
	assert.False(t, b.Allow("reviewer"))

	b.Reset()
	assert.Equal(t, 0, b.Count("reviewer"))
	assert.True(t, b.Allow("reviewer"))
}

func TestBudgetZeroLimitUnlimited(t *testing.T) {
	b := NewBudget(0)
	for i := 0; i < 100; i++ {
		assert.True(t, b.Allow("reviewer"))
	}
}

func TestRefusalMessageNamesAgent(t *testing.T) {
	msg := RefusalMessage("reviewer")
	assert.Contains(t, msg, "Tool limit exceeded for agent 'reviewer'")
	assert.Contains(t, msg, "Do not call any more tools")
}

func TestIsAllowedWebFile(t *testing.T) {
	allowed := []string{"index.html", "js/app.js", "styles/site.css", "logo.SVG", "data.json", "README.md"}
	for _, p := range allowed {
		assert.True(t, IsAllowedWebFile(p), p)
	}
	disallowed := []string{"script.py", "main.go", "archive.tar.gz", "Makefile", "style.scss"}
	for _, p := range disallowed {
		assert.False(t, IsAllowedWebFile(p), p)
	}
}

func TestDisallowedExtensionMessage(t *testing.T) {
	msg := DisallowedExtensionMessage("script.py")
	assert.Equal(t, "ERROR: Only files with extensions .html, .js, .css, .svg, .json, .md are allowed. The path 'script.py' does not have an allowed extension.", msg)
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, "/work", ResolvePath("/work", ""))
	assert.Equal(t, "/work", ResolvePath("/work", "."))
	assert.Equal(t, filepath.Join("/work", "css", "site.css"), ResolvePath("/work", "css/site.css"))
	assert.Equal(t, "/elsewhere/file.html", ResolvePath("/work", "/elsewhere/file.html"))
}

func TestRegistry(t *testing.T) {
	r := NewToolRegistry()
	assert.Equal(t, 0, r.ToolCount())
	assert.False(t, r.HasTool("read_file"))
	_, err := r.GetHandler("read_file")
	assert.Error(t, err)
}

func TestRevisionSpecsIncludeWriteFile(t *testing.T) {
	names := make(map[string]bool)
	for _, spec := range RevisionSpecs() {
		names[spec.Name] = true
	}
	assert.True(t, names["write_file"])
	assert.True(t, names["read_file"])
	assert.True(t, names["list_files"])
	assert.True(t, names["grep_files"])
	assert.True(t, names["glob_files"])

	for _, spec := range ReadOnlySpecs() {
		assert.NotEqual(t, "write_file", spec.Name)
	}
}
