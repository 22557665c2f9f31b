package handlers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webcraft-agents/webcraft/internal/tools"
)

func invocation(workRoot string, args map[string]interface{}) *tools.ToolInvocation {
	return &tools.ToolInvocation{
		CallID:    "call-1",
		Arguments: args,
		WorkRoot:  workRoot,
	}
}

func writeFixture(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestReadFileLineNumbers(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "index.html", "<html>\n<body>\n</body>\n</html>\n")

	out, err := NewReadFileTool().Handle(context.Background(), invocation(root, map[string]interface{}{
		"path": "index.html",
	}))
	require.NoError(t, err)
	require.NotNil(t, out.Success)
	assert.True(t, *out.Success)
	assert.Contains(t, out.Content, "File: index.html")
	assert.Contains(t, out.Content, "     1\t<html>")
	assert.Contains(t, out.Content, "     4\t</html>")
}

func TestReadFileOffsetAndLimit(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "app.js", "one\ntwo\nthree\nfour\n")

	out, err := NewReadFileTool().Handle(context.Background(), invocation(root, map[string]interface{}{
		"path":   "app.js",
		"offset": float64(1),
		"limit":  float64(2),
	}))
	require.NoError(t, err)
	assert.Contains(t, out.Content, "     2\ttwo")
	assert.Contains(t, out.Content, "     3\tthree")
	assert.NotContains(t, out.Content, "one")
	assert.NotContains(t, out.Content, "four")
}

func TestReadFileMissing(t *testing.T) {
	root := t.TempDir()

	out, err := NewReadFileTool().Handle(context.Background(), invocation(root, map[string]interface{}{
		"path": "missing.html",
	}))
	require.NoError(t, err)
	require.NotNil(t, out.Success)
	assert.False(t, *out.Success)
	assert.Contains(t, out.Content, "does not exist")
}

func TestReadFileEmptyFile(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "empty.css", "")

	out, err := NewReadFileTool().Handle(context.Background(), invocation(root, map[string]interface{}{
		"path": "empty.css",
	}))
	require.NoError(t, err)
	assert.Contains(t, out.Content, "(empty file)")
}

func TestReadFileMissingPathArgument(t *testing.T) {
	_, err := NewReadFileTool().Handle(context.Background(), invocation(t.TempDir(), map[string]interface{}{}))
	require.Error(t, err)
	assert.True(t, tools.IsValidationError(err))
}

func TestWriteFileCreatesParents(t *testing.T) {
	root := t.TempDir()

	out, err := NewWriteFileTool().Handle(context.Background(), invocation(root, map[string]interface{}{
		"path":    "css/site.css",
		"content": "body { margin: 0; }",
	}))
	require.NoError(t, err)
	require.NotNil(t, out.Success)
	assert.True(t, *out.Success)
	assert.Contains(t, out.Content, "written successfully")

	data, readErr := os.ReadFile(filepath.Join(root, "css", "site.css"))
	require.NoError(t, readErr)
	assert.Equal(t, "body { margin: 0; }", string(data))
}

func TestWriteFileRejectsDisallowedExtension(t *testing.T) {
	root := t.TempDir()

	out, err := NewWriteFileTool().Handle(context.Background(), invocation(root, map[string]interface{}{
		"path":    "script.py",
		"content": "print('hi')",
	}))
	require.NoError(t, err)
	require.NotNil(t, out.Success)
	assert.False(t, *out.Success)
	assert.Contains(t, out.Content, "ERROR: Only files with extensions")
	assert.Contains(t, out.Content, "script.py")

	_, statErr := os.Stat(filepath.Join(root, "script.py"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteFileRejectsDirectoryTarget(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "assets.json"), 0o755))

	out, err := NewWriteFileTool().Handle(context.Background(), invocation(root, map[string]interface{}{
		"path":    "assets.json",
		"content": "{}",
	}))
	require.NoError(t, err)
	assert.False(t, *out.Success)
	assert.Contains(t, out.Content, "is a directory, not a file")
}

func TestListFilesFlat(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "index.html", "x")
	writeFixture(t, root, "css/site.css", "x")

	out, err := NewListFilesTool().Handle(context.Background(), invocation(root, map[string]interface{}{}))
	require.NoError(t, err)
	assert.True(t, *out.Success)
	assert.Contains(t, out.Content, "Contents of '.':")
	assert.Contains(t, out.Content, "📁 css/")
	assert.Contains(t, out.Content, "  index.html")
	assert.NotContains(t, out.Content, "site.css")
}

func TestListFilesRecursive(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "index.html", "x")
	writeFixture(t, root, "css/site.css", "x")
	writeFixture(t, root, "js/app.js", "x")

	out, err := NewListFilesTool().Handle(context.Background(), invocation(root, map[string]interface{}{
		"recursive": true,
	}))
	require.NoError(t, err)
	assert.Contains(t, out.Content, "Files in '.' (recursive):")
	assert.Contains(t, out.Content, filepath.Join("css", "site.css"))
	assert.Contains(t, out.Content, filepath.Join("js", "app.js"))
}

func TestListFilesMissingPath(t *testing.T) {
	out, err := NewListFilesTool().Handle(context.Background(), invocation(t.TempDir(), map[string]interface{}{
		"path": "nope",
	}))
	require.NoError(t, err)
	assert.False(t, *out.Success)
	assert.Contains(t, out.Content, "does not exist")
}

func TestGrepFilesFindsMatches(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "index.html", "<title>Coffee Shop</title>\n<h1>Welcome</h1>\n")
	writeFixture(t, root, "about.html", "<h1>About the COFFEE</h1>\n")

	out, err := NewGrepFilesTool().Handle(context.Background(), invocation(root, map[string]interface{}{
		"pattern": "coffee",
	}))
	require.NoError(t, err)
	assert.True(t, *out.Success)
	assert.Contains(t, out.Content, "index.html:1:")
	assert.Contains(t, out.Content, "about.html:1:")
}

func TestGrepFilesFilePatternFilter(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "site.css", ".hero { color: red; }\n")
	writeFixture(t, root, "app.js", "const hero = 1;\n")

	out, err := NewGrepFilesTool().Handle(context.Background(), invocation(root, map[string]interface{}{
		"pattern":      "hero",
		"file_pattern": "*.css",
	}))
	require.NoError(t, err)
	assert.Contains(t, out.Content, "site.css")
	assert.NotContains(t, out.Content, "app.js")
}

func TestGrepFilesNoMatches(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "index.html", "<p>hello</p>\n")

	out, err := NewGrepFilesTool().Handle(context.Background(), invocation(root, map[string]interface{}{
		"pattern": "zebra",
	}))
	require.NoError(t, err)
	assert.False(t, *out.Success)
	assert.Contains(t, out.Content, "No matches found for pattern 'zebra' in '.'")
}

func TestGrepFilesInvalidPattern(t *testing.T) {
	out, err := NewGrepFilesTool().Handle(context.Background(), invocation(t.TempDir(), map[string]interface{}{
		"pattern": "([unclosed",
	}))
	require.NoError(t, err)
	assert.False(t, *out.Success)
	assert.Contains(t, out.Content, "invalid pattern")
}

func TestGlobFilesMatchesBaseNameInSubdirs(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "site.css", "x")
	writeFixture(t, root, "css/theme.css", "x")
	writeFixture(t, root, "index.html", "x")

	out, err := NewGlobFilesTool().Handle(context.Background(), invocation(root, map[string]interface{}{
		"pattern": "*.css",
	}))
	require.NoError(t, err)
	assert.True(t, *out.Success)
	assert.Contains(t, out.Content, "site.css")
	assert.Contains(t, out.Content, filepath.Join("css", "theme.css"))
	assert.NotContains(t, out.Content, "index.html")
}

func TestGlobFilesNoMatches(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "index.html", "x")

	out, err := NewGlobFilesTool().Handle(context.Background(), invocation(root, map[string]interface{}{
		"pattern": "*.svg",
	}))
	require.NoError(t, err)
	assert.False(t, *out.Success)
	assert.Contains(t, out.Content, "No files found matching '*.svg'")
}
