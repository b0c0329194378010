package codecollect

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayeah/codecollect/internal/metrics"
)

func TestParseFormat(t *testing.T) {
	assert := assert.New(t)

	f, err := ParseFormat("md")
	assert.NoError(err)
	assert.Equal(FormatMarkdown, f)

	f, err = ParseFormat("txt")
	assert.NoError(err)
	assert.Equal(FormatPlain, f)

	_, err = ParseFormat("pdf")
	assert.Error(err)
}

func TestWriteFileMapMarkdown(t *testing.T) {
	assert := assert.New(t)
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.go":    "package main\n",
		"src/app.py": "print('hi')", // no trailing newline
	})
	paths := []string{
		filepath.Join(root, "main.go"),
		filepath.Join(root, "src", "app.py"),
	}

	var b strings.Builder
	stats, err := WriteFileMap(&b, root, paths, FormatMarkdown, metrics.HeuristicCounter{})
	require.NoError(t, err)

	out := b.String()
	assert.Contains(out, "# Project: "+filepath.Base(root))
	assert.Contains(out, "2 files collected.")
	assert.Contains(out, "## File: main.go\n\n```go\npackage main\n```")
	// A missing trailing newline is added before the closing fence.
	assert.Contains(out, "## File: src/app.py\n\n```python\nprint('hi')\n```")

	assert.Equal(2, stats.Files)
	assert.Equal(len("package main\n")+len("print('hi')"), stats.Bytes)
	assert.Equal(3, stats.Lines)
}

func TestWriteFileMapPlain(t *testing.T) {
	assert := assert.New(t)
	root := t.TempDir()
	writeTree(t, root, map[string]string{"notes.txt": "hello\n"})

	var b strings.Builder
	_, err := WriteFileMap(&b, root, []string{filepath.Join(root, "notes.txt")}, FormatPlain, metrics.HeuristicCounter{})
	require.NoError(t, err)

	out := b.String()
	assert.Contains(out, "Project: "+filepath.Base(root))
	assert.Contains(out, "File: notes.txt")
	assert.Contains(out, strings.Repeat("=", 60))
	assert.Contains(out, "hello\n")
	assert.NotContains(out, "```")
}

func TestWriteFileMapUnreadable(t *testing.T) {
	assert := assert.New(t)
	root := t.TempDir()
	writeTree(t, root, map[string]string{"ok.txt": "fine\n"})

	paths := []string{
		filepath.Join(root, "gone.txt"),
		filepath.Join(root, "ok.txt"),
	}
	var b strings.Builder
	stats, err := WriteFileMap(&b, root, paths, FormatMarkdown, metrics.HeuristicCounter{})
	require.NoError(t, err)

	assert.Contains(b.String(), "<!-- unreadable: gone.txt -->")
	assert.Contains(b.String(), "fine")
	assert.Equal(1, stats.Files)

	// The plain format gets a plain marker, not an HTML comment.
	var p strings.Builder
	_, err = WriteFileMap(&p, root, paths, FormatPlain, metrics.HeuristicCounter{})
	require.NoError(t, err)
	assert.Contains(p.String(), "[unreadable: gone.txt]")
	assert.NotContains(p.String(), "<!--")
}

func TestLanguageForExt(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("go", languageForExt(".go"))
	assert.Equal("python", languageForExt(".py"))
	assert.Equal("typescript", languageForExt(".TSX"))
	assert.Equal("", languageForExt(".weird"))
	assert.Equal("", languageForExt(""))
}

func TestWriteFileMapStatsTokens(t *testing.T) {
	root := t.TempDir()
	content := strings.Repeat("abcd", 25) + "\n" // 101 bytes
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte(content), 0o644))

	var b strings.Builder
	stats, err := WriteFileMap(&b, root, []string{filepath.Join(root, "a.txt")}, FormatMarkdown, metrics.HeuristicCounter{})
	require.NoError(t, err)

	// The heuristic counter estimates one token per four bytes.
	assert.Equal(t, len(content)/4, stats.Tokens)
}
