package codecollect

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayeah/codecollect/ignore"
)

// writeTree lays out files under root; map values are file contents.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func relAll(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func TestCollectFilters(t *testing.T) {
	assert := assert.New(t)
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.go":               "package main\n",
		"src/app.py":            "print('hi')\n",
		"src/empty.txt":         "",
		"node_modules/pkg/x.js": "skip\n",
		"vendor/lib/y.go":       "skip\n",
		".env":                  "SECRET=1\n",
		"build/cache.pyc":       "skip\n",
		"image.png":             "\x89PNG",
		"ignored/inside.txt":    "skip\n",
		"logs/app.log":          "skip\n",
		"docs/readme.md":        "# hi\n",
	})

	rules := ignore.NewRules([]string{"ignored/", "*.log"})
	c := NewCollector(root, rules, nil)
	files, err := c.Collect(CollectOptions{})
	require.NoError(t, err)

	assert.Equal([]string{"docs/readme.md", "main.go", "src/app.py"}, relAll(t, root, files))
}

func TestCollectSortByModTime(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"old.txt": "old\n",
		"mid.txt": "mid\n",
		"new.txt": "new\n",
	})

	base := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(root, "old.txt"), base, base))
	require.NoError(t, os.Chtimes(filepath.Join(root, "mid.txt"), base.Add(time.Minute), base.Add(time.Minute)))
	require.NoError(t, os.Chtimes(filepath.Join(root, "new.txt"), base.Add(2*time.Minute), base.Add(2*time.Minute)))

	c := NewCollector(root, ignore.NewRules(nil), nil)
	files, err := c.Collect(CollectOptions{SortByModTime: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"new.txt", "mid.txt", "old.txt"}, relAll(t, root, files))
}

func TestCollectEmptyRoot(t *testing.T) {
	c := NewCollector(t.TempDir(), ignore.NewRules(nil), nil)
	files, err := c.Collect(CollectOptions{})
	require.NoError(t, err)
	if len(files) != 0 {
		t.Fatalf("expected no candidates, got %v", files)
	}
}

func TestLoadRules(t *testing.T) {
	assert := assert.New(t)
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("*.log\n# note\n"), 0o644))

	rules := LoadRules(root, ".gitignore", nil)
	assert.Equal([]string{"*.log"}, rules.Patterns())

	// A missing ignore file yields an empty, usable rule set.
	empty := LoadRules(root, ".collectignore", nil)
	assert.Empty(empty.Patterns())
	assert.False(empty.Ignored("anything.log"))
}
