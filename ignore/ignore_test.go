package ignore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePatterns(t *testing.T) {
	assert := assert.New(t)

	input := strings.Join([]string{
		"# comment",
		"",
		"  ",
		"*.log",
		"/dist",
		"node_modules/",
		"  build  ",
	}, "\n")

	patterns := ParsePatterns(strings.NewReader(input))
	assert.Equal([]string{"*.log", "dist", "node_modules/", "build"}, patterns)
}

func TestIgnoredDirectoryPattern(t *testing.T) {
	assert := assert.New(t)
	rules := NewRules([]string{"node_modules/"})

	assert.True(rules.Ignored("node_modules/x.js"))
	assert.True(rules.Ignored("a/b/node_modules/y.js"))
	assert.False(rules.Ignored("my_node_modules_folder/y.js"))
}

func TestIgnoredGlobPattern(t *testing.T) {
	assert := assert.New(t)
	rules := NewRules([]string{"*.log"})

	assert.True(rules.Ignored("app.log"))
	// Matches via the path-suffix rule: "*" does not cross "/".
	assert.True(rules.Ignored("logs/app.log"))
	assert.False(rules.Ignored("app.log.bak"))
}

func TestIgnoredExactAndSegment(t *testing.T) {
	assert := assert.New(t)
	rules := NewRules([]string{"docs/readme.txt", "dist"})

	assert.True(rules.Ignored("docs/readme.txt"))
	assert.False(rules.Ignored("docs/readme.md"))

	// Bare names match any single segment at any depth.
	assert.True(rules.Ignored("dist"))
	assert.True(rules.Ignored("dist/bundle.js"))
	assert.True(rules.Ignored("pkg/dist/bundle.js"))
	assert.False(rules.Ignored("distribution/bundle.js"))
}

func TestIgnoredSuffixRule(t *testing.T) {
	assert := assert.New(t)
	rules := NewRules([]string{"build/out"})

	assert.True(rules.Ignored("build/out"))
	assert.True(rules.Ignored("a/b/build/out"))
	assert.False(rules.Ignored("build/output"))
}

func TestIgnoredCharacterClasses(t *testing.T) {
	assert := assert.New(t)
	rules := NewRules([]string{"file?.txt", "[ab].md"})

	assert.True(rules.Ignored("file1.txt"))
	assert.False(rules.Ignored("file10.txt"))
	assert.True(rules.Ignored("notes/a.md"))
	assert.False(rules.Ignored("notes/c.md"))
}

func TestIgnoredFailsOpen(t *testing.T) {
	assert := assert.New(t)
	rules := NewRules([]string{"*"})

	assert.False(rules.Ignored(""))
	assert.False(rules.Ignored("."))
	assert.False(rules.Ignored("../outside.txt"))
}

func TestIgnoredEmptyRules(t *testing.T) {
	rules := NewRules(nil)
	if rules.Ignored("anything/at/all.go") {
		t.Fatal("empty rule set must not ignore anything")
	}
}

func TestIgnoredMalformedPattern(t *testing.T) {
	// An unterminated character class matches nothing instead of erroring.
	rules := NewRules([]string{"[oops"})
	if rules.Ignored("oops.txt") {
		t.Fatal("malformed pattern should match nothing")
	}
}

func TestLoadPatternsMissingFile(t *testing.T) {
	patterns := LoadPatterns("/nonexistent/.gitignore", nil)
	if patterns != nil {
		t.Fatalf("expected nil patterns for missing file, got %v", patterns)
	}
}
