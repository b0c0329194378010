// Package ignore decides which paths are excluded from a collection run.
//
// Two independent mechanisms are combined by the collector:
//
//  1. Rules: glob-style ignore patterns loaded from a version-control-style
//     ignore file (one pattern per line, # comments, blank lines skipped).
//  2. Static filters: fixed denylists of directory names, file names and
//     extensions, plus a text-file heuristic.
//
// Pattern matching is intentionally looser than gitignore: a bare pattern
// such as "node_modules" matches at any depth, and "*.log" matches a file
// anywhere in the tree, because that is how people actually write these
// files when they are not being checked by git itself.
package ignore

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Rules evaluates root-relative paths against an ordered list of ignore
// patterns. It is stateless after construction and safe for concurrent use.
type Rules struct {
	patterns []string
}

// NewRules creates a Rules matcher from already-parsed patterns.
func NewRules(patterns []string) *Rules {
	return &Rules{patterns: patterns}
}

// Patterns returns the parsed patterns, mostly for logging.
func (r *Rules) Patterns() []string {
	return r.patterns
}

// ParsePatterns reads ignore patterns from r, one per line. Blank lines and
// lines starting with # are skipped. A single leading "/" is stripped so
// root-anchored patterns still compare against relative paths.
func ParsePatterns(r io.Reader) []string {
	var patterns []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "/")
		patterns = append(patterns, line)
	}
	return patterns
}

// LoadPatterns parses the ignore file at path. A missing or unreadable file
// is not an error: the scan proceeds unfiltered by patterns, with a warning.
func LoadPatterns(path string, logger *slog.Logger) []string {
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) && logger != nil {
			logger.Warn("cannot read ignore file", "path", path, "error", err)
		}
		return nil
	}
	defer f.Close()
	return ParsePatterns(f)
}

// Ignored reports whether relPath (root-relative, forward-slash separated)
// matches any pattern. A path that is empty or escapes the root fails open.
func (r *Rules) Ignored(relPath string) bool {
	if len(r.patterns) == 0 {
		return false
	}
	relPath = strings.TrimPrefix(strings.ReplaceAll(relPath, "\\", "/"), "./")
	if relPath == "" || relPath == "." || strings.HasPrefix(relPath, "../") {
		return false
	}
	segments := strings.Split(relPath, "/")
	for _, pattern := range r.patterns {
		if matchPattern(pattern, relPath, segments) {
			return true
		}
	}
	return false
}

// matchPattern tries each matching rule in order; first match wins.
func matchPattern(pattern, relPath string, segments []string) bool {
	// Exact relative path.
	if relPath == pattern {
		return true
	}
	// Glob against the whole relative path.
	if globMatch(pattern, relPath) {
		return true
	}
	// Glob against every path suffix, so "build/out" matches
	// "a/b/build/out" without an explicit leading glob.
	for i := 1; i < len(segments); i++ {
		if globMatch(pattern, strings.Join(segments[i:], "/")) {
			return true
		}
	}
	// Glob against individual segments, so "node_modules" or "*.log"
	// matches at any depth.
	for _, seg := range segments {
		if globMatch(pattern, seg) {
			return true
		}
	}
	// Directory-style pattern: "foo/" matches any segment "foo".
	if dir, ok := strings.CutSuffix(pattern, "/"); ok {
		for _, seg := range segments {
			if globMatch(dir, seg) {
				return true
			}
		}
	}
	return false
}

func globMatch(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	// A malformed pattern matches nothing.
	return err == nil && ok
}
