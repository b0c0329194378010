// Package codecollect scans a project directory, filters the candidates,
// and concatenates a selected subset into a single reviewable document.
package codecollect

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/hayeah/codecollect/ignore"
)

// CollectOptions controls the flat candidate ordering.
type CollectOptions struct {
	// SortByModTime orders the result newest-first instead of lexically.
	// This affects only the flat list; the selection tree applies its own
	// structural sort.
	SortByModTime bool
}

// Collector walks a root directory and produces the filtered candidate
// list of absolute file paths.
type Collector struct {
	Root   string
	Rules  *ignore.Rules
	Logger *slog.Logger
}

// NewCollector creates a Collector rooted at the given absolute path.
func NewCollector(root string, rules *ignore.Rules, logger *slog.Logger) *Collector {
	return &Collector{Root: root, Rules: rules, Logger: logger}
}

// Collect walks the tree and returns every file that survives the ignore
// patterns, the static filters, the text heuristic, and the zero-length
// check. Unreadable entries are skipped, not fatal.
func (c *Collector) Collect(opts CollectOptions) ([]string, error) {
	type candidate struct {
		path    string
		modTime time.Time
	}
	var candidates []candidate

	err := filepath.WalkDir(c.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if c.Logger != nil {
				c.Logger.Warn("skipping unreadable entry", "path", path, "error", err)
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == c.Root {
			return nil
		}

		rel, relErr := filepath.Rel(c.Root, path)
		if d.IsDir() {
			if ignore.SkipDir(d.Name()) {
				return filepath.SkipDir
			}
			// Pattern checks fail open when the path cannot be
			// relativized.
			if relErr == nil && c.Rules.Ignored(filepath.ToSlash(rel)) {
				return filepath.SkipDir
			}
			return nil
		}

		if relErr != nil {
			// Should not happen for entries under the root; skip
			// defensively rather than crash.
			return nil
		}
		relSlash := filepath.ToSlash(rel)

		if c.Rules.Ignored(relSlash) {
			return nil
		}
		if ignore.HasSkippedAncestor(relSlash) {
			return nil
		}
		if ignore.SkipFile(d.Name()) {
			return nil
		}
		if !ignore.IsTextFile(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil || info.Size() == 0 {
			return nil
		}

		candidates = append(candidates, candidate{path: path, modTime: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if opts.SortByModTime {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].modTime.After(candidates[j].modTime)
		})
	} else {
		sort.Slice(candidates, func(i, j int) bool {
			return candidates[i].path < candidates[j].path
		})
	}

	files := make([]string, len(candidates))
	for i, cand := range candidates {
		files[i] = cand.path
	}
	return files, nil
}

// LoadRules reads the ignore file (relative to the collector root when not
// absolute) into a pattern matcher. Missing files yield an empty rule set.
func LoadRules(root, ignoreFile string, logger *slog.Logger) *ignore.Rules {
	path := ignoreFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, ignoreFile)
	}
	patterns := ignore.LoadPatterns(path, logger)
	if logger != nil {
		logger.Debug("loaded ignore patterns", "path", path, "count", len(patterns))
	}
	return ignore.NewRules(patterns)
}
