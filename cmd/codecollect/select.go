package main

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// selectByPattern matches root-relative paths non-interactively. A pattern
// starting with "/" is a regular expression over the whole relative path;
// anything else is fuzzy-matched. Matches keep the flat candidate order.
func selectByPattern(paths []string, pattern string) ([]string, error) {
	if re, ok := strings.CutPrefix(pattern, "/"); ok {
		return selectRegex(paths, re)
	}
	return selectFuzzy(paths, pattern), nil
}

func selectRegex(paths []string, pattern string) ([]string, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern: %w", err)
	}
	var matched []string
	for _, p := range paths {
		if re.MatchString(p) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func selectFuzzy(paths []string, pattern string) []string {
	if pattern == "" {
		return paths
	}
	matches := fuzzy.Find(pattern, paths)
	indexes := make([]int, 0, len(matches))
	for _, match := range matches {
		indexes = append(indexes, match.Index)
	}
	sort.Ints(indexes)

	matched := make([]string, 0, len(indexes))
	for _, i := range indexes {
		matched = append(matched, paths[i])
	}
	return matched
}
