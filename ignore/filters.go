package ignore

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
)

// skipDirs are directory names that are never collected, wherever they
// appear in the tree.
var skipDirs = map[string]struct{}{
	".git":         {},
	".vscode":      {},
	"__pycache__":  {},
	"node_modules": {},
	"vendor":       {},
	"venv":         {},
}

// skipFiles are exact file names that are never collected.
var skipFiles = map[string]struct{}{
	".DS_Store":  {},
	".env":       {},
	".gitignore": {},
}

// skipExtensions are file extensions that are never collected.
var skipExtensions = map[string]struct{}{
	".log": {},
	".pyc": {},
	".pyo": {},
	".tmp": {},
}

// textExtensions is the allowlist for the text-file heuristic.
var textExtensions = map[string]struct{}{
	".bat": {}, ".c": {}, ".conf": {}, ".cpp": {}, ".css": {},
	".dockerfile": {}, ".gitignore": {}, ".go": {}, ".h": {},
	".htaccess": {}, ".html": {}, ".ini": {}, ".java": {}, ".js": {},
	".json": {}, ".jsx": {}, ".less": {}, ".md": {}, ".php": {},
	".pl": {}, ".py": {}, ".rb": {}, ".rs": {}, ".scss": {}, ".sh": {},
	".sql": {}, ".ts": {}, ".tsx": {}, ".txt": {}, ".vue": {},
	".xml": {}, ".yaml": {}, ".yml": {},
}

// SkipDir reports whether a directory name is on the static denylist.
func SkipDir(name string) bool {
	_, ok := skipDirs[name]
	return ok
}

// SkipFile reports whether a file name is excluded outright by name,
// extension, or the .env* prefix convention.
func SkipFile(name string) bool {
	if _, ok := skipFiles[name]; ok {
		return true
	}
	if _, ok := skipExtensions[strings.ToLower(filepath.Ext(name))]; ok {
		return true
	}
	return strings.HasPrefix(name, ".env")
}

// HasSkippedAncestor reports whether any ancestor directory segment of the
// root-relative path is on the static directory denylist. The final segment
// (the file itself) is not considered.
func HasSkippedAncestor(relPath string) bool {
	segments := strings.Split(filepath.ToSlash(relPath), "/")
	for _, seg := range segments[:max(len(segments)-1, 0)] {
		if SkipDir(seg) {
			return true
		}
	}
	return false
}

// sniffLen is how much of an extensionless file is inspected for null
// bytes before deciding whether it is text.
const sniffLen = 1024

// IsTextFile reports whether the file at path looks like text. Files with a
// known text extension pass immediately; extensionless files are sniffed
// for null bytes; everything else is rejected.
func IsTextFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := textExtensions[ext]; ok {
		return true
	}
	if ext != "" {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := f.Read(buf)
	if n == 0 && err != nil {
		// Unreadable or empty; the zero-length check excludes it anyway.
		return err == nil
	}
	return !bytes.ContainsRune(buf[:n], 0)
}
