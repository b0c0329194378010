package codecollect

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hayeah/codecollect/internal/metrics"
)

// Format selects the concatenated output flavor.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatPlain    Format = "txt"
)

// ParseFormat validates a format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatMarkdown, FormatPlain:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown format %q (want md or txt)", s)
	}
}

// WriteStats summarizes one written filemap.
type WriteStats struct {
	Files int
	metrics.Stats
}

// WriteFileMap concatenates the given files to w in the requested format.
// Paths are absolute; headers show them relative to root. Files that
// disappear between scan and write are skipped with a placeholder rather
// than failing the whole document.
func WriteFileMap(w io.Writer, root string, paths []string, format Format, counter metrics.Counter) (WriteStats, error) {
	var stats WriteStats

	project := filepath.Base(root)
	switch format {
	case FormatPlain:
		fmt.Fprintf(w, "Project: %s\nFiles: %d\n\n", project, len(paths))
	default:
		fmt.Fprintf(w, "# Project: %s\n\n%d files collected.\n\n", project, len(paths))
	}

	for _, path := range paths {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		content, err := os.ReadFile(path)
		if err != nil {
			switch format {
			case FormatPlain:
				fmt.Fprintf(w, "[unreadable: %s]\n\n", rel)
			default:
				fmt.Fprintf(w, "<!-- unreadable: %s -->\n\n", rel)
			}
			continue
		}
		text := string(content)
		stats.Files++
		stats.Add(counter.Count(text))

		switch format {
		case FormatPlain:
			fmt.Fprintf(w, "%s\nFile: %s\n%s\n", strings.Repeat("=", 60), rel, strings.Repeat("=", 60))
			fmt.Fprint(w, text)
			if !strings.HasSuffix(text, "\n") {
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w)
		default:
			fmt.Fprintf(w, "## File: %s\n\n```%s\n", rel, languageForExt(filepath.Ext(rel)))
			fmt.Fprint(w, text)
			if !strings.HasSuffix(text, "\n") {
				fmt.Fprintln(w)
			}
			fmt.Fprint(w, "```\n\n")
		}
	}

	return stats, nil
}

// languageForExt maps a file extension to a fenced-code-block language tag.
func languageForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".go":
		return "go"
	case ".py":
		return "python"
	case ".js", ".jsx":
		return "javascript"
	case ".ts", ".tsx":
		return "typescript"
	case ".rb":
		return "ruby"
	case ".rs":
		return "rust"
	case ".java":
		return "java"
	case ".c", ".h":
		return "c"
	case ".cpp", ".hpp":
		return "cpp"
	case ".cs":
		return "csharp"
	case ".php":
		return "php"
	case ".html":
		return "html"
	case ".css":
		return "css"
	case ".scss", ".less":
		return "css"
	case ".md":
		return "markdown"
	case ".json":
		return "json"
	case ".xml":
		return "xml"
	case ".yaml", ".yml":
		return "yaml"
	case ".toml", ".ini", ".conf":
		return "ini"
	case ".sh", ".bash":
		return "bash"
	case ".sql":
		return "sql"
	case ".vue":
		return "vue"
	default:
		return ""
	}
}
