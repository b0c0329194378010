// Package settings persists the per-project selection between runs.
//
// The document lives at <root>/.codecollect/<project>.json and stores the
// selection as two sets of root-relative, forward-slash paths: individual
// files, and folders that were fully selected at save time. Folder entries
// are a compaction, and on reload they dominate file entries beneath them.
package settings

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const settingsDirName = ".codecollect"

// Preferences are the non-selection knobs remembered per project.
type Preferences struct {
	Format        string `json:"format"`
	SortByModTime bool   `json:"sort_by_mod_time"`
}

// Document is the on-disk settings schema.
type Document struct {
	ProjectName     string      `json:"project_name"`
	FullPath        string      `json:"full_path"`
	LastUpdated     time.Time   `json:"last_updated"`
	Preferences     Preferences `json:"preferences"`
	SelectedFiles   []string    `json:"selected_files"`
	SelectedFolders []string    `json:"selected_folders"`
}

// Store reads and writes the settings document for one project root.
type Store struct {
	Root   string
	Logger *slog.Logger
}

// NewStore creates a Store for the given absolute project root.
func NewStore(root string, logger *slog.Logger) *Store {
	return &Store{Root: root, Logger: logger}
}

// Dir returns the settings directory for the project.
func (s *Store) Dir() string {
	return filepath.Join(s.Root, settingsDirName)
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return filepath.Join(s.Dir(), filepath.Base(s.Root)+".json")
}

// Load returns the saved document, or nil when there is none. A document
// saved for a different absolute root is treated as absent; a corrupt file
// is logged and skipped. Loading never fails the run.
func (s *Store) Load() *Document {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) && s.Logger != nil {
			s.Logger.Warn("cannot read project settings", "path", s.Path(), "error", err)
		}
		return nil
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		if s.Logger != nil {
			s.Logger.Warn("corrupt project settings", "path", s.Path(), "error", err)
		}
		return nil
	}
	if doc.FullPath != s.Root {
		return nil
	}
	return &doc
}

// Save writes the document, creating the settings directory if needed, and
// registers the settings directory in the project's .gitignore.
func (s *Store) Save(doc *Document) error {
	doc.ProjectName = filepath.Base(s.Root)
	doc.FullPath = s.Root
	doc.LastUpdated = time.Now()

	if err := os.MkdirAll(s.Dir(), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.Path(), data, 0o644); err != nil {
		return err
	}
	s.updateGitignore()
	return nil
}

// FilterExisting drops saved paths that no longer exist on disk and returns
// the survivors as lookup sets, ready for reconciliation against a freshly
// built tree.
func (s *Store) FilterExisting(files, folders []string) (map[string]bool, map[string]bool) {
	existingFiles := make(map[string]bool)
	for _, rel := range files {
		if info, err := os.Stat(filepath.Join(s.Root, filepath.FromSlash(rel))); err == nil && !info.IsDir() {
			existingFiles[rel] = true
		}
	}
	existingFolders := make(map[string]bool)
	for _, rel := range folders {
		if info, err := os.Stat(filepath.Join(s.Root, filepath.FromSlash(rel))); err == nil && info.IsDir() {
			existingFolders[rel] = true
		}
	}
	return existingFiles, existingFolders
}

// updateGitignore appends ".codecollect/" to the project's .gitignore when
// it is not already mentioned. Failures are ignored: the worst case is a
// noisy git status.
func (s *Store) updateGitignore() {
	gitignorePath := filepath.Join(s.Root, ".gitignore")
	entry := settingsDirName + "/"

	existing, err := os.ReadFile(gitignorePath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return
	}
	for _, line := range strings.Split(string(existing), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == entry || trimmed == settingsDirName {
			return
		}
	}

	f, err := os.OpenFile(gitignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	if len(existing) > 0 && !strings.HasSuffix(string(existing), "\n") {
		f.WriteString("\n")
	}
	f.WriteString(entry + "\n")
}
