package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	codecollect "github.com/hayeah/codecollect"
	"github.com/hayeah/codecollect/internal/history"
	"github.com/hayeah/codecollect/internal/metrics"
	"github.com/hayeah/codecollect/internal/settings"
	"github.com/hayeah/codecollect/internal/tree"
)

const historyFileName = "history.db"

// Runner orchestrates one collection run: scan, select, write, remember.
type Runner struct {
	Args      Args
	Root      RootPath
	Collector *codecollect.Collector
	Settings  *settings.Store
	Counter   metrics.Counter
	Logger    *slog.Logger
}

func (r *Runner) Run() error {
	if r.Args.History > 0 {
		return r.showHistory(r.Args.History)
	}

	format, err := codecollect.ParseFormat(r.Args.Format)
	if err != nil {
		return err
	}

	var doc *settings.Document
	if !r.Args.NoSettings {
		doc = r.Settings.Load()
	}

	started := time.Now()
	root := string(r.Root)

	files, err := r.Collector.Collect(codecollect.CollectOptions{SortByModTime: r.Args.SortTime})
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "no candidate files found")
		return nil
	}
	r.Logger.Debug("scan complete", "root", root, "files", len(files))

	var (
		selected    []string
		pickerTree  *tree.Node
		interactive bool
	)
	switch {
	case r.Args.All:
		selected = files
	case r.Args.Select != "":
		matched, err := selectByPattern(relativize(root, files), r.Args.Select)
		if err != nil {
			return err
		}
		selected = absolutize(root, matched)
	default:
		interactive = true
		pickerTree = tree.Build(root, files)
		if doc != nil {
			savedFiles, savedFolders := r.Settings.FilterExisting(doc.SelectedFiles, doc.SelectedFolders)
			pickerTree.ApplySavedSelection(root, savedFiles, savedFolders)
		}
		selected, err = runPicker(pickerTree, root)
		if err != nil {
			return fmt.Errorf("picker failed: %w", err)
		}
	}

	if len(selected) == 0 {
		fmt.Fprintln(os.Stderr, "nothing selected")
		return nil
	}

	out := io.Writer(os.Stdout)
	if r.Args.Output != "" {
		f, err := os.Create(r.Args.Output)
		if err != nil {
			return fmt.Errorf("cannot create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	stats, err := codecollect.WriteFileMap(out, root, selected, format, r.Counter)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "collected %d files (%d bytes, ~%d tokens, %d lines)\n",
		stats.Files, stats.Bytes, stats.Tokens, stats.Lines)

	if interactive && !r.Args.NoSettings {
		r.saveSelection(pickerTree, format)
	}
	if !r.Args.NoSettings {
		r.recordRun(history.Run{
			Root:          root,
			StartedAt:     started,
			FilesScanned:  len(files),
			FilesSelected: stats.Files,
			Bytes:         stats.Bytes,
			Tokens:        stats.Tokens,
			OutputPath:    r.Args.Output,
			Format:        string(format),
		})
	}
	return nil
}

// saveSelection persists the picker result, compacting fully selected
// directories into folder entries. Failures are warnings, not errors.
func (r *Runner) saveSelection(pickerTree *tree.Node, format codecollect.Format) {
	root := string(r.Root)
	doc := &settings.Document{
		Preferences: settings.Preferences{
			Format:        string(format),
			SortByModTime: r.Args.SortTime,
		},
		SelectedFiles:   relativize(root, pickerTree.SelectedFiles()),
		SelectedFolders: pickerTree.SelectedFolders(root),
	}
	if err := r.Settings.Save(doc); err != nil {
		r.Logger.Warn("cannot save project settings", "error", err)
	}
}

func (r *Runner) recordRun(run history.Run) {
	if err := os.MkdirAll(r.Settings.Dir(), 0o755); err != nil {
		r.Logger.Warn("cannot create settings dir", "error", err)
		return
	}
	store, err := history.Open(filepath.Join(r.Settings.Dir(), historyFileName), r.Logger)
	if err != nil {
		r.Logger.Warn("cannot open history db", "error", err)
		return
	}
	defer store.Close()
	if err := store.Record(run); err != nil {
		r.Logger.Warn("cannot record run", "error", err)
	}
}

func (r *Runner) showHistory(limit int) error {
	store, err := history.Open(filepath.Join(r.Settings.Dir(), historyFileName), r.Logger)
	if err != nil {
		return fmt.Errorf("no history for this project: %w", err)
	}
	defer store.Close()

	runs, err := store.Recent(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}
	for _, run := range runs {
		dest := run.OutputPath
		if dest == "" {
			dest = "(stdout)"
		}
		fmt.Printf("%s  %d/%d files  %d bytes  ~%d tokens  %s  %s\n",
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.FilesSelected, run.FilesScanned,
			run.Bytes, run.Tokens, run.Format, dest)
	}
	return nil
}

// relativize converts absolute paths under root to forward-slash relative
// paths, dropping anything that escapes the root.
func relativize(root string, paths []string) []string {
	rels := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			continue
		}
		rels = append(rels, filepath.ToSlash(rel))
	}
	return rels
}

func absolutize(root string, rels []string) []string {
	paths := make([]string, 0, len(rels))
	for _, rel := range rels {
		paths = append(paths, filepath.Join(root, filepath.FromSlash(rel)))
	}
	return paths
}
