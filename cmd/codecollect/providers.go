package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	codecollect "github.com/hayeah/codecollect"
	"github.com/hayeah/codecollect/ignore"
	"github.com/hayeah/codecollect/internal/metrics"
	"github.com/hayeah/codecollect/internal/settings"
)

// RootPath is the validated absolute project root.
type RootPath string

func ProvideLogger(args Args) *slog.Logger {
	level := slog.LevelWarn
	if args.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func ProvideRoot(args Args) (RootPath, error) {
	dir := args.Dir
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("invalid directory %q: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("cannot access %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", abs)
	}
	return RootPath(abs), nil
}

func ProvideRules(root RootPath, args Args, logger *slog.Logger) *ignore.Rules {
	return codecollect.LoadRules(string(root), args.IgnoreFile, logger)
}

func ProvideCollector(root RootPath, rules *ignore.Rules, logger *slog.Logger) *codecollect.Collector {
	return codecollect.NewCollector(string(root), rules, logger)
}

func ProvideCounter(args Args, logger *slog.Logger) metrics.Counter {
	if args.TokenEstimator == "tiktoken" {
		c, err := metrics.NewTiktokenCounter("cl100k_base")
		if err != nil {
			logger.Warn("tiktoken unavailable, falling back to heuristic", "error", err)
			return metrics.HeuristicCounter{}
		}
		return c
	}
	return metrics.HeuristicCounter{}
}

func ProvideSettings(root RootPath, logger *slog.Logger) *settings.Store {
	return settings.NewStore(string(root), logger)
}
