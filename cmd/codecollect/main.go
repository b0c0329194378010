package main

import (
	"log"

	"github.com/alexflint/go-arg"
)

// Args defines the command-line interface.
type Args struct {
	Dir            string `arg:"positional" help:"project directory to scan (default: current directory)"`
	Output         string `arg:"-o,--output" help:"write the collected output to this file instead of stdout"`
	Format         string `arg:"-f,--format" default:"md" help:"output format: md or txt"`
	All            bool   `arg:"--all" help:"select every candidate file without the picker"`
	Select         string `arg:"--select" help:"non-interactive selection: fuzzy pattern, or /regex"`
	SortTime       bool   `arg:"--sort-time" help:"order flat output by modification time, newest first"`
	NoSettings     bool   `arg:"--no-settings" help:"do not load or save the project selection"`
	IgnoreFile     string `arg:"--ignore-file" default:".gitignore" help:"ignore file, relative to the project root"`
	TokenEstimator string `arg:"--token-estimator" default:"simple" help:"token estimator: simple or tiktoken"`
	History        int    `arg:"--history" help:"print the last N runs and exit"`
	Verbose        bool   `arg:"-v,--verbose" help:"enable debug logging"`
}

func main() {
	var args Args
	arg.MustParse(&args)

	runner, err := BuildRunner(args)
	if err != nil {
		log.Fatal(err)
	}
	if err := runner.Run(); err != nil {
		log.Fatal(err)
	}
}
