package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shardeum/sec-im-cleanup/clean"
	"github.com/shardeum/sec-im-cleanup/internal"
)

var (
	dryRun     bool
	jsonOutput bool
)

var runCmd = &cobra.Command{
	Use:   "run [directory]",
	Short: "Process a source tree, rewriting files in place",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root := "."
		if len(args) > 0 {
			root = args[0]
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, config, err := clean.New(cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize engine", zap.Error(err))
		}

		results, summary, err := clean.ProcessPath(ctx, logger, engine, root, dryRun, config)
		if err != nil {
			logger.Error("error processing directory", zap.String("path", root), zap.Error(err))
			os.Exit(1)
		}

		if dryRun {
			reportDryRun(results)
		}
		fmt.Println(summary)
	},
}

func init() {
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show rewrites without applying them")
	runCmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the dry-run report as JSON")
}

type fileReport struct {
	Path    string `json:"path"`
	Changed bool   `json:"changed"`
	Output  string `json:"output,omitempty"`
	Error   string `json:"error,omitempty"`
}

func reportDryRun(results []clean.FileResult) {
	if jsonOutput {
		reports := make([]fileReport, 0, len(results))
		for _, r := range results {
			report := fileReport{Path: r.Path, Changed: r.Result.Changed}
			if r.Result.Changed {
				report.Output = r.Result.Output
			}
			if r.Err != nil {
				report.Error = r.Err.Error()
			}
			reports = append(reports, report)
		}
		d, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			logger.Error("error marshaling report", zap.Error(err))
			return
		}
		fmt.Println(string(d))
		return
	}

	for _, r := range results {
		if r.Err != nil || !r.Result.Changed {
			continue
		}
		before, err := os.ReadFile(r.Path)
		if err != nil {
			logger.Error("error reading source file", zap.String("file", r.Path), zap.Error(err))
			continue
		}
		fmt.Println(internal.FormatChange(r.Path, string(before), r.Result.Output))
	}
}
