package clean

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/shardeum/sec-im-cleanup/internal"
	"github.com/shardeum/sec-im-cleanup/scanner"
)

// Engine is the per-file processing contract the batch driver consumes.
type Engine interface {
	ProcessFile(path string, dryRun bool) (internal.Result, error)
	RunSource(source []byte) (internal.Result, error)
}

// New builds an engine from a configuration file path. A missing file at the
// default location falls back to the built-in defaults.
func New(configurationPath string) (*internal.Engine, Config, error) {
	config, err := ParseConfig(configurationPath)
	if err != nil {
		return nil, Config{}, err
	}
	engine := internal.NewEngine(config.SinkObject, config.SinkMethod, config.Denylist, config.Marker)
	return engine, config, nil
}

// FileResult pairs a processed path with its outcome. Err is set when the
// file was skipped because of a parse or IO failure.
type FileResult struct {
	Path   string
	Result internal.Result
	Err    error
}

// Summary counts outcomes across one batch run.
type Summary struct {
	Changed int
	Skipped int
	Failed  int
}

// ProcessPath enumerates source files under root and runs the engine on
// each. Files are independent, so they are processed by a bounded worker
// pool; a failure in one file never aborts its siblings. Results come back
// sorted by path.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	root string,
	dryRun bool,
	config Config,
) ([]FileResult, Summary, error) {
	files, err := scanner.New(root, config.Extensions, config.ExcludeDirs).Scan()
	if err != nil {
		return nil, Summary{}, err
	}

	var (
		mu      sync.Mutex
		results []FileResult
	)

	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	var bar *progressbar.ProgressBar
	if len(files) > 1 {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription(root),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	for _, path := range files {
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, Summary{}, ctx.Err()
		default:
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(fp string) {
			defer wg.Done()
			defer func() { <-sem }()

			res, err := engine.ProcessFile(fp, dryRun)
			mu.Lock()
			results = append(results, FileResult{Path: fp, Result: res, Err: err})
			mu.Unlock()
			if bar != nil {
				_ = bar.Add(1)
			}
		}(path)
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	var summary Summary
	for _, r := range results {
		switch {
		case r.Err != nil:
			summary.Failed++
			logger.Error("error processing file", zap.String("file", r.Path), zap.Error(r.Err))
		case r.Result.Changed:
			summary.Changed++
			logger.Info("changed", zap.String("file", r.Path))
		default:
			summary.Skipped++
			logger.Info("skipped", zap.String("file", r.Path))
		}
	}
	return results, summary, nil
}

// String renders the summary as a one-line report.
func (s Summary) String() string {
	return fmt.Sprintf("%d changed, %d skipped, %d failed", s.Changed, s.Skipped, s.Failed)
}
