package internal

import (
	"fmt"
	"os"

	"github.com/shardeum/sec-im-cleanup/internal/js"
	"github.com/shardeum/sec-im-cleanup/internal/rewrite"
)

// Engine runs the per-file rewrite pipeline: parse, strip instrumentation
// calls, simplify single-statement blocks, print, filter blank lines.
type Engine struct {
	matcher *rewrite.Matcher
	marker  string
}

// Result is the outcome of processing one source file.
type Result struct {
	Changed bool
	Output  string
}

// NewEngine creates an engine for the given logging sink pair, denylist of
// removable method names, and comment preservation marker.
func NewEngine(sinkObject, sinkMethod string, denylist []string, marker string) *Engine {
	return &Engine{
		matcher: rewrite.NewMatcher(sinkObject, sinkMethod, denylist),
		marker:  marker,
	}
}

// RunSource processes source text and returns the rewritten output. Changed
// is true when the output differs from the input.
func (e *Engine) RunSource(source []byte) (Result, error) {
	prog, err := js.Parse(string(source))
	if err != nil {
		return Result{}, err
	}

	prog = rewrite.RemoveCalls(prog, e.matcher)
	prog = rewrite.SimplifyBlocks(prog)

	text := js.Print(prog, js.Options{PreserveComments: true, Marker: e.marker})
	text = rewrite.FilterLines(text, e.marker)

	return Result{Changed: text != string(source), Output: text}, nil
}

// ProcessFile runs the pipeline on a file. In live mode a changed file is
// rewritten in place with its original permissions; dry runs never write.
// Failed files are always left untouched.
func (e *Engine) ProcessFile(path string, dryRun bool) (Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to stat file: %w", err)
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read file: %w", err)
	}

	res, err := e.RunSource(source)
	if err != nil {
		return Result{}, err
	}

	if res.Changed && !dryRun {
		if err := os.WriteFile(path, []byte(res.Output), info.Mode().Perm()); err != nil {
			return Result{}, fmt.Errorf("failed to write file: %w", err)
		}
	}
	return res, nil
}
