package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher re-runs the engine on source files as they change.
type Watcher struct {
	engine     *Engine
	logger     *zap.Logger
	watcher    *fsnotify.Watcher
	extensions map[string]bool
	exclude    map[string]bool
	dryRun     bool
	isWatching atomic.Bool
}

// NewWatcher creates a watcher over the engine. In dry-run mode changes are
// reported but never written back.
func NewWatcher(engine *Engine, logger *zap.Logger, extensions, exclude []string, dryRun bool) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		engine:     engine,
		logger:     logger,
		watcher:    fsw,
		extensions: make(map[string]bool, len(extensions)),
		exclude:    make(map[string]bool, len(exclude)),
		dryRun:     dryRun,
	}
	for _, ext := range extensions {
		w.extensions[ext] = true
	}
	for _, name := range exclude {
		w.exclude[name] = true
	}
	return w, nil
}

// Start registers the directory tree and begins the watch loop.
func (w *Watcher) Start(root string) error {
	if w.isWatching.Load() {
		return fmt.Errorf("already watching")
	}

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if w.exclude[info.Name()] && path != root {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
	if err != nil {
		return fmt.Errorf("error adding directory to watcher: %w", err)
	}

	w.isWatching.Store(true)
	go w.watchLoop()
	return nil
}

// Stop ends the watch loop.
func (w *Watcher) Stop() error {
	w.isWatching.Store(false)
	return w.watcher.Close()
}

func (w *Watcher) watchLoop() {
	for w.isWatching.Load() {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFileEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Write != fsnotify.Write {
		return
	}
	if !w.extensions[filepath.Ext(event.Name)] {
		return
	}
	// coalesce editor write bursts into one run
	time.Sleep(100 * time.Millisecond)

	res, err := w.engine.ProcessFile(event.Name, w.dryRun)
	if err != nil {
		w.logger.Error("error processing file", zap.String("file", event.Name), zap.Error(err))
		return
	}
	if res.Changed {
		w.logger.Info("changed", zap.String("file", event.Name))
	} else {
		w.logger.Info("unchanged", zap.String("file", event.Name))
	}
}
