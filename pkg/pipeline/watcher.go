package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gnana997/testscaffold/pkg/parser"
)

// WatchOptions configures watch mode.
type WatchOptions struct {
	// DebounceMs groups rapid successive writes to the same file.
	DebounceMs int
	// IgnorePatterns are extra base-name patterns to skip.
	IgnorePatterns []string
	// Overwrite regenerates existing test files on change.
	Overwrite bool
}

// DefaultWatchOptions uses a 200ms debounce.
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{DebounceMs: 200}
}

// Watcher regenerates scaffolds as source files change. Each change batch
// per file collapses into one re-analysis after the debounce window.
type Watcher struct {
	watcher *fsnotify.Watcher
	runner  *Runner
	logger  *slog.Logger
	options WatchOptions

	debounceTimers map[string]*time.Timer
	debounceMu     sync.Mutex

	stopChan chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// NewWatcher creates a watcher driving the given runner.
func NewWatcher(runner *Runner, options WatchOptions, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if options.DebounceMs == 0 {
		options.DebounceMs = 200
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		watcher:        fsw,
		runner:         runner,
		logger:         logger,
		options:        options,
		debounceTimers: make(map[string]*time.Timer),
		stopChan:       make(chan struct{}),
	}, nil
}

// Start begins watching rootPath and its subdirectories. The event loop
// runs in a background goroutine until Stop.
func (w *Watcher) Start(rootPath string) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return fmt.Errorf("watcher already stopped")
	}
	w.mu.Unlock()

	if err := w.watcher.Add(rootPath); err != nil {
		return fmt.Errorf("failed to watch %s: %w", rootPath, err)
	}

	err := filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Continue on error.
		}
		if info.IsDir() {
			if w.shouldIgnore(path) {
				return filepath.SkipDir
			}
			if err := w.watcher.Add(path); err != nil {
				w.logger.Warn("failed to watch directory", "path", path, "error", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set up watches: %w", err)
	}

	w.logger.Info("file watcher started", "root", rootPath)
	go w.eventLoop()

	return nil
}

// Stop stops the watcher. Idempotent.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopChan)

	w.debounceMu.Lock()
	for _, timer := range w.debounceTimers {
		timer.Stop()
	}
	w.debounceTimers = make(map[string]*time.Timer)
	w.debounceMu.Unlock()

	err := w.watcher.Close()
	w.logger.Info("file watcher stopped")
	return err
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	filePath := event.Name

	if w.shouldIgnore(filePath) {
		return
	}
	if !parser.IsSupportedFile(filePath) {
		return
	}
	// Never react to our own output or to existing tests.
	base := filepath.Base(filePath)
	if strings.Contains(base, ".test.") || strings.Contains(base, ".spec.") || strings.Contains(base, ".stories.") {
		return
	}

	w.logger.Debug("file event", "op", event.Op.String(), "file", filePath)

	switch {
	case event.Op&fsnotify.Write == fsnotify.Write,
		event.Op&fsnotify.Create == fsnotify.Create:
		w.debounceRegenerate(filePath)

	case event.Op&fsnotify.Remove == fsnotify.Remove,
		event.Op&fsnotify.Rename == fsnotify.Rename:
		w.runner.InvalidateFile(filePath)
	}
}

// debounceRegenerate schedules a regeneration after the debounce window;
// repeated events within the window reset the timer.
func (w *Watcher) debounceRegenerate(filePath string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, exists := w.debounceTimers[filePath]; exists {
		timer.Stop()
	}

	w.debounceTimers[filePath] = time.AfterFunc(
		time.Duration(w.options.DebounceMs)*time.Millisecond,
		func() {
			w.regenerate(filePath)

			w.debounceMu.Lock()
			delete(w.debounceTimers, filePath)
			w.debounceMu.Unlock()
		},
	)
}

// regenerate re-analyzes one changed file and rewrites its scaffold.
func (w *Watcher) regenerate(filePath string) {
	w.runner.InvalidateFile(filePath)

	scaffold, testPath, err := w.runner.RenderFile(filePath)
	if err != nil {
		w.logger.Warn("failed to regenerate scaffold", "file", filePath, "error", err)
		return
	}
	if scaffold == "" {
		w.logger.Debug("nothing testable", "file", filePath)
		return
	}

	written, err := writeScaffold(filePath, scaffold, w.options.Overwrite)
	if err != nil {
		w.logger.Warn("failed to write scaffold", "file", filePath, "error", err)
		return
	}
	w.logger.Info("scaffold updated", "file", filePath, "test", testPath, "written", written)
}

// shouldIgnore filters build output and dependency directories.
func (w *Watcher) shouldIgnore(path string) bool {
	base := filepath.Base(path)

	for _, pattern := range w.options.IgnorePatterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}

	switch base {
	case "node_modules", ".git", "dist", "build", ".next":
		return true
	}
	return false
}

// Stats reports watcher state.
type WatcherStats struct {
	PendingRegenerations int
	IsRunning            bool
}

// GetStats returns current watcher statistics.
func (w *Watcher) GetStats() WatcherStats {
	w.debounceMu.Lock()
	pending := len(w.debounceTimers)
	w.debounceMu.Unlock()

	w.mu.Lock()
	running := !w.stopped
	w.mu.Unlock()

	return WatcherStats{
		PendingRegenerations: pending,
		IsRunning:            running,
	}
}
