// Package watch re-validates the spec tree whenever files under the
// configured root change.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/ternarybob/specgate/internal/config"
	"github.com/ternarybob/specgate/internal/logger"
	"github.com/ternarybob/specgate/pkg/spec"
)

// Watcher monitors the spec root and re-runs validation after changes
// settle. Events are debounced so a burst of writes triggers one run.
type Watcher struct {
	cfg     *config.Config
	watcher *fsnotify.Watcher

	running bool
	stopCh  chan struct{}
	mu      sync.RWMutex

	// Debouncing state
	pending   map[string]time.Time
	pendingMu sync.Mutex
}

// NewWatcher creates a new spec tree watcher.
func NewWatcher(cfg *config.Config) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	return &Watcher{
		cfg:     cfg,
		watcher: fsWatcher,
		stopCh:  make(chan struct{}),
		pending: make(map[string]time.Time),
	}, nil
}

// Start begins watching for spec changes.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.addDirectories(); err != nil {
		return fmt.Errorf("add directories: %w", err)
	}

	go w.processEvents()
	go w.processDebounced()

	logger.GetLogger().Info().
		Str("root", w.cfg.Specs.Root).
		Msg("Spec watcher started")

	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	w.running = false
	close(w.stopCh)

	return w.watcher.Close()
}

// IsRunning returns whether the watcher is active.
func (w *Watcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// addDirectories recursively adds directories under the spec root.
func (w *Watcher) addDirectories() error {
	return filepath.Walk(w.cfg.Specs.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			return nil
		}

		rel, _ := filepath.Rel(w.cfg.Specs.Root, path)
		if w.shouldSkipDir(rel) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			// Some directories may not be accessible; keep going.
			logger.GetLogger().Warn().
				Str("path", path).
				Err(err).
				Msg("Cannot watch directory")
		}

		return nil
	})
}

// shouldSkipDir checks if a directory should be skipped.
func (w *Watcher) shouldSkipDir(relPath string) bool {
	skip := w.cfg.Specs.Excludes
	if len(skip) == 0 {
		skip = spec.DefaultExcludes
	}

	for _, dir := range skip {
		if relPath == dir || strings.HasPrefix(relPath, dir+string(filepath.Separator)) {
			return true
		}
	}

	return false
}

// processEvents handles file system events.
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Only markdown documents are spec candidates.
			if !strings.HasSuffix(event.Name, ".md") {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			w.pendingMu.Lock()
			w.pending[event.Name] = time.Now()
			w.pendingMu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.GetLogger().Warn().Err(err).Msg("Watcher error")
		}
	}
}

// processDebounced re-validates once pending changes have settled.
func (w *Watcher) processDebounced() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return

		case <-ticker.C:
			if w.drainStable() {
				w.revalidate()
			}
		}
	}
}

// drainStable clears pending entries that have been quiet for the
// debounce window and reports whether any were cleared.
func (w *Watcher) drainStable() bool {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	now := time.Now()
	debounce := time.Duration(w.cfg.Watch.DebounceMs) * time.Millisecond

	drained := false
	for path, ts := range w.pending {
		if now.Sub(ts) < debounce {
			continue
		}
		delete(w.pending, path)
		drained = true
	}
	return drained
}

// revalidate runs a full validation batch over the spec root and logs
// the outcome.
func (w *Watcher) revalidate() {
	result, err := spec.ValidateSet(spec.ValidateOptions{
		Root:         w.cfg.Specs.Root,
		RegistryPath: w.cfg.Specs.Registry,
		AllowEmpty:   true,
	})
	if err != nil {
		logger.GetLogger().Warn().Err(err).Msg("Revalidation failed")
		return
	}

	log := logger.GetLogger().Info().
		Int("documents", len(result.Documents)).
		Int("issues", len(result.Issues))
	if result.Passed() {
		log.Msg("Spec tree revalidated: pass")
		return
	}
	log.Msg("Spec tree revalidated: fail")
	for _, issue := range result.Issues {
		logger.GetLogger().Warn().
			Str("file", issue.File).
			Str("category", string(issue.Category)).
			Msg(issue.Message)
	}
}
