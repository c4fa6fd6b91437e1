package yamlrepo

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher hot-reloads a Repository when its recipes file changes. It
// watches the containing directory rather than the file itself, because
// editors often replace files by rename, and debounces rapid events
// (editors trigger multiple writes per save).
type Watcher struct {
	repo   *Repository
	fw     *fsnotify.Watcher
	logger *zap.Logger

	done    chan struct{}
	mu      sync.Mutex
	stopped bool
}

// NewWatcher creates a watcher over the repository's recipes file
func NewWatcher(repo *Repository, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		repo:   repo,
		fw:     fw,
		logger: logger,
		done:   make(chan struct{}),
	}, nil
}

// Start begins watching. Reloads happen on a background goroutine until
// Stop is called.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.repo.path)
	if err := w.fw.Add(dir); err != nil {
		return err
	}

	target := filepath.Clean(w.repo.path)
	const debounceInterval = 100 * time.Millisecond

	go func() {
		var lastEvent time.Time
		for {
			select {
			case <-w.done:
				return
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if time.Since(lastEvent) < debounceInterval {
					continue
				}
				lastEvent = time.Now()

				if err := w.repo.Reload(); err != nil {
					w.logger.Warn("recipe reload failed, keeping previous recipes",
						zap.String("path", w.repo.path),
						zap.Error(err))
				}
			case err, ok := <-w.fw.Errors:
				if !ok {
					return
				}
				w.logger.Warn("recipe file watch error", zap.Error(err))
			}
		}
	}()

	return nil
}

// Stop ends watching and releases the underlying watcher
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	return w.fw.Close()
}
