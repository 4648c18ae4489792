package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/linesmith/internal/format"
	"github.com/dshills/linesmith/internal/log"
)

// ReloadFunc receives the freshly loaded options snapshot.
type ReloadFunc func(opts format.Options)

// Watcher reloads the options file when it changes on disk. Editors
// often replace config files via rename, so the parent directory is
// watched rather than the file itself.
type Watcher struct {
	path     string
	fn       ReloadFunc
	logger   *log.Logger
	fsw      *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	pending *time.Timer
	closed  bool
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce sets how long to wait after the last change before
// reloading. Defaults to 100ms.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// Watch starts watching the options file at path. Each successful
// reload calls fn with the new snapshot; a failed reload is logged and
// the previous snapshot stays in effect.
func Watch(path string, logger *log.Logger, fn ReloadFunc, opts ...WatchOption) (*Watcher, error) {
	if logger == nil {
		logger = log.Discard()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		fn:       fn,
		logger:   logger.WithComponent("config"),
		fsw:      fsw,
		debounce: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	go w.loop()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.pending != nil {
		w.pending.Stop()
	}
	w.mu.Unlock()
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error: %v", err)
		}
	}
}

// schedule arms the debounce timer, resetting it on rapid changes.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	opts, err := Load(w.path)
	if err != nil {
		w.logger.Warn("reload failed, keeping previous options: %v", err)
		return
	}
	w.logger.Info("options reloaded from %s", w.path)
	w.fn(opts)
}
