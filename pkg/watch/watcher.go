package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"wdlkit/wdl/pkg/config"
)

// ErrRunning is returned by Watch when the watcher is already running.
var ErrRunning = errors.New("watcher already running")

// Config contains configuration for the watcher.
type Config struct {
	// Path is the file or directory to watch. Directories are watched
	// recursively.
	Path string

	// Debounce is how long the watcher waits after the last event before
	// reporting a batch of changes.
	Debounce time.Duration

	// Extensions limits events to files with these extensions.
	Extensions []string

	// SkipHidden ignores files and directories whose name starts with a dot.
	SkipHidden bool
}

// FromConfig builds a watcher configuration for path.
func FromConfig(path string, cfg config.WatchConfig) *Config {
	return &Config{
		Path:       path,
		Debounce:   cfg.Debounce,
		Extensions: slices.Clone(cfg.Extensions),
		SkipHidden: true,
	}
}

// Watcher reports changed WDL files.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	config   *Config
	debounce *Debouncer

	// file is set when Path names a single file; its directory is watched
	// so that editors replacing the file by rename are still seen.
	file string

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates a watcher. Path must exist.
func New(config *Config, logger *slog.Logger) (*Watcher, error) {
	if config == nil || config.Path == "" {
		return nil, errors.New("watch path is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	info, err := os.Stat(config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat watch path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		watcher:  fsw,
		logger:   logger.With("component", "watch"),
		config:   config,
		debounce: NewDebouncer(config.Debounce),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	if !info.IsDir() {
		w.file = filepath.Clean(config.Path)
	}
	return w, nil
}

// Watch blocks until ctx is done or Stop is called. After each quiet period
// onChange receives the sorted set of files that changed during it.
func (w *Watcher) Watch(ctx context.Context, onChange func(paths []string)) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return ErrRunning
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.debounce.Stop()
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	if err := w.addPath(); err != nil {
		return fmt.Errorf("failed to watch path: %w", err)
	}

	w.logger.Info("watching for changes",
		"path", w.config.Path,
		"debounce_ms", w.config.Debounce.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-w.stopCh:
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			w.handle(event, onChange)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event, onChange func([]string)) {
	// New directories under a recursive watch need their own watch.
	if w.file == "" && event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addDirectory(event.Name); err != nil {
				w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
			}
			return
		}
	}

	if !w.shouldProcess(event) {
		return
	}
	w.logger.Debug("file event", "path", event.Name, "op", event.Op.String())
	w.debounce.Add(event.Name, onChange)
}

// Stop stops the watcher and releases its resources.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	running := w.running
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

func (w *Watcher) addPath() error {
	if w.file != "" {
		return w.watcher.Add(filepath.Dir(w.file))
	}
	return w.addDirectory(w.config.Path)
}

func (w *Watcher) addDirectory(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && w.hidden(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", path, err)
		}
		w.logger.Debug("watching directory", "path", path)
		return nil
	})
}

func (w *Watcher) shouldProcess(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	if w.file != "" {
		return filepath.Clean(event.Name) == w.file
	}
	if w.hidden(event.Name) {
		return false
	}
	return w.hasExtension(event.Name)
}

func (w *Watcher) hidden(path string) bool {
	return w.config.SkipHidden && strings.HasPrefix(filepath.Base(path), ".")
}

func (w *Watcher) hasExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range w.config.Extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}
