package watch

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"wdlkit/wdl/pkg/config"
	"wdlkit/wdl/pkg/telemetry/logging"
)

// collector gathers batches delivered by a watcher.
type collector struct {
	mu      sync.Mutex
	batches [][]string
	notify  chan struct{}
}

func newCollector() *collector {
	return &collector{notify: make(chan struct{}, 16)}
}

func (c *collector) onChange(paths []string) {
	c.mu.Lock()
	c.batches = append(c.batches, paths)
	c.mu.Unlock()
	c.notify <- struct{}{}
}

func (c *collector) wait(t *testing.T) []string {
	t.Helper()
	select {
	case <-c.notify:
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change batch")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.batches[len(c.batches)-1]
}

func startWatcher(t *testing.T, cfg *Config) *collector {
	t.Helper()
	w, err := New(cfg, logging.Discard())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	c := newCollector()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx, c.onChange) }()
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Watch() error = %v", err)
		}
		_ = w.Stop()
	})

	// Give fsnotify time to register the watches.
	time.Sleep(50 * time.Millisecond)
	return c
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWatcher_Directory(t *testing.T) {
	dir := t.TempDir()
	c := startWatcher(t, &Config{
		Path:       dir,
		Debounce:   50 * time.Millisecond,
		Extensions: []string{".wdl"},
		SkipHidden: true,
	})

	a := filepath.Join(dir, "a.wdl")
	b := filepath.Join(dir, "b.wdl")
	writeFile(t, a, "version 1.1\n")
	writeFile(t, b, "version 1.1\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	writeFile(t, filepath.Join(dir, ".hidden.wdl"), "ignored")

	got := c.wait(t)
	if !slices.Equal(got, []string{a, b}) {
		t.Errorf("batch = %v, want [%s %s]", got, a, b)
	}
}

func TestWatcher_NewSubdirectory(t *testing.T) {
	dir := t.TempDir()
	c := startWatcher(t, &Config{
		Path:       dir,
		Debounce:   50 * time.Millisecond,
		Extensions: []string{".wdl"},
	})

	sub := filepath.Join(dir, "tasks")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	time.Sleep(50 * time.Millisecond)

	f := filepath.Join(sub, "t.wdl")
	writeFile(t, f, "version 1.1\n")
	if got := c.wait(t); !slices.Contains(got, f) {
		t.Errorf("batch = %v, want it to contain %s", got, f)
	}
}

func TestWatcher_SingleFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "main.wdl")
	writeFile(t, target, "version 1.1\n")

	c := startWatcher(t, &Config{Path: target, Debounce: 50 * time.Millisecond})

	writeFile(t, filepath.Join(dir, "other.wdl"), "version 1.1\n")
	writeFile(t, target, "version 1.2\n")

	got := c.wait(t)
	if !slices.Equal(got, []string{target}) {
		t.Errorf("batch = %v, want [%s]", got, target)
	}
}

func TestWatcher_AlreadyRunning(t *testing.T) {
	w, err := New(&Config{Path: t.TempDir(), Debounce: time.Millisecond}, logging.Discard())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = w.Watch(ctx, func([]string) {}) }()
	time.Sleep(50 * time.Millisecond)

	if err := w.Watch(ctx, func([]string) {}); err != ErrRunning {
		t.Errorf("second Watch() error = %v, want ErrRunning", err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}

func TestNew_MissingPath(t *testing.T) {
	if _, err := New(&Config{Path: filepath.Join(t.TempDir(), "nope")}, nil); err == nil {
		t.Error("New() error = nil, want error for missing path")
	}
	if _, err := New(nil, nil); err == nil {
		t.Error("New(nil) error = nil, want error")
	}
}

func TestWatcher_ShouldProcess(t *testing.T) {
	w := &Watcher{config: &Config{Extensions: []string{".wdl"}, SkipHidden: true}}

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write wdl", fsnotify.Event{Name: "a.wdl", Op: fsnotify.Write}, true},
		{"create upper-case extension", fsnotify.Event{Name: "a.WDL", Op: fsnotify.Create}, true},
		{"chmod", fsnotify.Event{Name: "a.wdl", Op: fsnotify.Chmod}, false},
		{"remove", fsnotify.Event{Name: "a.wdl", Op: fsnotify.Remove}, false},
		{"other extension", fsnotify.Event{Name: "a.txt", Op: fsnotify.Write}, false},
		{"hidden", fsnotify.Event{Name: ".a.wdl", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.shouldProcess(tt.event); got != tt.want {
				t.Errorf("shouldProcess(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.NewDefaultConfig().Watch
	got := FromConfig("workflows", cfg)
	if got.Path != "workflows" || got.Debounce != cfg.Debounce || !got.SkipHidden {
		t.Errorf("FromConfig() = %+v", got)
	}
	if !slices.Equal(got.Extensions, cfg.Extensions) {
		t.Errorf("FromConfig() extensions = %v, want %v", got.Extensions, cfg.Extensions)
	}
}

func TestDebouncer_Batches(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	var calls atomic.Int32
	got := make(chan []string, 1)
	cb := func(keys []string) {
		calls.Add(1)
		got <- keys
	}

	for _, k := range []string{"b", "a", "b", "c"} {
		d.Add(k, cb)
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case keys := <-got:
		if !slices.Equal(keys, []string{"a", "b", "c"}) {
			t.Errorf("batch = %v, want [a b c]", keys)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for batch")
	}
	time.Sleep(100 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Errorf("callback called %d times, want 1", n)
	}
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var calls atomic.Int32
	d.Add("a", func([]string) { calls.Add(1) })
	d.Stop()
	d.Add("b", func([]string) { calls.Add(1) })

	time.Sleep(100 * time.Millisecond)
	if n := calls.Load(); n != 0 {
		t.Errorf("callback called %d times after Stop(), want 0", n)
	}
}
