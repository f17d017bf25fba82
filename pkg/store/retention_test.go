package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"wdlkit/wdl/pkg/config"
	"wdlkit/wdl/pkg/telemetry/logging"
	"wdlkit/wdl/pkg/wdl"
)

func TestPruner_Prune(t *testing.T) {
	tests := []struct {
		name        string
		config      *RetentionConfig
		wantDeleted int64
		wantLeft    int64
	}{
		{"age only", &RetentionConfig{RetentionDays: 3}, 2, 3},
		{"count only", &RetentionConfig{MaxRuns: 1}, 4, 1},
		{"age and count", &RetentionConfig{RetentionDays: 3, MaxRuns: 2}, 3, 2},
		{"disabled", &RetentionConfig{RetentionDays: -1}, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := NewMemoryStore()
			for i, id := range []string{"d0", "d1", "d2", "d3", "d4"} {
				// d0 is four days old, d4 is today.
				run := testRun(id, "a.wdl", time.Duration(4-i)*24*time.Hour)
				if err := s.Save(ctx, run); err != nil {
					t.Fatalf("Save() error = %v", err)
				}
			}

			var hooked int64
			p := NewPruner(s, tt.config,
				WithPruneLogger(logging.Discard()),
				WithPruneHook(func(n int64) { hooked += n }),
			)
			p.now = func() time.Time { return base.Add(time.Hour) }

			deleted, err := p.Prune(ctx)
			if err != nil {
				t.Fatalf("Prune() error = %v", err)
			}
			if deleted != tt.wantDeleted {
				t.Errorf("Prune() = %d, want %d", deleted, tt.wantDeleted)
			}
			if hooked != tt.wantDeleted {
				t.Errorf("hook saw %d, want %d", hooked, tt.wantDeleted)
			}
			if left, _ := s.Count(ctx); left != tt.wantLeft {
				t.Errorf("Count() = %d, want %d", left, tt.wantLeft)
			}
		})
	}
}

func TestScheduler_Start(t *testing.T) {
	tests := []struct {
		name        string
		schedule    string
		wantRunning bool
		wantError   bool
	}{
		{"hourly", "0 * * * *", true, false},
		{"empty schedule", "", false, false},
		{"invalid schedule", "every tuesday", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPruner(NewMemoryStore(), &RetentionConfig{PruneSchedule: tt.schedule},
				WithPruneLogger(logging.Discard()))
			s := NewScheduler(p, logging.Discard())

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			err := s.Start(ctx)
			if (err != nil) != tt.wantError {
				t.Errorf("Start() error = %v, wantError %v", err, tt.wantError)
			}
			if s.IsRunning() != tt.wantRunning {
				t.Errorf("IsRunning() = %v, want %v", s.IsRunning(), tt.wantRunning)
			}
			if tt.wantRunning && s.NextRun() == nil {
				t.Error("NextRun() = nil for running scheduler")
			}

			s.Stop()
			if s.IsRunning() {
				t.Error("IsRunning() = true after Stop()")
			}
		})
	}
}

func TestNewRun(t *testing.T) {
	source := "version 1.1\n\ntask a {\n  command {\n    echo hi\n  }\n}\n"
	res, err := wdl.Lint(context.Background(), nil, "a.wdl", source)
	if err != nil {
		t.Fatalf("Lint() error = %v", err)
	}

	run := NewRun(res, base)
	if run.ID == "" {
		t.Error("NewRun() ID is empty")
	}
	if run.Mode != "sequential" || run.Path != "a.wdl" {
		t.Errorf("NewRun() mode, path = %q, %q", run.Mode, run.Path)
	}
	if run.Warnings != 1 || run.Total() != 1 {
		t.Fatalf("NewRun() warnings = %d, total = %d, want 1, 1", run.Warnings, run.Total())
	}
	f := run.Findings[0]
	if f.Rule != "NoCurlyCommands" || f.Line != 4 || f.Column != 3 {
		t.Errorf("finding = %+v, want NoCurlyCommands at 4:3", f)
	}
}

func TestOpen(t *testing.T) {
	cfg := config.NewDefaultConfig().Store

	s, err := Open(cfg, nil)
	if err != nil {
		t.Fatalf("Open(disabled) error = %v", err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Errorf("Open(disabled) = %T, want *MemoryStore", s)
	}

	cfg.Enabled = true
	cfg.Path = filepath.Join(t.TempDir(), "history.db")
	s, err = Open(cfg, logging.Discard())
	if err != nil {
		t.Fatalf("Open(enabled) error = %v", err)
	}
	defer s.Close()
	if _, ok := s.(*SQLiteStore); !ok {
		t.Errorf("Open(enabled) = %T, want *SQLiteStore", s)
	}

	cfg.Driver = "postgres"
	if _, err := Open(cfg, nil); err == nil {
		t.Error("Open(postgres) error = nil, want error")
	}
}
