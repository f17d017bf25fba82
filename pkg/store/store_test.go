package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// stores returns a fresh instance of every backend.
func stores(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := NewSQLiteStore(&SQLiteConfig{
		Driver:      "sqlite",
		Path:        filepath.Join(t.TempDir(), "history.db"),
		BusyTimeout: time.Second,
		WALMode:     true,
	}, nil)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"sqlite": sqlite,
		"memory": NewMemoryStore(),
	}
}

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testRun(id, path string, age time.Duration) *Run {
	return &Run{
		ID:          id,
		Path:        path,
		Mode:        "sequential",
		StartedAt:   base.Add(-age),
		Duration:    3 * time.Millisecond,
		Warnings:    1,
		FailedRules: []string{"Exploding"},
		Findings: []Finding{{
			Rule:     "NoCurlyCommands",
			Severity: "warning",
			Message:  "task `a` uses curly braces in command section",
			Line:     4,
			Column:   3,
			Fix:      "use heredoc syntax",
		}},
	}
}

func TestStore_SaveGet(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			want := testRun("r1", "a.wdl", 0)
			if err := s.Save(ctx, want); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			got, err := s.Get(ctx, "r1")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) })); diff != "" {
				t.Errorf("Get() mismatch (-want +got):\n%s", diff)
			}

			if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStore_List(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, r := range []*Run{
				testRun("old", "a.wdl", 48*time.Hour),
				testRun("mid", "b.wdl", 24*time.Hour),
				testRun("new", "a.wdl", 0),
			} {
				if err := s.Save(ctx, r); err != nil {
					t.Fatalf("Save() error = %v", err)
				}
			}

			since := base.Add(-30 * time.Hour)
			tests := []struct {
				name  string
				query Query
				want  []string
			}{
				{"all newest first", Query{}, []string{"new", "mid", "old"}},
				{"by path", Query{Path: "a.wdl"}, []string{"new", "old"}},
				{"since", Query{Since: &since}, []string{"new", "mid"}},
				{"limit", Query{Limit: 1}, []string{"new"}},
			}
			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					runs, err := s.List(ctx, tt.query)
					if err != nil {
						t.Fatalf("List() error = %v", err)
					}
					var got []string
					for _, r := range runs {
						got = append(got, r.ID)
						if len(r.Findings) != 0 {
							t.Errorf("List() run %s has findings, want none", r.ID)
						}
					}
					if diff := cmp.Diff(tt.want, got); diff != "" {
						t.Errorf("List() mismatch (-want +got):\n%s", diff)
					}
				})
			}
		})
	}
}

func TestStore_Delete(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for i, id := range []string{"r0", "r1", "r2", "r3"} {
				if err := s.Save(ctx, testRun(id, "a.wdl", time.Duration(4-i)*time.Hour)); err != nil {
					t.Fatalf("Save() error = %v", err)
				}
			}

			n, err := s.DeleteBefore(ctx, base.Add(-3*time.Hour-time.Minute))
			if err != nil || n != 1 {
				t.Fatalf("DeleteBefore() = %d, %v, want 1, nil", n, err)
			}
			n, err = s.DeleteOldest(ctx, 2)
			if err != nil || n != 2 {
				t.Fatalf("DeleteOldest() = %d, %v, want 2, nil", n, err)
			}

			count, err := s.Count(ctx)
			if err != nil || count != 1 {
				t.Fatalf("Count() = %d, %v, want 1, nil", count, err)
			}
			if _, err := s.Get(ctx, "r3"); err != nil {
				t.Errorf("Get(r3) error = %v, want the newest run kept", err)
			}
		})
	}
}

func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	cfg := &SQLiteConfig{Driver: "sqlite", Path: path, BusyTimeout: time.Second}

	s, err := NewSQLiteStore(cfg, nil)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	if err := s.Save(context.Background(), testRun("r1", "a.wdl", 0)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s, err = NewSQLiteStore(cfg, nil)
	if err != nil {
		t.Fatalf("NewSQLiteStore() reopen error = %v", err)
	}
	defer s.Close()
	if n, _ := s.Count(context.Background()); n != 1 {
		t.Errorf("Count() after reopen = %d, want 1", n)
	}
}

func TestSQLiteStore_UnknownDriver(t *testing.T) {
	_, err := NewSQLiteStore(&SQLiteConfig{Driver: "nope", Path: filepath.Join(t.TempDir(), "x.db")}, nil)
	var serr *StorageError
	if !errors.As(err, &serr) {
		t.Fatalf("NewSQLiteStore() error = %v, want *StorageError", err)
	}
	if serr.Operation != "open" {
		t.Errorf("Operation = %q, want open", serr.Operation)
	}
}
