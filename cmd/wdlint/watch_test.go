package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wdlkit/wdl/pkg/config"
	"wdlkit/wdl/pkg/store"
	"wdlkit/wdl/pkg/telemetry/health"
	"wdlkit/wdl/pkg/telemetry/logging"
	"wdlkit/wdl/pkg/wdl"
	"wdlkit/wdl/pkg/wdl/lint"
)

func TestWatch_InitialLintAndStop(t *testing.T) {
	dir := t.TempDir()
	src, err := os.ReadFile("testdata/workflows/curly.wdl")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.wdl"), src, 0o644))

	dbPath := filepath.Join(t.TempDir(), "history.db")
	cfgPath := filepath.Join(t.TempDir(), ".wdlint.yaml")
	cfg := "store:\n  enabled: true\n  path: " + dbPath + "\nwatch:\n  debounce: 20ms\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", cfgPath, "--no-color", "watch", dir})
	require.NoError(t, cmd.ExecuteContext(ctx))

	assert.Contains(t, out.String(), "warning[NoCurlyCommands]")
	assert.Contains(t, out.String(), "1 file checked")

	hist, err := execute(t, cfg, "history")
	require.NoError(t, err)
	assert.Contains(t, hist, "main.wdl")
}

func TestOutcome(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"clean", "version 1.1\n\ntask a {\n  command <<<\n  >>>\n}\n", "clean"},
		{"warnings", "version 1.1\n\ntask a {\n  command {\n  }\n}\n", "warnings"},
		{"syntax errors", "version 1.1\n\ntask a {\n", "syntax_errors"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := wdl.Lint(ctx, nil, "a.wdl", tt.source)
			require.NoError(t, err)
			assert.Equal(t, tt.want, outcome(res))
		})
	}
}

func TestExisting(t *testing.T) {
	dir := t.TempDir()
	kept := filepath.Join(dir, "kept.wdl")
	require.NoError(t, os.WriteFile(kept, nil, 0o644))

	got := existing([]string{kept, filepath.Join(dir, "gone.wdl"), dir})
	assert.Equal(t, []string{kept}, got)
}

func TestSession_Checker(t *testing.T) {
	s := &session{store: store.NewMemoryStore()}
	checker := s.checker()

	status := checker.CheckReadiness(context.Background())
	assert.Equal(t, health.StatusReady, status.Status)
	assert.Equal(t, []string{"lint", "store"}, checker.ListChecks())

	s.setStatus(errors.New("open main.wdl: permission denied"))
	status = checker.CheckReadiness(context.Background())
	assert.Equal(t, health.StatusDegraded, status.Status)
	assert.Equal(t, health.StatusUnhealthy, status.Checks["lint"].Status)
	assert.Equal(t, health.StatusOK, status.Checks["store"].Status)
}

func TestSession_Reload(t *testing.T) {
	t.Setenv("WDLINT_LINT_MODE", "")
	path := filepath.Join(t.TempDir(), ".wdlint.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lint:\n  mode: parallel\n"), 0o644))
	cfg, err := config.LoadConfigWithEnvOverrides(path)
	require.NoError(t, err)
	config.SetConfig(cfg)

	linter, err := buildLinter(cfg, ruleFlags{}, logging.Discard(), nil)
	require.NoError(t, err)
	s := &session{linter: linter, logger: logging.Discard()}

	require.NoError(t, os.WriteFile(path, []byte("lint:\n  rules:\n    NoCurlyCommands:\n      enabled: false\n"), 0o644))
	s.reload(path, ruleFlags{}, nil)
	assert.Empty(t, s.linter.Rules())
	assert.Equal(t, lint.ModeSequential, s.linter.Mode())

	require.NoError(t, os.WriteFile(path, []byte("lint:\n  mode: sideways\n"), 0o644))
	s.reload(path, ruleFlags{}, nil)
	assert.Empty(t, s.linter.Rules(), "invalid configuration replaced the linter")
}
