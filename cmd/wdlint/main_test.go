package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wdlkit/wdl/pkg/cli"
	"wdlkit/wdl/pkg/store"
)

// execute runs the root command with args and an isolated configuration.
func execute(t *testing.T, configYAML string, args ...string) (string, error) {
	t.Helper()
	for _, env := range []string{
		"WDLINT_LINT_MODE", "WDLINT_LOG_LEVEL", "WDLINT_LOG_FORMAT",
		"WDLINT_STORE_ENABLED", "WDLINT_STORE_PATH", "WDLINT_METRICS_ENABLED",
	} {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}

	cfgPath := filepath.Join(t.TempDir(), ".wdlint.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configYAML), 0o644))

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", cfgPath, "--no-color"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestLint_Findings(t *testing.T) {
	out, err := execute(t, "", "lint", "testdata/workflows")

	require.NoError(t, err, "warnings alone must not fail without --strict")
	assert.Contains(t, out, "warning[NoCurlyCommands]: task `say_hello` uses curly braces in command section")
	assert.Contains(t, out, "2 files checked: 0 error(s), 1 warning(s), 0 note(s)")
	assert.NotContains(t, out, "hidden", "hidden directories are skipped")
}

func TestLint_Strict(t *testing.T) {
	_, err := execute(t, "", "lint", "--strict", "testdata/workflows/curly.wdl")

	var findings *cli.FindingsError
	require.ErrorAs(t, err, &findings)
	assert.Equal(t, 1, findings.Warnings)
	assert.Equal(t, 1, cli.ExitCode(err))
}

func TestLint_SyntaxError(t *testing.T) {
	out, err := execute(t, "", "lint", "testdata/broken.wdl")

	var findings *cli.FindingsError
	require.ErrorAs(t, err, &findings)
	assert.Positive(t, findings.Errors)
	assert.Contains(t, out, "error")
	assert.NotContains(t, out, "NoCurlyCommands", "rules do not run on documents with syntax errors")
}

func TestLint_JSON(t *testing.T) {
	out, err := execute(t, "", "lint", "--format", "json", "--mode", "fanout", "testdata/workflows/curly.wdl")
	require.NoError(t, err)

	var got struct {
		Files   []cli.FileReport `json:"files"`
		Summary cli.Summary      `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Files, 1)
	require.Len(t, got.Files[0].Diagnostics, 1)
	assert.Equal(t, "NoCurlyCommands", got.Files[0].Diagnostics[0].Rule)
	assert.Equal(t, 8, got.Files[0].Diagnostics[0].Line)
	assert.Equal(t, cli.Summary{Files: 1, Warnings: 1}, got.Summary)
}

func TestLint_RuleSelection(t *testing.T) {
	tests := []struct {
		name        string
		config      string
		args        []string
		wantFinding bool
		wantErr     string
	}{
		{
			name:        "disabled by flag",
			args:        []string{"--disable", "NoCurlyCommands"},
			wantFinding: false,
		},
		{
			name:        "disabled in config",
			config:      "lint:\n  rules:\n    NoCurlyCommands:\n      enabled: false\n",
			wantFinding: false,
		},
		{
			name:        "selected by tag",
			args:        []string{"--tag", "clarity"},
			wantFinding: true,
		},
		{
			name:        "excluded by tag",
			args:        []string{"--tag", "naming"},
			wantFinding: false,
		},
		{
			name:    "unknown rule suggests a match",
			args:    []string{"--rule", "NoCurlyCommand"},
			wantErr: "Did you mean 'NoCurlyCommands'?",
		},
		{
			name:    "unknown rule in config",
			config:  "lint:\n  rules:\n    NoSuchThing: {}\n",
			wantErr: "config error in lint.rules.NoSuchThing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"lint"}, tt.args...)
			out, err := execute(t, tt.config, append(args, "testdata/workflows/curly.wdl")...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Equal(t, 2, cli.ExitCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFinding, strings.Contains(out, "NoCurlyCommands"))
		})
	}
}

func TestLint_SeverityOverride(t *testing.T) {
	cfg := "lint:\n  rules:\n    NoCurlyCommands:\n      severity: error\n"
	out, err := execute(t, cfg, "lint", "testdata/workflows/curly.wdl")

	var findings *cli.FindingsError
	require.ErrorAs(t, err, &findings)
	assert.Equal(t, 1, findings.Errors)
	assert.Contains(t, out, "error[NoCurlyCommands]")
}

func TestLint_Errors(t *testing.T) {
	_, err := execute(t, "", "lint", "testdata/missing.wdl")
	require.Error(t, err)
	assert.Equal(t, 2, cli.ExitCode(err))

	_, err = execute(t, "", "lint", "--format", "xml", "testdata/workflows")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")

	_, err = execute(t, "lint:\n  mode: sideways\n", "lint", "testdata/workflows")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lint.mode")
}

func TestLint_RecordsHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	cfg := "store:\n  enabled: true\n  path: " + dbPath + "\n"

	_, err := execute(t, cfg, "lint", "testdata/workflows")
	require.NoError(t, err)

	out, err := execute(t, cfg, "history", "--format", "json")
	require.NoError(t, err)

	var runs []*store.Run
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	require.Len(t, runs, 2)

	var curly *store.Run
	for _, r := range runs {
		if strings.HasSuffix(r.Path, "curly.wdl") {
			curly = r
		}
	}
	require.NotNil(t, curly)
	assert.Equal(t, 1, curly.Warnings)

	out, err = execute(t, cfg, "history", "--show", curly.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "warning[NoCurlyCommands]")

	_, err = execute(t, cfg, "history", "--show", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	out, err = execute(t, cfg, "history", "--prune")
	require.NoError(t, err)
	assert.Equal(t, "pruned 0 run(s)\n", out)
}

func TestHistory_Disabled(t *testing.T) {
	_, err := execute(t, "", "history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "history store is disabled")
}

func TestRules(t *testing.T) {
	out, err := execute(t, "", "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "NoCurlyCommands")
	assert.Contains(t, out, "Ensures that tasks use heredoc syntax in command sections.")

	out, err = execute(t, "", "rules", "--tag", "naming")
	require.NoError(t, err)
	assert.NotContains(t, out, "NoCurlyCommands")

	_, err = execute(t, "", "rules", "--tag", "nonsense")
	require.Error(t, err)
}

func TestExplain(t *testing.T) {
	out, err := execute(t, "", "explain", "nocurlycommands")
	require.NoError(t, err)
	assert.Contains(t, out, "Curly command blocks are no longer considered idiomatic WDL.")
	assert.Contains(t, out, "tags: Clarity")

	_, err = execute(t, "", "explain", "NoCurlyCommand")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Did you mean 'NoCurlyCommands'?")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "wdlint "+Version)
	assert.Contains(t, out, "Go Version:")
}

func TestCollectFiles(t *testing.T) {
	files, err := collectFiles([]string{"testdata/workflows", "testdata/workflows/curly.wdl"}, []string{".wdl"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("testdata", "workflows", "curly.wdl"),
		filepath.Join("testdata", "workflows", "heredoc.wdl"),
	}, files)

	_, err = collectFiles([]string{"testdata/nope"}, []string{".wdl"})
	assert.Error(t, err)
}
