package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const unsortedManifest = `[package]
name = "demo"

[dependencies]
serde = "1"
anyhow = "1"
`

const sortedManifest = `[package]
name = "demo"

[dependencies]
anyhow = "1"
serde = "1"
`

func resetFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
}

// execute runs the root command in dir and returns stdout, stderr and the error.
func execute(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd.Flags())
	resetFlags(rootCmd.PersistentFlags())
	t.Chdir(dir)
	prevNoColor := color.NoColor
	t.Cleanup(func() { color.NoColor = prevNoColor })

	var out, errb bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errb)
	rootCmd.SetArgs(append([]string{"--color=off"}, args...))
	err := rootCmd.Execute()
	return out.String(), errb.String(), err
}

func writeCrate(t *testing.T, dir, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "Cargo.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestStripSubcommand(t *testing.T) {
	assert.Equal(t, []string{"-c"}, stripSubcommand([]string{"sort", "-c"}))
	assert.Equal(t, []string{"."}, stripSubcommand([]string{"sort-fix", "."}))
	assert.Equal(t, []string{"-c", "sort"}, stripSubcommand([]string{"-c", "sort"}))
	assert.Empty(t, stripSubcommand(nil))
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := readUIMode("sometimes")
	assert.Error(t, err)
	assert.False(t, shouldUseTUI(uiModeOff, 10))
	assert.True(t, shouldUseTUI(uiModeOn, 1))
	assert.False(t, shouldUseTUI(uiModeAuto, 1))
}

func TestWriteModeRewrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demo")
	path := writeCrate(t, dir, unsortedManifest)

	out, _, err := execute(t, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Checking demo...")
	assert.Contains(t, out, `Finished: Cargo.toml for "demo" has been rewritten`)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sortedManifest, string(got))

	out, _, err = execute(t, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Cargo.toml for demo is sorted already, no changes made")
}

func TestCheckModeFails(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demo")
	path := writeCrate(t, dir, unsortedManifest)

	_, errOut, err := execute(t, dir, "--check")
	require.Error(t, err)
	assert.Contains(t, errOut, "Dependencies for demo are not sorted")

	got, rerr := os.ReadFile(path)
	require.NoError(t, rerr)
	assert.Equal(t, unsortedManifest, string(got), "check must not write")
}

func TestCheckFormatRequiresCheck(t *testing.T) {
	dir := t.TempDir()
	writeCrate(t, dir, sortedManifest)

	_, _, err := execute(t, dir, "--check-format")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--check-format requires --check")
}

func TestCheckAndPrintConflict(t *testing.T) {
	dir := t.TempDir()
	writeCrate(t, dir, sortedManifest)

	_, _, err := execute(t, dir, "--check", "--print")
	require.Error(t, err)
}

func TestPrintMode(t *testing.T) {
	dir := t.TempDir()
	path := writeCrate(t, dir, unsortedManifest)

	out, _, err := execute(t, dir, "--print", path)
	require.NoError(t, err)
	assert.Equal(t, sortedManifest, out)
}

func TestWorkspaceMembers(t *testing.T) {
	root := t.TempDir()
	writeCrate(t, root, "[workspace]\nmembers = [\"crates/*\"]\nexclude = [\"crates/skip\"]\n")
	writeCrate(t, filepath.Join(root, "crates", "a"), unsortedManifest)
	writeCrate(t, filepath.Join(root, "crates", "skip"), unsortedManifest)

	out, _, err := execute(t, root, "-w", "--report=json")
	require.NoError(t, err)

	var rep report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.Manifests, 2)
	assert.Equal(t, "a", rep.Manifests[1].Crate)
	assert.True(t, rep.Manifests[1].Written)
	assert.False(t, rep.Failed)

	skipped, err := os.ReadFile(filepath.Join(root, "crates", "skip", "Cargo.toml"))
	require.NoError(t, err)
	assert.Equal(t, unsortedManifest, string(skipped))
}

func TestYAMLReportWithDiagnostics(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demo")
	writeCrate(t, dir, unsortedManifest)

	out, _, err := execute(t, dir, "-c", "--report", "yaml")
	require.Error(t, err)

	var rep report
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "check", rep.Mode)
	assert.True(t, rep.Failed)
	require.Len(t, rep.Manifests, 1)
	require.NotEmpty(t, rep.Manifests[0].Diagnostics)
	assert.True(t, strings.HasPrefix(rep.Manifests[0].Diagnostics[0], "error CHK6001 "))
}

func TestParseErrorReported(t *testing.T) {
	dir := t.TempDir()
	writeCrate(t, dir, "[dependencies\n")

	_, errOut, err := execute(t, dir, "--check")
	require.Error(t, err)
	assert.Contains(t, errOut, "Cargo.toml:1:")
	assert.Contains(t, errOut, " 1 | [dependencies\n")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, t.TempDir(), "version", "--format", "json")
	require.NoError(t, err)
	var payload versionPayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, "depsort", payload.Tool)
	assert.NotEmpty(t, payload.Version)
}

func TestTraceToFile(t *testing.T) {
	dir := t.TempDir()
	writeCrate(t, dir, sortedManifest)
	tracePath := filepath.Join(dir, "trace.ndjson")

	_, _, err := execute(t, dir, "--check", "--trace", tracePath)
	require.NoError(t, err)

	data, err := os.ReadFile(tracePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"run"`)
}
