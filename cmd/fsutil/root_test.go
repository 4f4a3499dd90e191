package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmdSetup(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("rootCmd is nil after init")
	}

	if rootCmd.Use != "fsutil" {
		t.Errorf("expected command Use %q, got %q", "fsutil", rootCmd.Use)
	}

	want := map[string]bool{"version": false, "exists": false, "mkdir": false, "rmtree": false, "rm": false, "touch": false, "tempdir": false}
	for _, cmd := range rootCmd.Commands() {
		name := strings.Fields(cmd.Use)[0]
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("%s subcommand not found", name)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "fsutil version dev")
}

func TestDirectoryLifecycleCommands(t *testing.T) {
	root := t.TempDir()
	parent := filepath.Join(root, "p")
	child := filepath.Join(parent, "c")
	file := filepath.Join(child, "f.txt")

	// child listed first; mkdir orders parents before children
	out, err := run(t, "mkdir", child, parent)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "created "))

	_, err = run(t, "touch", file)
	require.NoError(t, err)

	out, err = run(t, "exists", parent, file, filepath.Join(root, "nope"))
	require.NoError(t, err)
	assert.Contains(t, out, "\ttrue")
	assert.Contains(t, out, "\tfalse")

	_, err = run(t, "exists", "-q", filepath.Join(root, "nope"))
	assert.Error(t, err)

	_, err = run(t, "rm", child)
	assert.Error(t, err, "rm refuses directories")

	out, err = run(t, "rmtree", parent)
	require.NoError(t, err)
	assert.Contains(t, out, "deleted")
	_, statErr := os.Stat(parent)
	assert.True(t, os.IsNotExist(statErr))

	out, err = run(t, "rmtree", parent)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestMkdirParents(t *testing.T) {
	deep := filepath.Join(t.TempDir(), "a", "b", "c")

	_, err := run(t, "mkdir", deep)
	assert.Error(t, err)

	_, err = run(t, "mkdir", "-p", deep)
	require.NoError(t, err)
	info, err := os.Stat(deep)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestTempdirCommandCleansUp(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}
	root := t.TempDir()

	out, err := run(t, "--temp-root", root, "tempdir", "--prefix", "cli-", "--",
		"sh", "-c", `mkdir sub && touch sub/file && echo "$FSUTIL_TEMPDIR"`)
	require.NoError(t, err)
	assert.Contains(t, out, "cli-")

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary directory should be removed")
}

func TestTempdirCommandReportsExitStatus(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}
	root := t.TempDir()

	_, err := run(t, "--temp-root", root, "tempdir", "--", "sh", "-c", "exit 3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 3")

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "fsutil.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log_level: loud\n"), 0o644))

	_, err := run(t, "--config", cfgPath, "exists", dir)
	assert.Error(t, err)

	_, err = run(t, "--log-level", "debug", "exists", dir)
	assert.NoError(t, err)
}

func TestDryRunLeavesTreeIntact(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "d")
	file := filepath.Join(dir, "f")
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	out, err := run(t, "rmtree", "--dry-run", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "would remove "+file)
	assert.NotContains(t, out, "deleted")

	out, err = run(t, "mkdir", "--dry-run", filepath.Join(root, "new"))
	require.NoError(t, err)
	assert.Contains(t, out, "would mkdir")

	_, err = os.Stat(file)
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "new"))
	assert.True(t, os.IsNotExist(err))
}
