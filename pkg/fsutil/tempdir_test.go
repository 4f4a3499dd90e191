package fsutil_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/arthur-debert/fsutil/pkg/fsutil"
	"github.com/arthur-debert/fsutil/pkg/fsutil/filesystem"
	"github.com/arthur-debert/fsutil/pkg/fsutil/testutil"
)

func TestTempDirBasics(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir, err := fsutil.MakeTempDir("some-prefix-")
	require.NoError(t, err)
	fn := dir.Path()

	// Path has a trailing separator, for convenience
	assert.True(t, strings.HasSuffix(fn.String(), "/"))
	native := fn.Native()
	assert.Equal(t, byte(filepath.Separator), native[len(native)-1])
	testutil.AssertExists(t, fn)
	assert.Contains(t, fn.String(), "some-prefix-")

	child, err := fn.Join("some-child")
	require.NoError(t, err)
	_, err = fsutil.CreateDir(child)
	require.NoError(t, err)
	testutil.AssertExists(t, child)

	require.NoError(t, dir.Close())
	testutil.AssertNotExists(t, fn)
	testutil.AssertNotExists(t, child)

	// second release is a no-op
	assert.NoError(t, dir.Close())
}

func TestTempDirScenario(t *testing.T) {
	factory, err := fsutil.NewTempDirFactory(t.TempDir())
	require.NoError(t, err)

	dir, err := factory.Make("scenario-")
	require.NoError(t, err)
	root := dir.Path()

	a, err := root.Join("a")
	require.NoError(t, err)
	_, err = fsutil.CreateDir(a)
	require.NoError(t, err)
	f, err := a.Join("f.txt")
	require.NoError(t, err)
	h, err := fsutil.OpenWritable(f, true, true, false)
	require.NoError(t, err)
	require.NoError(t, h.Close())
	testutil.AssertExists(t, f)

	require.NoError(t, dir.Close())
	testutil.AssertNotExists(t, root)
	testutil.AssertNotExists(t, a)
	testutil.AssertNotExists(t, f)
}

func TestTempDirFactoryRootInjected(t *testing.T) {
	root := t.TempDir()
	factory, err := fsutil.NewTempDirFactory(root)
	require.NoError(t, err)

	dir, err := factory.Make("")
	require.NoError(t, err)
	defer dir.Close()

	assert.Equal(t, fsutil.MustPath(root).String(), dir.Path().Parent().String())
	assert.Equal(t, factory.Root(), fsutil.MustPath(root))
}

func TestTempDirUniqueNames(t *testing.T) {
	factory, err := fsutil.NewTempDirFactory(t.TempDir())
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		dir, err := factory.Make("u-")
		require.NoError(t, err)
		defer dir.Close()
		assert.False(t, seen[dir.Path().String()])
		seen[dir.Path().String()] = true
	}
}

func TestTempDirInvalidPrefix(t *testing.T) {
	factory, err := fsutil.NewTempDirFactory(t.TempDir())
	require.NoError(t, err)

	for _, prefix := range []string{"a/b", `a\b`, "nul\x00"} {
		_, err := factory.Make(prefix)
		assert.True(t, fsutil.IsInvalidPath(err), "prefix %q: got %v", prefix, err)
	}
}

func TestTempDirUnusableRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	factory, err := fsutil.NewTempDirFactory(missing)
	require.NoError(t, err)

	_, err = factory.Make("x-")
	require.Error(t, err)
	assert.True(t, fsutil.IsIOError(err))
}

func TestTempDirGivesUpAfterCollisions(t *testing.T) {
	root := t.TempDir()
	fault := filesystem.NewFaultFS(nil)
	// every generated name already exists
	fault.Before("mkdir", func(name string) {
		_ = os.Mkdir(name, 0o755)
	})
	ops := fsutil.New(fault)

	factory, err := fsutil.NewTempDirFactory(root, fsutil.WithOps(ops), fsutil.WithMaxAttempts(3))
	require.NoError(t, err)

	_, err = factory.Make("busy-")
	require.Error(t, err)
	assert.True(t, fsutil.IsIOError(err))
	assert.Equal(t, 3, fault.Calls("mkdir"))
}

func TestTempDirCloseSwallowsTeardownFailure(t *testing.T) {
	var logs bytes.Buffer
	fault := filesystem.NewFaultFS(nil)
	ops := fsutil.New(fault, fsutil.WithLogger(fsutil.NewTestLogger(&logs, 0)))

	factory, err := fsutil.NewTempDirFactory(t.TempDir(), fsutil.WithOps(ops))
	require.NoError(t, err)
	dir, err := factory.Make("stuck-")
	require.NoError(t, err)

	fault.FailOn("readdir", dir.Path().Native(), syscall.EIO)

	assert.NoError(t, dir.Close())
	assert.Contains(t, logs.String(), "failed to remove temporary directory")
	testutil.AssertExists(t, dir.Path())
}

func TestTempDirRetriesCollisionWithFile(t *testing.T) {
	root := t.TempDir()
	fault := filesystem.NewFaultFS(nil)
	first := true
	// the first generated name is already taken by a regular file
	fault.Before("mkdir", func(name string) {
		if first {
			first = false
			file := strings.TrimRight(name, string(os.PathSeparator))
			require.NoError(t, os.WriteFile(file, nil, 0o644))
		}
	})

	factory, err := fsutil.NewTempDirFactory(root, fsutil.WithOps(fsutil.New(fault)), fsutil.WithMaxAttempts(3))
	require.NoError(t, err)

	dir, err := factory.Make("taken-")
	require.NoError(t, err)
	defer dir.Close()

	assert.Equal(t, 2, fault.Calls("mkdir"))
	isDir, err := fsutil.IsDir(dir.Path())
	require.NoError(t, err)
	assert.True(t, isDir)
}
