package testutil

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/fsutil/pkg/fsutil"
)

// RealFSTestHelper provides utilities for testing fsutil against the real
// filesystem. Each helper owns a fresh TempDir that is released when the
// test finishes.
type RealFSTestHelper struct {
	t    *testing.T
	dir  *fsutil.TempDir
	logs *bytes.Buffer
	ops  *fsutil.Ops
}

// NewRealFSTestHelper creates a helper rooted at t.TempDir(), so the
// temp root is never shared between tests.
func NewRealFSTestHelper(t *testing.T) *RealFSTestHelper {
	t.Helper()

	logs := &bytes.Buffer{}
	ops := fsutil.New(nil, fsutil.WithLogger(fsutil.NewTestLogger(logs, 2)))
	factory, err := fsutil.NewTempDirFactory(t.TempDir(), fsutil.WithOps(ops))
	if err != nil {
		t.Fatalf("Failed to create temp dir factory: %v", err)
	}
	dir, err := factory.Make("fsutil-test-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = dir.Close() })

	return &RealFSTestHelper{t: t, dir: dir, logs: logs, ops: ops}
}

// Ops returns the Ops the helper's TempDir was made with.
func (h *RealFSTestHelper) Ops() *fsutil.Ops {
	return h.ops
}

// Root returns the helper's temporary directory.
func (h *RealFSTestHelper) Root() fsutil.Path {
	return h.dir.Path()
}

// Logs returns everything logged through Ops so far.
func (h *RealFSTestHelper) Logs() string {
	return h.logs.String()
}

// Path joins child onto the helper root, failing the test on error.
func (h *RealFSTestHelper) Path(child string) fsutil.Path {
	h.t.Helper()
	p, err := h.dir.Path().Join(child)
	if err != nil {
		h.t.Fatalf("Failed to join %q: %v", child, err)
	}
	return p
}

// MkdirAll creates child and its ancestors under the root.
func (h *RealFSTestHelper) MkdirAll(child string) fsutil.Path {
	h.t.Helper()
	p := h.Path(child)
	if _, err := h.ops.CreateDirTree(p); err != nil {
		h.t.Fatalf("Failed to create directory %s: %v", p, err)
	}
	return p
}

// Touch creates an empty file at child under the root.
func (h *RealFSTestHelper) Touch(child string) fsutil.Path {
	h.t.Helper()
	p := h.Path(child)
	f, err := h.ops.OpenWritable(p, true, true, false)
	if err != nil {
		h.t.Fatalf("Failed to create file %s: %v", p, err)
	}
	if err := f.Close(); err != nil {
		h.t.Fatalf("Failed to close file %s: %v", p, err)
	}
	return p
}

// AssertExists fails the test if nothing exists at p.
func AssertExists(t testing.TB, p fsutil.Path) {
	t.Helper()
	exists, err := fsutil.Exists(p)
	if err != nil {
		t.Fatalf("Exists(%s) failed: %v", p, err)
	}
	if !exists {
		t.Errorf("Path '%s' doesn't exist", p)
	}
}

// AssertNotExists fails the test if something exists at p.
func AssertNotExists(t testing.TB, p fsutil.Path) {
	t.Helper()
	exists, err := fsutil.Exists(p)
	if err != nil {
		t.Fatalf("Exists(%s) failed: %v", p, err)
	}
	if exists {
		t.Errorf("Path '%s' exists", p)
	}
}
