package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"sync"
)

// Action is a mutation a DryRunFS recorded instead of performing.
type Action struct {
	Op   string
	Name string
}

// DryRunFS is a filesystem wrapper that reads from the underlying
// filesystem but records mutations instead of performing them. Mkdir does
// not check that the parent exists.
type DryRunFS struct {
	base FileSystem

	mu      sync.Mutex
	actions []Action
}

// NewDryRunFS wraps base. A nil base wraps the OS filesystem.
func NewDryRunFS(base FileSystem) *DryRunFS {
	if base == nil {
		base = NewOSFileSystem()
	}
	return &DryRunFS{base: base}
}

// Actions returns the recorded mutations in order.
func (d *DryRunFS) Actions() []Action {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Action(nil), d.actions...)
}

func (d *DryRunFS) record(op, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.actions = append(d.actions, Action{Op: op, Name: name})
}

// Lstat returns a FileInfo from the underlying filesystem.
func (d *DryRunFS) Lstat(name string) (fs.FileInfo, error) {
	return d.base.Lstat(name)
}

// ReadDir reads from the underlying filesystem.
func (d *DryRunFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return d.base.ReadDir(name)
}

// Mkdir records the creation unless name already exists.
func (d *DryRunFS) Mkdir(name string, _ fs.FileMode) error {
	if _, err := d.base.Lstat(name); err == nil {
		return &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrExist}
	}
	d.record("mkdir", name)
	return nil
}

// MkdirAll records the creation.
func (d *DryRunFS) MkdirAll(name string, _ fs.FileMode) error {
	d.record("mkdirall", name)
	return nil
}

// Remove records the removal unless name is already gone.
func (d *DryRunFS) Remove(name string) error {
	if _, err := d.base.Lstat(name); err != nil {
		return err
	}
	d.record("remove", name)
	return nil
}

// OpenFile is unsupported: a dry run cannot hand out a real descriptor.
func (d *DryRunFS) OpenFile(name string, _ int, _ fs.FileMode) (*os.File, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: errors.ErrUnsupported}
}
