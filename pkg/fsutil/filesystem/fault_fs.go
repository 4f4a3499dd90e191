package filesystem

import (
	"io/fs"
	"os"
	"sync"
)

// FaultFS wraps a FileSystem and lets tests inject failures or run a hook
// before a primitive reaches the underlying filesystem. It is intended for
// tests that need to simulate concurrent actors or OS faults.
type FaultFS struct {
	FileSystem

	mu     sync.Mutex
	faults map[string]error
	hooks  map[string]func(name string)
	calls  map[string]int
}

// NewFaultFS wraps base. A nil base wraps the OS filesystem.
func NewFaultFS(base FileSystem) *FaultFS {
	if base == nil {
		base = NewOSFileSystem()
	}
	return &FaultFS{
		FileSystem: base,
		faults:     make(map[string]error),
		hooks:      make(map[string]func(string)),
		calls:      make(map[string]int),
	}
}

// FailOn makes op ("lstat", "mkdir", "mkdirall", "readdir", "openfile",
// "remove") on name return err instead of reaching the filesystem.
func (f *FaultFS) FailOn(op, name string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults[op+"\x00"+name] = err
}

// Before registers a hook run before every call of op.
func (f *FaultFS) Before(op string, hook func(name string)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hooks[op] = hook
}

// Calls returns how many times op was invoked.
func (f *FaultFS) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *FaultFS) enter(op, name string) error {
	f.mu.Lock()
	f.calls[op]++
	hook := f.hooks[op]
	err := f.faults[op+"\x00"+name]
	f.mu.Unlock()

	if hook != nil {
		hook(name)
	}
	if err != nil {
		return &fs.PathError{Op: op, Path: name, Err: err}
	}
	return nil
}

func (f *FaultFS) Lstat(name string) (fs.FileInfo, error) {
	if err := f.enter("lstat", name); err != nil {
		return nil, err
	}
	return f.FileSystem.Lstat(name)
}

func (f *FaultFS) Mkdir(name string, perm fs.FileMode) error {
	if err := f.enter("mkdir", name); err != nil {
		return err
	}
	return f.FileSystem.Mkdir(name, perm)
}

func (f *FaultFS) MkdirAll(name string, perm fs.FileMode) error {
	if err := f.enter("mkdirall", name); err != nil {
		return err
	}
	return f.FileSystem.MkdirAll(name, perm)
}

func (f *FaultFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if err := f.enter("readdir", name); err != nil {
		return nil, err
	}
	return f.FileSystem.ReadDir(name)
}

func (f *FaultFS) OpenFile(name string, flag int, perm fs.FileMode) (*os.File, error) {
	if err := f.enter("openfile", name); err != nil {
		return nil, err
	}
	return f.FileSystem.OpenFile(name, flag, perm)
}

func (f *FaultFS) Remove(name string) error {
	if err := f.enter("remove", name); err != nil {
		return err
	}
	return f.FileSystem.Remove(name)
}
