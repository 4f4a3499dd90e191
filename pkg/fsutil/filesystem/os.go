package filesystem

import (
	"io/fs"
	"os"
)

// OSFileSystem implements FileSystem using the OS filesystem.
type OSFileSystem struct{}

// NewOSFileSystem creates a new OS-based filesystem
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// Lstat implements StatFS
func (*OSFileSystem) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(name)
}

// Mkdir implements DirFS
func (*OSFileSystem) Mkdir(name string, perm fs.FileMode) error {
	return os.Mkdir(name, perm)
}

// MkdirAll implements DirFS
func (*OSFileSystem) MkdirAll(name string, perm fs.FileMode) error {
	return os.MkdirAll(name, perm)
}

// ReadDir implements DirFS
func (*OSFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

// OpenFile implements WriteFS
func (*OSFileSystem) OpenFile(name string, flag int, perm fs.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}

// Remove implements WriteFS
func (*OSFileSystem) Remove(name string) error {
	return os.Remove(name)
}
