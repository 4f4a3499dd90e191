package filesystem

import (
	"io/fs"
	"os"
)

// StatFS reports metadata without following a final symlink.
type StatFS interface {
	Lstat(name string) (fs.FileInfo, error)
}

// DirFS defines the directory primitives used by fsutil.
type DirFS interface {
	Mkdir(name string, perm fs.FileMode) error
	MkdirAll(name string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)
}

// WriteFS defines the file primitives used by fsutil.
type WriteFS interface {
	OpenFile(name string, flag int, perm fs.FileMode) (*os.File, error)
	Remove(name string) error
}

// FileSystem combines every primitive fsutil needs. All names are native
// paths as produced by fsutil.Path.Native.
type FileSystem interface {
	StatFS
	DirFS
	WriteFS
}
