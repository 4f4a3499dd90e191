package fsutil

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/fsutil/pkg/fsutil/filesystem"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Ops runs the fsutil operations against a filesystem.FileSystem. The
// package-level functions use an Ops backed by the OS filesystem.
type Ops struct {
	fs     filesystem.FileSystem
	logger *zerolog.Logger
}

// Option configures an Ops.
type Option func(*Ops)

// WithLogger makes the Ops log to l instead of the package logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Ops) {
		o.logger = &l
	}
}

// New creates an Ops over fsys. A nil fsys means the OS filesystem.
func New(fsys filesystem.FileSystem, opts ...Option) *Ops {
	if fsys == nil {
		fsys = filesystem.NewOSFileSystem()
	}
	o := &Ops{fs: fsys}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Ops) log() *zerolog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return Logger()
}

var std = New(nil)

// Exists reports whether an entry is present at p on the OS filesystem.
func Exists(p Path) (bool, error) { return std.Exists(p) }

// IsDir reports whether a directory is present at p on the OS filesystem.
func IsDir(p Path) (bool, error) { return std.IsDir(p) }

// CreateDir creates the single directory p. See Ops.CreateDir.
func CreateDir(p Path) (bool, error) { return std.CreateDir(p) }

// CreateDirTree creates p and any missing ancestors. See Ops.CreateDirTree.
func CreateDirTree(p Path) (bool, error) { return std.CreateDirTree(p) }

// CreateDirs creates several directories, parents first. See Ops.CreateDirs.
func CreateDirs(paths ...Path) ([]Path, error) { return std.CreateDirs(paths...) }

// DeleteDirTree removes p and everything beneath it. See Ops.DeleteDirTree.
func DeleteDirTree(p Path) (bool, error) { return std.DeleteDirTree(p) }

// DeleteDirContents empties the directory p. See Ops.DeleteDirContents.
func DeleteDirContents(p Path) (bool, error) { return std.DeleteDirContents(p) }

// OpenWritable opens p for writing. See Ops.OpenWritable.
func OpenWritable(p Path, writeOnly, truncate, appendOnly bool) (*Handle, error) {
	return std.OpenWritable(p, writeOnly, truncate, appendOnly)
}

// DeleteFile removes the regular file p. See Ops.DeleteFile.
func DeleteFile(p Path) (bool, error) { return std.DeleteFile(p) }
