package fsutil

import (
	"errors"
	"os"
	"sync"
)

// Handle is an open file returned by OpenWritable.
type Handle struct {
	path Path
	file *os.File

	once sync.Once
	err  error
}

// Path returns the path the handle was opened with.
func (h *Handle) Path() Path {
	return h.path
}

// Fd returns the OS file descriptor. It is only valid until Close.
func (h *Handle) Fd() uintptr {
	return h.file.Fd()
}

// File exposes the underlying *os.File for higher-level I/O.
func (h *Handle) File() *os.File {
	return h.file
}

// Close releases the handle. Only the first call reaches the OS; later
// calls return the first call's result.
func (h *Handle) Close() error {
	h.once.Do(func() {
		if err := h.file.Close(); err != nil {
			h.err = ioError("close", h.path, err)
		}
	})
	return h.err
}

// FileClose closes h. A nil handle is a no-op.
func FileClose(h *Handle) error {
	if h == nil {
		return nil
	}
	return h.Close()
}

// OpenWritable opens p for writing, creating it if needed. writeOnly opens
// without read access, truncate resets the file to zero length and appendOnly
// directs every write to the end of the file. It fails with IOError if p is
// a directory.
func (o *Ops) OpenWritable(p Path, writeOnly, truncate, appendOnly bool) (*Handle, error) {
	if p.IsZero() {
		return nil, invalidPath("open writable", "", "empty path")
	}

	flag := os.O_CREATE
	if writeOnly {
		flag |= os.O_WRONLY
	} else {
		flag |= os.O_RDWR
	}
	if truncate {
		flag |= os.O_TRUNC
	}
	if appendOnly {
		flag |= os.O_APPEND
	}

	f, err := o.fs.OpenFile(p.Native(), flag, filePerm)
	if err != nil {
		return nil, ioError("open writable", p, err)
	}

	// Not every platform refuses a write open of a directory, so check.
	info, err := f.Stat()
	if err == nil && info.IsDir() {
		err = errors.New("is a directory")
	}
	if err != nil {
		_ = f.Close()
		return nil, ioError("open writable", p, err)
	}
	return &Handle{path: p, file: f}, nil
}

// DeleteFile removes the regular file (or symlink) p. It returns false if
// p does not exist and fails with IOError if p is a directory; directories
// must be removed with DeleteDirTree.
func (o *Ops) DeleteFile(p Path) (bool, error) {
	info, err := o.lstat("delete file", p)
	if err != nil {
		if notExist(err) {
			return false, nil
		}
		return false, err
	}
	if info.IsDir() {
		return false, ioErrorf("delete file", p, "is a directory")
	}
	if err := o.fs.Remove(p.entry().Native()); err != nil {
		if notExist(err) {
			return false, nil
		}
		return false, ioError("delete file", p, err)
	}
	return true, nil
}
