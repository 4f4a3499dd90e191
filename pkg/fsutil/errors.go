package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// Kind classifies a failure reported by this package.
type Kind int

const (
	// KindIO is an OS-level failure: permission denied, wrong entry type,
	// missing ancestor, device error.
	KindIO Kind = iota
	// KindInvalidPath means a path string cannot be represented in the
	// platform's path encoding.
	KindInvalidPath
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "IOError"
	case KindInvalidPath:
		return "InvalidPath"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

var (
	// ErrIO matches any *Error of KindIO via errors.Is.
	ErrIO = errors.New("io error")
	// ErrInvalidPath matches any *Error of KindInvalidPath via errors.Is.
	ErrInvalidPath = errors.New("invalid path")
)

// Error is the error type returned by every fallible operation in fsutil.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Path == "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Op, msg)
	}
	return fmt.Sprintf("%s: %s '%s': %s", e.Kind, e.Op, e.Path, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrIO:
		return e.Kind == KindIO
	case ErrInvalidPath:
		return e.Kind == KindInvalidPath
	}
	return false
}

// IsIOError reports whether err is, or wraps, an IOError.
func IsIOError(err error) bool {
	return errors.Is(err, ErrIO)
}

// IsInvalidPath reports whether err is, or wraps, an InvalidPath error.
func IsInvalidPath(err error) bool {
	return errors.Is(err, ErrInvalidPath)
}

func ioError(op string, p Path, err error) error {
	return &Error{Kind: KindIO, Op: op, Path: p.String(), Err: err}
}

func ioErrorf(op string, p Path, format string, args ...interface{}) error {
	return &Error{Kind: KindIO, Op: op, Path: p.String(), Msg: fmt.Sprintf(format, args...)}
}

func invalidPath(op, path, reason string) error {
	return &Error{Kind: KindInvalidPath, Op: op, Path: path, Msg: reason}
}

// notExist reports whether err means the entry is absent. ENOTDIR counts:
// a regular file sitting where an ancestor directory should be means
// nothing exists at the full path.
func notExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
