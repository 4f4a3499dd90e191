package fsutil

import (
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Path is an immutable filesystem path held in two forms: a portable form
// using '/' separators and the native form handed to the OS. Both forms are
// computed once at construction and always denote the same location.
//
// The zero Path is empty and is rejected by every filesystem operation.
type Path struct {
	portable string
	native   string
}

// PathFromString parses s into a Path. On Windows both '/' and '\' are
// accepted as separators; the portable form always uses '/'. Repeated
// separators are collapsed, a trailing separator is kept, and "." or ".."
// segments are left alone.
func PathFromString(s string) (Path, error) {
	if err := checkSegment("path", s); err != nil {
		return Path{}, err
	}
	return newPath(collapseSeparators(filepath.ToSlash(s))), nil
}

// MustPath is like PathFromString but panics if s is invalid.
func MustPath(s string) Path {
	p, err := PathFromString(s)
	if err != nil {
		panic(err)
	}
	return p
}

func newPath(portable string) Path {
	return Path{portable: portable, native: filepath.FromSlash(portable)}
}

// Join returns a new Path with child appended as one or more segments.
// It never touches the filesystem.
func (p Path) Join(child string) (Path, error) {
	if p.IsZero() {
		return Path{}, invalidPath("join", child, "cannot join onto an empty path")
	}
	if err := checkSegment("join", child); err != nil {
		return Path{}, err
	}
	child = collapseSeparators(filepath.ToSlash(child))
	if strings.HasPrefix(child, "/") || filepath.IsAbs(filepath.FromSlash(child)) {
		return Path{}, invalidPath("join", child, "child must be a relative path")
	}
	if p.HasTrailingSeparator() {
		return newPath(p.portable + child), nil
	}
	return newPath(p.portable + "/" + child), nil
}

// String returns the portable form.
func (p Path) String() string {
	return p.portable
}

// Native returns the form passed to OS calls.
func (p Path) Native() string {
	return p.native
}

// IsZero reports whether p is the empty Path.
func (p Path) IsZero() bool {
	return p.portable == ""
}

// HasTrailingSeparator reports whether p ends with a separator, the
// convention for paths that name directories such as TempDir paths.
func (p Path) HasTrailingSeparator() bool {
	return strings.HasSuffix(p.portable, "/")
}

// Parent returns the directory containing p.
func (p Path) Parent() Path {
	trimmed := strings.TrimRight(p.portable, "/")
	if trimmed == "" {
		return newPath("/")
	}
	return newPath(path.Dir(trimmed))
}

// withTrailingSeparator returns p ending in exactly one separator.
func (p Path) withTrailingSeparator() Path {
	if p.HasTrailingSeparator() {
		return p
	}
	return newPath(p.portable + "/")
}

// key identifies the location p names, ignoring a trailing separator.
func (p Path) key() string {
	if k := strings.TrimRight(p.portable, "/"); k != "" {
		return k
	}
	return "/"
}

// entry returns p without a trailing separator, so OS calls act on a final
// symlink itself rather than on its target. Roots such as "/" and "C:/"
// keep their separator.
func (p Path) entry() Path {
	if !p.HasTrailingSeparator() {
		return p
	}
	k := p.key()
	if k == "/" || strings.HasSuffix(k, ":") {
		return p
	}
	return newPath(k)
}

func checkSegment(op, s string) error {
	if s == "" {
		return invalidPath(op, s, "empty path")
	}
	if !utf8.ValidString(s) {
		return invalidPath(op, s, "path is not valid UTF-8")
	}
	if err := validateNative(s); err != nil {
		return invalidPath(op, s, err.Error())
	}
	return nil
}

// collapseSeparators folds runs of '/' into one. A leading "//" is kept so
// UNC names survive.
func collapseSeparators(s string) string {
	if !strings.Contains(s[min(1, len(s)):], "//") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '/' && i > 1 && s[i-1] == '/' {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
