package fsutil

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// DefaultMaxAttempts bounds how many generated names Make tries before
// giving up on collisions.
const DefaultMaxAttempts = 5

const suffixLen = 12

// TempDirFactory creates TempDirs under a fixed root directory.
type TempDirFactory struct {
	root        Path
	ops         *Ops
	maxAttempts int
}

// TempDirOption configures a TempDirFactory.
type TempDirOption func(*TempDirFactory)

// WithOps makes the factory create and delete through o.
func WithOps(o *Ops) TempDirOption {
	return func(f *TempDirFactory) {
		f.ops = o
	}
}

// WithMaxAttempts sets the collision retry bound. Values below one are
// ignored.
func WithMaxAttempts(n int) TempDirOption {
	return func(f *TempDirFactory) {
		if n > 0 {
			f.maxAttempts = n
		}
	}
}

// NewTempDirFactory creates a factory that places directories under root.
func NewTempDirFactory(root string, opts ...TempDirOption) (*TempDirFactory, error) {
	p, err := PathFromString(root)
	if err != nil {
		return nil, err
	}
	f := &TempDirFactory{
		root:        p,
		ops:         std,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// DefaultTempDirFactory creates a factory rooted at os.TempDir().
func DefaultTempDirFactory() (*TempDirFactory, error) {
	return NewTempDirFactory(os.TempDir())
}

// Root returns the directory new TempDirs are created in.
func (f *TempDirFactory) Root() Path {
	return f.root
}

// Make creates a new directory named prefix followed by a random suffix
// under the factory root. The returned path always ends with a separator.
// The caller owns the TempDir and must Close it.
func (f *TempDirFactory) Make(prefix string) (*TempDir, error) {
	if prefix != "" {
		if err := checkSegment("make temp dir", prefix); err != nil {
			return nil, err
		}
		if strings.ContainsAny(prefix, `/\`) {
			return nil, invalidPath("make temp dir", prefix, "prefix must not contain a separator")
		}
	}

	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		suffix, err := randomSuffix()
		if err != nil {
			return nil, ioError("make temp dir", f.root, err)
		}
		p, err := f.root.Join(prefix + suffix)
		if err != nil {
			return nil, err
		}
		p = p.withTrailingSeparator()

		// An existing entry of any type under this name is a collision.
		created, err := f.ops.CreateDir(p)
		if err != nil && !errors.Is(err, fs.ErrExist) {
			return nil, err
		}
		if created {
			f.ops.log().Debug().Str("path", p.String()).Int("attempt", attempt).Msg("created temporary directory")
			return &TempDir{path: p, ops: f.ops}, nil
		}
		f.ops.log().Debug().Str("path", p.String()).Msg("temporary directory name collision")
	}
	return nil, ioErrorf("make temp dir", f.root,
		"could not create a unique directory after %d attempts", f.maxAttempts)
}

func randomSuffix() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(id.String(), "-", "")[:suffixLen], nil
}

var defaultFactory = sync.OnceValues(DefaultTempDirFactory)

// MakeTempDir creates a TempDir under os.TempDir().
func MakeTempDir(prefix string) (*TempDir, error) {
	f, err := defaultFactory()
	if err != nil {
		return nil, err
	}
	return f.Make(prefix)
}

// TempDir owns a directory created by TempDirFactory.Make and removes it,
// with everything inside it, on Close. Use it with defer:
//
//	dir, err := fsutil.MakeTempDir("build-")
//	if err != nil {
//		return err
//	}
//	defer dir.Close()
type TempDir struct {
	path Path
	ops  *Ops
	once sync.Once
}

// Path returns the owned directory. It ends with a separator.
func (d *TempDir) Path() Path {
	return d.path
}

// Close deletes the directory tree. Failures are logged, never returned,
// so Close is safe on any cleanup path. Calls after the first do nothing.
func (d *TempDir) Close() error {
	d.once.Do(func() {
		if _, err := d.ops.DeleteDirTree(d.path); err != nil {
			d.ops.log().Warn().Err(err).Str("path", d.path.String()).Msg("failed to remove temporary directory")
		}
	})
	return nil
}
