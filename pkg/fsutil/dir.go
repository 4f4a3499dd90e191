package fsutil

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/gammazero/toposort"
)

// CreateDir creates the directory p. Its parent must already exist; a
// missing ancestor is an IOError. If p is already a directory, including
// one created concurrently by another caller, CreateDir returns false and
// no error. If p exists but is not a directory, it fails with an IOError
// that wraps fs.ErrExist.
func (o *Ops) CreateDir(p Path) (bool, error) {
	if p.IsZero() {
		return false, invalidPath("create dir", "", "empty path")
	}

	// A second Mkdir covers an entry removed between Mkdir and Lstat.
	for attempt := 1; ; attempt++ {
		err := o.fs.Mkdir(p.Native(), dirPerm)
		if err == nil {
			o.log().Debug().Str("path", p.String()).Msg("created directory")
			return true, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return false, ioError("create dir", p, err)
		}

		info, serr := o.fs.Lstat(p.entry().Native())
		switch {
		case serr == nil && info.IsDir():
			return false, nil
		case serr == nil:
			return false, &Error{Kind: KindIO, Op: "create dir", Path: p.String(),
				Msg: "path exists and is not a directory", Err: fs.ErrExist}
		case !notExist(serr) || attempt == 2:
			return false, ioError("create dir", p, serr)
		}
	}
}

// CreateDirTree creates p along with any missing ancestors. It returns
// true if p did not exist before the call.
func (o *Ops) CreateDirTree(p Path) (bool, error) {
	info, err := o.lstat("create dir tree", p)
	switch {
	case err == nil && info.IsDir():
		return false, nil
	case err == nil:
		return false, ioErrorf("create dir tree", p, "path exists and is not a directory")
	case !notExist(err):
		return false, err
	}

	if err := o.fs.MkdirAll(p.Native(), dirPerm); err != nil {
		return false, ioError("create dir tree", p, err)
	}
	o.log().Debug().Str("path", p.String()).Msg("created directory tree")
	return true, nil
}

// CreateDirs creates each of paths with CreateDir, ordering them so that a
// parent listed in paths is created before its descendants. Ancestors not
// listed must already exist. It returns the paths that were newly created,
// in creation order, even when it fails part way.
func (o *Ops) CreateDirs(paths ...Path) ([]Path, error) {
	byKey := make(map[string]Path, len(paths))
	order := make([]string, 0, len(paths))
	for _, p := range paths {
		if p.IsZero() {
			return nil, invalidPath("create dirs", "", "empty path")
		}
		k := p.key()
		if _, dup := byKey[k]; dup {
			continue
		}
		byKey[k] = p
		order = append(order, k)
	}

	edges := make([]toposort.Edge, 0, len(order))
	for _, k := range order {
		cur := byKey[k]
		for {
			parent := cur.Parent()
			pk := parent.key()
			if pk == cur.key() {
				break
			}
			if _, listed := byKey[pk]; listed {
				// Edge[0] must be created before Edge[1]
				edges = append(edges, toposort.Edge{pk, k})
				break
			}
			cur = parent
		}
	}

	sorted, err := toposort.Toposort(edges)
	if err != nil {
		return nil, fmt.Errorf("ordering directories: %w", err)
	}

	plan := make([]Path, 0, len(order))
	seen := make(map[string]bool, len(order))
	for _, node := range sorted {
		k, ok := node.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected type in topological sort result: %T", node)
		}
		seen[k] = true
		plan = append(plan, byKey[k])
	}
	for _, k := range order {
		if !seen[k] {
			plan = append(plan, byKey[k])
		}
	}

	var created []Path
	for _, p := range plan {
		ok, err := o.CreateDir(p)
		if err != nil {
			return created, err
		}
		if ok {
			created = append(created, p)
		}
	}
	return created, nil
}

// DeleteDirTree removes p and everything beneath it, children before
// parents. A missing p is not an error: DeleteDirTree returns false. A
// symlink at p is unlinked and its target left alone, with or without a
// trailing separator. Any other non-directory fails with IOError. Entries
// that vanish while the tree is walked, for example because another
// process is deleting the same tree, are skipped. The walk as a whole is
// not atomic.
func (o *Ops) DeleteDirTree(p Path) (bool, error) {
	info, err := o.lstat("delete dir tree", p)
	if err != nil {
		if notExist(err) {
			return false, nil
		}
		return false, err
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		if err := o.fs.Remove(p.entry().Native()); err != nil {
			if notExist(err) {
				return false, nil
			}
			return false, ioError("delete dir tree", p, err)
		}
		o.log().Debug().Str("path", p.String()).Msg("removed symlink")
		return true, nil
	}
	if !info.IsDir() {
		return false, ioErrorf("delete dir tree", p, "not a directory")
	}

	if err := o.removeContents("delete dir tree", p); err != nil {
		return false, err
	}
	if err := o.fs.Remove(p.entry().Native()); err != nil && !notExist(err) {
		return false, ioError("delete dir tree", p, err)
	}
	o.log().Debug().Str("path", p.String()).Msg("deleted directory tree")
	return true, nil
}

// DeleteDirContents removes everything beneath p but keeps p itself. It
// returns false if p does not exist.
func (o *Ops) DeleteDirContents(p Path) (bool, error) {
	info, err := o.lstat("delete dir contents", p)
	if err != nil {
		if notExist(err) {
			return false, nil
		}
		return false, err
	}
	if !info.IsDir() {
		return false, ioErrorf("delete dir contents", p, "not a directory")
	}
	if err := o.removeContents("delete dir contents", p); err != nil {
		return false, err
	}
	return true, nil
}

type pendingDir struct {
	path    Path
	entries []fs.DirEntry
	listed  bool
	next    int
}

// removeContents deletes every descendant of root depth-first using an
// explicit stack. Symlinks are removed, never followed.
func (o *Ops) removeContents(op string, root Path) error {
	stack := []*pendingDir{{path: root.withTrailingSeparator()}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]

		if !top.listed {
			entries, err := o.fs.ReadDir(top.path.Native())
			if err != nil {
				if notExist(err) {
					stack = stack[:len(stack)-1]
					continue
				}
				return ioError(op, top.path, err)
			}
			top.entries, top.listed = entries, true
		}

		if top.next < len(top.entries) {
			entry := top.entries[top.next]
			top.next++
			child := newPath(top.path.portable + entry.Name())
			if entry.IsDir() {
				stack = append(stack, &pendingDir{path: child.withTrailingSeparator()})
				continue
			}
			if err := o.fs.Remove(child.Native()); err != nil && !notExist(err) {
				return ioError(op, child, err)
			}
			continue
		}

		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			break
		}
		if err := o.fs.Remove(top.path.Native()); err != nil && !notExist(err) {
			return ioError(op, top.path, err)
		}
	}
	return nil
}
