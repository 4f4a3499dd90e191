package fsutil

import "io/fs"

// Exists reports whether a file, directory or other entry is present at p.
// Absence is a false result, not an error; any other stat failure is an
// IOError. The answer is only valid at the instant of the call.
func (o *Ops) Exists(p Path) (bool, error) {
	_, err := o.lstat("exists", p)
	if err != nil {
		if notExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// IsDir reports whether p is an existing directory. Symlinks are not
// followed.
func (o *Ops) IsDir(p Path) (bool, error) {
	info, err := o.lstat("isdir", p)
	if err != nil {
		if notExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// lstat stats p itself, never the target of a final symlink, even when p
// has a trailing separator. It returns the raw not-exist error unchanged so
// callers can test it with notExist; everything else comes back as an
// IOError.
func (o *Ops) lstat(op string, p Path) (fs.FileInfo, error) {
	if p.IsZero() {
		return nil, invalidPath(op, "", "empty path")
	}
	info, err := o.fs.Lstat(p.entry().Native())
	if err != nil {
		if notExist(err) {
			return nil, err
		}
		return nil, ioError(op, p, err)
	}
	return info, nil
}
