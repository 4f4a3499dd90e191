//go:build !unix && !windows

package fsutil

import (
	"errors"
	"strings"
)

// NativeString is the encoding the OS expects for path arguments.
type NativeString = []byte

var errNUL = errors.New("path contains a NUL byte")

func validateNative(s string) error {
	if strings.IndexByte(s, 0) >= 0 {
		return errNUL
	}
	return nil
}

// NativeEncoded returns the native form encoded for a raw syscall.
func (p Path) NativeEncoded() (NativeString, error) {
	return append([]byte(p.native), 0), nil
}
