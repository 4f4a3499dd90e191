//go:build windows

package fsutil

import (
	"errors"
	"strings"

	"golang.org/x/sys/windows"
)

// NativeString is the encoding the OS expects for path arguments: a
// NUL-terminated UTF-16 string.
type NativeString = []uint16

var errReservedChar = errors.New("path contains a character reserved on Windows")

func validateNative(s string) error {
	if _, err := windows.UTF16FromString(s); err != nil {
		return err
	}
	body := s
	for _, prefix := range []string{`\\?\`, `//?/`} {
		body = strings.TrimPrefix(body, prefix)
	}
	for i, r := range body {
		switch {
		case r < 32, strings.ContainsRune(`<>"|?*`, r):
			return errReservedChar
		case r == ':' && !(i == 1 && isDriveLetter(body[0])):
			return errReservedChar
		}
	}
	return nil
}

func isDriveLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// NativeEncoded returns the native form encoded for a raw syscall.
func (p Path) NativeEncoded() (NativeString, error) {
	u, err := windows.UTF16FromString(p.native)
	if err != nil {
		return nil, invalidPath("encode", p.portable, err.Error())
	}
	return u, nil
}
