//go:build unix

package fsutil

import "golang.org/x/sys/unix"

// NativeString is the encoding the OS expects for path arguments: a
// NUL-terminated byte string.
type NativeString = []byte

func validateNative(s string) error {
	_, err := unix.ByteSliceFromString(s)
	return err
}

// NativeEncoded returns the native form encoded for a raw syscall.
func (p Path) NativeEncoded() (NativeString, error) {
	b, err := unix.ByteSliceFromString(p.native)
	if err != nil {
		return nil, invalidPath("encode", p.portable, err.Error())
	}
	return b, nil
}
