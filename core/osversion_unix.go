//go:build darwin || linux

package core

import "golang.org/x/sys/unix"

// osVersion returns the kernel release string, the value manifest os.version
// regexes are written against on unix-like hosts.
func osVersion() string {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return ""
	}
	return unix.ByteSliceToString(u.Release[:])
}
