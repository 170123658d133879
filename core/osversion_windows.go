package core

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// osVersion returns the Windows version in the major.minor.build form that
// manifest os.version regexes (e.g. ^10\.) are written against.
func osVersion() string {
	major, minor, build := windows.RtlGetNtVersionNumbers()
	return fmt.Sprintf("%d.%d.%d", major, minor, build)
}
