//go:build !darwin && !windows

package core

import "runtime"

// detectArch trusts the runtime on platforms without a supported translation
// layer; emulated Linux environments report the emulated architecture, which
// is the one natives must match anyway.
func detectArch() string {
	return compactArch(runtime.GOARCH)
}
