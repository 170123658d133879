package core

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// detectArch probes the kernel for the real silicon architecture. A launcher
// running under Rosetta reports amd64 from the runtime, but natives picked
// for x64 will not load into the arm64 game process.
func detectArch() string {
	// sysctl.proc_translated is 1 when this process runs under Rosetta.
	if translated, err := unix.SysctlUint32("sysctl.proc_translated"); err == nil && translated == 1 {
		return ArchARM64
	}
	// hw.optional.arm64 exists on Apple silicon regardless of how this
	// binary was built. It is absent (error) on Intel machines.
	if hasARM, err := unix.SysctlUint32("hw.optional.arm64"); err == nil {
		if hasARM == 1 {
			return ArchARM64
		}
		return ArchX64
	}
	return compactArch(runtime.GOARCH)
}
