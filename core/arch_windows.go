package core

import (
	"os"
	"runtime"
	"strings"

	"golang.org/x/sys/windows"
)

// detectArch asks the OS for the native machine type. An x64 build running
// on Windows-on-ARM executes under emulation and must not pick x64 natives.
func detectArch() string {
	var processMachine, nativeMachine uint16
	err := windows.IsWow64Process2(windows.CurrentProcess(), &processMachine, &nativeMachine)
	if err == nil {
		switch nativeMachine {
		case windows.IMAGE_FILE_MACHINE_ARM64:
			return ArchARM64
		case windows.IMAGE_FILE_MACHINE_AMD64:
			return ArchX64
		case windows.IMAGE_FILE_MACHINE_I386:
			return ArchX86
		}
	}
	// Pre-1511 systems lack IsWow64Process2; the WOW64 environment block
	// still exposes the real architecture to 32-bit processes.
	switch strings.ToUpper(os.Getenv("PROCESSOR_ARCHITEW6432")) {
	case "ARM64":
		return ArchARM64
	case "AMD64":
		return ArchX64
	}
	return compactArch(runtime.GOARCH)
}
