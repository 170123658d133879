package core

import (
	"runtime"
	"strings"
)

// Compact architecture names used throughout the launcher. Version manifests
// use a second spelling (aarch64/x86_64) which NormalizeArch converts to.
const (
	ArchARM64 = "arm64"
	ArchX64   = "x64"
	ArchX86   = "x86"
)

// Architecture identifies the host platform and the actual silicon
// architecture, which may differ from the architecture the runtime was built
// for when the process executes under instruction-set translation (Rosetta,
// WOW64 emulation).
type Architecture struct {
	Platform string // runtime.GOOS value: darwin, linux, windows
	Arch     string // compact form: arm64, x64, x86
}

// ResolveArchitecture determines the host platform and true CPU architecture.
// On platforms with translation layers the OS is probed directly; the
// runtime-reported architecture is only a fallback.
func ResolveArchitecture() Architecture {
	return Architecture{
		Platform: runtime.GOOS,
		Arch:     detectArch(),
	}
}

// compactArch folds the various architecture spellings (runtime, uname,
// manifest) into the compact form.
func compactArch(arch string) string {
	switch strings.ToLower(arch) {
	case "arm64", "aarch64":
		return ArchARM64
	case "amd64", "x86_64", "x64", "x86-64":
		return ArchX64
	case "386", "i386", "i686", "x86":
		return ArchX86
	}
	return strings.ToLower(arch)
}

// NormalizeArch converts an architecture name between the compact form and
// the form used by version manifests. On Windows the manifest form for x64 is
// "x64" itself; everywhere else manifests spell arm64 as "aarch64" and x64 as
// "x86_64".
func NormalizeArch(arch, platform string, manifestForm bool) string {
	compact := compactArch(arch)
	if !manifestForm {
		return compact
	}
	if canonicalOS(platform) == "windows" {
		return compact
	}
	switch compact {
	case ArchARM64:
		return "aarch64"
	case ArchX64:
		return "x86_64"
	}
	return compact
}

// SameArch reports whether two architecture names refer to the same silicon,
// regardless of which spelling convention each side uses. This is the
// canonical equality test for classifier and identifier matching.
func SameArch(a, b, platform string) bool {
	return NormalizeArch(a, platform, false) == NormalizeArch(b, platform, false)
}

// armIncompatible reports whether a classifier or identifier architecture is
// an x86-family name while the detected host is ARM-class. Translated
// processes report x64 and would otherwise pick up natives that crash the
// game on Apple silicon.
func armIncompatible(classifierArch, hostArch string) bool {
	host := compactArch(hostArch)
	cls := compactArch(classifierArch)
	return host == ArchARM64 && (cls == ArchX64 || cls == ArchX86)
}

// canonicalOS folds the macOS spellings (darwin from the runtime, osx in
// legacy manifests, macos in modern native identifiers) into one name.
func canonicalOS(name string) string {
	switch strings.ToLower(name) {
	case "osx", "macos", "darwin":
		return "osx"
	}
	return strings.ToLower(name)
}

// ManifestOS maps a runtime.GOOS value to the OS name used by version
// manifest rules and classifiers.
func ManifestOS(goos string) string {
	return canonicalOS(goos)
}

// SameOS reports whether two OS names refer to the same platform.
func SameOS(a, b string) bool {
	return canonicalOS(a) == canonicalOS(b)
}
