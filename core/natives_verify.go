package core

import (
	"debug/macho"
	"os"
	"path/filepath"
)

// expectedDarwinNatives are the runtime libraries the game cannot start
// without on macOS. Presence and architecture are checked after extraction.
var expectedDarwinNatives = []string{
	"liblwjgl.dylib",
	"libglfw.dylib",
	"libopenal.dylib",
}

// VerifyNatives inspects the extracted directory on macOS: the expected
// runtime libraries must exist and their binary architecture should agree
// with the host. Everything here is advisory; problems are logged as
// warnings and the launch proceeds regardless.
func (e *NativesExtractor) VerifyNatives() {
	if e.Arch.Platform != "darwin" {
		return
	}
	for _, name := range expectedDarwinNatives {
		p := filepath.Join(e.TargetDir, name)
		if _, err := os.Stat(p); err != nil {
			e.logger().Warn("expected native library missing after extraction",
				"library", name)
			continue
		}
		arches := machoArches(p)
		if len(arches) == 0 {
			continue
		}
		if !containsArch(arches, e.Arch.Arch, e.Arch.Platform) {
			e.logger().Warn("extracted native library does not match host architecture",
				"library", name, "have", arches, "want", e.Arch.Arch)
		}
	}
}

func containsArch(arches []string, hostArch, platform string) bool {
	for _, a := range arches {
		if SameArch(a, hostArch, platform) {
			return true
		}
	}
	return false
}

// machoArches lists the cpu architectures a Mach-O binary carries, in
// compact naming. Universal binaries report every slice.
func machoArches(path string) []string {
	if fat, err := macho.OpenFat(path); err == nil {
		defer fat.Close()
		var out []string
		for _, a := range fat.Arches {
			if n := machoCpuName(a.Cpu); n != "" {
				out = append(out, n)
			}
		}
		return out
	}

	f, err := macho.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	if n := machoCpuName(f.Cpu); n != "" {
		return []string{n}
	}
	return nil
}

func machoCpuName(cpu macho.Cpu) string {
	switch cpu {
	case macho.CpuArm64:
		return ArchARM64
	case macho.CpuAmd64:
		return ArchX64
	case macho.Cpu386:
		return ArchX86
	}
	return ""
}
