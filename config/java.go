package config

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ResolveJavaExecutable picks the java binary to spawn the game with.
// An explicit setting always wins; otherwise JAVA_HOME, then whatever is on
// PATH. The bare name "java" comes back when nothing resolves so the spawn
// error surfaces at launch with a usable message.
func ResolveJavaExecutable(explicit string) string {
	if explicit != "" {
		return explicit
	}

	binary := "java"
	if runtime.GOOS == "windows" {
		binary = "javaw.exe"
	}

	if home := os.Getenv("JAVA_HOME"); home != "" {
		candidate := filepath.Join(home, "bin", binary)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if found, err := exec.LookPath(binary); err == nil {
		return found
	}
	return binary
}
