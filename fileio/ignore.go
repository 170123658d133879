package fileio

import (
	"os"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

var ignoreDefaults = []string{
	// Defaults (can be overridden with a negating pattern preceded with !)

	// Exclude Git metadata, for players who keep their instance in a repo
	".git/**",
	".gitattributes",
	".gitignore",

	// Exclude macOS metadata
	".DS_Store",

	// Never export credentials
	"accounts.toml",

	// Redownloadable shared artifacts; they dwarf everything else
	"common/**",

	// Per-launch scratch directories and prior exports
	"natives-*/**",
	"/*.zip",

	// Bulky per-server state that is not part of the setup
	"servers/*/saves/**",
	"servers/*/screenshots/**",
	"servers/*/logs/**",
	"servers/*/crash-reports/**",
}

// readIgnoreFile compiles the instance export exclusions, layering the
// player's .lodestoneignore (if any) over the defaults.
func readIgnoreFile(path string) (*gitignore.GitIgnore, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gitignore.CompileIgnoreLines(ignoreDefaults...), false
	}

	s := strings.Split(string(data), "\n")
	var lines []string
	lines = append(lines, ignoreDefaults...)
	lines = append(lines, s...)
	return gitignore.CompileIgnoreLines(lines...), true
}
