package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultInstanceDir picks the conventional per-OS data directory for the
// launcher instance, e.g. ~/.lodestone on Linux.
func DefaultInstanceDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lodestone"
	}

	switch runtime.GOOS {
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, ".lodestone")
		}
		return filepath.Join(home, ".lodestone")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "lodestone")
	default:
		return filepath.Join(home, ".lodestone")
	}
}

// Layout resolves every well-known path inside one launcher instance.
// All launcher state lives under the instance directory so a player can
// relocate or delete an instance as a unit.
type Layout struct {
	InstanceDir string
}

func NewLayout(instanceDir string) Layout {
	return Layout{InstanceDir: instanceDir}
}

// CommonDir holds files shared between servers: libraries, assets and
// version manifests.
func (l Layout) CommonDir() string {
	return filepath.Join(l.InstanceDir, "common")
}

// LibrariesDir is the maven-layout root all library and module artifacts
// download into.
func (l Layout) LibrariesDir() string {
	return filepath.Join(l.CommonDir(), "libraries")
}

func (l Layout) AssetsDir() string {
	return filepath.Join(l.CommonDir(), "assets")
}

func (l Layout) AssetIndexesDir() string {
	return filepath.Join(l.AssetsDir(), "indexes")
}

func (l Layout) AssetObjectsDir() string {
	return filepath.Join(l.AssetsDir(), "objects")
}

func (l Layout) VersionsDir() string {
	return filepath.Join(l.CommonDir(), "versions")
}

// VersionJarPath is where the vanilla client jar for a Minecraft version is
// kept, mirroring the official launcher layout.
func (l Layout) VersionJarPath(mcVersion string) string {
	return filepath.Join(l.VersionsDir(), mcVersion, mcVersion+".jar")
}

func (l Layout) VersionManifestPath(mcVersion string) string {
	return filepath.Join(l.VersionsDir(), mcVersion, mcVersion+".json")
}

// ServerDir is the per-server game directory; worlds, options and logs for
// one server stay isolated here.
func (l Layout) ServerDir(serverID string) string {
	return filepath.Join(l.InstanceDir, "servers", serverID)
}

func (l Layout) ModsDir(serverID string) string {
	return filepath.Join(l.ServerDir(serverID), "mods")
}

func (l Layout) ModListPath(serverID string) string {
	return filepath.Join(l.ServerDir(serverID), "mod_list.json")
}

func (l Layout) ModConfigPath(serverID string) string {
	return filepath.Join(l.ServerDir(serverID), "modconfig.toml")
}

func (l Layout) DistributionCachePath() string {
	return filepath.Join(l.InstanceDir, "distribution.json")
}

// SettingsPath is the instance's persisted launcher settings file.
func (l Layout) SettingsPath() string {
	return filepath.Join(l.InstanceDir, "settings.toml")
}

func (l Layout) AccountsPath() string {
	return filepath.Join(l.InstanceDir, "accounts.toml")
}

func (l Layout) LedgerPath() string {
	return filepath.Join(l.InstanceDir, "ledger.toml")
}

func (l Layout) IgnorePath() string {
	return filepath.Join(l.InstanceDir, ".lodestoneignore")
}
