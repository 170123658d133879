package fileio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/lodestone-launcher/lodestone/core"
)

// LoadVersionManifest reads a cached Mojang version manifest.
func LoadVersionManifest(path string) (*core.VersionManifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseVersionManifest(raw)
}

func parseVersionManifest(raw []byte) (*core.VersionManifest, error) {
	var manifest core.VersionManifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("parsing version manifest: %w", err)
	}
	if manifest.MainClass == "" {
		return nil, fmt.Errorf("version manifest %s declares no main class", manifest.ID)
	}
	return &manifest, nil
}

// FetchVersionManifest returns the manifest for a game version, fetching and
// caching it on first use. The version is resolved through the launchermeta
// catalog so an unknown id fails here rather than as a dead download link.
func FetchVersionManifest(path, mcVersion string) (*core.VersionManifest, error) {
	if manifest, err := LoadVersionManifest(path); err == nil {
		return manifest, nil
	}

	versions, err := core.GetMinecraftVersions()
	if err != nil {
		return nil, fmt.Errorf("fetching game version catalog: %w", err)
	}
	url, ok := versions.ManifestURL(mcVersion)
	if !ok {
		return nil, fmt.Errorf("unknown game version %q", mcVersion)
	}

	resp, err := core.GetWithUA(url, "application/json")
	if err != nil {
		return nil, fmt.Errorf("fetching version manifest: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("version manifest fetch returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	manifest, err := parseVersionManifest(raw)
	if err != nil {
		return nil, err
	}

	f, err := CreateFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if _, err := f.Write(raw); err != nil {
		return nil, err
	}

	return manifest, nil
}
