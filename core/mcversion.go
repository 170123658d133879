package core

import (
	"encoding/json"
	"io"

	"github.com/unascribed/FlexVer/go/flexver"
	"golang.org/x/exp/slices"
)

const versionManifestURL = "https://launchermeta.mojang.com/mc/game/version_manifest.json"

type versionListJson struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []versionDef `json:"versions"`
}

type versionDef struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	Time        string `json:"time"`
	ReleaseTime string `json:"releaseTime"`
}

// McVersionInfo is the game-version catalog from launchermeta: the ordered
// release list plus per-version manifest URLs (snapshots included, so a
// server pinned to a snapshot still resolves).
type McVersionInfo struct {
	Latest         string
	LatestSnapshot string
	Versions       []string

	manifestURLs map[string]string
}

func (m McVersionInfo) CheckValid(version string) bool {
	return slices.Contains(m.Versions, version)
}

// ManifestURL returns the version-manifest endpoint for a game version.
func (m McVersionInfo) ManifestURL(version string) (string, bool) {
	url, ok := m.manifestURLs[version]
	return url, ok
}

func GetMinecraftVersions() (McVersionInfo, error) {
	var versionInfo McVersionInfo

	resp, err := GetWithUA(versionManifestURL, "application/json")
	if err != nil {
		return versionInfo, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return versionInfo, err
	}

	var info versionListJson
	if err := json.Unmarshal(body, &info); err != nil {
		return versionInfo, err
	}

	versions := make([]string, 0)
	urls := make(map[string]string, len(info.Versions))

	for _, v := range info.Versions {
		urls[v.ID] = v.URL
		if v.Type != "release" {
			continue
		}
		versions = append(versions, v.ID)
	}

	versionInfo = McVersionInfo{
		Latest:         info.Latest.Release,
		LatestSnapshot: info.Latest.Snapshot,
		Versions:       versions,
		manifestURLs:   urls,
	}

	return versionInfo, nil
}

// MinecraftAtLeast reports whether version orders at or above min. Game
// versions do not follow semver, so ordering goes through FlexVer.
func MinecraftAtLeast(min, version string) bool {
	return !flexver.Less(version, min)
}
