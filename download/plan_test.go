package download

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lodestone-launcher/lodestone/core"
)

func linuxRules() (core.Architecture, core.RuleContext) {
	arch := core.Architecture{Platform: "linux", Arch: core.ArchX64}
	return arch, core.RuleContext{Platform: "linux", OS: "linux", Arch: core.ArchX64}
}

func planManifest(t *testing.T, manifest string) *core.VersionManifest {
	t.Helper()
	var m core.VersionManifest
	require.NoError(t, json.Unmarshal([]byte(manifest), &m))
	return &m
}

func findItem(items []Item, name string) (Item, bool) {
	for _, item := range items {
		if item.Name == name {
			return item, true
		}
	}
	return Item{}, false
}

func TestManifestPlanCoversClientIndexAndLibraries(t *testing.T) {
	manifest := planManifest(t, `{
		"id": "1.20.1",
		"assetIndex": {"id": "5", "sha1": "abcd", "size": 10, "url": "https://pistonmeta.example/5.json"},
		"downloads": {"client": {"sha1": "c1c1", "size": 100, "url": "https://pistonmeta.example/client.jar"}},
		"libraries": [
			{
				"name": "com.mojang:patchy:1.3.9",
				"downloads": {"artifact": {"path": "com/mojang/patchy/1.3.9/patchy-1.3.9.jar", "sha1": "p1", "size": 5, "url": "https://libraries.example/patchy.jar"}}
			},
			{
				"name": "org.lwjgl:lwjgl:3.3.2:natives-linux",
				"downloads": {"artifact": {"path": "org/lwjgl/lwjgl/3.3.2/lwjgl-3.3.2-natives-linux.jar", "sha1": "n1", "size": 7, "url": "https://libraries.example/lwjgl-natives.jar"}}
			},
			{
				"name": "org.lwjgl:lwjgl:3.3.2:natives-windows",
				"downloads": {"artifact": {"path": "org/lwjgl/lwjgl/3.3.2/lwjgl-3.3.2-natives-windows.jar", "sha1": "n2", "size": 7, "url": "https://libraries.example/lwjgl-natives-win.jar"}}
			},
			{
				"name": "net.java.dev.jna:jna:5.13.0"
			},
			{
				"name": "org.lwjgl:lwjgl-glfw:2.9.4",
				"natives": {"linux": "natives-linux"},
				"downloads": {
					"classifiers": {
						"natives-linux": {"path": "org/lwjgl/lwjgl-glfw/2.9.4/lwjgl-glfw-2.9.4-natives-linux.jar", "sha1": "gl1", "size": 9, "url": "https://libraries.example/glfw-natives.jar"}
					}
				}
			}
		]
	}`)

	arch, rules := linuxRules()
	libDir := filepath.Join("inst", "common", "libraries")
	jarPath := filepath.Join("inst", "common", "versions", "1.20.1", "1.20.1.jar")
	idxDir := filepath.Join("inst", "common", "assets", "indexes")

	items, err := ManifestPlan(manifest, arch, rules, libDir, jarPath, idxDir)
	require.NoError(t, err)

	client, ok := findItem(items, "1.20.1.jar")
	require.True(t, ok)
	assert.Equal(t, KindClient, client.Kind)
	assert.Equal(t, jarPath, client.Dest)
	assert.Equal(t, "c1c1", client.Hash)

	index, ok := findItem(items, "assets/5.json")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(idxDir, "5.json"), index.Dest)

	patchy, ok := findItem(items, "com.mojang:patchy:1.3.9")
	require.True(t, ok)
	assert.Equal(t, KindLibrary, patchy.Kind)
	assert.Equal(t, filepath.Join(libDir, "com", "mojang", "patchy", "1.3.9", "patchy-1.3.9.jar"), patchy.Dest)

	// the linux natives variant is planned, the windows one is not
	linuxNatives, ok := findItem(items, "org.lwjgl:lwjgl:3.3.2:natives-linux")
	require.True(t, ok)
	assert.Equal(t, KindNatives, linuxNatives.Kind)
	_, ok = findItem(items, "org.lwjgl:lwjgl:3.3.2:natives-windows")
	assert.False(t, ok)

	// bare identifiers derive both path and Mojang url
	jna, ok := findItem(items, "net.java.dev.jna:jna:5.13.0")
	require.True(t, ok)
	assert.Equal(t, core.MojangLibrariesBase+"net/java/dev/jna/jna/5.13.0/jna-5.13.0.jar", jna.URL)

	// legacy classifier map resolves through the extractor's selection
	glfw, ok := findItem(items, "org.lwjgl:lwjgl-glfw:2.9.4")
	require.True(t, ok)
	assert.Equal(t, KindNatives, glfw.Kind)
	assert.Equal(t, "gl1", glfw.Hash)
}

func TestManifestPlanRespectsRules(t *testing.T) {
	manifest := planManifest(t, `{
		"id": "1.20.1",
		"libraries": [
			{
				"name": "ca.weblite:java-objc-bridge:1.1",
				"rules": [{"action": "allow", "os": {"name": "osx"}}]
			}
		]
	}`)

	arch, rules := linuxRules()
	items, err := ManifestPlan(manifest, arch, rules, "libs", "client.jar", "idx")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestModulePlanDerivesLoaderURL(t *testing.T) {
	modules := []core.Module{
		{
			ID:   "net.fabricmc:fabric-loader:0.15.11",
			Name: "Fabric Loader",
			Type: core.ModuleFabric,
		},
		{
			ID:   "com.example:custom-mod:1.0",
			Name: "Custom Mod",
			Type: core.ModuleMod,
			Artifact: core.ModuleArtifact{
				Path:       "mods-store/custom-mod-1.0.jar",
				URL:        "https://dist.example/custom-mod-1.0.jar",
				HashFormat: "md5",
				Hash:       "beef",
			},
		},
	}

	items, err := ModulePlan(modules, "libs")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "https://maven.fabricmc.net/net/fabricmc/fabric-loader/0.15.11/fabric-loader-0.15.11.jar", items[0].URL)
	assert.Equal(t, filepath.Join("libs", "net", "fabricmc", "fabric-loader", "0.15.11", "fabric-loader-0.15.11.jar"), items[0].Dest)

	assert.Equal(t, filepath.Join("libs", "mods-store", "custom-mod-1.0.jar"), items[1].Dest)
	assert.Equal(t, "md5", items[1].HashFormat)
}

func TestModulePlanFailsOnUnresolvableURL(t *testing.T) {
	_, err := ModulePlan([]core.Module{{
		ID:   "com.example:mystery:1.0",
		Name: "Mystery",
		Type: core.ModuleMod,
	}}, "libs")
	assert.Error(t, err)
}

func TestLocalModPlanSkipsServerOnly(t *testing.T) {
	client := core.NewLocalMod("a", "A", "a.jar", core.ClientSide, false, nil, core.ModDownload{URL: "https://cdn.example/a.jar", HashFormat: "sha1", Hash: "aa"}, nil)
	client.SetMetaPath(filepath.Join("mods", "a.mod.toml"))
	server := core.NewLocalMod("b", "B", "b.jar", core.ServerSide, false, nil, core.ModDownload{URL: "https://cdn.example/b.jar", HashFormat: "sha1", Hash: "bb"}, nil)
	server.SetMetaPath(filepath.Join("mods", "b.mod.toml"))

	items := LocalModPlan([]*core.LocalMod{client, server})
	require.Len(t, items, 1)
	assert.Equal(t, "A", items[0].Name)
	assert.Equal(t, filepath.Join("mods", "a.jar"), items[0].Dest)
}

func TestAssetPlanDeduplicatesObjects(t *testing.T) {
	indexPath := filepath.Join(t.TempDir(), "5.json")
	index := `{
		"objects": {
			"minecraft/sounds/ambient/cave1.ogg": {"hash": "da39a3ee5e6b4b0d3255bfef95601890afd80709", "size": 10},
			"minecraft/sounds/ambient/cave1_copy.ogg": {"hash": "da39a3ee5e6b4b0d3255bfef95601890afd80709", "size": 10},
			"minecraft/lang/en_us.json": {"hash": "ffffffffffffffffffffffffffffffffffffffff", "size": 4}
		}
	}`
	require.NoError(t, os.WriteFile(indexPath, []byte(index), 0644))

	items, err := AssetPlan(indexPath, "objects")
	require.NoError(t, err)
	require.Len(t, items, 2)

	// names iterate sorted: the lang file first, then the first of the two
	// identical sound objects
	assert.Equal(t, filepath.Join("objects", "ff", "ffffffffffffffffffffffffffffffffffffffff"), items[0].Dest)
	assert.Equal(t, ResourcesBase+"da/da39a3ee5e6b4b0d3255bfef95601890afd80709", items[1].URL)
	assert.Equal(t, KindAsset, items[0].Kind)
}
