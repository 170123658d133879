package launch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lodestone-launcher/lodestone/config"
	"github.com/lodestone-launcher/lodestone/core"
)

func linuxRules(features core.FeatureSet) core.RuleContext {
	return core.RuleContext{Platform: "linux", OS: "linux", Arch: core.ArchX64, Features: features}
}

func TestBuildArgumentsLegacy(t *testing.T) {
	layout := config.NewLayout(t.TempDir())
	server := &core.ServerEntry{
		ID:               "main-1.12",
		MinecraftVersion: "1.12.2",
		Address:          "play.example.com:25566",
		AutoConnect:      true,
	}
	manifest := &core.VersionManifest{
		ID:        "1.12.2",
		Type:      "release",
		MainClass: "net.minecraft.launchwrapper.Launch",
		Assets:    "1.12",
		MinecraftArguments: "--username ${auth_player_name} --version ${version_name}" +
			" --gameDir ${game_directory} --assetsDir ${assets_root} --assetIndex ${assets_index_name}" +
			" --uuid ${auth_uuid} --accessToken ${auth_access_token} --userType ${user_type}",
	}
	spec := &Spec{
		Layout:   layout,
		Server:   server,
		Manifest: manifest,
		Session:  msaSession(),
		Options: Options{
			MinHeap:      config.MemorySize(2048),
			MaxHeap:      config.MemorySize(4096),
			ExtraJvmArgs: []string{"-XX:+UseG1GC"},
			AutoConnect:  true,
		},
	}

	serverDir := layout.ServerDir(server.ID)
	nativesDir := filepath.Join(serverDir, "natives-test")
	classpath := []string{
		filepath.Join(layout.LibrariesDir(), "a.jar"),
		layout.VersionJarPath("1.12.2"),
	}

	args := buildArguments(spec, linuxRules(core.FeatureSet{}), classpath, nativesDir, serverDir, "jt-1", core.ModuleForge, false)

	want := []string{
		"-Xmx4096M",
		"-Xms2048M",
		"-XX:+UseG1GC",
		"-Djava.library.path=" + nativesDir,
		"-cp",
		strings.Join(classpath, string(os.PathListSeparator)),
		"-Dlodestone.join.token=jt-1",
		"net.minecraft.launchwrapper.Launch",
		"--username", "Steve",
		"--version", "1.12.2",
		"--gameDir", serverDir,
		"--assetsDir", layout.AssetsDir(),
		"--assetIndex", "1.12",
		"--uuid", "069a79f4-44e9-4726-a5be-fca90e38aaf5",
		"--accessToken", "token-abc",
		"--userType", "msa",
		"--modListFile", "absolute:" + layout.ModListPath(server.ID),
		"--server", "play.example.com",
		"--port", "25566",
	}
	assert.Equal(t, want, args)
}

func TestBuildArgumentsModern(t *testing.T) {
	layout := config.NewLayout(t.TempDir())
	server := &core.ServerEntry{
		ID:               "main-1.20",
		MinecraftVersion: "1.20.1",
		Address:          "play.example.com",
		AutoConnect:      true,
	}
	manifest := &core.VersionManifest{
		ID:         "1.20.1",
		Type:       "release",
		MainClass:  "net.minecraft.client.main.Main",
		AssetIndex: core.AssetIndexRef{ID: "5"},
		Arguments: core.Arguments{
			JVM: []core.Argument{
				{Cond: &core.ConditionalValue{
					Rules: []core.Rule{{Action: core.ActionAllow, OS: &core.OSRule{Name: "osx"}}},
					Value: core.StringList{"-XstartOnFirstThread"},
				}},
				{Raw: "-Djava.library.path=${natives_directory}"},
				{Raw: "-cp"},
				{Raw: "${classpath}"},
			},
			Game: []core.Argument{
				{Raw: "--username"}, {Raw: "${auth_player_name}"},
				{Raw: "--assetIndex"}, {Raw: "${assets_index_name}"},
				{Cond: &core.ConditionalValue{
					Rules: []core.Rule{{Action: core.ActionAllow, Features: map[string]bool{"has_custom_resolution": true}}},
					Value: core.StringList{"--width", "${resolution_width}", "--height", "${resolution_height}"},
				}},
			},
		},
	}
	spec := &Spec{
		Layout:   layout,
		Server:   server,
		Manifest: manifest,
		Session:  msaSession(),
		Options: Options{
			MinHeap:          config.MemorySize(2048),
			MaxHeap:          config.MemorySize(3072),
			ResolutionWidth:  1920,
			ResolutionHeight: 1080,
			AutoConnect:      true,
		},
	}

	serverDir := layout.ServerDir(server.ID)
	nativesDir := filepath.Join(serverDir, "natives-test")
	classpath := []string{layout.VersionJarPath("1.20.1")}

	rules := linuxRules(core.FeatureSet{CustomResolution: true})
	args := buildArguments(spec, rules, classpath, nativesDir, serverDir, "", core.ModuleFabric, false)

	want := []string{
		"-Xmx3072M",
		"-Xms2048M",
		"-Djava.library.path=" + nativesDir,
		"-cp",
		classpath[0],
		"net.minecraft.client.main.Main",
		"--username", "Steve",
		"--assetIndex", "5",
		"--width", "1920",
		"--height", "1080",
		"--quickPlayMultiplayer", "play.example.com:25565",
	}
	assert.Equal(t, want, args)
}

func TestDetectLoaders(t *testing.T) {
	libraries := t.TempDir()
	modules := []core.Module{
		{ID: "com.example:somelib:1.0", Type: core.ModuleLibrary},
		{ID: "net.fabricmc:fabric-loader:0.15.11", Type: core.ModuleFabric},
		{ID: "com.mumfrey:liteloader:1.12.2", Type: core.ModuleLiteLoader},
	}

	loader, liteLoaderPath, err := detectLoaders(modules, libraries)
	require.NoError(t, err)
	assert.Equal(t, core.ModuleFabric, loader)
	assert.Equal(t, filepath.Join(libraries, "com", "mumfrey", "liteloader", "1.12.2", "liteloader-1.12.2.jar"), liteLoaderPath)
}

func TestDetectLoadersBadLiteLoaderID(t *testing.T) {
	modules := []core.Module{{ID: "garbage", Type: core.ModuleLiteLoader}}
	_, _, err := detectLoaders(modules, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "liteloader")
}

func TestRedactSecrets(t *testing.T) {
	args := []string{
		"--accessToken", "token-abc",
		"-Dlodestone.join.token=jt-1",
		"--username", "Steve",
	}
	redacted := redactSecrets(args, "token-abc", "jt-1")

	assert.Equal(t, []string{
		"--accessToken", "[redacted]",
		"-Dlodestone.join.token=[redacted]",
		"--username", "Steve",
	}, redacted)
	// The original vector stays untouched.
	assert.Equal(t, "token-abc", args[1])
}

func TestSweepStaleNatives(t *testing.T) {
	serverDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(serverDir, "natives-old1"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(serverDir, "natives-old2"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(serverDir, "mods"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(serverDir, "natives-notes.txt"), []byte("keep"), 0644))

	sweepStaleNatives(serverDir, hclog.NewNullLogger())

	survivors, err := os.ReadDir(serverDir)
	require.NoError(t, err)
	names := make([]string, len(survivors))
	for i, e := range survivors {
		names[i] = e.Name()
	}
	assert.ElementsMatch(t, []string{"mods", "natives-notes.txt"}, names)
}

func TestAssetIndexName(t *testing.T) {
	assert.Equal(t, "5", assetIndexName(&core.VersionManifest{
		Assets:     "5",
		AssetIndex: core.AssetIndexRef{ID: "5"},
	}))
	assert.Equal(t, "legacy", assetIndexName(&core.VersionManifest{Assets: "legacy"}))
}
