package fileio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lodestone-launcher/lodestone/core"
)

func TestWriteAndLoadLocalMod(t *testing.T) {
	modsDir := t.TempDir()

	mod := core.NewLocalMod(
		"magic-feather",
		"Magic Feather",
		"magic-feather-2.0.jar",
		core.UniversalSide,
		false,
		core.ModUpdate{"modrinth": {"mod-id": "qqqq", "version": "wwww"}},
		core.ModDownload{URL: "https://cdn.example/magic-feather-2.0.jar", HashFormat: "sha1", Hash: "cafe"},
		&core.ModOption{Optional: true, Default: true, Description: "cosmetic"},
	)
	mod.SetMetaPath(filepath.Join(modsDir, "magic-feather"+core.MetaExtension))

	format, hash, err := WriteLocalMod(mod)
	require.NoError(t, err)
	assert.Equal(t, "sha256", format)
	assert.NotEmpty(t, hash)

	loaded, err := LoadLocalMod(mod.GetFilePath())
	require.NoError(t, err)
	assert.Equal(t, "Magic Feather", loaded.Name)
	assert.Equal(t, "magic-feather", loaded.Slug())
	assert.Equal(t, core.UniversalSide, loaded.Side)
	require.NotNil(t, loaded.Option)
	assert.True(t, loaded.Option.Optional)

	var data struct {
		ModID string `mapstructure:"mod-id"`
	}
	require.NoError(t, loaded.DecodeNamedSourceData("modrinth", &data))
	assert.Equal(t, "qqqq", data.ModID)
}

func TestLoadAllLocalModsIsSortedAndSkipsJars(t *testing.T) {
	modsDir := t.TempDir()

	for _, slug := range []string{"zeta", "alpha"} {
		mod := core.NewLocalMod(slug, slug, slug+".jar", core.EmptySide, false, nil, core.ModDownload{HashFormat: "sha1", Hash: "aa"}, nil)
		mod.SetMetaPath(filepath.Join(modsDir, slug+core.MetaExtension))
		_, _, err := WriteLocalMod(mod)
		require.NoError(t, err)
	}
	// jars and stray files in the directory are not metadata
	require.NoError(t, os.WriteFile(filepath.Join(modsDir, "alpha.jar"), []byte("zip!"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(modsDir, "notes.txt"), []byte("hi"), 0644))

	mods, err := LoadAllLocalMods(modsDir)
	require.NoError(t, err)
	require.Len(t, mods, 2)
	assert.Equal(t, "alpha", mods[0].Slug())
	assert.Equal(t, "zeta", mods[1].Slug())
}

func TestLoadAllLocalModsMissingDirMeansNone(t *testing.T) {
	mods, err := LoadAllLocalMods(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, mods)
}

func TestFindLocalMod(t *testing.T) {
	modsDir := t.TempDir()
	mod := core.NewLocalMod("iris", "Iris", "iris.jar", core.ClientSide, false, nil, core.ModDownload{HashFormat: "sha1", Hash: "bb"}, nil)
	mod.SetMetaPath(filepath.Join(modsDir, "iris"+core.MetaExtension))
	_, _, err := WriteLocalMod(mod)
	require.NoError(t, err)

	path, ok := FindLocalMod(modsDir, "iris")
	assert.True(t, ok)
	assert.Equal(t, mod.GetFilePath(), path)

	_, ok = FindLocalMod(modsDir, "sodium")
	assert.False(t, ok)
}

func TestModConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modconfig.toml")

	choices, err := LoadModConfig(path)
	require.NoError(t, err)
	assert.Empty(t, choices)

	choices["optifine"] = false
	choices["bundle"] = map[string]interface{}{
		"value": true,
		"mods":  map[string]interface{}{"extra": false},
	}
	require.NoError(t, SaveModConfig(path, choices))

	loaded, err := LoadModConfig(path)
	require.NoError(t, err)
	assert.Equal(t, false, loaded["optifine"])
	bundle, ok := loaded["bundle"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, bundle["value"])
}
