package core

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLocalMod() *LocalMod {
	mod := NewLocalMod(
		"shader-toolkit",
		"Shader Toolkit",
		"shader-toolkit-1.4.2.jar",
		ClientSide,
		false,
		ModUpdate{"modrinth": {"mod-id": "AABBCC", "version": "xyz"}},
		ModDownload{URL: "https://cdn.example/shader-toolkit-1.4.2.jar", HashFormat: "sha1", Hash: "d34db33f"},
		nil,
	)
	mod.SetMetaPath(filepath.Join("mods", "shader-toolkit"+MetaExtension))
	return mod
}

func TestLocalModSlugComesFromMetaPath(t *testing.T) {
	mod := testLocalMod()
	assert.Equal(t, "shader-toolkit", mod.Slug())
	assert.Equal(t, filepath.Join("mods", "shader-toolkit-1.4.2.jar"), mod.GetDestFilePath())
}

func TestLocalModSideFiltering(t *testing.T) {
	mod := testLocalMod()
	assert.True(t, mod.LaunchesOnClient())

	mod.Side = ServerSide
	assert.False(t, mod.LaunchesOnClient())

	mod.Side = EmptySide
	assert.True(t, mod.LaunchesOnClient())
}

func TestLocalModEnabled(t *testing.T) {
	mod := testLocalMod()

	// no option block means always on, regardless of stored choice
	off := false
	assert.True(t, mod.Enabled(nil))
	assert.True(t, mod.Enabled(&off))

	mod.Option = &ModOption{Optional: true, Default: true}
	assert.True(t, mod.Enabled(nil))
	assert.False(t, mod.Enabled(&off))

	mod.Option.Default = false
	on := true
	assert.False(t, mod.Enabled(nil))
	assert.True(t, mod.Enabled(&on))
}

func TestLocalModAsModule(t *testing.T) {
	mod := testLocalMod()
	mod.Option = &ModOption{Optional: true, Default: true}

	module := mod.AsModule()
	assert.Equal(t, "shader-toolkit", module.ID)
	assert.Equal(t, ModuleMod, module.Type)
	assert.Equal(t, "shader-toolkit-1.4.2.jar", module.Artifact.Path)
	assert.Equal(t, "d34db33f", module.Artifact.Hash)
	require.NotNil(t, module.Required)
	assert.False(t, module.Required.IsRequired())
	assert.True(t, module.Required.DefaultEnabled())
}

func TestLocalModDecodeNamedSourceData(t *testing.T) {
	mod := testLocalMod()

	var data struct {
		ModID   string `mapstructure:"mod-id"`
		Version string `mapstructure:"version"`
	}
	require.NoError(t, mod.DecodeNamedSourceData("modrinth", &data))
	assert.Equal(t, "AABBCC", data.ModID)
	assert.Equal(t, "xyz", data.Version)

	assert.Error(t, mod.DecodeNamedSourceData("github", &data))
}

func TestLocalModMarshalHashesContent(t *testing.T) {
	mod := testLocalMod()
	result, err := mod.Marshal()
	require.NoError(t, err)
	assert.Equal(t, "sha256", result.HashFormat)
	assert.NotEmpty(t, result.Hash)
	assert.Contains(t, result.String(), "shader-toolkit-1.4.2.jar")

	format, hash := mod.GetHashInfo()
	assert.Equal(t, "sha256", format)
	assert.Equal(t, result.Hash, hash)
}
