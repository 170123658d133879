package fileio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/lodestone-launcher/lodestone/core"
)

// LoadLocalMod attempts to load a local mod metadata file from a path
func LoadLocalMod(modFile string) (core.LocalMod, error) {
	var mod core.LocalMod
	raw, err := os.ReadFile(modFile)
	if err != nil {
		return mod, err
	}
	if err := toml.Unmarshal(raw, &mod); err != nil {
		return mod, err
	}

	mod.SetMetaPath(modFile)
	return mod, nil
}

// LoadAllLocalMods reads every mod metadata file in a server's mods
// directory, in stable name order. A missing directory just means no local
// mods yet.
func LoadAllLocalMods(modsDir string) ([]*core.LocalMod, error) {
	entries, err := os.ReadDir(modsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), core.MetaExtension) {
			continue
		}
		paths = append(paths, filepath.Join(modsDir, entry.Name()))
	}
	sort.Strings(paths)

	mods := make([]*core.LocalMod, len(paths))
	for i, v := range paths {
		modData, err := LoadLocalMod(v)
		if err != nil {
			return nil, fmt.Errorf("failed to read metadata file %s: %w", v, err)
		}
		mods[i] = &modData
	}
	return mods, nil
}

// FindLocalMod resolves a slug to its metadata path, reporting whether it
// exists.
func FindLocalMod(modsDir, slug string) (string, bool) {
	path := filepath.Join(modsDir, slug+core.MetaExtension)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// WriteLocalMod persists a mod's metadata next to its jar.
func WriteLocalMod(mod *core.LocalMod) (string, string, error) {
	return NewMetaWriter().Write(mod)
}
