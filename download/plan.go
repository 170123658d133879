package download

import (
	"fmt"
	"path/filepath"

	"github.com/lodestone-launcher/lodestone/core"
)

// ManifestPlan lists everything a version manifest requires on this host:
// the client jar, the asset index file, and the rule-allowed libraries
// (including the natives archives the extractor will open).
func ManifestPlan(manifest *core.VersionManifest, arch core.Architecture, rules core.RuleContext, librariesDir, versionJarPath, assetIndexesDir string) ([]Item, error) {
	var items []Item

	if client, ok := manifest.Downloads["client"]; ok {
		items = append(items, Item{
			Name:       manifest.ID + ".jar",
			Kind:       KindClient,
			URL:        client.URL,
			Dest:       versionJarPath,
			Size:       client.Size,
			HashFormat: "sha1",
			Hash:       client.SHA1,
		})
	}

	if manifest.AssetIndex.URL != "" {
		items = append(items, Item{
			Name:       "assets/" + manifest.AssetIndex.ID + ".json",
			Kind:       KindAssetIndex,
			URL:        manifest.AssetIndex.URL,
			Dest:       filepath.Join(assetIndexesDir, manifest.AssetIndex.ID+".json"),
			Size:       manifest.AssetIndex.Size,
			HashFormat: "sha1",
			Hash:       manifest.AssetIndex.SHA1,
		})
	}

	extractor := core.NewNativesExtractor(arch, rules, librariesDir, "", nil)

	for _, lib := range manifest.Libraries {
		if !rules.Allows(lib.Rules) {
			continue
		}

		if len(lib.Natives) > 0 {
			// a legacy natives entry may also carry a plain artifact jar
			if lib.Download != nil && lib.Download.Artifact != nil {
				if item, ok := libraryItem(lib, lib.Download.Artifact, librariesDir, KindLibrary); ok {
					items = append(items, item)
				}
			}
			dest, art, ok := extractor.HostArchive(lib)
			if !ok {
				continue
			}
			items = append(items, archiveItem(lib, dest, art, librariesDir))
			continue
		}

		if _, ok := lib.NativesSuffix(); ok {
			dest, art, ok := extractor.HostArchive(lib)
			if !ok {
				continue
			}
			items = append(items, archiveItem(lib, dest, art, librariesDir))
			continue
		}

		var art *core.Artifact
		if lib.Download != nil {
			art = lib.Download.Artifact
		}
		if item, ok := libraryItem(lib, art, librariesDir, KindLibrary); ok {
			items = append(items, item)
		}
	}

	return items, nil
}

// libraryItem builds the fetch item for a plain library jar, deriving the
// destination and URL from the maven identifier when the manifest declares
// no descriptor.
func libraryItem(lib core.Library, art *core.Artifact, librariesDir string, kind Kind) (Item, bool) {
	item := Item{Name: lib.Name, Kind: kind}

	if art != nil {
		item.URL = art.URL
		item.Size = art.Size
		if art.SHA1 != "" {
			item.HashFormat = "sha1"
			item.Hash = art.SHA1
		}
		if art.Path != "" {
			item.Dest = filepath.Join(librariesDir, filepath.FromSlash(art.Path))
		}
	}

	if item.Dest == "" || item.URL == "" {
		id, err := core.ParseMavenID(lib.Name)
		if err != nil {
			return Item{}, false
		}
		if item.Dest == "" {
			item.Dest = filepath.Join(librariesDir, filepath.FromSlash(id.Path()))
		}
		if item.URL == "" {
			base := lib.URL
			if base == "" {
				base = core.MojangLibrariesBase
			}
			item.URL = joinRepoURL(base, id.Path())
		}
	}

	return item, true
}

func archiveItem(lib core.Library, dest string, art *core.Artifact, librariesDir string) Item {
	item := Item{Name: lib.Name, Kind: KindNatives, Dest: dest}
	if art != nil {
		item.URL = art.URL
		item.Size = art.Size
		if art.SHA1 != "" {
			item.HashFormat = "sha1"
			item.Hash = art.SHA1
		}
	}
	if item.URL == "" {
		// derive from the archive's repository path
		if rel, err := filepath.Rel(librariesDir, dest); err == nil {
			base := lib.URL
			if base == "" {
				base = core.MojangLibrariesBase
			}
			item.URL = joinRepoURL(base, filepath.ToSlash(rel))
		}
	}
	return item
}

// ModulePlan lists the artifacts of an enabled module set. Loader modules
// without an explicit URL derive one from their loader's repository.
func ModulePlan(modules []core.Module, librariesDir string) ([]Item, error) {
	var items []Item
	for i := range modules {
		mod := &modules[i]

		dest, err := mod.ResolvePath(librariesDir)
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", mod.ID, err)
		}

		url := mod.Artifact.URL
		if url == "" {
			base, ok := core.LoaderRepoBase(mod.Type)
			if !ok {
				return nil, fmt.Errorf("module %s declares no artifact url", mod.ID)
			}
			id, err := mod.MavenID()
			if err != nil {
				return nil, fmt.Errorf("module %s: %w", mod.ID, err)
			}
			url = joinRepoURL(base, id.Path())
		}

		items = append(items, Item{
			Name:       mod.Name,
			Kind:       KindModule,
			URL:        url,
			Dest:       dest,
			Size:       mod.Artifact.Size,
			HashFormat: mod.Artifact.HashFormat,
			Hash:       mod.Artifact.Hash,
		})
	}
	return items, nil
}

// LocalModPlan lists the jars of the local mods that launch on this client,
// each landing next to its metadata file.
func LocalModPlan(mods []*core.LocalMod) []Item {
	var items []Item
	for _, mod := range mods {
		if !mod.LaunchesOnClient() {
			continue
		}
		items = append(items, Item{
			Name:       mod.Name,
			Kind:       KindLocalMod,
			URL:        mod.Download.URL,
			Dest:       mod.GetDestFilePath(),
			HashFormat: mod.Download.HashFormat,
			Hash:       mod.Download.Hash,
		})
	}
	return items
}

func joinRepoURL(base, rel string) string {
	if base == "" {
		return rel
	}
	if base[len(base)-1] != '/' {
		base += "/"
	}
	return base + rel
}
