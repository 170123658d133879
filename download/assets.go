package download

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
)

// ResourcesBase is where Mojang hosts asset objects, addressed by hash.
const ResourcesBase = "https://resources.download.minecraft.net/"

// assetIndex is the Mojang asset index format: a flat map of logical names
// to content-addressed objects.
type assetIndex struct {
	Objects map[string]assetObject `json:"objects"`
}

type assetObject struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

// AssetPlan reads a downloaded asset index and lists the objects it names.
// Objects are stored content-addressed under the first two hash characters,
// mirroring the upstream layout.
func AssetPlan(indexPath, objectsDir string) ([]Item, error) {
	raw, err := os.ReadFile(indexPath)
	if err != nil {
		return nil, err
	}

	var index assetIndex
	if err := json.Unmarshal(raw, &index); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(index.Objects))
	for name := range index.Objects {
		names = append(names, name)
	}
	sort.Strings(names)

	seen := make(map[string]bool, len(names))
	items := make([]Item, 0, len(names))
	for _, name := range names {
		obj := index.Objects[name]
		if len(obj.Hash) < 2 || seen[obj.Hash] {
			// many logical names share one object
			continue
		}
		seen[obj.Hash] = true

		shard := obj.Hash[:2]
		items = append(items, Item{
			Name:       name,
			Kind:       KindAsset,
			URL:        ResourcesBase + shard + "/" + obj.Hash,
			Dest:       filepath.Join(objectsDir, shard, obj.Hash),
			Size:       obj.Size,
			HashFormat: "sha1",
			Hash:       obj.Hash,
		})
	}
	return items, nil
}
